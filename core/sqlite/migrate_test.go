package sqlite

import (
	"context"
	"testing"
	"testing/fstest"
)

func TestApplyMigrations(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	fsys := fstest.MapFS{
		"m/001_a.sql": {Data: []byte("-- +migrate Up\nCREATE TABLE a (v TEXT);\n-- +migrate Down\nDROP TABLE a;\n")},
		"m/002_b.sql": {Data: []byte("CREATE TABLE b (v TEXT);")},
		"m/notes.txt": {Data: []byte("ignored")},
	}
	ctx := context.Background()
	for range 2 {
		if err := ApplyMigrations(ctx, db, fsys, "m"); err != nil {
			t.Fatalf("ApplyMigrations() error = %v", err)
		}
	}

	var n int
	if err := db.QueryRow(`SELECT count(*) FROM schema_migrations`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("applied = %d, want 2", n)
	}
	if _, err := db.Exec(`INSERT INTO a (v) VALUES ('x'); INSERT INTO b (v) VALUES ('y')`); err != nil {
		t.Errorf("tables missing: %v", err)
	}
}

func TestApplyMigrationsFailure(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	fsys := fstest.MapFS{"001_bad.sql": {Data: []byte("CREATE NONSENSE;")}}
	if err := ApplyMigrations(context.Background(), db, fsys, ""); err == nil {
		t.Error("ApplyMigrations() succeeded on invalid SQL")
	}
}

func TestUpSection(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"CREATE TABLE x (v);", "CREATE TABLE x (v);"},
		{"-- +migrate Up\nUP\n-- +migrate Down\nDOWN", "\nUP\n"},
		{"-- +migrate Up\nUP", "\nUP"},
	}
	for _, tt := range tests {
		if got := UpSection(tt.in); got != tt.want {
			t.Errorf("UpSection(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
