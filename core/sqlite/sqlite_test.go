package sqlite

import (
	"context"
	"path/filepath"
	"testing"
)

func TestDriverInfo(t *testing.T) {
	info := GetInfo()

	if info.DriverName == "" || info.DriverType == "" || info.Package == "" {
		t.Errorf("GetInfo() has empty fields: %+v", info)
	}
	if info.DriverName != DriverName() {
		t.Errorf("DriverName mismatch: info=%s, func=%s", info.DriverName, DriverName())
	}
	if info.IsCGO != IsCGO() {
		t.Errorf("IsCGO mismatch: info=%v, func=%v", info.IsCGO, IsCGO())
	}
}

func TestDriverTypeConsistency(t *testing.T) {
	switch DriverType() {
	case "purego":
		if IsCGO() || DriverName() != "sqlite" {
			t.Errorf("purego driver: IsCGO=%v name=%q", IsCGO(), DriverName())
		}
	case "cgo":
		if !IsCGO() || DriverName() != "sqlite3" {
			t.Errorf("cgo driver: IsCGO=%v name=%q", IsCGO(), DriverName())
		}
	default:
		t.Errorf("unknown driver type: %s", DriverType())
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.db")

	db, err := OpenFile(context.Background(), path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	if _, err := db.Exec(`CREATE TABLE rendered (key TEXT PRIMARY KEY, output TEXT)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO rendered (key, output) VALUES (?, ?)`, "k", "{@b bold}"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	db.Close()

	ro, err := OpenReadOnly(path)
	if err != nil {
		t.Fatalf("OpenReadOnly() error = %v", err)
	}
	defer ro.Close()

	var out string
	if err := ro.QueryRow(`SELECT output FROM rendered WHERE key = ?`, "k").Scan(&out); err != nil {
		t.Fatalf("query: %v", err)
	}
	if out != "{@b bold}" {
		t.Errorf("output = %q, want %q", out, "{@b bold}")
	}
	if _, err := ro.Exec(`INSERT INTO rendered (key, output) VALUES ('x', 'y')`); err == nil {
		t.Error("insert on read-only database succeeded")
	}
}

func TestOpenMemory(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error = %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE t (v INTEGER)`); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`INSERT INTO t VALUES (1), (2)`); err != nil {
		t.Fatal(err)
	}
	var n int
	if err := db.QueryRow(`SELECT count(*) FROM t`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
}
