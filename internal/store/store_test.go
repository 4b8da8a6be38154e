package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/FocuswithJustin/Compendium/core/cache"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGet(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	key := cache.NewKey("markdown", "{@b bold}")

	if _, ok, err := s.Get(ctx, key); err != nil || ok {
		t.Fatalf("Get() on empty store = %v, %v", ok, err)
	}
	if err := s.Put(ctx, key, "markdown", "**bold**"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	out, ok, err := s.Get(ctx, key)
	if err != nil || !ok || out != "**bold**" {
		t.Errorf("Get() = %q, %v, %v; want **bold**", out, ok, err)
	}
	if _, _, err := s.Get(ctx, key); err != nil {
		t.Fatal(err)
	}

	rec, ok, err := s.Lookup(ctx, key)
	if err != nil || !ok {
		t.Fatalf("Lookup() = %v, %v", ok, err)
	}
	if rec.Hits != 2 || rec.Format != "markdown" || rec.Key != key {
		t.Errorf("Lookup() = %+v", rec)
	}
}

func TestPutReplaces(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	key := cache.NewKey("text", "x")

	_ = s.Put(ctx, key, "text", "one")
	_, _, _ = s.Get(ctx, key)
	if err := s.Put(ctx, key, "text", "two"); err != nil {
		t.Fatal(err)
	}
	rec, _, _ := s.Lookup(ctx, key)
	if rec.Output != "two" || rec.Hits != 0 {
		t.Errorf("after replace: %+v", rec)
	}
}

func TestDeleteAndPrune(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	s.now = func() time.Time { return base }
	_ = s.Put(ctx, cache.NewKey("old"), "html", "<p>old</p>")
	s.now = func() time.Time { return base.Add(time.Hour) }
	_ = s.Put(ctx, cache.NewKey("new"), "html", "<p>new</p>")
	_ = s.Put(ctx, cache.NewKey("gone"), "text", "gone")

	if err := s.Delete(ctx, cache.NewKey("gone")); err != nil {
		t.Fatal(err)
	}
	n, err := s.Prune(ctx, base.Add(time.Minute))
	if err != nil || n != 1 {
		t.Errorf("Prune() = %d, %v; want 1", n, err)
	}
	counts, err := s.Counts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(counts) != 1 || counts["html"] != 1 {
		t.Errorf("Counts() = %v, want map[html:1]", counts)
	}
}

func TestOpenFilePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "renders.db")
	key := cache.NewKey("text", "persist")

	s, err := Open(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, key, "text", "kept"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if out, ok, _ := s.Get(ctx, key); !ok || out != "kept" {
		t.Errorf("Get() after reopen = %q, %v", out, ok)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(context.Background(), " "); err == nil {
		t.Error("Open(\" \") succeeded")
	}
}
