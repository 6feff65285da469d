package store

import (
	"context"
	"testing"
)

type fakeEmitContext string

func (f fakeEmitContext) String() string { return string(f) }

func TestOpenCreatesSchemaAndRoundTripsAValue(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, SQLite, ":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	key := s.Key([]byte("module bytes"), "main", fakeEmitContext("c-like"))
	if _, ok, err := s.Get(ctx, key); err != nil || ok {
		t.Fatalf("Get before Put = %v, %v, want a miss", ok, err)
	}

	if err := s.Put(ctx, key, "void main() {}"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := s.Get(ctx, key)
	if err != nil || !ok || got != "void main() {}" {
		t.Fatalf("Get after Put = %q, %v, %v", got, ok, err)
	}
}

func TestKeyChangesWithFunctionNameAndEmitContext(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, SQLite, ":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	bytes := []byte("module bytes")
	k1 := s.Key(bytes, "main", fakeEmitContext("c-like"))
	k2 := s.Key(bytes, "helper", fakeEmitContext("c-like"))
	k3 := s.Key(bytes, "main", fakeEmitContext("pretty"))
	if k1 == k2 || k1 == k3 || k2 == k3 {
		t.Fatalf("expected distinct keys, got %q %q %q", k1, k2, k3)
	}
}

func TestKeyDiffersAcrossGenerations(t *testing.T) {
	ctx := context.Background()
	s1, err := Open(ctx, SQLite, ":memory:")
	if err != nil {
		t.Fatalf("Open s1: %v", err)
	}
	defer s1.Close()
	s2, err := Open(ctx, SQLite, ":memory:")
	if err != nil {
		t.Fatalf("Open s2: %v", err)
	}
	defer s2.Close()

	bytes := []byte("module bytes")
	if s1.Key(bytes, "main", fakeEmitContext("c-like")) == s2.Key(bytes, "main", fakeEmitContext("c-like")) {
		t.Fatal("expected keys to differ across independently opened stores (per-generation salt)")
	}
}

func TestPutOverwritesExistingKey(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, SQLite, ":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	key := s.Key([]byte("m"), "main", fakeEmitContext("c-like"))
	if err := s.Put(ctx, key, "first"); err != nil {
		t.Fatalf("Put first: %v", err)
	}
	if err := s.Put(ctx, key, "second"); err != nil {
		t.Fatalf("Put second: %v", err)
	}
	got, ok, err := s.Get(ctx, key)
	if err != nil || !ok || got != "second" {
		t.Fatalf("Get after overwrite = %q, %v, %v, want %q", got, ok, err, "second")
	}
}
