package snapstore

import (
	"context"
	"testing"
	"time"
)

func TestLocalSaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	s := NewLocal()
	t.Cleanup(func() { _ = s.Close(ctx) })

	if _, ok, err := s.Load(ctx, "missing"); err != nil || ok {
		t.Fatalf("miss expected, ok=%v err=%v", ok, err)
	}

	blob := []byte{1, 2, 3}
	if err := s.Save(ctx, "snap", blob, 0); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, ok, err := s.Load(ctx, "snap")
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if string(got) != string(blob) {
		t.Fatalf("blob = %v", got)
	}

	// Stored and returned blobs are copies; callers can't alias state.
	blob[0] = 9
	got[1] = 9
	again, _, _ := s.Load(ctx, "snap")
	if again[0] != 1 || again[1] != 2 {
		t.Fatalf("stored blob was mutated: %v", again)
	}

	if err := s.Delete(ctx, "snap"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := s.Load(ctx, "snap"); ok {
		t.Fatal("blob survived delete")
	}
	if err := s.Delete(ctx, "snap"); err != nil {
		t.Fatalf("deleting a missing name: %v", err)
	}
}

func TestLocalTTL(t *testing.T) {
	ctx := context.Background()
	s := NewLocal()
	t.Cleanup(func() { _ = s.Close(ctx) })

	if err := s.Save(ctx, "snap", []byte("x"), 30*time.Millisecond); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, ok, _ := s.Load(ctx, "snap"); !ok {
		t.Fatal("expired before TTL")
	}
	time.Sleep(50 * time.Millisecond)
	if _, ok, _ := s.Load(ctx, "snap"); ok {
		t.Fatal("blob outlived TTL")
	}
}

func TestLocalOverwrite(t *testing.T) {
	ctx := context.Background()
	s := NewLocal()
	t.Cleanup(func() { _ = s.Close(ctx) })

	_ = s.Save(ctx, "snap", []byte("old"), 0)
	_ = s.Save(ctx, "snap", []byte("new"), 0)
	got, ok, _ := s.Load(ctx, "snap")
	if !ok || string(got) != "new" {
		t.Fatalf("Load = %q,%v", got, ok)
	}
}
