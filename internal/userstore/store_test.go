package userstore

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemory("")

	_, err := s.UserID(ctx)
	if !errors.Is(err, ErrNoUser) {
		t.Fatalf("Expected ErrNoUser on empty store, got %v", err)
	}

	if err := s.SetUserID(ctx, "user-42"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	id, err := s.UserID(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if id != "user-42" {
		t.Errorf("Expected user-42, got %q", id)
	}
}

func TestMemoryStoreSeeded(t *testing.T) {
	id, err := NewMemory("seed-1").UserID(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if id != "seed-1" {
		t.Errorf("Expected seed-1, got %q", id)
	}
}
