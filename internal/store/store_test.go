package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestOpenRequiresURI(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := Open(ctx, "", "fisia", "sessions")
	if !errors.Is(err, ErrNoURI) {
		t.Fatalf("expected ErrNoURI, got %v", err)
	}
}
