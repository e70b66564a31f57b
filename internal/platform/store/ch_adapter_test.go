package store

import (
	"context"
	"testing"

	"promptstash/internal/platform/store/ch"
)

// TestCHAdapter_RejectsUnsupportedInsertShape ensures the seam only accepts [][]any
func TestCHAdapter_RejectsUnsupportedInsertShape(t *testing.T) {
	t.Parallel()

	a := newCHAdapter(&ch.CH{})
	if err := a.Insert(context.Background(), "auth_events", map[string]any{"k": "v"}); err == nil {
		t.Fatalf("Insert expected error for unsupported shape")
	}
}

// TestCHAdapter_PingNilInner reports an error rather than panicking
func TestCHAdapter_PingNilInner(t *testing.T) {
	t.Parallel()

	a := &clickhouseAdapter{}
	if err := a.Ping(context.Background()); err == nil {
		t.Fatalf("Ping expected error on nil inner client")
	}
}
