package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/hugo-lorenzo-mato/waitfile/internal/probe"
)

func TestMockProber_SetRemove(t *testing.T) {
	m := NewMockProber()
	ctx := context.Background()

	if got := m.Probe(ctx, "a").Size; got != probe.Absent {
		t.Fatalf("unset resource size = %d, want absent", got)
	}

	m.Set("a", 10)
	if got := m.Probe(ctx, "a").Size; got != 10 {
		t.Fatalf("size = %d, want 10", got)
	}

	m.Grow("a", 5)
	if got := m.Probe(ctx, "a").Size; got != 15 {
		t.Fatalf("size = %d, want 15", got)
	}

	m.Remove("a")
	if m.Probe(ctx, "a").Available() {
		t.Fatal("removed resource should be absent")
	}
}

func TestMockProber_RecordsCalls(t *testing.T) {
	m := NewMockProber()
	m.Probe(context.Background(), "x")
	m.Probe(context.Background(), "y")

	calls := m.Calls()
	AssertLen(t, calls, 2)
	AssertEqual(t, calls[1].Args.(string), "y")
	AssertEqual(t, m.CallCount(), 2)
	if m.FirstCall().IsZero() {
		t.Fatal("expected first call timestamp")
	}

	m.Reset()
	AssertEqual(t, m.CallCount(), 0)
	if !m.FirstCall().IsZero() {
		t.Fatal("expected zero time after reset")
	}
}

func TestMockProber_SetAfter(t *testing.T) {
	m := NewMockProber()
	stop := m.SetAfter(10*time.Millisecond, "late", 1)
	defer stop()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if m.Probe(context.Background(), "late").Available() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("resource never appeared")
}
