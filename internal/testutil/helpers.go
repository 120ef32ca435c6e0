package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// TempDir creates a temporary directory for tests.
func TempDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "waitfile-test-*")
	if err != nil {
		t.Fatalf("creating temp dir: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(dir)
	})
	return dir
}

// TempFile creates a temporary file with content.
func TempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}
	return path
}

// Paths joins names onto dir without creating anything.
func Paths(dir string, names ...string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = filepath.Join(dir, n)
	}
	return out
}

// WriteAfter writes content to every path once d has elapsed.
// The returned channel is closed after the writes.
func WriteAfter(t *testing.T, d time.Duration, content string, paths ...string) <-chan struct{} {
	t.Helper()
	return after(t, d, func() {
		for _, p := range paths {
			if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
				t.Errorf("delayed write %s: %v", p, err)
			}
		}
	})
}

// RemoveAfter removes every path once d has elapsed.
// The returned channel is closed after the removals.
func RemoveAfter(t *testing.T, d time.Duration, paths ...string) <-chan struct{} {
	t.Helper()
	return after(t, d, func() {
		for _, p := range paths {
			if err := os.Remove(p); err != nil {
				t.Errorf("delayed remove %s: %v", p, err)
			}
		}
	})
}

func after(t *testing.T, d time.Duration, fn func()) <-chan struct{} {
	done := make(chan struct{})
	timer := time.AfterFunc(d, func() {
		defer close(done)
		fn()
	})
	t.Cleanup(func() {
		if timer.Stop() {
			close(done)
		}
		<-done
	})
	return done
}

// AppendEvery appends a byte to path every interval until the test ends,
// simulating a log that is actively written.
func AppendEvery(t *testing.T, path string, interval time.Duration) {
	t.Helper()
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
				if err != nil {
					continue
				}
				_, _ = f.WriteString("x")
				f.Close()
			}
		}
	}()
	t.Cleanup(func() {
		close(stop)
		wg.Wait()
	})
}

// AssertNoError fails if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertEqual fails if got != want.
func AssertEqual[T comparable](t *testing.T, got, want T) {
	t.Helper()
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

// AssertContains fails if s does not contain substr.
func AssertContains(t *testing.T, s, substr string) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Fatalf("expected %q to contain %q", s, substr)
	}
}

// AssertNotContains fails if s contains substr.
func AssertNotContains(t *testing.T, s, substr string) {
	t.Helper()
	if strings.Contains(s, substr) {
		t.Fatalf("expected %q to not contain %q", s, substr)
	}
}

// AssertLen fails if len(s) != want.
func AssertLen[T any](t *testing.T, s []T, want int) {
	t.Helper()
	if len(s) != want {
		t.Fatalf("len() = %d, want %d", len(s), want)
	}
}

// AssertBetween fails if d is outside [min, max].
func AssertBetween(t *testing.T, d, min, max time.Duration) {
	t.Helper()
	if d < min || d > max {
		t.Fatalf("duration %v outside [%v, %v]", d, min, max)
	}
}
