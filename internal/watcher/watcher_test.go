package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestRun_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "faqs.json")
	if err := os.WriteFile(path, []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var reloads []string
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx, func(p string) error {
			mu.Lock()
			reloads = append(reloads, p)
			mu.Unlock()
			return nil
		})
	}()

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte(`[{"question":"q","answer":"a"}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		mu.Lock()
		n := len(reloads)
		mu.Unlock()
		if n > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("reload never fired")
		case <-time.After(50 * time.Millisecond):
		}
	}

	mu.Lock()
	got := reloads[0]
	mu.Unlock()
	want, _ := filepath.Abs(path)
	if got != want {
		t.Errorf("reloaded path = %q, want %q", got, want)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on context cancellation")
	}
}

func TestRun_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "faqs.json")
	if err := os.WriteFile(path, []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	count := 0
	go w.Run(ctx, func(string) error {
		mu.Lock()
		count++
		mu.Unlock()
		return nil
	})

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * debounce)

	mu.Lock()
	defer mu.Unlock()
	if count != 0 {
		t.Errorf("reload fired %d times for an unrelated file", count)
	}
}

func TestRun_KeepsWatchingAfterReloadError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "faqs.json")
	if err := os.WriteFile(path, []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	calls := 0
	go w.Run(ctx, func(string) error {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			return errors.New("bad corpus")
		}
		return nil
	})

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte(`bad`), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, &mu, &calls, 1)

	if err := os.WriteFile(path, []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, &mu, &calls, 2)
}

func waitFor(t *testing.T, mu *sync.Mutex, counter *int, want int) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		mu.Lock()
		n := *counter
		mu.Unlock()
		if n >= want {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for %d reload calls, got %d", want, n)
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing", "faqs.json")); err == nil {
		t.Error("expected error for nonexistent directory")
	}
}
