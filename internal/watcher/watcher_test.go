package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/doc2video/internal/logger"
)

func TestIsDocument(t *testing.T) {
	w := &implWatcher{extensions: map[string]bool{".pdf": true, ".txt": true}}

	tests := []struct {
		path string
		want bool
	}{
		{"inbox/paper.pdf", true},
		{"inbox/PAPER.PDF", true},
		{"inbox/notes.txt", true},
		{"inbox/video.mp4", false},
		{"inbox/.paper.pdf", false},
		{"inbox/~$paper.pdf", false},
		{"inbox/noext", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := w.isDocument(tt.path); got != tt.want {
				t.Errorf("isDocument(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestClaimOnce(t *testing.T) {
	w := &implWatcher{inFlight: make(map[string]bool)}
	if !w.claim("a.pdf") {
		t.Fatal("first claim should succeed")
	}
	if w.claim("a.pdf") {
		t.Fatal("second claim should fail while in flight")
	}
	w.unclaim("a.pdf")
	if !w.claim("a.pdf") {
		t.Fatal("claim after unclaim should succeed")
	}
}

func TestStartHandlesNewDocuments(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	var handled []string
	got := make(chan struct{}, 4)
	handler := func(ctx context.Context, path string) error {
		mu.Lock()
		handled = append(handled, filepath.Base(path))
		mu.Unlock()
		got <- struct{}{}
		return nil
	}

	w, err := New(dir, handler, Options{Settle: 10 * time.Millisecond}, logger.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	// give the event loop a moment to start
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "ignored.mp4"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "paper.pdf"), []byte("%PDF"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-got:
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not called")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after cancel")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(handled) != 1 || handled[0] != "paper.pdf" {
		t.Errorf("handled = %v, want [paper.pdf]", handled)
	}
}
