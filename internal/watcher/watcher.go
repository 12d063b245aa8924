package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/doc2video/internal/logger"
)

type implWatcher struct {
	inputDir   string
	handler    DocumentHandler
	logger     logger.Logger
	watcher    *fsnotify.Watcher
	extensions map[string]bool
	settle     time.Duration
	semaphore  chan struct{}
	wg         sync.WaitGroup

	mu       sync.Mutex
	inFlight map[string]bool
}

// Start blocks until ctx is done, converting each document dropped into the inbox.
// On shutdown it waits for conversions already running.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Inbox watcher started (max concurrent: %d). Monitoring: %s", cap(w.semaphore), w.inputDir)
	w.logger.Info(ctx, "Accepted documents: %s", strings.Join(w.extensionList(), ", "))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for running conversions to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "Inbox watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			// Rename covers documents moved into the inbox from elsewhere
			if event.Op&(fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !w.isDocument(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-document file: %s", event.Name)
				continue
			}
			if !w.claim(event.Name) {
				w.logger.Debug(ctx, "Already converting %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New document detected: %s", event.Name)

			select {
			case <-time.After(w.settle):
			case <-ctx.Done():
				w.unclaim(event.Name)
				continue
			}

			select {
			case w.semaphore <- struct{}{}:
				w.wg.Add(1)
				go func(path string) {
					defer w.wg.Done()
					defer func() { <-w.semaphore }()
					defer w.unclaim(path)

					if err := w.handler(ctx, path); err != nil {
						w.logger.Error(ctx, "Failed to convert %s: %v", path, err)
					}
				}(event.Name)
			case <-ctx.Done():
				w.unclaim(event.Name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the underlying fsnotify watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) isDocument(path string) bool {
	base := filepath.Base(path)
	// editors and partial downloads
	if strings.HasPrefix(base, ".") || strings.HasPrefix(base, "~$") {
		return false
	}
	return w.extensions[strings.ToLower(filepath.Ext(path))]
}

func (w *implWatcher) claim(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inFlight[path] {
		return false
	}
	w.inFlight[path] = true
	return true
}

func (w *implWatcher) unclaim(path string) {
	w.mu.Lock()
	delete(w.inFlight, path)
	w.mu.Unlock()
}

func (w *implWatcher) extensionList() []string {
	list := make([]string, 0, len(w.extensions))
	for e := range w.extensions {
		list = append(list, e)
	}
	sort.Strings(list)
	return list
}
