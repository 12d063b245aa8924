package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/doc2video/internal/logger"
	"github.com/nguyentantai21042004/doc2video/internal/models"
)

type manualRenderer struct {
	timeout time.Duration
	// rescan covers filesystems where inotify events never arrive
	rescan time.Duration
	// settle gives the exporting tool time to finish writing the last file
	settle time.Duration
	logger logger.Logger
}

// NewManual creates a SlideRenderer that waits for a person to export the deck to images.
// The wait ends when every image exists, when timeout elapses, or when ctx is canceled.
func NewManual(timeout time.Duration, log logger.Logger) SlideRenderer {
	return &manualRenderer{
		timeout: timeout,
		rescan:  2 * time.Second,
		settle:  500 * time.Millisecond,
		logger:  log,
	}
}

func (m *manualRenderer) Render(ctx context.Context, deckPath, outDir string, count int) ([]models.VisualResource, error) {
	// images exported from an earlier deck must not be narrated with this deck's text
	since := m.deckTime(ctx, deckPath)
	fresh, missing := FindSlides(outDir, count, since)
	if len(missing) == 0 {
		m.logger.Info(ctx, "All %d slide images already exported for this deck in %s", count, outDir)
		return fresh, nil
	}
	if existing, _ := FindSlides(outDir, count, time.Time{}); len(existing) > len(fresh) {
		stale := len(existing) - len(fresh)
		m.logger.Warn(ctx, "Ignoring %d slide image(s) older than %s", stale, deckPath)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(outDir); err != nil {
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	m.announce(ctx, deckPath, outDir, count)

	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	ticker := time.NewTicker(m.rescan)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_, missing := FindSlides(outDir, count, since)
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, fmt.Errorf("%w after %s: %s", ErrRenderTimeout, m.timeout, describeMissing(missing))
			}
			return nil, ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil, fmt.Errorf("watcher events channel closed")
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if !strings.HasPrefix(filepath.Base(event.Name), "slide_") {
				continue
			}
			m.logger.Debug(ctx, "Slide image event: %s", event)
			if visuals, ok := m.complete(ctx, outDir, count, since); ok {
				return visuals, nil
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil, fmt.Errorf("watcher errors channel closed")
			}
			m.logger.Warn(ctx, "Watcher error: %v", err)

		case <-ticker.C:
			if visuals, ok := m.complete(ctx, outDir, count, since); ok {
				return visuals, nil
			}
		}
	}
}

// complete reports whether every slide exists, re-checking after the settle delay
func (m *manualRenderer) complete(ctx context.Context, outDir string, count int, since time.Time) ([]models.VisualResource, bool) {
	if _, missing := FindSlides(outDir, count, since); len(missing) > 0 {
		return nil, false
	}

	select {
	case <-time.After(m.settle):
	case <-ctx.Done():
		return nil, false
	}

	visuals, missing := FindSlides(outDir, count, since)
	if len(missing) > 0 {
		return nil, false
	}
	m.logger.Info(ctx, "All %d slide images found", count)
	return visuals, true
}

// deckTime is the deck's modification time; a missing deck gives the zero time
func (m *manualRenderer) deckTime(ctx context.Context, deckPath string) time.Time {
	info, err := os.Stat(deckPath)
	if err != nil {
		m.logger.Debug(ctx, "Cannot stat deck %s: %v", deckPath, err)
		return time.Time{}
	}
	return info.ModTime()
}

func (m *manualRenderer) announce(ctx context.Context, deckPath, outDir string, count int) {
	m.logger.Info(ctx, "========================================================")
	m.logger.Info(ctx, "  ACTION REQUIRED: export the slide deck to images")
	m.logger.Info(ctx, "========================================================")
	m.logger.Info(ctx, "  Deck:   %s", deckPath)
	m.logger.Info(ctx, "  Export: %d images into %s", count, outDir)
	m.logger.Info(ctx, "  Names:  %s", strings.Join(ExpectedPatterns(count), ", "))
	if m.timeout > 0 {
		m.logger.Info(ctx, "  Waiting up to %s; the pipeline continues automatically.", m.timeout)
	}
}
