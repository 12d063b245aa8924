package watcher

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/doc2video/internal/logger"
)

// DefaultExtensions are the document types the pipeline can read
var DefaultExtensions = []string{".pdf", ".txt", ".md"}

// Options tune how the inbox is watched
type Options struct {
	Extensions    []string
	MaxConcurrent int
	// Settle is how long to wait after a create event before handing the file over
	Settle time.Duration
}

// New creates a Watcher over inputDir. Each document is handled at most once at a time,
// with at most MaxConcurrent documents in flight.
func New(inputDir string, handler DocumentHandler, opts Options, log logger.Logger) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsw.Add(inputDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 1
	}
	if opts.Settle <= 0 {
		opts.Settle = 500 * time.Millisecond
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions
	}
	exts := make(map[string]bool, len(opts.Extensions))
	for _, e := range opts.Extensions {
		exts[strings.ToLower(e)] = true
	}

	return &implWatcher{
		inputDir:   inputDir,
		handler:    handler,
		logger:     log,
		watcher:    fsw,
		extensions: exts,
		settle:     opts.Settle,
		semaphore:  make(chan struct{}, opts.MaxConcurrent),
		inFlight:   make(map[string]bool),
	}, nil
}
