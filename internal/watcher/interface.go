package watcher

import "context"

// Watcher monitors an inbox directory and hands each new document to a handler
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// DocumentHandler converts one document found in the inbox
type DocumentHandler func(ctx context.Context, documentPath string) error
