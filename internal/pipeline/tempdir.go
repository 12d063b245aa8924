package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/nguyentantai21042004/doc2video/internal/logger"
)

// makeTempDir creates the per-run scratch directory for narration files
func (p *implPipeline) makeTempDir(ctx context.Context) (string, error) {
	pattern := p.opts.TempPrefix + "-"
	if id := logger.RunID(ctx); id != "" {
		pattern += id + "-"
	}
	if p.opts.TempDir != "" {
		if err := os.MkdirAll(p.opts.TempDir, 0755); err != nil {
			return "", fmt.Errorf("create temp root: %w", err)
		}
	}

	dir, err := os.MkdirTemp(p.opts.TempDir, pattern+"*")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	p.logger.Debug(ctx, "Created temp dir: %s", dir)
	return dir, nil
}

// removeTempDir deletes the scratch directory, logs warning if fails
func (p *implPipeline) removeTempDir(ctx context.Context, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup temp dir %s: %v", dir, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up temp dir: %s", dir)
	}
}

// removeStale deletes an output from a previous run; a missing file is fine
func removeStale(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove previous output %s: %w", path, err)
	}
	return nil
}
