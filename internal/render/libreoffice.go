package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/doc2video/internal/logger"
	"github.com/nguyentantai21042004/doc2video/internal/models"
	"github.com/nguyentantai21042004/doc2video/pkg/executor"
)

// LibreOfficeOptions locate the converters
type LibreOfficeOptions struct {
	SofficeBinary  string
	PdftoppmBinary string
	DPI            int
}

type libreOfficeRenderer struct {
	opts     LibreOfficeOptions
	executor executor.Executor
	logger   logger.Logger
}

// NewLibreOffice creates a SlideRenderer that converts the deck to PDF with soffice
// and rasterizes each page with pdftoppm. Every page becomes one slide image; callers
// compare the returned count with the slide count.
func NewLibreOffice(opts LibreOfficeOptions, exec executor.Executor, log logger.Logger) SlideRenderer {
	if opts.SofficeBinary == "" {
		opts.SofficeBinary = "soffice"
	}
	if opts.PdftoppmBinary == "" {
		opts.PdftoppmBinary = "pdftoppm"
	}
	if opts.DPI <= 0 {
		opts.DPI = 150
	}
	return &libreOfficeRenderer{
		opts:     opts,
		executor: exec,
		logger:   log,
	}
}

func (r *libreOfficeRenderer) Render(ctx context.Context, deckPath, outDir string, count int) ([]models.VisualResource, error) {
	workDir, err := os.MkdirTemp("", "deck-render-*")
	if err != nil {
		return nil, fmt.Errorf("create render dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	absDeck, err := filepath.Abs(deckPath)
	if err != nil {
		return nil, fmt.Errorf("resolve deck path: %w", err)
	}

	r.logger.Info(ctx, "Converting deck to PDF: %s", deckPath)
	if _, err := r.executor.ExecuteInDir(ctx, workDir, r.opts.SofficeBinary,
		"--headless", "--convert-to", "pdf", "--outdir", workDir, absDeck); err != nil {
		return nil, fmt.Errorf("soffice convert: %w", err)
	}

	pdfPath := filepath.Join(workDir, strings.TrimSuffix(filepath.Base(deckPath), filepath.Ext(deckPath))+".pdf")
	if _, err := os.Stat(pdfPath); err != nil {
		return nil, fmt.Errorf("soffice produced no pdf: %w", err)
	}

	r.logger.Info(ctx, "Rasterizing pages at %d dpi", r.opts.DPI)
	if _, err := r.executor.ExecuteInDir(ctx, workDir, r.opts.PdftoppmBinary,
		"-png", "-r", strconv.Itoa(r.opts.DPI), pdfPath, filepath.Join(workDir, "page")); err != nil {
		return nil, fmt.Errorf("pdftoppm: %w", err)
	}

	pages, err := pageImages(workDir)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no pages from %s", pdfPath)
	}
	// mismatches surface in the caller's slide count check
	if len(pages) != count {
		r.logger.Warn(ctx, "Deck rendered to %d pages, expected %d slides", len(pages), count)
	}

	visuals := make([]models.VisualResource, len(pages))
	for i, page := range pages {
		dest := filepath.Join(outDir, SlideName(i+1)+".png")
		if err := moveFile(page, dest); err != nil {
			return nil, fmt.Errorf("place slide %d: %w", i+1, err)
		}
		visuals[i] = models.VisualResource{Path: dest, Index: i + 1}
	}

	r.logger.Info(ctx, "Rendered %d slide images into %s", len(visuals), outDir)
	return visuals, nil
}

// pageImages returns pdftoppm's page-N.png files in page order.
// pdftoppm zero-pads N to the width of the page count, so sort numerically.
func pageImages(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "page-*.png"))
	if err != nil {
		return nil, err
	}
	sort.Slice(matches, func(i, j int) bool {
		return pageNumber(matches[i]) < pageNumber(matches[j])
	})
	return matches, nil
}

func pageNumber(path string) int {
	base := strings.TrimSuffix(filepath.Base(path), ".png")
	n, _ := strconv.Atoi(strings.TrimPrefix(base, "page-"))
	return n
}

// moveFile renames, falling back to copy+remove across filesystems
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("write destination: %w", err)
	}
	return os.Remove(src)
}
