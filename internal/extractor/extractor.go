package extractor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyentantai21042004/doc2video/internal/models"
)

// Extract reads the document and keeps its targetCount longest blocks
func (e *implExtractor) Extract(ctx context.Context, documentPath string, targetCount int) ([]models.RawSection, error) {
	var pages []string
	var err error

	switch strings.ToLower(filepath.Ext(documentPath)) {
	case ".pdf":
		pages, err = readPDF(ctx, documentPath)
	case ".txt", ".md", ".text":
		pages, err = readText(documentPath)
	default:
		return nil, fmt.Errorf("unsupported document type: %s", filepath.Ext(documentPath))
	}
	if err != nil {
		return nil, err
	}

	blocks := splitBlocks(pages)
	sections := selectSections(blocks, e.minChars, targetCount)
	e.logger.Info(ctx, "Extracted %d substantial text sections from %d pages (keeping %d)",
		countLonger(blocks, e.minChars), len(pages), len(sections))

	return sections, nil
}

// readPDF returns the plain text of every page, in page order
func readPDF(ctx context.Context, path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("read page %d: %w", i, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// readText treats each blank-line separated paragraph of a text file as a page
func readText(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.Split(text, "\n\n"), nil
}

// splitBlocks flattens line breaks inside each page and splits the whole text on blank lines
func splitBlocks(pages []string) []string {
	var all strings.Builder
	for _, p := range pages {
		all.WriteString(strings.ReplaceAll(p, "\n", " "))
		all.WriteString("\n\n")
	}

	var blocks []string
	for _, b := range strings.Split(all.String(), "\n\n") {
		if b = strings.TrimSpace(b); b != "" {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// selectSections drops short blocks and keeps the n longest; ties keep document order
func selectSections(blocks []string, minChars, n int) []models.RawSection {
	var kept []string
	for _, b := range blocks {
		if charLen(b) > minChars {
			kept = append(kept, b)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return charLen(kept[i]) > charLen(kept[j])
	})
	if n > 0 && len(kept) > n {
		kept = kept[:n]
	}

	sections := make([]models.RawSection, len(kept))
	for i, b := range kept {
		sections[i] = models.RawSection{Text: b}
	}
	return sections
}

func countLonger(blocks []string, minChars int) int {
	n := 0
	for _, b := range blocks {
		if charLen(b) > minChars {
			n++
		}
	}
	return n
}

// charLen counts runes, not bytes
func charLen(s string) int {
	return utf8.RuneCountInString(s)
}
