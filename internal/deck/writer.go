package deck

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/common/units"
	"github.com/gomutex/godocx/docx"
	"github.com/nguyentantai21042004/doc2video/internal/models"
)

const (
	fontName   = "Calibri"
	titleSize  = 28
	bulletSize = 18
	iconInches = 3
)

var ErrNoSlides = errors.New("deck has no slides")

// Write lays out one page per slide: title, bullets, then the placeholder icon.
// A missing icon is reported and skipped.
func (w *implWriter) Write(ctx context.Context, slides []models.SlideContent, outputPath string) error {
	if len(slides) == 0 {
		return ErrNoSlides
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	iconOK := w.iconAvailable()
	for i, slide := range slides {
		if i > 0 {
			doc.AddPageBreak()
		}

		addRun(doc.AddParagraph(""), slide.Title, true, titleSize)
		for _, b := range slide.Bullets {
			addRun(doc.AddParagraph(""), "• "+b, false, bulletSize)
		}

		if !iconOK {
			w.logger.Warn(ctx, "Slide %d: placeholder image %q not found, skipping image", i+1, w.iconPath)
			continue
		}
		if _, err := doc.AddPicture(w.iconPath, units.Inch(iconInches), units.Inch(iconInches)); err != nil {
			w.logger.Warn(ctx, "Slide %d: could not place image: %v", i+1, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("create deck dir: %w", err)
	}
	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save deck: %w", err)
	}

	w.logger.Info(ctx, "Slide deck written: %s (%d slides)", outputPath, len(slides))
	return nil
}

func (w *implWriter) iconAvailable() bool {
	if w.iconPath == "" {
		return false
	}
	info, err := os.Stat(w.iconPath)
	return err == nil && !info.IsDir()
}

func addRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
