package render

import (
	"context"

	"github.com/nguyentantai21042004/doc2video/internal/models"
)

// SlideRenderer turns a written deck into one image per slide, named slide_<i>.<ext> in outDir
type SlideRenderer interface {
	Render(ctx context.Context, deckPath, outDir string, count int) ([]models.VisualResource, error)
}
