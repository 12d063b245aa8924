package deck

import (
	"context"

	"github.com/nguyentantai21042004/doc2video/internal/models"
)

// Writer persists the slide deck that the rendering step turns into images
type Writer interface {
	Write(ctx context.Context, slides []models.SlideContent, outputPath string) error
}
