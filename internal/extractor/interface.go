package extractor

import (
	"context"

	"github.com/nguyentantai21042004/doc2video/internal/models"
)

// Extractor pulls the most substantial text sections out of a document
type Extractor interface {
	// Extract returns at most targetCount sections, longest first.
	// An empty result means nothing usable was found.
	Extract(ctx context.Context, documentPath string, targetCount int) ([]models.RawSection, error)
}
