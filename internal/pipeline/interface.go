package pipeline

import "context"

// Pipeline converts one document into a slide deck and a narrated video
type Pipeline interface {
	// Run writes the deck and the video into outDir. On failure the error is a *StageError
	// and the Result records which stage failed.
	Run(ctx context.Context, documentPath, outDir string) (Result, error)
}
