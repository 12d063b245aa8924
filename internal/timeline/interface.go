package timeline

import "context"

// Renderer encodes an assembled Timeline into a single video file
type Renderer interface {
	Render(ctx context.Context, tl Timeline, outputPath string) error
}
