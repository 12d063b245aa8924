package narration

import (
	"context"

	"github.com/nguyentantai21042004/doc2video/internal/models"
)

// Synthesizer turns narration text into an audio file whose duration is always known.
// Provider failures are absorbed by writing a silent placeholder instead.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, destination string) (models.AudioResource, error)
	// Extension is the file extension destinations should carry, without the dot
	Extension() string
}

// Provider is a text-to-speech backend
type Provider interface {
	Name() string
	Synthesize(ctx context.Context, text string) (Audio, error)
}

// Audio is encoded speech returned by a Provider
type Audio struct {
	Data   []byte
	Format string // FormatWAV or FormatMP3
}

const (
	FormatWAV = "wav"
	FormatMP3 = "mp3"
)
