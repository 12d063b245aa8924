package narration

import (
	"context"
	"errors"
)

// silentProvider never produces speech, so every slide gets the placeholder.
// Used offline and for dry runs.
type silentProvider struct{}

func (silentProvider) Name() string { return "silent" }

func (silentProvider) Synthesize(ctx context.Context, text string) (Audio, error) {
	return Audio{}, errors.New("silent provider produces no speech")
}
