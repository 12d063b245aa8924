package timeline

import (
	"errors"
	"fmt"

	"github.com/nguyentantai21042004/doc2video/internal/models"
)

// ErrInvalidDuration is returned when a clip would not have a strictly positive length
var ErrInvalidDuration = errors.New("clip duration must be positive")

// SlideClip is one slide image held on screen for its narration plus a trailing pad
type SlideClip struct {
	Visual     models.VisualResource
	Audio      models.AudioResource
	Duration   float64
	ZoomFactor float64
}

// BuildClip times a visual to its audio: Duration = audio length + pad.
// pad must be positive so a zero-length narration still yields a visible slide.
func BuildClip(visual models.VisualResource, audio models.AudioResource, pad, zoom float64) (SlideClip, error) {
	if audio.DurationSeconds < 0 {
		return SlideClip{}, fmt.Errorf("%w: negative audio duration %.3fs for %s", ErrInvalidDuration, audio.DurationSeconds, audio.Path)
	}
	duration := audio.DurationSeconds + pad
	if duration <= 0 {
		return SlideClip{}, fmt.Errorf("%w: got %.3fs (pad %.3fs)", ErrInvalidDuration, duration, pad)
	}
	return SlideClip{
		Visual:     visual,
		Audio:      audio,
		Duration:   duration,
		ZoomFactor: zoom,
	}, nil
}

// Scale is the zoom-in applied at elapsed time t within the clip.
// It rises linearly from 1 at t=0 to 1+ZoomFactor at t=Duration; t outside the clip is clamped.
func (c SlideClip) Scale(t float64) float64 {
	if c.Duration <= 0 {
		return 1
	}
	if t < 0 {
		t = 0
	}
	if t > c.Duration {
		t = c.Duration
	}
	return 1 + c.ZoomFactor*(t/c.Duration)
}

// ZoomExpr renders Scale as a zoompan expression over the output frame number,
// so frame n of the encoded clip shows Scale(n/fps).
func (c SlideClip) ZoomExpr(fps int) string {
	return fmt.Sprintf("1+%.6f*on/%d", c.ZoomFactor, c.Frames(fps))
}

// Frames is the number of frames the clip occupies at the given rate
func (c SlideClip) Frames(fps int) int {
	return int(c.Duration*float64(fps) + 0.5)
}
