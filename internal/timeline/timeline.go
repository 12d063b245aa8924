package timeline

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyTimeline = errors.New("timeline needs at least one clip")
	ErrCountMismatch = errors.New("slide, visual and audio counts differ")
)

// Timeline is the ordered, gapless concatenation of slide clips with one fade at each end
type Timeline struct {
	Clips   []SlideClip
	FadeIn  float64
	FadeOut float64
	FPS     int
}

// Options are the whole-timeline settings applied by Assemble
type Options struct {
	FadeIn  float64
	FadeOut float64
	FPS     int
}

// CheckCounts enforces one visual and one narration per slide
func CheckCounts(slides, visuals, audio int) error {
	if slides != visuals || visuals != audio {
		return fmt.Errorf("%w: %d slides, %d visuals, %d audio", ErrCountMismatch, slides, visuals, audio)
	}
	return nil
}

// Assemble orders clips into a Timeline. Fades overlay the content and never change its length;
// when the timeline is shorter than both fades together they are shrunk proportionally.
func Assemble(clips []SlideClip, opts Options) (Timeline, error) {
	if len(clips) == 0 {
		return Timeline{}, ErrEmptyTimeline
	}
	if opts.FPS <= 0 {
		return Timeline{}, fmt.Errorf("fps must be positive, got %d", opts.FPS)
	}

	total := 0.0
	for i, c := range clips {
		if c.Duration <= 0 {
			return Timeline{}, fmt.Errorf("clip %d: %w", i+1, ErrInvalidDuration)
		}
		total += c.Duration
	}

	fadeIn, fadeOut := opts.FadeIn, opts.FadeOut
	if sum := fadeIn + fadeOut; sum > total {
		ratio := total / sum
		fadeIn *= ratio
		fadeOut *= ratio
	}

	owned := make([]SlideClip, len(clips))
	copy(owned, clips)

	return Timeline{
		Clips:   owned,
		FadeIn:  fadeIn,
		FadeOut: fadeOut,
		FPS:     opts.FPS,
	}, nil
}

// Duration is the sum of clip durations
func (t Timeline) Duration() float64 {
	total := 0.0
	for _, c := range t.Clips {
		total += c.Duration
	}
	return total
}

// Offsets returns each clip's start time; clip i+1 starts where clip i ends
func (t Timeline) Offsets() []float64 {
	offsets := make([]float64, len(t.Clips))
	at := 0.0
	for i, c := range t.Clips {
		offsets[i] = at
		at += c.Duration
	}
	return offsets
}

// FadeOutStart is where the closing fade begins on the composite
func (t Timeline) FadeOutStart() float64 {
	if st := t.Duration() - t.FadeOut; st > 0 {
		return st
	}
	return 0
}
