package narration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/nguyentantai21042004/doc2video/internal/models"
)

var (
	// ErrPlaceholderFailed means not even silent audio could be written; no slide can be timed
	ErrPlaceholderFailed = errors.New("could not write silent placeholder audio")

	errEmptyAudio = errors.New("provider returned no audio")
)

// placeholderRate keeps silent placeholders small; ffmpeg resamples on assembly
const placeholderRate = 16000

// Synthesize writes narration for text to destination and reports its duration
func (s *implSynthesizer) Synthesize(ctx context.Context, text, destination string) (models.AudioResource, error) {
	res, err := s.synthesize(ctx, text, destination)
	if err == nil {
		s.logger.Debug(ctx, "Narration %s: %.2fs via %s", destination, res.DurationSeconds, s.provider.Name())
		return res, nil
	}

	if ctx.Err() != nil {
		return models.AudioResource{}, fmt.Errorf("synthesize %s: %w", destination, ctx.Err())
	}

	s.logger.Warn(ctx, "%s synthesis failed for %s (%v), writing silent placeholder", s.provider.Name(), destination, err)
	return s.placeholder(text, destination)
}

// Extension is "wav" for placeholders and WAV providers, "mp3" for MP3 providers
func (s *implSynthesizer) Extension() string {
	if f, ok := s.provider.(interface{ Format() string }); ok {
		return f.Format()
	}
	return FormatWAV
}

func (s *implSynthesizer) synthesize(ctx context.Context, text, destination string) (models.AudioResource, error) {
	if strings.TrimSpace(text) == "" {
		return models.AudioResource{}, errEmptyAudio
	}

	callCtx := ctx
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	audio, err := s.provider.Synthesize(callCtx, text)
	if err != nil {
		return models.AudioResource{}, err
	}
	if len(audio.Data) == 0 {
		return models.AudioResource{}, errEmptyAudio
	}

	duration, err := measure(audio)
	if err != nil {
		return models.AudioResource{}, fmt.Errorf("measure %s audio: %w", audio.Format, err)
	}

	if err := os.WriteFile(destination, audio.Data, 0644); err != nil {
		return models.AudioResource{}, fmt.Errorf("write audio: %w", err)
	}
	if info, err := os.Stat(destination); err != nil || info.Size() == 0 {
		return models.AudioResource{}, fmt.Errorf("audio file did not materialize at %s", destination)
	}

	return models.AudioResource{Path: destination, DurationSeconds: duration}, nil
}

// placeholder writes deterministic silence sized from the word count of text
func (s *implSynthesizer) placeholder(text, destination string) (models.AudioResource, error) {
	duration := float64(WordCount(text)) * s.opts.SecondsPerWord

	if err := WriteWAV(destination, SilentPCM(duration, placeholderRate, 1), placeholderRate, 1); err != nil {
		return models.AudioResource{}, fmt.Errorf("%w: %s: %v", ErrPlaceholderFailed, destination, err)
	}

	return models.AudioResource{Path: destination, DurationSeconds: duration, Silent: true}, nil
}

func measure(audio Audio) (float64, error) {
	switch audio.Format {
	case FormatWAV:
		return WAVDuration(audio.Data)
	case FormatMP3:
		return MP3Duration(audio.Data)
	default:
		return 0, fmt.Errorf("unsupported audio format %q", audio.Format)
	}
}

// WordCount counts whitespace-separated words
func WordCount(text string) int {
	return len(strings.Fields(text))
}
