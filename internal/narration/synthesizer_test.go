package narration

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/nguyentantai21042004/doc2video/internal/logger"
)

type fakeProvider struct {
	audio Audio
	err   error
	calls int
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Synthesize(ctx context.Context, text string) (Audio, error) {
	f.calls++
	return f.audio, f.err
}

func TestSynthesizeNormalPath(t *testing.T) {
	pcm := SilentPCM(2.0, 24000, 1)
	provider := &fakeProvider{audio: Audio{Data: EncodeWAV(pcm, 24000, 1), Format: FormatWAV}}
	s := New(provider, Options{SecondsPerWord: 0.5}, logger.Nop())

	dest := filepath.Join(t.TempDir(), "audio_0.wav")
	res, err := s.Synthesize(context.Background(), "hello there world", dest)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if res.Silent {
		t.Error("expected real audio, got placeholder")
	}
	if math.Abs(res.DurationSeconds-2.0) > 1e-9 {
		t.Errorf("DurationSeconds = %v, want 2.0", res.DurationSeconds)
	}
	if res.Path != dest {
		t.Errorf("Path = %q, want %q", res.Path, dest)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Errorf("audio not written: %v", err)
	}
}

func TestSynthesizeFallbackDuration(t *testing.T) {
	tests := []struct {
		name           string
		provider       Provider
		text           string
		secondsPerWord float64
		want           float64
	}{
		{"provider error", &fakeProvider{err: errors.New("offline")}, "one two three four", 0.5, 2.0},
		{"empty audio", &fakeProvider{audio: Audio{Format: FormatWAV}}, "one two", 0.5, 1.0},
		{"unmeasurable audio", &fakeProvider{audio: Audio{Data: []byte("garbage"), Format: FormatWAV}}, "a b c", 0.5, 1.5},
		{"silent provider", silentProvider{}, "Let's explore the concept of gravity in more detail.", 0.5, 4.5},
		{"configured per-word constant", &fakeProvider{err: errors.New("offline")}, "a b c d", 0.25, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.provider, Options{SecondsPerWord: tt.secondsPerWord}, logger.Nop())
			dest := filepath.Join(t.TempDir(), "audio.wav")

			res, err := s.Synthesize(context.Background(), tt.text, dest)
			if err != nil {
				t.Fatalf("Synthesize() error = %v", err)
			}
			if !res.Silent {
				t.Error("expected placeholder")
			}
			if math.Abs(res.DurationSeconds-tt.want) > 1e-9 {
				t.Errorf("DurationSeconds = %v, want %v", res.DurationSeconds, tt.want)
			}

			data, err := os.ReadFile(dest)
			if err != nil {
				t.Fatalf("placeholder not written: %v", err)
			}
			got, err := WAVDuration(data)
			if err != nil {
				t.Fatalf("placeholder is not a valid WAV: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-3 {
				t.Errorf("placeholder file lasts %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSynthesizeEmptyTextSkipsProvider(t *testing.T) {
	provider := &fakeProvider{}
	s := New(provider, Options{}, logger.Nop())

	res, err := s.Synthesize(context.Background(), "   ", filepath.Join(t.TempDir(), "a.wav"))
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if provider.calls != 0 {
		t.Errorf("provider called %d times for empty text", provider.calls)
	}
	if !res.Silent || res.DurationSeconds != 0 {
		t.Errorf("got %+v, want zero-length placeholder", res)
	}
}

func TestSynthesizePlaceholderFailureIsFatal(t *testing.T) {
	s := New(&fakeProvider{err: errors.New("offline")}, Options{}, logger.Nop())
	dest := filepath.Join(t.TempDir(), "missing-dir", "audio.wav")

	_, err := s.Synthesize(context.Background(), "some words", dest)
	if !errors.Is(err, ErrPlaceholderFailed) {
		t.Errorf("Synthesize() error = %v, want ErrPlaceholderFailed", err)
	}
}

func TestSynthesizeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(&fakeProvider{err: context.Canceled}, Options{}, logger.Nop())
	dest := filepath.Join(t.TempDir(), "audio.wav")

	if _, err := s.Synthesize(ctx, "some words", dest); !errors.Is(err, context.Canceled) {
		t.Errorf("Synthesize() error = %v, want context.Canceled", err)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("no file should be written for a canceled run")
	}
}

func TestExtension(t *testing.T) {
	if got := New(silentProvider{}, Options{}, logger.Nop()).Extension(); got != FormatWAV {
		t.Errorf("silent Extension() = %q, want wav", got)
	}
	if got := New(newGTranslateProvider(nil, "en"), Options{}, logger.Nop()).Extension(); got != FormatMP3 {
		t.Errorf("gtranslate Extension() = %q, want mp3", got)
	}
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"one", 1},
		{"  spaced   out\nwords\t here ", 4},
	}
	for _, tt := range tests {
		if got := WordCount(tt.text); got != tt.want {
			t.Errorf("WordCount(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}
