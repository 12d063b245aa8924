package timeline

import (
	"errors"
	"math"
	"testing"

	"github.com/nguyentantai21042004/doc2video/internal/models"
)

const eps = 1e-9

func testClip(t *testing.T, audioSeconds float64) SlideClip {
	t.Helper()
	c, err := BuildClip(
		models.VisualResource{Path: "slide_1.png", Index: 1},
		models.AudioResource{Path: "audio_0.wav", DurationSeconds: audioSeconds},
		1.0, 0.1,
	)
	if err != nil {
		t.Fatalf("BuildClip() error = %v", err)
	}
	return c
}

func TestBuildClipDuration(t *testing.T) {
	tests := []struct {
		name  string
		audio float64
		pad   float64
		want  float64
	}{
		{"typical narration", 4.5, 1.0, 5.5},
		{"zero-length narration keeps the pad", 0, 1.0, 1.0},
		{"custom pad", 2.0, 0.25, 2.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := BuildClip(models.VisualResource{}, models.AudioResource{DurationSeconds: tt.audio}, tt.pad, 0.1)
			if err != nil {
				t.Fatalf("BuildClip() error = %v", err)
			}
			if math.Abs(c.Duration-tt.want) > eps {
				t.Errorf("Duration = %v, want %v", c.Duration, tt.want)
			}
		})
	}
}

func TestBuildClipRejectsNonPositive(t *testing.T) {
	_, err := BuildClip(models.VisualResource{}, models.AudioResource{DurationSeconds: 0}, 0, 0.1)
	if !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("BuildClip() error = %v, want ErrInvalidDuration", err)
	}

	_, err = BuildClip(models.VisualResource{}, models.AudioResource{DurationSeconds: -2}, 1, 0.1)
	if !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("BuildClip() error = %v, want ErrInvalidDuration for negative audio", err)
	}
}

func TestScaleEndpoints(t *testing.T) {
	c := testClip(t, 3)

	if got := c.Scale(0); math.Abs(got-1.0) > eps {
		t.Errorf("Scale(0) = %v, want 1.0", got)
	}
	if got := c.Scale(c.Duration); math.Abs(got-1.1) > eps {
		t.Errorf("Scale(duration) = %v, want 1.1", got)
	}
	if got := c.Scale(c.Duration / 2); math.Abs(got-1.05) > eps {
		t.Errorf("Scale(duration/2) = %v, want 1.05", got)
	}
}

func TestScaleMonotonic(t *testing.T) {
	c := testClip(t, 7.3)

	prev := c.Scale(0)
	for i := 1; i <= 1000; i++ {
		x := c.Duration * float64(i) / 1000
		val := c.Scale(x)
		if val < prev {
			t.Fatalf("Scale not monotonic: f(%v)=%v < %v", x, val, prev)
		}
		prev = val
	}
}

func TestScaleStateless(t *testing.T) {
	c := testClip(t, 2)

	// out-of-order evaluation must not change results
	a := c.Scale(1.5)
	_ = c.Scale(0.1)
	_ = c.Scale(2.9)
	if b := c.Scale(1.5); a != b {
		t.Errorf("Scale(1.5) changed between calls: %v then %v", a, b)
	}
}

func TestScaleClamped(t *testing.T) {
	c := testClip(t, 2)

	if got := c.Scale(-1); got != 1 {
		t.Errorf("Scale(-1) = %v, want 1", got)
	}
	if got := c.Scale(100); math.Abs(got-1.1) > eps {
		t.Errorf("Scale(100) = %v, want 1.1", got)
	}
}

func TestZoomExprAndFrames(t *testing.T) {
	c := testClip(t, 1) // 2s clip

	if got, want := c.ZoomExpr(24), "1+0.100000*on/48"; got != want {
		t.Errorf("ZoomExpr(24) = %q, want %q", got, want)
	}
	if got := c.Frames(24); got != 48 {
		t.Errorf("Frames(24) = %d, want 48", got)
	}
}
