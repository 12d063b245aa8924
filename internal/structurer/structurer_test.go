package structurer

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nguyentantai21042004/doc2video/internal/models"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "periods and questions",
			text: "First one here. Is this second? Third without end",
			want: []string{"First one here.", "Is this second?", "Third without end"},
		},
		{
			name: "dotted abbreviation does not split",
			text: "Use tools e.g. hammers and saws. Then build.",
			want: []string{"Use tools e.g. hammers and saws.", "Then build."},
		},
		{
			name: "title abbreviation does not split",
			text: "We met Dr. Smith today. It went well.",
			want: []string{"We met Dr. Smith today.", "It went well."},
		},
		{
			name: "exclamation is not a boundary",
			text: "Wow! That is great. Yes.",
			want: []string{"Wow! That is great.", "Yes."},
		},
		{
			name: "empty",
			text: "   ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, SplitSentences(tt.text)); diff != "" {
				t.Errorf("SplitSentences() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStructure(t *testing.T) {
	s := New(Options{})
	section := models.RawSection{Text: "Photosynthesis: how plants turn light into sugar. " +
		"Chlorophyll absorbs red and blue light very well. " +
		"Water is split to release oxygen into the air. " +
		"Glucose is then assembled in the Calvin cycle over many steps."}

	got, ok := s.Structure(section)
	if !ok {
		t.Fatal("Structure() rejected a valid section")
	}

	want := models.SlideContent{
		Title: "Photosynthesis: how plants turn light into sugar.",
		Bullets: []string{
			"Chlorophyll absorbs red and blue light very well.",
			"Water is split to release oxygen into the air.",
		},
		Narration:   "Let's explore the concept of Photosynthesis in more detail.",
		VisualQuery: "Photosynthesis",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Structure() mismatch (-want +got):\n%s", diff)
	}
}

func TestStructureRejectsShortSections(t *testing.T) {
	s := New(Options{})
	tests := []string{
		"",
		"Only one long enough sentence is present here. Tiny one.",
		"Too short. Also short. Nope.",
	}
	for _, text := range tests {
		if _, ok := s.Structure(models.RawSection{Text: text}); ok {
			t.Errorf("Structure(%q) should be rejected", text)
		}
	}
}

func TestStructureTruncatesTitle(t *testing.T) {
	s := New(Options{})
	long := strings.TrimSpace(strings.Repeat("word ", 25)) + "."
	text := long + " This second sentence is long enough to count."

	got, ok := s.Structure(models.RawSection{Text: text})
	if !ok {
		t.Fatal("Structure() rejected a valid section")
	}
	if n := len(strings.Fields(strings.TrimSuffix(got.Title, "..."))); n != 20 {
		t.Errorf("title has %d words, want 20", n)
	}
	if !strings.HasSuffix(got.Title, "...") {
		t.Errorf("truncated title %q should end with ...", got.Title)
	}
}

func TestStructureDropsLongBullets(t *testing.T) {
	s := New(Options{})
	text := "The first sentence acts as the title here. " +
		strings.TrimSpace(strings.Repeat("long ", 16)) + ". " +
		"A short bullet sentence is kept here."

	got, ok := s.Structure(models.RawSection{Text: text})
	if !ok {
		t.Fatal("Structure() rejected a valid section")
	}
	if diff := cmp.Diff([]string{"A short bullet sentence is kept here."}, got.Bullets); diff != "" {
		t.Errorf("Bullets mismatch (-want +got):\n%s", diff)
	}
}

func TestStructureIsPure(t *testing.T) {
	s := New(Options{})
	section := models.RawSection{Text: "Gravity pulls every mass toward every other mass. " +
		"Newton described it with an inverse square law. " +
		"Einstein later explained it as curved spacetime geometry."}

	first, ok1 := s.Structure(section)
	second, ok2 := s.Structure(section)
	if ok1 != ok2 {
		t.Fatal("Structure() acceptance changed between runs")
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Structure() not idempotent (-first +second):\n%s", diff)
	}
}

func TestTopic(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Gravity: a primer", "Gravity"},
		{"No colon here", "No colon here"},
		{" Spaced : out", "Spaced"},
	}
	for _, tt := range tests {
		if got := Topic(tt.in); got != tt.want {
			t.Errorf("Topic(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
