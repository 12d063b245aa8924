package deck

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/doc2video/internal/logger"
	"github.com/nguyentantai21042004/doc2video/internal/models"
)

func documentXML(t *testing.T, path string) string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open docx: %v", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatal(err)
		}
		return string(data)
	}
	t.Fatal("word/document.xml not found")
	return ""
}

func TestWriteDeck(t *testing.T) {
	var buf bytes.Buffer
	w := New(filepath.Join(t.TempDir(), "missing.png"), logger.NewWithWriter("info", &buf))

	slides := []models.SlideContent{
		{Title: "Gravity basics", Bullets: []string{"Mass attracts mass."}},
		{Title: "Orbits", Bullets: []string{"Falling around.", "Never landing."}},
	}
	out := filepath.Join(t.TempDir(), "out", "slides.docx")

	if err := w.Write(context.Background(), slides, out); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	body := documentXML(t, out)
	for _, want := range []string{"Gravity basics", "Orbits", "• Mass attracts mass.", "• Never landing."} {
		if !strings.Contains(body, want) {
			t.Errorf("document missing %q", want)
		}
	}

	// missing icon is reported per slide, not fatal
	if n := strings.Count(buf.String(), "placeholder image"); n != 2 {
		t.Errorf("got %d placeholder warnings, want 2\n%s", n, buf.String())
	}
}

func TestWriteDeckNoSlides(t *testing.T) {
	w := New("", logger.Nop())
	err := w.Write(context.Background(), nil, filepath.Join(t.TempDir(), "slides.docx"))
	if !errors.Is(err, ErrNoSlides) {
		t.Errorf("Write() error = %v, want ErrNoSlides", err)
	}
}
