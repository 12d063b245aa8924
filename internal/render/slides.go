package render

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nguyentantai21042004/doc2video/internal/models"
)

// ErrRenderTimeout is returned when slide images do not all appear before the deadline
var ErrRenderTimeout = errors.New("timed out waiting for slide images")

// ImageExtensions are tried in order for each slide
var ImageExtensions = []string{".png", ".jpg", ".jpeg"}

// SlideName is the base name, without extension, of slide index (1-based)
func SlideName(index int) string {
	return "slide_" + strconv.Itoa(index)
}

// ExpectedPatterns lists the names an operator must produce, e.g. "slide_1.{png,jpg,jpeg}"
func ExpectedPatterns(count int) []string {
	exts := make([]string, len(ImageExtensions))
	for i, e := range ImageExtensions {
		exts[i] = strings.TrimPrefix(e, ".")
	}
	suffix := ".{" + strings.Join(exts, ",") + "}"

	names := make([]string, count)
	for i := range names {
		names[i] = SlideName(i+1) + suffix
	}
	return names
}

// FindSlides looks up slide_1..slide_count in dir. Images modified before since are stale and
// count as missing; a zero since accepts any image. visuals is only complete when missing is empty.
func FindSlides(dir string, count int, since time.Time) (visuals []models.VisualResource, missing []int) {
	for i := 1; i <= count; i++ {
		path, ok := findSlide(dir, i, since)
		if !ok {
			missing = append(missing, i)
			continue
		}
		visuals = append(visuals, models.VisualResource{Path: path, Index: i})
	}
	return visuals, missing
}

func findSlide(dir string, index int, since time.Time) (string, bool) {
	base := SlideName(index)
	for _, ext := range ImageExtensions {
		path := filepath.Join(dir, base+ext)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() || info.Size() == 0 {
			continue
		}
		if info.ModTime().Before(since) {
			continue
		}
		return path, true
	}
	return "", false
}

func describeMissing(missing []int) string {
	names := make([]string, len(missing))
	for i, m := range missing {
		names[i] = SlideName(m) + ".*"
	}
	return strings.Join(names, ", ")
}
