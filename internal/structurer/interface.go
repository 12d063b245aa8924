package structurer

import "github.com/nguyentantai21042004/doc2video/internal/models"

// Structurer derives slide content from one extracted section.
// It is pure: the same section always yields the same content.
type Structurer interface {
	Structure(section models.RawSection) (models.SlideContent, bool)
}
