package models

// AudioResource is a narration file on disk together with its measured length
type AudioResource struct {
	Path            string  `json:"path"`
	DurationSeconds float64 `json:"duration_seconds"`
	// Silent marks a placeholder written because synthesis failed
	Silent bool `json:"silent,omitempty"`
}

// VisualResource is a pre-rendered slide image. Index is 1-based, matching slide_<Index>.<ext>.
type VisualResource struct {
	Path  string `json:"path"`
	Index int    `json:"index"`
}
