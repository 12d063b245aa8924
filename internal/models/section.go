package models

// RawSection is one block of text pulled out of the source document, in extraction order
type RawSection struct {
	Text string `json:"text"`
}

// SlideContent is the structured content of one slide. It is never mutated after creation.
type SlideContent struct {
	Title       string   `json:"title"`
	Bullets     []string `json:"bullets"`
	Narration   string   `json:"narration"`
	VisualQuery string   `json:"visual_query,omitempty"`
}
