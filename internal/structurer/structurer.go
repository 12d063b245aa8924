package structurer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/nguyentantai21042004/doc2video/internal/models"
)

const narrationTemplate = "Let's explore the concept of %s in more detail."

// Structure picks a title, up to MaxBullets short bullets and a narration line.
// Sections with fewer than MinSentences usable sentences are rejected.
func (s *implStructurer) Structure(section models.RawSection) (models.SlideContent, bool) {
	var sentences []string
	for _, sent := range SplitSentences(section.Text) {
		if len(strings.Fields(sent)) > s.opts.MinSentenceWords {
			sentences = append(sentences, sent)
		}
	}
	if len(sentences) < s.opts.MinSentences {
		return models.SlideContent{}, false
	}

	title := sentences[0]
	if words := strings.Fields(title); len(words) > s.opts.TitleMaxWords {
		title = strings.Join(words[:s.opts.TitleMaxWords], " ") + "..."
	}

	bullets := []string{}
	end := min(1+s.opts.MaxBullets, len(sentences))
	for _, sent := range sentences[1:end] {
		if len(strings.Fields(sent)) < s.opts.BulletMaxWords {
			bullets = append(bullets, sent)
		}
	}

	topic := Topic(title)
	return models.SlideContent{
		Title:       title,
		Bullets:     bullets,
		Narration:   fmt.Sprintf(narrationTemplate, topic),
		VisualQuery: topic,
	}, true
}

// Topic is the part of a title before its first colon
func Topic(title string) string {
	before, _, _ := strings.Cut(title, ":")
	return strings.TrimSpace(before)
}

// SplitSentences splits after '.' or '?' followed by whitespace, except after
// dotted abbreviations ("e.g.", "i.e.") and capitalized short forms ("Mr.", "Dr.").
// Returned sentences are trimmed and never empty.
func SplitSentences(text string) []string {
	runes := []rune(strings.TrimSpace(text))

	var out []string
	start := 0
	for i := 1; i < len(runes); i++ {
		if !unicode.IsSpace(runes[i]) {
			continue
		}
		prev := runes[i-1]
		if prev != '.' && prev != '?' {
			continue
		}
		if isAbbreviation(runes[:i]) {
			continue
		}
		if sent := strings.TrimSpace(string(runes[start:i])); sent != "" {
			out = append(out, sent)
		}
		start = i + 1
	}
	if sent := strings.TrimSpace(string(runes[start:])); sent != "" {
		out = append(out, sent)
	}
	return out
}

// isAbbreviation inspects the characters just before a candidate break
func isAbbreviation(before []rune) bool {
	n := len(before)
	// w.w. as in "e.g." or "U.S."
	if n >= 4 && isWord(before[n-4]) && before[n-3] == '.' && isWord(before[n-2]) {
		return true
	}
	// Xx. as in "Mr." or "Dr."
	if n >= 3 && unicode.IsUpper(before[n-3]) && unicode.IsLower(before[n-2]) && before[n-1] == '.' {
		return true
	}
	return false
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
