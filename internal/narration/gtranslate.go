package narration

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	gtranslateEndpoint = "https://translate.google.com/translate_tts"
	// the endpoint rejects longer queries
	gtranslateMaxChunk = 100
	gtranslateUA       = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// gtranslateProvider speaks through Google Translate's public TTS endpoint, one MP3 per chunk
type gtranslateProvider struct {
	client   *http.Client
	endpoint string
	lang     string
}

func newGTranslateProvider(client *http.Client, lang string) *gtranslateProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &gtranslateProvider{
		client:   client,
		endpoint: gtranslateEndpoint,
		lang:     lang,
	}
}

func (p *gtranslateProvider) Name() string   { return "gtranslate" }
func (p *gtranslateProvider) Format() string { return FormatMP3 }

// Synthesize fetches each chunk in order; MP3 frames concatenate into one playable stream
func (p *gtranslateProvider) Synthesize(ctx context.Context, text string) (Audio, error) {
	chunks := splitChunks(text, gtranslateMaxChunk)
	if len(chunks) == 0 {
		return Audio{}, errEmptyAudio
	}

	var out []byte
	for i, chunk := range chunks {
		data, err := p.fetch(ctx, chunk, i, len(chunks))
		if err != nil {
			return Audio{}, fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
		out = append(out, data...)
	}

	return Audio{Data: out, Format: FormatMP3}, nil
}

func (p *gtranslateProvider) fetch(ctx context.Context, chunk string, idx, total int) ([]byte, error) {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("q", chunk)
	q.Set("tl", p.lang)
	q.Set("client", "tw-ob")
	q.Set("total", strconv.Itoa(total))
	q.Set("idx", strconv.Itoa(idx))
	q.Set("textlen", strconv.Itoa(len([]rune(chunk))))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", gtranslateUA)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("tts error: %s - %s", resp.Status, strings.TrimSpace(string(body)))
	}

	return io.ReadAll(resp.Body)
}

// splitChunks breaks text on word boundaries into pieces of at most max runes.
// A single word longer than max is cut hard.
func splitChunks(text string, max int) []string {
	var chunks []string
	var cur []rune

	flush := func() {
		if len(cur) > 0 {
			chunks = append(chunks, string(cur))
			cur = cur[:0]
		}
	}

	for _, word := range strings.Fields(text) {
		w := []rune(word)
		for len(w) > max {
			flush()
			chunks = append(chunks, string(w[:max]))
			w = w[max:]
		}
		if len(cur) > 0 && len(cur)+1+len(w) > max {
			flush()
		}
		if len(cur) > 0 {
			cur = append(cur, ' ')
		}
		cur = append(cur, w...)
	}
	flush()

	return chunks
}
