package narration

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"google.golang.org/genai"
)

// Gemini TTS answers with raw 16-bit mono PCM, e.g. "audio/L16;codec=pcm;rate=24000"
const geminiDefaultRate = 24000

type generateFunc func(ctx context.Context, apiKey, model, text string, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

type geminiProvider struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	model      string
	voice      string
	generate   generateFunc
}

func newGeminiProvider(apiKeys []string, model, voice string) *geminiProvider {
	return &geminiProvider{
		apiKeys:  apiKeys,
		model:    model,
		voice:    voice,
		generate: generateWithGenAI,
	}
}

func (g *geminiProvider) Name() string   { return "gemini" }
func (g *geminiProvider) Format() string { return FormatWAV }

// Synthesize asks Gemini for speech, rotating API keys on 429 / quota errors
func (g *geminiProvider) Synthesize(ctx context.Context, text string) (Audio, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: g.voice},
			},
		},
	}

	var lastErr error
	for range len(g.apiKeys) {
		key, idx := g.key()

		result, err := g.generate(ctx, key, g.model, text, cfg)
		if err != nil {
			if isRateLimited(err) {
				g.rotateFrom(idx)
				lastErr = err
				continue
			}
			return Audio{}, fmt.Errorf("generate speech: %w", err)
		}

		pcm, rate, err := inlineAudio(result)
		if err != nil {
			return Audio{}, err
		}
		return Audio{Data: EncodeWAV(pcm, rate, 1), Format: FormatWAV}, nil
	}

	return Audio{}, fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *geminiProvider) key() (string, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.apiKeys[g.currentKey], g.currentKey
}

// rotateFrom advances past idx unless a concurrent caller already did
func (g *geminiProvider) rotateFrom(idx int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.currentKey == idx {
		g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
	}
}

func generateWithGenAI(ctx context.Context, apiKey, model, text string, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return client.Models.GenerateContent(ctx, model, genai.Text(text), cfg)
}

// inlineAudio concatenates the PCM parts of the first candidate
func inlineAudio(result *genai.GenerateContentResponse) ([]byte, int, error) {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return nil, 0, errors.New("empty response from Gemini")
	}

	var pcm []byte
	rate := 0
	for _, part := range result.Candidates[0].Content.Parts {
		if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
			continue
		}
		if rate == 0 {
			rate = pcmRate(part.InlineData.MIMEType)
		}
		pcm = append(pcm, part.InlineData.Data...)
	}

	if len(pcm) == 0 {
		return nil, 0, errors.New("Gemini response carried no audio")
	}
	return pcm, rate, nil
}

// pcmRate reads the rate parameter of an audio/L16 MIME type
func pcmRate(mimeType string) int {
	for _, param := range strings.Split(mimeType, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(param), "=")
		if ok && strings.EqualFold(k, "rate") {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				return n
			}
		}
	}
	return geminiDefaultRate
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
