package narration

import (
	"fmt"
	"net/http"
	"time"

	"github.com/nguyentantai21042004/doc2video/internal/config"
	"github.com/nguyentantai21042004/doc2video/internal/logger"
)

// Options tune the adapter around a Provider
type Options struct {
	// SecondsPerWord sizes the silent placeholder: words * SecondsPerWord
	SecondsPerWord float64
	// Timeout bounds one provider call
	Timeout time.Duration
}

type implSynthesizer struct {
	provider Provider
	opts     Options
	logger   logger.Logger
}

// New wraps a Provider with duration measurement and the silent fallback
func New(provider Provider, opts Options, log logger.Logger) Synthesizer {
	if opts.SecondsPerWord <= 0 {
		opts.SecondsPerWord = 0.5
	}
	return &implSynthesizer{
		provider: provider,
		opts:     opts,
		logger:   log,
	}
}

// NewProvider builds the Provider named by cfg.Provider
func NewProvider(cfg config.NarrationConfig, client *http.Client) (Provider, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		if len(cfg.APIKeys) == 0 {
			return nil, fmt.Errorf("gemini provider needs at least one API key")
		}
		return newGeminiProvider(cfg.APIKeys, cfg.Model, cfg.Voice), nil
	case config.ProviderGTranslate:
		return newGTranslateProvider(client, cfg.Language), nil
	case config.ProviderSilent:
		return silentProvider{}, nil
	default:
		return nil, fmt.Errorf("unknown narration provider %q", cfg.Provider)
	}
}
