package pipeline

import (
	"github.com/nguyentantai21042004/doc2video/internal/config"
	"github.com/nguyentantai21042004/doc2video/internal/deck"
	"github.com/nguyentantai21042004/doc2video/internal/extractor"
	"github.com/nguyentantai21042004/doc2video/internal/logger"
	"github.com/nguyentantai21042004/doc2video/internal/narration"
	"github.com/nguyentantai21042004/doc2video/internal/render"
	"github.com/nguyentantai21042004/doc2video/internal/structurer"
	"github.com/nguyentantai21042004/doc2video/internal/timeline"
)

// Deps are the collaborators a Pipeline drives
type Deps struct {
	Extractor   extractor.Extractor
	Structurer  structurer.Structurer
	Deck        deck.Writer
	Slides      render.SlideRenderer
	Synthesizer narration.Synthesizer
	Video       timeline.Renderer
}

// Options carry every tunable the stages need
type Options struct {
	TargetSections int

	DeckName   string
	VideoName  string
	TempDir    string
	TempPrefix string

	PadSeconds float64
	ZoomFactor float64
	FadeIn     float64
	FadeOut    float64
	FPS        int

	SynthesisWorkers int
}

// OptionsFromConfig maps a validated Config onto Options
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		TargetSections:   cfg.Extraction.TargetSections,
		DeckName:         cfg.Outputs.DeckName,
		VideoName:        cfg.Outputs.VideoName,
		TempDir:          cfg.Paths.Temp,
		TempPrefix:       cfg.Outputs.TempPrefix,
		PadSeconds:       cfg.Timeline.PadSeconds,
		ZoomFactor:       cfg.Timeline.ZoomFactor,
		FadeIn:           cfg.Timeline.FadeIn,
		FadeOut:          cfg.Timeline.FadeOut,
		FPS:              cfg.Timeline.FPS,
		SynthesisWorkers: cfg.Performance.SynthesisWorkers,
	}
}

type implPipeline struct {
	deps   Deps
	opts   Options
	logger logger.Logger
}

// New creates a Pipeline
func New(deps Deps, opts Options, log logger.Logger) Pipeline {
	if opts.DeckName == "" {
		opts.DeckName = "slides.docx"
	}
	if opts.VideoName == "" {
		opts.VideoName = "video.mp4"
	}
	if opts.TempPrefix == "" {
		opts.TempPrefix = "doc2video-audio"
	}
	if opts.FPS <= 0 {
		opts.FPS = 24
	}
	if opts.SynthesisWorkers <= 0 {
		opts.SynthesisWorkers = 1
	}
	return &implPipeline{
		deps:   deps,
		opts:   opts,
		logger: log,
	}
}
