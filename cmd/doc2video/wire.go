package main

import (
	"fmt"
	"net/http"

	"github.com/nguyentantai21042004/doc2video/internal/config"
	"github.com/nguyentantai21042004/doc2video/internal/deck"
	"github.com/nguyentantai21042004/doc2video/internal/extractor"
	"github.com/nguyentantai21042004/doc2video/internal/logger"
	"github.com/nguyentantai21042004/doc2video/internal/narration"
	"github.com/nguyentantai21042004/doc2video/internal/pipeline"
	"github.com/nguyentantai21042004/doc2video/internal/render"
	"github.com/nguyentantai21042004/doc2video/internal/structurer"
	"github.com/nguyentantai21042004/doc2video/internal/timeline"
	"github.com/nguyentantai21042004/doc2video/pkg/executor"
)

// buildPipeline wires every collaborator from the validated config
func buildPipeline(cfg *config.Config, exec executor.Executor, log logger.Logger) (pipeline.Pipeline, error) {
	provider, err := narration.NewProvider(cfg.Narration, &http.Client{Timeout: cfg.Narration.Timeout})
	if err != nil {
		return nil, fmt.Errorf("narration provider: %w", err)
	}

	var slides render.SlideRenderer
	switch cfg.Render.Mode {
	case config.RenderLibreOffice:
		slides = render.NewLibreOffice(render.LibreOfficeOptions{
			SofficeBinary:  cfg.Render.SofficeBinary,
			PdftoppmBinary: cfg.Render.PdftoppmBinary,
			DPI:            cfg.Render.DPI,
		}, exec, log)
	default:
		slides = render.NewManual(cfg.Render.Timeout, log)
	}

	deps := pipeline.Deps{
		Extractor:  extractor.New(cfg.Extraction.MinSectionChars, log),
		Structurer: structurer.New(structurer.Options{}),
		Deck:       deck.New(cfg.Paths.PlaceholderIcon, log),
		Slides:     slides,
		Synthesizer: narration.New(provider, narration.Options{
			SecondsPerWord: cfg.Narration.SecondsPerWord,
			Timeout:        cfg.Narration.Timeout,
		}, log),
		Video: timeline.NewRenderer(timeline.EncodeOptions{
			Binary:       cfg.FFmpeg.Binary,
			Encoder:      cfg.FFmpeg.Encoder,
			Preset:       cfg.FFmpeg.Preset,
			CRF:          cfg.FFmpeg.CRF,
			AudioCodec:   cfg.FFmpeg.AudioCodec,
			AudioBitrate: cfg.FFmpeg.AudioBitrate,
			Frame:        timeline.Frame{Width: cfg.Timeline.Width, Height: cfg.Timeline.Height},
		}, exec, log),
	}

	return pipeline.New(deps, pipeline.OptionsFromConfig(cfg), log), nil
}

// preflight fails fast when a required tool is missing, before any slide work is done
func preflight(cfg *config.Config, exec executor.Executor) error {
	tools := []string{cfg.FFmpeg.Binary}
	if cfg.Render.Mode == config.RenderLibreOffice {
		tools = append(tools, cfg.Render.SofficeBinary, cfg.Render.PdftoppmBinary)
	}
	for _, tool := range tools {
		if err := exec.LookPath(tool); err != nil {
			return err
		}
	}
	return nil
}
