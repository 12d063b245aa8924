package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/doc2video/internal/models"
	"github.com/nguyentantai21042004/doc2video/internal/timeline"
)

// Run drives Extracting -> Structuring -> AwaitingExternalRendering -> Assembling -> Done.
// The first fatal error stops the run; the video exists only if every stage succeeded.
func (p *implPipeline) Run(ctx context.Context, documentPath, outDir string) (Result, error) {
	startTime := time.Now()
	res := Result{}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting conversion: %s", documentPath)
	p.logger.Info(ctx, "========================================")

	// Step 1: Extract text sections
	p.enter(ctx, StageExtracting)
	sections, err := p.deps.Extractor.Extract(ctx, documentPath, p.opts.TargetSections)
	if len(sections) == 0 {
		cause := ErrNoSections
		if err != nil {
			cause = fmt.Errorf("%w: %w", ErrNoSections, err)
		}
		return p.fail(ctx, &res, StageExtracting, cause, startTime)
	}
	if err != nil {
		p.logger.Warn(ctx, "Extraction reported an error but returned %d sections: %v", len(sections), err)
	}
	res.Sections = len(sections)
	p.logger.Info(ctx, "Extracted %d sections", len(sections))

	// Step 2: Structure sections into slides and write the deck
	p.enter(ctx, StageStructuring)
	slides := p.structure(ctx, sections)
	if len(slides) == 0 {
		return p.fail(ctx, &res, StageStructuring, ErrNoSlides, startTime)
	}
	res.Slides = len(slides)

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return p.fail(ctx, &res, StageStructuring, fmt.Errorf("create output dir: %w", err), startTime)
	}
	// a video left by an earlier run would sit next to a deck it does not match
	if err := removeStale(filepath.Join(outDir, p.opts.VideoName)); err != nil {
		return p.fail(ctx, &res, StageStructuring, err, startTime)
	}
	deckPath := filepath.Join(outDir, p.opts.DeckName)
	if err := p.deps.Deck.Write(ctx, slides, deckPath); err != nil {
		return p.fail(ctx, &res, StageStructuring, fmt.Errorf("write deck: %w", err), startTime)
	}
	res.DeckPath = deckPath

	// Step 3: Wait for one image per slide
	p.enter(ctx, StageAwaitingRendering)
	visuals, err := p.deps.Slides.Render(ctx, deckPath, outDir, len(slides))
	if err != nil {
		return p.fail(ctx, &res, StageAwaitingRendering, err, startTime)
	}

	// Step 4: Narrate, build clips and encode the video
	p.enter(ctx, StageAssembling)
	videoPath, tl, silent, err := p.assemble(ctx, slides, visuals, outDir)
	res.SilentSlides = silent
	if err != nil {
		return p.fail(ctx, &res, StageAssembling, err, startTime)
	}

	res.State = StageDone
	res.VideoPath = videoPath
	res.VideoSeconds = tl.Duration()
	res.Elapsed = time.Since(startTime)

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Conversion completed successfully!")
	p.logger.Info(ctx, "Slide deck: %s", res.DeckPath)
	p.logger.Info(ctx, "Video: %s (%.2fs, %d slides, %d silent)", videoPath, res.VideoSeconds, res.Slides, silent)
	p.logger.Info(ctx, "Processing time: %s", res.Elapsed)
	p.logger.Info(ctx, "========================================")

	return res, nil
}

func (p *implPipeline) structure(ctx context.Context, sections []models.RawSection) []models.SlideContent {
	slides := make([]models.SlideContent, 0, len(sections))
	for i, section := range sections {
		content, ok := p.deps.Structurer.Structure(section)
		if !ok {
			p.logger.Debug(ctx, "Section %d yields no slide, dropped", i+1)
			continue
		}
		slides = append(slides, content)
	}
	p.logger.Info(ctx, "Structured %d of %d sections into slides", len(slides), len(sections))
	return slides
}

// assemble owns the scoped temp dir; it is removed whatever the outcome
func (p *implPipeline) assemble(ctx context.Context, slides []models.SlideContent, visuals []models.VisualResource, outDir string) (string, timeline.Timeline, int, error) {
	// fail before spending time on synthesis when the renderer came back short
	if len(visuals) != len(slides) {
		return "", timeline.Timeline{}, 0, timeline.CheckCounts(len(slides), len(visuals), len(slides))
	}

	tempDir, err := p.makeTempDir(ctx)
	if err != nil {
		return "", timeline.Timeline{}, 0, err
	}
	defer p.removeTempDir(ctx, tempDir)

	audio, err := p.narrate(ctx, tempDir, slides)
	silent := countSilent(audio)
	if err != nil {
		return "", timeline.Timeline{}, silent, fmt.Errorf("narration: %w", err)
	}

	if err := timeline.CheckCounts(len(slides), len(visuals), len(audio)); err != nil {
		return "", timeline.Timeline{}, silent, err
	}

	clips := make([]timeline.SlideClip, len(slides))
	for i := range slides {
		clip, err := timeline.BuildClip(visuals[i], audio[i], p.opts.PadSeconds, p.opts.ZoomFactor)
		if err != nil {
			return "", timeline.Timeline{}, silent, fmt.Errorf("clip %d: %w", i+1, err)
		}
		clips[i] = clip
	}

	tl, err := timeline.Assemble(clips, timeline.Options{
		FadeIn:  p.opts.FadeIn,
		FadeOut: p.opts.FadeOut,
		FPS:     p.opts.FPS,
	})
	if err != nil {
		return "", timeline.Timeline{}, silent, err
	}
	p.logger.Info(ctx, "Timeline assembled: %d clips, %.2fs", len(tl.Clips), tl.Duration())
	for i, at := range tl.Offsets() {
		p.logger.Debug(ctx, "Slide %d: starts at %.2fs, lasts %.2fs", i+1, at, tl.Clips[i].Duration)
	}

	videoPath := filepath.Join(outDir, p.opts.VideoName)
	if err := p.deps.Video.Render(ctx, tl, videoPath); err != nil {
		return "", timeline.Timeline{}, silent, fmt.Errorf("render video: %w", err)
	}

	return videoPath, tl, silent, nil
}

func (p *implPipeline) enter(ctx context.Context, stage Stage) {
	p.logger.Info(ctx, "Stage: %s", stage)
}

func (p *implPipeline) fail(ctx context.Context, res *Result, stage Stage, cause error, startTime time.Time) (Result, error) {
	res.State = StageFailed
	res.FailedAt = stage
	res.Elapsed = time.Since(startTime)

	err := &StageError{Stage: stage, Err: cause}
	p.logger.Error(ctx, "Conversion failed: %v", err)
	return *res, err
}

func countSilent(audio []models.AudioResource) int {
	n := 0
	for _, a := range audio {
		if a.Silent {
			n++
		}
	}
	return n
}
