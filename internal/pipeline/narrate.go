package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/nguyentantai21042004/doc2video/internal/models"
)

// narrate synthesizes audio_<i>.<ext> for every slide into dir, in slide order.
// With more than one worker, slides are synthesized concurrently and joined by index.
func (p *implPipeline) narrate(ctx context.Context, dir string, slides []models.SlideContent) ([]models.AudioResource, error) {
	audio := make([]models.AudioResource, len(slides))
	ext := p.deps.Synthesizer.Extension()

	destination := func(i int) string {
		return filepath.Join(dir, fmt.Sprintf("audio_%d.%s", i+1, ext))
	}

	if p.opts.SynthesisWorkers <= 1 {
		for i, slide := range slides {
			a, err := p.deps.Synthesizer.Synthesize(ctx, slide.Narration, destination(i))
			if err != nil {
				return audio[:i], fmt.Errorf("slide %d: %w", i+1, err)
			}
			audio[i] = a
			p.logger.Debug(ctx, "Narration %d/%d: %.2fs (silent: %v)", i+1, len(slides), a.DurationSeconds, a.Silent)
		}
		return audio, nil
	}

	p.logger.Info(ctx, "Synthesizing %d narrations with %d workers", len(slides), p.opts.SynthesisWorkers)

	sem := newSemaphore(p.opts.SynthesisWorkers)
	errs := make([]error, len(slides))
	var wg sync.WaitGroup

	for i, slide := range slides {
		if err := sem.acquire(ctx); err != nil {
			errs[i] = err
			break
		}
		wg.Add(1)
		go func(i int, text string) {
			defer wg.Done()
			defer sem.release()

			a, err := p.deps.Synthesizer.Synthesize(ctx, text, destination(i))
			if err != nil {
				errs[i] = err
				return
			}
			audio[i] = a
		}(i, slide.Narration)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
	}
	return audio, nil
}
