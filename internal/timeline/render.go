package timeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const softwareEncoder = "libx264"

// Render validates every input, encodes the timeline to a scratch file beside outputPath
// and renames it into place only when ffmpeg succeeds.
func (r *implRenderer) Render(ctx context.Context, tl Timeline, outputPath string) error {
	if len(tl.Clips) == 0 {
		return ErrEmptyTimeline
	}
	if err := checkInputs(tl); err != nil {
		return err
	}

	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	partial := filepath.Join(dir, "."+strings.TrimSuffix(filepath.Base(outputPath), filepath.Ext(outputPath))+".partial"+filepath.Ext(outputPath))
	defer os.Remove(partial)

	r.logger.Info(ctx, "Rendering %d clips (%.2fs @ %d fps) with %s", len(tl.Clips), tl.Duration(), tl.FPS, r.opts.Encoder)

	if err := r.encode(ctx, tl, r.opts.Encoder, partial); err != nil {
		if r.opts.Encoder == softwareEncoder || ctx.Err() != nil {
			return err
		}
		r.logger.Warn(ctx, "Encoder %s failed, retrying with %s: %v", r.opts.Encoder, softwareEncoder, err)
		if err := r.encode(ctx, tl, softwareEncoder, partial); err != nil {
			return fmt.Errorf("both %s and %s encoders failed: %w", r.opts.Encoder, softwareEncoder, err)
		}
	}

	if info, err := os.Stat(partial); err != nil || info.Size() == 0 {
		return fmt.Errorf("ffmpeg produced no output at %s", partial)
	}
	if err := os.Rename(partial, outputPath); err != nil {
		return fmt.Errorf("move video into place: %w", err)
	}

	r.logger.Info(ctx, "Video written: %s", outputPath)
	return nil
}

func (r *implRenderer) encode(ctx context.Context, tl Timeline, encoder, outPath string) error {
	args := r.buildArgs(tl, encoder, outPath)
	r.logger.Debug(ctx, "ffmpeg %s", strings.Join(args, " "))

	if _, err := r.executor.Execute(ctx, r.opts.Binary, args...); err != nil {
		return fmt.Errorf("ffmpeg encode: %w", err)
	}
	return nil
}

func (r *implRenderer) buildArgs(tl Timeline, encoder, outPath string) []string {
	args := []string{"-y", "-hide_banner", "-loglevel", "error"}
	args = append(args, BuildInputArgs(tl)...)
	args = append(args,
		"-filter_complex", BuildFilterGraph(tl, r.opts.Frame),
		"-map", "[v]",
		"-map", "[a]",
		"-r", strconv.Itoa(tl.FPS),
		"-c:v", encoder,
	)
	if encoder == softwareEncoder {
		args = append(args, "-preset", r.opts.Preset, "-crf", strconv.Itoa(r.opts.CRF))
	}
	args = append(args, "-pix_fmt", "yuv420p")
	if r.opts.AudioCodec != "" {
		args = append(args, "-c:a", r.opts.AudioCodec)
	}
	if r.opts.AudioBitrate != "" {
		args = append(args, "-b:a", r.opts.AudioBitrate)
	}
	args = append(args,
		"-t", seconds(tl.Duration()),
		"-movflags", "+faststart",
		outPath,
	)
	return args
}

// checkInputs fails before any encoding work when a clip's files are missing
func checkInputs(tl Timeline) error {
	for i, c := range tl.Clips {
		if c.Duration <= 0 {
			return fmt.Errorf("clip %d: %w", i+1, ErrInvalidDuration)
		}
		if _, err := os.Stat(c.Visual.Path); err != nil {
			return fmt.Errorf("clip %d visual: %w", i+1, err)
		}
		if _, err := os.Stat(c.Audio.Path); err != nil {
			return fmt.Errorf("clip %d audio: %w", i+1, err)
		}
	}
	return nil
}
