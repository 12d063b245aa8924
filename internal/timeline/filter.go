package timeline

import (
	"fmt"
	"strconv"
	"strings"
)

// Frame is the output picture size
type Frame struct {
	Width  int
	Height int
}

// BuildInputArgs lists ffmpeg inputs: for clip i, input 2i is the looped image and 2i+1 its narration
func BuildInputArgs(t Timeline) []string {
	var args []string
	fps := strconv.Itoa(t.FPS)
	for _, c := range t.Clips {
		args = append(args,
			"-loop", "1",
			"-framerate", fps,
			"-t", seconds(c.Duration),
			"-i", c.Visual.Path,
			"-i", c.Audio.Path,
		)
	}
	return args
}

// BuildFilterGraph builds the filter_complex that zooms each slide, pads each narration to its
// clip span, concatenates everything in order and fades the composite once at each end.
// Outputs are labelled [v] and [a].
func BuildFilterGraph(t Timeline, frame Frame) string {
	var parts []string
	var concatInputs strings.Builder

	// zoompan crops into the source, so upscale first to keep the motion smooth
	srcW, srcH := frame.Width*2, frame.Height*2

	for i, c := range t.Clips {
		img, aud := 2*i, 2*i+1
		dur := seconds(c.Duration)

		parts = append(parts, fmt.Sprintf(
			"[%d:v]scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2,setsar=1,"+
				"zoompan=z='%s':x='iw/2-(iw/zoom/2)':y='ih/2-(ih/zoom/2)':d=1:s=%dx%d:fps=%d,"+
				"trim=duration=%s,setpts=PTS-STARTPTS[v%d]",
			img, srcW, srcH, srcW, srcH,
			c.ZoomExpr(t.FPS), frame.Width, frame.Height, t.FPS,
			dur, i,
		))
		parts = append(parts, fmt.Sprintf(
			"[%d:a]aresample=44100,aformat=channel_layouts=stereo,apad=whole_dur=%s,atrim=duration=%s,asetpts=PTS-STARTPTS[a%d]",
			aud, dur, dur, i,
		))
		fmt.Fprintf(&concatInputs, "[v%d][a%d]", i, i)
	}

	parts = append(parts, fmt.Sprintf("%sconcat=n=%d:v=1:a=1[cv][ca]", concatInputs.String(), len(t.Clips)))

	videoFx := []string{}
	audioFx := []string{}
	if t.FadeIn > 0 {
		videoFx = append(videoFx, fmt.Sprintf("fade=t=in:st=0:d=%s", seconds(t.FadeIn)))
		audioFx = append(audioFx, fmt.Sprintf("afade=t=in:st=0:d=%s", seconds(t.FadeIn)))
	}
	if t.FadeOut > 0 {
		st := seconds(t.FadeOutStart())
		videoFx = append(videoFx, fmt.Sprintf("fade=t=out:st=%s:d=%s", st, seconds(t.FadeOut)))
		audioFx = append(audioFx, fmt.Sprintf("afade=t=out:st=%s:d=%s", st, seconds(t.FadeOut)))
	}
	videoFx = append(videoFx, "format=yuv420p")
	if len(audioFx) == 0 {
		audioFx = append(audioFx, "anull")
	}

	parts = append(parts, "[cv]"+strings.Join(videoFx, ",")+"[v]")
	parts = append(parts, "[ca]"+strings.Join(audioFx, ",")+"[a]")

	return strings.Join(parts, ";")
}

func seconds(d float64) string {
	return strconv.FormatFloat(d, 'f', 3, 64)
}
