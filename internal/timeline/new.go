package timeline

import (
	"github.com/nguyentantai21042004/doc2video/internal/logger"
	"github.com/nguyentantai21042004/doc2video/pkg/executor"
)

// EncodeOptions are the encoder settings; they never affect timing
type EncodeOptions struct {
	Binary       string
	Encoder      string
	Preset       string
	CRF          int
	AudioCodec   string
	AudioBitrate string
	Frame        Frame
}

type implRenderer struct {
	opts     EncodeOptions
	executor executor.Executor
	logger   logger.Logger
}

// NewRenderer creates an ffmpeg-backed Renderer
func NewRenderer(opts EncodeOptions, exec executor.Executor, log logger.Logger) Renderer {
	if opts.Binary == "" {
		opts.Binary = "ffmpeg"
	}
	if opts.Encoder == "" {
		opts.Encoder = softwareEncoder
	}
	if opts.Preset == "" {
		opts.Preset = "ultrafast"
	}
	if opts.CRF == 0 {
		opts.CRF = 23
	}
	return &implRenderer{
		opts:     opts,
		executor: exec,
		logger:   log,
	}
}
