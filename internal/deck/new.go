package deck

import "github.com/nguyentantai21042004/doc2video/internal/logger"

type implWriter struct {
	iconPath string
	logger   logger.Logger
}

// New creates a docx deck Writer. iconPath is an optional picture placed on every slide.
func New(iconPath string, log logger.Logger) Writer {
	return &implWriter{
		iconPath: iconPath,
		logger:   log,
	}
}
