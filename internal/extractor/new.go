package extractor

import "github.com/nguyentantai21042004/doc2video/internal/logger"

type implExtractor struct {
	minChars int
	logger   logger.Logger
}

// New creates an Extractor that drops blocks of minChars characters or fewer
func New(minChars int, log logger.Logger) Extractor {
	if minChars <= 0 {
		minChars = 100
	}
	return &implExtractor{
		minChars: minChars,
		logger:   log,
	}
}
