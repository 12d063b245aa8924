package structurer

// Options bound the heuristics; zero values take the defaults below
type Options struct {
	// MinSentenceWords: sentences need more than this many words to count
	MinSentenceWords int
	// MinSentences: sections with fewer usable sentences yield no slide
	MinSentences   int
	TitleMaxWords  int
	BulletMaxWords int
	MaxBullets     int
}

type implStructurer struct {
	opts Options
}

// New creates a Structurer
func New(opts Options) Structurer {
	if opts.MinSentenceWords == 0 {
		opts.MinSentenceWords = 4
	}
	if opts.MinSentences == 0 {
		opts.MinSentences = 2
	}
	if opts.TitleMaxWords == 0 {
		opts.TitleMaxWords = 20
	}
	if opts.BulletMaxWords == 0 {
		opts.BulletMaxWords = 15
	}
	if opts.MaxBullets == 0 {
		opts.MaxBullets = 2
	}
	return &implStructurer{opts: opts}
}
