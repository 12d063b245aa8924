package pipeline

import "context"

// semaphore bounds concurrent narration calls
type semaphore struct {
	slots chan struct{}
}

func newSemaphore(capacity int) *semaphore {
	if capacity < 1 {
		capacity = 1
	}
	return &semaphore{slots: make(chan struct{}, capacity)}
}

// acquire blocks for a free slot or until ctx is done
func (s *semaphore) acquire(ctx context.Context) error {
	select {
	case s.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *semaphore) release() {
	<-s.slots
}
