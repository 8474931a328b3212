package authsession

import (
	"sync"
	"time"
)

// scheduler owns the single outstanding proactive-refresh timer. A new
// schedule always cancels the previous handle, so rapid re-login sequences
// cannot leave duplicate timers behind.
type scheduler struct {
	mu    sync.Mutex
	timer *time.Timer
}

func (s *scheduler) schedule(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(d, fn)
}

func (s *scheduler) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
