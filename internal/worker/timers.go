package worker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/PredictionContest_Go/internal/logger"
)

// timerSet holds at most one armed timer per contest. Fired callbacks run
// on tracked goroutines so close can wait for them.
type timerSet struct {
	mu      sync.Mutex
	armed   map[uuid.UUID]*time.Timer
	closed  bool
	running sync.WaitGroup
}

func newTimerSet() *timerSet {
	return &timerSet{armed: make(map[uuid.UUID]*time.Timer)}
}

// arm replaces any timer for id with one that calls fn after d. A
// non-positive d calls fn right away.
func (s *timerSet) arm(id uuid.UUID, d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if old := s.armed[id]; old != nil {
		old.Stop()
		delete(s.armed, id)
	}
	if d <= 0 {
		s.spawnLocked(fn)
		return
	}

	var t *time.Timer
	t = time.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			return
		}
		// A re-arm between firing and here owns the slot now
		if s.armed[id] == t {
			delete(s.armed, id)
		}
		s.spawnLocked(fn)
	})
	s.armed[id] = t
}

func (s *timerSet) disarm(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t := s.armed[id]; t != nil {
		t.Stop()
		delete(s.armed, id)
	}
}

func (s *timerSet) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.armed)
}

// spawnLocked must be called with s.mu held
func (s *timerSet) spawnLocked(fn func()) {
	s.running.Add(1)
	go func() {
		defer s.running.Done()
		fn()
	}()
}

// close stops every armed timer and waits for running callbacks until ctx
// expires. Arming after close is a no-op.
func (s *timerSet) close(ctx context.Context, owner string) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgWorkerShuttingDown, "worker", owner)

	s.mu.Lock()
	s.closed = true
	for id, t := range s.armed {
		t.Stop()
		log.Debug(LogMsgTimerCancelled, "worker", owner, "contest_id", id)
	}
	clear(s.armed)
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.running.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgWorkerShutdownComplete, "worker", owner)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgWorkerShutdownTimeout, "worker", owner)
		return ctx.Err()
	}
}
