package session

import (
	"context"
	"sync"
)

// taskSlot tracks the single in-flight task for one modality lane. gen
// guards delivery: a task may only write its result while its generation
// is still the latest one for the lane.
type taskSlot struct {
	cancel context.CancelFunc
	gen    uint64
}

// Session is one connected client. All task bookkeeping and all writes to
// the connection happen under mu, so replies never interleave.
type Session struct {
	ID   string
	conn Conn

	mu     sync.Mutex
	tasks  map[Modality]*taskSlot
	gens   map[Modality]uint64
	closed bool

	ctx    context.Context
	cancel context.CancelFunc
}

// begin supersedes any in-flight task on the lane and claims it for a new
// one. It returns the task context, the generation the caller must present
// at delivery time, and whether an older task was cancelled. ok is false
// when the session is already closed.
func (s *Session) begin(modality Modality) (ctx context.Context, gen uint64, superseded, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, 0, false, false
	}

	if slot := s.tasks[modality]; slot != nil {
		slot.cancel()
		superseded = true
	}

	s.gens[modality]++
	gen = s.gens[modality]

	ctx, cancel := context.WithCancel(s.ctx)
	s.tasks[modality] = &taskSlot{cancel: cancel, gen: gen}
	return ctx, gen, superseded, true
}

// finish releases the lane if the given generation still owns it.
func (s *Session) finish(modality Modality, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slot := s.tasks[modality]; slot != nil && slot.gen == gen {
		slot.cancel()
		delete(s.tasks, modality)
	}
}
