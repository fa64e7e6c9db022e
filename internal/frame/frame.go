package frame

import (
	"sync"
	"time"
)

// Callback runs once for the frame it was registered for.
type Callback func(now time.Time)

// ID identifies a pending callback. Zero is never issued.
type ID uint64

type Scheduler interface {
	Request(fn Callback) ID
	Cancel(id ID)
}

type entry struct {
	id ID
	fn Callback
}

// Queue collects callbacks and runs them on Flush. Callbacks requested
// while a flush is in progress run on the following flush.
type Queue struct {
	next     ID
	pending  []entry
	inFlight []entry
	frames   uint64
}

func NewQueue() *Queue {
	return &Queue{pending: make([]entry, 0, 4)}
}

func (q *Queue) Request(fn Callback) ID {
	if fn == nil {
		return 0
	}
	q.next++
	q.pending = append(q.pending, entry{id: q.next, fn: fn})
	return q.next
}

// Cancel removes a pending callback. Unknown or already fired IDs are ignored.
func (q *Queue) Cancel(id ID) {
	if id == 0 {
		return
	}
	for i, e := range q.pending {
		if e.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	// cancelled by an earlier callback of the batch being flushed
	for i := range q.inFlight {
		if q.inFlight[i].id == id {
			q.inFlight[i].fn = nil
			return
		}
	}
}

// Flush runs every callback registered before the call, in order, and
// returns how many ran.
func (q *Queue) Flush(now time.Time) int {
	q.inFlight, q.pending = q.pending, make([]entry, 0, len(q.pending))
	q.frames++
	ran := 0
	for i := range q.inFlight {
		fn := q.inFlight[i].fn
		if fn == nil {
			continue
		}
		q.inFlight[i].fn = nil
		fn(now)
		ran++
	}
	q.inFlight = nil
	return ran
}

// Pending reports the number of registered callbacks.
func (q *Queue) Pending() int { return len(q.pending) }

// Frames reports how many times Flush has run.
func (q *Queue) Frames() uint64 { return q.frames }

// Loop is a scheduled task that re-registers itself after every run.
type Loop struct {
	sched    Scheduler
	fn       Callback
	id       ID
	stopped  bool
	stopOnce sync.Once
}

// Start registers fn for the next frame and keeps it registered until Stop.
func Start(s Scheduler, fn Callback) *Loop {
	l := &Loop{sched: s, fn: fn}
	if s == nil || fn == nil {
		l.stopped = true
		return l
	}
	l.id = s.Request(l.run)
	return l
}

func (l *Loop) run(now time.Time) {
	if l.stopped {
		return
	}
	l.fn(now)
	// fn may have stopped the loop
	if l.stopped {
		return
	}
	l.id = l.sched.Request(l.run)
}

// Stop cancels the outstanding registration. Safe to call more than once.
func (l *Loop) Stop() {
	if l == nil {
		return
	}
	l.stopOnce.Do(func() {
		l.stopped = true
		if l.sched != nil {
			l.sched.Cancel(l.id)
		}
		l.id = 0
	})
}

// Running reports whether the loop is still registered.
func (l *Loop) Running() bool { return l != nil && !l.stopped }
