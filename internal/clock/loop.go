package clock

import (
	"context"
	"sync/atomic"
	"time"
)

// Loop is a realtime Scheduler that executes every callback and every posted
// function on the goroutine running Run. State owned by code that only runs
// inside the loop needs no locking.
type Loop struct {
	queue chan func()
	done  chan struct{}
	now   func() time.Time
}

// NewLoop creates a Loop with the given queue depth.
func NewLoop(depth int) *Loop {
	if depth <= 0 {
		depth = 64
	}
	return &Loop{
		queue: make(chan func(), depth),
		done:  make(chan struct{}),
		now:   time.Now,
	}
}

// Run executes queued functions until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.queue:
			fn()
		}
	}
}

// Post enqueues fn to run on the loop. It returns false once the loop has
// stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.queue <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Now implements Scheduler.
func (l *Loop) Now() time.Time { return l.now() }

// AfterFunc implements Scheduler. The callback is posted to the loop when the
// underlying timer fires and skipped if Stop was called in between.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	t.t = time.AfterFunc(d, func() {
		l.Post(func() {
			if t.stopped.CompareAndSwap(false, true) {
				fn()
			}
		})
	})
	return t
}

type loopTimer struct {
	t       *time.Timer
	stopped atomic.Bool
}

func (t *loopTimer) Stop() bool {
	t.t.Stop()
	return t.stopped.CompareAndSwap(false, true)
}
