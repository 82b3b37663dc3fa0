// internal/clock/clock.go
//
// Scheduling primitives shared by the challenge engine and its host.
// Responsibilities:
//   - Scheduler: "run fn after d" and "what time is it", nothing more.
//   - Timer: cancellation handle for a scheduled callback.
//
// Two implementations live in this package:
//   - Loop:    wall-clock timers funnelled into a single goroutine.
//   - Virtual: manually advanced time for tests and scripted runs.
//
// Callers never touch engine state from a timer goroutine directly; both
// implementations run callbacks one at a time.

package clock

import "time"

// Scheduler arms callbacks and reports the current time.
type Scheduler interface {
	// AfterFunc runs fn once after d has elapsed.
	AfterFunc(d time.Duration, fn func()) Timer

	// Now returns the scheduler's notion of the current time.
	Now() time.Time
}

// Timer cancels a callback armed by a Scheduler.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer; false means it already ran or was already stopped.
	// After Stop returns, the callback is guaranteed not to run.
	Stop() bool
}
