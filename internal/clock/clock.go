// Package clock abstracts wall-clock time so that timer-driven ride
// transitions can be tested by advancing virtual time instead of sleeping.
package clock

import "time"

// Timer is a pending callback that can be cancelled.
type Timer interface {
	// Stop cancels the callback. It returns false if the callback already
	// ran or was stopped before.
	Stop() bool
}

// Clock is the scheduling capability the ride service depends on.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Real is backed by the runtime timers.
type Real struct{}

func NewReal() Real {
	return Real{}
}

func (Real) Now() time.Time {
	return time.Now()
}

// AfterFunc runs f in its own goroutine after d.
//
// Go Learning Note — time.AfterFunc:
// Unlike time.After, which hands back a channel you must select on,
// time.AfterFunc schedules a callback and returns a *time.Timer whose Stop
// method cancels it. That fits state-owned timers well: whoever leaves the
// state calls Stop and the late callback never fires.
func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
