package entities

import "fmt"

// EventKind names a ride state machine trigger.
type EventKind string

const (
	EventRequest         EventKind = "request"
	EventFareReady       EventKind = "fare_ready"
	EventDriverFound     EventKind = "driver_found"
	EventNoDriver        EventKind = "no_driver"
	EventEtaElapsed      EventKind = "eta_elapsed"
	EventDurationElapsed EventKind = "duration_elapsed"
	EventComplete        EventKind = "complete"
	EventCancel          EventKind = "cancel"
	EventReset           EventKind = "reset"
)

// RideEvent is anything that can drive the ride state machine. Random values
// (the chosen driver, ETA, duration) travel inside the events so that Reduce
// itself stays deterministic.
type RideEvent interface {
	Kind() EventKind
}

type RequestEvent struct {
	Pickup      string
	Destination string
	VehicleType VehicleType
}

type FareReadyEvent struct {
	Fare   float64
	Notice string
}

type DriverFoundEvent struct {
	Driver Driver
	ETA    int
}

type NoDriverEvent struct{}

type EtaElapsedEvent struct {
	RideDuration int
}

type DurationElapsedEvent struct{}

type CompleteEvent struct{}

type CancelEvent struct{}

type ResetEvent struct{}

func (RequestEvent) Kind() EventKind         { return EventRequest }
func (FareReadyEvent) Kind() EventKind       { return EventFareReady }
func (DriverFoundEvent) Kind() EventKind     { return EventDriverFound }
func (NoDriverEvent) Kind() EventKind        { return EventNoDriver }
func (EtaElapsedEvent) Kind() EventKind      { return EventEtaElapsed }
func (DurationElapsedEvent) Kind() EventKind { return EventDurationElapsed }
func (CompleteEvent) Kind() EventKind        { return EventComplete }
func (CancelEvent) Kind() EventKind          { return EventCancel }
func (ResetEvent) Kind() EventKind           { return EventReset }

type transition struct {
	from []RideStatus // nil means "from any state"
	to   RideStatus
}

// validTransitions is the state machine. It is keyed by event rather than by
// source status because several events (cancel, reset, no driver) share the
// IDLE target but differ in where they may start.
var validTransitions = map[EventKind]transition{
	EventRequest:         {from: []RideStatus{RideStatusIdle}, to: RideStatusRequesting},
	EventFareReady:       {from: []RideStatus{RideStatusRequesting}, to: RideStatusSearching},
	EventDriverFound:     {from: []RideStatus{RideStatusSearching}, to: RideStatusAccepted},
	EventNoDriver:        {from: []RideStatus{RideStatusSearching}, to: RideStatusIdle},
	EventEtaElapsed:      {from: []RideStatus{RideStatusAccepted}, to: RideStatusInProgress},
	EventDurationElapsed: {from: []RideStatus{RideStatusInProgress}, to: RideStatusCompleted},
	EventComplete:        {from: []RideStatus{RideStatusInProgress}, to: RideStatusCompleted},
	EventCancel: {
		from: []RideStatus{RideStatusRequesting, RideStatusSearching, RideStatusAccepted},
		to:   RideStatusIdle,
	},
	EventReset: {to: RideStatusIdle},
}

// CanApply reports whether the event is allowed in the given status.
//
// Go Learning Note — Comma-ok Idiom:
// `t, ok := validTransitions[kind]` distinguishes "no entry" from the zero
// value of transition, which would otherwise look like "allowed from any".
func CanApply(status RideStatus, kind EventKind) bool {
	t, ok := validTransitions[kind]
	if !ok {
		return false
	}
	if t.from == nil {
		return true
	}
	for _, s := range t.from {
		if s == status {
			return true
		}
	}
	return false
}

// Reduce applies an event to a state and returns the next state. The input
// state is never modified. A disallowed event returns ErrInvalidTransition
// together with the unchanged state, which callers treat as a stale event.
func Reduce(state RideState, ev RideEvent) (RideState, error) {
	if ev == nil || !CanApply(state.Status, ev.Kind()) {
		kind := EventKind("<nil>")
		if ev != nil {
			kind = ev.Kind()
		}
		return state, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, kind, state.Status)
	}

	next := RideState{
		Status:  validTransitions[ev.Kind()].to,
		Details: state.Details.Clone(),
	}

	switch ev.Kind() {
	case EventRequest, EventCancel, EventReset:
	default:
		if next.Details == nil {
			return state, fmt.Errorf("%w: %s without ride details", ErrInvalidTransition, ev.Kind())
		}
	}

	switch e := ev.(type) {
	case RequestEvent:
		details, err := NewRideDetails(e.Pickup, e.Destination, e.VehicleType)
		if err != nil {
			return state, err
		}
		next.Details = details

	case FareReadyEvent:
		fare := e.Fare
		next.Details.Fare = &fare
		next.Notice = e.Notice

	case DriverFoundEvent:
		if !e.Driver.Drives(next.Details.VehicleType) {
			return state, fmt.Errorf("%w: driver %d does not drive %s",
				ErrInvalidTransition, e.Driver.ID, next.Details.VehicleType)
		}
		driver := e.Driver
		eta := e.ETA
		next.Details.Driver = &driver
		next.Details.ETA = &eta

	case NoDriverEvent:
		next.Notice = fmt.Sprintf("No drivers are available for %s right now. Please try again.",
			state.Details.VehicleType)
		next.Details = nil

	case EtaElapsedEvent:
		dur := e.RideDuration
		next.Details.RideDuration = &dur

	case DurationElapsedEvent, CompleteEvent:
		// Details are kept so the completion panel can show the fare.

	case CancelEvent, ResetEvent:
		next.Details = nil
	}

	return next, nil
}
