package entities

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidTransition = errors.New("invalid ride status transition")
	ErrMissingLocations  = errors.New("please enter both pickup and destination locations")
)

// RideStatus represents the current lifecycle state of a session's ride.
//
// Go Learning Note — State Machines in Go:
// The ride lifecycle is a small finite state machine. Transitions are listed
// in the validTransitions table in reducer.go and applied by Reduce, a pure
// function of (state, event). Keeping the timers out of it means every
// transition can be unit-tested without waiting on a clock:
//
//	IDLE → REQUESTING → SEARCHING → ACCEPTED → IN_PROGRESS → COMPLETED
//	                        ↘ IDLE (no driver)
//	     (REQUESTING, SEARCHING and ACCEPTED can be cancelled back to IDLE,
//	      and any state can be reset to IDLE)
type RideStatus string

const (
	RideStatusIdle       RideStatus = "IDLE"
	RideStatusRequesting RideStatus = "REQUESTING"
	RideStatusSearching  RideStatus = "SEARCHING"
	RideStatusAccepted   RideStatus = "ACCEPTED"
	RideStatusInProgress RideStatus = "IN_PROGRESS"
	RideStatusCompleted  RideStatus = "COMPLETED"
	RideStatusCancelled  RideStatus = "CANCELLED"
)

// IsActive reports whether a driver is assigned and the trip is underway
// (either heading to the pickup or to the destination).
func (s RideStatus) IsActive() bool {
	return s == RideStatusAccepted || s == RideStatusInProgress
}

// IsTerminal reports whether the map marker should rest at its origin.
func (s RideStatus) IsTerminal() bool {
	switch s {
	case RideStatusIdle, RideStatusCompleted, RideStatusCancelled:
		return true
	}
	return false
}

// RideDetails is created when a passenger submits the booking form and is
// filled in as the fare, driver, ETA and duration become known. The optional
// fields are pointers so "not known yet" serializes as an absent field rather
// than a misleading zero.
//
// Go Learning Note — "omitempty" with pointers:
// A nil pointer tagged `omitempty` is left out of the JSON entirely, while a
// pointer to 0 would still be written. That distinction matters for Fare.
type RideDetails struct {
	Pickup       string      `json:"pickup"`
	Destination  string      `json:"destination"`
	VehicleType  VehicleType `json:"vehicle_type"`
	Fare         *float64    `json:"fare,omitempty"`
	Driver       *Driver     `json:"driver,omitempty"`
	ETA          *int        `json:"eta,omitempty"`
	RideDuration *int        `json:"ride_duration,omitempty"`
}

// NewRideDetails validates the booking form input and returns fresh details.
func NewRideDetails(pickup, destination string, vt VehicleType) (*RideDetails, error) {
	pickup = strings.TrimSpace(pickup)
	destination = strings.TrimSpace(destination)
	if pickup == "" || destination == "" {
		return nil, ErrMissingLocations
	}
	if !vt.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVehicleType, vt)
	}
	return &RideDetails{
		Pickup:      pickup,
		Destination: destination,
		VehicleType: vt,
	}, nil
}

// Clone returns a deep copy so callers can hand details to other goroutines
// (JSON encoders, WebSocket writers) without sharing the pointers.
func (d *RideDetails) Clone() *RideDetails {
	if d == nil {
		return nil
	}
	c := *d
	if d.Fare != nil {
		fare := *d.Fare
		c.Fare = &fare
	}
	if d.Driver != nil {
		driver := *d.Driver
		c.Driver = &driver
	}
	if d.ETA != nil {
		eta := *d.ETA
		c.ETA = &eta
	}
	if d.RideDuration != nil {
		dur := *d.RideDuration
		c.RideDuration = &dur
	}
	return &c
}

// RideState is the complete ride view of one session: the status, the
// details (nil while idle) and an optional one-line notice for the UI.
type RideState struct {
	Status  RideStatus   `json:"status"`
	Details *RideDetails `json:"details,omitempty"`
	Notice  string       `json:"notice,omitempty"`
}

// NewRideState returns the initial state of every session.
func NewRideState() RideState {
	return RideState{Status: RideStatusIdle}
}

// Clone returns a deep copy of the state.
func (s RideState) Clone() RideState {
	s.Details = s.Details.Clone()
	return s
}
