package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"movi/internal/assistant"
	"movi/internal/clock"
	"movi/internal/config"
	"movi/internal/dispatch"
	"movi/internal/domain/entities"
	"movi/internal/mapview"
)

var (
	ErrNoActiveRide  = errors.New("no active ride")
	ErrSessionClosed = errors.New("session is closed")
)

// EmergencyAck is returned to the passenger after an emergency report.
const EmergencyAck = "Emergency assistance has been notified."

// Navigation labels shown to the driver.
const (
	NavigatePickup  = "Pickup Passenger"
	NavigateDropOff = "Drop-off Passenger"
)

// RideDeps are the collaborators shared by every session's RideService.
type RideDeps struct {
	Fares      assistant.FareEstimator
	Picker     dispatch.DriverPicker
	Estimator  dispatch.TripEstimator
	Clock      clock.Clock
	Notifier   *NotificationService
	Logger     *slog.Logger
	Simulation config.SimulationConfig
}

type RideRequest struct {
	Pickup      string               `json:"pickup"`
	Destination string               `json:"destination"`
	VehicleType entities.VehicleType `json:"vehicle_type"`
}

// FareResult is delivered once the background fare estimate is done.
// Applied is false when the ride moved on (cancelled, reset, closed) before
// the estimate came back, in which case the quote was dropped.
type FareResult struct {
	Quote   assistant.FareQuote
	Applied bool
	State   entities.RideState
}

// Navigation is what the driver console shows for the active ride.
type Navigation struct {
	Label   string                `json:"label"`
	Target  mapview.Point         `json:"target"`
	Status  entities.RideStatus   `json:"status"`
	Details *entities.RideDetails `json:"details"`
}

// RideService owns the ride of one session. All state changes go through
// apply, which runs the reducer, bumps the generation and disarms the
// pending timer. Anything that finishes later (a timer, a fare estimate)
// carries the generation it was started under and is dropped if the ride
// has moved on since.
//
// Go Learning Note — Generation Counters:
// Stopping a timer does not help if its callback is already waiting on the
// mutex. Comparing a captured generation against the current one, after the
// lock is taken, catches that race as well as late network replies.
type RideService struct {
	sessionID string
	deps      RideDeps
	animator  *mapview.Animator
	logger    *slog.Logger

	mu         sync.Mutex
	state      entities.RideState
	generation uint64
	timer      clock.Timer
	armedAt    time.Time
	armedFor   time.Duration
	closed     bool
}

func NewRideService(sessionID string, deps RideDeps) *RideService {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &RideService{
		sessionID: sessionID,
		deps:      deps,
		animator:  mapview.NewAnimator(deps.Clock, deps.Simulation.PickupAnimation, deps.Simulation.TripAnimation),
		logger:    logger.With("session_id", sessionID),
		state:     entities.NewRideState(),
	}
}

// Snapshot returns a copy of the current ride state.
func (s *RideService) Snapshot() entities.RideState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// RideView is the ride state plus the live countdowns the ride screen shows:
// minutes until the driver arrives while ACCEPTED, and how far the trip has
// got while IN_PROGRESS.
type RideView struct {
	entities.RideState
	ETARemaining *int     `json:"eta_remaining,omitempty"`
	TripProgress *float64 `json:"trip_progress,omitempty"`
}

// View returns a copy of the current state with its countdowns.
func (s *RideService) View() RideView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := RideView{RideState: s.state.Clone()}
	if s.timer == nil || s.armedFor <= 0 {
		return view
	}
	elapsed := s.deps.Clock.Now().Sub(s.armedAt)
	switch s.state.Status {
	case entities.RideStatusAccepted:
		remaining := s.remainingMinutes(s.armedFor - elapsed)
		view.ETARemaining = &remaining
	case entities.RideStatusInProgress:
		progress := min(max(float64(elapsed)/float64(s.armedFor), 0), 1)
		view.TripProgress = &progress
	}
	return view
}

// remainingMinutes rounds up, so the countdown reads 1 until the driver is
// actually there.
func (s *RideService) remainingMinutes(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	minute := s.deps.Simulation.MinuteDuration
	return int((d + minute - 1) / minute)
}

// Marker returns the car marker as the map should draw it now.
func (s *RideService) Marker() mapview.Marker {
	return s.animator.Marker()
}

// Route returns the leg the map shows for the current status, if any.
func (s *RideService) Route() (mapview.Route, bool) {
	status := s.Snapshot().Status
	return mapview.RouteFor(status, s.animator.Marker().Position)
}

// RequestRide submits the booking form. The ride moves to REQUESTING at once
// and the fare is estimated in the background. The returned channel yields
// exactly one FareResult and is then closed.
func (s *RideService) RequestRide(ctx context.Context, req RideRequest) (entities.RideState, <-chan FareResult, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return entities.RideState{}, nil, ErrSessionClosed
	}
	if err := s.apply(entities.RequestEvent{
		Pickup:      req.Pickup,
		Destination: req.Destination,
		VehicleType: req.VehicleType,
	}); err != nil {
		s.mu.Unlock()
		return entities.RideState{}, nil, err
	}
	generation := s.generation
	details := s.state.Details.Clone()
	state := s.state.Clone()
	s.mu.Unlock()

	s.logger.Info("ride requested",
		"pickup", details.Pickup, "destination", details.Destination, "vehicle_type", details.VehicleType)

	// The estimate outlives the HTTP request that started it.
	fareCtx := context.WithoutCancel(ctx)
	results := make(chan FareResult, 1)
	go func() {
		defer close(results)
		quote := s.deps.Fares.EstimateFare(fareCtx, details.Pickup, details.Destination, details.VehicleType)
		results <- s.applyFare(generation, quote)
	}()

	return state, results, nil
}

func (s *RideService) applyFare(generation uint64, quote assistant.FareQuote) FareResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		s.logger.Debug("dropping stale fare estimate", "fare", quote.Amount)
		return FareResult{Quote: quote, State: s.state.Clone()}
	}
	if err := s.apply(entities.FareReadyEvent{Fare: quote.Amount, Notice: quote.Notice}); err != nil {
		s.logger.Error("could not apply fare", "error", err)
		return FareResult{Quote: quote, State: s.state.Clone()}
	}
	if quote.Source == assistant.FareSourceFallback {
		s.deps.Notifier.FareFallback(s.sessionID, quote)
	}
	s.arm(s.deps.Simulation.SearchDelay, s.onSearchElapsed)
	return FareResult{Quote: quote, Applied: true, State: s.state.Clone()}
}

// Cancel abandons a ride that is requesting, searching or waiting for its
// driver.
func (s *RideService) Cancel(ctx context.Context) (entities.RideState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.apply(entities.CancelEvent{}); err != nil {
		return s.state.Clone(), err
	}
	s.logger.Info("ride cancelled")
	return s.state.Clone(), nil
}

// Reset returns to IDLE from any state ("Book Another Ride").
func (s *RideService) Reset(ctx context.Context) (entities.RideState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.apply(entities.ResetEvent{}); err != nil {
		return s.state.Clone(), err
	}
	return s.state.Clone(), nil
}

// AcceptAsDriver lets the driver console take the ride being searched for.
// The search timer is skipped and a driver and ETA are drawn right away.
func (s *RideService) AcceptAsDriver(ctx context.Context) (entities.RideState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Status != entities.RideStatusSearching {
		return s.state.Clone(), fmt.Errorf("%w: accept on %s", entities.ErrInvalidTransition, s.state.Status)
	}
	if err := s.match(ctx); err != nil {
		return s.state.Clone(), err
	}
	return s.state.Clone(), nil
}

// DeclineAsDriver drops the incoming request.
func (s *RideService) DeclineAsDriver(ctx context.Context) (entities.RideState, error) {
	return s.Reset(ctx)
}

// CompleteAsDriver ends the trip without waiting for the trip timer.
func (s *RideService) CompleteAsDriver(ctx context.Context) (entities.RideState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.apply(entities.CompleteEvent{}); err != nil {
		return s.state.Clone(), err
	}
	s.deps.Notifier.TripCompleted(s.sessionID, s.state.Details)
	return s.state.Clone(), nil
}

// Navigation returns where the driver is headed.
func (s *RideService) Navigation() (Navigation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	nav := Navigation{Status: s.state.Status, Details: s.state.Details.Clone()}
	switch s.state.Status {
	case entities.RideStatusAccepted:
		nav.Label, nav.Target = NavigatePickup, mapview.Pickup
	case entities.RideStatusInProgress:
		nav.Label, nav.Target = NavigateDropOff, mapview.Destination
	default:
		return Navigation{}, ErrNoActiveRide
	}
	return nav, nil
}

// ReportEmergency is only accepted while a driver is assigned.
func (s *RideService) ReportEmergency(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Status.IsActive() {
		return "", ErrNoActiveRide
	}
	s.deps.Notifier.Emergency(s.sessionID, s.state.Clone())
	return EmergencyAck, nil
}

// Close disarms the timer and invalidates everything in flight. The ride
// state stays readable but no longer changes.
func (s *RideService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.generation++
	s.disarm()
}

// apply runs one event through the reducer. Callers hold s.mu.
func (s *RideService) apply(ev entities.RideEvent) error {
	if s.closed {
		return ErrSessionClosed
	}
	prev := s.state.Status
	next, err := entities.Reduce(s.state, ev)
	if err != nil {
		return err
	}

	s.state = next
	s.generation++
	s.disarm()

	if prev != next.Status || next.Status.IsTerminal() {
		s.animator.Follow(next.Status)
	}
	s.deps.Notifier.RideStateChanged(s.sessionID, next.Clone())
	return nil
}

// arm schedules fn to run after d, tagged with the current generation.
// Callers hold s.mu.
func (s *RideService) arm(d time.Duration, fn func(generation uint64)) {
	generation := s.generation
	s.armedAt, s.armedFor = s.deps.Clock.Now(), d
	s.timer = s.deps.Clock.AfterFunc(d, func() { fn(generation) })
}

func (s *RideService) disarm() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.armedAt, s.armedFor = time.Time{}, 0
}
