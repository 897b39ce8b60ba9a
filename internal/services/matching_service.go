package services

import (
	"context"
	"errors"
	"time"

	"movi/internal/dispatch"
	"movi/internal/domain/entities"
)

// The trip timers. Once a fare is on screen the ride runs by itself:
//
//	SEARCHING  --SearchDelay-->          ACCEPTED (or IDLE, no driver)
//	ACCEPTED   --ETA minutes-->          IN_PROGRESS
//	IN_PROGRESS --duration minutes-->    COMPLETED
//
// A simulated minute lasts Simulation.MinuteDuration of wall time.
//
// Go Learning Note — Timer Callbacks and Locks:
// Each callback runs on its own goroutine (time.AfterFunc) and takes the
// session lock before touching state. The first thing it does under the lock
// is compare generations; a cancel that raced with the timer firing wins.

func (s *RideService) stale(generation uint64) bool {
	if generation != s.generation {
		s.logger.Debug("ignoring stale timer", "generation", generation, "current", s.generation)
		return true
	}
	return false
}

func (s *RideService) minutes(n int) time.Duration {
	return time.Duration(n) * s.deps.Simulation.MinuteDuration
}

func (s *RideService) onSearchElapsed(generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stale(generation) {
		return
	}
	if err := s.match(context.Background()); err != nil {
		s.logger.Error("matching failed", "error", err)
		// Treat it like an empty roster rather than search forever.
		if s.state.Status == entities.RideStatusSearching {
			vt := s.state.Details.VehicleType
			if s.apply(entities.NoDriverEvent{}) == nil {
				s.deps.Notifier.NoDriverAvailable(s.sessionID, vt, s.state.Notice)
			}
		}
	}
}

// match picks a driver for the ride being searched and starts the pickup
// timer, or returns the ride to IDLE when no driver drives the requested
// class. Callers hold s.mu.
func (s *RideService) match(ctx context.Context) error {
	details := s.state.Details
	vt := details.VehicleType

	driver, err := s.deps.Picker.PickDriver(ctx, vt)
	if errors.Is(err, dispatch.ErrNoDriverAvailable) {
		if err := s.apply(entities.NoDriverEvent{}); err != nil {
			return err
		}
		s.deps.Notifier.NoDriverAvailable(s.sessionID, vt, s.state.Notice)
		return nil
	}
	if err != nil {
		return err
	}

	eta, err := s.deps.Estimator.EstimateETA(ctx, driver, details)
	if err != nil {
		return err
	}
	if err := s.apply(entities.DriverFoundEvent{Driver: *driver, ETA: eta}); err != nil {
		return err
	}
	s.deps.Notifier.DriverAssigned(s.sessionID, *driver, eta)
	s.arm(s.minutes(eta), s.onDriverArrived)
	return nil
}

func (s *RideService) onDriverArrived(generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stale(generation) {
		return
	}
	duration, err := s.deps.Estimator.EstimateDuration(context.Background(), s.state.Details)
	if err != nil {
		s.logger.Error("could not estimate ride duration", "error", err)
		return
	}
	if err := s.apply(entities.EtaElapsedEvent{RideDuration: duration}); err != nil {
		s.logger.Error("could not start trip", "error", err)
		return
	}
	s.deps.Notifier.TripStarted(s.sessionID, duration)
	s.arm(s.minutes(duration), s.onTripElapsed)
}

func (s *RideService) onTripElapsed(generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stale(generation) {
		return
	}
	if err := s.apply(entities.DurationElapsedEvent{}); err != nil {
		s.logger.Error("could not complete trip", "error", err)
		return
	}
	s.deps.Notifier.TripCompleted(s.sessionID, s.state.Details)
}
