// Package dispatch decides who drives and how long things take. The ride
// service only sees the DriverPicker and TripEstimator capabilities, so the
// random mock below can be swapped for a real matching or routing service
// without touching the state machine.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"movi/internal/config"
	"movi/internal/domain/entities"
	"movi/internal/repository"
)

var ErrNoDriverAvailable = errors.New("no driver available for vehicle type")

// DriverPicker picks a driver for a vehicle class.
type DriverPicker interface {
	PickDriver(ctx context.Context, vt entities.VehicleType) (*entities.Driver, error)
}

// TripEstimator estimates, in simulated minutes, how long the driver needs to
// reach the pickup and how long the trip itself takes.
type TripEstimator interface {
	EstimateETA(ctx context.Context, driver *entities.Driver, details *entities.RideDetails) (int, error)
	EstimateDuration(ctx context.Context, details *entities.RideDetails) (int, error)
}

// MockDispatcher stands in for a dispatch service: it picks uniformly among
// roster drivers of the requested class and draws ETA and ride duration
// uniformly from the configured ranges.
//
// Go Learning Note — math/rand/v2:
// A *rand.Rand is not safe for concurrent use, and every session fires its
// own timers, so the source is guarded by a mutex. Tests pass a seeded PCG
// source to get repeatable draws.
type MockDispatcher struct {
	drivers repository.DriverRepository
	cfg     config.SimulationConfig

	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockDispatcher creates a dispatcher. A nil rng uses a randomly seeded
// source.
func NewMockDispatcher(drivers repository.DriverRepository, cfg config.SimulationConfig, rng *rand.Rand) *MockDispatcher {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &MockDispatcher{
		drivers: drivers,
		cfg:     cfg,
		rng:     rng,
	}
}

func (d *MockDispatcher) PickDriver(ctx context.Context, vt entities.VehicleType) (*entities.Driver, error) {
	candidates, err := d.drivers.ListByVehicleType(ctx, vt)
	if err != nil {
		return nil, fmt.Errorf("list %s drivers: %w", vt, err)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoDriverAvailable, vt)
	}
	return candidates[d.intN(len(candidates))], nil
}

func (d *MockDispatcher) EstimateETA(ctx context.Context, driver *entities.Driver, details *entities.RideDetails) (int, error) {
	return d.between(d.cfg.ETAMinMinutes, d.cfg.ETAMaxMinutes), nil
}

func (d *MockDispatcher) EstimateDuration(ctx context.Context, details *entities.RideDetails) (int, error) {
	return d.between(d.cfg.DurationMinMinutes, d.cfg.DurationMaxMinutes), nil
}

// between returns a uniform integer in [lo, hi).
func (d *MockDispatcher) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + d.intN(hi-lo)
}

func (d *MockDispatcher) intN(n int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rng.IntN(n)
}
