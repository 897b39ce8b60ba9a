package dispatch

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"movi/internal/config"
	"movi/internal/domain/entities"
	"movi/internal/repository/memory"
)

func setupDispatcher(roster []entities.Driver) *MockDispatcher {
	cfg := config.NewDefaultConfig()
	return NewMockDispatcher(memory.NewDriverRepository(roster), cfg.Simulation, rand.New(rand.NewPCG(1, 2)))
}

func TestMockDispatcher_PickDriverMatchesVehicleType(t *testing.T) {
	d := setupDispatcher(memory.DefaultRoster())
	ctx := context.Background()

	for _, vt := range entities.AllVehicleTypes() {
		driver, err := d.PickDriver(ctx, vt)
		if err != nil {
			t.Fatalf("PickDriver(%s) failed: %v", vt, err)
		}
		if driver.Vehicle.Type != vt {
			t.Errorf("Expected %s driver, got %s", vt, driver.Vehicle.Type)
		}
	}
}

func TestMockDispatcher_PickDriverIsUniform(t *testing.T) {
	roster := []entities.Driver{
		{ID: 10, Vehicle: entities.Vehicle{Type: entities.VehicleTypeStandard}},
		{ID: 11, Vehicle: entities.Vehicle{Type: entities.VehicleTypeStandard}},
		{ID: 12, Vehicle: entities.Vehicle{Type: entities.VehicleTypePremium}},
	}
	d := setupDispatcher(roster)
	counts := map[int]int{}

	for i := 0; i < 2000; i++ {
		driver, err := d.PickDriver(context.Background(), entities.VehicleTypeStandard)
		if err != nil {
			t.Fatalf("PickDriver failed: %v", err)
		}
		counts[driver.ID]++
	}

	if counts[12] != 0 {
		t.Errorf("Premium driver picked for a Standard ride %d times", counts[12])
	}
	for _, id := range []int{10, 11} {
		if counts[id] < 800 || counts[id] > 1200 {
			t.Errorf("Driver %d picked %d times out of 2000, expected roughly half", id, counts[id])
		}
	}
}

func TestMockDispatcher_NoDriverAvailable(t *testing.T) {
	d := setupDispatcher(memory.DefaultRoster()[:2])

	_, err := d.PickDriver(context.Background(), entities.VehicleTypeShare)
	if !errors.Is(err, ErrNoDriverAvailable) {
		t.Errorf("Expected ErrNoDriverAvailable, got %v", err)
	}
}

func TestMockDispatcher_EstimatesWithinBounds(t *testing.T) {
	d := setupDispatcher(memory.DefaultRoster())
	ctx := context.Background()
	details := &entities.RideDetails{Pickup: "A", Destination: "B", VehicleType: entities.VehicleTypeStandard}
	seenETA := map[int]bool{}
	seenDur := map[int]bool{}

	for i := 0; i < 1000; i++ {
		eta, _ := d.EstimateETA(ctx, nil, details)
		if eta < 5 || eta >= 15 {
			t.Fatalf("ETA %d outside [5,15)", eta)
		}
		seenETA[eta] = true

		dur, _ := d.EstimateDuration(ctx, details)
		if dur < 10 || dur >= 20 {
			t.Fatalf("Duration %d outside [10,20)", dur)
		}
		seenDur[dur] = true
	}

	if len(seenETA) != 10 || len(seenDur) != 10 {
		t.Errorf("Expected every value of both ranges to appear, got %d ETAs and %d durations", len(seenETA), len(seenDur))
	}
}
