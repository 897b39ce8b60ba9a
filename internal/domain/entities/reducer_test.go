package entities

import (
	"errors"
	"testing"
)

var testDriver = Driver{
	ID:      1,
	Name:    "Alex",
	Rating:  4.9,
	Vehicle: Vehicle{Model: "Toyota Prius", LicensePlate: "B-123-XYZ", Type: VehicleTypeStandard},
}

func mustReduce(t *testing.T, state RideState, ev RideEvent) RideState {
	t.Helper()
	next, err := Reduce(state, ev)
	if err != nil {
		t.Fatalf("Reduce(%s, %s) failed: %v", state.Status, ev.Kind(), err)
	}
	return next
}

func searchingState(t *testing.T, vt VehicleType, fare float64) RideState {
	t.Helper()
	s := mustReduce(t, NewRideState(), RequestEvent{Pickup: "123 Main St", Destination: "456 Oak Ave", VehicleType: vt})
	return mustReduce(t, s, FareReadyEvent{Fare: fare})
}

func TestReduce_RequestAndFareForAllVehicleTypes(t *testing.T) {
	for _, vt := range AllVehicleTypes() {
		t.Run(string(vt), func(t *testing.T) {
			s := mustReduce(t, NewRideState(), RequestEvent{Pickup: "A", Destination: "B", VehicleType: vt})
			if s.Status != RideStatusRequesting {
				t.Fatalf("Expected REQUESTING, got %s", s.Status)
			}

			s = mustReduce(t, s, FareReadyEvent{Fare: 23.75})
			if s.Status != RideStatusSearching {
				t.Fatalf("Expected SEARCHING, got %s", s.Status)
			}
			if s.Details.Fare == nil || *s.Details.Fare != 23.75 {
				t.Errorf("Expected fare 23.75, got %v", s.Details.Fare)
			}
			if s.Details.VehicleType != vt {
				t.Errorf("Expected vehicle type %s, got %s", vt, s.Details.VehicleType)
			}
		})
	}
}

func TestReduce_RequestValidation(t *testing.T) {
	tests := []struct {
		name    string
		event   RequestEvent
		wantErr error
	}{
		{"missing pickup", RequestEvent{Pickup: " ", Destination: "B", VehicleType: VehicleTypeXL}, ErrMissingLocations},
		{"missing destination", RequestEvent{Pickup: "A", Destination: "", VehicleType: VehicleTypeXL}, ErrMissingLocations},
		{"bad vehicle", RequestEvent{Pickup: "A", Destination: "B", VehicleType: "Bike"}, ErrInvalidVehicleType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Reduce(NewRideState(), tt.event)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
			if s.Status != RideStatusIdle {
				t.Errorf("Expected state to stay IDLE, got %s", s.Status)
			}
		})
	}
}

func TestReduce_FullLifecycle(t *testing.T) {
	s := searchingState(t, VehicleTypeStandard, 15.50)

	s = mustReduce(t, s, DriverFoundEvent{Driver: testDriver, ETA: 7})
	if s.Status != RideStatusAccepted {
		t.Fatalf("Expected ACCEPTED, got %s", s.Status)
	}
	if s.Details.Driver == nil || s.Details.Driver.ID != 1 || *s.Details.ETA != 7 {
		t.Errorf("Expected driver 1 with ETA 7, got %+v", s.Details)
	}

	s = mustReduce(t, s, EtaElapsedEvent{RideDuration: 12})
	if s.Status != RideStatusInProgress || *s.Details.RideDuration != 12 {
		t.Fatalf("Expected IN_PROGRESS with duration 12, got %s %+v", s.Status, s.Details)
	}

	s = mustReduce(t, s, DurationElapsedEvent{})
	if s.Status != RideStatusCompleted {
		t.Fatalf("Expected COMPLETED, got %s", s.Status)
	}
	if *s.Details.Fare != 15.50 {
		t.Errorf("Expected fare to stay 15.50, got %v", *s.Details.Fare)
	}
}

func TestReduce_NoDriverClearsDetails(t *testing.T) {
	s := mustReduce(t, searchingState(t, VehicleTypePremium, 40), NoDriverEvent{})

	if s.Status != RideStatusIdle {
		t.Errorf("Expected IDLE, got %s", s.Status)
	}
	if s.Details != nil {
		t.Errorf("Expected details to be cleared, got %+v", s.Details)
	}
	if s.Notice == "" {
		t.Error("Expected a notice explaining that no driver was found")
	}
}

func TestReduce_CancelClearsDetails(t *testing.T) {
	searching := searchingState(t, VehicleTypeStandard, 31)
	accepted := mustReduce(t, searching, DriverFoundEvent{Driver: testDriver, ETA: 9})

	for _, s := range []RideState{searching, accepted} {
		t.Run(string(s.Status), func(t *testing.T) {
			next := mustReduce(t, s, CancelEvent{})
			if next.Status != RideStatusIdle || next.Details != nil {
				t.Errorf("Expected IDLE without details, got %s %+v", next.Status, next.Details)
			}
		})
	}
}

func TestReduce_ResetFromAnyState(t *testing.T) {
	accepted := mustReduce(t, searchingState(t, VehicleTypeStandard, 10), DriverFoundEvent{Driver: testDriver, ETA: 5})
	inProgress := mustReduce(t, accepted, EtaElapsedEvent{RideDuration: 10})
	completed := mustReduce(t, inProgress, CompleteEvent{})

	for _, s := range []RideState{NewRideState(), accepted, inProgress, completed} {
		next := mustReduce(t, s, ResetEvent{})
		if next.Status != RideStatusIdle || next.Details != nil {
			t.Errorf("Reset from %s: expected IDLE without details, got %s", s.Status, next.Status)
		}
	}
}

func TestReduce_InvalidTransitions(t *testing.T) {
	searching := searchingState(t, VehicleTypeXL, 20)
	inProgress := mustReduce(t,
		mustReduce(t, searching, DriverFoundEvent{Driver: Driver{ID: 3, Vehicle: Vehicle{Type: VehicleTypeXL}}, ETA: 5}),
		EtaElapsedEvent{RideDuration: 15})

	tests := []struct {
		name  string
		state RideState
		event RideEvent
	}{
		{"fare while idle", NewRideState(), FareReadyEvent{Fare: 10}},
		{"second request", searching, RequestEvent{Pickup: "A", Destination: "B", VehicleType: VehicleTypeXL}},
		{"cancel in progress", inProgress, CancelEvent{}},
		{"complete while searching", searching, CompleteEvent{}},
		{"driver of wrong class", searching, DriverFoundEvent{Driver: testDriver, ETA: 5}},
		{"nil event", searching, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := Reduce(tt.state, tt.event)
			if !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("Expected ErrInvalidTransition, got %v", err)
			}
			if next.Status != tt.state.Status {
				t.Errorf("Expected state to stay %s, got %s", tt.state.Status, next.Status)
			}
		})
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	searching := searchingState(t, VehicleTypeStandard, 18)
	_ = mustReduce(t, searching, DriverFoundEvent{Driver: testDriver, ETA: 6})

	if searching.Details.Driver != nil || searching.Details.ETA != nil {
		t.Errorf("Expected input state to be untouched, got %+v", searching.Details)
	}
}
