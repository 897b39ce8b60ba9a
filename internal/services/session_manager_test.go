package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"movi/internal/domain/entities"
	"movi/internal/repository/memory"
)

func TestSessionManager_Lifecycle(t *testing.T) {
	deps, fake, _, _ := setupRideDeps(memory.DefaultRoster())
	conversations := memory.NewConversationRepository(fake.Now)
	m := NewSessionManager(deps, conversations)
	ctx := context.Background()

	session := m.Create(ctx)
	if session.ID == "" || session.Mode() != entities.ViewModePassenger {
		t.Fatalf("Unexpected new session %+v", session)
	}
	if got, err := m.Get(session.ID); err != nil || got != session {
		t.Fatalf("Get returned %v, %v", got, err)
	}

	session.SetMode(entities.ViewModeDriver)
	if session.Mode() != entities.ViewModeDriver {
		t.Error("Expected driver mode")
	}

	if _, _, err := session.Ride.RequestRide(ctx, walkThrough); err != nil {
		t.Fatalf("RequestRide failed: %v", err)
	}
	if err := m.Close(ctx, session.ID); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := m.Get(session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound after close, got %v", err)
	}
	if err := m.Close(ctx, session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected second close to fail, got %v", err)
	}

	fake.Advance(time.Hour)
	if f := session.Ride.Snapshot().Status; f.IsActive() || f == entities.RideStatusCompleted {
		t.Errorf("Closed session kept running: %s", f)
	}
}

func TestSessionManager_SessionsAreIndependent(t *testing.T) {
	deps, fake, _, _ := setupRideDeps(memory.DefaultRoster())
	m := NewSessionManager(deps, nil)
	ctx := context.Background()

	a := m.Create(ctx)
	b := m.Create(ctx)
	if a.ID == b.ID {
		t.Fatal("Expected distinct session ids")
	}

	_, results, err := a.Ride.RequestRide(ctx, walkThrough)
	if err != nil {
		t.Fatalf("RequestRide failed: %v", err)
	}
	<-results
	fake.Advance(5 * time.Second)

	if got := a.Ride.Snapshot().Status; got != entities.RideStatusAccepted {
		t.Errorf("Expected session a ACCEPTED, got %s", got)
	}
	if got := b.Ride.Snapshot().Status; got != entities.RideStatusIdle {
		t.Errorf("Expected session b IDLE, got %s", got)
	}

	m.CloseAll(ctx)
	if m.Count() != 0 {
		t.Errorf("Expected no sessions after CloseAll, got %d", m.Count())
	}
}

func TestRosterService_List(t *testing.T) {
	svc := NewRosterService(memory.NewDriverRepository(memory.DefaultRoster()), 6)
	ctx := context.Background()

	all, err := svc.List(ctx, "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("Expected 4 roster drivers, got %d", len(all))
	}
	for _, e := range all {
		if len(e.Geohash) != 6 || !strings.HasPrefix(e.Geohash, "9q5") {
			t.Errorf("Driver %d has unexpected geohash %q", e.ID, e.Geohash)
		}
	}

	xl, err := svc.List(ctx, entities.VehicleTypeXL)
	if err != nil {
		t.Fatalf("List XL failed: %v", err)
	}
	if len(xl) != 1 || xl[0].Name != "John" {
		t.Errorf("Expected only John for XL, got %+v", xl)
	}

	if _, err := svc.Get(ctx, 99); !errors.Is(err, memory.ErrDriverNotFound) {
		t.Errorf("Expected ErrDriverNotFound, got %v", err)
	}
}

type recordingCloser struct {
	closed []string
}

func (r *recordingCloser) CloseSession(sessionID string) {
	r.closed = append(r.closed, sessionID)
}

func TestSessionManager_CloseReleasesSessionResources(t *testing.T) {
	deps, fake, _, _ := setupRideDeps(memory.DefaultRoster())
	conversations := memory.NewConversationRepository(fake.Now)
	support := NewSupportService(conversations, nil, fake, discardLogger())
	closer := &recordingCloser{}
	m := NewSessionManager(deps, conversations, closer, support)
	ctx := context.Background()

	a := m.Create(ctx)
	b := m.Create(ctx)
	support.sessionLock(a.ID)
	support.sessionLock(b.ID)

	if err := m.Close(ctx, a.ID); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if len(closer.closed) != 1 || closer.closed[0] != a.ID {
		t.Errorf("Expected closer to see %s, got %v", a.ID, closer.closed)
	}

	m.CloseAll(ctx)
	if len(closer.closed) != 2 || closer.closed[1] != b.ID {
		t.Errorf("Expected CloseAll to release %s, got %v", b.ID, closer.closed)
	}
	if n := len(support.locks); n != 0 {
		t.Errorf("Expected support locks to be released, got %d", n)
	}
}
