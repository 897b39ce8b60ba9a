package services

import (
	"log/slog"

	"movi/internal/assistant"
	"movi/internal/domain/entities"
)

// Notification types pushed to a session's WebSocket clients.
const (
	EventRideState      = "ride_state"
	EventNoDriver       = "no_driver"
	EventDriverAssigned = "driver_assigned"
	EventTripStarted    = "trip_started"
	EventTripCompleted  = "trip_completed"
	EventFareFallback   = "fare_fallback"
	EventEmergency      = "emergency"
)

// Notification is the envelope written to WebSocket clients.
type Notification struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
	Data      any    `json:"data"`
}

// Publisher delivers a payload to every client watching a session. It must
// not block: notifications are sent while a session's lock is held.
type Publisher interface {
	Publish(sessionID string, payload any)
}

// NotificationService logs ride events and forwards them to a Publisher.
// With a nil Publisher it only logs, which is all the tests need.
type NotificationService struct {
	logger    *slog.Logger
	publisher Publisher
}

func NewNotificationService(logger *slog.Logger, publisher Publisher) *NotificationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationService{logger: logger, publisher: publisher}
}

func (s *NotificationService) publish(sessionID, eventType string, data any) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(sessionID, Notification{Type: eventType, SessionID: sessionID, Data: data})
}

// RideStateChanged sends the full ride state after every transition.
func (s *NotificationService) RideStateChanged(sessionID string, state entities.RideState) {
	s.logger.Debug("ride state changed", "session_id", sessionID, "status", state.Status)
	s.publish(sessionID, EventRideState, state)
}

// NoDriverAvailable tells the passenger the search came back empty.
func (s *NotificationService) NoDriverAvailable(sessionID string, vt entities.VehicleType, notice string) {
	s.logger.Warn("no driver available", "session_id", sessionID, "vehicle_type", vt)
	s.publish(sessionID, EventNoDriver, map[string]any{
		"vehicle_type": vt,
		"notice":       notice,
	})
}

func (s *NotificationService) DriverAssigned(sessionID string, driver entities.Driver, eta int) {
	s.logger.Info("driver assigned",
		"session_id", sessionID, "driver_id", driver.ID, "driver", driver.Name, "eta_minutes", eta)
	s.publish(sessionID, EventDriverAssigned, map[string]any{
		"driver": driver,
		"eta":    eta,
	})
}

func (s *NotificationService) TripStarted(sessionID string, rideDuration int) {
	s.logger.Info("trip started", "session_id", sessionID, "ride_duration_minutes", rideDuration)
	s.publish(sessionID, EventTripStarted, map[string]any{"ride_duration": rideDuration})
}

func (s *NotificationService) TripCompleted(sessionID string, details *entities.RideDetails) {
	var fare *float64
	if details != nil {
		fare = details.Fare
	}
	s.logger.Info("trip completed", "session_id", sessionID, "fare", fare)
	s.publish(sessionID, EventTripCompleted, map[string]any{"fare": fare})
}

// FareFallback is sent when the fare on screen did not come from the model.
func (s *NotificationService) FareFallback(sessionID string, quote assistant.FareQuote) {
	s.logger.Warn("using fallback fare",
		"session_id", sessionID, "fare", quote.Amount, "source", quote.Source)
	s.publish(sessionID, EventFareFallback, quote)
}

// Emergency is logged at error level so it stands out in any log pipeline.
func (s *NotificationService) Emergency(sessionID string, state entities.RideState) {
	attrs := []any{"session_id", sessionID, "status", state.Status}
	if state.Details != nil && state.Details.Driver != nil {
		attrs = append(attrs, "driver_id", state.Details.Driver.ID)
	}
	s.logger.Error("emergency reported", attrs...)
	s.publish(sessionID, EventEmergency, map[string]any{
		"status":  state.Status,
		"message": EmergencyAck,
	})
}
