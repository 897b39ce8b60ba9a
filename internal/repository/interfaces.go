package repository

import (
	"context"

	"movi/internal/domain/entities"
)

type DriverRepository interface {
	GetByID(ctx context.Context, id int) (*entities.Driver, error)
	List(ctx context.Context) ([]*entities.Driver, error)
	ListByVehicleType(ctx context.Context, vt entities.VehicleType) ([]*entities.Driver, error)
}

type ConversationRepository interface {
	GetOrCreate(ctx context.Context, sessionID string) (*entities.Conversation, error)
	Update(ctx context.Context, conv *entities.Conversation) error
	Delete(ctx context.Context, sessionID string) error
}
