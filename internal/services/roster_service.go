package services

import (
	"context"

	"github.com/mmcloughlin/geohash"

	"movi/internal/domain/entities"
	"movi/internal/repository"
)

// RosterEntry is a roster driver together with the geohash cell of their
// parking spot, so a client can bucket drivers without doing geometry.
type RosterEntry struct {
	entities.Driver
	Geohash string `json:"geohash"`
}

// RosterService exposes the read-only mock driver roster.
type RosterService struct {
	drivers   repository.DriverRepository
	precision uint
}

func NewRosterService(drivers repository.DriverRepository, precision uint) *RosterService {
	return &RosterService{drivers: drivers, precision: precision}
}

// List returns every roster driver, or only those of one vehicle class when
// vt is non-empty.
func (s *RosterService) List(ctx context.Context, vt entities.VehicleType) ([]RosterEntry, error) {
	var (
		drivers []*entities.Driver
		err     error
	)
	if vt == "" {
		drivers, err = s.drivers.List(ctx)
	} else {
		drivers, err = s.drivers.ListByVehicleType(ctx, vt)
	}
	if err != nil {
		return nil, err
	}

	entries := make([]RosterEntry, 0, len(drivers))
	for _, d := range drivers {
		entries = append(entries, RosterEntry{
			Driver:  *d,
			Geohash: geohash.EncodeWithPrecision(d.Location.Lat, d.Location.Lng, s.precision),
		})
	}
	return entries, nil
}

// Get returns one roster driver.
func (s *RosterService) Get(ctx context.Context, id int) (RosterEntry, error) {
	d, err := s.drivers.GetByID(ctx, id)
	if err != nil {
		return RosterEntry{}, err
	}
	return RosterEntry{
		Driver:  *d,
		Geohash: geohash.EncodeWithPrecision(d.Location.Lat, d.Location.Lng, s.precision),
	}, nil
}
