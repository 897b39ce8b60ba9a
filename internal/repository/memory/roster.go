package memory

import "movi/internal/domain/entities"

// DefaultRoster is the mock driver roster, one driver per vehicle class.
func DefaultRoster() []entities.Driver {
	return []entities.Driver{
		{
			ID:       1,
			Name:     "Alex",
			Rating:   4.9,
			Vehicle:  entities.Vehicle{Model: "Toyota Prius", LicensePlate: "B-123-XYZ", Type: entities.VehicleTypeStandard},
			Location: entities.NewLocation(34.0522, -118.2437),
		},
		{
			ID:       2,
			Name:     "Maria",
			Rating:   4.8,
			Vehicle:  entities.Vehicle{Model: "Tesla Model S", LicensePlate: "E-456-ABC", Type: entities.VehicleTypePremium},
			Location: entities.NewLocation(34.055, -118.25),
		},
		{
			ID:       3,
			Name:     "John",
			Rating:   4.7,
			Vehicle:  entities.Vehicle{Model: "Ford Explorer", LicensePlate: "S-789-DEF", Type: entities.VehicleTypeXL},
			Location: entities.NewLocation(34.048, -118.24),
		},
		{
			ID:       4,
			Name:     "Li",
			Rating:   4.9,
			Vehicle:  entities.Vehicle{Model: "Honda Odyssey", LicensePlate: "V-101-GHI", Type: entities.VehicleTypeShare},
			Location: entities.NewLocation(34.06, -118.23),
		},
	}
}
