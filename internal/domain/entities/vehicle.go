package entities

import "errors"

var ErrInvalidVehicleType = errors.New("invalid vehicle type")

// VehicleType is the class of car a passenger books. The wire values match
// what the booking form shows, so they are capitalized.
type VehicleType string

const (
	VehicleTypeStandard VehicleType = "Standard"
	VehicleTypePremium  VehicleType = "Premium"
	VehicleTypeXL       VehicleType = "XL"
	VehicleTypeShare    VehicleType = "Share"
)

// AllVehicleTypes returns the vehicle types in the order the booking form
// lists them.
func AllVehicleTypes() []VehicleType {
	return []VehicleType{
		VehicleTypeStandard,
		VehicleTypePremium,
		VehicleTypeXL,
		VehicleTypeShare,
	}
}

// IsValid reports whether v is one of the known vehicle types.
func (v VehicleType) IsValid() bool {
	switch v {
	case VehicleTypeStandard, VehicleTypePremium, VehicleTypeXL, VehicleTypeShare:
		return true
	}
	return false
}

// ParseVehicleType converts a raw API string into a VehicleType.
func ParseVehicleType(s string) (VehicleType, error) {
	v := VehicleType(s)
	if !v.IsValid() {
		return "", ErrInvalidVehicleType
	}
	return v, nil
}
