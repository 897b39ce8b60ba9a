// Package entities defines the core domain models of the Movi ride simulation:
// the ride state machine, the mock driver roster entries, and the support chat
// conversation. These types have no dependencies on HTTP, timers or the
// text-generation service.
//
// Go Learning Note — "internal/" directory:
// Packages under internal/ cannot be imported by code outside this module. Go
// enforces this at the compiler level, so nothing outside the service can
// depend on these types directly.
package entities

// Vehicle describes the car a driver operates.
type Vehicle struct {
	Model        string      `json:"model"`
	LicensePlate string      `json:"license_plate"`
	Type         VehicleType `json:"type"`
}

// Driver is an entry of the static mock roster. Drivers are reference data:
// they are seeded once at start-up and never created or destroyed while the
// service runs.
//
// Go Learning Note — Struct Tags:
// The `json:"..."` annotations control how encoding/json serializes each
// field. Gin uses the same tags when it renders c.JSON responses.
type Driver struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Rating   float64  `json:"rating"`
	Vehicle  Vehicle  `json:"vehicle"`
	Location Location `json:"location"`
}

// Drives reports whether the driver operates a car of the given class.
func (d *Driver) Drives(vt VehicleType) bool {
	return d.Vehicle.Type == vt
}
