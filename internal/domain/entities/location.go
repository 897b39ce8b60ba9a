package entities

// Location is a latitude/longitude pair. Roster drivers carry one, but the
// simulation never routes on it; the map works in normalized screen points.
//
// Go Learning Note — Value Types vs Reference Types:
// Location is a small immutable holder (two float64s), so it is passed and
// returned by value rather than by pointer.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NewLocation creates a Location value from latitude and longitude.
func NewLocation(lat, lng float64) Location {
	return Location{Lat: lat, Lng: lng}
}
