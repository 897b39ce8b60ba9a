package entities

import "errors"

var ErrInvalidViewMode = errors.New("invalid view mode")

// ViewMode is which side of the demo the user is looking at. Both modes act
// on the same ride.
type ViewMode string

const (
	ViewModePassenger ViewMode = "passenger"
	ViewModeDriver    ViewMode = "driver"
)

func ParseViewMode(s string) (ViewMode, error) {
	switch m := ViewMode(s); m {
	case ViewModePassenger, ViewModeDriver:
		return m, nil
	}
	return "", ErrInvalidViewMode
}
