// Package mapview animates the car marker on the stylized map. Positions are
// percentages of the map's width and height; there is no road graph, the car
// simply slides along a straight line between fixed points.
package mapview

import (
	"math"
	"sync"
	"time"

	"movi/internal/clock"
	"movi/internal/domain/entities"
)

// Point is a position on the map in percent of width (X) and height (Y).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

var (
	Origin      = Point{X: 10, Y: 15}
	Pickup      = Point{X: 40, Y: 75}
	Destination = Point{X: 70, Y: 25}
)

// OriginHeading is the resting heading of the car icon, in degrees.
const OriginHeading = 45.0

// Marker is a snapshot of the car for rendering.
type Marker struct {
	Position Point   `json:"position"`
	Heading  float64 `json:"heading"`
	Moving   bool    `json:"moving"`
	Progress float64 `json:"progress"`
}

// Route is the leg the map currently draws, if any.
type Route struct {
	Leg  string `json:"leg"`
	From Point  `json:"from"`
	To   Point  `json:"to"`
}

const (
	LegToPickup      = "to_pickup"
	LegToDestination = "to_destination"
)

// Interpolate returns the point at the given progress along the segment.
// Progress is clamped to [0,1].
func Interpolate(from, to Point, progress float64) Point {
	progress = math.Max(0, math.Min(1, progress))
	return Point{
		X: from.X + (to.X-from.X)*progress,
		Y: from.Y + (to.Y-from.Y)*progress,
	}
}

// Heading returns the icon rotation for travelling from one point to another.
// Screen Y grows downward and the icon points up at 0°, hence the +90.
func Heading(from, to Point) float64 {
	return math.Atan2(to.Y-from.Y, to.X-from.X)*180/math.Pi + 90
}

// Animator tracks one marker. Position is computed lazily from the clock, so
// nothing ticks while no one is looking at the map.
type Animator struct {
	mu       sync.Mutex
	clock    clock.Clock
	pickup   time.Duration
	trip     time.Duration
	from     Point
	to       Point
	start    time.Time
	duration time.Duration
	heading  float64
}

func NewAnimator(c clock.Clock, pickupDuration, tripDuration time.Duration) *Animator {
	return &Animator{
		clock:   c,
		pickup:  pickupDuration,
		trip:    tripDuration,
		from:    Origin,
		to:      Origin,
		heading: OriginHeading,
	}
}

// Follow moves the marker the way the map reacts to a ride status change.
// Statuses with no map effect (REQUESTING, SEARCHING) leave it alone.
func (a *Animator) Follow(status entities.RideStatus) {
	switch {
	case status == entities.RideStatusAccepted:
		a.AnimateTo(Pickup, a.pickup)
	case status == entities.RideStatusInProgress:
		a.AnimateTo(Destination, a.trip)
	case status.IsTerminal():
		a.Snap(Origin, OriginHeading)
	}
}

// AnimateTo starts a linear move from wherever the marker is now.
func (a *Animator) AnimateTo(target Point, d time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.clock.Now()
	current := a.positionLocked(now)
	a.from = current
	a.to = target
	a.start = now
	a.duration = d
	if current != target {
		a.heading = Heading(current, target)
	}
}

// Snap places the marker without animating.
func (a *Animator) Snap(p Point, heading float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.from = p
	a.to = p
	a.duration = 0
	a.heading = heading
}

func (a *Animator) Marker() Marker {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.clock.Now()
	progress := a.progressLocked(now)
	return Marker{
		Position: Interpolate(a.from, a.to, progress),
		Heading:  a.heading,
		Moving:   progress < 1,
		Progress: progress,
	}
}

func (a *Animator) positionLocked(now time.Time) Point {
	return Interpolate(a.from, a.to, a.progressLocked(now))
}

func (a *Animator) progressLocked(now time.Time) float64 {
	if a.duration <= 0 {
		return 1
	}
	return math.Min(float64(now.Sub(a.start))/float64(a.duration), 1)
}

// RouteFor returns the leg the map draws for a status: the approach to the
// pickup while a driver is on the way, the trip once it is under way.
func RouteFor(status entities.RideStatus, car Point) (Route, bool) {
	switch status {
	case entities.RideStatusAccepted:
		return Route{Leg: LegToPickup, From: car, To: Pickup}, true
	case entities.RideStatusInProgress:
		return Route{Leg: LegToDestination, From: Pickup, To: Destination}, true
	}
	return Route{}, false
}
