// Package skyclock computes where the Sun and Moon are in the sky and when
// they cross the horizon and twilight altitudes, for any instant and place.
//
// All angles in the public API are degrees. Azimuth is measured from north,
// clockwise, in [0, 360). Instants are absolute; the Location of a date
// argument only picks which calendar day is meant.
//
// The models are low precision (arc-minutes for the Sun, a fraction of a
// degree for the Moon) and every function is pure, so results can be
// computed concurrently without coordination.
//
// Events that do not happen on a given day (no sunset during the midnight
// sun, no astronomical night in a high-latitude summer) are reported as
// absent rather than as an error or a sentinel time.
package skyclock

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNoRiseNoSet is returned when a body does not rise or set on that date at that location.
	ErrNoRiseNoSet = errors.New("body does not rise or set on this date")

	// ErrUnknownBody is returned for a Body value outside Sun and Moon.
	ErrUnknownBody = errors.New("unknown body")

	// ErrInvalidCoordinates is returned by Coordinates.Validate.
	ErrInvalidCoordinates = errors.New("invalid coordinates")

	// ErrDuplicateEvent is returned when two thresholds claim the same event name.
	ErrDuplicateEvent = errors.New("duplicate event name")

	// ErrInvalidThreshold is returned for a threshold with an empty name or a
	// non-finite angle.
	ErrInvalidThreshold = errors.New("invalid threshold")
)

// Coordinates represent an observer's location.
type Coordinates struct {
	Lat       float64 `json:"lat" yaml:"lat"`             // degrees, north positive
	Lon       float64 `json:"lon" yaml:"lon"`             // degrees, east positive (west negative, e.g. -105 for 105°W)
	Elevation float64 `json:"elevation" yaml:"elevation"` // meters above the surrounding terrain; lowers the horizon
}

// Validate reports whether c is a usable location. The calculation functions
// themselves never validate; bad input simply propagates as NaN.
func (c Coordinates) Validate() error {
	switch {
	case math.IsNaN(c.Lat) || c.Lat < -90 || c.Lat > 90:
		return fmt.Errorf("latitude %v outside [-90, 90]: %w", c.Lat, ErrInvalidCoordinates)
	case math.IsNaN(c.Lon) || c.Lon < -180 || c.Lon > 180:
		return fmt.Errorf("longitude %v outside [-180, 180]: %w", c.Lon, ErrInvalidCoordinates)
	case math.IsNaN(c.Elevation) || math.IsInf(c.Elevation, 0):
		return fmt.Errorf("elevation %v is not finite: %w", c.Elevation, ErrInvalidCoordinates)
	}
	return nil
}

func (c Coordinates) String() string {
	ns, ew := 'N', 'E'
	lat, lon := c.Lat, c.Lon
	if lat < 0 {
		ns, lat = 'S', -lat
	}
	if lon < 0 {
		ew, lon = 'W', -lon
	}
	return fmt.Sprintf("%.4f°%c %.4f°%c", lat, ns, lon, ew)
}
