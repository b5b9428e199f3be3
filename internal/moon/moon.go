// Package moon implements a truncated lunar theory: geocentric position,
// topocentric (parallax-corrected) altitude, rise/set search and the
// illuminated fraction and phase of the disc.
package moon

import (
	"math"
	"time"

	"github.com/thurmanmarka/skyclock/internal/frame"
	"github.com/thurmanmarka/skyclock/internal/solver"
	"github.com/thurmanmarka/skyclock/internal/timeutil"
)

// refractionAtHorizonDeg is the conventional refraction at the horizon (34').
const refractionAtHorizonDeg = 34.0 / 60.0

// Position is the Moon as seen by an observer.
type Position struct {
	Coordinates

	// Horizontal holds the geocentric (geometric) altitude, azimuth and
	// parallactic angle.
	Horizontal frame.Horizontal

	// TopocentricAltitude is the geometric altitude after removing parallax,
	// in radians.
	TopocentricAltitude float64
}

// RiseSet holds lunar rise and set times in UTC.
type RiseSet struct {
	Rise time.Time
	Set  time.Time
}

// HorizontalParallax returns the Moon's horizontal parallax (radians) at
// distanceKm.
func HorizontalParallax(distanceKm float64) float64 {
	if distanceKm <= frame.EarthRadiusKm {
		// ridiculously close / invalid, just clamp
		return timeutil.Deg2Rad(1.0)
	}
	return math.Asin(frame.EarthRadiusKm / distanceKm)
}

// Topocentric converts a geocentric altitude alt (radians) into the altitude
// seen from the Earth's surface for a Moon distanceKm away.
func Topocentric(alt, distanceKm float64) float64 {
	p := HorizontalParallax(distanceKm)
	return alt - math.Asin(math.Sin(p)*math.Cos(alt))
}

// ApparentHorizonAltitude returns the topocentric geometric altitude (radians)
// of the Moon's center when its upper limb touches the apparent horizon:
// refraction plus the distance-dependent semidiameter.
func ApparentHorizonAltitude(distanceKm float64) float64 {
	sd := 0.0
	if distanceKm > frame.MoonRadiusKm {
		sd = math.Asin(frame.MoonRadiusKm / distanceKm)
	}
	return -(timeutil.Deg2Rad(refractionAtHorizonDeg) + sd)
}

// Horizontal computes the Moon's position for an observer at lat, lon
// (degrees) d days after J2000.
func Horizontal(d, lat, lon float64) Position {
	c := GeocentricCoordinates(d)
	h := frame.ToHorizontal(c.Equatorial, lat, lon, d)

	return Position{
		Coordinates:         c,
		Horizontal:          h,
		TopocentricAltitude: Topocentric(h.Altitude, c.Distance),
	}
}

// RiseSetForDate computes the Moon's approximate rise and set times for a given
// calendar date and observer location.
//
// lat, lon in degrees (north/east positive, west negative).
// date can be any time on the calendar date you care about (its Location is
// used to define "midnight" for the search window, which runs to the next
// local midnight).
//
// Returned Rise and Set are in UTC. okRise/okSet indicate whether each event
// was found; when neither is found alwaysUp reports whether the Moon stayed
// above the horizon for the whole window.
func RiseSetForDate(lat, lon float64, date time.Time) (rs RiseSet, okRise, okSet, alwaysUp bool) {
	startLocal := timeutil.LocalMidnight(date)
	// 23 or 25 hours on DST transition days.
	endLocal := startLocal.AddDate(0, 0, 1)
	hours := int(math.Round(endLocal.Sub(startLocal).Hours()))

	// Zero when the upper limb sits on the apparent horizon.
	altFunc := func(t time.Time) float64 {
		p := Horizontal(timeutil.DaysSinceJ2000(t), lat, lon)
		return timeutil.Rad2Deg(p.TopocentricAltitude - ApparentHorizonAltitude(p.Distance))
	}

	s := solver.Search{
		Start:     startLocal,
		End:       endLocal,
		Target:    0,
		Steps:     hours + 1, // hourly samples
		Tolerance: time.Second,
	}
	for _, r := range s.FindAll(altFunc, solver.CrossingAny) {
		switch {
		case r.Direction == solver.CrossingUp && !okRise:
			rs.Rise, okRise = r.Time.UTC(), true
		case r.Direction == solver.CrossingDown && !okSet:
			rs.Set, okSet = r.Time.UTC(), true
		}
	}

	if !okRise && !okSet {
		alwaysUp = altFunc(startLocal) > 0
	}

	return rs, okRise, okSet, alwaysUp
}
