package sun

import (
	"math"

	"github.com/thurmanmarka/skyclock/internal/frame"
	"github.com/thurmanmarka/skyclock/internal/timeutil"
)

// perihelionDeg is the ecliptic longitude of Earth's perihelion.
const perihelionDeg = 102.9372

// Coordinates is the geocentric position of the Sun.
type Coordinates struct {
	frame.Equatorial

	// EclipticLon is the Sun's ecliptic longitude in radians, [0, 2π).
	EclipticLon float64

	// MeanAnomaly in radians (not wrapped).
	MeanAnomaly float64

	// Distance from Earth in km.
	Distance float64
}

// MeanAnomaly returns the Sun's mean anomaly (radians) d days after J2000.
func MeanAnomaly(d float64) float64 {
	return timeutil.Deg2Rad(357.5291 + 0.98560028*d)
}

// EclipticLongitude returns the Sun's true ecliptic longitude (radians) for
// mean anomaly M, applying a three-term equation of center.
func EclipticLongitude(M float64) float64 {
	C := timeutil.Deg2Rad(1.9148*math.Sin(M) + 0.02*math.Sin(2*M) + 0.0003*math.Sin(3*M))
	P := timeutil.Deg2Rad(perihelionDeg)

	return M + C + P + math.Pi
}

// GeocentricCoordinates returns the Sun's position d days after J2000.
//
// Accuracy is about an arcminute in RA/Dec between 1950 and 2050; the
// obliquity is held fixed.
func GeocentricCoordinates(d float64) Coordinates {
	M := MeanAnomaly(d)
	L := EclipticLongitude(M)

	e := frame.EarthEccentricity
	dist := frame.AUKm * (1 - e*e) / (1 + e*math.Cos(M))

	return Coordinates{
		Equatorial:  frame.EclipticToEquatorial(L, 0),
		EclipticLon: timeutil.NormalizeRad(L),
		MeanAnomaly: M,
		Distance:    dist,
	}
}

// EquationOfTime returns apparent minus mean solar time, in minutes, d days
// after J2000. Positive values mean the sundial runs ahead of the clock.
func EquationOfTime(d float64) float64 {
	M := MeanAnomaly(d)
	meanLon := M + timeutil.Deg2Rad(perihelionDeg) + math.Pi
	ra := frame.EclipticToEquatorial(EclipticLongitude(M), 0).RA

	diffDeg := timeutil.Normalize180(timeutil.Rad2Deg(meanLon - ra))
	// One degree of hour angle is four minutes of time.
	return 4 * diffDeg
}

// Horizontal returns the Sun's geometric altitude/azimuth for an observer
// at lat, lon (degrees) d days after J2000. No refraction is applied.
func Horizontal(d, lat, lon float64) (Coordinates, frame.Horizontal) {
	c := GeocentricCoordinates(d)
	return c, frame.ToHorizontal(c.Equatorial, lat, lon, d)
}
