// Package frame holds the shared astronomical constants and the coordinate
// transforms used by both the solar and lunar models: ecliptic to equatorial
// rotation, sidereal time, and equatorial to horizontal conversion.
//
// Angles are radians throughout this package.
package frame

import (
	"math"

	"github.com/thurmanmarka/skyclock/internal/timeutil"
)

// Constants shared by every ephemeris component. Keep them here so the sun and
// moon models can never disagree on obliquity or epoch.
const (
	// J1970 is the Julian day number of 1970-01-01 12:00 UTC.
	J1970 = 2440588.0

	// J2000 is the Julian date of the J2000.0 epoch.
	J2000 = timeutil.JDJ2000

	// ObliquityDeg is the obliquity of the ecliptic, fixed at its J2000 value.
	ObliquityDeg = 23.4397

	// EarthRadiusKm is the equatorial radius of the Earth.
	EarthRadiusKm = 6378.14

	// MoonRadiusKm is the mean radius of the Moon.
	MoonRadiusKm = 1737.4

	// AUKm is one astronomical unit.
	AUKm = 149597870.7

	// EarthEccentricity is the eccentricity of the Earth's orbit.
	EarthEccentricity = 0.0167086342

	// SunDistanceKm is the mean Earth-Sun distance used for the lunar phase angle.
	SunDistanceKm = 149598000.0

	// siderealAt0Deg and siderealRateDeg define the low-order sidereal time model.
	siderealAt0Deg  = 280.16
	siderealRateDeg = 360.9856235
)

// Obliquity is ObliquityDeg in radians.
var Obliquity = timeutil.Deg2Rad(ObliquityDeg)

// Equatorial is a geocentric equatorial position.
type Equatorial struct {
	RA  float64 // right ascension, radians in [0, 2π)
	Dec float64 // declination, radians
}

// Horizontal is a position relative to an observer's horizon.
type Horizontal struct {
	Altitude float64 // radians above the horizon

	// Azimuth is measured from north, clockwise, in [0, 2π).
	Azimuth float64

	// ParallacticAngle is the angle between the celestial pole and the zenith
	// as seen at the body, positive west of the meridian.
	ParallacticAngle float64

	// HourAngle is local sidereal time minus right ascension.
	HourAngle float64
}

// EclipticToEquatorial rotates ecliptic longitude l and latitude b through
// the fixed obliquity.
func EclipticToEquatorial(l, b float64) Equatorial {
	sinE, cosE := math.Sincos(Obliquity)

	ra := math.Atan2(math.Sin(l)*cosE-math.Tan(b)*sinE, math.Cos(l))
	dec := math.Asin(timeutil.Clamp1(math.Sin(b)*cosE + math.Cos(b)*sinE*math.Sin(l)))

	return Equatorial{
		RA:  timeutil.NormalizeRad(ra),
		Dec: dec,
	}
}

// SiderealTime returns the local sidereal time (radians, not wrapped) for d
// days since J2000 at east longitude lonDeg.
func SiderealTime(d, lonDeg float64) float64 {
	return timeutil.Deg2Rad(siderealAt0Deg+siderealRateDeg*d) + timeutil.Deg2Rad(lonDeg)
}

// ToHorizontal converts eq into altitude/azimuth for an observer at latDeg,
// lonDeg (degrees, east positive) d days after J2000.
//
// The azimuth is computed with atan2 so that at the poles (cos φ = 0) the
// result is still finite.
func ToHorizontal(eq Equatorial, latDeg, lonDeg, d float64) Horizontal {
	phi := timeutil.Deg2Rad(latDeg)
	H := SiderealTime(d, lonDeg) - eq.RA

	sinPhi, cosPhi := math.Sincos(phi)
	sinDec, cosDec := math.Sincos(eq.Dec)
	sinH, cosH := math.Sincos(H)

	alt := math.Asin(timeutil.Clamp1(sinPhi*sinDec + cosPhi*cosDec*cosH))

	// atan2 form of the azimuth measured from south, rotated by π to north.
	azSouth := math.Atan2(sinH, cosH*sinPhi-math.Tan(eq.Dec)*cosPhi)
	az := timeutil.NormalizeRad(azSouth + math.Pi)

	pa := math.Atan2(sinH, math.Tan(phi)*cosDec-sinDec*cosH)

	return Horizontal{
		Altitude:         alt,
		Azimuth:          az,
		ParallacticAngle: pa,
		HourAngle:        H,
	}
}

// Refraction returns the atmospheric refraction (radians) to add to a
// geometric altitude h (radians), per Meeus formula 16.4. Altitudes below
// the horizon are evaluated at zero to stay clear of the pole at -5°.
func Refraction(h float64) float64 {
	if h < 0 {
		h = 0
	}
	return 0.0002967 / math.Tan(h+0.00312536/(h+0.08901179))
}
