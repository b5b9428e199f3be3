package moon

import (
	"math"

	"github.com/thurmanmarka/skyclock/internal/frame"
	"github.com/thurmanmarka/skyclock/internal/timeutil"
)

// Ecliptic is a geocentric ecliptic position of the Moon.
type Ecliptic struct {
	Lon      float64 // ecliptic longitude, radians [0, 2π)
	Lat      float64 // ecliptic latitude, radians
	Distance float64 // Earth-Moon distance, km
}

// Coordinates carries the Moon's geocentric position in both frames.
type Coordinates struct {
	Ecliptic
	frame.Equatorial
}

// GeocentricEcliptic returns the Moon's geocentric ecliptic longitude,
// latitude and distance d days after J2000.
//
// This is a medium-precision model using a small set of dominant periodic terms
// in ecliptic longitude and latitude (sub-degree accuracy), roughly based on
// truncated Meeus-style series:
//
//	L'  = mean longitude of the Moon
//	M   = mean anomaly of the Sun
//	Mm  = mean anomaly of the Moon
//	D   = mean elongation of the Moon from the Sun
//	F   = argument of latitude of the Moon
func GeocentricEcliptic(d float64) Ecliptic {
	// All linear coefficients here are in deg/day.
	Lprime := timeutil.Normalize360(218.316 + 13.176396*d)
	M := timeutil.Normalize360(357.529 + 0.98560028*d)
	Mm := timeutil.Normalize360(134.963 + 13.064993*d)
	D := timeutil.Normalize360(297.850 + 12.190749*d)
	F := timeutil.Normalize360(93.272 + 13.229350*d)

	Lr := timeutil.Deg2Rad(Lprime)
	Mr := timeutil.Deg2Rad(M)
	Mmr := timeutil.Deg2Rad(Mm)
	Dr := timeutil.Deg2Rad(D)
	Fr := timeutil.Deg2Rad(F)

	// λ ≈ L' + 6.289 sin(Mm) + 1.274 sin(2D − Mm)
	//      + 0.658 sin(2D) + 0.214 sin(2Mm) − 0.186 sin(M)
	//      − 0.114 sin(2F)
	lon := Lr +
		timeutil.Deg2Rad(6.289)*math.Sin(Mmr) +
		timeutil.Deg2Rad(1.274)*math.Sin(2*Dr-Mmr) +
		timeutil.Deg2Rad(0.658)*math.Sin(2*Dr) +
		timeutil.Deg2Rad(0.214)*math.Sin(2*Mmr) -
		timeutil.Deg2Rad(0.186)*math.Sin(Mr) -
		timeutil.Deg2Rad(0.114)*math.Sin(2*Fr)

	// β ≈ 5.128 sin(F) + 0.280 sin(Mm + F)
	//      + 0.277 sin(Mm − F) + 0.173 sin(2D − F)
	lat := timeutil.Deg2Rad(5.128)*math.Sin(Fr) +
		timeutil.Deg2Rad(0.280)*math.Sin(Mmr+Fr) +
		timeutil.Deg2Rad(0.277)*math.Sin(Mmr-Fr) +
		timeutil.Deg2Rad(0.173)*math.Sin(2*Dr-Fr)

	dist := 385000.56 -
		20905.0*math.Cos(Mmr) -
		3699.0*math.Cos(2*Dr-Mmr) -
		2956.0*math.Cos(2*Dr) -
		570.0*math.Cos(2*Mmr)

	return Ecliptic{
		Lon:      timeutil.NormalizeRad(lon),
		Lat:      lat,
		Distance: dist,
	}
}

// GeocentricCoordinates returns the Moon's ecliptic position and its
// equatorial equivalent, rotated through the same fixed obliquity as the Sun.
func GeocentricCoordinates(d float64) Coordinates {
	ecl := GeocentricEcliptic(d)
	return Coordinates{
		Ecliptic:   ecl,
		Equatorial: frame.EclipticToEquatorial(ecl.Lon, ecl.Lat),
	}
}
