// Package sun implements a low-precision solar ephemeris and the closed-form
// sunrise equation used to find the times the Sun crosses a given altitude.
package sun

import (
	"math"
	"time"

	"github.com/thurmanmarka/skyclock/internal/frame"
	"github.com/thurmanmarka/skyclock/internal/timeutil"
)

// ApparentHorizonAltitudeSun is the altitude (in degrees) of the Sun's center
// when the apparent upper limb is on the horizon under "standard" conditions:
// a zenith of 90°50', refraction plus the Sun's apparent radius.
const ApparentHorizonAltitudeSun = -0.833

// j0 is the fractional day between a mean solar transit at Greenwich and the
// J2000 epoch used by the sunrise equation.
const j0 = 0.0009

// Transit describes the solar transit nearest local noon of one calendar day
// and carries everything needed to solve for altitude crossings on that day.
type Transit struct {
	// Noon is the Julian date of solar noon.
	Noon float64

	n   float64 // Julian cycle number
	lw  float64 // west longitude, radians
	phi float64 // latitude, radians
	M   float64 // solar mean anomaly at transit
	L   float64 // solar ecliptic longitude at transit
	dec float64 // solar declination at transit
}

// TransitFor returns the solar transit on date's calendar day (in date's own
// location) for an observer at lat, lon (degrees, east positive).
//
// The day is anchored at local noon so that the rounding of the Julian cycle
// picks the transit inside that calendar day for any longitude.
func TransitFor(date time.Time, lat, lon float64) Transit {
	d := timeutil.DaysSinceJ2000(timeutil.LocalNoon(date))
	lw := timeutil.Deg2Rad(-lon)

	n := math.Round(d - j0 - lw/(2*math.Pi))
	ds := approxTransit(0, lw, n)

	M := MeanAnomaly(ds)
	L := EclipticLongitude(M)
	dec := frame.EclipticToEquatorial(L, 0).Dec

	return Transit{
		Noon: transitJ(ds, M, L),
		n:    n,
		lw:   lw,
		phi:  timeutil.Deg2Rad(lat),
		M:    M,
		L:    L,
		dec:  dec,
	}
}

// Nadir returns the Julian date of the solar nadir preceding Noon.
func (tr Transit) Nadir() float64 {
	return tr.Noon - 0.5
}

// Declination returns the Sun's declination (radians) at transit.
func (tr Transit) Declination() float64 {
	return tr.dec
}

// Crossing returns the Julian dates at which the Sun's center passes
// altitude altDeg on the way up (rise) and on the way down (set).
//
// The hour angle comes from
//
//	cos H = (sin h0 − sin φ sin δ) / (cos φ cos δ)
//
// and when the right-hand side falls outside [-1, 1] the Sun stays entirely
// above or below altDeg that day, so ok is false. Rise and set are exactly
// symmetric about Noon.
func (tr Transit) Crossing(altDeg float64) (rise, set float64, ok bool) {
	h0 := timeutil.Deg2Rad(altDeg)

	cosH := (math.Sin(h0) - math.Sin(tr.phi)*math.Sin(tr.dec)) /
		(math.Cos(tr.phi) * math.Cos(tr.dec))
	if math.IsNaN(cosH) || cosH < -1 || cosH > 1 {
		return 0, 0, false
	}

	w := math.Acos(cosH)
	set = transitJ(approxTransit(w, tr.lw, tr.n), tr.M, tr.L)
	rise = tr.Noon - (set - tr.Noon)

	return rise, set, true
}

// ObserverDip returns the correction (degrees, negative) to apply to a
// threshold altitude for an observer elevationM metres above the horizon
// plane. Non-positive elevations yield zero.
func ObserverDip(elevationM float64) float64 {
	if elevationM <= 0 {
		return 0
	}
	return -2.076 * math.Sqrt(elevationM) / 60.0
}

// approxTransit returns the approximate transit (days since J2000) of hour
// angle Ht for west longitude lw in Julian cycle n.
func approxTransit(Ht, lw, n float64) float64 {
	return j0 + (Ht+lw)/(2*math.Pi) + n
}

// transitJ adds the equation-of-time correction to an approximate transit.
func transitJ(ds, M, L float64) float64 {
	return frame.J2000 + ds + 0.0053*math.Sin(M) - 0.0069*math.Sin(2*L)
}

// CrossingTimes returns the UTC instants the Sun's center passes altDeg on
// date's calendar day, rising and setting. The closed form yields either both
// crossings or neither.
func CrossingTimes(date time.Time, lat, lon, altDeg float64) (rise, set time.Time, ok bool) {
	r, s, ok := TransitFor(date, lat, lon).Crossing(altDeg)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	return timeutil.FromJulian(r), timeutil.FromJulian(s), true
}
