// Package timeutil converts between time.Time and the Julian day counts used
// as the argument to every periodic formula, plus small angle helpers.
package timeutil

import (
	"math"
	"time"
)

const (
	secondsPerDay = 86400.0

	// jdUnixEpoch is the Julian day number at 1970-01-01 12:00 UTC; the
	// 0.5 offset below moves the origin to midnight.
	jdUnixEpoch = 2440588.0

	// JDJ2000 is the Julian date of the J2000.0 epoch (2000-01-01 12:00 UTC).
	JDJ2000 = 2451545.0
)

// ToJulian returns the Julian date of t.
//
// Seconds and nanoseconds are scaled separately so that any representable
// instant yields a finite value (UnixNano overflows outside 1678..2262).
func ToJulian(t time.Time) float64 {
	sec := float64(t.Unix())
	nsec := float64(t.Nanosecond())
	return sec/secondsPerDay + nsec/(secondsPerDay*1e9) - 0.5 + jdUnixEpoch
}

// FromJulian converts a Julian date back to a UTC instant. Non-finite input
// yields the zero time.
func FromJulian(jd float64) time.Time {
	if math.IsNaN(jd) || math.IsInf(jd, 0) {
		return time.Time{}
	}

	s := (jd + 0.5 - jdUnixEpoch) * secondsPerDay
	whole := math.Floor(s)
	nsec := math.Round((s - whole) * 1e9)
	if nsec >= 1e9 {
		whole++
		nsec -= 1e9
	}

	return time.Unix(int64(whole), int64(nsec)).UTC()
}

// DaysSinceJ2000 returns the number of (UTC) days since the J2000.0 epoch.
//
// UTC is used in place of TT; the ~70 s difference is well below the
// precision of the low-order series that consume this value.
func DaysSinceJ2000(t time.Time) float64 {
	return ToJulian(t) - JDJ2000
}

// LocalNoon returns 12:00 on t's calendar date in t's own location.
func LocalNoon(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, t.Location())
}

// LocalMidnight returns 00:00 on t's calendar date in t's own location.
func LocalMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// -----------------------------
// Basic degree/radian helpers
// -----------------------------

func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180.0
}

func Rad2Deg(r float64) float64 {
	return r * 180.0 / math.Pi
}

// Normalize360 wraps an angle in degrees into [0, 360).
func Normalize360(d float64) float64 {
	d = math.Mod(d, 360.0)
	if d < 0 {
		d += 360.0
	}
	// math.Mod of a tiny negative value can land exactly on 360 after the add.
	if d >= 360.0 {
		d -= 360.0
	}
	return d
}

// Normalize180 wraps an angle in degrees into [-180, 180).
func Normalize180(d float64) float64 {
	return Normalize360(d+180.0) - 180.0
}

// NormalizeRad wraps an angle in radians into [0, 2π).
func NormalizeRad(r float64) float64 {
	r = math.Mod(r, 2*math.Pi)
	if r < 0 {
		r += 2 * math.Pi
	}
	if r >= 2*math.Pi {
		r -= 2 * math.Pi
	}
	return r
}

// Clamp1 limits x to [-1, 1] to absorb rounding noise before asin/acos.
func Clamp1(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}
