package moon

import (
	"math"

	"github.com/thurmanmarka/skyclock/internal/frame"
	"github.com/thurmanmarka/skyclock/internal/sun"
	"github.com/thurmanmarka/skyclock/internal/timeutil"
)

// Illumination describes the lit part of the lunar disc.
type Illumination struct {
	// Fraction is the illuminated fraction [0..1], 0=new, 1=full.
	Fraction float64

	// Phase cycles through [0, 1): 0 new, 0.25 first quarter, 0.5 full,
	// 0.75 last quarter. It is the Moon-Sun difference in ecliptic
	// longitude as a fraction of a turn.
	Phase float64

	// Angle is the position angle of the bright limb's midpoint (radians),
	// measured eastward from celestial north. Negative while waxing.
	Angle float64

	// Elongation is the geocentric Sun-Moon separation (radians) [0, π].
	Elongation float64

	// PhaseAngle is the Sun-Moon-Earth angle (radians) [0, π].
	PhaseAngle float64
}

// IlluminationAt computes the lunar illumination d days after J2000. The
// result does not depend on the observer.
func IlluminationAt(d float64) Illumination {
	s := sun.GeocentricCoordinates(d)
	m := GeocentricCoordinates(d)

	// cos ψ = cos β cos(λm − λs)
	psi := math.Acos(timeutil.Clamp1(math.Cos(m.Lat) * math.Cos(m.Lon-s.EclipticLon)))

	sdist := frame.SunDistanceKm
	inc := math.Atan2(sdist*math.Sin(psi), m.Distance-sdist*math.Cos(psi))

	dRA := s.RA - m.RA
	angle := math.Atan2(
		math.Cos(s.Dec)*math.Sin(dRA),
		math.Sin(s.Dec)*math.Cos(m.Dec)-math.Cos(s.Dec)*math.Sin(m.Dec)*math.Cos(dRA),
	)

	// Phase follows the elongation in longitude, which grows steadily
	// through the month and reaches π exactly at full moon.
	phase := timeutil.NormalizeRad(m.Lon-s.EclipticLon) / (2 * math.Pi)
	if phase >= 1 {
		phase = 0
	}

	return Illumination{
		Fraction:   (1 + math.Cos(inc)) / 2,
		Phase:      phase,
		Angle:      angle,
		Elongation: psi,
		PhaseAngle: inc,
	}
}
