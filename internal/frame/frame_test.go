package frame

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thurmanmarka/skyclock/internal/timeutil"
)

func TestEclipticToEquatorial_Equinoxes(t *testing.T) {
	// Vernal point: λ = 0 maps to RA = 0, Dec = 0.
	eq := EclipticToEquatorial(0, 0)
	assert.InDelta(t, 0, eq.RA, 1e-12)
	assert.InDelta(t, 0, eq.Dec, 1e-12)

	// Summer solstice: λ = 90° maps to RA = 6h, Dec = +ε.
	eq = EclipticToEquatorial(math.Pi/2, 0)
	assert.InDelta(t, math.Pi/2, eq.RA, 1e-12)
	assert.InDelta(t, Obliquity, eq.Dec, 1e-12)

	// Winter solstice: RA wraps into [0, 2π).
	eq = EclipticToEquatorial(3*math.Pi/2, 0)
	assert.InDelta(t, 3*math.Pi/2, eq.RA, 1e-12)
	assert.InDelta(t, -Obliquity, eq.Dec, 1e-12)
}

func TestEclipticToEquatorial_EclipticPole(t *testing.T) {
	eq := EclipticToEquatorial(0, math.Pi/2-1e-9)
	assert.InDelta(t, math.Pi/2-Obliquity, eq.Dec, 1e-6)
}

func TestToHorizontal_Zenith(t *testing.T) {
	// A body on the local meridian at declination = latitude sits at the zenith.
	d := 1234.5
	lat, lon := 40.0, -105.0
	eq := Equatorial{
		RA:  timeutil.NormalizeRad(SiderealTime(d, lon)),
		Dec: timeutil.Deg2Rad(lat),
	}

	h := ToHorizontal(eq, lat, lon, d)
	assert.InDelta(t, math.Pi/2, h.Altitude, 1e-6)
}

func TestToHorizontal_MeridianAzimuth(t *testing.T) {
	d := 100.0
	lat, lon := 45.0, 10.0
	lst := timeutil.NormalizeRad(SiderealTime(d, lon))

	south := ToHorizontal(Equatorial{RA: lst, Dec: 0}, lat, lon, d)
	assert.InDelta(t, math.Pi, south.Azimuth, 1e-9, "transiting body south of zenith should have azimuth 180°")
	assert.InDelta(t, timeutil.Deg2Rad(45), south.Altitude, 1e-9)
	assert.InDelta(t, 0, south.ParallacticAngle, 1e-9)

	north := ToHorizontal(Equatorial{RA: lst, Dec: timeutil.Deg2Rad(80)}, lat, lon, d)
	assert.InDelta(t, 0, math.Min(north.Azimuth, 2*math.Pi-north.Azimuth), 1e-9, "body north of zenith should have azimuth 0°")
}

func TestToHorizontal_EastWest(t *testing.T) {
	d := 0.0
	lat, lon := 0.0, 0.0
	lst := SiderealTime(d, lon)

	// Six hours before transit on the equator: rising due east.
	east := ToHorizontal(Equatorial{RA: timeutil.NormalizeRad(lst + math.Pi/2), Dec: 0}, lat, lon, d)
	assert.InDelta(t, math.Pi/2, east.Azimuth, 1e-9)
	assert.InDelta(t, 0, east.Altitude, 1e-9)

	west := ToHorizontal(Equatorial{RA: timeutil.NormalizeRad(lst - math.Pi/2), Dec: 0}, lat, lon, d)
	assert.InDelta(t, 3*math.Pi/2, west.Azimuth, 1e-9)
}

func TestToHorizontal_PolesStayFinite(t *testing.T) {
	for _, lat := range []float64{90, -90} {
		for _, ra := range []float64{0, 1, 3, 5} {
			h := ToHorizontal(Equatorial{RA: ra, Dec: 0.3}, lat, 0, 42)
			assert.False(t, math.IsNaN(h.Altitude) || math.IsInf(h.Altitude, 0), "altitude at lat %v", lat)
			assert.False(t, math.IsNaN(h.Azimuth) || math.IsInf(h.Azimuth, 0), "azimuth at lat %v", lat)
			assert.GreaterOrEqual(t, h.Azimuth, 0.0)
			assert.Less(t, h.Azimuth, 2*math.Pi)
			// At the pole the altitude equals ±declination.
			assert.InDelta(t, math.Copysign(0.3, lat), h.Altitude, 1e-9)
		}
	}
}

func TestRefraction(t *testing.T) {
	// About 29 arcminutes on the horizon with this formula.
	assert.InDelta(t, timeutil.Deg2Rad(29.0/60.0), Refraction(0), timeutil.Deg2Rad(1.0/60.0))
	// Negative altitudes are evaluated on the horizon.
	assert.Equal(t, Refraction(0), Refraction(-0.1))
	// Small near the zenith.
	assert.Less(t, Refraction(math.Pi/2-0.01), timeutil.Deg2Rad(0.01))
}
