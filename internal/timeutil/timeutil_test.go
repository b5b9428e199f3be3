package timeutil

import (
	"math"
	"testing"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToJulian_KnownEpochs(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want float64
	}{
		{"J2000", time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC), 2451545.0},
		{"Unix epoch", time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC), 2440587.5},
		{"Sputnik", time.Date(1957, time.October, 4, 19, 26, 24, 0, time.UTC), 2436116.31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ToJulian(tt.t), 1e-6)
		})
	}
}

func TestToJulian_MatchesMeeus(t *testing.T) {
	instants := []time.Time{
		time.Date(1987, time.April, 10, 19, 21, 0, 0, time.UTC),
		time.Date(2013, time.March, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2021, time.May, 17, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.November, 30, 7, 13, 0, 0, time.UTC),
	}

	for _, in := range instants {
		// One microday is roughly 86 ms.
		assert.InDelta(t, julian.TimeToJD(in), ToJulian(in), 1e-6, "instant %s", in)
	}
}

func TestToJulian_IgnoresLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/Phoenix")
	require.NoError(t, err)

	utc := time.Date(2025, time.June, 21, 19, 0, 0, 0, time.UTC)
	assert.Equal(t, ToJulian(utc), ToJulian(utc.In(loc)))
}

func TestJulianRoundTrip(t *testing.T) {
	start := time.Date(1850, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 500; i++ {
		// Irregular stride so we land on assorted sub-second offsets.
		in := start.Add(time.Duration(i) * (97*time.Hour + 13*time.Minute + 7*time.Second + 123456789*time.Nanosecond))
		out := FromJulian(ToJulian(in))

		diff := out.Sub(in)
		if diff < 0 {
			diff = -diff
		}
		if diff > time.Millisecond {
			t.Fatalf("round trip of %s drifted by %s", in, diff)
		}
	}
}

func TestJulianRoundTrip_FarFuture(t *testing.T) {
	in := time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)
	out := FromJulian(ToJulian(in))
	assert.WithinDuration(t, in, out, time.Millisecond)
	assert.False(t, math.IsInf(ToJulian(in), 0))
}

func TestToJulian_Monotonic(t *testing.T) {
	base := time.Date(2024, time.February, 29, 23, 59, 59, 0, time.UTC)
	prev := ToJulian(base)
	for i := 1; i <= 120; i++ {
		next := ToJulian(base.Add(time.Duration(i) * 500 * time.Millisecond))
		require.Greater(t, next, prev)
		prev = next
	}
}

func TestFromJulian_NonFinite(t *testing.T) {
	assert.True(t, FromJulian(math.NaN()).IsZero())
	assert.True(t, FromJulian(math.Inf(1)).IsZero())
	assert.True(t, FromJulian(math.Inf(-1)).IsZero())
}

func TestDaysSinceJ2000(t *testing.T) {
	assert.InDelta(t, 0.0, DaysSinceJ2000(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)), 1e-9)
	assert.InDelta(t, -0.5, DaysSinceJ2000(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)), 1e-9)
}

func TestLocalNoonAndMidnight(t *testing.T) {
	loc, err := time.LoadLocation("Australia/Sydney")
	require.NoError(t, err)

	in := time.Date(2025, time.March, 20, 21, 45, 0, 0, loc)
	assert.Equal(t, time.Date(2025, time.March, 20, 12, 0, 0, 0, loc), LocalNoon(in))
	assert.Equal(t, time.Date(2025, time.March, 20, 0, 0, 0, 0, loc), LocalMidnight(in))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want360, want180 float64
	}{
		{0, 0, 0},
		{360, 0, 0},
		{-90, 270, -90},
		{725, 5, 5},
		{180, 180, -180},
		{-1e-15, 0, 0},
	}

	for _, tt := range tests {
		got := Normalize360(tt.in)
		assert.InDelta(t, tt.want360, got, 1e-9, "Normalize360(%v)", tt.in)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.Less(t, got, 360.0)
		assert.InDelta(t, tt.want180, Normalize180(tt.in), 1e-9, "Normalize180(%v)", tt.in)
	}

	assert.InDelta(t, math.Pi, NormalizeRad(-math.Pi), 1e-12)
	assert.InDelta(t, 0.5, NormalizeRad(0.5+4*math.Pi), 1e-12)
}

func TestClamp1(t *testing.T) {
	assert.Equal(t, 1.0, Clamp1(1.0000001))
	assert.Equal(t, -1.0, Clamp1(-3))
	assert.Equal(t, 0.25, Clamp1(0.25))
	assert.True(t, math.IsNaN(Clamp1(math.NaN())))
}
