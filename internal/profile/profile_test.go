package profile

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/thurmanmarka/skyclock"
)

var phoenix = skyclock.Coordinates{Lat: 33.4484, Lon: -112.0740}

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

// shiftedReference builds a reference table from skyclock's own answers,
// moved by offset, so the expected error is exactly known.
func shiftedReference(t *testing.T, coords skyclock.Coordinates, loc *time.Location, days int, offset time.Duration) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("date,rise,set\n")
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, loc)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		rs, err := skyclock.SlideIntoSunset(coords, date)
		require.NoError(t, err)
		fmt.Fprintf(&b, "%s,%s,%s\n",
			date.Format(time.DateOnly),
			rs.Rise.Add(offset).Round(time.Second).Format(time.TimeOnly),
			rs.Set.Add(offset).Round(time.Second).Format(time.TimeOnly))
	}
	return b.String()
}

func TestRun_KnownOffset(t *testing.T) {
	loc := mustLoad(t, "America/Phoenix")
	ref := shiftedReference(t, phoenix, loc, 10, 2*time.Minute)

	rep, err := Run(strings.NewReader(ref), Options{
		Coordinates: phoenix,
		Location:    loc,
		Body:        skyclock.Sun,
	}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, "SUN", rep.Mode)
	assert.Equal(t, 10, rep.Total)
	assert.Equal(t, 10, rep.Processed())
	assert.Len(t, rep.Rows, 10)

	const tol = 1.0 / 60 // rounding to the second
	assert.Equal(t, 10, rep.Rise.Count)
	assert.InDelta(t, 2, rep.Rise.Mean(), tol)
	assert.InDelta(t, 2, rep.Set.Max, tol)
	assert.InDelta(t, -2, rep.RiseBias.Mean(), tol, "ours minus reference")
	assert.InDelta(t, -2, rep.SetBias.Min, tol)
}

func TestRun_SkipsMalformedRows(t *testing.T) {
	loc := mustLoad(t, "America/Phoenix")
	ref := strings.Join([]string{
		"Date,Rise,Set",
		"2025-03-01,06:58,18:26",
		"2025-03-02,06:48",
		"03/03/2025,06:47,18:26",
		"2025-03-04,sunrise,18:27",
		"2025-03-05,06:44,25:99",
		"2025-03-06,06:51:30,18:30:20",
	}, "\n")

	rep, err := Run(strings.NewReader(ref), Options{
		Coordinates: phoenix,
		Location:    loc,
		Body:        skyclock.Sun,
	}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, 6, rep.Total)
	assert.Equal(t, 4, rep.Skipped)
	require.Len(t, rep.Rows, 2)
	assert.Equal(t, "2025-03-01", rep.Rows[0].Date)
	assert.Equal(t, "2025-03-06", rep.Rows[1].Date)
	assert.Equal(t, 30, rep.Rows[1].RefRise.Second())

	// Almanac values for Phoenix agree to within a couple of minutes.
	assert.Less(t, rep.Rise.Max, 3.0)
	assert.Less(t, rep.Set.Max, 3.0)
}

func TestRun_PolarNightMatchesEmptyReference(t *testing.T) {
	svalbard := skyclock.Coordinates{Lat: 78.22, Lon: 15.65}
	ref := "2025-12-21,,\n2025-12-22,-,-\n"

	rep, err := Run(strings.NewReader(ref), Options{
		Coordinates: svalbard,
		Location:    time.UTC,
		Body:        skyclock.Sun,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, rep.Skipped)
	require.Len(t, rep.Rows, 2)
	assert.True(t, math.IsNaN(rep.Rows[0].RiseErr))
	assert.Equal(t, 0, rep.Rise.Count)
	assert.True(t, math.IsNaN(rep.Rise.Mean()))
}

func TestRun_Twilight(t *testing.T) {
	loc := mustLoad(t, "America/Phoenix")
	civil := skyclock.TwilightCivil

	date := time.Date(2025, 11, 28, 0, 0, 0, 0, loc)
	rs, err := skyclock.TwilightFor(phoenix, date, civil)
	require.NoError(t, err)
	ref := fmt.Sprintf("2025-11-28,%s,%s\n", rs.Rise.Format("15:04"), rs.Set.Format("15:04"))

	rep, err := Run(strings.NewReader(ref), Options{
		Coordinates: phoenix,
		Location:    loc,
		Body:        skyclock.Sun,
		Twilight:    &civil,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "SUN (CIVIL TWILIGHT)", rep.Mode)
	assert.Less(t, rep.Rise.Max, 1.0)
	assert.Less(t, rep.Set.Max, 1.0)
}

func TestRun_MoonAddsPhase(t *testing.T) {
	kyiv := skyclock.Coordinates{Lat: 50.45, Lon: 30.52}
	loc := mustLoad(t, "Europe/Helsinki")

	rep, err := Run(strings.NewReader("2021-05-26,21:00,05:00\n"), Options{
		Coordinates: kyiv,
		Location:    loc,
		Body:        skyclock.Moon,
	}, nil)
	require.NoError(t, err)
	require.Len(t, rep.Rows, 1)

	phase := rep.Rows[0].Phase
	require.NotNil(t, phase)
	assert.Equal(t, "Full Moon", phase.Name)

	var buf bytes.Buffer
	require.NoError(t, rep.WriteCSV(&buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, rowHeader, records[0])
	assert.Equal(t, "MOON", records[1][1])
	assert.Equal(t, "Full Moon", records[1][8])
}

func TestRun_Errors(t *testing.T) {
	civil := skyclock.TwilightCivil

	tests := []struct {
		name string
		csv  string
		opts Options
		want string
	}{
		{"empty input", "", Options{Location: time.UTC}, "empty CSV"},
		{"no location", "2025-01-01,07:00,17:00", Options{}, "nil Location"},
		{"bad coordinates", "2025-01-01,07:00,17:00", Options{Location: time.UTC, Coordinates: skyclock.Coordinates{Lat: 95}}, "invalid coordinates"},
		{"moon twilight", "2025-01-01,07:00,17:00", Options{Location: time.UTC, Body: skyclock.Moon, Twilight: &civil}, "only supported for the sun"},
		{"broken quoting", "2025-01-01,\"07:00,17:00\n", Options{Location: time.UTC}, "failed to read CSV"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(strings.NewReader(tt.csv), tt.opts, nil)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestStats(t *testing.T) {
	var s Stats
	assert.True(t, math.IsNaN(s.Mean()))

	for _, v := range []float64{3, math.NaN(), -1, 4} {
		s.Add(v)
	}
	assert.Equal(t, Stats{Count: 3, Sum: 6, Min: -1, Max: 4}, s)
	assert.Equal(t, 2.0, s.Mean())
}
