package solver

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)

// sine is a toy altitude curve peaking at +amp at 12:00 with a 24h period.
func sine(amp float64) AltitudeFunc {
	return func(t time.Time) float64 {
		h := t.Sub(t0).Hours()
		return amp * math.Sin(2*math.Pi*(h-6)/24)
	}
}

// first returns the earliest crossing matching dir, or a zero Result.
func first(f AltitudeFunc, start, end time.Time, target float64, dir Direction, steps int) Result {
	s := Search{Start: start, End: end, Target: target, Steps: steps, Tolerance: time.Second}
	if all := s.FindAll(f, dir); len(all) > 0 {
		return all[0]
	}
	return Result{}
}

func TestFindAll_RiseAndSet(t *testing.T) {
	f := sine(60)
	end := t0.Add(24 * time.Hour)

	rise := first(f, t0, end, 0, CrossingUp, 25)
	require.True(t, rise.OK)
	assert.WithinDuration(t, t0.Add(6*time.Hour), rise.Time, time.Second)
	assert.Equal(t, CrossingUp, rise.Direction)

	set := first(f, t0, end, 0, CrossingDown, 25)
	require.True(t, set.OK)
	assert.WithinDuration(t, t0.Add(18*time.Hour), set.Time, time.Second)
}

func TestFindAll_Target(t *testing.T) {
	// 60 sin(x) = 30 at x = 30°, i.e. two hours after the zero crossing.
	rise := first(sine(60), t0, t0.Add(24*time.Hour), 30, CrossingUp, 25)
	require.True(t, rise.OK)
	assert.WithinDuration(t, t0.Add(8*time.Hour), rise.Time, time.Second)
}

func TestFindAll_NoCrossing(t *testing.T) {
	above := func(time.Time) float64 { return 10 }
	r := first(above, t0, t0.Add(24*time.Hour), 0, CrossingUp, 25)
	assert.False(t, r.OK)
	assert.True(t, r.Time.IsZero())

	nan := func(time.Time) float64 { return math.NaN() }
	r = first(nan, t0, t0.Add(24*time.Hour), 0, CrossingAny, 25)
	assert.False(t, r.OK)
}

func TestFindAll_EmptyWindow(t *testing.T) {
	r := first(sine(60), t0, t0, 0, CrossingUp, 25)
	assert.False(t, r.OK)

	r = first(sine(60), t0.Add(time.Hour), t0, 0, CrossingUp, 25)
	assert.False(t, r.OK)
}

func TestFindAll_CrossingAtWindowEnd(t *testing.T) {
	// Steps that do not divide the window evenly still reach the end.
	end := t0.Add(18*time.Hour + 30*time.Minute)
	r := first(sine(60), t0, end, 0, CrossingDown, 7)
	require.True(t, r.OK)
	assert.WithinDuration(t, t0.Add(18*time.Hour), r.Time, time.Second)
}

func TestSearch_FindAll(t *testing.T) {
	s := Search{
		Start:     t0,
		End:       t0.Add(48 * time.Hour),
		Target:    0,
		Steps:     49,
		Tolerance: time.Second,
	}

	all := s.FindAll(sine(60), CrossingAny)
	require.Len(t, all, 4)

	wantHours := []float64{6, 18, 30, 42}
	for i, r := range all {
		assert.WithinDuration(t, t0.Add(time.Duration(wantHours[i]*float64(time.Hour))), r.Time, time.Second)
	}
	assert.Equal(t, CrossingUp, all[0].Direction)
	assert.Equal(t, CrossingDown, all[1].Direction)

	assert.Len(t, s.FindAll(sine(60), CrossingDown), 2)
}

func TestDirection_String(t *testing.T) {
	assert.Equal(t, "up", CrossingUp.String())
	assert.Equal(t, "down", CrossingDown.String())
	assert.Equal(t, "any", CrossingAny.String())
}
