// Package solver locates the instants at which a smooth altitude curve
// crosses a target value.
package solver

import (
	"math"
	"time"
)

// AltitudeFunc returns an altitude in degrees at time t.
type AltitudeFunc func(t time.Time) float64

// Direction selects rising or setting crossings.
type Direction int

const (
	// CrossingUp matches the curve rising through the target (rise).
	CrossingUp Direction = iota
	// CrossingDown matches the curve falling through the target (set).
	CrossingDown
	// CrossingAny matches either direction.
	CrossingAny
)

func (d Direction) String() string {
	switch d {
	case CrossingUp:
		return "up"
	case CrossingDown:
		return "down"
	default:
		return "any"
	}
}

// Result is a single crossing.
type Result struct {
	Time      time.Time
	Direction Direction
	OK        bool
}

// Search configures a bracket-then-bisect scan over [Start, End].
type Search struct {
	Start, End time.Time
	Target     float64       // degrees
	Steps      int           // samples across the window, at least 2
	Tolerance  time.Duration // bisection stops once the bracket is this narrow
}

func (s Search) interval() time.Duration {
	steps := s.Steps
	if steps < 2 {
		steps = 2
	}
	return s.End.Sub(s.Start) / time.Duration(steps-1)
}

// FindAll returns every crossing matching dir, in time order. Each sample
// interval yields at most one crossing.
func (s Search) FindAll(f AltitudeFunc, dir Direction) []Result {
	if !s.Start.Before(s.End) {
		return nil
	}
	step := s.interval()
	if step <= 0 {
		return nil
	}

	var out []Result
	prevT := s.Start
	prev := f(prevT) - s.Target
	for t := s.Start.Add(step); !t.After(s.End.Add(step / 2)); t = t.Add(step) {
		if t.After(s.End) {
			t = s.End
		}
		cur := f(t) - s.Target

		if got, ok := classify(prev, cur); ok && (dir == CrossingAny || got == dir) {
			out = append(out, s.refine(f, prevT, t, prev, got))
		}

		if t.Equal(s.End) {
			break
		}
		prevT, prev = t, cur
	}
	return out
}

// classify reports whether a sign change lies between two residuals.
// NaN never brackets.
func classify(a, b float64) (Direction, bool) {
	if math.IsNaN(a) || math.IsNaN(b) {
		return 0, false
	}
	switch {
	case a < 0 && b >= 0:
		return CrossingUp, true
	case a > 0 && b <= 0:
		return CrossingDown, true
	}
	return 0, false
}

func (s Search) refine(f AltitudeFunc, lo, hi time.Time, resLo float64, dir Direction) Result {
	tol := s.Tolerance
	if tol <= 0 {
		tol = time.Second
	}
	for hi.Sub(lo) > tol {
		mid := lo.Add(hi.Sub(lo) / 2)
		resMid := f(mid) - s.Target
		if got, ok := classify(resLo, resMid); ok && got == dir {
			hi = mid
		} else {
			lo, resLo = mid, resMid
		}
	}
	return Result{Time: lo.Add(hi.Sub(lo) / 2), Direction: dir, OK: true}
}
