package skyclock

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/thurmanmarka/skyclock/internal/sun"
	"github.com/thurmanmarka/skyclock/internal/timeutil"
)

// EventName identifies one solar event in SunTimes.
type EventName string

// Built-in event names.
const (
	SolarNoon EventName = "solarNoon"
	Nadir     EventName = "nadir"

	Sunrise       EventName = "sunrise"
	Sunset        EventName = "sunset"
	SunriseEnd    EventName = "sunriseEnd"
	SunsetStart   EventName = "sunsetStart"
	Dawn          EventName = "dawn"
	Dusk          EventName = "dusk"
	NauticalDawn  EventName = "nauticalDawn"
	NauticalDusk  EventName = "nauticalDusk"
	NightEnd      EventName = "nightEnd"
	Night         EventName = "night"
	GoldenHourEnd EventName = "goldenHourEnd"
	GoldenHour    EventName = "goldenHour"
)

// Threshold names the two moments the Sun's center crosses Angle degrees of
// altitude: Rise on the way up, Set on the way down.
type Threshold struct {
	Angle float64   `json:"angle" yaml:"angle"`
	Rise  EventName `json:"rise" yaml:"rise"`
	Set   EventName `json:"set" yaml:"set"`
}

func (t Threshold) validate() error {
	if math.IsNaN(t.Angle) || math.IsInf(t.Angle, 0) || t.Angle < -90 || t.Angle > 90 {
		return fmt.Errorf("angle %v: %w", t.Angle, ErrInvalidThreshold)
	}
	if t.Rise == "" || t.Set == "" {
		return fmt.Errorf("angle %v has an empty event name: %w", t.Angle, ErrInvalidThreshold)
	}
	if t.Rise == t.Set {
		return fmt.Errorf("%q used for both rise and set: %w", t.Rise, ErrDuplicateEvent)
	}
	return nil
}

// DefaultThresholds returns the built-in threshold list. Twilight and golden
// hour boundaries are conventions, not constants, so callers are free to
// drop or add entries; the returned slice is a fresh copy.
//
//	angle   rise           set
//	-0.833  sunrise        sunset        upper limb on the horizon
//	-0.3    sunriseEnd     sunsetStart   lower limb on the horizon
//	-6      dawn           dusk          civil twilight
//	-12     nauticalDawn   nauticalDusk  nautical twilight
//	-18     nightEnd       night         astronomical twilight
//	6       goldenHourEnd  goldenHour
func DefaultThresholds() []Threshold {
	return []Threshold{
		{Angle: -0.833, Rise: Sunrise, Set: Sunset},
		{Angle: -0.3, Rise: SunriseEnd, Set: SunsetStart},
		{Angle: -6, Rise: Dawn, Set: Dusk},
		{Angle: -12, Rise: NauticalDawn, Set: NauticalDusk},
		{Angle: -18, Rise: NightEnd, Set: Night},
		{Angle: 6, Rise: GoldenHourEnd, Set: GoldenHour},
	}
}

// Calculator solves solar event times for a fixed threshold list. A
// Calculator is immutable once built and safe for concurrent use.
type Calculator struct {
	thresholds []Threshold
}

// Option configures a Calculator.
type Option func(*settings) error

// settings collects options before the threshold list is assembled, so
// option order does not matter.
type settings struct {
	dropBase bool
	extra    []Threshold
}

// WithThreshold appends one threshold pair.
func WithThreshold(angle float64, rise, set EventName) Option {
	return WithThresholds(Threshold{Angle: angle, Rise: rise, Set: set})
}

// WithThresholds appends thresholds in order.
func WithThresholds(ts ...Threshold) Option {
	return func(s *settings) error {
		for _, t := range ts {
			if err := t.validate(); err != nil {
				return err
			}
			s.extra = append(s.extra, t)
		}
		return nil
	}
}

// WithoutDefaults drops the base list (DefaultThresholds for
// NewCalculator, the receiver's list for With), keeping only thresholds
// added by WithThreshold or WithThresholds in the same call.
func WithoutDefaults() Option {
	return func(s *settings) error {
		s.dropBase = true
		return nil
	}
}

// NewCalculator builds a Calculator from DefaultThresholds plus opts.
func NewCalculator(opts ...Option) (*Calculator, error) {
	return build(DefaultThresholds(), opts)
}

// With returns a copy of c with opts applied. c itself is unchanged.
func (c *Calculator) With(opts ...Option) (*Calculator, error) {
	return build(c.thresholds, opts)
}

func build(base []Threshold, opts []Option) (*Calculator, error) {
	var s settings
	for _, opt := range opts {
		if err := opt(&s); err != nil {
			return nil, err
		}
	}

	c := &Calculator{}
	if !s.dropBase {
		c.thresholds = append(c.thresholds, base...)
	}
	c.thresholds = append(c.thresholds, s.extra...)

	seen := map[EventName]bool{SolarNoon: true, Nadir: true}
	for _, t := range c.thresholds {
		for _, name := range []EventName{t.Rise, t.Set} {
			if seen[name] {
				return nil, fmt.Errorf("%q: %w", name, ErrDuplicateEvent)
			}
			seen[name] = true
		}
	}
	return c, nil
}

// Thresholds returns a copy of the thresholds c solves for.
func (c *Calculator) Thresholds() []Threshold {
	return append([]Threshold(nil), c.thresholds...)
}

// Times computes solar noon, nadir and every threshold event on date's
// calendar day (in date's own Location) at coords. Returned times are UTC.
func (c *Calculator) Times(date time.Time, coords Coordinates) SunTimes {
	internal := make([]sun.Threshold, len(c.thresholds))
	order := make([]EventName, 0, 2*len(c.thresholds))
	for i, t := range c.thresholds {
		internal[i] = sun.Threshold{Angle: t.Angle, Rise: string(t.Rise), Set: string(t.Set)}
		order = append(order, t.Rise, t.Set)
	}

	day := sun.Events(date, coords.Lat, coords.Lon, coords.Elevation, internal)

	st := SunTimes{
		SolarNoon: timeutil.FromJulian(day.Noon),
		Nadir:     timeutil.FromJulian(day.Nadir),
		events:    make(map[EventName]time.Time, len(day.Events)),
		order:     order,
	}
	for name, jd := range day.Events {
		st.events[EventName(name)] = timeutil.FromJulian(jd)
	}
	return st
}

var defaultCalculator = &Calculator{thresholds: DefaultThresholds()}

// GetTimes computes the default solar events for date's calendar day at
// lat, lon (degrees). See Calculator.Times.
func GetTimes(date time.Time, lat, lon float64) SunTimes {
	return defaultCalculator.Times(date, Coordinates{Lat: lat, Lon: lon})
}

// SunTimes holds the solar events of one day. Events that did not happen are
// absent: Event reports false and the JSON form carries null.
type SunTimes struct {
	SolarNoon time.Time
	Nadir     time.Time

	events map[EventName]time.Time
	order  []EventName
}

// Event returns the time of the named event and whether it occurs.
// SolarNoon and Nadir are always present.
func (s SunTimes) Event(name EventName) (time.Time, bool) {
	switch name {
	case SolarNoon:
		return s.SolarNoon, true
	case Nadir:
		return s.Nadir, true
	}
	t, ok := s.events[name]
	return t, ok
}

// Names lists every event the day was solved for, present or not, in
// threshold order (rise before set).
func (s SunTimes) Names() []EventName {
	return append([]EventName(nil), s.order...)
}

// Sunrise returns the time the Sun's upper limb clears the horizon.
func (s SunTimes) Sunrise() (time.Time, bool) { return s.Event(Sunrise) }

// Sunset returns the time the Sun's upper limb drops below the horizon.
func (s SunTimes) Sunset() (time.Time, bool) { return s.Event(Sunset) }

// Dawn returns the start of morning civil twilight.
func (s SunTimes) Dawn() (time.Time, bool) { return s.Event(Dawn) }

// Dusk returns the end of evening civil twilight.
func (s SunTimes) Dusk() (time.Time, bool) { return s.Event(Dusk) }

func (s SunTimes) GoldenHourEnd() (time.Time, bool) { return s.Event(GoldenHourEnd) }
func (s SunTimes) GoldenHour() (time.Time, bool)    { return s.Event(GoldenHour) }

// MarshalJSON writes solarNoon, nadir and then every solved event in
// threshold order. Absent events are null.
func (s SunTimes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	write := func(name EventName, t time.Time, ok bool) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(name))
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if !ok {
			buf.WriteString("null")
			return nil
		}
		val, err := json.Marshal(t)
		if err != nil {
			return err
		}
		buf.Write(val)
		return nil
	}

	if err := write(SolarNoon, s.SolarNoon, true); err != nil {
		return nil, err
	}
	if err := write(Nadir, s.Nadir, true); err != nil {
		return nil, err
	}
	for _, name := range s.order {
		t, ok := s.events[name]
		if err := write(name, t, ok); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
