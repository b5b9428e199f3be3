package httpapi

import (
	"net/http"
	"time"

	"github.com/thurmanmarka/skyclock"
)

type sunPositionResponse struct {
	Time        time.Time            `json:"time"`
	Coordinates skyclock.Coordinates `json:"coordinates"`
	skyclock.SunPosition
}

type sunTimesResponse struct {
	Date        string               `json:"date"`
	Coordinates skyclock.Coordinates `json:"coordinates"`
	Times       skyclock.SunTimes    `json:"times"`
}

type moonPositionResponse struct {
	Time        time.Time            `json:"time"`
	Coordinates skyclock.Coordinates `json:"coordinates"`
	skyclock.MoonPosition
}

type moonIlluminationResponse struct {
	Time time.Time `json:"time"`
	skyclock.MoonIllumination
	Waxing bool   `json:"waxing"`
	Name   string `json:"name"`
}

type moonTimesResponse struct {
	Date        string               `json:"date"`
	Coordinates skyclock.Coordinates `json:"coordinates"`
	Times       skyclock.MoonTimes   `json:"times"`
}

func (s *Server) sunPosition(_ *http.Request, q query) (any, error) {
	c, err := q.coordinates()
	if err != nil {
		return nil, err
	}
	t, err := q.instant()
	if err != nil {
		return nil, err
	}
	return sunPositionResponse{
		Time:        t,
		Coordinates: c,
		SunPosition: skyclock.GetPosition(t, c.Lat, c.Lon),
	}, nil
}

func (s *Server) sunTimes(_ *http.Request, q query) (any, error) {
	c, err := q.coordinates()
	if err != nil {
		return nil, err
	}
	date, err := q.date()
	if err != nil {
		return nil, err
	}

	times := s.calc.Times(date, c)
	for _, name := range times.Names() {
		if _, ok := times.Event(name); !ok {
			s.metrics.AbsentEvents.WithLabelValues(string(name)).Inc()
		}
	}

	return sunTimesResponse{
		Date:        date.Format(time.DateOnly),
		Coordinates: c,
		Times:       times,
	}, nil
}

func (s *Server) moonPosition(_ *http.Request, q query) (any, error) {
	c, err := q.coordinates()
	if err != nil {
		return nil, err
	}
	t, err := q.instant()
	if err != nil {
		return nil, err
	}
	return moonPositionResponse{
		Time:         t,
		Coordinates:  c,
		MoonPosition: skyclock.GetMoonPosition(t, c.Lat, c.Lon),
	}, nil
}

func (s *Server) moonIllumination(_ *http.Request, q query) (any, error) {
	t, err := q.instant()
	if err != nil {
		return nil, err
	}
	ill := skyclock.GetMoonIllumination(t)
	return moonIlluminationResponse{
		Time:             t,
		MoonIllumination: ill,
		Waxing:           ill.Waxing(),
		Name:             ill.Name(),
	}, nil
}

func (s *Server) moonTimes(_ *http.Request, q query) (any, error) {
	c, err := q.coordinates()
	if err != nil {
		return nil, err
	}
	date, err := q.date()
	if err != nil {
		return nil, err
	}

	mt := skyclock.GetMoonTimes(date, c.Lat, c.Lon)
	if !mt.HasRise {
		s.metrics.AbsentEvents.WithLabelValues("moonrise").Inc()
	}
	if !mt.HasSet {
		s.metrics.AbsentEvents.WithLabelValues("moonset").Inc()
	}

	return moonTimesResponse{
		Date:        date.Format(time.DateOnly),
		Coordinates: c,
		Times:       mt,
	}, nil
}
