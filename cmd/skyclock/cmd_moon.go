package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thurmanmarka/skyclock"
	"github.com/thurmanmarka/skyclock/internal/render"
)

func newMoonCmd(a *app) *cobra.Command {
	var timeS string

	cmd := &cobra.Command{
		Use:   "moon",
		Short: "Moon position, illumination and the day's moonrise and moonset",
		Long: `Prints the Moon's topocentric position and illumination at --time, and
moonrise and moonset on that instant's calendar day in --tz. A day may
have only one of the two, or neither when the Moon stays up or down.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := a.parseInstant(timeS)
			if err != nil {
				return err
			}

			coords := a.observer()
			day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())

			pos := skyclock.GetMoonPosition(at, coords.Lat, coords.Lon)
			ill := skyclock.GetMoonIllumination(at)
			mt := skyclock.GetMoonTimes(day, coords.Lat, coords.Lon)
			a.logger.Debug("Solved moon times",
				zap.Bool("rise", mt.HasRise),
				zap.Bool("set", mt.HasSet),
				zap.Bool("always_up", mt.AlwaysUp),
				zap.Bool("always_down", mt.AlwaysDown))

			if a.jsonOut {
				return render.JSON(cmd.OutOrStdout(), struct {
					Time         time.Time                 `json:"time"`
					Coordinates  skyclock.Coordinates      `json:"coordinates"`
					Position     skyclock.MoonPosition     `json:"position"`
					Illumination skyclock.MoonIllumination `json:"illumination"`
					Times        skyclock.MoonTimes        `json:"times"`
				}{at, coords, pos, ill, mt})
			}
			return render.Moon(cmd.OutOrStdout(), coords, at, pos, ill, mt)
		},
	}

	cmd.Flags().StringVar(&timeS, "time", "", "time in RFC3339 or 'YYYY-MM-DDTHH:MM' in --tz (defaults to now)")
	return cmd
}

func newPhaseCmd(a *app) *cobra.Command {
	var timeS string

	cmd := &cobra.Command{
		Use:   "phase",
		Short: "Moon phase and illumination",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := a.parseInstant(timeS)
			if err != nil {
				return err
			}

			phase, err := skyclock.MoonPhaseAt(at)
			if err != nil {
				return err
			}

			if a.jsonOut {
				return render.JSON(cmd.OutOrStdout(), phase)
			}
			return render.Phase(cmd.OutOrStdout(), phase)
		},
	}

	cmd.Flags().StringVar(&timeS, "time", "", "time in RFC3339 or 'YYYY-MM-DDTHH:MM' in --tz (defaults to now)")
	return cmd
}
