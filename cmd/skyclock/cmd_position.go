package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/thurmanmarka/skyclock"
	"github.com/thurmanmarka/skyclock/internal/render"
)

func newPositionCmd(a *app) *cobra.Command {
	var timeS string

	cmd := &cobra.Command{
		Use:   "position",
		Short: "Sun altitude, azimuth, declination and equation of time at an instant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := a.parseInstant(timeS)
			if err != nil {
				return err
			}

			coords := a.observer()
			pos := skyclock.GetPosition(at, coords.Lat, coords.Lon)

			if a.jsonOut {
				return render.JSON(cmd.OutOrStdout(), struct {
					Time        time.Time            `json:"time"`
					Coordinates skyclock.Coordinates `json:"coordinates"`
					skyclock.SunPosition
				}{at, coords, pos})
			}
			return render.SunPosition(cmd.OutOrStdout(), coords, at, pos)
		},
	}

	cmd.Flags().StringVar(&timeS, "time", "", "time in RFC3339 or 'YYYY-MM-DDTHH:MM' in --tz (defaults to now)")
	return cmd
}
