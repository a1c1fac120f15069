package main

import (
	"encoding/json"
	"os"

	"github.com/sankalpsthakur/astronova-sub001/internal/app"
	"github.com/sankalpsthakur/astronova-sub001/internal/infra/logger"

	"github.com/spf13/cobra"
)

// newDashaCmd builds the one-shot computation command. It takes the Moon
// longitude directly, so it needs neither the database nor the ephemeris
// service; useful for verifying timelines by hand.
func newDashaCmd() *cobra.Command {
	var (
		birthDate     string
		birthTime     string
		timezone      string
		targetDate    string
		moonLongitude float64
		futurePeriods int
	)

	cmd := &cobra.Command{
		Use:   "dasha",
		Short: "Compute a dasha timeline once and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			service := app.NewDashaService(nil, logger.Get().WithField("component", "dasha_cli"))
			resp, err := service.DashaDetail(cmd.Context(), app.DashaDetailRequest{
				Birth: app.BirthDetails{
					Date:          birthDate,
					Time:          birthTime,
					Timezone:      timezone,
					MoonLongitude: &moonLongitude,
				},
				TargetDate:         targetDate,
				IncludeTransitions: true,
				NumFuturePeriods:   futurePeriods,
			})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		},
	}

	cmd.Flags().StringVar(&birthDate, "birth-date", "", "birth date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&birthTime, "birth-time", "", "birth time (HH:MM)")
	cmd.Flags().StringVar(&timezone, "timezone", "UTC", "IANA timezone of the birth time")
	cmd.Flags().StringVar(&targetDate, "target-date", "", "target date (YYYY-MM-DD, default today UTC)")
	cmd.Flags().Float64Var(&moonLongitude, "moon-longitude", 0, "sidereal Moon longitude at birth, degrees")
	cmd.Flags().IntVar(&futurePeriods, "future-periods", 3, "number of future mahadashas to include")
	_ = cmd.MarkFlagRequired("birth-date")
	_ = cmd.MarkFlagRequired("birth-time")
	_ = cmd.MarkFlagRequired("moon-longitude")
	return cmd
}
