package commands

import (
	"log/slog"

	"subastas-ingest/internal/pipeline"
	"subastas-ingest/internal/scrapers/boe"

	"github.com/spf13/cobra"
)

var initOngoing bool

func init() {
	initCmd.Flags().BoolVar(&initOngoing, "ongoing", false, "Only discover the auctions that are being held.")
	rootCmd.AddCommand(initCmd, updateCmd, enrichCmd)
}

func logReport(r pipeline.Report) {
	slog.Info(
		"pass finished",
		"pass", r.Pass,
		"id", r.ID,
		"ok", r.OK,
		"err", r.Failed,
		"skipped", r.Skipped,
		"total", r.Total,
		"took", r.FinishedAt.Sub(r.StartedAt),
	)
}

var initCmd = &cobra.Command{
	Use:   "init [--ongoing]",
	Short: "Ingests every listed auction that is not stored yet.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		listing := boe.ListingURL(a.pipeline.BaseURL(), initOngoing)
		logReport(a.pipeline.InitListing(cmd.Context(), listing))
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Refreshes the state of the stored auctions that are not finished.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		logReport(a.pipeline.Update(cmd.Context()))
		return nil
	},
}

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Geocodes the stored properties that have no coordinates yet.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Geocoder.Disabled {
			slog.Warn("geocoder is disabled in the config, nothing to do")
			return nil
		}
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		logReport(a.pipeline.Enrich(cmd.Context()))
		return nil
	},
}
