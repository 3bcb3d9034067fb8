package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"subastas-ingest/lib/configutil"
	"subastas-ingest/lib/telemetry"

	"github.com/spf13/cobra"
)

const serviceName = "subastas"

var (
	configPath string
	verbose    bool

	cfg Config
	tel telemetry.Telemetry
)

var rootCmd = &cobra.Command{
	Use:           "subastas",
	Short:         "subastas ingests the auctions published on the BOE auction portal.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(os.Stderr, verbose)

		err := configutil.LoadEnv()
		if err != nil {
			return err
		}
		cfg, err = loadConfig(configPath)
		if err != nil {
			return err
		}
		tel, err = telemetry.SetupFromEnv(cmd.Context(), serviceName)
		if err != nil {
			return fmt.Errorf("setup telemetry: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := tel.Shutdown(ctx)
		if err != nil {
			slog.Warn("failed to flush telemetry", "err", err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigName, "The config file to read.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging and dump every request under .dev/resty.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
