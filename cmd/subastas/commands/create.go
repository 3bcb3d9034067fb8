package commands

import (
	"log/slog"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Creates the database schema, existing tables are kept.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer conn.Close()

		slog.Info("schema ready", "driver", cfg.Database.Driver)
		return nil
	},
}
