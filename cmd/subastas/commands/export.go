package commands

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var (
	exportOutput   string
	exportS3Bucket string
	exportS3Key    string
)

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write the snapshot to this file instead of the configured one.")
	exportCmd.Flags().StringVar(&exportS3Bucket, "s3-bucket", "", "Upload the snapshot to this bucket.")
	exportCmd.Flags().StringVar(&exportS3Key, "s3-key", "", "The object key of the uploaded snapshot.")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [-o <path>] [--s3-bucket <bucket> [--s3-key <key>]]",
	Short: "Writes a compressed snapshot of the auctions being held.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		export := cfg.Export
		if exportOutput != "" {
			export.Output = exportOutput
			export.S3Bucket = ""
		}
		if exportS3Bucket != "" {
			export.S3Bucket = exportS3Bucket
		}
		if exportS3Key != "" {
			export.S3Key = exportS3Key
		}

		sink, err := exportSink(cmd.Context(), export)
		if err != nil {
			return err
		}
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		report, err := a.pipeline.Export(cmd.Context(), sink)
		logReport(report)
		if err != nil {
			return err
		}
		slog.Info("snapshot written", "sink", sink.String())
		return nil
	},
}
