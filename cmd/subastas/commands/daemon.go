package commands

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"subastas-ingest/internal/chrono"
	"subastas-ingest/internal/pipeline"
	"subastas-ingest/internal/telemetry"
	libtelemetry "subastas-ingest/lib/telemetry"

	"github.com/spf13/cobra"
)

var daemonNow bool

func init() {
	daemonCmd.Flags().BoolVar(&daemonNow, "now", false, "Run an init pass immediately on start.")
	rootCmd.AddCommand(daemonCmd)
}

type job struct {
	name string
	spec string
	run  func(ctx context.Context)
}

func daemonJobs(p *pipeline.Pipeline, sink pipeline.ExportSink, specs DaemonConfig) []job {
	return []job{
		{
			name: "init",
			spec: specs.InitSpec,
			run:  func(ctx context.Context) { logReport(p.Init(ctx)) },
		},
		{
			name: "update",
			spec: specs.UpdateSpec,
			run:  func(ctx context.Context) { logReport(p.Update(ctx)) },
		},
		{
			name: "enrich",
			spec: specs.EnrichSpec,
			run:  func(ctx context.Context) { logReport(p.Enrich(ctx)) },
		},
		{
			name: "export",
			spec: specs.ExportSpec,
			run: func(ctx context.Context) {
				report, err := p.Export(ctx, sink)
				logReport(report)
				if err != nil {
					slog.Error("export failed", "err", err)
				}
			},
		},
	}
}

// schedule registers every job with a spec, it returns how many were
// registered.
func schedule(ctx context.Context, cron chrono.CronAPI, jobs []job) (int, error) {
	scheduled := 0
	for _, j := range jobs {
		if j.spec == "" {
			continue
		}
		err := cron.Cron(j.spec, func() {
			if ctx.Err() != nil {
				return
			}
			slog.Info("running scheduled pass", "pass", j.name)
			j.run(ctx)
		})
		if err != nil {
			return scheduled, fmt.Errorf("schedule %s (%q): %w", j.name, j.spec, err)
		}
		slog.Info("scheduled pass", "pass", j.name, "spec", j.spec)
		scheduled++
	}
	return scheduled, nil
}

var daemonCmd = &cobra.Command{
	Use:   "daemon [--now]",
	Short: "Runs the passes on the schedules of the config until interrupted.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		sink, err := exportSink(ctx, cfg.Export)
		if err != nil {
			return err
		}
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		cron := chrono.NewStandardCron(telemetry.SlogAPI{})
		scheduled, err := schedule(ctx, cron, daemonJobs(a.pipeline, sink, cfg.Daemon))
		if err != nil {
			return err
		}
		slog.Info("daemon started", "passes", scheduled)

		libtelemetry.InstrumentPerfStats(ctx)
		var initial sync.WaitGroup
		if daemonNow {
			initial.Add(1)
			go func() {
				defer initial.Done()
				logReport(a.pipeline.Init(ctx))
			}()
		}

		cron.Run(ctx)
		initial.Wait()
		slog.Info("daemon stopped")
		return nil
	},
}
