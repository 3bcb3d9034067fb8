package telemetry

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"go.opentelemetry.io/otel"
)

const perfStatsInterval = time.Second * 30

// InstrumentPerfStats records process gauges every 30 seconds until ctx is
// done, the samples are also logged at debug level.
func InstrumentPerfStats(ctx context.Context) {
	meter := otel.Meter("subastas.perf_stats")
	cpuGauge, _ := meter.Float64Gauge("cpu_usage")
	memoryGauge, _ := meter.Int64Gauge("allocated_mb")
	liveObjectsGauge, _ := meter.Int64Gauge("live_objects")
	goroutineGauge, _ := meter.Int64Gauge("goroutine_count")

	go func() {
		var memStats runtime.MemStats
		ticker := time.NewTicker(perfStatsInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				runtime.ReadMemStats(&memStats)

				cpuUsage, err := cpu.PercentWithContext(ctx, time.Second, false)
				if err == nil && len(cpuUsage) > 0 {
					cpuGauge.Record(ctx, cpuUsage[0])
				} else if err != nil {
					slog.WarnContext(ctx, "failed to read cpu usage", "err", err)
				}

				allocated := int64(memStats.Alloc / 1_000_000)
				goroutines := int64(runtime.NumGoroutine())
				memoryGauge.Record(ctx, allocated)
				liveObjectsGauge.Record(ctx, int64(memStats.Mallocs)-int64(memStats.Frees))
				goroutineGauge.Record(ctx, goroutines)
				slog.DebugContext(ctx, "perf stats", "allocated_mb", allocated, "goroutines", goroutines)
			case <-ctx.Done():
				return
			}
		}
	}()
}
