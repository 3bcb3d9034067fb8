package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"subastas-ingest/internal/auction"
	"subastas-ingest/internal/pipeline"
	"subastas-ingest/internal/snapshot"
	"subastas-ingest/pkg/migrations"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subastas.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{
		// comments are allowed
		database: {driver: "pgx", dsn: "postgres://localhost/subastas"},
		boe: {concurrency: 3, retries: 2},
		daemon: {update_spec: "*/30 * * * *"},
	}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "subastas.local.json5"), []byte(`{
		boe: {concurrency: 8},
		export: {s3_bucket: "bucket"},
	}`), 0o600))

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	require.Equal(t, migrations.DriverPostgres, cfg.Database.Driver)
	require.Equal(t, "postgres://localhost/subastas", cfg.Database.DSN)
	require.Equal(t, 8, cfg.Boe.Concurrency)
	require.Equal(t, 3, cfg.boeOptions().Attempts)
	require.Equal(t, 10*time.Second, cfg.boeOptions().Timeout)
	require.Equal(t, "bucket", cfg.Export.S3Bucket)
	require.Equal(t, "subastas/snapshot.pb.zst", cfg.Export.S3Key)
	// a single spec disables the other passes
	require.Equal(t, DaemonConfig{UpdateSpec: "*/30 * * * *"}, cfg.Daemon)

	_, err = loadConfig(filepath.Join(dir, "missing.json5"))
	require.Error(t, err)
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	require.Equal(t, migrations.DriverSqlite, cfg.Database.Driver)
	require.Equal(t, "data/subastas.db", cfg.Database.DSN)
	require.Equal(t, pipeline.DefaultConcurrency, cfg.Boe.Concurrency)
	require.NotEmpty(t, cfg.Daemon.InitSpec)
	require.NotEmpty(t, cfg.Daemon.ExportSpec)

	postgres := Config{Database: DatabaseConfig{Driver: migrations.DriverPostgres}}.withDefaults()
	require.Empty(t, postgres.Database.DSN)
}

func TestExportSink(t *testing.T) {
	sink, err := exportSink(context.Background(), ExportConfig{Output: "out.bin"})
	require.NoError(t, err)
	require.Equal(t, snapshot.FileSink{Path: "out.bin"}, sink)
}

type fakeCron struct {
	specs     []string
	callbacks []func()
}

func (c *fakeCron) Cron(spec string, callback func()) error {
	if spec == "bad" {
		return errors.New("invalid spec")
	}
	c.specs = append(c.specs, spec)
	c.callbacks = append(c.callbacks, callback)
	return nil
}

func TestSchedule(t *testing.T) {
	testCases := []struct {
		name      string
		jobs      []string
		scheduled int
		fails     bool
	}{
		{name: "all", jobs: []string{"a", "b", "c"}, scheduled: 3},
		{name: "disabled", jobs: []string{"a", "", "c"}, scheduled: 2},
		{name: "invalid", jobs: []string{"a", "bad", "c"}, scheduled: 1, fails: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ran := 0
			var jobs []job
			for _, spec := range tc.jobs {
				jobs = append(jobs, job{name: spec, spec: spec, run: func(context.Context) { ran++ }})
			}

			cron := &fakeCron{}
			scheduled, err := schedule(context.Background(), cron, jobs)
			if tc.fails {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tc.scheduled, scheduled)

			for _, cb := range cron.callbacks {
				cb()
			}
			require.Equal(t, tc.scheduled, ran)
		})
	}
}

func TestScheduleSkipsAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ran := false
	cron := &fakeCron{}
	_, err := schedule(ctx, cron, []job{{name: "update", spec: "@every 1m", run: func(context.Context) { ran = true }}})
	require.NoError(t, err)

	cancel()
	cron.callbacks[0]()
	require.False(t, ran)
}

func TestRenderStatistics(t *testing.T) {
	started := time.Date(2020, 7, 1, 10, 0, 0, 0, time.UTC)
	stats := pipeline.Statistics{
		Auctions: 2,
		Assets:   3,
		ByState: map[auction.AuctionState]int{
			auction.StateOngoing:    1,
			auction.StateToBeOpened: 1,
		},
		ByKind: map[auction.AuctionKind]int{auction.KindBankruptcy: 2},
		ByCategory: map[pipeline.CategoryKey]int{
			{Kind: auction.AssetVehicle, Category: auction.VehicleCar.String()}: 1,
		},
		ByProvince: map[auction.Province]int{auction.LaRioja: 1},
		EndMonths: []pipeline.MonthCount{
			{Month: time.Date(2020, 7, 1, 0, 0, 0, 0, time.UTC), Count: 1},
		},
		Runs: []pipeline.Report{{
			ID:         "01EC2QXKQ1ZW2YEX4D0N6SMW3B",
			Pass:       pipeline.PassInit,
			StartedAt:  started,
			FinishedAt: started.Add(90 * time.Second),
			OK:         2,
			Total:      2,
		}},
	}

	var out bytes.Buffer
	renderStatistics(&out, stats)
	text := out.String()

	for _, expected := range []string{
		auction.StateOngoing.String(),
		auction.KindBankruptcy.String(),
		"vehicle / " + auction.VehicleCar.String(),
		"La Rioja",
		"2020-07",
		"01EC2QXKQ1ZW2YEX4D0N6SMW3B",
		"1m30s",
	} {
		require.Contains(t, text, expected)
	}
}
