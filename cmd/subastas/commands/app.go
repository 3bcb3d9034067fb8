package commands

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"subastas-ingest/internal/geocoder"
	"subastas-ingest/internal/pipeline"
	"subastas-ingest/internal/scrapers/boe"
	"subastas-ingest/internal/snapshot"
	"subastas-ingest/internal/telemetry"
	"subastas-ingest/lib/restyutil"
	"subastas-ingest/pkg/migrations"
)

const dumpDirectory = ".dev/resty/boe"

// app is everything a command needs, built from the loaded config.
type app struct {
	db       *sql.DB
	pipeline *pipeline.Pipeline
}

func (a app) Close() {
	err := a.db.Close()
	if err != nil {
		slog.Warn("failed to close db", "err", err)
	}
}

func openDB(ctx context.Context) (*sql.DB, error) {
	return migrations.OpenAndMigrateDB(ctx, cfg.Database.Driver, cfg.Database.DSN)
}

func newApp(ctx context.Context) (app, error) {
	reporter := telemetry.SlogAPI{}

	opts := cfg.boeOptions()
	if verbose {
		dump, err := restyutil.NewFilesystemOutput(dumpDirectory)
		if err != nil {
			return app{}, err
		}
		slog.Debug("dumping requests", "dir", dump.Dir())
		opts.Dump = dump
	}
	client, err := boe.NewClient(opts, reporter)
	if err != nil {
		return app{}, fmt.Errorf("create boe client: %w", err)
	}

	var resolver pipeline.Resolver
	if !cfg.Geocoder.Disabled {
		resolver = geocoder.New(cfg.geocoderOptions(), reporter)
	}

	conn, err := openDB(ctx)
	if err != nil {
		return app{}, err
	}

	p := pipeline.New(
		client,
		pipeline.NewStore(conn),
		resolver,
		client.BaseURL,
		pipeline.Options{Concurrency: cfg.Boe.Concurrency},
		reporter,
	)
	return app{db: conn, pipeline: p}, nil
}

// exportSink picks the S3 sink when a bucket is configured.
func exportSink(ctx context.Context, export ExportConfig) (pipeline.ExportSink, error) {
	if export.S3Bucket == "" {
		return snapshot.FileSink{Path: export.Output}, nil
	}
	sink, err := snapshot.NewS3Sink(ctx, export.S3Region, export.S3Bucket, export.S3Key)
	if err != nil {
		return nil, err
	}
	return sink, nil
}
