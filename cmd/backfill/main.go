package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"StarChart/internal/di"
	"StarChart/pkg/config"
	"StarChart/pkg/util"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	fromArg := flag.String("from", "", "first day to backfill (YYYY-MM-DD), defaults to Jan 1 of the current year")
	toArg := flag.String("to", "", "last day to backfill (YYYY-MM-DD), defaults to today")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	now := time.Now().UTC()
	from := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	if *fromArg != "" {
		if from, err = util.ParseDate(*fromArg); err != nil {
			log.Fatalf("invalid -from: %v", err)
		}
	}
	to := now
	if *toArg != "" {
		if to, err = util.ParseDate(*toArg); err != nil {
			log.Fatalf("invalid -to: %v", err)
		}
	}

	logger, err := di.ProvideLogger(cfg)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	engine := di.ProvideEngine(cfg)
	metrics := di.ProvideMetrics()

	chClient, err := di.ProvideClickHouseClient(cfg)
	if err != nil {
		log.Fatalf("clickhouse init failed: %v", err)
	}
	if chClient != nil {
		defer chClient.Close()
	}
	archive := di.ProvideArchive(chClient, cfg)

	writer, err := di.ProvideSnapshotWriter(engine, archive, metrics, logger, cfg)
	if err != nil {
		log.Fatalf("writer init failed: %v", err)
	}

	log.Printf("backfill: backend=%s from=%s to=%s", cfg.Archive.Backend, util.DayKey(from), util.DayKey(to))

	written, err := writer.Backfill(context.Background(), from, to)
	if err != nil {
		log.Printf("backfill aborted after %d snapshots: %v", written, err)
		os.Exit(1)
	}
	log.Printf("backfill complete: %d snapshots written", written)
}
