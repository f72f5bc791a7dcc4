package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/swdee/go-motstats/logger"
	"github.com/swdee/go-motstats/stats"
)

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	// read in cli flags
	cfgFile := flag.String("c", "", "Config file (yaml, json, toml), MOTSTATS_* environment variables override it")
	envFile := flag.String("e", ".env", "Optional dotenv file loaded into the environment before the config")
	dataRoot := flag.String("d", "", "Dataset root holding <split>/ directories and <split>_seqmap.txt files")
	threshold := flag.Float64("t", 0.5, "IoU a pair of boxes must exceed to count as overlapping [0.0-1.0]")
	method := flag.String("m", "rectangle", "IoU method [rectangle|polygon]")
	jsonOut := flag.String("o", "", "Write the summary JSON to this file")
	sqliteOut := flag.String("s", "", "Append the run to this SQLite database")
	logLevel := flag.String("l", "info", "Log level [debug|info|warn|error]")
	logFile := flag.String("f", "", "Also write logs to this rotated file")
	flag.Parse()

	// a missing dotenv file is not an error, only a malformed one
	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		log.Fatal("Error loading dotenv file: ", err)
	}

	lg, err := logger.New(logger.Options{Level: *logLevel, File: *logFile})

	if err != nil {
		log.Fatal("Error creating logger: ", err)
	}

	cfg, err := stats.LoadConfig(*cfgFile)

	if err != nil {
		lg.Fatalf("Error loading config: %v", err)
	}

	// flags given on the command line take precedence over the config
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "d":
			cfg.DataRoot = *dataRoot
		case "t":
			cfg.OverlapThreshold = *threshold
		case "m":
			cfg.Method = *method
		case "o":
			cfg.OutputJSON = *jsonOut
		case "s":
			cfg.OutputSQLite = *sqliteOut
		}
	})

	agg, err := stats.NewAggregator(cfg, lg)

	if err != nil {
		lg.Fatalf("Error creating aggregator: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()

	summary, err := agg.Run(ctx)

	if err != nil {
		lg.Fatalf("Error collecting statistics: %v", err)
	}

	lg.WithFields(logger.Fields{
		"sequences":       summary.NumSequences,
		"frames":          summary.TotalFrames,
		"instances":       summary.TotalInstances,
		"pairs":           summary.TotalPairs,
		"overlaps":        summary.TotalOverlaps,
		"pairs_per_frame": summary.MeanPairsPerFrame,
		"pairs_std":       summary.StdPairsPerFrame,
		"duration":        time.Since(start).String(),
	}).Info("Dataset statistics")

	var stores []stats.Store

	if cfg.OutputJSON != "" {
		stores = append(stores, stats.NewJSONStore(cfg.OutputJSON))
	}

	if cfg.OutputSQLite != "" {
		db, err := stats.OpenSQLite(ctx, cfg.OutputSQLite)

		if err != nil {
			lg.Fatalf("Error opening database: %v", err)
		}

		defer db.Close()

		stores = append(stores, db)
	}

	for _, store := range stores {
		if err := store.Save(ctx, summary); err != nil {
			lg.Fatalf("Error saving summary: %v", err)
		}
	}

	lg.WithField("run_id", summary.RunID).Info("done")
}
