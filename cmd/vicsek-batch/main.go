// Command vicsek-batch runs a Vicsek world headless and records the order
// parameter over time.
//
// Usage:
//
//	vicsek-batch [-config file] [-steps n] [-every n] [-db runs.db]
//
// Flags override the matching config keys. Without -db or recordPath the
// samples are only logged.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/tochemey/goakt/v3/actor"

	"github.com/SebastianHodge/Vicsek-Simulation-of-Collective-Motion-of-Populations-of-Organisms/internal/logging"
	"github.com/SebastianHodge/Vicsek-Simulation-of-Collective-Motion-of-Populations-of-Organisms/internal/recorder"
	"github.com/SebastianHodge/Vicsek-Simulation-of-Collective-Motion-of-Populations-of-Organisms/pkg/simulation"
)

func main() {
	configFile := flag.String("config", "", "path to a JSON or TOML config file")
	steps := flag.Int("steps", -1, "number of ticks to run (default from config)")
	every := flag.Int("every", -1, "ticks between two samples (default from config)")
	dbPath := flag.String("db", "", "SQLite file receiving the samples (default from config)")
	flag.Parse()

	cfg := simulation.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = simulation.LoadConfig(*configFile); err != nil {
			fatal(err)
		}
	}
	if *steps >= 0 {
		cfg.Steps = *steps
	}
	if *every > 0 {
		cfg.RecordEvery = *every
	}
	if *dbPath != "" {
		cfg.RecordPath = *dbPath
	}
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		fatal(err)
	}
}

func run(ctx context.Context, cfg *simulation.Config) error {
	logger := logging.New(os.Stdout)
	system, err := actor.NewActorSystem("VicsekBatch", actor.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := system.Start(ctx); err != nil {
		return err
	}
	defer system.Stop(context.Background())

	pid, err := system.Spawn(ctx, "world", simulation.NewWorldActor(nil, cfg))
	if err != nil {
		return fmt.Errorf("failed to spawn world: %w", err)
	}

	var sink simulation.SampleSink
	if cfg.RecordPath != "" {
		db, err := recorder.Open(cfg.RecordPath)
		if err != nil {
			return err
		}
		defer db.Close()
		rec, err := db.StartRun(ctx, cfg.Params())
		if err != nil {
			return err
		}
		logger.Infof("recording run %s to %s", rec.ID(), cfg.RecordPath)
		sink = rec
	}

	start := time.Now()
	last, err := simulation.RunBatch(ctx, pid, cfg.Steps, cfg.RecordEvery, sink, logger)
	if err != nil {
		return err
	}
	logger.Infof("ran %s ticks of %d agents in %s, final order parameter %.3f",
		humanize.Comma(int64(last.Tick)), last.Population,
		time.Since(start).Round(time.Millisecond), last.OrderParameter)
	return nil
}

// fatal prints an error on the standard error and exits with a non-zero status.
func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	os.Exit(1)
}
