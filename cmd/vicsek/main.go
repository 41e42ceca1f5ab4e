// Command vicsek opens an interactive window on a Vicsek world.
//
// Usage:
//
//	vicsek [-config file.json|file.toml]
//
// Space pauses and resumes, the Reset button seeds a fresh population.
// The log level comes from VICSEK_LOG_LEVEL.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tochemey/goakt/v3/actor"

	"github.com/SebastianHodge/Vicsek-Simulation-of-Collective-Motion-of-Populations-of-Organisms/internal/logging"
	"github.com/SebastianHodge/Vicsek-Simulation-of-Collective-Motion-of-Populations-of-Organisms/internal/viewer"
	"github.com/SebastianHodge/Vicsek-Simulation-of-Collective-Motion-of-Populations-of-Organisms/pkg/simulation"
)

func main() {
	configFile := flag.String("config", "", "path to a JSON or TOML config file")
	flag.Parse()

	cfg := simulation.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = simulation.LoadConfig(*configFile); err != nil {
			fatal(err)
		}
	}

	ctx := context.Background()
	logger := logging.New(os.Stdout)
	system, err := actor.NewActorSystem("VicsekWorld", actor.WithLogger(logger))
	if err != nil {
		fatal(err)
	}
	if err := system.Start(ctx); err != nil {
		fatal(err)
	}
	defer system.Stop(ctx)

	game, err := viewer.NewGame(ctx, cfg, system)
	if err != nil {
		fatal(err)
	}

	ebiten.SetWindowTitle("Vicsek Model: Collective Motion")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	w, h := game.Layout(0, 0)
	ebiten.SetWindowSize(2*w, 2*h)
	if err := ebiten.RunGame(game); err != nil {
		logger.Error(err)
	}
}

// fatal prints an error on the standard error and exits with a non-zero status.
func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	os.Exit(1)
}
