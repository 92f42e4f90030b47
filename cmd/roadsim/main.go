//go:build ebiten

package main

import (
	"errors"
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"roadsim/internal/app"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger, err := app.NewLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal(err)
	}

	sim, err := app.LoadSim(cfg, logger)
	if err != nil {
		logger.Fatal("load simulation", "err", err)
	}

	game, err := app.New(sim, app.Options{
		Scale:    cfg.Scale,
		TPS:      cfg.TPS,
		Seed:     cfg.Seed,
		HUDWidth: cfg.HUDWidth,
		Logger:   logger,
	})
	if err != nil {
		logger.Fatal(err)
	}

	ebiten.SetWindowTitle("roadsim - " + sim.Name())
	ebiten.SetWindowSize(game.WindowSize())

	logger.Info("starting", "sim", sim.Name(), "tps", cfg.TPS, "seed", cfg.Seed)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal(err)
	}
}
