package main

import (
	"context"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-boids/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-boids/pkg/telemetry"
	"github.com/lao-tseu-is-alive/go-boids/pkg/viewer"
	golog "github.com/tochemey/goakt/v3/log"
)

func main() {
	configPath := flag.String("config", "", "Path to a JSON or YAML config file (empty = use defaults)")
	flag.Parse()

	cfg, err := simulation.LoadConfigOrDefault(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	system, err := simulation.StartSystem(ctx, golog.DefaultLogger)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = system.Stop(ctx) }()

	recorder, err := telemetry.CreateRecorder(cfg.Telemetry.CSVPath)
	if err != nil {
		log.Fatal(err)
	}
	defer recorder.Close()

	game, err := viewer.NewGame(ctx, cfg, system, recorder)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(cfg.Display.Width, cfg.Display.Height)
	ebiten.SetWindowTitle("Boids")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
