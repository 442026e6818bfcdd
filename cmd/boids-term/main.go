package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-boids/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-boids/pkg/telemetry"
	"github.com/lao-tseu-is-alive/go-boids/pkg/term"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/proto"
)

func main() {
	configPath := flag.String("config", "", "Path to a JSON or YAML config file (empty = use defaults)")
	fps := flag.Int("fps", 30, "Frames (and ticks) per second")
	flag.Parse()

	if err := run(*configPath, *fps); err != nil {
		fmt.Fprintf(os.Stderr, "boids-term: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, fps int) error {
	if fps <= 0 {
		return fmt.Errorf("fps must be positive, got %d", fps)
	}
	cfg, err := simulation.LoadConfigOrDefault(configPath)
	if err != nil {
		return err
	}

	recorder, err := telemetry.CreateRecorder(cfg.Telemetry.CSVPath)
	if err != nil {
		return err
	}
	defer recorder.Close()

	ctx := context.Background()
	// the terminal is the screen: actor logs would corrupt it
	system, err := simulation.StartSystem(ctx, golog.DiscardLogger)
	if err != nil {
		return err
	}
	defer func() { _ = system.Stop(ctx) }()

	snapshots := make(chan *simulation.Snapshot, 4)
	pid, err := simulation.SpawnFlock(ctx, system, cfg, snapshots, recorder)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	send := func(msg proto.Message) error {
		return actor.Tell(ctx, pid, msg)
	}
	return term.NewApp(screen, cfg, send, snapshots, fps).Run(ctx)
}
