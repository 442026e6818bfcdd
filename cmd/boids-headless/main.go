package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/lao-tseu-is-alive/go-boids/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-boids/pkg/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to a JSON or YAML config file (empty = use defaults)")
	ticks := flag.Int("ticks", 600, "Number of ticks to simulate")
	dt := flag.Float64("dt", 1.0/60, "Tick length in seconds")
	csvPath := flag.String("csv", "", "CSV telemetry output (overrides telemetry.csvPath)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := simulation.LoadConfigOrDefault(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *csvPath != "" {
		cfg.Telemetry.CSVPath = *csvPath
	}
	if *ticks < 0 || *dt < 0 {
		slog.Error("ticks and dt must not be negative", "ticks", *ticks, "dt", *dt)
		os.Exit(1)
	}

	recorder, err := telemetry.CreateRecorder(cfg.Telemetry.CSVPath)
	if err != nil {
		slog.Error("failed to create telemetry output", "error", err)
		os.Exit(1)
	}

	flock, _, err := cfg.Populate()
	if err != nil {
		slog.Error("failed to build flock", "error", err)
		os.Exit(1)
	}

	slog.Info("starting headless simulation",
		"agents", flock.Len(),
		"ticks", *ticks,
		"dt", *dt,
		"order", flock.Order().String(),
		"influence", cfg.InfluenceMode,
		"csv", cfg.Telemetry.CSVPath,
	)

	start := time.Now()
	sample := telemetry.Compute(flock.Tick(), flock.Elapsed(), flock.Agents())
	for i := 0; i < *ticks; i++ {
		flock.Step(*dt, cfg.Flocking)
		sample = telemetry.Compute(flock.Tick(), flock.Elapsed(), flock.Agents())
		if err := recorder.Write(sample); err != nil {
			slog.Error("failed to record telemetry", "tick", sample.Tick, "error", err)
			os.Exit(1)
		}
		if n := cfg.Telemetry.LogEveryTicks; n > 0 && sample.Tick%uint64(n) == 0 {
			slog.Info("tick", "stats", sample)
		}
	}
	if err := recorder.Close(); err != nil {
		slog.Error("failed to close telemetry output", "error", err)
		os.Exit(1)
	}

	elapsed := time.Since(start)
	slog.Info("simulation finished",
		"stats", sample,
		"rows", recorder.Rows(),
		"wall_time", elapsed.String(),
	)
}
