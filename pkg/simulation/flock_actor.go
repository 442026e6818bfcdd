package simulation

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/lao-tseu-is-alive/go-boids/pkg/flocking"
	"github.com/lao-tseu-is-alive/go-boids/pkg/telemetry"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// FlockActor owns the flock. Its mailbox serializes ticks, settings updates
// and spawn requests, so settings only ever change between two ticks.
type FlockActor struct {
	cfg      *Config
	flock    *flocking.Flock
	settings flocking.Settings
	rng      *rand.Rand

	// Communication with UI
	snapshotCh chan<- *Snapshot
	recorder   *telemetry.Recorder
	last       telemetry.Sample

	// --- Benchmark Stats ---
	ticksSinceLog int
	lastLogTime   time.Time
}

var _ actor.Actor = (*FlockActor)(nil)

// NewFlockActor creates the flock logic unit. snapshotCh and recorder may be nil.
func NewFlockActor(cfg *Config, snapshotCh chan<- *Snapshot, recorder *telemetry.Recorder) *FlockActor {
	return &FlockActor{
		cfg:        cfg,
		settings:   cfg.Flocking,
		snapshotCh: snapshotCh,
		recorder:   recorder,
	}
}

func (f *FlockActor) PreStart(ctx *actor.Context) error {
	flock, rng, err := f.cfg.Populate()
	if err != nil {
		return fmt.Errorf("building flock: %w", err)
	}
	f.flock, f.rng = flock, rng
	f.last = telemetry.Compute(0, 0, flock.Agents())
	f.lastLogTime = time.Now()
	ctx.ActorSystem().Logger().Infof("Flock is spawning %d agents...", flock.Len())
	return nil
}

func (f *FlockActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {

	case *goaktpb.PostStart:
		ctx.Logger().Infof("Flock started: %d agents, %s order, %s influence",
			f.flock.Len(), f.flock.Order(), f.cfg.InfluenceMode)
		f.pushSnapshot()

	// The main simulation step (driven by the host loop)
	case *durationpb.Duration:
		if err := msg.CheckValid(); err != nil {
			ctx.Logger().Warnf("Dropping tick: %v", err)
			return
		}
		dt := msg.AsDuration().Seconds()
		if dt < 0 {
			ctx.Logger().Warnf("Dropping tick with negative dt %v", dt)
			return
		}
		f.step(ctx, dt)

	case *structpb.Struct:
		f.handleCommand(ctx, msg)

	case *emptypb.Empty:
		summary, err := newSummary(f.last)
		if err != nil {
			ctx.Logger().Errorf("Encoding summary: %v", err)
			ctx.Unhandled()
			return
		}
		ctx.Response(summary)

	default:
		ctx.Unhandled()
	}
}

func (f *FlockActor) handleCommand(ctx *actor.ReceiveContext, msg *structpb.Struct) {
	switch CommandKind(msg) {
	case KindSettings:
		s, err := DecodeSettings(msg, f.settings)
		if err == nil {
			err = s.Validate()
		}
		if err != nil {
			ctx.Logger().Warnf("Rejecting settings update: %v", err)
			return
		}
		f.settings = s

	case KindSpawn:
		g, err := DecodeSpawnRequest(msg)
		if err != nil {
			ctx.Logger().Warnf("Rejecting spawn request: %v", err)
			return
		}
		spawned := f.flock.Spawn(g.Group(), f.rng)
		ctx.Logger().Infof("Spawned %d agents around (%.0f, %.0f), flock has %d",
			len(spawned), g.CenterX, g.CenterY, f.flock.Len())

	default:
		ctx.Logger().Warnf("Ignoring command %q", CommandKind(msg))
		ctx.Unhandled()
	}
}

func (f *FlockActor) step(ctx *actor.ReceiveContext, dt float64) {
	f.flock.Step(dt, f.settings)
	f.ticksSinceLog++

	f.last = telemetry.Compute(f.flock.Tick(), f.flock.Elapsed(), f.flock.Agents())
	if err := f.recorder.Write(f.last); err != nil {
		ctx.Logger().Errorf("Recording tick %d: %v", f.last.Tick, err)
	}
	if n := f.cfg.Telemetry.LogEveryTicks; n > 0 && f.last.Tick%uint64(n) == 0 {
		ctx.Logger().Debugf("tick=%d agents=%d meanSpeed=%.2f polarization=%.3f",
			f.last.Tick, f.last.Agents, f.last.MeanSpeed, f.last.Polarization)
	}

	f.logBenchmarks(ctx)
	f.pushSnapshot()
}

func (f *FlockActor) logBenchmarks(ctx *actor.ReceiveContext) {
	if time.Since(f.lastLogTime) >= time.Second {
		ctx.Logger().Infof("📊 TICK RATE: %d/sec | Agents: %d | Mean speed: %.1f",
			f.ticksSinceLog, f.last.Agents, f.last.MeanSpeed)
		f.ticksSinceLog = 0
		f.lastLogTime = time.Now()
	}
}

func (f *FlockActor) pushSnapshot() {
	if f.snapshotCh == nil {
		return
	}
	select {
	case f.snapshotCh <- f.buildSnapshot():
	default:
		// UI busy, skip frame
	}
}

func (f *FlockActor) buildSnapshot() *Snapshot {
	return &Snapshot{
		Tick:     f.flock.Tick(),
		Elapsed:  f.flock.Elapsed(),
		Agents:   f.flock.Agents(),
		Settings: f.settings,
		Stats:    f.last,
	}
}

func (f *FlockActor) PostStop(ctx *actor.Context) error {
	if f.flock == nil {
		return nil
	}
	ctx.ActorSystem().Logger().Infof("Flock is shutdown after %d ticks...", f.flock.Tick())
	return nil
}
