package simulation

import (
	"context"
	"fmt"

	"github.com/lao-tseu-is-alive/go-boids/pkg/telemetry"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
)

// FlockActorName is the name of the flock actor in the actor system.
const FlockActorName = "flock"

// StartSystem creates and starts the actor system hosting the flock.
func StartSystem(ctx context.Context, logger golog.Logger) (actor.ActorSystem, error) {
	system, err := actor.NewActorSystem("BoidsWorld",
		actor.WithLogger(logger),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		return nil, fmt.Errorf("creating actor system: %w", err)
	}
	if err := system.Start(ctx); err != nil {
		return nil, fmt.Errorf("starting actor system: %w", err)
	}
	return system, nil
}

// SpawnFlock spawns the FlockActor of cfg. Snapshots are pushed on snapshotCh
// when it is not nil, and samples appended to recorder when it is not nil.
func SpawnFlock(ctx context.Context, system actor.ActorSystem, cfg *Config, snapshotCh chan<- *Snapshot, recorder *telemetry.Recorder) (*actor.PID, error) {
	pid, err := system.Spawn(ctx, FlockActorName, NewFlockActor(cfg, snapshotCh, recorder))
	if err != nil {
		return nil, fmt.Errorf("failed to spawn flock: %w", err)
	}
	return pid, nil
}
