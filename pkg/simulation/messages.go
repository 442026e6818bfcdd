package simulation

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lao-tseu-is-alive/go-boids/pkg/flocking"
	"github.com/lao-tseu-is-alive/go-boids/pkg/telemetry"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/structpb"
)

// Messages understood by FlockActor:
//
//	*durationpb.Duration  advance the flock by dt
//	*structpb.Struct      a command, selected by its "kind" field
//	*emptypb.Empty        ask for a summary of the last tick
const (
	kindField = "kind"

	KindSettings = "settings"
	KindSpawn    = "spawn"
)

var ErrUnknownCommand = errors.New("unknown command")

// NewTick builds the message advancing the flock by dt.
func NewTick(dt time.Duration) *durationpb.Duration {
	return durationpb.New(dt)
}

// TickDuration converts a tick length in seconds into the Duration of NewTick.
func TickDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

// NewSettingsUpdate builds the command replacing the flocking settings.
func NewSettingsUpdate(s flocking.Settings) (*structpb.Struct, error) {
	return newCommand(KindSettings, s)
}

// NewSpawnRequest builds the command spawning one more group.
func NewSpawnRequest(g GroupConfig) (*structpb.Struct, error) {
	return newCommand(KindSpawn, g)
}

// newCommand encodes payload through its JSON form and tags it with kind.
func newCommand(kind string, payload any) (*structpb.Struct, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding %s command: %w", kind, err)
	}
	fields := map[string]interface{}{}
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, fmt.Errorf("encoding %s command: %w", kind, err)
	}
	fields[kindField] = kind
	msg, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("encoding %s command: %w", kind, err)
	}
	return msg, nil
}

// CommandKind returns the kind of a command message.
func CommandKind(msg *structpb.Struct) string {
	return msg.GetFields()[kindField].GetStringValue()
}

// decodeCommand decodes the payload of msg over into. Fields absent from the
// message keep the value they have in into.
func decodeCommand(msg *structpb.Struct, into any) error {
	fields := msg.AsMap()
	delete(fields, kindField)
	b, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("decoding %s command: %w", CommandKind(msg), err)
	}
	if err := json.Unmarshal(b, into); err != nil {
		return fmt.Errorf("decoding %s command: %w", CommandKind(msg), err)
	}
	return nil
}

// DecodeSettings applies a settings command on top of current.
func DecodeSettings(msg *structpb.Struct, current flocking.Settings) (flocking.Settings, error) {
	if kind := CommandKind(msg); kind != KindSettings {
		return current, fmt.Errorf("%w %q, want %q", ErrUnknownCommand, kind, KindSettings)
	}
	s := current
	if err := decodeCommand(msg, &s); err != nil {
		return current, err
	}
	return s, nil
}

// DecodeSpawnRequest decodes a spawn command.
func DecodeSpawnRequest(msg *structpb.Struct) (GroupConfig, error) {
	if kind := CommandKind(msg); kind != KindSpawn {
		return GroupConfig{}, fmt.Errorf("%w %q, want %q", ErrUnknownCommand, kind, KindSpawn)
	}
	var g GroupConfig
	if err := decodeCommand(msg, &g); err != nil {
		return GroupConfig{}, err
	}
	return g, nil
}

// newSummary is the answer to a summary request.
func newSummary(s telemetry.Sample) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"tick":         s.Tick,
		"simTime":      s.SimTime,
		"agents":       s.Agents,
		"meanSpeed":    s.MeanSpeed,
		"speedStd":     s.SpeedStd,
		"centroidX":    s.CentroidX,
		"centroidY":    s.CentroidY,
		"spread":       s.Spread,
		"polarization": s.Polarization,
	})
}

// SummaryFromStruct reads back the sample sent as a summary.
func SummaryFromStruct(msg *structpb.Struct) telemetry.Sample {
	f := msg.GetFields()
	return telemetry.Sample{
		Tick:         uint64(f["tick"].GetNumberValue()),
		SimTime:      f["simTime"].GetNumberValue(),
		Agents:       int(f["agents"].GetNumberValue()),
		MeanSpeed:    f["meanSpeed"].GetNumberValue(),
		SpeedStd:     f["speedStd"].GetNumberValue(),
		CentroidX:    f["centroidX"].GetNumberValue(),
		CentroidY:    f["centroidY"].GetNumberValue(),
		Spread:       f["spread"].GetNumberValue(),
		Polarization: f["polarization"].GetNumberValue(),
	}
}
