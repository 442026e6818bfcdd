package flocking

import (
	"math"
	"testing"

	"github.com/lao-tseu-is-alive/go-boids/pkg/geometry"
)

func vec(x, y float64) geometry.Vector2D { return geometry.Vector2D{X: x, Y: y} }

func TestSeparation(t *testing.T) {
	tests := []struct {
		name        string
		self, other geometry.Vector2D
		want        geometry.Vector2D
	}{
		// normalize((-10, 0)) / 10² = (-1, 0) / 100
		{"Neighbor on the right pushes left", vec(0, 0), vec(10, 0), vec(-0.01, 0)},
		{"Neighbor on the left pushes right", vec(10, 0), vec(0, 0), vec(0.01, 0)},
		{"Neighbor above pushes down", vec(0, 0), vec(0, 2), vec(0, -0.25)},
		{"Coincident agents have no direction", vec(3, 3), vec(3, 3), vec(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Separation(tt.self, tt.other)
			if !got.Eq(tt.want) {
				t.Errorf("Separation(%v, %v) = %v; want %v", tt.self, tt.other, got, tt.want)
			}
			if !got.IsFinite() {
				t.Errorf("Separation(%v, %v) is not finite: %v", tt.self, tt.other, got)
			}
		})
	}
}

func TestComputeInfluences_PairIsSymmetric(t *testing.T) {
	agents := []Agent{
		{ID: 1, Position: vec(0, 0), Velocity: vec(1, 0)},
		{ID: 2, Position: vec(10, 0), Velocity: vec(0, 2)},
	}

	ComputeInfluences(agents, nil, InfluenceSum)

	a, b := agents[0].Influence, agents[1].Influence
	if !a.Separation.Eq(vec(-0.01, 0)) || !b.Separation.Eq(vec(0.01, 0)) {
		t.Errorf("Separation = %v and %v; want (-0.01, 0) and (0.01, 0)", a.Separation, b.Separation)
	}
	// alignment is the raw neighbor velocity, cohesion the raw neighbor position
	if !a.Alignment.Eq(vec(0, 2)) || !b.Alignment.Eq(vec(1, 0)) {
		t.Errorf("Alignment = %v and %v; want neighbor velocities", a.Alignment, b.Alignment)
	}
	if !a.Cohesion.Eq(vec(10, 0)) || !b.Cohesion.Eq(vec(0, 0)) {
		t.Errorf("Cohesion = %v and %v; want neighbor positions", a.Cohesion, b.Cohesion)
	}
}

func threeInLine() []Agent {
	return []Agent{
		{ID: 1, Position: vec(0, 0), Velocity: vec(1, 0)},
		{ID: 2, Position: vec(10, 0), Velocity: vec(2, 0)},
		{ID: 3, Position: vec(30, 0), Velocity: vec(3, 0)},
	}
}

func TestComputeInfluences_Modes(t *testing.T) {
	t.Run("Sum", func(t *testing.T) {
		agents := threeInLine()
		ComputeInfluences(agents, AlwaysVisible, InfluenceSum)

		got := agents[0].Influence
		wantSep := vec(-1.0/100-1.0/900, 0)
		if !got.Separation.Eq(wantSep) {
			t.Errorf("Separation = %v; want %v", got.Separation, wantSep)
		}
		if !got.Alignment.Eq(vec(5, 0)) {
			t.Errorf("Alignment = %v; want (5, 0)", got.Alignment)
		}
		if !got.Cohesion.Eq(vec(40, 0)) {
			t.Errorf("Cohesion = %v; want (40, 0)", got.Cohesion)
		}
	})

	t.Run("Average", func(t *testing.T) {
		agents := threeInLine()
		ComputeInfluences(agents, AlwaysVisible, InfluenceAverage)

		got := agents[0].Influence
		if !got.Alignment.Eq(vec(2.5, 0)) {
			t.Errorf("Alignment = %v; want (2.5, 0)", got.Alignment)
		}
		if !got.Cohesion.Eq(vec(20, 0)) {
			t.Errorf("Cohesion = %v; want (20, 0)", got.Cohesion)
		}
	})

	t.Run("LastWriter", func(t *testing.T) {
		agents := threeInLine()
		ComputeInfluences(agents, AlwaysVisible, InfluenceLastWriter)

		// pairs are visited (0,1) (0,2) (1,2): agent 0 and 1 end with agent 2,
		// agent 2 ends with agent 1.
		wantCohesion := []geometry.Vector2D{vec(30, 0), vec(30, 0), vec(10, 0)}
		wantAlignment := []geometry.Vector2D{vec(3, 0), vec(3, 0), vec(2, 0)}
		for i, a := range agents {
			if !a.Influence.Cohesion.Eq(wantCohesion[i]) {
				t.Errorf("agent %d Cohesion = %v; want %v", a.ID, a.Influence.Cohesion, wantCohesion[i])
			}
			if !a.Influence.Alignment.Eq(wantAlignment[i]) {
				t.Errorf("agent %d Alignment = %v; want %v", a.ID, a.Influence.Alignment, wantAlignment[i])
			}
		}
	})
}

func TestComputeInfluences_NoNeighbor(t *testing.T) {
	stale := Influence{Separation: vec(1, 1), Alignment: vec(2, 2), Cohesion: vec(3, 3)}

	tests := []struct {
		mode InfluenceMode
		want Influence
	}{
		{InfluenceSum, Influence{}},
		{InfluenceAverage, Influence{}},
		{InfluenceLastWriter, stale},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			agents := []Agent{{ID: 1, Influence: stale}}
			ComputeInfluences(agents, AlwaysVisible, tt.mode)
			if agents[0].Influence != tt.want {
				t.Errorf("Influence = %+v; want %+v", agents[0].Influence, tt.want)
			}
		})
	}
}

func TestComputeInfluences_ReadsPreTickState(t *testing.T) {
	// A visibility predicate that looks at the neighbor influence would
	// notice a write made earlier in the same pass.
	agents := threeInLine()
	canSee := func(self, other Agent) bool {
		if other.Influence != (Influence{}) {
			t.Errorf("agent %d observed an influence written during the pass on agent %d", self.ID, other.ID)
		}
		return true
	}
	ComputeInfluences(agents, canSee, InfluenceSum)
}

func TestComputeInfluences_SkipsSameID(t *testing.T) {
	agents := []Agent{
		{ID: 7, Position: vec(0, 0)},
		{ID: 7, Position: vec(5, 0)},
	}
	ComputeInfluences(agents, AlwaysVisible, InfluenceSum)
	for _, a := range agents {
		if a.Influence != (Influence{}) {
			t.Errorf("agent with duplicated ID got influence %+v; want none", a.Influence)
		}
	}
}

func TestVisionCone(t *testing.T) {
	canSee := VisionCone(50, 90)
	self := Agent{ID: 1, Position: vec(0, 0), Velocity: vec(1, 0)}

	tests := []struct {
		name  string
		self  Agent
		other geometry.Vector2D
		want  bool
	}{
		{"Ahead and close", self, vec(10, 0), true},
		{"Inside half angle", self, vec(10, 9), true},
		{"Beside", self, vec(0, 10), false},
		{"Behind", self, vec(-10, 0), false},
		{"Too far", self, vec(100, 0), false},
		{"Stationary sees around", Agent{ID: 1}, vec(0, 10), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := canSee(tt.self, Agent{ID: 2, Position: tt.other})
			if got != tt.want {
				t.Errorf("VisionCone(50, 90)(%v -> %v) = %v; want %v", tt.self.Position, tt.other, got, tt.want)
			}
		})
	}

	t.Run("Full circle", func(t *testing.T) {
		if !VisionCone(50, 360)(self, Agent{ID: 2, Position: vec(-10, 0)}) {
			t.Error("a 360 degree field of view should see behind")
		}
	})
}

func TestComputeInfluences_AsymmetricVisibility(t *testing.T) {
	// B flies ahead of A: A sees B, B does not see A.
	agents := []Agent{
		{ID: 1, Position: vec(0, 0), Velocity: vec(1, 0)},
		{ID: 2, Position: vec(10, 0), Velocity: vec(1, 0)},
	}
	ComputeInfluences(agents, VisionCone(50, 90), InfluenceSum)

	if !agents[0].Influence.Cohesion.Eq(vec(10, 0)) {
		t.Errorf("A Cohesion = %v; want (10, 0)", agents[0].Influence.Cohesion)
	}
	if agents[1].Influence != (Influence{}) {
		t.Errorf("B Influence = %+v; want none", agents[1].Influence)
	}
}

func TestParseInfluenceMode(t *testing.T) {
	for _, m := range []InfluenceMode{InfluenceSum, InfluenceAverage, InfluenceLastWriter} {
		got, err := ParseInfluenceMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseInfluenceMode(%q) = %v, %v; want %v", m.String(), got, err, m)
		}
	}
	if _, err := ParseInfluenceMode("median"); err == nil {
		t.Error("ParseInfluenceMode(median) should fail")
	}
}

func BenchmarkComputeInfluences(b *testing.B) {
	agents := make([]Agent, 100)
	for i := range agents {
		agents[i] = Agent{
			ID:       uint64(i + 1),
			Position: vec(math.Cos(float64(i))*float64(i), math.Sin(float64(i))*float64(i)),
			Velocity: vec(1, 0),
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ComputeInfluences(agents, AlwaysVisible, InfluenceSum)
	}
}
