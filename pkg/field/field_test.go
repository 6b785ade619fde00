package field

import (
	"math"
	"testing"

	"github.com/florelab/bloomforge/pkg/errors"
	"github.com/florelab/bloomforge/pkg/geom"
)

func testConfig() Config {
	return DefaultConfig(geom.Rect{Width: 200, Height: 150, Margin: 0.1})
}

func TestGenerateRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Canvas.Width = 0 }},
		{"negative height", func(c *Config) { c.Canvas.Height = -10 }},
		{"negative seeds", func(c *Config) { c.SeedCount = -1 }},
		{"too many seeds", func(c *Config) { c.SeedCount = MaxSeedCount + 1 }},
		{"negative petals", func(c *Config) { c.PetalCount = -4 }},
		{"margin too large", func(c *Config) { c.Canvas.Margin = 0.5 }},
		{"negative collision margin", func(c *Config) { c.CollisionMargin = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			tc.mutate(&cfg)
			_, err := Generate(cfg)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("expected INVALID_CONFIG, got %v", err)
			}
		})
	}
}

func TestGenerateDefaultsZeroCounts(t *testing.T) {
	cfg := Config{Canvas: geom.Rect{Width: 100, Height: 100, Margin: 0.1}, Seed: 7}
	f, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Seeds) != DefaultSeedCount {
		t.Errorf("seed count = %d, want default %d", len(f.Seeds), DefaultSeedCount)
	}
	if f.Config.PetalCount != DefaultPetalCount {
		t.Errorf("petal count = %d, want default %d", f.Config.PetalCount, DefaultPetalCount)
	}
}

func TestRelaxationKeepsSeedsInsideMargin(t *testing.T) {
	cfg := testConfig()
	cfg.RelaxIterations = 5
	f, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	mx, my := cfg.Canvas.MarginX(), cfg.Canvas.MarginY()
	for _, s := range f.Seeds {
		if s.Pos.X < mx || s.Pos.X > cfg.Canvas.Width-mx ||
			s.Pos.Y < my || s.Pos.Y > cfg.Canvas.Height-my {
			t.Errorf("seed %d at %+v outside margin-shrunk bounds", s.ID, s.Pos)
		}
	}
}

func TestPetalContainment(t *testing.T) {
	f, err := Generate(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	part := NewPartition(f.Seeds)
	for _, s := range f.Seeds {
		for _, rec := range s.Records {
			if got := part.NearestSeed(rec.Pos); got != s.ID {
				t.Errorf("petal circle of seed %d at %+v owned by seed %d", s.ID, rec.Pos, got)
			}
		}
	}
}

func TestNoCrossFlowerOverlap(t *testing.T) {
	cfg := testConfig()
	f, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	const eps = 1e-9
	for i, p := range f.PetalEnds {
		for _, q := range f.PetalEnds[i+1:] {
			if p.OwnerID == q.OwnerID {
				continue
			}
			// Zero-size stubs never passed a collision check, so the
			// clearance guarantee only covers grown petals.
			if p.Diameter == 0 || q.Diameter == 0 {
				continue
			}
			min := p.Diameter/2 + q.Diameter/2 + cfg.CollisionMargin
			if d := p.Pos.Dist(q.Pos); d < min-eps {
				t.Errorf("petals of seeds %d/%d too close: %g < %g", p.OwnerID, q.OwnerID, d, min)
			}
		}
	}
}

func TestGenerateDeterminism(t *testing.T) {
	cfg := testConfig()
	a, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(a.PetalEnds) != len(b.PetalEnds) {
		t.Fatalf("petal end counts differ: %d vs %d", len(a.PetalEnds), len(b.PetalEnds))
	}
	for i := range a.PetalEnds {
		if a.PetalEnds[i] != b.PetalEnds[i] {
			t.Fatalf("petal end %d differs: %+v vs %+v", i, a.PetalEnds[i], b.PetalEnds[i])
		}
	}
	for i := range a.Seeds {
		if a.Seeds[i].Pos != b.Seeds[i].Pos || a.Seeds[i].BaseAngle != b.Seeds[i].BaseAngle {
			t.Fatalf("seed %d differs", i)
		}
	}

	cfg.Seed = 1234
	c, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	same := len(c.PetalEnds) == len(a.PetalEnds)
	if same {
		for i := range c.PetalEnds {
			if c.PetalEnds[i] != a.PetalEnds[i] {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("different random seeds produced identical fields")
	}
}

func TestTotalPetalCount(t *testing.T) {
	cfg := testConfig()
	cfg.SeedCount = 10
	cfg.PetalCount = 8
	f, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if want := cfg.SeedCount * cfg.PetalCount; len(f.PetalEnds) != want {
		t.Errorf("petal end count = %d, want %d", len(f.PetalEnds), want)
	}
	for _, s := range f.Seeds {
		if s.SlotsLeft() != 0 {
			t.Errorf("seed %d has %d unconsumed slots", s.ID, s.SlotsLeft())
		}
	}
}

// Single isolated flower on a 100×100 canvas: all four petals belong to
// seed 0, point along the four slot directions rotated by the base
// angle, and grow until the margin-shrunk boundary stops them.
func TestSingleSeedScenario(t *testing.T) {
	cfg := DefaultConfig(geom.Rect{Width: 100, Height: 100, Margin: 0.1})
	cfg.SeedCount = 1
	cfg.PetalCount = 4
	f, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}

	if len(f.PetalEnds) != 4 {
		t.Fatalf("petal end count = %d, want 4", len(f.PetalEnds))
	}
	s := f.Seeds[0]
	for _, p := range f.PetalEnds {
		if p.OwnerID != 0 {
			t.Errorf("petal owned by %d, want 0", p.OwnerID)
		}
		if p.Diameter == 0 {
			t.Fatalf("isolated flower should not produce stub petals")
		}

		// Angle sits on one of the four slot directions.
		angle := math.Atan2(p.Pos.Y-s.Pos.Y, p.Pos.X-s.Pos.X)
		rel := angle - s.BaseAngle
		k := rel / (math.Pi / 2)
		if frac := math.Abs(k - math.Round(k)); frac > 0.01 {
			t.Errorf("petal angle %g not on a slot direction (k=%g)", angle, k)
		}

		// With a single seed the only stop is the canvas: growth ends
		// near the inset boundary, never past the territory radius.
		r := s.Pos.Dist(p.Pos)
		edge := math.Min(math.Min(s.Pos.X, 100-s.Pos.X), math.Min(s.Pos.Y, 100-s.Pos.Y))
		if r > edge+cfg.GrowthStep {
			t.Errorf("petal radius %g exceeds edge distance %g", r, edge)
		}
		if r < 5 {
			t.Errorf("petal radius %g suspiciously short for an isolated flower", r)
		}
	}
}

// Two flowers 10 units apart growing straight at each other: each petal
// must stop before entering the other's clearance zone.
func TestTwoSeedCollisionScenario(t *testing.T) {
	cfg := DefaultConfig(geom.Rect{Width: 100, Height: 100, Margin: 0.05})
	cfg.PetalCount = 4
	cfg.CollisionMargin = 2

	a := &Seed{ID: 0, Pos: geom.Vec2{X: 45, Y: 50}}
	b := &Seed{ID: 1, Pos: geom.Vec2{X: 55, Y: 50}}
	seeds := []*Seed{a, b}

	var ends []PetalEnd
	g := &grower{cfg: cfg, part: NewPartition(seeds), ends: &ends}

	// Slot 0 with a zero base angle points along +x for a, so grow a
	// toward b first, then b toward a (slot 2 points along -x).
	endA := g.growPetal(a, 0)
	endB := g.growPetal(b, 2)

	if endA.Pos.X > 50 {
		t.Errorf("petal of seed 0 crossed the territory midpoint: %+v", endA.Pos)
	}
	if endB.Pos.X < 50 {
		t.Errorf("petal of seed 1 crossed the territory midpoint: %+v", endB.Pos)
	}

	min := endA.Diameter/2 + endB.Diameter/2 + cfg.CollisionMargin
	if d := endA.Pos.Dist(endB.Pos); d < min-1e-9 {
		t.Errorf("facing petals too close: %g < %g", d, min)
	}
}

func TestCenterRadius(t *testing.T) {
	f := &Field{Config: Config{PetalCount: 4}}
	f.PetalEnds = []PetalEnd{
		{OwnerID: 0, Diameter: 8},
		{OwnerID: 0, Diameter: 4},
		{OwnerID: 1, Diameter: 100},
	}
	// Mean diameter 6 over 4 petal slots.
	if got := f.CenterRadius(0); math.Abs(got-1.5) > 1e-9 {
		t.Errorf("CenterRadius = %g, want 1.5", got)
	}
	if got := f.CenterRadius(2); got != 0 {
		t.Errorf("CenterRadius of unknown seed = %g, want 0", got)
	}
}

func TestPartitionEmpty(t *testing.T) {
	if got := NewPartition(nil).NearestSeed(geom.Vec2{}); got != NoSeed {
		t.Errorf("empty partition returned %d, want NoSeed", got)
	}
}

func TestPartitionNearest(t *testing.T) {
	seeds := []*Seed{
		{ID: 0, Pos: geom.Vec2{X: 10, Y: 10}},
		{ID: 1, Pos: geom.Vec2{X: 90, Y: 90}},
	}
	p := NewPartition(seeds)
	if got := p.NearestSeed(geom.Vec2{X: 20, Y: 20}); got != 0 {
		t.Errorf("NearestSeed = %d, want 0", got)
	}
	if got := p.NearestSeed(geom.Vec2{X: 80, Y: 95}); got != 1 {
		t.Errorf("NearestSeed = %d, want 1", got)
	}
	// Equidistant point resolves to the lower ID.
	if got := p.NearestSeed(geom.Vec2{X: 50, Y: 50}); got != 0 {
		t.Errorf("tie broke to %d, want 0", got)
	}
}
