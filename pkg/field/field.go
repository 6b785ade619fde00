package field

import (
	"math"
	"math/rand/v2"
)

// Generate grows a complete flower field from the given configuration.
// It is a pure function of the config: the same config (including Seed)
// always produces the same field. The config is validated first; counts
// or bounds that would make generation degenerate are rejected before
// any work happens.
func Generate(cfg Config) (*Field, error) {
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0xdeadbeef))

	seeds := placeSeeds(cfg, rng)
	relax(seeds, cfg.Canvas, cfg.RelaxIterations, cfg.RelaxGridN)

	f := &Field{
		Config:    cfg,
		Seeds:     seeds,
		PetalEnds: make([]PetalEnd, 0, cfg.SeedCount*cfg.PetalCount),
	}

	g := &grower{cfg: cfg, part: NewPartition(seeds), ends: &f.PetalEnds}
	for _, s := range seeds {
		for s.SlotsLeft() > 0 {
			g.growPetal(s, s.popSlot())
		}
	}

	return f, nil
}

// placeSeeds creates the seed set: uniform random positions inside the
// margin-shrunk canvas, a random base rotation, and a shuffled petal
// schedule per seed. Seed IDs are assigned in creation order and always
// equal the slice index, which relaxation relies on.
//
// The random stream is consumed in a fixed order (position, angle,
// shuffle, per seed) so that generation stays reproducible.
func placeSeeds(cfg Config, rng *rand.Rand) []*Seed {
	mx, my := cfg.Canvas.MarginX(), cfg.Canvas.MarginY()

	seeds := make([]*Seed, cfg.SeedCount)
	for i := range seeds {
		s := &Seed{ID: i}
		s.Pos.X = mx + rng.Float64()*(cfg.Canvas.Width-2*mx)
		s.Pos.Y = my + rng.Float64()*(cfg.Canvas.Height-2*my)
		s.BaseAngle = rng.Float64() * 2 * math.Pi
		s.slots = rng.Perm(cfg.PetalCount)
		seeds[i] = s
	}
	return seeds
}
