package field

import (
	"github.com/florelab/bloomforge/pkg/errors"
	"github.com/florelab/bloomforge/pkg/geom"
)

// Default generation parameters. Seed and petal counts follow the
// original flower-field sketch; the step and margin constants are the
// earring-profile values (see [TextileProfile] for the coarser 2D set).
const (
	DefaultSeedCount       = 18
	DefaultPetalCount      = 12
	DefaultMarginFraction  = 0.1
	DefaultRelaxIterations = 3
	DefaultRelaxGridN      = 20
	DefaultRayStep         = 0.5
	DefaultGrowthStep      = 1.0
	DefaultCollisionMargin = 1.5
	DefaultSeed            = uint64(42)
)

// Limits guarding against configurations that would make generation
// pathologically slow or the output meaningless.
const (
	MaxSeedCount  = 500
	MaxPetalCount = 64
)

// Config holds every parameter of one field generation. It is immutable
// once passed to [Generate]; the result is returned, never written into
// shared state.
type Config struct {
	Canvas geom.Rect `json:"canvas" bson:"canvas"`

	SeedCount  int `json:"seed_count" bson:"seed_count"`
	PetalCount int `json:"petal_count" bson:"petal_count"`

	// RelaxIterations is the number of Lloyd relaxation rounds.
	// RelaxGridN is the per-axis resolution of the relaxation sample grid.
	RelaxIterations int `json:"relax_iterations" bson:"relax_iterations"`
	RelaxGridN      int `json:"relax_grid_n" bson:"relax_grid_n"`

	// RayStep is the march step used to find the territory boundary,
	// GrowthStep the coarser step between recorded petal circles.
	RayStep    float64 `json:"ray_step" bson:"ray_step"`
	GrowthStep float64 `json:"growth_step" bson:"growth_step"`

	// CollisionMargin is the extra clearance kept between petals of
	// different flowers, in canvas units.
	CollisionMargin float64 `json:"collision_margin" bson:"collision_margin"`

	// Seed initializes the random stream. Two generations with equal
	// configs produce identical fields.
	Seed uint64 `json:"seed" bson:"seed"`
}

// DefaultConfig returns the earring-profile configuration on the given
// canvas bounds.
func DefaultConfig(canvas geom.Rect) Config {
	return Config{
		Canvas:          canvas,
		SeedCount:       DefaultSeedCount,
		PetalCount:      DefaultPetalCount,
		RelaxIterations: DefaultRelaxIterations,
		RelaxGridN:      DefaultRelaxGridN,
		RayStep:         DefaultRayStep,
		GrowthStep:      DefaultGrowthStep,
		CollisionMargin: DefaultCollisionMargin,
		Seed:            DefaultSeed,
	}
}

// TextileProfile returns the coarser constants used by the 2D textile
// variant: wider clearance between flowers and a faster boundary march.
// The two originals of this algorithm shipped different constants; both
// are exposed here rather than blessing either as "the" value.
func TextileProfile(canvas geom.Rect) Config {
	c := DefaultConfig(canvas)
	c.CollisionMargin = 6
	c.RayStep = 2
	return c
}

// ValidateAndSetDefaults checks the configuration and fills zero values
// with defaults. Counts and canvas bounds must be positive: generation
// never starts from a degenerate config.
func (c *Config) ValidateAndSetDefaults() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"canvas bounds must be positive, got %gx%g", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Canvas.Margin < 0 || c.Canvas.Margin >= 0.5 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"margin fraction must be in [0, 0.5), got %g", c.Canvas.Margin)
	}
	if c.SeedCount == 0 {
		c.SeedCount = DefaultSeedCount
	}
	if c.SeedCount < 0 || c.SeedCount > MaxSeedCount {
		return errors.New(errors.ErrCodeInvalidConfig,
			"seed count must be in [1, %d], got %d", MaxSeedCount, c.SeedCount)
	}
	if c.PetalCount == 0 {
		c.PetalCount = DefaultPetalCount
	}
	if c.PetalCount < 0 || c.PetalCount > MaxPetalCount {
		return errors.New(errors.ErrCodeInvalidConfig,
			"petal count must be in [1, %d], got %d", MaxPetalCount, c.PetalCount)
	}
	if c.RelaxIterations < 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"relax iterations must be non-negative, got %d", c.RelaxIterations)
	}
	if c.RelaxGridN == 0 {
		c.RelaxGridN = DefaultRelaxGridN
	}
	if c.RelaxGridN < 2 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"relax grid resolution must be at least 2, got %d", c.RelaxGridN)
	}
	if c.RayStep == 0 {
		c.RayStep = DefaultRayStep
	}
	if c.GrowthStep == 0 {
		c.GrowthStep = DefaultGrowthStep
	}
	if c.RayStep < 0 || c.GrowthStep < 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"step sizes must be positive, got ray=%g growth=%g", c.RayStep, c.GrowthStep)
	}
	if c.CollisionMargin < 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"collision margin must be non-negative, got %g", c.CollisionMargin)
	}
	return nil
}
