// Package field implements the organic Voronoi flower-field generator.
//
// A field is grown in three phases:
//
//  1. Seeding: flower seeds are placed uniformly at random inside the
//     margin-shrunk canvas, each with a random base rotation and a
//     shuffled schedule of petal slots.
//  2. Relaxation: a few rounds of discretized Lloyd relaxation spread the
//     seeds evenly. Ownership is decided by nearest-seed lookup over a
//     fixed sample grid, not by exact Voronoi cells; the growth phase
//     uses the same point-sampling test, so the two stay consistent.
//  3. Growth: every petal slot grows a chain of circles outward from its
//     seed until it reaches the canvas margin, leaves its seed's
//     territory, or comes too close to a finished petal of another
//     flower.
//
// Growth is greedy and order dependent: finished petal ends accumulate
// globally and constrain later petals, so the exact pattern depends on
// the shuffled slot order. This is intentional. All randomness is drawn
// from a single PCG stream seeded from [Config.Seed], in a fixed order
// (placement, base angle, slot shuffle per seed), which makes the whole
// generation reproducible: same config, same field.
package field
