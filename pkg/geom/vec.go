// Package geom provides the small vector types and numeric guards shared by
// the field generator and the solidifier.
//
// Every coordinate that leaves this module's public API is finite: helpers
// like [SanitizeVec3] replace NaN or infinite components with a fallback so
// downstream mesh and vector writers never see corrupted geometry.
package geom

import "math"

// Vec2 is a point or direction in canvas coordinates.
type Vec2 struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Add returns v + w.
func (v Vec2) Add(w Vec2) Vec2 { return Vec2{v.X + w.X, v.Y + w.Y} }

// Sub returns v - w.
func (v Vec2) Sub(w Vec2) Vec2 { return Vec2{v.X - w.X, v.Y - w.Y} }

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dist returns the Euclidean distance between v and w.
func (v Vec2) Dist(w Vec2) float64 {
	dx, dy := v.X-w.X, v.Y-w.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// DistSq returns the squared Euclidean distance between v and w.
// Used for nearest-seed comparisons where the square root is unnecessary.
func (v Vec2) DistSq(w Vec2) float64 {
	dx, dy := v.X-w.X, v.Y-w.Y
	return dx*dx + dy*dy
}

// Norm returns the unit vector in the direction of v. The zero vector
// normalizes to zero rather than NaN.
func (v Vec2) Norm() Vec2 {
	d := math.Sqrt(v.X*v.X + v.Y*v.Y)
	if d == 0 {
		return Vec2{}
	}
	return Vec2{v.X / d, v.Y / d}
}

// Perp returns v rotated 90° counter-clockwise.
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

// Polar returns the point at distance r from origin in direction theta.
func Polar(origin Vec2, r, theta float64) Vec2 {
	return Vec2{origin.X + r*math.Cos(theta), origin.Y + r*math.Sin(theta)}
}

// Vec3 is a point in model space (millimeters).
type Vec3 struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
	Z float64 `json:"z" bson:"z"`
}

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }

// Cross returns the cross product v × w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

// Norm returns the unit vector in the direction of v. Near-zero vectors
// normalize to zero rather than NaN, which degenerate triangles produce.
func (v Vec3) Norm() Vec3 {
	d := math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
	if d < 1e-12 {
		return Vec3{}
	}
	return Vec3{v.X / d, v.Y / d, v.Z / d}
}

// Rect is an axis-aligned canvas rectangle with a uniform margin fraction.
// Margin is expressed as a fraction of each dimension (0.1 = 10%).
type Rect struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
	Margin float64 `json:"margin" bson:"margin"`
}

// MarginX returns the margin in canvas units along the x axis.
func (r Rect) MarginX() float64 { return r.Width * r.Margin }

// MarginY returns the margin in canvas units along the y axis.
func (r Rect) MarginY() float64 { return r.Height * r.Margin }

// Contains reports whether p lies inside the full rectangle.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= 0 && p.X <= r.Width && p.Y >= 0 && p.Y <= r.Height
}

// ContainsInner reports whether p lies inside the rectangle shrunk by
// inset on every side.
func (r Rect) ContainsInner(p Vec2, inset float64) bool {
	return p.X >= inset && p.X <= r.Width-inset &&
		p.Y >= inset && p.Y <= r.Height-inset
}

// ClampInner clamps p to the rectangle shrunk by the margin on every side.
func (r Rect) ClampInner(p Vec2) Vec2 {
	return Vec2{
		X: Clamp(p.X, r.MarginX(), r.Width-r.MarginX()),
		Y: Clamp(p.Y, r.MarginY(), r.Height-r.MarginY()),
	}
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Sanitize returns v if finite, otherwise fallback.
func Sanitize(v, fallback float64) float64 {
	if IsFinite(v) {
		return v
	}
	return fallback
}

// SanitizeVec2 replaces non-finite components of v with the matching
// component of fallback.
func SanitizeVec2(v, fallback Vec2) Vec2 {
	if !IsFinite(v.X) {
		v.X = fallback.X
	}
	if !IsFinite(v.Y) {
		v.Y = fallback.Y
	}
	return v
}

// SanitizeVec3 replaces non-finite components of v with the matching
// component of fallback.
func SanitizeVec3(v, fallback Vec3) Vec3 {
	if !IsFinite(v.X) {
		v.X = fallback.X
	}
	if !IsFinite(v.Y) {
		v.Y = fallback.Y
	}
	if !IsFinite(v.Z) {
		v.Z = fallback.Z
	}
	return v
}
