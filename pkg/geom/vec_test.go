package geom

import (
	"math"
	"testing"
)

func TestVec2Dist(t *testing.T) {
	a := Vec2{0, 0}
	b := Vec2{3, 4}
	if d := a.Dist(b); d != 5 {
		t.Errorf("Dist = %v, want 5", d)
	}
	if d := a.DistSq(b); d != 25 {
		t.Errorf("DistSq = %v, want 25", d)
	}
}

func TestVec2NormZero(t *testing.T) {
	n := Vec2{}.Norm()
	if n.X != 0 || n.Y != 0 {
		t.Errorf("zero vector should normalize to zero, got %+v", n)
	}
}

func TestPolar(t *testing.T) {
	p := Polar(Vec2{10, 10}, 5, 0)
	if math.Abs(p.X-15) > 1e-9 || math.Abs(p.Y-10) > 1e-9 {
		t.Errorf("Polar(0) = %+v, want (15,10)", p)
	}
	p = Polar(Vec2{10, 10}, 5, math.Pi/2)
	if math.Abs(p.X-10) > 1e-9 || math.Abs(p.Y-15) > 1e-9 {
		t.Errorf("Polar(π/2) = %+v, want (10,15)", p)
	}
}

func TestVec3NormDegenerate(t *testing.T) {
	n := Vec3{1e-15, 0, 0}.Norm()
	if n != (Vec3{}) {
		t.Errorf("near-zero vector should normalize to zero, got %+v", n)
	}
	n = Vec3{0, 0, 2}.Norm()
	if n != (Vec3{0, 0, 1}) {
		t.Errorf("Norm = %+v, want (0,0,1)", n)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{Width: 100, Height: 50, Margin: 0.1}
	if !r.Contains(Vec2{50, 25}) {
		t.Error("center should be inside")
	}
	if r.Contains(Vec2{101, 25}) {
		t.Error("point past width should be outside")
	}
	if r.ContainsInner(Vec2{2, 25}, 5) {
		t.Error("point inside outer but within inset should be rejected")
	}
}

func TestRectClampInner(t *testing.T) {
	r := Rect{Width: 100, Height: 100, Margin: 0.1}
	p := r.ClampInner(Vec2{-5, 200})
	if p.X != 10 || p.Y != 90 {
		t.Errorf("ClampInner = %+v, want (10,90)", p)
	}
}

func TestSanitize(t *testing.T) {
	if got := Sanitize(math.NaN(), 7); got != 7 {
		t.Errorf("Sanitize(NaN) = %v, want 7", got)
	}
	if got := Sanitize(math.Inf(1), 7); got != 7 {
		t.Errorf("Sanitize(+Inf) = %v, want 7", got)
	}
	if got := Sanitize(3, 7); got != 3 {
		t.Errorf("Sanitize(3) = %v, want 3", got)
	}

	v := SanitizeVec3(Vec3{math.NaN(), 1, math.Inf(-1)}, Vec3{9, 9, 9})
	if v != (Vec3{9, 1, 9}) {
		t.Errorf("SanitizeVec3 = %+v, want (9,1,9)", v)
	}
}
