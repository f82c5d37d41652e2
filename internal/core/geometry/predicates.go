package geometry

import "math"

// Codirectional reports whether two motion vectors point the same way,
// within maxAngleRad of angular separation. Tested as dot(â, b̂) ≥ cos(max),
// so the comparison stays in normalized-dot space and never calls acos.
// A zero vector has no direction and always fails.
func Codirectional(a, b Vec2, maxAngleRad float64) bool {
	na := a.Normalized()
	nb := b.Normalized()
	if na.IsZero() || nb.IsZero() {
		return false
	}
	return na.Dot(nb) >= math.Cos(maxAngleRad)
}

// Rect is an axis-aligned box in screen space, used for hit testing.
type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Contains checks if a point is inside the rect.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// IsEmpty checks if the rect has zero or negative area.
func (r Rect) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// Center returns the center point of the rect.
func (r Rect) Center() Vec2 { return Vec2{r.X + r.Width/2, r.Y + r.Height/2} }
