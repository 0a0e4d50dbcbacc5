// Package core provides fundamental types and utilities shared by the
// simulation and the terminal platform. It has no UI dependencies so that
// game logic stays pure and testable.
package core

import "math"

// Rect is an integer axis-aligned box, used for screen layout.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Vec2 is a point or direction in world pixels.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2             { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2             { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(k float64) Vec2        { return Vec2{v.X * k, v.Y * k} }
func (v Vec2) Len() float64                { return math.Hypot(v.X, v.Y) }
func (v Vec2) Dist(o Vec2) float64         { return v.Sub(o).Len() }
func (v Vec2) Angle() float64              { return math.Atan2(v.Y, v.X) }
func (v Vec2) IsZero() bool                { return v.X == 0 && v.Y == 0 }
func (v Vec2) Lerp(o Vec2, t float64) Vec2 { return v.Add(o.Sub(v).Scale(t)) }

// Norm returns the unit vector in the direction of v, or zero for zero input.
func (v Vec2) Norm() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// FromAngle returns the unit vector pointing at angle a (radians).
func FromAngle(a float64) Vec2 {
	return Vec2{math.Cos(a), math.Sin(a)}
}

// Bounds is a float rectangle in world space.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Inset shrinks b by pad on every side.
func (b Bounds) Inset(pad float64) Bounds {
	return Bounds{b.MinX + pad, b.MinY + pad, b.MaxX - pad, b.MaxY - pad}
}

// ClampPoint moves p inside b. The second result reports whether p was moved.
func (b Bounds) ClampPoint(p Vec2) (Vec2, bool) {
	q := Vec2{ClampF(p.X, b.MinX, b.MaxX), ClampF(p.Y, b.MinY, b.MaxY)}
	return q, q != p
}

// PointInPolygon reports whether p lies inside the polygon using the
// even-odd ray casting rule. Polygons with fewer than 3 vertices contain nothing.
func PointInPolygon(p Vec2, poly []Vec2) bool {
	if len(poly) < 3 {
		return false
	}
	inside := false
	j := len(poly) - 1
	for i := range poly {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
