package geometry

import (
	"math"

	"otdconvert/pkg/cfg"
)

type Point struct {
	X float64
	Y float64
}

type Vector2 = Point

type Rectangle struct {
	Min Point
	Max Point
}

func (a Vector2) Minus(b Vector2) Vector2 {
	return Vector2{
		X: a.X - b.X,
		Y: a.Y - b.Y,
	}
}

func (a Vector2) Add(b Vector2) Vector2 {
	return Vector2{
		X: a.X + b.X,
		Y: a.Y + b.Y,
	}
}

func (v Vector2) Magnitude() float64 {
	return math.Hypot(v.X, v.Y)
}

// Angle returns the polar angle of v in radians.
func (v Vector2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

func (a Vector2) CrossProductZ(b Vector2) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Distance returns the distance between two points.
func (p Point) Distance(other Point) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// Scale returns the point scaled by the given factor f.
func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// Polar returns the point at distance r from p in direction angle (radians).
func (p Point) Polar(angle, r float64) Point {
	return Point{X: p.X + r*math.Cos(angle), Y: p.Y + r*math.Sin(angle)}
}

// ApproxEq compares both coordinates within cfg.Eps.
func (p Point) ApproxEq(other Point) bool {
	return math.Abs(p.X-other.X) < cfg.Eps && math.Abs(p.Y-other.Y) < cfg.Eps
}

// EmptyRectangle returns a rectangle that any Extend call replaces.
func EmptyRectangle() Rectangle {
	return Rectangle{
		Min: Point{X: math.Inf(1), Y: math.Inf(1)},
		Max: Point{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

func (r Rectangle) Extend(p Point) Rectangle {
	return Rectangle{
		Min: Point{X: math.Min(r.Min.X, p.X), Y: math.Min(r.Min.Y, p.Y)},
		Max: Point{X: math.Max(r.Max.X, p.X), Y: math.Max(r.Max.Y, p.Y)},
	}
}

func (r Rectangle) IsEmpty() bool {
	return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y
}

func (r Rectangle) Width() float64 {
	return r.Max.X - r.Min.X
}

func (r Rectangle) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Overlaps reports whether the interiors of r and other intersect. Rectangles
// that only share an edge do not overlap.
func (r Rectangle) Overlaps(other Rectangle) bool {
	return r.Min.X < other.Max.X && other.Min.X < r.Max.X &&
		r.Min.Y < other.Max.Y && other.Min.Y < r.Max.Y
}

func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// NormalizeDegrees maps a into [0, 360). Both 0 and a full turn map to 0.
func NormalizeDegrees(a float64) float64 {
	n := math.Mod(a, 360)
	if n < 0 {
		n += 360
	}
	if n >= 360 || n == 0 {
		return 0
	}
	return n
}

// AngleMinDiff returns the smallest difference between two directions in
// degrees, in [0, 180].
func AngleMinDiff(a, b float64) float64 {
	diff := math.Abs(a - b)
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}

// ArcCenter returns the center of the arc of radius r from start to end,
// travelling clockwise or counter-clockwise. The shorter arc is chosen. A
// non-positive radius returns the zero point.
func ArcCenter(start, end Point, r float64, clockwise bool) Point {
	if r <= 0 {
		return Point{}
	}
	chord := end.Minus(start)
	angle := chord.Angle()
	half := chord.Magnitude() / 2
	if math.Abs(half-r) < 2*cfg.Eps {
		half = r
	}
	mid := start.Polar(angle, half)

	h := 0.0
	if d := r*r - half*half; d > 0 {
		h = math.Sqrt(d)
	}
	if clockwise {
		angle -= math.Pi / 2
	} else {
		angle += math.Pi / 2
	}
	return mid.Polar(angle, h)
}
