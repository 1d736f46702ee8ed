package geometry

// Matrix is a 2D affine transform:
//
//	⎡ A C E ⎤
//	⎣ B D F ⎦
type Matrix struct {
	A float64
	B float64
	C float64
	D float64
	E float64
	F float64
}

func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

func Translate(x, y float64) Matrix {
	return Matrix{
		A: 1, C: 0, E: x,
		B: 0, D: 1, F: y,
	}
}

// MirrorX reflects X about the vertical line x = width/2.
func MirrorX(width float64) Matrix {
	return Matrix{
		A: -1, C: 0, E: width,
		B: 0, D: 1, F: 0,
	}
}

func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.C*other.B,
		B: m.B*other.A + m.D*other.B,
		C: m.A*other.C + m.C*other.D,
		D: m.B*other.C + m.D*other.D,
		E: m.A*other.E + m.C*other.F + m.E,
		F: m.B*other.E + m.D*other.F + m.F,
	}
}

// Mirrors reports whether the transform reverses orientation.
func (m Matrix) Mirrors() bool {
	return m.A*m.D-m.B*m.C < 0
}

func (m Matrix) transformX(x, y float64) float64 {
	return m.A*x + m.C*y + m.E
}

func (m Matrix) transformY(x, y float64) float64 {
	return m.B*x + m.D*y + m.F
}

func (m Matrix) TransformPoint(p Point) Point {
	return Point{X: m.transformX(p.X, p.Y), Y: m.transformY(p.X, p.Y)}
}
