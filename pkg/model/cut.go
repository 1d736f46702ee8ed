package model

import (
	"math"

	"otdconvert/pkg/float"
	"otdconvert/pkg/geometry"
)

type CutType int

const (
	Line   CutType = 1
	ArcCW  CutType = 2
	ArcCCW CutType = 3
)

func (t CutType) String() string {
	switch t {
	case ArcCW:
		return "ArcCW"
	case ArcCCW:
		return "ArcCCW"
	}
	return "Line"
}

func (t CutType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// LineType is the orientation of a segment's chord.
type LineType int

const (
	Vertical   LineType = 1
	Horizontal LineType = 2
	Oblique    LineType = 3
)

func (t LineType) String() string {
	switch t {
	case Horizontal:
		return "Horizontal"
	case Oblique:
		return "Oblique"
	}
	return "Vertical"
}

func (t LineType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Cut is one line or arc segment, either a linear saw cut on the sheet or a
// segment of a shape contour in the shape's local frame.
//
// Cuts are never removed from their owning slice; Active=false marks a cut as
// deleted so that indices stay valid across transform passes.
type Cut struct {
	Type     CutType  `json:"type"`
	LineType LineType `json:"line_type"`

	Xi float64 `json:"xi"`
	Yi float64 `json:"yi"`
	Xf float64 `json:"xf"`
	Yf float64 `json:"yf"`

	// Center and radius, for arcs only.
	Xc     float64 `json:"xc"`
	Yc     float64 `json:"yc"`
	Radius float64 `json:"radius"`

	Level    int     `json:"level"`
	Rotation float64 `json:"rotation"`
	Quota    float64 `json:"quota"`
	Length   float64 `json:"length"`
	Tcut     int     `json:"tcut"`
	Rest     float64 `json:"rest"`
	ToolCode int     `json:"tool_code"`

	AblationWidth float64 `json:"ablation_width"`

	// Back-references from the Cuttings section.
	PieceIndices []int `json:"piece_indices,omitempty"`
	CutIndices   []int `json:"cut_indices,omitempty"`

	Scrap       bool `json:"scrap"`
	ParentShape int  `json:"parent_shape"`
	Active      bool `json:"active"`
}

// NewLine returns an active straight cut with its orientation classified.
func NewLine(xi, yi, xf, yf float64) Cut {
	c := Cut{
		Type:        Line,
		Xi:          xi,
		Yi:          yi,
		Xf:          xf,
		Yf:          yf,
		ParentShape: -1,
		Active:      true,
	}
	c.ClassifyLine()
	return c
}

func NewArcCW(xi, yi, xf, yf, radius float64) Cut {
	return newArc(ArcCW, xi, yi, xf, yf, radius)
}

func NewArcCCW(xi, yi, xf, yf, radius float64) Cut {
	return newArc(ArcCCW, xi, yi, xf, yf, radius)
}

func newArc(t CutType, xi, yi, xf, yf, radius float64) Cut {
	c := Cut{
		Type:        t,
		Xi:          xi,
		Yi:          yi,
		Xf:          xf,
		Yf:          yf,
		Radius:      radius,
		ParentShape: -1,
		Active:      true,
	}
	c.computeCenter()
	return c
}

// ClassifyLine sets LineType from the endpoints.
func (c *Cut) ClassifyLine() {
	switch {
	case float.ApproxEq(c.Xi, c.Xf):
		c.LineType = Vertical
	case float.ApproxEq(c.Yi, c.Yf):
		c.LineType = Horizontal
	default:
		c.LineType = Oblique
	}
}

func (c *Cut) computeCenter() {
	if c.Radius <= 0 {
		return
	}
	center := geometry.ArcCenter(c.Start(), c.End(), c.Radius, c.Type == ArcCW)
	c.Xc, c.Yc = center.X, center.Y
}

func (c Cut) Start() geometry.Point {
	return geometry.Point{X: c.Xi, Y: c.Yi}
}

func (c Cut) End() geometry.Point {
	return geometry.Point{X: c.Xf, Y: c.Yf}
}

func (c Cut) Center() geometry.Point {
	return geometry.Point{X: c.Xc, Y: c.Yc}
}

// Reverse swaps the endpoints of a line.
func (c *Cut) Reverse() {
	c.Xi, c.Xf = c.Xf, c.Xi
	c.Yi, c.Yf = c.Yf, c.Yi
}

// CalcLength returns the chord length of a line or the path length of an arc.
func (c Cut) CalcLength() float64 {
	if c.Type == Line {
		return c.Start().Distance(c.End())
	}
	return c.Radius * math.Abs(c.ArcAngle())
}

// ArcAngle returns the swept angle in radians: negative for clockwise arcs,
// positive for counter-clockwise arcs, 0 for lines.
func (c Cut) ArcAngle() float64 {
	if c.Type == Line {
		return 0
	}
	center := c.Center()
	angle := c.End().Minus(center).Angle() - c.Start().Minus(center).Angle()
	switch c.Type {
	case ArcCW:
		if angle > 0 {
			angle -= 2 * math.Pi
		}
	case ArcCCW:
		if angle < 0 {
			angle += 2 * math.Pi
		}
	}
	return angle
}

// StartAngleDegrees returns the direction of a line, or the polar angle of an
// arc's start point about its center.
func (c Cut) StartAngleDegrees() float64 {
	if c.Type == Line {
		return geometry.Degrees(c.End().Minus(c.Start()).Angle())
	}
	return geometry.Degrees(c.Start().Minus(c.Center()).Angle())
}

// InitialAngleDegrees returns the tangent direction at the start, in [0,360).
func (c Cut) InitialAngleDegrees() float64 {
	return c.tangentDegrees(c.Start())
}

// FinalAngleDegrees returns the tangent direction at the end, in [0,360).
func (c Cut) FinalAngleDegrees() float64 {
	return c.tangentDegrees(c.End())
}

func (c Cut) tangentDegrees(at geometry.Point) float64 {
	var angle float64
	switch c.Type {
	case ArcCW:
		angle = c.Center().Minus(at).Angle() + math.Pi/2
	case ArcCCW:
		angle = c.Center().Minus(at).Angle() - math.Pi/2
	default:
		angle = c.End().Minus(c.Start()).Angle()
	}
	deg := geometry.Degrees(angle)
	if deg < 0 {
		deg += 360
	}
	return deg
}

func (c Cut) IsVertical() bool {
	return c.LineType == Vertical
}

func (c Cut) IsHorizontal() bool {
	return c.LineType == Horizontal
}

func (c Cut) IsLine() bool {
	return c.Type == Line
}

func (c Cut) IsArc() bool {
	return c.Type == ArcCW || c.Type == ArcCCW
}
