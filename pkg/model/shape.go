package model

import (
	"math"

	"otdconvert/pkg/cfg"
	"otdconvert/pkg/geometry"
)

// Shape is a reusable contour. Its cuts are in the shape's own frame and are
// translated by each piece's origin when drawn or cut.
type Shape struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Rotation    float64 `json:"rotation"`
	Cuts        []Cut   `json:"cuts"`

	// ToolTypes[t] is set when some cut uses tool code t.
	ToolTypes [cfg.MaxToolTypes]bool `json:"tool_types"`
	Open      bool                   `json:"is_open"`
	Perimeter float64                `json:"perimeter"`
}

func (s *Shape) CalcPerimeter() {
	s.Perimeter = 0
	for _, c := range s.Cuts {
		s.Perimeter += c.CalcLength()
	}
}

// IsClosed reports whether the last cut ends where the first one starts.
func (s Shape) IsClosed() bool {
	if len(s.Cuts) == 0 {
		return false
	}
	return s.Cuts[0].Start().ApproxEq(s.Cuts[len(s.Cuts)-1].End())
}

// Bounds returns the bounding box of the cuts. Arcs contribute their full
// circle.
func (s Shape) Bounds() geometry.Rectangle {
	if len(s.Cuts) == 0 {
		return geometry.Rectangle{}
	}
	r := geometry.EmptyRectangle()
	for _, c := range s.Cuts {
		r = r.Extend(c.Start()).Extend(c.End())
		if c.IsArc() {
			r = r.Extend(geometry.Point{X: c.Xc - c.Radius, Y: c.Yc - c.Radius})
			r = r.Extend(geometry.Point{X: c.Xc + c.Radius, Y: c.Yc + c.Radius})
		}
	}
	return r
}

func (s Shape) Width() float64 {
	return s.Bounds().Width()
}

func (s Shape) Height() float64 {
	return s.Bounds().Height()
}

func (s *Shape) DetectToolTypes() {
	for _, c := range s.Cuts {
		if c.ToolCode > 0 && c.ToolCode < len(s.ToolTypes) {
			s.ToolTypes[c.ToolCode] = true
		}
	}
}

func (s Shape) UsesTool(t int) bool {
	return t >= 0 && t < len(s.ToolTypes) && s.ToolTypes[t]
}

func (s Shape) StartPoint() (geometry.Point, bool) {
	if len(s.Cuts) == 0 {
		return geometry.Point{}, false
	}
	return s.Cuts[0].Start(), true
}

func (s Shape) EndPoint() (geometry.Point, bool) {
	if len(s.Cuts) == 0 {
		return geometry.Point{}, false
	}
	return s.Cuts[len(s.Cuts)-1].End(), true
}

// InitialRotation is the start angle of the first cut, in degrees.
func (s Shape) InitialRotation() float64 {
	if len(s.Cuts) == 0 {
		return 0
	}
	return s.Cuts[0].StartAngleDegrees()
}

// SameSize reports whether w x h matches the reference size exactly or
// rotated by 90 degrees.
func SameSize(w, h, refW, refH float64) bool {
	exact := math.Abs(w-refW) < cfg.Eps && math.Abs(h-refH) < cfg.Eps
	rotated := math.Abs(w-refH) < cfg.Eps && math.Abs(h-refW) < cfg.Eps
	return exact || rotated
}
