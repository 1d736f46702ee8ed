package transform

import (
	"math"

	"otdconvert/pkg/cfg"
	"otdconvert/pkg/float"
	"otdconvert/pkg/model"
)

// Shapes runs the shape pipeline on s: tool detection, initial rotation and
// removal of shape segments already cut by a linear cut.
func Shapes(s *model.Schema) {
	DetectShapeTools(s)
	ShapeRotations(s)
	RemoveOverlappingSegments(s)
}

func DetectShapeTools(s *model.Schema) {
	for i := range s.Shapes {
		s.Shapes[i].DetectToolTypes()
	}
}

// ShapeRotations sets each non-empty shape's rotation to the start angle of
// its first cut.
func ShapeRotations(s *model.Schema) {
	for i := range s.Shapes {
		sh := &s.Shapes[i]
		if len(sh.Cuts) == 0 {
			continue
		}
		sh.Rotation = sh.InitialRotation()
	}
}

// RemoveOverlappingSegments deactivates shape line segments that lie on an
// active linear cut. Shape cuts are in the piece frame, so a segment is
// compared once per piece placing the shape, and is deactivated only when
// every placement overlaps. Shapes no piece uses are left untouched.
func RemoveOverlappingSegments(s *model.Schema) {
	placements := make(map[int][]model.Piece)
	for _, p := range s.Pieces {
		if p.ShapeIndex >= 0 {
			placements[p.ShapeIndex] = append(placements[p.ShapeIndex], p)
		}
	}

	for i := range s.Shapes {
		pieces := placements[i]
		if len(pieces) == 0 {
			continue
		}
		for j := range s.Shapes[i].Cuts {
			c := &s.Shapes[i].Cuts[j]
			if !c.Active || !c.IsLine() {
				continue
			}
			covered := true
			for _, p := range pieces {
				if !onLinearCut(s.LinearCuts, placed(*c, p)) {
					covered = false
					break
				}
			}
			if covered {
				c.Active = false
			}
		}
	}
}

// placed returns c moved into sheet coordinates by p's origin.
func placed(c model.Cut, p model.Piece) model.Cut {
	c.Xi += p.X
	c.Xf += p.X
	c.Yi += p.Y
	c.Yf += p.Y
	return c
}

func onLinearCut(linear []model.Cut, c model.Cut) bool {
	for _, l := range linear {
		if l.Active && segmentsOverlap(c, l) {
			return true
		}
	}
	return false
}

// segmentsOverlap reports whether two vertical or two horizontal lines share
// a coordinate and have overlapping extents. Oblique lines never overlap.
func segmentsOverlap(a, b model.Cut) bool {
	if !a.IsLine() || !b.IsLine() || a.LineType != b.LineType {
		return false
	}
	switch a.LineType {
	case model.Vertical:
		return float.ApproxEq(a.Xi, b.Xi) && rangesOverlap(a.Yi, a.Yf, b.Yi, b.Yf)
	case model.Horizontal:
		return float.ApproxEq(a.Yi, b.Yi) && rangesOverlap(a.Xi, a.Xf, b.Xi, b.Xf)
	}
	return false
}

func rangesOverlap(a1, a2, b1, b2 float64) bool {
	aMin, aMax := math.Min(a1, a2), math.Max(a1, a2)
	bMin, bMax := math.Min(b1, b2), math.Max(b1, b2)
	return aMin <= bMax+cfg.Eps && bMin <= aMax+cfg.Eps
}

// ShapeSizeMismatches returns, in order of first mismatch, the ids of shapes
// placed on pieces whose size differs from the first piece using that shape,
// allowing a 90 degree rotation.
func ShapeSizeMismatches(s *model.Schema) []int {
	type size struct{ w, h float64 }
	first := make(map[int]size)
	var mismatched []int
	seen := make(map[int]bool)

	for _, p := range s.Pieces {
		if p.ShapeID == nil {
			continue
		}
		id := *p.ShapeID
		ref, ok := first[id]
		if !ok {
			first[id] = size{p.Width, p.Height}
			continue
		}
		if !model.SameSize(p.Width, p.Height, ref.w, ref.h) && !seen[id] {
			seen[id] = true
			mismatched = append(mismatched, id)
		}
	}
	return mismatched
}
