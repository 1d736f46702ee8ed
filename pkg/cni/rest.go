package cni

import (
	"math"

	"otdconvert/pkg/cfg"
	"otdconvert/pkg/model"
)

// RestDimensions returns the width and height of the largest reusable
// remainder of the sheet once all pieces are cut.
//
// The remainder lies either right of the pieces, when a vertical cut at their
// right edge runs the full usable height, or above them. On the right, the
// strip between the last full-height cut inside the pieces and their right
// edge is also considered, above its tallest piece; the larger area wins.
func RestDimensions(s *model.Schema) (float64, float64) {
	if len(s.Pieces) == 0 {
		return s.Width - s.TrimLeft, s.Height - s.TrimBottom
	}

	adv := s.LinearAdvance
	trimLeft := s.TrimLeft
	minY := s.Height
	maxX, maxY := 0.0, 0.0
	for _, p := range s.Pieces {
		trimLeft = math.Min(trimLeft, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.XMax())
		maxY = math.Max(maxY, p.YMax())
	}

	onRight := false
	for _, c := range s.LinearCuts {
		length := c.CalcLength()
		if math.Abs(c.Xi-maxX) < cfg.EpsCoarse && length+2*adv+minY >= s.Height-cfg.EpsCoarse {
			onRight = true
		}
		if math.Abs(c.Yi-maxY) < cfg.EpsCoarse && length+2*adv+trimLeft >= s.Width-cfg.EpsCoarse {
			onRight = false
		}
	}

	if !onRight {
		return s.Width - trimLeft, s.Height - maxY
	}

	dimX := s.Width - maxX
	if dimX <= 0 {
		return 0, 0
	}
	dimY := s.Height - minY

	lastCut := 0.0
	for _, c := range s.LinearCuts {
		if math.Abs(c.Xi-c.Xf) < cfg.EpsCoarse &&
			c.CalcLength()+minY+2*adv > s.Height &&
			c.Xi < maxX && c.Xi > lastCut {
			lastCut = c.Xi
		}
	}
	top := 0.0
	for _, p := range s.Pieces {
		if p.X >= lastCut && p.XMax() <= maxX {
			top = math.Max(top, p.YMax())
		}
	}

	stripX, stripY := maxX-lastCut, s.Height-top
	if dimX*dimY >= stripX*stripY {
		return dimX, dimY
	}
	return stripX, stripY
}
