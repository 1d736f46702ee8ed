// Package transform prepares parsed schemas for program generation: linear
// cuts are merged, trimmed, ordered and shortened, and shapes are annotated
// with the tools they use.
package transform

import (
	"math"
	"sort"

	"otdconvert/pkg/cfg"
	"otdconvert/pkg/float"
	"otdconvert/pkg/geometry"
	"otdconvert/pkg/model"
	"otdconvert/pkg/route"
)

// Linear runs the linear cut pipeline on s: merge, edge trim, tool path order
// and linear advance. Schemas whose cuts came pre-optimized from the file are
// left alone.
func Linear(s *model.Schema) {
	if s.LinearOptimized {
		return
	}
	MergeCuts(s)
	RemoveEdgeCuts(s)
	OrderCuts(s)
	if s.LinearAdvance > 0 {
		ApplyAdvance(s, s.LinearAdvance)
	}
	s.LinearOptimized = true
}

// MergeCuts coalesces active vertical and horizontal cuts lying on the same
// line whose extents touch or overlap. The surviving cut spans both and runs
// in the increasing direction; the absorbed cut is deactivated.
func MergeCuts(s *model.Schema) {
	if len(s.LinearCuts) < 2 {
		return
	}
	mergeAxis(s.LinearCuts, true)
	mergeAxis(s.LinearCuts, false)
}

// axis views a cut as a position across the axis and an extent along it.
func axis(c model.Cut, vertical bool) (pos, lo, hi float64) {
	if vertical {
		return c.Xi, math.Min(c.Yi, c.Yf), math.Max(c.Yi, c.Yf)
	}
	return c.Yi, math.Min(c.Xi, c.Xf), math.Max(c.Xi, c.Xf)
}

func mergeAxis(cuts []model.Cut, vertical bool) {
	var idx []int
	for i, c := range cuts {
		if !c.Active {
			continue
		}
		if (vertical && c.IsVertical()) || (!vertical && c.IsHorizontal()) {
			idx = append(idx, i)
		}
	}
	if len(idx) < 2 {
		return
	}

	sort.SliceStable(idx, func(a, b int) bool {
		pa, la, _ := axis(cuts[idx[a]], vertical)
		pb, lb, _ := axis(cuts[idx[b]], vertical)
		if pa != pb {
			return pa < pb
		}
		return la < lb
	})

	for i := 0; i < len(idx)-1; i++ {
		a := &cuts[idx[i]]
		if !a.Active {
			continue
		}
		for _, j := range idx[i+1:] {
			b := &cuts[j]
			if !b.Active {
				continue
			}
			pa, lo1, hi1 := axis(*a, vertical)
			pb, lo2, hi2 := axis(*b, vertical)
			if !float.ApproxEq(pa, pb) {
				break
			}
			if lo2 > hi1+cfg.Eps {
				continue
			}
			end := math.Max(hi1, hi2)
			if vertical {
				a.Yi, a.Yf = lo1, end
			} else {
				a.Xi, a.Xf = lo1, end
			}
			b.Active = false
		}
	}
}

// RemoveEdgeCuts deactivates vertical and horizontal cuts closer than the
// minimum border (2 mm in file units) to the sheet edge they run along.
func RemoveEdgeCuts(s *model.Schema) {
	border := cfg.MinBorderMM / s.Unit.ToMM()
	for i := range s.LinearCuts {
		c := &s.LinearCuts[i]
		if !c.Active {
			continue
		}
		switch c.LineType {
		case model.Vertical:
			if c.Xi < border || math.Abs(s.Width-c.Xi) < border {
				c.Active = false
			}
		case model.Horizontal:
			if c.Yi < border || math.Abs(s.Height-c.Yi) < border {
				c.Active = false
			}
		}
	}
}

// OrderCuts reorders the active cuts along a nearest-neighbour tool path from
// the origin, reversing a cut when entering at its end is closer. Inactive
// cuts follow in their previous order.
func OrderCuts(s *model.Schema) {
	if len(s.LinearCuts) < 2 {
		return
	}

	var active, inactive []model.Cut
	for _, c := range s.LinearCuts {
		if c.Active {
			active = append(active, c)
		} else {
			inactive = append(inactive, c)
		}
	}
	if len(active) == 0 {
		return
	}

	stops := make([]route.Stop, len(active))
	for i, c := range active {
		stops[i] = route.Stop{Start: c.Start(), End: c.End(), Reversible: true}
	}

	ordered := make([]model.Cut, 0, len(s.LinearCuts))
	for _, v := range route.Tour(geometry.Point{}, stops) {
		c := active[v.Index]
		if v.Reversed {
			c.Reverse()
		}
		ordered = append(ordered, c)
	}
	s.LinearCuts = append(ordered, inactive...)
}

// ApplyAdvance shortens every active line cut by advance at both ends. Cuts
// too short to lose 2*advance are deactivated.
func ApplyAdvance(s *model.Schema, advance float64) {
	if advance <= 0 {
		return
	}
	for i := range s.LinearCuts {
		c := &s.LinearCuts[i]
		if !c.Active || !c.IsLine() {
			continue
		}
		if c.CalcLength() < 2*advance+cfg.Eps {
			c.Active = false
			continue
		}

		switch c.LineType {
		case model.Vertical:
			if c.Yf > c.Yi {
				c.Yi += advance
				c.Yf -= advance
			} else {
				c.Yi -= advance
				c.Yf += advance
			}
		case model.Horizontal:
			if c.Xf > c.Xi {
				c.Xi += advance
				c.Xf -= advance
			} else {
				c.Xi -= advance
				c.Xf += advance
			}
		default:
			dir := c.End().Minus(c.Start())
			u := dir.Scale(1 / dir.Magnitude())
			start := c.Start().Add(u.Scale(advance))
			end := c.End().Minus(u.Scale(advance))
			c.Xi, c.Yi = start.X, start.Y
			c.Xf, c.Yf = end.X, end.Y
		}
	}
}
