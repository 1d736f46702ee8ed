package cni

import (
	"strconv"

	"otdconvert/pkg/cfg"
	"otdconvert/pkg/gcode"
	"otdconvert/pkg/geometry"
	"otdconvert/pkg/model"
	"otdconvert/pkg/route"
)

// MacroLabel is the subprogram label of a shape macro. Shape indices map to
// odd label numbers.
func MacroLabel(toolType, schemaNum, shapeIndex int) string {
	label := 1_000_000_000 + toolType*10_000_000 + schemaNum*1000 + 2*shapeIndex + 1
	return strconv.Itoa(label)
}

// ShapedPieceOrder returns the indices of the pieces whose shape is cut with
// the shaped tool, in cutting order.
//
// With shape order optimization, pieces are visited nearest first starting
// from the sheet origin. A piece is entered at the start of its shape's first
// active shaped cut and left at the end of that cut, both offset by the piece
// origin. Pieces with no such cut are not visited, unless no piece has one, in
// which case all candidates are returned in input order.
func ShapedPieceOrder(s *model.Schema) []int {
	var candidates []int
	for i, p := range s.Pieces {
		if shape, ok := s.Shape(p); ok && shape.UsesTool(cfg.ToolTypeShaped) {
			candidates = append(candidates, i)
		}
	}
	if !s.OptimizeShapeOrder {
		return candidates
	}

	var stops []route.Stop
	var pieces []int
	for _, i := range candidates {
		p := s.Pieces[i]
		shape, _ := s.Shape(p)
		c, ok := firstShapedCut(shape)
		if !ok {
			continue
		}
		stops = append(stops, route.Stop{
			Start: p.Origin().Add(c.Start()),
			End:   p.Origin().Add(c.End()),
		})
		pieces = append(pieces, i)
	}
	if len(stops) == 0 {
		return candidates
	}

	order := make([]int, 0, len(stops))
	for _, v := range route.Tour(geometry.Point{}, stops) {
		order = append(order, pieces[v.Index])
	}
	return order
}

func firstShapedCut(shape *model.Shape) (model.Cut, bool) {
	for _, c := range shape.Cuts {
		if c.Active && c.ToolCode == cfg.ToolTypeShaped {
			return c, true
		}
	}
	return model.Cut{}, false
}

func writeShapeMacros(w *gcode.Writer, schemas []*model.Schema) {
	found := false
	for _, s := range schemas {
		found = found || usesShapedTool(s)
	}
	if !found {
		return
	}

	w.Comment("macro delle icone ----------")
	for i, s := range schemas {
		minAngle := max(s.MinAngle, cfg.DefaultContinuityAngle)
		for j, shape := range s.Shapes {
			if !shape.UsesTool(cfg.ToolTypeShaped) {
				continue
			}
			w.Label(MacroLabel(cfg.ToolTypeShaped, i+1, j))
			writeMacroBody(w, shape, cfg.MinContinuity, minAngle)
			w.Terminator()
			w.Raw("")
		}
	}
}

// writeMacroBody cuts the active segments of shape in order. The tool is
// lifted and repositioned wherever consecutive segments are further apart
// than maxGap, or meet at a tangent change of at least minAngle degrees.
func writeMacroBody(w *gcode.Writer, shape model.Shape, maxGap, minAngle float64) {
	var cuts []model.Cut
	for _, c := range shape.Cuts {
		if c.Active {
			cuts = append(cuts, c)
		}
	}
	if len(cuts) == 0 {
		w.ToolUp()
		return
	}

	for i, c := range cuts {
		if i == 0 || breaksRun(cuts[i-1], c, maxGap, minAngle) {
			if i > 0 {
				w.TangentOff()
			}
			w.ToolUp()

			w.SetShapeRotation(max(c.InitialAngleDegrees(), cfg.MinPositiveRotation))
			w.ApplyRotation()
			w.Numbered("G00 X=%s Y=%s C=P540 AR=P540", gcode.FormatCoord(c.Xi), gcode.FormatCoord(c.Yi))
			w.ShapeParams(runLength(cuts[i:], maxGap, minAngle), cfg.ToolTypeShaped)
			w.ToolDown()
			w.TangentOn()
		}

		switch c.Type {
		case model.ArcCW:
			w.ArcCW(c.Xf, c.Yf, c.Xc, c.Yc)
		case model.ArcCCW:
			w.ArcCCW(c.Xf, c.Yf, c.Xc, c.Yc)
		default:
			w.Linear(c.Xf, c.Yf, "")
		}
	}

	w.TangentOff()
	w.ToolUp()
}

// breaksRun reports whether next cannot continue the tool-down run ending
// with prev.
func breaksRun(prev, next model.Cut, maxGap, minAngle float64) bool {
	if prev.End().Distance(next.Start()) > maxGap {
		return true
	}
	return geometry.AngleMinDiff(next.InitialAngleDegrees(), prev.FinalAngleDegrees()) >= minAngle
}

// runLength is the path length of the run starting with cuts[0].
func runLength(cuts []model.Cut, maxGap, minAngle float64) float64 {
	length := 0.0
	for i, c := range cuts {
		length += c.CalcLength()
		if i+1 < len(cuts) && breaksRun(c, cuts[i+1], maxGap, minAngle) {
			break
		}
	}
	return length
}
