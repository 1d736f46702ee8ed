package cni

import (
	"fmt"

	"otdconvert/pkg/cfg"
	"otdconvert/pkg/gcode"
	"otdconvert/pkg/model"
)

// endLabel is where every schema block jumps when done, and where the
// program ends.
const endLabel = "999999999"

// onTable is the controller condition for a sheet on the cutting table.
const onTable = "P260=2"

func contourProgram(schemas []*model.Schema, m cfg.MachineConfig) string {
	w := gcode.NewWriterAt(20)
	w.SetParamInt(15, 1)
	w.CallMacro("PRGINIT")
	w.Numbered("JM:(P262)")
	w.Raw("")

	for i, s := range schemas {
		writeSchema(w, s, i+1, m)
	}
	writeShapeMacros(w, schemas)

	w.Raw("")
	w.Label(endLabel)
	w.CallMacro("PFOXOUT")
	w.Terminator()
	return w.String()
}

func writeSchema(w *gcode.Writer, s *model.Schema, num int, m cfg.MachineConfig) {
	w.Comment(fmt.Sprintf("--- inizio Schema=%d Lastre=%d", num, s.Quantity))
	w.Label(fmt.Sprintf("%04d", num))

	total := s.Width * s.Height
	waste := total - pieceArea(s)
	wastePercent := 0.0
	if total > 0 {
		wastePercent = waste / total * 100
	}
	w.SetParamFloat(12, total/1e6)
	w.SetParamFloat(13, waste/1e6)
	w.SetParamFloat(14, wastePercent)
	w.SetParamInt(941, s.NLayoutSync)

	restX, restY := RestDimensions(s)
	w.Numbered("PXRS=%s", gcode.FormatCoord(restX))
	w.Numbered("PYRS=%s", gcode.FormatCoord(restY))
	w.CallMacro("PTMREP_B")

	w.Raw(";parte relativa al Taglio --------")
	linearLabel := fmt.Sprintf("01%04d", num)
	shapedLabel := fmt.Sprintf("02%04d", num)
	hasLinear := len(s.LinearCuts) > 0
	hasShaped := usesShapedTool(s)

	if hasLinear {
		w.JumpIf(fmt.Sprintf("(%s)~(P007=%04d)", onTable, linearTool(m)), linearLabel)
	}
	if hasShaped {
		w.JumpIf(fmt.Sprintf("(%s)~(P007=%04d)", onTable, shapedTool(m)), shapedLabel)
	}
	w.JumpIf(onTable, endLabel)
	w.Raw("")

	if hasLinear {
		w.Comment("parte geometrica lineare ----------")
		w.Label(linearLabel)
		writeLinearCuts(w, s, linearTool(m))
		w.Raw("")
		w.JumpIf(onTable, endLabel)
		w.Raw("")
	}

	if hasShaped {
		w.Comment("parte geometrica sagomata ----------")
		w.Label(shapedLabel)
		writeShapedPieces(w, s, num, shapedTool(m))
		w.Raw("")
		w.JumpIf(onTable, endLabel)
		w.Raw("")
	}

	w.Jump(endLabel)
	w.Raw("")
}

// pieceArea is the area of the pieces that carry a piece type which is not
// waste. A piece whose type id is unknown still counts.
func pieceArea(s *model.Schema) float64 {
	area := 0.0
	for _, p := range s.Pieces {
		if !p.HasInfo() {
			continue
		}
		if t, ok := s.PieceType(p); ok && t.Waste {
			continue
		}
		area += p.Width * p.Height
	}
	return area
}

func writeLinearCuts(w *gcode.Writer, s *model.Schema, tool int) {
	w.SetTool(tool)
	w.LoadTool()
	w.ToolUp()

	for _, c := range s.LinearCuts {
		if !c.Active {
			continue
		}
		if c.IsVertical() {
			w.SetRotation(90)
		} else {
			w.SetRotation(0)
		}
		w.ApplyRotation()
		w.Rapid(c.Xi, c.Yi, "P540")
		w.Direction(c.IsVertical())
		w.ToolDown()
		w.Linear(c.Xf, c.Yf, "P540")
		w.ToolUp()
	}
}

func writeShapedPieces(w *gcode.Writer, s *model.Schema, num, tool int) {
	w.SetTool(tool)
	w.LoadTool()

	for _, i := range ShapedPieceOrder(s) {
		p := s.Pieces[i]
		w.Raw(";----")
		w.WorkOffset()
		w.SetXO(p.X)
		w.SetYO(p.Y)
		w.CallLabel(MacroLabel(cfg.ToolTypeShaped, num, p.ShapeIndex))
	}
}
