// Package gcode writes the numbered ISO program lines understood by the
// cutting table controller.
package gcode

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"otdconvert/pkg/cfg"
)

// Writer accumulates program lines. Every command is written as one line
// prefixed with the current line number, which then advances by Increment.
type Writer struct {
	Line      int
	Increment int
	buf       strings.Builder
}

func NewWriter() *Writer {
	return NewWriterAt(10)
}

// NewWriterAt returns a writer whose first numbered line is start.
func NewWriterAt(start int) *Writer {
	return &Writer{Line: start, Increment: 10}
}

func (w *Writer) String() string {
	return w.buf.String()
}

// Numbered writes "N<line> <content>".
func (w *Writer) Numbered(format string, args ...any) {
	fmt.Fprintf(&w.buf, "N%d %s\n", w.Line, fmt.Sprintf(format, args...))
	w.Line += w.Increment
}

// Raw writes a line without a number.
func (w *Writer) Raw(line string) {
	w.buf.WriteString(line)
	w.buf.WriteByte('\n')
}

func (w *Writer) Comment(comment string) {
	w.Raw("; " + comment)
}

func (w *Writer) Label(label string) {
	w.Raw(":" + label)
}

func (w *Writer) Terminator() {
	w.Raw("%")
}

func (w *Writer) SetParam(param int, value string) {
	w.Numbered("P%03d=%s", param, value)
}

func (w *Writer) SetParamInt(param, value int) {
	w.SetParam(param, strconv.Itoa(value))
}

func (w *Writer) SetParamFloat(param int, value float64) {
	w.SetParam(param, FormatCoord(value))
}

// SetTool selects the tool with P007.
func (w *Writer) SetTool(tool int) {
	w.Numbered("P007=%04d", tool)
}

// SetRotation writes the cutting head angle, whole angles without decimals.
func (w *Writer) SetRotation(angle float64) {
	w.Numbered("P539=%s", formatAngle(angle))
}

// SetShapeRotation is SetRotation for tangential shape cutting, where the
// controller needs a non-zero angle.
func (w *Writer) SetShapeRotation(angle float64) {
	if math.Abs(angle) < cfg.MinPositiveRotation {
		w.Numbered("P539=%s", FormatCoord(cfg.MinPositiveRotation))
		return
	}
	w.Numbered("P539=%s", formatAngle(angle))
}

func formatAngle(angle float64) string {
	if r := math.Round(angle); math.Abs(angle-r) < cfg.Eps {
		return strconv.Itoa(int(r))
	}
	return FormatCoord(angle)
}

func axisWord(c string) string {
	if c == "" {
		return ""
	}
	return " C=" + c
}

// Rapid writes a G00 move. c, when not empty, is written as the C axis.
func (w *Writer) Rapid(x, y float64, c string) {
	w.Numbered("G00 X=%s Y=%s%s", FormatCoord(x), FormatCoord(y), axisWord(c))
}

// Linear writes a G01 move. c, when not empty, is written as the C axis.
func (w *Writer) Linear(x, y float64, c string) {
	w.Numbered("G01 X=%s Y=%s%s", FormatCoord(x), FormatCoord(y), axisWord(c))
}

// ArcCW writes a G02 move to x, y around the center i, j.
func (w *Writer) ArcCW(x, y, i, j float64) {
	w.arc("G02", x, y, i, j)
}

// ArcCCW writes a G03 move to x, y around the center i, j.
func (w *Writer) ArcCCW(x, y, i, j float64) {
	w.arc("G03", x, y, i, j)
}

func (w *Writer) arc(code string, x, y, i, j float64) {
	w.Numbered("%s X=%s Y=%s I=%s J=%s", code, FormatCoord(x), FormatCoord(y), FormatCoord(i), FormatCoord(j))
}

// CallMacro calls a named controller macro.
func (w *Writer) CallMacro(name string) {
	w.Numbered("L=%s", name)
}

// CallLabel calls a numbered subprogram.
func (w *Writer) CallLabel(label string) {
	w.Numbered("L:%s", label)
}

func (w *Writer) Jump(label string) {
	w.Numbered("JM:%s", label)
}

func (w *Writer) JumpIf(condition, label string) {
	w.Numbered("JM(%s):%s", condition, label)
}

func (w *Writer) ToolUp() {
	w.CallMacro("PT_SU")
}

func (w *Writer) ToolDown() {
	w.CallMacro("PT_GIU")
}

func (w *Writer) LoadTool() {
	w.CallMacro("PTOOL")
}

func (w *Writer) ApplyRotation() {
	w.CallMacro("PROT_B")
}

// Direction writes the cut direction code, M=533 for vertical cuts and M=532
// otherwise.
func (w *Writer) Direction(vertical bool) {
	if vertical {
		w.Numbered("M=533")
	} else {
		w.Numbered("M=532")
	}
}

func (w *Writer) WorkOffset() {
	w.Numbered("G58")
}

func (w *Writer) SetXO(v float64) {
	w.Numbered("XO=%s", FormatCoord(v))
}

func (w *Writer) SetYO(v float64) {
	w.Numbered("YO=%s", FormatCoord(v))
}

func (w *Writer) TangentOn() {
	w.Numbered("G28")
}

func (w *Writer) TangentOff() {
	w.Numbered("G01 G46")
}

// ShapeParams announces the length of the next continuous shape run and the
// tool cutting it.
func (w *Writer) ShapeParams(perimeter float64, tool int) {
	w.CallMacro("PSETSAG")
	w.SetParamFloat(203, perimeter)
	w.SetParamInt(204, tool)
}

const significantDigits = 15

// FormatCoord formats v with 15 significant digits, without trailing zeros or
// a trailing decimal point. Whole numbers have no decimal point and zero is
// "0".
func FormatCoord(v float64) string {
	if v == 0 {
		return "0"
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}

	abs := math.Abs(v)
	exp := int(math.Floor(math.Log10(abs)))
	var places int
	if abs >= 1 {
		places = max(significantDigits-(exp+1), 0)
	} else {
		places = significantDigits + max(-exp-1, 0)
	}

	s := strconv.FormatFloat(v, 'f', places, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "" || s == "-" || s == "-0" {
		return "0"
	}
	return s
}
