// Package dxf draws schemas as R12 ASCII DXF documents for the preview
// sections of a CNI program.
package dxf

import (
	"fmt"
	"strconv"
	"strings"

	"otdconvert/pkg/float"
	"otdconvert/pkg/geometry"
)

// Layer is a named drawing layer and its AutoCAD color index.
type Layer struct {
	Name  string
	Color int
}

const (
	ColorExterior  = 5
	ColorCuts      = 140
	ColorShapeCuts = 6
	ColorPieceType = 5
	ColorCustomer  = 5
	ColorOrder     = 5
	ColorDimension = 5
	ColorShapeName = 5
	ColorPieceFill = 131
	ColorScrapFill = 254
)

var Layers = []Layer{
	{"EST", ColorExterior},
	{"Tagli", ColorCuts},
	{"TagliSag", ColorShapeCuts},
	{"TipoP", ColorPieceType},
	{"Cliente", ColorCustomer},
	{"Ordine", ColorOrder},
	{"Dimensioni", ColorDimension},
	{"NomeSagoma", ColorShapeName},
	{"ColPez", ColorPieceFill},
	{"ColSca", ColorScrapFill},
}

// Writer builds one DXF document.
//
// Group codes are written in two styles. Header, table, SOLID and TEXT
// groups right-align the code in three columns; LINE and ARC groups write
// the code unpadded.
type Writer struct {
	buf strings.Builder
}

func (w *Writer) String() string {
	return w.buf.String()
}

func (w *Writer) raw(line string) {
	w.buf.WriteString(line)
	w.buf.WriteByte('\n')
}

func (w *Writer) group(code int, value string) {
	fmt.Fprintf(&w.buf, "%3d\n%s\n", code, value)
}

func (w *Writer) groupInt(code, value int) {
	fmt.Fprintf(&w.buf, "%3d\n%6d\n", code, value)
}

func (w *Writer) entityGroup(code int, value string) {
	fmt.Fprintf(&w.buf, "%d\n%s\n", code, value)
}

// Coord formats v with three decimals, rounding halves away from zero.
func Coord(v float64) string {
	return strconv.FormatFloat(float.RoundHalfAway(v, 3), 'f', 3, 64)
}

func (w *Writer) vector(x, y, z string) {
	w.group(10, x)
	w.group(20, y)
	w.group(30, z)
}

// Header writes the HEADER section: the R12 version and identity UCS/PUCS
// frames, with the UCS Y axis pointing down.
func (w *Writer) Header() {
	w.group(0, "SECTION")
	w.group(2, "HEADER")
	w.group(9, "$ACADVER")
	w.group(1, "AC1009")

	w.group(9, "$UCSNAME")
	w.raw("2")
	w.raw("")
	w.group(9, "$UCSORG")
	w.vector("0.0", "0.0", "0.0")
	w.group(9, "$UCSXDIR")
	w.vector("1.0", "0.0", "0.0")
	w.group(9, "$UCSYDIR")
	w.vector("0.0", "-1.0", "0.0")

	w.group(9, "$PUCSNAME")
	w.group(2, "")
	w.group(9, "$PUCSORG")
	w.vector("0.0", "0.0", "0.0")
	w.group(9, "$PUCSXDIR")
	w.vector("1.0", "0.0", "0.0")
	w.group(9, "$PUCSYDIR")
	w.vector("0.0", "1.0", "0.0")

	w.group(0, "ENDSEC")
}

// Tables writes the TABLES section with the given layers, followed by an
// empty BLOCKS section.
func (w *Writer) Tables(layers []Layer) {
	w.group(0, "SECTION")
	w.group(2, "TABLES")

	w.group(0, "TABLE")
	w.group(2, "LTYPE")
	w.groupInt(70, 7)
	w.group(0, "LTYPE")
	w.group(2, "CONTINUOUS")
	w.groupInt(70, 64)
	w.group(3, "Solid line")
	w.groupInt(72, 65)
	w.groupInt(73, 0)
	w.group(40, "0.0")
	w.group(0, "ENDTAB")

	w.group(0, "TABLE")
	w.group(2, "LAYER")
	w.groupInt(70, 6)
	for _, l := range layers {
		w.group(0, "LAYER")
		w.group(2, l.Name)
		w.groupInt(70, 64)
		w.group(62, strconv.Itoa(l.Color))
		w.group(6, "CONTINUOUS")
	}
	w.group(0, "ENDTAB")

	w.group(0, "TABLE")
	w.group(2, "STYLE")
	w.groupInt(70, 2)
	w.group(0, "ENDTAB")

	w.group(0, "TABLE")
	w.group(2, "UCS")
	w.groupInt(70, 0)
	w.group(0, "ENDTAB")

	w.group(0, "ENDSEC")

	w.group(0, "SECTION")
	w.group(2, "BLOCKS")
	w.group(0, "ENDSEC")
}

func (w *Writer) BeginEntities() {
	w.group(0, "SECTION")
	w.group(2, "ENTITIES")
}

// EndEntities closes the ENTITIES section and the document. The trailing
// "%%" ends the embedded drawing inside a CNI section.
func (w *Writer) EndEntities() {
	w.group(0, "ENDSEC")
	w.group(0, "EOF")
	w.raw("%%")
}

func (w *Writer) Line(layer string, color int, x1, y1, x2, y2 float64) {
	w.entityGroup(0, "LINE")
	w.entityGroup(8, layer)
	w.entityGroup(62, strconv.Itoa(color))
	w.entityGroup(10, Coord(x1))
	w.entityGroup(20, Coord(y1))
	w.entityGroup(30, "0.000")
	w.entityGroup(11, Coord(x2))
	w.entityGroup(21, Coord(y2))
	w.entityGroup(31, "0.000")
}

// Arc writes a counter-clockwise arc from start to end, both in degrees.
func (w *Writer) Arc(layer string, color int, cx, cy, radius, start, end float64) {
	w.entityGroup(0, "ARC")
	w.entityGroup(8, layer)
	w.entityGroup(62, strconv.Itoa(color))
	w.entityGroup(10, Coord(cx))
	w.entityGroup(20, Coord(cy))
	w.entityGroup(30, "0.000")
	w.entityGroup(40, Coord(radius))
	w.entityGroup(50, Coord(geometry.NormalizeDegrees(start)))
	w.entityGroup(51, Coord(geometry.NormalizeDegrees(end)))
}

// Solid writes a filled axis-aligned rectangle.
func (w *Writer) Solid(layer string, color int, x, y, width, height float64) {
	w.group(0, "SOLID")
	w.group(8, layer)
	w.group(62, fmt.Sprintf("%4d", color))
	w.vector(Coord(x), Coord(y), "0.000")
	w.group(11, Coord(x+width))
	w.group(21, Coord(y))
	w.group(31, "0.000")
	w.group(12, Coord(x))
	w.group(22, Coord(y+height))
	w.group(32, "0.000")
	w.group(13, Coord(x+width))
	w.group(23, Coord(y+height))
	w.group(33, "0.000")
}

func (w *Writer) Text(layer string, color int, x, y float64, text string) {
	w.group(0, "TEXT")
	w.group(8, layer)
	w.group(62, strconv.Itoa(color))
	w.vector(Coord(x), Coord(y), "0.000")
	w.group(1, text)
}
