package dxf

import (
	"fmt"
	"math"
	"strconv"

	"otdconvert/pkg/geometry"
	"otdconvert/pkg/model"
)

// View places sheet coordinates in the drawing.
type View struct {
	m geometry.Matrix
}

// Normal draws the sheet as laid out.
func Normal() View {
	return View{m: geometry.Identity()}
}

// Mirrored reflects the sheet about its vertical center line, as seen from
// the other side of the glass.
func Mirrored(sheetWidth float64) View {
	return View{m: geometry.MirrorX(sheetWidth)}
}

func (v View) mirrored() bool {
	return v.m.Mirrors()
}

func (v View) point(x, y float64) geometry.Point {
	return v.m.TransformPoint(geometry.Point{X: x, Y: y})
}

// rect returns r's corners in the view, with Min below and left of Max.
func (v View) rect(r geometry.Rectangle) geometry.Rectangle {
	a := v.m.TransformPoint(r.Min)
	b := v.m.TransformPoint(r.Max)
	return geometry.Rectangle{
		Min: geometry.Point{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: geometry.Point{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// Draw renders s as a complete DXF document in view v.
func Draw(s *model.Schema, v View) string {
	var w Writer
	w.Header()
	w.Tables(Layers)
	w.BeginEntities()

	w.Solid("ColSca", ColorScrapFill, 0, 0, s.Width, s.Height)
	for _, p := range s.Pieces {
		if !p.HasInfo() {
			continue
		}
		box := v.rect(p.Bounds())
		w.Solid("ColPez", ColorPieceFill, box.Min.X, box.Min.Y, p.Width, p.Height)
	}

	w.Line("EST", 0, 0, 0, s.Width, 0)
	w.Line("EST", 0, s.Width, 0, s.Width, s.Height)
	w.Line("EST", 0, s.Width, s.Height, 0, s.Height)
	w.Line("EST", 0, 0, s.Height, 0, 0)

	for _, c := range s.LinearCuts {
		if !c.Active {
			continue
		}
		a, b := v.point(c.Xi, c.Yi), v.point(c.Xf, c.Yf)
		w.Line("Tagli", ColorCuts, a.X, a.Y, b.X, b.Y)
	}

	for _, p := range s.Pieces {
		if shape, ok := s.Shape(p); ok {
			drawShape(&w, v, p, shape)
		}
	}

	for _, p := range s.Pieces {
		if p.HasInfo() {
			labelPiece(&w, v, s, p)
		}
	}

	w.EndEntities()
	return w.String()
}

func drawShape(w *Writer, v View, p model.Piece, shape *model.Shape) {
	place := v.m.Multiply(geometry.Translate(p.X, p.Y))
	for _, c := range shape.Cuts {
		if !c.Active {
			continue
		}
		start := place.TransformPoint(c.Start())
		end := place.TransformPoint(c.End())
		if c.IsLine() {
			w.Line("TagliSag", ColorShapeCuts, start.X, start.Y, end.X, end.Y)
			continue
		}

		center := place.TransformPoint(c.Center())
		a1 := geometry.Degrees(start.Minus(center).Angle())
		a2 := geometry.Degrees(end.Minus(center).Angle())
		// DXF arcs run counter-clockwise; mirroring flips the winding.
		if (c.Type == model.ArcCW) != v.mirrored() {
			a1, a2 = a2, a1
		}
		w.Arc("TagliSag", ColorShapeCuts, center.X, center.Y, c.Radius, a1, a2)
	}
}

func labelPiece(w *Writer, v View, s *model.Schema, p model.Piece) {
	t, hasType := s.PieceType(p)
	if hasType && t.Waste {
		return
	}

	box := v.rect(p.Bounds())
	at := func(fx, fy float64) (float64, float64) {
		return box.Min.X + p.Width*fx, box.Min.Y + p.Height*fy
	}

	x, y := at(0.5, 0.75)
	w.Text("Dimensioni", ColorDimension, x, y, fmt.Sprintf("%s x %s", Coord(p.Width), Coord(p.Height)))

	if shape, ok := s.Shape(p); ok {
		name := shape.Name
		if name == "" && !v.mirrored() {
			name = "?"
		}
		x, y := at(0.5, 0.5)
		w.Text("NomeSagoma", ColorShapeName, x, y, name)
	}

	if !hasType {
		return
	}
	x, y = at(0.9, 0.9)
	w.Text("TipoP", ColorPieceType, x, y, strconv.Itoa(t.PieceCode))
	if t.HasCustomer() {
		x, y := at(0.75, 0.25)
		w.Text("Cliente", ColorCustomer, x, y, t.Customer)
	}
	if t.HasOrder() {
		x, y := at(0.75, 0.125)
		w.Text("Ordine", ColorOrder, x, y, t.OrderNo)
	}
}
