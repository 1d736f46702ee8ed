package otd

import (
	"strings"

	"otdconvert/pkg/model"
)

// parseInfo reads an [Info] section. Sections without an Id are dropped.
func parseInfo(lines []string) (model.PieceType, bool) {
	var t model.PieceType
	hasID := false
	for _, line := range content(lines) {
		key, value, ok := keyValue(line)
		if !ok {
			continue
		}
		switch key {
		case "Id":
			if v, ok := parseInt(value); ok {
				t.ID = v
				hasID = true
			}
		case "OrderNo":
			t.OrderNo = value
		case "PosNo":
			t.PositionNo = value
		case "Customer":
			t.Customer = value
		case "Commission":
			t.Commission = value
		case "SecondGlassReference":
			t.SecondGlassRef = value
		case "RackNo":
			t.RackNo = value
		case "SheetWidth":
			if v, ok := parseFloat(value); ok {
				t.SheetWidth = v
			}
		case "SheetHeight":
			if v, ok := parseFloat(value); ok {
				t.SheetHeight = v
			}
		case "SheetCode":
			if v, ok := parseInt(value); ok {
				t.PieceCode = v
			}
		case "Waste":
			if v, ok := parseInt(value); ok {
				t.Waste = v == 1
			}
		}
	}
	return t, hasID
}

// parseShape reads a [Shape] section: Id, Name, Description and one
// geometry line per segment. Sections without an Id are dropped.
func parseShape(lines []string) (model.Shape, bool) {
	var s model.Shape
	hasID := false
	for _, line := range content(lines) {
		if key, value, ok := keyValue(line); ok {
			switch key {
			case "Id":
				if v, ok := parseInt(value); ok {
					s.ID = v
					hasID = true
					continue
				}
			case "Name":
				s.Name = value
				continue
			case "Description":
				s.Description = value
				continue
			}
		}
		if strings.HasPrefix(line, "x=") || strings.HasPrefix(line, "X=") {
			if c, ok := parseGeometryLine(line); ok {
				s.Cuts = append(s.Cuts, c)
			}
		}
	}
	if !hasID {
		return model.Shape{}, false
	}
	s.CalcPerimeter()
	s.Open = !s.IsClosed()
	return s, true
}

// parseGeometryLine reads one shape segment, e.g. "x=0 y=0 X=100 Y=0 R=50 C=1".
// R gives a clockwise arc radius, L a counter-clockwise one. All four
// endpoint coordinates are required.
func parseGeometryLine(line string) (model.Cut, bool) {
	var xi, yi, xf, yf, radiusCW, radiusCCW *float64
	tool := 1
	ablation := 0.0

	optFloat := func(s string) *float64 {
		if v, ok := parseFloat(s); ok {
			return &v
		}
		return nil
	}

	for _, p := range multiValues(line) {
		switch p.key {
		case "x":
			xi = optFloat(p.value)
		case "y":
			yi = optFloat(p.value)
		case "X":
			xf = optFloat(p.value)
		case "Y":
			yf = optFloat(p.value)
		case "R":
			radiusCW = optFloat(p.value)
		case "L":
			radiusCCW = optFloat(p.value)
		case "C":
			tool = intOr(p.value, 1)
		case "LA":
			ablation = floatOr(p.value, 0)
		}
	}
	if xi == nil || yi == nil || xf == nil || yf == nil {
		return model.Cut{}, false
	}

	var c model.Cut
	switch {
	case radiusCW != nil:
		c = model.NewArcCW(*xi, *yi, *xf, *yf, *radiusCW)
	case radiusCCW != nil:
		c = model.NewArcCCW(*xi, *yi, *xf, *yf, *radiusCCW)
	default:
		c = model.NewLine(*xi, *yi, *xf, *yf)
	}
	c.ToolCode = tool
	c.AblationWidth = ablation
	return c, true
}

// parseCuttings reads a [Cuttings] or [LowE] section. It holds explicit cuts
// ("x= y= X= Y= ..."), explicit pieces ("XO= YO= Width= Height= ...") and
// "IndPiece= Cut=" lines that attach back-references to the preceding cut.
func parseCuttings(lines []string) ([]model.Cut, []model.Piece) {
	var cuts []model.Cut
	var pieces []model.Piece

	for _, line := range content(lines) {
		values := multiValues(line)
		if len(values) == 0 {
			continue
		}

		switch values[0].key {
		case "XO":
			p := model.NewPiece(0, 0, 0, 0)
			for _, kv := range values {
				switch kv.key {
				case "XO":
					p.X = floatOr(kv.value, 0)
				case "YO":
					p.Y = floatOr(kv.value, 0)
				case "Width":
					p.Width = floatOr(kv.value, 0)
				case "Height":
					p.Height = floatOr(kv.value, 0)
				case "Info":
					p.InfoID = intPtr(kv.value)
				case "Shape":
					p.ShapeID = intPtr(kv.value)
				case "IndPiece":
					p.IndPiece = intPtr(kv.value)
				}
			}
			if p.Width > 0 && p.Height > 0 {
				pieces = append(pieces, p)
			}

		case "IndPiece":
			if len(cuts) == 0 {
				continue
			}
			c := &cuts[len(cuts)-1]
			for _, kv := range values {
				switch kv.key {
				case "IndPiece":
					if v, ok := parseInt(kv.value); ok {
						c.PieceIndices = append(c.PieceIndices, v)
					}
				case "Cut":
					if v, ok := parseInt(kv.value); ok {
						c.CutIndices = append(c.CutIndices, v)
					}
				}
			}

		case "x", "y":
			c := model.Cut{Type: model.Line, Active: true, ParentShape: -1}
			for _, kv := range values {
				switch kv.key {
				case "x":
					c.Xi = floatOr(kv.value, 0)
				case "y":
					c.Yi = floatOr(kv.value, 0)
				case "X":
					c.Xf = floatOr(kv.value, 0)
				case "Y":
					c.Yf = floatOr(kv.value, 0)
				case "Levcut":
					c.Level = intOr(kv.value, 0)
				case "Rot":
					c.Rotation = floatOr(kv.value, 0)
				case "Qcut":
					c.Quota = floatOr(kv.value, 0)
				case "Lcut":
					c.Length = floatOr(kv.value, 0)
				case "Tcut":
					c.Tcut = intOr(kv.value, 0)
				case "Rcut":
					c.Rest = floatOr(kv.value, -1)
				case "Wcut":
					if v, ok := parseInt(kv.value); ok {
						c.Scrap = v > 0
					}
				case "ParentShape":
					c.ParentShape = intOr(kv.value, -1)
				}
			}
			c.ClassifyLine()
			cuts = append(cuts, c)
		}
	}
	return cuts, pieces
}
