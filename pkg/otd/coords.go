package otd

import (
	"strings"

	"otdconvert/pkg/model"
)

// coordVars are the coordinate variables of a pattern, in level order. Even
// levels cut vertically, odd levels horizontally.
const coordVars = "XYZWVABCDE"

type coordEntry struct {
	level    int
	value    float64
	shapeID  *int
	infoID   *int
	rotation *float64
	tcut     *int
}

func (e coordEntry) vertical() bool {
	return e.level%2 == 0
}

// parseCoordinates reads the coordinate lines of a [Pattern] section, such as
// "Y=250 Info=3 Shape=1". Lines whose first key is not a single coordinate
// variable, or whose value is not a number, are skipped.
func parseCoordinates(lines []string) []coordEntry {
	var entries []coordEntry
	for _, line := range content(lines) {
		if strings.IndexByte(coordVars, line[0]) < 0 {
			continue
		}
		values := multiValues(line)
		if len(values) == 0 || len(values[0].key) != 1 {
			continue
		}
		level := strings.IndexByte(coordVars, values[0].key[0])
		if level < 0 {
			continue
		}
		value, ok := parseFloat(values[0].value)
		if !ok {
			continue
		}

		e := coordEntry{level: level, value: value}
		for _, p := range values[1:] {
			switch p.key {
			case "Shape":
				e.shapeID = intPtr(p.value)
			case "Info":
				e.infoID = intPtr(p.value)
			case "Rot":
				if v, ok := parseFloat(p.value); ok {
					e.rotation = &v
				} else {
					e.rotation = nil
				}
			case "Tcut":
				e.tcut = intPtr(p.value)
			}
		}
		entries = append(entries, e)
	}
	return entries
}

// trimCuts returns the cuts along the left and bottom trim lines.
func trimCuts(s *model.Schema) []model.Cut {
	var cuts []model.Cut
	if s.TrimLeft > 0 {
		c := model.NewLine(s.TrimLeft, 0, s.TrimLeft, s.Height)
		c.LineType = model.Vertical
		c.Rotation = 90
		cuts = append(cuts, c)
	}
	if s.TrimBottom > 0 {
		c := model.NewLine(0, s.TrimBottom, s.Width, s.TrimBottom)
		c.LineType = model.Horizontal
		c.Rotation = 0
		cuts = append(cuts, c)
	}
	return cuts
}

// strip is the region left for an entry after walking its ancestor chain.
type strip struct {
	offsetX, offsetY float64
	dimX, dimY       float64
	restX, restY     float64
}

// buildLayout rebuilds the guillotine cutting tree encoded by entries and
// returns one cut per entry, preceded by the trim cuts, and one piece per
// entry carrying an Info or Shape id.
//
// The entries are a depth-first listing of the tree where each entry's level
// is its depth. The chain of an entry is every earlier entry whose level is
// not greater than any level between it and the entry: its ancestors and the
// siblings before it at each depth. A stack popped down to the entry's level
// keeps exactly that chain.
func buildLayout(s *model.Schema, entries []coordEntry) ([]model.Cut, []model.Piece) {
	if len(entries) == 0 {
		return nil, nil
	}
	cuts := trimCuts(s)
	var pieces []model.Piece

	var chain []int
	for i, e := range entries {
		for len(chain) > 0 && entries[chain[len(chain)-1]].level > e.level {
			chain = chain[:len(chain)-1]
		}
		chain = append(chain, i)

		st := walkChain(s, entries, chain)
		cuts = append(cuts, entryCut(s, e, st))

		if e.infoID != nil || e.shapeID != nil {
			p := model.NewPiece(st.offsetX+s.TrimLeft, st.offsetY+s.TrimBottom, st.dimX, st.dimY)
			p.InfoID = e.infoID
			p.ShapeID = e.shapeID
			pieces = append(pieces, p)
		}
	}
	return cuts, pieces
}

// walkChain accumulates the offset and remaining size along chain. Entering a
// deeper level narrows the strip to the entry's value; a sibling at the same
// level moves past the previous strip.
func walkChain(s *model.Schema, entries []coordEntry, chain []int) strip {
	st := strip{
		dimX:  s.Width - s.TrimLeft,
		dimY:  s.Height - s.TrimBottom,
		restX: -1,
		restY: -1,
	}
	prev := -1
	for _, idx := range chain {
		e := entries[idx]
		switch {
		case e.level > prev:
			if e.vertical() {
				st.restX = st.dimX - e.value
				st.dimX = e.value
			} else {
				st.restY = st.dimY - e.value
				st.dimY = e.value
			}
			prev = e.level
		case e.level == prev:
			if e.vertical() {
				st.offsetX += st.dimX
				st.restX -= e.value
				st.dimX = e.value
			} else {
				st.offsetY += st.dimY
				st.restY -= e.value
				st.dimY = e.value
			}
		}
	}
	return st
}

func entryCut(s *model.Schema, e coordEntry, st strip) model.Cut {
	var c model.Cut
	if e.vertical() {
		x := st.offsetX + st.dimX + s.TrimLeft
		y := st.offsetY + s.TrimBottom
		c = model.NewLine(x, y, x, y+st.dimY)
		c.LineType = model.Vertical
		c.Rest = st.restX
		c.Rotation = 0
	} else {
		x := st.offsetX + s.TrimLeft
		y := st.offsetY + st.dimY + s.TrimBottom
		c = model.NewLine(x, y, x+st.dimX, y)
		c.LineType = model.Horizontal
		c.Rest = st.restY
		c.Rotation = 90
	}
	if e.rotation != nil {
		c.Rotation = *e.rotation
	}
	c.Level = e.level
	c.Quota = e.value
	c.Tcut = -1
	if e.tcut != nil {
		c.Tcut = *e.tcut
	}
	return c
}
