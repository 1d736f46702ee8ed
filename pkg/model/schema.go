package model

import (
	"sort"

	"otdconvert/pkg/float"
)

// Schema is one sheet layout, built from one [Pattern] section and the
// sections that follow it.
type Schema struct {
	Version string `json:"otd_version"`
	Unit    Unit   `json:"unit"`
	Date    string `json:"date"`
	Creator string `json:"creator"`

	MachineName   string `json:"machine_name"`
	MachineNumber int    `json:"machine_number"`

	GlassID          string  `json:"glass_id"`
	GlassDescription string  `json:"glass_description"`
	Thickness        float64 `json:"thickness"`
	GlassStructured  bool    `json:"glass_structured"`
	GlassCoated      bool    `json:"glass_coated"`

	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	TrimLeft   float64 `json:"trim_left"`
	TrimBottom float64 `json:"trim_bottom"`

	Quantity           int     `json:"quantity"`
	CuttingOrder       int     `json:"cutting_order"`
	LinearAdvance      float64 `json:"linear_advance"`
	MinAngle           float64 `json:"min_angle"`
	CoatingMinAngle    float64 `json:"coating_min_angle"`
	LinearOptimized    bool    `json:"linear_cuts_optimized"`
	OptimizeShapeOrder bool    `json:"optimize_shape_order"`
	NLayoutSync        int     `json:"n_layout_sync"`

	LinearTool     int `json:"linear_tool"`
	ShapedTool     int `json:"shaped_tool"`
	OpenShapedTool int `json:"open_shaped_tool"`
	IncisionTool   int `json:"incision_tool"`

	LinearCuts []Cut       `json:"linear_cuts"`
	LowECuts   []Cut       `json:"lowe_cuts"`
	Pieces     []Piece     `json:"pieces"`
	LowEPieces []Piece     `json:"lowe_pieces"`
	PieceTypes []PieceType `json:"piece_types"`
	Shapes     []Shape     `json:"shapes"`
}

// NewSchema returns a schema with the defaults of an empty [Pattern].
func NewSchema() *Schema {
	return &Schema{
		Quantity:           1,
		MinAngle:           5,
		CoatingMinAngle:    5,
		OptimizeShapeOrder: true,
	}
}

// FindPieceType returns the index of the piece type with the given id, or -1.
func (s *Schema) FindPieceType(id int) int {
	for i, t := range s.PieceTypes {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// FindShape returns the index of the shape with the given id, or -1.
func (s *Schema) FindShape(id int) int {
	for i, sh := range s.Shapes {
		if sh.ID == id {
			return i
		}
	}
	return -1
}

func (s *Schema) UsableWidth() float64 {
	return s.Width - s.TrimLeft
}

func (s *Schema) UsableHeight() float64 {
	return s.Height - s.TrimBottom
}

// PieceType returns the resolved piece type of p, if any.
func (s *Schema) PieceType(p Piece) (PieceType, bool) {
	if p.TypeIndex < 0 || p.TypeIndex >= len(s.PieceTypes) {
		return PieceType{}, false
	}
	return s.PieceTypes[p.TypeIndex], true
}

// Shape returns the resolved shape of p, if any.
func (s *Schema) Shape(p Piece) (*Shape, bool) {
	if p.ShapeIndex < 0 || p.ShapeIndex >= len(s.Shapes) {
		return nil, false
	}
	return &s.Shapes[p.ShapeIndex], true
}

// ResolveReferences sets each piece's TypeIndex and ShapeIndex from its ids.
func (s *Schema) ResolveReferences() {
	for i := range s.Pieces {
		p := &s.Pieces[i]
		p.TypeIndex, p.ShapeIndex = -1, -1
		if p.InfoID != nil {
			p.TypeIndex = s.FindPieceType(*p.InfoID)
		}
		if p.ShapeID != nil {
			p.ShapeIndex = s.FindShape(*p.ShapeID)
		}
	}
}

// ComputeEdges sets the edge mask of every piece from its position on the
// sheet. A piece touches the left or bottom edge when it starts at the trim
// line or at zero.
func (s *Schema) ComputeEdges() {
	for i := range s.Pieces {
		p := &s.Pieces[i]
		p.SetEdges(
			float.ApproxEq(p.X, s.TrimLeft) || float.ApproxEq(p.X, 0),
			float.ApproxEq(p.Y, s.TrimBottom) || float.ApproxEq(p.Y, 0),
			float.ApproxEq(p.XMax(), s.Width),
			float.ApproxEq(p.YMax(), s.Height),
		)
	}
}

// PieceCount is the number of placed pieces of one piece type.
type PieceCount struct {
	InfoID int
	Count  int
}

// PieceDistribution counts placed pieces per piece type id, sorted by id.
// Pieces without a resolved type are not counted.
func (s *Schema) PieceDistribution() []PieceCount {
	counts := map[int]int{}
	for _, p := range s.Pieces {
		if t, ok := s.PieceType(p); ok {
			counts[t.ID]++
		}
	}
	result := make([]PieceCount, 0, len(counts))
	for id, n := range counts {
		result = append(result, PieceCount{InfoID: id, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].InfoID < result[j].InfoID
	})
	return result
}

// ActiveLinearCuts returns the number of linear cuts still marked active.
func (s *Schema) ActiveLinearCuts() int {
	n := 0
	for _, c := range s.LinearCuts {
		if c.Active {
			n++
		}
	}
	return n
}
