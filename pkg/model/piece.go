package model

import "otdconvert/pkg/geometry"

// Edge is a bitmask of the sheet edges a piece touches.
type Edge uint8

const (
	EdgeLeft Edge = 1 << iota
	EdgeBottom
	EdgeRight
	EdgeTop
)

// Piece is a placed rectangular workpiece.
//
// InfoID and ShapeID are the ids written in the file. TypeIndex and
// ShapeIndex are the resolved positions in the owning Schema's PieceTypes and
// Shapes, or -1 when the id is absent or unknown.
type Piece struct {
	X      float64 `json:"x_origin"`
	Y      float64 `json:"y_origin"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	InfoID   *int `json:"info_id,omitempty"`
	ShapeID  *int `json:"shape_id,omitempty"`
	IndPiece *int `json:"ind_piece,omitempty"`

	Index      int  `json:"piece_index"`
	TypeIndex  int  `json:"piece_type_index"`
	ShapeIndex int  `json:"shape_index"`
	Edges      Edge `json:"edge_sides"`
}

func NewPiece(x, y, width, height float64) Piece {
	return Piece{
		X:          x,
		Y:          y,
		Width:      width,
		Height:     height,
		Index:      -1,
		TypeIndex:  -1,
		ShapeIndex: -1,
	}
}

func (p Piece) XMax() float64 {
	return p.X + p.Width
}

func (p Piece) YMax() float64 {
	return p.Y + p.Height
}

func (p Piece) Origin() geometry.Point {
	return geometry.Point{X: p.X, Y: p.Y}
}

func (p Piece) Bounds() geometry.Rectangle {
	return geometry.Rectangle{
		Min: geometry.Point{X: p.X, Y: p.Y},
		Max: geometry.Point{X: p.XMax(), Y: p.YMax()},
	}
}

func (p Piece) HasInfo() bool {
	return p.InfoID != nil
}

func (p Piece) HasShape() bool {
	return p.ShapeID != nil
}

func (p Piece) Touches(e Edge) bool {
	return p.Edges&e != 0
}

func (p *Piece) SetEdges(left, bottom, right, top bool) {
	p.Edges = 0
	if left {
		p.Edges |= EdgeLeft
	}
	if bottom {
		p.Edges |= EdgeBottom
	}
	if right {
		p.Edges |= EdgeRight
	}
	if top {
		p.Edges |= EdgeTop
	}
}

// PieceType is the customer and order metadata referenced by a piece's Info id.
type PieceType struct {
	ID             int     `json:"id"`
	OrderNo        string  `json:"order_no"`
	PositionNo     string  `json:"position_no"`
	Customer       string  `json:"customer"`
	Commission     string  `json:"commission"`
	SecondGlassRef string  `json:"second_glass_ref"`
	RackNo         string  `json:"rack_no"`
	SheetWidth     float64 `json:"sheet_width"`
	SheetHeight    float64 `json:"sheet_height"`
	PieceCode      int     `json:"piece_code"`
	Waste          bool    `json:"waste"`
}

func (t PieceType) HasCustomer() bool {
	return t.Customer != ""
}

func (t PieceType) HasOrder() bool {
	return t.OrderNo != ""
}
