package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const tolerance = 0.001

func TestNewLineClassification(t *testing.T) {
	tests := []struct {
		name           string
		xi, yi, xf, yf float64
		want           LineType
	}{
		{"horizontal", 0, 50, 100, 50, Horizontal},
		{"vertical", 50, 0, 50, 100, Vertical},
		{"oblique", 0, 0, 100, 100, Oblique},
		{"nearly vertical", 10, 0, 10.00005, 100, Vertical},
		{"point", 5, 5, 5, 5, Vertical},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := NewLine(test.xi, test.yi, test.xf, test.yf)
			assert.Equal(t, Line, c.Type)
			assert.Equal(t, test.want, c.LineType)
			assert.True(t, c.Active)
			assert.Equal(t, -1, c.ParentShape)
			assert.Equal(t, 0, c.ToolCode)
			assert.True(t, c.IsLine())
			assert.False(t, c.IsArc())
		})
	}
}

func TestArcCenterOnConstruction(t *testing.T) {
	cw := NewArcCW(0, 0, 100, 0, 50)
	assert.Equal(t, ArcCW, cw.Type)
	assert.InDelta(t, 50, cw.Xc, tolerance)
	assert.InDelta(t, 0, cw.Yc, tolerance)

	ccw := NewArcCCW(0, 0, 100, 0, 50)
	assert.Equal(t, ArcCCW, ccw.Type)
	assert.InDelta(t, 50, ccw.Xc, tolerance)
	assert.InDelta(t, 0, ccw.Yc, tolerance)

	quarter := NewArcCCW(100, 0, 0, 100, 100)
	assert.InDelta(t, 0, quarter.Xc, tolerance)
	assert.InDelta(t, 0, quarter.Yc, tolerance)
	assert.True(t, quarter.IsArc())

	zero := NewArcCW(10, 10, 20, 10, 0)
	assert.Equal(t, 0.0, zero.Xc)
	assert.Equal(t, 0.0, zero.Yc)
}

func TestCalcLength(t *testing.T) {
	assert.InDelta(t, 5, NewLine(0, 0, 3, 4).CalcLength(), tolerance)
	assert.InDelta(t, 100, NewLine(0, 0, 100, 0).CalcLength(), tolerance)
	assert.InDelta(t, math.Pi*50, NewArcCW(0, 0, 100, 0, 50).CalcLength(), 0.1)
	assert.InDelta(t, math.Pi*50, NewArcCCW(0, 0, 100, 0, 50).CalcLength(), 0.1)
	assert.InDelta(t, math.Pi*50, NewArcCCW(100, 0, 0, 100, 100).CalcLength(), 0.1)
}

func TestArcAngle(t *testing.T) {
	assert.Equal(t, 0.0, NewLine(0, 0, 100, 0).ArcAngle())
	assert.InDelta(t, -math.Pi, NewArcCW(0, 0, 100, 0, 50).ArcAngle(), 0.1)
	assert.InDelta(t, math.Pi, NewArcCCW(0, 0, 100, 0, 50).ArcAngle(), 0.1)
	assert.InDelta(t, math.Pi/2, NewArcCCW(100, 0, 0, 100, 100).ArcAngle(), tolerance)
}

func TestInitialAngleDegrees(t *testing.T) {
	tests := []struct {
		name string
		cut  Cut
		want float64
	}{
		{"right", NewLine(0, 0, 100, 0), 0},
		{"up", NewLine(0, 0, 0, 100), 90},
		{"left", NewLine(100, 0, 0, 0), 180},
		{"down", NewLine(0, 100, 0, 0), 270},
		{"diagonal", NewLine(0, 0, 100, 100), 45},
		// counter-clockwise quarter circle about the origin starts heading up
		{"ccw quarter", NewArcCCW(100, 0, 0, 100, 100), 90},
		// clockwise from the top of the circle heads right, then down
		{"cw quarter", NewArcCW(0, 100, 100, 0, 100), 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.InDelta(t, test.want, test.cut.InitialAngleDegrees(), tolerance)
		})
	}
}

func TestFinalAngleDegrees(t *testing.T) {
	line := NewLine(0, 0, 100, 50)
	assert.InDelta(t, line.InitialAngleDegrees(), line.FinalAngleDegrees(), tolerance)

	assert.InDelta(t, 180, NewArcCCW(100, 0, 0, 100, 100).FinalAngleDegrees(), tolerance)
	assert.InDelta(t, 270, NewArcCW(0, 100, 100, 0, 100).FinalAngleDegrees(), tolerance)
}

func TestStartAngleDegrees(t *testing.T) {
	assert.InDelta(t, -90, NewLine(0, 100, 0, 0).StartAngleDegrees(), tolerance)
	assert.InDelta(t, 0, NewArcCCW(100, 0, 0, 100, 100).StartAngleDegrees(), tolerance)
	assert.InDelta(t, 180, NewArcCW(0, 0, 100, 0, 50).StartAngleDegrees(), tolerance)
}

func TestReverse(t *testing.T) {
	c := NewLine(1, 2, 3, 4)
	c.Reverse()
	assert.Equal(t, 3.0, c.Xi)
	assert.Equal(t, 4.0, c.Yi)
	assert.Equal(t, 1.0, c.Xf)
	assert.Equal(t, 2.0, c.Yf)
}

func TestUnit(t *testing.T) {
	tests := []struct {
		in    string
		want  Unit
		ok    bool
		gcode string
		mm    float64
	}{
		{"mm", Millimeters, true, "G71", 1},
		{" INCH ", Inches, true, "G70", 25.4},
		{"tinch", TenthsOfInch, true, "G70", 30.303},
		{"feet", Millimeters, false, "G71", 1},
	}
	for _, test := range tests {
		u, ok := ParseUnit(test.in)
		assert.Equal(t, test.want, u, test.in)
		assert.Equal(t, test.ok, ok, test.in)
		assert.Equal(t, test.gcode, u.GCode())
		assert.Equal(t, test.mm, u.ToMM())
	}
	assert.Equal(t, "Tinch", TenthsOfInch.String())
}
