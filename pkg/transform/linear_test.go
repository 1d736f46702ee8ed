package transform

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otdconvert/pkg/model"
)

type seg struct {
	Xi, Yi, Xf, Yf float64
	Active         bool
}

func segs(cuts []model.Cut) []seg {
	var out []seg
	for _, c := range cuts {
		out = append(out, seg{c.Xi, c.Yi, c.Xf, c.Yf, c.Active})
	}
	return out
}

var approx = cmpopts.EquateApprox(0, 1e-9)

func sheet(w, h float64, cuts ...model.Cut) *model.Schema {
	s := model.NewSchema()
	s.Width, s.Height = w, h
	s.LinearCuts = cuts
	return s
}

func inactive(c model.Cut) model.Cut {
	c.Active = false
	return c
}

func TestMergeCuts(t *testing.T) {
	s := sheet(1000, 500,
		model.NewLine(100, 0, 100, 200),
		model.NewLine(200, 0, 200, 100),
		model.NewLine(100, 300, 100, 150),
		model.NewLine(100, 400, 100, 500),
		model.NewLine(0, 50, 100, 50),
		model.NewLine(150, 50, 300, 50),
		model.NewLine(100, 50, 150, 50),
		inactive(model.NewLine(100, 200, 100, 400)),
	)
	MergeCuts(s)

	want := []seg{
		{100, 0, 100, 300, true},
		{200, 0, 200, 100, true},
		{100, 300, 100, 150, false},
		{100, 400, 100, 500, true},
		{0, 50, 300, 50, true},
		{150, 50, 300, 50, false},
		{100, 50, 150, 50, false},
		{100, 200, 100, 400, false},
	}
	if diff := cmp.Diff(want, segs(s.LinearCuts)); diff != "" {
		t.Errorf("MergeCuts() incorrect output: %s", diff)
	}
}

func TestRemoveEdgeCuts(t *testing.T) {
	s := sheet(1000, 500,
		model.NewLine(1, 0, 1, 500),
		model.NewLine(999, 0, 999, 500),
		model.NewLine(500, 0, 500, 500),
		model.NewLine(0, 0.5, 1000, 0.5),
		model.NewLine(0, 499, 1000, 499),
		model.NewLine(0, 250, 1000, 250),
		model.NewLine(0, 0, 1, 1),
	)
	RemoveEdgeCuts(s)

	var active []bool
	for _, c := range s.LinearCuts {
		active = append(active, c.Active)
	}
	assert.Equal(t, []bool{false, false, true, false, false, true, true}, active)

	inches := sheet(40, 20, model.NewLine(0.1, 0, 0.1, 20), model.NewLine(0.05, 0, 0.05, 20))
	inches.Unit = model.Inches
	RemoveEdgeCuts(inches)
	assert.True(t, inches.LinearCuts[0].Active)
	assert.False(t, inches.LinearCuts[1].Active)
}

func TestOrderCuts(t *testing.T) {
	s := sheet(1000, 500,
		model.NewLine(0, 100, 500, 100),
		model.NewLine(500, 0, 500, 500),
		inactive(model.NewLine(10, 10, 20, 10)),
		model.NewLine(0, 400, 900, 400),
	)
	OrderCuts(s)

	want := []seg{
		{0, 100, 500, 100, true},
		{500, 0, 500, 500, true},
		{900, 400, 0, 400, true},
		{10, 10, 20, 10, false},
	}
	if diff := cmp.Diff(want, segs(s.LinearCuts)); diff != "" {
		t.Errorf("OrderCuts() incorrect output: %s", diff)
	}
}

func TestOrderCutsVisitsEveryActiveCutOnce(t *testing.T) {
	var cuts []model.Cut
	for i := 0; i < 30; i++ {
		x := float64((i * 37) % 1000)
		y := float64((i * 53) % 500)
		c := model.NewLine(x, y, x, y+20)
		c.Quota = float64(i)
		c.Active = i%7 != 0
		cuts = append(cuts, c)
	}
	s := sheet(1000, 600, cuts...)
	OrderCuts(s)

	require.Len(t, s.LinearCuts, len(cuts))
	seen := map[float64]bool{}
	activeDone := false
	for _, c := range s.LinearCuts {
		assert.False(t, seen[c.Quota], "cut %v visited twice", c.Quota)
		seen[c.Quota] = true
		if !c.Active {
			activeDone = true
		}
		assert.False(t, activeDone && c.Active, "active cut after inactive ones")
	}
}

func TestApplyAdvance(t *testing.T) {
	arc := model.NewArcCW(0, 0, 100, 0, 50)
	s := sheet(1000, 500,
		model.NewLine(100, 0, 100, 500),
		model.NewLine(200, 500, 200, 0),
		model.NewLine(0, 5, 15, 5),
		model.NewLine(30, 5, 0, 5),
		model.NewLine(0, 0, 30, 40),
		arc,
	)
	ApplyAdvance(s, 10)

	want := []seg{
		{100, 10, 100, 490, true},
		{200, 490, 200, 10, true},
		{0, 5, 15, 5, false},
		{20, 5, 10, 5, true},
		{6, 8, 24, 32, true},
		{0, 0, 100, 0, true},
	}
	if diff := cmp.Diff(want, segs(s.LinearCuts), approx); diff != "" {
		t.Errorf("ApplyAdvance() incorrect output: %s", diff)
	}

	ApplyAdvance(s, 0)
	assert.Equal(t, 10.0, s.LinearCuts[0].Yi)
}

func TestLinear(t *testing.T) {
	s := sheet(1000, 500,
		model.NewLine(0, 0, 0, 500),
		model.NewLine(400, 0, 400, 200),
		model.NewLine(400, 200, 400, 500),
		model.NewLine(0, 200, 400, 200),
	)
	s.LinearAdvance = 1
	Linear(s)

	want := []seg{
		{1, 200, 399, 200, true},
		{400, 1, 400, 499, true},
		{0, 0, 0, 500, false},
		{400, 200, 400, 500, false},
	}
	if diff := cmp.Diff(want, segs(s.LinearCuts), approx); diff != "" {
		t.Errorf("Linear() incorrect output: %s", diff)
	}
	assert.True(t, s.LinearOptimized)
	assert.Equal(t, 2, s.ActiveLinearCuts())

	// A second run leaves the cuts alone.
	Linear(s)
	if diff := cmp.Diff(want, segs(s.LinearCuts), approx); diff != "" {
		t.Errorf("Linear() changed optimized cuts: %s", diff)
	}
}
