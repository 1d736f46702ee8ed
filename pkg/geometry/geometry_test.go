package geometry

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var approx = cmp.Comparer(func(x, y float64) bool {
	return math.Abs(x-y) < 0.00001
})

func TestArcCenter(t *testing.T) {
	tests := []struct {
		start, end Point
		r          float64
		clockwise  bool
		want       Point
	}{
		{
			start:     Point{X: 0, Y: 0},
			end:       Point{X: 100, Y: 0},
			r:         50,
			clockwise: true,
			want:      Point{X: 50, Y: 0},
		},
		{
			start:     Point{X: 0, Y: 0},
			end:       Point{X: 100, Y: 0},
			r:         50,
			clockwise: false,
			want:      Point{X: 50, Y: 0},
		},
		{
			start:     Point{X: 100, Y: 0},
			end:       Point{X: 0, Y: 100},
			r:         100,
			clockwise: false,
			want:      Point{X: 0, Y: 0},
		},
		{
			start:     Point{X: 0, Y: 100},
			end:       Point{X: 100, Y: 0},
			r:         100,
			clockwise: true,
			want:      Point{X: 0, Y: 0},
		},
		{
			// radius too small for the chord degrades to the midpoint
			start:     Point{X: 0, Y: 0},
			end:       Point{X: 10, Y: 0},
			r:         2,
			clockwise: true,
			want:      Point{X: 5, Y: 0},
		},
		{
			start: Point{X: 3, Y: 4},
			end:   Point{X: 10, Y: 0},
			r:     0,
			want:  Point{},
		},
	}

	for i, test := range tests {
		got := ArcCenter(test.start, test.end, test.r, test.clockwise)
		if diff := cmp.Diff(test.want, got, approx); diff != "" {
			t.Errorf("Test %d - ArcCenter(%v, %v, %g, %v) incorrect output: %s", i, test.start, test.end, test.r, test.clockwise, diff)
		}
	}
}

func TestNormalizeDegrees(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{720, 0},
		{-90, 270},
		{450, 90},
		{-360, 0},
		{179.5, 179.5},
	}
	for _, test := range tests {
		if got := NormalizeDegrees(test.in); math.Abs(got-test.want) > 1e-9 {
			t.Errorf("NormalizeDegrees(%g) = %g, want %g", test.in, got, test.want)
		}
	}
}

func TestAngleMinDiff(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{0, 90, 90},
		{350, 10, 20},
		{10, 350, 20},
		{180, 0, 180},
		{45, 45, 0},
	}
	for _, test := range tests {
		if got := AngleMinDiff(test.a, test.b); math.Abs(got-test.want) > 1e-9 {
			t.Errorf("AngleMinDiff(%g, %g) = %g, want %g", test.a, test.b, got, test.want)
		}
	}
}

func TestRectangle(t *testing.T) {
	r := EmptyRectangle()
	if !r.IsEmpty() {
		t.Fatalf("EmptyRectangle is not empty")
	}
	r = r.Extend(Point{X: 10, Y: 5}).Extend(Point{X: -2, Y: 8})
	want := Rectangle{Min: Point{X: -2, Y: 5}, Max: Point{X: 10, Y: 8}}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("Extend incorrect output: %s", diff)
	}
	if r.Width() != 12 || r.Height() != 3 {
		t.Errorf("size = %gx%g, want 12x3", r.Width(), r.Height())
	}

	a := Rectangle{Min: Point{X: 0, Y: 0}, Max: Point{X: 10, Y: 10}}
	touching := Rectangle{Min: Point{X: 10, Y: 0}, Max: Point{X: 20, Y: 10}}
	inside := Rectangle{Min: Point{X: 5, Y: 5}, Max: Point{X: 6, Y: 6}}
	if a.Overlaps(touching) {
		t.Errorf("touching rectangles reported as overlapping")
	}
	if !a.Overlaps(inside) || !inside.Overlaps(a) {
		t.Errorf("nested rectangles not reported as overlapping")
	}
}

func TestMatrix(t *testing.T) {
	tests := []struct {
		m    Matrix
		in   Point
		want Point
	}{
		{Identity(), Point{X: 3, Y: 4}, Point{X: 3, Y: 4}},
		{Translate(10, 20), Point{X: 3, Y: 4}, Point{X: 13, Y: 24}},
		{MirrorX(100), Point{X: 30, Y: 4}, Point{X: 70, Y: 4}},
		{MirrorX(100).Multiply(Translate(10, 5)), Point{X: 30, Y: 4}, Point{X: 60, Y: 9}},
	}
	for i, test := range tests {
		got := test.m.TransformPoint(test.in)
		if diff := cmp.Diff(test.want, got, approx); diff != "" {
			t.Errorf("Test %d - TransformPoint(%v) incorrect output: %s", i, test.in, diff)
		}
	}
	if Translate(1, 2).Mirrors() || !MirrorX(10).Mirrors() {
		t.Errorf("Mirrors() incorrect")
	}
}
