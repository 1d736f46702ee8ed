// Package route orders work items to shorten the tool's travel between them.
package route

import (
	"math"

	"otdconvert/pkg/geometry"
)

// Stop is one item of work entered at Start and left at End. A reversible
// stop may also be entered at End and left at Start.
type Stop struct {
	Start      geometry.Point
	End        geometry.Point
	Reversible bool
}

// Visit is one step of a tour: the index of the stop in the input slice and
// whether it is traversed from End to Start.
type Visit struct {
	Index    int
	Reversed bool
}

// Tour visits every stop once with a greedy nearest-neighbour walk from
// origin. At each step it picks the stop whose entry point is closest to the
// current position; ties go to the lower index, and to the start over the end
// of the same stop. The position then moves to the exit point of that stop.
func Tour(origin geometry.Point, stops []Stop) []Visit {
	if len(stops) == 0 {
		return nil
	}

	bounds := geometry.EmptyRectangle()
	for _, s := range stops {
		if finite(s.Start) {
			bounds = bounds.Extend(s.Start)
		}
		if s.Reversible && finite(s.End) {
			bounds = bounds.Extend(s.End)
		}
	}
	if bounds.IsEmpty() {
		bounds = geometry.Rectangle{Min: origin, Max: origin}
	}

	tree := newEndpointTree(bounds)
	for i, s := range stops {
		if finite(s.Start) {
			tree.add(s.Start, endpoint{stop: i})
		}
		if s.Reversible && finite(s.End) {
			tree.add(s.End, endpoint{stop: i, end: true})
		}
	}

	visited := make([]bool, len(stops))
	tour := make([]Visit, 0, len(stops))
	pos := origin
	for !tree.empty() {
		next, ok := tree.nearest(pos)
		if !ok {
			break
		}
		s := stops[next.stop]
		tree.remove(s.Start, endpoint{stop: next.stop})
		if s.Reversible {
			tree.remove(s.End, endpoint{stop: next.stop, end: true})
		}
		visited[next.stop] = true
		tour = append(tour, Visit{Index: next.stop, Reversed: next.end})
		if next.end {
			pos = s.Start
		} else {
			pos = s.End
		}
		if !finite(pos) {
			pos = origin
		}
	}

	// Stops that could not be indexed keep their input order.
	for i, done := range visited {
		if !done {
			tour = append(tour, Visit{Index: i})
		}
	}
	return tour
}

func finite(p geometry.Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
