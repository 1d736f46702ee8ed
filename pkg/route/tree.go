package route

import (
	"math"

	"github.com/asim/quadtree"

	"otdconvert/pkg/geometry"
)

// endpoint is one way of entering a stop: through its start, or through its
// end when the stop is reversible.
type endpoint struct {
	stop int
	end  bool
}

// endpointTree indexes stop endpoints by position. Endpoints sharing the exact
// same coordinates are stored in one quadtree point.
type endpointTree struct {
	quadTree *quadtree.QuadTree
	points   map[geometry.Point]*quadtree.Point
	center   geometry.Point
	reach    float64
}

func newEndpointTree(bounds geometry.Rectangle) *endpointTree {
	midX := (bounds.Max.X + bounds.Min.X) / 2
	midY := (bounds.Max.Y + bounds.Min.Y) / 2
	halfWidth := bounds.Max.X - midX
	halfHeight := bounds.Max.Y - midY

	// Add a small margin to avoid dropping objects at the edges
	halfWidth += 10
	halfHeight += 10

	aabb := quadtree.NewAABB(
		quadtree.NewPoint(midX, midY, nil),
		quadtree.NewPoint(halfWidth, halfHeight, nil))
	return &endpointTree{
		quadTree: quadtree.New(aabb, 0, nil),
		points:   map[geometry.Point]*quadtree.Point{},
		center:   geometry.Point{X: midX, Y: midY},
		reach:    math.Hypot(halfWidth, halfHeight),
	}
}

func (t *endpointTree) add(p geometry.Point, e endpoint) {
	if existing, ok := t.points[p]; ok {
		refs := existing.Data().(map[endpoint]struct{})
		refs[e] = struct{}{}
		return
	}
	point := quadtree.NewPoint(p.X, p.Y, map[endpoint]struct{}{e: {}})
	t.quadTree.Insert(point)
	t.points[p] = point
}

func (t *endpointTree) remove(p geometry.Point, e endpoint) {
	point, ok := t.points[p]
	if !ok {
		return
	}
	refs := point.Data().(map[endpoint]struct{})
	delete(refs, e)
	if len(refs) == 0 {
		t.quadTree.Remove(point)
		delete(t.points, p)
	}
}

func (t *endpointTree) empty() bool {
	return len(t.points) == 0
}

// nearest returns the endpoint closest to from. Ties go to the lowest stop
// index, then to a start over an end. The search window doubles until it
// holds a candidate closer than its half-size, or covers the whole tree.
func (t *endpointTree) nearest(from geometry.Point) (endpoint, bool) {
	if t.empty() {
		return endpoint{}, false
	}
	// The farthest any stored point can be from the query.
	limit := from.Distance(t.center) + t.reach

	r := t.reach / 16
	if r < 1 {
		r = 1
	}
	for {
		window := quadtree.NewAABB(
			quadtree.NewPoint(from.X, from.Y, nil),
			quadtree.NewPoint(r, r, nil),
		)
		best, bestDist, found := endpoint{}, math.Inf(1), false
		for _, point := range t.quadTree.Search(window) {
			x, y := point.Coordinates()
			d := from.Distance(geometry.Point{X: x, Y: y})
			for e := range point.Data().(map[endpoint]struct{}) {
				if !found || less(d, e, bestDist, best) {
					best, bestDist, found = e, d, true
				}
			}
		}
		if found && (bestDist < r || r >= limit) {
			return best, true
		}
		if r >= limit {
			return endpoint{}, false
		}
		r *= 2
	}
}

func less(d float64, e endpoint, bestDist float64, best endpoint) bool {
	if d != bestDist {
		return d < bestDist
	}
	if e.stop != best.stop {
		return e.stop < best.stop
	}
	return !e.end && best.end
}
