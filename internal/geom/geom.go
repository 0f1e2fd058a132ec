// Package geom provides the geometric predicates used for hit-testing
// shapes and placing their interaction handles.
//
// World space follows screen conventions: +y points down, angles are in
// radians, and a positive rotation turns a shape's rotate handle
// counter-clockwise on screen.
package geom

import (
	"math"
	"sort"

	"honnef.co/go/curve"
)

// DivOrZero divides n by d, yielding zero for a zero denominator instead of
// propagating Inf/NaN into downstream transforms.
func DivOrZero(n, d float64) float64 {
	if d == 0 {
		return 0
	}
	return n / d
}

// AngleDifference returns the shortest signed rotation taking bearing from
// to bearing to, normalized into (-pi, pi].
func AngleDifference(from, to float64) float64 {
	d := math.Mod(to-from, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

// Rotate rotates v by theta radians.
func Rotate(v curve.Vec2, theta float64) curve.Vec2 {
	sin, cos := math.Sincos(theta)
	return curve.Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

func triangleArea(a, b, c curve.Point) float64 {
	return 0.5 * math.Abs((b.X*a.Y-a.X*b.Y)+(c.X*b.Y-b.X*c.Y)+(a.X*c.Y-c.X*a.Y))
}

// InsideQuad reports whether p lies inside the convex quadrilateral abcd,
// where consecutive arguments form edges (a-b, b-c, c-d, d-a). The quad does
// not have to be axis-aligned. Points exactly on an edge count as inside:
// the four triangle areas around p sum to the quad's own area there, and the
// comparison is <= within floating-point equality.
func InsideQuad(a, b, c, d, p curve.Point) bool {
	cumulative := triangleArea(a, p, d) + triangleArea(d, p, c) + triangleArea(c, p, b) + triangleArea(p, b, a)
	area := triangleArea(a, b, c) + triangleArea(c, d, a)
	return cumulative <= area+areaEpsilon
}

// areaEpsilon absorbs the rounding error of summing four partial areas.
const areaEpsilon = 1e-9

func edgeSign(p, a, b curve.Point) float64 {
	return (p.X-b.X)*(a.Y-b.Y) - (a.X-b.X)*(p.Y-b.Y)
}

// InsideTriangle reports whether p lies inside the triangle abc. Boundary
// points count as inside: the test only rejects p when the three edge signs
// strictly disagree.
func InsideTriangle(p, a, b, c curve.Point) bool {
	d1 := edgeSign(p, a, b)
	d2 := edgeSign(p, b, c)
	d3 := edgeSign(p, c, a)

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0

	return !(hasNeg && hasPos)
}

// TriangleCentroid returns the centroid of the triangle abc.
func TriangleCentroid(a, b, c curve.Point) curve.Point {
	return curve.Point{
		X: (a.X + b.X + c.X) / 3,
		Y: (a.Y + b.Y + c.Y) / 3,
	}
}

// SortCounterClockwise orders the three points counter-clockwise around
// their centroid. Ties between colinear points fall back to squared
// distance from the centroid so the order is total.
func SortCounterClockwise(points [3]curve.Point) [3]curve.Point {
	center := TriangleCentroid(points[0], points[1], points[2])

	sorted := points
	sort.Slice(sorted[:], func(i, j int) bool {
		return ccwLess(sorted[i], sorted[j], center)
	})
	return sorted
}

func ccwLess(a, b, center curve.Point) bool {
	av := a.Sub(center)
	bv := b.Sub(center)

	// Half-plane split: everything right of the centroid orders before
	// everything left of it.
	if av.X >= 0 && bv.X < 0 {
		return true
	}
	if av.X < 0 && bv.X >= 0 {
		return false
	}
	if av.X == 0 && bv.X == 0 {
		if av.Y >= 0 || bv.Y >= 0 {
			return a.Y > b.Y
		}
		return b.Y > a.Y
	}

	det := av.Cross(bv)
	if det < 0 {
		return true
	}
	if det > 0 {
		return false
	}

	// Colinear with the centroid; order by distance.
	return av.Hypot2() > bv.Hypot2()
}

// DistanceToTriangle returns the signed distance from p to the farthest
// edge of the triangle abc, positive when p lies outside that edge. The
// triangle is forced into counter-clockwise order first so edge signs are
// consistent. Used to place a rotate handle just outside a triangle's
// silhouette regardless of its winding.
func DistanceToTriangle(p, a, b, c curve.Point) float64 {
	tri := SortCounterClockwise([3]curve.Point{a, b, c})

	max := math.Inf(-1)
	for i := range tri {
		from := tri[i]
		to := tri[(i+1)%3]
		edge := to.Sub(from)
		length := edge.Hypot()
		if length == 0 {
			continue
		}
		// After the winding pass the interior lies on the
		// negative-cross side of every edge.
		d := edge.Cross(p.Sub(from)) / length
		if d > max {
			max = d
		}
	}
	return max
}
