package geom

import (
	"math"
	"testing"

	"honnef.co/go/curve"
)

func TestDivOrZero(t *testing.T) {
	if got := DivOrZero(10, 4); got != 2.5 {
		t.Errorf("DivOrZero(10, 4) = %v, want 2.5", got)
	}
	if got := DivOrZero(10, 0); got != 0 {
		t.Errorf("DivOrZero(10, 0) = %v, want 0", got)
	}
	if got := DivOrZero(0, 0); got != 0 {
		t.Errorf("DivOrZero(0, 0) = %v, want 0", got)
	}
}

func TestAngleDifference(t *testing.T) {
	tests := []struct {
		from, to, want float64
	}{
		{0, math.Pi / 2, math.Pi / 2},
		{math.Pi / 2, 0, -math.Pi / 2},
		{0, math.Pi, math.Pi},
		{-3 * math.Pi / 4, 3 * math.Pi / 4, -math.Pi / 2},
		{3 * math.Pi / 4, -3 * math.Pi / 4, math.Pi / 2},
		{0, 2 * math.Pi, 0},
	}
	for _, tt := range tests {
		got := AngleDifference(tt.from, tt.to)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("AngleDifference(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestAngleDifferenceRange(t *testing.T) {
	for from := -6.0; from <= 6.0; from += 0.37 {
		for to := -6.0; to <= 6.0; to += 0.53 {
			d := AngleDifference(from, to)
			if d <= -math.Pi || d > math.Pi+1e-12 {
				t.Fatalf("AngleDifference(%v, %v) = %v outside (-pi, pi]", from, to, d)
			}
		}
	}
}

func TestRotate(t *testing.T) {
	got := Rotate(curve.Vec(1, 0), math.Pi/2)
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Y-1) > 1e-9 {
		t.Errorf("Rotate((1,0), pi/2) = %v, want (0, 1)", got)
	}
}

func TestInsideQuadUnitSquare(t *testing.T) {
	// Axis-aligned unit square centered at the origin.
	a := curve.Pt(-1, -1)
	b := curve.Pt(1, -1)
	c := curve.Pt(1, 1)
	d := curve.Pt(-1, 1)

	if !InsideQuad(a, b, c, d, curve.Pt(0, 0)) {
		t.Error("center should be inside")
	}
	if InsideQuad(a, b, c, d, curve.Pt(2, 2)) {
		t.Error("(2,2) should be outside")
	}
	// Boundary points classify as inside.
	if !InsideQuad(a, b, c, d, curve.Pt(1, 0)) {
		t.Error("edge point (1,0) should be inside")
	}
	if !InsideQuad(a, b, c, d, curve.Pt(-1, -1)) {
		t.Error("corner point should be inside")
	}
}

func TestInsideQuadRotated(t *testing.T) {
	// Diamond: the same square rotated 45 degrees.
	a := curve.Pt(0, -1)
	b := curve.Pt(1, 0)
	c := curve.Pt(0, 1)
	d := curve.Pt(-1, 0)

	if !InsideQuad(a, b, c, d, curve.Pt(0.2, 0.2)) {
		t.Error("(0.2,0.2) should be inside the diamond")
	}
	if InsideQuad(a, b, c, d, curve.Pt(0.9, 0.9)) {
		t.Error("(0.9,0.9) should be outside the diamond")
	}
}

func TestInsideTriangle(t *testing.T) {
	a := curve.Pt(0, 0)
	b := curve.Pt(4, 0)
	c := curve.Pt(0, 4)

	if !InsideTriangle(curve.Pt(1, 1), a, b, c) {
		t.Error("(1,1) should be inside")
	}
	if InsideTriangle(curve.Pt(5, 5), a, b, c) {
		t.Error("(5,5) should be outside")
	}
	if !InsideTriangle(curve.Pt(2, 0), a, b, c) {
		t.Error("edge point (2,0) should be inside")
	}
	if !InsideTriangle(curve.Pt(0, 0), a, b, c) {
		t.Error("vertex should be inside")
	}
}

func TestTriangleCentroid(t *testing.T) {
	got := TriangleCentroid(curve.Pt(0, 0), curve.Pt(6, 0), curve.Pt(0, 6))
	want := curve.Pt(2, 2)
	if got != want {
		t.Errorf("TriangleCentroid = %v, want %v", got, want)
	}
}

func TestSortCounterClockwise(t *testing.T) {
	want := [3]curve.Point{curve.Pt(1, 1), curve.Pt(0, -1), curve.Pt(-1, 1)}

	// Every input ordering lands on the same output.
	inputs := [][3]curve.Point{
		{curve.Pt(1, 1), curve.Pt(0, -1), curve.Pt(-1, 1)},
		{curve.Pt(-1, 1), curve.Pt(0, -1), curve.Pt(1, 1)},
		{curve.Pt(0, -1), curve.Pt(1, 1), curve.Pt(-1, 1)},
	}
	for _, in := range inputs {
		if got := SortCounterClockwise(in); got != want {
			t.Errorf("SortCounterClockwise(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestDistanceToTriangle(t *testing.T) {
	a := curve.Pt(0, 0)
	b := curve.Pt(4, 0)
	c := curve.Pt(0, 4)

	if d := DistanceToTriangle(curve.Pt(1, 1), a, b, c); d >= 0 {
		t.Errorf("interior point distance = %v, want negative", d)
	}
	if d := DistanceToTriangle(curve.Pt(-2, 1), a, b, c); math.Abs(d-2) > 1e-9 {
		t.Errorf("point two units left of x=0 edge: distance = %v, want 2", d)
	}
	// Winding must not matter.
	d1 := DistanceToTriangle(curve.Pt(-2, 1), a, b, c)
	d2 := DistanceToTriangle(curve.Pt(-2, 1), c, b, a)
	if math.Abs(d1-d2) > 1e-9 {
		t.Errorf("distance depends on winding: %v vs %v", d1, d2)
	}
}
