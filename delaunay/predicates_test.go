package delaunay

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestOrientInsphere(t *testing.T) {
	o := r3.Vec{}
	x := r3.Vec{X: 1}
	y := r3.Vec{Y: 1}
	z := r3.Vec{Z: 1}
	if got := orient(o, y, x, z); got <= 0 {
		t.Fatalf("orient(o,y,x,z) = %g, want positive", got)
	}
	if got := orient(o, x, y, z); got >= 0 {
		t.Fatalf("orient(o,x,y,z) = %g, want negative", got)
	}
	if got := orient(o, x, y, r3.Vec{X: 1, Y: 1}); got != 0 {
		t.Fatalf("coplanar orient = %g, want 0", got)
	}
	for _, test := range []struct {
		e    r3.Vec
		sign int
	}{
		{e: r3.Vec{X: .25, Y: .25, Z: .25}, sign: 1},
		{e: r3.Vec{X: 2, Y: 2, Z: 2}, sign: -1},
		{e: r3.Vec{X: 1, Y: 1, Z: 1}, sign: 0}, // cube corner, cospherical.
	} {
		det, perm := insphereWithPermanent(o, y, x, z, test.e)
		if perm < 0 {
			t.Errorf("negative permanent %g", perm)
		}
		switch {
		case test.sign > 0 && det <= 0, test.sign < 0 && det >= 0:
			t.Errorf("insphere(%v) = %g, want sign %d", test.e, det, test.sign)
		case test.sign == 0 && det > 1e-12*perm:
			t.Errorf("insphere(%v) = %g, want ~0", test.e, det)
		}
	}
}

func TestSpatialOrderMerges(t *testing.T) {
	tri := New()
	p := r3.Vec{X: 1, Y: 2, Z: 3}
	tri.verts = append(tri.verts,
		vertex{p: p, alive: true},
		vertex{p: r3.Vec{}, alive: true},
		vertex{p: p, alive: true},
	)
	tri.tol = 1e-12
	order := tri.spatialOrder([]VertexID{4, 5, 6})
	if len(order) != 2 {
		t.Fatalf("got order %v, want two vertices", order)
	}
	if tri.verts[6].alive || !tri.verts[4].alive {
		t.Fatal("duplicate with higher handle should be merged into lower handle")
	}
}
