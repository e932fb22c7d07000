package d3

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestSetBounds(t *testing.T) {
	set := Set{{X: 1, Y: -2, Z: 3}, {X: -1, Y: 4, Z: 0}, {X: 0, Y: 0, Z: -5}}
	box := set.Bounds()
	want := Box{Min: r3.Vec{X: -1, Y: -2, Z: -5}, Max: r3.Vec{X: 1, Y: 4, Z: 3}}
	if box != want {
		t.Fatalf("got %v, want %v", box, want)
	}
	if got := box.Size(); got != (r3.Vec{X: 2, Y: 6, Z: 8}) {
		t.Errorf("size %v", got)
	}
	if got := box.Center(); got != (r3.Vec{X: 0, Y: 1, Z: -1}) {
		t.Errorf("center %v", got)
	}
	grown := box.Include(r3.Vec{X: 10})
	if grown.Max.X != 10 || grown.Min != box.Min {
		t.Errorf("include: got %v", grown)
	}
}
