package cdt

import (
	"fmt"
	"log"

	"github.com/soypat/cdt/delaunay"
)

// timeRange returns the minimum and maximum time label of cell c and the
// index of the first vertex carrying the maximum.
func timeRange(t *delaunay.Triangulation, c delaunay.CellID) (min, max uint32, top int) {
	vs := t.CellVertices(c)
	min = t.Label(vs[0])
	max = min
	for i, v := range vs[1:] {
		label := t.Label(v)
		if label < min {
			min = label
		}
		if label > max {
			max = label
			top = i + 1
		}
	}
	return min, max, top
}

// CheckTimeslices scans every finite cell of t and counts cells whose vertices
// span exactly one timeslice as valid. Cells the triangulation reports as
// unsound are counted invalid without looking at their labels.
// ok is true when no cell is invalid. Per-cell diagnostics are written to
// output when it is not nil.
//
// CheckTimeslices panics if t is not a valid Delaunay triangulation, which
// means the triangulation is corrupt rather than badly foliated.
func CheckTimeslices(t *delaunay.Triangulation, output *log.Logger) (ok bool, valid, invalid int) {
	for _, c := range t.FiniteCells() {
		if !t.IsCellValid(c) {
			if output != nil {
				output.Printf("Cell %d is not a valid cell.", c)
			}
			invalid++
			continue
		}
		min, max, _ := timeRange(t, c)
		if output != nil {
			for i, v := range t.CellVertices(c) {
				output.Printf("Cell %d vertex %d is %v with timeslice %d", c, i, t.Point(v), t.Label(v))
			}
		}
		if max-min != 1 {
			if output != nil {
				output.Printf("Foliation is invalid for cell %d.", c)
			}
			invalid++
		} else {
			valid++
		}
	}
	if !t.IsValid() {
		panic("cdt: triangulation is not Delaunay after a completed operation")
	}
	if output != nil {
		output.Printf("There are %d invalid cells and %d valid cells in this triangulation.", invalid, valid)
	}
	return invalid == 0, valid, invalid
}

// FixTimeslices removes, for every sound finite cell whose labels do not span
// exactly one timeslice, the vertex with the highest label in that cell.
// Offending vertices are collected over the whole scan first and removed
// in a single call, so the scan never runs over a mutating triangulation.
// Unsound cells are left untouched.
func FixTimeslices(t *delaunay.Triangulation, output *log.Logger) (removed int, err error) {
	var doomed []delaunay.VertexID
	seen := make(map[delaunay.VertexID]struct{})
	for _, c := range t.FiniteCells() {
		if !t.IsCellValid(c) {
			continue
		}
		min, max, top := timeRange(t, c)
		if max-min == 1 {
			continue
		}
		v := t.CellVertices(c)[top]
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		doomed = append(doomed, v)
		if output != nil {
			output.Printf("Vertex %d of cell %d removed.", top, c)
		}
	}
	removed, err = t.RemoveAll(doomed)
	if err != nil {
		return removed, fmt.Errorf("fixing timeslices: %w", err)
	}
	return removed, nil
}
