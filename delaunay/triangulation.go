// Package delaunay implements a 3D Delaunay triangulation with per-vertex labels
// and per-cell tags. Vertices and cells are referred to by opaque handles into
// arenas owned by the Triangulation.
//
// Every mutation (Insert, Remove, RemoveAll) triangulates the surviving vertex
// set again with incremental Bowyer-Watson insertion inside an enclosing
// super-tetrahedron. Vertex handles are stable across mutations, cell handles
// and cell tags are not.
package delaunay

import (
	"errors"
	"fmt"
	"math"

	"github.com/soypat/cdt/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// VertexID is a handle to a vertex of a Triangulation.
type VertexID int32

// CellID is a handle to a tetrahedral cell of a Triangulation.
type CellID int32

// NoCell marks a missing neighbor (the outer faces of the super-tetrahedron).
const NoCell CellID = -1

// numSuper is the number of super-tetrahedron vertices. They occupy the first
// vertex handles and are never reported as finite.
const numSuper = 4

var (
	ErrLengthMismatch = errors.New("delaunay: points and labels length mismatch")
	ErrBadVertex      = errors.New("delaunay: vertex handle not in triangulation")
)

// Edge is a finite edge of the triangulation given by its two endpoints.
type Edge [2]VertexID

type vertex struct {
	p     r3.Vec
	label uint32
	alive bool
	stamp uint32
}

type cell struct {
	v     [4]VertexID
	n     [4]CellID // n[i] is the neighbor across the face opposite v[i].
	tag   uint8
	alive bool
	stamp uint32
}

// Triangulation is a Delaunay triangulation of a labeled 3D point set.
// The zero value is not usable, create one with New.
type Triangulation struct {
	verts []vertex
	cells []cell
	free  []CellID
	live  int // live cells, super cells included.
	hint  CellID
	stamp uint32
	// tol is the distance below which two points are merged.
	tol float64

	// scratch buffers reused between insertions.
	cavity []CellID
	bnd    []boundaryFace
	faces  map[[2]VertexID]faceRef
}

// New returns an empty triangulation.
func New() *Triangulation {
	t := &Triangulation{
		verts: make([]vertex, numSuper),
		hint:  NoCell,
		faces: make(map[[2]VertexID]faceRef),
	}
	return t
}

// Insert adds points to the triangulation, attaching labels[i] to points[i].
// Points that coincide with an existing point are merged into it.
func (t *Triangulation) Insert(points []r3.Vec, labels []uint32) error {
	if len(points) != len(labels) {
		return fmt.Errorf("%w: %d points, %d labels", ErrLengthMismatch, len(points), len(labels))
	}
	if len(points) == 0 {
		return nil
	}
	for i, p := range points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z) ||
			math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) || math.IsInf(p.Z, 0) {
			return fmt.Errorf("delaunay: point %d is not finite: %v", i, p)
		}
	}
	for i := range points {
		t.verts = append(t.verts, vertex{p: points[i], label: labels[i], alive: true})
	}
	return t.rebuild()
}

// Remove deletes vertex v and triangulates the remaining vertices.
func (t *Triangulation) Remove(v VertexID) error {
	_, err := t.RemoveAll([]VertexID{v})
	return err
}

// RemoveAll deletes every vertex in vs in a single re-triangulation.
// Handles repeated in vs or already removed are ignored.
func (t *Triangulation) RemoveAll(vs []VertexID) (removed int, err error) {
	for _, v := range vs {
		if !t.IsVertex(v) {
			if int(v) >= numSuper && int(v) < len(t.verts) {
				continue // already removed.
			}
			return 0, fmt.Errorf("%w: %d", ErrBadVertex, v)
		}
	}
	for _, v := range vs {
		if t.verts[v].alive {
			t.verts[v].alive = false
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, t.rebuild()
}

// IsVertex reports whether v is a live finite vertex.
func (t *Triangulation) IsVertex(v VertexID) bool {
	return int(v) >= numSuper && int(v) < len(t.verts) && t.verts[v].alive
}

// Label returns the label attached to v on insertion.
func (t *Triangulation) Label(v VertexID) uint32 { return t.verts[v].label }

// Point returns the position of v.
func (t *Triangulation) Point(v VertexID) r3.Vec { return t.verts[v].p }

// CellVertices returns the four vertices of cell c.
func (t *Triangulation) CellVertices(c CellID) [4]VertexID { return t.cells[c].v }

// Tag returns the tag of cell c. Cells are created with tag 0.
func (t *Triangulation) Tag(c CellID) uint8 { return t.cells[c].tag }

// SetTag sets the tag of cell c.
func (t *Triangulation) SetTag(c CellID, tag uint8) { t.cells[c].tag = tag }

// NumVertices returns the number of live finite vertices.
func (t *Triangulation) NumVertices() (n int) {
	for i := numSuper; i < len(t.verts); i++ {
		if t.verts[i].alive {
			n++
		}
	}
	return n
}

// Vertices returns the handles of all live finite vertices in ascending order.
func (t *Triangulation) Vertices() []VertexID {
	vs := make([]VertexID, 0, len(t.verts)-numSuper)
	for i := numSuper; i < len(t.verts); i++ {
		if t.verts[i].alive {
			vs = append(vs, VertexID(i))
		}
	}
	return vs
}

func (t *Triangulation) isFinite(c *cell) bool {
	return c.alive && c.v[0] >= numSuper && c.v[1] >= numSuper &&
		c.v[2] >= numSuper && c.v[3] >= numSuper
}

// FiniteCells returns a snapshot of the handles of all cells not incident to
// the super-tetrahedron. The snapshot is invalidated by any mutation.
func (t *Triangulation) FiniteCells() []CellID {
	cs := make([]CellID, 0, t.live)
	for i := range t.cells {
		if t.isFinite(&t.cells[i]) {
			cs = append(cs, CellID(i))
		}
	}
	return cs
}

// NumFiniteCells returns the number of finite cells.
func (t *Triangulation) NumFiniteCells() (n int) {
	for i := range t.cells {
		if t.isFinite(&t.cells[i]) {
			n++
		}
	}
	return n
}

// cellEdges lists the six vertex index pairs of a tetrahedron.
var cellEdges = [6][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}

// FiniteEdges returns every edge between two finite vertices exactly once,
// lower handle first. Edges of cells incident to the super-tetrahedron are
// included when both endpoints are finite: they lie on the convex hull.
func (t *Triangulation) FiniteEdges() []Edge {
	seen := make(map[Edge]struct{}, 2*t.live)
	edges := make([]Edge, 0, 2*t.live)
	for i := range t.cells {
		c := &t.cells[i]
		if !c.alive {
			continue
		}
		for _, e := range cellEdges {
			a, b := c.v[e[0]], c.v[e[1]]
			if a < numSuper || b < numSuper {
				continue
			}
			if a > b {
				a, b = b, a
			}
			edge := Edge{a, b}
			if _, ok := seen[edge]; ok {
				continue
			}
			seen[edge] = struct{}{}
			edges = append(edges, edge)
		}
	}
	return edges
}

// NumFiniteEdges returns len(t.FiniteEdges()).
func (t *Triangulation) NumFiniteEdges() int { return len(t.FiniteEdges()) }

// Dimension returns the affine dimension of the live vertex set:
// -1 when empty, 0 for a single point, 1 collinear, 2 coplanar, 3 otherwise.
func (t *Triangulation) Dimension() int {
	vs := t.Vertices()
	if len(vs) == 0 {
		return -1
	}
	set := make(d3.Set, len(vs))
	for i, v := range vs {
		set[i] = t.verts[v].p
	}
	size := r3.Norm(set.Bounds().Size())
	if size == 0 {
		return 0
	}
	tol := 1e-12 * size
	p0 := set[0]
	// farthest point from p0 spans the first axis.
	p1, best := p0, 0.0
	for _, p := range set {
		if d := r3.Norm(r3.Sub(p, p0)); d > best {
			p1, best = p, d
		}
	}
	if best <= tol {
		return 0
	}
	axis := r3.Sub(p1, p0)
	p2, best := p0, 0.0
	for _, p := range set {
		if a := r3.Norm(r3.Cross(axis, r3.Sub(p, p0))); a > best {
			p2, best = p, a
		}
	}
	if best <= tol*r3.Norm(axis) {
		return 1
	}
	n := r3.Cross(axis, r3.Sub(p2, p0))
	best = 0
	for _, p := range set {
		best = math.Max(best, math.Abs(r3.Dot(n, r3.Sub(p, p0))))
	}
	if best <= tol*r3.Norm(n) {
		return 2
	}
	return 3
}
