package delaunay

import (
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	_ kdtree.Interface  = kdVertices{}
	_ kdtree.Comparable = kdVertex{}
)

// spatialOrder returns ids in the in-order sequence of a kd-tree built over
// their points, so consecutive insertions land close to each other and the
// location walk stays short. Vertices lying within merge tolerance of a vertex
// with a lower handle are marked dead and left out.
func (t *Triangulation) spatialOrder(ids []VertexID) []VertexID {
	pts := make(kdVertices, len(ids))
	for i, id := range ids {
		pts[i] = kdVertex{p: t.verts[id].p, id: id}
	}
	tree := kdtree.New(pts, false)
	order := make([]VertexID, 0, len(ids))
	tree.Do(func(c kdtree.Comparable, _ *kdtree.Bounding, _ int) bool {
		order = append(order, c.(kdVertex).id)
		return false
	})

	kept := order[:0]
	for _, id := range order {
		keeper := kdtree.NewDistKeeper(t.tol * t.tol)
		tree.NearestSet(keeper, kdVertex{p: t.verts[id].p, id: id})
		duplicate := false
		for _, got := range keeper.Heap {
			if got.Comparable == nil {
				continue
			}
			other := got.Comparable.(kdVertex).id
			if other < id && t.verts[other].alive {
				duplicate = true
				break
			}
		}
		if duplicate {
			t.verts[id].alive = false
			continue
		}
		kept = append(kept, id)
	}
	return kept
}

type kdVertex struct {
	p  r3.Vec
	id VertexID
}

// Compare returns the signed distance of a from the plane passing through
// b and perpendicular to the dimension d.
func (a kdVertex) Compare(b kdtree.Comparable, d kdtree.Dim) float64 {
	return kdComp(a, b.(kdVertex), d)
}

// Dims returns the number of dimensions described in the Comparable.
func (a kdVertex) Dims() int { return 3 }

// Distance returns the squared Euclidean distance between the receiver and
// the parameter.
func (a kdVertex) Distance(b kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(a.p, b.(kdVertex).p))
}

// c = a.dim - b.dim
func kdComp(a, b kdVertex, d kdtree.Dim) float64 {
	switch d {
	case 0:
		return a.p.X - b.p.X
	case 1:
		return a.p.Y - b.p.Y
	case 2:
		return a.p.Z - b.p.Z
	}
	panic("unreachable")
}

type kdVertices []kdVertex

func (k kdVertices) Index(i int) kdtree.Comparable { return k[i] }

// Len returns the length of the list.
func (k kdVertices) Len() int { return len(k) }

// Pivot partitions the list based on the dimension specified.
func (k kdVertices) Pivot(d kdtree.Dim) int {
	p := kdPlane{dim: d, vertices: k}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

// Slice returns a slice of the list using zero-based half
// open indexing equivalent to built-in slice indexing.
func (k kdVertices) Slice(start, end int) kdtree.Interface {
	return k[start:end]
}

type kdPlane struct {
	dim      kdtree.Dim
	vertices kdVertices
}

func (p kdPlane) Less(i, j int) bool {
	return kdComp(p.vertices[i], p.vertices[j], p.dim) < 0
}
func (p kdPlane) Swap(i, j int) {
	p.vertices[i], p.vertices[j] = p.vertices[j], p.vertices[i]
}
func (p kdPlane) Len() int {
	return len(p.vertices)
}
func (p kdPlane) Slice(start, end int) kdtree.SortSlicer {
	p.vertices = p.vertices[start:end]
	return p
}
