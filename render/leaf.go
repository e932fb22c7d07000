package render

import (
	"io"
	"sort"

	"github.com/soypat/cdt"
	"github.com/soypat/cdt/delaunay"
	"gonum.org/v1/gonum/spatial/r3"
)

// leafRenderer streams the spacelike triangles of one timeslice.
type leafRenderer struct {
	buf triangle3Buffer
}

// NewLeafRenderer returns a Renderer of the spacelike leaf of u at the given
// time label. A finite cell with exactly three vertices on the leaf contributes
// the triangle they span. Triangles shared by two cells are emitted once and
// are wound so their normals point away from the origin.
func NewLeafRenderer(u *cdt.Universe, label uint32) Renderer {
	lr := &leafRenderer{}
	lr.buf.Write(LeafTriangles(u.Triangulation, label)...)
	return lr
}

// ReadTriangles implements Renderer.
func (lr *leafRenderer) ReadTriangles(dst []Triangle3) (int, error) {
	if lr.buf.Len() == 0 {
		return 0, io.EOF
	}
	return lr.buf.Read(dst), nil
}

// LeafTriangles returns the triangles of the spacelike leaf of t at label.
func LeafTriangles(t *delaunay.Triangulation, label uint32) []Triangle3 {
	var tris []Triangle3
	seen := make(map[[3]delaunay.VertexID]struct{})
	for _, c := range t.FiniteCells() {
		var face [3]delaunay.VertexID
		n := 0
		for _, v := range t.CellVertices(c) {
			if t.Label(v) != label {
				continue
			}
			if n == len(face) {
				n++
				break
			}
			face[n] = v
			n++
		}
		if n != 3 {
			continue
		}
		key := face
		sort.Slice(key[:], func(i, j int) bool { return key[i] < key[j] })
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		tri := Triangle3{t.Point(face[0]), t.Point(face[1]), t.Point(face[2])}
		if r3.Dot(tri.Normal(), tri.Centroid()) < 0 {
			tri[1], tri[2] = tri[2], tri[1]
		}
		tris = append(tris, tri)
	}
	return tris
}
