package delaunay

import (
	"fmt"
	"math"

	"github.com/soypat/cdt/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// superScale is the distance of the super-tetrahedron vertices from the
	// center of the point set, in units of the point set's half diagonal.
	superScale = 1024
	// mergeTolerance is the distance, relative to the point set diagonal,
	// below which two points are considered the same point.
	mergeTolerance = 1e-12
	// maxReinsert bounds how many times a vertex dropped by an inconsistent
	// cavity is inserted again before it is merged away.
	maxReinsert = 3
)

type boundaryFace struct {
	v     [4]VertexID // vertices of the new cell.
	apex  int         // index of the inserted vertex in v.
	outer CellID      // cell across the face, outside the cavity.
	back  int         // index of the cavity cell in outer.n.
	cell  CellID      // new cell, set after creation.
}

type faceRef struct {
	c CellID
	i int
}

// rebuild triangulates all live vertices from scratch.
func (t *Triangulation) rebuild() error {
	t.cells = t.cells[:0]
	t.free = t.free[:0]
	t.live = 0
	t.hint = NoCell
	ids := t.Vertices()
	if len(ids) == 0 {
		return nil
	}
	p0 := t.verts[ids[0]].p
	box := d3.Box{Min: p0, Max: p0}
	for _, id := range ids[1:] {
		box = box.Include(t.verts[id].p)
	}
	t.tol = mergeTolerance * r3.Norm(box.Size())
	order := t.spatialOrder(ids)
	t.setSuper(box)
	t.newCell([4]VertexID{0, 1, 2, 3})

	attempts := make(map[VertexID]int)
	for len(order) > 0 {
		id := order[0]
		order = order[1:]
		orphans, err := t.insertVertex(id)
		if err != nil {
			return err
		}
		for _, o := range orphans {
			attempts[o]++
			if attempts[o] > maxReinsert {
				t.verts[o].alive = false
				continue
			}
			order = append(order, o)
		}
	}
	return nil
}

// setSuper places the super-tetrahedron vertices around box so that
// orient(s0, s1, s2, s3) > 0.
func (t *Triangulation) setSuper(box d3.Box) {
	center := box.Center()
	r := 0.5 * r3.Norm(box.Size())
	if r == 0 {
		r = 1
	}
	dirs := [numSuper]r3.Vec{{X: 1, Y: 1, Z: 1}, {X: 1, Y: -1, Z: -1}, {X: -1, Y: 1, Z: -1}, {X: -1, Y: -1, Z: 1}}
	for i, d := range dirs {
		t.verts[i] = vertex{p: r3.Add(center, r3.Scale(superScale*r, d)), alive: true}
	}
	if orient(t.verts[0].p, t.verts[1].p, t.verts[2].p, t.verts[3].p) < 0 {
		t.verts[2], t.verts[3] = t.verts[3], t.verts[2]
	}
}

func (t *Triangulation) newCell(v [4]VertexID) CellID {
	c := cell{v: v, n: [4]CellID{NoCell, NoCell, NoCell, NoCell}, alive: true}
	t.live++
	if n := len(t.free); n > 0 {
		id := t.free[n-1]
		t.free = t.free[:n-1]
		t.cells[id] = c
		return id
	}
	t.cells = append(t.cells, c)
	return CellID(len(t.cells) - 1)
}

func (t *Triangulation) killCell(c CellID) {
	t.cells[c].alive = false
	t.free = append(t.free, c)
	t.live--
}

func (c *cell) indexOf(n CellID) int {
	for i := range c.n {
		if c.n[i] == n {
			return i
		}
	}
	return -1
}

// orientWith returns the orientation of cell c with its i'th vertex replaced by p.
// It is positive when p lies on the same side of face i as the replaced vertex.
func (t *Triangulation) orientWith(c CellID, i int, p r3.Vec) float64 {
	var pts [4]r3.Vec
	for j, v := range t.cells[c].v {
		pts[j] = t.verts[v].p
	}
	pts[i] = p
	return orient(pts[0], pts[1], pts[2], pts[3])
}

func (t *Triangulation) inCircumsphere(c CellID, p r3.Vec) bool {
	v := t.cells[c].v
	return insphere(t.verts[v[0]].p, t.verts[v[1]].p, t.verts[v[2]].p, t.verts[v[3]].p, p) > 0
}

// locate returns a cell containing p by walking from the last created cell.
func (t *Triangulation) locate(p r3.Vec) CellID {
	c := t.hint
	if c == NoCell || !t.cells[c].alive {
		c = t.anyCell()
	}
	maxSteps := len(t.cells) + 16
	for step := 0; step < maxSteps; step++ {
		next := NoCell
		for k := 0; k < 4; k++ {
			i := (k + step) & 3 // rotate the first face tested to break walk cycles.
			n := t.cells[c].n[i]
			if n != NoCell && t.orientWith(c, i, p) < 0 {
				next = n
				break
			}
		}
		if next == NoCell {
			return c
		}
		c = next
	}
	return t.locateBrute(p)
}

func (t *Triangulation) anyCell() CellID {
	for i := range t.cells {
		if t.cells[i].alive {
			return CellID(i)
		}
	}
	panic("bug: triangulation has no live cells")
}

// locateBrute returns the cell for which p is deepest inside.
func (t *Triangulation) locateBrute(p r3.Vec) CellID {
	best, bestDepth := NoCell, math.Inf(-1)
	for i := range t.cells {
		if !t.cells[i].alive {
			continue
		}
		depth := math.Inf(1)
		for j := 0; j < 4; j++ {
			depth = math.Min(depth, t.orientWith(CellID(i), j, p))
		}
		if depth > bestDepth {
			best, bestDepth = CellID(i), depth
		}
	}
	return best
}

// insertVertex adds the live vertex id with Bowyer-Watson insertion.
// It returns vertices which lost all their cells and must be inserted again.
func (t *Triangulation) insertVertex(id VertexID) (orphans []VertexID, err error) {
	p := t.verts[id].p
	c0 := t.locate(p)
	for _, v := range t.cells[c0].v {
		if r3.Norm(r3.Sub(t.verts[v].p, p)) <= t.tol {
			t.verts[id].alive = false // merged into v.
			return nil, nil
		}
	}

	t.stamp++
	s := t.stamp
	cav := append(t.cavity[:0], c0)
	t.cells[c0].stamp = s
	for k := 0; k < len(cav); k++ {
		for i := 0; i < 4; i++ {
			n := t.cells[cav[k]].n[i]
			if n == NoCell || t.cells[n].stamp == s {
				continue
			}
			if t.inCircumsphere(n, p) {
				t.cells[n].stamp = s
				cav = append(cav, n)
			}
		}
	}
	// The cavity must be star-shaped from p: every boundary face must see p
	// strictly on its inner side. Rounding on cospherical points can break
	// this, in which case the cell behind the offending face joins the cavity.
	for k := 0; k < len(cav); k++ {
		c := cav[k]
		for i := 0; i < 4; i++ {
			n := t.cells[c].n[i]
			if n != NoCell && t.cells[n].stamp == s {
				continue
			}
			if t.orientWith(c, i, p) > 0 {
				continue
			}
			if n == NoCell {
				return nil, fmt.Errorf("delaunay: point %v outside super-tetrahedron", p)
			}
			t.cells[n].stamp = s
			cav = append(cav, n)
		}
	}

	bnd := t.bnd[:0]
	for _, c := range cav {
		cl := &t.cells[c]
		for i := 0; i < 4; i++ {
			n := cl.n[i]
			if n != NoCell && t.cells[n].stamp == s {
				continue
			}
			f := boundaryFace{v: cl.v, apex: i, outer: n, back: -1}
			f.v[i] = id
			if n != NoCell {
				f.back = t.cells[n].indexOf(c)
				if f.back < 0 {
					return nil, fmt.Errorf("delaunay: asymmetric neighbors %d and %d", c, n)
				}
			}
			bnd = append(bnd, f)
		}
	}

	// Vertices of the cavity that are not on its boundary would vanish.
	t.stamp++
	onBoundary := t.stamp
	t.verts[id].stamp = onBoundary
	for _, f := range bnd {
		for _, v := range f.v {
			t.verts[v].stamp = onBoundary
		}
	}
	for _, c := range cav {
		for _, v := range t.cells[c].v {
			if t.verts[v].stamp != onBoundary {
				if v < numSuper {
					return nil, fmt.Errorf("delaunay: cavity of vertex %d swallowed the super-tetrahedron", id)
				}
				t.verts[v].stamp = onBoundary
				orphans = append(orphans, v)
			}
		}
	}

	for _, c := range cav {
		t.killCell(c)
	}
	for k := range bnd {
		f := &bnd[k]
		f.cell = t.newCell(f.v)
		t.cells[f.cell].n[f.apex] = f.outer
		if f.outer != NoCell {
			t.cells[f.outer].n[f.back] = f.cell
		}
	}
	// Glue the new cells to each other. Two new cells share a face when they
	// share the inserted vertex and the two other vertices of that face.
	for _, f := range bnd {
		for j := 0; j < 4; j++ {
			if j == f.apex {
				continue
			}
			var key [2]VertexID
			k := 0
			for m := 0; m < 4; m++ {
				if m != j && m != f.apex {
					key[k] = f.v[m]
					k++
				}
			}
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}
			if ref, ok := t.faces[key]; ok {
				t.cells[f.cell].n[j] = ref.c
				t.cells[ref.c].n[ref.i] = f.cell
				delete(t.faces, key)
			} else {
				t.faces[key] = faceRef{c: f.cell, i: j}
			}
		}
	}
	if len(t.faces) != 0 {
		for key := range t.faces {
			delete(t.faces, key)
		}
		return nil, fmt.Errorf("delaunay: cavity boundary of vertex %d is not closed", id)
	}
	t.hint = bnd[len(bnd)-1].cell
	t.cavity = cav
	t.bnd = bnd
	return orphans, nil
}
