package delaunay

// delaunayTolerance is the fraction of the insphere permanent a facet may
// violate the empty circumsphere property by before it is reported.
// Nested sphere input is cospherical by construction so exact zeros are
// common and rounding decides their sign.
const delaunayTolerance = 1e-10

// IsCellValid reports whether c is a combinatorially sound cell: it is alive,
// references four distinct live vertices with positive orientation and its
// neighbor links are symmetric across shared faces.
func (t *Triangulation) IsCellValid(c CellID) bool {
	if c < 0 || int(c) >= len(t.cells) || !t.cells[c].alive {
		return false
	}
	cl := &t.cells[c]
	for i, v := range cl.v {
		if v < 0 || int(v) >= len(t.verts) || !t.verts[v].alive {
			return false
		}
		for _, w := range cl.v[:i] {
			if w == v {
				return false
			}
		}
	}
	if orient(t.verts[cl.v[0]].p, t.verts[cl.v[1]].p, t.verts[cl.v[2]].p, t.verts[cl.v[3]].p) <= 0 {
		return false
	}
	for i, n := range cl.n {
		if n == NoCell {
			// Only the hull of the super-tetrahedron has no neighbors.
			for j, v := range cl.v {
				if j != i && v >= numSuper {
					return false
				}
			}
			continue
		}
		if n < 0 || int(n) >= len(t.cells) || !t.cells[n].alive {
			return false
		}
		nb := &t.cells[n]
		j := nb.indexOf(c)
		if j < 0 || !sameFace(cl, i, nb, j) {
			return false
		}
	}
	return true
}

// sameFace reports whether the face of a opposite a.v[i] has the same
// vertices as the face of b opposite b.v[j].
func sameFace(a *cell, i int, b *cell, j int) bool {
	if a.v[i] == b.v[j] {
		return false
	}
	for k, v := range a.v {
		if k == i {
			continue
		}
		found := false
		for m, w := range b.v {
			if m != j && w == v {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// IsValid reports whether the triangulation is a sound Delaunay triangulation
// of its live vertices: every cell is valid, every live vertex belongs to a
// cell and no facet violates the empty circumsphere property beyond
// floating point tolerance.
func (t *Triangulation) IsValid() bool {
	nv := t.NumVertices()
	if nv == 0 {
		return t.live == 0
	}
	if t.live == 0 {
		return false
	}
	t.stamp++
	s := t.stamp
	for i := range t.cells {
		c := CellID(i)
		cl := &t.cells[i]
		if !cl.alive {
			continue
		}
		if !t.IsCellValid(c) {
			return false
		}
		for _, v := range cl.v {
			t.verts[v].stamp = s
		}
		a, b, cc, d := t.verts[cl.v[0]].p, t.verts[cl.v[1]].p, t.verts[cl.v[2]].p, t.verts[cl.v[3]].p
		for _, n := range cl.n {
			if n == NoCell || n < c {
				continue // each facet once.
			}
			nb := &t.cells[n]
			q := nb.v[nb.indexOf(c)]
			det, permanent := insphereWithPermanent(a, b, cc, d, t.verts[q].p)
			if det > delaunayTolerance*permanent {
				return false
			}
		}
	}
	for i := numSuper; i < len(t.verts); i++ {
		if t.verts[i].alive && t.verts[i].stamp != s {
			return false
		}
	}
	return true
}
