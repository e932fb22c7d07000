package cdt

import (
	"github.com/soypat/cdt/delaunay"
)

// SimplexType classifies a 3-simplex by how its four vertices split across
// the time boundary it straddles. Values are stored in the cell tag as the
// lower and upper vertex counts written as two decimal digits.
type SimplexType uint8

const (
	Unclassified SimplexType = 0
	// OneThree simplices have one vertex below and three on the upper timeslice.
	OneThree SimplexType = 13
	// TwoTwo simplices have two vertices on each timeslice.
	TwoTwo SimplexType = 22
	// ThreeOne simplices have three vertices below and one on the upper timeslice.
	ThreeOne SimplexType = 31
)

func (s SimplexType) String() string {
	switch s {
	case OneThree:
		return "(1,3)"
	case TwoTwo:
		return "(2,2)"
	case ThreeOne:
		return "(3,1)"
	}
	return "unclassified"
}

// CellType returns the classification tag of cell c, Unclassified if the cell
// has not been classified since the last mutation of t.
func CellType(t *delaunay.Triangulation, c delaunay.CellID) SimplexType {
	return SimplexType(t.Tag(c))
}

// simplexType counts the vertices sharing the maximal time label.
func simplexType(labels [4]uint32) SimplexType {
	max := labels[0]
	for _, l := range labels[1:] {
		if l > max {
			max = l
		}
	}
	top := 0
	for _, l := range labels {
		if l == max {
			top++
		}
	}
	switch top {
	case 3:
		return OneThree
	case 2:
		return TwoTwo
	}
	// A cell with all four labels equal has no lower vertex; it is grouped
	// with ThreeOne like the single-top case.
	return ThreeOne
}

// Simplices partitions the finite cells of a triangulation by SimplexType.
type Simplices struct {
	ThreeOne []delaunay.CellID
	TwoTwo   []delaunay.CellID
	OneThree []delaunay.CellID
}

// ClassifySimplices tags every finite cell of t with its SimplexType and
// returns the cells grouped by type.
func ClassifySimplices(t *delaunay.Triangulation) Simplices {
	var s Simplices
	s.classify(t)
	return s
}

// Reclassify discards the current groups and classifies t again. It must be
// called after any mutation of t since cell handles and tags do not survive it.
func (s *Simplices) Reclassify(t *delaunay.Triangulation) {
	s.ThreeOne = s.ThreeOne[:0]
	s.TwoTwo = s.TwoTwo[:0]
	s.OneThree = s.OneThree[:0]
	s.classify(t)
}

func (s *Simplices) classify(t *delaunay.Triangulation) {
	for _, c := range t.FiniteCells() {
		var labels [4]uint32
		for i, v := range t.CellVertices(c) {
			labels[i] = t.Label(v)
		}
		typ := simplexType(labels)
		t.SetTag(c, uint8(typ))
		switch typ {
		case OneThree:
			s.OneThree = append(s.OneThree, c)
		case TwoTwo:
			s.TwoTwo = append(s.TwoTwo, c)
		default:
			s.ThreeOne = append(s.ThreeOne, c)
		}
	}
}

// Len returns the number of classified cells.
func (s Simplices) Len() int {
	return len(s.ThreeOne) + len(s.TwoTwo) + len(s.OneThree)
}

// ClassifyEdges counts the finite edges of t whose endpoints lie on different
// timeslices (timelike) and on the same timeslice (spacelike).
func ClassifyEdges(t *delaunay.Triangulation) (timelike, spacelike int) {
	for _, e := range t.FiniteEdges() {
		if t.Label(e[0]) == t.Label(e[1]) {
			spacelike++
		} else {
			timelike++
		}
	}
	return timelike, spacelike
}
