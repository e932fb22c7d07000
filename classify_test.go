package cdt

import (
	"testing"

	"github.com/soypat/cdt/delaunay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSimplexType(t *testing.T) {
	tests := []struct {
		labels [4]uint32
		want   SimplexType
	}{
		{[4]uint32{1, 2, 2, 2}, OneThree},
		{[4]uint32{2, 1, 2, 2}, OneThree},
		{[4]uint32{1, 1, 2, 2}, TwoTwo},
		{[4]uint32{2, 1, 1, 2}, TwoTwo},
		{[4]uint32{1, 1, 1, 2}, ThreeOne},
		{[4]uint32{5, 4, 4, 4}, ThreeOne},
		{[4]uint32{3, 3, 3, 3}, ThreeOne},
	}
	for _, tt := range tests {
		if got := simplexType(tt.labels); got != tt.want {
			t.Errorf("simplexType(%v) = %v, want %v", tt.labels, got, tt.want)
		}
	}
	assert.Equal(t, "(3,1)", ThreeOne.String())
	assert.Equal(t, "(2,2)", TwoTwo.String())
	assert.Equal(t, "(1,3)", OneThree.String())
	assert.Equal(t, "unclassified", Unclassified.String())
	assert.EqualValues(t, 31, ThreeOne)
	assert.EqualValues(t, 22, TwoTwo)
	assert.EqualValues(t, 13, OneThree)
}

var tetra = []r3.Vec{
	{X: 1, Y: 1, Z: 1},
	{X: 1, Y: -1, Z: -1},
	{X: -1, Y: 1, Z: -1},
	{X: -1, Y: -1, Z: 1},
}

func labeledTetra(t *testing.T, labels ...uint32) *delaunay.Triangulation {
	t.Helper()
	tri := delaunay.New()
	require.NoError(t, InsertLabeled(tri, tetra, labels))
	require.Equal(t, 1, tri.NumFiniteCells())
	return tri
}

func TestClassifySimplices(t *testing.T) {
	tests := []struct {
		labels []uint32
		want   SimplexType
	}{
		{[]uint32{1, 2, 2, 2}, OneThree},
		{[]uint32{1, 2, 1, 2}, TwoTwo},
		{[]uint32{2, 1, 1, 1}, ThreeOne},
	}
	for _, tt := range tests {
		tri := labeledTetra(t, tt.labels...)
		s := ClassifySimplices(tri)
		require.Equal(t, 1, s.Len())
		c := tri.FiniteCells()[0]
		assert.Equal(t, tt.want, CellType(tri, c))
		switch tt.want {
		case OneThree:
			assert.Equal(t, []delaunay.CellID{c}, s.OneThree)
		case TwoTwo:
			assert.Equal(t, []delaunay.CellID{c}, s.TwoTwo)
		case ThreeOne:
			assert.Equal(t, []delaunay.CellID{c}, s.ThreeOne)
		}

		// Reclassify after a mutation drops stale handles.
		_, err := tri.RemoveAll(tri.Vertices()[:1])
		require.NoError(t, err)
		assert.Equal(t, Unclassified, firstCellType(tri))
		s.Reclassify(tri)
		assert.Zero(t, s.Len())
	}
}

// firstCellType returns the type of the first finite cell of tri or
// Unclassified if there is none.
func firstCellType(tri *delaunay.Triangulation) SimplexType {
	cells := tri.FiniteCells()
	if len(cells) == 0 {
		return Unclassified
	}
	return CellType(tri, cells[0])
}

func TestClassifyEdges(t *testing.T) {
	tri := labeledTetra(t, 1, 1, 2, 2)
	timelike, spacelike := ClassifyEdges(tri)
	assert.Equal(t, 4, timelike)
	assert.Equal(t, 2, spacelike)

	tri = labeledTetra(t, 1, 2, 2, 2)
	timelike, spacelike = ClassifyEdges(tri)
	assert.Equal(t, 3, timelike)
	assert.Equal(t, 3, spacelike)
}

func TestCheckAndFixTimeslices(t *testing.T) {
	tri := labeledTetra(t, 1, 1, 2, 2)
	ok, valid, invalid := CheckTimeslices(tri, nil)
	assert.True(t, ok)
	assert.Equal(t, 1, valid)
	assert.Zero(t, invalid)
	removed, err := FixTimeslices(tri, nil)
	require.NoError(t, err)
	assert.Zero(t, removed)

	// Labels spanning two timeslices lose the vertex with the highest label.
	tri = labeledTetra(t, 1, 1, 3, 1)
	top := tri.Vertices()[2]
	ok, valid, invalid = CheckTimeslices(tri, nil)
	assert.False(t, ok)
	assert.Zero(t, valid)
	assert.Equal(t, 1, invalid)
	removed, err = FixTimeslices(tri, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.False(t, tri.IsVertex(top))
	assert.Equal(t, 3, tri.NumVertices())

	// Equal labels are invalid too. The cell's first vertex is removed.
	tri = labeledTetra(t, 4, 4, 4, 4)
	first := tri.CellVertices(tri.FiniteCells()[0])[0]
	ok, _, _ = CheckTimeslices(tri, nil)
	assert.False(t, ok)
	removed, err = FixTimeslices(tri, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.False(t, tri.IsVertex(first))
}
