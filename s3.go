// Package cdt builds foliated 3D triangulations for Causal Dynamical
// Triangulations. Points are sampled on nested spheres, one per timeslice,
// and triangulated; the triangulation is then repaired until every cell spans
// exactly one timeslice and its cells and edges are classified by how they
// straddle the foliation.
package cdt

import (
	"fmt"

	"github.com/soypat/cdt/delaunay"
)

// Universe is a foliated triangulation of nested 2-spheres.
type Universe struct {
	Triangulation *delaunay.Triangulation
	Simplices
	// Timeslices is the number of timeslices requested.
	Timeslices int
	// Foliated reports whether every finite cell spans exactly one timeslice.
	// It may be false when repair did not converge within the pass bound;
	// callers must check it.
	Foliated bool
	// Passes is the number of repair passes run.
	Passes int
	// Valid and Invalid count the finite cells by foliation validity.
	Valid, Invalid int
	// Timelike and Spacelike count finite edges.
	Timelike, Spacelike int
}

// MakeS3 generates a foliated triangulation with approximately the given number
// of simplices spread over the given number of timeslices.
//
// Points are sampled on spheres of radius 1..timeslices, inserted in one batch
// and the foliation is repaired for at most cfg.MaxFixPasses passes. A
// foliation that did not converge is not an error: the universe is returned
// with Foliated set to false.
func MakeS3(simplices, timeslices int, cfg Config) (*Universe, error) {
	l := cfg.logger()
	out := cfg.output()
	l.Println("Generating universe ...")
	points, labels, err := MakeFoliatedPoints(simplices, timeslices, cfg)
	if err != nil {
		return nil, err
	}
	t := delaunay.New()
	if err = InsertLabeled(t, points, labels); err != nil {
		return nil, err
	}

	u := &Universe{Triangulation: t, Timeslices: timeslices}
	maxPasses := cfg.maxFixPasses()
	ok, valid, invalid := CheckTimeslices(t, out)
	for !ok && u.Passes < maxPasses {
		u.Passes++
		l.Printf("Pass #%d: %d invalid and %d valid cells (%.3g invalid ratio)", u.Passes, invalid, valid, ratio(invalid, valid))
		removed, err := FixTimeslices(t, out)
		if err != nil {
			return nil, fmt.Errorf("pass %d: %w", u.Passes, err)
		}
		if removed == 0 {
			// Only unsound cells are left and there is no repair defined for them.
			break
		}
		ok, valid, invalid = CheckTimeslices(t, out)
	}
	u.Foliated, u.Valid, u.Invalid = ok, valid, invalid
	u.Simplices = ClassifySimplices(t)
	u.Timelike, u.Spacelike = ClassifyEdges(t)

	l.Printf("Valid foliation: %t", u.Foliated)
	l.Printf("Delaunay triangulation has %d cells.", t.NumFiniteCells())
	l.Printf("There are %d (3,1) simplices and %d (2,2) simplices and %d (1,3) simplices.",
		len(u.ThreeOne), len(u.TwoTwo), len(u.OneThree))
	l.Printf("There are %d timelike edges and %d spacelike edges.", u.Timelike, u.Spacelike)
	if out != nil {
		for _, v := range t.Vertices() {
			out.Printf("Point %v has timeslice %d", t.Point(v), t.Label(v))
		}
	}
	if !t.IsValid() {
		panic("cdt: generated triangulation is not Delaunay")
	}
	return u, nil
}

func ratio(a, b int) float64 {
	if b == 0 {
		return float64(a)
	}
	return float64(a) / float64(b)
}

// Timeslice returns the vertices of u labeled with timeslice label.
func (u *Universe) Timeslice(label uint32) []delaunay.VertexID {
	var vs []delaunay.VertexID
	for _, v := range u.Triangulation.Vertices() {
		if u.Triangulation.Label(v) == label {
			vs = append(vs, v)
		}
	}
	return vs
}

// VolumeProfile returns the number of vertices on each timeslice. Index i
// holds the count for label i+1, the label of the innermost sphere being 1.
func (u *Universe) VolumeProfile() []int {
	profile := make([]int, u.Timeslices)
	for _, v := range u.Triangulation.Vertices() {
		label := int(u.Triangulation.Label(v))
		if label >= 1 && label <= len(profile) {
			profile[label-1]++
		}
	}
	return profile
}

// Reclassify classifies the universe's cells and edges again after the
// triangulation has been mutated.
func (u *Universe) Reclassify() {
	u.Simplices.Reclassify(u.Triangulation)
	u.Timelike, u.Spacelike = ClassifyEdges(u.Triangulation)
	u.Foliated, u.Valid, u.Invalid = CheckTimeslices(u.Triangulation, nil)
}
