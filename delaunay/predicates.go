package delaunay

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// orient returns a positive value if d lies below the plane through a, b and c,
// where below is the side from which a, b, c appear clockwise.
// Equivalently it is six times the signed volume of the tetrahedron abcd.
// Cells of a Triangulation are stored with orient(v0,v1,v2,v3) > 0.
func orient(a, b, c, d r3.Vec) float64 {
	ad := r3.Sub(a, d)
	bd := r3.Sub(b, d)
	cd := r3.Sub(c, d)
	return ad.X*(bd.Y*cd.Z-bd.Z*cd.Y) +
		bd.X*(cd.Y*ad.Z-cd.Z*ad.Y) +
		cd.X*(ad.Y*bd.Z-ad.Z*bd.Y)
}

// insphere returns a positive value if e lies inside the sphere through a, b, c, d,
// negative if outside and zero if the five points are cospherical.
// abcd must be positively oriented, otherwise the sign is reversed.
func insphere(a, b, c, d, e r3.Vec) float64 {
	det, _ := insphereWithPermanent(a, b, c, d, e)
	return det
}

// insphereWithPermanent also returns the permanent of the insphere determinant,
// i.e. the same expansion with every term replaced by its absolute value.
// It bounds the magnitude of the rounding error of det.
func insphereWithPermanent(a, b, c, d, e r3.Vec) (det, permanent float64) {
	ae := r3.Sub(a, e)
	be := r3.Sub(b, e)
	ce := r3.Sub(c, e)
	de := r3.Sub(d, e)

	ab := ae.X*be.Y - be.X*ae.Y
	bc := be.X*ce.Y - ce.X*be.Y
	cd := ce.X*de.Y - de.X*ce.Y
	da := de.X*ae.Y - ae.X*de.Y
	ac := ae.X*ce.Y - ce.X*ae.Y
	bd := be.X*de.Y - de.X*be.Y

	abc := ae.Z*bc - be.Z*ac + ce.Z*ab
	bcd := be.Z*cd - ce.Z*bd + de.Z*bc
	cda := ce.Z*da + de.Z*ac + ae.Z*cd
	dab := de.Z*ab + ae.Z*bd + be.Z*da

	alift := r3.Norm2(ae)
	blift := r3.Norm2(be)
	clift := r3.Norm2(ce)
	dlift := r3.Norm2(de)
	det = (dlift*abc - clift*dab) + (blift*cda - alift*bcd)

	abs := math.Abs
	pab := abs(ae.X*be.Y) + abs(be.X*ae.Y)
	pbc := abs(be.X*ce.Y) + abs(ce.X*be.Y)
	pcd := abs(ce.X*de.Y) + abs(de.X*ce.Y)
	pda := abs(de.X*ae.Y) + abs(ae.X*de.Y)
	pac := abs(ae.X*ce.Y) + abs(ce.X*ae.Y)
	pbd := abs(be.X*de.Y) + abs(de.X*be.Y)
	pabc := abs(ae.Z)*pbc + abs(be.Z)*pac + abs(ce.Z)*pab
	pbcd := abs(be.Z)*pcd + abs(ce.Z)*pbd + abs(de.Z)*pbc
	pcda := abs(ce.Z)*pda + abs(de.Z)*pac + abs(ae.Z)*pcd
	pdab := abs(de.Z)*pab + abs(ae.Z)*pbd + abs(be.Z)*pda
	permanent = dlift*pabc + clift*pdab + blift*pcda + alift*pbcd
	return det, permanent
}
