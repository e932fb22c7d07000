package cdt

import (
	"errors"
	"fmt"
	"sync"

	"github.com/soypat/cdt/delaunay"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat/distuv"
)

// verticesPerSimplex is used to estimate the points needed per timeslice.
const verticesPerSimplex = 4

var (
	ErrNoTimeslices    = errors.New("cdt: need at least one timeslice")
	ErrTooFewSimplices = errors.New("cdt: fewer simplices than timeslices")
)

// SampleSphere returns n points drawn uniformly from the surface of the sphere
// of given radius centered at the origin. Every point is labeled with the
// radius truncated to an integer.
func SampleSphere(src rand.Source, radius float64, n int) ([]r3.Vec, []uint32) {
	points := make([]r3.Vec, n)
	labels := make([]uint32, n)
	sampleSphere(points, labels, src, radius)
	return points, labels
}

// sampleSphere fills dst and labels, which must have equal length.
// Directions are normalized standard normal triples, which are isotropic.
func sampleSphere(dst []r3.Vec, labels []uint32, src rand.Source, radius float64) {
	if radius <= 0 {
		panic("sphere radius must be positive")
	}
	if len(dst) != len(labels) {
		panic("bug: sphere sample buffers of different length")
	}
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	label := uint32(radius)
	for i := range dst {
		var d r3.Vec
		for {
			d = r3.Vec{X: normal.Rand(), Y: normal.Rand(), Z: normal.Rand()}
			if r3.Norm2(d) > 1e-30 {
				break
			}
		}
		dst[i] = r3.Scale(radius/r3.Norm(d), d)
		labels[i] = label
	}
}

// PointsPerTimeslice estimates how many points each timeslice needs for a
// universe of the given number of simplices. Each timeslice must get at
// least one simplex.
func PointsPerTimeslice(simplices, timeslices int) (int, error) {
	if timeslices < 1 {
		return 0, ErrNoTimeslices
	}
	perSlice := simplices / timeslices
	if perSlice < 1 {
		return 0, fmt.Errorf("%w: %d simplices over %d timeslices", ErrTooFewSimplices, simplices, timeslices)
	}
	return perSlice * verticesPerSimplex, nil
}

// MakeFoliatedPoints samples one sphere per timeslice with radii 1..timeslices
// and returns the points and their time labels as index aligned slices.
// Timeslice i occupies its own segment of the output so sampling may proceed
// on cfg.Workers goroutines with the same result as a sequential run.
func MakeFoliatedPoints(simplices, timeslices int, cfg Config) (points []r3.Vec, labels []uint32, err error) {
	perSlice, err := PointsPerTimeslice(simplices, timeslices)
	if err != nil {
		return nil, nil, err
	}
	total := perSlice * timeslices
	points = make([]r3.Vec, total)
	labels = make([]uint32, total)
	out := cfg.output()
	sample := func(i int) {
		radius := 1 + float64(i)
		start, end := i*perSlice, (i+1)*perSlice
		sampleSphere(points[start:end], labels[start:end], cfg.source(i), radius)
		if out != nil {
			out.Printf("Generating %d random points on the surface of a sphere in 3D of center 0 and radius %g.", perSlice, radius)
		}
	}
	if cfg.Workers < 2 {
		for i := 0; i < timeslices; i++ {
			sample(i)
		}
		return points, labels, nil
	}
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				sample(i)
			}
		}()
	}
	for i := 0; i < timeslices; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return points, labels, nil
}

// InsertLabeled inserts points into t in a single batch, attaching labels[i]
// to points[i] as the vertex time label.
func InsertLabeled(t *delaunay.Triangulation, points []r3.Vec, labels []uint32) error {
	if err := t.Insert(points, labels); err != nil {
		return fmt.Errorf("inserting %d labeled points: %w", len(points), err)
	}
	return nil
}
