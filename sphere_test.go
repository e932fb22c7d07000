package cdt_test

import (
	"errors"
	"testing"

	"github.com/soypat/cdt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"
)

func TestSampleSphere(t *testing.T) {
	const n = 20000
	for _, radius := range []float64{1, 2.5, 64} {
		points, labels := cdt.SampleSphere(rand.NewSource(7), radius, n)
		require.Len(t, points, n)
		require.Len(t, labels, n)
		xs := make([]float64, n)
		for i, p := range points {
			require.InDelta(t, radius, r3.Norm(p), 1e-9*radius)
			require.Equal(t, uint32(radius), labels[i])
			xs[i] = p.X / radius
		}
		// Uniform on the sphere: each coordinate is uniform on [-1,1], mean 0 and variance 1/3.
		mean, variance := stat.MeanVariance(xs, nil)
		assert.InDelta(t, 0, mean, 0.02)
		assert.InDelta(t, 1./3., variance, 0.02)
	}
	assert.Panics(t, func() { cdt.SampleSphere(rand.NewSource(1), 0, 1) })
}

func TestPointsPerTimeslice(t *testing.T) {
	n, err := cdt.PointsPerTimeslice(64000, 64)
	require.NoError(t, err)
	assert.Equal(t, 4000, n)

	n, err = cdt.PointsPerTimeslice(7, 2)
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	_, err = cdt.PointsPerTimeslice(1, 5)
	assert.True(t, errors.Is(err, cdt.ErrTooFewSimplices))
	_, err = cdt.PointsPerTimeslice(10, 0)
	assert.True(t, errors.Is(err, cdt.ErrNoTimeslices))
}

func TestMakeFoliatedPoints(t *testing.T) {
	points, labels, err := cdt.MakeFoliatedPoints(60, 3, cdt.Config{Seed: 3})
	require.NoError(t, err)
	require.Len(t, points, 240)
	require.Len(t, labels, 240)
	for i := range points {
		want := uint32(i/80 + 1)
		require.Equal(t, want, labels[i])
		require.InDelta(t, float64(want), r3.Norm(points[i]), 1e-9)
	}

	// Sampling on several goroutines gives the same points.
	parallel, parallelLabels, err := cdt.MakeFoliatedPoints(60, 3, cdt.Config{Seed: 3, Workers: 4})
	require.NoError(t, err)
	assert.Equal(t, points, parallel)
	assert.Equal(t, labels, parallelLabels)

	other, _, err := cdt.MakeFoliatedPoints(60, 3, cdt.Config{Seed: 4})
	require.NoError(t, err)
	assert.NotEqual(t, points, other)

	_, _, err = cdt.MakeFoliatedPoints(1, 5, cdt.Config{})
	assert.True(t, errors.Is(err, cdt.ErrTooFewSimplices))
}
