package render_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/soypat/cdt/render"
	"github.com/stretchr/testify/require"
)

func TestVolumeProfile(t *testing.T) {
	u := newTestUniverse(t)
	profile := render.VolumeProfile(u)
	require.Len(t, profile, 2)
	total := 0
	for i, n := range profile {
		if n == 0 {
			t.Errorf("timeslice %d has no vertices", i+1)
		}
		total += n
	}
	require.Equal(t, u.Triangulation.NumVertices(), total)

	path := filepath.Join(t.TempDir(), "profile.png")
	require.NoError(t, render.PlotVolumeProfile(profile, path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.NotZero(t, info.Size())

	require.Error(t, render.PlotVolumeProfile(nil, path))
}
