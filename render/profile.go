package render

import (
	"errors"
	"fmt"

	"github.com/soypat/cdt"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// VolumeProfile returns the number of vertices on each timeslice of u,
// innermost first.
func VolumeProfile(u *cdt.Universe) []int {
	return u.VolumeProfile()
}

// PlotVolumeProfile saves a bar chart of profile to path. The image format
// is chosen by the extension of path, as supported by gonum/plot.
func PlotVolumeProfile(profile []int, path string) error {
	if len(profile) == 0 {
		return errors.New("render: empty volume profile")
	}
	values := make(plotter.Values, len(profile))
	names := make([]string, len(profile))
	for i, n := range profile {
		values[i] = float64(n)
		names[i] = fmt.Sprint(i + 1)
	}
	p := plot.New()
	p.Title.Text = "Volume profile"
	p.X.Label.Text = "Timeslice"
	p.Y.Label.Text = "Vertices"
	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return err
	}
	p.Add(bars)
	p.NominalX(names...)
	if err = p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving volume profile: %w", err)
	}
	return nil
}
