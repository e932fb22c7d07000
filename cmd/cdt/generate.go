package main

import (
	"fmt"
	"log"
	"os"

	"github.com/soypat/cdt"
	"github.com/soypat/cdt/internal/config"
	"github.com/soypat/cdt/render"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a foliated triangulation of nested spheres",
	Example: `  cdt generate --simplices 6400 --timeslices 16
  cdt generate -s 64000 -t 64 --stl leaf.stl --leaf 32 --png leaf.png`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.IntP("simplices", "s", 6400, "target number of simplices")
	f.IntP("timeslices", "t", 16, "number of timeslices")
	f.Uint64("seed", 1, "random seed of the point samplers")
	f.Int("workers", 1, "goroutines sampling timeslices")
	f.Int("max-fix-passes", cdt.DefaultMaxFixPasses, "bound on foliation repair passes")
	f.String("stl", "", "write the leaf selected by --leaf as binary STL")
	f.String("png", "", "write a PNG preview of the STL leaf")
	f.String("profile", "", "write a volume profile chart (png, svg or pdf)")
	f.Uint32("leaf", 1, "time label of the exported leaf")
	f.Int("width", 800, "preview width in pixels")
	f.Int("height", 600, "preview height in pixels")

	bind := map[string]string{
		"simplices":      "simplices",
		"timeslices":     "timeslices",
		"seed":           "seed",
		"workers":        "workers",
		"max_fix_passes": "max-fix-passes",
		"output.stl":     "stl",
		"output.png":     "png",
		"output.profile": "profile",
		"output.leaf":    "leaf",
		"output.width":   "width",
		"output.height":  "height",
	}
	for key, flag := range bind {
		_ = viper.BindPFlag(key, f.Lookup(flag))
	}
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := log.New(os.Stderr, "", log.LstdFlags)
	u, err := cdt.MakeS3(cfg.Simplices, cfg.Timeslices, cdt.Config{
		Seed:         cfg.Seed,
		Workers:      cfg.Workers,
		MaxFixPasses: cfg.MaxFixPasses,
		Verbose:      cfg.Verbose,
		Logger:       logger,
	})
	if err != nil {
		return err
	}
	if !u.Foliated {
		logger.Printf("foliation did not converge after %d passes, %d invalid cells remain", u.Passes, u.Invalid)
	}

	out := cfg.Output
	if out.STL != "" {
		if err = render.CreateSTL(out.STL, render.NewLeafRenderer(u, out.Leaf)); err != nil {
			return err
		}
		logger.Printf("wrote leaf %d to %s", out.Leaf, out.STL)
	}
	if out.PNG != "" {
		if err = render.SavePNG(out.STL, out.PNG, out.Width, out.Height, render.DefaultView); err != nil {
			return fmt.Errorf("rendering %s: %w", out.PNG, err)
		}
		logger.Printf("wrote preview to %s", out.PNG)
	}
	if out.Profile != "" {
		if err = render.PlotVolumeProfile(render.VolumeProfile(u), out.Profile); err != nil {
			return err
		}
		logger.Printf("wrote volume profile to %s", out.Profile)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "cells=%d (3,1)=%d (2,2)=%d (1,3)=%d timelike=%d spacelike=%d foliated=%t\n",
		u.Triangulation.NumFiniteCells(), len(u.ThreeOne), len(u.TwoTwo), len(u.OneThree),
		u.Timelike, u.Spacelike, u.Foliated)
	return nil
}
