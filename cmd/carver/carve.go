package main

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/spf13/cobra"

	"github.com/dixieflatline76/Carver/config"
	"github.com/dixieflatline76/Carver/pkg/carver"
	"github.com/dixieflatline76/Carver/pkg/energy"
	"github.com/dixieflatline76/Carver/pkg/loader"
	"github.com/dixieflatline76/Carver/pkg/render"
	"github.com/dixieflatline76/Carver/util/log"
)

func newCarveCmd(cfg *config.Config) *cobra.Command {
	var flags carveFlags
	var output string

	cmd := &cobra.Command{
		Use:   "carve INPUT",
		Short: "Remove seams from an image and save the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cfg)
			if err != nil {
				return err
			}
			opts.Progress = func(p carver.Progress) {
				log.Debugf("Removed %d/%d seams, now %dx%d", p.Removed, p.Total, p.Width, p.Height)
			}

			c, err := runCarver(cmd.Context(), args[0], &flags, opts)
			if c == nil {
				return err
			}
			if err != nil && !errors.Is(err, carver.ErrAborted) && !errors.Is(err, context.Canceled) {
				return err
			}
			if output == "" {
				output = loader.OutputName(args[0], c.Width(), c.Height())
			}
			if saveErr := loader.Save(c.Image(), output, cfg.JPEGQuality); saveErr != nil {
				return saveErr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %dx%d\n", output, c.Width(), c.Height())
			return err
		},
	}
	flags.register(cmd, cfg)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <name>-<w>x<h>.png)")
	return cmd
}

func newSeamsCmd(cfg *config.Config) *cobra.Command {
	var flags carveFlags
	var output string

	cmd := &cobra.Command{
		Use:   "seams INPUT",
		Short: "Draw the seams that carving would remove on the original image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cfg)
			if err != nil {
				return err
			}
			opts.TrackSeams = true

			c, err := runCarver(cmd.Context(), args[0], &flags, opts)
			if err != nil {
				return err
			}

			src, err := loader.Open(args[0])
			if err != nil {
				return err
			}
			label := fmt.Sprintf("%d seams", len(c.RemovedSeams()))
			out := render.Seams(src, c.RemovedSeams(), label)
			if regions := c.ProtectedRegions(); len(regions) > 0 {
				out = render.Regions(out, regions, image.White)
			}
			if output == "" {
				output = "seams-" + loader.OutputName(args[0], c.Width(), c.Height())
			}
			if err := loader.Save(out, output, cfg.JPEGQuality); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", output, label)
			return nil
		},
	}
	flags.register(cmd, cfg)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default seams-<name>-<w>x<h>.png)")
	return cmd
}

func newEnergyCmd(cfg *config.Config) *cobra.Command {
	var name, output string

	cmd := &cobra.Command{
		Use:   "energy INPUT",
		Short: "Save the energy map of an image as a greyscale picture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fn, err := energy.Lookup(name)
			if err != nil {
				return err
			}
			img, err := loader.Open(args[0])
			if err != nil {
				return err
			}
			c := carver.New(img, carver.Options{Energy: fn})
			if output == "" {
				output = "energy-" + loader.OutputName(args[0], c.Width(), c.Height())
			}
			if err := loader.Save(render.Energy(c.Energy()), output, cfg.JPEGQuality); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "energy", cfg.Energy, fmt.Sprintf("energy function %v", energy.Names()))
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default energy-<name>-<w>x<h>.png)")
	return cmd
}

// runCarver loads input and carves it per flags. The carver is returned
// whenever the image loaded, so callers can keep partial progress.
func runCarver(ctx context.Context, input string, flags *carveFlags, opts carver.Options) (*carver.Carver, error) {
	columns, rows, width, height, err := flags.target()
	if err != nil {
		return nil, err
	}

	img, err := loader.Open(input)
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded %s (%dx%d)", input, img.Bounds().Dx(), img.Bounds().Dy())

	c := carver.New(img, opts)
	if width > 0 {
		_, err = c.Resize(ctx, width, height)
	} else {
		_, err = c.Carve(ctx, columns, rows)
	}
	if errors.Is(err, carver.ErrInvalidTarget) {
		return nil, err
	}
	return c, err
}
