package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dixieflatline76/Carver/config"
	"github.com/dixieflatline76/Carver/pkg/carver"
	"github.com/dixieflatline76/Carver/pkg/energy"
	"github.com/dixieflatline76/Carver/pkg/face"
	"github.com/dixieflatline76/Carver/util"
	"github.com/dixieflatline76/Carver/util/log"
)

// carveFlags are shared by every command that runs the carver.
type carveFlags struct {
	columns   int
	rows      int
	size      string
	order     string
	energy    string
	recompute string
	faces     bool
	cascade   string
}

func (f *carveFlags) register(cmd *cobra.Command, cfg *config.Config) {
	fs := cmd.Flags()
	fs.IntVar(&f.columns, "cols", 0, "number of columns (vertical seams) to remove")
	fs.IntVar(&f.rows, "rows", 0, "number of rows (horizontal seams) to remove")
	fs.StringVar(&f.size, "size", "", "target size WIDTHxHEIGHT (overrides --cols and --rows)")
	fs.StringVar(&f.order, "order", cfg.Order, "seam order: vertical-first, horizontal-first or alternate")
	fs.StringVar(&f.energy, "energy", cfg.Energy, fmt.Sprintf("energy function %v", energy.Names()))
	fs.StringVar(&f.recompute, "recompute", cfg.Recompute, "energy update after each seam: local or full")
	fs.BoolVar(&f.faces, "faces", cfg.FaceProtect, "keep seams away from detected faces")
	fs.StringVar(&f.cascade, "cascade", cfg.CascadePath, "path to the pigo facefinder cascade")
}

// options resolves the flags into carver options.
func (f *carveFlags) options(cfg *config.Config) (carver.Options, error) {
	merged := *cfg
	merged.Order = f.order
	merged.Energy = f.energy
	merged.Recompute = f.recompute

	opts, err := carver.FromConfig(&merged)
	if err != nil {
		return carver.Options{}, err
	}

	if f.faces {
		if f.cascade == "" {
			return carver.Options{}, fmt.Errorf("--faces needs --cascade or cascade_path in %s", config.GetFilename())
		}
		d, err := face.LoadDetector(f.cascade, face.DefaultTuning())
		if err != nil {
			return carver.Options{}, err
		}
		opts.Protector = d
	}
	return opts, nil
}

// target returns the seams to remove, or the target size when --size is set.
func (f *carveFlags) target() (columns, rows, width, height int, err error) {
	if f.size != "" {
		width, height, err = util.ParseSize(f.size)
		return 0, 0, width, height, err
	}
	return f.columns, f.rows, 0, 0, nil
}

func newRootCmd() *cobra.Command {
	cfg := config.GetConfig()
	var quiet bool

	root := &cobra.Command{
		Use:           "carver",
		Short:         "Content-aware image reduction by seam carving",
		Version:       config.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetDebug(!quiet)
		},
	}
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress debug output")

	root.AddCommand(
		newCarveCmd(cfg),
		newSeamsCmd(cfg),
		newEnergyCmd(cfg),
		newBatchCmd(cfg),
		newConfigCmd(cfg),
	)
	return root
}
