package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dixieflatline76/Carver/config"
	"github.com/dixieflatline76/Carver/pkg/batch"
)

func newBatchCmd(cfg *config.Config) *cobra.Command {
	var flags carveFlags
	var workers int

	cmd := &cobra.Command{
		Use:   "batch INPUT_DIR OUTPUT_DIR",
		Short: "Carve every image below a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cfg)
			if err != nil {
				return err
			}
			columns, rows, width, height, err := flags.target()
			if err != nil {
				return err
			}

			paths, err := batch.Scan(args[0])
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no images found in %s", args[0])
			}
			if err := os.MkdirAll(args[1], 0755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}

			jobs := batch.NewJobs(paths, args[1], columns, rows)
			for i := range jobs {
				jobs[i].Width, jobs[i].Height = width, height
			}

			results := batch.NewPipeline(opts, cfg.JPEGQuality).Run(cmd.Context(), workers, jobs)
			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Job.Src, r.Err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%dx%d)\n", r.Job.Src, r.Output, r.Width, r.Height)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d image(s) failed", failed, len(results))
			}
			return nil
		},
	}
	flags.register(cmd, cfg)
	cmd.Flags().IntVarP(&workers, "workers", "w", cfg.Workers, "images carved in parallel")
	return cmd
}
