package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/corridor/internal/network"
)

func generateCmd() *cobra.Command {
	defaults := network.DefaultGenerateOptions()
	var (
		points int
		modes  []string
		seed   uint64
		output string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic multi-mode network",
		Long: "Generates a jittered grid of points and derives one graph per mode by\n" +
			"dropping a share of nodes and edges. The output format follows the file extension.",
		Example: "  nettool generate -o city.json --points 64 --modes Bike,Walk --seed 7",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := network.GenerateOptions{Points: points, Seed: seed}
			for _, m := range modes {
				mode := network.TransportMode(m)
				if !mode.Valid() {
					return fmt.Errorf("%w: %q", network.ErrUnknownMode, m)
				}
				opts.Modes = append(opts.Modes, mode)
			}
			if opts.Points < 2 {
				return fmt.Errorf("--points must be at least 2, got %d", opts.Points)
			}

			n := network.Generate(opts)
			if err := n.SaveTo(output); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			banner(w, "generate")
			printStats(w, n)
			fmt.Fprintf(w, "\n  %s wrote %s\n", good.Sprint("✓"), output)
			return nil
		},
	}

	var defaultModes []string
	for _, m := range defaults.Modes {
		defaultModes = append(defaultModes, string(m))
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (.json, .yaml, .yml, .toml)")
	cmd.Flags().IntVar(&points, "points", defaults.Points, "Number of grid points")
	cmd.Flags().StringSliceVar(&modes, "modes", defaultModes, "Transport modes to generate")
	cmd.Flags().Uint64Var(&seed, "seed", defaults.Seed, "Random seed; equal seeds give equal networks")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
