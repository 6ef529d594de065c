package main

import (
	"github.com/spf13/cobra"

	"github.com/Faultbox/corridor/internal/engine/scene"
	"github.com/Faultbox/corridor/internal/logger"
	"github.com/Faultbox/corridor/internal/network"
)

var version = "0.3.0"

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "nettool",
		Short: "Generate and inspect transportation network files",
		Long: brand.Sprint("nettool") + " - headless companion to the corridor viewer\n" +
			subtle.Sprint("Generate synthetic networks and run them through the scene core"),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Init(logLevel, "")
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}
	root.SetVersionTemplate("nettool {{ .Version }}\n")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(
		generateCmd(),
		statsCmd(),
		batchesCmd(),
		pickCmd(),
	)
	return root
}

// loadScene reads a network file and maps it into a scene.
func loadScene(path string) (*network.Network, *scene.Scene, error) {
	n, err := network.Load(path)
	if err != nil {
		return nil, nil, err
	}
	s, err := scene.FromNetwork(n)
	if err != nil {
		return nil, nil, err
	}
	return n, s, nil
}
