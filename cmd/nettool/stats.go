package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Faultbox/corridor/internal/network"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <file>",
		Short: "Summarise a network file and the scene built from it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, s, err := loadScene(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			banner(w, "stats")
			printStats(w, n)
			fmt.Fprintln(w)
			field(w, "scene nodes", s.NodeCount())
			field(w, "scene edges", s.EdgeCount())
			field(w, "vertices", s.VertexCount())
			field(w, "materials", len(s.Materials()))
			return nil
		},
	}
}

func printStats(w io.Writer, n *network.Network) {
	var rows [][]string
	for _, st := range n.Stats() {
		rows = append(rows, []string{
			info.Sprint(string(st.Mode)),
			fmt.Sprint(st.Nodes),
			fmt.Sprint(st.Edges),
			fmt.Sprintf("%.2f", st.TotalLength),
		})
	}
	table(w, []string{"MODE", "NODES", "EDGES", "LENGTH"}, rows)
}
