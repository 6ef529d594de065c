package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/corridor/internal/engine/scene"
)

func batchesCmd() *cobra.Command {
	var sortByMesh bool

	cmd := &cobra.Command{
		Use:   "batches <file>",
		Short: "Show the instanced draws a network scene produces",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := loadScene(args[0])
			if err != nil {
				return err
			}

			list := s.BuildRenderList(scene.BatchOptions{SortByMesh: sortByMesh})

			w := cmd.OutOrStdout()
			banner(w, "batches")
			var rows [][]string
			for _, b := range list.Batches {
				rows = append(rows, []string{
					s.Mesh(b.Mesh).Name,
					fmt.Sprint(b.First),
					fmt.Sprint(b.Count),
				})
			}
			table(w, []string{"MESH", "FIRST", "COUNT"}, rows)
			fmt.Fprintln(w)
			field(w, "instances", len(list.Instances))
			field(w, "draw calls", len(list.Batches))
			field(w, "sorted", sortByMesh)
			return nil
		},
	}
	cmd.Flags().BoolVar(&sortByMesh, "sort", true, "Group instances by mesh")
	return cmd
}
