package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Faultbox/corridor/internal/engine/camera"
	"github.com/Faultbox/corridor/internal/engine/scene"
	"github.com/Faultbox/corridor/pkg/math"
)

func pickCmd() *cobra.Command {
	var (
		x, y          float32
		width, height int
		dragTo        []float32
	)

	cmd := &cobra.Command{
		Use:   "pick <file>",
		Short: "Cast a pointer ray into a network scene, optionally dragging the hit",
		Long: "Frames the whole scene with the default orbit camera, hovers pixel (x, y)\n" +
			"and reports the node under it. With --drag the node is pressed, moved to the\n" +
			"second pixel and released, exactly as the viewer would.",
		Example: "  nettool pick city.json --x 400 --y 300 --drag 500,320",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(dragTo) != 0 && len(dragTo) != 2 {
				return fmt.Errorf("--drag takes two values, got %d", len(dragTo))
			}
			_, s, err := loadScene(args[0])
			if err != nil {
				return err
			}

			cam := camera.NewOrbitCamera(camera.DefaultSettings())
			cam.SetViewport(width, height)
			if box, ok := s.Bounds(); ok {
				cam.FitToBounds(box.Min, box.Max)
			}

			w := cmd.OutOrStdout()
			banner(w, "pick")

			s.PointerMoved(x, y, cam)
			id := s.Picking.Hovered
			if id == scene.NoNode {
				fmt.Fprintf(w, "  %s nothing at (%.0f, %.0f)\n", bad.Sprint("✗"), x, y)
				return nil
			}
			describe(w, s, id)

			if len(dragTo) == 2 {
				if !s.PointerPressed(x, y, cam) {
					fmt.Fprintf(w, "\n  %s press did not grab the node\n", bad.Sprint("✗"))
					return nil
				}
				s.PointerMoved(dragTo[0], dragTo[1], cam)
				s.PointerReleased()
				fmt.Fprintf(w, "\n  %s dragged to (%.0f, %.0f)\n", good.Sprint("✓"), dragTo[0], dragTo[1])
				describe(w, s, id)
			}
			return nil
		},
	}

	cmd.Flags().Float32Var(&x, "x", 0, "Pointer x in pixels")
	cmd.Flags().Float32Var(&y, "y", 0, "Pointer y in pixels")
	cmd.Flags().IntVar(&width, "width", 1280, "Viewport width")
	cmd.Flags().IntVar(&height, "height", 720, "Viewport height")
	cmd.Flags().Float32SliceVar(&dragTo, "drag", nil, "Drag the picked node to x,y")
	return cmd
}

func describe(w io.Writer, s *scene.Scene, id scene.NodeID) {
	n := s.Node(id)
	kind := "node"
	switch {
	case !n.IsRoot():
		kind = "layer"
	case n.Mesh == scene.NetworkCubeMesh:
		kind = "pillar"
	}
	pos := s.WorldPosition(id)
	field(w, "node", fmt.Sprintf("#%d (%s)", id, kind))
	field(w, "position", formatVec(pos))
	field(w, "edges", len(s.AttachedEdges(id)))
}

func formatVec(v math.Vec3) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}
