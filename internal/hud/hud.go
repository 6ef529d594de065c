// Package hud builds the per-frame status model and presents it.
//
// A Model is rebuilt from scratch every frame. Render is stateless: it
// writes the model to the window title and, when asked, to the debug log.
package hud

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/corridor/internal/engine/camera"
	"github.com/Faultbox/corridor/internal/engine/scene"
)

// FPSStats holds frame rates in frames per second.
type FPSStats struct {
	Current float32
	Avg1s   float32
	Avg5s   float32
}

// Model is everything the HUD shows for one frame.
type Model struct {
	Title     string
	Source    string // network file or "demo"
	Nodes     int
	Edges     int
	Vertices  int
	Materials int
	DrawCalls int
	FPS       FPSStats
	Camera    camera.DebugInfo
	Hovered   scene.NodeID
	State     scene.InteractionState
	Picking   string
}

// Build assembles a model from the scene and its collaborators.
func Build(title, source, picking string, s *scene.Scene, cam *camera.OrbitCamera, fps FPSStats, drawCalls int) Model {
	return Model{
		Title:     title,
		Source:    source,
		Nodes:     s.NodeCount(),
		Edges:     s.EdgeCount(),
		Vertices:  s.VertexCount(),
		Materials: len(s.Materials()),
		DrawCalls: drawCalls,
		FPS:       fps,
		Camera:    cam.Debug(),
		Hovered:   s.Picking.Hovered,
		State:     s.Picking.State(),
		Picking:   picking,
	}
}

// HoverText describes the hovered node.
func (m Model) HoverText() string {
	if m.Hovered == scene.NoNode {
		return "hover: none"
	}
	return fmt.Sprintf("hover: #%d", m.Hovered)
}

// TitleText is the one-line summary shown in the window title.
func (m Model) TitleText() string {
	return fmt.Sprintf("%s | %s | %d nodes | %.0f fps | %s | %s",
		m.Title, m.Source, m.Nodes, m.FPS.Avg1s, m.HoverText(), m.State)
}

// Fields is the model as structured log fields.
func (m Model) Fields() []zap.Field {
	c := m.Camera
	return []zap.Field{
		zap.String("source", m.Source),
		zap.Int("nodes", m.Nodes),
		zap.Int("edges", m.Edges),
		zap.Int("vertices", m.Vertices),
		zap.Int("materials", m.Materials),
		zap.Int("draw_calls", m.DrawCalls),
		zap.String("fps", fmt.Sprintf("%.1f (1s: %.1f, 5s: %.1f)", m.FPS.Current, m.FPS.Avg1s, m.FPS.Avg5s)),
		zap.String("camera", fmt.Sprintf("pos(%.2f, %.2f, %.2f) look(%.2f, %.2f, %.2f) yaw:%.1f pitch:%.1f dist:%.2f",
			c.Position.X, c.Position.Y, c.Position.Z, c.Target.X, c.Target.Y, c.Target.Z, c.YawDeg, c.PitchDeg, c.Distance)),
		zap.Int("hovered", int(m.Hovered)),
		zap.Stringer("state", m.State),
		zap.String("picking", m.Picking),
	}
}

// TitleSetter is the part of the window the HUD writes to.
type TitleSetter interface {
	SetTitle(title string)
}

// Render presents m. log may be nil.
func Render(m Model, w TitleSetter, log *zap.Logger) {
	w.SetTitle(m.TitleText())
	if log != nil {
		log.Debug("frame", m.Fields()...)
	}
}
