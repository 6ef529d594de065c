package scene

import (
	"github.com/Faultbox/corridor/internal/engine/picking"
	"github.com/Faultbox/corridor/pkg/math"
)

// RayCaster turns pointer coordinates into a world-space ray.
type RayCaster interface {
	ScreenToRay(x, y float32) picking.Ray
}

// InteractionState is the pointer interaction mode.
type InteractionState int

const (
	StateIdle InteractionState = iota
	StateHovering
	StateDraggingCamera
	StateDraggingNode
)

func (s InteractionState) String() string {
	switch s {
	case StateHovering:
		return "hovering"
	case StateDraggingCamera:
		return "dragging camera"
	case StateDraggingNode:
		return "dragging node"
	default:
		return "idle"
	}
}

// DragState is the drag sub-state captured at press time.
type DragState struct {
	LastX, LastY float32
	Locked       bool
	// Offset from the ground hit to the node position, with Y zeroed.
	Offset math.Vec3
}

// PickingState tracks hover and drag. Hovered is recomputed on every
// pointer move. Picked is frozen while a drag is locked and survives the
// release until the next successful press.
type PickingState struct {
	Hovered NodeID
	Picked  NodeID
	Drag    DragState

	cameraDrag bool
}

// NewPickingState returns a state with nothing hovered or picked.
func NewPickingState() PickingState {
	return PickingState{Hovered: NoNode, Picked: NoNode}
}

// State returns the current interaction mode.
func (p PickingState) State() InteractionState {
	switch {
	case p.Drag.Locked:
		return StateDraggingNode
	case p.cameraDrag:
		return StateDraggingCamera
	case p.Hovered != NoNode:
		return StateHovering
	default:
		return StateIdle
	}
}

func (p PickingState) flagsFor(id NodeID) uint32 {
	var f uint32
	if p.Hovered == id {
		f |= FlagHovered
	}
	if p.Drag.Locked && p.Picked == id {
		f |= FlagDragging
	}
	return f
}

// GroundPlane constrains node drags.
type GroundPlane struct {
	Point  math.Vec3
	Normal math.Vec3
}

// DefaultGroundPlane is the plane y = 0.
func DefaultGroundPlane() GroundPlane {
	return GroundPlane{Normal: math.Vec3Up}
}

// Ground returns the drag plane.
func (s *Scene) Ground() GroundPlane {
	return s.ground
}

// SetGroundHeight moves the drag plane to y.
func (s *Scene) SetGroundHeight(y float32) {
	s.ground = GroundPlane{Point: math.Vec3{Y: y}, Normal: math.Vec3Up}
}

// PointerMoved updates hover and, while a node drag is locked, moves the
// picked node across the ground plane. It reports whether the event was
// consumed by a node drag.
func (s *Scene) PointerMoved(x, y float32, cam RayCaster) bool {
	ray := cam.ScreenToRay(x, y)

	hovered, ok := s.tester.HitTest(s, x, y, ray)
	if !ok {
		hovered = NoNode
	}
	s.Picking.Hovered = hovered
	s.Picking.Drag.LastX, s.Picking.Drag.LastY = x, y

	if !s.Picking.Drag.Locked {
		return false
	}

	hit, ok := ray.IntersectPlane(s.ground.Point, s.ground.Normal)
	if !ok {
		return true
	}
	pos := hit.Add(s.Picking.Drag.Offset)
	pos.Y = s.ground.Point.Y
	s.SetPosition(s.Picking.Picked, pos)
	s.SyncEdges(s.Picking.Picked)
	return true
}

// PointerPressed starts a node drag when a selectable node is hovered and
// the press ray meets the ground. Otherwise the press belongs to the camera
// and is not consumed.
func (s *Scene) PointerPressed(x, y float32, cam RayCaster) bool {
	s.Picking.Drag.LastX, s.Picking.Drag.LastY = x, y

	id := s.Picking.Hovered
	if id != NoNode && s.valid(id) && s.nodes[id].Selectable {
		ray := cam.ScreenToRay(x, y)
		if hit, ok := ray.IntersectPlane(s.ground.Point, s.ground.Normal); ok {
			offset := s.nodes[id].Local.Position.Sub(hit)
			offset.Y = 0

			s.Picking.Picked = id
			s.Picking.Drag.Locked = true
			s.Picking.Drag.Offset = offset
			s.Picking.cameraDrag = false
			return true
		}
	}

	s.Picking.cameraDrag = true
	return false
}

// PointerReleased ends any drag. Picked is kept. It reports whether a node
// drag was in progress.
func (s *Scene) PointerReleased() bool {
	consumed := s.Picking.Drag.Locked
	s.Picking.Drag.Locked = false
	s.Picking.Drag.Offset = math.Vec3{}
	s.Picking.cameraDrag = false
	return consumed
}
