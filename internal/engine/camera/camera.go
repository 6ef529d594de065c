// Package camera provides the orbit camera used to view and pick the scene.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/corridor/internal/engine/picking"
	"github.com/Faultbox/corridor/pkg/math"
)

// Settings configures an OrbitCamera. Angles are in radians.
type Settings struct {
	Distance float32
	Yaw      float32
	Pitch    float32
	FovY     float32
	Near     float32
	Far      float32

	MinDistance float32
	MinPitch    float32
	MaxPitch    float32
	OrbitSpeed  float32 // radians per pixel
	ZoomStep    float32 // distance per scroll notch
}

// DefaultSettings returns the default orbit.
func DefaultSettings() Settings {
	return Settings{
		Distance:    12,
		Yaw:         math32.Pi / 4,
		Pitch:       math32.Pi / 8,
		FovY:        45 * math32.Pi / 180,
		Near:        0.1,
		Far:         100,
		MinDistance: 0.1,
		MinPitch:    5 * math32.Pi / 180,
		MaxPitch:    85 * math32.Pi / 180,
		OrbitSpeed:  0.005,
		ZoomStep:    0.5,
	}
}

// OrbitCamera orbits around a target point.
type OrbitCamera struct {
	Target math.Vec3

	// Spherical coordinates
	Distance float32
	Pitch    float32 // elevation above the XZ plane
	Yaw      float32 // rotation about +Y

	FovY, Near, Far float32

	// Constraints
	MinDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	OrbitSpeed float32
	ZoomStep   float32

	width, height float32
}

// NewOrbitCamera creates a camera looking at the origin.
func NewOrbitCamera(s Settings) *OrbitCamera {
	c := &OrbitCamera{
		Distance:    s.Distance,
		Pitch:       s.Pitch,
		Yaw:         s.Yaw,
		FovY:        s.FovY,
		Near:        s.Near,
		Far:         s.Far,
		MinDistance: s.MinDistance,
		MinPitch:    s.MinPitch,
		MaxPitch:    s.MaxPitch,
		OrbitSpeed:  s.OrbitSpeed,
		ZoomStep:    s.ZoomStep,
		width:       1,
		height:      1,
	}
	c.clamp()
	return c
}

// SetViewport records the drawable size used for projection and rays.
func (c *OrbitCamera) SetViewport(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c.width, c.height = float32(width), float32(height)
}

// Viewport returns the drawable size.
func (c *OrbitCamera) Viewport() (width, height float32) {
	return c.width, c.height
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sinP, cosP := math32.Sincos(c.Pitch)
	sinY, cosY := math32.Sincos(c.Yaw)
	return c.Target.Add(math.Vec3{
		X: c.Distance * cosP * sinY,
		Y: c.Distance * sinP,
		Z: c.Distance * cosP * cosY,
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Target, math.Vec3Up)
}

// ProjectionMatrix returns the perspective projection for the viewport.
func (c *OrbitCamera) ProjectionMatrix() math.Mat4 {
	return math.Perspective(c.FovY, c.width/c.height, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// ScreenToRay returns the world ray through drawable pixel (x, y).
func (c *OrbitCamera) ScreenToRay(x, y float32) picking.Ray {
	return picking.ScreenToRay(x, y, c.width, c.height, c.ViewProjection().Inverse())
}

// HandleDrag orbits by a pointer delta in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.OrbitSpeed
	c.Pitch += deltaY * c.OrbitSpeed
	c.clamp()
}

// HandleZoom moves toward the target by ZoomStep per scroll notch.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.ZoomStep
	c.clamp()
}

// FitToBounds centres the orbit on a box and backs off far enough to see it.
func (c *OrbitCamera) FitToBounds(min, max math.Vec3) {
	c.Target = min.Lerp(max, 0.5)
	radius := max.Sub(min).Length() / 2
	c.Distance = math32.Max(radius/math32.Sin(c.FovY/2), c.MinDistance)
	if c.Distance > c.Far*0.5 {
		c.Far = c.Distance * 2
	}
}

func (c *OrbitCamera) clamp() {
	c.Pitch = math32.Max(c.MinPitch, math32.Min(c.MaxPitch, c.Pitch))
	c.Distance = math32.Max(c.MinDistance, c.Distance)
}

// DebugInfo is a snapshot for the HUD.
type DebugInfo struct {
	Position math.Vec3
	Target   math.Vec3
	Distance float32
	YawDeg   float32
	PitchDeg float32
}

// Debug returns the current camera state.
func (c *OrbitCamera) Debug() DebugInfo {
	const toDeg = 180 / math32.Pi
	return DebugInfo{
		Position: c.Position(),
		Target:   c.Target,
		Distance: c.Distance,
		YawDeg:   c.Yaw * toDeg,
		PitchDeg: c.Pitch * toDeg,
	}
}
