// Package renderer draws a scene render list with instanced OpenGL 4.1 calls.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/corridor/internal/engine/debug"
	"github.com/Faultbox/corridor/internal/engine/geometry"
	"github.com/Faultbox/corridor/internal/engine/lighting"
	"github.com/Faultbox/corridor/internal/engine/picking"
	"github.com/Faultbox/corridor/internal/engine/scene"
	"github.com/Faultbox/corridor/internal/engine/shader"
	"github.com/Faultbox/corridor/internal/logger"
	"github.com/Faultbox/corridor/pkg/math"
)

// Vertex attribute locations shared by the scene and pick shaders.
const (
	attrPosition = 0
	attrNormal   = 1
	attrModel    = 2 // four consecutive vec4 columns
	attrColor    = 6
	attrFlags    = 7
	attrID       = 8
)

var instanceStride = int32(unsafe.Sizeof(scene.Instance{}))

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

type gpuMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

// Renderer owns GPU copies of the scene meshes and the per-frame instance
// buffers.
type Renderer struct {
	config Config
	log    *zap.Logger

	program *shader.Program
	lines   *shader.Program

	meshes []gpuMesh

	instanceVBO uint32
	idVBO       uint32
	capacity    int
	ids         []uint32

	// Last frame, reused by the pick pass.
	batches  []scene.DrawBatch
	viewProj math.Mat4

	lineVAO   uint32
	lineVBO   uint32
	lineVerts []float32

	light lighting.Uniforms
	stats Stats
}

// Stats counts the GL work of the last frame.
type Stats struct {
	DrawCalls int
	Instances int
	Triangles int
}

// New creates a new renderer.
// Must be called after the OpenGL context is created.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
		light:  lighting.Default().Uniforms(),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)

	var err error
	if r.program, err = shader.Load("scene"); err != nil {
		return nil, err
	}
	if r.lines, err = shader.Load("line"); err != nil {
		r.program.Delete()
		return nil, err
	}

	gl.GenBuffers(1, &r.instanceVBO)
	gl.GenBuffers(1, &r.idVBO)

	gl.GenVertexArrays(1, &r.lineVAO)
	gl.GenBuffers(1, &r.lineVBO)
	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.VertexAttribPointerWithOffset(attrPosition, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(attrPosition)
	gl.BindVertexArray(0)

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	r.releaseMeshes()
	gl.DeleteBuffers(1, &r.instanceVBO)
	gl.DeleteBuffers(1, &r.idVBO)
	gl.DeleteBuffers(1, &r.lineVBO)
	gl.DeleteVertexArrays(1, &r.lineVAO)
	r.program.Delete()
	r.lines.Delete()
}

// Resize handles window resize. Sizes are drawable pixels.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// SetLighting replaces the lighting uniforms.
func (r *Renderer) SetLighting(s lighting.Settings) {
	r.light = s.Uniforms()
}

// Stats returns the counters of the last Draw.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// UploadMeshes replaces the GPU mesh table. Index i serves scene.MeshID(i).
func (r *Renderer) UploadMeshes(meshes []*geometry.Mesh) {
	r.releaseMeshes()
	r.meshes = make([]gpuMesh, len(meshes))
	for i, m := range meshes {
		r.meshes[i] = r.uploadMesh(m)
	}
	r.log.Debug("meshes uploaded", zap.Int("count", len(meshes)))
}

func (r *Renderer) uploadMesh(m *geometry.Mesh) gpuMesh {
	var gm gpuMesh
	gm.indexCount = int32(len(m.Indices))

	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	verts := m.Interleaved()
	gl.GenBuffers(1, &gm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	if len(verts) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	}
	gl.VertexAttribPointerWithOffset(attrPosition, 3, gl.FLOAT, false, geometry.VertexStride, 0)
	gl.EnableVertexAttribArray(attrPosition)
	gl.VertexAttribPointerWithOffset(attrNormal, 3, gl.FLOAT, false, geometry.VertexStride, 3*4)
	gl.EnableVertexAttribArray(attrNormal)

	gl.GenBuffers(1, &gm.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
	if len(m.Indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)
	}

	for loc := uint32(attrModel); loc <= attrID; loc++ {
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribDivisor(loc, 1)
	}

	gl.BindVertexArray(0)
	return gm
}

func (r *Renderer) releaseMeshes() {
	for i := range r.meshes {
		gm := &r.meshes[i]
		gl.DeleteVertexArrays(1, &gm.vao)
		gl.DeleteBuffers(1, &gm.vbo)
		gl.DeleteBuffers(1, &gm.ebo)
	}
	r.meshes = nil
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.stats = Stats{}
}

// Draw uploads the render list verbatim and issues one instanced draw per
// batch.
func (r *Renderer) Draw(list *scene.RenderList, viewProj math.Mat4) {
	r.upload(list)
	r.batches = append(r.batches[:0], list.Batches...)
	r.viewProj = viewProj

	r.program.Use()
	r.program.SetMat4("uViewProj", (*[16]float32)(&r.viewProj))
	r.program.SetVec4("uSunDirection", r.light.SunDirection)
	r.program.SetVec3("uSunColor", r.light.SunColor)
	r.program.SetVec4("uHorizonColor", r.light.HorizonColor)

	// Flat meshes (quads, line segments) are visible from both sides.
	gl.Disable(gl.CULL_FACE)
	r.drawBatches()
	gl.Enable(gl.CULL_FACE)
}

func (r *Renderer) upload(list *scene.RenderList) {
	n := len(list.Instances)
	r.stats.Instances = n
	if n == 0 {
		return
	}

	r.ids = r.ids[:0]
	for _, id := range list.Order {
		r.ids = append(r.ids, picking.EncodeID(int(id)))
	}

	if n > r.capacity {
		r.capacity = max(n, 2*r.capacity)
		gl.BindBuffer(gl.ARRAY_BUFFER, r.instanceVBO)
		gl.BufferData(gl.ARRAY_BUFFER, r.capacity*int(instanceStride), nil, gl.DYNAMIC_DRAW)
		gl.BindBuffer(gl.ARRAY_BUFFER, r.idVBO)
		gl.BufferData(gl.ARRAY_BUFFER, r.capacity*4, nil, gl.DYNAMIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, r.instanceVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, n*int(instanceStride), gl.Ptr(&list.Instances[0].Model[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, r.idVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, n*4, gl.Ptr(&r.ids[0]))
}

// drawBatches points the instance attributes at each batch's slice of the
// instance buffer and draws it. GL 4.1 has no base-instance draw.
func (r *Renderer) drawBatches() {
	for _, b := range r.batches {
		if int(b.Mesh) >= len(r.meshes) {
			continue
		}
		gm := r.meshes[b.Mesh]
		gl.BindVertexArray(gm.vao)

		base := uintptr(b.First) * uintptr(instanceStride)
		gl.BindBuffer(gl.ARRAY_BUFFER, r.instanceVBO)
		for col := uintptr(0); col < 4; col++ {
			gl.VertexAttribPointerWithOffset(attrModel+uint32(col), 4, gl.FLOAT, false, instanceStride, base+col*16)
		}
		gl.VertexAttribPointerWithOffset(attrColor, 4, gl.FLOAT, false, instanceStride, base+64)
		gl.VertexAttribIPointerWithOffset(attrFlags, 1, gl.UNSIGNED_INT, instanceStride, base+80)

		gl.BindBuffer(gl.ARRAY_BUFFER, r.idVBO)
		gl.VertexAttribIPointerWithOffset(attrID, 1, gl.UNSIGNED_INT, 4, uintptr(b.First)*4)

		gl.DrawElementsInstanced(gl.TRIANGLES, gm.indexCount, gl.UNSIGNED_INT, nil, int32(b.Count))
		r.stats.DrawCalls++
		r.stats.Triangles += int(gm.indexCount) / 3 * b.Count
	}
	gl.BindVertexArray(0)
}

// DrawBounds outlines boxes as wireframes on top of the scene.
func (r *Renderer) DrawBounds(boxes []picking.AABB, color [4]float32) {
	if len(boxes) == 0 {
		return
	}
	r.lineVerts = r.lineVerts[:0]
	for _, b := range boxes {
		r.lineVerts = debug.AppendBoxLines(r.lineVerts, b, debug.DefaultBoxPadding)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.lineVerts)*4, gl.Ptr(r.lineVerts), gl.STREAM_DRAW)

	r.lines.Use()
	r.lines.SetMat4("uViewProj", (*[16]float32)(&r.viewProj))
	r.lines.SetVec4("uColor", color)
	gl.BindVertexArray(r.lineVAO)
	gl.DrawArrays(gl.LINES, 0, int32(len(r.lineVerts)/3))
	gl.BindVertexArray(0)
	r.stats.DrawCalls++
}

// ReadPixels reads the default framebuffer as RGBA, bottom row first.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}
