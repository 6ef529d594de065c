package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/corridor/internal/engine/framebuffer"
	"github.com/Faultbox/corridor/internal/engine/shader"
	"github.com/Faultbox/corridor/internal/logger"
)

// PickPass renders node ids into an R32UI target and reads one pixel back
// through a pixel-pack buffer. It implements picking.Readback.
type PickPass struct {
	r       *Renderer
	fb      *framebuffer.Framebuffer
	program *shader.Program
	pbo     uint32
	fence   uintptr
	outside bool
	log     *zap.Logger
}

// NewPickPass creates the id target sized like the renderer viewport.
func NewPickPass(r *Renderer) (*PickPass, error) {
	program, err := shader.Load("pick")
	if err != nil {
		return nil, err
	}
	fb, err := framebuffer.NewWithFormat(int32(r.config.Width), int32(r.config.Height), framebuffer.R32UI)
	if err != nil {
		program.Delete()
		return nil, fmt.Errorf("id buffer: %w", err)
	}

	p := &PickPass{r: r, fb: fb, program: program, log: logger.Named("picking.gpu")}
	gl.GenBuffers(1, &p.pbo)
	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, p.pbo)
	gl.BufferData(gl.PIXEL_PACK_BUFFER, 4, nil, gl.STREAM_READ)
	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, 0)
	return p, nil
}

// Resize follows the drawable size.
func (p *PickPass) Resize(width, height int) {
	p.fb.Resize(int32(width), int32(height))
}

// Submit draws the last frame's batches into the id target and starts an
// asynchronous copy of pixel (x, y), measured from the top-left.
func (p *PickPass) Submit(x, y int) error {
	p.clearFence()
	w, h := p.fb.Size()
	p.outside = x < 0 || y < 0 || x >= int(w) || y >= int(h)
	if p.outside {
		return nil
	}

	restore := p.fb.BindWithViewport()
	p.fb.Clear()
	p.program.Use()
	p.program.SetMat4("uViewProj", (*[16]float32)(&p.r.viewProj))
	gl.Disable(gl.CULL_FACE)
	p.r.drawBatches()
	gl.Enable(gl.CULL_FACE)

	gl.ReadBuffer(gl.COLOR_ATTACHMENT0)
	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, p.pbo)
	gl.ReadPixels(int32(x), h-1-int32(y), 1, 1, gl.RED_INTEGER, gl.UNSIGNED_INT, nil)
	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, 0)
	p.fence = gl.FenceSync(gl.SYNC_GPU_COMMANDS_COMPLETE, 0)
	restore()

	if errCode := gl.GetError(); errCode != gl.NO_ERROR {
		p.clearFence()
		return fmt.Errorf("id pass: GL error 0x%x", errCode)
	}
	return nil
}

// Poll checks the fence without waiting.
func (p *PickPass) Poll() (uint32, bool, error) {
	if p.outside {
		return 0, true, nil
	}
	if p.fence == 0 {
		return 0, false, fmt.Errorf("poll without a submitted id pass")
	}

	switch gl.ClientWaitSync(p.fence, 0, 0) {
	case gl.TIMEOUT_EXPIRED:
		return 0, false, nil
	case gl.WAIT_FAILED:
		p.clearFence()
		return 0, false, fmt.Errorf("id readback fence failed")
	}
	p.clearFence()

	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, p.pbo)
	ptr := gl.MapBufferRange(gl.PIXEL_PACK_BUFFER, 0, 4, gl.MAP_READ_BIT)
	if ptr == nil {
		gl.BindBuffer(gl.PIXEL_PACK_BUFFER, 0)
		return 0, false, fmt.Errorf("map id readback buffer failed")
	}
	id := *(*uint32)(ptr)
	gl.UnmapBuffer(gl.PIXEL_PACK_BUFFER)
	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, 0)

	p.log.Debug("id resolved", zap.Uint32("id", id))
	return id, true, nil
}

func (p *PickPass) clearFence() {
	if p.fence != 0 {
		gl.DeleteSync(p.fence)
		p.fence = 0
	}
}

// Close releases GPU resources.
func (p *PickPass) Close() {
	p.clearFence()
	gl.DeleteBuffers(1, &p.pbo)
	p.fb.Destroy()
	p.program.Delete()
}

