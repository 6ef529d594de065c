package picking

import "fmt"

// IDState is the stage of an asynchronous id-buffer readback.
type IDState int

const (
	IDIdle      IDState = iota // nothing in flight
	IDRequested                // a pixel was requested, pass not yet rendered
	IDSubmitted                // pass rendered, waiting for the GPU copy
	IDResolved                 // copy finished, result available
)

func (s IDState) String() string {
	switch s {
	case IDIdle:
		return "idle"
	case IDRequested:
		return "requested"
	case IDSubmitted:
		return "submitted"
	case IDResolved:
		return "resolved"
	default:
		return fmt.Sprintf("IDState(%d)", int(s))
	}
}

// Readback is the GPU side of id picking. Submit renders the id pass and
// starts copying one pixel. Poll must never block.
type Readback interface {
	Submit(x, y int) error
	Poll() (id uint32, ready bool, err error)
}

// EncodeID maps a node index to the value written into the id buffer.
// Zero is reserved for "no node".
func EncodeID(node int) uint32 {
	return uint32(node + 1)
}

// DecodeID reverses EncodeID.
func DecodeID(id uint32) (int, bool) {
	if id == 0 {
		return 0, false
	}
	return int(id - 1), true
}

// IDBuffer drives picking through an offscreen id buffer. Requests are
// coalesced: the newest pixel wins, and a request made while a readback is
// in flight is submitted after it resolves.
type IDBuffer struct {
	backend Readback
	state   IDState

	x, y    int
	pending bool

	result   uint32
	resolved bool
}

// NewIDBuffer creates an id buffer around a readback backend.
func NewIDBuffer(backend Readback) *IDBuffer {
	return &IDBuffer{backend: backend}
}

// State returns the current stage.
func (b *IDBuffer) State() IDState {
	return b.state
}

// Request asks for the id under pixel (x, y).
func (b *IDBuffer) Request(x, y int) {
	b.x, b.y = x, y
	switch b.state {
	case IDIdle, IDResolved:
		b.state = IDRequested
	default:
		b.pending = true
	}
}

// Update advances the state machine once. Call it once per frame after the
// main pass.
func (b *IDBuffer) Update() error {
	switch b.state {
	case IDRequested:
		if err := b.backend.Submit(b.x, b.y); err != nil {
			b.state = IDIdle
			return fmt.Errorf("submit id pass: %w", err)
		}
		b.pending = false
		b.state = IDSubmitted

	case IDSubmitted:
		id, ready, err := b.backend.Poll()
		if err != nil {
			b.state = IDIdle
			return fmt.Errorf("poll id readback: %w", err)
		}
		if !ready {
			return nil
		}
		b.result = id
		b.resolved = true
		b.state = IDResolved
		if b.pending {
			b.state = IDRequested
		}
	}
	return nil
}

// Result returns the most recently resolved node, if any.
func (b *IDBuffer) Result() (int, bool) {
	if !b.resolved {
		return 0, false
	}
	return DecodeID(b.result)
}
