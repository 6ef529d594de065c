package picking

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReadback struct {
	submitted [][2]int
	polls     int
	readyAt   int
	id        uint32
	err       error
}

func (f *fakeReadback) Submit(x, y int) error {
	f.submitted = append(f.submitted, [2]int{x, y})
	f.polls = 0
	return f.err
}

func (f *fakeReadback) Poll() (uint32, bool, error) {
	f.polls++
	return f.id, f.polls >= f.readyAt, nil
}

func TestEncodeDecodeID(t *testing.T) {
	assert.Equal(t, uint32(1), EncodeID(0))
	n, ok := DecodeID(EncodeID(41))
	assert.True(t, ok)
	assert.Equal(t, 41, n)
	_, ok = DecodeID(0)
	assert.False(t, ok)
}

func TestIDBufferLifecycle(t *testing.T) {
	rb := &fakeReadback{readyAt: 2, id: EncodeID(7)}
	buf := NewIDBuffer(rb)
	assert.Equal(t, IDIdle, buf.State())

	buf.Request(10, 20)
	assert.Equal(t, IDRequested, buf.State())

	require.NoError(t, buf.Update())
	assert.Equal(t, IDSubmitted, buf.State())
	assert.Equal(t, [][2]int{{10, 20}}, rb.submitted)

	// First poll is not ready; the caller is never blocked.
	require.NoError(t, buf.Update())
	assert.Equal(t, IDSubmitted, buf.State())
	_, ok := buf.Result()
	assert.False(t, ok)

	require.NoError(t, buf.Update())
	assert.Equal(t, IDResolved, buf.State())
	node, ok := buf.Result()
	require.True(t, ok)
	assert.Equal(t, 7, node)
}

func TestIDBufferCoalescesInFlightRequests(t *testing.T) {
	rb := &fakeReadback{readyAt: 1}
	buf := NewIDBuffer(rb)

	buf.Request(1, 1)
	require.NoError(t, buf.Update())
	buf.Request(2, 2)
	buf.Request(3, 3)
	assert.Equal(t, IDSubmitted, buf.State())

	require.NoError(t, buf.Update())
	assert.Equal(t, IDRequested, buf.State())
	require.NoError(t, buf.Update())
	assert.Equal(t, [][2]int{{1, 1}, {3, 3}}, rb.submitted)
}

func TestIDBufferSubmitError(t *testing.T) {
	rb := &fakeReadback{err: errors.New("no context")}
	buf := NewIDBuffer(rb)
	buf.Request(0, 0)
	err := buf.Update()
	require.Error(t, err)
	assert.ErrorIs(t, err, rb.err)
	assert.Equal(t, IDIdle, buf.State())
}

func TestIDStateString(t *testing.T) {
	assert.Equal(t, "submitted", IDSubmitted.String())
	assert.Equal(t, "IDState(9)", IDState(9).String())
}
