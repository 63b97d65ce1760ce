package page

import (
	"testing"

	util "github.com/bietkhonhungvandi212/virtmem/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMemory(t *testing.T) {
	t.Run("ValidSize", func(t *testing.T) {
		m := NewMemory(4)
		assert.Equal(t, 4, m.NFrames())
		assert.Len(t, m.Bytes(), 4*util.PageSize)
	})

	t.Run("ZeroSize", func(t *testing.T) {
		assert.Panics(t, func() { NewMemory(0) })
	})
}

func TestFrame(t *testing.T) {
	m := NewMemory(3)

	f1, err := m.Frame(1)
	require.NoError(t, err)
	assert.Len(t, f1, util.PageSize)

	copy(f1, CreateTestBlock(7))
	assert.Equal(t, CreateTestBlock(7), m.Bytes()[util.PageSize:2*util.PageSize], "frame aliases memory")

	f0, err := m.Frame(0)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, util.PageSize), f0, "neighbour untouched")

	_, err = m.Frame(3)
	assert.ErrorIs(t, err, util.ErrInvalidFrameId)
	_, err = m.Frame(-1)
	assert.ErrorIs(t, err, util.ErrInvalidFrameId)
}

func TestChecksum(t *testing.T) {
	m := NewMemory(2)
	f0, _ := m.Frame(0)
	f1, _ := m.Frame(1)
	copy(f0, CreateTestBlock(1))
	copy(f1, CreateTestBlock(1))

	c0, err := m.Checksum(0)
	require.NoError(t, err)
	c1, err := m.Checksum(1)
	require.NoError(t, err)
	assert.Equal(t, c0, c1)

	f1[0]++
	c1, _ = m.Checksum(1)
	assert.NotEqual(t, c0, c1)
}
