package page

import (
	"hash/crc32"

	util "github.com/bietkhonhungvandi212/virtmem/internal/utils"
)

// Memory is the physical memory of the machine: frames laid out back to
// back in one flat buffer.
type Memory struct {
	data    []byte
	nframes int
}

func NewMemory(nframes int) *Memory {
	if nframes <= 0 {
		panic(util.ErrInvalidFrameCount)
	}
	return &Memory{
		data:    make([]byte, nframes*util.PageSize),
		nframes: nframes,
	}
}

func (m *Memory) NFrames() int { return m.nframes }

// Frame returns the PageSize bytes backing frame idx. The slice aliases the
// physical memory, writes through it are visible to the translator.
func (m *Memory) Frame(idx util.FrameID) ([]byte, error) {
	if int(idx) < 0 || int(idx) >= m.nframes {
		return nil, util.ErrInvalidFrameId
	}
	off := int(idx) * util.PageSize
	return m.data[off : off+util.PageSize : off+util.PageSize], nil
}

// Bytes exposes the whole physical region
func (m *Memory) Bytes() []byte { return m.data }

// Checksum of a frame's content
func (m *Memory) Checksum(idx util.FrameID) (uint32, error) {
	buf, err := m.Frame(idx)
	if err != nil {
		return 0, err
	}
	return crc32.ChecksumIEEE(buf), nil
}
