package pager

import (
	util "github.com/bietkhonhungvandi212/virtmem/internal/utils"
)

// cursor sweeps the frames in order. Every frame it hands out is filled or
// evicted, so the sweep follows load order.
type cursor struct {
	next     int
	poolSize int
}

func (c *cursor) advance() util.FrameID {
	idx := c.next
	c.next = (c.next + 1) % c.poolSize
	return util.FrameID(idx)
}

// FIFOReplacer evicts the frame loaded longest ago.
type FIFOReplacer struct {
	cursor
}

func NewFIFOReplacer(size int) *FIFOReplacer {
	if size <= 0 {
		panic(util.ErrInvalidFrameCount)
	}
	return &FIFOReplacer{cursor: cursor{poolSize: size}}
}

func (f *FIFOReplacer) Policy() Policy { return PolicyFIFO }

func (f *FIFOReplacer) RequestFrame(_ *FrameTable) util.FrameID {
	return f.advance()
}
