package pager

import (
	util "github.com/bietkhonhungvandi212/virtmem/internal/utils"
)

// LRUReplacer keeps no access history: hits never reach the pager, only
// faults do. It sweeps the same load-order cursor as FIFO, so its victims
// are the FIFO victims.
type LRUReplacer struct {
	cursor
}

func NewLRUReplacer(size int) *LRUReplacer {
	if size <= 0 {
		panic(util.ErrInvalidFrameCount)
	}
	return &LRUReplacer{cursor: cursor{poolSize: size}}
}

func (l *LRUReplacer) Policy() Policy { return PolicyLRU }

func (l *LRUReplacer) RequestFrame(_ *FrameTable) util.FrameID {
	return l.advance()
}
