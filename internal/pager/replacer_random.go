package pager

import (
	"math/rand"

	util "github.com/bietkhonhungvandi212/virtmem/internal/utils"
)

// RandomReplacer picks frames uniformly at random. It remembers nothing
// about past victims.
type RandomReplacer struct {
	rng      *rand.Rand
	poolSize int
}

func NewRandomReplacer(size int, seed int64) *RandomReplacer {
	if size <= 0 {
		panic(util.ErrInvalidFrameCount)
	}
	return &RandomReplacer{
		rng:      rand.New(rand.NewSource(seed)),
		poolSize: size,
	}
}

func (r *RandomReplacer) Policy() Policy { return PolicyRandom }

func (r *RandomReplacer) RequestFrame(ft *FrameTable) util.FrameID {
	idx := util.FrameID(r.rng.Intn(r.poolSize))
	if ft.IsFull() {
		return idx
	}

	// fill phase: resample until an empty frame comes up
	for {
		if _, occupied := ft.Occupant(idx); !occupied {
			return idx
		}
		idx = util.FrameID(r.rng.Intn(r.poolSize))
	}
}
