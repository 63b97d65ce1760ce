package pager

import (
	"fmt"

	util "github.com/bietkhonhungvandi212/virtmem/internal/utils"
)

// Policy names a replacement policy. It is chosen once per run.
type Policy int

const (
	PolicyRandom Policy = iota
	PolicyFIFO
	PolicyLRU
)

func (p Policy) String() string {
	switch p {
	case PolicyRandom:
		return "rand"
	case PolicyFIFO:
		return "fifo"
	case PolicyLRU:
		return "lru"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy maps a command line name to a Policy
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "rand":
		return PolicyRandom, nil
	case "fifo":
		return PolicyFIFO, nil
	case "lru":
		return PolicyLRU, nil
	default:
		return 0, fmt.Errorf("%q: %w", name, util.ErrUnknownPolicy)
	}
}

// Replacer decides where the next faulting page goes.
type Replacer interface {
	// RequestFrame returns the frame to load the faulting page into. While
	// the table is not full the frame must be empty; afterwards its occupant
	// is the victim.
	RequestFrame(ft *FrameTable) util.FrameID
	Policy() Policy
}

// NewReplacer builds the replacer for policy over nframes frames. The seed is
// only used by the random policy.
func NewReplacer(policy Policy, nframes int, seed int64) (Replacer, error) {
	if nframes <= 0 {
		return nil, util.ErrInvalidFrameCount
	}
	switch policy {
	case PolicyRandom:
		return NewRandomReplacer(nframes, seed), nil
	case PolicyFIFO:
		return NewFIFOReplacer(nframes), nil
	case PolicyLRU:
		return NewLRUReplacer(nframes), nil
	default:
		return nil, fmt.Errorf("%v: %w", policy, util.ErrUnknownPolicy)
	}
}
