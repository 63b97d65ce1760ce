package pager

import (
	"fmt"

	util "github.com/bietkhonhungvandi212/virtmem/internal/utils"
)

// NoPage marks an empty frame slot
const NoPage util.PageID = -1

// FrameTable records which virtual page occupies each physical frame.
// The slot count is fixed at creation.
type FrameTable struct {
	slots     []util.PageID                // frame index -> resident page or NoPage
	pageToIdx map[util.PageID]util.FrameID // resident page -> frame index
	loaded    int                          // slots filled at least once
}

func NewFrameTable(size int) *FrameTable {
	if size <= 0 {
		panic(util.ErrInvalidFrameCount)
	}
	ft := &FrameTable{
		slots:     make([]util.PageID, size),
		pageToIdx: make(map[util.PageID]util.FrameID, size),
	}
	for i := range ft.slots {
		ft.slots[i] = NoPage
	}
	return ft
}

func (ft *FrameTable) Size() int { return len(ft.slots) }

// Loaded is the number of frames that have held a page at least once
func (ft *FrameTable) Loaded() int { return ft.loaded }

// IsFull reports whether the fill phase is over
func (ft *FrameTable) IsFull() bool { return ft.loaded >= len(ft.slots) }

// Occupant returns the page resident in frame, false when the frame is free
func (ft *FrameTable) Occupant(frame util.FrameID) (util.PageID, bool) {
	if int(frame) < 0 || int(frame) >= len(ft.slots) {
		return NoPage, false
	}
	p := ft.slots[frame]
	return p, p != NoPage
}

// FrameOf returns the frame holding pageId, or util.NoFrame
func (ft *FrameTable) FrameOf(pageId util.PageID) util.FrameID {
	if idx, ok := ft.pageToIdx[pageId]; ok {
		return idx
	}
	return util.NoFrame
}

// Assign puts pageId in frame and forgets the previous occupant. Any write
// back of the previous occupant must happen before.
func (ft *FrameTable) Assign(frame util.FrameID, pageId util.PageID) error {
	if int(frame) < 0 || int(frame) >= len(ft.slots) {
		return fmt.Errorf("assign frame %d: %w", frame, util.ErrInvalidFrameId)
	}
	if pageId < 0 {
		return fmt.Errorf("assign page %d: %w", pageId, util.ErrInvalidPageId)
	}
	if idx, ok := ft.pageToIdx[pageId]; ok && idx != frame {
		return fmt.Errorf("assign page %d to frame %d, held by frame %d: %w", pageId, frame, idx, util.ErrPageAlreadyLoaded)
	}

	old := ft.slots[frame]
	if old == NoPage {
		ft.loaded++
	} else {
		delete(ft.pageToIdx, old)
	}

	ft.slots[frame] = pageId
	ft.pageToIdx[pageId] = frame
	return nil
}

// Slots returns a copy of the table, index is the frame
func (ft *FrameTable) Slots() []util.PageID {
	out := make([]util.PageID, len(ft.slots))
	copy(out, ft.slots)
	return out
}
