// Package pagetable is the address translator of the simulator. It keeps one
// entry per virtual page and turns every load or store that lacks the needed
// protection into a call to the registered fault handler.
package pagetable

import (
	"fmt"
	"io"

	"github.com/bietkhonhungvandi212/virtmem/internal/storage/page"
	util "github.com/bietkhonhungvandi212/virtmem/internal/utils"
)

// maxFaultsPerAccess bounds how often one access may fault. A load needs at
// most one fault and a store at most two (load as read-only, then upgrade).
const maxFaultsPerAccess = 4

// FaultHandler is called with the page whose entry did not allow the access.
// It must update the entry through SetEntry before returning nil.
type FaultHandler func(pt *PageTable, pageId util.PageID) error

type entry struct {
	frame util.FrameID
	prot  util.Protection
}

type PageTable struct {
	entries []entry
	mem     *page.Memory
	handler FaultHandler
}

func New(npages, nframes int, handler FaultHandler) (*PageTable, error) {
	if npages <= 0 {
		return nil, util.ErrInvalidPageCount
	}
	if nframes <= 0 {
		return nil, util.ErrInvalidFrameCount
	}
	if handler == nil {
		return nil, util.ErrNilFaultHandler
	}

	pt := &PageTable{
		entries: make([]entry, npages),
		mem:     page.NewMemory(nframes),
		handler: handler,
	}
	for i := range pt.entries {
		pt.entries[i] = entry{frame: util.NoFrame, prot: util.ProtNone}
	}
	return pt, nil
}

func (pt *PageTable) NPages() int { return len(pt.entries) }
func (pt *PageTable) NFrames() int { return pt.mem.NFrames() }
func (pt *PageTable) PhysMem() *page.Memory { return pt.mem }
func (pt *PageTable) VirtSize() int { return len(pt.entries) * util.PageSize }

// Entry returns the frame and protection of a page
func (pt *PageTable) Entry(pageId util.PageID) (util.FrameID, util.Protection, error) {
	if int(pageId) < 0 || int(pageId) >= len(pt.entries) {
		return util.NoFrame, util.ProtNone, util.ErrInvalidPageId
	}
	e := pt.entries[pageId]
	return e.frame, e.prot, nil
}

// SetEntry maps a page to a frame. Passing ProtNone unmaps the page, the frame
// is then ignored.
func (pt *PageTable) SetEntry(pageId util.PageID, frame util.FrameID, prot util.Protection) error {
	if int(pageId) < 0 || int(pageId) >= len(pt.entries) {
		return util.ErrInvalidPageId
	}
	if prot == util.ProtNone {
		pt.entries[pageId] = entry{frame: util.NoFrame, prot: util.ProtNone}
		return nil
	}
	if int(frame) < 0 || int(frame) >= pt.mem.NFrames() {
		return util.ErrInvalidFrameId
	}
	pt.entries[pageId] = entry{frame: frame, prot: prot}
	return nil
}

// Load reads the byte at virtual address addr
func (pt *PageTable) Load(addr int) (byte, error) {
	b, off, err := pt.resolve(addr, util.ProtRead)
	if err != nil {
		return 0, err
	}
	return b[off], nil
}

// Store writes the byte at virtual address addr
func (pt *PageTable) Store(addr int, v byte) error {
	b, off, err := pt.resolve(addr, util.ProtWrite)
	if err != nil {
		return err
	}
	b[off] = v
	return nil
}

func (pt *PageTable) resolve(addr int, need util.Protection) ([]byte, int, error) {
	if addr < 0 || addr >= pt.VirtSize() {
		return nil, 0, fmt.Errorf("address %#x: %w", addr, util.ErrAddressOutOfBounds)
	}
	pageId := util.PageID(addr / util.PageSize)
	off := addr % util.PageSize

	for range maxFaultsPerAccess {
		e := pt.entries[pageId]
		if e.prot&need == need {
			frame, err := pt.mem.Frame(e.frame)
			if err != nil {
				return nil, 0, err
			}
			return frame, off, nil
		}
		if err := pt.handler(pt, pageId); err != nil {
			return nil, 0, err
		}
	}

	return nil, 0, fmt.Errorf("page %d: %w", pageId, util.ErrFaultNotResolved)
}

// Print writes one line per mapped page
func (pt *PageTable) Print(w io.Writer) {
	for i, e := range pt.entries {
		if e.prot == util.ProtNone {
			continue
		}
		fmt.Fprintf(w, "page %06d: frame %06d bits %s\n", i, e.frame, e.prot)
	}
}
