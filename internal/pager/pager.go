// Package pager handles page faults: it places the faulting page in a frame,
// evicting through the configured replacer once memory is full, and keeps
// the fault and disk traffic counters.
package pager

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	goerrors "github.com/go-errors/errors"
	"github.com/sirupsen/logrus"

	"github.com/bietkhonhungvandi212/virtmem/internal/storage/file"
	"github.com/bietkhonhungvandi212/virtmem/internal/storage/page"
	util "github.com/bietkhonhungvandi212/virtmem/internal/utils"
)

// Translator is the part of the page table the pager drives.
type Translator interface {
	NPages() int
	NFrames() int
	PhysMem() *page.Memory
	SetEntry(pageId util.PageID, frame util.FrameID, prot util.Protection) error
}

type Counters struct {
	PageFaults int
	DiskReads  int
	DiskWrites int
}

type Pager struct {
	frames   *FrameTable
	replacer Replacer
	disk     file.Filer
	stats    Counters
	log      *logrus.Logger
}

func NewPager(nframes int, replacer Replacer, disk file.Filer, logger *logrus.Logger) *Pager {
	if nframes <= 0 {
		panic(util.ErrInvalidFrameCount)
	}
	if logger == nil {
		logger = util.DiscardLogger()
	}
	return &Pager{
		frames:   NewFrameTable(nframes),
		replacer: replacer,
		disk:     disk,
		log:      logger,
	}
}

func (p *Pager) Counters() Counters { return p.stats }
func (p *Pager) Frames() *FrameTable { return p.frames }
func (p *Pager) Policy() Policy { return p.replacer.Policy() }

// HandleFault resolves a fault on pageId. Errors are internal: the
// simulation cannot continue after one.
func (p *Pager) HandleFault(t Translator, pageId util.PageID) error {
	if int(pageId) < 0 || int(pageId) >= t.NPages() {
		return util.NewSimError(util.ErrTypeInternal, fmt.Sprintf("fault on page %d", pageId), util.ErrInvalidPageId)
	}
	if t.NFrames() != p.frames.Size() {
		return util.NewSimError(util.ErrTypeInternal, "translator frame count differs from frame table", util.ErrInvalidFrameCount)
	}

	p.stats.PageFaults++

	if frame := p.frames.FrameOf(pageId); frame != util.NoFrame {
		// write to a read-only resident page
		if err := t.SetEntry(pageId, frame, util.ProtRW); err != nil {
			return p.internal(err, "upgrade page %d in frame %d", pageId, frame)
		}
		p.stats.PageFaults--
		p.logFault("upgrade", pageId, frame, NoPage)
		p.trace(t)
		return nil
	}

	if t.NFrames() >= t.NPages() {
		frame := util.FrameID(pageId)
		if err := p.frames.Assign(frame, pageId); err != nil {
			return p.internal(err, "map page %d directly", pageId)
		}
		if err := t.SetEntry(pageId, frame, util.ProtRW); err != nil {
			return p.internal(err, "map page %d directly", pageId)
		}
		p.logFault("direct", pageId, frame, NoPage)
		p.trace(t)
		return nil
	}

	filling := !p.frames.IsFull()
	frame := p.replacer.RequestFrame(p.frames)
	buf, err := t.PhysMem().Frame(frame)
	if err != nil {
		return p.internal(err, "replacer returned frame %d", frame)
	}

	victim, occupied := p.frames.Occupant(frame)
	if occupied && filling {
		return p.internal(util.ErrNoFreeFrame, "replacer returned occupied frame %d during fill", frame)
	}

	action := "fill"
	if occupied {
		action = "evict"
		if err := t.SetEntry(victim, util.NoFrame, util.ProtNone); err != nil {
			return p.internal(err, "unmap victim page %d", victim)
		}
		// no dirty bit: every victim is written back
		if err := p.disk.WritePage(victim, buf); err != nil {
			return p.internal(err, "write back page %d from frame %d", victim, frame)
		}
		p.stats.DiskWrites++
	}

	if err := p.disk.ReadPage(pageId, buf); err != nil {
		return p.internal(err, "read page %d into frame %d", pageId, frame)
	}
	p.stats.DiskReads++

	if err := p.frames.Assign(frame, pageId); err != nil {
		return p.internal(err, "record page %d in frame %d", pageId, frame)
	}
	if err := t.SetEntry(pageId, frame, util.ProtRead); err != nil {
		return p.internal(err, "map page %d to frame %d", pageId, frame)
	}

	p.logFault(action, pageId, frame, victim)
	p.trace(t)
	return nil
}

func (p *Pager) internal(err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return util.NewSimError(util.ErrTypeInternal, msg, goerrors.Wrap(err, 1))
}

func (p *Pager) logFault(action string, pageId util.PageID, frame util.FrameID, victim util.PageID) {
	entry := p.log.WithFields(logrus.Fields{
		"page":   pageId,
		"frame":  frame,
		"action": action,
		"policy": p.replacer.Policy(),
	})
	if victim != NoPage {
		entry = entry.WithField("victim", victim)
	}
	entry.Debug("page fault")
}

type printer interface {
	Print(w io.Writer)
}

func (p *Pager) trace(t Translator) {
	if !p.log.IsLevelEnabled(logrus.TraceLevel) {
		return
	}
	var sb strings.Builder
	if pr, ok := t.(printer); ok {
		pr.Print(&sb)
	}
	p.log.WithField("frames", spew.Sdump(p.frames.Slots())).Trace("page table\n" + sb.String())
}
