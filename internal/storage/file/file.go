package file

import (
	"errors"
	"fmt"
	"os"

	util "github.com/bietkhonhungvandi212/virtmem/internal/utils"
)

/**
* This module is the backing store of the simulator: one file holding one
* PageSize block per virtual page. The number of calls stands in for disk
* latency.
**/
type FileManager struct {
	File    *os.File
	Size    int64
	NBlocks int
	reads   int
	writes  int
}

func NewFileManager(path string, nblocks int) (*FileManager, error) {
	if nblocks <= 0 {
		return nil, util.ErrInvalidPageCount
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o666)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	size := int64(nblocks) * int64(util.PageSize)
	if err := f.Truncate(size); err != nil {
		f.Close()
		return nil, fmt.Errorf("truncate to %d: %w", size, err)
	}

	return &FileManager{File: f, Size: size, NBlocks: nblocks}, nil
}

func (fm *FileManager) offset(pageId util.PageID, buf []byte) (int64, error) {
	if fm.File == nil {
		return 0, util.ErrFileClosed
	}
	if len(buf) != util.PageSize {
		return 0, util.ErrInvalidPageSize
	}
	if pageId < 0 || int(pageId) >= fm.NBlocks {
		return 0, util.ErrPageOutOfBounds
	}
	return int64(pageId) * int64(util.PageSize), nil
}

/* READ FILE */
func (fm *FileManager) ReadPage(pageId util.PageID, dst []byte) error {
	off, err := fm.offset(pageId, dst)
	if err != nil {
		return err
	}

	fm.reads++
	n, err := fm.File.ReadAt(dst, off)
	if err != nil {
		return fmt.Errorf("read block %d: %w", pageId, err)
	}
	if n != util.PageSize {
		return fmt.Errorf("read block %d: %w", pageId, util.ErrShortTransfer)
	}
	return nil
}

/* WRITE FILE */
func (fm *FileManager) WritePage(pageId util.PageID, src []byte) error {
	off, err := fm.offset(pageId, src)
	if err != nil {
		return err
	}

	fm.writes++
	n, err := fm.File.WriteAt(src, off)
	if err != nil {
		return fmt.Errorf("write block %d: %w", pageId, err)
	}
	if n != util.PageSize {
		return fmt.Errorf("write block %d: %w", pageId, util.ErrShortTransfer)
	}
	return nil
}

func (fm *FileManager) Reads() int { return fm.reads }
func (fm *FileManager) Writes() int { return fm.writes }

/**
* CLOSE FUNCTION
**/
func (fm *FileManager) Close() error {
	if fm == nil || fm.File == nil {
		return nil // Idempotent
	}
	var err error
	if e := fm.File.Sync(); e != nil {
		err = errors.Join(err, fmt.Errorf("sync file: %w", e))
	}
	if e := fm.File.Close(); e != nil {
		err = errors.Join(err, fmt.Errorf("close file: %w", e))
	}
	fm.File = nil
	return err
}
