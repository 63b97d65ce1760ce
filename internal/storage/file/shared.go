package file

import (
	util "github.com/bietkhonhungvandi212/virtmem/internal/utils"
)

// Filer is a block device addressed by page number. Every call moves exactly
// one PageSize block.
type Filer interface {
	ReadPage(pageId util.PageID, dst []byte) error
	WritePage(pageId util.PageID, src []byte) error
}
