package page

import (
	util "github.com/bietkhonhungvandi212/virtmem/internal/utils"
)

// CreateTestBlock returns a page-sized block whose every byte is derived from
// the page id, so a block read back can be traced to the page it came from.
func CreateTestBlock(pageID util.PageID) []byte {
	b := make([]byte, util.PageSize)
	for i := range b {
		b[i] = byte(int(pageID)*31 + i)
	}
	return b
}
