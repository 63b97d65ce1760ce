package util

import "errors"

var (
	ErrInvalidPageId      = errors.New("invalid page id")
	ErrInvalidFrameId     = errors.New("invalid frame id")
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidPageCount   = errors.New("page count must be positive")
	ErrInvalidFrameCount  = errors.New("frame count must be positive")
	ErrPageOutOfBounds    = errors.New("page out of bounds")
	ErrAddressOutOfBounds = errors.New("virtual address out of bounds")
	ErrShortTransfer      = errors.New("short block transfer")
	ErrFileManagerNil     = errors.New("file manager is nil")
	ErrFileClosed         = errors.New("file is closed")
	ErrUnknownPolicy      = errors.New("unknown replacement policy")
	ErrUnknownProgram     = errors.New("unknown program")
	ErrPageAlreadyLoaded  = errors.New("page already resident in another frame")
	ErrNoFreeFrame        = errors.New("no free frames")
	ErrFaultNotResolved   = errors.New("fault handler did not resolve access")
	ErrNilFaultHandler    = errors.New("fault handler is nil")
)
