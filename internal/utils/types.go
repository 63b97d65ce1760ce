package util

import (
	"fmt"
	"strings"
)

// PageID identifies a virtual page
type PageID int

// FrameID identifies a physical frame
type FrameID int

// NoFrame marks an unmapped page table entry or an empty frame lookup
const NoFrame FrameID = -1

// PageSize is the size of a page, a frame and a disk block (4KB)
const PageSize = 4096

// Protection is the access mask of a page table entry
type Protection uint8

const (
	ProtNone  Protection = 0
	ProtRead  Protection = 1 << 0
	ProtWrite Protection = 1 << 1
	ProtRW               = ProtRead | ProtWrite
)

func (p Protection) CanRead() bool  { return p&ProtRead != 0 }
func (p Protection) CanWrite() bool { return p&ProtWrite != 0 }

func (p Protection) String() string {
	var b strings.Builder
	if p.CanRead() {
		b.WriteByte('R')
	} else {
		b.WriteByte('-')
	}
	if p.CanWrite() {
		b.WriteByte('W')
	} else {
		b.WriteByte('-')
	}
	return b.String()
}

// ErrorType classifies simulation errors by the phase they happen in
type ErrorType int

const (
	ErrTypeConfig ErrorType = iota
	ErrTypeResource
	ErrTypeInternal
)

func (t ErrorType) String() string {
	switch t {
	case ErrTypeConfig:
		return "config"
	case ErrTypeResource:
		return "resource"
	case ErrTypeInternal:
		return "internal"
	default:
		return fmt.Sprintf("ErrorType(%d)", int(t))
	}
}

// SimError represents a simulation error with its class
type SimError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *SimError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("virtmem %s error: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("virtmem %s error: %s", e.Type, e.Message)
}

func (e *SimError) Unwrap() error { return e.Cause }

// NewSimError creates a new simulation error
func NewSimError(errType ErrorType, message string, cause error) *SimError {
	return &SimError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}
