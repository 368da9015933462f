package kvjson

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package wraps exactly one of
// these, so callers can branch with errors.Is.
var (
	ErrIoUnavailable         = errors.New("file or directory unavailable")
	ErrUnexpectedFileType    = errors.New("unexpected file type")
	ErrInvalidSubFolderRoot  = errors.New("invalid sub-folder root")
	ErrUnbalancedNesting     = errors.New("unbalanced nesting")
	ErrMalformedSourceMarker = errors.New("data block marker not found")
	ErrInvalidSubFolderCount = errors.New("invalid sub-folder count")
	ErrInvalidRepairTable    = errors.New("invalid repair table")
)

// NestingError reports where the tree builder lost track of the structure.
type NestingError struct {
	Line    int
	Message string
}

func (e *NestingError) Error() string {
	if e.Line <= 0 {
		return fmt.Sprintf("%s: %s", ErrUnbalancedNesting, e.Message)
	}
	return fmt.Sprintf("line %d: %s: %s", e.Line, ErrUnbalancedNesting, e.Message)
}

func (e *NestingError) Unwrap() error { return ErrUnbalancedNesting }
