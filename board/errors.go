package board

import "errors"

var (
	ErrNoSuchTab    = errors.New("no such tab")
	ErrNoSuchSlot   = errors.New("no such button slot")
	ErrLastTab      = errors.New("cannot remove the last tab")
	ErrEmptyTabName = errors.New("tab name must not be blank")
	ErrCorruptData  = errors.New("corrupt board data")
	ErrTruncated    = errors.New("truncated board data")
)
