package vorbis

import "errors"

var (
	ErrUnknownLength = errors.New("vorbis stream length unavailable")
)
