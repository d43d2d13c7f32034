package mp3

import "errors"

var (
	ErrUnknownLength = errors.New("mp3 stream length unavailable")
)
