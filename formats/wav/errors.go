package wav

import "errors"

var (
	ErrNotWavFile       = errors.New("not a WAV file")
	ErrOnlyPCMSupported = errors.New("only integer PCM WAV supported")
)
