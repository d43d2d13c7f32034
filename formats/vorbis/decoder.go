// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/Baptiste-Leterrier/radio-conductor/audio"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	// oggvorbis already yields interleaved float32 in [-1,1]
	n, err := s.dec.Read(dst)
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, nil
	}

	return n, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}, nil
}

// Probe reports total frames and sample rate. oggvorbis derives the total
// length from the granule position of the last ogg page.
func (Decoder) Probe(r io.Reader) (int64, int, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return 0, 0, fmt.Errorf("%w", err)
	}

	length := dec.Length()
	if length <= 0 {
		return 0, 0, ErrUnknownLength
	}

	return length, dec.SampleRate(), nil
}
