// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"fmt"
	"io"

	"github.com/viterin/vek/vek32"

	"github.com/Baptiste-Leterrier/radio-conductor/audio"
)

// WindowSize is the number of samples folded into one envelope point.
const WindowSize = 1024

// Extractor turns audio files into peak envelopes and exact durations.
// Envelope extraction decodes the whole file; duration comes from an
// independent metadata probe, since streaming decoders may not report
// total frames reliably.
type Extractor struct {
	reg     *audio.Registry
	scratch []float32
}

func NewExtractor(reg *audio.Registry) *Extractor {
	return &Extractor{
		reg:     reg,
		scratch: make([]float32, WindowSize),
	}
}

// Extract decodes path fully and returns its peak envelope together with
// the probed duration in seconds. A duration of 0.0 means the metadata
// probe failed and the true duration is unknown.
func (e *Extractor) Extract(path string) ([]float32, float64, error) {
	envelope, err := e.Envelope(path)
	if err != nil {
		return nil, 0, err
	}
	return envelope, e.Duration(path), nil
}

// Envelope decodes the entire file and emits one peak (max |sample|) per
// WindowSize samples of the decoder's interleaved output. The last window
// may cover fewer samples. All values are in [0,1] for normalized decode.
func (e *Extractor) Envelope(path string) ([]float32, error) {
	src, err := e.reg.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("envelope: %w", err)
	}
	defer src.Close()

	var envelope []float32
	window := make([]float32, WindowSize)
	filled := 0

	for {
		n, rerr := src.ReadSamples(window[filled:])
		filled += n

		if filled == WindowSize {
			envelope = append(envelope, e.peak(window))
			filled = 0
		}

		if rerr == io.EOF {
			if filled > 0 {
				envelope = append(envelope, e.peak(window[:filled]))
			}
			return envelope, nil
		}
		if rerr != nil {
			return nil, fmt.Errorf("envelope %s: %w", path, rerr)
		}
	}
}

// Duration probes container/codec metadata for total frames and sample
// rate and returns frames/rate in seconds. Probe failures are absorbed by
// design: 0.0 means unknown, never an error.
func (e *Extractor) Duration(path string) float64 {
	frames, rate, err := e.reg.ProbeFile(path)
	if err != nil || rate <= 0 || frames < 0 {
		return 0.0
	}
	return float64(frames) / float64(rate)
}

func (e *Extractor) peak(window []float32) float32 {
	scratch := e.scratch[:len(window)]
	copy(scratch, window)
	vek32.Abs_Inplace(scratch)
	return vek32.Max(scratch)
}
