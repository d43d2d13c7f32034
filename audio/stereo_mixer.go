// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// StereoMixer maps any channel count to exactly two channels: mono is
// duplicated to both channels, stereo passes through, and anything wider is
// folded to mono first. Output devices run at a fixed channel count, so
// every decoded stream goes through this before playback.
type StereoMixer struct {
	src Source
	tmp []float32
}

func NewStereoMixer(src Source) *StereoMixer {
	if src.Channels() > 2 {
		src = NewMonoMixer(src)
	}
	return &StereoMixer{
		src: src,
		tmp: make([]float32, 4096),
	}
}

func (m *StereoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *StereoMixer) Channels() int   { return 2 }
func (m *StereoMixer) BufSize() int    { return m.src.BufSize() }

func (m *StereoMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (m *StereoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if len(dst)%2 != 0 {
		return 0, ErrInvalidDstSize
	}
	if m.src.Channels() == 2 {
		return m.src.ReadSamples(dst)
	}

	// Mono source: read half as many samples, duplicate each one.
	frames := len(dst) / 2
	if cap(m.tmp) < frames {
		m.tmp = make([]float32, frames)
	}
	m.tmp = m.tmp[:frames]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}

	for f := 0; f < n; f++ {
		dst[2*f] = m.tmp[f]
		dst[2*f+1] = m.tmp[f]
	}

	return n * 2, err
}
