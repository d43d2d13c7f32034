package audio

import (
	"io"
	"math"
)

// mockSource generates synthetic samples for in-package tests.
type mockSource struct {
	sampleRate  int
	channels    int
	totalFrames int
	readFrames  int
	waveform    func(frame, channel int) float32
	closed      bool
}

func newMockSource(sampleRate, channels, totalFrames int, waveform func(frame, channel int) float32) *mockSource {
	return &mockSource{
		sampleRate:  sampleRate,
		channels:    channels,
		totalFrames: totalFrames,
		waveform:    waveform,
	}
}

func newSilentSource(sampleRate, channels, totalFrames int) *mockSource {
	return newMockSource(sampleRate, channels, totalFrames, func(frame, channel int) float32 {
		return 0.0
	})
}

func newSineSource(sampleRate, channels, totalFrames int, frequency float64) *mockSource {
	return newMockSource(sampleRate, channels, totalFrames, func(frame, channel int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

func (m *mockSource) SampleRate() int { return m.sampleRate }
func (m *mockSource) Channels() int   { return m.channels }
func (m *mockSource) BufSize() int    { return 4096 }

func (m *mockSource) Close() error {
	m.closed = true
	return nil
}

func (m *mockSource) ReadSamples(dst []float32) (int, error) {
	if m.readFrames >= m.totalFrames {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.totalFrames-m.readFrames)
	for f := 0; f < frames; f++ {
		for c := 0; c < m.channels; c++ {
			dst[f*m.channels+c] = m.waveform(m.readFrames+f, c)
		}
	}
	m.readFrames += frames

	n := frames * m.channels
	if m.readFrames >= m.totalFrames {
		return n, io.EOF
	}
	return n, nil
}
