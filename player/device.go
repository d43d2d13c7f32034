// SPDX-License-Identifier: EPL-2.0

package player

import (
	"fmt"
	"io"

	"github.com/ebitengine/oto/v3"
)

// Output device format. Every decoded stream is resampled and channel
// mapped to this before playback.
const (
	DeviceRate     = 44100
	DeviceChannels = 2
)

// Sink is an audio output consuming one PCM byte stream.
type Sink interface {
	Play()
	SetVolume(v float64)
	Stop() error
}

// Device creates sinks on the output stream. It abstracts the hardware so
// the engine can be driven by a fake in tests; the real device is opened
// once and lives for the whole process.
type Device interface {
	NewSink(r io.Reader) Sink
}

type otoDevice struct {
	ctx *oto.Context
}

// OpenDevice opens the process-wide output device and blocks until it is
// ready to accept samples.
func OpenDevice() (Device, error) {
	op := &oto.NewContextOptions{
		SampleRate:   DeviceRate,
		ChannelCount: DeviceChannels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	<-ready

	return &otoDevice{ctx: ctx}, nil
}

func (d *otoDevice) NewSink(r io.Reader) Sink {
	return &otoSink{player: d.ctx.NewPlayer(r)}
}

type otoSink struct {
	player *oto.Player
}

func (s *otoSink) Play()               { s.player.Play() }
func (s *otoSink) SetVolume(v float64) { s.player.SetVolume(v) }
func (s *otoSink) Stop() error         { return s.player.Close() }
