// SPDX-License-Identifier: EPL-2.0

package player

import (
	"encoding/binary"
	"io"

	"github.com/Baptiste-Leterrier/radio-conductor/audio"
	"github.com/Baptiste-Leterrier/radio-conductor/utils"
)

// pcmStream adapts a float32 Source to the 16-bit little-endian byte
// stream the output device consumes.
type pcmStream struct {
	src audio.Source
	buf []float32
}

func newPCMStream(src audio.Source) *pcmStream {
	return &pcmStream{
		src: src,
		buf: make([]float32, 4096),
	}
}

func (p *pcmStream) Read(dst []byte) (int, error) {
	samples := len(dst) / 2
	if samples == 0 {
		return 0, nil
	}

	if cap(p.buf) < samples {
		p.buf = make([]float32, samples)
	}
	p.buf = p.buf[:samples]

	n, err := p.src.ReadSamples(p.buf)
	for i := range n {
		binary.LittleEndian.PutUint16(dst[2*i:2*i+2], uint16(utils.Float32ToInt16(p.buf[i])))
	}

	if n > 0 && err == io.EOF {
		// Deliver the tail; the next Read reports EOF
		return n * 2, nil
	}
	return n * 2, err
}
