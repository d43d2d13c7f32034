// SPDX-License-Identifier: EPL-2.0

package board

import (
	"encoding/binary"
	"fmt"
	"image/color"
	"math"
	"os"
)

// Binary layout, all integers and floats little-endian:
//
//	magic "RCBD", u16 version
//	u32 activeTab
//	u32 tabCount, per tab:
//	  string name
//	  u32 buttonCount, per button:
//	    string label
//	    f32 position.x, f32 position.y
//	    u32 packed color (straight alpha, R low byte .. A high byte)
//	    u8 clip present; if present:
//	      string name, string path
//	      u32 envelope length, that many f32
//	      f32 duration seconds
//
// Strings are u32 length-prefixed UTF-8. The playback engine is never part
// of the encoding; a loaded board always starts with an idle engine.

var codecMagic = [4]byte{'R', 'C', 'B', 'D'}

const codecVersion = 1

// Marshal encodes the board to its binary form.
func Marshal(b *Board) []byte {
	e := encoder{}
	e.raw(codecMagic[:])
	e.u16(codecVersion)
	e.u32(uint32(b.ActiveTab))
	e.u32(uint32(len(b.Tabs)))

	for _, t := range b.Tabs {
		e.str(t.Name)
		e.u32(uint32(len(t.Buttons)))
		for _, btn := range t.Buttons {
			e.str(btn.Label)
			e.f32(btn.Position.X)
			e.f32(btn.Position.Y)
			e.u32(packColor(btn.Color))
			if btn.Clip == nil {
				e.u8(0)
				continue
			}
			e.u8(1)
			e.str(btn.Clip.Name)
			e.str(btn.Clip.Path)
			e.u32(uint32(len(btn.Clip.Envelope)))
			for _, v := range btn.Clip.Envelope {
				e.f32(v)
			}
			e.f32(float32(btn.Clip.Duration))
		}
	}

	return e.buf
}

// Unmarshal decodes a board from its binary form. Decoding is
// all-or-nothing: any malformed or truncated input fails without producing
// a partial board. The active tab index is clamped into range.
func Unmarshal(data []byte) (*Board, error) {
	d := decoder{data: data}

	var magic [4]byte
	d.raw(magic[:])
	if d.err == nil && magic != codecMagic {
		return nil, fmt.Errorf("%w: bad magic", ErrCorruptData)
	}
	if v := d.u16(); d.err == nil && v != codecVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptData, v)
	}

	activeTab := d.u32()
	tabCount := d.u32()
	if d.err == nil && tabCount == 0 {
		return nil, fmt.Errorf("%w: board without tabs", ErrCorruptData)
	}

	b := &Board{}
	for i := uint32(0); i < tabCount; i++ {
		if d.err != nil {
			break
		}
		t := Tab{Name: d.str()}
		buttonCount := d.u32()
		for j := uint32(0); j < buttonCount; j++ {
			if d.err != nil {
				break
			}
			btn := Button{
				Label: d.str(),
				Position: Vec2{
					X: d.f32(),
					Y: d.f32(),
				},
				Color: unpackColor(d.u32()),
			}
			if d.u8() != 0 {
				clip := &Clip{
					Name: d.str(),
					Path: d.str(),
				}
				envLen := d.u32()
				if d.err == nil && int(envLen) > d.remaining()/4 {
					d.err = fmt.Errorf("%w: envelope length %d", ErrCorruptData, envLen)
					break
				}
				clip.Envelope = make([]float32, envLen)
				for i := range clip.Envelope {
					clip.Envelope[i] = d.f32()
				}
				clip.Duration = float64(d.f32())
				btn.Clip = clip
			}
			t.Buttons = append(t.Buttons, btn)
		}
		b.Tabs = append(b.Tabs, t)
	}

	if d.err != nil {
		return nil, d.err
	}
	if d.remaining() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorruptData, d.remaining())
	}

	b.ActiveTab = int(activeTab)
	b.clampActive()
	return b, nil
}

// Save writes the encoded board to path.
func (b *Board) Save(path string) error {
	if err := os.WriteFile(path, Marshal(b), 0o644); err != nil {
		return fmt.Errorf("save board: %w", err)
	}
	return nil
}

// Load reads and decodes a board file. Callers keep their current board
// unless Load succeeds (stage-then-swap).
func Load(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load board: %w", err)
	}
	return Unmarshal(data)
}

// packColor converts the in-memory premultiplied color to the straight
// (non-premultiplied) packed form used on disk. The two representations do
// not share a bit layout; skipping the conversion corrupts translucent
// colors on round-trip.
func packColor(c color.RGBA) uint32 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return uint32(n.R) | uint32(n.G)<<8 | uint32(n.B)<<16 | uint32(n.A)<<24
}

func unpackColor(v uint32) color.RGBA {
	n := color.NRGBA{
		R: uint8(v),
		G: uint8(v >> 8),
		B: uint8(v >> 16),
		A: uint8(v >> 24),
	}
	return color.RGBAModel.Convert(n).(color.RGBA)
}

type encoder struct {
	buf []byte
}

func (e *encoder) raw(p []byte) { e.buf = append(e.buf, p...) }
func (e *encoder) u8(v uint8)   { e.buf = append(e.buf, v) }
func (e *encoder) u16(v uint16) { e.buf = binary.LittleEndian.AppendUint16(e.buf, v) }
func (e *encoder) u32(v uint32) { e.buf = binary.LittleEndian.AppendUint32(e.buf, v) }
func (e *encoder) f32(v float32) {
	e.buf = binary.LittleEndian.AppendUint32(e.buf, math.Float32bits(v))
}
func (e *encoder) str(s string) {
	e.u32(uint32(len(s)))
	e.buf = append(e.buf, s...)
}

// decoder reads the layout back, latching the first error.
type decoder struct {
	data []byte
	off  int
	err  error
}

func (d *decoder) remaining() int { return len(d.data) - d.off }

func (d *decoder) take(n int) []byte {
	if d.err != nil {
		return nil
	}
	if d.remaining() < n {
		d.err = ErrTruncated
		return nil
	}
	p := d.data[d.off : d.off+n]
	d.off += n
	return p
}

func (d *decoder) raw(dst []byte) {
	p := d.take(len(dst))
	if p != nil {
		copy(dst, p)
	}
}

func (d *decoder) u8() uint8 {
	p := d.take(1)
	if p == nil {
		return 0
	}
	return p[0]
}

func (d *decoder) u16() uint16 {
	p := d.take(2)
	if p == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(p)
}

func (d *decoder) u32() uint32 {
	p := d.take(4)
	if p == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(p)
}

func (d *decoder) f32() float32 {
	return math.Float32frombits(d.u32())
}

func (d *decoder) str() string {
	n := d.u32()
	if d.err == nil && int(n) > d.remaining() {
		d.err = ErrTruncated
		return ""
	}
	return string(d.take(int(n)))
}
