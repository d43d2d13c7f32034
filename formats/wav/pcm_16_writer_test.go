package wav

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestWriteWAV16_Header(t *testing.T) {
	t.Parallel()

	samples := []int16{100, -100, 200, -200}
	var buf bytes.Buffer
	if err := WriteWAV16(&buf, 8000, 1, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	data := buf.Bytes()
	if len(data) != 44+len(samples)*2 {
		t.Fatalf("output length = %d, want %d", len(data), 44+len(samples)*2)
	}

	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		t.Error("missing RIFF/WAVE markers")
	}
	if got := binary.LittleEndian.Uint16(data[22:24]); got != 1 {
		t.Errorf("channel count = %d, want 1", got)
	}
	if got := binary.LittleEndian.Uint32(data[24:28]); got != 8000 {
		t.Errorf("sample rate = %d, want 8000", got)
	}
	if got := binary.LittleEndian.Uint32(data[40:44]); got != uint32(len(samples)*2) {
		t.Errorf("data size = %d, want %d", got, len(samples)*2)
	}
}

func TestWriteWAV16_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteWAV16(&buf, 44100, 2, nil); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}
	if buf.Len() != 44 {
		t.Fatalf("output length = %d, want header only (44)", buf.Len())
	}
}

func TestWriteWAV16_RoundTrip(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 3000)
	for i := range samples {
		samples[i] = int16(i%200 - 100)
	}

	var buf bytes.Buffer
	if err := WriteWAV16(&buf, 22050, 2, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	src, err := Decoder{}.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.SampleRate() != 22050 || src.Channels() != 2 {
		t.Fatalf("decoded format = (%d Hz, %d ch), want (22050, 2)",
			src.SampleRate(), src.Channels())
	}
}
