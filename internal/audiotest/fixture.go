// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Baptiste-Leterrier/radio-conductor/formats/wav"
)

// WriteSineWAV writes a 16-bit PCM WAV fixture of the given length into
// dir and returns its path. All channels carry the same sine tone.
func WriteSineWAV(t *testing.T, dir, name string, sampleRate, channels int, seconds float64, frequency float64) string {
	t.Helper()

	frames := int(float64(sampleRate) * seconds)
	samples := make([]int16, frames*channels)
	for f := 0; f < frames; f++ {
		ts := float64(f) / float64(sampleRate)
		v := int16(math.Sin(2*math.Pi*frequency*ts) * 0.8 * 32767.0)
		for c := 0; c < channels; c++ {
			samples[f*channels+c] = v
		}
	}

	path := filepath.Join(dir, name)
	out, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer out.Close()

	if err := wav.WriteWAV16(out, sampleRate, channels, samples); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}
