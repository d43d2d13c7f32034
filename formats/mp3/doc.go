// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 files into
// normalized float32 samples. go-mp3 always outputs 16-bit stereo PCM, so
// the source reports 2 channels regardless of the encoded layout.
//
// The decoder is also a metadata prober: go-mp3 reports the total decoded
// length in bytes for seekable inputs, which maps to an exact frame count.
package mp3
