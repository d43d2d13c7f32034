// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio decoding and encoding.
//
// It uses the github.com/go-audio library for robust WAV file handling.
// The decoder produces normalized float32 samples via audio.Source and
// doubles as a metadata prober: total frame count and sample rate come from
// the header, so exact durations are available without decoding the
// payload.
//
// WriteWAV16 writes mono 16-bit PCM WAV files and is mainly used to build
// test fixtures and export processed audio.
package wav
