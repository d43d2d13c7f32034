// SPDX-License-Identifier: EPL-2.0

// Package waveform computes visualization envelopes and exact durations
// for audio files.
//
// The envelope is a fixed-resolution peak signal: the file is decoded in
// full and every window of 1024 samples contributes its maximum absolute
// value as one envelope point. The envelope is indexed positionally, not
// by time; rendering code maps a pixel column to an envelope index by
// floor(pixelX / width * len(envelope)).
//
// Duration is deliberately not derived from the decoded sample count.
// Streaming decoders may not report total frames, so the extractor probes
// container metadata separately and computes frames/sampleRate. When the
// probe fails the duration is 0.0, which callers must treat as "unknown",
// not as zero-length audio.
package waveform
