// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF audio decoding.
//
// This package uses github.com/go-audio/aiff to decode AIFF files into
// normalized float32 samples. Only 16-bit PCM is supported. The COMM chunk
// carries the total sample frame count, which the prober reports for exact
// duration calculation.
package aiff
