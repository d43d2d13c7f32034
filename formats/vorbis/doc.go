// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio decoding.
//
// This package uses github.com/jfreymuth/oggvorbis, which decodes directly
// to interleaved float32 samples, so no conversion pass is needed. The
// decoder also probes total frame count from the granule position of the
// final ogg page.
package vorbis
