// SPDX-License-Identifier: EPL-2.0

// Package board holds the soundboard model and its binary persistence.
//
// The model is a list of tabs, each an ordered run of buttons addressed by
// grid slot index. A button optionally carries a clip: the imported audio
// file's display name, source path, peak envelope and duration. Slots are
// created lazily when first populated.
//
// The invariant 0 <= ActiveTab < len(Tabs) holds at all times; every
// tab-list mutation clamps the index.
//
// Marshal and Unmarshal implement a compact little-endian binary codec
// (see codec.go for the exact layout). Playback engine state is never
// persisted: what was sounding at save time is simply gone after load.
// Unmarshal is all-or-nothing, so a failed load leaves the caller's
// current model untouched.
package board
