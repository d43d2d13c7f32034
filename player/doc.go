// SPDX-License-Identifier: EPL-2.0

// Package player implements the playback engine: a single playback slot
// over a process-lifetime output device.
//
// The engine is a small state machine. Idle: no sink. Playing: one sink at
// full or ramped volume with a recorded start instant. Fading: a
// background worker ramps the volume to zero over one second in 16 ms
// steps and then stops the sink.
//
// Play always hard-stops the previous sink before starting a new one.
// FadeOut is single-flight: the in-flight fade is tracked as a task handle
// and a second call while one is running does nothing. The fade worker
// keeps its own reference to the sink it ramps, detached from the engine's
// current sink, so a clip started mid-fade is never affected by the old
// fade's volume writes.
//
// Playback position is approximated by wall clock (Elapsed), trading
// precision for simplicity. The engine does not detect natural end of
// clip; callers compare Elapsed against the clip duration.
//
// Decoding goes through the same audio.Registry the waveform extractor
// uses, but through an independent decode session: playback needs a
// streaming source, extraction needs the whole file.
package player
