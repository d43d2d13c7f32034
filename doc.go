// SPDX-License-Identifier: EPL-2.0

// Package radioconductor is a soundboard engine: a grid of audio buttons
// organized into tabs, with waveform visualization data, single-slot
// playback with fade-out, and compact binary persistence.
//
// # Components
//
// The module is split into small packages:
//   - audio: Source/Decoder interfaces, extension registry, resampling and
//     channel mapping primitives shared by extraction and playback
//   - formats/wav, formats/mp3, formats/vorbis, formats/aiff: decoders
//   - waveform: peak envelope extraction and metadata duration probing
//   - player: the playback engine (one sink, fade-out worker)
//   - board: the tab/button model and its binary codec
//
// # Quick Start
//
//	reg := radioconductor.NewRegistry()
//	eng, err := player.New(reg)
//	if err != nil {
//	    // no audio device
//	}
//	app := radioconductor.NewApp(eng, reg)
//
//	// Import a file into slot 3 of the active tab
//	app.RequestAdd(3)
//	if err := app.ResolvePending("airhorn.wav"); err != nil {
//	    // file unreadable or not decodable; the board is unchanged
//	}
//
//	// Click the button: play, or fade out when already sounding
//	app.Toggle(app.Board.ActiveTab, 3)
//
//	// Persist the layout
//	app.Save(radioconductor.DefaultSaveName)
//
// # Data Flow
//
// Importing a file decodes it twice on purpose: the waveform extractor
// decodes everything for the peak envelope while probing exact duration
// from metadata, and the player later opens its own streaming decode
// session. The two uses need different access patterns, so they do not
// share a session.
//
// Saving routes the whole model through the board codec; the playback
// engine is excluded from persisted state and is always idle after a load.
package radioconductor
