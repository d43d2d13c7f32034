// SPDX-License-Identifier: EPL-2.0

package radioconductor

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/Baptiste-Leterrier/radio-conductor/audio"
	"github.com/Baptiste-Leterrier/radio-conductor/board"
	"github.com/Baptiste-Leterrier/radio-conductor/formats/aiff"
	"github.com/Baptiste-Leterrier/radio-conductor/formats/mp3"
	"github.com/Baptiste-Leterrier/radio-conductor/formats/vorbis"
	"github.com/Baptiste-Leterrier/radio-conductor/formats/wav"
	"github.com/Baptiste-Leterrier/radio-conductor/player"
	"github.com/Baptiste-Leterrier/radio-conductor/waveform"
)

// DefaultSaveName is the file name suggested when saving a board.
const DefaultSaveName = "radio_conductor_save.bin"

// NewRegistry returns a decoder registry with all built-in formats
// registered under their usual extensions.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	return reg
}

// ImportClip runs the waveform extractor over path and builds a clip named
// after the file. Import failures leave nothing half-built: either a full
// clip comes back or an error does.
func ImportClip(ext *waveform.Extractor, path string) (board.Clip, error) {
	envelope, duration, err := ext.Extract(path)
	if err != nil {
		return board.Clip{}, fmt.Errorf("import %s: %w", filepath.Base(path), err)
	}
	return board.Clip{
		Name:     filepath.Base(path),
		Path:     path,
		Envelope: envelope,
		Duration: duration,
	}, nil
}

// App ties the model, the extractor and the playback engine together the
// way a UI frontend drives them. It is not safe for concurrent use; one
// control thread owns it.
type App struct {
	Board  *board.Board
	Player *player.Player

	ext     *waveform.Extractor
	pending board.Request
}

func NewApp(p *player.Player, reg *audio.Registry) *App {
	return &App{
		Board:  board.New(),
		Player: p,
		ext:    waveform.NewExtractor(reg),
	}
}

// Toggle handles a button click on (tab, slot): fade out when that button
// is the one sounding, otherwise fade whatever plays and start this clip.
func (a *App) Toggle(tab, slot int) error {
	btn := a.Board.Button(tab, slot)
	if btn == nil || btn.Clip == nil {
		return board.ErrNoSuchSlot
	}

	target := player.Session{Tab: tab, Button: slot}
	if cur, ok := a.Player.Current(); ok {
		a.Player.FadeOut()
		if cur == target {
			return nil
		}
	}

	return a.Player.Play(btn.Clip.Path, btn.Clip.Duration, target)
}

// RequestAdd records that slot asked for a new clip; the file picker runs
// asynchronously and the answer arrives via ResolvePending.
func (a *App) RequestAdd(slot int) {
	a.pending = board.Request{Kind: board.AddToSlot, Slot: slot}
}

// RequestReplace records that the button at slot asked to change its clip.
func (a *App) RequestReplace(slot int) {
	a.pending = board.Request{Kind: board.ReplaceClipOf, Slot: slot}
}

// Pending reports the outstanding picker request, if any.
func (a *App) Pending() board.Request { return a.pending }

// ResolvePending consumes the pending request with the path the picker
// returned. An empty path means the user cancelled and drops the request.
// When import fails the prior button state stays untouched and the error
// surfaces for the UI to display.
func (a *App) ResolvePending(path string) error {
	req := a.pending
	a.pending = board.Request{}

	if !req.Pending() || path == "" {
		return nil
	}

	clip, err := ImportClip(a.ext, path)
	if err != nil {
		return err
	}

	switch req.Kind {
	case board.AddToSlot:
		return a.Board.PlaceClip(a.Board.ActiveTab, req.Slot, clip)
	case board.ReplaceClipOf:
		target := player.Session{Tab: a.Board.ActiveTab, Button: req.Slot}
		if cur, ok := a.Player.Current(); ok && cur == target {
			// Replacing the sounding clip terminates it abruptly
			a.Player.Stop()
		}
		return a.Board.ReplaceClip(a.Board.ActiveTab, req.Slot, clip)
	}
	return nil
}

// Tick clears the session once the clip has played out. The engine never
// detects natural end of clip itself, so the UI calls this every frame.
func (a *App) Tick() {
	if _, ok := a.Player.Current(); !ok {
		return
	}
	d := a.Player.Duration()
	if d > 0 && a.Player.Elapsed() >= d {
		a.Player.Stop()
	}
}

// Save writes the board to path.
func (a *App) Save(path string) error {
	return a.Board.Save(path)
}

// Load replaces the board with the contents of path and resets the engine
// to idle. On failure the current board stays in place.
func (a *App) Load(path string) error {
	loaded, err := board.Load(path)
	if err != nil {
		return err
	}
	a.Board = loaded
	a.pending = board.Request{}
	a.Player.Reset()
	return nil
}

// FormatTime renders seconds as MM:SS, or HH:MM:SS from one hour up.
// Negative input renders as 00:00, which keeps a countdown that slightly
// overshoots the clip end from showing garbage.
func FormatTime(seconds float64) string {
	s := int64(math.Max(seconds, 0))
	h := s / 3600
	m := (s % 3600) / 60
	sec := s % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%02d:%02d", m, sec)
}
