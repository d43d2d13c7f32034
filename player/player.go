// SPDX-License-Identifier: EPL-2.0

package player

import (
	"fmt"
	"sync"
	"time"

	"github.com/Baptiste-Leterrier/radio-conductor/audio"
)

const (
	fadeDuration = time.Second
	fadeStep     = 16 * time.Millisecond
)

// Session identifies which button is sounding, by tab and grid index.
type Session struct {
	Tab    int
	Button int
}

// Player owns the output device and a single playback slot. At most one
// sink plays at a time: starting a new clip hard-stops the previous sink,
// and FadeOut ramps the current sink down on a background worker.
type Player struct {
	dev Device
	reg *audio.Registry

	mu        sync.Mutex
	sink      *activeSink
	fade      *fadeTask
	session   Session
	playing   bool
	startedAt time.Time
	duration  float64
}

// New opens the output device and returns an idle Player.
func New(reg *audio.Registry) (*Player, error) {
	dev, err := OpenDevice()
	if err != nil {
		return nil, err
	}
	return NewWithDevice(dev, reg), nil
}

// NewWithDevice builds a Player on an already open device. Tests hand in a
// fake device here.
func NewWithDevice(dev Device, reg *audio.Registry) *Player {
	return &Player{dev: dev, reg: reg}
}

// Play starts playback of path, replacing whatever is currently sounding
// with an immediate hard stop. durationSeconds is the clip's known length;
// the engine stores it for callers that compare it against Elapsed, it
// does not bound playback. A decode failure aborts only this attempt and
// leaves the engine idle.
func (p *Player) Play(path string, durationSeconds float64, at Session) error {
	src, err := p.reg.OpenFile(path)
	if err != nil {
		return fmt.Errorf("play: %w", err)
	}

	pipeline := audio.Source(src)
	if pipeline.SampleRate() != DeviceRate {
		pipeline = audio.NewResampler(pipeline, DeviceRate)
	}
	pipeline = audio.NewStereoMixer(pipeline)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sink != nil {
		p.sink.Stop()
	}

	s := &activeSink{out: p.dev.NewSink(newPCMStream(pipeline)), src: pipeline}
	s.Play()

	p.sink = s
	p.session = at
	p.playing = true
	p.startedAt = time.Now()
	p.duration = durationSeconds
	return nil
}

// Stop hard-stops the current sink, if any, and returns the engine to
// idle. A fade in flight keeps running on its own detached sink reference;
// its volume writes hit an already stopped sink and are no-ops.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sink != nil {
		p.sink.Stop()
	}
	p.clearLocked()
}

// FadeOut ramps the current sink from full volume to silence over one
// second on a background worker, then stops it. At most one fade runs at a
// time; a FadeOut while one is in flight is a no-op. The worker holds its
// own reference to the sink being faded, so a Play issued mid-fade starts
// a fresh sink the worker never touches. The session is cleared
// immediately; the fade is fire-and-forget cleanup.
func (p *Player) FadeOut() {
	p.mu.Lock()
	if p.sink == nil || p.fade != nil {
		p.mu.Unlock()
		return
	}

	t := &fadeTask{sink: p.sink, done: make(chan struct{})}
	p.fade = t
	p.playing = false
	p.session = Session{}
	p.mu.Unlock()

	go p.runFade(t)
}

type fadeTask struct {
	sink *activeSink
	done chan struct{}
}

func (p *Player) runFade(t *fadeTask) {
	defer close(t.done)

	start := time.Now()
	for {
		elapsed := time.Since(start)
		if elapsed >= fadeDuration {
			break
		}
		t.sink.SetVolume(1.0 - elapsed.Seconds()/fadeDuration.Seconds())
		time.Sleep(fadeStep)
	}
	t.sink.Stop()

	p.mu.Lock()
	if p.fade == t {
		p.fade = nil
	}
	if p.sink == t.sink {
		p.clearLocked()
	}
	p.mu.Unlock()
}

// Elapsed returns wall-clock seconds since playback started, or 0.0 when
// idle. It is not corrected for device buffering or underruns; for
// soundboard clips the drift is imperceptible.
func (p *Player) Elapsed() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.startedAt.IsZero() {
		return 0.0
	}
	return time.Since(p.startedAt).Seconds()
}

// Current reports the session that is sounding, if any. A fading session
// is already logically stopped and reports false.
func (p *Player) Current() (Session, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session, p.playing
}

// Duration returns the clip length handed to Play, 0.0 when idle. Callers
// compare it against Elapsed to detect natural end of clip; the engine
// itself never does.
func (p *Player) Duration() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duration
}

// Reset hard-stops playback and clears all session state, leaving the
// engine as if freshly constructed. The device stays open; it is owned for
// the process lifetime. Used after loading a board from disk.
func (p *Player) Reset() {
	p.Stop()
}

func (p *Player) clearLocked() {
	p.sink = nil
	p.session = Session{}
	p.playing = false
	p.startedAt = time.Time{}
	p.duration = 0
}

// activeSink couples a device sink with the decode pipeline feeding it and
// makes Stop and SetVolume idempotent: a fade worker touching an already
// stopped sink must be a safe no-op.
type activeSink struct {
	out Sink
	src audio.Source

	mu      sync.Mutex
	stopped bool
}

func (s *activeSink) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.out.Play()
}

func (s *activeSink) SetVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.out.SetVolume(v)
}

func (s *activeSink) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	s.out.Stop()
	s.src.Close()
}
