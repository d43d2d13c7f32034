package player_test

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/Baptiste-Leterrier/radio-conductor/audio"
	"github.com/Baptiste-Leterrier/radio-conductor/formats/wav"
	"github.com/Baptiste-Leterrier/radio-conductor/internal/audiotest"
	"github.com/Baptiste-Leterrier/radio-conductor/player"
)

type fakeSink struct {
	mu      sync.Mutex
	volumes []float64
	stops   int
	playing bool
}

func (s *fakeSink) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = true
}

func (s *fakeSink) SetVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volumes = append(s.volumes, v)
}

func (s *fakeSink) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stops++
	s.playing = false
	return nil
}

func (s *fakeSink) snapshot() (volumes []float64, stops int, playing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]float64(nil), s.volumes...), s.stops, s.playing
}

type fakeDevice struct {
	mu    sync.Mutex
	sinks []*fakeSink
}

func (d *fakeDevice) NewSink(r io.Reader) player.Sink {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := &fakeSink{}
	d.sinks = append(d.sinks, s)
	return s
}

func (d *fakeDevice) sink(i int) *fakeSink {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sinks[i]
}

func (d *fakeDevice) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.sinks)
}

func newTestPlayer(t *testing.T) (*player.Player, *fakeDevice, string) {
	t.Helper()

	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})

	path := audiotest.WriteSineWAV(t, t.TempDir(), "clip.wav", 8000, 1, 0.1, 440)

	dev := &fakeDevice{}
	return player.NewWithDevice(dev, reg), dev, path
}

// waitStopped polls until the sink has been stopped or the deadline passes.
func waitStopped(t *testing.T, s *fakeSink) {
	t.Helper()

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		_, stops, _ := s.snapshot()
		if stops > 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("sink was never stopped")
}

func TestPlay(t *testing.T) {
	t.Parallel()

	p, dev, path := newTestPlayer(t)

	at := player.Session{Tab: 1, Button: 3}
	if err := p.Play(path, 0.1, at); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	if got := dev.count(); got != 1 {
		t.Fatalf("device sinks = %d, want 1", got)
	}
	if _, _, playing := dev.sink(0).snapshot(); !playing {
		t.Error("sink is not playing")
	}

	cur, ok := p.Current()
	if !ok {
		t.Fatal("Current() reports idle after Play")
	}
	if cur != at {
		t.Errorf("Current() = %+v, want %+v", cur, at)
	}
	if got := p.Duration(); got != 0.1 {
		t.Errorf("Duration() = %f, want 0.1", got)
	}

	time.Sleep(50 * time.Millisecond)
	if got := p.Elapsed(); got < 0.04 {
		t.Errorf("Elapsed() = %f after 50ms, want >= 0.04", got)
	}

	p.Stop()
}

func TestPlayMissingFileLeavesEngineIdle(t *testing.T) {
	t.Parallel()

	p, dev, _ := newTestPlayer(t)

	if err := p.Play("no/such/file.wav", 0, player.Session{}); err == nil {
		t.Fatal("Play() error = nil, want open error")
	}
	if got := dev.count(); got != 0 {
		t.Errorf("device sinks = %d, want 0", got)
	}
	if _, ok := p.Current(); ok {
		t.Error("Current() reports playing after failed Play")
	}
	if got := p.Elapsed(); got != 0.0 {
		t.Errorf("Elapsed() = %f, want 0.0 while idle", got)
	}
}

func TestPlayReplacesCurrentSink(t *testing.T) {
	t.Parallel()

	p, dev, path := newTestPlayer(t)

	if err := p.Play(path, 0.1, player.Session{Tab: 0, Button: 0}); err != nil {
		t.Fatal(err)
	}
	if err := p.Play(path, 0.1, player.Session{Tab: 0, Button: 1}); err != nil {
		t.Fatal(err)
	}

	if got := dev.count(); got != 2 {
		t.Fatalf("device sinks = %d, want 2", got)
	}

	volumes, stops, playing := dev.sink(0).snapshot()
	if stops != 1 {
		t.Errorf("first sink stops = %d, want exactly 1 hard stop", stops)
	}
	if len(volumes) != 0 {
		t.Errorf("first sink got %d volume writes, want 0 for a hard stop", len(volumes))
	}
	if playing {
		t.Error("first sink still playing")
	}

	if _, _, playing := dev.sink(1).snapshot(); !playing {
		t.Error("second sink is not playing")
	}

	cur, ok := p.Current()
	if !ok || cur.Button != 1 {
		t.Errorf("Current() = %+v, %v; want button 1 playing", cur, ok)
	}

	p.Stop()
}

func TestStop(t *testing.T) {
	t.Parallel()

	p, dev, path := newTestPlayer(t)

	if err := p.Play(path, 0.1, player.Session{}); err != nil {
		t.Fatal(err)
	}
	p.Stop()

	if _, stops, _ := dev.sink(0).snapshot(); stops != 1 {
		t.Errorf("sink stops = %d, want 1", stops)
	}
	if _, ok := p.Current(); ok {
		t.Error("Current() reports playing after Stop")
	}
	if got := p.Elapsed(); got != 0.0 {
		t.Errorf("Elapsed() = %f, want 0.0 after Stop", got)
	}
	if got := p.Duration(); got != 0.0 {
		t.Errorf("Duration() = %f, want 0.0 after Stop", got)
	}

	// Stopping again must not touch the sink
	p.Stop()
	if _, stops, _ := dev.sink(0).snapshot(); stops != 1 {
		t.Errorf("sink stops after second Stop = %d, want 1", stops)
	}
}

func TestFadeOut(t *testing.T) {
	t.Parallel()

	p, dev, path := newTestPlayer(t)

	if err := p.Play(path, 0.1, player.Session{Tab: 2, Button: 5}); err != nil {
		t.Fatal(err)
	}

	p.FadeOut()

	// The session clears immediately, before the ramp finishes
	if _, ok := p.Current(); ok {
		t.Error("Current() reports playing right after FadeOut")
	}

	s := dev.sink(0)
	waitStopped(t, s)

	volumes, stops, _ := s.snapshot()
	if stops != 1 {
		t.Errorf("sink stops = %d, want 1", stops)
	}
	if len(volumes) < 10 {
		t.Fatalf("got %d volume writes over a 1s ramp, want many small steps", len(volumes))
	}
	prev := 1.0
	for i, v := range volumes {
		if v < 0 || v > 1 {
			t.Fatalf("volumes[%d] = %f outside [0,1]", i, v)
		}
		if v > prev {
			t.Fatalf("volumes[%d] = %f rose above previous %f", i, v, prev)
		}
		prev = v
	}
	if volumes[len(volumes)-1] > 0.2 {
		t.Errorf("final volume write = %f, want near silence", volumes[len(volumes)-1])
	}
}

func TestFadeOutSingleFlight(t *testing.T) {
	t.Parallel()

	p, dev, path := newTestPlayer(t)

	if err := p.Play(path, 0.1, player.Session{}); err != nil {
		t.Fatal(err)
	}

	p.FadeOut()
	p.FadeOut()
	p.FadeOut()

	s := dev.sink(0)
	waitStopped(t, s)

	// A second worker would double up volume writes and stops
	volumes, stops, _ := s.snapshot()
	if stops != 1 {
		t.Errorf("sink stops = %d, want exactly 1", stops)
	}
	for i := 1; i < len(volumes); i++ {
		if volumes[i] > volumes[i-1] {
			t.Fatalf("volumes[%d] = %f rose above %f, interleaved workers", i, volumes[i], volumes[i-1])
		}
	}
}

func TestFadeOutWhileIdle(t *testing.T) {
	t.Parallel()

	p, dev, _ := newTestPlayer(t)

	p.FadeOut()
	if got := dev.count(); got != 0 {
		t.Errorf("device sinks = %d, want 0", got)
	}
}

func TestPlayDuringFade(t *testing.T) {
	t.Parallel()

	p, dev, path := newTestPlayer(t)

	if err := p.Play(path, 0.1, player.Session{Tab: 0, Button: 0}); err != nil {
		t.Fatal(err)
	}
	p.FadeOut()

	// Start a new clip while the old one is still ramping down
	at := player.Session{Tab: 0, Button: 7}
	if err := p.Play(path, 0.1, at); err != nil {
		t.Fatal(err)
	}

	old := dev.sink(0)
	waitStopped(t, old)
	time.Sleep(50 * time.Millisecond)

	// The fade worker only ever touches the old sink
	fresh := dev.sink(1)
	volumes, stops, playing := fresh.snapshot()
	if len(volumes) != 0 {
		t.Errorf("new sink got %d volume writes from the old fade", len(volumes))
	}
	if stops != 0 {
		t.Errorf("new sink stops = %d, want 0", stops)
	}
	if !playing {
		t.Error("new sink is not playing")
	}

	cur, ok := p.Current()
	if !ok || cur != at {
		t.Errorf("Current() = %+v, %v; want %+v playing after fade finished", cur, ok, at)
	}

	p.Stop()
}

func TestStopDuringFade(t *testing.T) {
	t.Parallel()

	p, dev, path := newTestPlayer(t)

	if err := p.Play(path, 0.1, player.Session{}); err != nil {
		t.Fatal(err)
	}
	p.FadeOut()
	time.Sleep(100 * time.Millisecond)
	p.Stop()

	s := dev.sink(0)
	_, _, playing := s.snapshot()
	if playing {
		t.Error("sink still playing after Stop")
	}

	// The worker keeps running but its writes are no-ops now
	before, stops, _ := s.snapshot()
	if stops != 1 {
		t.Errorf("sink stops = %d, want 1", stops)
	}
	time.Sleep(200 * time.Millisecond)
	after, stops, _ := s.snapshot()
	if len(after) != len(before) {
		t.Errorf("sink got %d volume writes after Stop", len(after)-len(before))
	}
	if stops != 1 {
		t.Errorf("sink stops = %d after fade deadline, want still 1", stops)
	}
}

func TestReset(t *testing.T) {
	t.Parallel()

	p, dev, path := newTestPlayer(t)

	if err := p.Play(path, 0.1, player.Session{Tab: 1, Button: 1}); err != nil {
		t.Fatal(err)
	}
	p.Reset()

	if _, stops, _ := dev.sink(0).snapshot(); stops != 1 {
		t.Errorf("sink stops = %d, want 1", stops)
	}
	if _, ok := p.Current(); ok {
		t.Error("Current() reports playing after Reset")
	}
	if p.Elapsed() != 0.0 || p.Duration() != 0.0 {
		t.Error("Reset did not clear elapsed and duration")
	}
}
