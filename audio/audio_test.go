package audio

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// mockDecoder is a test decoder implementation
type mockDecoder struct {
	name string
}

func (d *mockDecoder) Decode(r io.Reader) (Source, error) {
	return newSilentSource(44100, 2, 100), nil
}

// failingDecoder always returns an error
type failingDecoder struct{}

func (d *failingDecoder) Decode(r io.Reader) (Source, error) {
	return nil, errors.New("decode failed")
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"clip.wav", "wav"},
		{"clip.WAV", "wav"},
		{"/tmp/a/b/horn.mp3", "mp3"},
		{"song.ogg", "ogg"},
		{"noext", ""},
		{"dir.d/noext", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := Format(tt.path); got != tt.want {
				t.Errorf("Format(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "wav"}

	registry.Register("wav", decoder)

	got, ok := registry.Get("wav")
	if !ok {
		t.Fatal("Registry.Get() failed to retrieve registered decoder")
	}

	if got != decoder {
		t.Error("Registry.Get() returned different decoder instance")
	}
}

func TestRegistry_GetNonExistent(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()

	_, ok := registry.Get("nonexistent")
	if ok {
		t.Error("Registry.Get() returned ok=true for non-existent format")
	}
}

func TestRegistry_OpenFileUnknownFormat(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()

	_, err := registry.OpenFile("clip.flac")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("OpenFile() error = %v, want ErrUnknownFormat", err)
	}
}

func TestRegistry_OpenFileMissingFile(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register("wav", &mockDecoder{})

	_, err := registry.OpenFile(filepath.Join(t.TempDir(), "missing.wav"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("OpenFile() error = %v, want wrapped os.ErrNotExist", err)
	}
}

func TestRegistry_OpenFileDecodeFailure(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.wav")
	if err := os.WriteFile(path, []byte("not audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	registry := NewRegistry()
	registry.Register("wav", &failingDecoder{})

	_, err := registry.OpenFile(path)
	if err == nil {
		t.Fatal("OpenFile() error = nil, want decode error")
	}
}

func TestRegistry_OpenFileClosesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ok.wav")
	if err := os.WriteFile(path, []byte("payload"), 0o644); err != nil {
		t.Fatal(err)
	}

	registry := NewRegistry()
	registry.Register("wav", &mockDecoder{})

	src, err := registry.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}

	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestRegistry_ProbeFileNotProbeable(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := os.WriteFile(path, []byte("payload"), 0o644); err != nil {
		t.Fatal(err)
	}

	registry := NewRegistry()
	registry.Register("wav", &mockDecoder{}) // no Probe method

	_, _, err := registry.ProbeFile(path)
	if !errors.Is(err, ErrNotProbeable) {
		t.Errorf("ProbeFile() error = %v, want ErrNotProbeable", err)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "test"}

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			registry.Register("format", decoder)
			registry.Get("format")
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}

	if _, ok := registry.Get("format"); !ok {
		t.Error("Registry.Get() failed after concurrent registration")
	}
}
