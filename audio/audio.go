// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Prober reports total frame count and sample rate from container or codec
// metadata, without decoding the payload. Decoders that cannot report total
// frames while streaming implement this separately so exact durations stay
// available.
type Prober interface {
	Probe(r io.Reader) (frames int64, sampleRate int, err error)
}

// Format returns the registry key for a file path: the lowercased
// extension without the leading dot ("wav", "mp3", "ogg", ...).
func Format(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg").
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[format]
	return d, ok
}

// OpenFile opens path and decodes it with the decoder registered for its
// extension. Closing the returned Source also closes the underlying file.
func (r *Registry) OpenFile(path string) (Source, error) {
	format := Format(path)
	d, ok := r.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	src, err := d.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return &fileSource{Source: src, f: f}, nil
}

// ProbeFile reports (frames, sampleRate) for path using the registered
// decoder's metadata prober. Fails with ErrNotProbeable when the decoder
// has no prober.
func (r *Registry) ProbeFile(path string) (int64, int, error) {
	d, ok := r.Get(Format(path))
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownFormat, Format(path))
	}

	p, ok := d.(Prober)
	if !ok {
		return 0, 0, ErrNotProbeable
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return p.Probe(f)
}

// fileSource ties the lifetime of the backing file to the Source.
type fileSource struct {
	Source
	f *os.File
}

func (s *fileSource) Close() error {
	err := s.Source.Close()
	if cerr := s.f.Close(); err == nil {
		err = cerr
	}
	return err
}
