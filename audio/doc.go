// SPDX-License-Identifier: EPL-2.0

// Package audio provides low-level audio processing primitives.
//
// This package contains the core building blocks shared by the waveform
// extractor and the playback engine:
//   - Source interface for decoded audio input
//   - Decoder and Prober interfaces for format plugins
//   - Registry for looking up decoders by file extension
//   - Resampler for sample rate conversion
//   - MonoMixer and StereoMixer for channel mapping
//
// # Source Interface
//
// The Source interface is the foundation of audio processing:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// All decoders and processors implement this interface, allowing them to be
// chained together in processing pipelines.
//
// # Format Registry
//
// The registry maps file extensions to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	src, err := registry.OpenFile("clip.wav")
//
// OpenFile picks the decoder from the path's extension and ties the file's
// lifetime to the returned Source. ProbeFile reads duration metadata
// (total frames and sample rate) without decoding the payload.
//
// # Resampling and Channel Mapping
//
// The Resampler changes the sample rate using cubic interpolation; the
// MonoMixer folds any channel count to mono by averaging and the
// StereoMixer maps any channel count to two channels. Together they adapt
// an arbitrary decoded stream to a fixed-format output device:
//
//	resampled := audio.NewResampler(src, 44100)
//	stereo := audio.NewStereoMixer(resampled)
//
// # Sample Format
//
// Audio samples are represented as float32 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// # Error Handling
//
// Processing functions return io.EOF when no more data is available:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    if err == io.EOF {
//	        break // Normal end of stream
//	    }
//	    if err != nil {
//	        return err // Processing error
//	    }
//	    // Process n samples from buf
//	}
package audio
