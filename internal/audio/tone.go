// Package audio synthesises practice tones as WAV files, plays them through
// an external player and runs the audio lab menu.
package audio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	SampleRate = 44100
	BitDepth   = 16
	// MaxSeconds bounds a tone to one hour.
	MaxSeconds = 3600

	pcmFormat = 1
	maxAmp    = 32767
)

// ErrInvalidTone reports a tone that cannot be rendered.
var ErrInvalidTone = errors.New("invalid tone")

// SingleTone renders a mono sine at freq.
func SingleTone(freq, seconds, volume float64) (*goaudio.IntBuffer, error) {
	return render([]float64{freq}, seconds, volume)
}

// BinauralTone renders a stereo pair: the left ear hears carrier-beat/2 and
// the right ear carrier+beat/2.
func BinauralTone(carrier, beat, seconds, volume float64) (*goaudio.IntBuffer, error) {
	return render([]float64{carrier - beat/2, carrier + beat/2}, seconds, volume)
}

// Tone renders a binaural pair when beat is positive and a mono tone
// otherwise.
func Tone(carrier, beat, seconds, volume float64) (*goaudio.IntBuffer, error) {
	if beat > 0 {
		return BinauralTone(carrier, beat, seconds, volume)
	}
	return SingleTone(carrier, seconds, volume)
}

// render writes one channel per frequency, interleaved frame by frame.
func render(freqs []float64, seconds, volume float64) (*goaudio.IntBuffer, error) {
	for _, f := range freqs {
		if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: frequency %g Hz", ErrInvalidTone, f)
		}
	}
	if seconds <= 0 || math.IsNaN(seconds) || seconds > MaxSeconds {
		return nil, fmt.Errorf("%w: duration %g s (must be in (0, %d])", ErrInvalidTone, seconds, MaxSeconds)
	}
	volume = math.Max(0, math.Min(1, volume))

	total := int(SampleRate * seconds)
	chans := len(freqs)
	data := make([]int, total*chans)
	for i := 0; i < total; i++ {
		t := float64(i) / SampleRate
		for c, f := range freqs {
			data[i*chans+c] = int(volume * maxAmp * math.Sin(2*math.Pi*f*t))
		}
	}
	return &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: chans, SampleRate: SampleRate},
		Data:           data,
		SourceBitDepth: BitDepth,
	}, nil
}

// WriteWAV encodes buf as 16-bit PCM.
func WriteWAV(w io.WriteSeeker, buf *goaudio.IntBuffer) error {
	enc := wav.NewEncoder(w, buf.Format.SampleRate, BitDepth, buf.Format.NumChannels, pcmFormat)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finish wav: %w", err)
	}
	return nil
}

// SaveWAV writes buf to path, creating the directory. A partial file is
// removed on failure.
func SaveWAV(path string, buf *goaudio.IntBuffer) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create audio dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	return WriteWAV(f, buf)
}
