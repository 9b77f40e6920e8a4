// This file is part of Gophernes.
//
// Gophernes is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gophernes is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gophernes.  If not, see <https://www.gnu.org/licenses/>.

// Package wavwriter allows writing of audio data to disk as a WAV file. Note
// that audio data is buffered in memory in its entirity, and written to disk
// on program end. It is therefore probably only suitable for testing purposes.
package wavwriter

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/logger"
)

// WavError is the error pattern for all errors returned by the package.
const WavError = "wavwriter: %v"

const (
	bitDepth    = 16
	numChannels = 1

	// the audio format value for PCM data in the WAV header
	pcmFormat = 1
)

// WavWriter implements the television.AudioMixer interface.
type WavWriter struct {
	filename   string
	sampleRate int
	buffer     []int
}

// New is the preferred method of initialisation for the WavWriter type. The
// sample rate is the number of samples sent to the mixer every second.
func New(filename string, sampleRate int) (*WavWriter, error) {
	if sampleRate <= 0 {
		return nil, curated.Errorf(WavError, "sample rate must be positive")
	}

	aw := &WavWriter{
		filename:   filename,
		sampleRate: sampleRate,
		buffer:     make([]int, 0),
	}

	return aw, nil
}

// SetAudio implements the television.AudioMixer interface. Samples in the
// range 0.0 to 1.0 are converted to 16 bit values.
func (aw *WavWriter) SetAudio(samples []float32) error {
	for _, s := range samples {
		v := int(s * 32767.0)
		v = max(0, min(32767, v))
		aw.buffer = append(aw.buffer, v)
	}
	return nil
}

// EndMixing implements the television.AudioMixer interface.
func (aw *WavWriter) EndMixing() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf(WavError, err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf(WavError, err)
		}
	}()

	enc := wav.NewEncoder(f, aw.sampleRate, bitDepth, numChannels, pcmFormat)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: numChannels,
			SampleRate:  aw.sampleRate,
		},
		Data:           aw.buffer,
		SourceBitDepth: bitDepth,
	}

	logger.Logf(logger.Allow, "wavwriter", "writing audio to %s", aw.filename)

	if err := enc.Write(buf); err != nil {
		return curated.Errorf(WavError, err)
	}

	if err := enc.Close(); err != nil {
		return curated.Errorf(WavError, err)
	}

	return nil
}

// Samples returns the number of samples buffered.
func (aw *WavWriter) Samples() int {
	return len(aw.buffer)
}
