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

//go:build !headless

package hostaudio

import (
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/hardware/television"
	"github.com/jetsetilly/gophernes/logger"
)

// AudioError is the error pattern for all errors returned by the package.
const AudioError = "hostaudio: %v"

// the amount of audio buffered by the audio device
const bufferSize = 50 * time.Millisecond

// Audio implements the television.AudioMixer interface.
type Audio struct {
	ctx    *oto.Context
	player *oto.Player
	stream *stream
}

// NewAudio is the preferred method of initialisation for the Audio type. The
// sample rate is the number of samples sent to the mixer every second.
func NewAudio(sampleRate int, policy television.Policy, timeout time.Duration) (*Audio, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   bufferSize,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, curated.Errorf(AudioError, err)
	}
	<-ready

	aud := &Audio{
		ctx:    ctx,
		stream: newStream(policy, timeout),
	}
	aud.player = ctx.NewPlayer(aud.stream)
	aud.player.Play()

	logger.Logf(logger.Allow, "hostaudio", "playing at %dHz", sampleRate)

	return aud, nil
}

// SetAudio implements the television.AudioMixer interface.
func (aud *Audio) SetAudio(samples []float32) error {
	return aud.stream.send(samples)
}

// EndMixing implements the television.AudioMixer interface.
func (aud *Audio) EndMixing() error {
	if d := aud.stream.queue.Dropped(); d > 0 {
		logger.Logf(logger.Allow, "hostaudio", "%d sample buffers dropped", d)
	}
	if err := aud.player.Close(); err != nil {
		return curated.Errorf(AudioError, err)
	}
	return nil
}
