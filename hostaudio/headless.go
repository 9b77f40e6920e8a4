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

//go:build headless

package hostaudio

import (
	"time"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/hardware/television"
)

// AudioError is the error pattern for all errors returned by the package.
const AudioError = "hostaudio: %v"

// Audio is not available in headless builds.
type Audio struct {
	stream *stream
}

// NewAudio always returns an error in headless builds.
func NewAudio(_ int, _ television.Policy, _ time.Duration) (*Audio, error) {
	return nil, curated.Errorf(AudioError, "not available in headless build")
}

// SetAudio implements the television.AudioMixer interface.
func (aud *Audio) SetAudio(samples []float32) error {
	return nil
}

// EndMixing implements the television.AudioMixer interface.
func (aud *Audio) EndMixing() error {
	return nil
}
