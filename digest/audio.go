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

package digest

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/jetsetilly/gophernes/hardware/television"
)

// the length of the buffer we're using isn't really important. that said, it
// needs to be at least sha1.Size bytes in length
const audioBufferLength = 1024 + sha1.Size

// to allow us to create digests on audio streams longer than
// audioBufferLength, we'll stuff the previous digest value into the first part
// of the buffer array and make sure we include it when we create the next
// digest value
const audioBufferStart = sha1.Size

// the number of bytes used to represent a single sample
const sampleDepth = 4

// Audio is an implementation of the television.AudioMixer interface. The
// digest does not depend on how the samples are grouped by the television.
type Audio struct {
	digest   [sha1.Size]byte
	buffer   []uint8
	bufferCt int
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio(tv *television.Television) *Audio {
	dig := &Audio{
		buffer:   make([]uint8, audioBufferLength),
		bufferCt: audioBufferStart,
	}
	if tv != nil {
		tv.AddAudioMixer(dig)
	}
	return dig
}

func (dig *Audio) String() string {
	return dig.Hash()
}

// Hash implements digest.Digest interface. Samples that have not yet filled
// the buffer are included in the hash.
func (dig *Audio) Hash() string {
	if dig.bufferCt == audioBufferStart {
		return fmt.Sprintf("%x", dig.digest)
	}
	buf := make([]uint8, dig.bufferCt)
	copy(buf, dig.digest[:])
	copy(buf[audioBufferStart:], dig.buffer[audioBufferStart:dig.bufferCt])
	return fmt.Sprintf("%x", sha1.Sum(buf))
}

// ResetDigest implements digest.Digest interface.
func (dig *Audio) ResetDigest() {
	clear(dig.digest[:])
	dig.bufferCt = audioBufferStart
}

// SetAudio implements the television.AudioMixer interface.
func (dig *Audio) SetAudio(samples []float32) error {
	for _, s := range samples {
		binary.LittleEndian.PutUint32(dig.buffer[dig.bufferCt:], math.Float32bits(s))
		dig.bufferCt += sampleDepth
		if dig.bufferCt+sampleDepth > audioBufferLength {
			dig.flush()
		}
	}
	return nil
}

func (dig *Audio) flush() {
	copy(dig.buffer, dig.digest[:])
	dig.digest = sha1.Sum(dig.buffer[:dig.bufferCt])
	dig.bufferCt = audioBufferStart
}

// EndMixing implements the television.AudioMixer interface.
func (dig *Audio) EndMixing() error {
	return nil
}
