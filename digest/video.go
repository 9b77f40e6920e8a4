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
	"fmt"

	"github.com/jetsetilly/gophernes/hardware/television"
)

// Video is an implementation of the television.FrameRenderer interface. It
// generates a SHA-1 value of the image every frame. It does not display the
// image anywhere.
//
// The digest is chained, meaning that the digest of every frame includes the
// digest of the previous frame.
type Video struct {
	digest   [sha1.Size]byte
	data     []byte
	frameNum int
	frames   int
}

// NewVideo is the preferred method of initialisation for the Video type.
func NewVideo(tv *television.Television) *Video {
	dig := &Video{}
	if tv != nil {
		tv.AddFrameRenderer(dig)
	}
	return dig
}

func (dig *Video) String() string {
	return fmt.Sprintf("%s (%d frames)", dig.Hash(), dig.frames)
}

// Hash implements digest.Digest interface.
func (dig *Video) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements digest.Digest interface.
func (dig *Video) ResetDigest() {
	clear(dig.digest[:])
	dig.frames = 0
}

// NewFrame implements the television.FrameRenderer interface.
func (dig *Video) NewFrame(frame *television.Frame) error {
	// chain fingerprints by copying the value of the last fingerprint to the
	// head of the video data
	dig.data = append(dig.data[:0], dig.digest[:]...)
	dig.data = appendPixels(dig.data, frame.Pixels)
	dig.digest = sha1.Sum(dig.data)
	dig.frameNum = frame.Number
	dig.frames++
	return nil
}

// EndRendering implements the television.FrameRenderer interface.
func (dig *Video) EndRendering() error {
	return nil
}
