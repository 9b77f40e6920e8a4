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

// Package digest contains implementations of the television protocol
// interfaces, namely FrameRenderer and AudioMixer, such that a cryptographic
// hash is produced. The hash can then be used to compare output from
// subsequent emulation executions - if a new hash differs from a previously
// recorded value then something has changed. We use this as the basis for
// regression tests and snapshot verification.
//
// Note that the use of SHA-1 is fine for this application because this is not
// a cryptographic task.
package digest

import (
	"crypto/sha1"
	"fmt"

	"github.com/jetsetilly/gophernes/hardware/television/specification"
)

// Digest implementations should return a cryptographic hash in response to a
// Hash() request. Generation of the hash is achieved via another interface.
type Digest interface {
	Hash() string
	ResetDigest()
}

// the number of bytes used to represent a single pixel in the digest
const pixelDepth = 2

// appendPixels adds the bytes for each pixel to the data slice
func appendPixels(data []byte, pixels []specification.Pixel) []byte {
	for _, px := range pixels {
		data = append(data, byte(px), byte(px>>8))
	}
	return data
}

// Frame returns the hash of a single frame of pixels. The hash is not chained
// to any previous frame and so can be compared with the hash of a frame that
// has been created analytically.
func Frame(pixels []specification.Pixel) string {
	data := appendPixels(make([]byte, 0, len(pixels)*pixelDepth), pixels)
	return fmt.Sprintf("%x", sha1.Sum(data))
}
