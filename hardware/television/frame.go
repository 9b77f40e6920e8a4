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

package television

import (
	"image"

	"github.com/jetsetilly/gophernes/hardware/television/specification"
)

// Frame is a complete picture produced by the PPU.
type Frame struct {
	// the frame number as counted by the PPU
	Number int

	// the specification the frame was produced with. required to translate
	// the pixels to colour
	Spec *specification.Spec

	// one entry for every pixel of the visible picture, row by row
	Pixels []specification.Pixel
}

// Copy returns a copy of the frame that is safe to use on another goroutine.
func (f *Frame) Copy() *Frame {
	n := *f
	n.Pixels = make([]specification.Pixel, len(f.Pixels))
	copy(n.Pixels, f.Pixels)
	return &n
}

// Image returns the frame as an RGBA image.
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, specification.VisibleWidth, specification.VisibleHeight))
	for i, px := range f.Pixels {
		img.SetRGBA(i%specification.VisibleWidth, i/specification.VisibleWidth, f.Spec.GetColor(px))
	}
	return img
}
