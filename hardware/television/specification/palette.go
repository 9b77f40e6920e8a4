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

package specification

import (
	"image/color"
)

// Palette is the RGB value of each of the 64 colours produced by the 2C02.
// Colour 0x0d is "blacker than black" and is shown as black.
var Palette = [64]color.RGBA{
	{84, 84, 84, 255}, {0, 30, 116, 255}, {8, 16, 144, 255}, {48, 0, 136, 255},
	{68, 0, 100, 255}, {92, 0, 48, 255}, {84, 4, 0, 255}, {60, 24, 0, 255},
	{32, 42, 0, 255}, {8, 58, 0, 255}, {0, 64, 0, 255}, {0, 60, 0, 255},
	{0, 50, 60, 255}, {0, 0, 0, 255}, {0, 0, 0, 255}, {0, 0, 0, 255},

	{152, 150, 152, 255}, {8, 76, 196, 255}, {48, 50, 236, 255}, {92, 30, 228, 255},
	{136, 20, 176, 255}, {160, 20, 100, 255}, {152, 34, 32, 255}, {120, 60, 0, 255},
	{84, 90, 0, 255}, {40, 114, 0, 255}, {8, 124, 0, 255}, {0, 118, 40, 255},
	{0, 102, 120, 255}, {0, 0, 0, 255}, {0, 0, 0, 255}, {0, 0, 0, 255},

	{236, 238, 236, 255}, {76, 154, 236, 255}, {120, 124, 236, 255}, {176, 98, 236, 255},
	{228, 84, 236, 255}, {236, 88, 180, 255}, {236, 106, 100, 255}, {212, 136, 32, 255},
	{160, 170, 0, 255}, {116, 196, 0, 255}, {76, 208, 32, 255}, {56, 204, 108, 255},
	{56, 180, 204, 255}, {60, 60, 60, 255}, {0, 0, 0, 255}, {0, 0, 0, 255},

	{236, 238, 236, 255}, {168, 204, 236, 255}, {188, 188, 236, 255}, {212, 178, 236, 255},
	{236, 174, 236, 255}, {236, 174, 212, 255}, {236, 180, 176, 255}, {228, 196, 144, 255},
	{204, 210, 120, 255}, {180, 222, 120, 255}, {168, 226, 144, 255}, {152, 226, 180, 255},
	{160, 214, 228, 255}, {160, 162, 160, 255}, {0, 0, 0, 255}, {0, 0, 0, 255},
}

// the amount by which emphasis attenuates the colour components that are not
// emphasised
const attenuation = 0.75

// Pixel is the value output by the PPU for every dot of the visible picture.
// The lower six bits are the palette index and the next three bits are the
// colour emphasis bits from the PPU mask register.
type Pixel uint16

// Emphasis bits in the Pixel type.
const (
	EmphasisShift = 6
	PaletteMask   = 0x3f
)

// NewPixel creates a Pixel from a palette index and the top three bits of the
// PPU mask register.
func NewPixel(index uint8, mask uint8) Pixel {
	return Pixel(index&PaletteMask) | Pixel(mask>>5)<<EmphasisShift
}

// Index returns the palette index of the pixel.
func (px Pixel) Index() uint8 {
	return uint8(px & PaletteMask)
}

// Emphasis returns the three emphasis bits of the pixel.
func (px Pixel) Emphasis() uint8 {
	return uint8(px>>EmphasisShift) & 0x07
}

// GetColor translates a Pixel to the color type.
func (spec *Spec) GetColor(px Pixel) color.RGBA {
	col := Palette[px.Index()]

	emph := px.Emphasis()
	if emph == 0 {
		return col
	}

	// emphasis bit 0 is red and bit 1 is green on NTSC
	if spec.SwapEmphasis {
		emph = (emph & 0x04) | (emph&0x01)<<1 | (emph&0x02)>>1
	}

	r, g, b := float32(col.R), float32(col.G), float32(col.B)
	if emph&0x01 == 0 {
		r *= attenuation
	}
	if emph&0x02 == 0 {
		g *= attenuation
	}
	if emph&0x04 == 0 {
		b *= attenuation
	}

	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
}
