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

// Package coords represents and can work with television coordinates.
//
// Coordinates represent the state of the emulation from the point of the
// television. A good way to think about them is as a measurement of time. They
// define *when* something happened (this pixel was drawn, this NMI was raised,
// etc.) relative to the start of the emulation.
package coords

import (
	"fmt"
)

// FrameIsUndefined is used to indicate that the Frame field of the TelevisionCoords
// struct is to be ignored.
const FrameIsUndefined = -1

// the number of dots in a scanline and the largest number of scanlines in a
// frame across all regions. used to linearise coordinates
const (
	dotsPerScanline  = 341
	maxScanlines     = 312
	maxDotsPerFrame  = dotsPerScanline * maxScanlines
	preRenderOffset  = 1
)

// TelevisionCoords represents the state of the PPU at any moment in time. The
// scanline field runs from -1 (the pre-render scanline) upwards.
type TelevisionCoords struct {
	Frame    int
	Scanline int
	Dot      int
}

func (c TelevisionCoords) String() string {
	if c.Frame == FrameIsUndefined {
		return fmt.Sprintf("Scanline: %03d  Dot: %03d", c.Scanline, c.Dot)
	}
	return fmt.Sprintf("Frame: %d  Scanline: %03d  Dot: %03d", c.Frame, c.Scanline, c.Dot)
}

// Linear returns the coordinates as a single number. The number increases
// monotonically with time but is not a count of dots because the number of
// scanlines in a frame differs between regions.
func (c TelevisionCoords) Linear() int64 {
	f := max(c.Frame, 0)
	return int64(f)*maxDotsPerFrame + int64(c.Scanline+preRenderOffset)*dotsPerScanline + int64(c.Dot)
}

// Equal compares two instances of TelevisionCoords and return true if both are
// equal.
//
// If the Frame field is undefined for either argument then the Frame field is
// ignored for the test.
func Equal(A, B TelevisionCoords) bool {
	if A.Frame == FrameIsUndefined || B.Frame == FrameIsUndefined {
		return A.Scanline == B.Scanline && A.Dot == B.Dot
	}
	return A == B
}

// GreaterThanOrEqual compares two instances of TelevisionCoords and return
// true if A is greater than or equal to B.
//
// If the Frame field is undefined for either argument then the Frame field is
// ignored for the test.
func GreaterThanOrEqual(A, B TelevisionCoords) bool {
	if A.Frame == FrameIsUndefined || B.Frame == FrameIsUndefined {
		return A.Scanline > B.Scanline || (A.Scanline == B.Scanline && A.Dot >= B.Dot)
	}
	return A.Linear() >= B.Linear()
}
