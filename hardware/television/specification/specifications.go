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

// Package specification contains the definitions, including colour, of the
// NTSC, PAL and Dendy consoles supported by the emulation.
package specification

import (
	"strings"

	"github.com/jetsetilly/gophernes/hardware/memory/cartridge/mapper"
)

// SpecList is the list of specifications that the console may adopt.
var SpecList = []string{"NTSC", "PAL", "DENDY"}

// Spec is used to define the console specifications.
type Spec struct {
	ID string

	// the scanline numbers for the important parts of the frame. scanline -1
	// is the pre-render scanline and scanlines 0 to 239 are the visible
	// scanlines in every specification
	LastScanline int
	VBlankStart  int

	// the total number of scanlines including the pre-render scanline
	ScanlinesTotal int

	// the pre-render scanline is one dot shorter on odd frames when rendering
	// is enabled
	OddFrameSkip bool

	// the PAL and Dendy PPUs swap the red and green emphasis bits
	SwapEmphasis bool

	// the number of frames per second required by the specification
	FramesPerSecond float32

	// the width of each pixel relative to its height
	AspectBias float32
}

// The number of dots in every scanline and the size of the visible picture.
const (
	DotsPerScanline = 341
	LastDot         = DotsPerScanline - 1
	VisibleWidth    = 256
	VisibleHeight   = 240
)

// SpecNTSC is the specification for NTSC consoles.
var SpecNTSC = Spec{
	ID:              "NTSC",
	LastScanline:    260,
	VBlankStart:     241,
	ScanlinesTotal:  262,
	OddFrameSkip:    true,
	FramesPerSecond: 60.0988,
	AspectBias:      8.0 / 7.0,
}

// SpecPAL is the specification for PAL consoles.
var SpecPAL = Spec{
	ID:              "PAL",
	LastScanline:    310,
	VBlankStart:     241,
	ScanlinesTotal:  312,
	SwapEmphasis:    true,
	FramesPerSecond: 50.0070,
	AspectBias:      1.3862,
}

// SpecDendy is the specification for the Dendy family of consoles. Dendy
// consoles have PAL timing but the vertical blank starts 50 scanlines later so
// that NTSC software runs correctly.
var SpecDendy = Spec{
	ID:              "DENDY",
	LastScanline:    310,
	VBlankStart:     291,
	ScanlinesTotal:  312,
	SwapEmphasis:    true,
	FramesPerSecond: 50.0070,
	AspectBias:      1.3862,
}

// SearchSpec looks for a valid sub-string in s, that indicates a required TV
// specification. The returned value is a canonical specication label as listed
// in SpecList.
//
// If no valid sub-string can be found the empty string is returned.
func SearchSpec(s string) string {
	s = strings.ToUpper(s)
	for _, spec := range SpecList {
		if strings.Contains(s, spec) {
			return spec
		}
	}
	return ""
}

// GetSpec returns the specification for the ID. The NTSC specification is
// returned if the ID is not recognised.
func GetSpec(id string) *Spec {
	switch strings.ToUpper(id) {
	case "PAL":
		return &SpecPAL
	case "DENDY":
		return &SpecDendy
	}
	return &SpecNTSC
}

// FromTiming returns the specification that matches the timing information in
// the cartridge configuration. Cartridges that work in more than one region
// use the NTSC specification.
func FromTiming(timing mapper.Timing) *Spec {
	switch timing {
	case mapper.TimingPAL:
		return &SpecPAL
	case mapper.TimingDendy:
		return &SpecDendy
	}
	return &SpecNTSC
}
