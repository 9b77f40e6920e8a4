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

package apu

// the length counter table is indexed by the upper five bits of the length
// load register of each channel
var lengthTable = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6, 160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30,
}

// length counter is shared by the pulse, triangle and noise channels
type length struct {
	enabled bool
	halt    bool
	counter uint8
}

func (l *length) load(index uint8) {
	if l.enabled {
		l.counter = lengthTable[index>>3]
	}
}

func (l *length) setEnabled(enabled bool) {
	l.enabled = enabled
	if !enabled {
		l.counter = 0
	}
}

// clocked by half frames
func (l *length) clock() {
	if !l.halt && l.counter > 0 {
		l.counter--
	}
}

func (l *length) active() bool {
	return l.counter > 0
}

// envelope is shared by the pulse and noise channels
type envelope struct {
	start    bool
	loop     bool
	constant bool
	volume   uint8
	divider  uint8
	decay    uint8
}

// the control register layout is shared by the pulse and noise channels
//
//	--LC VVVV
func (e *envelope) write(data uint8) {
	e.loop = data&0x20 == 0x20
	e.constant = data&0x10 == 0x10
	e.volume = data & 0x0f
}

// clocked by quarter frames
func (e *envelope) clock() {
	if e.start {
		e.start = false
		e.decay = 15
		e.divider = e.volume
		return
	}

	if e.divider > 0 {
		e.divider--
		return
	}

	e.divider = e.volume
	if e.decay > 0 {
		e.decay--
	} else if e.loop {
		e.decay = 15
	}
}

func (e *envelope) output() uint8 {
	if e.constant {
		return e.volume
	}
	return e.decay
}
