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

var triangleSequence = [32]uint8{
	15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0,
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
}

type triangle struct {
	length length

	// the control flag is also the length counter halt flag
	control bool

	linearReload  uint8
	linearCounter uint8
	linearFlag    bool

	period   uint16
	timer    uint16
	sequence uint8
}

func (t *triangle) writeLinear(data uint8) {
	t.control = data&0x80 == 0x80
	t.length.halt = t.control
	t.linearReload = data & 0x7f
}

func (t *triangle) writeTimerLo(data uint8) {
	t.period = (t.period & 0x0700) | uint16(data)
}

func (t *triangle) writeTimerHi(data uint8) {
	t.period = (t.period & 0x00ff) | uint16(data&0x07)<<8
	t.length.load(data)
	t.linearFlag = true
}

// clocked every CPU cycle. the sequencer only advances when both the length
// counter and the linear counter are non-zero
func (t *triangle) tick() {
	if t.timer == 0 {
		t.timer = t.period
		if t.length.active() && t.linearCounter > 0 {
			t.sequence = (t.sequence + 1) & 0x1f
		}
	} else {
		t.timer--
	}
}

// clocked by quarter frames
func (t *triangle) clockLinear() {
	if t.linearFlag {
		t.linearCounter = t.linearReload
	} else if t.linearCounter > 0 {
		t.linearCounter--
	}
	if !t.control {
		t.linearFlag = false
	}
}

// the triangle channel is never silenced. when the sequencer is halted the
// output stays at the current step of the sequence
func (t *triangle) output() uint8 {
	return triangleSequence[t.sequence]
}
