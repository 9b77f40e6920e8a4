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

// noise periods in CPU cycles
var (
	noisePeriodNTSC = [16]uint16{4, 8, 16, 32, 64, 96, 128, 160, 202, 254, 380, 508, 762, 1016, 2034, 4068}
	noisePeriodPAL  = [16]uint16{4, 8, 14, 30, 60, 88, 118, 148, 188, 236, 354, 472, 708, 944, 1890, 3778}
)

type noise struct {
	periods *[16]uint16

	envelope envelope
	length   length

	mode   bool
	period uint16
	timer  uint16

	// 15 bit linear feedback shift register
	shift uint16
}

func (n *noise) writeControl(data uint8) {
	n.length.halt = data&0x20 == 0x20
	n.envelope.write(data)
}

func (n *noise) writePeriod(data uint8) {
	n.mode = data&0x80 == 0x80
	n.period = n.periods[data&0x0f]
}

func (n *noise) writeLength(data uint8) {
	n.length.load(data)
	n.envelope.start = true
}

// clocked every CPU cycle
func (n *noise) tick() {
	if n.timer > 0 {
		n.timer--
		return
	}
	n.timer = n.period - 1

	// the feedback bit is taken from bit 6 in short mode and bit 1 otherwise
	tap := uint16(1)
	if n.mode {
		tap = 6
	}
	feedback := (n.shift & 0x01) ^ ((n.shift >> tap) & 0x01)
	n.shift = (n.shift >> 1) | (feedback << 14)
}

func (n *noise) output() uint8 {
	if !n.length.active() || n.shift&0x01 == 0x01 {
		return 0
	}
	return n.envelope.output()
}
