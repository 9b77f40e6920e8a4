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

// DMC rates in CPU cycles
var (
	dmcRateNTSC = [16]uint16{428, 380, 340, 320, 286, 254, 226, 214, 190, 160, 142, 128, 106, 84, 72, 54}
	dmcRatePAL  = [16]uint16{398, 354, 316, 298, 276, 236, 210, 198, 176, 148, 132, 118, 98, 78, 66, 50}
)

// dmc is the delta modulation channel
type dmc struct {
	rates *[16]uint16

	irqEnabled bool
	irq        bool
	loop       bool

	rate  uint16
	timer uint16

	// the sample parameters as written by the program
	sampleAddress uint16
	sampleLength  uint16

	// the memory reader
	address   uint16
	remaining uint16
	buffer    uint8
	empty     bool

	// the output unit
	shift   uint8
	bits    uint8
	silence bool
	level   uint8
}

func (d *dmc) reset() {
	d.rate = d.rates[0]
	d.timer = d.rate - 1
	d.empty = true
	d.silence = true
	d.bits = 8
}

func (d *dmc) writeControl(data uint8) {
	d.irqEnabled = data&0x80 == 0x80
	if !d.irqEnabled {
		d.irq = false
	}
	d.loop = data&0x40 == 0x40
	d.rate = d.rates[data&0x0f]
}

func (d *dmc) writeLevel(data uint8) {
	d.level = data & 0x7f
}

func (d *dmc) writeAddress(data uint8) {
	d.sampleAddress = 0xc000 | uint16(data)<<6
}

func (d *dmc) writeLength(data uint8) {
	d.sampleLength = uint16(data)<<4 | 0x0001
}

func (d *dmc) restart() {
	d.address = d.sampleAddress
	d.remaining = d.sampleLength
}

func (d *dmc) setEnabled(enabled bool) {
	d.irq = false
	if !enabled {
		d.remaining = 0
	} else if d.remaining == 0 {
		d.restart()
	}
}

// clocked every CPU cycle
func (d *dmc) tick() {
	if d.timer > 0 {
		d.timer--
		return
	}
	d.timer = d.rate - 1

	if !d.silence {
		if d.shift&0x01 == 0x01 {
			if d.level <= 125 {
				d.level += 2
			}
		} else if d.level >= 2 {
			d.level -= 2
		}
	}
	d.shift >>= 1

	d.bits--
	if d.bits == 0 {
		d.bits = 8
		if d.empty {
			d.silence = true
		} else {
			d.silence = false
			d.shift = d.buffer
			d.empty = true
		}
	}
}

// the memory reader needs a byte if the buffer is empty and there are bytes
// remaining in the sample
func (d *dmc) request() (uint16, bool) {
	return d.address, d.empty && d.remaining > 0
}

func (d *dmc) fill(data uint8) {
	d.buffer = data
	d.empty = false

	// the address wraps to $8000 rather than to $0000
	if d.address == 0xffff {
		d.address = 0x8000
	} else {
		d.address++
	}

	d.remaining--
	if d.remaining == 0 {
		if d.loop {
			d.restart()
		} else if d.irqEnabled {
			d.irq = true
		}
	}
}

func (d *dmc) output() uint8 {
	return d.level
}
