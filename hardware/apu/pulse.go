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

var dutyTable = [4][8]uint8{
	{0, 1, 0, 0, 0, 0, 0, 0},
	{0, 1, 1, 0, 0, 0, 0, 0},
	{0, 1, 1, 1, 1, 0, 0, 0},
	{1, 0, 0, 1, 1, 1, 1, 1},
}

type pulse struct {
	// the two pulse channels differ only in how the sweep unit negates the
	// period change
	onesComplement bool

	envelope envelope
	length   length

	duty     uint8
	sequence uint8

	period uint16
	timer  uint16

	sweepEnabled bool
	sweepPeriod  uint8
	sweepNegate  bool
	sweepShift   uint8
	sweepReload  bool
	sweepDivider uint8
}

func (p *pulse) writeControl(data uint8) {
	p.duty = data >> 6
	p.length.halt = data&0x20 == 0x20
	p.envelope.write(data)
}

func (p *pulse) writeSweep(data uint8) {
	p.sweepEnabled = data&0x80 == 0x80
	p.sweepPeriod = (data >> 4) & 0x07
	p.sweepNegate = data&0x08 == 0x08
	p.sweepShift = data & 0x07
	p.sweepReload = true
}

func (p *pulse) writeTimerLo(data uint8) {
	p.period = (p.period & 0x0700) | uint16(data)
}

func (p *pulse) writeTimerHi(data uint8) {
	p.period = (p.period & 0x00ff) | uint16(data&0x07)<<8
	p.length.load(data)
	p.envelope.start = true
	p.sequence = 0
}

// clocked every APU cycle (every second CPU cycle)
func (p *pulse) tick() {
	if p.timer == 0 {
		p.timer = p.period
		p.sequence = (p.sequence + 1) & 0x07
	} else {
		p.timer--
	}
}

// the period the sweep unit is moving towards. the target is calculated
// continuously, whether or not the sweep unit is enabled
func (p *pulse) sweepTarget() uint16 {
	change := p.period >> p.sweepShift
	if !p.sweepNegate {
		return p.period + change
	}
	if p.onesComplement {
		change++
	}
	if change > p.period {
		return 0
	}
	return p.period - change
}

// the channel is muted if the period is too small or if the sweep target
// overflows, even if the sweep unit is disabled
func (p *pulse) muted() bool {
	return p.period < 8 || p.sweepTarget() > 0x7ff
}

// clocked by half frames
func (p *pulse) clockSweep() {
	if p.sweepDivider == 0 && p.sweepEnabled && p.sweepShift > 0 && !p.muted() {
		p.period = p.sweepTarget()
	}
	if p.sweepDivider == 0 || p.sweepReload {
		p.sweepDivider = p.sweepPeriod
		p.sweepReload = false
	} else {
		p.sweepDivider--
	}
}

func (p *pulse) output() uint8 {
	if !p.length.active() || p.muted() || dutyTable[p.duty][p.sequence] == 0 {
		return 0
	}
	return p.envelope.output()
}
