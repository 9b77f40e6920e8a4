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

// ReadRegister implements the cpubus.ChipRegisters interface. The only
// readable register is the status register. Reading the status register
// clears the frame IRQ flag.
func (apu *APU) ReadRegister(reg uint16, bus uint8) uint8 {
	data := apu.PeekRegister(reg, bus)
	if reg == RegStatus {
		apu.sequencer.irq = false
	}
	return data
}

// PeekRegister implements the cpubus.ChipRegisters interface.
func (apu *APU) PeekRegister(reg uint16, bus uint8) uint8 {
	if reg != RegStatus {
		return bus
	}

	// bit 5 is not driven
	data := bus & 0x20
	if apu.pulse1.length.active() {
		data |= 0x01
	}
	if apu.pulse2.length.active() {
		data |= 0x02
	}
	if apu.triangle.length.active() {
		data |= 0x04
	}
	if apu.noise.length.active() {
		data |= 0x08
	}
	if apu.dmc.remaining > 0 {
		data |= 0x10
	}
	if apu.sequencer.irq {
		data |= 0x40
	}
	if apu.dmc.irq {
		data |= 0x80
	}
	return data
}

// WriteRegister implements the cpubus.ChipRegisters interface. Writes to a
// disabled channel update the channel's registers in the normal way. Only the
// loading of the length counter is affected.
func (apu *APU) WriteRegister(reg uint16, data uint8) {
	switch reg {
	case RegPulse1Control:
		apu.pulse1.writeControl(data)
	case RegPulse1Sweep:
		apu.pulse1.writeSweep(data)
	case RegPulse1TimerLo:
		apu.pulse1.writeTimerLo(data)
	case RegPulse1TimerHi:
		apu.pulse1.writeTimerHi(data)
	case RegPulse2Control:
		apu.pulse2.writeControl(data)
	case RegPulse2Sweep:
		apu.pulse2.writeSweep(data)
	case RegPulse2TimerLo:
		apu.pulse2.writeTimerLo(data)
	case RegPulse2TimerHi:
		apu.pulse2.writeTimerHi(data)
	case RegTriangleLinear:
		apu.triangle.writeLinear(data)
	case RegTriangleLo:
		apu.triangle.writeTimerLo(data)
	case RegTriangleHi:
		apu.triangle.writeTimerHi(data)
	case RegNoiseControl:
		apu.noise.writeControl(data)
	case RegNoisePeriod:
		apu.noise.writePeriod(data)
	case RegNoiseLength:
		apu.noise.writeLength(data)
	case RegDMCControl:
		apu.dmc.writeControl(data)
	case RegDMCLevel:
		apu.dmc.writeLevel(data)
	case RegDMCAddress:
		apu.dmc.writeAddress(data)
	case RegDMCLength:
		apu.dmc.writeLength(data)
	case RegStatus:
		apu.pulse1.length.setEnabled(data&0x01 == 0x01)
		apu.pulse2.length.setEnabled(data&0x02 == 0x02)
		apu.triangle.length.setEnabled(data&0x04 == 0x04)
		apu.noise.length.setEnabled(data&0x08 == 0x08)
		apu.dmc.setEnabled(data&0x10 == 0x10)
	case RegFrameCounter:
		apu.sequencer.write(data, apu.cycles&0x01 == 0x01)
	}
}
