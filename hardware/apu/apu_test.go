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

package apu_test

import (
	"testing"

	"github.com/jetsetilly/gophernes/hardware/apu"
	"github.com/jetsetilly/gophernes/hardware/television/specification"
	"github.com/jetsetilly/gophernes/test"
)

func newAPU() *apu.APU {
	return apu.NewAPU(nil, &specification.SpecNTSC)
}

func step(a *apu.APU, cycles int) {
	for range cycles {
		a.Step()
	}
}

func status(a *apu.APU) uint8 {
	return a.PeekRegister(apu.RegStatus, 0)
}

func TestLengthStatus(t *testing.T) {
	a := newAPU()

	// length counters are not loaded while the channel is disabled
	a.WriteRegister(apu.RegPulse1TimerHi, 0x08)
	test.ExpectEquality(t, status(a)&0x01, 0x00)

	a.WriteRegister(apu.RegStatus, 0x0f)
	a.WriteRegister(apu.RegPulse1TimerHi, 0x08)
	a.WriteRegister(apu.RegPulse2TimerHi, 0x08)
	a.WriteRegister(apu.RegTriangleHi, 0x08)
	a.WriteRegister(apu.RegNoiseLength, 0x08)
	test.ExpectEquality(t, status(a)&0x0f, 0x0f)

	// disabling a channel clears the length counter
	a.WriteRegister(apu.RegStatus, 0x0e)
	test.ExpectEquality(t, status(a)&0x0f, 0x0e)
}

func TestLengthCounter(t *testing.T) {
	a := newAPU()
	a.WriteRegister(apu.RegStatus, 0x01)
	a.WriteRegister(apu.RegPulse1Control, 0x00)

	// length index 3 is a count of two
	a.WriteRegister(apu.RegPulse1TimerHi, 0x18)

	step(a, 14913)
	test.ExpectEquality(t, status(a)&0x01, 0x01)
	step(a, 29829-14913)
	test.ExpectEquality(t, status(a)&0x01, 0x00)

	// halted length counters do not decrease
	a.WriteRegister(apu.RegPulse1Control, 0x20)
	a.WriteRegister(apu.RegPulse1TimerHi, 0x18)
	step(a, 29830*2)
	test.ExpectEquality(t, status(a)&0x01, 0x01)
}

func TestFrameIRQ(t *testing.T) {
	a := newAPU()

	step(a, 29827)
	test.ExpectFailure(t, a.IRQ())
	step(a, 1)
	test.ExpectSuccess(t, a.IRQ())

	// reading the status register clears the flag
	test.ExpectEquality(t, a.ReadRegister(apu.RegStatus, 0)&0x40, 0x40)
	test.ExpectEquality(t, a.ReadRegister(apu.RegStatus, 0)&0x40, 0x00)

	// bit 5 of the status register is not driven
	test.ExpectEquality(t, a.ReadRegister(apu.RegStatus, 0xff)&0x20, 0x20)

	// the flag is set again on every frame
	step(a, 29830)
	test.ExpectSuccess(t, a.IRQ())

	// inhibiting the IRQ clears the flag
	a.WriteRegister(apu.RegFrameCounter, 0x40)
	test.ExpectFailure(t, a.IRQ())
	step(a, 29830*2)
	test.ExpectFailure(t, a.IRQ())
}

func TestFiveStep(t *testing.T) {
	a := newAPU()
	a.WriteRegister(apu.RegStatus, 0x01)
	a.WriteRegister(apu.RegPulse1TimerHi, 0x18)

	// the five step sequence never raises an IRQ and clocks the half frame
	// units immediately after the write takes effect
	a.WriteRegister(apu.RegFrameCounter, 0x80)
	step(a, 4)
	test.ExpectEquality(t, status(a)&0x01, 0x01)
	step(a, 14913)
	test.ExpectEquality(t, status(a)&0x01, 0x00)

	step(a, 37282*2)
	test.ExpectFailure(t, a.IRQ())
}

func TestDMC(t *testing.T) {
	a := newAPU()

	_, ok := a.DMCRequest()
	test.ExpectFailure(t, ok)

	// a one byte sample at $c000 with IRQ enabled
	a.WriteRegister(apu.RegDMCAddress, 0x00)
	a.WriteRegister(apu.RegDMCLength, 0x00)
	a.WriteRegister(apu.RegDMCControl, 0x80)
	a.WriteRegister(apu.RegStatus, 0x10)
	test.ExpectEquality(t, status(a)&0x10, 0x10)

	address, ok := a.DMCRequest()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, address, 0xc000)

	a.DMCFill(0x55)
	_, ok = a.DMCRequest()
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, status(a)&0x90, 0x80)
	test.ExpectSuccess(t, a.IRQ())

	// reading the status register does not clear the DMC IRQ flag
	a.ReadRegister(apu.RegStatus, 0)
	test.ExpectSuccess(t, a.IRQ())

	// writing the status register does
	a.WriteRegister(apu.RegStatus, 0x00)
	test.ExpectFailure(t, a.IRQ())
}

func TestDMCLoop(t *testing.T) {
	a := newAPU()
	a.WriteRegister(apu.RegFrameCounter, 0x40)

	// a 65 byte sample at $ffc0, looping
	a.WriteRegister(apu.RegDMCAddress, 0xff)
	a.WriteRegister(apu.RegDMCLength, 0x04)
	a.WriteRegister(apu.RegDMCControl, 0x40)
	a.WriteRegister(apu.RegStatus, 0x10)

	for i := range 64 {
		address, ok := a.DMCRequest()
		test.DemandSuccess(t, ok)
		test.ExpectEquality(t, address, 0xffc0+uint16(i))
		a.DMCFill(0x00)

		// the output unit empties the buffer
		step(a, 428*8)
	}

	// the address wraps to $8000
	address, ok := a.DMCRequest()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, address, 0x8000)
	a.DMCFill(0x00)
	step(a, 428*8)

	// the sample restarts
	address, ok = a.DMCRequest()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, address, 0xffc0)
	test.ExpectFailure(t, a.IRQ())
}

func TestDMCOutput(t *testing.T) {
	a := newAPU()

	// the triangle channel is never silent so the output is not zero
	base := a.Output()
	test.ExpectSuccess(t, base > 0.0)

	a.WriteRegister(apu.RegDMCLevel, 0x40)
	level := a.Output()
	test.ExpectSuccess(t, level > base)

	// a sample of all ones raises the output level
	a.WriteRegister(apu.RegDMCAddress, 0x00)
	a.WriteRegister(apu.RegDMCLength, 0x00)
	a.WriteRegister(apu.RegDMCControl, 0x0f)
	a.WriteRegister(apu.RegStatus, 0x10)
	a.DMCFill(0xff)
	step(a, 54*20)
	test.ExpectSuccess(t, a.Output() > level)
}

func TestWriteWhileDisabled(t *testing.T) {
	a := newAPU()

	// control and timer writes to the disabled channel are kept
	a.WriteRegister(apu.RegPulse1Control, 0xbf)
	a.WriteRegister(apu.RegPulse1TimerLo, 0x80)

	a.WriteRegister(apu.RegStatus, 0x01)
	a.WriteRegister(apu.RegPulse1TimerHi, 0x08)

	var peak float32
	for range 2000 {
		a.Step()
		peak = max(peak, a.Output())
	}
	test.ExpectSuccess(t, peak > 0.0)
}

func TestSnapshot(t *testing.T) {
	a := newAPU()
	a.WriteRegister(apu.RegStatus, 0x01)
	a.WriteRegister(apu.RegPulse1TimerHi, 0x08)

	s := a.Snapshot()
	a.WriteRegister(apu.RegStatus, 0x00)

	test.ExpectEquality(t, status(s)&0x01, 0x01)
	test.ExpectEquality(t, status(a)&0x01, 0x00)
}
