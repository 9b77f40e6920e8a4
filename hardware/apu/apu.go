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

import (
	"fmt"

	"github.com/jetsetilly/gophernes/environment"
	"github.com/jetsetilly/gophernes/hardware/television/specification"
	"github.com/jetsetilly/gophernes/logger"
)

// APU register numbers, relative to $4000.
const (
	RegPulse1Control  = 0x00
	RegPulse1Sweep    = 0x01
	RegPulse1TimerLo  = 0x02
	RegPulse1TimerHi  = 0x03
	RegPulse2Control  = 0x04
	RegPulse2Sweep    = 0x05
	RegPulse2TimerLo  = 0x06
	RegPulse2TimerHi  = 0x07
	RegTriangleLinear = 0x08
	RegTriangleLo     = 0x0a
	RegTriangleHi     = 0x0b
	RegNoiseControl   = 0x0c
	RegNoisePeriod    = 0x0e
	RegNoiseLength    = 0x0f
	RegDMCControl     = 0x10
	RegDMCLevel       = 0x11
	RegDMCAddress     = 0x12
	RegDMCLength      = 0x13
	RegStatus         = 0x15
	RegFrameCounter   = 0x17
)

// APU implements the audio processing unit of the 2A03.
type APU struct {
	env *environment.Environment

	pulse1   pulse
	pulse2   pulse
	triangle triangle
	noise    noise
	dmc      dmc

	sequencer sequencer

	// the number of CPU cycles since reset
	cycles uint64
}

// NewAPU is the preferred method of initialisation for the APU type. The
// specification decides which of the timing tables are used. The env argument
// can be nil.
func NewAPU(env *environment.Environment, spec *specification.Spec) *APU {
	apu := &APU{env: env}

	if spec.ID == specification.SpecPAL.ID {
		apu.sequencer.timing = &sequencePAL
		apu.noise.periods = &noisePeriodPAL
		apu.dmc.rates = &dmcRatePAL
	} else {
		apu.sequencer.timing = &sequenceNTSC
		apu.noise.periods = &noisePeriodNTSC
		apu.dmc.rates = &dmcRateNTSC
	}

	apu.Reset()

	return apu
}

// Snapshot creates a copy of the APU in its current state.
func (apu *APU) Snapshot() *APU {
	n := *apu
	return &n
}

// Plumb a new environment into the APU.
func (apu *APU) Plumb(env *environment.Environment) {
	apu.env = env
}

// Reset the APU to its power-on state.
func (apu *APU) Reset() {
	apu.pulse1 = pulse{onesComplement: true}
	apu.pulse2 = pulse{}
	apu.triangle = triangle{}
	apu.noise = noise{periods: apu.noise.periods, shift: 1}
	apu.noise.period = apu.noise.periods[0]
	apu.dmc = dmc{rates: apu.dmc.rates}
	apu.dmc.reset()
	apu.sequencer = sequencer{timing: apu.sequencer.timing}
	apu.cycles = 0

	logger.Log(apu.perm(), "apu", "reset")
}

// SoftReset is the effect of the reset line on the APU. All channels are
// silenced as though zero had been written to the status register. The frame
// IRQ flag is cleared.
func (apu *APU) SoftReset() {
	apu.WriteRegister(RegStatus, 0x00)
	apu.sequencer.irq = false

	logger.Log(apu.perm(), "apu", "soft reset")
}

// the logging permission for the APU
func (apu *APU) perm() logger.Permission {
	if apu.env == nil {
		return logger.Allow
	}
	return apu.env
}

func (apu *APU) String() string {
	return fmt.Sprintf("P1=%d P2=%d T=%d N=%d D=%d frame=%d irq=%v",
		apu.pulse1.length.counter, apu.pulse2.length.counter,
		apu.triangle.length.counter, apu.noise.length.counter,
		apu.dmc.remaining, apu.sequencer.cycle, apu.IRQ())
}

// Step the APU by one CPU cycle.
func (apu *APU) Step() {
	quarter, half := apu.sequencer.tick()
	if quarter {
		apu.pulse1.envelope.clock()
		apu.pulse2.envelope.clock()
		apu.noise.envelope.clock()
		apu.triangle.clockLinear()
	}
	if half {
		apu.pulse1.length.clock()
		apu.pulse2.length.clock()
		apu.triangle.length.clock()
		apu.noise.length.clock()
		apu.pulse1.clockSweep()
		apu.pulse2.clockSweep()
	}

	apu.triangle.tick()
	apu.noise.tick()
	apu.dmc.tick()

	// the pulse channels are clocked every APU cycle
	if apu.cycles&0x01 == 0x01 {
		apu.pulse1.tick()
		apu.pulse2.tick()
	}

	apu.cycles++
}

// IRQ returns the state of the APU's IRQ output. The output is active if
// either the frame IRQ flag or the DMC IRQ flag is set.
func (apu *APU) IRQ() bool {
	return apu.sequencer.irq || apu.dmc.irq
}

// Output returns the current output level of the APU in the range 0.0 to 1.0.
func (apu *APU) Output() float32 {
	return mix(apu.pulse1.output(), apu.pulse2.output(), apu.triangle.output(), apu.noise.output(), apu.dmc.output())
}

// DMCRequest returns the address of the next byte of sample data if the DMC
// needs it. The byte should be read from the CPU bus and passed to DMCFill().
func (apu *APU) DMCRequest() (uint16, bool) {
	return apu.dmc.request()
}

// DMCFill supplies the byte requested by DMCRequest().
func (apu *APU) DMCFill(data uint8) {
	apu.dmc.fill(data)
}
