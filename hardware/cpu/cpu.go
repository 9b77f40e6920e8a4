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

package cpu

import (
	"fmt"

	"github.com/jetsetilly/gophernes/environment"
	"github.com/jetsetilly/gophernes/hardware/cpu/execution"
	"github.com/jetsetilly/gophernes/hardware/cpu/instructions"
	"github.com/jetsetilly/gophernes/hardware/cpu/registers"
	"github.com/jetsetilly/gophernes/hardware/memory/cpubus"
	"github.com/jetsetilly/gophernes/logger"
)

// the stack is always in page one
const stackPage = uint16(0x0100)

// poll is the result of sampling the interrupt lines at the end of a cycle
type poll struct {
	nmi bool
	irq bool
}

// CPU implements the 2A03 as found in the NES. The 2A03 is a 6502 without
// decimal mode arithmetic. Register logic is implemented by the Register type
// in the registers sub-package.
type CPU struct {
	env *environment.Environment

	PC     registers.ProgramCounter
	A      registers.Register
	X      registers.Register
	Y      registers.Register
	SP     registers.Register
	Status registers.StatusRegister

	// some operations only need an accumulator
	acc8 registers.Register

	mem cpubus.Memory

	// the instruction table for the current illegal opcode policy. the table
	// is shared between CPU instances and must not be altered
	instructions *[256]instructions.Definition
	policy       string

	// cycleCallback is called after every CPU cycle
	cycleCallback func() error

	// the state of the NMI line and the edge detector. nmiEdge is set when a
	// rising edge is seen at the end of a cycle and stays set until an NMI
	// sequence has been started
	nmiLine bool
	nmiPrev bool
	nmiEdge bool

	// the IRQ line is level sensitive
	irqLine bool

	// the two most recent samples of the interrupt lines. the decision to
	// service an interrupt is made with the sample taken at the end of the
	// penultimate cycle of an instruction
	pollPrev poll
	pollNow  poll

	// the interrupt sequence that will run instead of the next instruction
	Pending execution.Interrupt

	// last result. the CPU updates this field every cycle so it can be
	// examined by a cycle callback
	LastResult execution.Result

	// the cpu has encountered a KIL instruction. only a reset will resume
	// execution
	Killed bool
}

// NewCPU is the preferred method of initialisation for the CPU structure.
// The env argument can be nil, in which case every undocumented opcode is
// enabled.
func NewCPU(env *environment.Environment, mem cpubus.Memory) *CPU {
	mc := &CPU{
		env:    env,
		mem:    mem,
		PC:     registers.NewProgramCounter(0),
		A:      registers.NewRegister(0, "A"),
		X:      registers.NewRegister(0, "X"),
		Y:      registers.NewRegister(0, "Y"),
		SP:     registers.NewRegister(0, "SP"),
		Status: registers.NewStatusRegister(),
		acc8:   registers.NewRegister(0, "accumulator"),
	}

	policy := IllegalAll
	if env != nil {
		policy = env.Prefs.Illegal()
	}

	if err := mc.SetIllegalPolicy(policy); err != nil {
		logger.Log(env, "cpu", err)
		_ = mc.SetIllegalPolicy(IllegalAll)
	}

	return mc
}

// Snapshot creates a copy of the CPU in its current state.
func (mc *CPU) Snapshot() *CPU {
	n := *mc
	n.cycleCallback = nil
	return &n
}

// Plumb a new environment and memory bus into the CPU.
func (mc *CPU) Plumb(env *environment.Environment, mem cpubus.Memory) {
	mc.env = env
	mc.mem = mem
}

func (mc *CPU) String() string {
	return fmt.Sprintf("%s=%s %s=%s %s=%s %s=%s %s=%s %s=%s",
		mc.PC.Label(), mc.PC, mc.A.Label(), mc.A,
		mc.X.Label(), mc.X, mc.Y.Label(), mc.Y,
		mc.SP.Label(), mc.SP, mc.Status.Label(), mc.Status)
}

// Reset puts the CPU into its power-on state and loads the PC with the reset
// vector. Reset does not consume any cycles. Compare to SoftReset().
func (mc *CPU) Reset() error {
	mc.LastResult.Reset()
	mc.Killed = false
	mc.Pending = execution.NoInterrupt

	mc.A.Load(0)
	mc.X.Load(0)
	mc.Y.Load(0)
	mc.SP.Load(0xfd)
	mc.Status.FromValue(0x34)

	mc.nmiLine = false
	mc.nmiPrev = false
	mc.nmiEdge = false
	mc.irqLine = false
	mc.pollPrev = poll{}
	mc.pollNow = poll{}

	return mc.LoadPCIndirect(cpubus.Reset)
}

// SoftReset asserts the reset line. The reset sequence will run instead of the
// next instruction.
func (mc *CPU) SoftReset() {
	mc.Pending = execution.Reset
}

// LoadPCIndirect loads the contents of indirectAddress into the PC. No cycles
// are consumed.
func (mc *CPU) LoadPCIndirect(indirectAddress uint16) error {
	lo, err := mc.mem.Read(indirectAddress)
	if err != nil {
		return err
	}
	hi, err := mc.mem.Read(indirectAddress + 1)
	if err != nil {
		return err
	}
	mc.PC.Load((uint16(hi) << 8) | uint16(lo))
	return nil
}

// LoadPC loads the PC with directAddress.
func (mc *CPU) LoadPC(directAddress uint16) {
	mc.PC.Load(directAddress)
}

// SetNMI sets the state of the NMI line. The CPU looks for a rising edge on
// the line at the end of each cycle.
func (mc *CPU) SetNMI(active bool) {
	mc.nmiLine = active
}

// SetIRQ sets the state of the IRQ line. The line is usually the logical OR of
// the IRQ outputs of the APU and the cartridge.
func (mc *CPU) SetIRQ(active bool) {
	mc.irqLine = active
}

// NMIDetected returns true if an NMI edge has been detected but the NMI
// sequence has not yet started.
func (mc *CPU) NMIDetected() bool {
	return mc.nmiEdge
}

// Halt lets the number of cycles pass without the CPU doing any work. The
// interrupt lines are sampled as normal. LastResult is not changed. Used to
// model the cycles stolen by DMA.
func (mc *CPU) Halt(cycles int, cycleCallback func() error) error {
	for range cycles {
		if err := cycleCallback(); err != nil {
			return err
		}
		mc.sampleInterrupts()
	}
	return nil
}

// sampleInterrupts is called at the end of every cycle
func (mc *CPU) sampleInterrupts() {
	if mc.nmiLine && !mc.nmiPrev {
		mc.nmiEdge = true
	}
	mc.nmiPrev = mc.nmiLine

	mc.pollPrev = mc.pollNow
	mc.pollNow = poll{
		nmi: mc.nmiEdge,
		irq: mc.irqLine && !mc.Status.InterruptDisable,
	}
}

// checkInterrupts decides whether an interrupt sequence should follow the
// instruction that has just completed
func (mc *CPU) checkInterrupts() {
	// a pending reset is never replaced
	if mc.Pending != execution.NoInterrupt {
		return
	}
	if mc.pollPrev.nmi {
		mc.Pending = execution.NMI
	} else if mc.pollPrev.irq {
		mc.Pending = execution.IRQ
	}
}

// endCycle must be called once for every bus access
//
// side-effects:
//   - updates LastResult.Cycles
//   - calls cycleCallback
//   - samples interrupt lines
func (mc *CPU) endCycle() error {
	mc.LastResult.Cycles++
	if err := mc.cycleCallback(); err != nil {
		return err
	}
	mc.sampleInterrupts()
	return nil
}

// read8Bit returns 8bit value from the specified address
//
// side-effects:
//   - calls endCycle() after memory read
func (mc *CPU) read8Bit(address uint16) (uint8, error) {
	val, err := mc.mem.Read(address)
	if err != nil {
		return 0, err
	}
	return val, mc.endCycle()
}

// write8Bit writes 8 bits to the specified address
//
// side-effects:
//   - calls endCycle() after memory write
func (mc *CPU) write8Bit(address uint16, value uint8) error {
	err := mc.mem.Write(address, value)
	if err != nil {
		return err
	}
	return mc.endCycle()
}

// read8BitPC reads 8 bits from the memory location pointed to by PC
//
// side-effects:
//   - updates program counter
//   - updates LastResult.ByteCount
//   - calls endCycle() after memory read
func (mc *CPU) read8BitPC() (uint8, error) {
	val, err := mc.mem.Read(mc.PC.Address())
	if err != nil {
		return 0, err
	}
	mc.PC.Add(1)
	mc.LastResult.ByteCount++
	return val, mc.endCycle()
}

// readOperand8 reads a single byte operand and records it in LastResult
func (mc *CPU) readOperand8() (uint8, error) {
	v, err := mc.read8BitPC()
	if err != nil {
		return 0, err
	}
	mc.LastResult.InstructionData = uint16(v)
	return v, nil
}

// readOperand16 reads a two byte operand and records it in LastResult
func (mc *CPU) readOperand16() (uint16, error) {
	lo, err := mc.read8BitPC()
	if err != nil {
		return 0, err
	}
	mc.LastResult.InstructionData = uint16(lo)

	hi, err := mc.read8BitPC()
	if err != nil {
		return 0, err
	}
	mc.LastResult.InstructionData = (uint16(hi) << 8) | uint16(lo)

	return mc.LastResult.InstructionData, nil
}

// push a value onto the stack. the stack pointer wraps around inside page one
func (mc *CPU) push(v uint8) error {
	err := mc.write8Bit(stackPage|mc.SP.Address(), v)
	mc.SP.Load(mc.SP.Value() - 1)
	return err
}

// pull a value from the stack
func (mc *CPU) pull() (uint8, error) {
	mc.SP.Load(mc.SP.Value() + 1)
	return mc.read8Bit(stackPage | mc.SP.Address())
}

// setZN sets the zero and sign flags according to the value
func (mc *CPU) setZN(v uint8) {
	mc.Status.Zero = v == 0
	mc.Status.Sign = v&0x80 == 0x80
}

// the ADC operation. SBC is ADC with the value inverted
func (mc *CPU) adc(v uint8) {
	mc.Status.Carry, mc.Status.Overflow = mc.A.Add(v, mc.Status.Carry)
	mc.setZN(mc.A.Value())
}

// the compare operations
func (mc *CPU) compare(reg uint8, v uint8) {
	mc.Status.Carry = reg >= v
	mc.setZN(reg - v)
}
