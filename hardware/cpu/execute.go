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
	"github.com/jetsetilly/gophernes/hardware/cpu/execution"
	"github.com/jetsetilly/gophernes/hardware/cpu/instructions"
	"github.com/jetsetilly/gophernes/hardware/cpu/registers"
	"github.com/jetsetilly/gophernes/hardware/memory/cpubus"
)

// ExecuteInstruction steps CPU forward one instruction. If an interrupt is
// pending then the interrupt sequence is run instead. The cycleCallback
// function is called after every CPU cycle.
//
// The result of the instruction can be found in LastResult. The number of
// cycles consumed is LastResult.Cycles.
func (mc *CPU) ExecuteInstruction(cycleCallback func() error) error {
	if cycleCallback == nil {
		cycleCallback = func() error { return nil }
	}
	mc.cycleCallback = cycleCallback

	mc.LastResult.Reset()
	mc.LastResult.Address = mc.PC.Address()

	// a jammed CPU only responds to reset
	if mc.Pending == execution.Reset || (mc.Pending != execution.NoInterrupt && !mc.Killed) {
		return mc.interruptSequence()
	}

	if mc.Killed {
		mc.LastResult.Jammed = true
		mc.LastResult.Final = true
		return mc.endCycle()
	}

	// +1 cycle
	opcode, err := mc.read8BitPC()
	if err != nil {
		// even when there is an error the result should indicate the address
		// and the number of bytes read
		mc.LastResult.Final = true
		return err
	}

	defn := &mc.instructions[opcode]
	mc.LastResult.Defn = defn

	// address is the actual address to use to access memory (after any
	// indexing has taken place)
	var address uint16

	// value is read from the program for immediate/relative mode, and from
	// non-program memory for all other modes except implied. note that for
	// instructions which are read-modify-write, the value will change during
	// execution and be written back to memory
	var value uint8

	// the base address before indexing. used by the unstable store
	// instructions
	var base uint16

	// whether the indexing crossed a page boundary
	var crossed bool

	switch defn.AddressingMode {
	case instructions.Implied:
		// the byte after the opcode is always read. BRK skips over it, every
		// other implied instruction leaves the PC where it is
		// +1 cycle
		_, err = mc.read8Bit(mc.PC.Address())
		if err != nil {
			return err
		}
		if defn.Operator == instructions.Brk {
			mc.PC.Add(1)
		}

	case instructions.Immediate, instructions.Relative:
		// +1 cycle
		value, err = mc.readOperand8()
		if err != nil {
			return err
		}

	case instructions.ZeroPage:
		// +1 cycle
		var zp uint8
		zp, err = mc.readOperand8()
		if err != nil {
			return err
		}
		address = uint16(zp)

	case instructions.ZeroPageIndexedX, instructions.ZeroPageIndexedY:
		// +1 cycle
		var zp uint8
		zp, err = mc.readOperand8()
		if err != nil {
			return err
		}

		// phantom read from base address before index adjustment
		// +1 cycle
		_, err = mc.read8Bit(uint16(zp))
		if err != nil {
			return err
		}

		idx := mc.X.Value()
		if defn.AddressingMode == instructions.ZeroPageIndexedY {
			idx = mc.Y.Value()
		}

		// indexing never leaves page zero
		mc.acc8.Load(zp)
		mc.acc8.Add(idx, false)
		address = mc.acc8.Address()
		if uint16(zp)+uint16(idx) > 0xff {
			mc.LastResult.CPUBug = execution.ZeroPageIndexBug
		}

	case instructions.Absolute:
		// JSR reads its operand in a different way. we defer that to the
		// operator switch below
		if defn.Effect != instructions.Subroutine {
			// +2 cycles
			address, err = mc.readOperand16()
			if err != nil {
				return err
			}
		}

	case instructions.Indirect:
		// indirect addressing (without indexing) is only used for the JMP
		// command
		// +2 cycles
		var ptr uint16
		ptr, err = mc.readOperand16()
		if err != nil {
			return err
		}

		// +1 cycle
		var lo, hi uint8
		lo, err = mc.read8Bit(ptr)
		if err != nil {
			return err
		}

		// the high byte of the pointer is not incremented. when the pointer
		// is at the end of a page the high byte of the target is read from
		// the start of the same page
		if ptr&0x00ff == 0x00ff {
			mc.LastResult.CPUBug = execution.JmpIndirectAddressingBug
		}

		// +1 cycle
		hi, err = mc.read8Bit((ptr & 0xff00) | uint16(uint8(ptr)+1))
		if err != nil {
			return err
		}
		address = (uint16(hi) << 8) | uint16(lo)

	case instructions.IndexedIndirect: // x indexing
		// +1 cycle
		var zp uint8
		zp, err = mc.readOperand8()
		if err != nil {
			return err
		}

		// phantom read before adjusting the index
		// +1 cycle
		_, err = mc.read8Bit(uint16(zp))
		if err != nil {
			return err
		}

		ptr := zp + mc.X.Value()
		if uint16(zp)+mc.X.Address() > 0xff || ptr == 0xff {
			mc.LastResult.CPUBug = execution.ZeroPageIndexBug
		}

		// +2 cycles
		var lo, hi uint8
		lo, err = mc.read8Bit(uint16(ptr))
		if err != nil {
			return err
		}
		hi, err = mc.read8Bit(uint16(ptr + 1))
		if err != nil {
			return err
		}
		address = (uint16(hi) << 8) | uint16(lo)

	case instructions.IndirectIndexed: // y indexing
		// +1 cycle
		var zp uint8
		zp, err = mc.readOperand8()
		if err != nil {
			return err
		}

		// +2 cycles
		var lo, hi uint8
		lo, err = mc.read8Bit(uint16(zp))
		if err != nil {
			return err
		}
		hi, err = mc.read8Bit(uint16(zp + 1))
		if err != nil {
			return err
		}

		base = (uint16(hi) << 8) | uint16(lo)
		address = base + mc.Y.Address()

		// +0 or +1 cycle
		crossed, err = mc.indexed(defn, base, address)
		if err != nil {
			return err
		}

	case instructions.AbsoluteIndexedX, instructions.AbsoluteIndexedY:
		// +2 cycles
		base, err = mc.readOperand16()
		if err != nil {
			return err
		}

		if defn.AddressingMode == instructions.AbsoluteIndexedX {
			address = base + mc.X.Address()
		} else {
			address = base + mc.Y.Address()
		}

		// +0 or +1 cycle
		crossed, err = mc.indexed(defn, base, address)
		if err != nil {
			return err
		}
	}

	// read value from memory using address found in AddressingMode switch
	switch defn.Effect {
	case instructions.Read:
		switch defn.AddressingMode {
		case instructions.Implied, instructions.Immediate, instructions.Relative:
		default:
			// +1 cycle
			value, err = mc.read8Bit(address)
			if err != nil {
				return err
			}
		}

	case instructions.RMW:
		// +1 cycle
		value, err = mc.read8Bit(address)
		if err != nil {
			return err
		}

		// the unmodified value is written back before the modified value
		// +1 cycle
		err = mc.write8Bit(address, value)
		if err != nil {
			return err
		}
	}

	// actually perform instruction based on operator group
	switch defn.Operator {
	case instructions.Nop:
		// does nothing

	case instructions.Clc:
		mc.Status.Carry = false
	case instructions.Sec:
		mc.Status.Carry = true
	case instructions.Cli:
		mc.Status.InterruptDisable = false
	case instructions.Sei:
		mc.Status.InterruptDisable = true
	case instructions.Cld:
		mc.Status.DecimalMode = false
	case instructions.Sed:
		mc.Status.DecimalMode = true
	case instructions.Clv:
		mc.Status.Overflow = false

	case instructions.Pha:
		// +1 cycle
		err = mc.push(mc.A.Value())

	case instructions.Php:
		// +1 cycle
		err = mc.push(mc.Status.Value() | registers.Break)

	case instructions.Pla:
		// +2 cycles
		_, err = mc.read8Bit(stackPage | mc.SP.Address())
		if err == nil {
			value, err = mc.pull()
			mc.A.Load(value)
			mc.setZN(value)
		}

	case instructions.Plp:
		// +2 cycles
		_, err = mc.read8Bit(stackPage | mc.SP.Address())
		if err == nil {
			value, err = mc.pull()
			mc.Status.FromValue(value)
		}

	case instructions.Txa:
		mc.A.Load(mc.X.Value())
		mc.setZN(mc.A.Value())
	case instructions.Tax:
		mc.X.Load(mc.A.Value())
		mc.setZN(mc.X.Value())
	case instructions.Tay:
		mc.Y.Load(mc.A.Value())
		mc.setZN(mc.Y.Value())
	case instructions.Tya:
		mc.A.Load(mc.Y.Value())
		mc.setZN(mc.A.Value())
	case instructions.Tsx:
		mc.X.Load(mc.SP.Value())
		mc.setZN(mc.X.Value())
	case instructions.Txs:
		// does not affect status register
		mc.SP.Load(mc.X.Value())

	case instructions.Eor:
		mc.A.EOR(value)
		mc.setZN(mc.A.Value())
	case instructions.Ora:
		mc.A.ORA(value)
		mc.setZN(mc.A.Value())
	case instructions.And:
		mc.A.AND(value)
		mc.setZN(mc.A.Value())

	case instructions.Lda:
		mc.A.Load(value)
		mc.setZN(value)
	case instructions.Ldx:
		mc.X.Load(value)
		mc.setZN(value)
	case instructions.Ldy:
		mc.Y.Load(value)
		mc.setZN(value)

	case instructions.Sta:
		// +1 cycle
		err = mc.write8Bit(address, mc.A.Value())
	case instructions.Stx:
		// +1 cycle
		err = mc.write8Bit(address, mc.X.Value())
	case instructions.Sty:
		// +1 cycle
		err = mc.write8Bit(address, mc.Y.Value())

	case instructions.Inx:
		mc.X.Load(mc.X.Value() + 1)
		mc.setZN(mc.X.Value())
	case instructions.Iny:
		mc.Y.Load(mc.Y.Value() + 1)
		mc.setZN(mc.Y.Value())
	case instructions.Dex:
		mc.X.Load(mc.X.Value() - 1)
		mc.setZN(mc.X.Value())
	case instructions.Dey:
		mc.Y.Load(mc.Y.Value() - 1)
		mc.setZN(mc.Y.Value())

	case instructions.Asl:
		value = mc.shift(defn, value, asl)
	case instructions.Lsr:
		value = mc.shift(defn, value, lsr)
	case instructions.Rol:
		value = mc.shift(defn, value, rol)
	case instructions.Ror:
		value = mc.shift(defn, value, ror)

	case instructions.Adc:
		mc.adc(value)
	case instructions.Sbc:
		// the D flag has no effect on the 2A03
		mc.adc(^value)

	case instructions.Cmp:
		mc.compare(mc.A.Value(), value)
	case instructions.Cpx:
		mc.compare(mc.X.Value(), value)
	case instructions.Cpy:
		mc.compare(mc.Y.Value(), value)

	case instructions.Bit:
		mc.Status.Zero = mc.A.Value()&value == 0
		mc.Status.Sign = value&0x80 == 0x80
		mc.Status.Overflow = value&0x40 == 0x40

	case instructions.Inc:
		value++
		mc.setZN(value)
	case instructions.Dec:
		value--
		mc.setZN(value)

	case instructions.Jmp:
		mc.PC.Load(address)

	case instructions.Bcc:
		err = mc.branch(!mc.Status.Carry, value)
	case instructions.Bcs:
		err = mc.branch(mc.Status.Carry, value)
	case instructions.Beq:
		err = mc.branch(mc.Status.Zero, value)
	case instructions.Bmi:
		err = mc.branch(mc.Status.Sign, value)
	case instructions.Bne:
		err = mc.branch(!mc.Status.Zero, value)
	case instructions.Bpl:
		err = mc.branch(!mc.Status.Sign, value)
	case instructions.Bvc:
		err = mc.branch(!mc.Status.Overflow, value)
	case instructions.Bvs:
		err = mc.branch(mc.Status.Overflow, value)

	case instructions.Jsr:
		err = mc.jsr()

	case instructions.Rts:
		err = mc.rts()

	case instructions.Rti:
		err = mc.rti()

	case instructions.Brk:
		err = mc.brk()

	// undocumented instructions

	case instructions.Slo:
		value = mc.shift(defn, value, asl)
		mc.A.ORA(value)
		mc.setZN(mc.A.Value())

	case instructions.Rla:
		value = mc.shift(defn, value, rol)
		mc.A.AND(value)
		mc.setZN(mc.A.Value())

	case instructions.Sre:
		value = mc.shift(defn, value, lsr)
		mc.A.EOR(value)
		mc.setZN(mc.A.Value())

	case instructions.Rra:
		value = mc.shift(defn, value, ror)
		mc.adc(value)

	case instructions.Sax:
		// +1 cycle
		err = mc.write8Bit(address, mc.A.Value()&mc.X.Value())

	case instructions.Lax:
		mc.A.Load(value)
		mc.X.Load(value)
		mc.setZN(value)

	case instructions.Dcp:
		value--
		mc.compare(mc.A.Value(), value)

	case instructions.Isc:
		value++
		mc.adc(^value)

	case instructions.Anc:
		mc.A.AND(value)
		mc.setZN(mc.A.Value())
		mc.Status.Carry = mc.Status.Sign

	case instructions.Alr:
		mc.A.AND(value)
		mc.Status.Carry = mc.A.LSR()
		mc.setZN(mc.A.Value())

	case instructions.Arr:
		mc.A.AND(value)
		mc.A.ROR(mc.Status.Carry)
		mc.setZN(mc.A.Value())
		mc.Status.Carry = mc.A.Value()&0x40 == 0x40
		mc.Status.Overflow = ((mc.A.Value()>>6)^(mc.A.Value()>>5))&0x01 == 0x01

	case instructions.Axs:
		t := mc.A.Value() & mc.X.Value()
		mc.Status.Carry = t >= value
		mc.X.Load(t - value)
		mc.setZN(mc.X.Value())

	case instructions.Las:
		t := value & mc.SP.Value()
		mc.A.Load(t)
		mc.X.Load(t)
		mc.SP.Load(t)
		mc.setZN(t)

	// the magic constant used by XAA and LXA varies between chips. 0xee is
	// the value most commonly seen on the 2A03
	case instructions.Xaa:
		mc.A.Load((mc.A.Value() | 0xee) & mc.X.Value() & value)
		mc.setZN(mc.A.Value())

	case instructions.Lxa:
		mc.A.Load((mc.A.Value() | 0xee) & value)
		mc.X.Load(mc.A.Value())
		mc.setZN(mc.A.Value())

	case instructions.Ahx:
		// +1 cycle
		err = mc.unstableStore(mc.A.Value()&mc.X.Value(), base, address, crossed)

	case instructions.Shx:
		// +1 cycle
		err = mc.unstableStore(mc.X.Value(), base, address, crossed)

	case instructions.Shy:
		// +1 cycle
		err = mc.unstableStore(mc.Y.Value(), base, address, crossed)

	case instructions.Tas:
		mc.SP.Load(mc.A.Value() & mc.X.Value())
		// +1 cycle
		err = mc.unstableStore(mc.SP.Value(), base, address, crossed)

	case instructions.Kil:
		mc.Killed = true
	}

	if err != nil {
		return err
	}

	// write altered value back to memory for RMW instructions
	if defn.Effect == instructions.RMW {
		// +1 cycle
		err = mc.write8Bit(address, value)
		if err != nil {
			return err
		}
	}

	// finalise result
	mc.LastResult.Final = true

	// BRK behaves like an interrupt sequence and interrupts are not checked
	// at the end of it
	if defn.Operator != instructions.Brk && !mc.Killed {
		mc.checkInterrupts()
	}

	return nil
}

// indexed performs the phantom read that is required when indexing crosses a
// page or when the instruction writes to memory. the phantom read is from the
// address before the high byte has been fixed
func (mc *CPU) indexed(defn *instructions.Definition, base uint16, address uint16) (bool, error) {
	crossed := base&0xff00 != address&0xff00
	if crossed || defn.Effect != instructions.Read {
		// +1 cycle
		_, err := mc.read8Bit((base & 0xff00) | (address & 0x00ff))
		if err != nil {
			return crossed, err
		}
	}
	mc.LastResult.PageFault = crossed && defn.PageSensitive
	return crossed, nil
}

// unstableStore is used by the AHX, SHX, SHY and TAS instructions. the value
// stored is ANDed with the high byte of the base address plus one. if the
// indexing crossed a page then the high byte of the address is replaced with
// the value being stored
func (mc *CPU) unstableStore(v uint8, base uint16, address uint16, crossed bool) error {
	v &= uint8(base>>8) + 1
	if crossed {
		mc.LastResult.CPUBug = execution.UnstableAddressBug
		address = (uint16(v) << 8) | (address & 0x00ff)
	}
	return mc.write8Bit(address, v)
}

// the shift and rotate operations with a common signature
func asl(r *registers.Register, _ bool) bool { return r.ASL() }
func lsr(r *registers.Register, _ bool) bool { return r.LSR() }
func rol(r *registers.Register, carry bool) bool { return r.ROL(carry) }
func ror(r *registers.Register, carry bool) bool { return r.ROR(carry) }

// shift applies a shift or rotate operation to the accumulator or, for RMW
// instructions, to the value read from memory. the carry, zero and sign flags
// are set according to the result
func (mc *CPU) shift(defn *instructions.Definition, value uint8, op func(*registers.Register, bool) bool) uint8 {
	r := &mc.A
	if defn.Effect == instructions.RMW {
		mc.acc8.Load(value)
		r = &mc.acc8
	}
	mc.Status.Carry = op(r, mc.Status.Carry)
	mc.setZN(r.Value())
	return r.Value()
}

// branch performs a branch if flag is true. the branch offset is the operand
// of the instruction
func (mc *CPU) branch(flag bool, offset uint8) error {
	// a taken branch that doesn't cross a page does not poll the interrupt
	// lines on its final cycle
	early := mc.pollPrev

	if !flag {
		return nil
	}

	mc.LastResult.BranchSuccess = true

	// phantom read of the next opcode
	// +1 cycle
	_, err := mc.read8Bit(mc.PC.Address())
	if err != nil {
		return err
	}

	target := mc.PC.Address() + uint16(int8(offset))

	if target&0xff00 != mc.PC.Address()&0xff00 {
		// phantom read with the unfixed high byte
		// +1 cycle
		_, err = mc.read8Bit((mc.PC.Address() & 0xff00) | (target & 0x00ff))
		mc.PC.Load(target)
		return err
	}

	mc.PC.Load(target)
	mc.pollPrev = early

	return nil
}

func (mc *CPU) jsr() error {
	// +1 cycle
	lo, err := mc.readOperand8()
	if err != nil {
		return err
	}

	// the stack pointer is on the address bus while the low byte of the
	// target is held internally
	// +1 cycle
	_, err = mc.read8Bit(stackPage | mc.SP.Address())
	if err != nil {
		return err
	}

	// the PC is pointing at the high byte of the target. that is the address
	// pushed onto the stack
	// +2 cycles
	err = mc.push(uint8(mc.PC.Address() >> 8))
	if err != nil {
		return err
	}
	err = mc.push(uint8(mc.PC.Address()))
	if err != nil {
		return err
	}

	// +1 cycle
	hi, err := mc.read8BitPC()
	if err != nil {
		return err
	}
	mc.LastResult.InstructionData = (uint16(hi) << 8) | uint16(lo)
	mc.PC.Load(mc.LastResult.InstructionData)

	return nil
}

func (mc *CPU) rts() error {
	// +1 cycle
	_, err := mc.read8Bit(stackPage | mc.SP.Address())
	if err != nil {
		return err
	}

	// +2 cycles
	lo, err := mc.pull()
	if err != nil {
		return err
	}
	hi, err := mc.pull()
	if err != nil {
		return err
	}
	mc.PC.Load((uint16(hi) << 8) | uint16(lo))

	// the address pulled from the stack is the last byte of the JSR
	// instruction
	// +1 cycle
	_, err = mc.read8Bit(mc.PC.Address())
	mc.PC.Add(1)

	return err
}

func (mc *CPU) rti() error {
	// +1 cycle
	_, err := mc.read8Bit(stackPage | mc.SP.Address())
	if err != nil {
		return err
	}

	// +3 cycles
	p, err := mc.pull()
	if err != nil {
		return err
	}
	mc.Status.FromValue(p)

	lo, err := mc.pull()
	if err != nil {
		return err
	}
	hi, err := mc.pull()
	if err != nil {
		return err
	}
	mc.PC.Load((uint16(hi) << 8) | uint16(lo))

	return nil
}

func (mc *CPU) brk() error {
	// +3 cycles
	err := mc.push(uint8(mc.PC.Address() >> 8))
	if err != nil {
		return err
	}
	err = mc.push(uint8(mc.PC.Address()))
	if err != nil {
		return err
	}
	err = mc.push(mc.Status.Value() | registers.Break)
	if err != nil {
		return err
	}

	mc.Status.InterruptDisable = true

	// an NMI detected before the vector is fetched hijacks the BRK
	vector := cpubus.IRQ
	if mc.nmiEdge {
		mc.nmiEdge = false
		vector = cpubus.NMI
	}

	// +2 cycles
	return mc.loadVector(vector)
}

// loadVector loads the PC from the vector, consuming two cycles
func (mc *CPU) loadVector(vector uint16) error {
	lo, err := mc.read8Bit(vector)
	if err != nil {
		return err
	}
	hi, err := mc.read8Bit(vector + 1)
	if err != nil {
		return err
	}
	mc.PC.Load((uint16(hi) << 8) | uint16(lo))
	return nil
}

// interruptSequence runs the sequence for the pending interrupt. The sequence
// always takes seven cycles
func (mc *CPU) interruptSequence() error {
	interrupt := mc.Pending
	mc.Pending = execution.NoInterrupt
	mc.LastResult.Interrupt = interrupt

	// two phantom reads of the next opcode
	// +2 cycles
	for range 2 {
		_, err := mc.read8Bit(mc.PC.Address())
		if err != nil {
			return err
		}
	}

	if interrupt == execution.Reset {
		// writes are suppressed during a reset but the stack pointer is
		// decremented as though the registers had been pushed
		// +3 cycles
		for range 3 {
			_, err := mc.read8Bit(stackPage | mc.SP.Address())
			if err != nil {
				return err
			}
			mc.SP.Load(mc.SP.Value() - 1)
		}
	} else {
		// +3 cycles
		err := mc.push(uint8(mc.PC.Address() >> 8))
		if err != nil {
			return err
		}
		err = mc.push(uint8(mc.PC.Address()))
		if err != nil {
			return err
		}

		// the break bit is clear when pushed by an interrupt
		err = mc.push(mc.Status.Value())
		if err != nil {
			return err
		}
	}

	mc.Status.InterruptDisable = true

	var vector uint16
	switch interrupt {
	case execution.Reset:
		mc.Killed = false
		vector = cpubus.Reset
	case execution.NMI:
		mc.nmiEdge = false
		vector = cpubus.NMI
	default:
		vector = cpubus.IRQ
		if mc.nmiEdge {
			mc.nmiEdge = false
			vector = cpubus.NMI
		}
	}

	// +2 cycles
	err := mc.loadVector(vector)
	if err != nil {
		return err
	}

	mc.LastResult.Final = true

	return nil
}
