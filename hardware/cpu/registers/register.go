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

package registers

import (
	"fmt"
)

// Register is an 8 bit register. Registers A, X, Y and SP are all of this
// type.
type Register struct {
	value uint8
	label string
}

// NewRegister is the preferred method of initialisation for Register.
func NewRegister(val uint8, label string) Register {
	return Register{
		value: val,
		label: label,
	}
}

func (r Register) String() string {
	return fmt.Sprintf("%02x", r.value)
}

// Label returns the canonical name of the register.
func (r Register) Label() string {
	return r.label
}

// Value returns the current value of the register.
func (r Register) Value() uint8 {
	return r.value
}

// Address returns the current value of the register as a uint16. Useful when
// the register value is used in an address context. For example, the stack
// pointer stores an address in page one.
func (r Register) Address() uint16 {
	return uint16(r.value)
}

// IsNegative checks the sign bit of the register.
func (r Register) IsNegative() bool {
	return r.value&0x80 == 0x80
}

// IsZero checks if register is zero.
func (r Register) IsZero() bool {
	return r.value == 0
}

// IsBitV returns the state of the second most significant bit.
func (r Register) IsBitV() bool {
	return r.value&0x40 == 0x40
}

// Load value into register.
func (r *Register) Load(val uint8) {
	r.value = val
}

// Add value to register. Returns carry and overflow states.
func (r *Register) Add(val uint8, carry bool) (rcarry bool, overflow bool) {
	sum := uint16(r.value) + uint16(val)
	if carry {
		sum++
	}

	// overflow occurs when both operands have the same sign and the sign of
	// the result differs
	overflow = (^(r.value ^ val) & (r.value ^ uint8(sum)) & 0x80) != 0

	r.value = uint8(sum)
	return sum > 0xff, overflow
}

// Subtract value from register. Returns carry and overflow states. As with
// the 6502 the carry flag is the inverse of borrow.
func (r *Register) Subtract(val uint8, carry bool) (rcarry bool, overflow bool) {
	return r.Add(^val, carry)
}

// AND value with register.
func (r *Register) AND(val uint8) {
	r.value &= val
}

// ORA (inclusive or) value with register.
func (r *Register) ORA(val uint8) {
	r.value |= val
}

// EOR (exclusive or) value with register.
func (r *Register) EOR(val uint8) {
	r.value ^= val
}

// ASL (arithmetic shift left) shifts register one bit to the left. Returns
// the most significant bit as it was before the shift.
func (r *Register) ASL() bool {
	carry := r.IsNegative()
	r.value <<= 1
	return carry
}

// LSR (logical shift right) shifts register one bit to the right. Returns
// the least significant bit as it was before the shift.
func (r *Register) LSR() bool {
	carry := r.value&0x01 == 0x01
	r.value >>= 1
	return carry
}

// ROL rotates register one bit to the left. The carry argument is shifted
// into bit zero. Returns the most significant bit as it was before the
// rotation.
func (r *Register) ROL(carry bool) bool {
	rcarry := r.IsNegative()
	r.value <<= 1
	if carry {
		r.value |= 0x01
	}
	return rcarry
}

// ROR rotates register one bit to the right. The carry argument is shifted
// into bit seven. Returns the least significant bit as it was before the
// rotation.
func (r *Register) ROR(carry bool) bool {
	rcarry := r.value&0x01 == 0x01
	r.value >>= 1
	if carry {
		r.value |= 0x80
	}
	return rcarry
}
