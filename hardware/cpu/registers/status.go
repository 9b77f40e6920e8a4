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
	"strings"
)

// StatusRegister is the special purpose register that stores the flags of the
// CPU.
//
// There is no break flag in the register itself. The break bit only exists in
// the copy of the register that is pushed onto the stack, where it records
// whether the push was caused by the BRK and PHP instructions or by an
// interrupt.
type StatusRegister struct {
	Sign             bool
	Overflow         bool
	DecimalMode      bool
	InterruptDisable bool
	Zero             bool
	Carry            bool
}

// Bit patterns for the flags in the stacked form of the status register.
const (
	Carry            = 0x01
	Zero             = 0x02
	InterruptDisable = 0x04
	DecimalMode      = 0x08
	Break            = 0x10
	Unused           = 0x20
	Overflow         = 0x40
	Sign             = 0x80
)

// NewStatusRegister is the preferred method of initialisation for the status
// register.
func NewStatusRegister() StatusRegister {
	return StatusRegister{}
}

// Label returns the canonical name for the status register.
func (sr StatusRegister) Label() string {
	return "SR"
}

func (sr StatusRegister) String() string {
	s := strings.Builder{}

	flag := func(set bool, on, off rune) {
		if set {
			s.WriteRune(on)
		} else {
			s.WriteRune(off)
		}
	}

	flag(sr.Sign, 'N', 'n')
	flag(sr.Overflow, 'V', 'v')
	s.WriteString("--")
	flag(sr.DecimalMode, 'D', 'd')
	flag(sr.InterruptDisable, 'I', 'i')
	flag(sr.Zero, 'Z', 'z')
	flag(sr.Carry, 'C', 'c')

	return s.String()
}

// Reset status flags to initial state.
func (sr *StatusRegister) Reset() {
	sr.FromValue(0)
}

// Value converts the StatusRegister struct into a value suitable for pushing
// onto the stack. The unused bit is always set and the break bit is always
// clear. Callers that need the break bit set should OR the result with Break.
func (sr StatusRegister) Value() uint8 {
	v := uint8(Unused)

	if sr.Sign {
		v |= Sign
	}
	if sr.Overflow {
		v |= Overflow
	}
	if sr.DecimalMode {
		v |= DecimalMode
	}
	if sr.InterruptDisable {
		v |= InterruptDisable
	}
	if sr.Zero {
		v |= Zero
	}
	if sr.Carry {
		v |= Carry
	}

	return v
}

// FromValue converts an 8 bit integer (taken from the stack, for example) to
// the StatusRegister struct receiver. The break and unused bits are ignored.
func (sr *StatusRegister) FromValue(v uint8) {
	sr.Sign = v&Sign == Sign
	sr.Overflow = v&Overflow == Overflow
	sr.DecimalMode = v&DecimalMode == DecimalMode
	sr.InterruptDisable = v&InterruptDisable == InterruptDisable
	sr.Zero = v&Zero == Zero
	sr.Carry = v&Carry == Carry
}
