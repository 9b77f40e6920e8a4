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

package registers_test

import (
	"testing"

	"github.com/jetsetilly/gophernes/hardware/cpu/registers"
	"github.com/jetsetilly/gophernes/test"
)

func TestRegister(t *testing.T) {
	var carry, overflow bool

	// initialisation
	r8 := registers.NewRegister(0, "test")
	test.ExpectSuccess(t, r8.IsZero())
	test.ExpectEquality(t, r8.Value(), 0)
	test.ExpectEquality(t, r8.Label(), "test")

	// loading & addition
	r8.Load(127)
	test.ExpectEquality(t, r8.Value(), 127)
	_, overflow = r8.Add(2, false)
	test.ExpectEquality(t, r8.Value(), 129)
	test.ExpectSuccess(t, overflow)

	// addition boundary
	r8.Load(255)
	test.ExpectSuccess(t, r8.IsNegative())
	carry, overflow = r8.Add(1, false)
	test.ExpectSuccess(t, carry)
	test.ExpectFailure(t, overflow)
	test.ExpectSuccess(t, r8.IsZero())

	// addition boundary with carry
	r8.Load(254)
	carry, overflow = r8.Add(1, true)
	test.ExpectSuccess(t, carry)
	test.ExpectFailure(t, overflow)
	test.ExpectSuccess(t, r8.IsZero())

	r8.Load(255)
	carry, overflow = r8.Add(1, true)
	test.ExpectSuccess(t, carry)
	test.ExpectFailure(t, overflow)
	test.ExpectEquality(t, r8.Value(), 1)

	// signed overflow in the negative direction
	r8.Load(0x80)
	carry, overflow = r8.Add(0xff, false)
	test.ExpectSuccess(t, carry)
	test.ExpectSuccess(t, overflow)
	test.ExpectEquality(t, r8.Value(), 0x7f)

	// subtraction. carry is the inverse of borrow
	r8.Load(11)
	carry, _ = r8.Subtract(1, true)
	test.ExpectEquality(t, r8.Value(), 10)
	test.ExpectSuccess(t, carry)

	r8.Load(12)
	r8.Subtract(1, false)
	test.ExpectEquality(t, r8.Value(), 10)

	r8.Load(0x01)
	carry, _ = r8.Subtract(0x06, false)
	test.ExpectEquality(t, r8.Value(), 0xfa)
	test.ExpectFailure(t, carry)

	// subtract on boundary
	r8.Load(0)
	r8.Subtract(1, true)
	test.ExpectEquality(t, r8.Value(), 255)
	r8.Load(1)
	r8.Subtract(1, false)
	test.ExpectEquality(t, r8.Value(), 255)

	// signed overflow from subtraction
	r8.Load(0x80)
	_, overflow = r8.Subtract(0x01, true)
	test.ExpectEquality(t, r8.Value(), 0x7f)
	test.ExpectSuccess(t, overflow)

	// logical operators
	r8.Load(0x21)
	r8.AND(0x01)
	test.ExpectEquality(t, r8.Value(), 0x01)
	r8.EOR(0xff)
	test.ExpectEquality(t, r8.Value(), 0xfe)
	r8.ORA(0x1)
	test.ExpectEquality(t, r8.Value(), 0xff)

	// shifts
	carry = r8.ASL()
	test.ExpectEquality(t, r8.Value(), 0xfe)
	test.ExpectSuccess(t, carry)
	carry = r8.LSR()
	test.ExpectEquality(t, r8.Value(), 0x7f)
	test.ExpectFailure(t, carry)
	carry = r8.LSR()
	test.ExpectSuccess(t, carry)

	// rotation
	r8.Load(0xff)
	carry = r8.ROL(false)
	test.ExpectEquality(t, r8.Value(), 0xfe)
	test.ExpectSuccess(t, carry)
	carry = r8.ROR(true)
	test.ExpectEquality(t, r8.Value(), 0xff)
	test.ExpectFailure(t, carry)
}

func TestProgramCounter(t *testing.T) {
	pc := registers.NewProgramCounter(0)
	test.ExpectEquality(t, pc.Address(), 0)

	pc.Load(127)
	test.ExpectEquality(t, pc.Address(), 127)
	pc.Add(2)
	test.ExpectEquality(t, pc.Address(), 129)

	// wrap around
	pc.Load(0xffff)
	pc.Add(1)
	test.ExpectEquality(t, pc.Address(), 0)
	test.ExpectEquality(t, pc.String(), "0000")
}

func TestStatusRegister(t *testing.T) {
	sr := registers.NewStatusRegister()
	test.ExpectEquality(t, sr.String(), "nv--dizc")

	// the unused bit is always set in the value form
	test.ExpectEquality(t, sr.Value(), registers.Unused)

	// the break bit is never stored
	sr.FromValue(0xff)
	test.ExpectEquality(t, sr.String(), "NV--DIZC")
	test.ExpectEquality(t, sr.Value(), 0xef)

	sr.FromValue(0x34)
	test.ExpectSuccess(t, sr.InterruptDisable)
	test.ExpectFailure(t, sr.DecimalMode)
	test.ExpectEquality(t, sr.Value(), 0x24)

	sr.Reset()
	test.ExpectEquality(t, sr.Value(), registers.Unused)
}
