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

package instructions

// EffectCategory categorises an instruction by the effect it has.
type EffectCategory int

// List of effect categories.
const (
	Read EffectCategory = iota
	Write
	RMW

	// the following three effects have a variable effect on the program
	// counter, depending on the instruction's precise operand.

	// flow consists of the Branch and JMP instructions. Branch instructions
	// specifically can be distinguished by the AddressingMode.
	Flow

	Subroutine
	Interrupt
)

var effectNames = [...]string{
	Read:       "Read",
	Write:      "Write",
	RMW:        "RMW",
	Flow:       "Flow",
	Subroutine: "Subroutine",
	Interrupt:  "Interrupt",
}

func (e EffectCategory) String() string {
	if int(e) < len(effectNames) {
		return effectNames[e]
	}
	return "unknown effect"
}

// ParseEffectCategory returns the EffectCategory for the name returned by the
// String() function.
func ParseEffectCategory(s string) (EffectCategory, bool) {
	for i, n := range effectNames {
		if n == s {
			return EffectCategory(i), true
		}
	}
	return Read, false
}
