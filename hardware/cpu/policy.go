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
	"strings"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/hardware/cpu/instructions"
	"github.com/jetsetilly/gophernes/hardware/preferences"
)

// The policies for undocumented opcodes. The values are the same as the values
// used by the cpu.illegal preference.
const (
	// every opcode behaves as it does on real hardware
	IllegalAll = preferences.IllegalAll

	// the unstable undocumented opcodes behave like NOP instructions of the
	// same length
	IllegalStable = preferences.IllegalStable

	// every undocumented opcode behaves like a NOP instruction of the same
	// length. KIL opcodes still jam the CPU
	IllegalDocumented = preferences.IllegalDocumented
)

// UnknownPolicy is returned by SetIllegalPolicy() when the policy is not
// recognised.
const UnknownPolicy = "cpu: unknown undocumented opcode policy (%s)"

// one table for each policy. the tables are created once and shared between
// all CPU instances
var policyTables = map[string]*[256]instructions.Definition{
	IllegalAll:        newPolicyTable(func(instructions.Definition) bool { return false }),
	IllegalStable:     newPolicyTable(func(d instructions.Definition) bool { return d.Unstable }),
	IllegalDocumented: newPolicyTable(func(d instructions.Definition) bool { return d.Undocumented }),
}

func newPolicyTable(asNOP func(instructions.Definition) bool) *[256]instructions.Definition {
	var tab [256]instructions.Definition
	for i, d := range instructions.Definitions {
		if asNOP(d) {
			tab[i] = d.AsNOP()
		} else {
			tab[i] = d
		}
	}
	return &tab
}

// SetIllegalPolicy changes how the CPU treats undocumented opcodes. The policy
// is one of IllegalAll, IllegalStable or IllegalDocumented. The change takes
// effect from the next instruction.
func (mc *CPU) SetIllegalPolicy(policy string) error {
	policy = strings.ToUpper(strings.TrimSpace(policy))
	tab, ok := policyTables[policy]
	if !ok {
		return curated.Errorf(UnknownPolicy, policy)
	}
	mc.instructions = tab
	mc.policy = policy
	return nil
}

// IllegalPolicy returns the current policy for undocumented opcodes.
func (mc *CPU) IllegalPolicy() string {
	return mc.policy
}

// Definition returns the instruction definition used for the opcode under the
// current policy.
func (mc *CPU) Definition(opcode uint8) *instructions.Definition {
	return &mc.instructions[opcode]
}
