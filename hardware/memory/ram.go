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

package memory

import (
	"encoding/hex"

	"github.com/jetsetilly/gophernes/environment"
	"github.com/jetsetilly/gophernes/hardware/memory/memorymap"
)

// RAM represents the 2KB of internal RAM in the NES.
type RAM struct {
	env *environment.Environment
	RAM []uint8
}

// NewRAM is the preferred method of initialisation for the RAM memory area.
func NewRAM(env *environment.Environment) *RAM {
	ram := &RAM{
		env: env,
		RAM: make([]uint8, memorymap.RAMSize),
	}
	ram.Reset()
	return ram
}

// Snapshot creates a copy of RAM in its current state.
func (ram *RAM) Snapshot() *RAM {
	n := *ram
	n.RAM = make([]uint8, len(ram.RAM))
	copy(n.RAM, ram.RAM)
	return &n
}

// Plumb a new environment into the RAM.
func (ram *RAM) Plumb(env *environment.Environment) {
	ram.env = env
}

// Reset contents of RAM. If the random state preference is set the RAM will be
// filled with random values.
func (ram *RAM) Reset() {
	random := ram.env != nil && ram.env.Prefs.RandomState.Get().(bool)
	for i := range ram.RAM {
		if random {
			ram.RAM[i] = uint8(ram.env.Prefs.RandSrc.IntN(0x100))
		} else {
			ram.RAM[i] = 0
		}
	}
}

func (ram *RAM) String() string {
	return hex.Dump(ram.RAM)
}

// Read a normalised RAM address.
func (ram *RAM) Read(address uint16) uint8 {
	return ram.RAM[address&memorymap.MaskRAM]
}

// Write a normalised RAM address.
func (ram *RAM) Write(address uint16, data uint8) {
	ram.RAM[address&memorymap.MaskRAM] = data
}
