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

package hardware

import (
	"github.com/jetsetilly/gophernes/hardware/apu"
	"github.com/jetsetilly/gophernes/hardware/clocks"
	"github.com/jetsetilly/gophernes/hardware/cpu"
	"github.com/jetsetilly/gophernes/hardware/input"
	"github.com/jetsetilly/gophernes/hardware/memory"
	"github.com/jetsetilly/gophernes/hardware/ppu"
)

// State stores the NES sub-systems. It is produced by the Snapshot() function
// and can be restored with the Plumb() function.
//
// Note in particular that the TV is not part of the snapshot process.
type State struct {
	CPU    *cpu.CPU
	Mem    *memory.Memory
	PPU    *ppu.PPU
	APU    *apu.APU
	Ports  *input.Ports
	Clock  clocks.Clock
	Timing Timing
}

// Snapshot creates a copy of a previously snapshotted NES State.
func (s *State) Snapshot() *State {
	return &State{
		CPU:    s.CPU.Snapshot(),
		Mem:    s.Mem.Snapshot(),
		PPU:    s.PPU.Snapshot(),
		APU:    s.APU.Snapshot(),
		Ports:  s.Ports.Snapshot(),
		Clock:  s.Clock,
		Timing: s.Timing,
	}
}

// Snapshot the state of the NES sub-systems. The snapshot can be inspected
// without affecting the emulation.
func (nes *NES) Snapshot() *State {
	return &State{
		CPU:    nes.CPU.Snapshot(),
		Mem:    nes.Mem.Snapshot(),
		PPU:    nes.PPU.Snapshot(),
		APU:    nes.APU.Snapshot(),
		Ports:  nes.Ports.Snapshot(),
		Clock:  nes.Clock,
		Timing: nes.Timing,
	}
}

// Plumb a previously snapshotted system.
func (nes *NES) Plumb(state *State) {
	if state == nil {
		panic("nes: cannot plumb in a nil state")
	}

	// take another snapshot of the state before plumbing. we don't want the
	// machine to change what we have stored in our state
	state = state.Snapshot()

	nes.CPU = state.CPU
	nes.Mem = state.Mem
	nes.PPU = state.PPU
	nes.APU = state.APU
	nes.Ports = state.Ports
	nes.Clock = state.Clock
	nes.Timing = state.Timing

	nes.CPU.Plumb(nes.Env, nes.Mem)
	nes.PPU.Plumb(nes.Env, nes.Mem.Cart)
	nes.APU.Plumb(nes.Env)
	nes.Mem.Plumb(nes.Env, nes.PPU, nes.APU, nes.Ports)
	nes.Input.Plumb(nes, nes.Ports)
}
