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
	"fmt"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/environment"
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge"
	"github.com/jetsetilly/gophernes/hardware/memory/cpubus"
	"github.com/jetsetilly/gophernes/hardware/memory/memorymap"
)

// Error patterns.
const (
	AddressOutOfRange = "memory: address %#04x outside of memory map"
	PokeUnsupported   = "memory: cannot poke %s register (%#04x)"
)

// Registers in the APU/IO area that are not handled by the APU.
const (
	RegOAMDMA = uint16(0x14)
	RegJOY1   = uint16(0x16)
	RegJOY2   = uint16(0x17)
	RegStatus = uint16(0x15)
)

// Memory is the monolithic representation of the memory as seen by the CPU.
type Memory struct {
	env *environment.Environment

	RAM  *RAM
	Cart *cartridge.Cartridge

	// the chips mapped into the CPU address space. the APU handles all
	// registers in the APU/IO area except for the OAM DMA register and the
	// reading of the controller ports
	PPU   cpubus.ChipRegisters
	APU   cpubus.ChipRegisters
	Ports cpubus.ChipRegisters

	// the last value seen on the data bus
	OpenBus uint8

	// OAM DMA has been requested by a write to 0x4014. the page is the high
	// byte of the source address
	dmaRequest bool
	dmaPage    uint8
}

// NewMemory is the preferred method of initialisation for Memory. The chip
// registers are disconnected until the fields are set.
func NewMemory(env *environment.Environment, cart *cartridge.Cartridge) *Memory {
	if cart == nil {
		cart = cartridge.NewCartridge(env)
	}
	return &Memory{
		env:   env,
		RAM:   NewRAM(env),
		Cart:  cart,
		PPU:   disconnected{},
		APU:   disconnected{},
		Ports: disconnected{},
	}
}

// Snapshot creates a copy of the memory in its current state. The chip
// registers are not part of the snapshot and must be connected again with the
// Plumb() function.
func (mem *Memory) Snapshot() *Memory {
	n := *mem
	n.RAM = mem.RAM.Snapshot()
	n.Cart = mem.Cart.Snapshot()
	return &n
}

// Plumb makes sure everything is ship-shape after a snapshot has been
// restored.
func (mem *Memory) Plumb(env *environment.Environment, ppu, apu, ports cpubus.ChipRegisters) {
	mem.env = env
	mem.RAM.Plumb(env)
	mem.Cart.Plumb(env)
	mem.PPU = ppu
	mem.APU = apu
	mem.Ports = ports
}

// Reset the memory to its power-on state. The cartridge is reset but not
// ejected.
func (mem *Memory) Reset() {
	mem.RAM.Reset()
	mem.Cart.Reset()
	mem.OpenBus = 0
	mem.dmaRequest = false
}

func (mem *Memory) String() string {
	return fmt.Sprintf("open bus: %02x\n%s", mem.OpenBus, memorymap.Summary())
}

// Read is an implementation of cpubus.Memory.
func (mem *Memory) Read(address uint16) (uint8, error) {
	register, area := memorymap.MapAddress(address)

	var data uint8

	switch area {
	case memorymap.RAM:
		data = mem.RAM.Read(register)
	case memorymap.PPU:
		data = mem.PPU.ReadRegister(register, mem.OpenBus)
	case memorymap.APU:
		switch register {
		case RegStatus:
			// the status register is internal to the 2A03 and does not
			// change the value on the external data bus
			return mem.APU.ReadRegister(register, mem.OpenBus), nil
		case RegJOY1, RegJOY2:
			data = mem.Ports.ReadRegister(register, mem.OpenBus)
		default:
			data = mem.OpenBus
		}
	case memorymap.TestMode:
		data = mem.OpenBus
	case memorymap.Cartridge:
		data = mem.Cart.Read(register, mem.OpenBus)
	default:
		return 0, curated.Errorf(AddressOutOfRange, address)
	}

	mem.OpenBus = data

	return data, nil
}

// Write is an implementation of cpubus.Memory.
func (mem *Memory) Write(address uint16, data uint8) error {
	register, area := memorymap.MapAddress(address)

	mem.OpenBus = data

	switch area {
	case memorymap.RAM:
		mem.RAM.Write(register, data)
	case memorymap.PPU:
		mem.PPU.WriteRegister(register, data)
	case memorymap.APU:
		switch register {
		case RegOAMDMA:
			mem.dmaRequest = true
			mem.dmaPage = data
		case RegJOY1:
			mem.Ports.WriteRegister(register, data)
		default:
			mem.APU.WriteRegister(register, data)
		}
	case memorymap.TestMode:
	case memorymap.Cartridge:
		mem.Cart.Write(register, data)
	default:
		return curated.Errorf(AddressOutOfRange, address)
	}

	return nil
}

// DMARequest returns the page requested by a write to the OAM DMA register.
// The request is cleared by the call.
func (mem *Memory) DMARequest() (uint8, bool) {
	if !mem.dmaRequest {
		return 0, false
	}
	mem.dmaRequest = false
	return mem.dmaPage, true
}

// Peek is an implementation of cpubus.DebugBus.
func (mem *Memory) Peek(address uint16) (uint8, error) {
	register, area := memorymap.MapAddress(address)

	switch area {
	case memorymap.RAM:
		return mem.RAM.Read(register), nil
	case memorymap.PPU:
		return mem.PPU.PeekRegister(register, mem.OpenBus), nil
	case memorymap.APU:
		switch register {
		case RegStatus:
			return mem.APU.PeekRegister(register, mem.OpenBus), nil
		case RegJOY1, RegJOY2:
			return mem.Ports.PeekRegister(register, mem.OpenBus), nil
		}
		return mem.OpenBus, nil
	case memorymap.TestMode:
		return mem.OpenBus, nil
	case memorymap.Cartridge:
		if data, ok := mem.Cart.Peek(register); ok {
			return data, nil
		}
		return mem.OpenBus, nil
	}

	return 0, curated.Errorf(AddressOutOfRange, address)
}

// Poke is an implementation of cpubus.DebugBus. Only RAM and the cartridge can
// be poked.
func (mem *Memory) Poke(address uint16, value uint8) error {
	register, area := memorymap.MapAddress(address)

	switch area {
	case memorymap.RAM:
		mem.RAM.Write(register, value)
	case memorymap.Cartridge:
		mem.Cart.Poke(register, value)
	case memorymap.PPU, memorymap.APU, memorymap.TestMode:
		return curated.Errorf(PokeUnsupported, area, address)
	default:
		return curated.Errorf(AddressOutOfRange, address)
	}

	return nil
}

// disconnected implements cpubus.ChipRegisters for chips that have not been
// connected to the memory.
type disconnected struct{}

func (disconnected) ReadRegister(_ uint16, bus uint8) uint8 {
	return bus
}

func (disconnected) WriteRegister(_ uint16, _ uint8) {
}

func (disconnected) PeekRegister(_ uint16, bus uint8) uint8 {
	return bus
}
