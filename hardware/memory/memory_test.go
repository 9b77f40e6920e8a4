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

package memory_test

import (
	"testing"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/hardware/memory"
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge"
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge/mapper"
	"github.com/jetsetilly/gophernes/test"
)

// chip records the register accesses made through the memory
type chip struct {
	reads  []uint16
	writes map[uint16]uint8

	// the value driven by the chip. only the bits in the mask are driven
	value uint8
	mask  uint8
}

func newChip(value uint8, mask uint8) *chip {
	return &chip{writes: make(map[uint16]uint8), value: value, mask: mask}
}

func (c *chip) ReadRegister(register uint16, bus uint8) uint8 {
	c.reads = append(c.reads, register)
	return (c.value & c.mask) | (bus &^ c.mask)
}

func (c *chip) WriteRegister(register uint16, data uint8) {
	c.writes[register] = data
}

func (c *chip) PeekRegister(register uint16, bus uint8) uint8 {
	return (c.value & c.mask) | (bus &^ c.mask)
}

func newMemory(t *testing.T) *memory.Memory {
	t.Helper()
	prg := make([]uint8, 0x8000)
	for i := range prg {
		prg[i] = uint8(i >> 8)
	}
	cart := cartridge.NewCartridge(nil)
	test.DemandSuccess(t, cart.Attach(mapper.Config{PRGROMSize: len(prg)}, prg, nil))
	return memory.NewMemory(nil, cart)
}

func TestRAMMirroring(t *testing.T) {
	mem := newMemory(t)

	test.ExpectSuccess(t, mem.Write(0x0001, 0x42))
	for _, a := range []uint16{0x0001, 0x0801, 0x1001, 0x1801} {
		d, err := mem.Read(a)
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, d, 0x42, a)
	}

	test.ExpectSuccess(t, mem.Write(0x1fff, 0x24))
	d, _ := mem.Peek(0x07ff)
	test.ExpectEquality(t, d, 0x24)
}

func TestPPURegisters(t *testing.T) {
	mem := newMemory(t)
	ppu := newChip(0x80, 0xe0)
	mem.PPU = ppu

	// registers are mirrored every eight bytes
	test.ExpectSuccess(t, mem.Write(0x3456, 0x11))
	test.ExpectEquality(t, ppu.writes[0x06], 0x11)

	// the chip only drives the top three bits. the other bits come from the
	// data bus, which holds the last value written
	d, err := mem.Read(0x2002)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, d, 0x91)
	test.ExpectEquality(t, ppu.reads[0], 0x02)
	test.ExpectEquality(t, mem.OpenBus, 0x91)

	// peek does not cause a register read
	d, err = mem.Peek(0x2002)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, d, 0x91)
	test.ExpectEquality(t, len(ppu.reads), 1)
}

func TestOpenBus(t *testing.T) {
	mem := newMemory(t)

	// the cartridge has no PRG RAM below 0x6000 and the test registers are
	// disabled
	test.ExpectSuccess(t, mem.Write(0x0000, 0x5a))
	d, _ := mem.Read(0x5000)
	test.ExpectEquality(t, d, 0x5a)
	d, _ = mem.Read(0x401a)
	test.ExpectEquality(t, d, 0x5a)

	// APU registers are write only
	d, _ = mem.Read(0x4000)
	test.ExpectEquality(t, d, 0x5a)

	// reading the cartridge changes the open bus
	d, _ = mem.Read(0x9234)
	test.ExpectEquality(t, d, 0x12)
	test.ExpectEquality(t, mem.OpenBus, 0x12)
	d, _ = mem.Read(0x4019)
	test.ExpectEquality(t, d, 0x12)
}

func TestAPUStatus(t *testing.T) {
	mem := newMemory(t)
	apu := newChip(0x1f, 0xdf)
	mem.APU = apu

	// bit 5 of the status register is open bus but reading the status
	// register does not change the open bus value
	test.ExpectSuccess(t, mem.Write(0x0000, 0x20))
	d, _ := mem.Read(0x4015)
	test.ExpectEquality(t, d, 0x3f)
	test.ExpectEquality(t, mem.OpenBus, 0x20)

	test.ExpectSuccess(t, mem.Write(0x4015, 0x0f))
	test.ExpectEquality(t, apu.writes[0x15], 0x0f)

	// 0x4017 writes go to the APU frame counter
	test.ExpectSuccess(t, mem.Write(0x4017, 0x40))
	test.ExpectEquality(t, apu.writes[0x17], 0x40)
}

func TestControllerPorts(t *testing.T) {
	mem := newMemory(t)
	ports := newChip(0x01, 0x1f)
	mem.Ports = ports

	test.ExpectSuccess(t, mem.Write(0x4016, 0x01))
	test.ExpectEquality(t, ports.writes[0x16], 0x01)

	// the upper bits of the controller ports are open bus. the usual value
	// is 0x40 because the high byte of the address is the last value on the
	// data bus
	mem.OpenBus = 0x40
	d, _ := mem.Read(0x4016)
	test.ExpectEquality(t, d, 0x41)
	d, _ = mem.Read(0x4017)
	test.ExpectEquality(t, d, 0x41)
	test.ExpectEquality(t, len(ports.reads), 2)
}

func TestDMARequest(t *testing.T) {
	mem := newMemory(t)

	_, ok := mem.DMARequest()
	test.ExpectFailure(t, ok)

	test.ExpectSuccess(t, mem.Write(0x4014, 0x02))
	page, ok := mem.DMARequest()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, page, 0x02)

	// request is cleared
	_, ok = mem.DMARequest()
	test.ExpectFailure(t, ok)
}

func TestPoke(t *testing.T) {
	mem := newMemory(t)

	test.ExpectSuccess(t, mem.Poke(0x0010, 0x77))
	d, _ := mem.Read(0x0810)
	test.ExpectEquality(t, d, 0x77)

	test.ExpectSuccess(t, mem.Poke(0x8000, 0x99))
	d, _ = mem.Peek(0x8000)
	test.ExpectEquality(t, d, 0x99)

	err := mem.Poke(0x2000, 0x00)
	test.ExpectSuccess(t, curated.Is(err, memory.PokeUnsupported))
}

func TestSnapshot(t *testing.T) {
	mem := newMemory(t)
	test.ExpectSuccess(t, mem.Write(0x0000, 0x01))

	snap := mem.Snapshot()
	test.ExpectSuccess(t, mem.Write(0x0000, 0x02))

	d, _ := snap.Peek(0x0000)
	test.ExpectEquality(t, d, 0x01)
	d, _ = mem.Peek(0x0000)
	test.ExpectEquality(t, d, 0x02)
}
