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

package cartridge_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge"
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge/mapper"
	"github.com/jetsetilly/gophernes/test"
)

// create ROM data in which every byte is the number of the bank it is in
func rom(size int, bankSize int) []uint8 {
	data := make([]uint8, size)
	for i := range data {
		data[i] = uint8(i / bankSize)
	}
	return data
}

func attach(t *testing.T, cfg mapper.Config, prg []uint8, chr []uint8) *cartridge.Cartridge {
	t.Helper()
	cfg.PRGROMSize = len(prg)
	cfg.CHRROMSize = len(chr)
	cart := cartridge.NewCartridge(nil)
	test.DemandSuccess(t, cart.Attach(cfg, prg, chr))
	return cart
}

func TestEjected(t *testing.T) {
	cart := cartridge.NewCartridge(nil)
	test.ExpectSuccess(t, cart.IsEjected())
	test.ExpectEquality(t, cart.Read(0x8000, 0x5a), 0x5a)
	_, driven := cart.Peek(0x8000)
	test.ExpectFailure(t, driven)
}

func TestUnsupportedMapper(t *testing.T) {
	cart := cartridge.NewCartridge(nil)
	err := cart.Attach(mapper.Config{Mapper: 5, PRGROMSize: 0x8000}, make([]uint8, 0x8000), nil)
	test.ExpectSuccess(t, curated.Is(err, cartridge.UnsupportedMapper))
	test.ExpectSuccess(t, cart.IsEjected())
	test.ExpectFailure(t, cartridge.IsSupported(5))
	test.ExpectSuccess(t, cartridge.IsSupported(66))
}

func TestInvalidSize(t *testing.T) {
	cart := cartridge.NewCartridge(nil)

	// data does not match the configuration
	err := cart.Attach(mapper.Config{PRGROMSize: 0x8000}, make([]uint8, 0x4000), nil)
	test.ExpectSuccess(t, curated.Is(err, cartridge.InvalidBankSize))

	// too large for NROM
	err = cart.Attach(mapper.Config{PRGROMSize: 0x10000}, make([]uint8, 0x10000), nil)
	test.ExpectSuccess(t, curated.Is(err, cartridge.InvalidBankSize))
	test.ExpectSuccess(t, cart.IsEjected())
}

func TestNROM(t *testing.T) {
	prg := make([]uint8, 0x4000)
	prg[0x0000] = 0x11
	prg[0x3fff] = 0x22
	cart := attach(t, mapper.Config{Mirroring: mapper.Vertical}, prg, nil)

	test.ExpectFailure(t, cart.IsEjected())
	test.ExpectEquality(t, cart.ID(), "NROM")

	// 16K of PRG is mirrored
	test.ExpectEquality(t, cart.Read(0x8000, 0), 0x11)
	test.ExpectEquality(t, cart.Read(0xc000, 0), 0x11)
	test.ExpectEquality(t, cart.Read(0xffff, 0), 0x22)

	// writes to ROM are ignored
	cart.Write(0x8000, 0x99)
	test.ExpectEquality(t, cart.Read(0x8000, 0), 0x11)

	// but pokes are not
	cart.Poke(0x8000, 0x99)
	test.ExpectEquality(t, cart.Read(0x8000, 0), 0x99)

	// PRG RAM
	cart.Write(0x6000, 0x33)
	test.ExpectEquality(t, cart.Read(0x6000, 0), 0x33)
	test.ExpectEquality(t, cart.GetBank(0x6000).IsRAM, true)

	// area below PRG RAM is not driven
	test.ExpectEquality(t, cart.Read(0x5000, 0xa5), 0xa5)
	test.ExpectEquality(t, cart.GetBank(0x5000).Unmapped, true)

	// no CHR ROM so there is CHR RAM
	cart.WriteCHR(0x1234, 0x44)
	test.ExpectEquality(t, cart.ReadCHR(0x1234), 0x44)

	test.ExpectEquality(t, cart.Mirroring(), mapper.Vertical)
	test.ExpectEquality(t, cart.IRQ(), false)
}

func TestCHRROM(t *testing.T) {
	chr := make([]uint8, 0x2000)
	chr[0x0010] = 0x55
	cart := attach(t, mapper.Config{}, make([]uint8, 0x8000), chr)

	cart.WriteCHR(0x0010, 0x66)
	test.ExpectEquality(t, cart.ReadCHR(0x0010), 0x55)
}

// write a value to an MMC1 register through the serial port
func mmc1Write(cart *cartridge.Cartridge, address uint16, value uint8) {
	for i := range 5 {
		cart.Write(address, (value>>i)&0x01)
		cart.Step()
		cart.Step()
	}
}

func TestMMC1(t *testing.T) {
	cart := attach(t, mapper.Config{Mapper: 1}, rom(0x20000, 0x4000), rom(0x8000, 0x1000))

	// power on state has the last bank fixed at 0xc000
	test.ExpectEquality(t, cart.Read(0x8000, 0), 0)
	test.ExpectEquality(t, cart.Read(0xc000, 0), 7)

	// switch bank at 0x8000
	mmc1Write(cart, 0xe000, 0x02)
	test.ExpectEquality(t, cart.Read(0x8000, 0), 2)
	test.ExpectEquality(t, cart.Read(0xc000, 0), 7)
	test.ExpectEquality(t, cart.MappedBanks(), "PRG: 2 7 CHR: 0 1")

	// fix first bank at 0x8000 and switch bank at 0xc000
	mmc1Write(cart, 0x8000, 0x0b)
	test.ExpectEquality(t, cart.Read(0x8000, 0), 0)
	test.ExpectEquality(t, cart.Read(0xc000, 0), 2)

	// 32K mode ignores the low bit of the bank number
	mmc1Write(cart, 0x8000, 0x03)
	mmc1Write(cart, 0xe000, 0x05)
	test.ExpectEquality(t, cart.Read(0x8000, 0), 4)
	test.ExpectEquality(t, cart.Read(0xc000, 0), 5)

	// 4K CHR mode
	mmc1Write(cart, 0x8000, 0x1f)
	mmc1Write(cart, 0xa000, 0x03)
	mmc1Write(cart, 0xc000, 0x05)
	test.ExpectEquality(t, cart.ReadCHR(0x0000), 3)
	test.ExpectEquality(t, cart.ReadCHR(0x1000), 5)

	// 8K CHR mode ignores the low bit of the bank number and the second
	// bank register
	mmc1Write(cart, 0x8000, 0x0f)
	test.ExpectEquality(t, cart.ReadCHR(0x0000), 2)
	test.ExpectEquality(t, cart.ReadCHR(0x1000), 3)
}

func TestMMC1ShiftReset(t *testing.T) {
	cart := attach(t, mapper.Config{Mapper: 1}, rom(0x20000, 0x4000), nil)

	// partially load the shift register and then reset it. the reset also
	// puts the mapper into the fixed last bank mode
	cart.Write(0xe000, 0x01)
	cart.Step()
	cart.Step()
	cart.Write(0xe000, 0x01)
	cart.Step()
	cart.Step()
	cart.Write(0x8000, 0x80)
	cart.Step()
	cart.Step()

	mmc1Write(cart, 0xe000, 0x03)
	test.ExpectEquality(t, cart.Read(0x8000, 0), 3)
	test.ExpectEquality(t, cart.Read(0xc000, 0), 7)
}

func TestMMC1ConsecutiveWrites(t *testing.T) {
	cart := attach(t, mapper.Config{Mapper: 1}, rom(0x20000, 0x4000), nil)

	// a write on the cycle immediately after another write is ignored. this
	// is what happens with the two writes of a read-modify-write instruction
	cart.Write(0xe000, 0x01)
	cart.Step()
	cart.Write(0xe000, 0x01)
	cart.Step()
	cart.Step()

	// four more bits complete the register. if the second write had been
	// accepted the register would be loaded with 0x07 and not 0x03
	for _, v := range []uint8{0x01, 0x00, 0x00, 0x00} {
		cart.Write(0xe000, v)
		cart.Step()
		cart.Step()
	}
	test.ExpectEquality(t, cart.Read(0x8000, 0), 3)
}

func TestMMC1SUROM(t *testing.T) {
	cart := attach(t, mapper.Config{Mapper: 1}, rom(0x80000, 0x4000), nil)

	// the fixed bank is the last bank of the first 256K
	test.ExpectEquality(t, cart.Read(0xc000, 0), 15)

	// bit 4 of the CHR bank register selects the second 256K
	mmc1Write(cart, 0xa000, 0x10)
	test.ExpectEquality(t, cart.Read(0x8000, 0), 16)
	test.ExpectEquality(t, cart.Read(0xc000, 0), 31)
}

func TestMMC1RAMDisable(t *testing.T) {
	cart := attach(t, mapper.Config{Mapper: 1}, rom(0x20000, 0x4000), nil)
	cart.Write(0x6000, 0x12)
	cart.Step()
	cart.Step()
	test.ExpectEquality(t, cart.Read(0x6000, 0), 0x12)

	mmc1Write(cart, 0xe000, 0x10)
	test.ExpectEquality(t, cart.Read(0x6000, 0xff), 0xff)
}

func TestUxROM(t *testing.T) {
	cart := attach(t, mapper.Config{Mapper: 2}, rom(0x20000, 0x4000), nil)
	test.ExpectEquality(t, cart.Read(0x8000, 0), 0)
	test.ExpectEquality(t, cart.Read(0xc000, 0), 7)

	cart.Write(0x8000, 3)
	test.ExpectEquality(t, cart.Read(0x8000, 0), 3)
	test.ExpectEquality(t, cart.Read(0xffff, 0), 7)
	test.ExpectEquality(t, cart.GetBank(0x8000).Number, 3)
	test.ExpectEquality(t, cart.NumBanks(), 8)

	// bank numbers wrap
	cart.Write(0x8000, 9)
	test.ExpectEquality(t, cart.Read(0x8000, 0), 1)

	cart.Reset()
	test.ExpectEquality(t, cart.Read(0x8000, 0), 0)
}

func TestCNROMBusConflicts(t *testing.T) {
	prg := make([]uint8, 0x8000)
	for i := range prg {
		prg[i] = 0xff
	}
	prg[0x0100] = 0x01
	cart := attach(t, mapper.Config{Mapper: 3}, prg, rom(0x8000, 0x2000))

	cart.Write(0x8000, 3)
	test.ExpectEquality(t, cart.ReadCHR(0x0000), 3)

	// the ROM drives 0x01 at this address
	cart.Write(0x8100, 3)
	test.ExpectEquality(t, cart.ReadCHR(0x0000), 1)

	// submapper 1 has no bus conflicts
	cart = attach(t, mapper.Config{Mapper: 3, Submapper: 1}, prg, rom(0x8000, 0x2000))
	cart.Write(0x8100, 3)
	test.ExpectEquality(t, cart.ReadCHR(0x0000), 3)
}

func TestMMC3(t *testing.T) {
	cart := attach(t, mapper.Config{Mapper: 4}, rom(0x20000, 0x2000), rom(0x20000, 0x0400))

	test.ExpectEquality(t, cart.Read(0x8000, 0), 0)
	test.ExpectEquality(t, cart.Read(0xa000, 0), 1)
	test.ExpectEquality(t, cart.Read(0xc000, 0), 14)
	test.ExpectEquality(t, cart.Read(0xe000, 0), 15)

	// R6
	cart.Write(0x8000, 0x06)
	cart.Write(0x8001, 0x03)
	test.ExpectEquality(t, cart.Read(0x8000, 0), 3)

	// PRG mode swaps 0x8000 and 0xc000
	cart.Write(0x8000, 0x46)
	test.ExpectEquality(t, cart.Read(0x8000, 0), 14)
	test.ExpectEquality(t, cart.Read(0xc000, 0), 3)

	// R0 is a 2K bank
	cart.Write(0x8000, 0x00)
	cart.Write(0x8001, 0x09)
	test.ExpectEquality(t, cart.ReadCHR(0x0000), 8)
	test.ExpectEquality(t, cart.ReadCHR(0x0400), 9)

	// R2 is a 1K bank
	cart.Write(0x8000, 0x02)
	cart.Write(0x8001, 0x21)
	test.ExpectEquality(t, cart.ReadCHR(0x1000), 0x21)

	// CHR inversion
	cart.Write(0x8000, 0x80)
	test.ExpectEquality(t, cart.ReadCHR(0x1000), 8)
	test.ExpectEquality(t, cart.ReadCHR(0x0000), 0x21)
}

func TestMMC3RAMProtect(t *testing.T) {
	cart := attach(t, mapper.Config{Mapper: 4}, rom(0x20000, 0x2000), nil)
	cart.Write(0x6000, 0x01)
	test.ExpectEquality(t, cart.Read(0x6000, 0), 0x01)

	// write protect
	cart.Write(0xa001, 0xc0)
	cart.Write(0x6000, 0x02)
	test.ExpectEquality(t, cart.Read(0x6000, 0), 0x01)

	// disable
	cart.Write(0xa001, 0x00)
	test.ExpectEquality(t, cart.Read(0x6000, 0xee), 0xee)
}

func TestMMC3IRQ(t *testing.T) {
	cart := attach(t, mapper.Config{Mapper: 4}, rom(0x20000, 0x2000), nil)

	cart.Write(0xc000, 2)
	cart.Write(0xc001, 0)
	cart.Write(0xe001, 0)

	// reload
	cart.ScanlineTick()
	test.ExpectFailure(t, cart.IRQ())
	cart.ScanlineTick()
	test.ExpectFailure(t, cart.IRQ())
	cart.ScanlineTick()
	test.ExpectSuccess(t, cart.IRQ())

	// acknowledge
	cart.Write(0xe000, 0)
	test.ExpectFailure(t, cart.IRQ())

	// counter reloads from the latch after reaching zero but the IRQ is
	// now disabled
	cart.ScanlineTick()
	cart.ScanlineTick()
	cart.ScanlineTick()
	test.ExpectFailure(t, cart.IRQ())
}

func TestMMC3ZeroLatch(t *testing.T) {
	cart := attach(t, mapper.Config{Mapper: 4}, rom(0x20000, 0x2000), nil)

	// with a latch value of zero the IRQ is raised on every scanline
	cart.Write(0xc000, 0)
	cart.Write(0xc001, 0)
	cart.Write(0xe001, 0)
	cart.ScanlineTick()
	test.ExpectSuccess(t, cart.IRQ())
	cart.Write(0xe000, 0)
	cart.Write(0xe001, 0)
	cart.ScanlineTick()
	test.ExpectSuccess(t, cart.IRQ())
}

func TestAxROM(t *testing.T) {
	cart := attach(t, mapper.Config{Mapper: 7}, rom(0x20000, 0x8000), nil)
	test.ExpectEquality(t, cart.Read(0x8000, 0), 0)

	cart.Write(0x8000, 0x12)
	test.ExpectEquality(t, cart.Read(0x8000, 0), 2)
	test.ExpectEquality(t, cart.Read(0xffff, 0), 2)

	// no PRG RAM
	test.ExpectEquality(t, cart.Read(0x6000, 0x77), 0x77)
	test.ExpectEquality(t, cart.NVRAM() == nil, true)
}

func TestGxROM(t *testing.T) {
	cart := attach(t, mapper.Config{Mapper: 66}, rom(0x20000, 0x8000), rom(0x8000, 0x2000))

	cart.Write(0x8000, 0x21)
	test.ExpectEquality(t, cart.Read(0x8000, 0), 2)
	test.ExpectEquality(t, cart.ReadCHR(0x0000), 1)
	test.ExpectEquality(t, cart.MappedBanks(), "PRG: 2 CHR: 1")
}

// the mirroring returned by the cartridge must change as soon as the mapper
// register is written
func TestDynamicMirroring(t *testing.T) {
	mmc1 := attach(t, mapper.Config{Mapper: 1}, rom(0x20000, 0x4000), nil)
	mmc1Write(mmc1, 0x8000, 0x0e)
	test.ExpectEquality(t, mmc1.Mirroring(), mapper.Vertical)
	test.ExpectEquality(t, mmc1.Mirroring().Nametable(0x2400), 0x0400)
	mmc1Write(mmc1, 0x8000, 0x0f)
	test.ExpectEquality(t, mmc1.Mirroring(), mapper.Horizontal)
	test.ExpectEquality(t, mmc1.Mirroring().Nametable(0x2400), 0x0000)
	mmc1Write(mmc1, 0x8000, 0x0c)
	test.ExpectEquality(t, mmc1.Mirroring(), mapper.SingleScreenA)
	mmc1Write(mmc1, 0x8000, 0x0d)
	test.ExpectEquality(t, mmc1.Mirroring(), mapper.SingleScreenB)

	axrom := attach(t, mapper.Config{Mapper: 7}, rom(0x20000, 0x8000), nil)
	test.ExpectEquality(t, axrom.Mirroring(), mapper.SingleScreenA)
	axrom.Write(0x8000, 0x10)
	test.ExpectEquality(t, axrom.Mirroring(), mapper.SingleScreenB)
	test.ExpectEquality(t, axrom.Mirroring().Nametable(0x2000), 0x0400)
	axrom.Write(0x8000, 0x00)
	test.ExpectEquality(t, axrom.Mirroring(), mapper.SingleScreenA)

	mmc3 := attach(t, mapper.Config{Mapper: 4, Mirroring: mapper.Horizontal}, rom(0x20000, 0x2000), nil)
	mmc3.Write(0xa000, 0x00)
	test.ExpectEquality(t, mmc3.Mirroring(), mapper.Vertical)
	mmc3.Write(0xa000, 0x01)
	test.ExpectEquality(t, mmc3.Mirroring(), mapper.Horizontal)

	// four screen mirroring can not be changed
	mmc3 = attach(t, mapper.Config{Mapper: 4, Mirroring: mapper.FourScreen}, rom(0x20000, 0x2000), nil)
	mmc3.Write(0xa000, 0x00)
	test.ExpectEquality(t, mmc3.Mirroring(), mapper.FourScreen)
}

func TestSnapshot(t *testing.T) {
	cart := attach(t, mapper.Config{Mapper: 2}, rom(0x20000, 0x4000), nil)
	cart.Write(0x8000, 3)
	cart.WriteCHR(0x0000, 0x11)
	cart.Write(0x6000, 0x22)

	snap := cart.Snapshot()

	cart.Write(0x8000, 5)
	cart.WriteCHR(0x0000, 0x33)
	cart.Write(0x6000, 0x44)

	test.ExpectEquality(t, snap.Read(0x8000, 0), 3)
	test.ExpectEquality(t, snap.ReadCHR(0x0000), 0x11)
	test.ExpectEquality(t, snap.Read(0x6000, 0), 0x22)
	test.ExpectEquality(t, cart.Read(0x8000, 0), 5)
	test.ExpectEquality(t, cart.ReadCHR(0x0000), 0x33)
}

func TestNVRAM(t *testing.T) {
	dir := t.TempDir()

	cart := attach(t, mapper.Config{Mapper: 1, Battery: true}, rom(0x20000, 0x4000), nil)
	cart.Filename = filepath.Join(dir, "game.nes")
	test.ExpectEquality(t, cart.NVRAMFilename(), filepath.Join(dir, "game.sav"))

	// nothing to load is not an error
	test.ExpectSuccess(t, cart.LoadNVRAM())

	cart.Write(0x6010, 0x99)
	test.DemandSuccess(t, cart.SaveNVRAM())

	data, err := os.ReadFile(cart.NVRAMFilename())
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(data), 0x2000)
	test.ExpectEquality(t, data[0x10], 0x99)

	other := attach(t, mapper.Config{Mapper: 1, Battery: true}, rom(0x20000, 0x4000), nil)
	other.Filename = cart.Filename
	test.DemandSuccess(t, other.LoadNVRAM())
	test.ExpectEquality(t, other.Read(0x6010, 0), 0x99)

	// no battery means no NVRAM
	volatile := attach(t, mapper.Config{Mapper: 1}, rom(0x20000, 0x4000), nil)
	test.ExpectEquality(t, len(volatile.NVRAM()), 0)
}

func TestNVRAMFilenameInArchive(t *testing.T) {
	cart := attach(t, mapper.Config{Mapper: 1, Battery: true}, rom(0x20000, 0x4000), nil)
	cart.Filename = filepath.Join("roms", "collection.zip", "rpg", "game.nes")
	test.ExpectEquality(t, cart.NVRAMFilename(), filepath.Join("roms", "collection_rpg_game.sav"))

	cart.Eject()
	test.ExpectEquality(t, cart.NVRAMFilename(), "")
}
