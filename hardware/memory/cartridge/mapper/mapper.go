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

package mapper

import (
	"fmt"
)

// Mapper implementations hold the actual data from the loaded ROM and keep
// track of which banks are mapped to individual addresses.
//
// Functions with a PRG address argument receive the full CPU address. That is,
// an address in the range 0x4020 to 0xffff. Functions with a CHR address
// argument receive the PPU address in the range 0x0000 to 0x1fff.
type Mapper interface {
	ID() string
	MappedBanks() string

	Snapshot() Mapper

	// reset volatile areas of the cartridge. this includes the bank
	// registers but not battery backed RAM
	Reset()

	// read the cartridge at the specified CPU address. if the cartridge does
	// not drive the data bus for the address then the driven return value is
	// false. reading the cartridge never has a side effect for the supported
	// mappers and so ReadPRG() can also be used to peek the cartridge
	ReadPRG(address uint16) (data uint8, driven bool)

	// write the cartridge at the specified CPU address. this is how bank
	// registers are set
	WritePRG(address uint16, data uint8)

	// PokePRG changes the byte in the bank mapped to the address. unlike
	// WritePRG() there is no change to the bank registers
	PokePRG(address uint16, data uint8)

	// the PPU side of the cartridge
	ReadCHR(address uint16) uint8
	WriteCHR(address uint16, data uint8)

	// the current mirroring of the nametables. the value must be queried by
	// the PPU every time it accesses the nametables because some mappers can
	// change the mirroring at any time
	Mirroring() Mirroring

	// some mappers need to know about the passing of CPU cycles. Step() is
	// called once every CPU cycle
	Step()

	NumBanks() int
	GetBank(address uint16) BankInfo
}

// ScanlineIRQ is implemented by mappers that have a scanline counter and can
// raise an IRQ.
type ScanlineIRQ interface {
	// ScanlineTick is called once per scanline while the PPU is rendering, at
	// the point where the real hardware would see the PPU fetch sprite
	// patterns from the upper pattern table
	ScanlineTick()

	// the current state of the IRQ output
	IRQ() bool
}

// NVRAM is implemented by mappers with battery backed RAM.
type NVRAM interface {
	// returns the battery backed memory. the slice can be altered and the
	// changes will be seen by the mapper
	NVRAM() []uint8
}

// BankInfo is used to identify a cartridge bank.
type BankInfo struct {
	Number int

	// is cartridge bank writable
	IsRAM bool

	// the address is not in any bank
	Unmapped bool
}

func (b BankInfo) String() string {
	if b.Unmapped {
		return "-"
	}
	if b.IsRAM {
		return fmt.Sprintf("%dR", b.Number)
	}
	return fmt.Sprintf("%d", b.Number)
}
