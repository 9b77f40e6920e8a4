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

package cartridge

import (
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge/mapper"
)

// mmc1 is mapper 1. the bank registers are loaded serially, one bit at a time,
// through a five bit shift register.
//
// SUROM and similar boards with 512K of PRG ROM use bit 4 of the CHR bank
// register to select the outer 256K of PRG.
type mmc1 struct {
	prg banked
	chr chrMemory
	ram prgRAM

	shift   uint8
	control uint8
	chr0    uint8
	chr1    uint8
	prgBank uint8

	// the MMC1 ignores a write that immediately follows another write. this
	// happens with read-modify-write instructions, which write to the same
	// address on consecutive cycles
	cycle     int
	lastWrite int
}

const (
	mmc1ShiftReset = 0x10
	mmc1Control    = 0x0c
)

func newMMC1(cfg mapper.Config, prg []uint8, chr []uint8) (mapper.Mapper, error) {
	m := &mmc1{
		prg: newBanked(prg, 0x4000),
		chr: newCHR(chr, cfg.CHRRAMSize+cfg.CHRNVRAMSize, 0x1000),
		ram: newPRGRAM(prgRAMSize(cfg, 0x2000), cfg.Battery),
	}
	m.Reset()
	return m, nil
}

// ID implements the mapper.Mapper interface.
func (m *mmc1) ID() string {
	return "MMC1"
}

// MappedBanks implements the mapper.Mapper interface.
func (m *mmc1) MappedBanks() string {
	return mappedBanks(
		[]int{m.prg.bank(m.prgSlot(0x8000)), m.prg.bank(m.prgSlot(0xc000))},
		[]int{m.chr.bank(m.chrSlot(0x0000)), m.chr.bank(m.chrSlot(0x1000))},
	)
}

// Snapshot implements the mapper.Mapper interface.
func (m *mmc1) Snapshot() mapper.Mapper {
	n := *m
	n.chr = m.chr.snapshot()
	n.ram = m.ram.snapshot()
	return &n
}

// Reset implements the mapper.Mapper interface.
func (m *mmc1) Reset() {
	m.shift = mmc1ShiftReset
	m.control = mmc1Control
	m.chr0 = 0
	m.chr1 = 0
	m.prgBank = 0
	m.lastWrite = m.cycle - 2
}

// outer 256K bank for large PRG ROMs
func (m *mmc1) outer() int {
	if len(m.prg.data) <= 0x40000 {
		return 0
	}
	return int(m.chr0 & 0x10)
}

// the PRG bank for the address
func (m *mmc1) prgSlot(address uint16) int {
	bank := int(m.prgBank & 0x0f)
	switch (m.control >> 2) & 0x03 {
	case 0, 1:
		// 32K mode
		bank &= 0x0e
		if address >= 0xc000 {
			bank |= 0x01
		}
	case 2:
		// first bank fixed at 0x8000
		if address < 0xc000 {
			bank = 0
		}
	case 3:
		// last bank fixed at 0xc000
		if address >= 0xc000 {
			bank = 0x0f
		}
	}
	return bank | m.outer()
}

// the CHR bank for the address
func (m *mmc1) chrSlot(address uint16) int {
	if m.control&0x10 == 0 {
		// 8K mode
		bank := int(m.chr0 & 0x1e)
		if address >= 0x1000 {
			bank |= 0x01
		}
		return bank
	}
	if address >= 0x1000 {
		return int(m.chr1)
	}
	return int(m.chr0)
}

func (m *mmc1) ramEnabled() bool {
	return m.prgBank&0x10 == 0
}

// ReadPRG implements the mapper.Mapper interface.
func (m *mmc1) ReadPRG(address uint16) (uint8, bool) {
	if address >= 0x8000 {
		return m.prg.read(m.prgSlot(address), address), true
	}
	if address >= originPRGRAM && m.ramEnabled() {
		return m.ram.read(address)
	}
	return 0, false
}

// WritePRG implements the mapper.Mapper interface.
func (m *mmc1) WritePRG(address uint16, data uint8) {
	if address < 0x8000 {
		if address >= originPRGRAM && m.ramEnabled() {
			m.ram.write(address, data)
		}
		return
	}

	consecutive := m.cycle == m.lastWrite+1
	m.lastWrite = m.cycle
	if consecutive {
		return
	}

	if data&0x80 == 0x80 {
		m.shift = mmc1ShiftReset
		m.control |= mmc1Control
		return
	}

	// the shift register is full when the marker bit reaches bit 0
	full := m.shift&0x01 == 0x01
	m.shift = (m.shift >> 1) | ((data & 0x01) << 4)
	if !full {
		return
	}

	v := m.shift
	m.shift = mmc1ShiftReset

	switch (address >> 13) & 0x03 {
	case 0:
		m.control = v
	case 1:
		m.chr0 = v
	case 2:
		m.chr1 = v
	case 3:
		m.prgBank = v
	}
}

// PokePRG implements the mapper.Mapper interface.
func (m *mmc1) PokePRG(address uint16, data uint8) {
	if address >= 0x8000 {
		m.prg.write(m.prgSlot(address), address, data)
		return
	}
	if address >= originPRGRAM {
		m.ram.write(address, data)
	}
}

// ReadCHR implements the mapper.Mapper interface.
func (m *mmc1) ReadCHR(address uint16) uint8 {
	return m.chr.read(m.chrSlot(address), address)
}

// WriteCHR implements the mapper.Mapper interface.
func (m *mmc1) WriteCHR(address uint16, data uint8) {
	m.chr.write(m.chrSlot(address), address, data)
}

// Mirroring implements the mapper.Mapper interface.
func (m *mmc1) Mirroring() mapper.Mirroring {
	switch m.control & 0x03 {
	case 0:
		return mapper.SingleScreenA
	case 1:
		return mapper.SingleScreenB
	case 2:
		return mapper.Vertical
	}
	return mapper.Horizontal
}

// Step implements the mapper.Mapper interface.
func (m *mmc1) Step() {
	m.cycle++
}

// NumBanks implements the mapper.Mapper interface.
func (m *mmc1) NumBanks() int {
	return m.prg.count()
}

// GetBank implements the mapper.Mapper interface.
func (m *mmc1) GetBank(address uint16) mapper.BankInfo {
	if address >= originPRGRAM && address < 0x8000 && !m.ramEnabled() {
		return mapper.BankInfo{Unmapped: true}
	}
	return fixedBank(address, m.prg.bank(m.prgSlot(address)), m.ram)
}

// NVRAM implements the mapper.NVRAM interface.
func (m *mmc1) NVRAM() []uint8 {
	return m.ram.nvram()
}
