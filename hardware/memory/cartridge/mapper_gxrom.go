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

// gxrom is mapper 66. bits 4 and 5 of the bank register select a 32K PRG bank
// and bits 0 and 1 select an 8K CHR bank.
type gxrom struct {
	prg       banked
	chr       chrMemory
	mirroring mapper.Mirroring

	prgBank int
	chrBank int
}

func newGxROM(cfg mapper.Config, prg []uint8, chr []uint8) (mapper.Mapper, error) {
	return &gxrom{
		prg:       newBanked(prg, 0x8000),
		chr:       newCHR(chr, cfg.CHRRAMSize+cfg.CHRNVRAMSize, 0x2000),
		mirroring: cfg.Mirroring,
	}, nil
}

// ID implements the mapper.Mapper interface.
func (m *gxrom) ID() string {
	return "GxROM"
}

// MappedBanks implements the mapper.Mapper interface.
func (m *gxrom) MappedBanks() string {
	return mappedBanks([]int{m.prg.bank(m.prgBank)}, []int{m.chr.bank(m.chrBank)})
}

// Snapshot implements the mapper.Mapper interface.
func (m *gxrom) Snapshot() mapper.Mapper {
	n := *m
	n.chr = m.chr.snapshot()
	return &n
}

// Reset implements the mapper.Mapper interface.
func (m *gxrom) Reset() {
	m.prgBank = 0
	m.chrBank = 0
}

// ReadPRG implements the mapper.Mapper interface.
func (m *gxrom) ReadPRG(address uint16) (uint8, bool) {
	if address >= 0x8000 {
		return m.prg.read(m.prgBank, address), true
	}
	return 0, false
}

// WritePRG implements the mapper.Mapper interface.
func (m *gxrom) WritePRG(address uint16, data uint8) {
	if address >= 0x8000 {
		m.prgBank = int(data>>4) & 0x03
		m.chrBank = int(data & 0x03)
	}
}

// PokePRG implements the mapper.Mapper interface.
func (m *gxrom) PokePRG(address uint16, data uint8) {
	if address >= 0x8000 {
		m.prg.write(m.prgBank, address, data)
	}
}

// ReadCHR implements the mapper.Mapper interface.
func (m *gxrom) ReadCHR(address uint16) uint8 {
	return m.chr.read(m.chrBank, address)
}

// WriteCHR implements the mapper.Mapper interface.
func (m *gxrom) WriteCHR(address uint16, data uint8) {
	m.chr.write(m.chrBank, address, data)
}

// Mirroring implements the mapper.Mapper interface.
func (m *gxrom) Mirroring() mapper.Mirroring {
	return m.mirroring
}

// Step implements the mapper.Mapper interface.
func (m *gxrom) Step() {
}

// NumBanks implements the mapper.Mapper interface.
func (m *gxrom) NumBanks() int {
	return m.prg.count()
}

// GetBank implements the mapper.Mapper interface.
func (m *gxrom) GetBank(address uint16) mapper.BankInfo {
	if address < 0x8000 {
		return mapper.BankInfo{Unmapped: true}
	}
	return mapper.BankInfo{Number: m.prg.bank(m.prgBank)}
}
