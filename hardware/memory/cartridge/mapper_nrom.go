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
	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge/mapper"
)

// nrom is mapper 0. there is no bank switching. 16K cartridges are mirrored
// so that the same data is seen at 0x8000 and 0xc000.
type nrom struct {
	prg       banked
	chr       chrMemory
	ram       prgRAM
	mirroring mapper.Mirroring
}

func newNROM(cfg mapper.Config, prg []uint8, chr []uint8) (mapper.Mapper, error) {
	if len(prg) > 0x8000 {
		return nil, curated.Errorf(InvalidBankSize, "NROM PRG ROM larger than 32K")
	}
	if len(chr) > 0x2000 {
		return nil, curated.Errorf(InvalidBankSize, "NROM CHR ROM larger than 8K")
	}

	return &nrom{
		prg:       newBanked(prg, 0x8000),
		chr:       newCHR(chr, cfg.CHRRAMSize+cfg.CHRNVRAMSize, 0x2000),
		ram:       newPRGRAM(prgRAMSize(cfg, 0x2000), cfg.Battery),
		mirroring: cfg.Mirroring,
	}, nil
}

// ID implements the mapper.Mapper interface.
func (m *nrom) ID() string {
	return "NROM"
}

// MappedBanks implements the mapper.Mapper interface.
func (m *nrom) MappedBanks() string {
	return mappedBanks([]int{0}, []int{0})
}

// Snapshot implements the mapper.Mapper interface.
func (m *nrom) Snapshot() mapper.Mapper {
	n := *m
	n.chr = m.chr.snapshot()
	n.ram = m.ram.snapshot()
	return &n
}

// Reset implements the mapper.Mapper interface.
func (m *nrom) Reset() {
}

// ReadPRG implements the mapper.Mapper interface.
func (m *nrom) ReadPRG(address uint16) (uint8, bool) {
	if address >= 0x8000 {
		return m.prg.read(0, address), true
	}
	if address >= originPRGRAM {
		return m.ram.read(address)
	}
	return 0, false
}

// WritePRG implements the mapper.Mapper interface.
func (m *nrom) WritePRG(address uint16, data uint8) {
	if address >= originPRGRAM && address < 0x8000 {
		m.ram.write(address, data)
	}
}

// PokePRG implements the mapper.Mapper interface.
func (m *nrom) PokePRG(address uint16, data uint8) {
	if address >= 0x8000 {
		m.prg.write(0, address, data)
		return
	}
	m.WritePRG(address, data)
}

// ReadCHR implements the mapper.Mapper interface.
func (m *nrom) ReadCHR(address uint16) uint8 {
	return m.chr.read(0, address)
}

// WriteCHR implements the mapper.Mapper interface.
func (m *nrom) WriteCHR(address uint16, data uint8) {
	m.chr.write(0, address, data)
}

// Mirroring implements the mapper.Mapper interface.
func (m *nrom) Mirroring() mapper.Mirroring {
	return m.mirroring
}

// Step implements the mapper.Mapper interface.
func (m *nrom) Step() {
}

// NumBanks implements the mapper.Mapper interface.
func (m *nrom) NumBanks() int {
	return 1
}

// GetBank implements the mapper.Mapper interface.
func (m *nrom) GetBank(address uint16) mapper.BankInfo {
	return fixedBank(address, 0, m.ram)
}

// NVRAM implements the mapper.NVRAM interface.
func (m *nrom) NVRAM() []uint8 {
	return m.ram.nvram()
}
