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

// cnrom is mapper 3. PRG is fixed as with NROM and the 8K of CHR is switched
// by writing to any address in 0x8000 to 0xffff.
type cnrom struct {
	prg       banked
	chr       chrMemory
	ram       prgRAM
	mirroring mapper.Mirroring
	conflicts bool

	bank int
}

func newCNROM(cfg mapper.Config, prg []uint8, chr []uint8) (mapper.Mapper, error) {
	if len(prg) > 0x8000 {
		return nil, curated.Errorf(InvalidBankSize, "CNROM PRG ROM larger than 32K")
	}

	// submapper 1 indicates that there are no bus conflicts
	return &cnrom{
		prg:       newBanked(prg, 0x8000),
		chr:       newCHR(chr, cfg.CHRRAMSize+cfg.CHRNVRAMSize, 0x2000),
		ram:       newPRGRAM(prgRAMSize(cfg, 0x2000), cfg.Battery),
		mirroring: cfg.Mirroring,
		conflicts: cfg.Submapper != 1,
	}, nil
}

// ID implements the mapper.Mapper interface.
func (m *cnrom) ID() string {
	return "CNROM"
}

// MappedBanks implements the mapper.Mapper interface.
func (m *cnrom) MappedBanks() string {
	return mappedBanks([]int{0}, []int{m.chr.bank(m.bank)})
}

// Snapshot implements the mapper.Mapper interface.
func (m *cnrom) Snapshot() mapper.Mapper {
	n := *m
	n.chr = m.chr.snapshot()
	n.ram = m.ram.snapshot()
	return &n
}

// Reset implements the mapper.Mapper interface.
func (m *cnrom) Reset() {
	m.bank = 0
}

// ReadPRG implements the mapper.Mapper interface.
func (m *cnrom) ReadPRG(address uint16) (uint8, bool) {
	if address >= 0x8000 {
		return m.prg.read(0, address), true
	}
	if address >= originPRGRAM {
		return m.ram.read(address)
	}
	return 0, false
}

// WritePRG implements the mapper.Mapper interface.
func (m *cnrom) WritePRG(address uint16, data uint8) {
	if address >= 0x8000 {
		data = busConflict(m.conflicts, data, m.prg.read(0, address))
		m.bank = int(data)
		return
	}
	if address >= originPRGRAM {
		m.ram.write(address, data)
	}
}

// PokePRG implements the mapper.Mapper interface.
func (m *cnrom) PokePRG(address uint16, data uint8) {
	if address >= 0x8000 {
		m.prg.write(0, address, data)
		return
	}
	m.WritePRG(address, data)
}

// ReadCHR implements the mapper.Mapper interface.
func (m *cnrom) ReadCHR(address uint16) uint8 {
	return m.chr.read(m.bank, address)
}

// WriteCHR implements the mapper.Mapper interface.
func (m *cnrom) WriteCHR(address uint16, data uint8) {
	m.chr.write(m.bank, address, data)
}

// Mirroring implements the mapper.Mapper interface.
func (m *cnrom) Mirroring() mapper.Mirroring {
	return m.mirroring
}

// Step implements the mapper.Mapper interface.
func (m *cnrom) Step() {
}

// NumBanks implements the mapper.Mapper interface.
func (m *cnrom) NumBanks() int {
	return 1
}

// GetBank implements the mapper.Mapper interface.
func (m *cnrom) GetBank(address uint16) mapper.BankInfo {
	return fixedBank(address, 0, m.ram)
}

// NVRAM implements the mapper.NVRAM interface.
func (m *cnrom) NVRAM() []uint8 {
	return m.ram.nvram()
}
