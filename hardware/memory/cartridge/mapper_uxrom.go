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
	"fmt"

	"github.com/jetsetilly/gophernes/hardware/memory/cartridge/mapper"
)

// uxrom is mapper 2. a switchable 16K bank at 0x8000 and the last 16K bank
// fixed at 0xc000. CHR is normally 8K of RAM.
type uxrom struct {
	prg       banked
	chr       chrMemory
	ram       prgRAM
	mirroring mapper.Mirroring
	conflicts bool

	bank int
}

func newUxROM(cfg mapper.Config, prg []uint8, chr []uint8) (mapper.Mapper, error) {
	m := &uxrom{
		prg:       newBanked(prg, 0x4000),
		chr:       newCHR(chr, cfg.CHRRAMSize+cfg.CHRNVRAMSize, 0x2000),
		ram:       newPRGRAM(prgRAMSize(cfg, 0x2000), cfg.Battery),
		mirroring: cfg.Mirroring,
		conflicts: cfg.Submapper == 2,
	}
	return m, nil
}

// ID implements the mapper.Mapper interface.
func (m *uxrom) ID() string {
	return "UxROM"
}

// MappedBanks implements the mapper.Mapper interface.
func (m *uxrom) MappedBanks() string {
	return mappedBanks([]int{m.prg.bank(m.bank), m.prg.bank(-1)}, nil)
}

// Snapshot implements the mapper.Mapper interface.
func (m *uxrom) Snapshot() mapper.Mapper {
	n := *m
	n.chr = m.chr.snapshot()
	n.ram = m.ram.snapshot()
	return &n
}

// Reset implements the mapper.Mapper interface.
func (m *uxrom) Reset() {
	m.bank = 0
}

func (m *uxrom) prgBank(address uint16) int {
	if address >= 0xc000 {
		return -1
	}
	return m.bank
}

// ReadPRG implements the mapper.Mapper interface.
func (m *uxrom) ReadPRG(address uint16) (uint8, bool) {
	if address >= 0x8000 {
		return m.prg.read(m.prgBank(address), address), true
	}
	if address >= originPRGRAM {
		return m.ram.read(address)
	}
	return 0, false
}

// WritePRG implements the mapper.Mapper interface.
func (m *uxrom) WritePRG(address uint16, data uint8) {
	if address >= 0x8000 {
		data = busConflict(m.conflicts, data, m.prg.read(m.prgBank(address), address))
		m.bank = int(data)
		return
	}
	if address >= originPRGRAM {
		m.ram.write(address, data)
	}
}

// PokePRG implements the mapper.Mapper interface.
func (m *uxrom) PokePRG(address uint16, data uint8) {
	if address >= 0x8000 {
		m.prg.write(m.prgBank(address), address, data)
		return
	}
	m.WritePRG(address, data)
}

// ReadCHR implements the mapper.Mapper interface.
func (m *uxrom) ReadCHR(address uint16) uint8 {
	return m.chr.read(0, address)
}

// WriteCHR implements the mapper.Mapper interface.
func (m *uxrom) WriteCHR(address uint16, data uint8) {
	m.chr.write(0, address, data)
}

// Mirroring implements the mapper.Mapper interface.
func (m *uxrom) Mirroring() mapper.Mirroring {
	return m.mirroring
}

// Step implements the mapper.Mapper interface.
func (m *uxrom) Step() {
}

// NumBanks implements the mapper.Mapper interface.
func (m *uxrom) NumBanks() int {
	return m.prg.count()
}

// GetBank implements the mapper.Mapper interface.
func (m *uxrom) GetBank(address uint16) mapper.BankInfo {
	return fixedBank(address, m.prg.bank(m.prgBank(address)), m.ram)
}

// NVRAM implements the mapper.NVRAM interface.
func (m *uxrom) NVRAM() []uint8 {
	return m.ram.nvram()
}

func (m *uxrom) String() string {
	return fmt.Sprintf("%s [%s]", m.ID(), m.MappedBanks())
}
