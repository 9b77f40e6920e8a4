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

// axrom is mapper 7. 32K PRG banks are selected by the low three bits of the
// bank register and bit 4 selects which of the two nametables is used by the
// single screen mirroring.
type axrom struct {
	prg       banked
	chr       chrMemory
	conflicts bool

	bank   int
	screen mapper.Mirroring
}

func newAxROM(cfg mapper.Config, prg []uint8, chr []uint8) (mapper.Mapper, error) {
	return &axrom{
		prg:       newBanked(prg, 0x8000),
		chr:       newCHR(chr, cfg.CHRRAMSize+cfg.CHRNVRAMSize, 0x2000),
		conflicts: cfg.Submapper == 2,
		screen:    mapper.SingleScreenA,
	}, nil
}

// ID implements the mapper.Mapper interface.
func (m *axrom) ID() string {
	return "AxROM"
}

// MappedBanks implements the mapper.Mapper interface.
func (m *axrom) MappedBanks() string {
	return mappedBanks([]int{m.prg.bank(m.bank)}, nil)
}

// Snapshot implements the mapper.Mapper interface.
func (m *axrom) Snapshot() mapper.Mapper {
	n := *m
	n.chr = m.chr.snapshot()
	return &n
}

// Reset implements the mapper.Mapper interface.
func (m *axrom) Reset() {
	m.bank = 0
	m.screen = mapper.SingleScreenA
}

// ReadPRG implements the mapper.Mapper interface.
func (m *axrom) ReadPRG(address uint16) (uint8, bool) {
	if address >= 0x8000 {
		return m.prg.read(m.bank, address), true
	}
	return 0, false
}

// WritePRG implements the mapper.Mapper interface.
func (m *axrom) WritePRG(address uint16, data uint8) {
	if address < 0x8000 {
		return
	}

	data = busConflict(m.conflicts, data, m.prg.read(m.bank, address))
	m.bank = int(data & 0x07)
	if data&0x10 == 0x10 {
		m.screen = mapper.SingleScreenB
	} else {
		m.screen = mapper.SingleScreenA
	}
}

// PokePRG implements the mapper.Mapper interface.
func (m *axrom) PokePRG(address uint16, data uint8) {
	if address >= 0x8000 {
		m.prg.write(m.bank, address, data)
	}
}

// ReadCHR implements the mapper.Mapper interface.
func (m *axrom) ReadCHR(address uint16) uint8 {
	return m.chr.read(0, address)
}

// WriteCHR implements the mapper.Mapper interface.
func (m *axrom) WriteCHR(address uint16, data uint8) {
	m.chr.write(0, address, data)
}

// Mirroring implements the mapper.Mapper interface.
func (m *axrom) Mirroring() mapper.Mirroring {
	return m.screen
}

// Step implements the mapper.Mapper interface.
func (m *axrom) Step() {
}

// NumBanks implements the mapper.Mapper interface.
func (m *axrom) NumBanks() int {
	return m.prg.count()
}

// GetBank implements the mapper.Mapper interface.
func (m *axrom) GetBank(address uint16) mapper.BankInfo {
	if address < 0x8000 {
		return mapper.BankInfo{Unmapped: true}
	}
	return mapper.BankInfo{Number: m.prg.bank(m.bank)}
}
