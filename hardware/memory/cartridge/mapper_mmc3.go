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

// mmc3 is mapper 4. PRG is switched in 8K banks and CHR in 1K and 2K banks. the
// scanline counter is clocked by the PPU and raises an IRQ when it reaches
// zero.
type mmc3 struct {
	prg banked
	chr chrMemory
	ram prgRAM

	// mirroring can not be changed by the program if the cartridge has four
	// screen nametable memory
	fourScreen bool
	mirroring  mapper.Mirroring

	bankSelect uint8
	registers  [8]uint8

	ramEnabled bool
	ramProtect bool

	irqLatch   uint8
	irqCounter uint8
	irqReload  bool
	irqEnabled bool
	irq        bool
}

func newMMC3(cfg mapper.Config, prg []uint8, chr []uint8) (mapper.Mapper, error) {
	m := &mmc3{
		prg:        newBanked(prg, 0x2000),
		chr:        newCHR(chr, cfg.CHRRAMSize+cfg.CHRNVRAMSize, 0x0400),
		ram:        newPRGRAM(prgRAMSize(cfg, 0x2000), cfg.Battery),
		fourScreen: cfg.Mirroring == mapper.FourScreen,
		mirroring:  cfg.Mirroring,
	}
	m.Reset()
	return m, nil
}

// ID implements the mapper.Mapper interface.
func (m *mmc3) ID() string {
	return "MMC3"
}

// MappedBanks implements the mapper.Mapper interface.
func (m *mmc3) MappedBanks() string {
	prg := make([]int, 0, 4)
	for a := uint16(0x8000); a >= 0x8000; a += 0x2000 {
		prg = append(prg, m.prg.bank(m.prgSlot(a)))
	}
	chr := make([]int, 0, 8)
	for a := uint16(0x0000); a < 0x2000; a += 0x0400 {
		chr = append(chr, m.chr.bank(m.chrSlot(a)))
	}
	return mappedBanks(prg, chr)
}

// Snapshot implements the mapper.Mapper interface.
func (m *mmc3) Snapshot() mapper.Mapper {
	n := *m
	n.chr = m.chr.snapshot()
	n.ram = m.ram.snapshot()
	return &n
}

// Reset implements the mapper.Mapper interface.
func (m *mmc3) Reset() {
	m.bankSelect = 0
	m.registers = [8]uint8{0, 2, 4, 5, 6, 7, 0, 1}
	m.ramEnabled = true
	m.ramProtect = false
	m.irqLatch = 0
	m.irqCounter = 0
	m.irqReload = false
	m.irqEnabled = false
	m.irq = false
}

// the PRG bank for the address
func (m *mmc3) prgSlot(address uint16) int {
	swap := m.bankSelect&0x40 == 0x40
	switch (address >> 13) & 0x03 {
	case 0:
		if swap {
			return -2
		}
		return int(m.registers[6] & 0x3f)
	case 1:
		return int(m.registers[7] & 0x3f)
	case 2:
		if swap {
			return int(m.registers[6] & 0x3f)
		}
		return -2
	}
	return -1
}

// the CHR bank for the address
func (m *mmc3) chrSlot(address uint16) int {
	slot := (address >> 10) & 0x07
	if m.bankSelect&0x80 == 0x80 {
		slot ^= 0x04
	}
	switch slot {
	case 0:
		return int(m.registers[0] & 0xfe)
	case 1:
		return int(m.registers[0] | 0x01)
	case 2:
		return int(m.registers[1] & 0xfe)
	case 3:
		return int(m.registers[1] | 0x01)
	}
	return int(m.registers[slot-2])
}

// ReadPRG implements the mapper.Mapper interface.
func (m *mmc3) ReadPRG(address uint16) (uint8, bool) {
	if address >= 0x8000 {
		return m.prg.read(m.prgSlot(address), address), true
	}
	if address >= originPRGRAM && m.ramEnabled {
		return m.ram.read(address)
	}
	return 0, false
}

// WritePRG implements the mapper.Mapper interface.
func (m *mmc3) WritePRG(address uint16, data uint8) {
	if address < 0x8000 {
		if address >= originPRGRAM && m.ramEnabled && !m.ramProtect {
			m.ram.write(address, data)
		}
		return
	}

	even := address&0x01 == 0x00

	switch address & 0xe000 {
	case 0x8000:
		if even {
			m.bankSelect = data
		} else {
			m.registers[m.bankSelect&0x07] = data
		}
	case 0xa000:
		if even {
			if !m.fourScreen {
				if data&0x01 == 0x01 {
					m.mirroring = mapper.Horizontal
				} else {
					m.mirroring = mapper.Vertical
				}
			}
		} else {
			m.ramEnabled = data&0x80 == 0x80
			m.ramProtect = data&0x40 == 0x40
		}
	case 0xc000:
		if even {
			m.irqLatch = data
		} else {
			m.irqCounter = 0
			m.irqReload = true
		}
	case 0xe000:
		if even {
			m.irqEnabled = false
			m.irq = false
		} else {
			m.irqEnabled = true
		}
	}
}

// PokePRG implements the mapper.Mapper interface.
func (m *mmc3) PokePRG(address uint16, data uint8) {
	if address >= 0x8000 {
		m.prg.write(m.prgSlot(address), address, data)
		return
	}
	if address >= originPRGRAM {
		m.ram.write(address, data)
	}
}

// ReadCHR implements the mapper.Mapper interface.
func (m *mmc3) ReadCHR(address uint16) uint8 {
	return m.chr.read(m.chrSlot(address), address)
}

// WriteCHR implements the mapper.Mapper interface.
func (m *mmc3) WriteCHR(address uint16, data uint8) {
	m.chr.write(m.chrSlot(address), address, data)
}

// Mirroring implements the mapper.Mapper interface.
func (m *mmc3) Mirroring() mapper.Mirroring {
	return m.mirroring
}

// Step implements the mapper.Mapper interface.
func (m *mmc3) Step() {
}

// ScanlineTick implements the mapper.ScanlineIRQ interface.
func (m *mmc3) ScanlineTick() {
	if m.irqCounter == 0 || m.irqReload {
		m.irqCounter = m.irqLatch
		m.irqReload = false
	} else {
		m.irqCounter--
	}
	if m.irqCounter == 0 && m.irqEnabled {
		m.irq = true
	}
}

// IRQ implements the mapper.ScanlineIRQ interface.
func (m *mmc3) IRQ() bool {
	return m.irq
}

// NumBanks implements the mapper.Mapper interface.
func (m *mmc3) NumBanks() int {
	return m.prg.count()
}

// GetBank implements the mapper.Mapper interface.
func (m *mmc3) GetBank(address uint16) mapper.BankInfo {
	if address >= originPRGRAM && address < 0x8000 && !m.ramEnabled {
		return mapper.BankInfo{Unmapped: true}
	}
	return fixedBank(address, m.prg.bank(m.prgSlot(address)), m.ram)
}

// NVRAM implements the mapper.NVRAM interface.
func (m *mmc3) NVRAM() []uint8 {
	return m.ram.nvram()
}
