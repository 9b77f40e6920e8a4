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
	"strings"

	"github.com/jetsetilly/gophernes/hardware/memory/cartridge/mapper"
)

// banked is a block of memory divided into banks of equal size. bank numbers
// wrap around the number of banks in the same way as they would on real
// hardware, where the unconnected high bits of the bank register are ignored.
type banked struct {
	data []uint8
	size int
}

func newBanked(data []uint8, size int) banked {
	return banked{data: data, size: size}
}

// the number of banks. a block of memory that is smaller than the bank size
// counts as one bank
func (b banked) count() int {
	return max(1, len(b.data)/b.size)
}

// normalise bank number. negative numbers count from the last bank
func (b banked) bank(bank int) int {
	n := b.count()
	bank %= n
	if bank < 0 {
		bank += n
	}
	return bank
}

func (b banked) offset(bank int, address uint16) int {
	return (b.bank(bank)*b.size + int(address)%b.size) % len(b.data)
}

func (b banked) read(bank int, address uint16) uint8 {
	return b.data[b.offset(bank, address)]
}

func (b banked) write(bank int, address uint16, data uint8) {
	b.data[b.offset(bank, address)] = data
}

// chrMemory is either CHR ROM or CHR RAM
type chrMemory struct {
	banked
	ram bool
}

func newCHR(chr []uint8, ramSize int, bankSize int) chrMemory {
	if len(chr) == 0 {
		if ramSize == 0 {
			ramSize = 0x2000
		}
		return chrMemory{banked: newBanked(make([]uint8, ramSize), bankSize), ram: true}
	}
	return chrMemory{banked: newBanked(chr, bankSize)}
}

func (c chrMemory) write(bank int, address uint16, data uint8) {
	if c.ram {
		c.banked.write(bank, address, data)
	}
}

// snapshot copies the CHR memory if it is RAM. ROM is shared
func (c chrMemory) snapshot() chrMemory {
	if c.ram {
		n := c
		n.data = make([]uint8, len(c.data))
		copy(n.data, c.data)
		return n
	}
	return c
}

// prgRAM is the RAM found at 0x6000 to 0x7fff on many cartridges. the RAM
// may be battery backed
type prgRAM struct {
	data    []uint8
	battery bool
}

const originPRGRAM = uint16(0x6000)

func newPRGRAM(size int, battery bool) prgRAM {
	return prgRAM{data: make([]uint8, size), battery: battery}
}

func (r prgRAM) present() bool {
	return len(r.data) > 0
}

func (r prgRAM) read(address uint16) (uint8, bool) {
	if !r.present() {
		return 0, false
	}
	return r.data[int(address-originPRGRAM)%len(r.data)], true
}

func (r prgRAM) write(address uint16, data uint8) {
	if r.present() {
		r.data[int(address-originPRGRAM)%len(r.data)] = data
	}
}

func (r prgRAM) snapshot() prgRAM {
	n := r
	n.data = make([]uint8, len(r.data))
	copy(n.data, r.data)
	return n
}

func (r prgRAM) nvram() []uint8 {
	if r.battery {
		return r.data
	}
	return nil
}

// the size of PRG RAM for a configuration. older cartridge files do not
// specify the size of PRG RAM and so the mapper's default size is used
func prgRAMSize(cfg mapper.Config, def int) int {
	sz := cfg.PRGRAMSize + cfg.PRGNVRAMSize
	if sz == 0 && !cfg.NES2 {
		return def
	}
	return sz
}

// mappedBanks is a helper for the MappedBanks() function of the mappers
func mappedBanks(prg []int, chr []int) string {
	s := strings.Builder{}
	s.WriteString("PRG:")
	for _, b := range prg {
		fmt.Fprintf(&s, " %d", b)
	}
	if len(chr) > 0 {
		s.WriteString(" CHR:")
		for _, b := range chr {
			fmt.Fprintf(&s, " %d", b)
		}
	}
	return s.String()
}

// fixedBank is a helper for the GetBank() function of mappers that only need
// to distinguish between the ROM area and the PRG RAM area
func fixedBank(address uint16, bank int, ram prgRAM) mapper.BankInfo {
	if address >= 0x8000 {
		return mapper.BankInfo{Number: bank}
	}
	if address >= originPRGRAM && ram.present() {
		return mapper.BankInfo{IsRAM: true}
	}
	return mapper.BankInfo{Unmapped: true}
}

// on cartridges with bus conflicts the value written to a register is
// combined with the value driven by the ROM at the same address
func busConflict(conflicts bool, data uint8, rom uint8) uint8 {
	if conflicts {
		return data & rom
	}
	return data
}
