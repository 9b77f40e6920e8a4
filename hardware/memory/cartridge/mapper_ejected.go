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

// ejected implements the mapper.Mapper interface. it is used when there is no
// cartridge attached and drives nothing on either the CPU or the PPU bus.
type ejected struct {
}

func newEjected() *ejected {
	return &ejected{}
}

// ID implements the mapper.Mapper interface.
func (m *ejected) ID() string {
	return "-"
}

// MappedBanks implements the mapper.Mapper interface.
func (m *ejected) MappedBanks() string {
	return "ejected"
}

// Snapshot implements the mapper.Mapper interface.
func (m *ejected) Snapshot() mapper.Mapper {
	return &ejected{}
}

// Reset implements the mapper.Mapper interface.
func (m *ejected) Reset() {
}

// ReadPRG implements the mapper.Mapper interface.
func (m *ejected) ReadPRG(_ uint16) (uint8, bool) {
	return 0, false
}

// WritePRG implements the mapper.Mapper interface.
func (m *ejected) WritePRG(_ uint16, _ uint8) {
}

// PokePRG implements the mapper.Mapper interface.
func (m *ejected) PokePRG(_ uint16, _ uint8) {
}

// ReadCHR implements the mapper.Mapper interface.
func (m *ejected) ReadCHR(_ uint16) uint8 {
	return 0
}

// WriteCHR implements the mapper.Mapper interface.
func (m *ejected) WriteCHR(_ uint16, _ uint8) {
}

// Mirroring implements the mapper.Mapper interface.
func (m *ejected) Mirroring() mapper.Mirroring {
	return mapper.Horizontal
}

// Step implements the mapper.Mapper interface.
func (m *ejected) Step() {
}

// NumBanks implements the mapper.Mapper interface.
func (m *ejected) NumBanks() int {
	return 0
}

// GetBank implements the mapper.Mapper interface.
func (m *ejected) GetBank(_ uint16) mapper.BankInfo {
	return mapper.BankInfo{Unmapped: true}
}
