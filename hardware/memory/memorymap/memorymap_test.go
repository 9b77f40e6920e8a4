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

package memorymap_test

import (
	"testing"

	"github.com/jetsetilly/gophernes/hardware/memory/memorymap"
	"github.com/jetsetilly/gophernes/test"
)

func TestMapAddress(t *testing.T) {
	var ma uint16
	var area memorymap.Area

	// RAM mirrors
	ma, area = memorymap.MapAddress(0x0000)
	test.ExpectEquality(t, ma, 0x0000)
	test.ExpectEquality(t, area, memorymap.RAM)
	ma, area = memorymap.MapAddress(0x0801)
	test.ExpectEquality(t, ma, 0x0001)
	test.ExpectEquality(t, area, memorymap.RAM)
	ma, area = memorymap.MapAddress(0x1fff)
	test.ExpectEquality(t, ma, 0x07ff)
	test.ExpectEquality(t, area, memorymap.RAM)

	// PPU registers mirrors
	ma, area = memorymap.MapAddress(0x2002)
	test.ExpectEquality(t, ma, 0x0002)
	test.ExpectEquality(t, area, memorymap.PPU)
	ma, area = memorymap.MapAddress(0x3ffe)
	test.ExpectEquality(t, ma, 0x0006)
	test.ExpectEquality(t, area, memorymap.PPU)

	// APU and IO registers
	ma, area = memorymap.MapAddress(0x4014)
	test.ExpectEquality(t, ma, 0x0014)
	test.ExpectEquality(t, area, memorymap.APU)
	ma, area = memorymap.MapAddress(0x4017)
	test.ExpectEquality(t, ma, 0x0017)
	test.ExpectEquality(t, area, memorymap.APU)

	// test mode registers
	ma, area = memorymap.MapAddress(0x4018)
	test.ExpectEquality(t, ma, 0x0000)
	test.ExpectEquality(t, area, memorymap.TestMode)

	// cartridge addresses are not normalised
	ma, area = memorymap.MapAddress(0x4020)
	test.ExpectEquality(t, ma, 0x4020)
	test.ExpectEquality(t, area, memorymap.Cartridge)
	ma, area = memorymap.MapAddress(0xffff)
	test.ExpectEquality(t, ma, 0xffff)
	test.ExpectEquality(t, area, memorymap.Cartridge)
}

func TestPartition(t *testing.T) {
	// every address belongs to exactly one area and the areas are contiguous
	prev := memorymap.Undefined
	changes := 0
	for a := range int(memorymap.Memtop) + 1 {
		_, area := memorymap.MapAddress(uint16(a))
		test.ExpectInequality(t, area, memorymap.Undefined)
		if area != prev {
			changes++
			test.DemandSuccess(t, area > prev)
			prev = area
		}
	}
	test.ExpectEquality(t, changes, 5)
}
