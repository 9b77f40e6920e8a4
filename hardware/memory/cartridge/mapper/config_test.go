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

package mapper_test

import (
	"testing"

	"github.com/jetsetilly/gophernes/hardware/memory/cartridge/mapper"
	"github.com/jetsetilly/gophernes/test"
)

func TestNametableMirroring(t *testing.T) {
	// the four logical nametables
	addrs := []uint16{0x2005, 0x2405, 0x2805, 0x2c05}

	expect := func(m mapper.Mirroring, physical ...uint16) {
		t.Helper()
		for i, a := range addrs {
			test.ExpectEquality(t, m.Nametable(a), physical[i], m)
		}
	}

	expect(mapper.Horizontal, 0x005, 0x005, 0x405, 0x405)
	expect(mapper.Vertical, 0x005, 0x405, 0x005, 0x405)
	expect(mapper.SingleScreenA, 0x005, 0x005, 0x005, 0x005)
	expect(mapper.SingleScreenB, 0x405, 0x405, 0x405, 0x405)
	expect(mapper.FourScreen, 0x005, 0x405, 0x805, 0xc05)

	// the nametables are mirrored from 0x3000
	test.ExpectEquality(t, mapper.Vertical.Nametable(0x3405), 0x405)
}

func TestValidate(t *testing.T) {
	cfg := mapper.Config{PRGROMSize: 0x8000, CHRROMSize: 0x2000}
	test.ExpectSuccess(t, cfg.Validate())

	cfg.PRGROMSize = 0
	test.ExpectFailure(t, cfg.Validate())

	cfg.PRGROMSize = 0x3000
	test.ExpectFailure(t, cfg.Validate())

	cfg.PRGROMSize = 0x4000
	cfg.CHRRAMSize = 0x2000
	test.ExpectFailure(t, cfg.Validate())
}
