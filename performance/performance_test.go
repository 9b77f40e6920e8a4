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

package performance_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/gophernes/environment"
	"github.com/jetsetilly/gophernes/hardware"
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge/mapper"
	"github.com/jetsetilly/gophernes/hardware/preferences"
	"github.com/jetsetilly/gophernes/hardware/television"
	"github.com/jetsetilly/gophernes/performance"
	"github.com/jetsetilly/gophernes/test"
)

func TestParseProfileString(t *testing.T) {
	p, err := performance.ParseProfileString("")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileNone)

	p, err = performance.ParseProfileString("cpu, trace")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileCPU|performance.ProfileTrace)

	p, err = performance.ParseProfileString("all")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileAll)

	_, err = performance.ParseProfileString("cpu,disk")
	test.ExpectFailure(t, err)
}

func TestCalcFPS(t *testing.T) {
	tv, err := television.NewTelevision("PAL")
	test.DemandSuccess(t, err)

	fps, accuracy := performance.CalcFPS(tv, 100, 2.0)
	test.ExpectEquality(t, fps, 50.0)
	test.ExpectApproximate(t, accuracy, 100.0, 0.01)
}

func TestCheck(t *testing.T) {
	prg := make([]uint8, 0x8000)
	chr := make([]uint8, 0x2000)

	// JMP $8000
	copy(prg, []uint8{0x4c, 0x00, 0x80})
	prg[0x7ffc] = 0x00
	prg[0x7ffd] = 0x80

	tv, err := television.NewTelevision("NTSC")
	test.DemandSuccess(t, err)

	nes, err := hardware.NewNES(environment.MainEmulation, tv, preferences.NewDefaultPreferences())
	test.DemandSuccess(t, err)

	cfg := mapper.Config{
		PRGROMSize: len(prg),
		CHRROMSize: len(chr),
		Mirroring:  mapper.Vertical,
	}
	test.DemandSuccess(t, nes.AttachCartridge("", cfg, prg, chr))

	out := &strings.Builder{}
	test.ExpectSuccess(t, performance.Check(out, performance.ProfileNone, nes, true, "100ms", false))
	test.ExpectSuccess(t, strings.Contains(out.String(), "fps ("))
	test.ExpectSuccess(t, nes.PPU.Frame > 0)

	test.ExpectFailure(t, performance.Check(out, performance.ProfileNone, nes, true, "soon", false))
}
