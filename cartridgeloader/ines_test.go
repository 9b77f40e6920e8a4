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

package cartridgeloader_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gophernes/cartridgeloader"
	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge/mapper"
	"github.com/jetsetilly/gophernes/test"
)

func TestINES(t *testing.T) {
	prg := make([]uint8, 0x8000)
	prg[0] = 0x11
	chr := make([]uint8, 0x2000)
	chr[0] = 0x22

	data := cartridgeloader.Encode(mapper.Config{Mapper: 66, Mirroring: mapper.Vertical, Battery: true}, prg, chr)
	test.ExpectEquality(t, len(data), 16+0x8000+0x2000)

	cfg, p, c, trainer, err := cartridgeloader.Decode(data)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cfg.Mapper, 66)
	test.ExpectEquality(t, cfg.NES2, false)
	test.ExpectEquality(t, cfg.Mirroring, mapper.Vertical)
	test.ExpectEquality(t, cfg.Battery, true)
	test.ExpectEquality(t, cfg.PRGROMSize, 0x8000)
	test.ExpectEquality(t, cfg.CHRROMSize, 0x2000)
	test.ExpectEquality(t, cfg.PRGNVRAMSize, 0x2000)
	test.ExpectEquality(t, cfg.CHRRAMSize, 0)
	test.ExpectEquality(t, p[0], 0x11)
	test.ExpectEquality(t, c[0], 0x22)
	test.ExpectEquality(t, len(trainer), 0)
}

func TestINESCHRRAM(t *testing.T) {
	data := cartridgeloader.Encode(mapper.Config{Mapper: 2, Timing: mapper.TimingPAL}, make([]uint8, 0x20000), nil)
	cfg, _, c, _, err := cartridgeloader.Decode(data)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cfg.Mapper, 2)
	test.ExpectEquality(t, len(c), 0)
	test.ExpectEquality(t, cfg.CHRRAMSize, 0x2000)
	test.ExpectEquality(t, cfg.PRGRAMSize, 0x2000)
	test.ExpectEquality(t, cfg.Timing, mapper.TimingPAL)
	test.ExpectEquality(t, cfg.Mirroring, mapper.Horizontal)
}

func TestINESGarbage(t *testing.T) {
	data := cartridgeloader.Encode(mapper.Config{Mapper: 1}, make([]uint8, 0x8000), nil)

	// "DiskDude!" in the unused bytes of the header. the upper nibble of the
	// mapper number comes from the same area and should be ignored
	copy(data[7:], []byte("DiskDude!"))
	cfg, _, _, _, err := cartridgeloader.Decode(data)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cfg.Mapper, 1)
}

func TestNES2(t *testing.T) {
	in := mapper.Config{
		Mapper:       4,
		Submapper:    1,
		NES2:         true,
		PRGRAMSize:   0x2000,
		PRGNVRAMSize: 0x8000,
		Mirroring:    mapper.FourScreen,
		Timing:       mapper.TimingDendy,
		CHRRAMSize:   0x4000,
	}
	data := cartridgeloader.Encode(in, make([]uint8, 0x40000), nil)

	cfg, p, _, _, err := cartridgeloader.Decode(data)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cfg.NES2, true)
	test.ExpectEquality(t, cfg.Mapper, 4)
	test.ExpectEquality(t, cfg.Submapper, 1)
	test.ExpectEquality(t, cfg.PRGRAMSize, 0x2000)
	test.ExpectEquality(t, cfg.PRGNVRAMSize, 0x8000)
	test.ExpectEquality(t, cfg.CHRRAMSize, 0x4000)
	test.ExpectEquality(t, cfg.Mirroring, mapper.FourScreen)
	test.ExpectEquality(t, cfg.Timing, mapper.TimingDendy)
	test.ExpectEquality(t, len(p), 0x40000)
}

func TestNES2ExtendedMapper(t *testing.T) {
	data := cartridgeloader.Encode(mapper.Config{Mapper: 0x123, NES2: true}, make([]uint8, 0x4000), nil)
	cfg, _, _, _, err := cartridgeloader.Decode(data)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cfg.Mapper, 0x123)
}

func TestNES2ExponentSize(t *testing.T) {
	data := cartridgeloader.Encode(mapper.Config{NES2: true}, make([]uint8, 0x8000), nil)

	// 2^15 * 1 bytes of PRG using the exponent-multiplier notation
	data[4] = 15 << 2
	data[9] = 0x0f
	cfg, _, _, _, err := cartridgeloader.Decode(data)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cfg.PRGROMSize, 0x8000)
}

func TestNES2OversizedHeader(t *testing.T) {
	hdr := make([]byte, 16)
	copy(hdr, []byte{'N', 'E', 'S', 0x1a})
	hdr[7] = 0x08
	hdr[9] = 0x0f

	// exponent of 63 in the exponent-multiplier notation
	hdr[4] = 0xfc
	_, _, _, _, err := cartridgeloader.Decode(hdr)
	test.ExpectSuccess(t, curated.Is(err, cartridgeloader.LoaderError))

	// the largest accepted exponent is still larger than the data
	hdr[4] = 28<<2 | 0x03
	_, _, _, _, err = cartridgeloader.Decode(hdr)
	test.ExpectSuccess(t, curated.Is(err, cartridgeloader.LoaderError))

	// CHR size uses the same notation
	hdr[4] = 0x02
	hdr[9] = 0xf0
	hdr[5] = 0xfc
	_, _, _, _, err = cartridgeloader.Decode(hdr)
	test.ExpectSuccess(t, curated.Is(err, cartridgeloader.LoaderError))
}

func TestTrainer(t *testing.T) {
	data := cartridgeloader.Encode(mapper.Config{}, make([]uint8, 0x4000), nil)
	data[6] |= 0x04

	// insert trainer after the header
	trainer := make([]uint8, 512)
	trainer[0] = 0x77
	data = append(data[:16], append(trainer, data[16:]...)...)

	cfg, p, _, tr, err := cartridgeloader.Decode(data)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cfg.Trainer, true)
	test.ExpectEquality(t, len(tr), 512)
	test.ExpectEquality(t, tr[0], 0x77)
	test.ExpectEquality(t, len(p), 0x4000)
}

func TestDecodeErrors(t *testing.T) {
	_, _, _, _, err := cartridgeloader.Decode([]byte("NES"))
	test.ExpectSuccess(t, curated.Is(err, cartridgeloader.LoaderError))

	_, _, _, _, err = cartridgeloader.Decode(make([]byte, 32))
	test.ExpectSuccess(t, curated.Is(err, cartridgeloader.LoaderError))

	// header says there is more data than there is
	data := cartridgeloader.Encode(mapper.Config{}, make([]uint8, 0x8000), nil)
	_, _, _, _, err = cartridgeloader.Decode(data[:0x4000])
	test.ExpectFailure(t, err)

	// no PRG
	data = cartridgeloader.Encode(mapper.Config{}, nil, nil)
	_, _, _, _, err = cartridgeloader.Decode(data)
	test.ExpectFailure(t, err)
}

func TestLoader(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "game.nes")
	data := cartridgeloader.Encode(mapper.Config{Mapper: 3}, make([]uint8, 0x8000), make([]uint8, 0x8000))
	test.DemandSuccess(t, os.WriteFile(fn, data, 0o644))

	cl := cartridgeloader.NewLoader(fn)
	test.ExpectEquality(t, cl.ShortName(), "game")
	test.ExpectFailure(t, cl.HasLoaded())
	test.DemandSuccess(t, cl.Load())
	test.ExpectSuccess(t, cl.HasLoaded())
	test.ExpectEquality(t, cl.Config.Mapper, 3)
	test.ExpectEquality(t, len(cl.CHR), 0x8000)
	test.ExpectInequality(t, cl.Hash, "")

	// hash mismatch
	cl = cartridgeloader.NewLoader(fn)
	cl.Hash = "0000"
	test.ExpectFailure(t, cl.Load())

	// missing file
	cl = cartridgeloader.NewLoader(filepath.Join(t.TempDir(), "missing.nes"))
	test.ExpectFailure(t, cl.Load())
}

func TestLoaderArchive(t *testing.T) {
	dir := t.TempDir()
	arc := filepath.Join(dir, "roms.zip")

	f, err := os.Create(arc)
	test.DemandSuccess(t, err)
	z := zip.NewWriter(f)
	w, err := z.Create("game.nes")
	test.DemandSuccess(t, err)
	_, err = w.Write(cartridgeloader.Encode(mapper.Config{Mapper: 7}, make([]uint8, 0x8000), nil))
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, z.Close())
	test.DemandSuccess(t, f.Close())

	// the archive is named but the filename is updated to the cartridge file
	// inside the archive
	cl := cartridgeloader.NewLoader(arc)
	test.DemandSuccess(t, cl.Load())
	test.ExpectEquality(t, cl.Config.Mapper, 7)
	test.ExpectEquality(t, cl.Filename, filepath.Join(arc, "game.nes"))
	test.ExpectEquality(t, cl.ShortName(), "game")

	cl = cartridgeloader.NewLoader(filepath.Join(arc, "game.nes"))
	test.DemandSuccess(t, cl.Load())
	test.ExpectEquality(t, cl.Config.Mapper, 7)
}
