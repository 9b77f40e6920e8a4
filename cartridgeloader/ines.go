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

package cartridgeloader

import (
	"bytes"
	"fmt"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge/mapper"
)

// the first four bytes of every iNES file
var magic = []byte{'N', 'E', 'S', 0x1a}

const (
	headerSize  = 16
	trainerSize = 512
	prgUnit     = 0x4000
	chrUnit     = 0x2000

	// the largest exponent accepted in the exponent-multiplier notation of a
	// NES 2.0 header. the largest possible size fits in a 32bit int and is far
	// beyond the size of any real cartridge
	maxExponent = 28
)

// bits in byte 6 of the header
const (
	flagVertical   = 0x01
	flagBattery    = 0x02
	flagTrainer    = 0x04
	flagFourScreen = 0x08
)

// Decode the data of an iNES file. NES 2.0 headers are recognised and the
// additional information is used. The trainer is returned separately and
// plays no part in the emulation.
func Decode(data []byte) (mapper.Config, []uint8, []uint8, []uint8, error) {
	var cfg mapper.Config

	if len(data) < headerSize {
		return cfg, nil, nil, nil, curated.Errorf(LoaderError, "file too short for iNES header")
	}
	if !bytes.Equal(data[:4], magic) {
		return cfg, nil, nil, nil, curated.Errorf(LoaderError, "not an iNES file")
	}

	hdr := data[:headerSize]

	cfg.NES2 = hdr[7]&0x0c == 0x08
	cfg.Battery = hdr[6]&flagBattery == flagBattery
	cfg.Trainer = hdr[6]&flagTrainer == flagTrainer

	switch {
	case hdr[6]&flagFourScreen == flagFourScreen:
		cfg.Mirroring = mapper.FourScreen
	case hdr[6]&flagVertical == flagVertical:
		cfg.Mirroring = mapper.Vertical
	default:
		cfg.Mirroring = mapper.Horizontal
	}

	cfg.Mapper = int(hdr[6] >> 4)

	if cfg.NES2 {
		cfg.Mapper |= int(hdr[7] & 0xf0)
		cfg.Mapper |= int(hdr[8]&0x0f) << 8
		cfg.Submapper = int(hdr[8] >> 4)

		var ok bool
		cfg.PRGROMSize, ok = romSize(hdr[4], hdr[9]&0x0f, prgUnit)
		if !ok {
			return cfg, nil, nil, nil, curated.Errorf(LoaderError, "PRG size in header is too large")
		}
		cfg.CHRROMSize, ok = romSize(hdr[5], hdr[9]>>4, chrUnit)
		if !ok {
			return cfg, nil, nil, nil, curated.Errorf(LoaderError, "CHR size in header is too large")
		}

		cfg.PRGRAMSize = shiftSize(hdr[10] & 0x0f)
		cfg.PRGNVRAMSize = shiftSize(hdr[10] >> 4)
		cfg.CHRRAMSize = shiftSize(hdr[11] & 0x0f)
		cfg.CHRNVRAMSize = shiftSize(hdr[11] >> 4)

		cfg.Timing = mapper.Timing(hdr[12] & 0x03)
	} else {
		// some old tools wrote a string into the unused part of the header.
		// if the last four bytes are not zero then the upper nibble of the
		// mapper number can not be trusted
		if bytes.Equal(hdr[12:16], []byte{0, 0, 0, 0}) {
			cfg.Mapper |= int(hdr[7] & 0xf0)
		}

		cfg.PRGROMSize = int(hdr[4]) * prgUnit
		cfg.CHRROMSize = int(hdr[5]) * chrUnit

		// a value of zero means 8K for compatibility
		ram := int(hdr[8]) * 0x2000
		if ram == 0 {
			ram = 0x2000
		}
		if cfg.Battery {
			cfg.PRGNVRAMSize = ram
		} else {
			cfg.PRGRAMSize = ram
		}

		if cfg.CHRROMSize == 0 {
			cfg.CHRRAMSize = 0x2000
		}

		if hdr[9]&0x01 == 0x01 {
			cfg.Timing = mapper.TimingPAL
		}
	}

	offset := headerSize

	var trainer []uint8
	if cfg.Trainer {
		if len(data) < offset+trainerSize {
			return cfg, nil, nil, nil, curated.Errorf(LoaderError, "file too short for trainer")
		}
		trainer = data[offset : offset+trainerSize]
		offset += trainerSize
	}

	if err := cfg.Validate(); err != nil {
		return cfg, nil, nil, nil, curated.Errorf(LoaderError, err)
	}

	if len(data) < offset+cfg.PRGROMSize+cfg.CHRROMSize {
		return cfg, nil, nil, nil, curated.Errorf(LoaderError,
			fmt.Sprintf("file too short for PRG (%d) and CHR (%d)", cfg.PRGROMSize, cfg.CHRROMSize))
	}

	// the cartridge is given copies of the data so that changes to the
	// cartridge do not affect the loader
	prg := make([]uint8, cfg.PRGROMSize)
	copy(prg, data[offset:])
	offset += cfg.PRGROMSize

	chr := make([]uint8, cfg.CHRROMSize)
	copy(chr, data[offset:])

	return cfg, prg, chr, trainer, nil
}

// the size of ROM in a NES 2.0 header. if the upper nibble is 0x0f then the
// lower byte is in exponent-multiplier notation. returns false if the size is
// larger than any real cartridge could be
func romSize(lsb uint8, msb uint8, unit int) (int, bool) {
	if msb == 0x0f {
		exponent := int(lsb >> 2)
		if exponent > maxExponent {
			return 0, false
		}
		multiplier := int(lsb&0x03)*2 + 1
		return (1 << exponent) * multiplier, true
	}
	return (int(msb)<<8 | int(lsb)) * unit, true
}

// the size of RAM in a NES 2.0 header. a shift count of zero means there is no
// RAM
func shiftSize(shift uint8) int {
	if shift == 0 {
		return 0
	}
	return 64 << shift
}

// Encode creates an iNES file from the configuration and data. A NES 2.0 header
// is created if the NES2 field of the configuration is true. Encode is the
// inverse of Decode() and is used to create test data.
func Encode(cfg mapper.Config, prg []uint8, chr []uint8) []byte {
	hdr := make([]byte, headerSize)
	copy(hdr, magic)

	hdr[4] = uint8(len(prg) / prgUnit)
	hdr[5] = uint8(len(chr) / chrUnit)

	switch cfg.Mirroring {
	case mapper.Vertical:
		hdr[6] |= flagVertical
	case mapper.FourScreen:
		hdr[6] |= flagFourScreen
	}
	if cfg.Battery {
		hdr[6] |= flagBattery
	}
	hdr[6] |= uint8(cfg.Mapper&0x0f) << 4
	hdr[7] = uint8(cfg.Mapper & 0xf0)

	if cfg.NES2 {
		hdr[7] |= 0x08
		hdr[8] = uint8(cfg.Mapper>>8)&0x0f | uint8(cfg.Submapper<<4)
		hdr[9] = uint8(len(prg)/prgUnit>>8)&0x0f | uint8(len(chr)/chrUnit>>8)<<4
		hdr[10] = shiftCount(cfg.PRGRAMSize) | shiftCount(cfg.PRGNVRAMSize)<<4
		hdr[11] = shiftCount(cfg.CHRRAMSize) | shiftCount(cfg.CHRNVRAMSize)<<4
		hdr[12] = uint8(cfg.Timing) & 0x03
	} else {
		hdr[8] = uint8((cfg.PRGRAMSize + cfg.PRGNVRAMSize) / 0x2000)
		if cfg.Timing == mapper.TimingPAL {
			hdr[9] = 0x01
		}
	}

	data := make([]byte, 0, headerSize+len(prg)+len(chr))
	data = append(data, hdr...)
	data = append(data, prg...)
	data = append(data, chr...)
	return data
}

func shiftCount(size int) uint8 {
	if size <= 0 {
		return 0
	}
	var shift uint8
	for 64<<shift < size {
		shift++
	}
	return shift
}
