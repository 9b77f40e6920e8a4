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

package mapper

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gophernes/curated"
)

// Mirroring describes how the four logical nametables are mapped onto the
// physical nametable memory.
type Mirroring int

// List of valid Mirroring values.
const (
	Horizontal Mirroring = iota
	Vertical
	FourScreen
	SingleScreenA
	SingleScreenB
)

func (m Mirroring) String() string {
	switch m {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case FourScreen:
		return "four-screen"
	case SingleScreenA:
		return "single-screen A"
	case SingleScreenB:
		return "single-screen B"
	}
	return "unknown mirroring"
}

// Nametable translates a PPU address in the range 0x2000 to 0x3eff to an
// offset into the physical nametable memory. Physical nametable memory is 4KB
// but only the first 2KB is used unless the mirroring is FourScreen.
func (m Mirroring) Nametable(address uint16) uint16 {
	address &= 0x0fff
	table := address >> 10
	offset := address & 0x03ff

	switch m {
	case Horizontal:
		table >>= 1
	case Vertical:
		table &= 0x01
	case SingleScreenA:
		table = 0
	case SingleScreenB:
		table = 1
	}

	return (table << 10) | offset
}

// Timing is the console region the cartridge was designed for.
type Timing int

// List of valid Timing values.
const (
	TimingNTSC Timing = iota
	TimingPAL
	TimingMulti
	TimingDendy
)

func (t Timing) String() string {
	switch t {
	case TimingNTSC:
		return "NTSC"
	case TimingPAL:
		return "PAL"
	case TimingMulti:
		return "Multi"
	case TimingDendy:
		return "Dendy"
	}
	return "unknown timing"
}

// Config describes the cartridge hardware. It is created when the cartridge
// is loaded, usually from the header of the cartridge file.
type Config struct {
	// the mapper number and the NES 2.0 submapper number
	Mapper    int
	Submapper int

	// sizes are in bytes
	PRGROMSize   int
	CHRROMSize   int
	PRGRAMSize   int
	PRGNVRAMSize int
	CHRRAMSize   int
	CHRNVRAMSize int

	Mirroring Mirroring
	Battery   bool
	Trainer   bool
	Timing    Timing

	// whether the configuration was created from a NES 2.0 header
	NES2 bool
}

func (cfg Config) String() string {
	s := strings.Builder{}
	fmt.Fprintf(&s, "mapper %d", cfg.Mapper)
	if cfg.Submapper != 0 {
		fmt.Fprintf(&s, ".%d", cfg.Submapper)
	}
	fmt.Fprintf(&s, " PRG=%dK", cfg.PRGROMSize/1024)
	if cfg.CHRROMSize > 0 {
		fmt.Fprintf(&s, " CHR=%dK", cfg.CHRROMSize/1024)
	} else {
		fmt.Fprintf(&s, " CHR-RAM=%dK", cfg.CHRRAMSize/1024)
	}
	if cfg.PRGRAMSize+cfg.PRGNVRAMSize > 0 {
		fmt.Fprintf(&s, " PRG-RAM=%dK", (cfg.PRGRAMSize+cfg.PRGNVRAMSize)/1024)
	}
	fmt.Fprintf(&s, " %s %s", cfg.Mirroring, cfg.Timing)
	if cfg.Battery {
		s.WriteString(" battery")
	}
	return s.String()
}

// InvalidConfig is the error pattern for configurations that can never be
// valid.
const InvalidConfig = "mapper: invalid config: %v"

// Validate checks the sizes of the memory areas against the rules that apply
// to all mappers. Mapper specific rules are checked when the mapper is
// created.
func (cfg Config) Validate() error {
	if cfg.PRGROMSize <= 0 {
		return curated.Errorf(InvalidConfig, "no PRG ROM")
	}
	if cfg.PRGROMSize%0x2000 != 0 {
		return curated.Errorf(InvalidConfig, fmt.Sprintf("PRG ROM size (%d) not a multiple of 8K", cfg.PRGROMSize))
	}
	if cfg.CHRROMSize%0x2000 != 0 {
		return curated.Errorf(InvalidConfig, fmt.Sprintf("CHR ROM size (%d) not a multiple of 8K", cfg.CHRROMSize))
	}
	if cfg.CHRROMSize > 0 && cfg.CHRRAMSize > 0 {
		return curated.Errorf(InvalidConfig, "CHR ROM and CHR RAM both specified")
	}
	if cfg.PRGRAMSize < 0 || cfg.PRGNVRAMSize < 0 || cfg.CHRRAMSize < 0 || cfg.CHRNVRAMSize < 0 {
		return curated.Errorf(InvalidConfig, "negative RAM size")
	}
	return nil
}
