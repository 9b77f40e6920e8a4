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
	"crypto/sha1"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jetsetilly/gophernes/archivefs"
	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/environment"
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge/mapper"
	"github.com/jetsetilly/gophernes/logger"
)

// Error patterns returned when a cartridge can not be attached.
const (
	UnsupportedMapper = "cartridge: unsupported mapper (%d)"
	InvalidBankSize   = "cartridge: invalid bank size: %v"
	NVRAMError        = "cartridge: nvram: %v"
)

const (
	ejectedName = "ejected"
	ejectedHash = "nohash"
)

// Cartridge defines the information and operations for a NES cartridge. The
// CPU side of the cartridge is seen by the CPU bus in the range 0x4020 to
// 0xffff. The PPU side of the cartridge is seen by the PPU in the range 0x0000
// to 0x1fff.
type Cartridge struct {
	env *environment.Environment

	Filename string
	Hash     string

	// the configuration used when the cartridge was attached
	Config mapper.Config

	// the specific cartridge data, mapped appropriately
	mapper mapper.Mapper
}

// NewCartridge is the preferred method of initialisation for the cartridge
// type. The env argument can be nil.
func NewCartridge(env *environment.Environment) *Cartridge {
	cart := &Cartridge{env: env}
	cart.Eject()
	return cart
}

// Snapshot creates a copy of the cartridge in its current state.
func (cart *Cartridge) Snapshot() *Cartridge {
	n := *cart
	n.mapper = cart.mapper.Snapshot()
	return &n
}

// Plumb makes sure everything is ship-shape after a snapshot has been restored.
func (cart *Cartridge) Plumb(env *environment.Environment) {
	cart.env = env
}

// the logging permission for the cartridge
func (cart *Cartridge) perm() logger.Permission {
	if cart.env == nil {
		return logger.Allow
	}
	return cart.env
}

func (cart *Cartridge) String() string {
	return cart.Summary()
}

// Summary returns brief information about the cartridge. Two lines: first line
// is the path to the cartridge and the second line is information about the
// mapper, including bank information.
func (cart *Cartridge) Summary() string {
	return fmt.Sprintf("%s\n%s [%s]", cart.Filename, cart.mapper.ID(), cart.mapper.MappedBanks())
}

// ID returns the mapper name.
func (cart *Cartridge) ID() string {
	return cart.mapper.ID()
}

// MappedBanks returns a string summary of the banks currently mapped.
func (cart *Cartridge) MappedBanks() string {
	return cart.mapper.MappedBanks()
}

// Eject removes the cartridge. Reads from the cartridge area of the CPU bus
// will return the open bus value.
func (cart *Cartridge) Eject() {
	cart.Filename = ejectedName
	cart.Hash = ejectedHash
	cart.Config = mapper.Config{}
	cart.mapper = newEjected()
}

// IsEjected returns true if no cartridge is attached.
func (cart *Cartridge) IsEjected() bool {
	return cart.Hash == ejectedHash
}

// the closed set of supported mappers
var mappers = map[int]func(mapper.Config, []uint8, []uint8) (mapper.Mapper, error){
	0:  newNROM,
	1:  newMMC1,
	2:  newUxROM,
	3:  newCNROM,
	4:  newMMC3,
	7:  newAxROM,
	66: newGxROM,
}

// IsSupported returns true if the mapper number is supported.
func IsSupported(number int) bool {
	_, ok := mappers[number]
	return ok
}

// Attach the PRG and CHR data to the cartridge. The configuration will usually
// have been created by the cartridgeloader package. If an error is returned
// the cartridge will be ejected.
func (cart *Cartridge) Attach(cfg mapper.Config, prg []uint8, chr []uint8) error {
	cart.Eject()

	if err := cfg.Validate(); err != nil {
		return curated.Errorf(InvalidBankSize, err)
	}
	if len(prg) != cfg.PRGROMSize {
		return curated.Errorf(InvalidBankSize, fmt.Sprintf("PRG data (%d) does not match config (%d)", len(prg), cfg.PRGROMSize))
	}
	if len(chr) != cfg.CHRROMSize {
		return curated.Errorf(InvalidBankSize, fmt.Sprintf("CHR data (%d) does not match config (%d)", len(chr), cfg.CHRROMSize))
	}

	create, ok := mappers[cfg.Mapper]
	if !ok {
		return curated.Errorf(UnsupportedMapper, cfg.Mapper)
	}

	m, err := create(cfg, prg, chr)
	if err != nil {
		return err
	}

	h := sha1.New()
	h.Write(prg)
	h.Write(chr)

	cart.mapper = m
	cart.Config = cfg
	cart.Hash = fmt.Sprintf("%x", h.Sum(nil))
	cart.Filename = ""

	logger.Logf(cart.perm(), "cartridge", "attached %s: %s", m.ID(), cfg)

	return nil
}

// Reset volatile cartridge state.
func (cart *Cartridge) Reset() {
	cart.mapper.Reset()
}

// Read is the CPU side of the cartridge. The address is the full CPU address.
// The bus argument is the current value of the data bus and is returned for
// addresses not driven by the cartridge.
func (cart *Cartridge) Read(address uint16, bus uint8) uint8 {
	if data, ok := cart.mapper.ReadPRG(address); ok {
		return data
	}
	return bus
}

// Write is the CPU side of the cartridge. The address is the full CPU address.
func (cart *Cartridge) Write(address uint16, data uint8) {
	cart.mapper.WritePRG(address, data)
}

// Peek returns the value at the address without side effects. The driven
// return value is false if the cartridge does not drive the data bus for the
// address.
func (cart *Cartridge) Peek(address uint16) (uint8, bool) {
	return cart.mapper.ReadPRG(address)
}

// Poke changes the value in the bank currently mapped to the address.
func (cart *Cartridge) Poke(address uint16, data uint8) {
	cart.mapper.PokePRG(address, data)
}

// ReadCHR is the PPU side of the cartridge. The address is in the range 0x0000
// to 0x1fff.
func (cart *Cartridge) ReadCHR(address uint16) uint8 {
	return cart.mapper.ReadCHR(address)
}

// WriteCHR is the PPU side of the cartridge. Writes to CHR ROM are ignored.
func (cart *Cartridge) WriteCHR(address uint16, data uint8) {
	cart.mapper.WriteCHR(address, data)
}

// Mirroring returns the current nametable mirroring.
func (cart *Cartridge) Mirroring() mapper.Mirroring {
	return cart.mapper.Mirroring()
}

// Step should be called every CPU cycle.
func (cart *Cartridge) Step() {
	cart.mapper.Step()
}

// ScanlineTick clocks the scanline counter of mappers that have one.
func (cart *Cartridge) ScanlineTick() {
	if m, ok := cart.mapper.(mapper.ScanlineIRQ); ok {
		m.ScanlineTick()
	}
}

// IRQ returns the state of the cartridge IRQ line.
func (cart *Cartridge) IRQ() bool {
	if m, ok := cart.mapper.(mapper.ScanlineIRQ); ok {
		return m.IRQ()
	}
	return false
}

// NumBanks returns the number of PRG banks in the cartridge.
func (cart *Cartridge) NumBanks() int {
	return cart.mapper.NumBanks()
}

// GetBank returns the bank mapped to the CPU address.
func (cart *Cartridge) GetBank(address uint16) mapper.BankInfo {
	return cart.mapper.GetBank(address)
}

// NVRAM returns the battery backed memory of the cartridge. Returns nil if
// there is no such memory.
func (cart *Cartridge) NVRAM() []uint8 {
	if m, ok := cart.mapper.(mapper.NVRAM); ok {
		return m.NVRAM()
	}
	return nil
}

// NVRAMFilename returns the name of the file used to save the battery backed
// memory of the cartridge. The file is stored alongside the cartridge file.
//
// If the cartridge file is inside an archive the file is stored alongside the
// archive and is named after both the archive and the cartridge file.
func (cart *Cartridge) NVRAMFilename() string {
	if cart.Filename == "" || cart.IsEjected() {
		return ""
	}

	archive, fn := archivefs.Split(cart.Filename)
	fn = strings.TrimSuffix(fn, filepath.Ext(fn))

	if archive != "" {
		fn = strings.ReplaceAll(fn, string(filepath.Separator), "_")
		return filepath.Join(filepath.Dir(archive),
			fmt.Sprintf("%s_%s.sav", archivefs.TrimArchiveExt(filepath.Base(archive)), fn))
	}

	return fmt.Sprintf("%s.sav", fn)
}

// LoadNVRAM loads the battery backed memory from disk. It is not an error for
// the file to not exist.
func (cart *Cartridge) LoadNVRAM() error {
	nvram := cart.NVRAM()
	fn := cart.NVRAMFilename()
	if nvram == nil || fn == "" {
		return nil
	}

	data, err := os.ReadFile(fn)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return curated.Errorf(NVRAMError, err)
	}

	if len(data) != len(nvram) {
		logger.Logf(cart.perm(), "cartridge", "nvram file %s is the wrong size (%d bytes)", fn, len(data))
	}
	copy(nvram, data)

	logger.Logf(cart.perm(), "cartridge", "nvram loaded from %s", fn)

	return nil
}

// SaveNVRAM saves the battery backed memory to disk.
func (cart *Cartridge) SaveNVRAM() error {
	nvram := cart.NVRAM()
	fn := cart.NVRAMFilename()
	if nvram == nil || fn == "" {
		return nil
	}

	err := os.WriteFile(fn, nvram, 0o644)
	if err != nil {
		return curated.Errorf(NVRAMError, err)
	}

	logger.Logf(cart.perm(), "cartridge", "nvram saved to %s", fn)

	return nil
}
