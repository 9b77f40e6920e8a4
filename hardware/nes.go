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

package hardware

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gophernes/environment"
	"github.com/jetsetilly/gophernes/hardware/apu"
	"github.com/jetsetilly/gophernes/hardware/clocks"
	"github.com/jetsetilly/gophernes/hardware/cpu"
	"github.com/jetsetilly/gophernes/hardware/input"
	"github.com/jetsetilly/gophernes/hardware/memory"
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge"
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge/mapper"
	"github.com/jetsetilly/gophernes/hardware/preferences"
	"github.com/jetsetilly/gophernes/hardware/ppu"
	"github.com/jetsetilly/gophernes/hardware/television"
	"github.com/jetsetilly/gophernes/hardware/television/coords"
	"github.com/jetsetilly/gophernes/hardware/television/specification"
	"github.com/jetsetilly/gophernes/logger"
)

// Timing is the state of the master clock.
type Timing struct {
	// the number of master clock ticks since power-on
	Master uint64

	// the master clock tick at which the PPU was last stepped
	PPU uint64

	// the number of CPU cycles since power-on
	Cycles uint64

	// the number of CPU cycles since the last audio sample
	audio int
}

// NES struct is the main container for the emulated components of the NES.
type NES struct {
	Env *environment.Environment

	// the television is not part of the NES but is attached to it
	TV *television.Television

	// the clock dividers for the current region
	Clock clocks.Clock

	CPU   *cpu.CPU
	Mem   *memory.Memory
	PPU   *ppu.PPU
	APU   *apu.APU
	Ports *input.Ports
	Input *input.Input

	Timing Timing

	// the breakpoint predicate is checked before every CPU instruction
	breakpoint func() bool

	// the cycle callback of the current call to Step()
	cycleCallback func() error
}

// NewNES creates a new NES and everything associated with the hardware. It is
// used for all aspects of emulation: debugging sessions, and regular play.
//
// The prefs argument can be nil, in which case the preferences are loaded from
// disk.
func NewNES(label environment.Label, tv *television.Television, prefs *preferences.Preferences) (*NES, error) {
	nes := &NES{TV: tv}

	var err error
	nes.Env, err = environment.NewEnvironment(label, nes, prefs)
	if err != nil {
		return nil, err
	}

	nes.TV.Plumb(nes.Env)
	nes.Mem = memory.NewMemory(nes.Env, cartridge.NewCartridge(nes.Env))
	nes.CPU = cpu.NewCPU(nes.Env, nes.Mem)
	nes.Ports = input.NewPorts()
	nes.Input = input.NewInput(nes, nes.Ports)
	nes.setRegion(nes.TV.GetSpec())

	return nes, nil
}

// setRegion creates the PPU and APU for the television specification and
// connects them to the memory bus. The clock dividers are also set.
func (nes *NES) setRegion(spec *specification.Spec) {
	nes.Clock = clocks.ForSpec(spec.ID)
	nes.PPU = ppu.NewPPU(nes.Env, nes.Mem.Cart, spec)
	nes.APU = apu.NewAPU(nes.Env, spec)
	nes.Mem.Plumb(nes.Env, nes.PPU, nes.APU, nes.Ports)
}

func (nes *NES) String() string {
	s := strings.Builder{}
	fmt.Fprintf(&s, "%s\n", nes.CPU)
	fmt.Fprintf(&s, "%s\n", nes.PPU)
	fmt.Fprintf(&s, "%s\n", nes.APU)
	fmt.Fprintf(&s, "clock: %s master=%d cycles=%d", nes.Clock.ID, nes.Timing.Master, nes.Timing.Cycles)
	return s.String()
}

// GetCoords returns the coordinates of the PPU. The function satisfies the
// random.TV and input.TV interfaces.
func (nes *NES) GetCoords() coords.TelevisionCoords {
	if nes.PPU == nil {
		return coords.TelevisionCoords{}
	}
	return nes.PPU.GetCoords()
}

// the region to use for a cartridge. the region preference overrides the
// cartridge timing unless it is set to AUTO
func (nes *NES) region(cfg mapper.Config) string {
	switch strings.ToUpper(nes.Env.Prefs.Region.String()) {
	case preferences.RegionNTSC:
		return specification.SpecNTSC.ID
	case preferences.RegionPAL:
		return specification.SpecPAL.ID
	case preferences.RegionDendy:
		return specification.SpecDendy.ID
	}

	if nes.TV.GetReqSpecID() != "AUTO" {
		return nes.TV.GetReqSpecID()
	}

	return specification.FromTiming(cfg.Timing).ID
}

// AttachCartridge inserts the cartridge data into the NES and resets the
// console. The region of the console is chosen according to the preferences
// and the cartridge configuration.
//
// If there is an error the console is left with no cartridge inserted.
func (nes *NES) AttachCartridge(filename string, cfg mapper.Config, prg []uint8, chr []uint8) (err error) {
	defer func() {
		if err != nil {
			nes.Mem.Cart.Eject()
		}
	}()

	if err := nes.Mem.Cart.Attach(cfg, prg, chr); err != nil {
		return err
	}
	nes.Mem.Cart.Filename = filename

	if err := nes.Mem.Cart.LoadNVRAM(); err != nil {
		logger.Log(nes.Env, "nes", err)
	}

	if err := nes.TV.SetSpec(nes.region(cfg)); err != nil {
		return err
	}
	nes.setRegion(nes.TV.GetSpec())

	return nes.Reset()
}

// EjectCartridge saves any battery backed memory and removes the cartridge.
func (nes *NES) EjectCartridge() error {
	err := nes.Mem.Cart.SaveNVRAM()
	nes.Mem.Cart.Eject()
	return err
}

// Reset emulates the power being turned off and on again. Compare to
// SoftReset().
func (nes *NES) Reset() error {
	nes.Timing = Timing{}
	nes.Mem.Reset()
	nes.PPU.Reset()
	nes.APU.Reset()
	nes.Ports.Reset()

	if err := nes.CPU.SetIllegalPolicy(nes.Env.Prefs.Illegal()); err != nil {
		return err
	}

	return nes.CPU.Reset()
}

// SoftReset emulates the reset button on the console. The reset line is
// connected to the CPU, the PPU and the APU. The reset sequence is run by the
// CPU as part of the next call to Step().
func (nes *NES) SoftReset() {
	nes.CPU.SoftReset()
	nes.PPU.SoftReset()
	nes.APU.SoftReset()
}

// SampleRate returns the number of audio samples per second sent to the
// television. The value depends on the region and the audio decimation
// preference.
func (nes *NES) SampleRate() int {
	return int(nes.Clock.CPU()*1000000) / nes.Env.Prefs.AudioDecimation.Get().(int)
}

// SetBreakpoint sets the function that is called before every CPU
// instruction. If the function returns true the Run() functions will return
// before the instruction is executed. A nil value removes the breakpoint.
func (nes *NES) SetBreakpoint(breakpoint func() bool) {
	nes.breakpoint = breakpoint
}

// End the emulation. Any battery backed memory is saved and the television is
// ended.
func (nes *NES) End() error {
	if err := nes.Mem.Cart.SaveNVRAM(); err != nil {
		logger.Log(nes.Env, "nes", err)
	}
	return nes.TV.End()
}
