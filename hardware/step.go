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

// the number of CPU cycles stolen by the DMC when it fetches a sample byte
const dmcStall = 4

// the cycle function defines the order of operation for the rest of the NES
// for every CPU cycle.
//
// the CPU calls the cycle function after every CPU cycle. this is a bit
// backwards compared to the operation of a real NES, where the master clock
// drives both the CPU and the PPU, but the effect is the same. the master clock
// is advanced by the CPU divider and the PPU is then stepped for every PPU
// divider that fits into the elapsed time. for NTSC this is exactly three dots
// per CPU cycle but for PAL it is sometimes three and sometimes four.
func (nes *NES) cycle() error {
	nes.Timing.Master += uint64(nes.Clock.CPUDivider)

	for nes.Timing.PPU+uint64(nes.Clock.PPUDivider) <= nes.Timing.Master {
		nes.Timing.PPU += uint64(nes.Clock.PPUDivider)

		ev, err := nes.PPU.Step()
		if err != nil {
			return err
		}

		if ev.ScanlineTick {
			nes.Mem.Cart.ScanlineTick()
		}

		if ev.FrameReady {
			if err := nes.TV.NewFrame(nes.PPU.Frame, nes.PPU.Pixels); err != nil {
				return err
			}
			if err := nes.Input.Process(); err != nil {
				return err
			}
		}
	}

	nes.APU.Step()
	nes.Mem.Cart.Step()

	// the interrupt lines are sampled by the CPU at the end of the cycle
	nes.CPU.SetNMI(nes.PPU.NMI())
	nes.CPU.SetIRQ(nes.APU.IRQ() || nes.Mem.Cart.IRQ())

	nes.Timing.Cycles++

	nes.Timing.audio++
	if nes.Timing.audio >= nes.Env.Prefs.AudioDecimation.Get().(int) {
		nes.Timing.audio = 0
		if err := nes.TV.AudioSample(nes.APU.Output()); err != nil {
			return err
		}
	}

	if nes.cycleCallback != nil {
		return nes.cycleCallback()
	}

	return nil
}

// Step the emulation forward one CPU instruction. If an interrupt is pending
// then the interrupt sequence is run instead of the next instruction. The
// cycleCallback function is called after every CPU cycle and can be nil.
//
// Any DMA requested by the instruction is performed before the function
// returns. The number of CPU cycles consumed by the instruction and any DMA
// is returned.
func (nes *NES) Step(cycleCallback func() error) (int, error) {
	nes.cycleCallback = cycleCallback
	defer func() {
		nes.cycleCallback = nil
	}()

	if err := nes.CPU.ExecuteInstruction(nes.cycle); err != nil {
		return 0, err
	}

	cycles := nes.CPU.LastResult.Cycles

	if page, ok := nes.Mem.DMARequest(); ok {
		n, err := nes.oamDMA(page)
		if err != nil {
			return cycles, err
		}
		cycles += n
	}

	if address, ok := nes.APU.DMCRequest(); ok {
		n, err := nes.dmcFetch(address)
		if err != nil {
			return cycles, err
		}
		cycles += n
	}

	return cycles, nil
}

// oamDMA copies a page of CPU memory to the PPU's OAM. The transfer takes 513
// cycles, or 514 cycles if it begins on an odd CPU cycle.
func (nes *NES) oamDMA(page uint8) (int, error) {
	cycles := 1
	if nes.Timing.Cycles&0x01 == 0x01 {
		cycles++
	}

	if err := nes.CPU.Halt(cycles, nes.cycle); err != nil {
		return 0, err
	}

	address := uint16(page) << 8
	for i := range uint16(256) {
		data, err := nes.Mem.Read(address | i)
		if err != nil {
			return cycles, err
		}
		if err := nes.CPU.Halt(1, nes.cycle); err != nil {
			return cycles, err
		}
		nes.PPU.WriteOAMDMA(data)
		if err := nes.CPU.Halt(1, nes.cycle); err != nil {
			return cycles, err
		}
		cycles += 2
	}

	return cycles, nil
}

// dmcFetch reads a sample byte for the DMC. The CPU is stalled while the
// fetch takes place.
func (nes *NES) dmcFetch(address uint16) (int, error) {
	if err := nes.CPU.Halt(dmcStall-1, nes.cycle); err != nil {
		return 0, err
	}

	data, err := nes.Mem.Read(address)
	if err != nil {
		return dmcStall - 1, err
	}
	nes.APU.DMCFill(data)

	if err := nes.CPU.Halt(1, nes.cycle); err != nil {
		return dmcStall - 1, err
	}

	return dmcStall, nil
}
