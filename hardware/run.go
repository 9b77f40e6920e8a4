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
	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/debugger/govern"
)

// UnsupportedState is the error pattern returned when the continue check
// returns a state that the run functions can not handle.
const UnsupportedState = "nes: unsupported emulation state (%s) in run function"

// While the continueCheck() function only runs at the end of a CPU
// instruction, it can still be expensive to do a full continue check every
// time.
//
// It depends on context whether it is used or not but the PerformanceBrake is
// a standard value that can be used to filter out expensive code paths within
// a continueCheck() implementation. For example:
//
//	performanceFilter++
//	if performanceFilter >= hardware.PerformanceBrake {
//		performanceFilter = 0
//		if end_condition == true {
//			return govern.Ending, nil
//		}
//	}
//	return govern.Running, nil
const PerformanceBrake = 100

// Run sets the emulation running as quickly as possible. The emulation will
// stop when continueCheck returns the Ending state or when the breakpoint
// predicate is satisfied. The continueCheck function can be nil.
//
// The return value is true if the emulation stopped because of the breakpoint
// predicate.
func (nes *NES) Run(continueCheck func() (govern.State, error)) (bool, error) {
	if continueCheck == nil {
		continueCheck = func() (govern.State, error) { return govern.Running, nil }
	}

	var err error

	state := govern.Running

	for state != govern.Ending && state != govern.Initialising {
		switch state {
		case govern.Running:
			if nes.breakpoint != nil && nes.breakpoint() {
				return true, nil
			}
			if _, err := nes.Step(nil); err != nil {
				return false, err
			}
		case govern.Paused:
		default:
			return false, curated.Errorf(UnsupportedState, state)
		}

		state, err = continueCheck()
		if err != nil {
			return false, err
		}
	}

	return false, nil
}

// RunForFrameCount sets emulator running for the specified number of frames.
// Useful for FPS and regression tests. The breakpoint predicate is ignored.
func (nes *NES) RunForFrameCount(numFrames int, continueCheck func(frame int) (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func(frame int) (govern.State, error) { return govern.Running, nil }
	}

	frameNum := nes.PPU.Frame
	targetFrame := frameNum + numFrames

	var err error

	state := govern.Running
	for frameNum < targetFrame && state != govern.Ending {
		if _, err := nes.Step(nil); err != nil {
			return err
		}

		frameNum = nes.PPU.Frame

		state, err = continueCheck(frameNum)
		if err != nil {
			return err
		}
	}

	return nil
}
