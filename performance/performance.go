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

package performance

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/gophernes/debugger/govern"
	"github.com/jetsetilly/gophernes/hardware"
	"github.com/jetsetilly/gophernes/statsview"
)

// the amount of time the emulation runs before measurement starts. allows the
// framerate to settle down
const leadtime = 2 * time.Second

var timedOut = errors.New("performance timed out")

// Check the performance of the emulator by running the NES for the duration.
// The NES should have a cartridge attached. The duration is a string that can
// be parsed by time.ParseDuration().
//
// If stats is true and the statsview server is available in the build then
// the server is launched before the emulation starts.
func Check(output io.Writer, profile Profile, nes *hardware.NES, uncapped bool, duration string, stats bool) error {
	var err error

	// parse supplied duration
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}

	if stats {
		if !statsview.Available() {
			return fmt.Errorf("performance: stats server not available in this build")
		}
		statsview.Launch(output)
	}

	// set fps cap on television
	nes.TV.SetFPSCap(!uncapped)

	// get starting frame number (should be 0)
	startFrame := nes.PPU.Frame

	// run for specified period of time
	runner := func() error {
		// setup trigger that expires when duration has elapsed. signals true
		// when duration has expired. signals false to indicate that
		// performance measurement should start
		timerChan := make(chan bool, 2)

		// the leadtime will put false on the timerChan. the conclusion of the
		// measurement period will put true on the timerChan
		time.AfterFunc(leadtime, func() {
			timerChan <- false
			time.AfterFunc(dur, func() {
				timerChan <- true
			})
		})

		// only check for end of measurement period every PerformanceBrake CPU
		// instructions. checking the timerChan is relatively expensive
		performanceBrake := 0

		// run until specified time elapses
		_, err := nes.Run(func() (govern.State, error) {
			performanceBrake++
			if performanceBrake < hardware.PerformanceBrake {
				return govern.Running, nil
			}
			performanceBrake = 0

			select {
			case v := <-timerChan:
				if v {
					return govern.Ending, timedOut
				}

				// the leadtime has concluded. the performance measurement has
				// begun and we should record the start frame
				startFrame = nes.PPU.Frame
			default:
			}

			return govern.Running, nil
		})
		return err
	}

	// launch runner directly or through the CPU profiler, depending on
	// supplied arguments
	err = RunProfiler(profile, "performance", runner)
	if err != nil && !errors.Is(err, timedOut) {
		return fmt.Errorf("performance: %w", err)
	}

	// get ending frame number
	endFrame := nes.PPU.Frame

	// calculate performance
	numFrames := endFrame - startFrame
	fps, accuracy := CalcFPS(nes.TV, numFrames, dur.Seconds())
	fmt.Fprintf(output, "%.2f fps (%d frames in %.2f seconds) %.1f%%\n", fps, numFrames, dur.Seconds(), accuracy)

	return nil
}
