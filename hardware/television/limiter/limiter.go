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

// Package limiter keeps the emulation running at the correct number of
// frames per second and measures the actual frame rate.
package limiter

import (
	"sync/atomic"
	"time"
)

// Limiter is used to limit the rate at which frames are produced.
type Limiter struct {
	// whether to wait for fps limited each frame
	Active bool

	// the ideal number of frames per second
	IdealFPS atomic.Value // float32

	// pulse that performs the limiting. the duration of the ticker will be set
	// when SetLimit() is called with a new fps value
	pulse *time.Ticker

	// we don't want to wait on the ticker every frame because the resolution
	// of the ticker is not fine enough at high frame rates. a simple counter
	// is good enough for this
	pulseCt      int
	pulseCtLimit int

	// pulse that performs the FPS measurement
	measuringPulse *time.Ticker

	// the measured FPS is the number of frames divided by the amount of
	// elapsed time since the previous measurement
	measureTime time.Time
	measureCt   int

	// the measured number of frames per second
	Measured atomic.Value // float32
}

// NewLimiter is preferred method of initialising a new instance of the Limiter
// type.
func NewLimiter(fps float32) *Limiter {
	lmtr := &Limiter{
		Active:         true,
		pulse:          time.NewTicker(time.Millisecond * 16),
		measuringPulse: time.NewTicker(time.Millisecond * 1000),
	}
	lmtr.Measured.Store(float32(0.0))
	lmtr.SetLimit(fps)
	return lmtr
}

// SetLimit changes the number of frames per second. Values of zero or less
// are ignored.
func (lmtr *Limiter) SetLimit(fps float32) {
	if fps <= 0.0 {
		return
	}

	lmtr.IdealFPS.Store(fps)

	// set scale and duration to wait according to requested FPS rate
	lmtr.pulseCt = 0
	lmtr.pulseCtLimit = 1 + int(fps/20)
	lmtr.pulse.Stop()
	lmtr.pulse.Reset(time.Duration(float32(time.Second) / fps * float32(lmtr.pulseCtLimit)))

	// restart FPS rate measurement
	lmtr.measureCt = 0
	lmtr.measureTime = time.Now()
	lmtr.measuringPulse.Reset(time.Millisecond * 1000)
}

// CheckFrame should be called every frame.
func (lmtr *Limiter) CheckFrame() {
	lmtr.measureCt++

	if lmtr.Active {
		lmtr.pulseCt++
		if lmtr.pulseCt >= lmtr.pulseCtLimit {
			lmtr.pulseCt = 0
			<-lmtr.pulse.C
		}
	}
}

// MeasureActual measures frame rate on every tick of the measuring pulse.
func (lmtr *Limiter) MeasureActual() {
	select {
	case <-lmtr.measuringPulse.C:
		t := time.Now()
		m := float32(lmtr.measureCt) / float32(t.Sub(lmtr.measureTime).Seconds())
		lmtr.Measured.Store(m)

		// reset time and count ready for next measurement
		lmtr.measureTime = t
		lmtr.measureCt = 0
	default:
	}
}

// Stop the limiter's tickers. The limiter should not be used after Stop().
func (lmtr *Limiter) Stop() {
	lmtr.pulse.Stop()
	lmtr.measuringPulse.Stop()
}
