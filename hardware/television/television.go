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

// Package television is the connection between the emulated console and the
// presentation of its output. The television does not present anything
// itself. Instead, FrameRenderers and AudioMixers are added to perform those
// tasks.
//
// The television also limits the speed of the emulation to the frame rate of
// the specification, when the FPS cap is set.
package television

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/environment"
	"github.com/jetsetilly/gophernes/hardware/television/limiter"
	"github.com/jetsetilly/gophernes/hardware/television/specification"
	"github.com/jetsetilly/gophernes/logger"
)

// UnsupportedSpec is the error pattern returned when a television
// specification is not recognised.
const UnsupportedSpec = "television: unsupported specification (%s)"

// the default number of samples in the audio buffer before it is sent to the
// audio mixers
const DefaultAudioThreshold = 1024

// Television is the conceptual television attached to the console.
type Television struct {
	env *environment.Environment

	// the specification requested when the television was created. can be
	// AUTO, in which case the specification is decided by the cartridge
	reqSpecID string
	spec      *specification.Spec

	renderers []FrameRenderer
	mixers    []AudioMixer

	// the most recent frame
	frame Frame

	// audio samples are buffered and sent to the mixers when the buffer
	// reaches the threshold
	audio          []float32
	audioThreshold int

	lmtr *limiter.Limiter
}

// NewTelevision creates a new instance of the television type, satisfying the
// Television interface.
func NewTelevision(spec string) (*Television, error) {
	tv := &Television{
		reqSpecID:      strings.ToUpper(spec),
		audioThreshold: DefaultAudioThreshold,
	}

	// AUTO starts with NTSC until the specification is set by the cartridge
	id := tv.reqSpecID
	if id == "AUTO" {
		id = specification.SpecNTSC.ID
	}
	if err := tv.SetSpec(id); err != nil {
		return nil, err
	}

	tv.lmtr = limiter.NewLimiter(tv.spec.FramesPerSecond)
	tv.lmtr.Active = false

	return tv, nil
}

// Plumb a new environment into the television.
func (tv *Television) Plumb(env *environment.Environment) {
	tv.env = env
}

// the logging permission for the television
func (tv *Television) perm() logger.Permission {
	if tv.env == nil {
		return logger.Allow
	}
	return tv.env
}

func (tv *Television) String() string {
	return fmt.Sprintf("%s (requested %s) frame %d", tv.spec.ID, tv.reqSpecID, tv.frame.Number)
}

// SetSpec sets the television's specification.
func (tv *Television) SetSpec(id string) error {
	id = strings.ToUpper(id)

	found := false
	for _, s := range specification.SpecList {
		if s == id {
			found = true
			break
		}
	}
	if !found {
		return curated.Errorf(UnsupportedSpec, id)
	}

	tv.spec = specification.GetSpec(id)
	tv.frame.Spec = tv.spec
	if tv.lmtr != nil {
		tv.lmtr.SetLimit(tv.spec.FramesPerSecond)
	}

	logger.Logf(tv.perm(), "television", "specification set to %s", tv.spec.ID)

	return nil
}

// GetReqSpecID returns the specification that was requested on creation.
func (tv *Television) GetReqSpecID() string {
	return tv.reqSpecID
}

// GetSpec returns the television's current specification.
func (tv *Television) GetSpec() *specification.Spec {
	return tv.spec
}

// AddFrameRenderer registers an (additional) implementation of FrameRenderer.
func (tv *Television) AddFrameRenderer(r FrameRenderer) {
	tv.renderers = append(tv.renderers, r)
}

// AddAudioMixer registers an (additional) implementation of AudioMixer.
func (tv *Television) AddAudioMixer(m AudioMixer) {
	tv.mixers = append(tv.mixers, m)
}

// SetAudioThreshold sets the number of samples that are buffered before being
// sent to the audio mixers.
func (tv *Television) SetAudioThreshold(n int) {
	tv.audioThreshold = max(1, n)
}

// NewFrame is called by the console when the PPU has completed a frame.
func (tv *Television) NewFrame(number int, pixels []specification.Pixel) error {
	tv.frame.Number = number
	tv.frame.Pixels = pixels

	for _, r := range tv.renderers {
		if err := r.NewFrame(&tv.frame); err != nil {
			return err
		}
	}

	tv.lmtr.CheckFrame()
	tv.lmtr.MeasureActual()

	return nil
}

// GetFrame returns the most recent frame. The frame will change on the next
// call to NewFrame().
func (tv *Television) GetFrame() *Frame {
	return &tv.frame
}

// AudioSample is called by the console every time the APU is sampled.
func (tv *Television) AudioSample(sample float32) error {
	if len(tv.mixers) == 0 {
		return nil
	}
	tv.audio = append(tv.audio, sample)
	if len(tv.audio) >= tv.audioThreshold {
		return tv.FlushAudio()
	}
	return nil
}

// FlushAudio sends any buffered audio samples to the audio mixers.
func (tv *Television) FlushAudio() error {
	if len(tv.audio) == 0 {
		return nil
	}
	for _, m := range tv.mixers {
		if err := m.SetAudio(tv.audio); err != nil {
			return err
		}
	}
	tv.audio = tv.audio[:0]
	return nil
}

// End the television. Buffered audio is flushed and every renderer and mixer
// is ended. The television should not be used after End() has been called.
func (tv *Television) End() error {
	var err error

	if e := tv.FlushAudio(); e != nil {
		err = e
	}
	for _, r := range tv.renderers {
		if e := r.EndRendering(); e != nil && err == nil {
			err = e
		}
	}
	for _, m := range tv.mixers {
		if e := m.EndMixing(); e != nil && err == nil {
			err = e
		}
	}

	tv.lmtr.Stop()

	return err
}

// SetFPSCap sets whether the emulation should wait for the FPS limiter.
func (tv *Television) SetFPSCap(set bool) {
	tv.lmtr.Active = set
}

// SetFPS requests a number of frames per second. This overrides the frame rate
// of the specification. A value of zero or less restores the frame rate of the
// specification.
func (tv *Television) SetFPS(fps float32) {
	if fps <= 0.0 {
		fps = tv.spec.FramesPerSecond
	}
	tv.lmtr.SetLimit(fps)
}

// GetReqFPS returns the requested number of frames per second.
func (tv *Television) GetReqFPS() float32 {
	return tv.lmtr.IdealFPS.Load().(float32)
}

// GetActualFPS returns the current number of frames per second.
func (tv *Television) GetActualFPS() float32 {
	return tv.lmtr.Measured.Load().(float32)
}
