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

package recorder

import (
	"fmt"
	"os"
	"strings"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/digest"
	"github.com/jetsetilly/gophernes/hardware"
	"github.com/jetsetilly/gophernes/hardware/input"
)

// RecordingError is the error pattern for errors in the recording process.
const RecordingError = "recorder: %v"

// Recorder transcribes user input to a file. The recorded file is intended
// for future playback.
type Recorder struct {
	output *os.File
	digest *digest.Video
}

// NewRecorder is the preferred method of implementation for the Recorder
// type. The recorder is attached to the NES input system. The emulation should
// be reset before recording so that playback starts from the same state.
func NewRecorder(transcript string, nes *hardware.NES) (*Recorder, error) {
	var err error

	rec := &Recorder{
		digest: digest.NewVideo(nes.TV),
	}

	rec.output, err = os.Create(transcript)
	if err != nil {
		return nil, curated.Errorf(RecordingError, err)
	}

	err = writeHeader(rec.output, header{
		cartName: nes.Mem.Cart.Filename,
		cartHash: nes.Mem.Cart.Hash,
		tvSpec:   nes.TV.GetSpec().ID,
	})
	if err != nil {
		rec.output.Close()
		return nil, err
	}

	err = nes.Input.AttachRecorder(rec)
	if err != nil {
		rec.output.Close()
		return nil, curated.Errorf(RecordingError, err)
	}

	return rec, nil
}

// End flushes all remaining events to the output file and closes it.
func (rec *Recorder) End() error {
	if rec.output == nil {
		return nil
	}
	err := rec.output.Close()
	rec.output = nil
	if err != nil {
		return curated.Errorf(RecordingError, err)
	}
	return nil
}

// RecordEvent implements the input.EventRecorder interface.
func (rec *Recorder) RecordEvent(ev input.TimedEvent) error {
	if rec.output == nil {
		return curated.Errorf(RecordingError, "recording has ended")
	}

	fields := make([]string, numFields)
	fields[fieldPort] = fmt.Sprintf("%d", ev.Port)
	fields[fieldButton] = ev.Button.String()
	fields[fieldPressed] = fmt.Sprintf("%v", ev.Pressed)
	fields[fieldFrame] = fmt.Sprintf("%d", ev.Time.Frame)
	fields[fieldScanline] = fmt.Sprintf("%d", ev.Time.Scanline)
	fields[fieldDot] = fmt.Sprintf("%d", ev.Time.Dot)
	fields[fieldHash] = rec.digest.Hash()

	_, err := fmt.Fprintln(rec.output, strings.Join(fields, fieldSep))
	if err != nil {
		return curated.Errorf(RecordingError, err)
	}

	return nil
}
