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

package input

import (
	"github.com/jetsetilly/gophernes/curated"
)

// EventPlayback implementations feed controller Events to the emulation on
// request.
//
// Intended for playback of controller events previously recorded to a file on
// disk. An event with a Port of NoPort indicates that there are no more events
// for the current time.
type EventPlayback interface {
	GetPlayback() (TimedEvent, error)
}

// EventRecorder implementations mirror an incoming event.
type EventRecorder interface {
	RecordEvent(TimedEvent) error
}

// AttachRecorder attaches an EventRecorder implementation. The recorder can be
// nil in order to remove the recorder.
func (inp *Input) AttachRecorder(r EventRecorder) error {
	if inp.playback != nil {
		return curated.Errorf("input: attach recorder: emulator already has a playback attached")
	}
	inp.recorder = r
	return nil
}

// AttachPlayback attaches an EventPlayback implementation to the Input
// sub-system. EventPlayback can be nil in order to remove the playback.
func (inp *Input) AttachPlayback(pb EventPlayback) error {
	if inp.recorder != nil {
		return curated.Errorf("input: attach playback: emulator already has a recorder attached")
	}
	inp.playback = pb
	inp.setProcessFunc()
	return nil
}

// handlePlaybackEvents requests playback events until there are no more events
// for the current time. there might be more than one event for a frame so we
// need to make sure they are all processed
func (inp *Input) handlePlaybackEvents() error {
	for {
		ev, err := inp.playback.GetPlayback()
		if err != nil {
			return err
		}
		if ev.Port == NoPort {
			return nil
		}
		if err := inp.handle(ev.Event); err != nil {
			return err
		}
	}
}
