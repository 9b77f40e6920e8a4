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
	"fmt"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/hardware/television/coords"
)

// InvalidEvent is the error pattern for events that can not be handled.
const InvalidEvent = "input: invalid event: %v"

// Event is a change in the state of a button on one of the controllers.
type Event struct {
	Port    PortID
	Button  Button
	Pressed bool
}

func (ev Event) String() string {
	if ev.Pressed {
		return fmt.Sprintf("%s %s pressed", ev.Port, ev.Button)
	}
	return fmt.Sprintf("%s %s released", ev.Port, ev.Button)
}

// TimedEvent is an Event with the time at which it happened.
type TimedEvent struct {
	Time coords.TelevisionCoords
	Event
}

// TV defines the television functions required by the Input system.
type TV interface {
	GetCoords() coords.TelevisionCoords
}

// Input handles all forms of input into the NES.
type Input struct {
	tv    TV
	ports *Ports

	playback EventPlayback
	recorder EventRecorder

	// events pushed onto the input queue
	pushed chan Event

	// Process function should be called every frame
	Process func() error
}

// NewInput is the preferred method of initialisation for the Input type.
func NewInput(tv TV, p *Ports) *Input {
	inp := &Input{
		tv:     tv,
		ports:  p,
		pushed: make(chan Event, 64),
	}
	inp.setProcessFunc()
	return inp
}

// Plumb a new ports instance into the Input.
func (inp *Input) Plumb(tv TV, ports *Ports) {
	inp.tv = tv
	inp.ports = ports
}

func (inp *Input) handle(ev Event) error {
	if ev.Port != Player1 && ev.Port != Player2 {
		return curated.Errorf(InvalidEvent, ev)
	}
	inp.ports.Controllers[ev.Port].Set(ev.Button, ev.Pressed)
	return nil
}

// HandleInputEvent forwards an input event to the controllers.
//
// If a playback is currently active the input will not be handled and false
// will be returned.
func (inp *Input) HandleInputEvent(ev Event) (bool, error) {
	if inp.playback != nil {
		return false, nil
	}

	if err := inp.handle(ev); err != nil {
		return false, err
	}

	if inp.recorder != nil {
		err := inp.recorder.RecordEvent(TimedEvent{Time: inp.tv.GetCoords(), Event: ev})
		if err != nil {
			return false, err
		}
	}

	return true, nil
}

func (inp *Input) setProcessFunc() {
	if inp.playback != nil {
		inp.Process = func() error {
			if err := inp.handlePushed(); err != nil {
				return err
			}
			return inp.handlePlaybackEvents()
		}
		return
	}

	inp.Process = inp.handlePushed
}
