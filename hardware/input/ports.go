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

import "fmt"

// PortID identifies one of the two controller ports.
type PortID int

// List of valid PortID values.
const (
	NoPort PortID = iota - 1
	Player1
	Player2
)

func (p PortID) String() string {
	switch p {
	case Player1:
		return "player 1"
	case Player2:
		return "player 2"
	}
	return "no port"
}

// the controller registers relative to $4000
const (
	regJoy1 = 0x16
	regJoy2 = 0x17
)

// Ports are the two controller ports of the console.
type Ports struct {
	Controllers [2]Controller
}

// NewPorts is the preferred method of initialisation for the Ports type.
func NewPorts() *Ports {
	return &Ports{}
}

// Snapshot creates a copy of the ports in their current state.
func (p *Ports) Snapshot() *Ports {
	n := *p
	return &n
}

func (p *Ports) String() string {
	return fmt.Sprintf("%s: %s  %s: %s", Player1, p.Controllers[Player1].buttons, Player2, p.Controllers[Player2].buttons)
}

// Reset the ports. The state of the buttons is not changed.
func (p *Ports) Reset() {
	for i := range p.Controllers {
		p.Controllers[i].setStrobe(false)
		p.Controllers[i].shift = 0
	}
}

// ReadRegister implements the cpubus.ChipRegisters interface.
func (p *Ports) ReadRegister(reg uint16, bus uint8) uint8 {
	switch reg {
	case regJoy1:
		return bus&0xe0 | p.Controllers[Player1].read()
	case regJoy2:
		return bus&0xe0 | p.Controllers[Player2].read()
	}
	return bus
}

// PeekRegister implements the cpubus.ChipRegisters interface.
func (p *Ports) PeekRegister(reg uint16, bus uint8) uint8 {
	switch reg {
	case regJoy1:
		return bus&0xe0 | p.Controllers[Player1].peek()
	case regJoy2:
		return bus&0xe0 | p.Controllers[Player2].peek()
	}
	return bus
}

// WriteRegister implements the cpubus.ChipRegisters interface. Only writes
// to $4016 are seen by the controllers.
func (p *Ports) WriteRegister(reg uint16, data uint8) {
	if reg == regJoy1 {
		strobe := data&0x01 == 0x01
		p.Controllers[Player1].setStrobe(strobe)
		p.Controllers[Player2].setStrobe(strobe)
	}
}
