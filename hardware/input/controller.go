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

import "strings"

// Button identifies one of the eight buttons of a standard controller. The
// value of each button is the bit it occupies in the controller's shift
// register, so buttons are reported in the order A, B, Select, Start, Up,
// Down, Left, Right.
type Button uint8

// List of valid Button values.
const (
	ButtonA Button = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

var buttonNames = []string{"A", "B", "SELECT", "START", "UP", "DOWN", "LEFT", "RIGHT"}

func (b Button) String() string {
	s := strings.Builder{}
	for i, n := range buttonNames {
		if b&(1<<i) != 0 {
			if s.Len() > 0 {
				s.WriteString("+")
			}
			s.WriteString(n)
		}
	}
	if s.Len() == 0 {
		return "none"
	}
	return s.String()
}

// ParseButton returns the Button with the name. Returns false if the name is
// not recognised.
func ParseButton(name string) (Button, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for i, n := range buttonNames {
		if n == name {
			return Button(1 << i), true
		}
	}
	return 0, false
}

// Controller is a standard NES controller.
type Controller struct {
	// the buttons currently pressed. written by the input system
	buttons Button

	shift  uint8
	strobe bool
}

// Set changes the state of a button.
func (c *Controller) Set(b Button, pressed bool) {
	if pressed {
		c.buttons |= b
	} else {
		c.buttons &^= b
	}

	// the shift register follows the buttons while the strobe is set
	if c.strobe {
		c.shift = uint8(c.buttons)
	}
}

// Buttons returns the buttons currently pressed.
func (c *Controller) Buttons() Button {
	return c.buttons
}

func (c *Controller) setStrobe(strobe bool) {
	c.strobe = strobe
	if strobe {
		c.shift = uint8(c.buttons)
	}
}

// read the next bit from the shift register. once all eight buttons have been
// read the official controller returns 1 for every subsequent read
func (c *Controller) read() uint8 {
	if c.strobe {
		return uint8(c.buttons & ButtonA)
	}
	bit := c.shift & 0x01
	c.shift = c.shift>>1 | 0x80
	return bit
}

func (c *Controller) peek() uint8 {
	if c.strobe {
		return uint8(c.buttons & ButtonA)
	}
	return c.shift & 0x01
}
