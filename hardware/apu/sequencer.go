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

package apu

// the CPU cycles at which the frame sequencer clocks the channels
type sequence struct {
	quarter [4]int
	fourEnd int
	fiveEnd int
}

var (
	sequenceNTSC = sequence{
		quarter: [4]int{7457, 14913, 22371, 29829},
		fourEnd: 29830,
		fiveEnd: 37282,
	}

	sequencePAL = sequence{
		quarter: [4]int{8313, 16627, 24939, 33253},
		fourEnd: 33254,
		fiveEnd: 41566,
	}
)

// sequencer is the frame sequencer (sometimes called the frame counter)
type sequencer struct {
	timing *sequence

	fiveStep bool
	inhibit  bool
	irq      bool
	cycle    int

	// writes to the frame counter register take effect after a short delay
	pendingWrite bool
	pendingValue uint8
	pendingDelay int
}

// tick advances the frame sequencer by one CPU cycle and returns whether a
// quarter frame and a half frame clock should be sent to the channels
func (s *sequencer) tick() (bool, bool) {
	var quarter, half bool

	if s.pendingWrite {
		s.pendingDelay--
		if s.pendingDelay == 0 {
			s.pendingWrite = false
			s.fiveStep = s.pendingValue&0x80 == 0x80
			s.cycle = 0

			// switching to the five step sequence immediately clocks the
			// quarter and half frame units
			if s.fiveStep {
				return true, true
			}
			return false, false
		}
	}

	s.cycle++

	// the last quarter frame of the five step sequence is later than the
	// last quarter frame of the four step sequence
	last := s.timing.quarter[3]
	if s.fiveStep {
		last = s.timing.fiveEnd - 1
	}

	switch s.cycle {
	case s.timing.quarter[0], s.timing.quarter[2]:
		quarter = true
	case s.timing.quarter[1]:
		quarter = true
		half = true
	case last:
		quarter = true
		half = true
	}

	if !s.fiveStep {
		// the IRQ flag is set over three cycles at the end of the sequence
		if s.cycle >= s.timing.fourEnd-2 && !s.inhibit {
			s.irq = true
		}
		if s.cycle >= s.timing.fourEnd {
			s.cycle = 0
		}
	} else if s.cycle >= s.timing.fiveEnd {
		s.cycle = 0
	}

	return quarter, half
}

// write to the frame counter register. the odd argument is true if the write
// happens on an odd CPU cycle
func (s *sequencer) write(data uint8, odd bool) {
	s.inhibit = data&0x40 == 0x40
	if s.inhibit {
		s.irq = false
	}

	s.pendingWrite = true
	s.pendingValue = data
	if odd {
		s.pendingDelay = 4
	} else {
		s.pendingDelay = 3
	}
}
