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

package hostaudio

import (
	"encoding/binary"
	"math"
	"sync"
	"time"

	"github.com/jetsetilly/gophernes/hardware/television"
)

// the number of sample buffers that can be waiting to be played
const queueLength = 16

// the number of bytes in each sample
const sampleDepth = 4

// stream is read by the audio player. it satisfies the io.Reader interface
type stream struct {
	queue *television.Handoff[[]float32]

	// the samples that have been received but not yet read by the player
	crit    sync.Mutex
	pending []float32

	// the value of the last sample read. used when the queue is empty
	last float32

	// the number of times the player has asked for more samples than were
	// available
	underflow int
}

func newStream(policy television.Policy, timeout time.Duration) *stream {
	return &stream{
		queue: television.NewHandoff[[]float32](queueLength, policy, timeout),
	}
}

// send a copy of the samples to the player
func (s *stream) send(samples []float32) error {
	c := make([]float32, len(samples))
	copy(c, samples)
	return s.queue.Send(c)
}

// Read implements the io.Reader interface. The buffer is always filled
// completely, with the most recent sample value if necessary.
func (s *stream) Read(p []byte) (int, error) {
	s.crit.Lock()
	defer s.crit.Unlock()

	n := len(p) / sampleDepth

	for len(s.pending) < n {
		var more []float32
		select {
		case more = <-s.queue.Receive():
		default:
		}
		if len(more) == 0 {
			break
		}
		s.pending = append(s.pending, more...)
	}

	if len(s.pending) < n {
		s.underflow++
	}

	for i := range n {
		if len(s.pending) > 0 {
			s.last = s.pending[0]
			s.pending = s.pending[1:]
		}
		binary.LittleEndian.PutUint32(p[i*sampleDepth:], math.Float32bits(s.last))
	}

	return n * sampleDepth, nil
}
