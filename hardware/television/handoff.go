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

package television

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/jetsetilly/gophernes/curated"
)

// BackpressureTimeout is the error pattern returned when a sink has not
// accepted data within the timeout period.
const BackpressureTimeout = "television: backpressure timeout (%v)"

// Policy decides what happens when a sink can not keep up with the emulation.
type Policy int

// List of valid Policy values.
const (
	// Block waits for the sink, for up to the timeout period
	Block Policy = iota

	// Drop discards the data immediately. The number of dropped items is
	// counted
	Drop
)

func (p Policy) String() string {
	if p == Drop {
		return "DROP"
	}
	return "BLOCK"
}

// ParsePolicy returns the Policy for the name. Unrecognised names are treated
// as Block.
func ParsePolicy(name string) Policy {
	if strings.ToUpper(name) == "DROP" {
		return Drop
	}
	return Block
}

// Handoff is a bounded queue used to pass data from the emulation goroutine to
// a sink that works on another goroutine.
type Handoff[T any] struct {
	queue   chan T
	policy  Policy
	timeout time.Duration
	dropped atomic.Int64
}

// NewHandoff is the preferred method of initialisation for the Handoff type.
func NewHandoff[T any](size int, policy Policy, timeout time.Duration) *Handoff[T] {
	return &Handoff[T]{
		queue:   make(chan T, size),
		policy:  policy,
		timeout: timeout,
	}
}

// Send data to the sink. With the Block policy a BackpressureTimeout error is
// returned if the sink has not made room within the timeout period. With the
// Drop policy the data is discarded if there is no room and no error is
// returned.
func (h *Handoff[T]) Send(v T) error {
	select {
	case h.queue <- v:
		return nil
	default:
	}

	if h.policy == Drop {
		h.dropped.Add(1)
		return nil
	}

	t := time.NewTimer(h.timeout)
	defer t.Stop()

	select {
	case h.queue <- v:
		return nil
	case <-t.C:
		return curated.Errorf(BackpressureTimeout, h.timeout)
	}
}

// Receive returns the channel on which the sink receives data.
func (h *Handoff[T]) Receive() <-chan T {
	return h.queue
}

// Dropped returns the number of items dropped because of the Drop policy.
func (h *Handoff[T]) Dropped() int64 {
	return h.dropped.Load()
}

// Close the handoff. The sink will receive the remaining data before the
// receive channel is closed. Send() must not be called after Close().
func (h *Handoff[T]) Close() {
	close(h.queue)
}
