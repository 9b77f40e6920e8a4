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

package random

import (
	"math/rand/v2"
	"time"

	"github.com/jetsetilly/gophernes/hardware/television/coords"
)

// TV defines the television functions required by the Random type.
type TV interface {
	GetCoords() coords.TelevisionCoords
}

// Random is a random number generator that is sensitive to time within the
// emulation.
type Random struct {
	tv TV

	// the base seed for the instance
	seed uint64

	// use zero seed rather than the random base seed. this is only really
	// useful for normalised instances where random numbers must be predictable
	ZeroSeed bool

	noRewind *rand.Rand
}

// NewRandom is the preferred method of initialisation for the Random type. The
// TV argument can be nil, in which case all coordinates are considered to be
// zero until Plumb() is called.
func NewRandom(tv TV) *Random {
	seed := uint64(time.Now().UnixNano())
	return &Random{
		tv:       tv,
		seed:     seed,
		noRewind: rand.New(rand.NewPCG(seed, seed>>1)),
	}
}

// Plumb a new TV into the instance.
func (rnd *Random) Plumb(tv TV) {
	rnd.tv = tv
}

func (rnd *Random) coords() uint64 {
	if rnd.tv == nil {
		return 0
	}
	return uint64(rnd.tv.GetCoords().Linear())
}

// Rewindable returns a number in the range [0,n) that depends on the current
// television coordinates.
func (rnd *Random) Rewindable(n int) int {
	var seed uint64
	if !rnd.ZeroSeed {
		seed = rnd.seed
	}
	return rand.New(rand.NewPCG(seed, rnd.coords())).IntN(n)
}

// NoRewind returns a number in the range [0,n) that is unrelated to the
// television coordinates.
func (rnd *Random) NoRewind(n int) int {
	if rnd.ZeroSeed {
		return rnd.Rewindable(n)
	}
	return rnd.noRewind.IntN(n)
}
