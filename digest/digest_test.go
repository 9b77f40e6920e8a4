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

package digest_test

import (
	"testing"

	"github.com/jetsetilly/gophernes/digest"
	"github.com/jetsetilly/gophernes/hardware/television"
	"github.com/jetsetilly/gophernes/hardware/television/specification"
	"github.com/jetsetilly/gophernes/test"
)

func pixels(index uint8) []specification.Pixel {
	p := make([]specification.Pixel, specification.VisibleWidth*specification.VisibleHeight)
	for i := range p {
		p[i] = specification.NewPixel(index, 0)
	}
	return p
}

func TestVideo(t *testing.T) {
	tv, err := television.NewTelevision("NTSC")
	test.DemandSuccess(t, err)

	dig := digest.NewVideo(tv)
	zero := dig.Hash()

	test.ExpectSuccess(t, tv.NewFrame(0, pixels(0x0f)))
	a := dig.Hash()
	test.ExpectInequality(t, a, zero)

	// the digest is chained so the same frame produces a different hash
	test.ExpectSuccess(t, tv.NewFrame(1, pixels(0x0f)))
	test.ExpectInequality(t, dig.Hash(), a)

	// after a reset the first frame produces the same hash as before
	dig.ResetDigest()
	test.ExpectEquality(t, dig.Hash(), zero)
	test.ExpectSuccess(t, tv.NewFrame(2, pixels(0x0f)))
	test.ExpectEquality(t, dig.Hash(), a)
}

func TestFrame(t *testing.T) {
	test.ExpectEquality(t, digest.Frame(pixels(0x30)), digest.Frame(pixels(0x30)))
	test.ExpectInequality(t, digest.Frame(pixels(0x30)), digest.Frame(pixels(0x31)))

	// emphasis bits are part of the frame
	p := pixels(0x30)
	p[100] = specification.NewPixel(0x30, 0x20)
	test.ExpectInequality(t, digest.Frame(p), digest.Frame(pixels(0x30)))
}

func TestAudioGrouping(t *testing.T) {
	samples := make([]float32, 1000)
	for i := range samples {
		samples[i] = float32(i%100) / 100.0
	}

	a := digest.NewAudio(nil)
	test.ExpectSuccess(t, a.SetAudio(samples))

	b := digest.NewAudio(nil)
	for i := 0; i < len(samples); i += 7 {
		test.ExpectSuccess(t, b.SetAudio(samples[i:min(i+7, len(samples))]))
	}

	test.ExpectEquality(t, a.Hash(), b.Hash())

	c := digest.NewAudio(nil)
	samples[500] = 1.0
	test.ExpectSuccess(t, c.SetAudio(samples))
	test.ExpectInequality(t, a.Hash(), c.Hash())

	a.ResetDigest()
	test.ExpectEquality(t, a.Hash(), digest.NewAudio(nil).Hash())
}
