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

package wavwriter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/jetsetilly/gophernes/wavwriter"
	"github.com/jetsetilly/gophernes/test"
)

func TestWavWriter(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "test.wav")

	aw, err := wavwriter.New(fn, 44100)
	test.DemandSuccess(t, err)

	samples := make([]float32, 4410)
	for i := range samples {
		samples[i] = float32(i%100) / 100.0
	}
	test.ExpectSuccess(t, aw.SetAudio(samples))
	test.ExpectEquality(t, aw.Samples(), len(samples))
	test.ExpectSuccess(t, aw.EndMixing())

	f, err := os.Open(fn)
	test.DemandSuccess(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	test.ExpectSuccess(t, dec.IsValidFile())
	test.ExpectEquality(t, dec.SampleRate, uint32(44100))
	test.ExpectEquality(t, dec.NumChans, uint16(1))
	test.ExpectEquality(t, dec.BitDepth, uint16(16))

	buf, err := dec.FullPCMBuffer()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(buf.Data), len(samples))

	test.ExpectEquality(t, buf.Data[0], 0)
	test.ExpectEquality(t, buf.Data[50], 16383)
}

func TestBadSampleRate(t *testing.T) {
	_, err := wavwriter.New("test.wav", 0)
	test.ExpectFailure(t, err)
}
