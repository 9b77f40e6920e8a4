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

package television_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/hardware/television"
	"github.com/jetsetilly/gophernes/hardware/television/specification"
	"github.com/jetsetilly/gophernes/test"
)

func TestNewTelevision(t *testing.T) {
	for _, s := range []string{"PAL", "NTSC", "dendy", "AUTO"} {
		tv, err := television.NewTelevision(s)
		test.ExpectSuccess(t, err, s)
		test.ExpectSuccess(t, tv != nil, s)
	}

	tv, err := television.NewTelevision("AUTO")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tv.GetSpec().ID, "NTSC")
	test.ExpectEquality(t, tv.GetReqSpecID(), "AUTO")
	test.ExpectSuccess(t, tv.SetSpec("PAL"))
	test.ExpectEquality(t, tv.GetSpec().ID, "PAL")

	_, err = television.NewTelevision("FOO")
	test.ExpectSuccess(t, curated.Is(err, television.UnsupportedSpec))
}

type renderer struct {
	frames []int
	ended  bool
}

func (r *renderer) NewFrame(f *television.Frame) error {
	r.frames = append(r.frames, f.Number)
	return nil
}

func (r *renderer) EndRendering() error {
	r.ended = true
	return nil
}

type mixer struct {
	calls   int
	samples []float32
	ended   bool
}

func (m *mixer) SetAudio(samples []float32) error {
	m.calls++
	m.samples = append(m.samples, samples...)
	return nil
}

func (m *mixer) EndMixing() error {
	m.ended = true
	return nil
}

func TestSinks(t *testing.T) {
	tv, err := television.NewTelevision("NTSC")
	test.DemandSuccess(t, err)

	r := &renderer{}
	m := &mixer{}
	tv.AddFrameRenderer(r)
	tv.AddAudioMixer(m)
	tv.SetAudioThreshold(4)

	pixels := make([]specification.Pixel, specification.VisibleWidth*specification.VisibleHeight)
	test.ExpectSuccess(t, tv.NewFrame(1, pixels))
	test.ExpectSuccess(t, tv.NewFrame(2, pixels))
	test.ExpectEquality(t, len(r.frames), 2)
	test.ExpectEquality(t, r.frames[1], 2)

	for i := range 6 {
		test.ExpectSuccess(t, tv.AudioSample(float32(i)))
	}
	test.ExpectEquality(t, m.calls, 1)
	test.ExpectEquality(t, len(m.samples), 4)

	// the remaining samples are flushed when the television ends
	test.ExpectSuccess(t, tv.End())
	test.ExpectEquality(t, m.calls, 2)
	test.ExpectEquality(t, len(m.samples), 6)
	test.ExpectSuccess(t, r.ended)
	test.ExpectSuccess(t, m.ended)
}

type failingRenderer struct{}

func (failingRenderer) NewFrame(*television.Frame) error { return errors.New("failed") }
func (failingRenderer) EndRendering() error              { return nil }

func TestRendererError(t *testing.T) {
	tv, err := television.NewTelevision("NTSC")
	test.DemandSuccess(t, err)
	tv.AddFrameRenderer(failingRenderer{})
	test.ExpectFailure(t, tv.NewFrame(0, nil))
}

func TestFrameImage(t *testing.T) {
	pixels := make([]specification.Pixel, specification.VisibleWidth*specification.VisibleHeight)
	pixels[specification.VisibleWidth+2] = specification.NewPixel(0x20, 0)
	f := &television.Frame{Spec: &specification.SpecNTSC, Pixels: pixels}

	img := f.Image()
	test.ExpectEquality(t, img.RGBAAt(2, 1), specification.Palette[0x20])
	test.ExpectEquality(t, img.RGBAAt(0, 0), specification.Palette[0x00])

	c := f.Copy()
	pixels[0] = specification.NewPixel(0x30, 0)
	test.ExpectEquality(t, c.Pixels[0], specification.NewPixel(0x00, 0))
}

func TestHandoffBlock(t *testing.T) {
	h := television.NewHandoff[int](1, television.Block, 10*time.Millisecond)
	test.ExpectSuccess(t, h.Send(1))

	// nothing is receiving so the second send times out
	err := h.Send(2)
	test.ExpectSuccess(t, curated.Is(err, television.BackpressureTimeout))

	// a receiver makes room
	done := make(chan bool)
	go func() {
		for range h.Receive() {
		}
		done <- true
	}()
	h2 := television.NewHandoff[int](1, television.Block, time.Second)
	go func() {
		for range h2.Receive() {
		}
	}()
	for i := range 10 {
		test.ExpectSuccess(t, h2.Send(i))
	}
	h2.Close()

	h.Close()
	<-done
	test.ExpectEquality(t, h.Dropped(), 0)
}

func TestHandoffDrop(t *testing.T) {
	h := television.NewHandoff[int](2, television.Drop, time.Second)
	for i := range 5 {
		test.ExpectSuccess(t, h.Send(i))
	}
	test.ExpectEquality(t, h.Dropped(), 3)

	h.Close()
	var received []int
	for v := range h.Receive() {
		received = append(received, v)
	}
	test.ExpectEquality(t, len(received), 2)
	test.ExpectEquality(t, received[0], 0)

	test.ExpectEquality(t, television.ParsePolicy("drop"), television.Drop)
	test.ExpectEquality(t, television.ParsePolicy("block"), television.Block)
}
