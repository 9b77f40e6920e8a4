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

package pngwriter_test

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jetsetilly/gophernes/hardware/television"
	"github.com/jetsetilly/gophernes/hardware/television/specification"
	"github.com/jetsetilly/gophernes/pngwriter"
	"github.com/jetsetilly/gophernes/test"
)

func frame(number int) *television.Frame {
	pixels := make([]specification.Pixel, specification.VisibleWidth*specification.VisibleHeight)
	pixels[10] = specification.NewPixel(0x16, 0)
	return &television.Frame{
		Number: number,
		Spec:   &specification.SpecNTSC,
		Pixels: pixels,
	}
}

func TestSave(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "frame.png")
	_, err := pngwriter.Save(frame(0), fn)
	test.DemandSuccess(t, err)

	f, err := os.Open(fn)
	test.DemandSuccess(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, img.Bounds().Dx(), specification.VisibleWidth)
	test.ExpectEquality(t, img.Bounds().Dy(), specification.VisibleHeight)

	r, g, b, _ := img.At(10, 0).RGBA()
	c := specification.Palette[0x16]
	test.ExpectEquality(t, uint8(r>>8), c.R)
	test.ExpectEquality(t, uint8(g>>8), c.G)
	test.ExpectEquality(t, uint8(b>>8), c.B)
}

func TestEvery(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "test")
	pw := pngwriter.NewPNGWriter(prefix, 2, television.Block, time.Second)
	for i := range 5 {
		test.ExpectSuccess(t, pw.NewFrame(frame(i)))
	}
	test.ExpectSuccess(t, pw.EndRendering())
	test.ExpectEquality(t, len(pw.Written), 3)

	_, err := os.Stat(prefix + "_000004.png")
	test.ExpectSuccess(t, err)
}

func TestLastFrame(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "test")
	pw := pngwriter.NewPNGWriter(prefix, 0, television.Block, time.Second)
	for i := range 5 {
		test.ExpectSuccess(t, pw.NewFrame(frame(i)))
	}
	test.ExpectSuccess(t, pw.EndRendering())
	test.DemandEquality(t, len(pw.Written), 1)
	test.ExpectEquality(t, filepath.Base(pw.Written[0]), "test_000004.png")
}
