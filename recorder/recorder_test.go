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

package recorder_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/environment"
	"github.com/jetsetilly/gophernes/hardware"
	"github.com/jetsetilly/gophernes/hardware/input"
	"github.com/jetsetilly/gophernes/hardware/memory/cartridge/mapper"
	"github.com/jetsetilly/gophernes/hardware/preferences"
	"github.com/jetsetilly/gophernes/hardware/television"
	"github.com/jetsetilly/gophernes/recorder"
	"github.com/jetsetilly/gophernes/test"
)

// newNES creates an NROM NES running a program that turns on NMI and then
// loops forever. the value argument is stored in the palette so that different
// values produce different pictures
func newNES(t *testing.T, value uint8) *hardware.NES {
	t.Helper()

	prg := make([]uint8, 0x8000)
	chr := make([]uint8, 0x2000)
	copy(prg, []uint8{
		0xa9, 0x3f, // LDA #$3f
		0x8d, 0x06, 0x20, // STA $2006
		0xa9, 0x00, // LDA #$00
		0x8d, 0x06, 0x20, // STA $2006
		0xa9, value, // LDA #value
		0x8d, 0x07, 0x20, // STA $2007
		0x4c, 0x0f, 0x80, // JMP $800f
	})
	prg[0x7ffa] = 0x0f
	prg[0x7ffb] = 0x80
	prg[0x7ffc] = 0x00
	prg[0x7ffd] = 0x80

	tv, err := television.NewTelevision("NTSC")
	test.DemandSuccess(t, err)

	nes, err := hardware.NewNES(environment.MainEmulation, tv, preferences.NewDefaultPreferences())
	test.DemandSuccess(t, err)

	cfg := mapper.Config{
		PRGROMSize: len(prg),
		CHRROMSize: len(chr),
		Mirroring:  mapper.Horizontal,
	}
	test.DemandSuccess(t, nes.AttachCartridge("", cfg, prg, chr))

	return nes
}

func record(t *testing.T, transcript string) {
	t.Helper()

	nes := newNES(t, 0x21)
	rec, err := recorder.NewRecorder(transcript, nes)
	test.DemandSuccess(t, err)

	test.DemandSuccess(t, nes.Input.PushEvent(input.Event{Port: input.Player1, Button: input.ButtonA, Pressed: true}))
	test.DemandSuccess(t, nes.RunForFrameCount(2, nil))
	test.ExpectEquality(t, nes.Ports.Controllers[input.Player1].Buttons(), input.ButtonA)

	test.DemandSuccess(t, nes.Input.PushEvent(input.Event{Port: input.Player1, Button: input.ButtonA, Pressed: false}))
	test.DemandSuccess(t, nes.RunForFrameCount(2, nil))
	test.ExpectEquality(t, nes.Ports.Controllers[input.Player1].Buttons(), input.Button(0))

	test.DemandSuccess(t, rec.End())
}

func TestRecordAndPlayback(t *testing.T) {
	transcript := filepath.Join(t.TempDir(), "test.rec")
	record(t, transcript)

	plb, err := recorder.NewPlayback(transcript)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, plb.TVSpec, "NTSC")
	test.ExpectEquality(t, plb.Remaining(), 2)

	nes := newNES(t, 0x21)
	test.DemandSuccess(t, plb.AttachToNES(nes))

	// input from the user is ignored during playback
	test.DemandSuccess(t, nes.Input.PushEvent(input.Event{Port: input.Player1, Button: input.ButtonB, Pressed: true}))

	test.DemandSuccess(t, nes.RunForFrameCount(2, nil))
	test.ExpectEquality(t, nes.Ports.Controllers[input.Player1].Buttons(), input.ButtonA)
	test.ExpectEquality(t, plb.Remaining(), 1)

	test.DemandSuccess(t, nes.RunForFrameCount(2, nil))
	test.ExpectEquality(t, nes.Ports.Controllers[input.Player1].Buttons(), input.Button(0))
	test.ExpectEquality(t, plb.Remaining(), 0)
	test.ExpectSuccess(t, plb.EndFrame())
}

func TestPlaybackWrongCartridge(t *testing.T) {
	transcript := filepath.Join(t.TempDir(), "test.rec")
	record(t, transcript)

	plb, err := recorder.NewPlayback(transcript)
	test.DemandSuccess(t, err)

	nes := newNES(t, 0x16)
	err = plb.AttachToNES(nes)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, recorder.PlaybackError))
}

func TestPlaybackHashMismatch(t *testing.T) {
	transcript := filepath.Join(t.TempDir(), "test.rec")
	record(t, transcript)

	// corrupt the video hash of the first event
	data, err := os.ReadFile(transcript)
	test.DemandSuccess(t, err)
	lines := strings.Split(string(data), "\n")
	fields := strings.Split(lines[4], ", ")
	fields[len(fields)-1] = "0000"
	lines[4] = strings.Join(fields, ", ")
	test.DemandSuccess(t, os.WriteFile(transcript, []byte(strings.Join(lines, "\n")), 0o644))

	plb, err := recorder.NewPlayback(transcript)
	test.DemandSuccess(t, err)

	nes := newNES(t, 0x21)
	test.DemandSuccess(t, plb.AttachToNES(nes))

	err = nes.RunForFrameCount(2, nil)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Has(err, recorder.PlaybackHashError))
}

func TestNotARecording(t *testing.T) {
	transcript := filepath.Join(t.TempDir(), "test.rec")
	test.DemandSuccess(t, os.WriteFile(transcript, []byte("hello\nworld\n"), 0o644))

	_, err := recorder.NewPlayback(transcript)
	test.ExpectFailure(t, err)
}
