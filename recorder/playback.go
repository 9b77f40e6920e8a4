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

package recorder

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/digest"
	"github.com/jetsetilly/gophernes/hardware"
	"github.com/jetsetilly/gophernes/hardware/input"
	"github.com/jetsetilly/gophernes/hardware/television/coords"
)

// Error patterns for the playback process.
const (
	PlaybackError     = "playback: %v"
	PlaybackHashError = "playback: unexpected input at line %d (frame %d)"
)

type playbackEntry struct {
	event input.TimedEvent
	hash  string

	// the line in the recording file the playback event appears
	line int
}

// Playback is used to reperform the user input recorded in a previously
// recorded file. It implements the input.EventPlayback interface.
type Playback struct {
	transcript string

	CartName string
	CartHash string
	TVSpec   string

	sequence []playbackEntry
	seqCt    int

	nes    *hardware.NES
	digest *digest.Video

	// the last frame where an event occurs
	endFrame int
}

func (plb *Playback) String() string {
	if plb.nes == nil {
		return plb.transcript
	}
	currFrame := plb.nes.PPU.Frame
	return fmt.Sprintf("%d/%d (%.1f%%)", currFrame, plb.endFrame, 100*(float64(currFrame)/float64(max(1, plb.endFrame))))
}

// EndFrame returns true if emulation has gone past the last frame of the
// playback.
func (plb *Playback) EndFrame() bool {
	return plb.nes != nil && plb.nes.PPU.Frame > plb.endFrame
}

// NewPlayback is the preferred method of implementation for the Playback type.
func NewPlayback(transcript string) (*Playback, error) {
	plb := &Playback{
		transcript: transcript,
	}

	data, err := os.ReadFile(transcript)
	if err != nil {
		return nil, curated.Errorf(PlaybackError, err)
	}

	// convert file contents to an array of lines
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")

	hdr, err := readHeader(lines)
	if err != nil {
		return nil, err
	}
	plb.CartName = hdr.cartName
	plb.CartHash = hdr.cartHash
	plb.TVSpec = hdr.tvSpec

	for i := numHeaderLines; i < len(lines); i++ {
		entry, err := parseEntry(lines[i])
		if err != nil {
			return nil, curated.Errorf(PlaybackError, fmt.Sprintf("line %d: %v", i+1, err))
		}
		entry.line = i + 1

		// assuming that frames are listed in order in the file. update
		// endFrame with the most recent frame every time
		plb.endFrame = entry.event.Time.Frame

		plb.sequence = append(plb.sequence, entry)
	}

	return plb, nil
}

func parseEntry(line string) (playbackEntry, error) {
	var entry playbackEntry

	toks := strings.Split(line, fieldSep)
	if len(toks) != numFields {
		return entry, fmt.Errorf("expected %d fields", numFields)
	}

	port, err := strconv.Atoi(toks[fieldPort])
	if err != nil {
		return entry, err
	}
	entry.event.Port = input.PortID(port)

	var ok bool
	entry.event.Button, ok = input.ParseButton(toks[fieldButton])
	if !ok {
		return entry, fmt.Errorf("unrecognised button (%s)", toks[fieldButton])
	}

	entry.event.Pressed, err = strconv.ParseBool(toks[fieldPressed])
	if err != nil {
		return entry, err
	}

	entry.event.Time.Frame, err = strconv.Atoi(toks[fieldFrame])
	if err != nil {
		return entry, err
	}
	entry.event.Time.Scanline, err = strconv.Atoi(toks[fieldScanline])
	if err != nil {
		return entry, err
	}
	entry.event.Time.Dot, err = strconv.Atoi(toks[fieldDot])
	if err != nil {
		return entry, err
	}

	entry.hash = toks[fieldHash]

	return entry, nil
}

// AttachToNES attaches the playback instance to the NES input system. The
// cartridge and television specification must match the recording. The NES
// should have been reset immediately before the call.
func (plb *Playback) AttachToNES(nes *hardware.NES) error {
	if nes == nil || nes.TV == nil {
		return curated.Errorf(PlaybackError, "no playback hardware available")
	}

	if nes.Mem.Cart.Hash != plb.CartHash {
		return curated.Errorf(PlaybackError, "recording was made with a different cartridge")
	}

	// keep it simple and disallow any difference in tv specification
	if nes.TV.GetSpec().ID != plb.TVSpec {
		return curated.Errorf(PlaybackError, fmt.Sprintf("recording was made with the %s TV spec. trying to playback with a TV spec of %s",
			plb.TVSpec, nes.TV.GetSpec().ID))
	}

	plb.nes = nes
	plb.digest = digest.NewVideo(nes.TV)

	if err := nes.Input.AttachPlayback(plb); err != nil {
		return curated.Errorf(PlaybackError, err)
	}

	return nil
}

// GetPlayback implements the input.EventPlayback interface. It returns an
// event occurring at the current television coordinates. An event with the
// NoPort value is returned if there is no event.
func (plb *Playback) GetPlayback() (input.TimedEvent, error) {
	none := input.TimedEvent{Event: input.Event{Port: input.NoPort}}

	// we've reached the end of the list of events
	if plb.seqCt >= len(plb.sequence) {
		return none, nil
	}

	curr := plb.nes.GetCoords()

	entry := plb.sequence[plb.seqCt]
	if coords.Equal(entry.event.Time, curr) {
		plb.seqCt++
		if entry.hash != plb.digest.Hash() {
			return none, curated.Errorf(PlaybackHashError, entry.line, curr.Frame)
		}
		return entry.event, nil
	}

	return none, nil
}

// Remaining returns the number of events that have not yet been played.
func (plb *Playback) Remaining() int {
	return len(plb.sequence) - plb.seqCt
}
