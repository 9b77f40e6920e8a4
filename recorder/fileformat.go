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
	"io"
	"strings"

	"github.com/jetsetilly/gophernes/curated"
)

const magicString = "gophernes recording"

// recording file header format
// ----------------------------
//
// gophernes recording
// <cartridge name>
// <cartridge hash>
// <tv type>

const (
	lineMagicString int = iota
	lineCartName
	lineCartHash
	lineTVSpec
	numHeaderLines
)

// recording file event format
// ---------------------------
//
// <port>, <button>, <pressed>, <frame>, <scanline>, <dot>, <hash>

const (
	fieldPort int = iota
	fieldButton
	fieldPressed
	fieldFrame
	fieldScanline
	fieldDot
	fieldHash
	numFields
)

const fieldSep = ", "

type header struct {
	cartName string
	cartHash string
	tvSpec   string
}

func writeHeader(output io.Writer, hdr header) error {
	lines := make([]string, numHeaderLines)
	lines[lineMagicString] = magicString
	lines[lineCartName] = hdr.cartName
	lines[lineCartHash] = hdr.cartHash
	lines[lineTVSpec] = hdr.tvSpec

	_, err := fmt.Fprintln(output, strings.Join(lines, "\n"))
	if err != nil {
		return curated.Errorf(RecordingError, err)
	}
	return nil
}

func readHeader(lines []string) (header, error) {
	if len(lines) < numHeaderLines {
		return header{}, curated.Errorf(PlaybackError, "file is too short")
	}
	if lines[lineMagicString] != magicString {
		return header{}, curated.Errorf(PlaybackError, "not a recording file")
	}
	return header{
		cartName: lines[lineCartName],
		cartHash: lines[lineCartHash],
		tvSpec:   lines[lineTVSpec],
	}, nil
}
