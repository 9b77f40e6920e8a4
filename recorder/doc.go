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

// Package recorder handles the recording and playback of user input. The
// Recorder type implements the input.EventRecorder interface and the Playback
// type implements the input.EventPlayback interface.
//
// Recordings are plain text files. The first lines are the header, which
// identifies the cartridge and the television specification. Each line after
// the header is an input event, the time at which it happened and a digest of
// the video output at that time. The digest allows playback to detect when the
// emulation has diverged from the recording.
package recorder
