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

// Package hostaudio plays the audio of the emulation through the audio
// device of the host computer. The package implements the
// television.AudioMixer interface.
//
// Audio is played on a goroutine owned by the audio library. Sample buffers
// are passed from the emulation to the player through a television.Handoff.
// The player never waits for the emulation. If no samples are available then
// silence is played.
//
// The player is only available when the headless build constraint is not
// present.
package hostaudio
