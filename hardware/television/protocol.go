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

package television

// FrameRenderer implementations display, or otherwise work with, the frames
// produced by the PPU. For example digest.Video.
type FrameRenderer interface {
	// NewFrame is called once per frame when the PPU has completed the visible
	// part of the picture. The Frame instance is owned by the television and
	// its contents will change on the next call to NewFrame(). Renderers that
	// work with the frame on another goroutine must make a copy.
	NewFrame(*Frame) error

	// some renderers may need to conclude and/or dispose of resources gently.
	// for simplicity, the FrameRenderer should be considered unusable after
	// EndRendering() has been called
	EndRendering() error
}

// AudioMixer implementations work with sound; most probably playing it. An
// example of an AudioMixer that does not play sound but otherwise works with
// it is the digest.Audio type.
type AudioMixer interface {
	// SetAudio is called when the television's audio buffer has reached its
	// threshold. Samples are in the range 0.0 to 1.0. The slice is owned by the
	// television and will be reused after SetAudio() returns.
	SetAudio(samples []float32) error

	// some mixers may need to conclude and/or dispose of resources gently.
	// for simplicity, the AudioMixer should be considered unusable after
	// EndMixing() has been called
	EndMixing() error
}
