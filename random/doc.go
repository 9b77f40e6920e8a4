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

// Package random should be used in preference to the math/rand package when a
// random number is required inside the emulation.
//
// Random numbers generated by the Rewindable() function are seeded by the
// current television coordinates. The same coordinates always produce the same
// number for a given Random instance. This means that restoring a snapshot and
// running the emulation forward again gives the same results.
//
// The NoRewind() function produces a number that does not depend on the
// television coordinates.
package random
