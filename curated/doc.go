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

// Package curated is a helper package for the plain Go language error type.
//
// Curated errors are created with the Errorf() function, which takes a
// formatting pattern and placeholder values in the same way as fmt.Errorf().
// Unlike fmt.Errorf() the pattern is retained and becomes the identity of the
// error:
//
//	e := curated.Errorf("cartridge: unsupported mapper (%d)", 5)
//
//	if curated.Is(e, "cartridge: unsupported mapper (%d)") {
//		fmt.Println("true")
//	}
//
// Packages that return curated errors usually export the pattern as a constant
// so that callers don't need to repeat the string.
//
// The Has() function is similar to Is() but checks the entire chain of
// curated errors:
//
//	f := curated.Errorf("nes: %v", e)
//
//	if curated.Has(f, "cartridge: unsupported mapper (%d)") {
//		fmt.Println("true")
//	}
//
// The Error() implementation normalises the message by removing adjacent
// duplicate parts. This means that wrapping an error with a prefix that it
// already has does not result in a stuttering message. For example:
//
//	e := curated.Errorf("ppu: %v", curated.Errorf("ppu: bad dot"))
//	fmt.Println(e) // ppu: bad dot
package curated
