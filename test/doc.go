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

// Package test bundles a bunch of useful functions useful for testing
// purposes, particularly in conjunction with the standard go test harness.
//
// The Expect*() functions report a failure but allow the test to continue.
// The Demand*() functions are fatal to the test. Use the Demand*() functions
// when later parts of the test depend on the value being correct.
//
// The CompareWriter type is an implementation of io.Writer and is used to
// capture output for comparison.
package test
