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

package logger_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/gophernes/logger"
	"github.com/jetsetilly/gophernes/test"
)

type deny struct{}

func (deny) AllowLogging() bool {
	return false
}

func TestLogger(t *testing.T) {
	tw := &test.CompareWriter{}
	log := logger.NewLogger(10)

	test.ExpectFailure(t, log.Write(tw))
	test.ExpectSuccess(t, tw.Compare(""))

	log.Log(logger.Allow, "test", "this is a test")
	log.Write(tw)
	test.ExpectSuccess(t, tw.Compare("test: this is a test\n"))

	// clear the test.CompareWriter buffer before continuing, makes comparisons
	// easier to manage
	tw.Clear()

	log.Log(logger.Allow, "test2", "this is another test")
	log.Write(tw)
	test.ExpectEquality(t, tw.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for too many entries in a Tail() should be okay
	tw.Clear()
	log.Tail(tw, 100)
	test.ExpectEquality(t, tw.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for exactly the correct number of entries is okay
	tw.Clear()
	log.Tail(tw, 2)
	test.ExpectEquality(t, tw.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for fewer entries is okay too
	tw.Clear()
	log.Tail(tw, 1)
	test.ExpectEquality(t, tw.String(), "test2: this is another test\n")

	// and no entries
	tw.Clear()
	log.Tail(tw, 0)
	test.ExpectEquality(t, tw.String(), "")
}

func TestRepeats(t *testing.T) {
	tw := &test.CompareWriter{}
	log := logger.NewLogger(10)

	log.Log(logger.Allow, "ppu", "odd frame")
	log.Log(logger.Allow, "ppu", "odd frame")
	log.Logf(logger.Allow, "ppu", "odd %s", "frame")
	log.Write(tw)
	test.ExpectEquality(t, tw.String(), "ppu: odd frame (repeat x3)\n")
}

func TestDetailTypes(t *testing.T) {
	tw := &test.CompareWriter{}
	log := logger.NewLogger(10)

	log.Log(logger.Allow, "err", errors.New("an error"))
	log.Log(logger.Allow, "int", 100)
	log.Log(deny{}, "denied", "should not appear")
	log.Write(tw)
	test.ExpectEquality(t, tw.String(), "err: an error\nint: 100\n")
}

func TestMaxEntries(t *testing.T) {
	tw := &test.CompareWriter{}
	log := logger.NewLogger(2)

	log.Log(logger.Allow, "a", "1")
	log.Log(logger.Allow, "b", "2")
	log.Log(logger.Allow, "c", "3")
	log.Write(tw)
	test.ExpectEquality(t, tw.String(), "b: 2\nc: 3\n")
}

func TestWriteRecent(t *testing.T) {
	tw := &test.CompareWriter{}
	log := logger.NewLogger(10)

	log.Log(logger.Allow, "a", "1")
	log.WriteRecent(tw)
	test.ExpectEquality(t, tw.String(), "a: 1\n")

	tw.Clear()
	log.Log(logger.Allow, "b", "2")
	log.WriteRecent(tw)
	test.ExpectEquality(t, tw.String(), "b: 2\n")

	tw.Clear()
	log.WriteRecent(tw)
	test.ExpectEquality(t, tw.String(), "")
}

func TestEcho(t *testing.T) {
	tw := &test.CompareWriter{}
	log := logger.NewLogger(10)

	log.Log(logger.Allow, "a", "1")
	log.SetEcho(tw, true)
	test.ExpectEquality(t, tw.String(), "a: 1\n")

	log.Log(logger.Allow, "b", "2")
	test.ExpectEquality(t, tw.String(), "a: 1\nb: 2\n")

	log.SetEcho(nil, false)
	log.Log(logger.Allow, "c", "3")
	test.ExpectEquality(t, tw.String(), "a: 1\nb: 2\n")
}
