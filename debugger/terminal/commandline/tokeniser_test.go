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

package commandline_test

import (
	"testing"

	"github.com/jetsetilly/gophernes/debugger/terminal/commandline"
	"github.com/jetsetilly/gophernes/test"
)

func TestTokeniser(t *testing.T) {
	tk := commandline.TokeniseInput("  peek   $c000 16 ")
	test.ExpectEquality(t, tk.Remaining(), 3)
	test.ExpectEquality(t, tk.String(), "peek   $c000 16")

	s, ok := tk.Get()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, s, "peek")

	s, ok = tk.Peek()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, s, "0xc000")
	test.ExpectEquality(t, tk.Remainder(), "$c000 16")

	v, err := tk.GetNumber(16)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint64(0xc000))

	v, err = tk.GetNumber(16)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint64(16))
	test.ExpectSuccess(t, tk.IsEnd())

	_, err = tk.GetNumber(16)
	test.ExpectFailure(t, err)

	tk.Reset()
	test.ExpectEquality(t, tk.Remaining(), 3)
}

func TestTokeniserBadNumber(t *testing.T) {
	tk := commandline.TokeniseInput("poke 0x10000 1")
	tk.Get()

	// the token is not consumed if it is not a valid number
	_, err := tk.GetNumber(16)
	test.ExpectFailure(t, err)
	s, _ := tk.Peek()
	test.ExpectEquality(t, s, "0x10000")
}

func TestTokeniserRemainder(t *testing.T) {
	tk := commandline.TokeniseInput("break lua   peek(0x10) == 2 and a() > 0")
	tk.Get()
	tk.Get()
	test.ExpectEquality(t, tk.Remainder(), "peek(0x10) == 2 and a() > 0")
}
