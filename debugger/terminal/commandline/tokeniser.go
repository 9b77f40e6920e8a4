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

package commandline

import (
	"fmt"
	"strconv"
	"strings"
)

// Tokens represents tokenised input. Can be used to walk through the input
// string (using Get()) for easy interpretation.
type Tokens struct {
	input  string
	tokens []string
	curr   int

	// the position of each token in the input string
	offsets []int
}

func (tk *Tokens) String() string {
	return tk.input
}

// Reset begins the token traversal process from the beginning
func (tk *Tokens) Reset() {
	tk.curr = 0
}

// IsEnd returns true if we're at the end of the token list
func (tk Tokens) IsEnd() bool {
	return tk.curr >= len(tk.tokens)
}

// Remainder returns the remaining input as a string. The original spacing
// and notation of the remaining input is preserved, which is important for
// scripts.
func (tk Tokens) Remainder() string {
	if tk.IsEnd() {
		return ""
	}
	return tk.input[tk.offsets[tk.curr]:]
}

// Remaining returns the count of reminaing tokens in the token list
func (tk Tokens) Remaining() int {
	return len(tk.tokens) - tk.curr
}

// Get returns the next token in the list, and a success boolean - if the end
// of the token list has been reached, the function returns false instead of
// true.
func (tk *Tokens) Get() (string, bool) {
	if tk.curr >= len(tk.tokens) {
		return "", false
	}
	tk.curr++
	return tk.tokens[tk.curr-1], true
}

// Unget walks backwards in the token list.
func (tk *Tokens) Unget() {
	if tk.curr > 0 {
		tk.curr--
	}
}

// Peek returns the next token in the list (without advancing the list), and a
// success boolean - if the end of the token list has been reached, the
// function returns false instead of true.
func (tk Tokens) Peek() (string, bool) {
	if tk.curr >= len(tk.tokens) {
		return "", false
	}
	return tk.tokens[tk.curr], true
}

// GetNumber returns the next token as a number. Values can be given in
// decimal or hexadecimal. The bitSize argument limits the size of the number
// in the same way as strconv.ParseUint().
func (tk *Tokens) GetNumber(bitSize int) (uint64, error) {
	s, ok := tk.Get()
	if !ok {
		return 0, fmt.Errorf("missing value")
	}
	v, err := strconv.ParseUint(s, 0, bitSize)
	if err != nil {
		tk.Unget()
		return 0, fmt.Errorf("invalid value (%s)", s)
	}
	return v, nil
}

// TokeniseInput creates and returns a new Tokens instance
func TokeniseInput(input string) *Tokens {
	tk := new(Tokens)

	// remove leading/trailing space
	input = strings.TrimSpace(input)

	// divide user input into tokens. removes excess white space
	tk.tokens = strings.Fields(input)

	// the tokens are in the order they appear in the input so we can find
	// the position of each one by searching from the end of the previous one
	tk.offsets = make([]int, len(tk.tokens))
	offset := 0
	for i, t := range tk.tokens {
		offset += strings.Index(input[offset:], t)
		tk.offsets[i] = offset
		offset += len(t)
	}

	// take a note of the raw input
	tk.input = input

	// normalise variations in syntax
	for i := 0; i < len(tk.tokens); i++ {
		// normalise hex notation
		if tk.tokens[i][0] == '$' && len(tk.tokens[i]) > 1 {
			tk.tokens[i] = fmt.Sprintf("0x%s", tk.tokens[i][1:])
		}
	}

	return tk
}
