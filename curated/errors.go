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

package curated

import (
	"fmt"
	"strings"
)

// curated is an implementation of the go language error interface. the
// pattern is kept separate from the values so that it can be used as the
// identity of the error.
type curated struct {
	pattern string
	values  []any
}

// Errorf creates a new curated error.
//
// The first argument is named pattern rather than format because it is the
// pattern string that is used by the Is() and Has() functions to identify the
// error.
func Errorf(pattern string, values ...any) error {
	return curated{
		pattern: pattern,
		values:  values,
	}
}

// Error returns the normalised error message. Adjacent duplicate parts of the
// message chain are removed.
func (er curated) Error() string {
	s := fmt.Sprintf(er.pattern, er.values...)

	p := strings.Split(s, ": ")
	n := make([]string, 0, len(p))
	for i := range p {
		if i > 0 && p[i] == p[i-1] {
			continue
		}
		n = append(n, p[i])
	}

	return strings.Join(n, ": ")
}

// Unwrap returns the first error found in the values of the curated error.
// This allows curated errors to work with the errors package in the standard
// library.
func (er curated) Unwrap() error {
	for _, v := range er.values {
		if e, ok := v.(error); ok {
			return e
		}
	}
	return nil
}

// IsAny checks if the error is a curated error.
func IsAny(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(curated)
	return ok
}

// Is checks if error is a curated error with a specific pattern.
func Is(err error, pattern string) bool {
	if err == nil {
		return false
	}
	if er, ok := err.(curated); ok {
		return er.pattern == pattern
	}
	return false
}

// Has checks if error is a curated error with a specific pattern somewhere
// in the chain.
func Has(err error, pattern string) bool {
	er, ok := err.(curated)
	if !ok {
		return false
	}

	if er.pattern == pattern {
		return true
	}

	for _, v := range er.values {
		if e, ok := v.(curated); ok {
			if Has(e, pattern) {
				return true
			}
		}
	}

	return false
}
