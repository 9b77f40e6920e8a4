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

package test

import (
	"fmt"
	"math"
	"testing"
)

// id returns a prefix string for test failure messages
func id(tags ...any) string {
	if len(tags) == 0 {
		return ""
	}
	s := fmt.Sprint(tags...)
	return fmt.Sprintf("%s: ", s)
}

// expect returns true if v is a 'success' value for its type. a nil value is
// always a success
func expect(t *testing.T, v any, tags ...any) bool {
	t.Helper()

	switch v := v.(type) {
	case nil:
		return true
	case bool:
		return v
	case error:
		return v == nil
	default:
		t.Fatalf("%sunsupported type (%T) for expectation testing", id(tags...), v)
	}

	return false
}

// ExpectSuccess tests argument v for a success condition suitable for its
// type. Currently supported types:
//
//	bool -> bool == true
//	error -> error == nil
//
// A nil value is considered a success.
func ExpectSuccess(t *testing.T, v any, tags ...any) bool {
	t.Helper()
	if !expect(t, v, tags...) {
		if err, ok := v.(error); ok {
			t.Errorf("%sexpected success (%v)", id(tags...), err)
		} else {
			t.Errorf("%sexpected success (%T)", id(tags...), v)
		}
		return false
	}
	return true
}

// ExpectFailure tests argument v for a failure condition suitable for its
// type. Currently supported types:
//
//	bool -> bool == false
//	error -> error != nil
//
// A nil value is considered a success and so will cause the test to fail.
func ExpectFailure(t *testing.T, v any, tags ...any) bool {
	t.Helper()
	if expect(t, v, tags...) {
		t.Errorf("%sexpected failure (%T)", id(tags...), v)
		return false
	}
	return true
}

// ExpectEquality is used to test equality between one value and another.
func ExpectEquality[T comparable](t *testing.T, v T, expectedValue T, tags ...any) bool {
	t.Helper()
	if v != expectedValue {
		t.Errorf("%sequality test of type %T failed: '%v' does not equal '%v'", id(tags...), v, v, expectedValue)
		return false
	}
	return true
}

// ExpectInequality is used to test inequality between one value and another.
// In other words, the test does not want the values to be equal.
func ExpectInequality[T comparable](t *testing.T, v T, expectedValue T, tags ...any) bool {
	t.Helper()
	if v == expectedValue {
		t.Errorf("%sinequality test of type %T failed: '%v' does equal '%v'", id(tags...), v, v, expectedValue)
		return false
	}
	return true
}

// ExpectApproximate is used to test approximate equality between one value
// and another. Tolerance is expressed as a fraction of the expected value.
func ExpectApproximate[T ~float32 | ~float64 | ~int](t *testing.T, v T, expectedValue T, tolerance float64, tags ...any) bool {
	t.Helper()
	d := math.Abs(float64(v) - float64(expectedValue))
	if d > math.Abs(float64(expectedValue)*tolerance) {
		t.Errorf("%sapproximation test of type %T failed: '%v' is not within %.2f of '%v'", id(tags...), v, v, tolerance, expectedValue)
		return false
	}
	return true
}
