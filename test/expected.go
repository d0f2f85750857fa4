// This file is part of palmcore.
//
// palmcore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// palmcore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with palmcore.  If not, see <https://www.gnu.org/licenses/>.

// Package test contains small test assertion helpers shared by every
// package's test suite. It exists so that device tests read the same way
// regardless of which package they live in, and so that none of them need
// to reach for an external assertion library.
package test

import (
	"math"
	"testing"
)

// truthy reports whether v should be considered a success value. A bool is
// taken at face value; an error is a success when nil; anything else is
// always considered a success (the caller is expected to have already
// reduced the value to something meaningful).
func truthy(v interface{}) bool {
	switch x := v.(type) {
	case bool:
		return x
	case error:
		return x == nil
	case nil:
		return true
	default:
		return true
	}
}

// ExpectSuccess fails the test unless v represents success: a true bool, a
// nil error, or a nil interface.
func ExpectSuccess(t *testing.T, v interface{}) {
	t.Helper()
	if !truthy(v) {
		t.Errorf("expected success but got: %v", v)
	}
}

// ExpectFailure fails the test unless v represents failure: a false bool or
// a non-nil error.
func ExpectFailure(t *testing.T, v interface{}) {
	t.Helper()
	if truthy(v) {
		t.Errorf("expected failure but got: %v", v)
	}
}

// ExpectEquality fails the test unless expected and actual compare equal.
func ExpectEquality(t *testing.T, expected interface{}, actual interface{}) {
	t.Helper()
	if expected != actual {
		t.Errorf("expected %v but got %v", expected, actual)
	}
}

// ExpectInequality fails the test if expected and actual compare equal.
func ExpectInequality(t *testing.T, expected interface{}, actual interface{}) {
	t.Helper()
	if expected == actual {
		t.Errorf("expected %v to differ from %v", expected, actual)
	}
}

// ExpectApproximate fails the test unless actual is within tolerance of
// expected.
func ExpectApproximate(t *testing.T, expected float64, actual float64, tolerance float64) {
	t.Helper()
	if math.Abs(expected-actual) > tolerance {
		t.Errorf("expected %v to be within %v of %v", actual, tolerance, expected)
	}
}
