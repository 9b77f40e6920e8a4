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

package prefs_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/prefs"
	"github.com/jetsetilly/gophernes/test"
)

func cmpPrefsFile(t *testing.T, fn string, expected string) {
	t.Helper()

	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)

	expected = fmt.Sprintf("%s\n%s", prefs.WarningBoilerPlate, expected)
	test.ExpectEquality(t, string(data), expected)
}

func TestBool(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs")

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Bool
	var w prefs.Bool
	var x prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, dsk.Add("testB", &w))
	test.ExpectSuccess(t, dsk.Add("testC", &x))

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectSuccess(t, w.Set("foo"))
	test.ExpectSuccess(t, x.Set("TRUE"))
	test.ExpectFailure(t, x.Set(10))

	test.ExpectSuccess(t, dsk.Save())
	cmpPrefsFile(t, fn, "test :: true\ntestB :: false\ntestC :: true\n")
}

func TestIntAndFloat(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs")

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Int
	var f prefs.Float
	test.ExpectSuccess(t, dsk.Add("number", &v))
	test.ExpectSuccess(t, dsk.Add("float", &f))

	test.ExpectSuccess(t, v.Set(10))
	test.ExpectFailure(t, v.Set("ten"))
	test.ExpectEquality(t, v.Get().(int), 10)

	test.ExpectSuccess(t, f.Set("0.5"))
	test.ExpectEquality(t, f.Get().(float64), 0.5)

	test.ExpectSuccess(t, dsk.Save())
	cmpPrefsFile(t, fn, "float :: 0.500\nnumber :: 10\n")
}

func TestString(t *testing.T) {
	var s prefs.String
	test.ExpectSuccess(t, s.Set("hello world"))
	s.SetMaxLen(5)
	test.ExpectEquality(t, s.String(), "hello")
	test.ExpectSuccess(t, s.Set("goodbye"))
	test.ExpectEquality(t, s.String(), "goodb")
}

func TestHooks(t *testing.T) {
	var v prefs.Int

	var post int
	v.SetHookPost(func(value prefs.Value) error {
		post = value.(int)
		return nil
	})
	v.SetHookPre(func(value prefs.Value) error {
		if value.(int) < 0 {
			return fmt.Errorf("negative")
		}
		return nil
	})

	test.ExpectSuccess(t, v.Set(5))
	test.ExpectEquality(t, post, 5)

	// a failing pre-hook prevents the value being stored
	test.ExpectFailure(t, v.Set(-1))
	test.ExpectEquality(t, v.Get().(int), 5)
	test.ExpectEquality(t, post, 5)
}

func TestSharedFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs")

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var s prefs.String
	test.ExpectSuccess(t, dsk.Add("foo", &s))
	test.ExpectSuccess(t, s.Set("bar"))
	test.ExpectSuccess(t, dsk.Save())

	// a second disk using the same file does not remove the entries of the first
	dsk2, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var b prefs.Bool
	test.ExpectSuccess(t, dsk2.Add("test", &b))
	test.ExpectSuccess(t, b.Set(true))
	test.ExpectSuccess(t, dsk2.Save())
	cmpPrefsFile(t, fn, "foo :: bar\ntest :: true\n")

	// loading from the file
	var s2 prefs.String
	dsk3, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, dsk3.Add("foo", &s2))
	test.ExpectSuccess(t, dsk3.Load(false))
	test.ExpectEquality(t, s2.String(), "bar")
}

func TestLoadMissing(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs")

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var b prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &b))

	err = dsk.Load(false)
	test.ExpectSuccess(t, curated.Is(err, prefs.NoPrefsFile))

	// save on first use creates the file
	test.ExpectSuccess(t, dsk.Load(true))
	cmpPrefsFile(t, fn, "test :: false\n")
}

func TestIllegalKey(t *testing.T) {
	dsk, err := prefs.NewDisk(filepath.Join(t.TempDir(), "prefs"))
	test.DemandSuccess(t, err)
	var b prefs.Bool
	test.ExpectFailure(t, dsk.Add("bad key", &b))
	test.ExpectSuccess(t, dsk.Add("key", &b))
	test.ExpectFailure(t, dsk.Add("key", &b))
}

func TestCommandLineOverride(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs")

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var s prefs.String
	test.ExpectSuccess(t, dsk.Add("cpu.illegal", &s))
	test.ExpectSuccess(t, s.Set("all"))
	test.ExpectSuccess(t, dsk.Save())

	prefs.PushCommandLineStack("cpu.illegal::documented")
	test.ExpectSuccess(t, dsk.Load(false))
	test.ExpectEquality(t, s.String(), "documented")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
}
