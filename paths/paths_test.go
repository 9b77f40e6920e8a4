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

package paths_test

import (
	"os"
	"strings"
	"testing"

	"github.com/jetsetilly/gophernes/paths"
	"github.com/jetsetilly/gophernes/test"
)

func TestPaths(t *testing.T) {
	// ResourcePath() creates directories relative to the working directory so
	// we move to a temporary directory for the duration of the test
	t.Chdir(t.TempDir())

	pth, err := paths.ResourcePath("foo/bar", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".gophernes/foo/bar/baz")

	pth, err = paths.ResourcePath("foo/bar", "")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".gophernes/foo/bar")

	_, err = os.Stat(pth)
	test.ExpectSuccess(t, err)

	pth, err = paths.ResourcePath("", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".gophernes/baz")

	pth, err = paths.ResourcePath("", "")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".gophernes")
}

func TestUniqueFilename(t *testing.T) {
	fn := paths.UniqueFilename("snapshot", "smb")
	test.ExpectSuccess(t, strings.HasPrefix(fn, "snapshot_smb_"))

	fn = paths.UniqueFilename("snapshot", "  ")
	test.ExpectSuccess(t, strings.HasPrefix(fn, "snapshot_"))
	test.ExpectEquality(t, len(fn), len("snapshot_20060102_150405"))
}
