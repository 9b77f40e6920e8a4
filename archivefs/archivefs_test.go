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

package archivefs_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gophernes/archivefs"
	"github.com/jetsetilly/gophernes/test"
)

// create a zip file in the directory containing the named files. the content
// of each file is the name of the file
func createArchive(t *testing.T, dir string, name string, files ...string) string {
	t.Helper()

	fn := filepath.Join(dir, name)
	f, err := os.Create(fn)
	test.DemandSuccess(t, err)
	defer f.Close()

	z := zip.NewWriter(f)
	for _, n := range files {
		w, err := z.Create(n)
		test.DemandSuccess(t, err)
		_, err = w.Write([]byte(n))
		test.DemandSuccess(t, err)
	}
	test.DemandSuccess(t, z.Close())

	return fn
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "plain.nes")
	test.DemandSuccess(t, os.WriteFile(plain, []byte("plain"), 0o644))

	data, name, err := archivefs.ReadFile(plain)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(data), "plain")
	test.ExpectEquality(t, name, plain)

	arc := createArchive(t, dir, "roms.zip", "readme.txt", "zelda.nes", "games/mario.NES")

	data, name, err = archivefs.ReadFile(filepath.Join(arc, "games", "mario.NES"))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(data), "games/mario.NES")
	test.ExpectEquality(t, name, filepath.Join(arc, "games", "mario.NES"))

	// the archive itself. files are chosen in alphabetical order
	data, name, err = archivefs.ReadFile(arc, ".nes")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(data), "games/mario.NES")
	test.ExpectEquality(t, name, filepath.Join(arc, "games", "mario.NES"))

	// directory inside the archive
	data, _, err = archivefs.ReadFile(filepath.Join(arc, "games"), ".nes")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(data), "games/mario.NES")

	data, _, err = archivefs.ReadFile(arc, ".txt")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(data), "readme.txt")

	_, _, err = archivefs.ReadFile(arc, ".sav")
	test.ExpectFailure(t, err)

	// a normal directory can not be read
	_, _, err = archivefs.ReadFile(dir, ".nes")
	test.ExpectFailure(t, err)

	_, _, err = archivefs.ReadFile(filepath.Join(arc, "missing.nes"))
	test.ExpectFailure(t, err)
}

func TestSplit(t *testing.T) {
	a, f := archivefs.Split(filepath.Join("roms", "collection.zip", "games", "zelda.nes"))
	test.ExpectEquality(t, a, filepath.Join("roms", "collection.zip"))
	test.ExpectEquality(t, f, filepath.Join("games", "zelda.nes"))

	a, f = archivefs.Split(filepath.Join("roms", "zelda.nes"))
	test.ExpectEquality(t, a, "")
	test.ExpectEquality(t, f, filepath.Join("roms", "zelda.nes"))

	// the last element is never treated as an archive
	a, _ = archivefs.Split(filepath.Join("roms", "collection.zip"))
	test.ExpectEquality(t, a, "")
}

func TestExtensions(t *testing.T) {
	test.ExpectSuccess(t, archivefs.IsArchiveExt("roms.ZIP"))
	test.ExpectSuccess(t, archivefs.IsArchiveExt("roms.zip"))
	test.ExpectFailure(t, archivefs.IsArchiveExt("roms.nes"))
	test.ExpectEquality(t, archivefs.TrimArchiveExt("roms.zip"), "roms")
	test.ExpectEquality(t, archivefs.TrimArchiveExt("roms.nes"), "roms.nes")
}
