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

// Package archivefs allows files inside zip archives to be treated in the same
// way as files in the normal file system. A path can pass through an archive
// as though the archive was a directory. For example:
//
//	roms/collection.zip/homebrew/game.nes
package archivefs

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ReadFile returns the contents of the named file. The filename can be inside
// an archive supported by archivefs.
//
// If the filename is the archive itself then the first file in the archive
// with one of the extensions is read. Comparison of extensions is case
// insensitive.
//
// The returned string is the full path of the file that was read.
func ReadFile(filename string, extensions ...string) ([]byte, string, error) {
	var afs Path
	err := afs.Set(filename)
	if err != nil {
		return nil, "", err
	}
	defer afs.Close()

	if afs.IsDir() {
		if !afs.InArchive() {
			return nil, "", fmt.Errorf("archivefs: %s is a directory", filename)
		}
		if err := afs.selectFile(extensions); err != nil {
			return nil, "", err
		}
	}

	r, _, err := afs.Open()
	if err != nil {
		return nil, "", fmt.Errorf("archivefs: %w", err)
	}
	if c, ok := r.(io.Closer); ok {
		defer c.Close()
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("archivefs: %w", err)
	}

	return data, afs.String(), nil
}

// Split the filename into the path of the archive and the path of the file
// inside the archive. If the filename does not pass through an archive then
// the archive string is empty and the file string is the filename.
//
// Only the filename is inspected. The file system is not accessed.
func Split(filename string) (archive string, file string) {
	lst := strings.Split(filepath.Clean(filename), string(filepath.Separator))
	for i, l := range lst[:len(lst)-1] {
		if IsArchiveExt(l) {
			archive = strings.Join(lst[:i+1], string(filepath.Separator))
			file = filepath.Join(lst[i+1:]...)
			return archive, file
		}
	}
	return "", filename
}
