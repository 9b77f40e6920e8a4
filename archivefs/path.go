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

package archivefs

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Path represents a single destination in the file system
type Path struct {
	current string
	isDir   bool

	zf *zip.ReadCloser

	// if the path is inside a zip file, we split the in-zip path into the path
	// to a file and the file itself
	inZipPath string
	inZipFile string
}

// String returns the current path
func (afs Path) String() string {
	return afs.current
}

// Base returns the last element of the current path
func (afs Path) Base() string {
	return filepath.Base(afs.current)
}

// IsDir returns true if Path is currently set to a directory. For the purposes
// of archivefs, the root of an archive is treated as a directory
func (afs Path) IsDir() bool {
	return afs.isDir
}

// InArchive returns true if path is currently inside an archive
func (afs Path) InArchive() bool {
	return afs.zf != nil
}

// Open and return an io.ReadSeeker for the filename previously set by the Set()
// function. If the file is not inside an archive then the io.ReadSeeker is an
// *os.File and should be closed by the caller.
//
// Returns the io.ReadSeeker, the size of the data behind the ReadSeeker and any
// errors.
func (afs Path) Open() (io.ReadSeeker, int, error) {
	if afs.isDir {
		return nil, 0, fmt.Errorf("%s is a directory", afs.current)
	}

	if afs.zf != nil {
		f, err := afs.zf.Open(filepath.ToSlash(filepath.Join(afs.inZipPath, afs.inZipFile)))
		if err != nil {
			return nil, 0, err
		}
		defer f.Close()

		b, err := io.ReadAll(f)
		if err != nil {
			return nil, 0, err
		}

		return bytes.NewReader(b), len(b), nil
	}

	f, err := os.Open(afs.current)
	if err != nil {
		return nil, 0, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}

	return f, int(info.Size()), nil
}

// Close any open zip files and reset path
func (afs *Path) Close() {
	afs.current = ""
	afs.isDir = false
	afs.inZipPath = ""
	afs.inZipFile = ""
	if afs.zf != nil {
		afs.zf.Close()
		afs.zf = nil
	}
}

// Set the path. The path can pass through a zip archive as though it was a
// directory
func (afs *Path) Set(path string) error {
	afs.Close()

	// clean path and split into parts
	path = filepath.Clean(path)
	lst := strings.Split(path, string(filepath.Separator))

	// strings.Split will remove a leading filepath.Separator. we need to add
	// one back so that filepath.Join() works as expected
	if lst[0] == "" {
		lst[0] = string(filepath.Separator)
	}

	// reuse path string
	path = ""

	for _, l := range lst {
		path = filepath.Join(path, l)

		if afs.zf != nil {
			p := filepath.Join(afs.inZipPath, l)

			zf, err := afs.zf.Open(filepath.ToSlash(p))
			if err != nil {
				return fmt.Errorf("archivefs: set: %v", err)
			}

			zfi, err := zf.Stat()
			zf.Close()
			if err != nil {
				return fmt.Errorf("archivefs: set: %v", err)
			}

			afs.isDir = zfi.IsDir()
			if afs.isDir {
				afs.inZipPath = p
				afs.inZipFile = ""
			} else {
				afs.inZipFile = l
			}

		} else {
			fi, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("archivefs: set: %v", err)
			}

			afs.isDir = fi.IsDir()
			if afs.isDir {
				continue
			}

			afs.zf, err = zip.OpenReader(path)
			if err == nil {
				// the root of an archive file is considered to be a directory
				afs.isDir = true
				continue
			}

			if !errors.Is(err, zip.ErrFormat) {
				return fmt.Errorf("archivefs: set: %v", err)
			}
		}
	}

	// make sure path is clean
	afs.current = filepath.Clean(path)

	return nil
}

// selectFile changes the path from a directory inside an archive to the first
// file in that directory, or any subdirectory, with one of the extensions.
// files are considered in alphabetical order
func (afs *Path) selectFile(extensions []string) error {
	var candidates []string

	for _, f := range afs.zf.File {
		if f.FileInfo().IsDir() {
			continue
		}

		name := filepath.Clean(filepath.FromSlash(f.Name))
		if afs.inZipPath != "" && !strings.HasPrefix(name, afs.inZipPath+string(filepath.Separator)) {
			continue
		}

		if len(extensions) == 0 {
			candidates = append(candidates, name)
			continue
		}

		ext := strings.ToUpper(filepath.Ext(name))
		for _, e := range extensions {
			if ext == strings.ToUpper(e) {
				candidates = append(candidates, name)
				break
			}
		}
	}

	if len(candidates) == 0 {
		return fmt.Errorf("archivefs: no suitable file in %s", afs.current)
	}

	sort.Slice(candidates, func(i int, j int) bool {
		return strings.ToLower(candidates[i]) < strings.ToLower(candidates[j])
	})

	// the current path is the archive (or a directory in the archive) so the
	// path to the selected file is made relative to that
	rel := strings.TrimPrefix(candidates[0], afs.inZipPath)
	rel = strings.TrimPrefix(rel, string(filepath.Separator))

	afs.current = filepath.Join(afs.current, rel)
	afs.inZipPath = filepath.Dir(candidates[0])
	if afs.inZipPath == "." {
		afs.inZipPath = ""
	}
	afs.inZipFile = filepath.Base(candidates[0])
	afs.isDir = false

	return nil
}
