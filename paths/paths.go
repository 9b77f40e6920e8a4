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

package paths

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ResourcePath returns the path to the named file in the sub-path of the
// base resource directory. Directories in the path are created as required.
//
// Either argument can be empty. If the file argument is empty the returned
// path is the path of the directory.
func ResourcePath(subPth string, file string) (string, error) {
	base, err := getBasePath(subPth)
	if err != nil {
		return "", fmt.Errorf("paths: %w", err)
	}
	return filepath.Join(base, file), nil
}

// UniqueFilename creates a filename that (assuming a functioning clock) should
// not collide with any existing file. Note that the function does not test for
// this.
//
// Format of returned string is:
//
//	prepend_cartname_YYYYMMDD_HHMMSS
//
// If there is no cartridge name the returned string will be of the format:
//
//	prepend_YYYYMMDD_HHMMSS
func UniqueFilename(prepend string, cartName string) string {
	timestamp := time.Now().Format("20060102_150405")

	c := strings.TrimSpace(cartName)
	if len(c) > 0 {
		return fmt.Sprintf("%s_%s_%s", prepend, c, timestamp)
	}
	return fmt.Sprintf("%s_%s", prepend, timestamp)
}
