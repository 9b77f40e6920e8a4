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

//go:build !statsview

package statsview

import (
	"fmt"
	"io"
)

// Launch does nothing except write a message to output when the statsview
// build constraint is not present.
func Launch(output io.Writer) {
	fmt.Fprintf(output, "stats server not available in this build\n")
}

// Available returns true if the statsview server can be launched.
func Available() bool {
	return false
}
