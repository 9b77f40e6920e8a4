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

package version

import (
	"fmt"
	"runtime/debug"
)

// The name to use when referring to the application
const ApplicationName = "Gophernes"

// if number is empty then the project was not built with a version number
// supplied by the linker. for example:
//
//	go build -ldflags "-X github.com/jetsetilly/gophernes/version.number=v0.1.0"
var number string

// Build describes how the executable was built
type Build struct {
	// the version number. "unreleased" if the project has been built without
	// a version number but with vcs information. "local" if there is neither,
	// which will happen with "go run ."
	Version string

	// the vcs revision. suffixed with "+dirty" if the source had been
	// modified but not committed
	Revision string

	// the version of the Go toolchain
	GoVersion string

	// true if the version is a numbered release. if release is true then the
	// revision information should be used sparingly
	Release bool
}

func (b Build) String() string {
	if b.Release {
		return fmt.Sprintf("%s %s", ApplicationName, b.Version)
	}
	return fmt.Sprintf("%s %s (%s)", ApplicationName, b.Version, b.Revision)
}

var build Build

// Current returns the Build information for the running executable
func Current() Build {
	return build
}

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		info = nil
	}
	build = fromBuildInfo(number, info)
}

// fromBuildInfo is separated from init() so that it can be tested. the info
// argument can be nil
func fromBuildInfo(number string, info *debug.BuildInfo) Build {
	var b Build
	var vcs bool
	var modified bool

	if info != nil {
		b.GoVersion = info.GoVersion
		for _, v := range info.Settings {
			switch v.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				b.Revision = v.Value
			case "vcs.modified":
				modified = v.Value == "true"
			}
		}
	}

	if b.Revision == "" {
		b.Revision = "no revision information"
	} else if modified {
		b.Revision = fmt.Sprintf("%s+dirty", b.Revision)
	}

	switch {
	case number != "":
		b.Version = number
		b.Release = true
	case vcs:
		b.Version = "unreleased"
	default:
		b.Version = "local"
	}

	return b
}
