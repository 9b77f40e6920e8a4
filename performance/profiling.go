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

package performance

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"strings"
)

// Profile is used to specify the type of profiling to perform by RunProfiler().
type Profile int

// List of valid Profile values. The values are bit flags and can be combined.
const (
	ProfileNone  Profile = 0b0000
	ProfileCPU   Profile = 0b0001
	ProfileMem   Profile = 0b0010
	ProfileTrace Profile = 0b0100
	ProfileAll   Profile = ProfileCPU | ProfileMem | ProfileTrace
)

// ParseProfileString converts a string to a Profile value. The string is a
// comma separated list of profile types. Valid types are NONE, CPU, MEM, TRACE
// and ALL.
func ParseProfileString(profile string) (Profile, error) {
	p := ProfileNone

	if profile == "" {
		return p, nil
	}

	for _, s := range strings.Split(profile, ",") {
		switch strings.ToUpper(strings.TrimSpace(s)) {
		case "NONE":
		case "CPU":
			p |= ProfileCPU
		case "MEM":
			p |= ProfileMem
		case "TRACE":
			p |= ProfileTrace
		case "ALL":
			p = ProfileAll
		default:
			return ProfileNone, fmt.Errorf("profile: unknown profile type (%s)", s)
		}
	}

	return p, nil
}

// RunProfiler runs the supplied function "through" the requested Profile types.
// Profile files are prefixed with the filenameHeader argument.
func RunProfiler(profile Profile, filenameHeader string, run func() error) (rerr error) {
	if profile&ProfileCPU == ProfileCPU {
		f, err := os.Create(fmt.Sprintf("%s_cpu.profile", filenameHeader))
		if err != nil {
			return fmt.Errorf("profile: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil && rerr == nil {
				rerr = fmt.Errorf("profile: %w", err)
			}
		}()

		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	if profile&ProfileTrace == ProfileTrace {
		f, err := os.Create(fmt.Sprintf("%s_trace.profile", filenameHeader))
		if err != nil {
			return fmt.Errorf("profile: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil && rerr == nil {
				rerr = fmt.Errorf("profile: %w", err)
			}
		}()

		if err := trace.Start(f); err != nil {
			return fmt.Errorf("profile: %w", err)
		}
		defer trace.Stop()
	}

	if err := run(); err != nil {
		return err
	}

	if profile&ProfileMem == ProfileMem {
		f, err := os.Create(fmt.Sprintf("%s_mem.profile", filenameHeader))
		if err != nil {
			return fmt.Errorf("profile: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil && rerr == nil {
				rerr = fmt.Errorf("profile: %w", err)
			}
		}()

		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return fmt.Errorf("profile: %w", err)
		}
	}

	return nil
}
