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

package preferences

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/paths"
	"github.com/jetsetilly/gophernes/prefs"
)

// DefaultPrefsFile is the name of the file in the resource directory in which
// the hardware preferences are stored.
const DefaultPrefsFile = "preferences"

// List of accepted values for the IllegalOpcodes preference.
const (
	IllegalAll        = "ALL"
	IllegalStable     = "STABLE"
	IllegalDocumented = "DOCUMENTED"
)

// List of accepted values for the Region preference.
const (
	RegionAuto  = "AUTO"
	RegionNTSC  = "NTSC"
	RegionPAL   = "PAL"
	RegionDendy = "DENDY"
)

// List of accepted values for the SinkPolicy preference.
const (
	SinkBlock = "BLOCK"
	SinkDrop  = "DROP"
)

// Preferences defines and collates all the preference values used by the
// hardware.
type Preferences struct {
	dsk *prefs.Disk

	// initialise internal RAM to an unknown state on power-on
	RandomState prefs.Bool

	// how the CPU treats undocumented opcodes
	IllegalOpcodes prefs.String

	// the console region. AUTO selects the region from the cartridge header
	Region prefs.String

	// the number of CPU cycles between audio samples
	AudioDecimation prefs.Int

	// what happens when a sink cannot keep up with the emulation and the
	// amount of time to wait before giving up when the policy is BLOCK
	SinkPolicy  prefs.String
	SinkTimeout prefs.Int // milliseconds

	// random values generated in the hardware package should use the following
	// number source
	RandSrc *rand.Rand

	// the number used to seed RandSrc
	RandSeed uint64
}

func (p *Preferences) String() string {
	return fmt.Sprintf("randstate=%v illegal=%s region=%s decimation=%d sink=%s/%dms",
		p.RandomState.Get(), p.IllegalOpcodes.String(), p.Region.String(),
		p.AudioDecimation.Get(), p.SinkPolicy.String(), p.SinkTimeout.Get())
}

// oneOf returns a hook that fails if the value is not in the list of
// options. values are normalised to upper case.
func oneOf(options ...string) func(prefs.Value) error {
	return func(v prefs.Value) error {
		s := strings.ToUpper(v.(string))
		for _, o := range options {
			if s == o {
				return nil
			}
		}
		return fmt.Errorf("preferences: %q is not one of %s", s, strings.Join(options, ", "))
	}
}

func positive(v prefs.Value) error {
	if v.(int) <= 0 {
		return fmt.Errorf("preferences: value must be positive (%d)", v.(int))
	}
	return nil
}

// NewPreferences is the preferred method of initialisation for the Preferences
// type. Values are loaded from the preferences file in the resource
// directory.
func NewPreferences() (*Preferences, error) {
	p := newPreferences()

	pth, err := paths.ResourcePath("", DefaultPrefsFile)
	if err != nil {
		return nil, err
	}

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	for _, e := range []struct {
		key string
		p   prefsValue
	}{
		{"hardware.randstate", &p.RandomState},
		{"cpu.illegal", &p.IllegalOpcodes},
		{"hardware.region", &p.Region},
		{"apu.decimation", &p.AudioDecimation},
		{"television.sinkpolicy", &p.SinkPolicy},
		{"television.sinktimeout", &p.SinkTimeout},
	} {
		if err := p.dsk.Add(e.key, e.p); err != nil {
			return nil, err
		}
	}

	err = p.dsk.Load(true)
	if err != nil {
		// ignore missing prefs file errors
		if !curated.Is(err, prefs.NoPrefsFile) {
			return nil, err
		}
	}

	return p, nil
}

// NewDefaultPreferences returns an instance of Preferences with default
// values that is not backed by a file on disk. Save() and Load() do nothing.
func NewDefaultPreferences() *Preferences {
	return newPreferences()
}

// the subset of the prefs types used by Preferences.
type prefsValue interface {
	fmt.Stringer
	Set(prefs.Value) error
	Get() prefs.Value
	Reset() error
}

func newPreferences() *Preferences {
	p := &Preferences{}
	p.Reseed(0)

	p.IllegalOpcodes.SetHookPre(oneOf(IllegalAll, IllegalStable, IllegalDocumented))
	p.Region.SetHookPre(oneOf(RegionAuto, RegionNTSC, RegionPAL, RegionDendy))
	p.SinkPolicy.SetHookPre(oneOf(SinkBlock, SinkDrop))
	p.AudioDecimation.SetHookPre(positive)
	p.SinkTimeout.SetHookPre(positive)

	p.SetDefaults()
	return p
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	p.RandomState.Set(false)
	p.IllegalOpcodes.Set(IllegalAll)
	p.Region.Set(RegionAuto)
	p.AudioDecimation.Set(40)
	p.SinkPolicy.Set(SinkBlock)
	p.SinkTimeout.Set(100)
}

// Illegal returns the normalised value of the IllegalOpcodes preference.
func (p *Preferences) Illegal() string {
	return strings.ToUpper(p.IllegalOpcodes.String())
}

// SinkWait returns the SinkTimeout preference as a time.Duration.
func (p *Preferences) SinkWait() time.Duration {
	return time.Duration(p.SinkTimeout.Get().(int)) * time.Millisecond
}

// Reseed initialises the random number generator. Use a seed value of 0 to
// initialise with the current time.
func (p *Preferences) Reseed(seed uint64) {
	if seed == 0 {
		p.RandSeed = uint64(time.Now().UnixNano())
	} else {
		p.RandSeed = seed
	}
	p.RandSrc = rand.New(rand.NewPCG(p.RandSeed, p.RandSeed))
}

// Reset all hardware preferences to the default values.
func (p *Preferences) Reset() error {
	p.SetDefaults()
	return nil
}

// Load current hardware preference from disk.
func (p *Preferences) Load() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Load(false)
}

// Save current hardware preferences to disk.
func (p *Preferences) Save() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Save()
}
