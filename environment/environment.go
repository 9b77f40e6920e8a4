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

// Package environment provides the context for an emulation. An emulation's
// environment is made up of the preferences for the hardware, the source for
// random numbers, and a label that identifies the emulation.
//
// The Environment type implements the logger.Permission interface. Only the
// main emulation is allowed to create log entries.
package environment

import (
	"github.com/jetsetilly/gophernes/hardware/preferences"
	"github.com/jetsetilly/gophernes/random"
)

// Label is used to name the environment.
type Label string

// MainEmulation is the label used for the main emulation.
const MainEmulation = Label("")

// Environment is used to provide context for an emulation. Particularly useful
// when using multiple emulations.
type Environment struct {
	Label Label

	// any randomisation required by the emulation should be retrieved through
	// this structure
	Random *random.Random

	// the emulation preferences
	Prefs *preferences.Preferences
}

// NewEnvironment is the preferred method of initialisation for the Environment
// type.
//
// The prefs argument can be nil, in which case a new Preferences instance is
// created and loaded from disk. Providing a non-nil value allows the
// preferences of more than one emulation to be synchronised.
func NewEnvironment(label Label, tv random.TV, prefs *preferences.Preferences) (*Environment, error) {
	env := &Environment{
		Label:  label,
		Random: random.NewRandom(tv),
	}

	if prefs == nil {
		var err error
		prefs, err = preferences.NewPreferences()
		if err != nil {
			return nil, err
		}
	}

	env.Prefs = prefs

	return env, nil
}

// Normalise ensures the environment is in a known default state. Useful for
// regression testing where the initial state must be the same for every run of
// the test.
func (env *Environment) Normalise() {
	env.Random.ZeroSeed = true
	env.Prefs.SetDefaults()
	env.Prefs.Reseed(1)
}

// IsMainEmulation returns true if the environment is intended for the main
// emulation in the system.
func (env *Environment) IsMainEmulation() bool {
	return env.Label == MainEmulation
}

// IsEmulation checks the emulation label and returns true if it matches.
func (env *Environment) IsEmulation(label Label) bool {
	return env.Label == label
}

// AllowLogging implements the logger.Permission interface.
func (env *Environment) AllowLogging() bool {
	return env.IsMainEmulation()
}
