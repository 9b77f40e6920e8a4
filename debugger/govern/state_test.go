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

package govern_test

import (
	"testing"

	"github.com/jetsetilly/gophernes/debugger/govern"
	"github.com/jetsetilly/gophernes/test"
)

func TestStateTransition(t *testing.T) {
	test.ExpectSuccess(t, govern.StateTransition(govern.EmulatorStart, govern.Initialising))
	test.ExpectFailure(t, govern.StateTransition(govern.EmulatorStart, govern.Running))
	test.ExpectSuccess(t, govern.StateTransition(govern.Running, govern.Paused))
	test.ExpectFailure(t, govern.StateTransition(govern.Paused, govern.EmulatorStart))
	test.ExpectFailure(t, govern.StateTransition(govern.Ending, govern.Running))
	test.ExpectEquality(t, govern.Running.String(), "Running")
	test.ExpectEquality(t, govern.ModePerformance.String(), "Performance")
}
