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

// Package apu implements the audio processing unit of the 2A03. The APU has
// five channels: two pulse channels, a triangle channel, a noise channel and
// the delta modulation channel (DMC). The channels are clocked by the frame
// sequencer, which also generates the frame IRQ.
//
// The APU is stepped once per CPU cycle by the scheduler. The current output
// level of the APU is returned by the Output() function. Sampling of the
// output, and any decimation, is the responsibility of the scheduler.
//
// The DMC reads sample data through the CPU bus. The APU does not have access
// to the bus itself. Instead, the scheduler asks for any pending sample fetch
// with DMCRequest(), performs the read and passes the result back with
// DMCFill(). The CPU is stalled while this happens.
package apu
