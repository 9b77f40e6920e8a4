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

package apu

// the APU mixes the channels non-linearly. the mixing is modelled with two
// lookup tables, one for the pulse channels and one for the triangle, noise
// and DMC channels
var (
	pulseTable [31]float32
	tndTable   [203]float32
)

func init() {
	for n := 1; n < len(pulseTable); n++ {
		pulseTable[n] = float32(95.52 / (8128.0/float64(n) + 100.0))
	}
	for n := 1; n < len(tndTable); n++ {
		tndTable[n] = float32(163.67 / (24329.0/float64(n) + 100.0))
	}
}

// mix the output of the five channels. the result is in the range 0.0 to 1.0
func mix(pulse1, pulse2, triangle, noise, dmc uint8) float32 {
	return pulseTable[pulse1+pulse2] + tndTable[3*int(triangle)+2*int(noise)+int(dmc)]
}
