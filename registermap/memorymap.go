// This file is part of Regmap.
//
// Regmap is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Regmap is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Regmap.  If not, see <https://www.gnu.org/licenses/>.

package registermap

import (
	"fmt"
	"strings"
)

// MemoryMap returns a summary of the laid out register map. There is one line
// for every instance of every module followed by one line for each of its
// registers. Addresses are printed with enough hex digits for the address
// space.
func MemoryMap(rm *RegisterMap) string {
	s := strings.Builder{}

	w := int(rm.memory.AddressBits()+3) / 4
	none := strings.Repeat("-", w)

	line := func(start uint64, end uint64, hasEnd bool, label string) {
		if hasEnd {
			s.WriteString(fmt.Sprintf("%0*x -> %0*x\t%s\n", w, start, w, end, label))
		} else {
			s.WriteString(fmt.Sprintf("%0*x -> %s\t%s\n", w, start, none, label))
		}
	}

	for _, m := range rm.modules {
		placements := m.Placements()
		if placements == nil {
			s.WriteString(fmt.Sprintf("%s -> %s\t%s (no address)\n", none, none, m.name))
			continue
		}

		for _, mi := range placements {
			label := m.name
			if m.instances > 1 {
				label = fmt.Sprintf("%s[%d]", m.name, mi.Index)
			}
			end, ok := mi.EndAddress()
			line(mi.StartAddress, end, ok, label)

			for _, r := range m.registers {
				rp := r.Placements()
				if mi.Index >= len(rp) {
					continue
				}
				end, ok := rp[mi.Index].EndAddress()
				line(rp[mi.Index].StartAddress, end, ok, "  "+r.name)
			}
		}
	}

	return s.String()
}
