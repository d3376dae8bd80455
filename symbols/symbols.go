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

package symbols

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jetsetilly/regmap/curated"
	"github.com/jetsetilly/regmap/registermap"
)

// Error returned when the register map cannot be tabulated.
const (
	Unresolved = "symbols: register map has no base address"
)

// Symbols contains the label, read and write tables for a register map.
type Symbols struct {
	crit sync.Mutex

	label *Table
	read  *Table
	write *Table
}

// NewSymbols creates the symbol tables for the register map. Modules and
// registers without an address are not included.
func NewSymbols(rm *registermap.RegisterMap) (*Symbols, error) {
	if _, ok := rm.Memory().BaseAddress(); !ok {
		return nil, curated.Errorf(Unresolved)
	}

	sym := &Symbols{
		label: &Table{},
		read:  &Table{},
		write: &Table{},
	}

	for _, m := range rm.Modules() {
		multi := m.Instances() > 1

		name := func(idx int) string {
			if multi {
				return fmt.Sprintf("%s[%d]", m.Name(), idx)
			}
			return m.Name()
		}

		for _, in := range m.Placements() {
			sym.label.add(in.StartAddress, in.SpanMemoryUnits, name(in.Index))
		}

		for _, r := range m.Registers() {
			for _, in := range r.Placements() {
				s := fmt.Sprintf("%s.%s", name(in.Index), r.Name())
				if readable(r.Mode()) {
					sym.read.add(in.StartAddress, in.SpanMemoryUnits, s)
				}
				if r.Mode() != registermap.ReadOnly {
					sym.write.add(in.StartAddress, in.SpanMemoryUnits, s)
				}
			}
		}
	}

	return sym, nil
}

func readable(mode registermap.Mode) bool {
	return mode != registermap.WriteOnly
}

// Label returns the label table.
func (sym *Symbols) Label() *Table {
	return sym.label
}

// Read returns the table of readable registers.
func (sym *Symbols) Read() *Table {
	return sym.read
}

// Write returns the table of writable registers.
func (sym *Symbols) Write() *Table {
	return sym.write
}

func (sym *Symbols) String() string {
	sym.crit.Lock()
	defer sym.crit.Unlock()

	s := strings.Builder{}
	s.WriteString("Labels\n------\n")
	s.WriteString(sym.label.String())
	s.WriteString("\nRead Symbols\n------------\n")
	s.WriteString(sym.read.String())
	s.WriteString("\nWrite Symbols\n-------------\n")
	s.WriteString(sym.write.String())
	return s.String()
}
