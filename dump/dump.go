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

// Package dump writes debugging representations of a register map.
//
// Graph() writes a graphviz description of the register map that shows the
// sharing of global fields between registers. Text() writes the same
// structure as indented text.
//
// Both functions work with register maps that have unresolved addresses.
package dump

import (
	"io"

	"github.com/bradleyjkemp/memviz"
	"github.com/davecgh/go-spew/spew"
	"github.com/jetsetilly/regmap/registermap"
)

// Map is the root of the dump tree.
type Map struct {
	Description string
	Memory      string
	Span        uint64
	Modules     []*Module
}

// Module in the dump tree.
type Module struct {
	Name      string
	Address   string
	Instances int
	Span      uint64
	Registers []*Register
}

// Register in the dump tree.
type Register struct {
	Name    string
	Address string
	Mode    string
	Size    uint64
	Reset   string
	Fields  []*Mapping
}

// Mapping of register bits to field bits.
type Mapping struct {
	RegisterBits string
	FieldBits    string
	Field        *Field
}

// Field in the dump tree. Global fields are shared by every mapping onto them.
type Field struct {
	ID     string
	Global bool
	Size   uint
	Reset  string
}

// NewTree creates the dump tree for the register map.
func NewTree(rm *registermap.RegisterMap) *Map {
	fields := make(map[*registermap.Field]*Field)

	tm := &Map{
		Description: rm.Description(),
		Memory:      rm.Memory().String(),
		Span:        rm.SpanMemoryUnits(),
	}

	for _, m := range rm.Modules() {
		tmod := &Module{
			Name:      m.Name(),
			Address:   address(m.StartAddress()),
			Instances: m.Instances(),
			Span:      m.SpanMemoryUnits(),
		}

		for _, r := range m.Registers() {
			treg := &Register{
				Name:    r.Name(),
				Address: address(r.StartAddress()),
				Mode:    string(r.Mode()),
				Size:    r.SizeMemoryUnits(),
				Reset:   hex(r.ResetValue()),
			}

			for _, s := range r.ContiguousFields() {
				if s.Reserved() {
					continue
				}
				tf, ok := fields[s.Field]
				if !ok {
					tf = &Field{
						ID:     s.Field.CanonicalID(),
						Global: s.Field.IsGlobal(),
						Size:   s.Field.SizeBits(),
						Reset:  hex(s.Field.ResetValue()),
					}
					fields[s.Field] = tf
				}
				treg.Fields = append(treg.Fields, &Mapping{
					RegisterBits: s.RegisterBits.String(),
					FieldBits:    s.FieldBits.String(),
					Field:        tf,
				})
			}

			tmod.Registers = append(tmod.Registers, treg)
		}

		tm.Modules = append(tm.Modules, tmod)
	}

	return tm
}

// Graph writes the register map in the graphviz dot language.
func Graph(w io.Writer, rm *registermap.RegisterMap) {
	memviz.Map(w, NewTree(rm))
}

// Text writes the register map as indented text.
func Text(w io.Writer, rm *registermap.RegisterMap) {
	cfg := spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}
	cfg.Fdump(w, NewTree(rm))
}
