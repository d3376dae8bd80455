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

package export

import (
	"fmt"
	"regexp"

	"github.com/jetsetilly/regmap/curated"
	"github.com/jetsetilly/regmap/registermap"
)

// Error patterns.
const (
	ExportError     = "export error: %v"
	Unresolved      = "no address for %s"
	UnknownLanguage = "unknown language (%s)"
	InvalidName     = "invalid export name (%q)"
)

var validName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// MapView is the read-only view of a register map used by emitters.
type MapView struct {
	Name           string
	Description    string
	Summary        string
	BaseAddress    string
	AddressBits    uint
	MemoryUnitBits uint
	Span           uint64
	Modules        []ModuleView
}

// ModuleView is the view of a single module. The address is the address of
// the first instance.
type ModuleView struct {
	Name        string
	Description string
	Address     string
	Offset      string
	Instances   int
	Stride      uint64
	Span        uint64
	Registers   []RegisterView
}

// RegisterView is the view of a single register. Padding is the number of
// memory units between the end of the previous register (or the start of the
// module) and the start of the register.
type RegisterView struct {
	Name        string
	Description string
	Address     string
	Offset      string
	OffsetUnits uint64
	Padding     uint64
	Size        uint64
	Bits        uint
	Mode        string
	Public      bool
	Reset       string
	Fields      []FieldView
}

// FieldView is one slice of the contiguous view of a register. A field that is
// mapped onto the register more than once has a view for each mapping,
// distinguished by the field bits in the name.
type FieldView struct {
	Name        string
	Description string
	Offset      uint
	Size        uint
	Mask        string
	Reset       string
	Reserved    bool
	Global      bool
}

// Hex formats a value as a hexadecimal literal.
func Hex(v uint64) string {
	return fmt.Sprintf("%#x", v)
}

// NewView creates a view of the register map under the name. The name is
// used by emitters to name the output (C include guard, Go package, etc.) and
// must be a valid identifier.
func NewView(rm *registermap.RegisterMap, name string) (*MapView, error) {
	if !validName.MatchString(name) {
		return nil, curated.Errorf(ExportError, curated.Errorf(InvalidName, name))
	}

	mem := rm.Memory()
	base, ok := mem.BaseAddress()
	if !ok {
		return nil, curated.Errorf(ExportError, curated.Errorf(Unresolved, "memory space"))
	}

	aw := int(mem.AddressBits()+3) / 4
	address := func(v uint64) string {
		return fmt.Sprintf("0x%0*x", aw, v)
	}

	mv := &MapView{
		Name:           name,
		Description:    rm.Description(),
		Summary:        rm.Summary(),
		BaseAddress:    address(base),
		AddressBits:    mem.AddressBits(),
		MemoryUnitBits: mem.MemoryUnitBits(),
		Span:           rm.SpanMemoryUnits(),
	}

	for _, m := range rm.Modules() {
		start, ok := m.StartAddress()
		if !ok {
			return nil, curated.Errorf(ExportError, curated.Errorf(Unresolved, m.CanonicalID()))
		}
		offset, _ := m.Offset()

		modv := ModuleView{
			Name:        m.Name(),
			Description: m.Description(),
			Address:     address(start),
			Offset:      Hex(offset),
			Instances:   m.Instances(),
			Stride:      m.StrideMemoryUnits(),
			Span:        m.SpanMemoryUnits(),
		}

		var next uint64
		for _, r := range m.Registers() {
			rv, err := registerView(r, address)
			if err != nil {
				return nil, err
			}
			if rv.OffsetUnits > next {
				rv.Padding = rv.OffsetUnits - next
			}
			next = rv.OffsetUnits + rv.Size
			modv.Registers = append(modv.Registers, rv)
		}

		mv.Modules = append(mv.Modules, modv)
	}

	return mv, nil
}

func registerView(r *registermap.Register, address func(uint64) string) (RegisterView, error) {
	start, ok := r.StartAddress()
	if !ok {
		return RegisterView{}, curated.Errorf(ExportError, curated.Errorf(Unresolved, r.CanonicalID()))
	}
	offset, ok := r.Offset()
	if !ok {
		// register with a fixed address before its module
		return RegisterView{}, curated.Errorf(ExportError, curated.Errorf(Unresolved, r.CanonicalID()+" offset"))
	}

	rv := RegisterView{
		Name:        r.Name(),
		Description: r.Description(),
		Address:     address(start),
		Offset:      Hex(offset),
		OffsetUnits: offset,
		Size:        r.SizeMemoryUnits(),
		Bits:        r.SizeBits(),
		Mode:        string(r.Mode()),
		Public:      r.Public(),
		Reset:       Hex(r.ResetValue()),
	}

	slices := r.ContiguousFields()

	count := make(map[*registermap.Field]int)
	for _, s := range slices {
		if !s.Reserved() {
			count[s.Field]++
		}
	}

	for _, s := range slices {
		fv := FieldView{
			Offset: s.RegisterBits.Low,
			Size:   s.RegisterBits.Width(),
			Mask:   Hex(s.RegisterBits.Mask()),
		}

		if s.Reserved() {
			fv.Name = fmt.Sprintf("reserved_%d", s.RegisterBits.Low)
			fv.Reserved = true
			fv.Reset = Hex(0)
		} else {
			fv.Name = s.Field.Name()
			if count[s.Field] > 1 {
				fv.Name = fmt.Sprintf("%s_%d_%d", fv.Name, s.FieldBits.High, s.FieldBits.Low)
			}
			fv.Description = s.Field.Description()
			fv.Global = s.Field.IsGlobal()
			fv.Reset = Hex((s.Field.ResetValue() & s.FieldBits.Mask()) >> s.FieldBits.Low)
		}

		rv.Fields = append(rv.Fields, fv)
	}

	return rv, nil
}
