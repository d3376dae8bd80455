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
	"github.com/jetsetilly/regmap/registermap/bitmap"
	"github.com/jetsetilly/regmap/registermap/faults"
)

// Field is a named group of bits. The bits of a local field are all in one
// register. The bits of a global field can be spread over several registers,
// possibly in different modules.
//
// The size of a field grows to cover the highest field bit mapped from a
// register.
type Field struct {
	parameters

	rm *RegisterMap

	// nil for global fields
	register *Register
	global   bool

	name        string
	description string
	summary     string

	sizeBits   uint
	resetValue uint64

	// the mirror of the register mappings. keyed by field bits
	bits *bitmap.BitMap
}

func newField(rm *RegisterMap, r *Register, name string) *Field {
	f := &Field{
		rm:       rm,
		register: r,
		global:   r == nil,
		name:     name,
	}
	f.parameters = newParameters(f.CanonicalID(), coreFieldKeys)
	f.bits = bitmap.NewBitMap(f)
	return f
}

func (f *Field) String() string {
	return f.CanonicalID()
}

// Name returns the name of the field.
func (f *Field) Name() string {
	return f.name
}

// CanonicalID returns the identifier of the field. For a global field this is
// the name of the field. For a local field the identifier is in the form
// module.register.field.
//
// Implements the bitmap.Store interface.
func (f *Field) CanonicalID() string {
	if f.global {
		return f.name
	}
	return canonicalID(f.register.CanonicalID(), f.name)
}

// BitMap returns the mirror of the register mappings, keyed by field bits.
//
// Implements the bitmap.Store interface.
func (f *Field) BitMap() *bitmap.BitMap {
	return f.bits
}

// IsGlobal returns true if the field is a global field.
func (f *Field) IsGlobal() bool {
	return f.global
}

// Register returns the register that owns a local field. Returns false for
// global fields.
func (f *Field) Register() (*Register, bool) {
	return f.register, f.register != nil
}

// Registers returns the registers that the field is mapped into, ordered by
// the lowest field bit they drive.
func (f *Field) Registers() []*Register {
	var rs []*Register
	for _, d := range f.bits.Destinations() {
		if r, ok := d.(*Register); ok {
			rs = append(rs, r)
		}
	}
	return rs
}

// Description returns the description of the field.
func (f *Field) Description() string {
	return f.description
}

// SetDescription sets the description of the field.
func (f *Field) SetDescription(description string) {
	f.description = description
}

// Summary returns the summary of the field.
func (f *Field) Summary() string {
	return f.summary
}

// SetSummary sets the summary of the field.
func (f *Field) SetSummary(summary string) {
	f.summary = summary
}

// SizeBits returns the size of the field in bits.
func (f *Field) SizeBits() uint {
	return f.sizeBits
}

// SetSizeBits changes the size of the field. The field cannot be made smaller
// than its mapped bits or its reset value.
func (f *Field) SetSizeBits(bits uint) error {
	if h, ok := f.bits.HighestBit(); ok && bits <= h {
		return faults.Errorf(faults.Configuration, faults.FieldSizeTooSmall, f.CanonicalID(), bits)
	}
	if !fitsBits(f.resetValue, bits) {
		return faults.Errorf(faults.Configuration, faults.FieldSizeTooSmall, f.CanonicalID(), bits)
	}
	f.sizeBits = bits
	return nil
}

// ResetValue returns the value of the field after reset.
func (f *Field) ResetValue() uint64 {
	return f.resetValue
}

// SetResetValue sets the value of the field after reset. The value must fit
// in the size of the field.
func (f *Field) SetResetValue(value uint64) error {
	if !fitsBits(value, f.sizeBits) {
		return faults.Errorf(faults.Configuration, faults.ResetValueOverflow, f.CanonicalID(), value)
	}
	f.resetValue = value
	return nil
}

func fitsBits(value uint64, bits uint) bool {
	if bits >= 64 {
		return true
	}
	return value < uint64(1)<<bits
}
