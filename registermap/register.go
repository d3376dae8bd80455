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
	"strings"

	"github.com/jetsetilly/regmap/logger"
	"github.com/jetsetilly/regmap/registermap/bitmap"
	"github.com/jetsetilly/regmap/registermap/bitrange"
	"github.com/jetsetilly/regmap/registermap/constraints"
	"github.com/jetsetilly/regmap/registermap/faults"
)

// Mode is the access mode of a register.
type Mode string

// List of valid Mode values.
const (
	ReadOnly       Mode = "ro"
	ReadWrite      Mode = "rw"
	WriteOnly      Mode = "wo"
	WriteOneClear  Mode = "w1c"
	WriteZeroClear Mode = "w0c"
)

// ParseMode converts a string to a Mode. Comparison is case insensitive.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case ReadOnly, ReadWrite, WriteOnly, WriteOneClear, WriteZeroClear:
		return m, nil
	}
	return "", faults.Errorf(faults.Configuration, faults.InvalidMode, s)
}

// Register is a number of memory units in a module. The size of a register is
// the number of memory units needed to hold its highest mapped bit.
type Register struct {
	parameters

	module *Module
	index  int

	name        string
	description string
	summary     string
	mode        Mode
	public      bool

	constraints constraints.Set
	bits        *bitmap.BitMap

	// result of layout(). the placement is for the first instance of the
	// module
	placed placement
}

func newRegister(m *Module, name string) *Register {
	r := &Register{
		parameters: newParameters(canonicalID(m.name, name), coreRegisterKeys),
		module:     m,
		name:       name,
		mode:       ReadWrite,
		public:     true,
	}
	r.bits = bitmap.NewBitMap(r)
	return r
}

func (r *Register) String() string {
	return r.CanonicalID()
}

// Name returns the name of the register.
func (r *Register) Name() string {
	return r.name
}

// CanonicalID returns the identifier of the register in the form
// module.register.
//
// Implements the bitmap.Store interface.
func (r *Register) CanonicalID() string {
	return canonicalID(r.module.name, r.name)
}

// BitMap returns the mapping of register bits to field bits.
//
// Implements the bitmap.Store interface.
func (r *Register) BitMap() *bitmap.BitMap {
	return r.bits
}

// Module returns the module the register belongs to.
func (r *Register) Module() *Module {
	return r.module
}

// Previous returns the register placed before this one in the module.
func (r *Register) Previous() (*Register, bool) {
	if r.index == 0 {
		return nil, false
	}
	return r.module.registers[r.index-1], true
}

// Description returns the description of the register.
func (r *Register) Description() string {
	return r.description
}

// SetDescription sets the description of the register.
func (r *Register) SetDescription(description string) {
	r.description = description
}

// Summary returns the summary of the register.
func (r *Register) Summary() string {
	return r.summary
}

// SetSummary sets the summary of the register.
func (r *Register) SetSummary(summary string) {
	r.summary = summary
}

// Mode returns the access mode of the register.
func (r *Register) Mode() Mode {
	return r.mode
}

// SetMode sets the access mode of the register.
func (r *Register) SetMode(mode Mode) error {
	m, err := ParseMode(string(mode))
	if err != nil {
		return err
	}
	r.mode = m
	return nil
}

// Public returns true if the register is part of the public interface of the
// device.
func (r *Register) Public() bool {
	return r.public
}

// SetPublic sets whether the register is part of the public interface of the
// device.
func (r *Register) SetPublic(public bool) {
	r.public = public
}

// Constraints returns a copy of the register's constraints.
func (r *Register) Constraints() constraints.Set {
	return r.constraints
}

// SetConstraints replaces the register's constraints.
func (r *Register) SetConstraints(cs constraints.Set) error {
	old := r.constraints
	return r.module.rm.mutate(r.module.index, r.CanonicalID(), func() (func(), error) {
		r.constraints = cs
		return func() {
			r.constraints = old
		}, nil
	})
}

// SetFixedAddress constrains the register to the address.
func (r *Register) SetFixedAddress(address uint64) error {
	cs := r.constraints
	cs.SetFixedAddress(address)
	return r.SetConstraints(cs)
}

// SetAlignment constrains the register address to a multiple of the number
// of memory units.
func (r *Register) SetAlignment(units uint64) error {
	cs := r.constraints
	if err := cs.SetAlignment(units); err != nil {
		return err
	}
	return r.SetConstraints(cs)
}

// SetFixedSize constrains the size of the register.
func (r *Register) SetFixedSize(units uint64) error {
	cs := r.constraints
	if err := cs.SetFixedSize(units); err != nil {
		return err
	}
	return r.SetConstraints(cs)
}

// StartAddress returns the address of the register in the first instance of
// its module. Returns false if the register has no address.
func (r *Register) StartAddress() (uint64, bool) {
	return r.placed.start, r.placed.resolved
}

// EndAddress returns the address of the last memory unit of the register in
// the first instance of its module.
func (r *Register) EndAddress() (uint64, bool) {
	return r.placed.end()
}

// Offset returns the address of the register relative to the start address
// of its module.
func (r *Register) Offset() (uint64, bool) {
	ms, ok := r.module.StartAddress()
	if !ok || !r.placed.resolved || r.placed.start < ms {
		return 0, false
	}
	return r.placed.start - ms, true
}

// SizeMemoryUnits returns the size of the register in memory units.
func (r *Register) SizeMemoryUnits() uint64 {
	return r.placed.span
}

// SizeBits returns the size of the register in bits.
func (r *Register) SizeBits() uint {
	return uint(r.placed.span) * r.module.rm.memory.MemoryUnitBits()
}

// Placements returns the placement of the register in every instance of its
// module. If the module has no address but the register does (because of a
// fixed address constraint) only the first instance is returned.
func (r *Register) Placements() []Instance {
	if !r.placed.resolved {
		return nil
	}
	if !r.module.placed.resolved {
		return []Instance{{StartAddress: r.placed.start, SpanMemoryUnits: r.placed.span}}
	}
	p := make([]Instance, r.module.instances)
	for i := range p {
		p[i] = Instance{
			Index:           i,
			StartAddress:    r.placed.start + uint64(i)*r.module.stride,
			SpanMemoryUnits: r.placed.span,
		}
	}
	return p
}

// Fields returns the fields mapped into the register, ordered by the lowest
// register bit they occupy.
func (r *Register) Fields() []*Field {
	var fs []*Field
	for _, d := range r.bits.Destinations() {
		if f, ok := d.(*Field); ok {
			fs = append(fs, f)
		}
	}
	return fs
}

// Field returns the named field if it is mapped into the register. The field
// can be local or global.
func (r *Register) Field(name string) (*Field, bool) {
	for _, f := range r.Fields() {
		if f.name == name {
			return f, true
		}
	}
	return nil, false
}

// AddField maps a new local field onto the register bits. The field bits are
// zero to the width of the register bits minus one.
func (r *Register) AddField(name string, registerBits bitrange.Interval) (*Field, error) {
	return r.mapField(name, registerBits, bitrange.New(0, registerBits.Width()-1), false)
}

// MapField maps the register bits onto the field bits of a local field. The
// field is created if it is not already mapped into the register.
func (r *Register) MapField(name string, registerBits bitrange.Interval, fieldBits bitrange.Interval) (*Field, error) {
	return r.mapField(name, registerBits, fieldBits, false)
}

// MapGlobalField maps the register bits onto the field bits of a global
// field. The global field is created if it does not already exist in the
// register map.
func (r *Register) MapGlobalField(name string, registerBits bitrange.Interval, fieldBits bitrange.Interval) (*Field, error) {
	return r.mapField(name, registerBits, fieldBits, true)
}

func (r *Register) mapField(name string, registerBits bitrange.Interval, fieldBits bitrange.Interval, global bool) (*Field, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	rm := r.module.rm

	var f *Field
	if existing, ok := r.Field(name); ok {
		if existing.global != global {
			return nil, faults.Errorf(faults.Configuration, faults.GlobalLocalCollision, canonicalID(r.CanonicalID(), name))
		}
		f = existing
	} else if global {
		f, _ = rm.GlobalField(name)
	}

	created := f == nil
	if created {
		if global {
			f = newField(rm, nil, name)
		} else {
			f = newField(rm, r, name)
		}
	}

	prev, hadPrev := r.bits.Lookup(registerBits)
	oldSize := f.sizeBits

	err := rm.mutate(r.module.index, r.CanonicalID(), func() (func(), error) {
		if err := r.bits.MapBits(registerBits, fieldBits, f); err != nil {
			return nil, err
		}
		if created && global {
			rm.addGlobal(f)
		}
		if fieldBits.High+1 > f.sizeBits {
			f.sizeBits = fieldBits.High + 1
		}
		return func() {
			r.bits.Unmap(registerBits)
			if hadPrev {
				if err := r.bits.MapBits(prev.Source, prev.DestinationBits, prev.Destination); err != nil {
					logger.Logf(logger.Allow, "registermap", "restoring %s: %v", r.CanonicalID(), err)
				}
			}
			f.sizeBits = oldSize
			if created && global {
				rm.removeGlobal(f)
			}
		}, nil
	})
	if err != nil {
		return nil, err
	}

	rm.pruneGlobals()
	return f, nil
}

// RemoveField removes every mapping of the named field from the register. A
// global field continues to exist if it is mapped into other registers.
func (r *Register) RemoveField(name string) error {
	f, ok := r.Field(name)
	if !ok {
		return faults.Errorf(faults.Configuration, faults.NotFound, "field", canonicalID(r.CanonicalID(), name))
	}

	removed := r.bits.MappingsTo(f)

	err := r.module.rm.mutate(r.module.index, r.CanonicalID(), func() (func(), error) {
		r.bits.UnmapDestination(f)
		return func() {
			for _, m := range removed {
				if err := r.bits.MapBits(m.Source, m.DestinationBits, m.Destination); err != nil {
					logger.Logf(logger.Allow, "registermap", "restoring %s: %v", r.CanonicalID(), err)
				}
			}
		}, nil
	})
	if err != nil {
		return err
	}

	r.module.rm.pruneGlobals()
	return nil
}

// FieldSlice is an entry in the contiguous view of a register. Field is nil
// for bits that are not mapped to any field.
type FieldSlice struct {
	RegisterBits bitrange.Interval
	FieldBits    bitrange.Interval
	Field        *Field
}

// Reserved returns true if the slice is not mapped to a field.
func (s FieldSlice) Reserved() bool {
	return s.Field == nil
}

// ContiguousFields returns every bit of the register, in order, as slices of
// fields. Unmapped bits are returned as reserved slices. The register is not
// changed.
func (r *Register) ContiguousFields() []FieldSlice {
	spans := r.bits.Contiguous(r.SizeBits())
	fs := make([]FieldSlice, 0, len(spans))
	for _, s := range spans {
		if s.Reserved() {
			fs = append(fs, FieldSlice{RegisterBits: s.Interval})
			continue
		}
		f, _ := s.Mapping.Destination.(*Field)
		fs = append(fs, FieldSlice{
			RegisterBits: s.Interval,
			FieldBits:    s.Mapping.DestinationBits,
			Field:        f,
		})
	}
	return fs
}

// ResetValue returns the value of the register after reset, assembled from
// the reset values of the mapped fields.
func (r *Register) ResetValue() uint64 {
	var v uint64
	for _, m := range r.bits.Mappings() {
		f, ok := m.Destination.(*Field)
		if !ok || m.Source.Low > 63 {
			continue
		}
		bits := (f.resetValue & m.DestinationBits.Mask()) >> m.DestinationBits.Low
		v |= (bits << m.Source.Low) & m.Source.Mask()
	}
	return v
}

// savedMappings records the mappings of a register so that they can be
// restored when a removal is undone.
type savedMappings struct {
	r        *Register
	mappings []bitmap.Mapping
}

func saveMappings(r *Register) savedMappings {
	return savedMappings{r: r, mappings: r.bits.Mappings()}
}

func (s savedMappings) restore() {
	for _, m := range s.mappings {
		if err := s.r.bits.MapBits(m.Source, m.DestinationBits, m.Destination); err != nil {
			logger.Logf(logger.Allow, "registermap", "restoring %s: %v", s.r.CanonicalID(), err)
		}
	}
}
