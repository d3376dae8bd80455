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
	"github.com/jetsetilly/regmap/registermap/constraints"
	"github.com/jetsetilly/regmap/registermap/faults"
)

// Module is a named, ordered list of registers. A module can be instantiated
// more than once, in which case the instances are placed one after the other
// with the stride rounded up to the alignment of the module.
type Module struct {
	parameters

	rm    *RegisterMap
	index int

	name        string
	description string
	summary     string

	instances   int
	constraints constraints.Set
	registers   []*Register

	// results of layout(). the placement covers every instance. single is the
	// span of one instance
	placed   placement
	single   uint64
	stride   uint64
	assigned uint64
}

func newModule(rm *RegisterMap, name string) *Module {
	return &Module{
		parameters: newParameters(name, coreModuleKeys),
		rm:         rm,
		name:       name,
		instances:  1,
	}
}

func (m *Module) String() string {
	return m.name
}

// Name returns the name of the module.
func (m *Module) Name() string {
	return m.name
}

// CanonicalID returns the identifier of the module. For a module this is the
// same as the name.
func (m *Module) CanonicalID() string {
	return m.name
}

// RegisterMap returns the register map the module belongs to.
func (m *Module) RegisterMap() *RegisterMap {
	return m.rm
}

// Previous returns the module placed before this one.
func (m *Module) Previous() (*Module, bool) {
	if m.index == 0 {
		return nil, false
	}
	return m.rm.modules[m.index-1], true
}

// Description returns the description of the module.
func (m *Module) Description() string {
	return m.description
}

// SetDescription sets the description of the module.
func (m *Module) SetDescription(description string) {
	m.description = description
}

// Summary returns the summary of the module.
func (m *Module) Summary() string {
	return m.summary
}

// SetSummary sets the summary of the module.
func (m *Module) SetSummary(summary string) {
	m.summary = summary
}

// Instances returns the number of instances of the module.
func (m *Module) Instances() int {
	return m.instances
}

// SetInstances changes the number of instances of the module. The number of
// instances must be at least one and cannot be reduced.
func (m *Module) SetInstances(n int) error {
	if n < 1 {
		return faults.Errorf(faults.Configuration, faults.InvalidInstances, m.name)
	}
	if n < m.instances {
		return faults.Errorf(faults.Configuration, faults.InstancesShrink, m.name, m.instances, n)
	}

	old := m.instances
	return m.rm.mutate(m.index, m.name, func() (func(), error) {
		m.instances = n
		return func() {
			m.instances = old
		}, nil
	})
}

// Constraints returns a copy of the module's constraints.
func (m *Module) Constraints() constraints.Set {
	return m.constraints
}

// SetConstraints replaces the module's constraints.
func (m *Module) SetConstraints(cs constraints.Set) error {
	old := m.constraints
	return m.rm.mutate(m.index, m.name, func() (func(), error) {
		m.constraints = cs
		return func() {
			m.constraints = old
		}, nil
	})
}

// SetFixedAddress constrains the module to start at the address.
func (m *Module) SetFixedAddress(address uint64) error {
	cs := m.constraints
	cs.SetFixedAddress(address)
	return m.SetConstraints(cs)
}

// SetAlignment constrains the start address of the module, and the stride
// between instances, to a multiple of the number of memory units.
func (m *Module) SetAlignment(units uint64) error {
	cs := m.constraints
	if err := cs.SetAlignment(units); err != nil {
		return err
	}
	return m.SetConstraints(cs)
}

// SetFixedSize constrains the span of a single instance of the module.
func (m *Module) SetFixedSize(units uint64) error {
	cs := m.constraints
	if err := cs.SetFixedSize(units); err != nil {
		return err
	}
	return m.SetConstraints(cs)
}

// StartAddress returns the address of the first instance of the module.
// Returns false if the module has no address.
func (m *Module) StartAddress() (uint64, bool) {
	return m.placed.start, m.placed.resolved
}

// EndAddress returns the address of the last memory unit of the last
// instance of the module. Returns false if the module has no address or if
// it is empty.
func (m *Module) EndAddress() (uint64, bool) {
	return m.placed.end()
}

// Offset returns the start address of the module relative to the base
// address of the memory space.
func (m *Module) Offset() (uint64, bool) {
	base, ok := m.rm.memory.BaseAddress()
	if !ok || !m.placed.resolved || m.placed.start < base {
		return 0, false
	}
	return m.placed.start - base, true
}

// SpanMemoryUnits returns the number of memory units covered by every
// instance of the module. Returns zero if the module has no address.
func (m *Module) SpanMemoryUnits() uint64 {
	return m.placed.span
}

// InstanceSpanMemoryUnits returns the number of memory units covered by a
// single instance of the module.
func (m *Module) InstanceSpanMemoryUnits() uint64 {
	return m.single
}

// StrideMemoryUnits returns the distance between the start addresses of
// successive instances of the module.
func (m *Module) StrideMemoryUnits() uint64 {
	return m.stride
}

// AssignedMemoryUnits returns the sum of the sizes of the registers in a
// single instance of the module. Unlike the span, this does not include gaps
// between registers and is known even when the module has no address.
func (m *Module) AssignedMemoryUnits() uint64 {
	return m.assigned
}

// Instance is the placement of one instance of a module or register.
type Instance struct {
	Index           int
	StartAddress    uint64
	SpanMemoryUnits uint64
}

// EndAddress returns the address of the last memory unit of the instance.
// Returns false if the instance is empty.
func (in Instance) EndAddress() (uint64, bool) {
	if in.SpanMemoryUnits == 0 {
		return 0, false
	}
	return in.StartAddress + in.SpanMemoryUnits - 1, true
}

// Placements returns the placement of every instance of the module. Returns
// nil if the module has no address.
func (m *Module) Placements() []Instance {
	if !m.placed.resolved {
		return nil
	}
	p := make([]Instance, m.instances)
	for i := range p {
		p[i] = Instance{
			Index:           i,
			StartAddress:    m.placed.start + uint64(i)*m.stride,
			SpanMemoryUnits: m.single,
		}
	}
	return p
}

// Registers returns the registers of the module in address order.
func (m *Module) Registers() []*Register {
	c := make([]*Register, len(m.registers))
	copy(c, m.registers)
	return c
}

// Register returns the named register.
func (m *Module) Register(name string) (*Register, bool) {
	for _, r := range m.registers {
		if r.name == name {
			return r, true
		}
	}
	return nil, false
}

// AddRegister appends a new register to the module. The name must be unique
// in the module.
func (m *Module) AddRegister(name string) (*Register, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	if _, ok := m.Register(name); ok {
		return nil, faults.Errorf(faults.Configuration, faults.DuplicateName, "register", canonicalID(m.name, name))
	}

	r := newRegister(m, name)

	err := m.rm.mutate(m.index, r.CanonicalID(), func() (func(), error) {
		r.index = len(m.registers)
		m.registers = append(m.registers, r)
		return func() {
			m.registers = m.registers[:len(m.registers)-1]
		}, nil
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

// RemoveRegister removes the named register and its fields. Registers after
// it are moved to fill the gap, subject to their constraints.
func (m *Module) RemoveRegister(name string) error {
	r, ok := m.Register(name)
	if !ok {
		return faults.Errorf(faults.Configuration, faults.NotFound, "register", canonicalID(m.name, name))
	}

	idx := r.index
	saved := saveMappings(r)

	err := m.rm.mutate(m.index, r.CanonicalID(), func() (func(), error) {
		r.bits.Clear()
		m.registers = append(m.registers[:idx], m.registers[idx+1:]...)
		m.reindex()
		return func() {
			m.registers = append(m.registers[:idx], append([]*Register{r}, m.registers[idx:]...)...)
			m.reindex()
			saved.restore()
		}, nil
	})
	if err != nil {
		return err
	}

	m.rm.pruneGlobals()
	return nil
}

func (m *Module) reindex() {
	for i, r := range m.registers {
		r.index = i
	}
}
