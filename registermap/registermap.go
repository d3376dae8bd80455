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
	"math"

	"github.com/jetsetilly/regmap/registermap/faults"
	"github.com/jetsetilly/regmap/registermap/memory"
)

// RegisterMap is the root of the register map. It owns the memory
// configuration, the ordered list of modules and the global fields.
type RegisterMap struct {
	parameters

	memory  *memory.Configuration
	modules []*Module
	globals []*Field

	description string
	summary     string

	// set during recompute(). mutations are not allowed while it is true
	propagating bool

	// set once any element has an address
	locked bool

	// propagation trace logging
	tracing bool
}

// NewRegisterMap is the preferred method of initialisation for the
// RegisterMap type. The memory configuration has default values.
func NewRegisterMap() *RegisterMap {
	rm := &RegisterMap{
		parameters: newParameters("register map", coreMapKeys),
		memory:     memory.NewConfiguration(),
	}
	rm.memory.SetHookPre(rm.memoryHookPre)
	rm.memory.SetHookPost(rm.memoryHookPost)
	return rm
}

func (rm *RegisterMap) memoryHookPre(p memory.Property) error {
	if rm.propagating {
		return faults.Errorf(faults.Configuration, faults.ReentrantMutation, p.String())
	}
	switch p {
	case memory.AddressBits, memory.MemoryUnitBits:
		if rm.locked {
			return faults.Errorf(faults.Configuration, faults.MemoryLocked, p.String())
		}
	}
	return nil
}

func (rm *RegisterMap) memoryHookPost(_ memory.Property) error {
	return rm.recompute(0)
}

// AllowLogging implements the logger.Permission interface. Layout trace
// entries are only logged if tracing has been enabled with SetTracing().
func (rm *RegisterMap) AllowLogging() bool {
	return rm.tracing
}

// SetTracing turns layout trace logging on or off.
func (rm *RegisterMap) SetTracing(tracing bool) {
	rm.tracing = tracing
}

// Memory returns the memory configuration. Changes to the configuration are
// propagated through the register map.
func (rm *RegisterMap) Memory() *memory.Configuration {
	return rm.memory
}

// Description returns the description of the register map.
func (rm *RegisterMap) Description() string {
	return rm.description
}

// SetDescription sets the description of the register map.
func (rm *RegisterMap) SetDescription(description string) {
	rm.description = description
}

// Summary returns the summary of the register map.
func (rm *RegisterMap) Summary() string {
	return rm.summary
}

// SetSummary sets the summary of the register map.
func (rm *RegisterMap) SetSummary(summary string) {
	rm.summary = summary
}

// Modules returns the modules in address order.
func (rm *RegisterMap) Modules() []*Module {
	c := make([]*Module, len(rm.modules))
	copy(c, rm.modules)
	return c
}

// Module returns the named module.
func (rm *RegisterMap) Module(name string) (*Module, bool) {
	for _, m := range rm.modules {
		if m.name == name {
			return m, true
		}
	}
	return nil, false
}

// AddModule appends a new module to the register map. The name must be
// unique in the register map.
func (rm *RegisterMap) AddModule(name string) (*Module, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	if _, ok := rm.Module(name); ok {
		return nil, faults.Errorf(faults.Configuration, faults.DuplicateName, "module", name)
	}

	m := newModule(rm, name)

	err := rm.mutate(len(rm.modules), name, func() (func(), error) {
		m.index = len(rm.modules)
		rm.modules = append(rm.modules, m)
		return func() {
			rm.modules = rm.modules[:len(rm.modules)-1]
		}, nil
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RemoveModule removes the named module and all of its registers. Modules
// after it are moved to fill the gap, subject to their constraints.
func (rm *RegisterMap) RemoveModule(name string) error {
	m, ok := rm.Module(name)
	if !ok {
		return faults.Errorf(faults.Configuration, faults.NotFound, "module", name)
	}

	idx := m.index
	saved := make([]savedMappings, len(m.registers))
	for i, r := range m.registers {
		saved[i] = saveMappings(r)
	}

	err := rm.mutate(idx, name, func() (func(), error) {
		for _, r := range m.registers {
			r.bits.Clear()
		}
		rm.modules = append(rm.modules[:idx], rm.modules[idx+1:]...)
		rm.reindex()
		return func() {
			rm.modules = append(rm.modules[:idx], append([]*Module{m}, rm.modules[idx:]...)...)
			rm.reindex()
			for _, s := range saved {
				s.restore()
			}
		}, nil
	})
	if err != nil {
		return err
	}

	rm.pruneGlobals()
	return nil
}

func (rm *RegisterMap) reindex() {
	for i, m := range rm.modules {
		m.index = i
	}
}

// GlobalFields returns the global fields in the order they were created.
func (rm *RegisterMap) GlobalFields() []*Field {
	c := make([]*Field, len(rm.globals))
	copy(c, rm.globals)
	return c
}

// GlobalField returns the named global field.
func (rm *RegisterMap) GlobalField(name string) (*Field, bool) {
	for _, f := range rm.globals {
		if f.name == name {
			return f, true
		}
	}
	return nil, false
}

func (rm *RegisterMap) addGlobal(f *Field) {
	rm.globals = append(rm.globals, f)
}

func (rm *RegisterMap) removeGlobal(f *Field) {
	for i := range rm.globals {
		if rm.globals[i] == f {
			rm.globals = append(rm.globals[:i], rm.globals[i+1:]...)
			return
		}
	}
}

// global fields exist only while at least one register maps onto them.
func (rm *RegisterMap) pruneGlobals() {
	g := rm.globals[:0]
	for _, f := range rm.globals {
		if f.bits.Len() > 0 {
			g = append(g, f)
		}
	}
	rm.globals = g
}

// SpanMemoryUnits returns the number of memory units from the base address
// to the end of the last module. Returns zero if there is no base address or
// if the last module has no address.
func (rm *RegisterMap) SpanMemoryUnits() uint64 {
	base, ok := rm.memory.BaseAddress()
	if !ok || len(rm.modules) == 0 {
		return 0
	}
	last := rm.modules[len(rm.modules)-1].placed
	if last.full() {
		// the span reaches the top of a 64 bit address space
		if base == 0 {
			return math.MaxUint64
		}
		return math.MaxUint64 - base + 1
	}
	next, ok := last.next()
	if !ok || next < base {
		return 0
	}
	return next - base
}

// AssignedMemoryUnits returns the sum of the memory units assigned to the
// registers of every module, counting every instance of a module.
func (rm *RegisterMap) AssignedMemoryUnits() uint64 {
	var n uint64
	for _, m := range rm.modules {
		n += m.AssignedMemoryUnits() * uint64(m.instances)
	}
	return n
}
