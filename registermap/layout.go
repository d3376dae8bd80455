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

	"github.com/jetsetilly/regmap/logger"
	"github.com/jetsetilly/regmap/registermap/constraints"
	"github.com/jetsetilly/regmap/registermap/faults"
	"github.com/jetsetilly/regmap/registermap/memory"
)

// placement is the resolved position of a module or register. span is in
// memory units and can be zero.
type placement struct {
	start    uint64
	resolved bool
	span     uint64
}

// next returns the first address after the placement. using the next address
// rather than the end address means that an empty element at address zero
// does not underflow.
func (p placement) next() (uint64, bool) {
	return p.start + p.span, p.resolved
}

// full is true if the placement reaches the top of a 64 bit address space.
// there is no next address for a following element.
func (p placement) full() bool {
	return p.resolved && p.span > 0 && p.start+p.span < p.start
}

func (p placement) end() (uint64, bool) {
	if !p.resolved || p.span == 0 {
		return 0, false
	}
	return p.start + p.span - 1, true
}

// place returns the address of an element given the address proposed by its
// predecessor:
//
//	1. a fixed address is used unconditionally
//	2. a proposal on a page register is moved on by one memory unit
//	3. the proposal is rounded up to the alignment
//
// an unresolved proposal stays unresolved unless there is a fixed address.
func place(mem *memory.Configuration, cs constraints.Set, proposed uint64, ok bool, id string) (uint64, bool, error) {
	if fixed, has := cs.FixedAddress(); has {
		if mem.IsPageRegister(fixed) {
			return 0, false, faults.Errorf(faults.Constraint, faults.FixedAddressPageRegister, id, fixed)
		}
		if ok && fixed < proposed {
			return 0, false, faults.Errorf(faults.Constraint, faults.FixedAddressOverlap, id, fixed, proposed)
		}
		return fixed, true, nil
	}

	if !ok {
		return 0, false, nil
	}

	// alignment or the page register can carry the address past the top of
	// the address space
	a, _ := cs.ApplyAddress(mem.PageRegisterImpact(proposed), true)
	if a < proposed {
		return 0, false, faults.Errorf(faults.Constraint, faults.AddressOverflow, id, proposed)
	}
	return a, true, nil
}

// checkSpace makes sure the placement is inside the memory space.
func checkSpace(mem *memory.Configuration, p placement, id string) error {
	if !p.resolved {
		return nil
	}
	if !mem.Fits(p.start) {
		return faults.Errorf(faults.Constraint, faults.AddressOverflow, id, p.start)
	}
	if end, ok := p.end(); ok {
		if end < p.start || !mem.Fits(end) {
			return faults.Errorf(faults.Constraint, faults.AddressOverflow, id, end)
		}
	}
	return nil
}

// mutate applies a change to the register map and recomputes the layout from
// the module at index from. if the layout fails, the undo function returned
// by change is called and the layout recomputed again.
func (rm *RegisterMap) mutate(from int, id string, change func() (func(), error)) error {
	if rm.propagating {
		return faults.Errorf(faults.Configuration, faults.ReentrantMutation, id)
	}

	undo, err := change()
	if err != nil {
		return err
	}

	err = rm.recompute(from)
	if err != nil {
		logger.Logf(rm, "registermap", "undoing change to %s: %v", id, err)
		if undo != nil {
			undo()
		}
		if rerr := rm.recompute(from); rerr != nil {
			logger.Logf(logger.Allow, "registermap", "layout not restored after undo: %v", rerr)
		}
		return err
	}

	return nil
}

// recompute lays out every module from index from onwards. modules before
// index from are assumed to be unaffected by the change.
func (rm *RegisterMap) recompute(from int) error {
	rm.propagating = true
	defer func() {
		rm.propagating = false
	}()

	if from < 0 {
		from = 0
	}
	if from > len(rm.modules) {
		from = len(rm.modules)
	}

	var proposed uint64
	var ok bool
	var full bool
	if from == 0 {
		proposed, ok = rm.memory.BaseAddress()
	} else {
		proposed, ok = rm.modules[from-1].placed.next()
		full = rm.modules[from-1].placed.full()
	}

	for _, m := range rm.modules[from:] {
		if full {
			return faults.Errorf(faults.Constraint, faults.AddressOverflow, m.CanonicalID(), proposed)
		}
		if err := m.layout(proposed, ok); err != nil {
			return err
		}
		proposed, ok = m.placed.next()
		full = m.placed.full()
	}

	// address and memory unit widths are fixed once anything has an address
	if !rm.locked {
		rm.locked = rm.anyResolved()
	}

	return nil
}

func (rm *RegisterMap) anyResolved() bool {
	for _, m := range rm.modules {
		if m.placed.resolved {
			return true
		}
		for _, r := range m.registers {
			if r.placed.resolved {
				return true
			}
		}
	}
	return false
}

// layout places the module and every register in it.
func (m *Module) layout(proposed uint64, ok bool) error {
	mem := m.rm.memory
	id := m.CanonicalID()

	start, resolved, err := place(mem, m.constraints, proposed, ok, id)
	if err != nil {
		return err
	}

	var natural, assigned uint64

	rp, rok := start, resolved
	var rfull bool
	for i, r := range m.registers {
		if rfull {
			return faults.Errorf(faults.Constraint, faults.AddressOverflow, r.CanonicalID(), rp)
		}
		if err := r.layout(rp, rok); err != nil {
			return err
		}
		assigned += r.placed.span

		// a fixed address on the first register of an unanchored module
		// anchors the module
		if i == 0 && !resolved && r.placed.resolved {
			start, resolved = r.placed.start, true
		}

		if end, eok := r.placed.end(); resolved && eok {
			// a module covering the whole of a 64 bit address space has a
			// span that cannot be represented
			if end-start == math.MaxUint64 {
				return faults.Errorf(faults.Constraint, faults.AddressOverflow, id, end)
			}
			if n := end - start + 1; n > natural {
				natural = n
			}
		}

		rp, rok = r.placed.next()
		rfull = r.placed.full()
	}

	if fixed, has := m.constraints.FixedSize(); has && assigned > fixed {
		return faults.Errorf(faults.Constraint, faults.FixedSizeExceeded, id)
	}

	var single uint64
	if resolved {
		single, err = m.constraints.ApplySize(natural, id)
		if err != nil {
			return err
		}
	}

	stride := single
	if align, has := m.constraints.Alignment(); has {
		stride = constraints.AlignUp(single, align)
		if stride < single {
			return faults.Errorf(faults.Constraint, faults.AddressOverflow, id, start)
		}
	}

	var total uint64
	if single > 0 {
		if n := uint64(m.instances - 1); n > 0 && stride > (math.MaxUint64-single)/n {
			return faults.Errorf(faults.Constraint, faults.AddressOverflow, id, start)
		}
		total = uint64(m.instances-1)*stride + single
	}

	p := placement{start: start, resolved: resolved, span: total}
	if err := checkSpace(mem, p, id); err != nil {
		return err
	}

	m.placed = p
	m.single = single
	m.stride = stride
	m.assigned = assigned

	if resolved {
		logger.Logf(m.rm, "registermap", "module %s at %#x (span %d, instances %d)", id, start, total, m.instances)
	} else {
		logger.Logf(m.rm, "registermap", "module %s has no address", id)
	}

	return nil
}

// layout sizes and places the register.
func (r *Register) layout(proposed uint64, ok bool) error {
	mem := r.module.rm.memory
	id := r.CanonicalID()

	var natural uint64 = 1
	if h, has := r.bits.HighestBit(); has {
		natural = mem.MemoryUnits(h + 1)
	}

	size, err := r.constraints.ApplySize(natural, id)
	if err != nil {
		return err
	}

	start, resolved, err := place(mem, r.constraints, proposed, ok, id)
	if err != nil {
		return err
	}

	p := placement{start: start, resolved: resolved, span: size}
	if err := checkSpace(mem, p, id); err != nil {
		return err
	}

	r.placed = p

	if resolved {
		logger.Logf(r.module.rm, "registermap", "register %s at %#x (size %d)", id, start, size)
	}

	return nil
}
