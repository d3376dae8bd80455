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

// Package constraints holds the user supplied constraints on the placement
// and size of a module or register.
//
// A fixed address always wins over alignment. A fixed size is an upper bound
// on the natural size of an element and, if it is not exceeded, replaces it.
package constraints

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/regmap/registermap/faults"
)

// Set of constraints. The zero value has no constraints.
type Set struct {
	fixedAddress    uint64
	hasFixedAddress bool

	// zero means no constraint
	alignment uint64
	fixedSize uint64
}

func (cs Set) String() string {
	var s []string
	if cs.hasFixedAddress {
		s = append(s, fmt.Sprintf("fixed address %#x", cs.fixedAddress))
	}
	if cs.alignment > 0 {
		s = append(s, fmt.Sprintf("alignment %d", cs.alignment))
	}
	if cs.fixedSize > 0 {
		s = append(s, fmt.Sprintf("fixed size %d", cs.fixedSize))
	}
	if len(s) == 0 {
		return "none"
	}
	return strings.Join(s, ", ")
}

// IsEmpty returns true if there are no constraints in the set.
func (cs Set) IsEmpty() bool {
	return !cs.hasFixedAddress && cs.alignment == 0 && cs.fixedSize == 0
}

// FixedAddress returns the fixed address constraint.
func (cs Set) FixedAddress() (uint64, bool) {
	return cs.fixedAddress, cs.hasFixedAddress
}

// Alignment returns the alignment constraint in memory units.
func (cs Set) Alignment() (uint64, bool) {
	return cs.alignment, cs.alignment > 0
}

// FixedSize returns the fixed size constraint in memory units.
func (cs Set) FixedSize() (uint64, bool) {
	return cs.fixedSize, cs.fixedSize > 0
}

// SetFixedAddress sets the fixed address constraint.
func (cs *Set) SetFixedAddress(address uint64) {
	cs.fixedAddress = address
	cs.hasFixedAddress = true
}

// ClearFixedAddress removes the fixed address constraint.
func (cs *Set) ClearFixedAddress() {
	cs.fixedAddress = 0
	cs.hasFixedAddress = false
}

// SetAlignment sets the alignment constraint. Must be at least one.
func (cs *Set) SetAlignment(units uint64) error {
	if units == 0 {
		return faults.Errorf(faults.Configuration, faults.InvalidAlignment, units)
	}
	cs.alignment = units
	return nil
}

// ClearAlignment removes the alignment constraint.
func (cs *Set) ClearAlignment() {
	cs.alignment = 0
}

// SetFixedSize sets the fixed size constraint. Must be at least one.
func (cs *Set) SetFixedSize(units uint64) error {
	if units == 0 {
		return faults.Errorf(faults.Configuration, faults.InvalidFixedSize, units)
	}
	cs.fixedSize = units
	return nil
}

// ClearFixedSize removes the fixed size constraint.
func (cs *Set) ClearFixedSize() {
	cs.fixedSize = 0
}

// AlignUp returns the smallest multiple of alignment that is greater than or
// equal to the address.
func AlignUp(address uint64, alignment uint64) uint64 {
	if alignment <= 1 {
		return address
	}
	if r := address % alignment; r != 0 {
		return address + alignment - r
	}
	return address
}

// ApplyAddress returns the address after the alignment and fixed address
// constraints have been applied. The proposed address may be unresolved (ok is
// false) in which case only a fixed address can resolve it.
func (cs Set) ApplyAddress(proposed uint64, ok bool) (uint64, bool) {
	if cs.hasFixedAddress {
		return cs.fixedAddress, true
	}
	if !ok {
		return 0, false
	}
	return AlignUp(proposed, cs.alignment), true
}

// ApplySize returns the size after the fixed size constraint has been
// applied. It is an error for the natural size to exceed the fixed size. The
// id is used in the error message.
func (cs Set) ApplySize(natural uint64, id string) (uint64, error) {
	if cs.fixedSize == 0 {
		return natural, nil
	}
	if natural > cs.fixedSize {
		return 0, faults.Errorf(faults.Constraint, faults.FixedSizeExceeded, id)
	}
	return cs.fixedSize, nil
}
