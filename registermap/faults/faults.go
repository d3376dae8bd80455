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

// Package faults lists the error patterns raised by the register map
// packages. Patterns are used with the curated package.
//
// Every error raised by the register map belongs to one of four categories.
// The category is the outermost pattern and the specific cause is wrapped
// inside it:
//
//	err := curated.Errorf(faults.Constraint, curated.Errorf(faults.FixedSizeExceeded, "uart.ctrl"))
//
//	curated.Is(err, faults.Constraint)         // true
//	curated.Has(err, faults.FixedSizeExceeded) // true
//
// The helper functions in this package create errors in that form.
package faults

import "github.com/jetsetilly/regmap/curated"

// Error categories.
const (
	Configuration       = "configuration error: %v"
	Constraint          = "constraint error: %v"
	Parse               = "parse error: %v"
	DestinationInterval = "destination interval error: %v"
	Script              = "script error: %v"
)

// Configuration causes.
const (
	InvalidName          = "invalid name (%q)"
	DuplicateName        = "%s name is not unique (%s)"
	NotFound             = "%s not found (%s)"
	SourceOverlap        = "source interval overlaps existing source intervals (%s %s)"
	InvalidInterval      = "invalid bit interval (%s)"
	InvalidInstances     = "number of instances must be at least one (%s)"
	InstancesShrink      = "number of instances cannot be reduced (%s: %d to %d)"
	InvalidAlignment     = "alignment must be at least one memory unit (%s)"
	InvalidFixedSize     = "fixed size must be at least one memory unit (%s)"
	InvalidAddressBits   = "address bits must be between 1 and 64 (%d)"
	InvalidUnitBits      = "memory unit bits must be at least one (%d)"
	InvalidBaseAddress   = "base address does not fit in address space (%#x)"
	InvalidPageSize      = "page size must be greater than one (%d)"
	MemoryLocked         = "%s cannot change once addresses have been assigned"
	ReentrantMutation    = "mutation during propagation (%s)"
	InvalidMode          = "invalid register mode (%q)"
	ResetValueOverflow   = "reset value does not fit in field (%s: %#x)"
	FieldSizeTooSmall    = "field size smaller than mapped bits (%s: %d)"
	InvalidParameter     = "invalid user parameter key (%s: %q)"
	GlobalLocalCollision = "global and local field share a name (%s)"
)

// Constraint causes.
const (
	FixedSizeExceeded        = "fixed size exceeded (%s)"
	FixedAddressOverlap      = "fixed address overlaps preceding element (%s: %#x < %#x)"
	FixedAddressPageRegister = "fixed address is a page register (%s: %#x)"
	AddressOverflow          = "address exceeds memory space (%s: %#x)"
)

// Parse causes.
const (
	MissingKey   = "missing required key (%s)"
	InvalidValue = "invalid value for key (%s: %v)"
	InvalidYAML  = "invalid document: %v"
)

// DestinationInterval causes.
const (
	DestinationOverlap = "destination interval overlaps existing destination intervals (%s %s)"
)

// Errorf creates an error with the category pattern wrapping the cause
// pattern.
func Errorf(category string, cause string, values ...interface{}) error {
	return curated.Errorf(category, curated.Errorf(cause, values...))
}
