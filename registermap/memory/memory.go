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

// Package memory describes the memory space that a register map is laid out
// in. The Configuration type holds the width of an address, the width of a
// memory unit, the base address of the first module and the (optional) page
// size.
//
// When a page size is set, the first memory unit of every page is reserved
// for a page register. An address that falls on a page register is moved on
// by one memory unit before any other constraint is applied.
//
// Changes to the configuration are reported to the owner through the pre and
// post hooks. The pre hook can veto a change. If the post hook returns an
// error the change is reverted and the post hook is called once more so that
// the owner can restore its own state.
package memory

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/regmap/registermap/faults"
)

// Default values for a new Configuration.
const (
	DefaultAddressBits    = 32
	DefaultMemoryUnitBits = 8
	DefaultBaseAddress    = 0
)

// Property identifies the part of the Configuration that is changing.
type Property int

// List of valid Property values.
const (
	AddressBits Property = iota
	MemoryUnitBits
	BaseAddress
	PageSize
)

func (p Property) String() string {
	switch p {
	case AddressBits:
		return "address bits"
	case MemoryUnitBits:
		return "memory unit bits"
	case BaseAddress:
		return "base address"
	case PageSize:
		return "page size"
	}
	return "unknown property"
}

// Configuration of the memory space.
type Configuration struct {
	addressBits    uint
	memoryUnitBits uint

	baseAddress    uint64
	hasBaseAddress bool

	// zero means no paging
	pageSize uint64

	hookPre  func(Property) error
	hookPost func(Property) error
}

// NewConfiguration is the preferred method of initialisation for the
// Configuration type.
func NewConfiguration() *Configuration {
	return &Configuration{
		addressBits:    DefaultAddressBits,
		memoryUnitBits: DefaultMemoryUnitBits,
		baseAddress:    DefaultBaseAddress,
		hasBaseAddress: true,
	}
}

func (mem *Configuration) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("address bits: %d, memory unit bits: %d", mem.addressBits, mem.memoryUnitBits))
	if mem.hasBaseAddress {
		s.WriteString(fmt.Sprintf(", base address: %#x", mem.baseAddress))
	} else {
		s.WriteString(", base address: none")
	}
	if mem.pageSize > 0 {
		s.WriteString(fmt.Sprintf(", page size: %#x", mem.pageSize))
	}
	return s.String()
}

// SetHookPre sets the function to be called before a property is changed.
// Returning an error prevents the change.
func (mem *Configuration) SetHookPre(f func(Property) error) {
	mem.hookPre = f
}

// SetHookPost sets the function to be called after a property has changed.
func (mem *Configuration) SetHookPost(f func(Property) error) {
	mem.hookPost = f
}

// change runs the hooks around the commit function. the undo function is
// called if the post hook fails.
func (mem *Configuration) change(p Property, commit func(), undo func()) error {
	if mem.hookPre != nil {
		if err := mem.hookPre(p); err != nil {
			return err
		}
	}

	commit()

	if mem.hookPost != nil {
		if err := mem.hookPost(p); err != nil {
			undo()
			_ = mem.hookPost(p)
			return err
		}
	}

	return nil
}

// AddressBits returns the number of bits in an address.
func (mem *Configuration) AddressBits() uint {
	return mem.addressBits
}

// SetAddressBits changes the number of bits in an address. Must be between 1
// and 64 and large enough for the current base address.
func (mem *Configuration) SetAddressBits(bits uint) error {
	if bits < 1 || bits > 64 {
		return faults.Errorf(faults.Configuration, faults.InvalidAddressBits, bits)
	}
	if mem.hasBaseAddress && !fits(mem.baseAddress, bits) {
		return faults.Errorf(faults.Configuration, faults.InvalidBaseAddress, mem.baseAddress)
	}

	old := mem.addressBits
	return mem.change(AddressBits,
		func() { mem.addressBits = bits },
		func() { mem.addressBits = old })
}

// MemoryUnitBits returns the number of bits in a memory unit.
func (mem *Configuration) MemoryUnitBits() uint {
	return mem.memoryUnitBits
}

// SetMemoryUnitBits changes the number of bits in a memory unit.
func (mem *Configuration) SetMemoryUnitBits(bits uint) error {
	if bits < 1 {
		return faults.Errorf(faults.Configuration, faults.InvalidUnitBits, bits)
	}

	old := mem.memoryUnitBits
	return mem.change(MemoryUnitBits,
		func() { mem.memoryUnitBits = bits },
		func() { mem.memoryUnitBits = old })
}

// BaseAddress returns the base address of the memory space. Returns false if
// there is no base address.
func (mem *Configuration) BaseAddress() (uint64, bool) {
	return mem.baseAddress, mem.hasBaseAddress
}

// SetBaseAddress changes the base address. The address must fit in the
// address space.
func (mem *Configuration) SetBaseAddress(address uint64) error {
	if !mem.Fits(address) {
		return faults.Errorf(faults.Configuration, faults.InvalidBaseAddress, address)
	}

	old, had := mem.baseAddress, mem.hasBaseAddress
	return mem.change(BaseAddress,
		func() { mem.baseAddress, mem.hasBaseAddress = address, true },
		func() { mem.baseAddress, mem.hasBaseAddress = old, had })
}

// ClearBaseAddress removes the base address. Elements of a register map
// without a fixed address will have no address until a base address is set.
func (mem *Configuration) ClearBaseAddress() error {
	old, had := mem.baseAddress, mem.hasBaseAddress
	return mem.change(BaseAddress,
		func() { mem.baseAddress, mem.hasBaseAddress = 0, false },
		func() { mem.baseAddress, mem.hasBaseAddress = old, had })
}

// PageSize returns the page size in memory units. Returns false if paging is
// not in use.
func (mem *Configuration) PageSize() (uint64, bool) {
	return mem.pageSize, mem.pageSize > 0
}

// SetPageSize changes the page size. Must be greater than one.
func (mem *Configuration) SetPageSize(size uint64) error {
	if size <= 1 {
		return faults.Errorf(faults.Configuration, faults.InvalidPageSize, size)
	}

	old := mem.pageSize
	return mem.change(PageSize,
		func() { mem.pageSize = size },
		func() { mem.pageSize = old })
}

// ClearPageSize stops the use of paging.
func (mem *Configuration) ClearPageSize() error {
	old := mem.pageSize
	return mem.change(PageSize,
		func() { mem.pageSize = 0 },
		func() { mem.pageSize = old })
}

func fits(address uint64, bits uint) bool {
	if bits >= 64 {
		return true
	}
	return address < uint64(1)<<bits
}

// MaximumMemoryAddress returns the number of addressable memory units. For a
// 64 bit address space the value saturates at the largest uint64.
func (mem *Configuration) MaximumMemoryAddress() uint64 {
	if mem.addressBits >= 64 {
		return ^uint64(0)
	}
	return uint64(1) << mem.addressBits
}

// Fits returns true if the address is inside the address space.
func (mem *Configuration) Fits(address uint64) bool {
	return fits(address, mem.addressBits)
}

// IsPageRegister returns true if the address is a page register. Always false
// if paging is not in use.
func (mem *Configuration) IsPageRegister(address uint64) bool {
	return mem.pageSize > 0 && address%mem.pageSize == 0
}

// PageBaseAddress returns the address of the page that contains the address.
// Returns the address unchanged if paging is not in use.
func (mem *Configuration) PageBaseAddress(address uint64) uint64 {
	if mem.pageSize == 0 {
		return address
	}
	return address - address%mem.pageSize
}

// PageRegisterImpact returns the address moved past the page register if the
// address is a page register. Otherwise the address is returned unchanged.
func (mem *Configuration) PageRegisterImpact(address uint64) uint64 {
	if mem.IsPageRegister(address) {
		return address + 1
	}
	return address
}

// MemoryUnits returns the number of memory units needed to hold a number of
// bits. Always at least one.
func (mem *Configuration) MemoryUnits(bits uint) uint64 {
	n := (uint64(bits) + uint64(mem.memoryUnitBits) - 1) / uint64(mem.memoryUnitBits)
	if n == 0 {
		return 1
	}
	return n
}
