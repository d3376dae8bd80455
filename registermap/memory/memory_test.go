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

package memory_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/regmap/curated"
	"github.com/jetsetilly/regmap/registermap/faults"
	"github.com/jetsetilly/regmap/registermap/memory"
	"github.com/jetsetilly/regmap/test"
)

func TestDefaults(t *testing.T) {
	mem := memory.NewConfiguration()
	test.ExpectEquality(t, mem.AddressBits(), 32)
	test.ExpectEquality(t, mem.MemoryUnitBits(), 8)

	base, ok := mem.BaseAddress()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, base, uint64(0))

	_, ok = mem.PageSize()
	test.ExpectFailure(t, ok)

	test.ExpectEquality(t, mem.MaximumMemoryAddress(), uint64(1)<<32)
}

func TestValidation(t *testing.T) {
	mem := memory.NewConfiguration()

	err := mem.SetAddressBits(0)
	test.ExpectSuccess(t, curated.Is(err, faults.Configuration))
	err = mem.SetAddressBits(65)
	test.ExpectSuccess(t, curated.Has(err, faults.InvalidAddressBits))
	err = mem.SetMemoryUnitBits(0)
	test.ExpectSuccess(t, curated.Has(err, faults.InvalidUnitBits))
	err = mem.SetPageSize(1)
	test.ExpectSuccess(t, curated.Has(err, faults.InvalidPageSize))

	test.DemandSuccess(t, mem.SetAddressBits(16))
	err = mem.SetBaseAddress(0x10000)
	test.ExpectSuccess(t, curated.Has(err, faults.InvalidBaseAddress))
	test.ExpectSuccess(t, mem.SetBaseAddress(0xff00))

	// the address space cannot shrink below the base address
	err = mem.SetAddressBits(8)
	test.ExpectSuccess(t, curated.Has(err, faults.InvalidBaseAddress))

	test.DemandSuccess(t, mem.SetAddressBits(64))
	test.ExpectEquality(t, mem.MaximumMemoryAddress(), ^uint64(0))
}

func TestClearBaseAddress(t *testing.T) {
	mem := memory.NewConfiguration()
	test.DemandSuccess(t, mem.ClearBaseAddress())
	_, ok := mem.BaseAddress()
	test.ExpectFailure(t, ok)

	test.DemandSuccess(t, mem.SetBaseAddress(0x20))
	base, ok := mem.BaseAddress()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, base, uint64(0x20))
}

func TestPaging(t *testing.T) {
	mem := memory.NewConfiguration()
	test.ExpectFailure(t, mem.IsPageRegister(0x100))
	test.ExpectEquality(t, mem.PageRegisterImpact(0x100), uint64(0x100))

	test.DemandSuccess(t, mem.SetPageSize(0x100))
	test.ExpectSuccess(t, mem.IsPageRegister(0x100))
	test.ExpectSuccess(t, mem.IsPageRegister(0))
	test.ExpectFailure(t, mem.IsPageRegister(0x101))
	test.ExpectEquality(t, mem.PageRegisterImpact(0x100), uint64(0x101))
	test.ExpectEquality(t, mem.PageRegisterImpact(0x1ff), uint64(0x1ff))
	test.ExpectEquality(t, mem.PageBaseAddress(0x1ff), uint64(0x100))

	test.DemandSuccess(t, mem.ClearPageSize())
	test.ExpectFailure(t, mem.IsPageRegister(0x100))
}

func TestMemoryUnits(t *testing.T) {
	mem := memory.NewConfiguration()
	test.ExpectEquality(t, mem.MemoryUnits(0), uint64(1))
	test.ExpectEquality(t, mem.MemoryUnits(1), uint64(1))
	test.ExpectEquality(t, mem.MemoryUnits(8), uint64(1))
	test.ExpectEquality(t, mem.MemoryUnits(9), uint64(2))
	test.ExpectEquality(t, mem.MemoryUnits(19), uint64(3))
}

func TestHooks(t *testing.T) {
	mem := memory.NewConfiguration()

	var pre, post []memory.Property
	mem.SetHookPre(func(p memory.Property) error {
		pre = append(pre, p)
		if p == memory.AddressBits {
			return errors.New("locked")
		}
		return nil
	})

	fail := true
	mem.SetHookPost(func(p memory.Property) error {
		post = append(post, p)
		if p == memory.BaseAddress && fail {
			fail = false
			return errors.New("rejected")
		}
		return nil
	})

	// vetoed by pre hook
	test.ExpectFailure(t, mem.SetAddressBits(16))
	test.ExpectEquality(t, mem.AddressBits(), 32)
	test.ExpectEquality(t, len(post), 0)

	// reverted after post hook failure. post hook is called again after the
	// revert
	test.ExpectFailure(t, mem.SetBaseAddress(0x40))
	base, _ := mem.BaseAddress()
	test.ExpectEquality(t, base, uint64(0))
	test.ExpectEquality(t, len(post), 2)

	test.ExpectSuccess(t, mem.SetMemoryUnitBits(16))
	test.ExpectEquality(t, len(pre), 3)
	test.ExpectEquality(t, pre[2], memory.MemoryUnitBits)
}
