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

package constraints_test

import (
	"testing"

	"github.com/jetsetilly/regmap/curated"
	"github.com/jetsetilly/regmap/registermap/constraints"
	"github.com/jetsetilly/regmap/registermap/faults"
	"github.com/jetsetilly/regmap/test"
)

func TestAlignUp(t *testing.T) {
	test.ExpectEquality(t, constraints.AlignUp(0x11, 4), uint64(0x14))
	test.ExpectEquality(t, constraints.AlignUp(0x14, 4), uint64(0x14))
	test.ExpectEquality(t, constraints.AlignUp(0x11, 1), uint64(0x11))
	test.ExpectEquality(t, constraints.AlignUp(0x11, 0), uint64(0x11))
}

func TestApplyAddress(t *testing.T) {
	var cs constraints.Set
	test.ExpectSuccess(t, cs.IsEmpty())
	test.ExpectEquality(t, cs.String(), "none")

	a, ok := cs.ApplyAddress(0x11, true)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, a, uint64(0x11))

	_, ok = cs.ApplyAddress(0, false)
	test.ExpectFailure(t, ok)

	test.DemandSuccess(t, cs.SetAlignment(4))
	a, _ = cs.ApplyAddress(0x11, true)
	test.ExpectEquality(t, a, uint64(0x14))

	// fixed address wins over alignment and resolves an unknown proposal
	cs.SetFixedAddress(0x15)
	a, ok = cs.ApplyAddress(0, false)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, a, uint64(0x15))
	test.ExpectEquality(t, cs.String(), "fixed address 0x15, alignment 4")

	cs.ClearFixedAddress()
	cs.ClearAlignment()
	test.ExpectSuccess(t, cs.IsEmpty())
}

func TestApplySize(t *testing.T) {
	var cs constraints.Set

	err := cs.SetFixedSize(0)
	test.ExpectSuccess(t, curated.Has(err, faults.InvalidFixedSize))
	err = cs.SetAlignment(0)
	test.ExpectSuccess(t, curated.Has(err, faults.InvalidAlignment))

	n, err := cs.ApplySize(3, "m.r")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, uint64(3))

	test.DemandSuccess(t, cs.SetFixedSize(4))
	n, err = cs.ApplySize(3, "m.r")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, uint64(4))

	_, err = cs.ApplySize(5, "m.r")
	test.ExpectSuccess(t, curated.Is(err, faults.Constraint))
	test.ExpectSuccess(t, curated.Has(err, faults.FixedSizeExceeded))
	test.ExpectEquality(t, err.Error(), "constraint error: fixed size exceeded (m.r)")
}
