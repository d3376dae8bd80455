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

package registermap_test

import (
	"testing"

	"github.com/jetsetilly/regmap/curated"
	"github.com/jetsetilly/regmap/logger"
	"github.com/jetsetilly/regmap/registermap"
	"github.com/jetsetilly/regmap/registermap/bitrange"
	"github.com/jetsetilly/regmap/registermap/faults"
	"github.com/jetsetilly/regmap/test"
)

func newRegister(t *testing.T) (*registermap.RegisterMap, *registermap.Register) {
	t.Helper()
	rm := registermap.NewRegisterMap()
	m, err := rm.AddModule("m")
	test.DemandSuccess(t, err)
	r, err := m.AddRegister("r")
	test.DemandSuccess(t, err)
	return rm, r
}

func TestRegisterDefaults(t *testing.T) {
	_, r := newRegister(t)
	test.ExpectEquality(t, r.Mode(), registermap.ReadWrite)
	test.ExpectSuccess(t, r.Public())
	test.ExpectEquality(t, r.SizeMemoryUnits(), uint64(1))
	test.ExpectEquality(t, r.CanonicalID(), "m.r")
	test.ExpectEquality(t, len(r.ContiguousFields()), 1)
	test.ExpectSuccess(t, r.ContiguousFields()[0].Reserved())
}

func TestMode(t *testing.T) {
	_, r := newRegister(t)

	for _, s := range []string{"ro", "RW", "wo", "w1c", "w0c"} {
		m, err := registermap.ParseMode(s)
		test.ExpectSuccess(t, err, s)
		test.ExpectSuccess(t, r.SetMode(m), s)
	}

	_, err := registermap.ParseMode("rx")
	test.ExpectSuccess(t, curated.Has(err, faults.InvalidMode))
	err = r.SetMode("rx")
	test.ExpectSuccess(t, curated.Is(err, faults.Configuration))
	test.ExpectEquality(t, r.Mode(), registermap.WriteZeroClear)
}

func TestLocalFields(t *testing.T) {
	_, r := newRegister(t)

	f, err := r.AddField("en", bitrange.Bit(0))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, f.CanonicalID(), "m.r.en")
	test.ExpectFailure(t, f.IsGlobal())
	test.ExpectEquality(t, f.SizeBits(), uint(1))
	owner, ok := f.Register()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, owner, r)

	// a local field can be extended with more bits
	g, err := r.MapField("mode", bitrange.New(4, 5), bitrange.New(0, 1))
	test.DemandSuccess(t, err)
	h, err := r.MapField("mode", bitrange.New(12, 13), bitrange.New(2, 3))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, g, h)
	test.ExpectEquality(t, g.SizeBits(), uint(4))
	test.ExpectEquality(t, r.SizeMemoryUnits(), uint64(2))

	fs := r.Fields()
	test.DemandEquality(t, len(fs), 2)
	test.ExpectEquality(t, fs[0], f)
	test.ExpectEquality(t, fs[1], g)
}

func TestSourceOverlapInRegister(t *testing.T) {
	_, r := newRegister(t)

	_, err := r.AddField("a", bitrange.New(0, 3))
	test.DemandSuccess(t, err)
	_, err = r.AddField("b", bitrange.New(3, 6))
	test.ExpectSuccess(t, curated.Is(err, faults.Configuration))
	test.ExpectSuccess(t, curated.Has(err, faults.SourceOverlap))
	test.ExpectEquality(t, len(r.Fields()), 1)
}

func TestIdempotentRemap(t *testing.T) {
	_, r := newRegister(t)

	_, err := r.AddField("a", bitrange.New(0, 3))
	test.DemandSuccess(t, err)
	_, err = r.AddField("a", bitrange.New(0, 3))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, r.BitMap().Len(), 1)
	test.ExpectEquality(t, len(r.Fields()), 1)

	// remapping the same register bits to a new field replaces the old field
	b, err := r.AddField("b", bitrange.New(0, 3))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, r.BitMap().Len(), 1)
	fs := r.Fields()
	test.DemandEquality(t, len(fs), 1)
	test.ExpectEquality(t, fs[0], b)
	_, ok := r.Field("a")
	test.ExpectFailure(t, ok)
}

func TestGlobalFields(t *testing.T) {
	rm, r := newRegister(t)
	m, _ := rm.Module("m")
	s, err := m.AddRegister("s")
	test.DemandSuccess(t, err)

	irq, err := r.MapGlobalField("irq", bitrange.New(0, 3), bitrange.New(0, 3))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, irq.CanonicalID(), "irq")
	test.ExpectSuccess(t, irq.IsGlobal())
	_, ok := irq.Register()
	test.ExpectFailure(t, ok)

	again, err := s.MapGlobalField("irq", bitrange.New(8, 11), bitrange.New(4, 7))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, again, irq)
	test.ExpectEquality(t, irq.SizeBits(), uint(8))
	test.ExpectEquality(t, len(rm.GlobalFields()), 1)
	test.ExpectEquality(t, s.SizeMemoryUnits(), uint64(2))

	rs := irq.Registers()
	test.DemandEquality(t, len(rs), 2)
	test.ExpectEquality(t, rs[0], r)
	test.ExpectEquality(t, rs[1], s)

	// no two registers can drive the same bit of a global field
	_, err = s.MapGlobalField("irq", bitrange.New(0, 0), bitrange.New(7, 7))
	test.ExpectSuccess(t, curated.Is(err, faults.DestinationInterval))
	test.ExpectSuccess(t, curated.Has(err, faults.DestinationOverlap))
	test.ExpectEquality(t, s.BitMap().Len(), 1)

	// a local field cannot share a name with a global field in the same
	// register
	_, err = s.AddField("irq", bitrange.New(12, 12))
	test.ExpectSuccess(t, curated.Has(err, faults.GlobalLocalCollision))

	// but a local field in another register can
	other, err := m.AddRegister("other")
	test.DemandSuccess(t, err)
	local, err := other.AddField("irq", bitrange.Bit(0))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, local.CanonicalID(), "m.other.irq")

	// removing the field from one register leaves the global field in place
	test.DemandSuccess(t, r.RemoveField("irq"))
	test.ExpectEquality(t, len(irq.Registers()), 1)
	test.ExpectEquality(t, len(rm.GlobalFields()), 1)

	test.DemandSuccess(t, s.RemoveField("irq"))
	test.ExpectEquality(t, len(rm.GlobalFields()), 0)

	err = s.RemoveField("irq")
	test.ExpectSuccess(t, curated.Has(err, faults.NotFound))
}

func TestRemoveFieldShrinksRegister(t *testing.T) {
	_, r := newRegister(t)
	_, err := r.AddField("lo", bitrange.New(0, 7))
	test.DemandSuccess(t, err)
	_, err = r.AddField("hi", bitrange.New(8, 15))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, r.SizeMemoryUnits(), uint64(2))

	test.DemandSuccess(t, r.RemoveField("hi"))
	test.ExpectEquality(t, r.SizeMemoryUnits(), uint64(1))
}

func TestContiguousFields(t *testing.T) {
	_, r := newRegister(t)
	_, err := r.AddField("a", bitrange.New(0, 10))
	test.DemandSuccess(t, err)
	_, err = r.AddField("b", bitrange.New(13, 18))
	test.DemandSuccess(t, err)

	cf := r.ContiguousFields()
	test.DemandEquality(t, len(cf), 4)
	test.ExpectEquality(t, cf[0].Field.Name(), "a")
	test.ExpectSuccess(t, cf[1].Reserved())
	test.ExpectEquality(t, cf[1].RegisterBits, bitrange.New(11, 12))
	test.ExpectEquality(t, cf[2].Field.Name(), "b")
	test.ExpectEquality(t, cf[2].FieldBits, bitrange.New(0, 5))
	test.ExpectSuccess(t, cf[3].Reserved())
	test.ExpectEquality(t, cf[3].RegisterBits, bitrange.New(19, 23))

	// the view does not change the register
	test.ExpectEquality(t, len(r.Fields()), 2)
}

func TestResetValue(t *testing.T) {
	_, r := newRegister(t)
	f, err := r.MapField("f", bitrange.New(4, 7), bitrange.New(0, 3))
	test.DemandSuccess(t, err)
	g, err := r.AddField("g", bitrange.Bit(0))
	test.DemandSuccess(t, err)

	test.DemandSuccess(t, f.SetResetValue(0xa))
	test.DemandSuccess(t, g.SetResetValue(1))
	test.ExpectEquality(t, r.ResetValue(), uint64(0xa1))

	err = g.SetResetValue(2)
	test.ExpectSuccess(t, curated.Has(err, faults.ResetValueOverflow))
	test.ExpectEquality(t, g.ResetValue(), uint64(1))
}

func TestFieldSize(t *testing.T) {
	_, r := newRegister(t)
	f, err := r.MapField("f", bitrange.New(0, 3), bitrange.New(2, 5))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, f.SizeBits(), uint(6))

	test.ExpectSuccess(t, f.SetSizeBits(8))
	test.DemandSuccess(t, f.SetResetValue(0xff))

	err = f.SetSizeBits(5)
	test.ExpectSuccess(t, curated.Has(err, faults.FieldSizeTooSmall))
	err = f.SetSizeBits(7)
	test.ExpectSuccess(t, curated.Has(err, faults.FieldSizeTooSmall))
	test.ExpectEquality(t, f.SizeBits(), uint(8))
}

func TestParameters(t *testing.T) {
	rm, r := newRegister(t)

	test.DemandSuccess(t, r.SetParameter("vendor", "acme"))
	test.DemandSuccess(t, r.SetParameter("revision", 2))
	test.DemandSuccess(t, r.SetParameter("vendor", "acme corp"))

	keys := r.ParameterKeys()
	test.DemandEquality(t, len(keys), 2)
	test.ExpectEquality(t, keys[0], "vendor")
	v, ok := r.Parameter("vendor")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v.(string), "acme corp")

	err := r.SetParameter("_address", 1)
	test.ExpectSuccess(t, curated.Has(err, faults.InvalidParameter))
	err = r.SetParameter("mode", "ro")
	test.ExpectSuccess(t, curated.Has(err, faults.InvalidParameter))

	r.DeleteParameter("vendor")
	test.ExpectEquality(t, len(r.ParameterKeys()), 1)

	m, _ := rm.Module("m")
	err = m.SetParameter("instances", 2)
	test.ExpectSuccess(t, curated.Has(err, faults.InvalidParameter))
	test.ExpectSuccess(t, m.SetParameter("clock", "apb"))
}

func TestFailedMappingIsUndone(t *testing.T) {
	logger.Clear()
	_, r := newRegister(t)
	test.DemandSuccess(t, r.SetFixedSize(1))

	a, err := r.AddField("a", bitrange.New(0, 7))
	test.DemandSuccess(t, err)

	_, err = r.AddField("b", bitrange.New(8, 15))
	test.ExpectSuccess(t, curated.Has(err, faults.FixedSizeExceeded))
	test.ExpectEquality(t, r.BitMap().Len(), 1)
	fs := r.Fields()
	test.DemandEquality(t, len(fs), 1)
	test.ExpectEquality(t, fs[0], a)

	// a clean undo has nothing to report
	for _, e := range logger.Entries() {
		test.ExpectInequality(t, e.Tag, "registermap")
	}
}
