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

package bitmap_test

import (
	"testing"

	"github.com/jetsetilly/regmap/curated"
	"github.com/jetsetilly/regmap/registermap/bitmap"
	"github.com/jetsetilly/regmap/registermap/bitrange"
	"github.com/jetsetilly/regmap/registermap/faults"
	"github.com/jetsetilly/regmap/test"
)

type store struct {
	id string
	bm *bitmap.BitMap
}

func newStore(id string) *store {
	s := &store{id: id}
	s.bm = bitmap.NewBitMap(s)
	return s
}

func (s *store) BitMap() *bitmap.BitMap {
	return s.bm
}

func (s *store) CanonicalID() string {
	return s.id
}

func TestMirror(t *testing.T) {
	r := newStore("m.r")
	f := newStore("m.r.f")

	err := r.bm.MapBits(bitrange.New(4, 7), bitrange.New(0, 3), f)
	test.DemandSuccess(t, err)

	m, ok := r.bm.Lookup(bitrange.New(4, 7))
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, m.Destination, bitmap.Store(f))
	test.ExpectEquality(t, m.DestinationBits, bitrange.New(0, 3))

	mirror, ok := f.bm.Lookup(bitrange.New(0, 3))
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, mirror.Destination, bitmap.Store(r))
	test.ExpectEquality(t, mirror.DestinationBits, bitrange.New(4, 7))
}

func TestIdempotentRemap(t *testing.T) {
	r := newStore("m.r")
	f := newStore("m.r.f")

	test.DemandSuccess(t, r.bm.MapBits(bitrange.New(0, 3), bitrange.New(0, 3), f))
	test.DemandSuccess(t, r.bm.MapBits(bitrange.New(0, 3), bitrange.New(0, 3), f))
	test.ExpectEquality(t, r.bm.Len(), 1)
	test.ExpectEquality(t, f.bm.Len(), 1)
}

func TestReplaceRemovesOldMirror(t *testing.T) {
	r := newStore("m.r")
	f := newStore("m.r.f")
	g := newStore("m.r.g")

	test.DemandSuccess(t, r.bm.MapBits(bitrange.New(0, 3), bitrange.New(0, 3), f))
	test.DemandSuccess(t, r.bm.MapBits(bitrange.New(0, 3), bitrange.New(4, 7), g))
	test.ExpectEquality(t, r.bm.Len(), 1)
	test.ExpectEquality(t, f.bm.Len(), 0)
	test.ExpectEquality(t, g.bm.Len(), 1)

	// same destination store, different destination bits
	test.DemandSuccess(t, r.bm.MapBits(bitrange.New(0, 3), bitrange.New(2, 5), g))
	test.ExpectEquality(t, g.bm.Len(), 1)
	_, ok := g.bm.Lookup(bitrange.New(2, 5))
	test.ExpectSuccess(t, ok)
}

func TestSourceOverlap(t *testing.T) {
	r := newStore("m.r")
	f := newStore("m.r.f")
	g := newStore("m.r.g")

	test.DemandSuccess(t, r.bm.MapBits(bitrange.New(0, 3), bitrange.New(0, 3), f))
	err := r.bm.MapBits(bitrange.New(2, 5), bitrange.New(0, 3), g)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, faults.Configuration))
	test.ExpectSuccess(t, curated.Has(err, faults.SourceOverlap))

	// nothing changed
	test.ExpectEquality(t, r.bm.Len(), 1)
	test.ExpectEquality(t, g.bm.Len(), 0)
}

func TestDestinationOverlap(t *testing.T) {
	r := newStore("m.r")
	s := newStore("m.s")
	f := newStore("f")

	test.DemandSuccess(t, r.bm.MapBits(bitrange.New(0, 3), bitrange.New(0, 3), f))
	err := s.bm.MapBits(bitrange.New(0, 1), bitrange.New(2, 3), f)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, faults.DestinationInterval))

	// non-overlapping bits of the same field from another register are fine
	test.ExpectSuccess(t, s.bm.MapBits(bitrange.New(0, 1), bitrange.New(4, 5), f))
	test.ExpectEquality(t, f.bm.Len(), 2)

	// the same register cannot drive the same field bits from two places
	err = r.bm.MapBits(bitrange.New(8, 11), bitrange.New(0, 3), f)
	test.ExpectSuccess(t, curated.Is(err, faults.DestinationInterval))
}

func TestWidthMismatch(t *testing.T) {
	r := newStore("m.r")
	f := newStore("m.r.f")
	err := r.bm.MapBits(bitrange.New(0, 3), bitrange.New(0, 4), f)
	test.ExpectSuccess(t, curated.Is(err, faults.Configuration))
}

func TestUnmap(t *testing.T) {
	r := newStore("m.r")
	f := newStore("m.r.f")

	test.DemandSuccess(t, r.bm.MapBits(bitrange.New(0, 3), bitrange.New(0, 3), f))
	test.DemandSuccess(t, r.bm.MapBits(bitrange.New(8, 9), bitrange.New(4, 5), f))
	test.ExpectFailure(t, r.bm.Unmap(bitrange.New(0, 2)))
	test.ExpectSuccess(t, r.bm.Unmap(bitrange.New(0, 3)))
	test.ExpectEquality(t, f.bm.Len(), 1)

	removed := r.bm.UnmapDestination(f)
	test.ExpectEquality(t, len(removed), 1)
	test.ExpectEquality(t, r.bm.Len(), 0)
	test.ExpectEquality(t, f.bm.Len(), 0)
}

func TestContiguous(t *testing.T) {
	r := newStore("m.r")
	f := newStore("m.r.f")
	g := newStore("m.r.g")

	test.DemandSuccess(t, r.bm.MapBits(bitrange.New(13, 18), bitrange.New(0, 5), g))
	test.DemandSuccess(t, r.bm.MapBits(bitrange.New(0, 10), bitrange.New(0, 10), f))

	spans := r.bm.Contiguous(24)
	test.DemandEquality(t, len(spans), 4)
	test.ExpectEquality(t, spans[0].Interval, bitrange.New(0, 10))
	test.ExpectEquality(t, spans[0].Mapping.Destination, bitmap.Store(f))
	test.ExpectSuccess(t, spans[1].Reserved())
	test.ExpectEquality(t, spans[1].Interval, bitrange.New(11, 12))
	test.ExpectEquality(t, spans[2].Mapping.Destination, bitmap.Store(g))
	test.ExpectSuccess(t, spans[3].Reserved())
	test.ExpectEquality(t, spans[3].Interval, bitrange.New(19, 23))

	// the view does not alter the bitmap
	test.ExpectEquality(t, r.bm.Len(), 2)

	h, ok := r.bm.HighestBit()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, h, 18)
}
