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

// Package bitmap records which bits of one store (a register) correspond to
// which bits of another store (a field).
//
// Every mapping is recorded twice. The source store records the mapping keyed
// by its own bit interval and the destination store records a mirror keyed by
// the destination bit interval. Keys are never allowed to overlap within a
// single BitMap, so no two source intervals in a register share a bit and no
// two registers drive the same bit of a field.
package bitmap

import (
	"sort"

	"github.com/jetsetilly/regmap/registermap/bitrange"
	"github.com/jetsetilly/regmap/registermap/faults"
)

// Store is implemented by types that own a BitMap.
type Store interface {
	BitMap() *BitMap
	CanonicalID() string
}

// Mapping associates a bit interval of the owning store with a bit interval
// of another store. In a mirror entry, Source is the interval of the owning
// (destination) store and Destination is the original source store.
type Mapping struct {
	Source          bitrange.Interval
	Destination     Store
	DestinationBits bitrange.Interval
}

// BitMap is the list of mappings owned by a Store. Mappings are kept sorted by
// source interval.
type BitMap struct {
	owner    Store
	mappings []Mapping
}

// NewBitMap is the preferred method of initialisation for the BitMap type.
func NewBitMap(owner Store) *BitMap {
	return &BitMap{owner: owner}
}

// Owner returns the store that owns the BitMap.
func (bm *BitMap) Owner() Store {
	return bm.owner
}

// Len returns the number of mappings.
func (bm *BitMap) Len() int {
	return len(bm.mappings)
}

// Mappings returns a copy of the mappings, sorted by source interval.
func (bm *BitMap) Mappings() []Mapping {
	c := make([]Mapping, len(bm.mappings))
	copy(c, bm.mappings)
	return c
}

// Lookup returns the mapping with exactly the source interval.
func (bm *BitMap) Lookup(source bitrange.Interval) (Mapping, bool) {
	if i := bm.index(source); i >= 0 {
		return bm.mappings[i], true
	}
	return Mapping{}, false
}

// MappingsTo returns the mappings whose destination is the specified store.
func (bm *BitMap) MappingsTo(dest Store) []Mapping {
	var c []Mapping
	for _, m := range bm.mappings {
		if m.Destination == dest {
			c = append(c, m)
		}
	}
	return c
}

// Destinations returns the distinct destination stores in source interval
// order.
func (bm *BitMap) Destinations() []Store {
	var d []Store
	seen := make(map[Store]bool)
	for _, m := range bm.mappings {
		if !seen[m.Destination] {
			seen[m.Destination] = true
			d = append(d, m.Destination)
		}
	}
	return d
}

// HighestBit returns the highest source bit of any mapping. Returns false if
// there are no mappings.
func (bm *BitMap) HighestBit() (uint, bool) {
	if len(bm.mappings) == 0 {
		return 0, false
	}
	var h uint
	for _, m := range bm.mappings {
		if m.Source.High > h {
			h = m.Source.High
		}
	}
	return h, true
}

func (bm *BitMap) index(source bitrange.Interval) int {
	for i, m := range bm.mappings {
		if m.Source == source {
			return i
		}
	}
	return -1
}

func (bm *BitMap) insert(m Mapping) {
	bm.mappings = append(bm.mappings, m)
	sort.SliceStable(bm.mappings, func(i, j int) bool {
		return bitrange.Less(bm.mappings[i].Source, bm.mappings[j].Source)
	})
}

func (bm *BitMap) remove(source bitrange.Interval, dest Store) {
	for i, m := range bm.mappings {
		if m.Source == source && m.Destination == dest {
			bm.mappings = append(bm.mappings[:i], bm.mappings[i+1:]...)
			return
		}
	}
}

// MapBits maps the source interval of the owning store onto the destination
// interval of the destination store. The two intervals must be the same width.
//
// Mapping a source interval that is already present replaces the existing
// mapping, including its mirror in the old destination. Mapping the same
// arguments twice therefore leaves the BitMap unchanged.
//
// A source interval that partially overlaps an existing source interval is a
// configuration error. A destination interval that overlaps a destination
// interval already claimed by a different source is a destination interval
// error. Nothing is changed if an error is returned.
func (bm *BitMap) MapBits(source bitrange.Interval, destBits bitrange.Interval, dest Store) error {
	if dest == nil {
		return faults.Errorf(faults.Configuration, faults.NotFound, "destination", bm.owner.CanonicalID())
	}

	if dest == bm.owner {
		return faults.Errorf(faults.Configuration, faults.InvalidInterval, "mapping onto self")
	}

	if source.Width() != destBits.Width() {
		return faults.Errorf(faults.Configuration, faults.InvalidInterval,
			source.String()+" does not match "+destBits.String())
	}

	idx := bm.index(source)

	for i, m := range bm.mappings {
		if i != idx && m.Source.Overlaps(source) {
			return faults.Errorf(faults.Configuration, faults.SourceOverlap, bm.owner.CanonicalID(), source)
		}
	}

	var prev Mapping
	if idx >= 0 {
		prev = bm.mappings[idx]
	}

	for _, m := range dest.BitMap().mappings {
		if !m.Source.Overlaps(destBits) {
			continue
		}

		// the mirror of the mapping being replaced does not count
		replaced := idx >= 0 && prev.Destination == dest &&
			m.Source == prev.DestinationBits && m.Destination == bm.owner
		if !replaced {
			return faults.Errorf(faults.DestinationInterval, faults.DestinationOverlap, dest.CanonicalID(), destBits)
		}
	}

	if idx >= 0 {
		prev.Destination.BitMap().remove(prev.DestinationBits, bm.owner)
		bm.mappings[idx] = Mapping{Source: source, Destination: dest, DestinationBits: destBits}
	} else {
		bm.insert(Mapping{Source: source, Destination: dest, DestinationBits: destBits})
	}

	dest.BitMap().insert(Mapping{Source: destBits, Destination: bm.owner, DestinationBits: source})

	return nil
}

// Unmap removes the mapping with exactly the source interval, along with its
// mirror. Returns false if there was no such mapping.
func (bm *BitMap) Unmap(source bitrange.Interval) bool {
	idx := bm.index(source)
	if idx < 0 {
		return false
	}

	m := bm.mappings[idx]
	m.Destination.BitMap().remove(m.DestinationBits, bm.owner)
	bm.mappings = append(bm.mappings[:idx], bm.mappings[idx+1:]...)

	return true
}

// UnmapDestination removes every mapping to the destination store. Returns the
// removed mappings.
func (bm *BitMap) UnmapDestination(dest Store) []Mapping {
	removed := bm.MappingsTo(dest)
	for _, m := range removed {
		bm.Unmap(m.Source)
	}
	return removed
}

// Clear removes every mapping from the BitMap. Mirror entries in other stores
// are removed too, whichever side of the mapping this BitMap is on.
func (bm *BitMap) Clear() {
	for _, m := range bm.Mappings() {
		m.Destination.BitMap().remove(m.DestinationBits, bm.owner)
	}
	bm.mappings = bm.mappings[:0]
}

// Span is an entry in the contiguous view of a BitMap. Mapping is nil for
// spans that are not assigned to any destination.
type Span struct {
	Interval bitrange.Interval
	Mapping  *Mapping
}

// Reserved returns true if the span is not assigned to a destination.
func (s Span) Reserved() bool {
	return s.Mapping == nil
}

// Contiguous returns the mappings of the BitMap in source interval order with
// the gaps between them filled by unassigned spans. The view covers bits zero
// to width-1, extended as necessary to cover all mappings.
//
// The BitMap is not changed.
func (bm *BitMap) Contiguous(width uint) []Span {
	spans := make([]Span, 0, len(bm.mappings)*2+1)

	var next uint
	for i := range bm.mappings {
		m := bm.mappings[i]
		if m.Source.Low > next {
			spans = append(spans, Span{Interval: bitrange.New(next, m.Source.Low-1)})
		}
		spans = append(spans, Span{Interval: m.Source, Mapping: &m})
		next = m.Source.High + 1
	}

	if width > next {
		spans = append(spans, Span{Interval: bitrange.New(next, width-1)})
	}

	return spans
}
