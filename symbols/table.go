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

package symbols

import (
	"fmt"
	"sort"
	"strings"
)

// Entry is a single symbol in a Table.
type Entry struct {
	Address uint64
	Span    uint64
	Symbol  string
}

// Table maps addresses to symbols. Entries are kept in address order.
type Table struct {
	entries []Entry

	// the longest symbol in the table
	maxWidth int
}

func (t *Table) String() string {
	s := strings.Builder{}
	for _, e := range t.entries {
		s.WriteString(fmt.Sprintf("%#x -> %s\n", e.Address, e.Symbol))
	}
	return s.String()
}

// Entries returns a copy of the entries in the table.
func (t *Table) Entries() []Entry {
	c := make([]Entry, len(t.entries))
	copy(c, t.entries)
	return c
}

// MaxWidth returns the length of the longest symbol in the table.
func (t *Table) MaxWidth() int {
	return t.maxWidth
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

func (t *Table) add(address uint64, span uint64, symbol string) {
	i := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].Address > address
	})
	t.entries = append(t.entries, Entry{})
	copy(t.entries[i+1:], t.entries[i:])
	t.entries[i] = Entry{Address: address, Span: span, Symbol: symbol}

	if len(symbol) > t.maxWidth {
		t.maxWidth = len(symbol)
	}
}

// search is case insensitive. symbol should be in upper case.
func (t *Table) search(symbol string) (Entry, bool) {
	for _, e := range t.entries {
		if strings.ToUpper(e.Symbol) == symbol {
			return e, true
		}
	}
	return Entry{}, false
}

// reverse finds the entry that covers the address. entries with a zero span
// only match their own address.
func (t *Table) reverse(address uint64) (Entry, bool) {
	i := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].Address > address
	})
	for i--; i >= 0; i-- {
		e := t.entries[i]
		if e.Address == address || address-e.Address < e.Span {
			return e, true
		}
	}
	return Entry{}, false
}
