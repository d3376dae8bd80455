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
	"strings"
)

// SearchTable is used to select and identify a symbol table when searching.
type SearchTable int

func (t SearchTable) String() string {
	switch t {
	case SearchAll:
		return "unspecified"
	case SearchLabel:
		return "label"
	case SearchRead:
		return "read"
	case SearchWrite:
		return "write"
	}

	return ""
}

// List of valid symbol table identifiers.
const (
	SearchAll SearchTable = iota
	SearchLabel
	SearchRead
	SearchWrite
)

// SearchResults contains the normalised symbol info found in the SearchTable.
type SearchResults struct {
	Table SearchTable
	Entry
}

func (sym *Symbols) tables(target SearchTable) []SearchTable {
	if target == SearchAll {
		return []SearchTable{SearchLabel, SearchRead, SearchWrite}
	}
	return []SearchTable{target}
}

func (sym *Symbols) table(target SearchTable) *Table {
	switch target {
	case SearchLabel:
		return sym.label
	case SearchRead:
		return sym.read
	case SearchWrite:
		return sym.write
	}
	return nil
}

// Search returns the address of the supplied search string. Returns nil if
// the symbol cannot be found.
//
// Matching is case-insensitive and when target is SearchAll the search order
// is: label > read > write.
func (sym *Symbols) Search(symbol string, target SearchTable) *SearchResults {
	sym.crit.Lock()
	defer sym.crit.Unlock()

	symbol = strings.ToUpper(symbol)
	for _, t := range sym.tables(target) {
		if e, ok := sym.table(t).search(symbol); ok {
			return &SearchResults{Table: t, Entry: e}
		}
	}

	return nil
}

// ReverseSearch returns the symbol covering the specified address. Returns nil
// if no symbol covers the address.
//
// When target is SearchAll the search order is: read > write > label.
// Registers are preferred over modules because they are more specific.
func (sym *Symbols) ReverseSearch(address uint64, target SearchTable) *SearchResults {
	sym.crit.Lock()
	defer sym.crit.Unlock()

	order := sym.tables(target)
	if target == SearchAll {
		order = []SearchTable{SearchRead, SearchWrite, SearchLabel}
	}

	for _, t := range order {
		if e, ok := sym.table(t).reverse(address); ok {
			return &SearchResults{Table: t, Entry: e}
		}
	}

	return nil
}
