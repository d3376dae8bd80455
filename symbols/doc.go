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

// Package symbols creates symbol tables from a resolved register map.
//
// There are three tables. The label table contains an entry for every
// instance of every module. The read and write tables contain an entry for
// every register instance, according to the access mode of the register. For
// example, a write-only register has no entry in the read table.
//
// Symbols are named module.register. When a module has more than one instance
// the instance index is appended to the module name in square brackets.
//
// Search() finds the address of a symbol and ReverseSearch() finds the symbol
// at an address. An address anywhere inside a register (or module) matches
// that register (or module).
package symbols
