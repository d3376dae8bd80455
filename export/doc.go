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

// Package export prepares a laid out register map for the source code
// emitters in the sub-packages.
//
// The MapView type is a read-only snapshot of the register map with every
// address resolved and every value formatted. Emitters work only with the
// view and never with the register map itself. Creating a view of a register
// map that has unresolved addresses is an error.
//
// The Registry type collects the available emitters and finds them by
// language name.
package export
