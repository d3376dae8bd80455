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

// Package registermap lays out the registers of a hardware device in a
// memory space.
//
// A RegisterMap is an ordered list of modules. A Module is an ordered list of
// registers and can be instantiated more than once. A Register is a number of
// memory units wide and its bits are mapped onto fields. A Field is either
// local to a single register or global to the register map, in which case
// the bits of the field can be spread over registers in different modules.
//
// Every module and register is placed at the first free address after its
// predecessor, subject to its constraints (see the constraints package) and
// to the page registers of the memory space (see the memory package). The
// first module is placed at the base address of the memory space. If there is
// no base address then elements have no address unless they have a fixed
// address constraint, in which case their successors are placed relative to
// it.
//
// Every change to the register map is applied and then the layout is
// recomputed from the first affected module forward. If the new layout breaks
// a constraint, the change is undone and the error returned, so a register
// map is always in a valid state.
//
// A RegisterMap is not safe for concurrent use.
package registermap
