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

// Package script builds register maps from Lua declaration scripts.
//
// A script declares the memory space and then the modules, registers and
// fields of the register map:
//
//	memory{addressBits = 16, baseAddress = 0x1000}
//	description("example device")
//
//	local uart = module("uart", {alignment = 4, instances = 2})
//	local ctrl = uart:register("ctrl", {mode = "rw"})
//	ctrl:field("enable", 0)
//	ctrl:field("parity", 1, 2, {reset = 1})
//	uart:register("data"):field("value", 0, 15)
//
//	print(string.format("uart span %d", uart:span()))
//
// Globals:
//
//	memory{addressBits=, memoryUnitBits=, baseAddress=, pageSize=}
//	description(s)
//	summary(s)
//	module(name [, opts]) -> module
//
// Module methods:
//
//	register(name [, opts]) -> register
//	instances(n)
//	constrain(opts)
//	address() -> number or nil
//	span() -> number
//
// Register methods:
//
//	field(name, low [, high [, opts]]) -> register
//	globalField(name, low, high [, opts]) -> register
//	constrain(opts)
//	address() -> number or nil
//	size() -> number
//
// The opts table accepts the keys fixedAddress, alignment, fixedSize,
// description, summary, mode, public, reset, fieldLow, fieldHigh and
// instances, depending on what is being declared. Any other key is set as a
// user parameter of the element.
//
// Addresses and sizes can be given as numbers or as strings. The string form
// is useful for 64 bit addresses that cannot be represented exactly by a Lua
// number. A baseAddress or pageSize of false clears the value.
//
// Only the base, table, string and math libraries are available to scripts.
// The print() function writes to the central logger.
package script
