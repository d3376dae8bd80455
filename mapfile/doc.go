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

// Package mapfile loads and saves register maps as YAML documents.
//
// The root of the document is the registerMap key:
//
//	registerMap:
//	  description: example device
//	  memorySpace:
//	    addressBits: 32
//	    baseAddress: 0x40000000
//	    memoryUnitBits: 8
//	  modules:
//	    uart:
//	      instances: 2
//	      constraints:
//	        alignmentMemoryUnits: 0x10
//	      registers:
//	        ctrl:
//	          mode: rw
//	          bitFields:
//	            - name: enable
//	              size: 1
//	            - name: parity
//	              size: 2
//	              resetValue: 0x1
//
// Keys beginning with an underscore (_address, _spanMemoryUnits, etc.) are
// derived from the layout. They are written by Save() for the benefit of the
// reader and ignored by Load(). Keys that are not recognised are loaded as
// user parameters of the element they appear in.
//
// The bitmap key of a register lists the mapping of register bits to field
// bits. If it is absent, the fields in bitFields are packed into the register
// in order, starting at bit zero.
//
// A baseAddress of null means that the memory space has no base address. If
// the key is absent the default base address of zero is used.
package mapfile
