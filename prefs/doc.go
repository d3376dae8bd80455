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

// Package prefs provides typed preference values with optional hooks, and the
// Disk type to save and load them.
//
// Preference values are declared and added to a Disk under a key:
//
//	dsk, err := prefs.NewDisk(pth)
//	var bits prefs.Int
//	err = dsk.Add("memory.addressBits", &bits)
//	err = dsk.Load()
//
// The preferences file contains a line for every key:
//
//	memory.addressBits :: 32
//
// Saving a Disk does not remove keys from the file that have been added to a
// different Disk. Many Disk instances can therefore share the same file.
//
// Values can be overridden from the command line. The string given to
// PushCommandLineStack() is a list of key::value pairs separated by
// semi-colons. Values in the top group of the stack are applied by Load()
// after the file has been read. Each command line value is used once.
package prefs
