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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It handles program modes (and sub-modes) and allows different
// flags for each mode.
//
// Arguments are given to NewArgs() and then Parse() is called with no
// arguments:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("EXPORT", "SUMMARY", "DUMP", "BUILD")
//	log := md.AddBool("log", false, "echo log to stderr")
//	p, err := md.Parse()
//	switch p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
// A mode is a special command line argument that puts the program into a
// different mode of operation, each with its own flags and arguments. After
// the flags, Parse() checks whether the next argument is one of the
// sub-modes. Sub-mode comparisons are case insensitive. If no sub-mode is
// given the first sub-mode in the list is the default, unless
// RequireSubMode() has been called.
//
// Once the mode has been decided NewMode() begins a new layer of flags for
// the remaining arguments:
//
//	switch md.Mode() {
//	case "EXPORT":
//		md.NewMode()
//		name := md.AddString("n", "", "name of the register map")
//		p, err := md.Parse()
//		...
//	}
//
// Arguments that are neither flags nor sub-modes are returned by
// RemainingArgs() and GetArg(). ConsumeArg() takes the next argument, which
// allows a positional argument to come before the flags of the next layer:
//
//	regmap EXPORT map.yaml -n soc C -o out
//
// Modes can be chained as deep as required. Path() returns every mode
// encountered during parsing, separated by a forward slash.
package modalflag
