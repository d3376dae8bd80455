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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface and are created with the
// Errorf() function, which takes a pattern and placeholder values in the same
// way as fmt.Errorf().
//
// The pattern is the identity of a curated error. The Is() function checks
// the outermost pattern and the Has() function checks the whole chain:
//
//	const Constraint = "constraint error: %v"
//	const FixedSizeExceeded = "fixed size exceeded (%s)"
//
//	err := curated.Errorf(Constraint, curated.Errorf(FixedSizeExceeded, "uart.ctrl"))
//
//	curated.Is(err, Constraint)         // true
//	curated.Is(err, FixedSizeExceeded)  // false
//	curated.Has(err, FixedSizeExceeded) // true
//
// Patterns are best declared as constants in the package that raises them.
// Callers can then test for categories of error without parsing the error
// message.
//
// The Error() function normalises the message chain by removing duplicate
// adjacent parts. This means a function can wrap an error in a pattern that
// the error may already carry without the message stuttering:
//
//	curated.Errorf("mapfile: %v", curated.Errorf("mapfile: %v", err))
//
// produces "mapfile: <err>" and not "mapfile: mapfile: <err>".
//
// The IsAny() function answers whether the error was created by Errorf(). We
// can think of the difference as being 'expected' and 'unexpected' errors. An
// uncurated error reaching the top of the program is a sign that an error
// condition has not been considered properly.
package curated
