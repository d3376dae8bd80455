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

// Package logger is the central log for the application. Entries are tagged
// and kept in a bounded list. Adjacent entries with the same tag and detail
// are collapsed into a single entry with a repeat count.
//
// Every log request is accompanied by a Permission. The Allow permission can
// be used when the entry should always be made. Other implementations of the
// Permission interface decide for themselves, for example a register map only
// allows trace entries when tracing has been requested for that map.
//
// The central log can be echoed to an io.Writer with SetEcho(). The Colorizer
// type can be used to highlight the tag part of each echoed entry when the
// output is a terminal.
package logger
