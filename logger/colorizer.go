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

package logger

import (
	"io"
	"strings"
)

// CSI sequences used by the Colorizer.
const (
	tagPen    = "\033[36m"
	normalPen = "\033[0m"
)

// Colorizer applies ANSI colour to the tag part of every line written to it.
// It should only be used when the underlying io.Writer is a terminal.
type Colorizer struct {
	out io.Writer
}

// NewColorizer is the preferred method of initialisation for the Colorizer
// type.
func NewColorizer(out io.Writer) Colorizer {
	return Colorizer{out: out}
}

// Write implements the io.Writer interface.
func (c Colorizer) Write(p []byte) (n int, err error) {
	s := strings.Builder{}

	for _, l := range strings.SplitAfter(string(p), "\n") {
		if l == "" {
			continue
		}
		tag, detail, ok := strings.Cut(l, ": ")
		if !ok {
			s.WriteString(l)
			continue
		}
		s.WriteString(tagPen)
		s.WriteString(tag)
		s.WriteString(normalPen)
		s.WriteString(": ")
		s.WriteString(detail)
	}

	_, err = c.out.Write([]byte(s.String()))
	if err != nil {
		return 0, err
	}

	return len(p), nil
}
