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

package export

import (
	"strings"
	"text/template"
	"unicode"
)

// LineComment formats text as a block of line comments using the prefix. Empty
// lines are commented with the prefix alone.
func LineComment(text string, prefix string) string {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return ""
	}
	s := strings.Builder{}
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimRight(l, " \t")
		if l == "" {
			s.WriteString(prefix)
		} else {
			s.WriteString(prefix)
			s.WriteString(" ")
			s.WriteString(l)
		}
		s.WriteString("\n")
	}
	return s.String()
}

// BlockComment formats text as a C style block comment.
func BlockComment(text string) string {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return ""
	}
	// a block comment cannot contain the end of comment sequence
	text = strings.ReplaceAll(text, "*/", "* /")
	return "/*\n" + LineComment(text, " *") + " */\n"
}

// Camel converts an identifier to the exported camel case form used by Go.
// Underscores separate words.
func Camel(s string) string {
	b := strings.Builder{}
	for _, w := range strings.Split(s, "_") {
		if w == "" {
			continue
		}
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	if b.Len() == 0 {
		return "X"
	}
	return b.String()
}

// Funcs returns the template functions shared by every emitter.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"camel": Camel,
		"hex": func(v uint64) string {
			return Hex(v)
		},
		"linecomment":  LineComment,
		"blockcomment": BlockComment,
		"join": func(parts ...string) string {
			return strings.Join(parts, "_")
		},
	}
}
