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
	"io"
	"sort"
	"strings"

	"github.com/jetsetilly/regmap/curated"
)

// Exporter is implemented by the source code emitters.
type Exporter interface {
	// the name of the language. matched without regard to case
	Language() string

	// the name of the file for a map with the given name
	Filename(name string) string

	// write the view. the license text is emitted as a comment at the head
	// of the output
	Export(w io.Writer, view *MapView, license string) error
}

// Registry is a collection of exporters.
type Registry struct {
	exporters map[string]Exporter
}

// NewRegistry is the preferred method of initialisation for the Registry
// type.
func NewRegistry(exporters ...Exporter) *Registry {
	reg := &Registry{
		exporters: make(map[string]Exporter),
	}
	for _, e := range exporters {
		reg.exporters[strings.ToUpper(e.Language())] = e
	}
	return reg
}

// Lookup returns the exporter for the language.
func (reg *Registry) Lookup(language string) (Exporter, error) {
	e, ok := reg.exporters[strings.ToUpper(language)]
	if !ok {
		return nil, curated.Errorf(ExportError, curated.Errorf(UnknownLanguage, language))
	}
	return e, nil
}

// Languages returns the names of every language in the registry in
// alphabetical order.
func (reg *Registry) Languages() []string {
	l := make([]string, 0, len(reg.exporters))
	for k := range reg.exporters {
		l = append(l, k)
	}
	sort.Strings(l)
	return l
}
