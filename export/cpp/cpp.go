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

// Package cpp emits a C++ header for a register map. Every module, register
// and field is a namespace of constexpr values.
package cpp

import (
	"io"
	"text/template"

	"github.com/jetsetilly/regmap/export"
)

const header = `{{linecomment .License "//"}}
// register map {{.Name}}
{{- with .Description}}
{{linecomment . "//"}}
{{- end}}

#pragma once

#include <cstddef>
#include <cstdint>

namespace {{lower .Name}} {

constexpr std::uintptr_t base_address = {{.BaseAddress}};
{{range $m := .Modules}}
{{- with $m.Description}}
{{linecomment . "//"}}
{{- end}}
namespace {{$m.Name}} {
constexpr std::uintptr_t address = {{$m.Address}};
constexpr std::size_t instances = {{$m.Instances}};
constexpr std::size_t stride = {{hex $m.Stride}};

constexpr std::uintptr_t instance_address(std::size_t n) {
    return address + n * stride;
}
{{range $r := $m.Registers}}{{if $r.Public}}
namespace {{$r.Name}} {
constexpr std::uintptr_t offset = {{$r.Offset}};
constexpr std::uintptr_t address = {{$r.Address}};
constexpr std::size_t size = {{$r.Size}};
constexpr std::uint64_t reset = {{$r.Reset}};
{{- range $f := $r.Fields}}{{if not $f.Reserved}}
namespace {{$f.Name}} {
constexpr unsigned pos = {{$f.Offset}};
constexpr unsigned width = {{$f.Size}};
constexpr std::uint64_t mask = {{$f.Mask}};
constexpr std::uint64_t reset = {{$f.Reset}};
} // namespace {{$f.Name}}
{{- end}}{{end}}
} // namespace {{$r.Name}}
{{end}}{{end}}
} // namespace {{$m.Name}}
{{end}}
} // namespace {{lower .Name}}
`

var tmpl = template.Must(template.New("cpp").Funcs(export.Funcs()).Parse(header))

// Exporter emits C++ headers.
type Exporter struct{}

// Language implements the export.Exporter interface.
func (Exporter) Language() string {
	return "CPP"
}

// Filename implements the export.Exporter interface.
func (Exporter) Filename(name string) string {
	return name + ".hpp"
}

// Export implements the export.Exporter interface.
func (Exporter) Export(w io.Writer, view *export.MapView, license string) error {
	data := struct {
		*export.MapView
		License string
	}{
		MapView: view,
		License: license,
	}
	return tmpl.Execute(w, data)
}
