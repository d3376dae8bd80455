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

// Package clang emits a C header for a register map. The header defines the
// address, offset and reset value of every public register and the position
// and mask of every field. When the memory unit is a byte a struct overlay is
// also defined for every module.
package clang

import (
	"fmt"
	"io"
	"text/template"

	"github.com/jetsetilly/regmap/export"
)

const header = `{{blockcomment .License}}
/* register map {{.Name}} */
{{- with .Description}}
{{blockcomment .}}
{{- end}}

#ifndef {{upper .Name}}_H
#define {{upper .Name}}_H

#include <stdint.h>

#define {{upper .Name}}_BASE_ADDRESS {{.BaseAddress}}
{{range $m := .Modules}}
{{- $mn := upper (join $.Name $m.Name)}}
/* module {{$m.Name}} */
{{- with $m.Description}}
{{blockcomment .}}
{{- end}}
#define {{$mn}}_ADDRESS {{$m.Address}}
#define {{$mn}}_INSTANCES {{$m.Instances}}
#define {{$mn}}_STRIDE {{hex $m.Stride}}
#define {{$mn}}_INSTANCE_ADDRESS(n) ({{$mn}}_ADDRESS + (n) * {{$mn}}_STRIDE)
{{range $r := $m.Registers}}{{if $r.Public}}
{{- $rn := join $mn (upper $r.Name)}}
/* register {{$r.Name}} ({{$r.Mode}}) */
#define {{$rn}}_OFFSET {{$r.Offset}}
#define {{$rn}}_ADDRESS {{$r.Address}}
#define {{$rn}}_RESET {{$r.Reset}}
{{- range $f := $r.Fields}}{{if not $f.Reserved}}
{{- $fn := join $rn (upper $f.Name)}}
#define {{$fn}}_POS {{$f.Offset}}
#define {{$fn}}_MASK {{$f.Mask}}
{{- end}}{{end}}
{{end}}{{end}}
{{- if $.Overlay}}
typedef struct {
{{- range $r := $m.Registers}}
{{- if $r.Padding}}
	uint8_t _pad_{{$r.Name}}[{{$r.Padding}}];
{{- end}}
{{- if $r.Size}}
	{{member $r}};
{{- end}}
{{- end}}
} {{lower $.Name}}_{{$m.Name}}_t;

#define {{$mn}}(n) ((volatile {{lower $.Name}}_{{$m.Name}}_t *) {{$mn}}_INSTANCE_ADDRESS(n))
{{end}}
{{- end}}
#endif /* {{upper .Name}}_H */
`

// member returns the struct member for the register. Registers of a natural
// integer size and alignment use the stdint type of that size.
func member(r export.RegisterView) string {
	switch r.Size {
	case 1, 2, 4, 8:
		if r.OffsetUnits%r.Size == 0 {
			return fmt.Sprintf("uint%d_t %s", r.Size*8, r.Name)
		}
	}
	return fmt.Sprintf("uint8_t %s[%d]", r.Name, r.Size)
}

var tmpl = template.Must(template.New("clang").Funcs(export.Funcs()).Funcs(template.FuncMap{
	"member": member,
}).Parse(header))

// Exporter emits C headers.
type Exporter struct{}

// Language implements the export.Exporter interface.
func (Exporter) Language() string {
	return "C"
}

// Filename implements the export.Exporter interface.
func (Exporter) Filename(name string) string {
	return name + ".h"
}

// Export implements the export.Exporter interface.
func (Exporter) Export(w io.Writer, view *export.MapView, license string) error {
	data := struct {
		*export.MapView
		License string
		Overlay bool
	}{
		MapView: view,
		License: license,
		Overlay: view.MemoryUnitBits == 8,
	}
	return tmpl.Execute(w, data)
}
