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

// Package golang emits a Go package for a register map. The package has
// address constants for every module and register and a value type for every
// register with accessors for its fields.
//
// The output is formatted with the go/format package. A template that
// produced invalid Go is caught by the formatter and returned as an error.
package golang

import (
	"bytes"
	"go/format"
	"io"
	"text/template"

	"github.com/jetsetilly/regmap/curated"
	"github.com/jetsetilly/regmap/export"
)

const source = `{{linecomment .License "//"}}
// Code generated by regmap. DO NOT EDIT.

// Package {{lower .Name}} is the register map {{.Name}}.
{{- with .Description}}
//
{{linecomment . "//"}}{{else}}
{{end -}}
package {{lower .Name}}

// BaseAddress is the base address of the memory space.
const BaseAddress = {{.BaseAddress}}
{{range $m := .Modules}}
{{- $mn := camel $m.Name}}
// {{$mn}} module.
const (
	{{$mn}}Address = {{$m.Address}}
	{{$mn}}Instances = {{$m.Instances}}
	{{$mn}}Stride = {{hex $m.Stride}}
)

// {{$mn}}InstanceAddress returns the address of an instance of the {{$m.Name}} module.
func {{$mn}}InstanceAddress(n int) uintptr {
	return uintptr({{$mn}}Address) + uintptr(n)*{{$mn}}Stride
}
{{range $r := $m.Registers}}{{if $r.Public}}
{{- $rn := printf "%s%s" $mn (camel $r.Name)}}
// {{$rn}} register ({{$r.Mode}}).
const (
	{{$rn}}Offset = {{$r.Offset}}
	{{$rn}}Address = {{$r.Address}}
	{{$rn}}Reset = {{$r.Reset}}
)

// {{$rn}}Value is the value of the {{$r.Name}} register.
type {{$rn}}Value uint64
{{range $f := $r.Fields}}{{if not $f.Reserved}}
{{- $fn := camel $f.Name}}
// {{$fn}} returns the {{$f.Name}} field.
func (v {{$rn}}Value) {{$fn}}() uint64 {
	return (uint64(v) & {{$f.Mask}}) >> {{$f.Offset}}
}

// Set{{$fn}} returns the value with the {{$f.Name}} field replaced.
func (v {{$rn}}Value) Set{{$fn}}(f uint64) {{$rn}}Value {
	return {{$rn}}Value((uint64(v) &^ {{$f.Mask}}) | ((f << {{$f.Offset}}) & {{$f.Mask}}))
}
{{end}}{{end}}
{{- end}}{{end}}
{{- end}}
`

// Error patterns.
const (
	FormatError = "formatting generated source: %v"
)

var tmpl = template.Must(template.New("golang").Funcs(export.Funcs()).Parse(source))

// Exporter emits Go packages.
type Exporter struct{}

// Language implements the export.Exporter interface.
func (Exporter) Language() string {
	return "GO"
}

// Filename implements the export.Exporter interface.
func (Exporter) Filename(name string) string {
	return name + ".go"
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

	var b bytes.Buffer
	if err := tmpl.Execute(&b, data); err != nil {
		return err
	}

	src, err := format.Source(b.Bytes())
	if err != nil {
		return curated.Errorf(export.ExportError, curated.Errorf(FormatError, err))
	}

	_, err = w.Write(src)
	return err
}
