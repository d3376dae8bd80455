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

package golang_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/regmap/export"
	"github.com/jetsetilly/regmap/export/golang"
	"github.com/jetsetilly/regmap/registermap"
	"github.com/jetsetilly/regmap/registermap/bitrange"
	"github.com/jetsetilly/regmap/test"
)

func TestPackage(t *testing.T) {
	rm := registermap.NewRegisterMap()
	test.DemandSuccess(t, rm.Memory().SetAddressBits(16))
	test.DemandSuccess(t, rm.Memory().SetBaseAddress(0x1000))
	rm.SetDescription("example device")

	m, err := rm.AddModule("uart")
	test.DemandSuccess(t, err)
	r, err := m.AddRegister("line_ctrl")
	test.DemandSuccess(t, err)
	_, err = r.AddField("enable", bitrange.Bit(0))
	test.DemandSuccess(t, err)
	_, err = r.AddField("parity", bitrange.New(1, 2))
	test.DemandSuccess(t, err)

	v, err := export.NewView(rm, "Dev")
	test.DemandSuccess(t, err)

	var e golang.Exporter
	test.ExpectEquality(t, e.Filename("dev"), "dev.go")

	w := &strings.Builder{}
	test.DemandSuccess(t, e.Export(w, v, "Copyright (c) acme"))
	s := w.String()

	expected := []string{
		"// Copyright (c) acme\n",
		"// Code generated by regmap. DO NOT EDIT.\n",
		"// example device\n",
		"package dev\n",
		"const BaseAddress = 0x1000\n",
		"func UartInstanceAddress(n int) uintptr {\n\treturn uintptr(UartAddress) + uintptr(n)*UartStride\n}\n",
		"type UartLineCtrlValue uint64\n",
		"func (v UartLineCtrlValue) Parity() uint64 {\n\treturn (uint64(v) & 0x6) >> 1\n}\n",
		"func (v UartLineCtrlValue) SetEnable(f uint64) UartLineCtrlValue {\n",
	}
	for _, x := range expected {
		if !strings.Contains(s, x) {
			t.Errorf("missing %q", x)
		}
	}

	// reserved bits have no accessors
	test.ExpectFailure(t, strings.Contains(s, "Reserved"))
}
