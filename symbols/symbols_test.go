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

package symbols_test

import (
	"testing"

	"github.com/jetsetilly/regmap/curated"
	"github.com/jetsetilly/regmap/registermap"
	"github.com/jetsetilly/regmap/registermap/bitrange"
	"github.com/jetsetilly/regmap/symbols"
	"github.com/jetsetilly/regmap/test"
)

func device(t *testing.T) *registermap.RegisterMap {
	t.Helper()

	rm := registermap.NewRegisterMap()
	test.DemandSuccess(t, rm.Memory().SetAddressBits(16))
	test.DemandSuccess(t, rm.Memory().SetBaseAddress(0x1000))

	uart, err := rm.AddModule("uart")
	test.DemandSuccess(t, err)
	ctrl, err := uart.AddRegister("ctrl")
	test.DemandSuccess(t, err)
	_, err = ctrl.AddField("en", bitrange.Bit(0))
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, ctrl.SetMode(registermap.WriteOnly))
	data, err := uart.AddRegister("data")
	test.DemandSuccess(t, err)
	_, err = data.AddField("value", bitrange.New(0, 15))
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, data.SetMode(registermap.ReadOnly))
	test.DemandSuccess(t, uart.SetAlignment(4))
	test.DemandSuccess(t, uart.SetInstances(2))

	return rm
}

func TestTables(t *testing.T) {
	sym, err := symbols.NewSymbols(device(t))
	test.DemandSuccess(t, err)

	expected := "Labels\n------\n" +
		"0x1000 -> uart[0]\n" +
		"0x1004 -> uart[1]\n" +
		"\nRead Symbols\n------------\n" +
		"0x1001 -> uart[0].data\n" +
		"0x1005 -> uart[1].data\n" +
		"\nWrite Symbols\n-------------\n" +
		"0x1000 -> uart[0].ctrl\n" +
		"0x1004 -> uart[1].ctrl\n"

	test.ExpectEquality(t, sym.String(), expected)
	test.ExpectEquality(t, sym.Read().MaxWidth(), len("uart[0].data"))
	test.ExpectEquality(t, sym.Label().Len(), 2)
}

func TestSearch(t *testing.T) {
	sym, err := symbols.NewSymbols(device(t))
	test.DemandSuccess(t, err)

	res := sym.Search("UART[1].CTRL", symbols.SearchAll)
	test.DemandSuccess(t, res != nil)
	test.ExpectEquality(t, res.Table, symbols.SearchWrite)
	test.ExpectEquality(t, res.Address, uint64(0x1004))

	res = sym.Search("uart[1].ctrl", symbols.SearchRead)
	test.ExpectSuccess(t, res == nil)

	res = sym.Search("uart[0]", symbols.SearchAll)
	test.DemandSuccess(t, res != nil)
	test.ExpectEquality(t, res.Table, symbols.SearchLabel)
	test.ExpectEquality(t, res.Span, uint64(3))
}

func TestReverseSearch(t *testing.T) {
	sym, err := symbols.NewSymbols(device(t))
	test.DemandSuccess(t, err)

	// second memory unit of the data register
	res := sym.ReverseSearch(0x1006, symbols.SearchAll)
	test.DemandSuccess(t, res != nil)
	test.ExpectEquality(t, res.Symbol, "uart[1].data")

	res = sym.ReverseSearch(0x1006, symbols.SearchLabel)
	test.DemandSuccess(t, res != nil)
	test.ExpectEquality(t, res.Symbol, "uart[1]")

	// padding between instances
	res = sym.ReverseSearch(0x1003, symbols.SearchAll)
	test.ExpectSuccess(t, res == nil)
}

func TestUnresolved(t *testing.T) {
	rm := device(t)
	test.DemandSuccess(t, rm.Memory().ClearBaseAddress())
	_, err := symbols.NewSymbols(rm)
	test.ExpectSuccess(t, curated.Is(err, symbols.Unresolved))
}
