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

package cpp_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/regmap/export"
	"github.com/jetsetilly/regmap/export/cpp"
	"github.com/jetsetilly/regmap/registermap"
	"github.com/jetsetilly/regmap/registermap/bitrange"
	"github.com/jetsetilly/regmap/test"
)

func TestHeader(t *testing.T) {
	rm := registermap.NewRegisterMap()
	test.DemandSuccess(t, rm.Memory().SetBaseAddress(0x40000000))

	m, err := rm.AddModule("timer")
	test.DemandSuccess(t, err)
	m.SetDescription("general purpose timer")
	r, err := m.AddRegister("count")
	test.DemandSuccess(t, err)
	f, err := r.AddField("value", bitrange.New(0, 31))
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, f.SetResetValue(0xffff))

	v, err := export.NewView(rm, "Soc")
	test.DemandSuccess(t, err)

	var e cpp.Exporter
	test.ExpectEquality(t, e.Filename("soc"), "soc.hpp")

	w := &strings.Builder{}
	test.DemandSuccess(t, e.Export(w, v, "line one\nline two"))
	s := w.String()

	expected := []string{
		"// line one\n// line two\n",
		"namespace soc {\n",
		"constexpr std::uintptr_t base_address = 0x40000000;\n",
		"// general purpose timer\n",
		"namespace timer {\n",
		"constexpr std::uintptr_t address = 0x40000000;\n",
		"namespace count {\n",
		"constexpr std::size_t size = 4;\n",
		"constexpr std::uint64_t reset = 0xffff;\n",
		"constexpr std::uint64_t mask = 0xffffffff;\n",
		"} // namespace value\n",
		"} // namespace soc\n",
	}
	for _, x := range expected {
		if !strings.Contains(s, x) {
			t.Errorf("missing %q", x)
		}
	}
}
