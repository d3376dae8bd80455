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

package mapfile_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/regmap/curated"
	"github.com/jetsetilly/regmap/mapfile"
	"github.com/jetsetilly/regmap/registermap"
	"github.com/jetsetilly/regmap/registermap/bitrange"
	"github.com/jetsetilly/regmap/registermap/faults"
	"github.com/jetsetilly/regmap/test"
)

const device = `
registerMap:
  description: example device
  vendor: acme
  memorySpace:
    addressBits: 16
    baseAddress: 0x1000
  modules:
    uart:
      instances: 2
      constraints:
        alignmentMemoryUnits: 4
      registers:
        ctrl:
          mode: w1c
          bitFields:
            - name: enable
              size: 1
            - name: parity
              size: 2
              resetValue: 0x1
        data:
          public: false
          bitFields:
            - name: value
              size: 16
    gpio:
      constraints:
        fixedAddress: 0x1010
      registers:
        out:
          _address: 0x9999
          bitFields:
            - name: pins
              size: 8
              resetValue: 0xff
              colour: blue
          bitmap:
            - source: [0, 7]
              destination: [0, 7]
              destinationId: gpio.out.pins
`

func TestLoad(t *testing.T) {
	rm, err := mapfile.Load([]byte(device))
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, rm.Description(), "example device")
	v, ok := rm.Parameter("vendor")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v.(string), "acme")

	test.ExpectEquality(t, registermap.MemoryMap(rm),
		"1000 -> 1002\tuart[0]\n"+
			"1000 -> 1000\t  ctrl\n"+
			"1001 -> 1002\t  data\n"+
			"1004 -> 1006\tuart[1]\n"+
			"1004 -> 1004\t  ctrl\n"+
			"1005 -> 1006\t  data\n"+
			"1010 -> 1010\tgpio\n"+
			"1010 -> 1010\t  out\n")

	uart, ok := rm.Module("uart")
	test.DemandSuccess(t, ok)
	ctrl, ok := uart.Register("ctrl")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, ctrl.Mode(), registermap.WriteOneClear)
	test.ExpectEquality(t, ctrl.ResetValue(), uint64(0x2))

	parity, ok := ctrl.Field("parity")
	test.DemandSuccess(t, ok)
	mp := ctrl.BitMap().MappingsTo(parity)
	test.DemandEquality(t, len(mp), 1)
	test.ExpectEquality(t, mp[0].Source, bitrange.New(1, 2))

	data, ok := uart.Register("data")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, data.Public(), false)
	test.ExpectEquality(t, data.SizeMemoryUnits(), uint64(2))

	gpio, ok := rm.Module("gpio")
	test.DemandSuccess(t, ok)
	out, ok := gpio.Register("out")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, len(out.ParameterKeys()), 0)
	pins, ok := out.Field("pins")
	test.DemandSuccess(t, ok)
	v, ok = pins.Parameter("colour")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v.(string), "blue")
	test.ExpectEquality(t, out.ResetValue(), uint64(0xff))
}

func TestRoundTrip(t *testing.T) {
	rm, err := mapfile.Load([]byte(device))
	test.DemandSuccess(t, err)

	// add a global field spread over two registers
	gpio, _ := rm.Module("gpio")
	r, err := gpio.AddRegister("irqlo")
	test.DemandSuccess(t, err)
	s, err := gpio.AddRegister("irqhi")
	test.DemandSuccess(t, err)
	_, err = r.MapGlobalField("irq", bitrange.New(0, 3), bitrange.New(0, 3))
	test.DemandSuccess(t, err)
	f, err := s.MapGlobalField("irq", bitrange.New(4, 7), bitrange.New(4, 7))
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, f.SetResetValue(0x81))

	b, err := mapfile.Save(rm)
	test.DemandSuccess(t, err)

	rm2, err := mapfile.Load(b)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, registermap.MemoryMap(rm2), registermap.MemoryMap(rm))

	g, ok := rm2.GlobalField("irq")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, g.SizeBits(), uint(8))
	test.ExpectEquality(t, g.ResetValue(), uint64(0x81))
	test.ExpectEquality(t, len(g.Registers()), 2)

	b2, err := mapfile.Save(rm2)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(b2), string(b))
}

func TestMissingRoot(t *testing.T) {
	_, err := mapfile.Load([]byte("modules: {}\n"))
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, faults.Parse))
	test.ExpectSuccess(t, curated.Has(err, faults.MissingKey))
}

func TestInvalidDocument(t *testing.T) {
	_, err := mapfile.Load([]byte("registerMap: [\n"))
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, faults.Parse))
}

func TestNullBaseAddress(t *testing.T) {
	rm, err := mapfile.Load([]byte(`
registerMap:
  memorySpace:
    baseAddress: null
  modules:
    a:
      registers:
        r: {}
`))
	test.DemandSuccess(t, err)
	_, ok := rm.Memory().BaseAddress()
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, registermap.MemoryMap(rm), "-------- -> --------\ta (no address)\n")

	// an absent key leaves the default base address of zero
	rm, err = mapfile.Load([]byte("registerMap:\n  modules:\n    a: {}\n"))
	test.DemandSuccess(t, err)
	a, ok := rm.Memory().BaseAddress()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, a, uint64(0))
}

func TestConstraintErrorOnLoad(t *testing.T) {
	_, err := mapfile.Load([]byte(`
registerMap:
  modules:
    a:
      constraints:
        fixedSizeMemoryUnits: 1
      registers:
        r:
          bitFields:
            - name: wide
              size: 16
`))
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, faults.Constraint))
	test.ExpectSuccess(t, curated.Has(err, faults.FixedSizeExceeded))
}

func TestBadInterval(t *testing.T) {
	_, err := mapfile.Load([]byte(`
registerMap:
  modules:
    a:
      registers:
        r:
          bitFields:
            - name: f
          bitmap:
            - source: [7, 0]
              destination: [0, 7]
              destinationId: a.r.f
`))
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, faults.Parse))
}

func TestNameKey(t *testing.T) {
	rm, err := mapfile.Load([]byte(`
registerMap:
  modules:
    a:
      name: a
      registers:
        r:
          name: r
          bitFields:
            - name: f
              size: 4
`))
	test.DemandSuccess(t, err)
	a, ok := rm.Module("a")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, len(a.ParameterKeys()), 0)
	r, ok := a.Register("r")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, len(r.ParameterKeys()), 0)

	// the name must agree with the mapping key
	_, err = mapfile.Load([]byte(`
registerMap:
  modules:
    a:
      name: b
`))
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, faults.Parse))
	test.ExpectSuccess(t, curated.Has(err, faults.InvalidValue))

	_, err = mapfile.Load([]byte(`
registerMap:
  modules:
    a:
      registers:
        r:
          name: s
`))
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, faults.Parse))
}

func TestUserParameterOrder(t *testing.T) {
	rm, err := mapfile.Load([]byte(`
registerMap:
  zeta: 1
  alpha: 2
  modules:
    a:
      mid: x
      early: y
      registers:
        r:
          bitFields:
            - name: f
              size: 1
              zz: 1
              aa: 2
`))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, strings.Join(rm.ParameterKeys(), ","), "zeta,alpha")

	a, _ := rm.Module("a")
	test.ExpectEquality(t, strings.Join(a.ParameterKeys(), ","), "mid,early")

	r, _ := a.Register("r")
	f, ok := r.Field("f")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, strings.Join(f.ParameterKeys(), ","), "zz,aa")

	// saving writes the parameters in the same order
	b, err := mapfile.Save(rm)
	test.DemandSuccess(t, err)
	s := string(b)
	test.ExpectSuccess(t, strings.Index(s, "zeta") < strings.Index(s, "alpha"))
	test.ExpectSuccess(t, strings.Index(s, "mid") < strings.Index(s, "early"))
	test.ExpectSuccess(t, strings.Index(s, "zz") < strings.Index(s, "aa"))

	rm2, err := mapfile.Load(b)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, strings.Join(rm2.ParameterKeys(), ","), "zeta,alpha")
}
