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

package script

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/jetsetilly/regmap/registermap"
	"github.com/jetsetilly/regmap/registermap/bitrange"
	"github.com/jetsetilly/regmap/registermap/constraints"
	lua "github.com/yuin/gopher-lua"
)

// toUint64 converts a number or a numeric string to an unsigned integer.
func toUint64(v lua.LValue) (uint64, bool) {
	switch v := v.(type) {
	case lua.LNumber:
		f := float64(v)
		if f < 0 || f != math.Trunc(f) || f >= 1<<64 {
			return 0, false
		}
		return uint64(f), true
	case lua.LString:
		n, err := strconv.ParseUint(string(v), 0, 64)
		return n, err == nil
	}
	return 0, false
}

// checkUint64 returns argument n as an unsigned integer or raises an error.
func checkUint64(L *lua.LState, n int) uint64 {
	v, ok := toUint64(L.Get(n))
	if !ok {
		L.ArgError(n, "unsigned integer expected")
	}
	return v
}

// number pushes an unsigned integer or nil if ok is false.
func number(L *lua.LState, v uint64, ok bool) int {
	if ok {
		L.Push(lua.LNumber(v))
	} else {
		L.Push(lua.LNil)
	}
	return 1
}

// option is a single entry of an opts table.
type option struct {
	key   string
	value lua.LValue
}

// options returns the entries of the opts table at argument n in key order.
// The table is optional.
func options(L *lua.LState, n int) []option {
	tbl := L.OptTable(n, nil)
	if tbl == nil {
		return nil
	}

	var opts []option
	tbl.ForEach(func(k lua.LValue, v lua.LValue) {
		ks, ok := k.(lua.LString)
		if !ok {
			L.ArgError(n, fmt.Sprintf("option key must be a string (%s)", k.String()))
		}
		opts = append(opts, option{key: string(ks), value: v})
	})

	// iteration order of a Lua table is not defined. sorting makes the order
	// of user parameters repeatable
	sort.Slice(opts, func(i, j int) bool {
		return opts[i].key < opts[j].key
	})

	return opts
}

// parameter converts a Lua value to a value suitable for a user parameter.
func parameter(v lua.LValue) interface{} {
	switch v := v.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return int(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if v.MaxN() > 0 {
			var s []interface{}
			for i := 1; i <= v.MaxN(); i++ {
				s = append(s, parameter(v.RawGetInt(i)))
			}
			return s
		}
		m := make(map[string]interface{})
		v.ForEach(func(k lua.LValue, e lua.LValue) {
			m[k.String()] = parameter(e)
		})
		return m
	}
	return v.String()
}

// constrain applies a constraint option to the constraint set. Returns false
// if the option is not a constraint.
func constrain(L *lua.LState, cs *constraints.Set, o option) (bool, error) {
	switch o.key {
	case "fixedAddress":
		if o.value == lua.LFalse {
			cs.ClearFixedAddress()
			return true, nil
		}
		v, ok := toUint64(o.value)
		if !ok {
			L.RaiseError("fixedAddress must be an unsigned integer")
		}
		cs.SetFixedAddress(v)
	case "alignment":
		if o.value == lua.LFalse {
			cs.ClearAlignment()
			return true, nil
		}
		v, ok := toUint64(o.value)
		if !ok {
			L.RaiseError("alignment must be an unsigned integer")
		}
		return true, cs.SetAlignment(v)
	case "fixedSize":
		if o.value == lua.LFalse {
			cs.ClearFixedSize()
			return true, nil
		}
		v, ok := toUint64(o.value)
		if !ok {
			L.RaiseError("fixedSize must be an unsigned integer")
		}
		return true, cs.SetFixedSize(v)
	default:
		return false, nil
	}
	return true, nil
}

func (s *Script) memory(L *lua.LState) int {
	mem := s.rm.Memory()

	for _, o := range options(L, 1) {
		var err error
		switch o.key {
		case "addressBits":
			err = mem.SetAddressBits(uint(checkOption(L, o)))
		case "memoryUnitBits":
			err = mem.SetMemoryUnitBits(uint(checkOption(L, o)))
		case "baseAddress":
			if o.value == lua.LFalse {
				err = mem.ClearBaseAddress()
			} else {
				err = mem.SetBaseAddress(checkOption(L, o))
			}
		case "pageSize":
			if o.value == lua.LFalse {
				err = mem.ClearPageSize()
			} else {
				err = mem.SetPageSize(checkOption(L, o))
			}
		default:
			L.RaiseError("unknown memory option (%s)", o.key)
		}
		if err != nil {
			s.fail(L, err)
		}
	}

	return 0
}

func checkOption(L *lua.LState, o option) uint64 {
	v, ok := toUint64(o.value)
	if !ok {
		L.RaiseError("%s must be an unsigned integer", o.key)
	}
	return v
}

func (s *Script) description(L *lua.LState) int {
	s.rm.SetDescription(L.CheckString(1))
	return 0
}

func (s *Script) summary(L *lua.LState) int {
	s.rm.SetSummary(L.CheckString(1))
	return 0
}

func (s *Script) module(L *lua.LState) int {
	m, err := s.rm.AddModule(L.CheckString(1))
	if err != nil {
		s.fail(L, err)
	}
	s.configureModule(L, m, 2)
	return s.pushModule(L, m)
}

func (s *Script) pushModule(L *lua.LState, m *registermap.Module) int {
	ud := L.NewUserData()
	ud.Value = m
	L.SetMetatable(ud, L.GetTypeMetatable(moduleType))
	L.Push(ud)
	return 1
}

func (s *Script) pushRegister(L *lua.LState, r *registermap.Register) int {
	ud := L.NewUserData()
	ud.Value = r
	L.SetMetatable(ud, L.GetTypeMetatable(registerType))
	L.Push(ud)
	return 1
}

func checkModule(L *lua.LState) *registermap.Module {
	ud := L.CheckUserData(1)
	if m, ok := ud.Value.(*registermap.Module); ok {
		return m
	}
	L.ArgError(1, "module expected")
	return nil
}

func checkRegister(L *lua.LState) *registermap.Register {
	ud := L.CheckUserData(1)
	if r, ok := ud.Value.(*registermap.Register); ok {
		return r
	}
	L.ArgError(1, "register expected")
	return nil
}

// configureModule applies the opts table at argument n to the module.
func (s *Script) configureModule(L *lua.LState, m *registermap.Module, n int) {
	cs := m.Constraints()
	changed := false

	for _, o := range options(L, n) {
		ok, err := constrain(L, &cs, o)
		if err != nil {
			s.fail(L, err)
		}
		if ok {
			changed = true
			continue
		}

		switch o.key {
		case "description":
			m.SetDescription(o.value.String())
		case "summary":
			m.SetSummary(o.value.String())
		case "instances":
			err = m.SetInstances(int(checkOption(L, o)))
		default:
			err = m.SetParameter(o.key, parameter(o.value))
		}
		if err != nil {
			s.fail(L, err)
		}
	}

	if changed {
		if err := m.SetConstraints(cs); err != nil {
			s.fail(L, err)
		}
	}
}

// configureRegister applies the opts table at argument n to the register.
func (s *Script) configureRegister(L *lua.LState, r *registermap.Register, n int) {
	cs := r.Constraints()
	changed := false

	for _, o := range options(L, n) {
		ok, err := constrain(L, &cs, o)
		if err != nil {
			s.fail(L, err)
		}
		if ok {
			changed = true
			continue
		}

		switch o.key {
		case "description":
			r.SetDescription(o.value.String())
		case "summary":
			r.SetSummary(o.value.String())
		case "mode":
			var mode registermap.Mode
			mode, err = registermap.ParseMode(o.value.String())
			if err == nil {
				err = r.SetMode(mode)
			}
		case "public":
			r.SetPublic(lua.LVAsBool(o.value))
		default:
			err = r.SetParameter(o.key, parameter(o.value))
		}
		if err != nil {
			s.fail(L, err)
		}
	}

	if changed {
		if err := r.SetConstraints(cs); err != nil {
			s.fail(L, err)
		}
	}
}

func (s *Script) moduleRegister(L *lua.LState) int {
	m := checkModule(L)
	r, err := m.AddRegister(L.CheckString(2))
	if err != nil {
		s.fail(L, err)
	}
	s.configureRegister(L, r, 3)
	return s.pushRegister(L, r)
}

func (s *Script) moduleInstances(L *lua.LState) int {
	m := checkModule(L)
	if err := m.SetInstances(int(checkUint64(L, 2))); err != nil {
		s.fail(L, err)
	}
	return 0
}

func (s *Script) moduleConstrain(L *lua.LState) int {
	s.configureModule(L, checkModule(L), 2)
	return 0
}

func (s *Script) moduleAddress(L *lua.LState) int {
	a, ok := checkModule(L).StartAddress()
	return number(L, a, ok)
}

func (s *Script) moduleSpan(L *lua.LState) int {
	return number(L, checkModule(L).SpanMemoryUnits(), true)
}

func (s *Script) registerField(L *lua.LState) int {
	return s.field(L, false)
}

func (s *Script) registerGlobalField(L *lua.LState) int {
	return s.field(L, true)
}

// field maps register bits onto a field. The high bit and the opts table are
// optional for local fields.
func (s *Script) field(L *lua.LState, global bool) int {
	r := checkRegister(L)
	name := L.CheckString(2)
	low := uint(checkUint64(L, 3))

	high := low
	optsArg := 4
	if global || L.Get(4).Type() == lua.LTNumber || L.Get(4).Type() == lua.LTString {
		high = uint(checkUint64(L, 4))
		optsArg = 5
	}
	if high < low {
		L.ArgError(4, "high bit is lower than low bit")
	}
	registerBits := bitrange.New(low, high)

	opts := options(L, optsArg)

	// field bits default to the width of the register bits starting at zero
	fieldLow := uint(0)
	for _, o := range opts {
		if o.key == "fieldLow" {
			fieldLow = uint(checkOption(L, o))
		}
	}
	fieldHigh := fieldLow + registerBits.Width() - 1
	for _, o := range opts {
		if o.key == "fieldHigh" {
			fieldHigh = uint(checkOption(L, o))
		}
	}
	if fieldHigh < fieldLow {
		L.RaiseError("fieldHigh is lower than fieldLow")
	}
	fieldBits := bitrange.New(fieldLow, fieldHigh)

	var f *registermap.Field
	var err error
	if global {
		f, err = r.MapGlobalField(name, registerBits, fieldBits)
	} else {
		f, err = r.MapField(name, registerBits, fieldBits)
	}
	if err != nil {
		s.fail(L, err)
	}

	for _, o := range opts {
		switch o.key {
		case "fieldLow", "fieldHigh":
		case "description":
			f.SetDescription(o.value.String())
		case "summary":
			f.SetSummary(o.value.String())
		case "reset":
			err = f.SetResetValue(checkOption(L, o))
		default:
			err = f.SetParameter(o.key, parameter(o.value))
		}
		if err != nil {
			s.fail(L, err)
		}
	}

	return s.pushRegister(L, r)
}

func (s *Script) registerConstrain(L *lua.LState) int {
	s.configureRegister(L, checkRegister(L), 2)
	return 0
}

func (s *Script) registerAddress(L *lua.LState) int {
	a, ok := checkRegister(L).StartAddress()
	return number(L, a, ok)
}

func (s *Script) registerSize(L *lua.LState) int {
	return number(L, checkRegister(L).SizeMemoryUnits(), true)
}
