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
	"strings"

	"github.com/jetsetilly/regmap/curated"
	"github.com/jetsetilly/regmap/logger"
	"github.com/jetsetilly/regmap/registermap"
	"github.com/jetsetilly/regmap/registermap/faults"
	lua "github.com/yuin/gopher-lua"
)

// names of the userdata metatables.
const (
	moduleType   = "regmap.module"
	registerType = "regmap.register"
)

// Script is a Lua environment for building a single register map.
type Script struct {
	L  *lua.LState
	rm *registermap.RegisterMap

	// the most recent error returned by the register map. a script error that
	// was caused by the register map is returned with the original error
	// rather than the Lua error
	err error
}

// NewScript is the preferred method of initialisation for the Script type.
// The register map is changed by the declarations in the script.
func NewScript(rm *registermap.RegisterMap) (*Script, error) {
	s := &Script{
		L:  lua.NewState(lua.Options{SkipOpenLibs: true}),
		rm: rm,
	}

	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		err := s.L.CallByParam(lua.P{
			Fn:      s.L.NewFunction(lib.open),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name))
		if err != nil {
			s.L.Close()
			return nil, curated.Errorf(faults.Script, err)
		}
	}

	// the base library can read files
	s.L.SetGlobal("dofile", lua.LNil)
	s.L.SetGlobal("loadfile", lua.LNil)

	s.L.SetGlobal("print", s.L.NewFunction(s.print))
	s.L.SetGlobal("memory", s.L.NewFunction(s.memory))
	s.L.SetGlobal("description", s.L.NewFunction(s.description))
	s.L.SetGlobal("summary", s.L.NewFunction(s.summary))
	s.L.SetGlobal("module", s.L.NewFunction(s.module))

	mt := s.L.NewTypeMetatable(moduleType)
	s.L.SetField(mt, "__index", s.L.SetFuncs(s.L.NewTable(), map[string]lua.LGFunction{
		"register":  s.moduleRegister,
		"instances": s.moduleInstances,
		"constrain": s.moduleConstrain,
		"address":   s.moduleAddress,
		"span":      s.moduleSpan,
	}))

	mt = s.L.NewTypeMetatable(registerType)
	s.L.SetField(mt, "__index", s.L.SetFuncs(s.L.NewTable(), map[string]lua.LGFunction{
		"field":       s.registerField,
		"globalField": s.registerGlobalField,
		"constrain":   s.registerConstrain,
		"address":     s.registerAddress,
		"size":        s.registerSize,
	}))

	return s, nil
}

// Close the Lua environment. The register map is not affected.
func (s *Script) Close() {
	s.L.Close()
}

// Run the script source. The name is used in error messages.
func (s *Script) Run(name string, source string) error {
	s.err = nil

	fn, err := s.L.LoadString(source)
	if err != nil {
		return curated.Errorf(faults.Script, curated.Errorf("%s: %v", name, err))
	}

	s.L.Push(fn)
	err = s.L.PCall(0, lua.MultRet, nil)
	if err != nil {
		// a register map error that was caught by the script with pcall() is
		// not the cause of a later failure
		if s.err != nil && strings.Contains(err.Error(), s.err.Error()) {
			return curated.Errorf(faults.Script, s.err)
		}
		return curated.Errorf(faults.Script, curated.Errorf("%s: %v", name, err))
	}

	return nil
}

// Build is a convenience function that creates a Script for the register map,
// runs the source and closes the Script.
func Build(rm *registermap.RegisterMap, name string, source string) error {
	s, err := NewScript(rm)
	if err != nil {
		return err
	}
	defer s.Close()
	return s.Run(name, source)
}

// fail raises a Lua error for the error returned by the register map.
func (s *Script) fail(L *lua.LState, err error) {
	s.err = err
	L.RaiseError("%s", err.Error())
}

func (s *Script) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	logger.Log(logger.Allow, "script", strings.Join(parts, "\t"))
	return 0
}
