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

package registermap

import (
	"strings"

	"github.com/jetsetilly/regmap/registermap/faults"
)

// keys used by the serialised form of each element. user parameters cannot use
// these.
var (
	coreMapKeys      = []string{"description", "summary", "memorySpace", "modules"}
	coreModuleKeys   = []string{"name", "description", "summary", "instances", "constraints", "registers"}
	coreRegisterKeys = []string{"name", "description", "summary", "mode", "public", "constraints", "bitFields", "bitmap"}
	coreFieldKeys    = []string{"name", "description", "summary", "size", "resetValue", "global"}
)

// parameters is the side table of user defined values carried by every
// element of a register map. The order in which keys are first set is
// preserved.
type parameters struct {
	owner  string
	core   []string
	keys   []string
	values map[string]interface{}
}

func newParameters(owner string, core []string) parameters {
	return parameters{
		owner:  owner,
		core:   core,
		values: make(map[string]interface{}),
	}
}

// SetParameter sets a user defined value. The key cannot begin with an
// underscore or be the same as a key used by the register map itself.
func (p *parameters) SetParameter(key string, value interface{}) error {
	if key == "" || strings.HasPrefix(key, "_") {
		return faults.Errorf(faults.Configuration, faults.InvalidParameter, p.owner, key)
	}
	for _, c := range p.core {
		if c == key {
			return faults.Errorf(faults.Configuration, faults.InvalidParameter, p.owner, key)
		}
	}

	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value

	return nil
}

// Parameter returns the user defined value for the key.
func (p *parameters) Parameter(key string) (interface{}, bool) {
	v, ok := p.values[key]
	return v, ok
}

// ParameterKeys returns the user defined keys in the order they were first
// set.
func (p *parameters) ParameterKeys() []string {
	c := make([]string, len(p.keys))
	copy(c, p.keys)
	return c
}

// DeleteParameter removes the user defined value for the key.
func (p *parameters) DeleteParameter(key string) {
	if _, ok := p.values[key]; !ok {
		return
	}
	delete(p.values, key)
	for i := range p.keys {
		if p.keys[i] == key {
			p.keys = append(p.keys[:i], p.keys[i+1:]...)
			break
		}
	}
}
