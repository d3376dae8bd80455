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

package main

import (
	"github.com/jetsetilly/regmap/paths"
	"github.com/jetsetilly/regmap/prefs"
	"github.com/jetsetilly/regmap/registermap"
	"github.com/jetsetilly/regmap/registermap/memory"
)

// preferences used by the regmap command. values are loaded from the
// preferences file and can be overridden with the -prefs flag.
type preferences struct {
	dsk *prefs.Disk

	addressBits    prefs.Int
	memoryUnitBits prefs.Int
	license        prefs.String
	outdir         prefs.String
}

func newPreferences() (*preferences, error) {
	pth, err := paths.ResourcePath("", "preferences")
	if err != nil {
		return nil, err
	}

	p := &preferences{}
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	// values are checked with the memory configuration before they are
	// accepted
	p.addressBits.SetHookPre(func(v prefs.Value) error {
		return memory.NewConfiguration().SetAddressBits(uint(v.(int)))
	})
	p.memoryUnitBits.SetHookPre(func(v prefs.Value) error {
		return memory.NewConfiguration().SetMemoryUnitBits(uint(v.(int)))
	})

	if err := p.addressBits.Set(32); err != nil {
		return nil, err
	}
	if err := p.memoryUnitBits.Set(8); err != nil {
		return nil, err
	}
	if err := p.outdir.Set("."); err != nil {
		return nil, err
	}

	for _, e := range []struct {
		key string
		p   interface {
			String() string
			Set(prefs.Value) error
			Get() prefs.Value
			Reset() error
		}
	}{
		{"memory.addressBits", &p.addressBits},
		{"memory.memoryUnitBits", &p.memoryUnitBits},
		{"export.license", &p.license},
		{"export.outdir", &p.outdir},
	} {
		if err := p.dsk.Add(e.key, e.p); err != nil {
			return nil, err
		}
	}

	if err := p.dsk.Load(); err != nil {
		return nil, err
	}

	return p, nil
}

// newRegisterMap creates a register map with the memory configuration from
// the preferences.
func (p *preferences) newRegisterMap() (*registermap.RegisterMap, error) {
	rm := registermap.NewRegisterMap()
	if err := rm.Memory().SetAddressBits(uint(p.addressBits.Get().(int))); err != nil {
		return nil, err
	}
	if err := rm.Memory().SetMemoryUnitBits(uint(p.memoryUnitBits.Get().(int))); err != nil {
		return nil, err
	}
	return rm, nil
}
