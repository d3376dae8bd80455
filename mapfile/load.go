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

package mapfile

import (
	"strings"

	"github.com/jetsetilly/regmap/registermap"
	"github.com/jetsetilly/regmap/registermap/bitrange"
	"github.com/jetsetilly/regmap/registermap/constraints"
	"github.com/jetsetilly/regmap/registermap/faults"
	"gopkg.in/yaml.v3"
)

// Load creates a new register map from a YAML document.
//
// Errors from the register map itself (constraint errors, etc.) are returned
// unchanged. Problems with the document are returned as faults.Parse errors.
func Load(data []byte) (*registermap.RegisterMap, error) {
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, faults.Errorf(faults.Parse, faults.InvalidYAML, err)
	}
	if doc.RegisterMap == nil {
		return nil, faults.Errorf(faults.Parse, faults.MissingKey, "registerMap")
	}

	md := doc.RegisterMap
	rm := registermap.NewRegisterMap()
	rm.SetDescription(md.Description)
	rm.SetSummary(md.Summary)
	if err := loadUser(rm.SetParameter, md.userOrder, md.User); err != nil {
		return nil, err
	}

	// memory space must be configured before any element is added. once an
	// address has been assigned the memory is locked
	if md.MemorySpace != nil {
		if err := loadMemory(rm, md.MemorySpace); err != nil {
			return nil, err
		}
	}

	for _, mod := range md.Modules {
		if err := loadModule(rm, mod); err != nil {
			return nil, err
		}
	}

	return rm, nil
}

// loadUser sets the user parameters in document order. keys beginning with an
// underscore are computed values and are ignored.
func loadUser(set func(string, interface{}) error, order []string, user map[string]interface{}) error {
	keys := order
	if len(keys) != len(user) {
		keys = sortedKeys(user)
	}
	for _, k := range keys {
		if strings.HasPrefix(k, "_") {
			continue
		}
		if err := set(k, user[k]); err != nil {
			return err
		}
	}
	return nil
}

func loadMemory(rm *registermap.RegisterMap, md *memoryDoc) error {
	mem := rm.Memory()
	if md.AddressBits != nil {
		if err := mem.SetAddressBits(*md.AddressBits); err != nil {
			return err
		}
	}
	if md.MemoryUnitBits != nil {
		if err := mem.SetMemoryUnitBits(*md.MemoryUnitBits); err != nil {
			return err
		}
	}
	if md.hasBaseAddressKey {
		if md.BaseAddress == nil {
			if err := mem.ClearBaseAddress(); err != nil {
				return err
			}
		} else if err := mem.SetBaseAddress(uint64(*md.BaseAddress)); err != nil {
			return err
		}
	}
	if md.PageSize != nil {
		if err := mem.SetPageSize(uint64(*md.PageSize)); err != nil {
			return err
		}
	}
	return nil
}

func loadConstraints(cd *constraintsDoc) (constraints.Set, error) {
	var cs constraints.Set
	if cd == nil {
		return cs, nil
	}
	if cd.FixedAddress != nil {
		cs.SetFixedAddress(uint64(*cd.FixedAddress))
	}
	if cd.AlignmentMemoryUnits != nil {
		if err := cs.SetAlignment(*cd.AlignmentMemoryUnits); err != nil {
			return cs, err
		}
	}
	if cd.FixedSizeMemoryUnits != nil {
		if err := cs.SetFixedSize(*cd.FixedSizeMemoryUnits); err != nil {
			return cs, err
		}
	}
	return cs, nil
}

func loadModule(rm *registermap.RegisterMap, md *moduleDoc) error {
	m, err := rm.AddModule(md.Name)
	if err != nil {
		return err
	}
	m.SetDescription(md.Description)
	m.SetSummary(md.Summary)
	if err := loadUser(m.SetParameter, md.userOrder, md.User); err != nil {
		return err
	}

	cs, err := loadConstraints(md.Constraints)
	if err != nil {
		return err
	}
	if !cs.IsEmpty() {
		if err := m.SetConstraints(cs); err != nil {
			return err
		}
	}

	if md.Instances > 1 {
		if err := m.SetInstances(md.Instances); err != nil {
			return err
		}
	} else if md.Instances < 0 {
		return faults.Errorf(faults.Parse, faults.InvalidValue, "instances", md.Instances)
	}

	for _, rd := range md.Registers {
		if err := loadRegister(m, rd); err != nil {
			return err
		}
	}

	return nil
}

func loadRegister(m *registermap.Module, rd *registerDoc) error {
	r, err := m.AddRegister(rd.Name)
	if err != nil {
		return err
	}
	r.SetDescription(rd.Description)
	r.SetSummary(rd.Summary)
	if err := loadUser(r.SetParameter, rd.userOrder, rd.User); err != nil {
		return err
	}

	if rd.Mode != "" {
		mode, err := registermap.ParseMode(rd.Mode)
		if err != nil {
			return err
		}
		if err := r.SetMode(mode); err != nil {
			return err
		}
	}
	if rd.Public != nil {
		r.SetPublic(*rd.Public)
	}

	cs, err := loadConstraints(rd.Constraints)
	if err != nil {
		return err
	}
	if !cs.IsEmpty() {
		if err := r.SetConstraints(cs); err != nil {
			return err
		}
	}

	if len(rd.BitMap) == 0 {
		return packFields(r, rd.BitFields)
	}

	for _, bd := range rd.BitMap {
		if err := loadMapping(r, rd.BitFields, bd); err != nil {
			return err
		}
	}

	// field attributes are applied once every mapping is in place. the size
	// of a field cannot be smaller than the bits mapped onto it
	for _, fd := range rd.BitFields {
		f, ok := r.Field(fd.Name)
		if !ok {
			return faults.Errorf(faults.Parse, faults.InvalidValue, "bitFields", fd.Name)
		}
		if err := loadFieldAttributes(f, fd); err != nil {
			return err
		}
	}

	return nil
}

// packFields maps each field onto the next free register bits, in order.
func packFields(r *registermap.Register, fields []*fieldDoc) error {
	var bit uint
	for _, fd := range fields {
		if fd.Size == 0 {
			return faults.Errorf(faults.Parse, faults.MissingKey, r.CanonicalID()+"."+fd.Name+".size")
		}
		registerBits := bitrange.New(bit, bit+fd.Size-1)
		fieldBits := bitrange.New(0, fd.Size-1)

		var f *registermap.Field
		var err error
		if fd.Global {
			f, err = r.MapGlobalField(fd.Name, registerBits, fieldBits)
		} else {
			f, err = r.MapField(fd.Name, registerBits, fieldBits)
		}
		if err != nil {
			return err
		}
		if err := loadFieldAttributes(f, fd); err != nil {
			return err
		}
		bit += fd.Size
	}
	return nil
}

func loadMapping(r *registermap.Register, fields []*fieldDoc, bd *mappingDoc) error {
	source, err := interval("source", bd.Source)
	if err != nil {
		return err
	}
	dest, err := interval("destination", bd.Destination)
	if err != nil {
		return err
	}

	// the destination ID of a local field is its canonical ID. the ID of a
	// global field is its name
	name := bd.DestinationID
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}

	global := false
	for _, fd := range fields {
		if fd.Name == name {
			global = fd.Global
			break
		}
	}
	if !global && bd.DestinationID != name && bd.DestinationID != canonicalID(r, name) {
		return faults.Errorf(faults.Parse, faults.InvalidValue, "destinationId", bd.DestinationID)
	}

	if global {
		_, err = r.MapGlobalField(name, source, dest)
	} else {
		_, err = r.MapField(name, source, dest)
	}
	return err
}

func canonicalID(r *registermap.Register, name string) string {
	return r.CanonicalID() + "." + name
}

func interval(key string, v []uint) (bitrange.Interval, error) {
	switch len(v) {
	case 1:
		return bitrange.Bit(v[0]), nil
	case 2:
		if v[0] > v[1] {
			return bitrange.Interval{}, faults.Errorf(faults.Parse, faults.InvalidValue, key, v)
		}
		return bitrange.New(v[0], v[1]), nil
	}
	return bitrange.Interval{}, faults.Errorf(faults.Parse, faults.InvalidValue, key, v)
}

func loadFieldAttributes(f *registermap.Field, fd *fieldDoc) error {
	if fd.Size != 0 && fd.Size != f.SizeBits() {
		if err := f.SetSizeBits(fd.Size); err != nil {
			return err
		}
	}
	if fd.ResetValue != nil {
		if err := f.SetResetValue(uint64(*fd.ResetValue)); err != nil {
			return err
		}
	}
	if fd.Description != "" {
		f.SetDescription(fd.Description)
	}
	if fd.Summary != "" {
		f.SetSummary(fd.Summary)
	}
	return loadUser(f.SetParameter, fd.userOrder, fd.User)
}
