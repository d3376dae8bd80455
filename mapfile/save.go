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
	"sort"

	"github.com/jetsetilly/regmap/registermap"
	"github.com/jetsetilly/regmap/registermap/constraints"
	"gopkg.in/yaml.v3"
)

// Save writes the register map as a YAML document. The document can be
// loaded with Load().
func Save(rm *registermap.RegisterMap) ([]byte, error) {
	doc := fileDoc{
		RegisterMap: saveMap(rm),
	}
	return yaml.Marshal(&doc)
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type parameterised interface {
	ParameterKeys() []string
	Parameter(string) (interface{}, bool)
}

func saveUser(p parameterised) (map[string]interface{}, []string) {
	keys := p.ParameterKeys()
	if len(keys) == 0 {
		return nil, nil
	}
	user := make(map[string]interface{}, len(keys))
	for _, k := range keys {
		user[k], _ = p.Parameter(k)
	}
	return user, keys
}

func saveConstraints(cs constraints.Set) *constraintsDoc {
	if cs.IsEmpty() {
		return nil
	}
	cd := &constraintsDoc{}
	if v, ok := cs.FixedAddress(); ok {
		cd.FixedAddress = hexPtr(v)
	}
	if v, ok := cs.Alignment(); ok {
		cd.AlignmentMemoryUnits = &v
	}
	if v, ok := cs.FixedSize(); ok {
		cd.FixedSizeMemoryUnits = &v
	}
	return cd
}

func saveMap(rm *registermap.RegisterMap) *mapDoc {
	mem := rm.Memory()
	addressBits := mem.AddressBits()
	unitBits := mem.MemoryUnitBits()

	md := &mapDoc{
		Description: rm.Description(),
		Summary:     rm.Summary(),
		MemorySpace: &memoryDoc{
			AddressBits:    &addressBits,
			MemoryUnitBits: &unitBits,
		},
		Span: rm.SpanMemoryUnits(),
	}
	md.User, md.userOrder = saveUser(rm)
	if v, ok := mem.BaseAddress(); ok {
		md.MemorySpace.BaseAddress = hexPtr(v)
	}
	if v, ok := mem.PageSize(); ok {
		md.MemorySpace.PageSize = hexPtr(v)
	}

	for _, m := range rm.Modules() {
		md.Modules = append(md.Modules, saveModule(m))
	}

	return md
}

func saveModule(m *registermap.Module) *moduleDoc {
	md := &moduleDoc{
		Name:        m.Name(),
		Span:        m.SpanMemoryUnits(),
		Description: m.Description(),
		Summary:     m.Summary(),
		Constraints: saveConstraints(m.Constraints()),
	}
	md.User, md.userOrder = saveUser(m)
	if m.Instances() > 1 {
		md.Instances = m.Instances()
	}
	if v, ok := m.StartAddress(); ok {
		md.Address = hexPtr(v)
	}
	if v, ok := m.Offset(); ok {
		md.Offset = hexPtr(v)
	}

	for _, r := range m.Registers() {
		md.Registers = append(md.Registers, saveRegister(r))
	}

	return md
}

func saveRegister(r *registermap.Register) *registerDoc {
	public := r.Public()
	rd := &registerDoc{
		Name:        r.Name(),
		Size:        r.SizeMemoryUnits(),
		Description: r.Description(),
		Summary:     r.Summary(),
		Mode:        string(r.Mode()),
		Public:      &public,
		Constraints: saveConstraints(r.Constraints()),
	}
	rd.User, rd.userOrder = saveUser(r)
	if v, ok := r.StartAddress(); ok {
		rd.Address = hexPtr(v)
	}
	if v, ok := r.Offset(); ok {
		rd.Offset = hexPtr(v)
	}

	for _, f := range r.Fields() {
		fd := &fieldDoc{
			Name:        f.Name(),
			Size:        f.SizeBits(),
			ResetValue:  hexPtr(f.ResetValue()),
			Global:      f.IsGlobal(),
			Description: f.Description(),
			Summary:     f.Summary(),
		}
		fd.User, fd.userOrder = saveUser(f)
		rd.BitFields = append(rd.BitFields, fd)
	}

	for _, mp := range r.BitMap().Mappings() {
		rd.BitMap = append(rd.BitMap, &mappingDoc{
			Source:        []uint{mp.Source.Low, mp.Source.High},
			Destination:   []uint{mp.DestinationBits.Low, mp.DestinationBits.High},
			DestinationID: mp.Destination.CanonicalID(),
		})
	}

	return rd
}
