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
	"fmt"

	"github.com/jetsetilly/regmap/registermap/faults"
	"gopkg.in/yaml.v3"
)

// hexUint64 is written as a hexadecimal number.
type hexUint64 uint64

func (h hexUint64) MarshalYAML() (interface{}, error) {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!int",
		Value: fmt.Sprintf("%#x", uint64(h)),
	}, nil
}

func (h *hexUint64) UnmarshalYAML(node *yaml.Node) error {
	var v uint64
	if err := node.Decode(&v); err != nil {
		return faults.Errorf(faults.Parse, faults.InvalidValue, node.Value, err)
	}
	*h = hexUint64(v)
	return nil
}

func hexPtr(v uint64) *hexUint64 {
	h := hexUint64(v)
	return &h
}

type fileDoc struct {
	RegisterMap *mapDoc `yaml:"registerMap"`
}

type mapDoc struct {
	Description string                 `yaml:"description,omitempty"`
	Summary     string                 `yaml:"summary,omitempty"`
	MemorySpace *memoryDoc             `yaml:"memorySpace,omitempty"`
	Span        uint64                 `yaml:"_spanMemoryUnits,omitempty"`
	Modules     moduleList             `yaml:"modules,omitempty"`
	User        map[string]interface{} `yaml:",inline"`

	// user keys in document order
	userOrder []string
}

func (md *mapDoc) UnmarshalYAML(node *yaml.Node) error {
	type plain mapDoc
	if err := node.Decode((*plain)(md)); err != nil {
		return err
	}
	md.userOrder = userKeys(node, md.User)
	return nil
}

func (md mapDoc) MarshalYAML() (interface{}, error) {
	type plain mapDoc
	p := plain(md)
	p.User = nil
	return withUser(p, md.userOrder, md.User)
}

type memoryDoc struct {
	AddressBits    *uint      `yaml:"addressBits,omitempty"`
	BaseAddress    *hexUint64 `yaml:"baseAddress"`
	MemoryUnitBits *uint      `yaml:"memoryUnitBits,omitempty"`
	PageSize       *hexUint64 `yaml:"pageSize,omitempty"`

	// whether the baseAddress key was present in the document. a null value
	// and an absent key mean different things
	hasBaseAddressKey bool
}

func (md *memoryDoc) UnmarshalYAML(node *yaml.Node) error {
	type plain memoryDoc
	if err := node.Decode((*plain)(md)); err != nil {
		return err
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == "baseAddress" {
			md.hasBaseAddressKey = true
		}
	}
	return nil
}

type constraintsDoc struct {
	FixedAddress         *hexUint64 `yaml:"fixedAddress,omitempty"`
	AlignmentMemoryUnits *uint64    `yaml:"alignmentMemoryUnits,omitempty"`
	FixedSizeMemoryUnits *uint64    `yaml:"fixedSizeMemoryUnits,omitempty"`
}

type moduleDoc struct {
	Name        string                 `yaml:"name,omitempty"`
	Address     *hexUint64             `yaml:"_address,omitempty"`
	Offset      *hexUint64             `yaml:"_offset,omitempty"`
	Span        uint64                 `yaml:"_spanMemoryUnits,omitempty"`
	Description string                 `yaml:"description,omitempty"`
	Summary     string                 `yaml:"summary,omitempty"`
	Instances   int                    `yaml:"instances,omitempty"`
	Constraints *constraintsDoc        `yaml:"constraints,omitempty"`
	Registers   registerList           `yaml:"registers,omitempty"`
	User        map[string]interface{} `yaml:",inline"`
	userOrder   []string
}

func (md *moduleDoc) UnmarshalYAML(node *yaml.Node) error {
	type plain moduleDoc
	if err := node.Decode((*plain)(md)); err != nil {
		return err
	}
	md.userOrder = userKeys(node, md.User)
	return nil
}

func (md moduleDoc) MarshalYAML() (interface{}, error) {
	type plain moduleDoc
	p := plain(md)
	p.User = nil
	return withUser(p, md.userOrder, md.User)
}

type registerDoc struct {
	Name        string                 `yaml:"name,omitempty"`
	Address     *hexUint64             `yaml:"_address,omitempty"`
	Offset      *hexUint64             `yaml:"_offset,omitempty"`
	Size        uint64                 `yaml:"_sizeMemoryUnits,omitempty"`
	Description string                 `yaml:"description,omitempty"`
	Summary     string                 `yaml:"summary,omitempty"`
	Mode        string                 `yaml:"mode,omitempty"`
	Public      *bool                  `yaml:"public,omitempty"`
	Constraints *constraintsDoc        `yaml:"constraints,omitempty"`
	BitFields   []*fieldDoc            `yaml:"bitFields,omitempty"`
	BitMap      []*mappingDoc          `yaml:"bitmap,omitempty"`
	User        map[string]interface{} `yaml:",inline"`
	userOrder   []string
}

func (rd *registerDoc) UnmarshalYAML(node *yaml.Node) error {
	type plain registerDoc
	if err := node.Decode((*plain)(rd)); err != nil {
		return err
	}
	rd.userOrder = userKeys(node, rd.User)
	return nil
}

func (rd registerDoc) MarshalYAML() (interface{}, error) {
	type plain registerDoc
	p := plain(rd)
	p.User = nil
	return withUser(p, rd.userOrder, rd.User)
}

type fieldDoc struct {
	Name        string                 `yaml:"name"`
	Size        uint                   `yaml:"size,omitempty"`
	ResetValue  *hexUint64             `yaml:"resetValue,omitempty"`
	Global      bool                   `yaml:"global,omitempty"`
	Description string                 `yaml:"description,omitempty"`
	Summary     string                 `yaml:"summary,omitempty"`
	User        map[string]interface{} `yaml:",inline"`
	userOrder   []string
}

func (fd *fieldDoc) UnmarshalYAML(node *yaml.Node) error {
	type plain fieldDoc
	if err := node.Decode((*plain)(fd)); err != nil {
		return err
	}
	fd.userOrder = userKeys(node, fd.User)
	return nil
}

func (fd fieldDoc) MarshalYAML() (interface{}, error) {
	type plain fieldDoc
	p := plain(fd)
	p.User = nil
	return withUser(p, fd.userOrder, fd.User)
}

// userKeys returns the keys of the mapping node that were collected into the
// user map, in the order they appear in the document.
func userKeys(node *yaml.Node, user map[string]interface{}) []string {
	if len(user) == 0 || node.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(user))
	for i := 0; i+1 < len(node.Content); i += 2 {
		if _, ok := user[node.Content[i].Value]; ok {
			keys = append(keys, node.Content[i].Value)
		}
	}
	return keys
}

// withUser encodes the document and appends the user keys after the known
// keys. keys are written in the given order. keys missing from the order are
// written last, sorted.
func withUser(doc interface{}, order []string, user map[string]interface{}) (*yaml.Node, error) {
	n := &yaml.Node{}
	if err := n.Encode(doc); err != nil {
		return nil, err
	}
	if len(user) == 0 {
		return n, nil
	}
	if len(n.Content) == 0 {
		// an empty document encodes as {}
		n.Style = 0
	}

	keys := make([]string, 0, len(user))
	seen := make(map[string]bool, len(user))
	for _, k := range order {
		if _, ok := user[k]; ok && !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	for _, k := range sortedKeys(user) {
		if !seen[k] {
			keys = append(keys, k)
		}
	}

	for _, k := range keys {
		v := &yaml.Node{}
		if err := v.Encode(user[k]); err != nil {
			return nil, err
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: k}, v)
	}
	return n, nil
}

type mappingDoc struct {
	Source        []uint `yaml:"source,flow"`
	Destination   []uint `yaml:"destination,flow"`
	DestinationID string `yaml:"destinationId"`
}

// moduleList is written as a YAML mapping keyed by module name. the order of
// the modules is the order of the mapping.
type moduleList []*moduleDoc

func (ml moduleList) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, md := range ml {
		v := &yaml.Node{}
		if err := v.Encode(md); err != nil {
			return nil, err
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: md.Name}, v)
	}
	return n, nil
}

func (ml *moduleList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return faults.Errorf(faults.Parse, faults.InvalidValue, "modules", "not a mapping")
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		md := &moduleDoc{}
		if err := node.Content[i+1].Decode(md); err != nil {
			return err
		}
		key := node.Content[i].Value
		if md.Name == "" {
			md.Name = key
		} else if md.Name != key {
			return faults.Errorf(faults.Parse, faults.InvalidValue, "module name", fmt.Sprintf("%s does not match key %s", md.Name, key))
		}
		*ml = append(*ml, md)
	}
	return nil
}

// registerList is written as a YAML mapping keyed by register name.
type registerList []*registerDoc

func (rl registerList) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, rd := range rl {
		v := &yaml.Node{}
		if err := v.Encode(rd); err != nil {
			return nil, err
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: rd.Name}, v)
	}
	return n, nil
}

func (rl *registerList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return faults.Errorf(faults.Parse, faults.InvalidValue, "registers", "not a mapping")
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		rd := &registerDoc{}
		if err := node.Content[i+1].Decode(rd); err != nil {
			return err
		}
		key := node.Content[i].Value
		if rd.Name == "" {
			rd.Name = key
		} else if rd.Name != key {
			return faults.Errorf(faults.Parse, faults.InvalidValue, "register name", fmt.Sprintf("%s does not match key %s", rd.Name, key))
		}
		*rl = append(*rl, rd)
	}
	return nil
}
