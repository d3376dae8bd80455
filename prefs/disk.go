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

package prefs

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jetsetilly/regmap/curated"
)

// WarningBoilerPlate is the first line of every preferences file.
const WarningBoilerPlate = "*** do not edit this file by hand. changes will be overwritten ***"

// separator between key and value in the preferences file.
const separator = " :: "

// Disk represents preference values that are saved to and loaded from a file.
type Disk struct {
	path    string
	entries map[string]pref
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	if path == "" {
		return nil, curated.Errorf(PrefsError, curated.Errorf(NoPath))
	}
	return &Disk{
		path:    path,
		entries: make(map[string]pref),
	}, nil
}

// Path returns the path of the preferences file.
func (dsk *Disk) Path() string {
	return dsk.path
}

// Add a preference value under the key. The key cannot contain white space or
// the "::" sequence and must be unique for the Disk.
func (dsk *Disk) Add(key string, p pref) error {
	if key == "" || strings.ContainsAny(key, " \t\n") || strings.Contains(key, "::") {
		return curated.Errorf(PrefsError, curated.Errorf(InvalidKey, key))
	}
	if _, ok := dsk.entries[key]; ok {
		return curated.Errorf(PrefsError, curated.Errorf(DuplicateKey, key))
	}
	dsk.entries[key] = p
	return nil
}

// Reset every preference value added to the Disk.
func (dsk *Disk) Reset() error {
	for _, k := range dsk.keys() {
		if err := dsk.entries[k].Reset(); err != nil {
			return err
		}
	}
	return nil
}

func (dsk *Disk) keys() []string {
	keys := make([]string, 0, len(dsk.entries))
	for k := range dsk.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String returns every key and value of the Disk in the format of the
// preferences file.
func (dsk *Disk) String() string {
	s := strings.Builder{}
	for _, k := range dsk.keys() {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, separator, dsk.entries[k].String()))
	}
	return s.String()
}

// read the preferences file. a missing file is not an error.
func (dsk *Disk) read() (map[string]string, error) {
	data, err := os.ReadFile(dsk.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, curated.Errorf(PrefsError, curated.Errorf(ReadError, err))
	}

	values := make(map[string]string)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		kv := strings.SplitN(scanner.Text(), separator, 2)
		if len(kv) != 2 {
			continue
		}
		values[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf(PrefsError, curated.Errorf(ReadError, err))
	}

	return values, nil
}

// Save the preference values to the file. Values in the file for keys not
// added to the Disk are preserved.
func (dsk *Disk) Save() error {
	values, err := dsk.read()
	if err != nil {
		return err
	}

	for k, p := range dsk.entries {
		values[k] = p.String()
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	s.WriteString(WarningBoilerPlate)
	s.WriteString("\n")
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, separator, values[k]))
	}

	if err := os.MkdirAll(filepath.Dir(dsk.path), 0o700); err != nil {
		return curated.Errorf(PrefsError, curated.Errorf(WriteError, err))
	}
	if err := os.WriteFile(dsk.path, []byte(s.String()), 0o600); err != nil {
		return curated.Errorf(PrefsError, curated.Errorf(WriteError, err))
	}

	return nil
}

// Load preference values from the file and then from the command line stack.
// Keys in the file that have not been added to the Disk are ignored.
func (dsk *Disk) Load() error {
	values, err := dsk.read()
	if err != nil {
		return err
	}

	for _, k := range dsk.keys() {
		if v, ok := values[k]; ok {
			if err := dsk.entries[k].Set(v); err != nil {
				return err
			}
		}
		if ok, v := GetCommandLinePref(k); ok {
			if err := dsk.entries[k].Set(v); err != nil {
				return err
			}
		}
	}

	return nil
}
