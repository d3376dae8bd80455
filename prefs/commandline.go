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
	"fmt"
	"sort"
	"strings"
)

// a group of preferences from a single command line.
type group map[string]Value

var commandLineStack []group

// SizeCommandLineStack returns the number of groups that have been added with
// PushCommandLineStack().
func SizeCommandLineStack() int {
	return len(commandLineStack)
}

// PushCommandLineStack parses a prefs string and adds it as a new group. The
// string is a list of key::value pairs separated by semi-colons. Malformed
// pairs are ignored.
func PushCommandLineStack(prefs string) {
	g := make(group)

	for _, p := range strings.Split(prefs, ";") {
		kv := strings.SplitN(p, "::", 2)
		if len(kv) != 2 {
			continue
		}
		k := strings.TrimSpace(kv[0])
		if k == "" {
			continue
		}
		g[k] = strings.TrimSpace(kv[1])
	}

	commandLineStack = append(commandLineStack, g)
}

// PopCommandLineStack forgets the most recent group added by
// PushCommandLineStack().
//
// Returns the unused preferences of the group in the same format as the
// string given to PushCommandLineStack(), ordered by key.
func PopCommandLineStack() string {
	if len(commandLineStack) == 0 {
		return ""
	}

	popped := commandLineStack[len(commandLineStack)-1]
	commandLineStack = commandLineStack[:len(commandLineStack)-1]

	keys := make([]string, 0, len(popped))
	for k := range popped {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := make([]string, 0, len(keys))
	for _, k := range keys {
		s = append(s, fmt.Sprintf("%s::%v", k, popped[k]))
	}

	return strings.Join(s, "; ")
}

// GetCommandLinePref returns the value for the key in the top group of the
// stack. The value is removed from the group when it is returned.
func GetCommandLinePref(key string) (bool, Value) {
	if len(commandLineStack) == 0 {
		return false, nil
	}

	g := commandLineStack[len(commandLineStack)-1]
	if v, ok := g[key]; ok {
		delete(g, key)
		return true, v
	}

	return false, nil
}
