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
	"regexp"
	"strings"

	"github.com/jetsetilly/regmap/registermap/faults"
)

var validName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// names are used to build canonical IDs so they must not contain the
// separator.
func checkName(name string) error {
	if !validName.MatchString(name) {
		return faults.Errorf(faults.Configuration, faults.InvalidName, name)
	}
	return nil
}

func canonicalID(parts ...string) string {
	return strings.Join(parts, ".")
}
