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

package version_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/regmap/test"
	"github.com/jetsetilly/regmap/version"
)

func TestString(t *testing.T) {
	v, _, release := version.Version()
	test.ExpectFailure(t, release)
	test.ExpectSuccess(t, v == "local" || v == "unreleased")
	test.ExpectSuccess(t, strings.HasPrefix(version.String(), version.ApplicationName+" "+v+" ("))
}
