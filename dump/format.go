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

package dump

import "fmt"

func address(a uint64, ok bool) string {
	if !ok {
		return "none"
	}
	return fmt.Sprintf("%#x", a)
}

func hex(v uint64) string {
	return fmt.Sprintf("%#x", v)
}
