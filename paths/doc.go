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

// Package paths contains functions to prepare paths to regmap resources.
//
// The ResourcePath() function prepends the resource with the appropriate
// configuration directory. For example, the path to the preferences file:
//
//	pth, err := paths.ResourcePath("", "preferences")
//
// If the directory ".regmap" is present in the current directory then that is
// the base path. Otherwise the user's configuration directory, as reported by
// os.UserConfigDir(), is used. On a Linux system the path returned in the
// example above would be:
//
//	/home/user/.config/regmap/preferences
//
// The UniqueFilename() function creates timestamped filenames for output that
// has no natural name.
package paths
