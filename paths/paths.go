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

package paths

import (
	"os"
	"path/filepath"
)

// the base path for all resources when it exists in the current directory.
const baseResourcePath = ".regmap"

// ResourcePath returns the resource prepended with the base path. Empty parts
// of the resource are ignored. No directories are created.
func ResourcePath(resource ...string) (string, error) {
	base, err := basePath()
	if err != nil {
		return "", err
	}

	p := make([]string, 0, len(resource)+1)
	p = append(p, base)
	for _, r := range resource {
		if r != "" {
			p = append(p, r)
		}
	}

	return filepath.Join(p...), nil
}

// basePath returns baseResourcePath if it exists in the current directory.
// Otherwise the regmap directory in the user's configuration directory.
func basePath() (string, error) {
	if _, err := os.Stat(baseResourcePath); err == nil {
		return baseResourcePath, nil
	}

	cnf, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(cnf, baseResourcePath[1:]), nil
}
