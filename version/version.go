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

// Package version reports the version of the regmap command. The version
// number is set at link time:
//
//	go build -ldflags "-X github.com/jetsetilly/regmap/version.number=v0.1.0"
//
// Without a number the version is taken from the VCS information embedded in
// the binary.
package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is the name to use when referring to the application.
const ApplicationName = "Regmap"

// set with -ldflags. empty if the binary was not built for release
var number string

// the VCS revision. suffixed with "+dirty" if the source had uncommitted
// changes when it was built
var revision string

// "unreleased" when built from a VCS checkout without a version number and
// "local" when there is no VCS information at all
var version string

// Version returns the version string, the revision string and whether this is a
// numbered release version.
func Version() (string, string, bool) {
	return version, revision, number != "" && version == number
}

// String returns a single line summary of the version suitable for headers in
// generated files.
func String() string {
	v, r, release := Version()
	if release {
		return fmt.Sprintf("%s %s", ApplicationName, v)
	}
	return fmt.Sprintf("%s %s (%s)", ApplicationName, v, r)
}

func init() {
	revision = "no revision information"
	version = "local"

	info, ok := debug.ReadBuildInfo()
	if ok {
		var modified bool
		for _, v := range info.Settings {
			switch v.Key {
			case "vcs":
				version = "unreleased"
			case "vcs.revision":
				revision = v.Value
			case "vcs.modified":
				modified = v.Value == "true"
			}
		}
		if modified {
			revision = fmt.Sprintf("%s+dirty", revision)
		}
	}

	if number != "" {
		version = number
	}
}
