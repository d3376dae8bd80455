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
	"testing"
	"time"

	"github.com/jetsetilly/regmap/test"
)

func TestResourcePath(t *testing.T) {
	// run in a directory with a .regmap directory
	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	dir := t.TempDir()
	test.DemandSuccess(t, os.Chdir(dir))
	defer os.Chdir(wd)
	test.DemandSuccess(t, os.Mkdir(baseResourcePath, 0o700))

	pth, err := ResourcePath("foo/bar", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".regmap", "foo", "bar", "baz"))

	pth, err = ResourcePath("", "preferences")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".regmap", "preferences"))

	pth, err = ResourcePath("", "")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".regmap")
}

func TestUniqueFilename(t *testing.T) {
	n := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	test.ExpectEquality(t, uniqueFilename("dump", "soc", n), "dump_soc_20240309_140507")
	test.ExpectEquality(t, uniqueFilename("dump", " ", n), "dump_20240309_140507")
}
