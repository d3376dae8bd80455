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

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/regmap/test"
)

const deviceScript = `
memory{addressBits = 16, baseAddress = "0x1000"}
description("small device")

local uart = module("uart")
uart:register("ctrl"):field("enable", 0)
uart:register("data"):field("value", 0, 15)
`

// isolate preferences from the user's configuration directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	return dir
}

func build(t *testing.T, dir string) string {
	t.Helper()
	lua := filepath.Join(dir, "device.lua")
	test.DemandSuccess(t, os.WriteFile(lua, []byte(deviceScript), 0o644))

	w := &test.Writer{}
	test.DemandEquality(t, launch([]string{"build", lua}, w), exitSuccess)

	out := filepath.Join(dir, "device.yaml")
	test.ExpectEquality(t, w.String(), "! built "+out+"\n")
	return out
}

func TestBuildAndSummary(t *testing.T) {
	dir := isolate(t)
	yml := build(t, dir)

	w := &test.Writer{}
	test.ExpectEquality(t, launch([]string{"summary", yml}, w), exitSuccess)
	test.ExpectSuccess(t, strings.HasPrefix(w.String(), "small device\n"))
	test.ExpectSuccess(t, strings.Contains(w.String(), "1000 -> 1000\t  ctrl\n"))
	test.ExpectSuccess(t, strings.Contains(w.String(), "1001 -> 1002\t  data\n"))
	test.ExpectSuccess(t, strings.HasSuffix(w.String(), "span: 3 memory units (3 assigned)\n"))
}

func TestExport(t *testing.T) {
	dir := isolate(t)
	yml := build(t, dir)
	outdir := filepath.Join(dir, "out")

	w := &test.Writer{}
	test.DemandEquality(t, launch([]string{"export", yml, "-n", "dev", "c", "-o", outdir}, w), exitSuccess)

	b, err := os.ReadFile(filepath.Join(outdir, "dev.h"))
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(string(b), "0x1001"))

	// EXPORT is the default mode
	w.Clear()
	test.DemandEquality(t, launch([]string{yml, "go", "-o", outdir}, w), exitSuccess)
	_, err = os.Stat(filepath.Join(outdir, "device.go"))
	test.ExpectSuccess(t, err)
}

func TestDumpToStdout(t *testing.T) {
	dir := isolate(t)
	yml := build(t, dir)

	w := &test.Writer{}
	test.ExpectEquality(t, launch([]string{"dump", "-o", "-", yml}, w), exitSuccess)
	test.ExpectSuccess(t, strings.Contains(w.String(), "uart"))

	w.Clear()
	test.ExpectEquality(t, launch([]string{"dump", "-format", "dot", "-o", "-", yml}, w), exitSuccess)
	test.ExpectSuccess(t, strings.Contains(w.String(), "digraph"))
}

func TestCommandLineErrors(t *testing.T) {
	dir := isolate(t)
	yml := build(t, dir)

	w := &test.Writer{}
	test.ExpectEquality(t, launch([]string{"export", yml, "pascal"}, w), exitCommandLine)
	test.ExpectSuccess(t, strings.HasPrefix(w.String(), "* error in EXPORT mode: "))

	w.Clear()
	test.ExpectEquality(t, launch([]string{"export"}, w), exitCommandLine)

	w.Clear()
	test.ExpectEquality(t, launch([]string{"summary", yml, yml}, w), exitCommandLine)

	w.Clear()
	test.ExpectEquality(t, launch([]string{"dump", "-format", "svg", yml}, w), exitCommandLine)
}

func TestFailures(t *testing.T) {
	dir := isolate(t)

	w := &test.Writer{}
	test.ExpectEquality(t, launch([]string{"summary", filepath.Join(dir, "missing.yaml")}, w), exitFailure)

	bad := filepath.Join(dir, "bad.lua")
	test.DemandSuccess(t, os.WriteFile(bad, []byte(`module("1uart")`), 0o644))
	w.Clear()
	test.ExpectEquality(t, launch([]string{"build", bad}, w), exitFailure)
	test.ExpectSuccess(t, strings.HasPrefix(w.String(), "* error in BUILD mode: "))
}

func TestPreferencesOverride(t *testing.T) {
	dir := isolate(t)
	lua := filepath.Join(dir, "units.lua")
	test.DemandSuccess(t, os.WriteFile(lua, []byte(`module("m"):register("r"):field("f", 0, 15)`), 0o644))

	w := &test.Writer{}
	test.DemandEquality(t, launch([]string{"-prefs", "memory.memoryUnitBits::16", "build", lua}, w), exitSuccess)

	b, err := os.ReadFile(filepath.Join(dir, "units.yaml"))
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(string(b), "memoryUnitBits: 16"))

	w.Clear()
	test.ExpectEquality(t, launch([]string{"-prefs", "memory.memoryUnitBits::0", "build", lua}, w), exitFailure)
}

func TestLookup(t *testing.T) {
	dir := isolate(t)
	yml := build(t, dir)

	w := &test.Writer{}
	test.ExpectEquality(t, launch([]string{"lookup", yml, "0x1002"}, w), exitSuccess)
	test.ExpectEquality(t, w.String(), "0x1001 uart.data (read)\n")

	w.Clear()
	test.ExpectEquality(t, launch([]string{"lookup", yml, "UART.CTRL"}, w), exitSuccess)
	test.ExpectEquality(t, w.String(), "0x1000 uart.ctrl (read)\n")

	w.Clear()
	test.ExpectEquality(t, launch([]string{"lookup", yml, "0x2000"}, w), exitFailure)
}

func TestVersion(t *testing.T) {
	isolate(t)

	w := &test.Writer{}
	test.ExpectEquality(t, launch([]string{"version"}, w), exitSuccess)
	test.ExpectSuccess(t, strings.HasPrefix(w.String(), "Regmap "))
}

func TestPrefsMode(t *testing.T) {
	dir := isolate(t)

	w := &test.Writer{}
	test.DemandEquality(t, launch([]string{"-prefs", "export.outdir::gen", "prefs", "-save"}, w), exitSuccess)
	test.ExpectSuccess(t, strings.Contains(w.String(), "export.outdir :: gen\n"))
	test.ExpectSuccess(t, strings.Contains(w.String(), "memory.addressBits :: 32\n"))

	b, err := os.ReadFile(filepath.Join(dir, "regmap", "preferences"))
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(string(b), "export.outdir :: gen\n"))

	// saved value is used without the override
	w.Clear()
	test.DemandEquality(t, launch([]string{"prefs"}, w), exitSuccess)
	test.ExpectSuccess(t, strings.Contains(w.String(), "export.outdir :: gen\n"))
}
