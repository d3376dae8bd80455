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
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/jetsetilly/regmap/curated"
	"github.com/jetsetilly/regmap/dump"
	"github.com/jetsetilly/regmap/export"
	"github.com/jetsetilly/regmap/export/clang"
	"github.com/jetsetilly/regmap/export/cpp"
	"github.com/jetsetilly/regmap/export/golang"
	"github.com/jetsetilly/regmap/logger"
	"github.com/jetsetilly/regmap/mapfile"
	"github.com/jetsetilly/regmap/modalflag"
	"github.com/jetsetilly/regmap/paths"
	"github.com/jetsetilly/regmap/prefs"
	"github.com/jetsetilly/regmap/registermap"
	"github.com/jetsetilly/regmap/script"
	"github.com/jetsetilly/regmap/statsview"
	"github.com/jetsetilly/regmap/symbols"
	"github.com/jetsetilly/regmap/version"
	"golang.org/x/term"
)

// exit values.
const (
	exitSuccess     = 0
	exitCommandLine = 10
	exitFailure     = 20
)

// command line errors are reported with the exitCommandLine value.
const commandLineError = "command line: %v"

func main() {
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	done := make(chan int)
	go func() {
		done <- launch(os.Args[1:], os.Stdout)
	}()

	select {
	case <-intChan:
		fmt.Println("\r")
		os.Exit(exitFailure)
	case exitVal := <-done:
		os.Exit(exitVal)
	}
}

// launch the regmap command with the arguments. Returns the value to be used
// with os.Exit().
func launch(args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.AddSubModes("EXPORT", "SUMMARY", "DUMP", "BUILD", "LOOKUP", "PREFS", "VERSION")
	log := md.AddBool("log", false, "echo log to stderr")
	prefsCl := md.AddString("prefs", "", "override preferences (key::value; key::value)")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return exitSuccess
	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitCommandLine
	}

	if *log {
		if term.IsTerminal(int(os.Stderr.Fd())) {
			logger.SetEcho(logger.NewColorizer(os.Stderr))
		} else {
			logger.SetEcho(os.Stderr)
		}
	} else {
		logger.SetEcho(nil)
	}

	if *stats {
		stop := statsview.Launch(output, statsview.Address)
		defer stop()
	}

	prefs.PushCommandLineStack(*prefsCl)
	defer func() {
		if unused := prefs.PopCommandLineStack(); unused != "" {
			logger.Logf(logger.Allow, "prefs", "unused command line preferences: %s", unused)
		}
	}()

	pref, err := newPreferences()
	if err != nil {
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitFailure
	}

	switch md.Mode() {
	case "EXPORT":
		err = exportMode(md, pref, output)
	case "SUMMARY":
		err = summaryMode(md, output)
	case "DUMP":
		err = dumpMode(md, output)
	case "BUILD":
		err = buildMode(md, pref, output)
	case "LOOKUP":
		err = lookupMode(md, output)
	case "PREFS":
		err = prefsMode(md, pref, output)
	case "VERSION":
		err = versionMode(md, output)
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		if curated.Is(err, commandLineError) {
			return exitCommandLine
		}
		return exitFailure
	}

	return exitSuccess
}

// usageError creates a command line error.
func usageError(format string, args ...interface{}) error {
	return curated.Errorf(commandLineError, fmt.Sprintf(format, args...))
}

// parseMode parses the next layer of arguments. Returns true if processing
// should stop, with the error if there is one.
func parseMode(md *modalflag.Modes) (bool, error) {
	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return true, nil
	case modalflag.ParseError:
		return true, curated.Errorf(commandLineError, err)
	}
	return false, nil
}

// singleArg returns the only remaining argument.
func singleArg(md *modalflag.Modes, what string) (string, error) {
	switch len(md.RemainingArgs()) {
	case 0:
		return "", usageError("%s required", what)
	case 1:
		return md.GetArg(0), nil
	}
	return "", usageError("too many arguments")
}

func loadMap(filename string) (*registermap.RegisterMap, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return mapfile.Load(data)
}

var nonIdentifier = regexp.MustCompile(`[^A-Za-z0-9_]`)

// mapName derives a register map name from a filename.
func mapName(filename string) string {
	n := filepath.Base(filename)
	n = strings.TrimSuffix(n, filepath.Ext(n))
	n = nonIdentifier.ReplaceAllString(n, "_")
	if n == "" || (n[0] >= '0' && n[0] <= '9') {
		n = "_" + n
	}
	return n
}

func exportMode(md *modalflag.Modes, pref *preferences, output io.Writer) error {
	registry := export.NewRegistry(clang.Exporter{}, cpp.Exporter{}, golang.Exporter{})

	md.NewMode()
	md.AdditionalHelp("usage: EXPORT <file> [-n name] [-l license] <language> [-o dir]")
	if stop, err := parseMode(md); stop {
		return err
	}

	filename, ok := md.ConsumeArg()
	if !ok {
		return usageError("register map file required")
	}

	md.NewMode()
	name := md.AddString("n", mapName(filename), "name of the register map")
	license := md.AddString("l", pref.license.String(), "file containing license text")
	md.AddSubModes(registry.Languages()...)
	md.RequireSubMode()
	if stop, err := parseMode(md); stop {
		return err
	}

	exp, err := registry.Lookup(md.Mode())
	if err != nil {
		return err
	}

	md.NewMode()
	outdir := md.AddString("o", pref.outdir.String(), "output directory")
	if stop, err := parseMode(md); stop {
		return err
	}
	if len(md.RemainingArgs()) > 0 {
		return usageError("too many arguments")
	}

	var licenseText string
	if *license != "" {
		b, err := os.ReadFile(*license)
		if err != nil {
			return err
		}
		licenseText = string(b)
	}

	rm, err := loadMap(filename)
	if err != nil {
		return err
	}

	view, err := export.NewView(rm, *name)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(*outdir, 0o755); err != nil {
		return err
	}

	fn := filepath.Join(*outdir, exp.Filename(*name))
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := exp.Export(f, view, licenseText); err != nil {
		return err
	}

	logger.Logf(logger.Allow, "export", "%s written to %s", exp.Language(), fn)
	fmt.Fprintf(output, "! exported %s\n", fn)

	return nil
}

func summaryMode(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	if stop, err := parseMode(md); stop {
		return err
	}

	filename, err := singleArg(md, "register map file")
	if err != nil {
		return err
	}

	rm, err := loadMap(filename)
	if err != nil {
		return err
	}

	if rm.Description() != "" {
		fmt.Fprintln(output, rm.Description())
	}
	fmt.Fprintln(output, rm.Memory())
	io.WriteString(output, registermap.MemoryMap(rm))
	fmt.Fprintf(output, "span: %d memory units (%d assigned)\n", rm.SpanMemoryUnits(), rm.AssignedMemoryUnits())

	return nil
}

func dumpMode(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	format := md.AddString("format", "spew", "dump format: dot, spew")
	out := md.AddString("o", "", "output file. - for stdout")
	if stop, err := parseMode(md); stop {
		return err
	}

	filename, err := singleArg(md, "register map file")
	if err != nil {
		return err
	}

	var dumper func(io.Writer, *registermap.RegisterMap)
	var ext string
	switch strings.ToLower(*format) {
	case "dot":
		dumper = dump.Graph
		ext = ".dot"
	case "spew":
		dumper = dump.Text
		ext = ".txt"
	default:
		return usageError("unknown dump format (%s)", *format)
	}

	rm, err := loadMap(filename)
	if err != nil {
		return err
	}

	if *out == "-" {
		dumper(output, rm)
		return nil
	}

	fn := *out
	if fn == "" {
		fn = paths.UniqueFilename("dump", mapName(filename)) + ext
	}

	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	dumper(f, rm)
	fmt.Fprintf(output, "! dumped to %s\n", fn)

	return nil
}

func buildMode(md *modalflag.Modes, pref *preferences, output io.Writer) error {
	md.NewMode()
	out := md.AddString("o", "", "output file (default is script name with .yaml extension)")
	trace := md.AddBool("trace", false, "log the placement of every element")
	if stop, err := parseMode(md); stop {
		return err
	}

	filename, err := singleArg(md, "Lua script")
	if err != nil {
		return err
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	rm, err := pref.newRegisterMap()
	if err != nil {
		return err
	}
	rm.SetTracing(*trace)

	if err := script.Build(rm, filepath.Base(filename), string(src)); err != nil {
		return err
	}

	data, err := mapfile.Save(rm)
	if err != nil {
		return err
	}

	fn := *out
	if fn == "" {
		fn = strings.TrimSuffix(filename, filepath.Ext(filename)) + ".yaml"
	}

	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(output, "! built %s\n", fn)

	return nil
}

func lookupMode(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	md.AdditionalHelp("usage: LOOKUP <file> <symbol|address>")
	if stop, err := parseMode(md); stop {
		return err
	}

	if len(md.RemainingArgs()) != 2 {
		return usageError("register map file and symbol or address required")
	}

	rm, err := loadMap(md.GetArg(0))
	if err != nil {
		return err
	}

	sym, err := symbols.NewSymbols(rm)
	if err != nil {
		return err
	}

	var res *symbols.SearchResults
	if addr, err := strconv.ParseUint(md.GetArg(1), 0, 64); err == nil {
		res = sym.ReverseSearch(addr, symbols.SearchAll)
	} else {
		res = sym.Search(md.GetArg(1), symbols.SearchAll)
	}

	if res == nil {
		return fmt.Errorf("no symbol for %s", md.GetArg(1))
	}

	w := int(rm.Memory().AddressBits()+3) / 4
	fmt.Fprintf(output, "%#0*x %s (%s)\n", w+2, res.Address, res.Symbol, res.Table)

	return nil
}

func prefsMode(md *modalflag.Modes, pref *preferences, output io.Writer) error {
	md.NewMode()
	save := md.AddBool("save", false, "save preferences, including -prefs overrides")
	if stop, err := parseMode(md); stop {
		return err
	}
	if len(md.RemainingArgs()) > 0 {
		return usageError("too many arguments")
	}

	io.WriteString(output, pref.dsk.String())

	if *save {
		if err := pref.dsk.Save(); err != nil {
			return err
		}
		fmt.Fprintf(output, "! saved %s\n", pref.dsk.Path())
	}

	return nil
}

func versionMode(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	revision := md.AddBool("revision", false, "display revision information")
	if stop, err := parseMode(md); stop {
		return err
	}

	v, r, _ := version.Version()
	fmt.Fprintln(output, version.ApplicationName, v)
	if *revision {
		fmt.Fprintln(output, r)
	}

	return nil
}
