//
// branchwood - a UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Command branchwood is the executable entry point: it reads
// command-line flags, applies them over the config file and defaults,
// then either runs a one-shot perft/EPD-suite command or drops into
// the UCI read-eval-print loop on stdin/stdout.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/pkg/profile"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ashgrove/branchwood/internal/config"
	"github.com/ashgrove/branchwood/internal/epd"
	"github.com/ashgrove/branchwood/internal/logging"
	"github.com/ashgrove/branchwood/internal/perft"
	"github.com/ashgrove/branchwood/internal/position"
	"github.com/ashgrove/branchwood/internal/uci"
)

// version is reported by "-version". The UCI "uci" reply does not
// include it: its id name line is just "branchwood".
const version = "0.1.0"

var out = message.NewPrinter(language.English)

func main() {
	versionInfo := flag.Bool("version", false, "prints version and exits")
	configFile := flag.String("config", "./config.toml", "path to configuration settings file")
	logLvl := flag.String("loglvl", "", "standard log level\n(off|critical|error|warning|notice|info|debug)")
	searchLogLvl := flag.String("searchloglvl", "", "search log level\n(off|critical|error|warning|notice|info|debug)")
	fen := flag.String("fen", position.StartFen, "fen to use for -perft or -epd")
	perftDepth := flag.Int("perft", 0, "runs perft on -fen (or the start position) to the given depth and exits")
	epdFile := flag.String("epd", "", "path to an EPD perft test suite file; runs it and exits")
	epdWorkers := flag.Int("epdworkers", runtime.NumCPU(), "number of EPD cases to run concurrently")
	profileFlag := flag.Bool("profile", false, "writes a CPU profile (./cpu.pprof) for the duration of this run")
	flag.Parse()

	if *versionInfo {
		printVersionInfo()
		return
	}

	if *profileFlag {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	config.ConfFile = *configFile
	config.Setup()
	if lvl, found := config.LogLevels[*logLvl]; found {
		config.LogLevel = lvl
	}
	if lvl, found := config.LogLevels[*searchLogLvl]; found {
		config.SearchLogLevel = lvl
	}
	logging.GetLog()

	if *perftDepth != 0 {
		runPerft(*fen, *perftDepth)
		return
	}

	if *epdFile != "" {
		runEpdSuite(*epdFile, *epdWorkers)
		return
	}

	u := uci.NewHandler()
	u.Loop()
}

func runPerft(fen string, depth int) {
	pf := perft.New()
	for d := 1; d <= depth; d++ {
		res, err := pf.Run(fen, d)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		out.Println(res.Report(d))
	}
}

func runEpdSuite(path string, workers int) {
	cases, err := epd.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	results, summary, err := epd.RunSuite(cases, workers)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	for _, r := range results {
		if !r.Passed {
			out.Printf("FAIL depth %d: expected %d, got %d : %s\n", r.Depth, r.Expected, r.Actual, r.Case.Fen)
		}
	}
	out.Println(summary.Report())
	if summary.Failed > 0 {
		os.Exit(1)
	}
}

func printVersionInfo() {
	out.Printf("branchwood %s\n", version)
	out.Println("Environment:")
	out.Printf("  Using GO version %s\n", runtime.Version())
	out.Printf("  Running %s using %s as a compiler\n", runtime.GOARCH, runtime.Compiler)
	out.Printf("  Number of CPU: %d\n", runtime.NumCPU())
	cwd, _ := os.Getwd()
	out.Printf("  Working directory: %s\n", cwd)
}
