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

// Package epd reads a perft test suite (one FEN plus one or more
// "D<depth> <nodes>" expectations per line, semicolon separated, the
// EPD perft convention) and runs internal/perft against every line,
// concurrently across lines since each one owns an independent
// position.
package epd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ashgrove/branchwood/internal/perft"
)

// Expectation is one "D<depth> <nodes>" opcode from an EPD perft line.
type Expectation struct {
	Depth int
	Nodes uint64
}

// Case is a single EPD line: a position and the perft node counts it
// is expected to produce at one or more depths.
type Case struct {
	Fen          string
	Expectations []Expectation
	Line         string
}

// Result is the outcome of running one Expectation against Case.Fen.
type Result struct {
	Case     Case
	Depth    int
	Expected uint64
	Actual   uint64
	Elapsed  time.Duration
	Passed   bool
}

// Summary totals a suite run for reporting.
type Summary struct {
	Total   int
	Passed  int
	Failed  int
	Elapsed time.Duration
}

// ReadFile loads and parses every non-blank, non-comment line of path.
func ReadFile(path string) ([]Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cases []Case
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		c, err := parseCase(line)
		if err != nil {
			return nil, fmt.Errorf("epd: %s: %w", path, err)
		}
		cases = append(cases, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cases, nil
}

// parseCase splits a line of the shape
// "<fen>;D1 20;D2 400;D3 8902" into a Case.
func parseCase(line string) (Case, error) {
	fields := strings.Split(line, ";")
	fen := strings.TrimSpace(fields[0])
	if fen == "" {
		return Case{}, fmt.Errorf("empty fen in line %q", line)
	}
	c := Case{Fen: fen, Line: line}
	for _, f := range fields[1:] {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		parts := strings.Fields(f)
		if len(parts) != 2 || !strings.HasPrefix(parts[0], "D") {
			return Case{}, fmt.Errorf("malformed perft opcode %q in line %q", f, line)
		}
		depth, err := strconv.Atoi(parts[0][1:])
		if err != nil {
			return Case{}, fmt.Errorf("malformed depth in opcode %q: %w", f, err)
		}
		nodes, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			return Case{}, fmt.Errorf("malformed node count in opcode %q: %w", f, err)
		}
		c.Expectations = append(c.Expectations, Expectation{Depth: depth, Nodes: nodes})
	}
	if len(c.Expectations) == 0 {
		return Case{}, fmt.Errorf("no perft opcodes in line %q", line)
	}
	return c, nil
}

// RunSuite runs every Case's every Expectation, workers lines at a
// time, and returns one Result per expectation plus a Summary. Each
// goroutine owns its own perft.Perft and Position, so this never
// touches the search or a shared Position - running a perft suite is
// independent of the "no threading beyond a single searching worker"
// rule that governs internal/search.
func RunSuite(cases []Case, workers int) ([]Result, Summary, error) {
	if workers < 1 {
		workers = 1
	}

	offsets := make([]int, len(cases))
	total := 0
	for i, c := range cases {
		offsets[i] = total
		total += len(c.Expectations)
	}
	results := make([]Result, total)

	start := time.Now()
	var g errgroup.Group
	sem := make(chan struct{}, workers)
	for i, c := range cases {
		i, c := i, c
		g.Go(func() error {
			sem <- struct{}{}
			defer func() { <-sem }()

			pf := perft.New()
			for j, exp := range c.Expectations {
				res, err := pf.Run(c.Fen, exp.Depth)
				if err != nil {
					return fmt.Errorf("epd: fen %q: %w", c.Fen, err)
				}
				results[offsets[i]+j] = Result{
					Case:     c,
					Depth:    exp.Depth,
					Expected: exp.Nodes,
					Actual:   res.Nodes,
					Elapsed:  res.Elapsed,
					Passed:   res.Nodes == exp.Nodes,
				}
			}
			return nil
		})
	}
	err := g.Wait()

	summary := Summary{Elapsed: time.Since(start)}
	for _, r := range results {
		summary.Total++
		if r.Passed {
			summary.Passed++
		} else {
			summary.Failed++
		}
	}
	return results, summary, err
}

// Report renders a Summary the way a "test perft <file>" UCI command
// would print it.
func (s Summary) Report() string {
	return fmt.Sprintf("perft suite: %d/%d passed in %s", s.Passed, s.Total, s.Elapsed)
}
