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

package epd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ashgrove/branchwood/internal/position"
)

func TestParseCaseSplitsFenAndOpcodes(t *testing.T) {
	c, err := parseCase(position.StartFen + ";D1 20;D2 400")
	assert.NoError(t, err)
	assert.Equal(t, position.StartFen, c.Fen)
	assert.Equal(t, []Expectation{{Depth: 1, Nodes: 20}, {Depth: 2, Nodes: 400}}, c.Expectations)
}

func TestParseCaseRejectsMissingOpcodes(t *testing.T) {
	_, err := parseCase(position.StartFen)
	assert.Error(t, err)
}

func TestParseCaseRejectsMalformedOpcode(t *testing.T) {
	_, err := parseCase(position.StartFen + ";X1 20")
	assert.Error(t, err)
}

func TestReadFileSkipsBlankAndCommentLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "suite.epd")
	content := "# header comment\n\n" + position.StartFen + ";D1 20\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cases, err := ReadFile(path)
	assert.NoError(t, err)
	assert.Len(t, cases, 1)
	assert.Equal(t, position.StartFen, cases[0].Fen)
}

func TestRunSuitePassesKnownStartPositionCounts(t *testing.T) {
	cases := []Case{{Fen: position.StartFen, Expectations: []Expectation{{Depth: 1, Nodes: 20}, {Depth: 2, Nodes: 400}}}}
	results, summary, err := RunSuite(cases, 2)
	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 2, summary.Passed)
	assert.Equal(t, 0, summary.Failed)
}

func TestRunSuiteReportsMismatch(t *testing.T) {
	cases := []Case{{Fen: position.StartFen, Expectations: []Expectation{{Depth: 1, Nodes: 999}}}}
	_, summary, err := RunSuite(cases, 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, summary.Failed)
}
