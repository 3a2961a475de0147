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

package uci

import (
	"bufio"
	"bytes"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ashgrove/branchwood/internal/config"
	"github.com/ashgrove/branchwood/internal/position"
)

func init() {
	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "../..")
	if err := os.Chdir(dir); err != nil {
		panic(err)
	}
	config.Setup()
}

func TestUciCommandRespondsWithIdAndOptions(t *testing.T) {
	h := NewHandler()
	result := h.Command("uci")
	assert.Contains(t, result, "id name branchwood")
	assert.Contains(t, result, "option name Hash")
	assert.Contains(t, result, "uciok")
}

func TestIsReadyRespondsReadyOk(t *testing.T) {
	h := NewHandler()
	assert.Contains(t, h.Command("isready"), "readyok")
}

func TestLoopStopsOnQuit(t *testing.T) {
	h := NewHandler()
	h.InIo = bufio.NewScanner(strings.NewReader("uci\nquit\n"))
	buf := new(bytes.Buffer)
	h.OutIo = bufio.NewWriter(buf)
	h.Loop()
	assert.Contains(t, buf.String(), "uciok")
}

func TestPositionStartposThenMoves(t *testing.T) {
	h := NewHandler()
	h.Command("position startpos moves e2e4 e7e5")
	assert.EqualValues(t, 2, h.myPosition.HistoryLen())
}

func TestPositionFen(t *testing.T) {
	h := NewHandler()
	h.Command("position fen 6k1/5ppp/8/8/8/8/8/4R2K w - - 0 1")
	assert.Equal(t, "6k1/5ppp/8/8/8/8/8/4R2K w - - 0 1", h.myPosition.FEN())
}

func TestPositionRejectsIllegalMove(t *testing.T) {
	h := NewHandler()
	result := h.Command("position startpos moves e2e5")
	assert.Contains(t, result, "info string")
}

func TestGoDepthReportsBestMove(t *testing.T) {
	h := NewHandler()
	h.Command("position startpos")
	buf := new(bytes.Buffer)
	h.OutIo = bufio.NewWriter(buf)
	h.handle("go depth 2")
	h.mySearch.Wait()
	assert.Contains(t, buf.String(), "bestmove")
}

func TestGoPerftReportsNodeCount(t *testing.T) {
	h := NewHandler()
	h.Command("position startpos")
	buf := new(bytes.Buffer)
	h.OutIo = bufio.NewWriter(buf)
	h.handle("go perft 2")
	deadline := time.After(5 * time.Second)
	for !strings.Contains(buf.String(), "Nodes") {
		select {
		case <-deadline:
			t.Fatal("perft did not report")
		default:
		}
	}
	assert.Contains(t, buf.String(), "Nodes")
}

func TestSetOptionHash(t *testing.T) {
	h := NewHandler()
	result := h.Command("setoption name Hash value 64")
	assert.NotContains(t, result, "no such option")
}

func TestSetOptionUnknownReportsError(t *testing.T) {
	h := NewHandler()
	result := h.Command("setoption name DoesNotExist value 1")
	assert.Contains(t, result, "no such option")
}

func TestDCommandPrintsBoard(t *testing.T) {
	h := NewHandler()
	result := h.Command("d")
	assert.Contains(t, result, "a   b   c   d   e   f   g   h")
	assert.Contains(t, result, "Fen: "+h.myPosition.FEN())
}

func TestTestPerftCommandReportsSummary(t *testing.T) {
	h := NewHandler()
	dir := t.TempDir()
	path := filepath.Join(dir, "suite.epd")
	assert.NoError(t, os.WriteFile(path, []byte(position.StartFen+";D1 20;D2 400\n"), 0o644))

	buf := new(bytes.Buffer)
	h.OutIo = bufio.NewWriter(buf)
	h.handle("test perft " + path)

	deadline := time.After(5 * time.Second)
	for !strings.Contains(buf.String(), "perft suite:") {
		select {
		case <-deadline:
			t.Fatal("test perft did not report")
		default:
		}
	}
	assert.Contains(t, buf.String(), "2/2 passed")
}

