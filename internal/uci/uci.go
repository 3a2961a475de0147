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

// Package uci reads the UCI text protocol from an input stream and
// drives internal/search and internal/perft from it, writing replies
// to an output stream.
package uci

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/op/go-logging"

	"github.com/ashgrove/branchwood/internal/debug"
	"github.com/ashgrove/branchwood/internal/epd"
	myLogging "github.com/ashgrove/branchwood/internal/logging"
	"github.com/ashgrove/branchwood/internal/movegen"
	"github.com/ashgrove/branchwood/internal/perft"
	"github.com/ashgrove/branchwood/internal/position"
	"github.com/ashgrove/branchwood/internal/search"
	. "github.com/ashgrove/branchwood/internal/types"
)

var log *logging.Logger

// Handler handles a chess UI's UCI session: it owns the position, the
// search and a perft runner, and everything it receives on InIo is
// turned into calls on those three and a reply on OutIo.
type Handler struct {
	InIo  *bufio.Scanner
	OutIo *bufio.Writer

	myMoveGen  *movegen.Movegen
	mySearch   *search.Search
	myPosition *position.Position
	myPerft    *perft.Perft

	uciLog *logging.Logger
}

// NewHandler creates a Handler wired to os.Stdin/os.Stdout. Replace
// InIo/OutIo before calling Loop to drive it from something else, as
// the tests do.
func NewHandler() *Handler {
	if log == nil {
		log = myLogging.GetLog()
	}
	h := &Handler{
		InIo:       bufio.NewScanner(os.Stdin),
		OutIo:      bufio.NewWriter(os.Stdout),
		myMoveGen:  movegen.New(),
		mySearch:   search.NewSearch(),
		myPosition: position.NewPosition(),
		myPerft:    perft.New(),
		uciLog:     myLogging.GetUciLog(),
	}
	h.mySearch.OnInfo = h.sendIterationInfo
	return h
}

// Loop reads lines from InIo until "quit" is received or InIo is
// exhausted.
func (h *Handler) Loop() {
	for h.InIo.Scan() {
		if h.handle(h.InIo.Text()) {
			return
		}
	}
}

// Command runs a single UCI line and returns everything it wrote to
// OutIo as a string. Used by tests and by anything that wants to drive
// the handler without stdin/stdout.
func (h *Handler) Command(cmd string) string {
	saved := h.OutIo
	buf := new(bytes.Buffer)
	h.OutIo = bufio.NewWriter(buf)
	h.handle(cmd)
	_ = h.OutIo.Flush()
	h.OutIo = saved
	return buf.String()
}

var regexWhiteSpace = regexp.MustCompile(`\s+`)

// handle processes one line of input and reports whether it was "quit".
func (h *Handler) handle(cmd string) bool {
	cmd = strings.TrimSpace(cmd)
	if len(cmd) == 0 {
		return false
	}
	h.uciLog.Infof("<< %s", cmd)
	tokens := regexWhiteSpace.Split(cmd, -1)
	switch tokens[0] {
	case "quit", "exit":
		return true
	case "uci":
		h.uciCommand()
	case "setoption":
		h.setOptionCommand(tokens)
	case "isready":
		h.send("readyok")
	case "ucinewgame":
		h.myPosition = position.NewPosition()
		h.mySearch.NewGame()
	case "position":
		h.positionCommand(tokens)
	case "go":
		h.goCommand(tokens)
	case "stop":
		h.mySearch.Stop()
		h.myPerft.Stop()
	case "d":
		h.send(debug.PrintPosition(h.myPosition))
	case "test":
		h.testCommand(tokens)
	case "ponderhit", "register":
		// accepted and ignored: pondering and registration are out of
		// scope for this engine.
	default:
		log.Warningf("unknown command: %s", cmd)
	}
	return false
}

// testCommand implements the non-standard "test perft <file>"
// extension: run an EPD perft suite against the given file and report
// pass/fail counts.
func (h *Handler) testCommand(tokens []string) {
	if len(tokens) < 3 || tokens[1] != "perft" {
		h.sendInfoString("test malformed: " + strings.Join(tokens, " "))
		return
	}
	path := tokens[2]
	go func() {
		cases, err := epd.ReadFile(path)
		if err != nil {
			h.sendInfoString("test perft: " + err.Error())
			return
		}
		_, summary, err := epd.RunSuite(cases, runtime.NumCPU())
		if err != nil {
			h.sendInfoString("test perft: " + err.Error())
			return
		}
		h.sendInfoString(summary.Report())
	}()
}

func (h *Handler) uciCommand() {
	h.send("id name branchwood")
	h.send("id author the branchwood project")
	for _, o := range optionStrings() {
		h.send(o)
	}
	h.send("uciok")
}

func (h *Handler) setOptionCommand(tokens []string) {
	if len(tokens) < 3 || tokens[1] != "name" {
		h.sendInfoString("setoption malformed: " + strings.Join(tokens, " "))
		return
	}
	i := 2
	var name strings.Builder
	for i < len(tokens) && tokens[i] != "value" {
		if name.Len() > 0 {
			name.WriteByte(' ')
		}
		name.WriteString(tokens[i])
		i++
	}
	value := ""
	if i < len(tokens)-1 && tokens[i] == "value" {
		value = strings.Join(tokens[i+1:], " ")
	}
	applyOption(h, name.String(), value)
}

// positionCommand parses "position [startpos|fen <fen>] [moves ...]".
func (h *Handler) positionCommand(tokens []string) {
	if len(tokens) < 2 {
		h.sendInfoString("position malformed: " + strings.Join(tokens, " "))
		return
	}
	fen := position.StartFen
	i := 1
	switch tokens[i] {
	case "startpos":
		i++
	case "fen":
		i++
		var fenb strings.Builder
		for i < len(tokens) && tokens[i] != "moves" {
			if fenb.Len() > 0 {
				fenb.WriteByte(' ')
			}
			fenb.WriteString(tokens[i])
			i++
		}
		if fenb.Len() == 0 {
			h.sendInfoString("position malformed: empty fen")
			return
		}
		fen = fenb.String()
	default:
		h.sendInfoString("position malformed: " + strings.Join(tokens, " "))
		return
	}

	p, err := position.NewPositionFen(fen)
	if err != nil {
		h.sendInfoString("position malformed: invalid fen " + fen)
		return
	}
	h.myPosition = p

	if i < len(tokens) && tokens[i] == "moves" {
		i++
		for ; i < len(tokens); i++ {
			m := h.myMoveGen.MoveFromUci(h.myPosition, tokens[i])
			if m == MoveNone {
				h.sendInfoString("position malformed: illegal move " + tokens[i])
				return
			}
			h.myPosition.DoMove(m)
		}
	}
}

// goCommand parses "go [depth n] [movetime ms] [nodes n] [perft n]"
// and starts the matching search or perft run.
func (h *Handler) goCommand(tokens []string) {
	limits := search.NewLimits()
	i := 1
	for i < len(tokens) {
		switch tokens[i] {
		case "perft":
			i++
			depth := 4
			if i < len(tokens) {
				if d, err := strconv.Atoi(tokens[i]); err == nil {
					depth = d
					i++
				}
			}
			h.runPerft(depth)
			return
		case "depth":
			i++
			if i >= len(tokens) {
				h.sendInfoString("go malformed: missing depth value")
				return
			}
			d, err := strconv.Atoi(tokens[i])
			if err != nil {
				h.sendInfoString("go malformed: depth value not a number: " + tokens[i])
				return
			}
			limits.Depth = d
			i++
		case "movetime":
			i++
			if i >= len(tokens) {
				h.sendInfoString("go malformed: missing movetime value")
				return
			}
			ms, err := strconv.ParseInt(tokens[i], 10, 64)
			if err != nil {
				h.sendInfoString("go malformed: movetime value not a number: " + tokens[i])
				return
			}
			limits.MoveTime = time.Duration(ms) * time.Millisecond
			i++
		case "nodes":
			i++
			if i >= len(tokens) {
				h.sendInfoString("go malformed: missing nodes value")
				return
			}
			n, err := strconv.ParseUint(tokens[i], 10, 64)
			if err != nil {
				h.sendInfoString("go malformed: nodes value not a number: " + tokens[i])
				return
			}
			limits.Nodes = n
			i++
		case "infinite", "ponder":
			// accepted for protocol compatibility; this engine has no
			// infinite/ponder mode, so a plain fixed-depth search runs.
			i++
		default:
			i++
		}
	}
	h.mySearch.Go(h.myPosition, *limits, h.sendResult)
}

func (h *Handler) runPerft(depth int) {
	go func() {
		res, err := h.myPerft.Run(h.myPosition.FEN(), depth)
		if err != nil {
			h.sendInfoString("perft failed: " + err.Error())
			return
		}
		for _, line := range strings.Split(res.Report(depth), "\n") {
			if line != "" {
				h.sendInfoString(line)
			}
		}
	}()
}

// sendIterationInfo is wired as Search.OnInfo: one "info" line per
// completed iterative deepening ply.
func (h *Handler) sendIterationInfo(r search.Result) {
	nps := uint64(0)
	if r.Elapsed > 0 {
		nps = uint64(float64(r.Nodes) / r.Elapsed.Seconds())
	}
	h.send(fmt.Sprintf("info depth %d score %s nodes %d nps %d time %d pv %s",
		r.Depth, uciScore(r.Value), r.Nodes, nps, r.Elapsed.Milliseconds(), r.Pv.StringUci()))
}

func (h *Handler) sendResult(r search.Result) {
	h.send("bestmove " + r.BestMove.UciMove())
}

// uciScore renders a Value in the "cp <n>" / "mate <n>" shape the UCI
// protocol wants for an info line's score field.
func uciScore(v Value) string {
	if !v.IsMateScore() {
		return fmt.Sprintf("cp %d", v)
	}
	pliesToMate := ValueMate - v
	if v < 0 {
		pliesToMate = ValueMate + v
	}
	movesToMate := (int(pliesToMate) + 1) / 2
	if v < 0 {
		movesToMate = -movesToMate
	}
	return fmt.Sprintf("mate %d", movesToMate)
}

func (h *Handler) sendInfoString(msg string) {
	log.Warning(msg)
	h.send("info string " + msg)
}

func (h *Handler) send(s string) {
	h.uciLog.Infof(">> %s", s)
	_, _ = h.OutIo.WriteString(s + "\n")
	_ = h.OutIo.Flush()
}
