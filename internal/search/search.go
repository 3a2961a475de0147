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

// Package search implements alpha-beta negamax with iterative
// deepening and a quiescence tail, backed by a shared transposition
// table. It runs a single searching worker per Search instance -
// pondering, multi-PV and time control beyond a fixed depth or a
// fixed move time are all out of scope.
package search

import (
	"sync"
	"time"

	"github.com/op/go-logging"

	"github.com/ashgrove/branchwood/internal/config"
	"github.com/ashgrove/branchwood/internal/evaluator"
	myLogging "github.com/ashgrove/branchwood/internal/logging"
	"github.com/ashgrove/branchwood/internal/movegen"
	"github.com/ashgrove/branchwood/internal/moveslice"
	"github.com/ashgrove/branchwood/internal/position"
	"github.com/ashgrove/branchwood/internal/transpositiontable"
	. "github.com/ashgrove/branchwood/internal/types"
	"github.com/ashgrove/branchwood/internal/util"
)

var out = myLogging.GetSearchLog

// Result is everything a finished (or stopped-early) search reports
// back to its caller: the move to play, the PV it was found on, and
// enough statistics for a UCI "info" line.
type Result struct {
	BestMove Move
	Value    Value
	Depth    int
	Pv       moveslice.MoveList
	Nodes    uint64
	Elapsed  time.Duration
	Stats    Statistics
}

// InfoFunc is called once per completed iterative deepening ply, in
// UCI "info depth ... score ... pv ..." shape. The uci package wires
// this to its stdout writer; tests can leave it nil.
type InfoFunc func(r Result)

// Search runs negamax on a single worker goroutine at a time. One
// instance owns one transposition table, one move generator per ply,
// and the killer/history move ordering tables; reuse the same
// instance across a game's moves so the table keeps paying off.
type Search struct {
	log *logging.Logger

	tt   *transpositiontable.TtTable
	eval *evaluator.Evaluator
	mg   [MaxDepth + 1]*movegen.Movegen

	killers [MaxDepth + 1][2]Move
	history [64][64]int

	pv [MaxDepth + 1]moveslice.MoveList

	Stats Statistics

	running   util.Bool
	stopFlag  util.Bool
	startTime time.Time
	limits    Limits

	wg sync.WaitGroup

	// OnInfo, if set, is called after every completed iteration.
	OnInfo InfoFunc
}

// NewSearch creates a Search with its own transposition table sized
// from config.Settings.Search.TTSizeMb.
func NewSearch() *Search {
	s := &Search{
		log:  out(),
		tt:   transpositiontable.NewTtTable(config.Settings.Search.TTSizeMb),
		eval: evaluator.NewEvaluator(),
	}
	for i := range s.mg {
		s.mg[i] = movegen.New()
	}
	return s
}

// SetTTSize resizes the transposition table, discarding its contents.
func (s *Search) SetTTSize(mb int) {
	s.tt.Resize(mb)
}

// NewGame clears the transposition table and move ordering heuristics
// for the start of a new game (UCI "ucinewgame").
func (s *Search) NewGame() {
	s.tt.Clear()
	s.killers = [MaxDepth + 1][2]Move{}
	s.history = [64][64]int{}
}

// IsSearching reports whether a search is currently running.
func (s *Search) IsSearching() bool {
	return s.running.Load()
}

// Stop asks a running search to return as soon as it next checks for
// it; it does not block until the search has actually returned.
func (s *Search) Stop() {
	s.stopFlag.Store(true)
}

// Wait blocks until any in-flight Go call has returned.
func (s *Search) Wait() {
	s.wg.Wait()
}

// Go starts an asynchronous search on a copy of p and calls onDone
// with the result once it finishes or Stop is called. p itself is
// never mutated by the search.
func (s *Search) Go(p *position.Position, limits Limits, onDone func(Result)) {
	if s.IsSearching() {
		return
	}
	pCopy := *p
	s.stopFlag.Store(false)
	s.running.Store(true)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		result := s.iterativeDeepening(&pCopy, limits)
		s.running.Store(false)
		if onDone != nil {
			onDone(result)
		}
	}()
}

// StartSearch runs a search to completion on the calling goroutine and
// returns its result; used by tests and by synchronous callers.
func (s *Search) StartSearch(p *position.Position, limits Limits) Result {
	pCopy := *p
	s.stopFlag.Store(false)
	s.running.Store(true)
	defer s.running.Store(false)
	return s.iterativeDeepening(&pCopy, limits)
}

// iterativeDeepening repeatedly calls the root search at increasing
// depths until limits.Depth is reached, limits.MoveTime elapses, or
// Stop is called. It returns the best move found by the last fully
// completed iteration; a partial, stopped-mid-iteration iteration is
// discarded in favor of the previous one, since its score and PV
// can't be trusted once alpha-beta was cut off early.
func (s *Search) iterativeDeepening(p *position.Position, limits Limits) Result {
	s.Stats.clear()
	s.startTime = time.Now()
	s.limits = limits

	if !s.mg[0].HasLegalMove(p) {
		// checkmate or stalemate at the root: nothing to search.
		return Result{Elapsed: time.Since(s.startTime)}
	}

	depth := limits.Depth
	if depth <= 0 {
		depth = config.Settings.Search.DefaultDepth
	}
	if depth > MaxDepth {
		depth = MaxDepth
	}

	var deadline <-chan time.Time
	if limits.MoveTime > 0 {
		timer := time.NewTimer(limits.MoveTime)
		defer timer.Stop()
		deadline = timer.C
	}

	var best Result
	for d := 1; d <= depth; d++ {
		select {
		case <-deadline:
			s.stopFlag.Store(true)
		default:
		}
		if s.stopFlag.Load() {
			break
		}

		value := s.rootSearch(p, d)
		if s.stopFlag.Load() && d > 1 {
			break
		}

		best = Result{
			BestMove: s.pv[0].Front(),
			Value:    value,
			Depth:    d,
			Pv:       *s.pv[0].Clone(),
			Nodes:    s.Stats.Nodes,
			Elapsed:  time.Since(s.startTime),
			Stats:    s.Stats,
		}
		if s.OnInfo != nil {
			s.OnInfo(best)
		}
		if value.IsMateScore() {
			break
		}
	}
	return best
}
