/*
 * branchwood - a UCI chess engine in Go
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package perft counts the leaf nodes of the legal move tree to a
// fixed depth, the standard correctness and performance benchmark for
// a move generator.
package perft

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ashgrove/branchwood/internal/movegen"
	"github.com/ashgrove/branchwood/internal/position"
	. "github.com/ashgrove/branchwood/internal/types"
)

var out = message.NewPrinter(language.English)

// Result holds the node and event counts for one perft run.
type Result struct {
	Nodes      uint64
	Captures   uint64
	EnPassant  uint64
	Castles    uint64
	Promotions uint64
	Checks     uint64
	CheckMates uint64
	Elapsed    time.Duration
}

// Perft runs a perft search to a fixed depth from a starting
// position, reusing one move generator per ply so no move list is
// allocated per node.
type Perft struct {
	stop bool
}

// New creates an idle Perft runner.
func New() *Perft {
	return &Perft{}
}

// Stop requests that a run started in another goroutine abort at the
// next opportunity. Run then returns the counts gathered so far.
func (pf *Perft) Stop() {
	pf.stop = true
}

// Run counts the leaf nodes below fen to the given depth.
func (pf *Perft) Run(fen string, depth int) (Result, error) {
	pf.stop = false
	if depth < 1 {
		depth = 1
	}

	p, err := position.NewPositionFen(fen)
	if err != nil {
		return Result{}, err
	}

	mgs := make([]*movegen.Movegen, depth+1)
	for i := range mgs {
		mgs[i] = movegen.New()
	}

	var res Result
	start := time.Now()
	res.Nodes = pf.search(depth, p, mgs, &res)
	res.Elapsed = time.Since(start)
	return res, nil
}

func (pf *Perft) search(depth int, p *position.Position, mgs []*movegen.Movegen, res *Result) uint64 {
	if pf.stop {
		return 0
	}
	moves := mgs[depth].Generate(p, movegen.GenAll)

	if depth == 1 {
		var nodes uint64
		for i := 0; i < moves.Len(); i++ {
			m := moves.At(i)
			countEvent(p, m, res)
			p.DoMove(m)
			nodes++
			if p.HasCheck() {
				res.Checks++
				if !mgs[0].HasLegalMove(p) {
					res.CheckMates++
				}
			}
			p.UndoMove()
		}
		return nodes
	}

	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		if pf.stop {
			return nodes
		}
		m := moves.At(i)
		p.DoMove(m)
		nodes += pf.search(depth-1, p, mgs, res)
		p.UndoMove()
	}
	return nodes
}

func countEvent(p *position.Position, m Move, res *Result) {
	if m.IsEnPassant() {
		res.EnPassant++
		res.Captures++
		return
	}
	if m.IsCapture() {
		res.Captures++
	}
	if m.IsCastle() {
		res.Castles++
	}
	if m.IsPromotion() {
		res.Promotions++
	}
}

// Report renders a Result the way the UCI "go perft" command prints
// it: one summary block per run.
func (r Result) Report(depth int) string {
	nps := uint64(0)
	if r.Elapsed.Nanoseconds() > 0 {
		nps = (r.Nodes * uint64(time.Second.Nanoseconds())) / uint64(r.Elapsed.Nanoseconds())
	}
	return out.Sprintf(
		"Perft depth %d\nTime      : %s\nNPS       : %d nps\nNodes     : %d\nCaptures  : %d\nEnPassant : %d\nCastles   : %d\nPromotions: %d\nChecks    : %d\nCheckMates: %d\n",
		depth, r.Elapsed, nps, r.Nodes, r.Captures, r.EnPassant, r.Castles, r.Promotions, r.Checks, r.CheckMates,
	)
}

// Divide runs perft to depth but reports the node count contributed
// by each root move separately, the standard way to localize a move
// generator bug against a reference implementation.
func Divide(fen string, depth int) (map[string]uint64, uint64, error) {
	p, err := position.NewPositionFen(fen)
	if err != nil {
		return nil, 0, err
	}
	if depth < 1 {
		depth = 1
	}

	mgs := make([]*movegen.Movegen, depth+1)
	for i := range mgs {
		mgs[i] = movegen.New()
	}
	pf := New()

	root := mgs[depth].Generate(p, movegen.GenAll)
	counts := make(map[string]uint64, root.Len())
	var total uint64
	for i := 0; i < root.Len(); i++ {
		m := root.At(i)
		p.DoMove(m)
		var n uint64
		if depth == 1 {
			n = 1
		} else {
			var res Result
			n = pf.search(depth-1, p, mgs, &res)
		}
		p.UndoMove()
		counts[m.UciMove()] = n
		total += n
	}
	return counts, total, nil
}
