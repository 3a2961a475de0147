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

package search

import (
	"github.com/ashgrove/branchwood/internal/config"
	"github.com/ashgrove/branchwood/internal/movegen"
	"github.com/ashgrove/branchwood/internal/moveslice"
	"github.com/ashgrove/branchwood/internal/position"
	. "github.com/ashgrove/branchwood/internal/types"
	"github.com/ashgrove/branchwood/internal/util"
)

// rootSearch is the depth-1 frame of negamax: it always expands the
// full move list (no null-move, no TT cutoff) since the root is where
// the caller wants a best move and a PV, not just a bound.
func (s *Search) rootSearch(p *position.Position, depth int) Value {
	ml := s.mg[0].Generate(p, movegen.GenAll)
	s.orderMoves(p, ml, 0, s.ttMove(p))

	alpha, beta := -ValueInf, ValueInf
	bestMove := MoveNone

	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i)
		p.DoMove(m)
		s.Stats.Nodes++
		value := -s.negamax(p, depth-1, 1, -beta, -alpha)
		p.UndoMove()

		if s.stopFlag.Load() {
			break
		}
		if value > alpha {
			alpha = value
			bestMove = m
			s.updatePV(0, m)
		}
	}

	if bestMove != MoveNone {
		s.storeTT(p, depth, 0, bestMove, alpha, VtExact)
	}
	return alpha
}

// negamax is the main alpha-beta tree walk. depth counts plies still
// to search before dropping into quiescence; ply counts plies from
// the search root and is what mate scores and TT values get adjusted
// by.
func (s *Search) negamax(p *position.Position, depth, ply int, alpha, beta Value) Value {
	if p.HalfMoveClock() >= 100 {
		return ValueDraw
	}
	if depth <= 0 {
		if !config.Settings.Search.UseQuiescence {
			return s.eval.Evaluate(p)
		}
		return s.quiescence(p, ply, 0, alpha, beta)
	}
	if p.PositionExisted() {
		return ValueDraw
	}

	s.Stats.Nodes++
	if s.limits.Nodes > 0 && s.Stats.Nodes >= s.limits.Nodes {
		s.stopFlag.Store(true)
	}

	var ttMove Move
	if entry := s.tt.Probe(p.ZobristKey()); entry != nil {
		s.Stats.TTHits++
		ttMove = entry.Move()
		if int(entry.Depth()) >= depth {
			ttValue := valueFromTT(entry.Value(), ply)
			switch entry.Vtype() {
			case VtExact:
				return ttValue
			case VtAlpha:
				if ttValue <= alpha {
					return alpha
				}
			case VtBeta:
				if ttValue >= beta {
					return beta
				}
			}
		}
	} else {
		s.Stats.TTMisses++
	}

	mgIdx := clampPly(ply)
	ml := s.mg[mgIdx].Generate(p, movegen.GenAll)
	if ml.Len() == 0 {
		if p.HasCheck() {
			return -ValueMate + Value(ply)
		}
		return ValueDraw
	}
	s.orderMoves(p, ml, mgIdx, ttMove)

	bestValue := -ValueInf
	bestMove := MoveNone
	vtype := VtAlpha

	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i)
		p.DoMove(m)
		value := -s.negamax(p, depth-1, ply+1, -beta, -alpha)
		p.UndoMove()

		if s.stopFlag.Load() {
			return bestValue
		}
		if value > bestValue {
			bestValue = value
			bestMove = m
			if value > alpha {
				alpha = value
				vtype = VtExact
				if ply < len(s.pv)-1 {
					s.updatePV(ply, m)
				}
				if alpha >= beta {
					vtype = VtBeta
					s.Stats.BetaCuts++
					if i == 0 {
						s.Stats.BetaCuts1st++
					}
					if !m.IsCapture() {
						s.storeKiller(mgIdx, m)
						s.history[m.From()][m.To()] += depth * depth
					}
					break
				}
			}
		}
	}

	s.storeTT(p, depth, ply, bestMove, bestValue, vtype)
	return bestValue
}

// quiescence extends the search along captures (and, at its very
// first ply, checks) until the position is quiet, so the static
// evaluator is never asked to judge a position in the middle of a
// capture sequence.
func (s *Search) quiescence(p *position.Position, ply, qDepth int, alpha, beta Value) Value {
	s.Stats.Nodes++
	s.Stats.QNodes++

	standPat := s.eval.Evaluate(p)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	mode := movegen.GenCaptures
	if qDepth == 0 {
		mode |= movegen.GenChecks
	}
	mgIdx := clampPly(ply)
	ml := s.mg[mgIdx].Generate(p, mode)
	s.orderMoves(p, ml, mgIdx, MoveNone)

	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i)
		p.DoMove(m)
		value := -s.quiescence(p, ply+1, qDepth+1, -beta, -alpha)
		p.UndoMove()

		if s.stopFlag.Load() {
			return alpha
		}
		if value >= beta {
			return beta
		}
		if value > alpha {
			alpha = value
		}
	}
	return alpha
}

// orderMoves sorts ml so the transposition-table move goes first,
// then captures by MVV-LVA (most valuable victim first, least
// valuable attacker breaking ties), then killer moves remembered for
// this ply, then everything else by history score.
func (s *Search) orderMoves(p *position.Position, ml *moveslice.MoveList, ply int, ttMove Move) {
	k0, k1 := s.killers[ply][0], s.killers[ply][1]
	ml.SortByKey(func(m Move) int {
		switch {
		case m == ttMove && ttMove != MoveNone:
			return 1_000_000
		case m.IsCapture():
			victim := Pawn
			if !m.IsEnPassant() {
				victim = p.PieceAt(m.To()).TypeOf()
			}
			attacker := p.PieceAt(m.From()).TypeOf()
			return 100_000 + int(victim.ValueOf())*16 - int(attacker.ValueOf())
		case m == k0 || m == k1:
			return 50_000
		default:
			return s.history[m.From()][m.To()]
		}
	})
}

func (s *Search) storeKiller(ply int, m Move) {
	if s.killers[ply][0] != m {
		s.killers[ply][1] = s.killers[ply][0]
		s.killers[ply][0] = m
	}
}

func (s *Search) storeTT(p *position.Position, depth, ply int, move Move, value Value, vtype ValueType) {
	s.tt.Put(p.ZobristKey(), move, int8(depth), valueToTT(value, ply), vtype, s.eval.Evaluate(p))
}

func (s *Search) ttMove(p *position.Position) Move {
	if entry := s.tt.GetEntry(p.ZobristKey()); entry != nil {
		return entry.Move()
	}
	return MoveNone
}

// updatePV copies the child ply's PV onto the front of this ply's,
// prefixed with the move that led to it - the standard triangular PV
// table technique.
func (s *Search) updatePV(ply int, move Move) {
	line := &s.pv[ply]
	*line = append((*line)[:0], move)
	if ply+1 < len(s.pv) {
		*line = append(*line, s.pv[ply+1]...)
	}
}

// valueToTT normalizes a mate score to be independent of the ply it
// was found at before storing it, so a later probe at a different ply
// can recover the correct mate distance from the root.
func valueToTT(value Value, ply int) Value {
	if !value.IsMateScore() {
		return value
	}
	if value > 0 {
		return value + Value(ply)
	}
	return value - Value(ply)
}

// valueFromTT reverses valueToTT when reading a stored value back in
// at a given ply.
func valueFromTT(value Value, ply int) Value {
	if !value.IsMateScore() {
		return value
	}
	if value > 0 {
		return value - Value(ply)
	}
	return value + Value(ply)
}

func clampPly(ply int) int {
	return util.Min(ply, MaxDepth)
}
