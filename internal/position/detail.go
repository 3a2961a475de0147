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

package position

import (
	. "github.com/ashgrove/branchwood/internal/types"
)

// Detail is a per-position, per-side-to-move snapshot of everything a
// pin-aware move generator needs beyond the raw board: which own
// pieces are pinned along which axis, which squares a piece of a
// given type would have to land on to give check, and, when the side
// to move is in check, which squares a move must land on to resolve
// it.
//
// A Detail is only valid for the position it was built from; it must
// be rebuilt after every DoMove/UndoMove.
type Detail struct {
	KingSquare Square

	// BishopPinned/RookPinned are the side to move's own pieces pinned
	// against their king along a diagonal or a rank/file respectively.
	// A piece can appear in at most one of the two masks.
	BishopPinned Bitboard
	RookPinned   Bitboard

	// *CheckingSquares are the squares a piece of the corresponding
	// type could move to that would give check to the opponent's king,
	// used by movegen to classify quiet moves as "gives check" without
	// having to play the move first.
	PawnCheckingSquares   Bitboard
	KnightCheckingSquares Bitboard
	BishopCheckingSquares Bitboard
	RookCheckingSquares   Bitboard

	// EvasionTargets is the set of squares any move must land on to be
	// legal while in check: the checking piece's square plus, for a
	// slider, the squares between it and the king. BbAll when not in
	// check. When in double check this is BbZero, since no non-king
	// move can resolve two checks at once; movegen must restrict to
	// king moves in that case.
	EvasionTargets Bitboard

	// CheckerCount is the number of pieces currently giving check (0,
	// 1 or 2). Movegen must only generate king moves when this is 2.
	CheckerCount int
}

// BuildDetail computes a Detail for the side to move in p.
func BuildDetail(p *Position) *Detail {
	us := p.nextPlayer
	them := us.Opponent()
	kingSq := p.kingSquare[us]
	occ := p.OccupiedAll()

	d := &Detail{KingSquare: kingSq}

	d.computePins(p, us, them, kingSq, occ)
	d.computeCheckingSquares(p, them, kingSq, occ)
	d.computeCheckersAndEvasions(p, us, them, kingSq, occ)

	return d
}

// computePins finds, for each enemy slider that attacks the king's
// square through exactly one of our own pieces, that piece's square
// and adds it to BishopPinned or RookPinned depending on the pinning
// slider's axis.
func (d *Detail) computePins(p *Position, us, them Color, kingSq Square, occ Bitboard) {
	bishopSnipers := GetPseudoAttacks(Bishop, kingSq) & (p.piecesBb[them][Bishop] | p.piecesBb[them][Queen])
	for bishopSnipers != BbZero {
		sniperSq := bishopSnipers.PopLsb()
		between := Intermediate(kingSq, sniperSq) & occ
		if between.PopCount() == 1 && between&p.occupiedBb[us] != BbZero {
			d.BishopPinned |= between
		}
	}

	rookSnipers := GetPseudoAttacks(Rook, kingSq) & (p.piecesBb[them][Rook] | p.piecesBb[them][Queen])
	for rookSnipers != BbZero {
		sniperSq := rookSnipers.PopLsb()
		between := Intermediate(kingSq, sniperSq) & occ
		if between.PopCount() == 1 && between&p.occupiedBb[us] != BbZero {
			d.RookPinned |= between
		}
	}
}

// computeCheckingSquares records, per piece type, the squares a piece
// of that type standing there would attack the enemy king from -
// i.e. the squares from which our own such piece would give check.
func (d *Detail) computeCheckingSquares(p *Position, them Color, kingSq Square, occ Bitboard) {
	theirKingSq := p.kingSquare[them]
	d.PawnCheckingSquares = GetPawnAttacks(them, theirKingSq)
	d.KnightCheckingSquares = GetPseudoAttacks(Knight, theirKingSq)
	d.BishopCheckingSquares = GetAttacksBb(Bishop, theirKingSq, occ)
	d.RookCheckingSquares = GetAttacksBb(Rook, theirKingSq, occ)
}

// computeCheckersAndEvasions finds every enemy piece currently
// attacking our king and derives EvasionTargets from it.
func (d *Detail) computeCheckersAndEvasions(p *Position, us, them Color, kingSq Square, occ Bitboard) {
	var checkers Bitboard

	checkers |= GetPawnAttacks(us, kingSq) & p.piecesBb[them][Pawn]
	checkers |= GetPseudoAttacks(Knight, kingSq) & p.piecesBb[them][Knight]
	checkers |= GetAttacksBb(Bishop, kingSq, occ) & (p.piecesBb[them][Bishop] | p.piecesBb[them][Queen])
	checkers |= GetAttacksBb(Rook, kingSq, occ) & (p.piecesBb[them][Rook] | p.piecesBb[them][Queen])

	d.CheckerCount = checkers.PopCount()

	switch d.CheckerCount {
	case 0:
		d.EvasionTargets = BbAll
	case 1:
		checkerSq := checkers.Lsb()
		d.EvasionTargets = checkers | Intermediate(kingSq, checkerSq)
	default:
		d.EvasionTargets = BbZero
	}
}
