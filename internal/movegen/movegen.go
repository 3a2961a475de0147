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

// Package movegen generates fully legal moves for a position: pins
// and checks are resolved while the move list is built instead of
// generating pseudo-legal moves and filtering them out afterwards.
package movegen

import (
	"github.com/ashgrove/branchwood/internal/moveslice"
	"github.com/ashgrove/branchwood/internal/position"
	. "github.com/ashgrove/branchwood/internal/types"
)

// Mode selects which classes of move a generation call should
// produce. The bits mirror the quiet/check/capture distinction a
// quiescence search needs: captures alone, captures plus quiet moves
// that give check, or everything for full legal move generation.
type Mode uint8

const (
	GenCaptures Mode = 1 << iota
	GenQuiets
	GenChecks // quiet moves that give check; redundant once GenQuiets is set

	GenAll = GenCaptures | GenQuiets
)

// Movegen generates legal moves for a position, reusing its internal
// buffer across calls so a search doesn't allocate a move list per
// node.
type Movegen struct {
	moves *moveslice.MoveList
}

// New creates a move generator with an internal buffer sized for a
// typical legal move count in any reachable chess position.
func New() *Movegen {
	return &Movegen{moves: moveslice.NewMoveList(128)}
}

// Generate returns the legal moves for p matching mode. The returned
// list is owned by the generator and is invalidated by the next call
// to Generate.
func (mg *Movegen) Generate(p *position.Position, mode Mode) *moveslice.MoveList {
	mg.moves.Clear()
	d := position.BuildDetail(p)

	generateKingMoves(p, d, mode, mg.moves)
	if d.CheckerCount < 2 {
		generatePawnMoves(p, d, mode, mg.moves)
		generateKnightMoves(p, d, mode, mg.moves)
		generateSliderMoves(p, d, Bishop, mode, mg.moves)
		generateSliderMoves(p, d, Rook, mode, mg.moves)
		generateSliderMoves(p, d, Queen, mode, mg.moves)
		if d.CheckerCount == 0 {
			generateCastling(p, mode, mg.moves)
		}
	}

	return mg.moves
}

// HasLegalMove reports whether the side to move has at least one
// legal move. It generates the full list and checks that it is not
// empty. Used for mate and stalemate detection where the move itself
// is irrelevant.
func (mg *Movegen) HasLegalMove(p *position.Position) bool {
	return mg.Generate(p, GenAll).Len() > 0
}

// MoveFromUci generates the legal moves for p and returns the one
// whose pure algebraic notation (Move.String) matches uci, or
// MoveNone if uci names no legal move. Used by internal/uci to turn
// a "position ... moves e2e4 e7e5 ..." token into a playable Move.
func (mg *Movegen) MoveFromUci(p *position.Position, uci string) Move {
	ml := mg.Generate(p, GenAll)
	for i := 0; i < ml.Len(); i++ {
		if m := ml.At(i); m.String() == uci {
			return m
		}
	}
	return MoveNone
}

// rayTo returns the orientation of the ray from king to sq. Both
// squares must share a rank, file or diagonal; callers only use this
// on squares detail.go already identified as pinned against king.
func rayTo(king, sq Square) Orientation {
	kf, kr := king.FileOf(), king.RankOf()
	sf, sr := sq.FileOf(), sq.RankOf()
	switch {
	case sf == kf && sr > kr:
		return North_
	case sf == kf:
		return South_
	case sr == kr && sf > kf:
		return East_
	case sr == kr:
		return West_
	case sf > kf && sr > kr:
		return Northeast_
	case sf < kf && sr > kr:
		return Northwest_
	case sf > kf:
		return Southeast_
	default:
		return Southwest_
	}
}

// pinMask restricts a piece's destinations to the line it is pinned
// along, or BbAll if it isn't pinned at all. A piece pinned on the
// opposite axis to the one requested can't move on this axis at all,
// hence BbZero.
func pinMask(d *position.Detail, from Square, axisIsBishop bool) Bitboard {
	sqBb := from.Bb()
	switch {
	case d.BishopPinned&sqBb != BbZero:
		if !axisIsBishop {
			return BbZero
		}
		return Ray(d.KingSquare, rayTo(d.KingSquare, from))
	case d.RookPinned&sqBb != BbZero:
		if axisIsBishop {
			return BbZero
		}
		return Ray(d.KingSquare, rayTo(d.KingSquare, from))
	default:
		return BbAll
	}
}

// queenPinMask allows a pinned queen to still slide along whichever
// axis pins it, unlike a bishop or rook which is only ever pinned
// along its own axis in the first place.
func queenPinMask(d *position.Detail, from Square) Bitboard {
	sqBb := from.Bb()
	switch {
	case d.BishopPinned&sqBb != BbZero, d.RookPinned&sqBb != BbZero:
		return Ray(d.KingSquare, rayTo(d.KingSquare, from))
	default:
		return BbAll
	}
}

func emitTargets(p *position.Position, from Square, targets, checkSquares Bitboard, mode Mode, ml *moveslice.MoveList) {
	for targets != BbZero {
		to := targets.PopLsb()
		if p.PieceAt(to) != PieceNone {
			if mode&GenCaptures != 0 {
				ml.PushBack(MakeMove(from, to, Capture))
			}
			continue
		}
		if mode&GenQuiets != 0 || (mode&GenChecks != 0 && checkSquares&to.Bb() != BbZero) {
			ml.PushBack(MakeMove(from, to, Quiet))
		}
	}
}

func generateKnightMoves(p *position.Position, d *position.Detail, mode Mode, ml *moveslice.MoveList) {
	us := p.NextPlayer()
	knights := p.PiecesBb(us, Knight) &^ d.BishopPinned &^ d.RookPinned
	for knights != BbZero {
		from := knights.PopLsb()
		targets := GetPseudoAttacks(Knight, from) &^ p.OccupiedBb(us) & d.EvasionTargets
		emitTargets(p, from, targets, d.KnightCheckingSquares, mode, ml)
	}
}

func generateSliderMoves(p *position.Position, d *position.Detail, pt PieceType, mode Mode, ml *moveslice.MoveList) {
	us := p.NextPlayer()
	occ := p.OccupiedAll()
	pieces := p.PiecesBb(us, pt)

	var checkSquares Bitboard
	switch pt {
	case Bishop:
		checkSquares = d.BishopCheckingSquares
	case Rook:
		checkSquares = d.RookCheckingSquares
	case Queen:
		checkSquares = d.BishopCheckingSquares | d.RookCheckingSquares
	}

	for pieces != BbZero {
		from := pieces.PopLsb()

		var mask Bitboard
		switch pt {
		case Bishop:
			mask = pinMask(d, from, true)
		case Rook:
			mask = pinMask(d, from, false)
		case Queen:
			mask = queenPinMask(d, from)
		}
		if mask == BbZero {
			continue
		}

		attacks := GetAttacksBb(pt, from, occ)
		targets := attacks &^ p.OccupiedBb(us) & d.EvasionTargets & mask
		emitTargets(p, from, targets, checkSquares, mode, ml)
	}
}

func generatePawnMoves(p *position.Position, d *position.Detail, mode Mode, ml *moveslice.MoveList) {
	us := p.NextPlayer()
	them := us.Opponent()
	push := us.PawnPushDirection()
	pawns := p.PiecesBb(us, Pawn)
	occ := p.OccupiedAll()
	promoRank := us.PromotionRankBb()

	if mode&GenCaptures != 0 {
		for _, dir := range []Direction{West, East} {
			captures := ShiftBitboard(pawns, push+dir) & p.OccupiedBb(them) & d.EvasionTargets
			for captures != BbZero {
				to := captures.PopLsb()
				from := to.To(-(push + dir))
				if !pawnMoveAllowed(d, from, to) {
					continue
				}
				addPawnMoves(to.Bb()&promoRank != BbZero, from, to, true, ml)
			}
		}

		if ep := p.EnPassantSquare(); ep != SqNone {
			capSq := ep.To(them.PawnPushDirection())
			for _, dir := range []Direction{West, East} {
				fromBb := ShiftBitboard(ep.Bb(), -(push+dir)) & pawns
				if fromBb == BbZero {
					continue
				}
				from := fromBb.Lsb()
				if d.CheckerCount != 0 && d.EvasionTargets&(ep.Bb()|capSq.Bb()) == BbZero {
					continue
				}
				if !pawnMoveAllowed(d, from, ep) {
					continue
				}
				if !epLegal(p, us, them, from, ep, capSq) {
					continue
				}
				ml.PushBack(MakeMove(from, ep, EnPassant))
			}
		}
	}

	if mode&GenQuiets != 0 || mode&GenChecks != 0 {
		single := ShiftBitboard(pawns, push) &^ occ
		double := ShiftBitboard(single, push) &^ occ & us.DoublePushRankBb()

		for t := single & d.EvasionTargets; t != BbZero; {
			to := t.PopLsb()
			from := to.To(-push)
			if !pawnMoveAllowed(d, from, to) {
				continue
			}
			gives := d.PawnCheckingSquares&to.Bb() != BbZero
			if to.Bb()&promoRank != BbZero {
				if mode&GenQuiets != 0 || gives {
					addPawnMoves(true, from, to, false, ml)
				}
			} else if mode&GenQuiets != 0 || gives {
				ml.PushBack(MakeMove(from, to, Quiet))
			}
		}
		for t := double & d.EvasionTargets; t != BbZero; {
			to := t.PopLsb()
			from := to.To(-push).To(-push)
			if !pawnMoveAllowed(d, from, to) {
				continue
			}
			if mode&GenQuiets != 0 || d.PawnCheckingSquares&to.Bb() != BbZero {
				ml.PushBack(MakeMove(from, to, DoublePawnPush))
			}
		}
	}
}

func pawnMoveAllowed(d *position.Detail, from, to Square) bool {
	return pinMask(d, from, true)&to.Bb() != BbZero || pinMask(d, from, false)&to.Bb() != BbZero
}

// epLegal re-checks an en passant capture against the rare case where
// removing both the moving pawn and its victim exposes the king to a
// rank attack that ordinary pin detection never models, since neither
// pawn alone is pinned.
func epLegal(p *position.Position, us, them Color, from, to, capSq Square) bool {
	kingSq := p.KingSquare(us)
	occ := p.OccupiedAll()&^from.Bb()&^capSq.Bb() | to.Bb()
	rookAttackers := GetAttacksBb(Rook, kingSq, occ) & (p.PiecesBb(them, Rook) | p.PiecesBb(them, Queen))
	return rookAttackers == BbZero
}

func addPawnMoves(promotion bool, from, to Square, capture bool, ml *moveslice.MoveList) {
	if !promotion {
		mt := Quiet
		if capture {
			mt = Capture
		}
		ml.PushBack(MakeMove(from, to, mt))
		return
	}
	for _, pt := range []PieceType{Queen, Rook, Bishop, Knight} {
		ml.PushBack(MakeMove(from, to, PromotionMoveType(pt, capture)))
	}
}

func generateKingMoves(p *position.Position, d *position.Detail, mode Mode, ml *moveslice.MoveList) {
	us := p.NextPlayer()
	them := us.Opponent()
	from := p.KingSquare(us)
	occWithoutKing := p.OccupiedAll() &^ from.Bb()
	targets := GetPseudoAttacks(King, from) &^ p.OccupiedBb(us)

	for targets != BbZero {
		to := targets.PopLsb()
		if isAttackedExcludingKing(p, to, them, occWithoutKing) {
			continue
		}
		if p.PieceAt(to) != PieceNone {
			if mode&GenCaptures != 0 {
				ml.PushBack(MakeMove(from, to, Capture))
			}
		} else if mode&GenQuiets != 0 {
			ml.PushBack(MakeMove(from, to, Quiet))
		}
	}
}

// isAttackedExcludingKing checks whether sq would be attacked by by
// once the moving king has vacated its own square, so a sliding
// attack that would otherwise be blocked by the king itself is
// accounted for.
func isAttackedExcludingKing(p *position.Position, sq Square, by Color, occWithoutKing Bitboard) bool {
	if GetPawnAttacks(by.Opponent(), sq)&p.PiecesBb(by, Pawn) != BbZero {
		return true
	}
	if GetPseudoAttacks(Knight, sq)&p.PiecesBb(by, Knight) != BbZero {
		return true
	}
	if GetPseudoAttacks(King, sq)&p.PiecesBb(by, King) != BbZero {
		return true
	}
	if GetAttacksBb(Bishop, sq, occWithoutKing)&(p.PiecesBb(by, Bishop)|p.PiecesBb(by, Queen)) != BbZero {
		return true
	}
	if GetAttacksBb(Rook, sq, occWithoutKing)&(p.PiecesBb(by, Rook)|p.PiecesBb(by, Queen)) != BbZero {
		return true
	}
	return false
}

func generateCastling(p *position.Position, mode Mode, ml *moveslice.MoveList) {
	if mode&GenQuiets == 0 {
		return
	}
	us := p.NextPlayer()
	them := us.Opponent()
	cr := p.CastlingRights()
	if cr == CastlingNone {
		return
	}
	occ := p.OccupiedAll()

	type castle struct {
		right        CastlingRights
		kingFrom, to Square
		rookSq       Square
		mtype        MoveType
	}
	var candidates []castle
	if us == White {
		candidates = []castle{
			{CastlingWhiteOO, SqE1, SqG1, SqH1, KingCastle},
			{CastlingWhiteOOO, SqE1, SqC1, SqA1, QueenCastle},
		}
	} else {
		candidates = []castle{
			{CastlingBlackOO, SqE8, SqG8, SqH8, KingCastle},
			{CastlingBlackOOO, SqE8, SqC8, SqA8, QueenCastle},
		}
	}

	for _, c := range candidates {
		if !cr.Has(c.right) {
			continue
		}
		if Intermediate(c.kingFrom, c.rookSq)&occ != BbZero {
			continue
		}
		path := c.kingFrom.Bb() | Intermediate(c.kingFrom, c.to) | c.to.Bb()
		blocked := false
		for pb := path; pb != BbZero; {
			sq := pb.PopLsb()
			if isAttackedExcludingKing(p, sq, them, occ) {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}
		ml.PushBack(MakeMove(c.kingFrom, c.to, c.mtype))
	}
}
