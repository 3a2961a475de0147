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
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/ashgrove/branchwood/internal/types"
)

func TestNewPositionIsStartPosition(t *testing.T) {
	p := NewPosition()
	assert.Equal(t, White, p.NextPlayer())
	assert.Equal(t, StartFen, p.FEN())
	assert.Equal(t, SquareOf(FileE, Rank1), p.KingSquare(White))
	assert.Equal(t, SquareOf(FileE, Rank8), p.KingSquare(Black))
	assert.Equal(t, CastlingAny, p.CastlingRights())
	assert.Equal(t, SqNone, p.EnPassantSquare())
	assert.Equal(t, 0, p.HalfMoveClock())
}

func TestFenRoundTrip(t *testing.T) {
	fens := []string{
		StartFen,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	for _, fen := range fens {
		p, err := NewPositionFen(fen)
		assert.NoError(t, err)
		assert.Equal(t, fen, p.FEN(), "fen round trip for %s", fen)
	}
}

func TestSetFenRejectsGarbage(t *testing.T) {
	_, err := NewPositionFen("not a fen at all")
	assert.Error(t, err)
}

func recomputeHash(p *Position) Key {
	fresh, err := NewPositionFen(p.FEN())
	if err != nil {
		panic(err)
	}
	return fresh.ZobristKey()
}

// assertInvariants checks the bitboard/hash invariants the spec
// requires to hold after every DoMove and every UndoMove.
func assertInvariants(t *testing.T, p *Position) {
	t.Helper()
	assert.Equal(t, Bitboard(0), p.OccupiedBb(White)&p.OccupiedBb(Black), "white/black occupancy must be disjoint")
	assert.Equal(t, p.OccupiedAll(), p.OccupiedBb(White)|p.OccupiedBb(Black))
	for _, pt := range []PieceType{Pawn, Knight, Bishop, Rook, Queen, King} {
		for _, c := range []Color{White, Black} {
			assert.Equal(t, p.PiecesBb(c, pt), p.PiecesBb(c, pt)&p.OccupiedBb(c))
		}
	}
	assert.Equal(t, 1, p.PiecesBb(White, King).PopCount())
	assert.Equal(t, 1, p.PiecesBb(Black, King).PopCount())
	assert.Equal(t, recomputeHash(p), p.ZobristKey(), "incremental hash must match a from-scratch recompute")
}

func TestDoMoveUndoMoveRoundTrip(t *testing.T) {
	p := NewPosition()
	before := p.FEN()
	beforeKey := p.ZobristKey()

	m := MakeMove(MakeSquare("e2"), MakeSquare("e4"), DoublePawnPush)
	p.DoMove(m)
	assertInvariants(t, p)
	assert.NotEqual(t, beforeKey, p.ZobristKey())
	assert.Equal(t, MakeSquare("e3"), p.EnPassantSquare())

	p.UndoMove()
	assertInvariants(t, p)
	assert.Equal(t, before, p.FEN())
	assert.Equal(t, beforeKey, p.ZobristKey())
	assert.Equal(t, 0, p.HistoryLen())
}

func TestDoMoveCastlingMovesBothPieces(t *testing.T) {
	p, err := NewPositionFen("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	assert.NoError(t, err)
	before := p.FEN()

	p.DoMove(MakeMove(MakeSquare("e1"), MakeSquare("g1"), KingCastle))
	assertInvariants(t, p)
	assert.Equal(t, MakePiece(White, Rook), p.PieceAt(MakeSquare("f1")))
	assert.Equal(t, MakePiece(White, King), p.PieceAt(MakeSquare("g1")))
	assert.Equal(t, PieceNone, p.PieceAt(MakeSquare("h1")))
	assert.False(t, p.CastlingRights().Has(CastlingWhiteOO))
	assert.False(t, p.CastlingRights().Has(CastlingWhiteOOO))
	assert.True(t, p.CastlingRights().Has(CastlingBlackOO))

	p.UndoMove()
	assertInvariants(t, p)
	assert.Equal(t, before, p.FEN())
}

func TestDoMoveEnPassantRemovesCapturedPawn(t *testing.T) {
	p, err := NewPositionFen("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	assert.NoError(t, err)
	before := p.FEN()

	p.DoMove(MakeMove(MakeSquare("e5"), MakeSquare("d6"), EnPassant))
	assertInvariants(t, p)
	assert.Equal(t, MakePiece(White, Pawn), p.PieceAt(MakeSquare("d6")))
	assert.Equal(t, PieceNone, p.PieceAt(MakeSquare("d5")), "captured pawn must be removed, not just overwritten at the target square")
	assert.Equal(t, PieceNone, p.PieceAt(MakeSquare("e5")))

	p.UndoMove()
	assertInvariants(t, p)
	assert.Equal(t, before, p.FEN())
}

func TestDoMovePromotionReplacesPawn(t *testing.T) {
	p, err := NewPositionFen("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	assert.NoError(t, err)
	before := p.FEN()

	p.DoMove(MakeMove(MakeSquare("a7"), MakeSquare("a8"), PromoQueen))
	assertInvariants(t, p)
	assert.Equal(t, MakePiece(White, Queen), p.PieceAt(MakeSquare("a8")))
	assert.Equal(t, 0, p.HalfMoveClock())

	p.UndoMove()
	assertInvariants(t, p)
	assert.Equal(t, before, p.FEN())
	assert.Equal(t, MakePiece(White, Pawn), p.PieceAt(MakeSquare("a7")))
}

func TestDoMoveCaptureResetsHalfMoveClock(t *testing.T) {
	p, err := NewPositionFen("4k3/8/8/8/8/3p4/8/3RK3 w - - 7 10")
	assert.NoError(t, err)
	p.DoMove(MakeMove(MakeSquare("d1"), MakeSquare("d3"), Capture))
	assert.Equal(t, 0, p.HalfMoveClock())
	assertInvariants(t, p)
}

func TestDoMoveTogglesSideToMove(t *testing.T) {
	p := NewPosition()
	assert.Equal(t, White, p.NextPlayer())
	p.DoMove(MakeMove(MakeSquare("e2"), MakeSquare("e4"), DoublePawnPush))
	assert.Equal(t, Black, p.NextPlayer())
	p.UndoMove()
	assert.Equal(t, White, p.NextPlayer())
}

func TestIsAttacked(t *testing.T) {
	p, err := NewPositionFen("4k3/8/8/8/8/8/4R3/4K3 b - - 0 1")
	assert.NoError(t, err)
	assert.True(t, p.IsAttacked(MakeSquare("e8"), White), "rook on the e-file attacks e8 through empty squares")
	assert.False(t, p.IsAttacked(MakeSquare("d8"), White))
}

func TestHasCheck(t *testing.T) {
	p, err := NewPositionFen("4k3/8/8/8/8/8/4R3/4K3 b - - 0 1")
	assert.NoError(t, err)
	assert.True(t, p.HasCheck())

	p2, err := NewPositionFen("4k3/8/8/8/8/8/4R3/4K3 w - - 0 1")
	assert.NoError(t, err)
	assert.False(t, p2.HasCheck())
}

func TestPositionExistedDetectsRepetition(t *testing.T) {
	p := NewPosition()
	assert.False(t, p.PositionExisted())

	// Shuffle knights back and forth: Nf3/Nf6, Ng1/Ng8 returns to the
	// start position's hash with the same side to move.
	p.DoMove(MakeMove(MakeSquare("g1"), MakeSquare("f3"), Quiet))
	assert.False(t, p.PositionExisted())
	p.DoMove(MakeMove(MakeSquare("g8"), MakeSquare("f6"), Quiet))
	assert.False(t, p.PositionExisted())
	p.DoMove(MakeMove(MakeSquare("f3"), MakeSquare("g1"), Quiet))
	assert.False(t, p.PositionExisted())
	p.DoMove(MakeMove(MakeSquare("f6"), MakeSquare("g8"), Quiet))
	assert.True(t, p.PositionExisted(), "start position reoccurred after a knight round trip")
}

func TestPositionExistedResetsOnCaptureOrPawnMove(t *testing.T) {
	p, err := NewPositionFen("4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	assert.NoError(t, err)
	p.DoMove(MakeMove(MakeSquare("e1"), MakeSquare("d1"), Quiet))
	p.DoMove(MakeMove(MakeSquare("e8"), MakeSquare("d8"), Quiet))
	p.DoMove(MakeMove(MakeSquare("e2"), MakeSquare("e4"), DoublePawnPush))
	p.DoMove(MakeMove(MakeSquare("d8"), MakeSquare("e8"), Quiet))
	p.DoMove(MakeMove(MakeSquare("d1"), MakeSquare("e1"), Quiet))
	// Both kings are back on their starting squares, but the pawn now
	// stands on e4 and it is black to move, so no earlier position
	// recurs; the pawn push also cuts off the repetition scan.
	assert.False(t, p.PositionExisted())
}

func TestBuildDetailSingleCheckEvasionTargets(t *testing.T) {
	p, err := NewPositionFen("k3r3/8/8/8/8/6N1/8/4K3 w - - 0 1")
	assert.NoError(t, err)
	d := BuildDetail(p)
	assert.Equal(t, 1, d.CheckerCount)
	// Only squares on the e-file between king and rook (plus the
	// checker itself) resolve a single rook check.
	assert.NotEqual(t, Bitboard(0), d.EvasionTargets&MakeSquare("e8").Bb())
	assert.Equal(t, Bitboard(0), d.EvasionTargets&MakeSquare("a1").Bb())
}

func TestBuildDetailPinDetection(t *testing.T) {
	p, err := NewPositionFen("k3r3/8/8/8/4R3/8/8/4K3 w - - 0 1")
	assert.NoError(t, err)
	d := BuildDetail(p)
	assert.NotEqual(t, Bitboard(0), d.RookPinned&MakeSquare("e4").Bb())
	assert.Equal(t, Bitboard(0), d.BishopPinned&MakeSquare("e4").Bb())
}

func TestStringBoardContainsPieceLetters(t *testing.T) {
	p := NewPosition()
	s := p.StringBoard()
	assert.Contains(t, s, "R")
	assert.Contains(t, s, "k")
}
