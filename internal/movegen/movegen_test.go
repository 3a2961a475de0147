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

package movegen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ashgrove/branchwood/internal/position"
	. "github.com/ashgrove/branchwood/internal/types"
)

func uciSet(ml interface {
	Len() int
	At(i int) Move
}) map[string]bool {
	set := make(map[string]bool, ml.Len())
	for i := 0; i < ml.Len(); i++ {
		set[ml.At(i).String()] = true
	}
	return set
}

func TestStartPositionMoveCount(t *testing.T) {
	p := position.NewPosition()
	mg := New()
	moves := mg.Generate(p, GenAll)
	assert.Equal(t, 20, moves.Len())
}

func TestPinnedRookCannotLeaveFile(t *testing.T) {
	// White king on e1, white rook on e4 pinned by black rook on e8.
	p, err := position.NewPositionFen("k3r3/8/8/8/4R3/8/8/4K3 w - - 0 1")
	assert.NoError(t, err)
	mg := New()
	moves := mg.Generate(p, GenAll)
	set := uciSet(moves)
	assert.True(t, set["e4e8"], "pinned rook should be able to capture the pinning piece")
	assert.True(t, set["e4e5"], "pinned rook may still move along the pin line")
	assert.False(t, set["e4d4"], "pinned rook must not leave the pin line")
	assert.False(t, set["e4f4"], "pinned rook must not leave the pin line")
}

func TestPinnedBishopCannotLeavePinDiagonal(t *testing.T) {
	// White king e1, white bishop d2 pinned by black bishop on a5 (a5-e1 diagonal).
	p, err := position.NewPositionFen("7k/8/8/b7/8/8/3B4/4K3 w - - 0 1")
	assert.NoError(t, err)
	mg := New()
	moves := mg.Generate(p, GenAll)
	set := uciSet(moves)
	assert.True(t, set["d2c3"])
	assert.True(t, set["d2b4"])
	assert.True(t, set["d2a5"], "pinned bishop may capture the pinning piece")
	assert.False(t, set["d2c1"], "pinned bishop must not step off its own pin diagonal")
}

func TestSingleCheckRestrictsToEvasions(t *testing.T) {
	// Black rook on e8 checks the white king on e1 along the e-file.
	// A knight on g3 can block on e2/e4 or stay off the file entirely;
	// only the blocking squares and e8 itself resolve the check.
	p, err := position.NewPositionFen("k3r3/8/8/8/8/6N1/8/4K3 w - - 0 1")
	assert.NoError(t, err)
	assert.True(t, p.HasCheck())
	mg := New()
	moves := mg.Generate(p, GenAll)
	onEFileBetween := map[Square]bool{SqE2: true, SqE3: true, SqE4: true, SqE5: true, SqE6: true, SqE7: true, SqE8: true}
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if m.From() == SqG3 {
			assert.True(t, onEFileBetween[m.To()], "knight move %s does not resolve the check", m)
		}
	}
}

func TestDoubleCheckAllowsOnlyKingMoves(t *testing.T) {
	// Contrived double-check: black rook on e8 and black bishop on h4
	// both attack the white king on e1 simultaneously.
	p, err := position.NewPositionFen("k3r3/8/8/8/7b/8/8/4K3 w - - 0 1")
	assert.NoError(t, err)
	mg := New()
	moves := mg.Generate(p, GenAll)
	for i := 0; i < moves.Len(); i++ {
		assert.Equal(t, SqE1, moves.At(i).From(), "only the king may move while in double check")
	}
}

func TestCastlingBlockedByAttackedPassThroughSquare(t *testing.T) {
	// White king e1, rook h1, kingside castling rights, but a black
	// rook on f8 covers f1 so O-O is illegal.
	p, err := position.NewPositionFen("k4r2/8/8/8/8/8/8/4K2R w K - 0 1")
	assert.NoError(t, err)
	mg := New()
	moves := mg.Generate(p, GenAll)
	set := uciSet(moves)
	assert.False(t, set["e1g1"], "castling through an attacked square must be illegal")
}

func TestEnPassantPinDiscovery(t *testing.T) {
	// White king a5, white pawn e5, black pawn d5 just double-pushed
	// (en passant target d6), black rook h5. Capturing en passant
	// removes both pawns from rank 5 and exposes the king to the rook
	// along the rank, so the capture must be rejected even though
	// neither pawn is individually pinned.
	p, err := position.NewPositionFen("4k3/8/8/K2pP2r/8/8/8/8 w - d6 0 1")
	assert.NoError(t, err)
	mg := New()
	moves := mg.Generate(p, GenAll)
	set := uciSet(moves)
	assert.False(t, set["e5d6"], "en passant capture must not expose own king on the vacated rank")
}

func TestHasLegalMoveFalseOnCheckmate(t *testing.T) {
	// Fool's mate final position, black delivered mate.
	p, err := position.NewPositionFen("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	assert.NoError(t, err)
	mg := New()
	assert.True(t, p.HasCheck())
	assert.False(t, mg.HasLegalMove(p))
}
