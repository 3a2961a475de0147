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

// Package position represents a chess board and its position: an 8x8
// piece array plus per-color/per-type bitboards, a move history stack
// for make/unmake, and an incrementally maintained Zobrist key for
// transposition table lookups.
//
// Create a position with NewPosition() for the start position, or
// NewPositionFen(fen) for an arbitrary FEN string.
package position

import (
	"fmt"
	"strings"

	"github.com/ashgrove/branchwood/internal/assert"
	. "github.com/ashgrove/branchwood/internal/types"
	"github.com/ashgrove/branchwood/internal/zobrist"
)

// Key is a Zobrist hash uniquely identifying a position (up to the
// hash collisions inherent to any 64 bit hash scheme).
type Key = zobrist.Key

// StartFen is the FEN of the standard chess starting position.
const StartFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// MaxHistory bounds the make/unmake history stack. A real game or a
// search path both stay far below this; it only needs to be large
// enough that DoMove never needs to grow the array.
const MaxHistory = 1024

// historyEntry captures everything DoMove can't cheaply recompute on
// UndoMove: the irreversible parts of position state.
type historyEntry struct {
	key             Key
	move            Move
	movedPiece      Piece
	capturedPiece   Piece
	castlingRights  CastlingRights
	enPassantSquare Square
	halfMoveClock   int
}

// flag values for the cached check-status, mirroring a tri-state bool
// without an extra branch for "not yet computed".
const (
	checkUnknown int8 = iota
	checkFalse
	checkTrue
)

// Position is a single chess position together with enough history to
// unmake every move played from the position it was constructed with.
type Position struct {
	board           [SqLength]Piece
	piecesBb        [ColorLength][PtLength]Bitboard
	occupiedBb      [ColorLength]Bitboard
	kingSquare      [ColorLength]Square
	castlingRights  CastlingRights
	enPassantSquare Square
	nextPlayer      Color
	halfMoveClock   int
	fullMoveNumber  int
	zobristKey      Key
	checkFlag       int8

	historyLen int
	history    [MaxHistory]historyEntry
}

// NewPosition returns the standard chess starting position.
func NewPosition() *Position {
	p, err := NewPositionFen(StartFen)
	if err != nil {
		panic(fmt.Sprintf("position: start FEN rejected: %v", err))
	}
	return p
}

// NewPositionFen builds a position from a FEN string, returning an
// error if the FEN is malformed.
func NewPositionFen(fen string) (*Position, error) {
	p := &Position{}
	if err := p.SetFEN(fen); err != nil {
		return nil, err
	}
	return p, nil
}

// NextPlayer returns the color to move.
func (p *Position) NextPlayer() Color { return p.nextPlayer }

// ZobristKey returns the position's current Zobrist hash.
func (p *Position) ZobristKey() Key { return p.zobristKey }

// CastlingRights returns the castling rights still available.
func (p *Position) CastlingRights() CastlingRights { return p.castlingRights }

// EnPassantSquare returns the en passant target square, or SqNone.
func (p *Position) EnPassantSquare() Square { return p.enPassantSquare }

// HalfMoveClock returns the number of half moves since the last
// capture or pawn move (the fifty-move rule counter).
func (p *Position) HalfMoveClock() int { return p.halfMoveClock }

// FullMoveNumber returns the current full move number, as in FEN.
func (p *Position) FullMoveNumber() int { return p.fullMoveNumber }

// PieceAt returns the piece occupying sq, or PieceNone.
func (p *Position) PieceAt(sq Square) Piece { return p.board[sq] }

// PiecesBb returns the bitboard of pieces of type pt and color c.
func (p *Position) PiecesBb(c Color, pt PieceType) Bitboard { return p.piecesBb[c][pt] }

// OccupiedBb returns the bitboard of all pieces of color c.
func (p *Position) OccupiedBb(c Color) Bitboard { return p.occupiedBb[c] }

// OccupiedAll returns the bitboard of every occupied square.
func (p *Position) OccupiedAll() Bitboard { return p.occupiedBb[White] | p.occupiedBb[Black] }

// KingSquare returns the square of color c's king.
func (p *Position) KingSquare(c Color) Square { return p.kingSquare[c] }

// HistoryLen returns the number of moves played since construction.
func (p *Position) HistoryLen() int { return p.historyLen }

// PositionExisted reports whether the current position's Zobrist key
// already appeared earlier in this game's history. Search treats any
// such repetition as an immediate draw rather than counting toward a
// genuine threefold repetition - the simplification the spec calls
// out explicitly, kept here unless a caller has a reason to change it.
func (p *Position) PositionExisted() bool {
	for i := p.historyLen - 1; i >= 0; i-- {
		if p.history[i].key == p.zobristKey {
			return true
		}
		if p.history[i].capturedPiece != PieceNone || p.history[i].movedPiece.TypeOf() == Pawn {
			break
		}
	}
	return false
}

// LastMove returns the most recently played move, or MoveNone if the
// position has no history yet.
func (p *Position) LastMove() Move {
	if p.historyLen == 0 {
		return MoveNone
	}
	return p.history[p.historyLen-1].move
}

// castlingRightsLost maps a square to the castling right(s) revoked
// when a king or rook leaves, arrives at, or is captured on it.
var castlingRightsLost = func() [SqLength]CastlingRights {
	var t [SqLength]CastlingRights
	t[SqE1] = CastlingWhite
	t[SqA1] = CastlingWhiteOOO
	t[SqH1] = CastlingWhiteOO
	t[SqE8] = CastlingBlack
	t[SqA8] = CastlingBlackOOO
	t[SqH8] = CastlingBlackOO
	return t
}()

// putPiece places pc on sq (sq must currently be empty) and updates
// bitboards, the king square cache and the Zobrist key.
func (p *Position) putPiece(pc Piece, sq Square) {
	p.board[sq] = pc
	p.piecesBb[pc.ColorOf()][pc.TypeOf()].PushSquare(sq)
	p.occupiedBb[pc.ColorOf()].PushSquare(sq)
	if pc.TypeOf() == King {
		p.kingSquare[pc.ColorOf()] = sq
	}
	p.zobristKey ^= zobrist.Piece(pc, sq)
}

// removePiece clears sq, which must be occupied.
func (p *Position) removePiece(sq Square) {
	pc := p.board[sq]
	p.board[sq] = PieceNone
	p.piecesBb[pc.ColorOf()][pc.TypeOf()].PopSquare(sq)
	p.occupiedBb[pc.ColorOf()].PopSquare(sq)
	p.zobristKey ^= zobrist.Piece(pc, sq)
}

// movePiece relocates the piece on from to to, which must be empty.
func (p *Position) movePiece(from, to Square) {
	pc := p.board[from]
	p.removePiece(from)
	p.putPiece(pc, to)
}

func (p *Position) clearEnPassant() {
	if p.enPassantSquare != SqNone {
		p.zobristKey ^= zobrist.EnPassantFile(p.enPassantSquare.FileOf())
		p.enPassantSquare = SqNone
	}
}

func (p *Position) setCastlingRights(cr CastlingRights) {
	p.zobristKey ^= zobrist.Castling(p.castlingRights)
	p.castlingRights = cr
	p.zobristKey ^= zobrist.Castling(p.castlingRights)
}

// DoMove commits m to the position. The caller must ensure m is at
// least pseudo-legal for the current position; DoMove performs no
// legality checking of its own.
func (p *Position) DoMove(m Move) {
	if assert.DEBUG {
		assert.Assert(m.IsValid(), "position: DoMove with invalid move %s", m)
		assert.Assert(p.board[m.From()] != PieceNone, "position: DoMove from empty square %s", m.From())
	}

	fromSq, toSq := m.From(), m.To()
	movedPiece := p.board[fromSq]
	capturedPiece := p.board[toSq]

	h := &p.history[p.historyLen]
	h.key = p.zobristKey
	h.move = m
	h.movedPiece = movedPiece
	h.capturedPiece = capturedPiece
	h.castlingRights = p.castlingRights
	h.enPassantSquare = p.enPassantSquare
	h.halfMoveClock = p.halfMoveClock
	p.historyLen++

	p.halfMoveClock++

	switch m.Type() {
	case EnPassant:
		capSq := toSq.To(p.nextPlayer.Opponent().PawnPushDirection())
		p.removePiece(capSq)
		p.clearEnPassant()
		p.movePiece(fromSq, toSq)
		p.halfMoveClock = 0
	case KingCastle, QueenCastle:
		p.clearEnPassant()
		p.movePiece(fromSq, toSq)
		rookFrom, rookTo := castleRookSquares(toSq)
		p.movePiece(rookFrom, rookTo)
	default:
		if m.IsPromotion() {
			p.clearEnPassant()
			if capturedPiece != PieceNone {
				p.removePiece(toSq)
			}
			p.removePiece(fromSq)
			p.putPiece(MakePiece(p.nextPlayer, m.PromotionType()), toSq)
			p.halfMoveClock = 0
		} else {
			if capturedPiece != PieceNone {
				p.removePiece(toSq)
				p.halfMoveClock = 0
			}
			p.clearEnPassant()
			if movedPiece.TypeOf() == Pawn {
				p.halfMoveClock = 0
				if SquareDistance(fromSq, toSq) == 2 {
					epSq := toSq.To(p.nextPlayer.Opponent().PawnPushDirection())
					if GetPawnAttacks(p.nextPlayer, epSq)&p.piecesBb[p.nextPlayer.Opponent()][Pawn] != 0 {
						p.enPassantSquare = epSq
						p.zobristKey ^= zobrist.EnPassantFile(epSq.FileOf())
					}
				}
			}
			p.movePiece(fromSq, toSq)
		}
	}

	if lost := castlingRightsLost[fromSq] | castlingRightsLost[toSq]; lost != CastlingNone {
		p.setCastlingRights(p.castlingRights &^ lost)
	}

	if p.nextPlayer == Black {
		p.fullMoveNumber++
	}
	p.nextPlayer = p.nextPlayer.Opponent()
	p.zobristKey ^= zobrist.NextPlayer()
	p.checkFlag = checkUnknown
}

// UndoMove reverts the most recently played move. Panics if the
// position has no history.
func (p *Position) UndoMove() {
	if assert.DEBUG {
		assert.Assert(p.historyLen > 0, "position: UndoMove with empty history")
	}

	p.historyLen--
	h := &p.history[p.historyLen]
	move := h.move
	fromSq, toSq := move.From(), move.To()

	p.nextPlayer = p.nextPlayer.Opponent()
	if p.nextPlayer == Black {
		p.fullMoveNumber--
	}

	switch move.Type() {
	case EnPassant:
		p.board[toSq] = PieceNone
		p.piecesBb[p.nextPlayer][Pawn].PopSquare(toSq)
		p.occupiedBb[p.nextPlayer].PopSquare(toSq)
		p.board[fromSq] = h.movedPiece
		p.piecesBb[p.nextPlayer][Pawn].PushSquare(fromSq)
		p.occupiedBb[p.nextPlayer].PushSquare(fromSq)
		capSq := toSq.To(p.nextPlayer.Opponent().PawnPushDirection())
		p.board[capSq] = h.capturedPiece
		p.piecesBb[p.nextPlayer.Opponent()][Pawn].PushSquare(capSq)
		p.occupiedBb[p.nextPlayer.Opponent()].PushSquare(capSq)
	case KingCastle, QueenCastle:
		p.relocateRaw(toSq, fromSq)
		rookFrom, rookTo := castleRookSquares(toSq)
		p.relocateRaw(rookTo, rookFrom)
	default:
		if move.IsPromotion() {
			p.board[toSq] = PieceNone
			p.piecesBb[p.nextPlayer][move.PromotionType()].PopSquare(toSq)
			p.occupiedBb[p.nextPlayer].PopSquare(toSq)
			p.board[fromSq] = h.movedPiece
			p.piecesBb[p.nextPlayer][Pawn].PushSquare(fromSq)
			p.occupiedBb[p.nextPlayer].PushSquare(fromSq)
		} else {
			p.relocateRaw(toSq, fromSq)
		}
		if h.capturedPiece != PieceNone {
			p.board[toSq] = h.capturedPiece
			p.piecesBb[h.capturedPiece.ColorOf()][h.capturedPiece.TypeOf()].PushSquare(toSq)
			p.occupiedBb[h.capturedPiece.ColorOf()].PushSquare(toSq)
		}
	}

	if h.movedPiece.TypeOf() == King {
		p.kingSquare[p.nextPlayer] = fromSq
	}

	p.castlingRights = h.castlingRights
	p.enPassantSquare = h.enPassantSquare
	p.halfMoveClock = h.halfMoveClock
	p.zobristKey = h.key
	p.checkFlag = checkUnknown
}

// relocateRaw moves the piece on from to to without touching the
// Zobrist key, used by UndoMove which restores the key from history
// wholesale instead of incrementally.
func (p *Position) relocateRaw(from, to Square) {
	pc := p.board[from]
	p.board[from] = PieceNone
	p.board[to] = pc
	p.piecesBb[pc.ColorOf()][pc.TypeOf()].PopSquare(from)
	p.piecesBb[pc.ColorOf()][pc.TypeOf()].PushSquare(to)
	p.occupiedBb[pc.ColorOf()].PopSquare(from)
	p.occupiedBb[pc.ColorOf()].PushSquare(to)
}

// castleRookSquares returns the rook's from/to squares for the
// castling move whose king lands on kingTo.
func castleRookSquares(kingTo Square) (from, to Square) {
	switch kingTo {
	case SqG1:
		return SqH1, SqF1
	case SqC1:
		return SqA1, SqD1
	case SqG8:
		return SqH8, SqF8
	case SqC8:
		return SqA8, SqD8
	default:
		panic(fmt.Sprintf("position: %s is not a castle destination square", kingTo))
	}
}

// IsAttacked reports whether sq is attacked by any piece of color by.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	if GetPawnAttacks(by.Opponent(), sq)&p.piecesBb[by][Pawn] != BbZero {
		return true
	}
	if GetPseudoAttacks(Knight, sq)&p.piecesBb[by][Knight] != BbZero {
		return true
	}
	if GetPseudoAttacks(King, sq)&p.piecesBb[by][King] != BbZero {
		return true
	}
	occ := p.OccupiedAll()
	if GetAttacksBb(Bishop, sq, occ)&(p.piecesBb[by][Bishop]|p.piecesBb[by][Queen]) != BbZero {
		return true
	}
	if GetAttacksBb(Rook, sq, occ)&(p.piecesBb[by][Rook]|p.piecesBb[by][Queen]) != BbZero {
		return true
	}
	return false
}

// HasCheck reports whether the side to move is currently in check.
// The result is cached until the next DoMove/UndoMove.
func (p *Position) HasCheck() bool {
	if p.checkFlag == checkUnknown {
		if p.IsAttacked(p.kingSquare[p.nextPlayer], p.nextPlayer.Opponent()) {
			p.checkFlag = checkTrue
		} else {
			p.checkFlag = checkFalse
		}
	}
	return p.checkFlag == checkTrue
}

// IsCapturingMove reports whether m captures a piece, en passant
// included.
func (p *Position) IsCapturingMove(m Move) bool {
	return m.IsCapture()
}

// String renders the FEN followed by an ASCII board diagram.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString(p.FEN())
	sb.WriteString("\n")
	sb.WriteString(p.StringBoard())
	return sb.String()
}

// StringBoard renders an 8x8 ASCII diagram of the board, rank 8 first.
func (p *Position) StringBoard() string {
	var sb strings.Builder
	sb.WriteString("+---+---+---+---+---+---+---+---+\n")
	for r := Rank8; ; r-- {
		for f := FileA; f <= FileH; f++ {
			sb.WriteString("| ")
			sb.WriteString(p.board[SquareOf(f, r)].String())
			sb.WriteString(" ")
		}
		sb.WriteString(fmt.Sprintf("| %s\n+---+---+---+---+---+---+---+---+\n", r))
		if r == Rank1 {
			break
		}
	}
	return sb.String()
}
