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

package types

import (
	"fmt"
	"strings"
)

// Move is a 16 bit encoded chess move: from-square (bits 0-5),
// to-square (bits 6-11) and a 4 bit move type flag (bits 12-15).
// It carries no sort value of its own; move ordering keys live
// alongside moves in the move stack, not packed into the move.
type Move uint16

// MoveNone is the zero value, never a legal move.
const MoveNone Move = 0

// MoveType occupies the top 4 bits of a Move and disambiguates
// otherwise identical from/to pairs (e.g. a quiet pawn step versus a
// double push, or which piece a promotion produces).
type MoveType uint16

// MoveType constants, chosen so IsCapture/IsPromotion are cheap bit
// tests: bit 2 (0x4) marks captures, bit 3 (0x8) marks promotions.
const (
	Quiet          MoveType = 0
	DoublePawnPush MoveType = 1
	KingCastle     MoveType = 2
	QueenCastle    MoveType = 3
	Capture        MoveType = 4
	EnPassant      MoveType = 5

	PromoKnight MoveType = 8
	PromoBishop MoveType = 9
	PromoRook   MoveType = 10
	PromoQueen  MoveType = 11

	PromoCaptureKnight MoveType = 12
	PromoCaptureBishop MoveType = 13
	PromoCaptureRook   MoveType = 14
	PromoCaptureQueen  MoveType = 15
)

const (
	moveFromMask  Move = 0x003F
	moveToShift        = 6
	moveToMask    Move = 0x0FC0
	moveTypeShift      = 12
)

// promoPieceType maps a promotion MoveType to the piece type it produces.
var promoPieceType = map[MoveType]PieceType{
	PromoKnight: Knight, PromoBishop: Bishop, PromoRook: Rook, PromoQueen: Queen,
	PromoCaptureKnight: Knight, PromoCaptureBishop: Bishop, PromoCaptureRook: Rook, PromoCaptureQueen: Queen,
}

// pieceTypeToPromo maps a piece type to its plain (non-capturing) promotion MoveType.
var pieceTypeToPromo = map[PieceType]MoveType{
	Knight: PromoKnight, Bishop: PromoBishop, Rook: PromoRook, Queen: PromoQueen,
}

// MakeMove packs a from/to square pair and move type into a Move.
func MakeMove(from, to Square, mt MoveType) Move {
	return Move(from) | Move(to)<<moveToShift | Move(mt)<<moveTypeShift
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & moveFromMask)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m & moveToMask) >> moveToShift)
}

// Type returns the move's MoveType flag.
func (m Move) Type() MoveType {
	return MoveType(m >> moveTypeShift)
}

// IsCapture reports whether m captures a piece, en passant included.
func (m Move) IsCapture() bool {
	return m.Type()&Capture != 0
}

// IsPromotion reports whether m promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Type()&0x8 != 0
}

// IsEnPassant reports whether m is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Type() == EnPassant
}

// IsCastle reports whether m is a king- or queen-side castle.
func (m Move) IsCastle() bool {
	return m.Type() == KingCastle || m.Type() == QueenCastle
}

// PromotionType returns the piece type a promoting move produces.
// Only valid when IsPromotion() is true.
func (m Move) PromotionType() PieceType {
	return promoPieceType[m.Type()]
}

// PromotionMoveType returns the plain promotion MoveType for
// promoting to pt, with the capture bit set if capture is true.
func PromotionMoveType(pt PieceType, capture bool) MoveType {
	mt := pieceTypeToPromo[pt]
	if capture {
		mt |= Capture
	}
	return mt
}

// IsValid reports whether m has distinct, in-range from/to squares.
func (m Move) IsValid() bool {
	return m.From().IsValid() && m.To().IsValid() && m.From() != m.To()
}

// String renders m in pure algebraic notation (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	if m == MoveNone {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += strings.ToLower(m.PromotionType().Char())
	}
	return s
}

// UciMove is an alias kept for the move-parsing/printing boundary in
// internal/uci, where moves are always rendered in pure algebraic form.
func (m Move) UciMove() string {
	return m.String()
}

// GoString supports %#v debug dumps distinguishing Move from a plain uint16.
func (m Move) GoString() string {
	return fmt.Sprintf("Move(%s)", m.String())
}
