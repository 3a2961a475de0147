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

// Package zobrist holds the random key tables used to incrementally
// hash a position for transposition table lookups.
package zobrist

import (
	"github.com/ashgrove/branchwood/internal/types"
)

// Key is a 64-bit Zobrist hash of a position.
type Key uint64

// table holds one random key per piece/square, castling right,
// en passant file and a key for "black to move".
type table struct {
	pieces         [types.PieceLength][types.SqLength]Key
	castlingRights [types.CastlingAny + 1]Key
	enPassantFile  [8]Key
	nextPlayer     Key
}

var Base table

// xorshift64star is the same pseudo-random generator the magic
// bitboard tables are seeded with: a single 64-bit state, no warm-up,
// period 2^64-1. Taken from Sebastiano Vigna's public-domain design.
type xorshift64star struct {
	s uint64
}

func newXorshift64star(seed uint64) xorshift64star {
	if seed == 0 {
		panic("zobrist: seed must not be zero")
	}
	return xorshift64star{seed}
}

func (r *xorshift64star) next() uint64 {
	r.s ^= r.s >> 12
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	return r.s * 2685821657736338717
}

func init() {
	r := newXorshift64star(1070372)
	for pc := types.PieceNone; pc < types.PieceLength; pc++ {
		for sq := types.SqA1; sq < types.SqNone; sq++ {
			Base.pieces[pc][sq] = Key(r.next())
		}
	}
	for cr := types.CastlingNone; cr <= types.CastlingAny; cr++ {
		Base.castlingRights[cr] = Key(r.next())
	}
	for f := types.FileA; f <= types.FileH; f++ {
		Base.enPassantFile[f] = Key(r.next())
	}
	Base.nextPlayer = Key(r.next())
}

// Piece returns the key contribution of piece p standing on sq.
func Piece(p types.Piece, sq types.Square) Key {
	return Base.pieces[p][sq]
}

// Castling returns the key contribution of a castling rights set.
func Castling(cr types.CastlingRights) Key {
	return Base.castlingRights[cr]
}

// EnPassantFile returns the key contribution of an en passant target
// file. Callers should only XOR this in when an en passant capture is
// actually possible, not merely when the last move was a double push.
func EnPassantFile(f types.File) Key {
	return Base.enPassantFile[f]
}

// NextPlayer returns the key contribution toggled every time the side
// to move changes.
func NextPlayer() Key {
	return Base.nextPlayer
}
