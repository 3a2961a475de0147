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
	"math/bits"
	"strings"
)

// Bitboard is a 64 bit unsigned int with one bit per board square.
type Bitboard uint64

// BbZero and BbAll are the empty and fully occupied bitboards.
const (
	BbZero Bitboard = 0
	BbOne  Bitboard = 1
	BbAll  Bitboard = 0xFFFFFFFFFFFFFFFF
)

// File and rank masks, used by ShiftBitboard and by the attack table
// generators to stop sliding rays from wrapping around board edges.
const (
	FileABb Bitboard = 0x0101010101010101
	FileBBb          = FileABb << 1
	FileCBb          = FileABb << 2
	FileDBb          = FileABb << 3
	FileEBb          = FileABb << 4
	FileFBb          = FileABb << 5
	FileGBb          = FileABb << 6
	FileHBb          = FileABb << 7

	Rank1Bb Bitboard = 0x00000000000000FF
	Rank2Bb          = Rank1Bb << (8 * 1)
	Rank3Bb          = Rank1Bb << (8 * 2)
	Rank4Bb          = Rank1Bb << (8 * 3)
	Rank5Bb          = Rank1Bb << (8 * 4)
	Rank6Bb          = Rank1Bb << (8 * 5)
	Rank7Bb          = Rank1Bb << (8 * 6)
	Rank8Bb          = Rank1Bb << (8 * 7)
)

var fileBb = [8]Bitboard{FileABb, FileBBb, FileCBb, FileDBb, FileEBb, FileFBb, FileGBb, FileHBb}
var rankBb = [8]Bitboard{Rank1Bb, Rank2Bb, Rank3Bb, Rank4Bb, Rank5Bb, Rank6Bb, Rank7Bb, Rank8Bb}

// Bb returns the file's bitboard (all eight squares on that file).
func (f File) Bb() Bitboard {
	return fileBb[f]
}

// Bb returns the rank's bitboard (all eight squares on that rank).
func (r Rank) Bb() Bitboard {
	return rankBb[r]
}

var sqBb [SqLength]Bitboard

func init() {
	for sq := SqA1; sq < SqNone; sq++ {
		sqBb[sq] = Bitboard(1) << sq
	}
}

// Bb returns the single-bit bitboard for a square.
func (sq Square) Bb() Bitboard {
	return sqBb[sq]
}

// PushSquare sets the bit for sq.
func (b *Bitboard) PushSquare(sq Square) {
	*b |= sq.Bb()
}

// PopSquare clears the bit for sq.
func (b *Bitboard) PopSquare(sq Square) {
	*b &^= sq.Bb()
}

// Has reports whether sq's bit is set.
func (b Bitboard) Has(sq Square) bool {
	return b&sqBb[sq] != 0
}

// ShiftBitboard shifts every set bit one square in direction d,
// masking off the file that would otherwise wrap the board edge.
func ShiftBitboard(b Bitboard, d Direction) Bitboard {
	switch d {
	case North:
		return b << 8
	case South:
		return b >> 8
	case East:
		return (b &^ FileHBb) << 1
	case West:
		return (b &^ FileABb) >> 1
	case Northeast:
		return (b &^ FileHBb) << 9
	case Southeast:
		return (b &^ FileHBb) >> 7
	case Southwest:
		return (b &^ FileABb) >> 9
	case Northwest:
		return (b &^ FileABb) << 7
	}
	return b
}

// Lsb returns the least significant set square, or SqNone if b is empty.
func (b Bitboard) Lsb() Square {
	if b == BbZero {
		return SqNone
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// Msb returns the most significant set square, or SqNone if b is empty.
func (b Bitboard) Msb() Square {
	if b == BbZero {
		return SqNone
	}
	return Square(63 - bits.LeadingZeros64(uint64(b)))
}

// PopLsb returns the least significant set square and clears it from b.
func (b *Bitboard) PopLsb() Square {
	if *b == BbZero {
		return SqNone
	}
	lsb := b.Lsb()
	*b &= *b - 1
	return lsb
}

// PopCount returns the number of set bits.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// String returns the raw 64-bit binary representation.
func (b Bitboard) String() string {
	return fmt.Sprintf("%064b", uint64(b))
}

// StringBoard renders b as an 8x8 ASCII board, rank 8 at the top.
func (b Bitboard) StringBoard() string {
	var sb strings.Builder
	sb.WriteString("+---+---+---+---+---+---+---+---+\n")
	for r := Rank8; ; r-- {
		for f := FileA; f <= FileH; f++ {
			if b.Has(SquareOf(f, r)) {
				sb.WriteString("| X ")
			} else {
				sb.WriteString("|   ")
			}
		}
		sb.WriteString(fmt.Sprintf("| %s\n+---+---+---+---+---+---+---+---+\n", r))
		if r == Rank1 {
			break
		}
	}
	return sb.String()
}
