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

import "fmt"

// Color represents one of the two sides of a chess game.
type Color uint8

// Constants for each color.
const (
	White       Color = 0
	Black       Color = 1
	ColorLength int   = 2
)

// Opponent returns the opposite color.
func (c Color) Opponent() Color {
	return c ^ 1
}

// IsValid checks if c represents a valid color.
func (c Color) IsValid() bool {
	return c < 2
}

// String returns "w" or "b".
func (c Color) String() string {
	switch c {
	case White:
		return "w"
	case Black:
		return "b"
	default:
		panic(fmt.Sprintf("invalid color %d", c))
	}
}

// pawn push direction per color.
var pawnPushDirection = [2]Direction{North, South}

// PawnPushDirection returns the direction a pawn of this color advances.
func (c Color) PawnPushDirection() Direction {
	return pawnPushDirection[c]
}

var promotionRankBb = [2]Bitboard{Rank8Bb, Rank1Bb}

// PromotionRankBb returns the rank on which this color's pawns promote.
func (c Color) PromotionRankBb() Bitboard {
	return promotionRankBb[c]
}

var doublePushRankBb = [2]Bitboard{Rank4Bb, Rank5Bb}

// DoublePushRankBb returns the rank a double pawn push lands on for this color.
func (c Color) DoublePushRankBb() Bitboard {
	return doublePushRankBb[c]
}
