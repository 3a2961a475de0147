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

// PieceType is a set of constants for the six chess piece types,
// independent of color.
type PieceType uint8

// PieceType constants.
const (
	PtNone PieceType = 0
	King   PieceType = 1
	Pawn   PieceType = 2
	Knight PieceType = 3
	Bishop PieceType = 4
	Rook   PieceType = 5
	Queen  PieceType = 6
	PtLength PieceType = 7
)

// IsValid checks if pt is a valid piece type.
func (pt PieceType) IsValid() bool {
	return pt < PtLength
}

// IsSlider reports whether pieces of this type move along rays
// (bishop, rook, queen).
func (pt PieceType) IsSlider() bool {
	return pt == Bishop || pt == Rook || pt == Queen
}

// static material value used by the material-only evaluator.
var pieceTypeValue = [PtLength]Value{0, 20000, 100, 320, 330, 500, 900}

// ValueOf returns the static material value for the piece type.
func (pt PieceType) ValueOf() Value {
	return pieceTypeValue[pt]
}

var pieceTypeToString = [PtLength]string{"none", "king", "pawn", "knight", "bishop", "rook", "queen"}

// String returns a human readable name for the piece type.
func (pt PieceType) String() string {
	return pieceTypeToString[pt]
}

var pieceTypeToChar = "-KPNBRQ"

// Char returns a single upper-case character for the piece type
// ('-' for none).
func (pt PieceType) Char() string {
	return string(pieceTypeToChar[pt])
}

// PromoCharToPieceType maps a UCI promotion letter (q, r, b, n) to a
// PieceType, or PtNone if the letter is not a valid promotion piece.
func PromoCharToPieceType(c byte) PieceType {
	switch c {
	case 'q', 'Q':
		return Queen
	case 'r', 'R':
		return Rook
	case 'b', 'B':
		return Bishop
	case 'n', 'N':
		return Knight
	default:
		return PtNone
	}
}
