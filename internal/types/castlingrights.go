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

import "strings"

// CastlingRights is a 4-bit set encoding which castling moves are
// still available: white king-side, white queen-side, black
// king-side, black queen-side.
type CastlingRights uint8

// CastlingRights constants.
const (
	CastlingNone     CastlingRights = 0
	CastlingWhiteOO  CastlingRights = 1
	CastlingWhiteOOO CastlingRights = 2
	CastlingBlackOO  CastlingRights = 4
	CastlingBlackOOO CastlingRights = 8
	CastlingWhite                   = CastlingWhiteOO | CastlingWhiteOOO
	CastlingBlack                   = CastlingBlackOO | CastlingBlackOOO
	CastlingAny                     = CastlingWhite | CastlingBlack
)

// Has reports whether any bit of rhs is set.
func (cr CastlingRights) Has(rhs CastlingRights) bool {
	return cr&rhs != 0
}

// Remove clears the given rights.
func (cr *CastlingRights) Remove(rhs CastlingRights) {
	*cr &^= rhs
}

// Add sets the given rights.
func (cr *CastlingRights) Add(rhs CastlingRights) {
	*cr |= rhs
}

// String returns the FEN castling field (e.g. "KQkq", or "-" if none).
func (cr CastlingRights) String() string {
	if cr == CastlingNone {
		return "-"
	}
	var sb strings.Builder
	if cr.Has(CastlingWhiteOO) {
		sb.WriteString("K")
	}
	if cr.Has(CastlingWhiteOOO) {
		sb.WriteString("Q")
	}
	if cr.Has(CastlingBlackOO) {
		sb.WriteString("k")
	}
	if cr.Has(CastlingBlackOOO) {
		sb.WriteString("q")
	}
	return sb.String()
}
