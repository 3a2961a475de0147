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

// Package evaluator contains the static position evaluation used by
// search when it hits a leaf: material balance plus piece-square
// tables, always returned relative to the side to move.
package evaluator

import (
	"github.com/ashgrove/branchwood/internal/position"
	. "github.com/ashgrove/branchwood/internal/types"
)

// Evaluator holds nothing beyond its methods; it is a value-less
// receiver kept as a struct so the search package can hold one
// instance and so this package can later grow per-position caches
// (a pawn hash table, for instance) without changing callers.
type Evaluator struct{}

// NewEvaluator creates an Evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate returns the static value of p from the perspective of the
// side to move: positive means the side to move stands better.
func (e *Evaluator) Evaluate(p *position.Position) Value {
	white := materialAndPst(p, White)
	black := materialAndPst(p, Black)
	v := white - black
	if p.NextPlayer() == Black {
		v = -v
	}
	return v
}

func materialAndPst(p *position.Position, c Color) Value {
	var v Value
	for pt := Pawn; pt <= King; pt++ {
		bb := p.PiecesBb(c, pt)
		for bb != BbZero {
			sq := bb.PopLsb()
			v += pt.ValueOf()
			v += pstValue(c, pt, sq)
		}
	}
	return v
}

// pstValue looks up the piece-square bonus for a piece type of color
// c standing on sq. Black indexes the table by the square itself;
// white indexes it by 63 minus the square (rotated by 180 degrees).
func pstValue(c Color, pt PieceType, sq Square) Value {
	idx := int(sq)
	if c == White {
		idx = 63 - idx
	}
	return pst[pt][idx]
}
