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

// Value is a centipawn score, stored and transmitted in the engine's
// signed 16-bit scale (see the TT Entry layout in transpositiontable).
type Value int32

// Value constants. ValueInf bounds alpha-beta search; ValueMate is the
// score of delivering mate right now, with mate-in-N scores counted
// down from it one ply at a time (see valueToTT/valueFromTT in search).
const (
	ValueZero  Value = 0
	ValueDraw  Value = 0
	ValueInf   Value = 15000
	ValueNone  Value = 16001
	ValueMate  Value = 10000
	ValueMateThreshold Value = ValueMate - 1000
)

// IsValid reports whether v lies within the representable search range.
func (v Value) IsValid() bool {
	return v >= -ValueInf && v <= ValueInf
}

// IsMateScore reports whether v represents a forced mate (for either side).
func (v Value) IsMateScore() bool {
	return v >= ValueMateThreshold || v <= -ValueMateThreshold
}
