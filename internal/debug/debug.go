//
// branchwood - a UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Package debug prints a Position or a Bitboard as a labeled 8x8
// ASCII grid, the shape a developer typing "d" into the UCI console
// wants to see rather than a raw FEN or a 64-bit integer.
package debug

import (
	"strings"

	"github.com/ashgrove/branchwood/internal/position"
	. "github.com/ashgrove/branchwood/internal/types"
)

const fileLabels = "    a   b   c   d   e   f   g   h\n"

// PrintPosition renders p's board grid (via Position.StringBoard,
// which already draws the rank-separated +---+ grid) framed with file
// labels top and bottom and the FEN underneath, matching the layout
// the original engine's "d" command produces.
func PrintPosition(p *position.Position) string {
	var sb strings.Builder
	sb.WriteString(fileLabels)
	sb.WriteString(p.StringBoard())
	sb.WriteString(fileLabels)
	sb.WriteString("\n")
	sb.WriteString("Fen: ")
	sb.WriteString(p.FEN())
	sb.WriteString("\n")
	return sb.String()
}

// PrintBitboard renders b's board grid the same way, for inspecting
// an attack or occupancy bitboard while debugging move generation.
func PrintBitboard(b Bitboard) string {
	var sb strings.Builder
	sb.WriteString(fileLabels)
	sb.WriteString(b.StringBoard())
	sb.WriteString(fileLabels)
	return sb.String()
}
