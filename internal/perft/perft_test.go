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

package perft

import (
	"testing"

	"github.com/pkg/profile"
	"github.com/stretchr/testify/assert"

	"github.com/ashgrove/branchwood/internal/position"
)

// Results from https://www.chessprogramming.org/Perft_Results for the
// standard starting position.
func TestStandardPerft(t *testing.T) {
	maxDepth := 5

	var results = [6][5]uint64{
		// depth        nodes       captures         ep       checks
		{0, 1, 0, 0, 0},
		{1, 20, 0, 0, 0},
		{2, 400, 0, 0, 0},
		{3, 8_902, 34, 0, 12},
		{4, 197_281, 1_576, 0, 469},
		{5, 4_865_609, 82_719, 258, 27_351},
	}

	for i := 1; i <= maxDepth; i++ {
		pf := New()
		res, err := pf.Run(position.StartFen, i)
		assert.NoError(t, err)
		assert.Equal(t, results[i][1], res.Nodes, "nodes at depth %d", i)
		assert.Equal(t, results[i][2], res.Captures, "captures at depth %d", i)
		assert.Equal(t, results[i][3], res.EnPassant, "en passant at depth %d", i)
	}
}

// Kiwipete, the standard second perft test position exercising
// castling, promotions and en passant together.
func TestKiwipetePerft(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

	var results = [4]uint64{0, 48, 2_039, 97_862}

	for depth := 1; depth <= 3; depth++ {
		pf := New()
		res, err := pf.Run(fen, depth)
		assert.NoError(t, err)
		assert.Equal(t, results[depth], res.Nodes, "nodes at depth %d", depth)
	}
}

// TestStandardPerftProfiled runs the same depth-5 walk as
// TestStandardPerft under a CPU profile, written to ./cpu.pprof for
// offline inspection of move generation hot spots.
func TestStandardPerftProfiled(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping profiled perft walk in short mode")
	}
	defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	pf := New()
	res, err := pf.Run(position.StartFen, 5)
	assert.NoError(t, err)
	assert.Equal(t, uint64(4_865_609), res.Nodes)
}

func TestDividePartitionsRootMoves(t *testing.T) {
	counts, total, err := Divide(position.StartFen, 2)
	assert.NoError(t, err)
	assert.Equal(t, uint64(400), total)
	assert.Len(t, counts, 20)
	for _, n := range counts {
		assert.Equal(t, uint64(20), n)
	}
}
