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

package search

import (
	"os"
	"path"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ashgrove/branchwood/internal/config"
	"github.com/ashgrove/branchwood/internal/position"
	. "github.com/ashgrove/branchwood/internal/types"
)

func init() {
	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "../..")
	if err := os.Chdir(dir); err != nil {
		panic(err)
	}
	config.Setup()
}

func TestStartPositionReturnsALegalMove(t *testing.T) {
	s := NewSearch()
	p := position.NewPosition()
	result := s.StartSearch(p, Limits{Depth: 3})
	assert.NotEqual(t, MoveNone, result.BestMove)
	assert.Equal(t, 3, result.Depth)
	assert.True(t, result.Pv.Len() >= 1)
}

func TestFindsMateInOne(t *testing.T) {
	// White to move: Re1-e8 is a back-rank mate, the black king boxed
	// in by its own pawns on f7/g7/h7.
	p, err := position.NewPositionFen("6k1/5ppp/8/8/8/8/8/4R2K w - - 0 1")
	assert.NoError(t, err)
	s := NewSearch()
	result := s.StartSearch(p, Limits{Depth: 3})
	assert.True(t, result.Value.IsMateScore())
	assert.True(t, result.Value > 0)
}

func TestStalemateScoresAsDraw(t *testing.T) {
	// Classic stalemate: black to move, no legal moves, not in check.
	p, err := position.NewPositionFen("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	assert.NoError(t, err)
	s := NewSearch()
	result := s.StartSearch(p, Limits{Depth: 2})
	assert.Equal(t, MoveNone, result.BestMove)
	assert.Equal(t, ValueDraw, result.Value)
}

func TestGoRunsAsynchronously(t *testing.T) {
	s := NewSearch()
	p := position.NewPosition()
	done := make(chan Result, 1)
	s.Go(p, Limits{Depth: 4}, func(r Result) { done <- r })
	select {
	case r := <-done:
		assert.NotEqual(t, MoveNone, r.BestMove)
	case <-time.After(10 * time.Second):
		t.Fatal("search did not finish")
	}
	assert.False(t, s.IsSearching())
}

func TestStopEndsAGoSearchEarly(t *testing.T) {
	s := NewSearch()
	p := position.NewPosition()
	done := make(chan Result, 1)
	s.Go(p, Limits{Depth: MaxDepth}, func(r Result) { done <- r })
	s.Stop()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("search did not stop")
	}
}

func TestValueToAndFromTTRoundTrips(t *testing.T) {
	assert.EqualValues(t, 100, valueFromTT(valueToTT(100, 4), 4))
	mate := ValueMate - 3
	assert.EqualValues(t, mate, valueFromTT(valueToTT(mate, 5), 5))
}
