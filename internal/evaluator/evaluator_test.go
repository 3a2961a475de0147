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

package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ashgrove/branchwood/internal/position"
)

func TestStartPositionIsBalanced(t *testing.T) {
	p := position.NewPosition()
	e := NewEvaluator()
	assert.EqualValues(t, 0, e.Evaluate(p), "symmetric start position must evaluate to zero")
}

func TestExtraQueenIsPositive(t *testing.T) {
	p, err := position.NewPositionFen("4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	assert.NoError(t, err)
	e := NewEvaluator()
	assert.Greater(t, int(e.Evaluate(p)), 800, "a lone extra queen should dominate the evaluation")
}

func TestEvaluationFlipsWithSideToMove(t *testing.T) {
	white, err := position.NewPositionFen("4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	assert.NoError(t, err)
	black, err := position.NewPositionFen("4k3/8/8/8/8/8/8/3QK3 b - - 0 1")
	assert.NoError(t, err)
	e := NewEvaluator()
	assert.EqualValues(t, e.Evaluate(white), -e.Evaluate(black))
}
