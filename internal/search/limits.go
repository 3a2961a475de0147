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

package search

import "time"

// Limits controls how far a single StartSearch call is allowed to go.
// Pondering, multi-PV, mate search and the full time-control machinery
// the teacher supports (remaining clock, increment, moves-to-go) are
// out of scope here: a search either runs to a fixed depth or for a
// fixed slice of wall-clock time.
type Limits struct {
	// Depth is the maximum iterative deepening depth. Zero selects
	// config.Settings.Search.DefaultDepth.
	Depth int

	// MoveTime, if non-zero, is checked before each new iteration:
	// once it has elapsed no further iteration starts, while an
	// iteration already running is searched to its end. Depth still
	// bounds the deepest iteration.
	MoveTime time.Duration

	// Nodes, if non-zero, stops the search once the node counter
	// reaches it (checked at each negamax node, not at quiescence
	// nodes).
	Nodes uint64
}

// NewLimits returns a Limits with every field at its zero value; the
// search fills in defaults for whichever fields were left unset.
func NewLimits() *Limits {
	return &Limits{}
}
