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

// Package moveslice provides a small helper type around a slice of
// Move, used throughout move generation and search as the move stack.
package moveslice

import (
	"fmt"
	"sort"
	"strings"

	. "github.com/ashgrove/branchwood/internal/types"
)

// MoveList is a slice of Move with the bounds-checked helpers the
// engine needs while generating and ordering moves.
type MoveList []Move

// NewMoveList creates an empty move list with the given capacity.
func NewMoveList(capacity int) *MoveList {
	moves := make([]Move, 0, capacity)
	return (*MoveList)(&moves)
}

// Len returns the number of moves currently stored.
func (ml *MoveList) Len() int {
	return len(*ml)
}

// Cap returns the capacity of the underlying array.
func (ml *MoveList) Cap() int {
	return cap(*ml)
}

// PushBack appends a move at the end of the list.
func (ml *MoveList) PushBack(m Move) {
	*ml = append(*ml, m)
}

// PopBack removes and returns the move from the back of the list.
// Panics if the list is empty.
func (ml *MoveList) PopBack() Move {
	if len(*ml) == 0 {
		panic("moveslice: PopBack on empty MoveList")
	}
	m := (*ml)[len(*ml)-1]
	*ml = (*ml)[:len(*ml)-1]
	return m
}

// Front returns the move at the front of the list. Panics if empty.
func (ml *MoveList) Front() Move {
	if len(*ml) == 0 {
		panic("moveslice: Front on empty MoveList")
	}
	return (*ml)[0]
}

// Back returns the move at the back of the list. Panics if empty.
func (ml *MoveList) Back() Move {
	if len(*ml) == 0 {
		panic("moveslice: Back on empty MoveList")
	}
	return (*ml)[len(*ml)-1]
}

// At returns the move at index i. Panics if i is out of bounds.
func (ml *MoveList) At(i int) Move {
	if i < 0 || i >= len(*ml) {
		panic("moveslice: index out of bounds")
	}
	return (*ml)[i]
}

// Set overwrites the move at index i. Panics if i is out of bounds.
func (ml *MoveList) Set(i int, m Move) {
	if i < 0 || i >= len(*ml) {
		panic("moveslice: index out of bounds")
	}
	(*ml)[i] = m
}

// Clear empties the list while retaining its current capacity, useful
// when a move list is reused at high frequency during search.
func (ml *MoveList) Clear() {
	*ml = (*ml)[:0]
}

// Clone makes an independent copy of the list.
func (ml *MoveList) Clone() *MoveList {
	dst := make([]Move, ml.Len())
	copy(dst, *ml)
	return (*MoveList)(&dst)
}

// Contains reports whether m appears anywhere in the list.
func (ml *MoveList) Contains(m Move) bool {
	for _, x := range *ml {
		if x == m {
			return true
		}
	}
	return false
}

// MoveToFront moves the first occurrence of m to index 0, shifting
// the rest back. Used to bring a PV or TT move to the front of an
// already-generated move list before searching it first. No-op if m
// is not present.
func (ml *MoveList) MoveToFront(m Move) {
	for i, x := range *ml {
		if x == m {
			copy((*ml)[1:i+1], (*ml)[0:i])
			(*ml)[0] = m
			return
		}
	}
}

// SortByKey orders the list descending by the given key function,
// using a stable sort since move lists are often mostly pre-ordered
// (e.g. captures already grouped ahead of quiet moves).
func (ml *MoveList) SortByKey(key func(m Move) int) {
	sort.SliceStable(*ml, func(i, j int) bool {
		return key((*ml)[i]) > key((*ml)[j])
	})
}

// ForEach calls f with the index of every element, in order.
func (ml *MoveList) ForEach(f func(index int)) {
	for i := range *ml {
		f(i)
	}
}

// String renders the list as "MoveList: [n] { e2e4, e7e5, ... }".
func (ml *MoveList) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("MoveList: [%d] { ", ml.Len()))
	for i, m := range *ml {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(m.String())
	}
	sb.WriteString(" }")
	return sb.String()
}

// StringUci renders the list as a space separated sequence of moves
// in pure algebraic notation, as used in UCI "bestmove"/PV output.
func (ml *MoveList) StringUci() string {
	var sb strings.Builder
	for i, m := range *ml {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(m.UciMove())
	}
	return sb.String()
}
