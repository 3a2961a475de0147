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

package config

// searchConfiguration holds the tunables this engine's search actually
// reads. Pondering, multi-PV, opening books, and the null-move/LMR/LMP
// family of pruning the teacher carried are out of scope for a
// fixed-depth single-PV single-worker search, so those knobs are not
// reproduced here.
type searchConfiguration struct {
	// Transposition table size in megabytes.
	TTSizeMb int

	// Default iterative deepening depth when a UCI "go" command names
	// no "depth"; a "movetime", if given, can end the search earlier.
	DefaultDepth int

	// Quiescence search toggle, useful for comparing search output
	// against plain leaf evaluation while debugging move ordering.
	UseQuiescence bool
}

func init() {
	Settings.Search.TTSizeMb = 128
	Settings.Search.DefaultDepth = 6
	Settings.Search.UseQuiescence = true
}

func setupSearch() {
}
