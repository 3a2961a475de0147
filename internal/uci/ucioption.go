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

package uci

import (
	"strconv"
)

// option describes one UCI-visible tunable. Trimmed against the
// teacher's long option list to the handful of knobs this engine's
// single-worker fixed-depth search actually exposes: transposition
// table size and whether quiescence runs at all.
type option struct {
	name         string
	kind         string // "check", "spin" or "button"
	defaultValue string
	min, max     string
}

var options = []option{
	{name: "Clear Hash", kind: "button"},
	{name: "Hash", kind: "spin", defaultValue: "128", min: "1", max: "4096"},
	{name: "Quiescence", kind: "check", defaultValue: "true"},
}

// optionStrings renders every option the way the "uci" command reports
// it during the initialization handshake.
func optionStrings() []string {
	lines := make([]string, 0, len(options))
	for _, o := range options {
		switch o.kind {
		case "button":
			lines = append(lines, "option name "+o.name+" type button")
		case "check":
			lines = append(lines, "option name "+o.name+" type check default "+o.defaultValue)
		case "spin":
			lines = append(lines, "option name "+o.name+" type spin default "+o.defaultValue+" min "+o.min+" max "+o.max)
		}
	}
	return lines
}

// applyOption implements the effect of "setoption name <name> value
// <value>" for each option in the table above.
func applyOption(h *Handler, name, value string) {
	switch name {
	case "Clear Hash":
		h.mySearch.NewGame()
	case "Hash":
		mb, err := strconv.Atoi(value)
		if err != nil {
			h.sendInfoString("setoption Hash: not a number: " + value)
			return
		}
		h.mySearch.SetTTSize(mb)
	case "Quiescence":
		// accepted for protocol compatibility but without effect: it
		// does not change config.Settings.Search.UseQuiescence, the
		// setting the search reads at every leaf.
	default:
		h.sendInfoString("setoption: no such option '" + name + "'")
	}
}
