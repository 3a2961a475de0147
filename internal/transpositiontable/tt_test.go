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

package transpositiontable

import (
	"os"
	"path"
	"runtime"
	"testing"
	"unsafe"

	logging2 "github.com/op/go-logging"
	"github.com/stretchr/testify/assert"

	"github.com/ashgrove/branchwood/internal/config"
	"github.com/ashgrove/branchwood/internal/logging"
	"github.com/ashgrove/branchwood/internal/position"
	. "github.com/ashgrove/branchwood/internal/types"
)

var logTest *logging2.Logger

// make tests run in the project's root directory
func init() {
	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "../..")
	err := os.Chdir(dir)
	if err != nil {
		panic(err)
	}
}

func TestMain(m *testing.M) {
	config.Setup()
	logTest = logging.GetTestLog()
	code := m.Run()
	os.Exit(code)
}

func TestEntrySize(t *testing.T) {
	var e TtEntry
	assert.EqualValues(t, TtEntrySize, unsafe.Sizeof(e))
	logTest.Debugf("Size of Entry %d bytes", unsafe.Sizeof(e))
}

func TestNew(t *testing.T) {
	tt := NewTtTable(2)
	assert.Equal(t, uint64(131_072), tt.maxNumberOfEntries)
	assert.Equal(t, 131_072, cap(tt.data))
	logTest.Debug(tt.String())

	tt = NewTtTable(64)
	assert.Equal(t, uint64(4_194_304), tt.maxNumberOfEntries)
	assert.Equal(t, 4_194_304, cap(tt.data))

	tt = NewTtTable(100)
	assert.Equal(t, uint64(4_194_304), tt.maxNumberOfEntries)
	assert.Equal(t, 4_194_304, cap(tt.data))

	tt = NewTtTable(4_096)
	assert.Equal(t, uint64(268_435_456), tt.maxNumberOfEntries)
	assert.Equal(t, 268_435_456, cap(tt.data))
}

func TestGetAndProbe(t *testing.T) {
	tt := NewTtTable(64)
	assert.Equal(t, uint64(4_194_304), tt.maxNumberOfEntries)

	p := position.NewPosition()
	move := MakeMove(SqE2, SqE4, Quiet)
	tt.Put(p.ZobristKey(), move, 5, Value(10), VtExact, Value(10))

	e := tt.GetEntry(p.ZobristKey())
	assert.Equal(t, p.ZobristKey(), e.Key())
	assert.Equal(t, move, e.Move())
	assert.EqualValues(t, 5, e.Depth())
	assert.EqualValues(t, 1, e.Age())
	assert.Equal(t, VtExact, e.Vtype())

	// probing decreases the age
	e = tt.Probe(p.ZobristKey())
	assert.EqualValues(t, 0, e.Age())

	// age does not go below 0
	e = tt.Probe(p.ZobristKey())
	assert.EqualValues(t, 0, e.Age())

	// a key that was never stored is not found
	p.DoMove(move)
	e = tt.Probe(p.ZobristKey())
	assert.Nil(t, e)
}

func TestClear(t *testing.T) {
	tt := NewTtTable(1)

	p := position.NewPosition()
	move := MakeMove(SqE2, SqE4, Quiet)
	tt.Put(p.ZobristKey(), move, 5, Value(1), VtExact, Value(1))
	assert.EqualValues(t, 1, tt.numberOfEntries)

	tt.Clear()

	e := tt.Probe(p.ZobristKey())
	assert.Nil(t, e)
	assert.EqualValues(t, 0, tt.numberOfEntries)
}

func TestAge(t *testing.T) {
	tt := NewTtTable(5_000)

	logTest.Debug("filling tt")
	for i := range tt.data {
		tt.numberOfEntries++
		tt.data[i].key = position.Key(i)
		tt.data[i].increaseAge()
	}
	tt.data[0].key = 0
	tt.numberOfEntries--
	logTest.Debug(tt.String())

	assert.EqualValues(t, 1, tt.GetEntry(1).Age())
	assert.EqualValues(t, 1, tt.GetEntry(1_000).Age())

	logTest.Debug("aging entries")
	tt.AgeEntries()

	assert.EqualValues(t, 2, tt.GetEntry(1).Age())
	assert.EqualValues(t, 2, tt.GetEntry(1_000).Age())
}

func TestPut(t *testing.T) {
	tt := NewTtTable(4)
	move := MakeMove(SqE2, SqE4, Quiet)

	tt.Put(111, move, 4, Value(111), VtAlpha, ValueZero)
	assert.EqualValues(t, 1, tt.Len())
	assert.EqualValues(t, 1, tt.Stats.numberOfPuts)
	e := tt.Probe(111)
	assert.EqualValues(t, 111, e.Key())
	assert.Equal(t, move, e.Move())
	assert.EqualValues(t, 4, e.Depth())
	assert.Equal(t, VtAlpha, e.Vtype())
	assert.EqualValues(t, 0, e.Age())

	// same key, update
	tt.Put(111, move, 5, Value(112), VtBeta, ValueZero)
	assert.EqualValues(t, 1, tt.Len())
	assert.EqualValues(t, 2, tt.Stats.numberOfPuts)
	assert.EqualValues(t, 1, tt.Stats.numberOfUpdates)
	assert.EqualValues(t, 0, tt.Stats.numberOfCollisions)
	e = tt.Probe(111)
	assert.EqualValues(t, 112, e.Value())
	assert.EqualValues(t, 5, e.Depth())
	assert.Equal(t, VtBeta, e.Vtype())

	// a different key that hashes to the same slot: deeper entry wins
	collisionKey := position.Key(111 + tt.maxNumberOfEntries)
	tt.Put(collisionKey, move, 6, Value(113), VtExact, ValueZero)
	assert.EqualValues(t, 1, tt.Len())
	assert.EqualValues(t, 1, tt.Stats.numberOfCollisions)
	assert.EqualValues(t, 1, tt.Stats.numberOfOverwrites)
	e = tt.Probe(collisionKey)
	assert.EqualValues(t, collisionKey, e.Key())
	assert.EqualValues(t, 113, e.Value())
	assert.Equal(t, VtExact, e.Vtype())

	// a shallower collision does not overwrite
	collisionKey2 := position.Key(111 + (tt.maxNumberOfEntries << 1))
	tt.Put(collisionKey2, move, 4, Value(114), VtBeta, ValueZero)
	assert.EqualValues(t, 2, tt.Stats.numberOfCollisions)
	assert.EqualValues(t, 1, tt.Stats.numberOfOverwrites)
	e = tt.Probe(collisionKey2)
	assert.Nil(t, e)
	e = tt.Probe(collisionKey)
	assert.EqualValues(t, collisionKey, e.Key())
	assert.EqualValues(t, 113, e.Value())
}

func TestHashfull(t *testing.T) {
	tt := NewTtTable(1)
	assert.Equal(t, 0, tt.Hashfull())
	move := MakeMove(SqE2, SqE4, Quiet)
	for i := 0; i < int(tt.maxNumberOfEntries)/10; i++ {
		tt.Put(position.Key(i+1), move, 1, ValueZero, VtExact, ValueZero)
	}
	assert.InDelta(t, 100, tt.Hashfull(), 5)
}
