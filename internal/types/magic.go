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

import "fmt"

// Magic holds the fancy magic bitboard data for sliding attacks from a
// single square: the relevant occupancy mask, the magic multiplier,
// the attack table slice for this square and the index shift.
type Magic struct {
	Mask    Bitboard
	Number  Bitboard
	Attacks []Bitboard
	Shift   uint
}

// index maps an occupancy bitboard to a slot in m.Attacks.
// https://www.chessprogramming.org/Magic_Bitboards
func (m *Magic) index(occupied Bitboard) uint {
	occ := occupied & m.Mask
	occ *= m.Number
	occ >>= m.Shift
	return uint(occ)
}

// attacks returns the sliding attack bitboard for this square given
// board occupancy.
func (m *Magic) attacks(occupied Bitboard) Bitboard {
	return m.Attacks[m.index(occupied)]
}

// initMagics computes, for every square, the relevant occupancy mask
// and a magic multiplier that maps every subset of that mask to the
// correct precomputed sliding attack bitboard. Ported from Stockfish's
// init_magics(), which itself implements the "fancy magic bitboards"
// approach (see chessprogramming.org/Magic_Bitboards).
func initMagics(table *[]Bitboard, magics *[SqLength]Magic, directions *[4]Direction) {
	seeds := [8]uint64{728, 10316, 55013, 32803, 12281, 15100, 16645, 255}

	var occupancy, reference [4096]Bitboard
	var epoch [4096]int
	var edges, b Bitboard
	cnt := 0
	size := 0

	for sq := SqA1; sq < SqNone; sq++ {
		edges = ((Rank1Bb | Rank8Bb) &^ sq.RankOf().Bb()) | ((FileABb | FileHBb) &^ sq.FileOf().Bb())

		m := &magics[sq]
		m.Mask = slidingAttack(directions, sq, BbZero) &^ edges
		m.Shift = 64 - uint(m.Mask.PopCount())

		if sq == SqA1 {
			m.Attacks = *table
		} else {
			m.Attacks = magics[sq-1].Attacks[size:]
		}

		// Carry-Rippler trick: enumerate every subset of m.Mask.
		// https://www.chessprogramming.org/Traversing_Subsets_of_a_Set
		b = 0
		size = 0
		for {
			occupancy[size] = b
			reference[size] = slidingAttack(directions, sq, b)
			size++
			b = (b - m.Mask) & m.Mask
			if b == 0 {
				break
			}
		}

		rng := newPrnG(seeds[sq.RankOf()])
		for i := 0; i < size; {
			for m.Number = 0; ; {
				m.Number = Bitboard(rng.sparseRand())
				if ((m.Number * m.Mask) >> 56).PopCount() >= 6 {
					continue
				}
				break
			}
			cnt++
			for i = 0; i < size; i++ {
				idx := m.index(occupancy[i])
				if epoch[idx] < cnt {
					epoch[idx] = cnt
					m.Attacks[idx] = reference[i]
				} else if m.Attacks[idx] != reference[i] {
					break
				}
			}
		}
	}
}

// slidingAttack walks each of the four given ray directions from sq
// until it runs off the board or hits an occupied square, accumulating
// every square stepped onto. Only used at init time to seed the magic
// attack tables; too slow for use during search.
func slidingAttack(directions *[4]Direction, sq Square, occupied Bitboard) Bitboard {
	var attack Bitboard
	for _, d := range directions {
		s := sq
		for {
			next := s.To(d)
			if !next.IsValid() || SquareDistance(s, next) != 1 {
				break
			}
			s = next
			attack.PushSquare(s)
			if occupied.Has(s) {
				break
			}
		}
	}
	return attack
}

// prnG is a xorshift64star generator used only to pick magic
// candidates at init time. Ported from Stockfish / Sebastiano Vigna's
// public domain design (see zobrist package for the same algorithm).
type prnG struct {
	s uint64
}

func newPrnG(seed uint64) *prnG {
	return &prnG{s: seed}
}

func (r *prnG) rand64() uint64 {
	r.s ^= r.s >> 12
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	return r.s * 2685821657736338717
}

// sparseRand returns a value with roughly 1/8th of its bits set on
// average, which converges on a valid magic much faster than a
// uniform random 64-bit value.
func (r *prnG) sparseRand() uint64 {
	return r.rand64() & r.rand64() & r.rand64()
}

var (
	pawnAttacks   [ColorLength][SqLength]Bitboard
	pseudoAttacks [PtLength][SqLength]Bitboard

	filesWestMask  [SqLength]Bitboard
	filesEastMask  [SqLength]Bitboard
	ranksNorthMask [SqLength]Bitboard
	ranksSouthMask [SqLength]Bitboard

	rookTable    []Bitboard
	rookMagics   [SqLength]Magic
	bishopTable  []Bitboard
	bishopMagics [SqLength]Magic

	rayBb        [8][SqLength]Bitboard
	intermediate [SqLength][SqLength]Bitboard
)

// Orientation names one of the eight compass rays radiating from a
// square, used to index the precomputed ray and intermediate tables.
type Orientation int

// Orientation constants.
const (
	North_ Orientation = iota
	East_
	South_
	West_
	Northeast_
	Southeast_
	Southwest_
	Northwest_
)

func init() {
	neighbourMasksPreCompute()
	pseudoAttacksPreCompute()
	rookTable = make([]Bitboard, 0x19000)
	bishopTable = make([]Bitboard, 0x1480)
	initMagics(&rookTable, &rookMagics, &[4]Direction{North, East, South, West})
	initMagics(&bishopTable, &bishopMagics, &[4]Direction{Northeast, Southeast, Southwest, Northwest})
	raysPreCompute()
	intermediatePreCompute()
}

func neighbourMasksPreCompute() {
	for sq := SqA1; sq < SqNone; sq++ {
		f := int(sq.FileOf())
		r := int(sq.RankOf())
		for j := 0; j <= 7; j++ {
			if j < f {
				filesWestMask[sq] |= File(j).Bb()
			}
			if j > f {
				filesEastMask[sq] |= File(j).Bb()
			}
			if j > r {
				ranksNorthMask[sq] |= Rank(j).Bb()
			}
			if j < r {
				ranksSouthMask[sq] |= Rank(j).Bb()
			}
		}
	}
}

func pseudoAttacksPreCompute() {
	kingSteps := []Direction{North, Northeast, East, Southeast, South, Southwest, West, Northwest}

	for sq := SqA1; sq < SqNone; sq++ {
		for _, d := range kingSteps {
			if to := sq.To(d); to.IsValid() {
				pseudoAttacks[King][sq].PushSquare(to)
			}
		}
		for _, to := range knightTargets(sq) {
			pseudoAttacks[Knight][sq].PushSquare(to)
		}
		if to := sq.To(Northeast); to.IsValid() {
			pawnAttacks[White][sq].PushSquare(to)
		}
		if to := sq.To(Northwest); to.IsValid() {
			pawnAttacks[White][sq].PushSquare(to)
		}
		if to := sq.To(Southeast); to.IsValid() {
			pawnAttacks[Black][sq].PushSquare(to)
		}
		if to := sq.To(Southwest); to.IsValid() {
			pawnAttacks[Black][sq].PushSquare(to)
		}

		pseudoAttacks[Bishop][sq] = slidingAttack(&[4]Direction{Northeast, Southeast, Southwest, Northwest}, sq, BbZero)
		pseudoAttacks[Rook][sq] = slidingAttack(&[4]Direction{North, East, South, West}, sq, BbZero)
		pseudoAttacks[Queen][sq] = pseudoAttacks[Bishop][sq] | pseudoAttacks[Rook][sq]
	}
}

// knightTargets composes two single-square steps (e.g. North then
// Northeast) and requires both legs to stay on the board, since a
// knight leap cannot be looked up as a single Square.To direction.
func knightTargets(sq Square) []Square {
	legs := [8][2]Direction{
		{North, Northeast}, {North, Northwest},
		{South, Southeast}, {South, Southwest},
		{East, Northeast}, {East, Southeast},
		{West, Northwest}, {West, Southwest},
	}
	targets := make([]Square, 0, 8)
	for _, leg := range legs {
		if s := sq.To(leg[0]); s.IsValid() {
			if t := s.To(leg[1]); t.IsValid() {
				targets = append(targets, t)
			}
		}
	}
	return targets
}

func raysPreCompute() {
	for sq := SqA1; sq < SqNone; sq++ {
		rayBb[North_][sq] = pseudoAttacks[Rook][sq] & ranksNorthMask[sq]
		rayBb[South_][sq] = pseudoAttacks[Rook][sq] & ranksSouthMask[sq]
		rayBb[East_][sq] = pseudoAttacks[Rook][sq] & filesEastMask[sq]
		rayBb[West_][sq] = pseudoAttacks[Rook][sq] & filesWestMask[sq]
		rayBb[Northeast_][sq] = pseudoAttacks[Bishop][sq] & filesEastMask[sq] & ranksNorthMask[sq]
		rayBb[Northwest_][sq] = pseudoAttacks[Bishop][sq] & filesWestMask[sq] & ranksNorthMask[sq]
		rayBb[Southeast_][sq] = pseudoAttacks[Bishop][sq] & filesEastMask[sq] & ranksSouthMask[sq]
		rayBb[Southwest_][sq] = pseudoAttacks[Bishop][sq] & filesWestMask[sq] & ranksSouthMask[sq]
	}
}

// intermediatePreCompute fills, for every pair of squares lying on a
// shared rank, file or diagonal, the bitboard of squares strictly
// between them. Used to find squares that block a sliding check or
// capture a pinning piece.
func intermediatePreCompute() {
	for from := SqA1; from < SqNone; from++ {
		for to := SqA1; to < SqNone; to++ {
			toBb := to.Bb()
			for o := North_; o <= Northwest_; o++ {
				if rayBb[o][from]&toBb != BbZero {
					intermediate[from][to] |= rayBb[o][from] &^ rayBb[o][to] &^ toBb
				}
			}
		}
	}
}

// GetAttacksBb returns the squares a piece of type pt on sq attacks
// given the current board occupancy. Sliding pieces consult the magic
// bitboard tables; knight and king use the precomputed pseudo attacks.
// Pawn is not supported here; use GetPawnAttacks.
func GetAttacksBb(pt PieceType, sq Square, occupied Bitboard) Bitboard {
	switch pt {
	case Bishop:
		return bishopMagics[sq].attacks(occupied)
	case Rook:
		return rookMagics[sq].attacks(occupied)
	case Queen:
		return bishopMagics[sq].attacks(occupied) | rookMagics[sq].attacks(occupied)
	case King, Knight:
		return pseudoAttacks[pt][sq]
	default:
		panic(fmt.Sprintf("GetAttacksBb: unsupported piece type %s", pt))
	}
}

// GetPseudoAttacks returns the squares a piece of type pt on sq would
// attack on an empty board.
func GetPseudoAttacks(pt PieceType, sq Square) Bitboard {
	return pseudoAttacks[pt][sq]
}

// GetPawnAttacks returns the squares a pawn of color c on sq attacks.
func GetPawnAttacks(c Color, sq Square) Bitboard {
	return pawnAttacks[c][sq]
}

// Ray returns the full ray from sq in orientation o, stopping at the
// board edge. Ignores occupancy.
func Ray(sq Square, o Orientation) Bitboard {
	return rayBb[o][sq]
}

// Intermediate returns the squares strictly between from and to, or
// BbZero if the two squares do not share a rank, file or diagonal.
func Intermediate(from, to Square) Bitboard {
	return intermediate[from][to]
}
