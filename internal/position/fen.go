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

package position

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	. "github.com/ashgrove/branchwood/internal/types"
	"github.com/ashgrove/branchwood/internal/zobrist"
)

var (
	regexFenPos          = regexp.MustCompile(`^[1-8pPnNbBrRqQkK/]+$`)
	regexSideToMove      = regexp.MustCompile(`^[wb]$`)
	regexCastlingRights  = regexp.MustCompile(`^(K?Q?k?q?|-)$`)
	regexEnPassantSquare = regexp.MustCompile(`^([a-h][36]|-)$`)
)

// SetFEN resets the position to the board described by fen. Only the
// piece placement field is mandatory. Omitted trailing fields default
// to white to move, no castling rights, no en passant square, a half
// move clock of 0 and full move number 1.
func (p *Position) SetFEN(fen string) error {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return errors.New("position: FEN must not be empty")
	}
	if !regexFenPos.MatchString(fields[0]) {
		return errors.New("position: FEN piece placement field has invalid characters")
	}

	*p = Position{enPassantSquare: SqNone, fullMoveNumber: 1}

	sq := SqA8
	for _, c := range fields[0] {
		switch {
		case c >= '1' && c <= '8':
			sq += Square(c-'0') * Square(East)
		case c == '/':
			sq = sq.To(South).To(South)
		default:
			pc := PieceFromChar(string(c))
			if pc == PieceNone {
				return fmt.Errorf("position: invalid piece character %q in FEN", c)
			}
			p.putPiece(pc, sq)
			sq++
		}
	}
	if sq != SqA2 {
		return errors.New("position: FEN piece placement does not cover exactly 64 squares")
	}

	p.nextPlayer = White
	if len(fields) >= 2 {
		if !regexSideToMove.MatchString(fields[1]) {
			return errors.New("position: FEN side-to-move field must be 'w' or 'b'")
		}
		if fields[1] == "b" {
			p.nextPlayer = Black
			p.zobristKey ^= zobrist.NextPlayer()
		}
	}

	if len(fields) >= 3 {
		if !regexCastlingRights.MatchString(fields[2]) {
			return errors.New("position: FEN castling rights field is invalid")
		}
		for _, c := range fields[2] {
			switch c {
			case 'K':
				p.castlingRights.Add(CastlingWhiteOO)
			case 'Q':
				p.castlingRights.Add(CastlingWhiteOOO)
			case 'k':
				p.castlingRights.Add(CastlingBlackOO)
			case 'q':
				p.castlingRights.Add(CastlingBlackOOO)
			}
		}
		p.zobristKey ^= zobrist.Castling(p.castlingRights)
	}

	if len(fields) >= 4 && fields[3] != "-" {
		if !regexEnPassantSquare.MatchString(fields[3]) {
			return errors.New("position: FEN en passant field is invalid")
		}
		epSq := MakeSquare(fields[3])
		if GetPawnAttacks(p.nextPlayer.Opponent(), epSq)&p.piecesBb[p.nextPlayer][Pawn] != 0 {
			p.enPassantSquare = epSq
			p.zobristKey ^= zobrist.EnPassantFile(epSq.FileOf())
		}
	}

	if len(fields) >= 5 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return errors.New("position: FEN half move clock is invalid")
		}
		p.halfMoveClock = n
	}

	if len(fields) >= 6 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return errors.New("position: FEN full move number is invalid")
		}
		p.fullMoveNumber = n
	}

	return nil
}

// FEN renders the position as a FEN string.
func (p *Position) FEN() string {
	var sb strings.Builder
	for r := Rank8; ; r-- {
		empty := 0
		for f := FileA; f <= FileH; f++ {
			pc := p.board[SquareOf(f, r)]
			if pc == PieceNone {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(pc.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r > Rank1 {
			sb.WriteString("/")
		}
		if r == Rank1 {
			break
		}
	}
	sb.WriteString(" ")
	sb.WriteString(p.nextPlayer.String())
	sb.WriteString(" ")
	sb.WriteString(p.castlingRights.String())
	sb.WriteString(" ")
	sb.WriteString(p.enPassantSquare.String())
	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(p.halfMoveClock))
	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(p.fullMoveNumber))
	return sb.String()
}
