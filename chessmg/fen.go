package chessmg

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// FENStartPos is the FEN string for the standard initial chess position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrMalformedFEN is wrapped by every parse failure in ParseFEN.
var ErrMalformedFEN = errors.New("malformed FEN")

// pieceChars maps Piece to its FEN letter, indexed by the piece encoding.
var pieceChars = [12]byte{'P', 'N', 'B', 'R', 'Q', 'K', 'p', 'n', 'b', 'r', 'q', 'k'}

func pieceFromChar(ch rune) Piece {
	for p, c := range pieceChars {
		if rune(c) == ch {
			return Piece(p)
		}
	}
	return NoPiece
}

// ParseFEN parses a FEN string and returns a new Board set up to that
// position. The halfmove clock and fullmove number fields are optional
// and default to 0 and 1. Castling-right bits whose king or rook is not
// on its home square are silently cleared so the hash stays canonical.
func ParseFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("%w: want at least 4 fields, got %d", ErrMalformedFEN, len(fields))
	}

	board := &Board{
		enPassant:      NoSquare,
		fullmoveNumber: 1,
	}
	for i := range board.pieces {
		board.pieces[i] = NoPiece
	}

	// 1. Piece placement, rank 8 down to rank 1
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("%w: want 8 ranks, got %d", ErrMalformedFEN, len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			piece := pieceFromChar(ch)
			if piece == NoPiece {
				return nil, fmt.Errorf("%w: unrecognized piece character %q", ErrMalformedFEN, ch)
			}
			if file >= 8 {
				return nil, fmt.Errorf("%w: too many squares in rank %d", ErrMalformedFEN, rank+1)
			}
			board.addPiece(squareAt(file, rank), piece)
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("%w: rank %d does not span 8 files", ErrMalformedFEN, rank+1)
		}
	}
	if popCount(board.pieceBB[WhiteKing]) != 1 || popCount(board.pieceBB[BlackKing]) != 1 {
		return nil, fmt.Errorf("%w: each side needs exactly one king", ErrMalformedFEN)
	}

	// 2. Side to move
	switch fields[1] {
	case "w":
		board.sideToMove = White
	case "b":
		board.sideToMove = Black
	default:
		return nil, fmt.Errorf("%w: side to move must be 'w' or 'b'", ErrMalformedFEN)
	}

	// 3. Castling rights
	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				board.castlingRights |= CastlingWhiteK
			case 'Q':
				board.castlingRights |= CastlingWhiteQ
			case 'k':
				board.castlingRights |= CastlingBlackK
			case 'q':
				board.castlingRights |= CastlingBlackQ
			default:
				return nil, fmt.Errorf("%w: invalid castling rights character %q", ErrMalformedFEN, ch)
			}
		}
	}
	board.normalizeCastlingRights()

	// 4. En passant target square
	if fields[3] != "-" {
		sq, err := parseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("%w: en passant square: %v", ErrMalformedFEN, err)
		}
		if r := sq.Rank(); r != 2 && r != 5 {
			return nil, fmt.Errorf("%w: en passant square %s not on rank 3 or 6", ErrMalformedFEN, fields[3])
		}
		board.enPassant = sq
	}

	// 5-6. Halfmove clock, fullmove number
	if len(fields) > 4 {
		halfmove, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, fmt.Errorf("%w: halfmove clock: %v", ErrMalformedFEN, err)
		}
		board.halfmoveClock = halfmove
	}
	if len(fields) > 5 {
		fullmove, err := strconv.Atoi(fields[5])
		if err != nil {
			return nil, fmt.Errorf("%w: fullmove number: %v", ErrMalformedFEN, err)
		}
		board.fullmoveNumber = fullmove
	}

	board.hashKey = board.computeHash()
	return board, nil
}

// normalizeCastlingRights clears rights whose king or rook has left its
// home square. FEN input is accepted leniently but the stored rights must
// match the invariant the move maker maintains.
func (b *Board) normalizeCastlingRights() {
	if b.pieceBB[WhiteKing]&bb(sqE1) == 0 {
		b.castlingRights &^= CastlingWhiteK | CastlingWhiteQ
	}
	if b.pieceBB[WhiteRook]&bb(sqH1) == 0 {
		b.castlingRights &^= CastlingWhiteK
	}
	if b.pieceBB[WhiteRook]&bb(sqA1) == 0 {
		b.castlingRights &^= CastlingWhiteQ
	}
	if b.pieceBB[BlackKing]&bb(sqE8) == 0 {
		b.castlingRights &^= CastlingBlackK | CastlingBlackQ
	}
	if b.pieceBB[BlackRook]&bb(sqH8) == 0 {
		b.castlingRights &^= CastlingBlackK
	}
	if b.pieceBB[BlackRook]&bb(sqA8) == 0 {
		b.castlingRights &^= CastlingBlackQ
	}
}

func parseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, fmt.Errorf("bad square %q", s)
	}
	return squareAt(int(s[0]-'a'), int(s[1]-'1')), nil
}

// ParseMove resolves a UCI coordinate string ("e2e4", "e7e8q") against
// the current legal move set. Drivers use it to apply external moves.
func (b *Board) ParseMove(uci string) (Move, error) {
	var buf [maxMoves]Move
	for _, m := range b.GenerateMovesInto(buf[:0]) {
		if m.String() == uci {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrIllegalMove, uci)
}

// ToFEN produces the FEN string representation of the board's current state.
func (b *Board) ToFEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.pieces[squareAt(file, rank)]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(pieceChars[p])
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')

	if b.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')

	if b.castlingRights == 0 {
		sb.WriteByte('-')
	} else {
		if b.castlingRights&CastlingWhiteK != 0 {
			sb.WriteByte('K')
		}
		if b.castlingRights&CastlingWhiteQ != 0 {
			sb.WriteByte('Q')
		}
		if b.castlingRights&CastlingBlackK != 0 {
			sb.WriteByte('k')
		}
		if b.castlingRights&CastlingBlackQ != 0 {
			sb.WriteByte('q')
		}
	}
	sb.WriteByte(' ')

	sb.WriteString(squareName(b.enPassant))
	sb.WriteByte(' ')

	sb.WriteString(strconv.Itoa(b.halfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.fullmoveNumber))
	return sb.String()
}
