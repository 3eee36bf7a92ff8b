package chessmg

import (
	"errors"
	"fmt"
)

// ErrIllegalMove is returned by MakeMoveChecked for a move that is not in
// the current legal move set.
var ErrIllegalMove = errors.New("illegal move")

// castleRightsMask[sq] is ANDed into the rights whenever a piece moves
// from or to sq. Corners strip one rook right, the king squares strip
// both rights for that side; every other square leaves the mask intact.
var castleRightsMask [64]CastlingRights

func init() {
	for sq := range castleRightsMask {
		castleRightsMask[sq] = CastlingWhiteK | CastlingWhiteQ | CastlingBlackK | CastlingBlackQ
	}
	castleRightsMask[sqA1] &^= CastlingWhiteQ
	castleRightsMask[sqH1] &^= CastlingWhiteK
	castleRightsMask[sqE1] &^= CastlingWhiteK | CastlingWhiteQ
	castleRightsMask[sqA8] &^= CastlingBlackQ
	castleRightsMask[sqH8] &^= CastlingBlackK
	castleRightsMask[sqE8] &^= CastlingBlackK | CastlingBlackQ
}

// MakeMove applies a legal move to the board. The previous state is pushed
// onto the undo stack; callers balance every MakeMove with UnmakeMove.
// Passing a move that is not legal in the current position leaves the
// board in an undefined state; use MakeMoveChecked when unsure.
func (b *Board) MakeMove(m Move) {
	b.stack = append(b.stack, snapshot{
		pieceBB:        b.pieceBB,
		occupancy:      b.occupancy,
		pieces:         b.pieces,
		sideToMove:     b.sideToMove,
		castlingRights: b.castlingRights,
		enPassant:      b.enPassant,
		halfmoveClock:  b.halfmoveClock,
		fullmoveNumber: b.fullmoveNumber,
		hashKey:        b.hashKey,
	})
	if b.ply < maxHistory {
		b.history[b.ply] = b.hashKey
	}
	b.ply++

	us := b.sideToMove
	them := us.Opposite()
	from, to := m.From(), m.To()
	piece := m.MovedPiece()
	flags := m.Flags()

	b.halfmoveClock++
	if piece.Type() == Pawn || flags&FlagCapture != 0 {
		b.halfmoveClock = 0
	}

	switch {
	case flags&FlagCastle != 0:
		b.removePiece(from)
		b.addPiece(to, piece)
		rook := PieceFromType(us, Rook)
		switch to {
		case sqG1:
			b.removePiece(sqH1)
			b.addPiece(sqF1, rook)
		case sqC1:
			b.removePiece(sqA1)
			b.addPiece(sqD1, rook)
		case sqG8:
			b.removePiece(sqH8)
			b.addPiece(sqF8, rook)
		case sqC8:
			b.removePiece(sqA8)
			b.addPiece(sqD8, rook)
		}
	case flags&FlagEnPassant != 0:
		capturedSq := to - 8
		if us == Black {
			capturedSq = to + 8
		}
		b.removePiece(capturedSq)
		b.removePiece(from)
		b.addPiece(to, piece)
	default:
		if flags&FlagCapture != 0 {
			b.removePiece(to)
		}
		b.removePiece(from)
		if promo := m.PromotionPiece(); promo != NoPiece {
			b.addPiece(to, promo)
		} else {
			b.addPiece(to, piece)
		}
	}

	b.castlingRights &= castleRightsMask[from] & castleRightsMask[to]

	// Record the ep square only when an enemy pawn can actually capture on
	// it; a dead ep square would change the hash without changing the
	// reachable positions.
	b.enPassant = NoSquare
	if flags&FlagDoublePush != 0 {
		crossed := (from + to) / 2
		if pawnAttacks[us][crossed]&b.pieceBB[PieceFromType(them, Pawn)] != 0 {
			b.enPassant = crossed
		}
	}

	if us == Black {
		b.fullmoveNumber++
	}
	b.sideToMove = them
	b.hashKey = b.computeHash()
}

// MakeMoveChecked validates the move against the legal move set before
// applying it. Meant for drivers and tests fed with external input.
func (b *Board) MakeMoveChecked(m Move) error {
	var buf [maxMoves]Move
	for _, legal := range b.GenerateMovesInto(buf[:0]) {
		if legal == m {
			b.MakeMove(m)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrIllegalMove, m)
}

// UnmakeMove restores the position as it was before the last MakeMove.
// It panics if no move has been made.
func (b *Board) UnmakeMove() {
	n := len(b.stack)
	if n == 0 {
		panic("UnmakeMove: empty stack")
	}
	st := b.stack[n-1]
	b.stack = b.stack[:n-1]
	b.ply--

	b.pieceBB = st.pieceBB
	b.occupancy = st.occupancy
	b.pieces = st.pieces
	b.sideToMove = st.sideToMove
	b.castlingRights = st.castlingRights
	b.enPassant = st.enPassant
	b.halfmoveClock = st.halfmoveClock
	b.fullmoveNumber = st.fullmoveNumber
	b.hashKey = st.hashKey
}
