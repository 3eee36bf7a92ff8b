package chessmg

// Move packs a single move into 32 bits:
//
//	bits 0-5   source square
//	bits 6-11  target square
//	bits 12-15 moved piece
//	bits 16-19 promotion piece (NoPiece when not a promotion)
//	bits 20-23 flags
type Move uint32

const (
	moveToShift    = 6
	movePieceShift = 12
	movePromoShift = 16
	moveFlagsShift = 20
)

// MoveFlags mark the special move kinds; capture is set alongside the
// en-passant flag for ep captures.
type MoveFlags uint8

const (
	FlagCapture MoveFlags = 1 << iota
	FlagDoublePush
	FlagEnPassant
	FlagCastle
)

// maxMoves is the move list capacity. 218 is the known maximum number of
// legal moves in any reachable position.
const maxMoves = 256

func newMove(from, to Square, piece, promo Piece, flags MoveFlags) Move {
	return Move(uint32(from) |
		uint32(to)<<moveToShift |
		uint32(piece)<<movePieceShift |
		uint32(promo)<<movePromoShift |
		uint32(flags)<<moveFlagsShift)
}

// From returns the source square.
func (m Move) From() Square { return Square(m & 0x3f) }

// To returns the target square.
func (m Move) To() Square { return Square(m >> moveToShift & 0x3f) }

// MovedPiece returns the piece being moved.
func (m Move) MovedPiece() Piece { return Piece(m >> movePieceShift & 0xf) }

// PromotionPiece returns the promotion piece, or NoPiece.
func (m Move) PromotionPiece() Piece { return Piece(m >> movePromoShift & 0xf) }

// Flags returns the special-move flag bits.
func (m Move) Flags() MoveFlags { return MoveFlags(m >> moveFlagsShift & 0xf) }

// IsCapture reports whether the move captures a piece (including en passant).
func (m Move) IsCapture() bool { return m.Flags()&FlagCapture != 0 }

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool { return m.PromotionPiece() != NoPiece }

// String returns the move in UCI coordinate notation, e.g. "e2e4" or
// "e7e8q" for promotions.
func (m Move) String() string {
	s := squareName(m.From()) + squareName(m.To())
	if p := m.PromotionPiece(); p != NoPiece {
		s += string(promoLetter(p.Type()))
	}
	return s
}

func promoLetter(pt PieceType) byte {
	switch pt {
	case Knight:
		return 'n'
	case Bishop:
		return 'b'
	case Rook:
		return 'r'
	case Queen:
		return 'q'
	}
	return '?'
}
