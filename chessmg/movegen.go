package chessmg

// IsAttacked reports whether any piece of color by attacks sq under the
// current full-board occupancy.
func (b *Board) IsAttacked(sq Square, by Color) bool {
	return b.isAttackedWithOcc(sq, by, b.AllOccupancy())
}

// isAttackedWithOcc is the attack query against an explicit occupancy,
// used by the king-move filter with the king lifted off the board.
func (b *Board) isAttackedWithOcc(sq Square, by Color, occ uint64) bool {
	base := Piece(uint8(by) * 6)
	// Project our-colored pawn attacks from sq to find enemy pawns that hit it.
	if pawnAttacks[by.Opposite()][sq]&b.pieceBB[base+Piece(Pawn)] != 0 {
		return true
	}
	if knightAttacks[sq]&b.pieceBB[base+Piece(Knight)] != 0 {
		return true
	}
	if kingAttacks[sq]&b.pieceBB[base+Piece(King)] != 0 {
		return true
	}
	queens := b.pieceBB[base+Piece(Queen)]
	if bishopAttacks(sq, occ)&(b.pieceBB[base+Piece(Bishop)]|queens) != 0 {
		return true
	}
	if rookAttacks(sq, occ)&(b.pieceBB[base+Piece(Rook)]|queens) != 0 {
		return true
	}
	return false
}

// analysis is the per-generation scratch state anchored on the moving
// side's king.
type analysis struct {
	// checkMask is every square a non-king mover may land on: all ones
	// when not in check, otherwise the checkers plus the squares between
	// a slider checker and the king.
	checkMask uint64
	// pinHV and pinD are unions of pin rays, pinner included, king excluded.
	pinHV uint64
	pinD  uint64
	// doubleCheck counts distinct checkers.
	doubleCheck int
}

// analyze builds the check mask, pin masks and checker count for color us.
func (b *Board) analyze(us Color) analysis {
	var a analysis
	them := us.Opposite()
	ks := b.kingSquare(us)
	occ := b.AllOccupancy()
	theirQueens := b.pieceBB[PieceFromType(them, Queen)]

	pawnCheckers := pawnAttacks[us][ks] & b.pieceBB[PieceFromType(them, Pawn)]
	knightCheckers := knightAttacks[ks] & b.pieceBB[PieceFromType(them, Knight)]
	bishopCheckers := bishopAttacks(ks, occ) & (b.pieceBB[PieceFromType(them, Bishop)] | theirQueens)
	rookCheckers := rookAttacks(ks, occ) & (b.pieceBB[PieceFromType(them, Rook)] | theirQueens)

	a.doubleCheck = popCount(pawnCheckers | knightCheckers | bishopCheckers | rookCheckers)
	a.checkMask = pawnCheckers | knightCheckers
	for sliders := bishopCheckers | rookCheckers; sliders != 0; {
		c := popLSB(&sliders)
		a.checkMask |= squaresBetween[ks][c] | bb(c)
	}
	if a.doubleCheck == 0 {
		a.checkMask = ^uint64(0)
	}

	// Pins: cast slider rays over enemy occupancy only, so the first enemy
	// slider on each line is seen even through our own pieces; the ray is a
	// pin when exactly one friendly piece stands on it.
	ourOcc := b.occupancy[us]
	theirOcc := b.occupancy[them]
	pinners := rookAttacks(ks, theirOcc) & (b.pieceBB[PieceFromType(them, Rook)] | theirQueens)
	for pinners != 0 {
		p := popLSB(&pinners)
		ray := squaresBetween[ks][p] | bb(p)
		if popCount(ray&ourOcc) == 1 {
			a.pinHV |= ray
		}
	}
	pinners = bishopAttacks(ks, theirOcc) & (b.pieceBB[PieceFromType(them, Bishop)] | theirQueens)
	for pinners != 0 {
		p := popLSB(&pinners)
		ray := squaresBetween[ks][p] | bb(p)
		if popCount(ray&ourOcc) == 1 {
			a.pinD |= ray
		}
	}
	return a
}

// ==========================
// Per-piece legal destination bitboards
// ==========================

func (b *Board) knightLegal(sq Square, us Color, a *analysis) uint64 {
	if (a.pinHV|a.pinD)&bb(sq) != 0 {
		return 0
	}
	return knightAttacks[sq] & ^b.occupancy[us] & a.checkMask
}

func (b *Board) bishopLegal(sq Square, us Color, a *analysis) uint64 {
	if a.pinHV&bb(sq) != 0 {
		return 0
	}
	att := bishopAttacks(sq, b.AllOccupancy()) & ^b.occupancy[us] & a.checkMask
	if a.pinD&bb(sq) != 0 {
		att &= a.pinD
	}
	return att
}

func (b *Board) rookLegal(sq Square, us Color, a *analysis) uint64 {
	if a.pinD&bb(sq) != 0 {
		return 0
	}
	att := rookAttacks(sq, b.AllOccupancy()) & ^b.occupancy[us] & a.checkMask
	if a.pinHV&bb(sq) != 0 {
		att &= a.pinHV
	}
	return att
}

func (b *Board) queenLegal(sq Square, us Color, a *analysis) uint64 {
	return b.bishopLegal(sq, us, a) | b.rookLegal(sq, us, a)
}

// pawnLegal returns the push and ordinary-capture targets for a single
// pawn; en passant is handled separately in the emission loop.
func (b *Board) pawnLegal(sq Square, us Color, a *analysis) uint64 {
	occ := b.AllOccupancy()
	empty := ^occ
	captures := pawnAttacks[us][sq] & b.occupancy[us.Opposite()]

	var pushes uint64
	if us == White {
		one := bb(sq) << 8 & empty
		pushes = one | one<<8&empty&rank4BB
	} else {
		one := bb(sq) >> 8 & empty
		pushes = one | one>>8&empty&rank5BB
	}

	switch {
	case a.pinD&bb(sq) != 0:
		return captures & a.pinD & a.checkMask
	case a.pinHV&bb(sq) != 0:
		return pushes & a.pinHV & a.checkMask
	default:
		return (captures | pushes) & a.checkMask
	}
}

// epCaptureLegal verifies an otherwise-plausible en-passant capture by
// applying it to a speculative occupancy (capturer and captured pawn
// lifted, capturer placed on the ep square) and testing whether the king
// is attacked. This covers the rank-discovery trap where an enemy rook
// sees the king once both pawns leave the rank, and also resolves pins
// and check evasion for the ep move in one test.
func (b *Board) epCaptureLegal(from Square, us Color) bool {
	them := us.Opposite()
	ep := b.enPassant
	capturedSq := ep - 8
	if us == Black {
		capturedSq = ep + 8
	}
	occ := b.AllOccupancy()&^bb(from)&^bb(capturedSq) | bb(ep)
	ks := b.kingSquare(us)
	base := Piece(uint8(them) * 6)

	if pawnAttacks[us][ks]&b.pieceBB[base+Piece(Pawn)]&^bb(capturedSq) != 0 {
		return false
	}
	if knightAttacks[ks]&b.pieceBB[base+Piece(Knight)] != 0 {
		return false
	}
	queens := b.pieceBB[base+Piece(Queen)]
	if bishopAttacks(ks, occ)&(b.pieceBB[base+Piece(Bishop)]|queens) != 0 {
		return false
	}
	if rookAttacks(ks, occ)&(b.pieceBB[base+Piece(Rook)]|queens) != 0 {
		return false
	}
	return true
}

// kingLegal filters the king's destinations by attack tests with the king
// removed from the occupancy, so a slider giving check keeps covering the
// squares behind the king.
func (b *Board) kingLegal(ks Square, us Color) uint64 {
	them := us.Opposite()
	occNoKing := b.AllOccupancy() &^ bb(ks)
	cand := kingAttacks[ks] & ^b.occupancy[us]
	legal := uint64(0)
	for m := cand; m != 0; {
		to := popLSB(&m)
		if !b.isAttackedWithOcc(to, them, occNoKing) {
			legal |= bb(to)
		}
	}
	return legal
}

// Castling square constants, White then Black.
const (
	sqA1 Square = 0
	sqB1 Square = 1
	sqC1 Square = 2
	sqD1 Square = 3
	sqE1 Square = 4
	sqF1 Square = 5
	sqG1 Square = 6
	sqH1 Square = 7
	sqA8 Square = 56
	sqB8 Square = 57
	sqC8 Square = 58
	sqD8 Square = 59
	sqE8 Square = 60
	sqF8 Square = 61
	sqG8 Square = 62
	sqH8 Square = 63
)

// castleTargets returns the king destinations available by castling.
// Requires the side not to be in check; the rook must still be home, the
// path empty, and the two squares the king crosses unattacked.
func (b *Board) castleTargets(us Color, inCheck bool) uint64 {
	if inCheck {
		return 0
	}
	occ := b.AllOccupancy()
	them := us.Opposite()
	targets := uint64(0)
	if us == White {
		rooks := b.pieceBB[WhiteRook]
		if b.castlingRights&CastlingWhiteK != 0 && rooks&bb(sqH1) != 0 &&
			occ&(bb(sqF1)|bb(sqG1)) == 0 &&
			!b.IsAttacked(sqF1, them) && !b.IsAttacked(sqG1, them) {
			targets |= bb(sqG1)
		}
		if b.castlingRights&CastlingWhiteQ != 0 && rooks&bb(sqA1) != 0 &&
			occ&(bb(sqB1)|bb(sqC1)|bb(sqD1)) == 0 &&
			!b.IsAttacked(sqD1, them) && !b.IsAttacked(sqC1, them) {
			targets |= bb(sqC1)
		}
		return targets
	}
	rooks := b.pieceBB[BlackRook]
	if b.castlingRights&CastlingBlackK != 0 && rooks&bb(sqH8) != 0 &&
		occ&(bb(sqF8)|bb(sqG8)) == 0 &&
		!b.IsAttacked(sqF8, them) && !b.IsAttacked(sqG8, them) {
		targets |= bb(sqG8)
	}
	if b.castlingRights&CastlingBlackQ != 0 && rooks&bb(sqA8) != 0 &&
		occ&(bb(sqB8)|bb(sqC8)|bb(sqD8)) == 0 &&
		!b.IsAttacked(sqD8, them) && !b.IsAttacked(sqC8, them) {
		targets |= bb(sqC8)
	}
	return targets
}

// ==========================
// Move list building
// ==========================

// GenerateMoves returns all legal moves for the side to move.
func (b *Board) GenerateMoves() []Move {
	return b.GenerateMovesInto(make([]Move, 0, maxMoves))
}

// GenerateMovesInto appends all legal moves for the side to move to dst
// and returns the extended slice. Callers can reuse a buffer across calls
// to avoid allocation in perft-style loops.
func (b *Board) GenerateMovesInto(dst []Move) []Move {
	us := b.sideToMove
	a := b.analyze(us)

	if a.doubleCheck < 2 {
		dst = b.emitPawnMoves(dst, us, &a)
		piece := PieceFromType(us, Knight)
		for pieces := b.pieceBB[piece]; pieces != 0; {
			from := popLSB(&pieces)
			dst = b.emitFromBitboard(dst, from, piece, b.knightLegal(from, us, &a))
		}
		piece = PieceFromType(us, Bishop)
		for pieces := b.pieceBB[piece]; pieces != 0; {
			from := popLSB(&pieces)
			dst = b.emitFromBitboard(dst, from, piece, b.bishopLegal(from, us, &a))
		}
		piece = PieceFromType(us, Rook)
		for pieces := b.pieceBB[piece]; pieces != 0; {
			from := popLSB(&pieces)
			dst = b.emitFromBitboard(dst, from, piece, b.rookLegal(from, us, &a))
		}
		piece = PieceFromType(us, Queen)
		for pieces := b.pieceBB[piece]; pieces != 0; {
			from := popLSB(&pieces)
			dst = b.emitFromBitboard(dst, from, piece, b.queenLegal(from, us, &a))
		}
	}

	king := PieceFromType(us, King)
	ks := b.kingSquare(us)
	dst = b.emitFromBitboard(dst, ks, king, b.kingLegal(ks, us))
	for targets := b.castleTargets(us, a.doubleCheck > 0); targets != 0; {
		to := popLSB(&targets)
		dst = append(dst, newMove(ks, to, king, NoPiece, FlagCastle))
	}
	return dst
}

// emitFromBitboard appends one move per set bit in targets, marking
// captures from the mailbox.
func (b *Board) emitFromBitboard(dst []Move, from Square, piece Piece, targets uint64) []Move {
	for targets != 0 {
		to := popLSB(&targets)
		var flags MoveFlags
		if b.pieces[to] != NoPiece {
			flags = FlagCapture
		}
		dst = append(dst, newMove(from, to, piece, NoPiece, flags))
	}
	return dst
}

// emitPawnMoves expands pawn destinations into moves: four promotions on
// the back rank, the double-push flag on two-square advances, and the
// en-passant capture after the speculative legality test.
func (b *Board) emitPawnMoves(dst []Move, us Color, a *analysis) []Move {
	piece := PieceFromType(us, Pawn)
	promoRank := rank8BB
	if us == Black {
		promoRank = rank1BB
	}
	for pawns := b.pieceBB[piece]; pawns != 0; {
		from := popLSB(&pawns)
		for targets := b.pawnLegal(from, us, a); targets != 0; {
			to := popLSB(&targets)
			var flags MoveFlags
			if b.pieces[to] != NoPiece {
				flags = FlagCapture
			} else if to-from == 16 || from-to == 16 {
				flags = FlagDoublePush
			}
			if bb(to)&promoRank != 0 {
				for _, pt := range [4]PieceType{Queen, Rook, Bishop, Knight} {
					dst = append(dst, newMove(from, to, piece, PieceFromType(us, pt), flags))
				}
			} else {
				dst = append(dst, newMove(from, to, piece, NoPiece, flags))
			}
		}
		if b.enPassant != NoSquare && pawnAttacks[us][from]&bb(b.enPassant) != 0 &&
			b.epCaptureLegal(from, us) {
			dst = append(dst, newMove(from, b.enPassant, piece, NoPiece, FlagCapture|FlagEnPassant))
		}
	}
	return dst
}
