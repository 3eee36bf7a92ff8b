package chessmg

import "math/rand"

// Zobrist tables: 781 fixed 64-bit constants drawn once from a seeded
// generator. 768 piece-square keys, 4 base castling keys folded into a
// per-rights-mask table of 16, 8 en-passant file keys, 1 side key.
var (
	zobristPiece    [12][64]uint64
	zobristCastling [16]uint64
	zobristEPFile   [8]uint64
	zobristSide     uint64
)

func initZobrist() {
	// Fixed seed so hashes are reproducible across runs
	rnd := rand.New(rand.NewSource(0x70D0))

	for p := 0; p < 12; p++ {
		for sq := 0; sq < 64; sq++ {
			zobristPiece[p][sq] = rnd.Uint64()
		}
	}

	var base [4]uint64
	for i := range base {
		base[i] = rnd.Uint64()
	}
	// Fold the four per-right keys into one key per rights mask so the
	// hash update is a single XOR keyed on the mask.
	for mask := 0; mask < 16; mask++ {
		for i := 0; i < 4; i++ {
			if mask&(1<<i) != 0 {
				zobristCastling[mask] ^= base[i]
			}
		}
	}

	for f := 0; f < 8; f++ {
		zobristEPFile[f] = rnd.Uint64()
	}

	zobristSide = rnd.Uint64()
}

// computeHash calculates the hash for the current board state from scratch.
// The en-passant file contributes only when a pawn of the side to move can
// actually capture on the ep square; an unusable ep square would otherwise
// make transposed positions hash differently.
func (b *Board) computeHash() uint64 {
	var key uint64

	for sq := Square(0); sq < 64; sq++ {
		if p := b.pieces[sq]; p != NoPiece {
			key ^= zobristPiece[p][sq]
		}
	}

	if b.enPassant != NoSquare {
		capturers := pawnAttacks[b.sideToMove.Opposite()][b.enPassant] &
			b.pieceBB[PieceFromType(b.sideToMove, Pawn)]
		if capturers != 0 {
			key ^= zobristEPFile[b.enPassant.File()]
		}
	}

	key ^= zobristCastling[b.castlingRights]

	if b.sideToMove == White {
		key ^= zobristSide
	}

	return key
}
