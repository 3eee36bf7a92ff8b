package chessmg_test

import (
	"math/rand"
	"testing"

	"chess-movegen/chessmg"
)

var walkFENs = []string{
	chessmg.FENStartPos,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2pP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
}

// boardState captures everything UnmakeMove must restore bit for bit.
type boardState struct {
	fen      string
	hash     uint64
	ep       chessmg.Square
	rights   chessmg.CastlingRights
	halfmove int
	fullmove int
	side     chessmg.Color
	bitboard [12]uint64
}

func captureState(b *chessmg.Board) boardState {
	st := boardState{
		fen:      b.ToFEN(),
		hash:     b.Hash(),
		ep:       b.EnPassantSquare(),
		rights:   b.CastlingRightsMask(),
		halfmove: b.HalfmoveClock(),
		fullmove: b.FullmoveNumber(),
		side:     b.SideToMove(),
	}
	for p := chessmg.WhitePawn; p < chessmg.NoPiece; p++ {
		st.bitboard[p] = b.PieceBitboard(p)
	}
	return st
}

func TestRandomWalkInvariants(t *testing.T) {
	const walkDepth = 20
	const walksPerFEN = 25

	rnd := rand.New(rand.NewSource(1))
	for _, fen := range walkFENs {
		for walk := 0; walk < walksPerFEN; walk++ {
			b := mustParse(t, fen)
			var trail []boardState
			for step := 0; step < walkDepth; step++ {
				moves := b.GenerateMoves()
				if len(moves) == 0 {
					break
				}
				trail = append(trail, captureState(b))
				m := moves[rnd.Intn(len(moves))]
				b.MakeMove(m)

				if !b.Validate() {
					t.Fatalf("fen %q: position invalid after %s at step %d:\n%s",
						fen, m, step, b)
				}
				rehashed := mustParse(t, b.ToFEN())
				if rehashed.Hash() != b.Hash() {
					t.Fatalf("fen %q: hash after make %x differs from reparsed hash %x after %s",
						fen, b.Hash(), rehashed.Hash(), m)
				}
			}
			for i := len(trail) - 1; i >= 0; i-- {
				b.UnmakeMove()
				if got := captureState(b); got != trail[i] {
					t.Fatalf("fen %q: unmake at ply %d did not restore state:\ngot  %+v\nwant %+v",
						fen, i, got, trail[i])
				}
			}
			if b.Ply() != 0 {
				t.Fatalf("fen %q: ply %d after full unwind", fen, b.Ply())
			}
		}
	}
}

func TestNoMoveLeavesOwnKingInCheck(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	for _, fen := range walkFENs {
		b := mustParse(t, fen)
		for step := 0; step < 40; step++ {
			moves := b.GenerateMoves()
			if len(moves) == 0 {
				break
			}
			mover := b.SideToMove()
			for _, m := range moves {
				b.MakeMove(m)
				if b.IsAttacked(kingSquare(b, mover), b.SideToMove()) {
					t.Fatalf("fen %q: move %s leaves own king in check:\n%s", fen, m, b)
				}
				b.UnmakeMove()
			}
			b.MakeMove(moves[rnd.Intn(len(moves))])
		}
	}
}

func kingSquare(b *chessmg.Board, c chessmg.Color) chessmg.Square {
	king := chessmg.PieceFromType(c, chessmg.King)
	for sq := chessmg.Square(0); sq < 64; sq++ {
		if b.PieceAt(sq) == king {
			return sq
		}
	}
	return chessmg.NoSquare
}

func TestMoveListCapacityPosition(t *testing.T) {
	// The classic 218-move position stays within the fixed buffer.
	b := mustParse(t, "R6R/3Q4/1Q4Q1/4Q3/2Q4Q/Q4Q2/pp1Q4/kBNN1KB1 w - - 0 1")
	moves := b.GenerateMoves()
	if len(moves) != 218 {
		t.Fatalf("legal moves: got %d want 218", len(moves))
	}
	if len(moves) > 256 {
		t.Fatalf("move list overflows the fixed capacity: %d", len(moves))
	}
}
