package chessmg_test

import (
	"testing"

	"chess-movegen/chessmg"
)

func TestStatusQuietPosition(t *testing.T) {
	b := mustParse(t, "6k1/5ppp/8/8/8/8/5PPP/6K1 w - - 0 1")
	if b.IsCheckmate() {
		t.Fatal("quiet position reported as checkmate")
	}
	if b.IsStalemate() {
		t.Fatal("quiet position reported as stalemate")
	}
	if got := len(b.GenerateMoves()); got != 14 {
		dumpMoves(t, b)
		t.Fatalf("legal moves: got %d want 14", got)
	}
}

func TestStatusCheckmate(t *testing.T) {
	b := mustParse(t, "7k/6Q1/6K1/8/8/8/8/8 b - - 0 1")
	if !b.InCheck() {
		t.Fatal("mated side not reported in check")
	}
	if !b.IsCheckmate() {
		t.Fatal("checkmate not detected")
	}
	if b.IsStalemate() {
		t.Fatal("checkmate misreported as stalemate")
	}
	if got := len(b.GenerateMoves()); got != 0 {
		dumpMoves(t, b)
		t.Fatalf("mated side has %d moves, want 0", got)
	}
}

func TestStatusStalemate(t *testing.T) {
	b := mustParse(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if b.InCheck() {
		t.Fatal("stalemated side reported in check")
	}
	if !b.IsStalemate() {
		t.Fatal("stalemate not detected")
	}
	if b.IsCheckmate() {
		t.Fatal("stalemate misreported as checkmate")
	}
}

func TestStatusBackRankMateSequence(t *testing.T) {
	b := mustParse(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	m, err := b.ParseMove("a1a8")
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	b.MakeMove(m)
	if !b.IsCheckmate() {
		t.Fatalf("back-rank mate not detected after a1a8:\n%s", b)
	}
	b.UnmakeMove()
	if b.IsCheckmate() || b.InCheck() {
		t.Fatal("state not restored after unmake")
	}
}

func TestDoubleCheckOnlyKingMoves(t *testing.T) {
	// Knight on f6 and rook on e1 both check the king on e8.
	b := mustParse(t, "4k3/8/5N2/8/8/8/8/4R1K1 b - - 0 1")
	moves := b.GenerateMoves()
	if len(moves) == 0 {
		t.Fatal("double check position has no escape squares")
	}
	for _, m := range moves {
		if m.MovedPiece() != chessmg.BlackKing {
			t.Fatalf("non-king move %s generated under double check", m)
		}
	}
}
