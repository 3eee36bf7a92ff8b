package bench

import (
	"testing"

	"chess-movegen/chessmg"
)

func benchGenerateMoves(b *testing.B, fen string) {
	board, err := chessmg.ParseFEN(fen)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	buf := make([]chessmg.Move, 0, 256)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf = board.GenerateMovesInto(buf[:0])
	}
	_ = buf
}

func BenchmarkGenerateMoves_Initial(b *testing.B) {
	benchGenerateMoves(b, chessmg.FENStartPos)
}

func BenchmarkGenerateMoves_Kiwipete(b *testing.B) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	benchGenerateMoves(b, fen)
}

func BenchmarkGenerateMoves_Pos6(b *testing.B) {
	fen := "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10"
	benchGenerateMoves(b, fen)
}

func BenchmarkMakeUnmake_AllMoves_Initial(b *testing.B) {
	board, err := chessmg.ParseFEN(chessmg.FENStartPos)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	moves := board.GenerateMoves()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, m := range moves {
			board.MakeMove(m)
			board.UnmakeMove()
		}
	}
}
