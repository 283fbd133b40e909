package domain

import "testing"

func TestPieceID_RowCol(t *testing.T) {
	id := MakePieceID(3, 7)
	if id != "p_3_7" {
		t.Fatalf("MakePieceID = %q", id)
	}
	row, col, ok := id.RowCol()
	if !ok || row != 3 || col != 7 {
		t.Errorf("RowCol() = %d,%d,%v", row, col, ok)
	}
	if _, _, ok := PieceID("garbage").RowCol(); ok {
		t.Error("expected parse failure for garbage id")
	}
}

func TestPiece_Geometry(t *testing.T) {
	p := &Piece{Pos: Vec2{X: 10, Y: 20}, Size: Vec2{X: 40, Y: 30}}

	if c := p.Center(); c.X != 30 || c.Y != 35 {
		t.Errorf("Center() = %+v", c)
	}
	if r := p.Radius(); r != 15 {
		t.Errorf("Radius() = %v, want 15 (min side / 2)", r)
	}
	if b := p.Bottom(); b != 50 {
		t.Errorf("Bottom() = %v", b)
	}
}

func TestPile_LookupAndLive(t *testing.T) {
	pile := NewPile(10, 10, 100)
	a := &Piece{ID: MakePieceID(0, 0), Row: 0, Col: 0}
	b := &Piece{ID: MakePieceID(0, 1), Row: 0, Col: 1}
	c := &Piece{ID: MakePieceID(1, 0), Row: 1}
	pile.Add(a)
	pile.Add(b)
	pile.Add(c)

	if pile.Get(b.ID) != b {
		t.Error("Get returned wrong piece")
	}
	if pile.Get("p_9_9") != nil {
		t.Error("Get of unknown id must be nil")
	}
	if pile.Contains(&Piece{ID: a.ID}) {
		t.Error("Contains must compare identity, not only id")
	}

	b.Removed = true
	if pile.LiveCount() != 2 || pile.Len() != 3 {
		t.Errorf("LiveCount=%d Len=%d", pile.LiveCount(), pile.Len())
	}
	live := pile.Live()
	if len(live) != 2 || live[0] != a || live[1] != c {
		t.Error("Live() must keep pile order and skip removed pieces")
	}
	if pile.Rows != 2 || pile.Cols != 2 {
		t.Errorf("Rows=%d Cols=%d", pile.Rows, pile.Cols)
	}
}

func TestPile_LiteralGrowsAfterLookup(t *testing.T) {
	a := &Piece{ID: MakePieceID(0, 0)}
	pile := &Pile{Pieces: []*Piece{a}}
	if !pile.Contains(a) {
		t.Fatal("literal pile must find its pieces")
	}
	if pile.index != nil {
		t.Error("lookup must not mutate the pile")
	}

	b := &Piece{ID: MakePieceID(0, 1), Col: 1}
	pile.Pieces = append(pile.Pieces, b)
	if !pile.Contains(b) {
		t.Error("piece appended to Pieces after lookup must be found")
	}
}

func TestPile_Nil(t *testing.T) {
	var pile *Pile
	if pile.LiveCount() != 0 || pile.Len() != 0 || pile.Get("x") != nil || pile.Live() != nil {
		t.Error("nil pile must behave as empty")
	}
}
