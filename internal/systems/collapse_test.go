package systems

import (
	"reflect"
	"testing"

	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/domain"
)

func TestResolveCollapse_SimpleCascade(t *testing.T) {
	pile := domain.NewPile(testCell, testCell, testGroundY)
	b := place(pile, 0, 0, 40)
	a := place(pile, 1, 0, 40)
	ClassifyAll(testStability, pile)

	b.Removed = true
	got := ResolveCollapse(testStability, b, pile)

	if len(got) != 1 || got[0] != a {
		t.Fatalf("ResolveCollapse() = %v, want [%s]", ids(got), a.ID)
	}
}

func TestResolveCollapse_NoCascade(t *testing.T) {
	pile := domain.NewPile(testCell, testCell, testGroundY)
	place(pile, 0, 0, 0)
	place(pile, 0, 1, 80)
	place(pile, 0, 2, 160)
	x := place(pile, 1, 0, 40)
	place(pile, 1, 1, 120)
	ClassifyAll(testStability, pile)

	before := make(map[domain.PieceID]domain.RiskLevel)
	for _, p := range pile.Pieces {
		before[p.ID] = p.Risk
	}

	res := ApplyRemoval(testStability, x, pile)
	if res.Severity() != 0 {
		t.Fatalf("expected no collapse, got %v", ids(res.Collapsed))
	}
	for _, p := range pile.Live() {
		if p.Risk != before[p.ID] {
			t.Errorf("%s risk changed: %v -> %v", p.ID, before[p.ID], p.Risk)
		}
	}
}

func TestResolveCollapse_SingleLevel(t *testing.T) {
	pile := domain.NewPile(testCell, testCell, testGroundY)
	c := place(pile, 0, 0, 40)
	b := place(pile, 1, 0, 40)
	a := place(pile, 2, 0, 40)
	ClassifyAll(testStability, pile)

	res := ApplyRemoval(testStability, c, pile)

	if !reflect.DeepEqual(ids(res.Collapsed), []domain.PieceID{b.ID}) {
		t.Fatalf("Collapsed = %v, want [%s]", ids(res.Collapsed), b.ID)
	}
	// Верхнее полено не падает в этом же ходу, но становится HIGH.
	if a.Removed {
		t.Error("second-level piece must not fall within the same removal")
	}
	if a.Risk != domain.RiskHigh {
		t.Errorf("second-level piece risk = %v, want HIGH", a.Risk)
	}
}

func TestResolveCollapse_BrickEdge(t *testing.T) {
	pile := brickPile(4, 5)
	victim := pile.Get("p_1_0")

	res := ApplyRemoval(testStability, victim, pile)

	want := []domain.PieceID{"p_2_0"}
	if !reflect.DeepEqual(ids(res.Collapsed), want) {
		t.Errorf("Collapsed = %v, want %v", ids(res.Collapsed), want)
	}
	if got := pile.Get("p_2_1").Risk; got != domain.RiskMedium {
		t.Errorf("p_2_1 risk = %v, want MEDIUM", got)
	}
}

func TestResolveCollapse_Idempotent(t *testing.T) {
	base := brickPile(5, 5)

	for _, v := range base.Pieces {
		t.Run(v.ID.String(), func(t *testing.T) {
			pile := clonePile(base)
			victim := pile.Get(v.ID)
			victim.Removed = true

			first := ResolveCollapse(testStability, victim, pile)
			for _, p := range first {
				p.Removed = true
			}

			if second := ResolveCollapse(testStability, victim, pile); len(second) != 0 {
				t.Errorf("second resolve = %v, want empty", ids(second))
			}
		})
	}
}

func TestResolveCollapse_ForeignPiece(t *testing.T) {
	pile := brickPile(3, 3)
	stranger := &domain.Piece{ID: "p_0_0", Size: domain.Vec2{X: testSize, Y: testSize}}

	if got := ResolveCollapse(testStability, stranger, pile); len(got) != 0 {
		t.Errorf("expected empty result for a piece from another pile, got %v", ids(got))
	}
	if got := ResolveCollapse(testStability, nil, pile); got != nil {
		t.Errorf("expected nil for nil piece, got %v", ids(got))
	}

	res := ApplyRemoval(testStability, stranger, pile)
	if res.Severity() != 0 || stranger.Removed {
		t.Error("ApplyRemoval must ignore pieces that are not in the pile")
	}
}

func TestApplyRemoval_Twice(t *testing.T) {
	pile := brickPile(4, 5)
	victim := pile.Get("p_1_0")

	first := ApplyRemoval(testStability, victim, pile)
	live := pile.LiveCount()
	second := ApplyRemoval(testStability, victim, pile)

	if first.Severity() != 1 {
		t.Fatalf("first removal severity = %d, want 1", first.Severity())
	}
	if second.Severity() != 0 {
		t.Errorf("duplicate removal severity = %d, want 0", second.Severity())
	}
	if pile.LiveCount() != live {
		t.Errorf("duplicate removal changed live count: %d -> %d", live, pile.LiveCount())
	}
}
