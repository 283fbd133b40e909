package systems

import (
	"testing"
	"time"

	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 12, 4, 12, 0, 0, 0, time.UTC)

// twoStack - одно полено на другом. Снятие нижнего обрушивает верхнее.
func twoStack(material domain.MaterialTag) (*domain.Pile, *domain.Piece, *domain.Piece) {
	pile := domain.NewPile(testCell, testCell, testGroundY)
	bottom := place(pile, 0, 0, 40)
	top := place(pile, 1, 0, 40)
	bottom.Material = material
	ClassifyAll(testStability, pile)
	return pile, bottom, top
}

func TestPickPiece_Materials(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name       string
		material   domain.MaterialTag
		wantScore  int
		wantHealth int
	}{
		{"Ordinary", domain.MaterialOrdinary, 10, 90},
		{"Golden ignores collapse damage", domain.MaterialGolden, 30, 100},
		{"Thorny hurts twice", domain.MaterialThorny, 15, 75},
		{"Brittle doubles collapse damage", domain.MaterialBrittle, 10, 80},
		{"Mossy heals", domain.MaterialMossy, 5, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pile, bottom, top := twoStack(tt.material)
			state := NewGameState(rules, 0)

			res, err := PickPiece(rules, testStability, state, pile, bottom.ID, t0)
			require.NoError(t, err)

			assert.True(t, bottom.Removed)
			assert.True(t, top.Removed)
			assert.Equal(t, 1, res.Removal.Severity())
			assert.Equal(t, tt.wantScore, state.Score)
			assert.Equal(t, tt.wantHealth, state.Health)
			assert.Equal(t, 1, state.Picks)
			assert.Equal(t, 1, state.Collapses)
			assert.Equal(t, domain.StatusLevelCleared, state.Status)
		})
	}
}

func TestPickPiece_Errors(t *testing.T) {
	rules := DefaultRules()
	pile, bottom, _ := twoStack(domain.MaterialOrdinary)
	state := NewGameState(rules, 0)

	_, err := PickPiece(rules, testStability, state, pile, "p_9_9", t0)
	assert.ErrorIs(t, err, domain.ErrPieceNotFound)

	bottom.Removed = true
	_, err = PickPiece(rules, testStability, state, pile, bottom.ID, t0)
	assert.ErrorIs(t, err, domain.ErrPieceNotFound)

	state.Status = domain.StatusGameOver
	_, err = PickPiece(rules, testStability, state, pile, "p_1_0", t0)
	assert.ErrorIs(t, err, domain.ErrGameNotActive)

	assert.Zero(t, state.Picks)
}

func TestPickPiece_GameOver(t *testing.T) {
	rules := DefaultRules()
	pile := brickPile(4, 5)
	state := NewGameState(rules, 0)
	state.Health = 5

	_, err := PickPiece(rules, testStability, state, pile, "p_1_0", t0)
	require.NoError(t, err)

	assert.Equal(t, 0, state.Health)
	assert.Equal(t, domain.StatusGameOver, state.Status)
	assert.True(t, state.IsOver())
}

func TestEncounter_Flow(t *testing.T) {
	rules := DefaultRules()

	t.Run("Shoo in time", func(t *testing.T) {
		pile, bottom, _ := twoStack(domain.MaterialOrdinary)
		bottom.Creature = domain.CreatureSpider
		state := NewGameState(rules, 0)

		res, err := PickPiece(rules, testStability, state, pile, bottom.ID, t0)
		require.NoError(t, err)
		require.NotNil(t, res.Encounter)
		assert.False(t, bottom.Removed, "piece with a creature stays in the pile")
		assert.Equal(t, domain.StatusEncounter, state.Status)
		assert.Equal(t, t0.Add(2*time.Second), res.Encounter.Deadline)

		_, err = PickPiece(rules, testStability, state, pile, bottom.ID, t0)
		assert.ErrorIs(t, err, domain.ErrEncounterActive)

		out, err := React(state, pile, t0.Add(time.Second))
		require.NoError(t, err)
		assert.False(t, out.Bitten)
		assert.Equal(t, 15, out.Bonus)
		assert.Equal(t, 15, state.Score)
		assert.Equal(t, domain.CreatureNone, bottom.Creature)
		assert.Equal(t, domain.StatusPlaying, state.Status)
		assert.Nil(t, state.Encounter)
	})

	t.Run("Late reaction bites", func(t *testing.T) {
		pile, bottom, _ := twoStack(domain.MaterialOrdinary)
		bottom.Creature = domain.CreatureSnake
		state := NewGameState(rules, 0)

		_, err := PickPiece(rules, testStability, state, pile, bottom.ID, t0)
		require.NoError(t, err)

		out, err := React(state, pile, t0.Add(5*time.Second))
		require.NoError(t, err)
		assert.True(t, out.Bitten)
		assert.Equal(t, 25, out.Damage)
		assert.Equal(t, 75, state.Health)
		assert.Zero(t, state.Score)
	})

	t.Run("Expiry can end the game", func(t *testing.T) {
		pile, bottom, _ := twoStack(domain.MaterialOrdinary)
		bottom.Creature = domain.CreatureScorpion
		state := NewGameState(rules, 0)
		state.Health = 20

		_, err := PickPiece(rules, testStability, state, pile, bottom.ID, t0)
		require.NoError(t, err)

		out, err := ExpireEncounter(state, pile)
		require.NoError(t, err)
		assert.True(t, out.Bitten)
		assert.Equal(t, domain.StatusGameOver, state.Status)
	})

	t.Run("Nothing to react to", func(t *testing.T) {
		pile, _, _ := twoStack(domain.MaterialOrdinary)
		state := NewGameState(rules, 0)

		_, err := React(state, pile, t0)
		assert.ErrorIs(t, err, domain.ErrNoEncounter)
		_, err = ExpireEncounter(state, pile)
		assert.ErrorIs(t, err, domain.ErrNoEncounter)
	})
}

func TestReactionWindow(t *testing.T) {
	rules := DefaultRules()

	assert.Equal(t, 2*time.Second, ReactionWindow(rules, domain.CreatureSpider, 1))
	assert.Equal(t, 2*time.Second, ReactionWindow(rules, domain.CreatureSpider, 0))
	assert.InDelta(t, float64(1800*time.Millisecond), float64(ReactionWindow(rules, domain.CreatureSpider, 2)), float64(time.Microsecond))
	assert.Equal(t, rules.MinReactionWindow, ReactionWindow(rules, domain.CreatureSnake, 50))
}

func TestNextLevelAndRestart(t *testing.T) {
	rules := DefaultRules()
	state := NewGameState(rules, 0.48)

	assert.ErrorIs(t, NextLevel(rules, state), domain.ErrLevelNotCleared)

	state.Status = domain.StatusLevelCleared
	require.NoError(t, NextLevel(rules, state))
	assert.Equal(t, 2, state.Level)
	assert.Equal(t, rules.MaxCreatureProbability, state.CreatureProbability)
	assert.Equal(t, domain.StatusPlaying, state.Status)

	state.Score = 500
	Restart(rules, state, 0.1)
	assert.Equal(t, 1, state.Level)
	assert.Zero(t, state.Score)
	assert.Equal(t, rules.StartingHealth, state.Health)
	assert.Equal(t, 0.1, state.CreatureProbability)
}
