package engine

import (
	"testing"
	"time"

	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Init(t *testing.T) {
	s := newTestSession(testConfig(0), 42, &fakeClock{now: t0})

	resp := s.Handle(cmd(domain.ActionInit, ""))

	assert.Equal(t, domain.ResponseUpdate, resp.Type)
	require.NotNil(t, resp.Pile)
	assert.Len(t, resp.Pile.Pieces, 60)
	assert.Equal(t, "PLAYING", resp.Game.Status)
	assert.Equal(t, 100, resp.Game.Health)
	require.Len(t, resp.Logs, 1)
	assert.Equal(t, domain.LogInfo, resp.Logs[0].Type)

	// INIT в реплей не пишется
	assert.Empty(t, s.Replay.Actions)
	assert.Zero(t, resp.Tick)
}

func TestSession_PickAndCollapse(t *testing.T) {
	s := newTestSession(testConfig(0), 7, &fakeClock{now: t0})
	for _, p := range s.Pile.Pieces {
		p.Material = domain.MaterialOrdinary
	}

	// Край нечетного ряда держит край четного ряда над ним в одиночку.
	resp := s.Handle(cmd(domain.ActionPick, `{"pieceId":"p_1_0"}`))

	assert.Equal(t, domain.ResponseUpdate, resp.Type)
	assert.Equal(t, []string{"p_2_0"}, resp.Collapsed)
	assert.Equal(t, 10, resp.Game.Score)
	assert.Equal(t, 90, resp.Game.Health)
	assert.Equal(t, 1, resp.Tick)
	require.Len(t, s.Replay.Actions, 1)
	assert.Equal(t, domain.ActionPick, s.Replay.Actions[0].Action)

	sum := s.Summary()
	assert.Equal(t, 58, sum.LiveCount)
	assert.Equal(t, 10, sum.Score)
}

func TestSession_HoverIsReadOnly(t *testing.T) {
	s := newTestSession(testConfig(0), 7, &fakeClock{now: t0})

	resp := s.Handle(cmd(domain.ActionHover, `{"pieceId":"p_1_0"}`))

	assert.Equal(t, domain.ResponsePrediction, resp.Type)
	assert.Equal(t, "p_1_0", resp.Hovered)
	assert.Nil(t, resp.Pile)
	require.NotEmpty(t, resp.Affected)
	assert.Equal(t, "p_2_0", resp.Affected[0].ID)
	assert.Equal(t, "WILL_COLLAPSE", resp.Affected[0].Tag)

	assert.Equal(t, 60, s.Pile.LiveCount())
	assert.Empty(t, s.Replay.Actions)
}

func TestSession_Errors(t *testing.T) {
	s := newTestSession(testConfig(0), 7, &fakeClock{now: t0})

	tests := []struct {
		name string
		cmd  domain.InternalCommand
	}{
		{"Unknown piece", cmd(domain.ActionPick, `{"pieceId":"p_40_40"}`)},
		{"Bad payload", cmd(domain.ActionPick, `{"pieceId":""}`)},
		{"React without creature", cmd(domain.ActionReact, "")},
		{"Next level too early", cmd(domain.ActionNextLevel, "")},
		{"Unregistered action", cmd(domain.ActionLogin, "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := s.Handle(tt.cmd)
			assert.Equal(t, domain.ResponseError, resp.Type)
			require.Len(t, resp.Logs, 1)
			assert.Equal(t, domain.LogError, resp.Logs[0].Type)
		})
	}
	assert.Empty(t, s.Replay.Actions)
}

func TestSession_EncounterVisibility(t *testing.T) {
	clock := &fakeClock{now: t0}
	s := newTestSession(testConfig(1), 7, clock)

	init := s.Handle(cmd(domain.ActionInit, ""))
	for _, p := range init.Pile.Pieces {
		assert.Empty(t, p.Creature, "creature of %s leaked before encounter", p.ID)
	}

	resp := s.Handle(cmd(domain.ActionPick, `{"pieceId":"p_6_0"}`))
	require.NotNil(t, resp.Encounter)
	assert.Equal(t, "p_6_0", resp.Encounter.PieceID)
	assert.Equal(t, "ENCOUNTER", resp.Game.Status)

	revealed := 0
	for _, p := range resp.Pile.Pieces {
		if p.Creature != "" {
			revealed++
			assert.Equal(t, "p_6_0", p.ID)
		}
	}
	assert.Equal(t, 1, revealed)
}

func TestSession_LateReactRecordedAsExpire(t *testing.T) {
	clock := &fakeClock{now: t0}
	s := newTestSession(testConfig(1), 11, clock)

	s.Handle(cmd(domain.ActionPick, `{"pieceId":"p_6_0"}`))
	clock.Advance(time.Minute)
	resp := s.Handle(cmd(domain.ActionReact, ""))

	require.Len(t, resp.Logs, 1)
	assert.Equal(t, domain.LogBite, resp.Logs[0].Type)
	require.Len(t, s.Replay.Actions, 2)
	assert.Equal(t, domain.ActionExpire, s.Replay.Actions[1].Action)
}

func TestSession_LevelFlow(t *testing.T) {
	cfg := testConfig(0)
	cfg.Pile.BoundingHeight = 130 // один ряд из 9 поленьев на земле
	s := newTestSession(cfg, 3, &fakeClock{now: t0})
	require.Equal(t, 9, s.Pile.Len())

	for _, p := range s.Pile.Pieces {
		p.Material = domain.MaterialOrdinary
	}
	last := s.Handle(cmd(domain.ActionInit, ""))
	for _, p := range s.Pile.Pieces {
		last = s.Handle(cmd(domain.ActionPick, `{"pieceId":"`+p.ID.String()+`"}`))
	}
	assert.Equal(t, "LEVEL_CLEARED", last.Game.Status)
	assert.Equal(t, domain.LogCleared, last.Logs[len(last.Logs)-1].Type)

	next := s.Handle(cmd(domain.ActionNextLevel, ""))
	assert.Equal(t, "PLAYING", next.Game.Status)
	assert.Equal(t, 2, next.Game.Level)
	assert.Equal(t, 9, s.Pile.LiveCount(), "a fresh pile is generated")
	assert.InDelta(t, 0.05, s.State.CreatureProbability, 1e-9)

	restart := s.Handle(cmd(domain.ActionRestart, ""))
	assert.Equal(t, 1, restart.Game.Level)
	assert.Zero(t, restart.Game.Score)
}

func TestSession_GameOverHook(t *testing.T) {
	s := newTestSession(testConfig(0), 5, &fakeClock{now: t0})
	s.State.Health = 1
	s.Pile.Get("p_1_0").Material = domain.MaterialOrdinary

	calls := 0
	s.onGameOver = func(*Session) { calls++ }

	resp := s.Handle(cmd(domain.ActionPick, `{"pieceId":"p_1_0"}`))
	assert.Equal(t, "GAME_OVER", resp.Game.Status)
	assert.Equal(t, 1, calls)
	assert.True(t, s.scored)

	// После проигрыша брать нельзя, хук больше не зовется
	again := s.Handle(cmd(domain.ActionPick, `{"pieceId":"p_0_0"}`))
	assert.Equal(t, domain.ResponseError, again.Type)
	assert.Equal(t, 1, calls)

	s.Handle(cmd(domain.ActionRestart, ""))
	assert.False(t, s.scored)
}
