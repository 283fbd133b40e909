package engine

import (
	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/domain"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/pkg/api"
)

// BuildState создает полный "снимок" партии для клиента и забирает накопленные логи.
func (s *Session) BuildState(respType string) *api.ServerResponse {
	state := s.State
	resp := &api.ServerResponse{
		Type:      respType,
		SessionID: s.ID,
		Tick:      s.Tick,
		Game: &api.GameView{
			Health:    state.Health,
			MaxHealth: state.MaxHealth,
			Score:     state.Score,
			Level:     state.Level,
			Picks:     state.Picks,
			Collapses: state.Collapses,
			Status:    string(state.Status),
			Player:    s.Name,
			Seed:      s.Seed,
		},
		Pile: s.buildPileView(),
		Logs: s.drainLogs(),
	}

	if enc := state.Encounter; enc != nil {
		resp.Encounter = &api.EncounterView{
			PieceID:     enc.PieceID.String(),
			Creature:    enc.Creature.String(),
			RemainingMs: enc.Remaining(s.clock()).Milliseconds(),
			BiteDamage:  enc.Creature.Traits().BiteDamage,
			Deadline:    enc.Deadline.UnixMilli(),
		}
	}
	return resp
}

// BuildPrediction - легкий ответ на HOVER: без кучи, только подсветка.
func (s *Session) BuildPrediction(hovered *domain.Piece, affected []domain.AffectedPiece) *api.ServerResponse {
	resp := &api.ServerResponse{
		Type:      domain.ResponsePrediction,
		SessionID: s.ID,
		Tick:      s.Tick,
		Affected:  make([]api.AffectedView, 0, len(affected)),
	}
	if hovered != nil {
		resp.Hovered = hovered.ID.String()
	}
	for _, a := range affected {
		resp.Affected = append(resp.Affected, api.AffectedView{ID: a.Piece.ID.String(), Tag: a.Tag.String()})
	}
	return resp
}

// BuildError отдает клиенту только накопленные логи (в них и есть ошибка).
func (s *Session) BuildError() *api.ServerResponse {
	return &api.ServerResponse{
		Type:      domain.ResponseError,
		SessionID: s.ID,
		Tick:      s.Tick,
		Logs:      s.drainLogs(),
	}
}

func (s *Session) buildPileView() *api.PileView {
	pile := s.Pile
	view := &api.PileView{
		Width:   s.cfg.Pile.BoundingWidth,
		Height:  s.cfg.Pile.BoundingHeight,
		CellW:   pile.CellW,
		CellH:   pile.CellH,
		GroundY: pile.GroundY,
		Pieces:  make([]api.PieceView, 0, pile.Len()),
	}

	var revealed domain.PieceID
	if s.State.Encounter != nil {
		revealed = s.State.Encounter.PieceID
	}

	for _, p := range pile.Pieces {
		pv := api.PieceView{
			ID:       p.ID.String(),
			Row:      p.Row,
			Col:      p.Col,
			X:        p.Pos.X,
			Y:        p.Pos.Y,
			W:        p.Size.X,
			H:        p.Size.Y,
			Removed:  p.Removed,
			Material: p.Material.String(),
			Risk:     p.Risk.String(),
		}
		// Существо видно только во время встречи
		if p.ID == revealed && p.HasCreature() {
			pv.Creature = p.Creature.String()
		}
		view.Pieces = append(view.Pieces, pv)
	}
	return view
}
