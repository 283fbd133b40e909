package actions

import (
	"fmt"

	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/domain"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/engine/handlers"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/systems"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/pkg/api"
)

// HandlePick обрабатывает команду PICK - снятие полена из кучи
func HandlePick(ctx handlers.Context, p api.PiecePayload) (handlers.Result, error) {
	res, err := systems.PickPiece(ctx.Rules, ctx.Stability, ctx.State, ctx.Pile, domain.PieceID(p.PieceID), ctx.Now)
	if err != nil {
		return handlers.Result{}, err
	}

	// 1. Под поленом кто-то был
	if res.Encounter != nil {
		window := res.Encounter.Deadline.Sub(res.Encounter.StartedAt)
		return handlers.Result{
			Msg:     fmt.Sprintf("A %s hides under the log! React within %.1fs.", creatureName(res.Encounter.Creature), window.Seconds()),
			MsgType: domain.LogCreature,
		}, nil
	}

	// 2. Обычное снятие
	out := handlers.Result{
		Msg:       fmt.Sprintf("You take a %s log (+%d).", materialName(res.Piece.Material), res.ScoreGained),
		MsgType:   domain.LogInfo,
		Collapsed: res.Removal.Collapsed,
	}
	if res.HealthDelta < 0 {
		out.Msg += fmt.Sprintf(" Splinters! %d health.", res.HealthDelta)
	} else if res.HealthDelta > 0 {
		out.Msg += fmt.Sprintf(" The moss soothes you (+%d health).", res.HealthDelta)
	}

	// 3. Обвал
	if n := res.Removal.Severity(); n > 0 {
		out.Msg += fmt.Sprintf(" %d %s came crashing down (-%d health).", n, plural(n, "log", "logs"), res.CollapseDamage)
		out.MsgType = domain.LogCollapse
	}

	return out, nil
}

func creatureName(c domain.CreatureTag) string {
	return lower(c.String())
}

func materialName(m domain.MaterialTag) string {
	return lower(m.String())
}
