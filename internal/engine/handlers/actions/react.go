package actions

import (
	"fmt"

	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/domain"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/engine/handlers"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/systems"
)

// HandleReact - игрок пытается спугнуть существо.
func HandleReact(ctx handlers.Context) (handlers.Result, error) {
	res, err := systems.React(ctx.State, ctx.Pile, ctx.Now)
	if err != nil {
		return handlers.Result{}, err
	}

	if res.Bitten {
		out := biteResult(res)
		// В реплее время не воспроизводится, поэтому пишем исход, а не попытку.
		out.RecordAs = domain.ActionExpire
		return out, nil
	}

	return handlers.Result{
		Msg:     fmt.Sprintf("You shoo the %s away (+%d).", creatureName(res.Creature), res.Bonus),
		MsgType: domain.LogCreature,
	}, nil
}

// HandleExpire - таймер встречи истек. Приходит только от движка.
func HandleExpire(ctx handlers.Context) (handlers.Result, error) {
	res, err := systems.ExpireEncounter(ctx.State, ctx.Pile)
	if err != nil {
		return handlers.Result{}, err
	}
	return biteResult(res), nil
}

func biteResult(res systems.EncounterResult) handlers.Result {
	return handlers.Result{
		Msg:     fmt.Sprintf("Too slow! The %s bites you (-%d health).", creatureName(res.Creature), res.Damage),
		MsgType: domain.LogBite,
	}
}
