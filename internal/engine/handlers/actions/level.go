package actions

import (
	"fmt"

	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/domain"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/engine/handlers"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/systems"
)

// HandleNextLevel переходит на следующий уровень после расчистки.
// Новую кучу строит движок по событию REGENERATE_PILE.
func HandleNextLevel(ctx handlers.Context) (handlers.Result, error) {
	if err := systems.NextLevel(ctx.Rules, ctx.State); err != nil {
		return handlers.Result{}, err
	}
	return handlers.Result{
		Msg:     fmt.Sprintf("Level %d. Something rustles deeper in the pile...", ctx.State.Level),
		MsgType: domain.LogInfo,
		Event:   handlers.NewEvent(handlers.EventRegeneratePile),
	}, nil
}

// HandleRestart начинает партию заново. Разрешен в любом статусе.
func HandleRestart(ctx handlers.Context) (handlers.Result, error) {
	systems.Restart(ctx.Rules, ctx.State, ctx.BaseCreatureProbability)
	return handlers.Result{
		Msg:     "A fresh woodpile awaits.",
		MsgType: domain.LogInfo,
		Event:   handlers.NewEvent(handlers.EventRegeneratePile),
	}, nil
}
