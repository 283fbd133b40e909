package actions

import (
	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/domain"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/engine/handlers"
)

// HandleInit ничего не меняет: клиент просто получает полный снимок партии.
func HandleInit(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Result{
		Msg:     "Welcome to the woodpile. Pick the logs without bringing the stack down.",
		MsgType: domain.LogInfo,
	}, nil
}
