package actions

import (
	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/domain"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/engine/handlers"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/systems"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/pkg/api"
)

// HandleHover считает подсветку для полена под курсором. Состояние не меняет.
func HandleHover(ctx handlers.Context, p api.PiecePayload) (handlers.Result, error) {
	piece := ctx.Pile.Get(domain.PieceID(p.PieceID))
	if piece == nil || piece.Removed {
		return handlers.Result{}, domain.ErrPieceNotFound
	}

	return handlers.Result{
		Hovered:  piece,
		Affected: systems.Predict(ctx.Stability, piece, ctx.Pile),
	}, nil
}
