package systems

import (
	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/domain"
)

// Predict оценивает, что случится, если снять hovered. Кучу не меняет.
//
// Первый проход: каждое живое полено, которое держит hovered. Оставшиеся
// опоры без hovered: 0 -> WILL_COLLAPSE, 1 -> HIGH_RISK, 2 -> MEDIUM_RISK,
// больше -> LOW_RISK (опор все равно стало меньше).
//
// Второй проход (ровно один дополнительный уровень): поленья, которые держат
// упавшие в первом проходе. Опоры считаются без hovered и без всех упавших:
// 0 -> WILL_COLLAPSE, 1 -> HIGH_RISK, остальные не показываются.
// Глубже не смотрим: сколько игрок видит наперед - решение геймдизайна.
//
// Порядок: сначала первый проход, затем второй, оба в порядке кучи.
// Вызывается на каждое движение курсора, поэтому без логирования.
func Predict(cfg StabilityConfig, hovered *domain.Piece, pile *domain.Pile) []domain.AffectedPiece {
	if hovered == nil || hovered.Removed || !pile.Contains(hovered) {
		return nil
	}

	var affected []domain.AffectedPiece
	tagged := map[domain.PieceID]bool{hovered.ID: true}
	excluded := []domain.PieceID{hovered.ID}

	// 1. Прямые зависимые
	for _, p := range pile.Pieces {
		if p.Removed || tagged[p.ID] || p.IsGround() {
			continue
		}
		if !Supports(cfg, hovered, p) {
			continue
		}

		tag := firstOrderTag(CountSupports(cfg, p, pile, hovered.ID))
		affected = append(affected, domain.AffectedPiece{Piece: p, Tag: tag})
		tagged[p.ID] = true
		if tag == domain.PredictWillCollapse {
			excluded = append(excluded, p.ID)
		}
	}

	falling := excluded[1:]
	if len(falling) == 0 {
		return affected
	}

	// 2. Те, кого держат падающие
	for _, p := range pile.Pieces {
		if p.Removed || tagged[p.ID] || p.IsGround() {
			continue
		}
		if !restsOnAny(cfg, p, falling, pile) {
			continue
		}

		switch CountSupports(cfg, p, pile, excluded...) {
		case 0:
			affected = append(affected, domain.AffectedPiece{Piece: p, Tag: domain.PredictWillCollapse})
		case 1:
			affected = append(affected, domain.AffectedPiece{Piece: p, Tag: domain.PredictHighRisk})
		}
	}

	return affected
}

// WillCollapse - только поленья с WILL_COLLAPSE из результата Predict.
func WillCollapse(affected []domain.AffectedPiece) []*domain.Piece {
	var out []*domain.Piece
	for _, a := range affected {
		if a.Tag == domain.PredictWillCollapse {
			out = append(out, a.Piece)
		}
	}
	return out
}

func firstOrderTag(remaining int) domain.PredictionTag {
	switch remaining {
	case 0:
		return domain.PredictWillCollapse
	case 1:
		return domain.PredictHighRisk
	case 2:
		return domain.PredictMediumRisk
	default:
		return domain.PredictLowRisk
	}
}

func restsOnAny(cfg StabilityConfig, p *domain.Piece, supports []domain.PieceID, pile *domain.Pile) bool {
	for _, id := range supports {
		if s := pile.Get(id); s != nil && Supports(cfg, s, p) {
			return true
		}
	}
	return false
}
