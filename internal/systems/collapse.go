package systems

import (
	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/domain"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/pkg/logger"
	"github.com/sirupsen/logrus"
)

// ResolveCollapse определяет поленья, которые теряют ВСЕ опоры после снятия removed.
//
// Один проход по живым поленьям (не земля, не само removed): кандидат - тот,
// кого removed держал; он падает, если без removed у него не осталось опор.
// Каскад одноуровневый: что держали падающие поленья, здесь не выясняется.
// Вызывающий обязан пересчитать риск (ClassifyAll), и новые HIGH проявятся
// к следующему ходу игрока.
//
// removed может быть уже помечен снятым. Полено не из этой кучи дает пустой
// результат: дублирующее событие снятия не должно ронять игру.
func ResolveCollapse(cfg StabilityConfig, removed *domain.Piece, pile *domain.Pile) []*domain.Piece {
	if removed == nil || !pile.Contains(removed) {
		return nil
	}

	var collapsed []*domain.Piece
	for _, p := range pile.Pieces {
		if p.Removed || p.ID == removed.ID || p.IsGround() {
			continue
		}
		if !Supports(cfg, removed, p) {
			continue
		}
		if CountSupports(cfg, p, pile, removed.ID) == 0 {
			collapsed = append(collapsed, p)
		}
	}

	if len(collapsed) > 0 {
		logger.Log.WithFields(logrus.Fields{
			"component": "stability_system",
			"removed":   removed.ID,
			"collapsed": len(collapsed),
		}).Debug("Collapse resolved")
	}
	return collapsed
}

// RemovalResult - итог снятия полена вместе с обвалом.
type RemovalResult struct {
	Piece     *domain.Piece
	Collapsed []*domain.Piece
}

// Severity - количество обрушившихся поленьев.
func (r RemovalResult) Severity() int {
	return len(r.Collapsed)
}

// ApplyRemoval снимает полено, обрушивает потерявших опору и пересчитывает риск.
// Повторный вызов для уже снятого полена ничего не меняет.
func ApplyRemoval(cfg StabilityConfig, piece *domain.Piece, pile *domain.Pile) RemovalResult {
	res := RemovalResult{Piece: piece}
	if piece == nil || !pile.Contains(piece) {
		return res
	}

	piece.Removed = true
	res.Collapsed = ResolveCollapse(cfg, piece, pile)
	for _, p := range res.Collapsed {
		p.Removed = true
	}
	ClassifyAll(cfg, pile)
	return res
}
