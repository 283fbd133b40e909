package systems

import (
	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/domain"
)

// RiskFromSupportCount - фиксированная ступенчатая функция:
//
//	0 -> HIGH, 1 -> MEDIUM, 2 -> LOW, 3+ -> NONE
//
// Сдвиг на единицу здесь незаметно меняет сложность игры.
func RiskFromSupportCount(n int) domain.RiskLevel {
	switch {
	case n <= 0:
		return domain.RiskHigh
	case n == 1:
		return domain.RiskMedium
	case n == 2:
		return domain.RiskLow
	default:
		return domain.RiskNone
	}
}

// Supporters возвращает живые опоры полена в порядке кучи.
// Само полено и поленья из exclude не учитываются.
func Supporters(cfg StabilityConfig, piece *domain.Piece, pile *domain.Pile, exclude ...domain.PieceID) []*domain.Piece {
	var out []*domain.Piece
	for _, p := range pile.Pieces {
		if p.Removed || p.ID == piece.ID || isExcluded(p.ID, exclude) {
			continue
		}
		if Supports(cfg, p, piece) {
			out = append(out, p)
		}
	}
	return out
}

// CountSupports - то же, что len(Supporters), без аллокаций.
func CountSupports(cfg StabilityConfig, piece *domain.Piece, pile *domain.Pile, exclude ...domain.PieceID) int {
	n := 0
	for _, p := range pile.Pieces {
		if p.Removed || p.ID == piece.ID || isExcluded(p.ID, exclude) {
			continue
		}
		if Supports(cfg, p, piece) {
			n++
		}
	}
	return n
}

// Dependents возвращает живые поленья, которые опираются на piece.
func Dependents(cfg StabilityConfig, piece *domain.Piece, pile *domain.Pile) []*domain.Piece {
	var out []*domain.Piece
	for _, p := range pile.Pieces {
		if p.Removed || p.ID == piece.ID {
			continue
		}
		if Supports(cfg, piece, p) {
			out = append(out, p)
		}
	}
	return out
}

// Classify вычисляет риск одного полена. Земляной ряд всегда NONE.
func Classify(cfg StabilityConfig, piece *domain.Piece, pile *domain.Pile) domain.RiskLevel {
	if piece.IsGround() {
		return domain.RiskNone
	}
	return RiskFromSupportCount(CountSupports(cfg, piece, pile))
}

// ClassifyAll пересчитывает риск каждого живого полена на месте и возвращает ту же кучу.
// O(n^2): при десятках поленьев это дешевле, чем поддерживать кэш графа.
func ClassifyAll(cfg StabilityConfig, pile *domain.Pile) *domain.Pile {
	if pile == nil {
		return nil
	}
	for _, p := range pile.Pieces {
		if p.Removed {
			continue
		}
		p.Risk = Classify(cfg, p, pile)
	}
	return pile
}

func isExcluded(id domain.PieceID, exclude []domain.PieceID) bool {
	for _, e := range exclude {
		if e == id {
			return true
		}
	}
	return false
}
