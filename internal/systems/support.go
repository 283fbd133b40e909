package systems

import (
	"math"

	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/domain"
)

// Доли по умолчанию. Вынесены в конфиг ради тестов и тюнинга.
const (
	DefaultOverlapFraction   = 0.75 // доля суммы радиусов для горизонтального зацепления
	DefaultAdjacencyFraction = 0.5  // доля высоты ячейки для вертикального зазора
)

// StabilityConfig - параметры предиката опоры.
type StabilityConfig struct {
	CellHeight        float64 `yaml:"-"` // берется из геометрии кучи
	OverlapFraction   float64 `yaml:"overlap_fraction"`
	AdjacencyFraction float64 `yaml:"adjacency_fraction"`
}

// DefaultStability возвращает конфиг с долями по умолчанию.
func DefaultStability(cellHeight float64) StabilityConfig {
	return StabilityConfig{
		CellHeight:        cellHeight,
		OverlapFraction:   DefaultOverlapFraction,
		AdjacencyFraction: DefaultAdjacencyFraction,
	}
}

// Supports решает, держит ли support полено piece.
//
// Все три условия обязательны одновременно:
//  1. support строго ниже piece (верхняя граница support больше верхней границы piece);
//  2. центры по горизонтали ближе, чем OverlapFraction * (r1 + r2);
//  3. зазор между низом piece и верхом support не больше AdjacencyFraction * CellHeight.
//
// Снятые поленья не фильтруются: это обязанность вызывающего.
// Это единственное место, где определяется опора. Риск, обвал и
// предсказание обязаны вызывать только его.
func Supports(cfg StabilityConfig, support, piece *domain.Piece) bool {
	if support.Pos.Y <= piece.Pos.Y {
		return false
	}

	dx := math.Abs(support.Center().X - piece.Center().X)
	if dx >= cfg.OverlapFraction*(support.Radius()+piece.Radius()) {
		return false
	}

	gap := support.Pos.Y - piece.Bottom()
	return gap <= cfg.AdjacencyFraction*cfg.CellHeight
}
