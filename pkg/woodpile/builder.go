package woodpile

import (
	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/domain"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/systems"
)

// PileBuilder предоставляет fluent API для сборки кучи по клеткам решетки.
// Используется генератором и тестами, которым нужна кладка вручную.
type PileBuilder struct {
	cellW, cellH float64
	groundY      float64
	margin       float64 // зазор между поленом и краем ячейки (суммарный)
	pile         *domain.Pile
	last         *domain.Piece
}

// NewBuilder создает builder для решетки с заданной ячейкой.
func NewBuilder(cellW, cellH float64) *PileBuilder {
	return &PileBuilder{
		cellW: cellW,
		cellH: cellH,
		pile:  domain.NewPile(cellW, cellH, 0),
	}
}

// WithGround задает верх земляного ряда.
func (b *PileBuilder) WithGround(groundY float64) *PileBuilder {
	b.groundY = groundY
	b.pile.GroundY = groundY
	return b
}

// WithPieceMargin задает, насколько полено меньше ячейки.
func (b *PileBuilder) WithPieceMargin(margin float64) *PileBuilder {
	b.margin = margin
	return b
}

// At кладет полено в ряд row, столбец col; x - левый край ячейки.
// Полено центрируется в ячейке.
func (b *PileBuilder) At(row, col int, x float64) *PileBuilder {
	size := domain.Vec2{X: b.cellW - b.margin, Y: b.cellH - b.margin}
	piece := &domain.Piece{
		ID:  domain.MakePieceID(row, col),
		Row: row,
		Col: col,
		Pos: domain.Vec2{
			X: x + b.margin/2,
			Y: b.groundY - float64(row)*b.cellH + b.margin/2,
		},
		Size: size,
	}
	b.pile.Add(piece)
	b.last = piece
	return b
}

// Creature сажает существо под последнее положенное полено.
func (b *PileBuilder) Creature(tag domain.CreatureTag) *PileBuilder {
	if b.last != nil {
		b.last.Creature = tag
	}
	return b
}

// Material задает породу последнего положенного полена.
func (b *PileBuilder) Material(tag domain.MaterialTag) *PileBuilder {
	if b.last != nil {
		b.last.Material = tag
	}
	return b
}

// Build один раз прогоняет расчет риска по всей куче и отдает ее.
func (b *PileBuilder) Build(stab systems.StabilityConfig) *domain.Pile {
	return systems.ClassifyAll(stab, b.pile)
}
