package woodpile

import (
	"math"
	"math/rand"

	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/domain"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/systems"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Размеры по умолчанию (холст браузерной версии).
const (
	DefaultBoundingWidth  = 800.0
	DefaultBoundingHeight = 600.0
	DefaultCellSize       = 80.0
	DefaultPieceMargin    = 4.0
	DefaultSideMargin     = 40.0
	DefaultGroundMargin   = 20.0
)

// GeneratorConfig - параметры генерации кучи.
type GeneratorConfig struct {
	BoundingWidth  float64 `yaml:"bounding_width"`
	BoundingHeight float64 `yaml:"bounding_height"`
	CellWidth      float64 `yaml:"cell_width"`
	CellHeight     float64 `yaml:"cell_height"`

	PieceMargin      float64 `yaml:"piece_margin"`
	HorizontalMargin float64 `yaml:"horizontal_margin"`
	VerticalMargin   float64 `yaml:"vertical_margin"`
	GroundMargin     float64 `yaml:"ground_margin"`

	CreatureProbability float64 `yaml:"creature_probability"`

	Stability systems.StabilityConfig `yaml:"-"`
}

// DefaultConfig возвращает конфиг по умолчанию: 7 рядов по 9/8 поленьев.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		BoundingWidth:       DefaultBoundingWidth,
		BoundingHeight:      DefaultBoundingHeight,
		CellWidth:           DefaultCellSize,
		CellHeight:          DefaultCellSize,
		PieceMargin:         DefaultPieceMargin,
		HorizontalMargin:    DefaultSideMargin,
		VerticalMargin:      DefaultSideMargin,
		GroundMargin:        DefaultGroundMargin,
		CreatureProbability: 0.1,
		Stability:           systems.DefaultStability(DefaultCellSize),
	}
}

// Dimensions - сколько рядов и столбцов помещается. Не бывает отрицательным.
func (c GeneratorConfig) Dimensions() (rows, cols int) {
	if c.CellWidth <= 0 || c.CellHeight <= 0 {
		return 0, 0
	}
	rows = int(math.Floor((c.BoundingHeight - c.VerticalMargin) / c.CellHeight))
	cols = int(math.Floor((c.BoundingWidth - c.HorizontalMargin) / c.CellWidth))
	return max(rows, 0), max(cols, 0)
}

// GroundY - верх земляного ряда.
func (c GeneratorConfig) GroundY() float64 {
	return c.BoundingHeight - c.GroundMargin - c.CellHeight
}

// Generate строит кучу кирпичной кладкой снизу вверх.
//
// Четные ряды (считая от земли) полные, нечетные на одно полено короче и
// сдвинуты на полклетки: только так соседние ряды перекрываются и полено
// получает две опоры. Слишком маленькая область дает пустую или неполную кучу.
//
// Порядок бросков на полено фиксирован (существо, вид существа, порода),
// поэтому один и тот же seed всегда дает одну и ту же кучу.
func Generate(cfg GeneratorConfig, rng *rand.Rand) *domain.Pile {
	rows, cols := cfg.Dimensions()
	if cfg.Stability.CellHeight == 0 {
		cfg.Stability = systems.DefaultStability(cfg.CellHeight)
	}

	b := NewBuilder(cfg.CellWidth, cfg.CellHeight).
		WithGround(cfg.GroundY()).
		WithPieceMargin(cfg.PieceMargin)

	left := cfg.HorizontalMargin / 2
	for row := 0; row < rows; row++ {
		n, offset := cols, 0.0
		if row%2 == 1 {
			n, offset = cols-1, cfg.CellWidth/2
		}
		for col := 0; col < n; col++ {
			b.At(row, col, left+offset+float64(col)*cfg.CellWidth).
				Creature(rollCreature(rng, cfg.CreatureProbability)).
				Material(domain.PickMaterial(rng.Float64()))
		}
	}

	pile := b.Build(cfg.Stability)

	logger.Log.WithFields(logrus.Fields{
		"component": "pile_generator",
		"rows":      rows,
		"cols":      cols,
		"pieces":    pile.Len(),
	}).Debug("Pile generated")

	return pile
}

func rollCreature(rng *rand.Rand, probability float64) domain.CreatureTag {
	if rng.Float64() >= probability {
		return domain.CreatureNone
	}
	return domain.Creatures[rng.Intn(len(domain.Creatures))]
}
