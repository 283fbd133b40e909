package engine

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/systems"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/pkg/woodpile"
	"gopkg.in/yaml.v3"
)

// Config хранит параметры запуска движка
type Config struct {
	// Seed - мастер-зерно. 0 - каждая сессия получает случайное.
	Seed int64 `yaml:"seed"`

	Pile      woodpile.GeneratorConfig `yaml:"pile"`
	Stability systems.StabilityConfig  `yaml:"stability"`
	Rules     systems.RulesConfig      `yaml:"rules"`

	// MaxSessions - ограничение на одновременные партии (0 - без ограничения).
	MaxSessions int `yaml:"max_sessions"`
	// QueueSize - буфер команд одной сессии.
	QueueSize int `yaml:"queue_size"`
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	pile := woodpile.DefaultConfig()
	return Config{
		Pile:      pile,
		Stability: pile.Stability,
		Rules:     systems.DefaultRules(),
		QueueSize: 100,
	}
}

// LoadConfig читает YAML поверх значений по умолчанию и проверяет результат.
func LoadConfig(path string) (Config, error) {
	cfg := NewConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate отсекает конфиги, на которых генератор или правила ведут себя бессмысленно.
func (c Config) Validate() error {
	var errs []error
	p := c.Pile
	if p.CellWidth <= 0 || p.CellHeight <= 0 {
		errs = append(errs, errors.New("pile: cell dimensions must be positive"))
	}
	if p.BoundingWidth < 0 || p.BoundingHeight < 0 {
		errs = append(errs, errors.New("pile: bounding dimensions must not be negative"))
	}
	if p.PieceMargin < 0 || p.PieceMargin >= min(p.CellWidth, p.CellHeight) {
		errs = append(errs, errors.New("pile: piece margin must be in [0, cell size)"))
	}
	if p.CreatureProbability < 0 || p.CreatureProbability > 1 {
		errs = append(errs, errors.New("pile: creature probability must be in [0, 1]"))
	}
	if c.Stability.OverlapFraction <= 0 || c.Stability.OverlapFraction > 1 {
		errs = append(errs, errors.New("stability: overlap fraction must be in (0, 1]"))
	}
	if c.Stability.AdjacencyFraction <= 0 || c.Stability.AdjacencyFraction > 1 {
		errs = append(errs, errors.New("stability: adjacency fraction must be in (0, 1]"))
	}
	if c.Rules.StartingHealth <= 0 {
		errs = append(errs, errors.New("rules: starting health must be positive"))
	}
	if c.Rules.MaxCreatureProbability < 0 || c.Rules.MaxCreatureProbability > 1 {
		errs = append(errs, errors.New("rules: max creature probability must be in [0, 1]"))
	}
	if c.Rules.MinReactionWindow < 100*time.Millisecond {
		errs = append(errs, errors.New("rules: min reaction window must be at least 100ms"))
	}
	if c.QueueSize <= 0 {
		errs = append(errs, errors.New("queue size must be positive"))
	}
	return errors.Join(errs...)
}

// StabilityConfig - доли из конфига плюс высота ячейки из геометрии кучи.
func (c Config) StabilityConfig() systems.StabilityConfig {
	st := c.Stability
	st.CellHeight = c.Pile.CellHeight
	return st
}

// GeneratorConfig - параметры генерации для текущего уровня партии.
func (c Config) GeneratorConfig(creatureProbability float64) woodpile.GeneratorConfig {
	g := c.Pile
	g.CreatureProbability = creatureProbability
	g.Stability = c.StabilityConfig()
	return g
}
