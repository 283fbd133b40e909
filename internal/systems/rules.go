package systems

import (
	"math"
	"time"

	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/domain"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/pkg/logger"
	"github.com/sirupsen/logrus"
)

// RulesConfig - числа, по которым начисляются очки и урон.
type RulesConfig struct {
	StartingHealth         int `yaml:"starting_health"`
	BasePickScore          int `yaml:"base_pick_score"`
	CollapseDamagePerPiece int `yaml:"collapse_damage_per_piece"`

	// Окно реакции умножается на ReactionScalePerLevel^(level-1), но не меньше MinReactionWindow.
	ReactionScalePerLevel float64       `yaml:"reaction_scale_per_level"`
	MinReactionWindow     time.Duration `yaml:"min_reaction_window"`

	CreatureProbabilityStep float64 `yaml:"creature_probability_step"`
	MaxCreatureProbability  float64 `yaml:"max_creature_probability"`
}

// DefaultRules возвращает правила по умолчанию.
func DefaultRules() RulesConfig {
	return RulesConfig{
		StartingHealth:          100,
		BasePickScore:           10,
		CollapseDamagePerPiece:  10,
		ReactionScalePerLevel:   0.9,
		MinReactionWindow:       600 * time.Millisecond,
		CreatureProbabilityStep: 0.05,
		MaxCreatureProbability:  0.5,
	}
}

// NewGameState создает состояние новой партии на первом уровне.
func NewGameState(rules RulesConfig, creatureProbability float64) *domain.GameState {
	return &domain.GameState{
		Health:              rules.StartingHealth,
		MaxHealth:           rules.StartingHealth,
		Level:               1,
		Status:              domain.StatusPlaying,
		CreatureProbability: creatureProbability,
	}
}

// PickResult - что произошло после клика по полену.
type PickResult struct {
	Piece     *domain.Piece
	Removal   RemovalResult
	Encounter *domain.Encounter // не nil, если под поленом сидело существо

	ScoreGained    int
	HealthDelta    int // от породы полена
	CollapseDamage int
}

// PickPiece применяет клик игрока к полену.
//
// Полено с существом не снимается: начинается встреча. Иначе полено
// снимается вместе с обвалом, начисляются очки и урон, статус обновляется.
func PickPiece(rules RulesConfig, stab StabilityConfig, state *domain.GameState, pile *domain.Pile, id domain.PieceID, now time.Time) (PickResult, error) {
	if state.Status == domain.StatusEncounter {
		return PickResult{}, domain.ErrEncounterActive
	}
	if state.Status != domain.StatusPlaying {
		return PickResult{}, domain.ErrGameNotActive
	}

	piece := pile.Get(id)
	if piece == nil || piece.Removed {
		return PickResult{}, domain.ErrPieceNotFound
	}

	res := PickResult{Piece: piece}

	if piece.HasCreature() {
		res.Encounter = StartEncounter(rules, state, piece, now)
		return res, nil
	}

	mod := piece.Material.Modifier()
	res.Removal = ApplyRemoval(stab, piece, pile)
	res.ScoreGained = int(math.Round(float64(rules.BasePickScore) * mod.ScoreMultiplier))
	res.HealthDelta = mod.HealthDelta
	res.CollapseDamage = int(math.Round(float64(res.Removal.Severity()*rules.CollapseDamagePerPiece) * mod.RiskMultiplier))

	state.Picks++
	state.Collapses += res.Removal.Severity()
	state.Score += res.ScoreGained
	adjustHealth(state, res.HealthDelta-res.CollapseDamage)
	updateStatus(state, pile)

	logger.Log.WithFields(logrus.Fields{
		"component": "rules_system",
		"piece":     piece.ID,
		"material":  piece.Material.String(),
		"collapsed": res.Removal.Severity(),
		"score":     state.Score,
		"health":    state.Health,
	}).Debug("Piece picked")

	return res, nil
}

// ReactionWindow - время на реакцию на данном уровне.
func ReactionWindow(rules RulesConfig, creature domain.CreatureTag, level int) time.Duration {
	base := creature.Traits().ReactionWindow
	if level < 1 {
		level = 1
	}
	scale := rules.ReactionScalePerLevel
	if scale <= 0 {
		scale = 1
	}
	window := time.Duration(float64(base) * math.Pow(scale, float64(level-1)))
	if window < rules.MinReactionWindow {
		window = rules.MinReactionWindow
	}
	return window
}

// StartEncounter переводит партию во встречу с существом под поленом.
func StartEncounter(rules RulesConfig, state *domain.GameState, piece *domain.Piece, now time.Time) *domain.Encounter {
	enc := &domain.Encounter{
		PieceID:   piece.ID,
		Creature:  piece.Creature,
		StartedAt: now,
		Deadline:  now.Add(ReactionWindow(rules, piece.Creature, state.Level)),
	}
	state.Encounter = enc
	state.Status = domain.StatusEncounter
	return enc
}

// EncounterResult - исход встречи.
type EncounterResult struct {
	PieceID  domain.PieceID
	Creature domain.CreatureTag
	Bitten   bool
	Damage   int
	Bonus    int
}

// React - игрок отреагировал. Успел до дедлайна - существо прогнано и дает бонус,
// опоздал - это то же самое, что истечение времени.
func React(state *domain.GameState, pile *domain.Pile, now time.Time) (EncounterResult, error) {
	enc := state.Encounter
	if enc == nil {
		return EncounterResult{}, domain.ErrNoEncounter
	}
	if now.After(enc.Deadline) {
		return finishEncounter(state, pile, true), nil
	}
	return finishEncounter(state, pile, false), nil
}

// ExpireEncounter - время вышло, существо кусает.
func ExpireEncounter(state *domain.GameState, pile *domain.Pile) (EncounterResult, error) {
	if state.Encounter == nil {
		return EncounterResult{}, domain.ErrNoEncounter
	}
	return finishEncounter(state, pile, true), nil
}

func finishEncounter(state *domain.GameState, pile *domain.Pile, bitten bool) EncounterResult {
	enc := state.Encounter
	traits := enc.Creature.Traits()
	res := EncounterResult{PieceID: enc.PieceID, Creature: enc.Creature, Bitten: bitten}

	if bitten {
		res.Damage = traits.BiteDamage
		adjustHealth(state, -res.Damage)
	} else {
		res.Bonus = traits.ShooBonus
		state.Score += res.Bonus
	}

	// Существо уходит в любом случае, полено остается в куче.
	if piece := pile.Get(enc.PieceID); piece != nil {
		piece.Creature = domain.CreatureNone
	}
	state.Encounter = nil
	updateStatus(state, pile)

	logger.Log.WithFields(logrus.Fields{
		"component": "rules_system",
		"piece":     res.PieceID,
		"creature":  res.Creature.String(),
		"bitten":    bitten,
	}).Debug("Encounter finished")

	return res
}

// NextLevel поднимает уровень после расчистки. Новую кучу генерирует вызывающий
// с вероятностью существ из state.CreatureProbability.
func NextLevel(rules RulesConfig, state *domain.GameState) error {
	if state.Status != domain.StatusLevelCleared {
		return domain.ErrLevelNotCleared
	}
	state.Level++
	state.CreatureProbability = math.Min(state.CreatureProbability+rules.CreatureProbabilityStep, rules.MaxCreatureProbability)
	state.Status = domain.StatusPlaying
	return nil
}

// Restart сбрасывает партию в начальное состояние.
func Restart(rules RulesConfig, state *domain.GameState, creatureProbability float64) {
	*state = *NewGameState(rules, creatureProbability)
}

func adjustHealth(state *domain.GameState, delta int) {
	state.Health += delta
	if state.Health > state.MaxHealth {
		state.Health = state.MaxHealth
	}
	if state.Health < 0 {
		state.Health = 0
	}
}

func updateStatus(state *domain.GameState, pile *domain.Pile) {
	switch {
	case state.Health <= 0:
		state.Status = domain.StatusGameOver
	case pile.LiveCount() == 0:
		state.Status = domain.StatusLevelCleared
	default:
		state.Status = domain.StatusPlaying
	}
}
