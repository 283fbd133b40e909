package domain

import (
	"strings"
	"time"
)

// CreatureTag - закрытое множество существ, прячущихся в куче.
type CreatureTag uint8

const (
	CreatureNone CreatureTag = iota
	CreatureSpider
	CreatureSnake
	CreatureScorpion
	CreatureCentipede
	CreatureMouse
)

// Creatures - все настоящие варианты (без CreatureNone), в порядке равновероятного выбора.
var Creatures = []CreatureTag{
	CreatureSpider,
	CreatureSnake,
	CreatureScorpion,
	CreatureCentipede,
	CreatureMouse,
}

// CreatureTraits - поведение существа при встрече.
type CreatureTraits struct {
	Name           string
	BiteDamage     int           // урон, если игрок не успел среагировать
	ReactionWindow time.Duration // время на реакцию на первом уровне
	ShooBonus      int           // очки за успешную реакцию
}

var creatureTable = map[CreatureTag]CreatureTraits{
	CreatureNone:      {Name: "NONE"},
	CreatureSpider:    {Name: "SPIDER", BiteDamage: 10, ReactionWindow: 2000 * time.Millisecond, ShooBonus: 15},
	CreatureSnake:     {Name: "SNAKE", BiteDamage: 25, ReactionWindow: 1500 * time.Millisecond, ShooBonus: 30},
	CreatureScorpion:  {Name: "SCORPION", BiteDamage: 20, ReactionWindow: 1600 * time.Millisecond, ShooBonus: 25},
	CreatureCentipede: {Name: "CENTIPEDE", BiteDamage: 15, ReactionWindow: 1800 * time.Millisecond, ShooBonus: 20},
	CreatureMouse:     {Name: "MOUSE", BiteDamage: 5, ReactionWindow: 2500 * time.Millisecond, ShooBonus: 10},
}

// Traits возвращает характеристики существа.
func (c CreatureTag) Traits() CreatureTraits {
	return creatureTable[c]
}

func (c CreatureTag) String() string {
	if t, ok := creatureTable[c]; ok {
		return t.Name
	}
	return "UNKNOWN"
}

// MaterialTag - закрытое множество пород дерева.
// Нулевое значение - обычное полено.
type MaterialTag uint8

const (
	MaterialOrdinary MaterialTag = iota
	MaterialGolden               // ценное, без штрафа за обвал
	MaterialThorny               // колючее: штраф к здоровью, повышенный риск
	MaterialBrittle              // трухлявое: обвал от него бьет сильнее
	MaterialMossy                // мшистое: лечит, но почти ничего не стоит
)

// Materials - все варианты в порядке накопления весов.
var Materials = []MaterialTag{
	MaterialOrdinary,
	MaterialGolden,
	MaterialThorny,
	MaterialBrittle,
	MaterialMossy,
}

// MaterialModifier - табличное поведение породы.
type MaterialModifier struct {
	Name            string
	ScoreMultiplier float64
	HealthDelta     int     // применяется при снятии полена
	RiskMultiplier  float64 // множитель урона от обвала, вызванного этим поленом
	SpawnWeight     float64
}

var materialTable = map[MaterialTag]MaterialModifier{
	MaterialOrdinary: {Name: "ORDINARY", ScoreMultiplier: 1.0, HealthDelta: 0, RiskMultiplier: 1.0, SpawnWeight: 0.70},
	MaterialGolden:   {Name: "GOLDEN", ScoreMultiplier: 3.0, HealthDelta: 0, RiskMultiplier: 0.0, SpawnWeight: 0.10},
	MaterialThorny:   {Name: "THORNY", ScoreMultiplier: 1.5, HealthDelta: -10, RiskMultiplier: 1.5, SpawnWeight: 0.10},
	MaterialBrittle:  {Name: "BRITTLE", ScoreMultiplier: 1.0, HealthDelta: 0, RiskMultiplier: 2.0, SpawnWeight: 0.05},
	MaterialMossy:    {Name: "MOSSY", ScoreMultiplier: 0.5, HealthDelta: 10, RiskMultiplier: 1.0, SpawnWeight: 0.05},
}

// Modifier возвращает модификатор породы.
func (m MaterialTag) Modifier() MaterialModifier {
	if mod, ok := materialTable[m]; ok {
		return mod
	}
	return materialTable[MaterialOrdinary]
}

func (m MaterialTag) String() string {
	if mod, ok := materialTable[m]; ok {
		return mod.Name
	}
	return "UNKNOWN"
}

// ParseMaterial - обратное к String, нечувствительно к регистру.
func ParseMaterial(s string) (MaterialTag, bool) {
	upper := strings.ToUpper(s)
	for _, m := range Materials {
		if materialTable[m].Name == upper {
			return m, true
		}
	}
	return MaterialOrdinary, false
}

// MaterialWeightSum - сумма весов появления. Должна быть 1.0.
func MaterialWeightSum() float64 {
	sum := 0.0
	for _, m := range Materials {
		sum += materialTable[m].SpawnWeight
	}
	return sum
}

// PickMaterial выбирает породу по броску roll из [0, 1).
func PickMaterial(roll float64) MaterialTag {
	acc := 0.0
	for _, m := range Materials {
		acc += materialTable[m].SpawnWeight
		if roll < acc {
			return m
		}
	}
	// Ошибки округления на самом краю отрезка
	return Materials[len(Materials)-1]
}
