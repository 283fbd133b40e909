package domain

import "time"

// GameStatus - фаза партии.
type GameStatus string

const (
	StatusPlaying      GameStatus = "PLAYING"
	StatusEncounter    GameStatus = "ENCOUNTER"
	StatusLevelCleared GameStatus = "LEVEL_CLEARED"
	StatusGameOver     GameStatus = "GAME_OVER"
)

// Encounter - активная встреча с существом. Полено остается в куче,
// пока игрок не среагирует или не истечет время.
type Encounter struct {
	PieceID   PieceID     `json:"pieceId"`
	Creature  CreatureTag `json:"creature"`
	StartedAt time.Time   `json:"startedAt"`
	Deadline  time.Time   `json:"deadline"`
}

// Remaining - сколько осталось до укуса.
func (e *Encounter) Remaining(now time.Time) time.Duration {
	if d := e.Deadline.Sub(now); d > 0 {
		return d
	}
	return 0
}

// GameState - здоровье и очки одной сессии. Куча хранится отдельно.
type GameState struct {
	Health    int        `json:"health"`
	MaxHealth int        `json:"maxHealth"`
	Score     int        `json:"score"`
	Level     int        `json:"level"`
	Picks     int        `json:"picks"`
	Collapses int        `json:"collapses"` // всего обрушилось поленьев за партию
	Status    GameStatus `json:"status"`

	CreatureProbability float64 `json:"creatureProbability"`

	Encounter *Encounter `json:"encounter,omitempty"`
}

// IsOver - партия закончена.
func (g *GameState) IsOver() bool {
	return g.Status == StatusGameOver
}

// ScoreEntry - строка таблицы рекордов.
type ScoreEntry struct {
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	Level     int       `json:"level"`
	Seed      int64     `json:"seed"`
	CreatedAt time.Time `json:"createdAt"`
}
