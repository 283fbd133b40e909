package domain

import "encoding/json"

// ReplayAction - запись одного действия, изменившего партию
type ReplayAction struct {
	Tick    int             `json:"tick"`
	Token   string          `json:"token"`   // Сессия
	Action  ActionType      `json:"action"`  // Что сделал
	Payload json.RawMessage `json:"payload"` // С какими параметрами
}

// ReplaySession - полная запись партии.
// Куча восстанавливается из Seed, поэтому сама она в реплей не пишется.
type ReplaySession struct {
	Level     int            `json:"level"` // уровень на момент сохранения
	Seed      int64          `json:"seed"`  // Зерно генерации кучи и существ
	Timestamp int64          `json:"timestamp"`
	Name      string         `json:"name"`
	Actions   []ReplayAction `json:"actions"`
}
