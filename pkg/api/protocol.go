package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// UPDATE несет полный снимок партии, PREDICTION - только подсветку для
// полена под курсором, ERROR - только лог с ошибкой.
type ServerResponse struct {
	// Type тип сообщения: "UPDATE", "PREDICTION" или "ERROR".
	Type string `json:"type"`

	// SessionID ID сессии. Клиент присылает его как token в следующих командах.
	SessionID string `json:"sessionId,omitempty"`

	// Tick количество обработанных команд, меняющих состояние.
	Tick int `json:"tick"`

	// Game очки, здоровье и статус партии.
	Game *GameView `json:"game,omitempty"`

	// Pile вся куча, включая снятые поленья (клиент их не рисует).
	Pile *PileView `json:"pile,omitempty"`

	// Hovered полено, для которого посчитано предсказание.
	Hovered string `json:"hovered,omitempty"`

	// Affected поленья, которые пострадают, если снять Hovered.
	Affected []AffectedView `json:"affected,omitempty"`

	// Collapsed поленья, обрушившиеся от последнего снятия (для анимации).
	Collapsed []string `json:"collapsed,omitempty"`

	// Encounter активная встреча с существом.
	Encounter *EncounterView `json:"encounter,omitempty"`

	// Logs новые сообщения с прошлой команды.
	Logs []LogEntry `json:"logs,omitempty"`
}

// GameView - состояние партии для HUD.
type GameView struct {
	Health    int    `json:"health"`
	MaxHealth int    `json:"maxHealth"`
	Score     int    `json:"score"`
	Level     int    `json:"level"`
	Picks     int    `json:"picks"`
	Collapses int    `json:"collapses"`
	Status    string `json:"status"` // PLAYING, ENCOUNTER, LEVEL_CLEARED, GAME_OVER
	Player    string `json:"player,omitempty"`
	Seed      int64  `json:"seed"`
}

// PileView содержит размеры холста и все поленья.
type PileView struct {
	Width   float64     `json:"w"`
	Height  float64     `json:"h"`
	CellW   float64     `json:"cellW"`
	CellH   float64     `json:"cellH"`
	GroundY float64     `json:"groundY"`
	Pieces  []PieceView `json:"pieces"`
}

// PieceView это DTO для одного полена.
type PieceView struct {
	ID  string  `json:"id"`
	Row int     `json:"row"`
	Col int     `json:"col"`
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	W   float64 `json:"w"`
	H   float64 `json:"h"`

	Removed  bool   `json:"removed,omitempty"`
	Material string `json:"material"`
	Risk     string `json:"risk"` // NONE, LOW, MEDIUM, HIGH

	// Creature виден только во время встречи: иначе игра теряет смысл.
	Creature string `json:"creature,omitempty"`
}

// AffectedView - одно полено из предсказания.
type AffectedView struct {
	ID  string `json:"id"`
	Tag string `json:"tag"` // WILL_COLLAPSE, HIGH_RISK, MEDIUM_RISK, LOW_RISK
}

// EncounterView - активная встреча с существом.
type EncounterView struct {
	PieceID     string `json:"pieceId"`
	Creature    string `json:"creature"`
	RemainingMs int64  `json:"remainingMs"`
	BiteDamage  int    `json:"biteDamage"`
	Deadline    int64  `json:"deadline"` // Unix milliseconds
}

// LogEntry представляет одну запись в игровом логе.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, COLLAPSE, CREATURE, BITE, ERROR, GAME_OVER, CLEARED
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// HighscoreView - строка таблицы рекордов для /highscores.
type HighscoreView struct {
	Name      string `json:"name"`
	Score     int    `json:"score"`
	Level     int    `json:"level"`
	Seed      int64  `json:"seed"`
	CreatedAt int64  `json:"createdAt"` // Unix milliseconds
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token ID сессии. Пустой только в первом сообщении "LOGIN".
	Token string `json:"token,omitempty"`

	// Action название действия, которое нужно выполнить.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- Payloads ---

// LoginPayload используется в первом сообщении. Seed 0 - случайная куча.
type LoginPayload struct {
	Name string `json:"name"`
	Seed int64  `json:"seed,omitempty"`
}

// PiecePayload используется для действий над поленом (PICK, HOVER).
type PiecePayload struct {
	PieceID string `json:"pieceId"`
}
