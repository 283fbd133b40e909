package handlers

import (
	"encoding/json"
	"time"

	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/domain"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/systems"
)

// Context передает хендлеру состояние партии.
// Мы передаем ссылки, чтобы хендлер мог менять состояние (мутировать данные).
type Context struct {
	Rules     systems.RulesConfig
	Stability systems.StabilityConfig

	State *domain.GameState
	Pile  *domain.Pile

	// Now - время сессии. В режиме реплея оно зафиксировано.
	Now time.Time

	// BaseCreatureProbability - вероятность существ на первом уровне (для RESTART).
	BaseCreatureProbability float64
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в логи сессии напрямую, он возвращает данные.
type Result struct {
	Msg     string          // Текст лога
	MsgType string          // Тип лога (INFO, COLLAPSE, CREATURE, BITE)
	Event   json.RawMessage // Сырые данные события для обработки движком

	Hovered   *domain.Piece
	Affected  []domain.AffectedPiece // Предсказание для HOVER
	Collapsed []*domain.Piece        // Что обрушилось от PICK

	// RecordAs подменяет действие в реплее (опоздавший REACT пишется как EXPIRE).
	RecordAs domain.ActionType
}

// HandlerFunc - это контракт для любой команды (PICK, HOVER, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}

// Event - событие, которое хендлер просит выполнить движок.
type Event struct {
	Event string `json:"event"`
}

// Типы событий
const (
	EventRegeneratePile = "REGENERATE_PILE"
)

// NewEvent сериализует событие для Result.Event.
func NewEvent(name string) json.RawMessage {
	data, _ := json.Marshal(Event{Event: name})
	return data
}
