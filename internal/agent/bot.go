package agent

import (
	"context"
	"encoding/json"
	"time"

	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/domain"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/engine"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/systems"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/pkg/api"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Веса исходов при выборе полена. Обвал всегда хуже любого риска.
const (
	costWillCollapse = 100
	costHighRisk     = 10
	costMediumRisk   = 3
	costLowRisk      = 1
)

// Bot представляет собой "Игрока-компьютера" (Headless Agent).
// Он подключается к движку так же, как обычный клиент: подписывается
// на хаб и шлет команды через ProcessCommand. Решения принимает по
// локальной копии кучи теми же системами, что и сервер.
//
// Жизненный цикл:
//  1. NewBot -> новая сессия и подписка в хабе (Inbox).
//  2. Run -> слушает Inbox, на каждый UPDATE отвечает одной командой.
//  3. Партия проиграна или пройдено MaxLevels уровней - Run возвращается.
type Bot struct {
	SessionID string
	Service   *engine.GameService
	Inbox     chan api.ServerResponse

	// MaxLevels - сколько уровней пройти. 0 - играть до проигрыша.
	MaxLevels int
	// Delay - пауза перед каждым ходом, чтобы за ботом можно было следить.
	Delay time.Duration

	stab systems.StabilityConfig
	log  *logrus.Entry
}

func NewBot(service *engine.GameService, name string, seed int64) (*Bot, error) {
	session, err := service.CreateSession(name, seed)
	if err != nil {
		return nil, err
	}
	b := &Bot{
		SessionID: session.ID,
		Service:   service,
		Inbox:     service.Hub.Register(session.ID),
		stab:      service.Config.StabilityConfig(),
		log:       logger.Log.WithFields(logrus.Fields{"component": "bot", "session_id": session.ID}),
	}
	b.log.WithField("name", name).Info("Bot created")
	return b, nil
}

// Run играет до конца партии или отмены ctx. Сессию закрывает вызывающий.
func (b *Bot) Run(ctx context.Context) domain.GameStatus {
	defer b.Service.Hub.Unregister(b.SessionID)

	b.send(domain.ActionInit, nil)

	status := domain.StatusPlaying
	for {
		select {
		case <-ctx.Done():
			return status
		case event, ok := <-b.Inbox:
			if !ok {
				return status
			}
			if event.Type == domain.ResponseError {
				// Команда отклонена: просим свежий снимок и думаем заново
				b.send(domain.ActionInit, nil)
				continue
			}
			if event.Type != domain.ResponseUpdate || event.Game == nil {
				continue
			}

			status = domain.GameStatus(event.Game.Status)
			if b.finished(event.Game) {
				b.log.WithFields(logrus.Fields{
					"status": status,
					"score":  event.Game.Score,
					"level":  event.Game.Level,
				}).Info("Bot finished")
				return status
			}
			if b.Delay > 0 {
				select {
				case <-ctx.Done():
					return status
				case <-time.After(b.Delay):
				}
			}
			b.makeMove(event)
		}
	}
}

func (b *Bot) finished(g *api.GameView) bool {
	switch domain.GameStatus(g.Status) {
	case domain.StatusGameOver:
		return true
	case domain.StatusLevelCleared:
		return b.MaxLevels > 0 && g.Level >= b.MaxLevels
	}
	return false
}

// makeMove - это мозг бота: одна команда на одно состояние.
func (b *Bot) makeMove(state api.ServerResponse) {
	switch domain.GameStatus(state.Game.Status) {
	case domain.StatusEncounter:
		b.send(domain.ActionReact, nil)
	case domain.StatusLevelCleared:
		b.send(domain.ActionNextLevel, nil)
	case domain.StatusPlaying:
		pile := BuildLocalPile(b.stab, state.Pile)
		piece := ChoosePiece(b.stab, pile)
		if piece == nil {
			b.log.Warn("No piece to pick. Waiting.")
			return
		}
		b.send(domain.ActionPick, api.PiecePayload{PieceID: piece.ID.String()})
	}
}

// BuildLocalPile восстанавливает доменную кучу из DTO сервера.
// Порода переносится как есть, риск пересчитывается, существа клиенту не видны.
func BuildLocalPile(stab systems.StabilityConfig, view *api.PileView) *domain.Pile {
	if view == nil {
		return domain.NewPile(0, 0, 0)
	}
	pile := domain.NewPile(view.CellW, view.CellH, view.GroundY)
	for _, pv := range view.Pieces {
		material, _ := domain.ParseMaterial(pv.Material)
		pile.Add(&domain.Piece{
			ID:       domain.PieceID(pv.ID),
			Row:      pv.Row,
			Col:      pv.Col,
			Pos:      domain.Vec2{X: pv.X, Y: pv.Y},
			Size:     domain.Vec2{X: pv.W, Y: pv.H},
			Removed:  pv.Removed,
			Material: material,
		})
	}
	return systems.ClassifyAll(stab, pile)
}

// ChoosePiece выбирает полено с самым дешевым предсказанием.
// При равной цене берется полено выше, затем ценнее по породе.
func ChoosePiece(stab systems.StabilityConfig, pile *domain.Pile) *domain.Piece {
	var (
		best     *domain.Piece
		bestCost int
	)
	for _, piece := range pile.Live() {
		cost := predictionCost(systems.Predict(stab, piece, pile))
		if best == nil || cost < bestCost || (cost == bestCost && better(piece, best)) {
			best, bestCost = piece, cost
		}
	}
	return best
}

func predictionCost(affected []domain.AffectedPiece) int {
	cost := 0
	for _, a := range affected {
		switch a.Tag {
		case domain.PredictWillCollapse:
			cost += costWillCollapse
		case domain.PredictHighRisk:
			cost += costHighRisk
		case domain.PredictMediumRisk:
			cost += costMediumRisk
		case domain.PredictLowRisk:
			cost += costLowRisk
		}
	}
	return cost
}

func better(a, b *domain.Piece) bool {
	if a.Row != b.Row {
		return a.Row > b.Row
	}
	return a.Material.Modifier().ScoreMultiplier > b.Material.Modifier().ScoreMultiplier
}

// --- Хелперы для отправки команд ---

func (b *Bot) send(action domain.ActionType, payload any) {
	cmd := api.ClientCommand{
		Action: action.String(),
		Token:  b.SessionID,
	}
	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		if err != nil {
			b.log.WithError(err).Error("Error marshalling payload")
			return
		}
		cmd.Payload = payloadBytes
	}
	if err := b.Service.ProcessCommand(cmd); err != nil {
		b.log.WithError(err).WithField("action", action).Warn("Command rejected")
	}
}
