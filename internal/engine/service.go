package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/domain"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/engine/handlers"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/engine/handlers/actions"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/network"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/pkg/api"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/pkg/logger"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/pkg/utils"
	"github.com/sirupsen/logrus"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionClosed   = errors.New("session is closed")
	ErrQueueFull       = errors.New("session command queue is full")
	ErrTooManySessions = errors.New("too many active sessions")
	ErrUnknownAction   = errors.New("unknown action")
)

// ReplayStore сохраняет запись партии. Реализация - storage.ReplayService.
type ReplayStore interface {
	Save(session *domain.ReplaySession) (string, error)
}

// ScoreStore пишет таблицу рекордов. Реализация - storage.Highscores.
type ScoreStore interface {
	Record(ctx context.Context, entry domain.ScoreEntry) error
	Top(ctx context.Context, limit int) ([]domain.ScoreEntry, error)
}

type GameService struct {
	Config Config
	Hub    *network.Broadcaster

	// Необязательные хранилища: nil - функция выключена.
	Replays ReplayStore
	Scores  ScoreStore

	mu       sync.RWMutex
	sessions map[string]*sessionHandle

	handlers map[domain.ActionType]handlers.HandlerFunc
	clock    func() time.Time
}

type sessionHandle struct {
	session *Session
	cancel  context.CancelFunc
}

func NewService(cfg Config) *GameService {
	s := &GameService{
		Config:   cfg,
		Hub:      network.NewBroadcaster(),
		sessions: make(map[string]*sessionHandle),
		handlers: make(map[domain.ActionType]handlers.HandlerFunc),
		clock:    time.Now,
	}
	s.registerHandlers()
	return s
}

func (s *GameService) registerHandlers() {
	s.handlers[domain.ActionInit] = handlers.WithEmptyPayload(actions.HandleInit)
	s.handlers[domain.ActionPick] = handlers.WithPayload(actions.HandlePick)
	s.handlers[domain.ActionHover] = handlers.WithPayload(actions.HandleHover)
	s.handlers[domain.ActionReact] = handlers.WithEmptyPayload(actions.HandleReact)
	s.handlers[domain.ActionExpire] = handlers.WithEmptyPayload(actions.HandleExpire)
	s.handlers[domain.ActionNextLevel] = handlers.WithEmptyPayload(actions.HandleNextLevel)
	s.handlers[domain.ActionRestart] = handlers.WithEmptyPayload(actions.HandleRestart)
}

// CreateSession создает партию и запускает ее цикл.
// seed 0 - берется мастер-зерно из конфига, а если и его нет, то время.
func (s *GameService) CreateSession(name string, seed int64) (*Session, error) {
	if seed == 0 {
		seed = s.Config.Seed
	}
	if seed == 0 {
		seed = s.clock().UnixNano()
	}

	s.mu.Lock()
	if limit := s.Config.MaxSessions; limit > 0 && len(s.sessions) >= limit {
		s.mu.Unlock()
		return nil, ErrTooManySessions
	}

	session := newSession(utils.GenerateID(), name, seed, s.Config, s.handlers, s.clock)
	session.publish = func(resp *api.ServerResponse) {
		s.Hub.SendTo(session.ID, *resp)
	}
	session.onGameOver = s.recordScore

	ctx, cancel := context.WithCancel(context.Background())
	s.sessions[session.ID] = &sessionHandle{session: session, cancel: cancel}
	s.mu.Unlock()

	go session.Run(ctx)

	logger.Log.WithFields(logrus.Fields{
		"component":  "game_service",
		"session_id": session.ID,
		"name":       name,
		"seed":       seed,
	}).Info("Session created")

	return session, nil
}

// ProcessCommand принимает команду от внешнего мира (WebSocket, терминал).
// Token - ID сессии. Очередь не блокирует вызывающего: переполнение - ошибка.
func (s *GameService) ProcessCommand(externalCmd api.ClientCommand) error {
	actionType := domain.ParseAction(externalCmd.Action)
	if !actionType.IsClientAction() || actionType == domain.ActionLogin {
		return fmt.Errorf("%w: %s", ErrUnknownAction, externalCmd.Action)
	}

	session := s.GetSession(externalCmd.Token)
	if session == nil {
		return ErrSessionNotFound
	}

	select {
	case session.CommandChan <- domain.InternalCommand{
		Action:  actionType,
		Token:   externalCmd.Token,
		Payload: externalCmd.Payload,
	}:
		return nil
	default:
		return ErrQueueFull
	}
}

// GetSession ищет сессию по ID. nil, если такой нет.
func (s *GameService) GetSession(id string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if h, ok := s.sessions[id]; ok {
		return h.session
	}
	return nil
}

// CloseSession останавливает партию, сохраняет реплей и рекорд.
func (s *GameService) CloseSession(id string) error {
	s.mu.Lock()
	h, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	h.cancel()
	<-h.session.Done()

	// Горутина сессии завершена: состояние теперь принадлежит нам.
	session := h.session
	log := logger.Log.WithFields(logrus.Fields{"component": "game_service", "session_id": id})

	if s.Replays != nil && len(session.Replay.Actions) > 0 {
		path, err := s.Replays.Save(session.Replay)
		if err != nil {
			log.WithError(err).Error("Failed to save replay")
		} else {
			log.WithField("path", path).Info("Replay saved")
		}
	}

	if !session.scored && session.State.Score > 0 {
		s.recordScore(session)
	}

	log.WithField("score", session.State.Score).Info("Session closed")
	return nil
}

// Sessions возвращает сводку по всем активным партиям, по времени старта.
func (s *GameService) Sessions() []SessionSummary {
	s.mu.RLock()
	out := make([]SessionSummary, 0, len(s.sessions))
	for _, h := range s.sessions {
		out = append(out, h.session.Summary())
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	return out
}

// Shutdown закрывает все сессии (с сохранением реплеев).
func (s *GameService) Shutdown() {
	s.mu.RLock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	for _, id := range ids {
		_ = s.CloseSession(id)
	}
}

// recordScore вызывается из горутины сессии при проигрыше и из CloseSession.
func (s *GameService) recordScore(session *Session) {
	session.scored = true
	if s.Scores == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	entry := domain.ScoreEntry{
		Name:      session.Name,
		Score:     session.State.Score,
		Level:     session.State.Level,
		Seed:      session.Seed,
		CreatedAt: s.clock(),
	}
	if err := s.Scores.Record(ctx, entry); err != nil {
		logger.Log.WithFields(logrus.Fields{
			"component":  "game_service",
			"session_id": session.ID,
		}).WithError(err).Error("Failed to record highscore")
	}
}
