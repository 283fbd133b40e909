package engine

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/domain"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/engine/handlers"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/systems"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/pkg/api"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/pkg/logger"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/pkg/woodpile"
	"github.com/sirupsen/logrus"
)

// SessionSummary - то, что видно о сессии снаружи ее горутины.
type SessionSummary struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Seed      int64             `json:"seed"`
	Tick      int               `json:"tick"`
	Level     int               `json:"level"`
	Score     int               `json:"score"`
	Health    int               `json:"health"`
	Status    domain.GameStatus `json:"status"`
	LiveCount int               `json:"liveCount"`
	StartedAt time.Time         `json:"startedAt"`
}

// Session представляет собой одну изолированную партию одного игрока.
//
// Состоянием (State, Pile) владеет только горутина Run: снаружи сессия
// доступна через CommandChan, Snapshot и Summary.
type Session struct {
	ID   string
	Name string
	Seed int64

	cfg      Config
	stab     systems.StabilityConfig
	handlers map[domain.ActionType]handlers.HandlerFunc

	State *domain.GameState
	Pile  *domain.Pile

	CommandChan chan domain.InternalCommand
	snapshots   chan chan *api.ServerResponse
	done        chan struct{}

	Tick   int
	Logs   []api.LogEntry        // Логи с прошлой рассылки
	Rng    *rand.Rand            // Локальный генератор
	Replay *domain.ReplaySession // Лента событий

	clock      func() time.Time
	publish    func(*api.ServerResponse)
	onGameOver func(*Session)

	// scored - рекорд этой партии уже записан.
	scored bool

	mu      sync.RWMutex
	summary SessionSummary
}

func newSession(id, name string, seed int64, cfg Config, hs map[domain.ActionType]handlers.HandlerFunc, clock func() time.Time) *Session {
	if clock == nil {
		clock = time.Now
	}
	s := &Session{
		ID:          id,
		Name:        name,
		Seed:        seed,
		cfg:         cfg,
		stab:        cfg.StabilityConfig(),
		handlers:    hs,
		State:       systems.NewGameState(cfg.Rules, cfg.Pile.CreatureProbability),
		CommandChan: make(chan domain.InternalCommand, cfg.QueueSize),
		snapshots:   make(chan chan *api.ServerResponse),
		done:        make(chan struct{}),
		Logs:        []api.LogEntry{},
		Rng:         rand.New(rand.NewSource(seed)),
		clock:       clock,
		Replay: &domain.ReplaySession{
			Level:     1,
			Seed:      seed,
			Timestamp: clock().Unix(),
			Name:      name,
			Actions:   make([]domain.ReplayAction, 0),
		},
	}
	s.regeneratePile()
	s.summary = SessionSummary{ID: id, Name: name, Seed: seed, StartedAt: clock()}
	s.refreshSummary()
	return s
}

// Run запускает цикл ЭТОЙ сессии. Возвращается по отмене ctx.
func (s *Session) Run(ctx context.Context) {
	log := logger.Log.WithFields(logrus.Fields{"component": "session", "session_id": s.ID})
	log.Info("Session loop started")
	defer close(s.done)

	for {
		// Таймер встречи пересоздается на каждой итерации от дедлайна,
		// поэтому HOVER во время встречи его не сдвигает.
		var expire <-chan time.Time
		if enc := s.State.Encounter; enc != nil {
			expire = time.After(enc.Remaining(s.clock()))
		}

		select {
		case <-ctx.Done():
			log.Info("Session loop stopped")
			return

		case cmd := <-s.CommandChan:
			s.emit(s.Handle(cmd))

		case <-expire:
			s.emit(s.Handle(domain.InternalCommand{Action: domain.ActionExpire, Token: s.ID}))

		case reply := <-s.snapshots:
			reply <- s.BuildState(domain.ResponseUpdate)
		}
	}
}

// Done закрывается, когда Run завершился.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Snapshot запрашивает у горутины сессии полный снимок.
func (s *Session) Snapshot(ctx context.Context) (*api.ServerResponse, error) {
	reply := make(chan *api.ServerResponse, 1)
	select {
	case s.snapshots <- reply:
	case <-s.done:
		return nil, ErrSessionClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case resp := <-reply:
		return resp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Summary - последние известные показатели партии. Безопасно из любой горутины.
func (s *Session) Summary() SessionSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

// Handle синхронно выполняет одну команду и возвращает ответ для клиента.
// Вызывается только из горутины сессии (или из Playback, где горутины нет).
func (s *Session) Handle(cmd domain.InternalCommand) *api.ServerResponse {
	handler, ok := s.handlers[cmd.Action]
	if !ok {
		s.AddLog("Unknown action: "+cmd.Action.String(), domain.LogError)
		return s.BuildError()
	}

	ctx := handlers.Context{
		Rules:                   s.cfg.Rules,
		Stability:               s.stab,
		State:                   s.State,
		Pile:                    s.Pile,
		Now:                     s.clock(),
		BaseCreatureProbability: s.cfg.Pile.CreatureProbability,
	}
	before := s.State.Status

	result, err := handler(ctx, cmd.Payload)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"component":  "session",
			"session_id": s.ID,
			"action":     cmd.Action.String(),
		}).WithError(err).Debug("Command rejected")
		s.AddLog(err.Error(), domain.LogError)
		return s.BuildError()
	}

	if cmd.Action == domain.ActionHover {
		return s.BuildPrediction(result.Hovered, result.Affected)
	}

	if cmd.Action.IsRecorded() {
		s.recordAction(cmd, result.RecordAs)
	}

	if result.Msg != "" {
		s.AddLog(result.Msg, result.MsgType)
	}
	if result.Event != nil {
		s.processEvent(result.Event)
	}

	s.afterStatusChange(before)
	s.refreshSummary()

	resp := s.BuildState(domain.ResponseUpdate)
	resp.Collapsed = pieceIDs(result.Collapsed)
	return resp
}

func (s *Session) afterStatusChange(before domain.GameStatus) {
	after := s.State.Status
	if after == before {
		return
	}

	switch after {
	case domain.StatusGameOver:
		s.AddLog(fmt.Sprintf("The woodpile wins this time. Final score: %d", s.State.Score), domain.LogGameOver)
		if s.onGameOver != nil && !s.scored {
			s.onGameOver(s)
		}
		s.scored = true
	case domain.StatusLevelCleared:
		s.AddLog("Level cleared! Ready for a bigger pile?", domain.LogCleared)
	case domain.StatusPlaying:
		if before == domain.StatusGameOver {
			s.scored = false // RESTART после проигрыша - новая партия
		}
	}
}

func (s *Session) recordAction(cmd domain.InternalCommand, recordAs domain.ActionType) {
	action := cmd.Action
	if recordAs != domain.ActionUnknown {
		action = recordAs
	}
	s.Tick++
	s.Replay.Actions = append(s.Replay.Actions, domain.ReplayAction{
		Tick:    s.Tick,
		Token:   cmd.Token,
		Action:  action,
		Payload: cmd.Payload,
	})
	s.Replay.Level = s.State.Level
}

func (s *Session) regeneratePile() {
	gen := s.cfg.GeneratorConfig(s.State.CreatureProbability)
	s.Pile = woodpile.Generate(gen, s.Rng)
}

func (s *Session) emit(resp *api.ServerResponse) {
	if s.publish != nil && resp != nil {
		s.publish(resp)
	}
}

func (s *Session) refreshSummary() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary.Tick = s.Tick
	s.summary.Level = s.State.Level
	s.summary.Score = s.State.Score
	s.summary.Health = s.State.Health
	s.summary.Status = s.State.Status
	s.summary.LiveCount = s.Pile.LiveCount()
}

func pieceIDs(pieces []*domain.Piece) []string {
	if len(pieces) == 0 {
		return nil
	}
	out := make([]string, len(pieces))
	for i, p := range pieces {
		out[i] = p.ID.String()
	}
	return out
}
