package engine

import (
	"fmt"
	"time"

	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/domain"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Playback прогоняет запись партии без сети и таймеров.
//
// Часы сессии заморожены на времени записи: каждый REACT в реплее попадает
// в окно реакции, а опоздания записаны как EXPIRE. Возвращает итоговую сессию.
func (s *GameService) Playback(replay *domain.ReplaySession) (*Session, error) {
	if replay == nil {
		return nil, fmt.Errorf("playback: empty replay")
	}

	frozen := time.Unix(replay.Timestamp, 0)
	session := newSession("replay", replay.Name, replay.Seed, s.Config, s.handlers, func() time.Time { return frozen })

	log := logger.Log.WithFields(logrus.Fields{
		"component": "playback",
		"seed":      replay.Seed,
		"actions":   len(replay.Actions),
	})
	log.Info("Playback started")

	for i, act := range replay.Actions {
		resp := session.Handle(domain.InternalCommand{
			Action:  act.Action,
			Token:   session.ID,
			Payload: act.Payload,
		})
		if resp.Type == domain.ResponseError {
			return session, fmt.Errorf("playback: action %d (%s) rejected", i, act.Action)
		}
	}

	log.WithFields(logrus.Fields{
		"score":  session.State.Score,
		"level":  session.State.Level,
		"status": session.State.Status,
	}).Info("Playback finished")

	return session, nil
}
