package engine

import (
	"encoding/json"

	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/engine/handlers"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/pkg/logger"
	"github.com/sirupsen/logrus"
)

// processEvent - является точкой входа для обработки событий, возвращенных хендлерами.
func (s *Session) processEvent(eventData json.RawMessage) {
	log := logger.Log.WithFields(logrus.Fields{"component": "event_processor", "session_id": s.ID})

	var ev handlers.Event
	if err := json.Unmarshal(eventData, &ev); err != nil {
		log.WithError(err).Error("Error parsing event")
		return
	}

	switch ev.Event {
	case handlers.EventRegeneratePile:
		s.regeneratePile()
		log.WithFields(logrus.Fields{
			"level":  s.State.Level,
			"pieces": s.Pile.Len(),
		}).Debug("Pile regenerated")
	default:
		log.Warnf("Unknown event type: %s", ev.Event)
	}
}
