package engine

import (
	"fmt"

	"github.com/JFSvensson/Within-the-Woodpile-sub001/pkg/api"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/pkg/logger"
	"github.com/sirupsen/logrus"
)

// AddLog добавляет лог в историю сессии
func (s *Session) AddLog(text, logType string) {
	now := s.clock()
	s.Logs = append(s.Logs, api.LogEntry{
		ID:        fmt.Sprintf("%s_%d_%d", s.ID, s.Tick, len(s.Logs)),
		Text:      text,
		Type:      logType,
		Timestamp: now.UnixMilli(),
	})
	logger.Log.WithFields(logrus.Fields{
		"session":   s.ID,
		"component": "game_log",
		"log_type":  logType,
	}).Debug(text)
}

// drainLogs отдает накопленные логи и очищает буфер.
func (s *Session) drainLogs() []api.LogEntry {
	if len(s.Logs) == 0 {
		return nil
	}
	logs := s.Logs
	s.Logs = []api.LogEntry{}
	return logs
}
