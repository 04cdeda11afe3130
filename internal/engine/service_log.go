package engine

import (
	"fmt"
	"time"

	"wander-server/pkg/api"
	"wander-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// AddLog добавляет запись в лог, который уйдет клиентам со следующей рассылкой
func (s *Service) AddLog(text, logType string) {
	now := time.Now()
	s.Logs = append(s.Logs, api.LogEntry{
		ID:        fmt.Sprintf("%d_%d", s.Sim.FrameNumber(), now.UnixNano()),
		Text:      text,
		Type:      logType,
		Timestamp: now.UnixMilli(),
	})
	logger.Log.WithFields(logrus.Fields{
		"component": "sim_log",
		"log_type":  logType,
	}).Info(text)
}
