package engine

import (
	"context"
	"fmt"
	"time"

	"wander-server/internal/domain"
	"wander-server/internal/engine/handlers"
	"wander-server/internal/engine/handlers/actions"
	"wander-server/internal/network"
	"wander-server/pkg/api"
	"wander-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// EventSink - куда уходят события жизненного цикла (журнал в SQLite)
type EventSink interface {
	Append(ctx context.Context, events []domain.Event) error
}

// RecordingSaver сохраняет ленту сессии при остановке
type RecordingSaver interface {
	Save(rec *domain.Recording) (string, error)
}

// Option настраивает Service
type Option func(*Service)

// WithJournal подключает журнал событий
func WithJournal(sink EventSink) Option {
	return func(s *Service) { s.journal = sink }
}

// WithRecorder сохраняет запись сессии при остановке
func WithRecorder(saver RecordingSaver) Option {
	return func(s *Service) { s.saver = saver }
}

// WithFrameHook вызывается на каждом кадре из цикла симуляции (терминальный режим).
// Хук не должен блокировать.
func WithFrameHook(fn func(domain.Frame)) Option {
	return func(s *Service) { s.frameHook = fn }
}

// Service - актор, который владеет циклом симуляции.
// Кадры, срабатывания планировщика и команды клиентов обрабатываются
// в одной горутине (Run), по одному за раз.
type Service struct {
	Sim *Simulation
	Hub *network.Broadcaster

	CommandChan chan domain.InternalCommand

	cfg      Config
	handlers map[domain.ActionType]handlers.HandlerFunc

	journal   EventSink
	saver     RecordingSaver
	frameHook func(domain.Frame)

	fireChan    chan chan struct{}
	journalChan chan []domain.Event

	Logs []api.LogEntry // Логи с прошлой рассылки

	log *logrus.Entry
}

func NewService(cfg Config, opts ...Option) *Service {
	s := &Service{
		Sim:         NewSimulation(cfg),
		Hub:         network.NewBroadcaster(),
		CommandChan: make(chan domain.InternalCommand, 100),
		cfg:         cfg,
		handlers:    make(map[domain.ActionType]handlers.HandlerFunc),
		fireChan:    make(chan chan struct{}),
		journalChan: make(chan []domain.Event, 256),
		Logs:        []api.LogEntry{},
		log:         logger.Component("engine"),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.registerHandlers()
	return s
}

func (s *Service) registerHandlers() {
	s.handlers[domain.ActionInit] = handlers.WithEmptyPayload(actions.HandleInit)
	s.handlers[domain.ActionSetMax] = handlers.WithPayload(actions.HandleSetMax)
	s.handlers[domain.ActionSetInterval] = handlers.WithPayload(actions.HandleSetInterval)
}

// Config параметры, с которыми запущен сервис
func (s *Service) Config() Config {
	return s.cfg
}

// ProcessCommand принимает команду от внешнего мира (WebSocket, HTTP, терминал).
// Сама команда выполняется позже, в цикле Run.
func (s *Service) ProcessCommand(externalCmd api.ClientCommand) error {
	actionType := domain.ParseAction(externalCmd.Action)
	if actionType == domain.ActionUnknown {
		return fmt.Errorf("unknown action: %q", externalCmd.Action)
	}

	select {
	case s.CommandChan <- domain.InternalCommand{
		Action:  actionType,
		Token:   externalCmd.Token,
		Payload: externalCmd.Payload,
	}:
		return nil
	default:
		return fmt.Errorf("command queue is full")
	}
}

// intervalDuration - следующий период планировщика, читается при каждом перевзводе
func (s *Service) intervalDuration() time.Duration {
	unit := s.cfg.TimeUnit
	if unit <= 0 {
		unit = time.Second
	}
	return time.Duration(s.Sim.Interval()) * unit
}

// Run запускает цикл симуляции и блокируется до отмены ctx.
func (s *Service) Run(ctx context.Context) error {
	s.log.WithFields(logrus.Fields{
		"seed":       s.cfg.Seed,
		"fps":        s.cfg.FPS,
		"max":        s.Sim.MaxPopulation(),
		"interval":   s.Sim.Interval(),
		"population": s.Sim.Population(),
	}).Info("Simulation loop started")

	journalDone := make(chan struct{})
	go s.runJournal(journalDone)

	// Таймер планировщика: следующий запуск взводится только после обработки текущего
	scheduler := NewRepeater(s.intervalDuration, s.requestFire(ctx))
	scheduler.Start()

	ticker := time.NewTicker(s.cfg.FrameDuration())

	for {
		select {
		case <-ctx.Done():
			ticker.Stop()
			scheduler.Stop()
			s.shutdown(journalDone)
			return nil

		case <-ticker.C:
			s.tick()

		case done := <-s.fireChan:
			s.fire()
			close(done)

		case cmd := <-s.CommandChan:
			s.executeCommand(cmd)
		}
	}
}

// requestFire переносит срабатывание таймера в цикл Run и ждет его завершения
func (s *Service) requestFire(ctx context.Context) func() {
	return func() {
		done := make(chan struct{})
		select {
		case s.fireChan <- done:
		case <-ctx.Done():
			return
		}
		select {
		case <-done:
		case <-ctx.Done():
		}
	}
}

// tick - один кадр: шаг симуляции, события, рассылка
func (s *Service) tick() {
	frame, events := s.Sim.AdvanceFrame()
	s.handleEvents(events)

	if s.frameHook != nil {
		s.frameHook(frame)
	}

	every := uint64(s.cfg.BroadcastEvery)
	if every == 0 {
		every = 1
	}
	if frame.Number%every == 0 {
		s.publishUpdate(frame)
	}
}

// fire - одно срабатывание планировщика
func (s *Service) fire() {
	events := s.Sim.ApplyScheduledEvent()
	s.log.WithFields(logrus.Fields{
		"events":     len(events),
		"population": s.Sim.Population(),
	}).Debug("Scheduler fired")
	s.handleEvents(events)
}

// executeCommand выполняет хендлер и пишет логи
func (s *Service) executeCommand(cmd domain.InternalCommand) {
	handler, ok := s.handlers[cmd.Action]
	if !ok {
		return
	}

	ctx := handlers.Context{
		Controls: s.Sim,
		ClientID: cmd.Token,
	}

	result, err := handler(ctx, cmd.Payload)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"client": cmd.Token,
			"action": cmd.Action.String(),
		}).WithError(err).Warn("Command rejected")
		s.sendError(cmd.Token, err)
		return
	}

	if result.Msg != "" {
		s.AddLog(result.Msg, result.MsgType)
	}
	if result.ReplyInit && cmd.Token != "" {
		s.Hub.SendTo(cmd.Token, BuildState(s.Sim.Snapshot(), s.Sim.Room(), api.TypeInit, nil))
	}
}

func (s *Service) sendError(clientID string, err error) {
	if clientID == "" {
		return
	}
	frame := s.Sim.Snapshot()
	resp := BuildState(frame, s.Sim.Room(), api.TypeError, nil)
	resp.Error = err.Error()
	s.Hub.SendTo(clientID, resp)
}

// publishUpdate рассылает кадр всем подписчикам и очищает накопленные логи
func (s *Service) publishUpdate(frame domain.Frame) {
	logsCopy := make([]api.LogEntry, len(s.Logs))
	copy(logsCopy, s.Logs)

	s.Hub.Broadcast(BuildState(frame, s.Sim.Room(), api.TypeUpdate, logsCopy))
	s.Logs = []api.LogEntry{}
}

// handleEvents пишет события в лог кадра и отправляет в журнал
func (s *Service) handleEvents(events []domain.Event) {
	if len(events) == 0 {
		return
	}
	for _, ev := range events {
		s.AddLog(describeEvent(ev), ev.Type.String())
	}

	select {
	case s.journalChan <- events:
	default:
		s.log.WithField("events", len(events)).Warn("Journal queue full, events dropped")
	}
}

func (s *Service) runJournal(done chan<- struct{}) {
	defer close(done)
	for events := range s.journalChan {
		if s.journal == nil {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := s.journal.Append(ctx, events); err != nil {
			s.log.WithError(err).Warn("Failed to write journal")
		}
		cancel()
	}
}

// shutdown дописывает журнал и сохраняет запись сессии
func (s *Service) shutdown(journalDone <-chan struct{}) {
	close(s.journalChan)
	<-journalDone

	if s.saver != nil {
		rec := s.Sim.Recording()
		path, err := s.saver.Save(&rec)
		if err != nil {
			s.log.WithError(err).Error("Failed to save recording")
		} else {
			s.log.WithField("path", path).Info("Recording saved")
		}
	}

	s.log.WithField("frames", s.Sim.FrameNumber()).Info("Simulation loop stopped")
}

func describeEvent(ev domain.Event) string {
	switch ev.Type {
	case domain.EventAdmitted:
		return fmt.Sprintf("Person %s entered the room", ev.AgentID)
	case domain.EventMarkedLeaving:
		return fmt.Sprintf("Person %s is heading for the exit", ev.AgentID)
	case domain.EventExited:
		return fmt.Sprintf("Person %s left the room", ev.AgentID)
	default:
		return fmt.Sprintf("Person %s: %s", ev.AgentID, ev.Type)
	}
}
