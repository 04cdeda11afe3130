package engine

import (
	"math/rand"
	"sync"
	"time"

	"wander-server/internal/domain"
	"wander-server/internal/systems"

	"github.com/paulmach/orb"
)

// Simulation - единственный владелец коллекции агентов.
//
// Все изменения идут через ApplyScheduledEvent, AdvanceFrame и сеттеры,
// каждый под одним мьютексом. Два источника времени (кадры и планировщик)
// никогда не пересекаются посреди обновления.
type Simulation struct {
	mu sync.Mutex

	room domain.Room
	rng  *rand.Rand
	now  func() time.Time

	agents []*domain.Agent
	moving map[domain.AgentID]bool
	nextID domain.AgentID
	frame  uint64

	maxPopulation int
	interval      int

	recording *domain.Recording
}

// NewSimulation создает комнату и заселяет ее InitialPopulation агентами
func NewSimulation(cfg Config) *Simulation {
	room := cfg.Room
	if room.Bounds == (orb.Bound{}) {
		room = domain.DefaultRoom()
	}

	s := &Simulation{
		room:          room,
		rng:           rand.New(rand.NewSource(cfg.Seed)),
		now:           time.Now,
		moving:        make(map[domain.AgentID]bool),
		nextID:        1,
		maxPopulation: domain.ClampMaxPopulation(cfg.MaxPopulation),
		interval:      domain.ClampInterval(cfg.Interval),
	}

	s.recording = &domain.Recording{
		Seed:              cfg.Seed,
		Timestamp:         time.Now().Unix(),
		InitialPopulation: int32(cfg.InitialPopulation),
		MaxPopulation:     int32(s.maxPopulation),
		Interval:          int32(s.interval),
		Actions:           make([]domain.RecordedAction, 0),
	}

	for i := 0; i < cfg.InitialPopulation; i++ {
		s.agents = append(s.agents, systems.SpawnInside(s.allocID(), s.room, s.rng))
	}

	return s
}

func (s *Simulation) allocID() domain.AgentID {
	id := s.nextID
	s.nextID++
	return id
}

// ApplyScheduledEvent - одно срабатывание планировщика:
//  1. впускаем нового человека, если есть место;
//  2. независимо от этого с вероятностью 70% отправляем случайного человека к выходу.
func (s *Simulation) ApplyScheduledEvent() []domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record(domain.RecordFire, 0)

	var events []domain.Event
	at := s.now()

	if len(s.agents) < s.maxPopulation {
		a := systems.SpawnAtEntry(s.allocID(), s.room, s.rng)
		s.agents = append(s.agents, a)
		events = append(events, s.event(domain.EventAdmitted, a, at))
	}

	if idx := systems.PickLeaver(len(s.agents), s.rng); idx >= 0 {
		a := s.agents[idx]
		// Повторная пометка ничего не меняет и событий не порождает
		if a.MarkLeaving() {
			events = append(events, s.event(domain.EventMarkedLeaving, a, at))
		}
	}

	return events
}

// AdvanceFrame двигает всех агентов на один кадр, убирает дошедших до выхода
// и возвращает снимок нового кадра.
func (s *Simulation) AdvanceFrame() (domain.Frame, []domain.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var events []domain.Event
	at := s.now()
	s.frame++

	alive := s.agents[:0]
	for _, a := range s.agents {
		res := systems.Step(a, s.room, s.rng)
		if res.Removed {
			delete(s.moving, a.ID)
			events = append(events, s.event(domain.EventExited, a, at))
			continue
		}
		systems.Animate(a)
		s.moving[a.ID] = res.IsMoving
		alive = append(alive, a)
	}
	// Чистим хвост, чтобы не держать удаленных агентов
	for i := len(alive); i < len(s.agents); i++ {
		s.agents[i] = nil
	}
	s.agents = alive

	return s.snapshotLocked(), events
}

// Snapshot возвращает текущий кадр без продвижения симуляции
func (s *Simulation) Snapshot() domain.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Simulation) snapshotLocked() domain.Frame {
	states := make([]domain.AgentState, len(s.agents))
	for i, a := range s.agents {
		states[i] = domain.AgentState{Agent: a.Clone(), IsMoving: s.moving[a.ID]}
	}
	return domain.Frame{
		Number:        s.frame,
		Agents:        states,
		MaxPopulation: s.maxPopulation,
		Interval:      s.interval,
	}
}

// SetMaxPopulation меняет лимит. Действует со следующего срабатывания планировщика,
// никого не выселяет. Возвращает примененное (прижатое) значение.
func (s *Simulation) SetMaxPopulation(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxPopulation = domain.ClampMaxPopulation(n)
	s.record(domain.RecordSetMax, s.maxPopulation)
	return s.maxPopulation
}

// SetInterval меняет период планировщика. Уже взведенный таймер не трогаем:
// новый период применится при следующем перевзводе.
func (s *Simulation) SetInterval(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interval = domain.ClampInterval(n)
	s.record(domain.RecordSetInterval, s.interval)
	return s.interval
}

// MaxPopulation текущий лимит
func (s *Simulation) MaxPopulation() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxPopulation
}

// Interval текущий период планировщика в единицах времени
func (s *Simulation) Interval() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// Population текущее количество агентов
func (s *Simulation) Population() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.agents)
}

// FrameNumber сколько кадров уже прошло
func (s *Simulation) FrameNumber() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// Room геометрия комнаты (неизменяемая)
func (s *Simulation) Room() domain.Room {
	return s.room
}

// Recording возвращает копию ленты действий на текущий момент
func (s *Simulation) Recording() domain.Recording {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := *s.recording
	rec.Frames = s.frame
	rec.Actions = make([]domain.RecordedAction, len(s.recording.Actions))
	copy(rec.Actions, s.recording.Actions)
	return rec
}

func (s *Simulation) record(kind domain.RecordKind, value int) {
	s.recording.Actions = append(s.recording.Actions, domain.RecordedAction{
		Frame: s.frame,
		Kind:  kind,
		Value: int32(value),
	})
}

func (s *Simulation) event(t domain.EventType, a *domain.Agent, at time.Time) domain.Event {
	return domain.Event{
		Type:    t,
		AgentID: a.ID,
		Frame:   s.frame,
		Pos:     a.Pos,
		At:      at,
	}
}
