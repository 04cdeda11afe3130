package engine

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"wander-server/internal/domain"
	"wander-server/pkg/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryJournal struct {
	mu     sync.Mutex
	events []domain.Event
}

func (j *memoryJournal) Append(_ context.Context, events []domain.Event) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, events...)
	return nil
}

func (j *memoryJournal) count(t domain.EventType) int {
	j.mu.Lock()
	defer j.mu.Unlock()
	n := 0
	for _, ev := range j.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

type memorySaver struct {
	saved []*domain.Recording
}

func (m *memorySaver) Save(rec *domain.Recording) (string, error) {
	m.saved = append(m.saved, rec)
	return "memory", nil
}

func fastConfig() Config {
	cfg := testConfig(77)
	cfg.TimeUnit = 2 * time.Millisecond
	cfg.Interval = 1
	cfg.FPS = 100
	cfg.BroadcastEvery = 1
	return cfg
}

func startService(t *testing.T, s *Service) (cancel func()) {
	ctx, stop := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	return func() {
		stop()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("service did not stop")
		}
	}
}

func waitFor(t *testing.T, ch <-chan api.ServerResponse, msgType string) api.ServerResponse {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case msg, ok := <-ch:
			require.True(t, ok, "channel closed")
			if msg.Type == msgType {
				return msg
			}
		case <-deadline:
			t.Fatalf("no %s message received", msgType)
		}
	}
}

func TestService_BroadcastsFrames(t *testing.T) {
	s := NewService(fastConfig())
	updates := s.Hub.Register("viewer")

	stop := startService(t, s)
	defer stop()

	first := waitFor(t, updates, api.TypeUpdate)
	second := waitFor(t, updates, api.TypeUpdate)
	assert.Greater(t, second.Frame, first.Frame)
	assert.Equal(t, domain.DefaultMaxPopulation, second.MaxPopulation)
	assert.Len(t, second.Agents, second.Population)
	assert.Nil(t, second.Room, "room geometry is sent only in INIT")
}

func TestService_CommandsAndInit(t *testing.T) {
	s := NewService(fastConfig())
	updates := s.Hub.Register("viewer")

	stop := startService(t, s)
	defer stop()

	require.NoError(t, s.ProcessCommand(api.ClientCommand{Token: "viewer", Action: "INIT"}))
	initMsg := waitFor(t, updates, api.TypeInit)
	require.NotNil(t, initMsg.Room)
	assert.Equal(t, 700.0, initMsg.Room.Width)

	require.NoError(t, s.ProcessCommand(api.ClientCommand{
		Token:   "viewer",
		Action:  "SET_MAX",
		Payload: json.RawMessage(`{"value": 3}`),
	}))
	require.NoError(t, s.ProcessCommand(api.ClientCommand{
		Token:   "viewer",
		Action:  "set_interval",
		Payload: json.RawMessage(`{"value": 120}`),
	}))
	require.Eventually(t, func() bool {
		return s.Sim.MaxPopulation() == 3 && s.Sim.Interval() == domain.MaxIntervalUnits
	}, time.Second, time.Millisecond)

	require.NoError(t, s.ProcessCommand(api.ClientCommand{
		Token:   "viewer",
		Action:  "SET_MAX",
		Payload: json.RawMessage(`{}`),
	}))
	errMsg := waitFor(t, updates, api.TypeError)
	assert.Contains(t, errMsg.Error, "value is required")

	assert.Error(t, s.ProcessCommand(api.ClientCommand{Action: "DANCE"}))
}

func TestService_SchedulerJournalAndRecording(t *testing.T) {
	journal := &memoryJournal{}
	saver := &memorySaver{}

	var frames sync.WaitGroup
	frames.Add(1)
	var once sync.Once
	s := NewService(fastConfig(),
		WithJournal(journal),
		WithRecorder(saver),
		WithFrameHook(func(domain.Frame) { once.Do(frames.Done) }),
	)

	stop := startService(t, s)
	frames.Wait()
	require.Eventually(t, func() bool {
		return journal.count(domain.EventAdmitted) >= 3
	}, 2*time.Second, time.Millisecond)
	stop()

	require.Len(t, saver.saved, 1)
	rec := saver.saved[0]
	assert.Equal(t, int64(77), rec.Seed)
	assert.NotEmpty(t, rec.Actions)
	assert.Equal(t, domain.RecordFire, rec.Actions[0].Kind)

	// Запись воспроизводится
	replayed, err := Replay(*rec, domain.DefaultRoom())
	require.NoError(t, err)
	assert.Equal(t, s.Sim.Population(), replayed.Population())
}
