package engine

import (
	"fmt"

	"wander-server/internal/domain"
	"wander-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Replay детерминированно повторяет записанную сессию.
// Генератор один на всю симуляцию, поэтому порядок "действия кадра, затем шаг"
// дает тот же результат, что и живая сессия.
func Replay(rec domain.Recording, room domain.Room) (*Simulation, error) {
	sim := NewSimulation(Config{
		Seed:              rec.Seed,
		MaxPopulation:     int(rec.MaxPopulation),
		Interval:          int(rec.Interval),
		InitialPopulation: int(rec.InitialPopulation),
		Room:              room,
	})

	log := logger.Log.WithFields(logrus.Fields{
		"component": "replay",
		"seed":      rec.Seed,
		"frames":    rec.Frames,
		"actions":   len(rec.Actions),
	})
	log.Info("Replay started")

	idx := 0
	for f := uint64(0); ; f++ {
		for idx < len(rec.Actions) && rec.Actions[idx].Frame == f {
			if err := applyRecorded(sim, rec.Actions[idx]); err != nil {
				return nil, err
			}
			idx++
		}
		if idx < len(rec.Actions) && rec.Actions[idx].Frame < f {
			return nil, fmt.Errorf("action %d is out of order (frame %d < %d)", idx, rec.Actions[idx].Frame, f)
		}
		if f >= rec.Frames {
			break
		}
		sim.AdvanceFrame()
	}

	if idx != len(rec.Actions) {
		return nil, fmt.Errorf("%d actions recorded after the last frame", len(rec.Actions)-idx)
	}

	log.WithField("population", sim.Population()).Info("Replay finished")
	return sim, nil
}

func applyRecorded(sim *Simulation, act domain.RecordedAction) error {
	switch act.Kind {
	case domain.RecordFire:
		sim.ApplyScheduledEvent()
	case domain.RecordSetMax:
		sim.SetMaxPopulation(int(act.Value))
	case domain.RecordSetInterval:
		sim.SetInterval(int(act.Value))
	default:
		return fmt.Errorf("unknown recorded action kind %d at frame %d", act.Kind, act.Frame)
	}
	return nil
}
