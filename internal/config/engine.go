package config

import (
	"time"

	"wander-server/internal/domain"
	"wander-server/internal/engine"
)

// ToEngineConfig переводит настройки в параметры движка.
// Лимит и интервал зажимаются в допустимые диапазоны.
func (c Config) ToEngineConfig() engine.Config {
	cfg := engine.NewConfig()
	if c.Sim.Seed != 0 {
		cfg.Seed = c.Sim.Seed
	} else {
		cfg.Seed = time.Now().UnixNano()
	}
	cfg.MaxPopulation = domain.ClampMaxPopulation(c.Sim.MaxPopulation)
	cfg.Interval = domain.ClampInterval(c.Sim.Interval)
	cfg.InitialPopulation = max(c.Sim.InitialPopulation, 0)
	cfg.TimeUnit = c.Sim.TimeUnitDuration()
	cfg.FPS = c.Sim.FPS
	cfg.BroadcastEvery = c.Server.BroadcastEvery
	return cfg
}
