package engine

import (
	"time"

	"wander-server/internal/domain"
)

// Config хранит параметры запуска движка
type Config struct {
	// Seed - зерно генератора. Одинаковый Seed + одинаковая запись = одинаковая симуляция.
	Seed int64

	MaxPopulation     int
	Interval          int // В единицах TimeUnit
	InitialPopulation int

	// TimeUnit - длительность одной единицы интервала (в проде секунда, в тестах миллисекунды)
	TimeUnit time.Duration

	FPS int
	// BroadcastEvery - рассылаем UPDATE каждые N кадров
	BroadcastEvery int

	Room domain.Room
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:              time.Now().UnixNano(),
		MaxPopulation:     domain.DefaultMaxPopulation,
		Interval:          domain.DefaultIntervalUnits,
		InitialPopulation: domain.InitialPopulation,
		TimeUnit:          time.Second,
		FPS:               60,
		BroadcastEvery:    2,
		Room:              domain.DefaultRoom(),
	}
}

// FrameDuration период одного кадра
func (c Config) FrameDuration() time.Duration {
	fps := c.FPS
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}
