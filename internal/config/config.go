// Package config читает настройки сервера из YAML и переменных окружения.
package config

import (
	"fmt"
	"time"
)

// ConfigError - ошибка разбора конфигурации
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Sim     SimConfig     `yaml:"sim"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Port           int `yaml:"port"`
	BroadcastEvery int `yaml:"broadcast_every"` // Рассылать кадр каждые N кадров
}

type SimConfig struct {
	Seed              int64  `yaml:"seed"` // 0 - взять от текущего времени
	MaxPopulation     int    `yaml:"max_population"`
	Interval          int    `yaml:"interval"` // В единицах TimeUnit
	InitialPopulation int    `yaml:"initial_population"`
	TimeUnit          string `yaml:"time_unit"`
	FPS               int    `yaml:"fps"`
}

type StorageConfig struct {
	DBPath    string `yaml:"db_path"`    // Пусто - журнал выключен
	ReplayDir string `yaml:"replay_dir"` // Пусто - записи не сохраняются
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Defaults возвращает конфиг со значениями по умолчанию
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:           8080,
			BroadcastEvery: 2,
		},
		Sim: SimConfig{
			MaxPopulation:     20,
			Interval:          15,
			InitialPopulation: 5,
			TimeUnit:          "1s",
			FPS:               60,
		},
		Storage: StorageConfig{
			DBPath:    "data/wander.db",
			ReplayDir: "replays",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// TimeUnitDuration разбирает sim.time_unit, при ошибке - секунда
func (c SimConfig) TimeUnitDuration() time.Duration {
	d, err := time.ParseDuration(c.TimeUnit)
	if err != nil || d <= 0 {
		return time.Second
	}
	return d
}
