package config

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load читает файл, накладывает переменные окружения и возвращает итоговый Config.
// Отсутствующий файл - только значения по умолчанию.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path == "" {
		applyEnvOverrides(&cfg)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(&cfg)
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, &ConfigError{Message: "failed to parse config: " + err.Error()}
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// applyDefaults заполняет нулевые поля
func applyDefaults(cfg *Config) {
	def := Defaults()
	if cfg.Server.Port == 0 {
		cfg.Server.Port = def.Server.Port
	}
	if cfg.Server.BroadcastEvery == 0 {
		cfg.Server.BroadcastEvery = def.Server.BroadcastEvery
	}
	if cfg.Sim.MaxPopulation == 0 {
		cfg.Sim.MaxPopulation = def.Sim.MaxPopulation
	}
	if cfg.Sim.Interval == 0 {
		cfg.Sim.Interval = def.Sim.Interval
	}
	if cfg.Sim.TimeUnit == "" {
		cfg.Sim.TimeUnit = def.Sim.TimeUnit
	}
	if cfg.Sim.FPS == 0 {
		cfg.Sim.FPS = def.Sim.FPS
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = def.Logging.Format
	}
}

// applyEnvOverrides читает WANDER_* и перекрывает значения из файла
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WANDER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("WANDER_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Sim.Seed = seed
		}
	}
	if v, ok := os.LookupEnv("WANDER_DB"); ok {
		cfg.Storage.DBPath = v
	}
	if v, ok := os.LookupEnv("WANDER_REPLAY_DIR"); ok {
		cfg.Storage.ReplayDir = v
	}
	if v := os.Getenv("WANDER_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
}
