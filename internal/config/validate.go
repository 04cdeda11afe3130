package config

import (
	"fmt"
	"slices"
	"time"
)

// ValidationIssue - проблема с конкретным значением
type ValidationIssue struct {
	Path    string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate проверяет конфиг. nil - все в порядке.
// Лимит популяции и интервал не проверяются: они зажимаются в допустимый диапазон.
func Validate(cfg *Config) []ValidationIssue {
	var issues []ValidationIssue

	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		issues = append(issues, ValidationIssue{
			Path:    "server.port",
			Message: fmt.Sprintf("port must be 0-65535, got %d", cfg.Server.Port),
		})
	}
	if cfg.Server.BroadcastEvery < 1 {
		issues = append(issues, ValidationIssue{
			Path:    "server.broadcast_every",
			Message: fmt.Sprintf("must be >= 1, got %d", cfg.Server.BroadcastEvery),
		})
	}

	if cfg.Sim.FPS < 1 || cfg.Sim.FPS > 240 {
		issues = append(issues, ValidationIssue{
			Path:    "sim.fps",
			Message: fmt.Sprintf("must be 1-240, got %d", cfg.Sim.FPS),
		})
	}
	if cfg.Sim.InitialPopulation < 0 {
		issues = append(issues, ValidationIssue{
			Path:    "sim.initial_population",
			Message: fmt.Sprintf("must be >= 0, got %d", cfg.Sim.InitialPopulation),
		})
	}
	if d, err := time.ParseDuration(cfg.Sim.TimeUnit); err != nil || d <= 0 {
		issues = append(issues, ValidationIssue{
			Path:    "sim.time_unit",
			Message: fmt.Sprintf("must be a positive duration, got %q", cfg.Sim.TimeUnit),
		})
	}

	validLevels := []string{"trace", "debug", "info", "warn", "warning", "error", "fatal", "panic"}
	if cfg.Logging.Level != "" && !slices.Contains(validLevels, cfg.Logging.Level) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", validLevels, cfg.Logging.Level),
		})
	}
	validFormats := []string{"text", "json"}
	if cfg.Logging.Format != "" && !slices.Contains(validFormats, cfg.Logging.Format) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.format",
			Message: fmt.Sprintf("must be one of %v, got %q", validFormats, cfg.Logging.Format),
		})
	}

	return issues
}
