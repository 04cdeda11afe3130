// Package cli - команды wander-server на cobra.
package cli

import (
	"fmt"

	"wander-server/internal/config"
	"wander-server/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string

	// Загружается в PersistentPreRunE
	cfg config.Config
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wander-server",
		Short: "People wandering in a room",
		Long:  "wander-server simulates people entering, wandering and leaving a room and streams frames to viewers.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(cfgFile)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Logging.Level = logLevel
			}

			if issues := config.Validate(&cfg); len(issues) > 0 {
				for _, issue := range issues {
					logger.Log.WithField("path", issue.Path).Error(issue.Message)
				}
				return fmt.Errorf("config validation failed with %d issue(s)", len(issues))
			}

			logger.SetLevel(cfg.Logging.Level)
			logger.SetFormat(cfg.Logging.Format)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newReplayCmd())
	cmd.AddCommand(newHistoryCmd())

	return cmd
}

// Execute запускает корневую команду
func Execute() error {
	return newRootCmd().Execute()
}
