package cli

import (
	"context"
	"errors"
	"os/signal"
	"strconv"
	"syscall"

	"wander-server/internal/engine"
	"wander-server/internal/infrastructure/storage"
	"wander-server/internal/server"
	"wander-server/internal/store"
	"wander-server/internal/version"
	"wander-server/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		port int
		seed int64
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the simulation and serve it over HTTP and WebSocket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != 0 {
				cfg.Server.Port = port
			}
			if seed != 0 {
				cfg.Sim.Seed = seed
			}

			logger.Log.Info("Starting wander-server...")
			logger.Log.Info(version.String())

			engineCfg := cfg.ToEngineConfig()
			logger.Log.WithFields(logrus.Fields{
				"seed":     engineCfg.Seed,
				"max":      engineCfg.MaxPopulation,
				"interval": engineCfg.Interval,
			}).Info("Simulation configured")

			var opts []engine.Option
			var history server.History

			if cfg.Storage.DBPath != "" {
				db, err := store.Open(cfg.Storage.DBPath)
				if err != nil {
					return err
				}
				defer db.Close()

				journal := store.NewJournal(db)
				opts = append(opts, engine.WithJournal(journal))
				history = journal
				logger.Log.WithField("session", journal.Session()).Info("Journal enabled")
			}
			if cfg.Storage.ReplayDir != "" {
				opts = append(opts, engine.WithRecorder(storage.NewReplayService(cfg.Storage.ReplayDir)))
			}

			svc := engine.NewService(engineCfg, opts...)
			srv := server.New(svc, history, strconv.Itoa(cfg.Server.Port))

			ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			simDone := make(chan error, 1)
			go func() { simDone <- svc.Run(ctx) }()

			httpErr := srv.Run(ctx)
			// Сервер упал сам - останавливаем и симуляцию
			stop()
			simErr := <-simDone

			logger.Log.Info("Shutting down...")
			return errors.Join(httpErr, simErr)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "HTTP port (overrides config)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "simulation seed, 0 for random (overrides config)")
	return cmd
}

// Контекст по умолчанию для команд, запущенных без Execute (тесты)
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
