package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"wander-server/internal/domain"
	"wander-server/internal/engine"
	"wander-server/internal/render"
	"wander-server/pkg/api"
	"wander-server/pkg/logger"

	"github.com/gdamore/tcell"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var (
		seed    int64
		logFile string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the simulation locally and draw it in the terminal",
		Long:  "Keys: + and - change max population, ] and [ change interval, q or Esc quits.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if seed != 0 {
				cfg.Sim.Seed = seed
			}

			// Экран занят терминалом, логи уходят в файл или в никуда
			var logOut io.Writer = io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
				if err != nil {
					return err
				}
				defer f.Close()
				logOut = f
			}
			logger.SetOutput(logOut)
			defer logger.SetOutput(os.Stdout)

			screen, err := tcell.NewScreen()
			if err != nil {
				return err
			}
			if err := screen.Init(); err != nil {
				return err
			}
			defer screen.Fini()

			return watch(commandContext(cmd), screen, cfg.ToEngineConfig())
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 0, "simulation seed, 0 for random")
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file while watching")
	return cmd
}

// watch крутит симуляцию и рисует каждый кадр, пока не нажат q/Esc или не отменен ctx
func watch(ctx context.Context, screen tcell.Screen, engineCfg engine.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Хук не должен блокировать цикл: лишние кадры выбрасываем
	frames := make(chan domain.Frame, 1)
	svc := engine.NewService(engineCfg, engine.WithFrameHook(func(f domain.Frame) {
		select {
		case frames <- f:
		default:
		}
	}))

	simDone := make(chan error, 1)
	go func() { simDone <- svc.Run(ctx) }()

	keys := make(chan *tcell.EventKey)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				// Экран закрыт
				return
			}
			if kev, ok := ev.(*tcell.EventKey); ok {
				select {
				case keys <- kev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	term := render.NewTerminal(screen)
	room := svc.Sim.Room()

	for {
		select {
		case <-ctx.Done():
			return <-simDone

		case f := <-frames:
			term.Draw(render.BuildScene(f, room))

		case kev := <-keys:
			kc, ok := render.ParseKey(kev)
			if !ok {
				continue
			}
			if kc.Quit {
				cancel()
				continue
			}
			if kc.MaxDelta != 0 {
				submitValue(svc, domain.ActionSetMax, svc.Sim.MaxPopulation()+kc.MaxDelta)
			}
			if kc.IntervalDelta != 0 {
				submitValue(svc, domain.ActionSetInterval, svc.Sim.Interval()+kc.IntervalDelta)
			}
		}
	}
}

func submitValue(svc *engine.Service, action domain.ActionType, value int) {
	payload, _ := json.Marshal(api.ValuePayload{Value: &value})
	if err := svc.ProcessCommand(api.ClientCommand{Action: action.String(), Payload: payload}); err != nil {
		logger.Log.WithError(err).Warn("Command dropped")
	}
}
