package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/pprof"
	"time"

	"wander-server/internal/domain"
	"wander-server/internal/engine"
	"wander-server/internal/render"
	"wander-server/internal/store"
	"wander-server/internal/version"
	"wander-server/pkg/api"
	"wander-server/pkg/logger"
)

// History - чтение журнала событий (SQLite). Может отсутствовать.
type History interface {
	Recent(ctx context.Context, limit int) ([]store.Entry, error)
	Stats(ctx context.Context) (store.Stats, error)
}

type Server struct {
	Engine  *engine.Service
	History History
	Port    string
}

func New(engine *engine.Service, history History, port string) *Server {
	return &Server{
		Engine:  engine,
		History: history,
		Port:    port,
	}
}

// Handler собирает все роуты
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))
	mux.HandleFunc("GET /state", enableCORS(s.handleState))
	mux.HandleFunc("GET /frame.png", enableCORS(s.handleFramePNG))
	mux.HandleFunc("POST /control", enableCORS(s.handleControl))
	mux.HandleFunc("OPTIONS /control", enableCORS(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	debugHandler := NewDebugHandler(s.Engine, s.History)
	debugHandler.RegisterRoutes(mux)

	// Профилирование
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return mux
}

// Run запускает HTTP сервер и останавливает его при отмене ctx
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.Port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Infof("Wander server running on :%s", s.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Разрешаем запросы с фронтенда
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// handleWS обрабатывает подключение по WebSocket
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Error("Upgrade error")
		return
	}

	client := NewClient(s.Engine, conn)

	// Запускаем пампы
	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, version.Info())
}

// /state - текущий кадр в том же виде, что и UPDATE по WebSocket
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sim := s.Engine.Sim
	writeJSON(w, engine.BuildState(sim.Snapshot(), sim.Room(), api.TypeUpdate, nil))
}

func (s *Server) handleFramePNG(w http.ResponseWriter, r *http.Request) {
	sim := s.Engine.Sim
	scene := render.BuildScene(sim.Snapshot(), sim.Room())

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := render.EncodePNG(w, scene); err != nil {
		logger.Log.WithError(err).Warn("Failed to encode frame")
	}
}

// /control - смена лимита и интервала без WebSocket.
// Команды уходят в цикл симуляции, ответ содержит уже зажатые значения.
func (s *Server) handleControl(w http.ResponseWriter, r *http.Request) {
	var req api.ControlRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&req); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := api.ControlRequest{}
	if req.MaxPopulation != nil {
		if err := s.submit(domain.ActionSetMax, *req.MaxPopulation); err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		v := domain.ClampMaxPopulation(*req.MaxPopulation)
		resp.MaxPopulation = &v
	}
	if req.IntervalSeconds != nil {
		if err := s.submit(domain.ActionSetInterval, *req.IntervalSeconds); err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		v := domain.ClampInterval(*req.IntervalSeconds)
		resp.IntervalSeconds = &v
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) submit(action domain.ActionType, value int) error {
	payload, err := json.Marshal(api.ValuePayload{Value: &value})
	if err != nil {
		return err
	}
	return s.Engine.ProcessCommand(api.ClientCommand{
		Action:  action.String(),
		Payload: payload,
	})
}
