package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"wander-server/internal/engine"
	"wander-server/internal/store"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Service *engine.Service
	History History
}

func NewDebugHandler(s *engine.Service, history History) *DebugHandler {
	return &DebugHandler{Service: s, History: history}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/agents", h.handleDumpAgents)
	mux.HandleFunc("/debug/history", h.handleHistory)
	mux.HandleFunc("/debug/stats", h.handleStats)
}

// /debug/agents - полный дамп агентов, включая скорость и цель
func (h *DebugHandler) handleDumpAgents(w http.ResponseWriter, r *http.Request) {
	type AgentDump struct {
		ID       string     `json:"id"`
		Pos      [2]float64 `json:"pos"`
		Vel      [2]float64 `json:"vel"`
		Goal     [2]float64 `json:"goal"`
		Speed    float64    `json:"speed"`
		Hue      float64    `json:"hue"`
		LegPhase float64    `json:"leg_phase"`
		Leaving  bool       `json:"leaving"`
		IsMoving bool       `json:"is_moving"`
	}

	frame := h.Service.Sim.Snapshot()
	dump := make([]AgentDump, 0, len(frame.Agents))
	for _, st := range frame.Agents {
		dump = append(dump, AgentDump{
			ID:       st.ID.String(),
			Pos:      st.Pos,
			Vel:      st.Vel,
			Goal:     st.Goal,
			Speed:    st.Speed,
			Hue:      st.Hue,
			LegPhase: st.LegPhase,
			Leaving:  st.Leaving(),
			IsMoving: st.IsMoving,
		})
	}

	writeJSON(w, dump)
}

// /debug/history?limit=50 - последние события из журнала
func (h *DebugHandler) handleHistory(w http.ResponseWriter, r *http.Request) {
	if h.History == nil {
		http.Error(w, "Journal is disabled", http.StatusNotFound)
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = min(n, 1000)
	}

	entries, err := h.History.Recent(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	type EventView struct {
		ID      int64      `json:"id"`
		Session string     `json:"session"`
		Kind    string     `json:"kind"`
		AgentID string     `json:"agent_id"`
		Frame   uint64     `json:"frame"`
		Pos     [2]float64 `json:"pos"`
		At      string     `json:"at"`
	}

	views := make([]EventView, 0, len(entries))
	for _, e := range entries {
		views = append(views, EventView{
			ID:      e.ID,
			Session: e.Session,
			Kind:    e.Event.Type.String(),
			AgentID: e.Event.AgentID.String(),
			Frame:   e.Event.Frame,
			Pos:     e.Event.Pos,
			At:      e.Event.At.Format("2006-01-02T15:04:05.000Z07:00"),
		})
	}
	writeJSON(w, views)
}

// /debug/stats - счетчики цикла, подписчиков и журнала
func (h *DebugHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	sim := h.Service.Sim
	cfg := h.Service.Config()

	stats := struct {
		Seed          int64        `json:"seed"`
		Frame         uint64       `json:"frame"`
		Population    int          `json:"population"`
		MaxPopulation int          `json:"max_population"`
		Interval      int          `json:"interval"`
		Subscribers   int          `json:"subscribers"`
		Dropped       uint64       `json:"dropped_messages"`
		Journal       *store.Stats `json:"journal,omitempty"`
	}{
		Seed:          cfg.Seed,
		Frame:         sim.FrameNumber(),
		Population:    sim.Population(),
		MaxPopulation: sim.MaxPopulation(),
		Interval:      sim.Interval(),
		Subscribers:   h.Service.Hub.SubscriberCount(),
		Dropped:       h.Service.Hub.Dropped(),
	}

	if h.History != nil {
		js, err := h.History.Stats(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		stats.Journal = &js
	}

	writeJSON(w, stats)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Если data == nil, возвращаем пустой массив [], а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
