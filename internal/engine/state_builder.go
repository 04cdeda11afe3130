package engine

import (
	"wander-server/internal/domain"
	"wander-server/pkg/api"

	"github.com/paulmach/orb"
)

// BuildState превращает кадр в DTO для клиента.
// Для INIT дополнительно прикладываем геометрию комнаты.
func BuildState(frame domain.Frame, room domain.Room, msgType string, logs []api.LogEntry) api.ServerResponse {
	agents := make([]api.AgentView, 0, len(frame.Agents))
	for _, st := range frame.Agents {
		agents = append(agents, toAgentView(st))
	}

	resp := api.ServerResponse{
		Type:            msgType,
		Frame:           frame.Number,
		Population:      frame.Population(),
		MaxPopulation:   frame.MaxPopulation,
		IntervalSeconds: frame.Interval,
		Agents:          agents,
		Logs:            logs,
	}

	if msgType == api.TypeInit {
		resp.Room = toRoomView(room)
	}
	return resp
}

func toAgentView(st domain.AgentState) api.AgentView {
	return api.AgentView{
		ID:       st.ID.String(),
		X:        st.Pos.X(),
		Y:        st.Pos.Y(),
		Leaving:  st.Leaving(),
		Color:    st.Color(),
		LegPhase: st.LegPhase,
		IsMoving: st.IsMoving,
	}
}

func toRoomView(room domain.Room) *api.RoomView {
	return &api.RoomView{
		Width:  room.Width(),
		Height: room.Height(),
		Entry:  toRectView(room.EntryDoor),
		Exit:   toRectView(room.ExitDoor),
	}
}

func toRectView(b orb.Bound) api.RectView {
	return api.RectView{
		X: b.Min.X(),
		Y: b.Min.Y(),
		W: b.Max.X() - b.Min.X(),
		H: b.Max.Y() - b.Min.Y(),
	}
}
