package domain

import (
	"strings"
	"time"

	"github.com/paulmach/orb"
)

// EventType - Внутренний числовой идентификатор события жизненного цикла агента
type EventType uint8

const (
	EventUnknown EventType = iota
	EventAdmitted
	EventMarkedLeaving
	EventExited
	// Смена цели намеренно не является событием
)

// Маппинг для конвертации JSON -> Domain
var eventStringToType = map[string]EventType{
	"ADMITTED":       EventAdmitted,
	"MARKED_LEAVING": EventMarkedLeaving,
	"EXITED":         EventExited,
}

// Маппинг для логов Domain -> String
var eventTypeToString = map[EventType]string{
	EventAdmitted:      "ADMITTED",
	EventMarkedLeaving: "MARKED_LEAVING",
	EventExited:        "EXITED",
}

// ParseEvent конвертирует строку из JSON (или БД) в EventType
func ParseEvent(s string) EventType {
	upper := strings.ToUpper(s)
	if val, ok := eventStringToType[upper]; ok {
		return val
	}
	return EventUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (e EventType) String() string {
	if val, ok := eventTypeToString[e]; ok {
		return val
	}
	return "UNKNOWN"
}

// Event - что произошло с агентом и на каком кадре
type Event struct {
	Type    EventType
	AgentID AgentID
	Frame   uint64
	Pos     orb.Point
	At      time.Time
}
