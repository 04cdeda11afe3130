package api

import (
	"encoding/json"
)

// Типы сообщений сервер -> клиент
const (
	TypeInit   = "INIT"
	TypeUpdate = "UPDATE"
	TypeError  = "ERROR"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Он представляет собой полный "снимок" комнаты на текущем кадре.
// UPDATE рассылается всем подписчикам каждые N кадров.
type ServerResponse struct {
	// Type тип сообщения: INIT (ответ на INIT), UPDATE или ERROR.
	Type string `json:"type"`

	// Frame номер кадра симуляции. Монотонно растет.
	Frame uint64 `json:"frame"`

	// Population текущее количество людей в комнате.
	Population int `json:"population"`

	// MaxPopulation настроенный лимит. Population может временно его превышать,
	// если лимит уменьшили после того, как люди уже вошли.
	MaxPopulation int `json:"maxPopulation"`

	// IntervalSeconds период планировщика (в единицах времени).
	IntervalSeconds int `json:"intervalSeconds"`

	// Room геометрия комнаты. Отправляется только в INIT.
	Room *RoomView `json:"room,omitempty"`

	// Agents все люди в комнате.
	Agents []AgentView `json:"agents"`

	// Logs события жизненного цикла с прошлой рассылки.
	Logs []LogEntry `json:"logs,omitempty"`

	// Error текст ошибки (только для Type == ERROR).
	Error string `json:"error,omitempty"`
}

// RectView прямоугольник в координатах комнаты
type RectView struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// RoomView описывает комнату и двери, чтобы клиент мог нарисовать фон.
type RoomView struct {
	Width  float64  `json:"w"`
	Height float64  `json:"h"`
	Entry  RectView `json:"entry"`
	Exit   RectView `json:"exit"`
}

// AgentView это DTO для одного человека.
type AgentView struct {
	ID string `json:"id"`

	X float64 `json:"x"`
	Y float64 `json:"y"`

	Leaving bool `json:"leaving"`

	// Косметика для отрисовки
	Color    string  `json:"color"`
	LegPhase float64 `json:"legPhase"`
	IsMoving bool    `json:"isMoving"`
}

// LogEntry представляет одну запись в логе событий.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // ADMITTED, MARKED_LEAVING, EXITED, CONTROL
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token ID клиента. Проставляется сервером, клиентский ввод игнорируется.
	Token string `json:"token,omitempty"`

	// Action название действия: INIT, SET_MAX, SET_INTERVAL.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// ValuePayload используется для SET_MAX и SET_INTERVAL.
// Значение вне диапазона не ошибка: сервер прижимает его к границам.
type ValuePayload struct {
	Value *int `json:"value"`
}

// ControlRequest - тело POST /control. Оба поля опциональны.
type ControlRequest struct {
	MaxPopulation   *int `json:"maxPopulation,omitempty"`
	IntervalSeconds *int `json:"intervalSeconds,omitempty"`
}
