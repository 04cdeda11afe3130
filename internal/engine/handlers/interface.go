package handlers

import (
	"encoding/json"
)

// Controls - то, что команды клиента могут менять в симуляции.
// Simulation неявно реализует этот интерфейс.
type Controls interface {
	SetMaxPopulation(n int) int
	SetInterval(n int) int
}

// Context передает хендлеру доступ к симуляции и автора команды.
type Context struct {
	Controls Controls
	ClientID string // Кто прислал команду (пусто для HTTP /control)
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в логи сервиса напрямую, он возвращает данные.
type Result struct {
	Msg     string // Текст лога
	MsgType string // Тип лога (CONTROL)

	// ReplyInit - отправить автору полный снимок с геометрией комнаты
	ReplyInit bool
}

// HandlerFunc - это контракт для любой команды (SET_MAX, SET_INTERVAL, INIT).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}
