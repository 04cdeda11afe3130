package actions

import (
	"wander-server/internal/engine/handlers"
)

// HandleInit просит движок отправить клиенту полный снимок комнаты
func HandleInit(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Result{ReplyInit: true}, nil
}
