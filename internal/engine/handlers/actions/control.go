package actions

import (
	"fmt"

	"wander-server/internal/engine/handlers"
	"wander-server/pkg/api"
)

// HandleSetMax меняет лимит популяции.
// Значение прижимается к [1, 50]; лишних людей никто не выгоняет.
func HandleSetMax(ctx handlers.Context, p api.ValuePayload) (handlers.Result, error) {
	applied := ctx.Controls.SetMaxPopulation(*p.Value)
	return handlers.Result{
		Msg:     fmt.Sprintf("Max population set to %d", applied),
		MsgType: "CONTROL",
	}, nil
}

// HandleSetInterval меняет период планировщика.
// Значение прижимается к [1, 60]; применяется со следующего перевзвода таймера.
func HandleSetInterval(ctx handlers.Context, p api.ValuePayload) (handlers.Result, error) {
	applied := ctx.Controls.SetInterval(*p.Value)
	return handlers.Result{
		Msg:     fmt.Sprintf("Interval set to %d", applied),
		MsgType: "CONTROL",
	}, nil
}
