package domain

import "strings"

// ActionType - Внутренний числовой идентификатор управляющей команды
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionSetMax
	ActionSetInterval
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"INIT":         ActionInit,
	"SET_MAX":      ActionSetMax,
	"SET_INTERVAL": ActionSetInterval,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionInit:        "INIT",
	ActionSetMax:      "SET_MAX",
	ActionSetInterval: "SET_INTERVAL",
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(s)
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}
