package domain

import (
	"fmt"
	"strconv"
)

// AgentID - монотонный идентификатор агента. Никогда не переиспользуется.
type AgentID uint64

// NilAgentID - отсутствие агента
const NilAgentID AgentID = 0

// MarshalJSON сериализует ID в строку, так как JS теряет точность для больших int64
func (id AgentID) MarshalJSON() ([]byte, error) {
	s := strconv.FormatUint(uint64(id), 10)
	return []byte(`"` + s + `"`), nil
}

// UnmarshalJSON парсит строку или число из JSON
func (id *AgentID) UnmarshalJSON(data []byte) error {
	// Удаляем кавычки, если есть
	if len(data) > 1 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	val, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return err
	}
	*id = AgentID(val)
	return nil
}

// String для логов: #12
func (id AgentID) String() string {
	return fmt.Sprintf("#%d", uint64(id))
}
