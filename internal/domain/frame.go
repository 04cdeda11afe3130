package domain

// AgentState - агент плюс поза, вычисленная на последнем кадре
type AgentState struct {
	Agent
	IsMoving bool
}

// Frame - неизменяемый снимок комнаты после кадра.
// Агенты скопированы по значению, снимок можно отдавать в другие горутины.
type Frame struct {
	Number        uint64
	Agents        []AgentState
	MaxPopulation int
	Interval      int
}

// Population количество людей в кадре
func (f Frame) Population() int {
	return len(f.Agents)
}
