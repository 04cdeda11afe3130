package domain

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Agent - единственная сущность симуляции: человек, гуляющий по комнате.
//
// Speed и Hue задаются при создании и больше не меняются.
// Leaving переключается только в одну сторону (см. MarkLeaving).
type Agent struct {
	ID AgentID `json:"id"`

	Pos  orb.Point `json:"-"`
	Vel  orb.Point `json:"-"`
	Goal orb.Point `json:"-"`

	Speed float64 `json:"speed"`

	// Косметика: не влияет на движение
	Hue      float64 `json:"hue"`
	LegPhase float64 `json:"legPhase"`

	leaving bool
}

// NewAgent создает агента, который еще не уходит
func NewAgent(id AgentID, pos, goal orb.Point, speed, hue, legPhase float64) *Agent {
	return &Agent{
		ID:       id,
		Pos:      pos,
		Goal:     goal,
		Speed:    speed,
		Hue:      hue,
		LegPhase: legPhase,
	}
}

// Leaving true, если агент направляется к выходу
func (a *Agent) Leaving() bool {
	return a.leaving
}

// MarkLeaving помечает агента как уходящего.
// Возвращает false, если агент уже уходил (повторная пометка ничего не меняет).
func (a *Agent) MarkLeaving() bool {
	if a.leaving {
		return false
	}
	a.leaving = true
	return true
}

// Color - цвет тела в формате CSS
func (a *Agent) Color() string {
	return fmt.Sprintf("hsl(%.0f, 70%%, 60%%)", a.Hue)
}

// Clone возвращает независимую копию (для снапшотов)
func (a *Agent) Clone() Agent {
	return *a
}
