package systems

import (
	"math"
	"math/rand"

	"wander-server/internal/domain"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// StepResult - результат одного шага агента за кадр
type StepResult struct {
	Removed    bool // Агент дошел до выхода и покидает комнату
	GoalReroll bool // Цель была перевыбрана (событие не публикуется)
	IsMoving   bool // Для выбора позы при отрисовке
}

// Step продвигает агента на один кадр. Меняет Pos, Vel и Goal.
// Speed, Leaving и косметику (LegPhase) не трогает.
func Step(a *domain.Agent, room domain.Room, rng *rand.Rand) StepResult {
	var res StepResult

	if a.Leaving() {
		dist := planar.Distance(a.Pos, room.ExitPoint)
		if dist < domain.ExitReachedDistance {
			res.Removed = true
			return res
		}
		// dist >= 5 здесь, деление безопасно
		a.Vel = scaleToward(a.Pos, room.ExitPoint, dist, a.Speed*domain.LeavingSpeedFactor)
	} else {
		dist := planar.Distance(a.Pos, a.Goal)
		if dist < domain.GoalReachedDistance {
			// Нулевая дистанция тоже попадает сюда, до любого деления
			a.Goal = room.RandomGoal(rng)
			dist = planar.Distance(a.Pos, a.Goal)
			res.GoalReroll = true
		}
		a.Vel = scaleToward(a.Pos, a.Goal, dist, a.Speed)
	}

	a.Pos = orb.Point{a.Pos.X() + a.Vel.X(), a.Pos.Y() + a.Vel.Y()}
	res.IsMoving = IsMoving(a.Vel)
	return res
}

// scaleToward возвращает вектор длиной speed в направлении from -> to.
// При нулевой дистанции направление не определено, возвращаем нулевой вектор.
func scaleToward(from, to orb.Point, dist, speed float64) orb.Point {
	if dist <= 0 || math.IsNaN(dist) {
		return orb.Point{}
	}
	dx := to.X() - from.X()
	dy := to.Y() - from.Y()
	return orb.Point{dx / dist * speed, dy / dist * speed}
}

// IsMoving - скорость заметна глазу, рисуем шагающие ноги
func IsMoving(vel orb.Point) bool {
	return math.Hypot(vel.X(), vel.Y()) > domain.MovingEpsilon
}
