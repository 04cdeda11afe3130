package systems

import (
	"math"
	"math/rand"

	"wander-server/internal/domain"
)

// SpawnAtEntry создает агента у входной двери с нулевой фазой шага
func SpawnAtEntry(id domain.AgentID, room domain.Room, rng *rand.Rand) *domain.Agent {
	goal := room.RandomGoal(rng)
	speed := randomSpeed(rng)
	hue := rng.Float64() * 360
	return domain.NewAgent(id, room.Spawn, goal, speed, hue, 0)
}

// SpawnInside создает агента в случайной точке комнаты (начальное заселение)
func SpawnInside(id domain.AgentID, room domain.Room, rng *rand.Rand) *domain.Agent {
	pos := room.RandomSeedPoint(rng)
	goal := room.RandomSeedPoint(rng)
	speed := randomSpeed(rng)
	hue := rng.Float64() * 360
	phase := rng.Float64() * math.Pi * 2
	return domain.NewAgent(id, pos, goal, speed, hue, phase)
}

// PickLeaver с вероятностью LeaveProbability выбирает случайного агента.
// Возвращает -1, если никто не выбран.
func PickLeaver(population int, rng *rand.Rand) int {
	if population == 0 {
		return -1
	}
	if rng.Float64() <= 1-domain.LeaveProbability {
		return -1
	}
	return rng.Intn(population)
}

func randomSpeed(rng *rand.Rand) float64 {
	return domain.MinSpeed + rng.Float64()*domain.SpeedRange
}
