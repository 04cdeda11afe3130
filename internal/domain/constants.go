package domain

// Геометрия комнаты (в пикселях холста)
const (
	RoomWidth  = 700
	RoomHeight = 500

	DoorWidth  = 10
	DoorHeight = 60

	// Двери прижаты к правой стене, вход выше выхода
	EntryX = RoomWidth - 10
	EntryY = RoomHeight/2 - 80
	ExitX  = RoomWidth - 10
	ExitY  = RoomHeight/2 + 20
)

// Параметры движения (единицы комнаты за кадр)
const (
	GoalReachedDistance = 10.0
	ExitReachedDistance = 5.0

	MinSpeed   = 1.0
	SpeedRange = 1.5

	// Уходящие идут к выходу в два раза быстрее
	LeavingSpeedFactor = 2.0

	LegPhaseWander  = 0.2
	LegPhaseLeaving = 0.3

	// Порог скорости, ниже которого рисуем стоящую позу
	MovingEpsilon = 0.1
)

// Параметры популяции
const (
	DefaultMaxPopulation = 20
	MinMaxPopulation     = 1
	MaxMaxPopulation     = 50

	DefaultIntervalUnits = 15
	MinIntervalUnits     = 1
	MaxIntervalUnits     = 60

	InitialPopulation = 5

	// Вероятность того, что при срабатывании планировщика кто-то уйдет
	LeaveProbability = 0.7
)

// ClampMaxPopulation приводит значение к допустимому диапазону [1, 50]
func ClampMaxPopulation(n int) int {
	return clamp(n, MinMaxPopulation, MaxMaxPopulation)
}

// ClampInterval приводит интервал к допустимому диапазону [1, 60]
func ClampInterval(n int) int {
	return clamp(n, MinIntervalUnits, MaxIntervalUnits)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
