package domain

import (
	"math/rand"

	"github.com/paulmach/orb"
)

// Room - неизменяемая геометрия комнаты.
// Ось Y направлена вниз, как на холсте.
type Room struct {
	Bounds orb.Bound `json:"-"`

	EntryDoor orb.Bound `json:"-"`
	ExitDoor  orb.Bound `json:"-"`

	// Spawn - точка появления новых агентов (чуть левее входной двери)
	Spawn orb.Point `json:"-"`
	// ExitPoint - точка, к которой идут уходящие агенты
	ExitPoint orb.Point `json:"-"`

	// SeedArea - область для начального заселения
	SeedArea orb.Bound `json:"-"`
	// GoalArea - область случайных целей (отступ от дверей больше)
	GoalArea orb.Bound `json:"-"`
}

// DefaultRoom возвращает комнату 700x500 с дверьми на правой стене.
func DefaultRoom() Room {
	return Room{
		Bounds:    rect(0, 0, RoomWidth, RoomHeight),
		EntryDoor: rect(EntryX, EntryY, DoorWidth, DoorHeight),
		ExitDoor:  rect(ExitX, ExitY, DoorWidth, DoorHeight),
		Spawn:     orb.Point{EntryX - 30, EntryY + DoorHeight/2},
		ExitPoint: orb.Point{ExitX, ExitY + DoorHeight/2},
		SeedArea:  rect(50, 50, RoomWidth-100, RoomHeight-100),
		GoalArea:  rect(50, 50, RoomWidth-150, RoomHeight-100),
	}
}

// Width ширина комнаты
func (r Room) Width() float64 { return r.Bounds.Max.X() - r.Bounds.Min.X() }

// Height высота комнаты
func (r Room) Height() float64 { return r.Bounds.Max.Y() - r.Bounds.Min.Y() }

// RandomGoal выбирает новую цель внутри GoalArea
func (r Room) RandomGoal(rng *rand.Rand) orb.Point {
	return RandomPoint(r.GoalArea, rng)
}

// RandomSeedPoint выбирает точку для начального заселения
func (r Room) RandomSeedPoint(rng *rand.Rand) orb.Point {
	return RandomPoint(r.SeedArea, rng)
}

// RandomPoint возвращает равномерно распределенную точку в [Min, Max)
func RandomPoint(b orb.Bound, rng *rand.Rand) orb.Point {
	w := b.Max.X() - b.Min.X()
	h := b.Max.Y() - b.Min.Y()
	return orb.Point{
		b.Min.X() + rng.Float64()*w,
		b.Min.Y() + rng.Float64()*h,
	}
}

func rect(x, y, w, h float64) orb.Bound {
	return orb.Bound{Min: orb.Point{x, y}, Max: orb.Point{x + w, y + h}}
}
