package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultRoom_Doors(t *testing.T) {
	room := DefaultRoom()

	assert.Equal(t, 700.0, room.Width())
	assert.Equal(t, 500.0, room.Height())

	// Обе двери на одной стене, вход выше выхода
	assert.Equal(t, room.EntryDoor.Min.X(), room.ExitDoor.Min.X())
	assert.Less(t, room.EntryDoor.Min.Y(), room.ExitDoor.Min.Y())

	assert.Equal(t, 660.0, room.Spawn.X())
	assert.Equal(t, 200.0, room.Spawn.Y())
	assert.Equal(t, 690.0, room.ExitPoint.X())
	assert.Equal(t, 300.0, room.ExitPoint.Y())
}

func TestRoom_RandomGoalInsideGoalArea(t *testing.T) {
	room := DefaultRoom()
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 1000; i++ {
		g := room.RandomGoal(rng)
		assert.True(t, room.GoalArea.Contains(g), "goal %v outside goal area", g)
		assert.True(t, room.Bounds.Contains(g))

		s := room.RandomSeedPoint(rng)
		assert.True(t, room.SeedArea.Contains(s), "seed %v outside seed area", s)
	}
}
