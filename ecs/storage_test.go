package ecs_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/plus3/pong/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIdEncoding(t *testing.T) {
	tests := []struct {
		archetypeId uint32
		index       uint32
	}{
		{0, 0},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{1, 0},
		{0, 1},
		{0x12345678, 0x9ABCDEF0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("archetype=%d,index=%d", tt.archetypeId, tt.index), func(t *testing.T) {
			id := ecs.NewEntityId(tt.archetypeId, tt.index)
			assert.Equal(t, tt.archetypeId, id.ArchetypeId())
			assert.Equal(t, tt.index, id.Index())
		})
	}
}

func TestSpawnAndGetComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 3, Y: 4}, Label("ball"))
	assert.True(t, storage.Alive(id))

	pos := ecs.ReadComponent[Position](storage, id)
	require.NotNil(t, pos)
	assert.Equal(t, 3.0, pos.X)
	assert.Equal(t, 4.0, pos.Y)

	label := ecs.ReadComponent[Label](storage, id)
	require.NotNil(t, label)
	assert.Equal(t, Label("ball"), *label)

	assert.Nil(t, ecs.ReadComponent[Velocity](storage, id))
	assert.Nil(t, storage.GetComponent(id, reflect.TypeFor[Velocity]()))
}

func TestSpawnOrderDoesNotChangeArchetype(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{}, Velocity{})
	b := storage.Spawn(Velocity{}, Position{})

	assert.Equal(t, a.ArchetypeId(), b.ArchetypeId())
	assert.NotEqual(t, a.Index(), b.Index())
}

func TestSpawnPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { storage.Spawn() })
	assert.Panics(t, func() { storage.Spawn(Position{}, Position{}) })
	assert.Panics(t, func() { storage.Spawn(map[string]int{}) })

	type unregistered struct{}
	assert.Panics(t, func() { storage.Spawn(unregistered{}) })
}

func TestComponentMutation(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 1, Y: 1})

	pos := ecs.ReadComponent[Position](storage, id)
	pos.X = 10
	pos.Y = 20

	again := ecs.ReadComponent[Position](storage, id)
	assert.Equal(t, 10.0, again.X)
	assert.Equal(t, 20.0, again.Y)
	assert.Same(t, pos, again)
}

func TestPointersStayValidAcrossSpawns(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Position{X: -1})
	pos := ecs.ReadComponent[Position](storage, first)

	for i := range 500 {
		storage.Spawn(Position{X: float64(i)})
	}

	pos.X = 42
	assert.Equal(t, 42.0, ecs.ReadComponent[Position](storage, first).X)
}

func TestDeleteReusesRow(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id1 := storage.Spawn(Position{X: 1}, Velocity{DX: 1})
	id2 := storage.Spawn(Position{X: 2}, Velocity{DX: 2})
	id3 := storage.Spawn(Position{X: 3}, Velocity{DX: 3})

	storage.Delete(id2)
	assert.False(t, storage.Alive(id2))
	assert.Nil(t, storage.GetComponent(id2, reflect.TypeFor[Position]()))
	assert.Equal(t, 2, storage.EntityCount())

	assert.Equal(t, 1.0, ecs.ReadComponent[Position](storage, id1).X)
	assert.Equal(t, 3.0, ecs.ReadComponent[Position](storage, id3).X)

	id4 := storage.Spawn(Position{X: 4}, Velocity{DX: 4})
	assert.Equal(t, id2, id4)
	assert.Equal(t, 4.0, ecs.ReadComponent[Position](storage, id4).X)

	// Deleting twice or deleting unknown IDs is a no-op.
	storage.Delete(id2)
	storage.Delete(id2)
	storage.Delete(ecs.NewEntityId(7, 7))
	assert.Equal(t, 2, storage.EntityCount())
}

func TestHasComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{}, Velocity{})

	assert.True(t, storage.HasComponent(id, reflect.TypeFor[Position]()))
	assert.True(t, storage.HasComponent(id, reflect.TypeFor[Velocity]()))
	assert.False(t, storage.HasComponent(id, reflect.TypeFor[Name]()))
}

func TestArchetypesIterateInCreationOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Name{Value: "a"})
	storage.Spawn(Position{}, Velocity{})
	storage.Spawn(Points(3))

	var got []string
	for a := range storage.Archetypes() {
		got = append(got, a.String())
	}

	assert.Equal(t, []string{
		"{ecs_test.Name}",
		"{ecs_test.Position, ecs_test.Velocity}",
		"{ecs_test.Points}",
	}, got)
}
