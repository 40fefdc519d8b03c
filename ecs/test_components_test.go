package ecs_test

import "github.com/plus3/pong/ecs"

// Common test component types
type Position struct {
	X, Y float64
}

type Velocity struct {
	DX, DY float64
}

type Name struct {
	Value string
}

type Paddle struct {
	HalfHeight float64
}

type Frozen struct{}

// Custom primitive types for testing non-struct components
type Points int32
type Label string

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Paddle](registry)
	ecs.RegisterComponent[Frozen](registry)
	ecs.RegisterComponent[Points](registry)
	ecs.RegisterComponent[Label](registry)
	return registry
}
