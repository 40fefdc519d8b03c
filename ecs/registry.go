package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry knows how to build column storage for each registered
// component type. Each Storage gets its own registry, so independent worlds
// (a game session and a soak run, say) never share type tables.
type ComponentRegistry struct {
	factories map[reflect.Type]func() column
}

// NewComponentRegistry creates an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() column),
	}
}

// RegisterComponent makes T usable as an entity component. Registering the
// same type twice is harmless.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() column {
		return &typedColumn[T]{}
	}
}

// Registered reports whether t has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) newColumn(t reflect.Type) column {
	factory, ok := r.factories[t]
	if !ok {
		panic("ecs: component type " + t.String() + " not registered")
	}
	return factory()
}

// column is the type-erased face of a typedColumn.
type column interface {
	insert(value any) int
	remove(row int)
	get(row int) any
	has(row int) bool
	rows() iter.Seq[int]
	count() int
}

const chunkSize = 64

// typedColumn stores values in fixed-size chunks so a pointer handed out by
// get stays valid while more rows are inserted.
type typedColumn[T any] struct {
	chunks []*[chunkSize]T
	live   []*[chunkSize]bool
	free   []int
	next   int
	alive  int
}

func (c *typedColumn[T]) insert(value any) int {
	var v T
	switch x := value.(type) {
	case T:
		v = x
	case *T:
		v = *x
	default:
		panic("ecs: value of type " + reflect.TypeOf(value).String() + " inserted into column of " + reflect.TypeFor[T]().String())
	}

	var row int
	if n := len(c.free); n > 0 {
		row = c.free[n-1]
		c.free = c.free[:n-1]
	} else {
		row = c.next
		c.next++
		if row/chunkSize >= len(c.chunks) {
			c.chunks = append(c.chunks, new([chunkSize]T))
			c.live = append(c.live, new([chunkSize]bool))
		}
	}

	c.chunks[row/chunkSize][row%chunkSize] = v
	c.live[row/chunkSize][row%chunkSize] = true
	c.alive++
	return row
}

func (c *typedColumn[T]) remove(row int) {
	if !c.has(row) {
		return
	}
	var zero T
	c.chunks[row/chunkSize][row%chunkSize] = zero
	c.live[row/chunkSize][row%chunkSize] = false
	c.free = append(c.free, row)
	c.alive--
}

func (c *typedColumn[T]) get(row int) any {
	if !c.has(row) {
		return nil
	}
	return &c.chunks[row/chunkSize][row%chunkSize]
}

func (c *typedColumn[T]) has(row int) bool {
	if row < 0 || row >= c.next {
		return false
	}
	return c.live[row/chunkSize][row%chunkSize]
}

func (c *typedColumn[T]) rows() iter.Seq[int] {
	return func(yield func(int) bool) {
		for row := 0; row < c.next; row++ {
			if !c.live[row/chunkSize][row%chunkSize] {
				continue
			}
			if !yield(row) {
				return
			}
		}
	}
}

func (c *typedColumn[T]) count() int {
	return c.alive
}
