package ecs

import (
	"iter"
	"reflect"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// Storage owns every entity and singleton of one world.
type Storage struct {
	registry   *ComponentRegistry
	archetypes *intmap.Map[uint32, *Archetype]
	// order keeps archetypes in creation order so iteration is deterministic.
	order []*Archetype

	singletons     *intmap.Map[uint64, *singletonEntry]
	singletonOrder []reflect.Type
}

type singletonEntry struct {
	typ     reflect.Type
	dataPtr unsafe.Pointer
}

// NewStorage creates an empty world backed by registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		archetypes: intmap.New[uint32, *Archetype](16),
		singletons: intmap.New[uint64, *singletonEntry](16),
	}
}

// Registry returns the component registry the storage was created with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Spawn creates a new entity from the given component values. Values may be
// passed directly or by pointer; either way the storage keeps its own copy.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("ecs: cannot spawn entity without components")
	}

	types := make([]reflect.Type, len(components))
	byType := make(map[reflect.Type]any, len(components))
	for i, comp := range components {
		t := componentType(comp)
		if _, dup := byType[t]; dup {
			panic("ecs: duplicate component " + t.String() + " in spawn")
		}
		types[i] = t
		byType[t] = comp
	}
	sortTypes(types)

	ordered := make([]any, len(types))
	for i, t := range types {
		ordered[i] = byType[t]
	}

	archetype := s.archetypeFor(types)
	row := archetype.spawn(ordered)
	return NewEntityId(archetype.id, row)
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := archetypeHash(types)
	if a, ok := s.archetypes.Get(id); ok {
		return a
	}
	a := newArchetype(id, types, s.registry)
	s.archetypes.Put(id, a)
	s.order = append(s.order, a)
	return a
}

// Delete removes the entity. Unknown IDs are ignored.
func (s *Storage) Delete(id EntityId) {
	if a, ok := s.archetypes.Get(id.ArchetypeId()); ok {
		a.remove(id.Index())
	}
}

// Alive reports whether id refers to a live entity.
func (s *Storage) Alive(id EntityId) bool {
	a, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok || len(a.columns) == 0 {
		return false
	}
	return a.columns[0].has(int(id.Index()))
}

// GetComponent returns a pointer to the entity's component of type t, or nil.
func (s *Storage) GetComponent(id EntityId, t reflect.Type) any {
	a, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return nil
	}
	return a.Component(id.Index(), t)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, t reflect.Type) bool {
	a, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return false
	}
	return a.HasComponent(t)
}

// Archetypes yields every archetype in creation order.
func (s *Storage) Archetypes() iter.Seq[*Archetype] {
	return func(yield func(*Archetype) bool) {
		for _, a := range s.order {
			if !yield(a) {
				return
			}
		}
	}
}

// EntityCount returns the number of live entities across all archetypes.
func (s *Storage) EntityCount() int {
	n := 0
	for _, a := range s.order {
		n += a.Len()
	}
	return n
}

// AddSingleton stores value as the single instance of its type, replacing any
// previous value. Pointers to an existing singleton stay valid.
func (s *Storage) AddSingleton(value any) {
	t := componentType(value)
	src := reflect.ValueOf(value)
	if src.Kind() == reflect.Pointer {
		src = src.Elem()
	}

	if entry := s.getSingletonEntry(t); entry != nil {
		reflect.NewAt(t, entry.dataPtr).Elem().Set(src)
		return
	}

	ptr := reflect.New(t)
	ptr.Elem().Set(src)
	s.singletons.Put(uint64(typeKey(t)), &singletonEntry{
		typ:     t,
		dataPtr: ptr.UnsafePointer(),
	})
	s.singletonOrder = append(s.singletonOrder, t)
}

// ReadSingleton points *out at the stored singleton. out must be a **T.
// It returns false, leaving *out untouched, when no T singleton exists.
func (s *Storage) ReadSingleton(out any) bool {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Pointer {
		panic("ecs: ReadSingleton needs a pointer to a pointer")
	}
	t := rv.Elem().Type().Elem()
	entry := s.getSingletonEntry(t)
	if entry == nil {
		return false
	}
	rv.Elem().Set(reflect.NewAt(t, entry.dataPtr))
	return true
}

// Singletons yields every singleton in insertion order, each as a pointer to
// the stored value.
func (s *Storage) Singletons() iter.Seq2[reflect.Type, any] {
	return func(yield func(reflect.Type, any) bool) {
		for _, t := range s.singletonOrder {
			entry := s.getSingletonEntry(t)
			if !yield(t, reflect.NewAt(t, entry.dataPtr).Interface()) {
				return
			}
		}
	}
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	entry, ok := s.singletons.Get(uint64(typeKey(t)))
	if !ok {
		return nil
	}
	return entry
}

func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t == nil {
		panic("ecs: nil component")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
		panic("ecs: components cannot be pointers, maps, channels, or functions")
	}
	return t
}

// ComponentReader is satisfied by Storage and by anything else that can
// resolve components by entity.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T component, or nil if it has none.
func ReadComponent[T any](reader ComponentReader, id EntityId) *T {
	comp, _ := reader.GetComponent(id, reflect.TypeFor[T]()).(*T)
	return comp
}
