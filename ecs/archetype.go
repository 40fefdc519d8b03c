package ecs

import (
	"iter"
	"reflect"
	"slices"
	"strings"
	"unsafe"
)

// Archetype holds every entity that has exactly one particular set of
// component types. All of its columns grow and shrink together, so a row
// index addresses the same entity in each column.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []column
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]column, len(types)),
	}
	for i, t := range types {
		a.columns[i] = registry.newColumn(t)
	}
	return a
}

// spawn inserts one entity. components must line up with a.types.
func (a *Archetype) spawn(components []any) uint32 {
	row := -1
	for i, comp := range components {
		r := a.columns[i].insert(comp)
		if row != -1 && r != row {
			panic("ecs: archetype columns out of step")
		}
		row = r
	}
	return uint32(row)
}

func (a *Archetype) remove(row uint32) {
	for _, c := range a.columns {
		c.remove(int(row))
	}
}

func (a *Archetype) columnIndex(t reflect.Type) int {
	return slices.Index(a.types, t)
}

// Component returns a pointer to the component of type t stored at row, or nil.
func (a *Archetype) Component(row uint32, t reflect.Type) any {
	idx := a.columnIndex(t)
	if idx == -1 {
		return nil
	}
	return a.columns[idx].get(int(row))
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(t reflect.Type) bool {
	return a.columnIndex(t) != -1
}

// ID returns the archetype's unique identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the component types in their canonical (name-sorted) order.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities.
func (a *Archetype) Len() int {
	if len(a.columns) == 0 {
		return 0
	}
	return a.columns[0].count()
}

// Iter yields the IDs of all live entities.
func (a *Archetype) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		if len(a.columns) == 0 {
			return
		}
		for row := range a.columns[0].rows() {
			if !yield(NewEntityId(a.id, uint32(row))) {
				return
			}
		}
	}
}

// String lists the component type names, e.g. "{pong.Ball, pong.Position}".
func (a *Archetype) String() string {
	names := make([]string, len(a.types))
	for i, t := range a.types {
		names[i] = t.String()
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// eface mirrors the runtime layout of an interface value.
type eface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// dataPointer returns the pointer held in v, which must wrap a pointer type.
func dataPointer(v any) unsafe.Pointer {
	return (*eface)(unsafe.Pointer(&v)).data
}

// typeKey gives a reflect.Type a stable integer identity for the lifetime of
// the process.
func typeKey(t reflect.Type) uintptr {
	return uintptr((*eface)(unsafe.Pointer(&t)).data)
}

func sortTypes(types []reflect.Type) {
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(a.String(), b.String())
	})
}

// archetypeHash is FNV-1a over the type identities of a sorted type set.
func archetypeHash(types []reflect.Type) uint32 {
	const (
		offset uint32 = 2166136261
		prime  uint32 = 16777619
	)
	h := offset
	for _, t := range types {
		k := uint64(typeKey(t))
		for shift := 0; shift < 64; shift += 8 {
			h ^= uint32(byte(k >> shift))
			h *= prime
		}
	}
	return h
}
