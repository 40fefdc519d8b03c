package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// View reads entities through a struct of component pointers. T must be a
// struct whose fields are pointers to registered component types, plus at
// most one EntityId field that receives the entity's ID:
//
//	ecs.NewView[struct {
//		ecs.EntityId
//		*Position
//		*Velocity
//		Tag *Label `ecs:"optional"`
//	}](storage)
//
// Embedded fields are always required. Named fields tagged `ecs:"optional"`
// are nil when the entity lacks that component.
type View[T any] struct {
	storage  *Storage
	fields   []viewField
	idOffset uintptr
	hasId    bool
}

type viewField struct {
	typ      reflect.Type
	offset   uintptr
	optional bool
}

// NewView builds a view over storage, validating T.
func NewView[T any](storage *Storage) *View[T] {
	st := reflect.TypeFor[T]()
	if st.Kind() != reflect.Struct {
		panic("ecs: View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)

		if f.Type == entityIdType {
			if v.hasId {
				panic("ecs: View struct has more than one EntityId field")
			}
			v.hasId = true
			v.idOffset = f.Offset
			continue
		}

		if f.Type.Kind() != reflect.Pointer {
			panic("ecs: View field " + f.Name + " must be a component pointer")
		}

		optional := false
		if tag, ok := f.Tag.Lookup("ecs"); ok && !f.Anonymous {
			if tag != "optional" {
				panic("ecs: invalid tag value \"" + tag + "\" (only \"optional\" is supported)")
			}
			optional = true
		}

		v.fields = append(v.fields, viewField{
			typ:      f.Type.Elem(),
			offset:   f.Offset,
			optional: optional,
		})
	}
	return v
}

// matches reports whether every required component is present in a.
func (v *View[T]) matches(a *Archetype) bool {
	for _, f := range v.fields {
		if !f.optional && !a.HasComponent(f.typ) {
			return false
		}
	}
	return true
}

// bind maps each view field to a column of a, -1 when absent.
func (v *View[T]) bind(a *Archetype) []int {
	cols := make([]int, len(v.fields))
	for i, f := range v.fields {
		cols[i] = a.columnIndex(f.typ)
	}
	return cols
}

func (v *View[T]) fill(dst unsafe.Pointer, a *Archetype, row int, cols []int) bool {
	for i, f := range v.fields {
		slot := (*unsafe.Pointer)(unsafe.Add(dst, f.offset))

		var comp any
		if cols[i] != -1 {
			comp = a.columns[cols[i]].get(row)
		}
		if comp == nil {
			if !f.optional {
				return false
			}
			*slot = nil
			continue
		}
		*slot = dataPointer(comp)
	}

	if v.hasId {
		*(*EntityId)(unsafe.Add(dst, v.idOffset)) = NewEntityId(a.id, uint32(row))
	}
	return true
}

// Fill populates out for entity id. It returns false if the entity is gone
// or is missing a required component.
func (v *View[T]) Fill(id EntityId, out *T) bool {
	a, ok := v.storage.archetypes.Get(id.ArchetypeId())
	if !ok || !v.matches(a) {
		return false
	}
	return v.fill(unsafe.Pointer(out), a, int(id.Index()), v.bind(a))
}

// Get returns the populated view for id, or nil.
func (v *View[T]) Get(id EntityId) *T {
	var out T
	if !v.Fill(id, &out) {
		return nil
	}
	return &out
}

// iterArchetype yields every row of a that satisfies the view.
func (v *View[T]) iterArchetype(a *Archetype) iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		if len(a.columns) == 0 {
			return
		}
		cols := v.bind(a)
		var out T
		for row := range a.columns[0].rows() {
			if !v.fill(unsafe.Pointer(&out), a, row, cols) {
				continue
			}
			if !yield(NewEntityId(a.id, uint32(row)), out) {
				return
			}
		}
	}
}

// Iter yields every matching entity in archetype creation order.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, a := range v.storage.order {
			if !v.matches(a) {
				continue
			}
			for id, item := range v.iterArchetype(a) {
				if !yield(id, item) {
					return
				}
			}
		}
	}
}

// Values is Iter without the IDs.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range v.Iter() {
			if !yield(item) {
				return
			}
		}
	}
}
