package ecs

import (
	"reflect"
	"unsafe"
)

// Singleton is a typed handle on world-wide state that belongs to no entity:
// rules, scores, input queues. Systems declare Singleton fields and the
// scheduler binds them on Register.
type Singleton[T any] struct {
	storage *Storage
	ptr     unsafe.Pointer
}

// NewSingleton returns a handle on the T singleton of storage, creating it
// from initializer (or the zero value) if it does not exist yet. An
// initializer passed for an existing singleton is ignored.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	t := reflect.TypeFor[T]()
	if storage.getSingletonEntry(t) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(&value)
	}

	s := &Singleton[T]{}
	s.Init(storage)
	return s
}

// Init binds the handle to storage. Called by the Scheduler.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.ptr = nil
	s.resolve()
}

func (s *Singleton[T]) resolve() {
	if s.storage == nil {
		return
	}
	if entry := s.storage.getSingletonEntry(reflect.TypeFor[T]()); entry != nil {
		s.ptr = entry.dataPtr
	}
}

// Get returns the singleton, or nil if it has not been added to storage.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil {
		s.resolve()
	}
	return (*T)(s.ptr)
}

// Exists reports whether the singleton has been added to storage.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
