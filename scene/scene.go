// Package scene is a minimal scene-graph component registry.
//
// The host engine owns the real scene graph; this package models just
// enough of it for runtime discovery: named objects carrying arbitrary
// components, and typed lookup across a scene. Providers register their
// manager components here and the facade resolves them with Find.
package scene

import "sync"

// Object is a named scene-graph node holding components.
type Object struct {
	name string

	mu         sync.RWMutex
	components []any
}

// NewObject creates an empty object with the given name.
func NewObject(name string) *Object {
	return &Object{name: name}
}

// Name returns the object's name.
func (o *Object) Name() string { return o.name }

// Attach adds a component to the object.
func (o *Object) Attach(component any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.components = append(o.components, component)
}

// Components returns a snapshot of the object's components.
func (o *Object) Components() []any {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]any, len(o.components))
	copy(out, o.components)
	return out
}

// ComponentOf returns the first component of type T attached to o.
func ComponentOf[T any](o *Object) (T, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	for _, c := range o.components {
		if t, ok := c.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// Scene is an ordered collection of objects.
type Scene struct {
	mu      sync.RWMutex
	objects []*Object
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{}
}

// Add places an object into the scene.
func (s *Scene) Add(o *Object) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = append(s.objects, o)
}

// Objects returns a snapshot of the scene's objects in insertion order.
func (s *Scene) Objects() []*Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Object, len(s.objects))
	copy(out, s.objects)
	return out
}

// FindObject returns the first object with the given name.
func (s *Scene) FindObject(name string) (*Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.objects {
		if o.name == name {
			return o, true
		}
	}
	return nil, false
}

// Find returns the first component of type T anywhere in the scene,
// scanning objects in insertion order.
func Find[T any](s *Scene) (T, bool) {
	s.mu.RLock()
	objects := make([]*Object, len(s.objects))
	copy(objects, s.objects)
	s.mu.RUnlock()

	for _, o := range objects {
		if t, ok := ComponentOf[T](o); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}
