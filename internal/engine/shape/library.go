// Package shape holds the named point clouds the morph controller tweens between.
package shape

import "math/rand"

// ExplodeName is the pseudo-shape that scatters particles into a random cloud.
// It is never registered: its geometry is regenerated on every request.
const ExplodeName = "explode"

// ExplodeExtent is the half-size of the explode cube on every axis.
const ExplodeExtent = 250.0

// Library maps shape names to fixed-length point clouds in insertion order.
// Immutable after loading completes; clouds are flat x,y,z float arrays.
type Library struct {
	clouds map[string][]float32
	order  []string
}

// NewLibrary creates an empty shape library.
func NewLibrary() *Library {
	return &Library{
		clouds: make(map[string][]float32),
	}
}

// Register stores a cloud under name. Registering an existing name replaces
// the cloud but keeps its original position in the cycle order. Nil or empty
// clouds are rejected so an unavailable shape never enters the cycle.
func (l *Library) Register(name string, cloud []float32) bool {
	if name == "" || name == ExplodeName || len(cloud) == 0 {
		return false
	}
	if _, exists := l.clouds[name]; !exists {
		l.order = append(l.order, name)
	}
	l.clouds[name] = cloud
	return true
}

// Get returns the cloud registered under name, or nil if unknown.
func (l *Library) Get(name string) []float32 {
	return l.clouds[name]
}

// Names returns the registered shape names in insertion order.
// The returned slice is shared; callers must not mutate it.
func (l *Library) Names() []string {
	return l.order
}

// Len returns the number of registered shapes.
func (l *Library) Len() int {
	return len(l.order)
}

// IndexOf returns the cycle position of name, or -1 if not registered.
func (l *Library) IndexOf(name string) int {
	for i, n := range l.order {
		if n == name {
			return i
		}
	}
	return -1
}

// Explode generates count positions, each independently uniform within the
// explode cube. A fresh cloud is produced on every call and never cached:
// explode represents "no shape" and repeated requests never repeat geometry.
func (l *Library) Explode(count int) []float32 {
	if count <= 0 {
		return nil
	}
	cloud := make([]float32, count*3)
	for i := range cloud {
		cloud[i] = (rand.Float32()*2 - 1) * ExplodeExtent
	}
	return cloud
}
