// SPDX-License-Identifier: MIT

package kmeans

import (
	"fmt"
	"sort"
	"sync"
)

// Constructor builds a Clusterer for the given seed.
type Constructor func(seed int64) Clusterer

// Registry maps algorithm names to constructors. Names are case-sensitive.
// The zero value is empty; use NewRegistry for the built-ins.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Constructor
}

// Built-in algorithm names.
const (
	AlgorithmKMeans      = "KMeans"
	AlgorithmKMeansAlias = "kmeans"
)

// NewRegistry returns a registry holding "KMeans" and its alias "kmeans".
func NewRegistry() *Registry {
	r := &Registry{}
	ctor := func(seed int64) Clusterer { return New(seed) }
	r.Register(AlgorithmKMeans, ctor)
	r.Register(AlgorithmKMeansAlias, ctor)

	return r
}

// Register adds or replaces a constructor.
func (r *Registry) Register(name string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries == nil {
		r.entries = make(map[string]Constructor)
	}
	r.entries[name] = ctor
}

// New resolves name and builds a Clusterer seeded with seed.
// Unknown names return ErrUnsupportedAlgorithm.
func (r *Registry) New(name string, seed int64) (Clusterer, error) {
	r.mu.RLock()
	ctor, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnsupportedAlgorithm, name, r.Names())
	}

	return ctor(seed), nil
}

// Names lists registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.entries))
	for n := range r.entries {
		out = append(out, n)
	}
	sort.Strings(out)

	return out
}
