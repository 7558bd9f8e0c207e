// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrUnknownGenerator is returned by Lookup for names nothing registered.
var ErrUnknownGenerator = errors.New("unknown generator")

var (
	mu         sync.RWMutex
	generators = make(map[string]Generator)
)

// Register adds a generator to the registry.
func Register(g Generator) {
	mu.Lock()
	defer mu.Unlock()
	meta := g.Metadata()
	if _, exists := generators[meta.Name]; exists {
		panic(fmt.Sprintf("generator %q already registered", meta.Name))
	}
	generators[meta.Name] = g
}

// Get returns a generator by name.
func Get(name string) (Generator, bool) {
	mu.RLock()
	defer mu.RUnlock()
	g, ok := generators[name]
	return g, ok
}

// Lookup is Get with an error naming the available generators.
func Lookup(name string) (Generator, error) {
	if g, ok := Get(name); ok {
		return g, nil
	}
	return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownGenerator, name, List())
}

// List returns all registered generator names, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// All returns all registered generators, sorted by name.
func All() []Generator {
	names := List()
	mu.RLock()
	defer mu.RUnlock()
	gens := make([]Generator, 0, len(names))
	for _, name := range names {
		if g, ok := generators[name]; ok {
			gens = append(gens, g)
		}
	}
	return gens
}

// Reset clears the registry (for testing).
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	generators = make(map[string]Generator)
}
