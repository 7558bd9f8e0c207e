// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package naming

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize fits every type name of a current vk.xml.
const DefaultCacheSize = 8192

// TypeName is a memoized ConvertTypeName result.
type TypeName struct {
	Base string
	Ext  string
	OK   bool
}

// Go returns the Go identifier for the type: the base name followed by the
// extension tag, so SurfaceKHR and Surface never collide.
func (n TypeName) Go() string {
	return n.Base + n.Ext
}

// Cache memoizes type-name translations. Emitters look up the same member
// types many times from concurrent renderers.
type Cache struct {
	t     *Translator
	types *lru.Cache[string, TypeName]
}

// NewCache wraps t with an LRU of the given size.
func NewCache(t *Translator, size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[string, TypeName](size)
	if err != nil {
		return nil, fmt.Errorf("create name cache: %w", err)
	}
	return &Cache{t: t, types: c}, nil
}

// Translator returns the underlying translator.
func (c *Cache) Translator() *Translator {
	return c.t
}

// TypeName returns the memoized translation of raw.
func (c *Cache) TypeName(raw string) TypeName {
	if n, ok := c.types.Get(raw); ok {
		return n
	}
	base, ext, ok := c.t.ConvertTypeName(raw)
	n := TypeName{Base: base, Ext: ext, OK: ok}
	c.types.Add(raw, n)
	return n
}

// Len reports how many translations are cached.
func (c *Cache) Len() int {
	return c.types.Len()
}
