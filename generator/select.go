// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"fmt"
	"slices"

	"github.com/Masterminds/semver/v3"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/albertocavalcante/vkgen/internal/registry"
)

// Selection is the part of a registry a generator emits: the core versions
// and extensions in scope and the types, commands, and constants they
// require after filtering.
type Selection struct {
	Features   []*registry.Feature
	Extensions []*registry.Extension

	// ExtensionConstants are the SPEC_VERSION and EXTENSION_NAME values of
	// the selected extensions, in registry order.
	ExtensionConstants []*registry.EnumValue

	providers map[string]bool
	types     map[string]bool
	commands  map[string]bool
	constants map[string]bool
}

// HasProvider reports whether a feature or extension is selected.
func (s *Selection) HasProvider(name string) bool { return s.providers[name] }

// HasType reports whether a raw type name is selected.
func (s *Selection) HasType(name string) bool { return s.types[name] }

// HasCommand reports whether a raw command name is selected.
func (s *Selection) HasCommand(name string) bool { return s.commands[name] }

// HasConstant reports whether an API constant is selected.
func (s *Selection) HasConstant(name string) bool { return s.constants[name] }

// HasValue reports whether an enum value belongs to the selected API:
// values declared by their group always do, values added by features or
// extensions only when one of their providers is selected.
func (s *Selection) HasValue(v *registry.EnumValue) bool {
	if v.IsCore() {
		return true
	}
	return slices.ContainsFunc(v.Providers, s.HasProvider)
}

// TypeNames returns the selected raw type names, sorted.
func (s *Selection) TypeNames() []string { return sortedKeys(s.types) }

// CommandNames returns the selected raw command names, sorted.
func (s *Selection) CommandNames() []string { return sortedKeys(s.commands) }

// Select computes the selection for cfg. Core versions up to APIVersion and
// the supported extensions matching Extensions contribute their require
// blocks; the Types and Commands globs then narrow the result, and
// ResolveDeps pulls in everything the survivors reference.
func Select(reg *registry.Registry, cfg Config) (*Selection, error) {
	maxVersion, err := parseAPIVersion(cfg.APIVersion)
	if err != nil {
		return nil, err
	}
	for _, patterns := range [][]string{cfg.Types, cfg.Commands, cfg.Extensions} {
		for _, p := range patterns {
			if !doublestar.ValidatePattern(p) {
				return nil, fmt.Errorf("filter pattern %q: %w", p, doublestar.ErrBadPattern)
			}
		}
	}

	sel := &Selection{
		providers: make(map[string]bool),
		types:     make(map[string]bool),
		commands:  make(map[string]bool),
		constants: make(map[string]bool),
	}

	for _, f := range reg.Features {
		if maxVersion != nil {
			v, err := semver.NewVersion(f.Number)
			if err != nil {
				return nil, fmt.Errorf("feature %s: version %q: %w", f.Name, f.Number, err)
			}
			if v.GreaterThan(maxVersion) {
				continue
			}
		}
		sel.Features = append(sel.Features, f)
		sel.providers[f.Name] = true
	}
	for _, ext := range reg.Extensions {
		if !ext.IsSupported() {
			continue
		}
		if len(cfg.Extensions) > 0 && !matchAny(cfg.Extensions, ext.Name) {
			continue
		}
		sel.Extensions = append(sel.Extensions, ext)
		sel.providers[ext.Name] = true
	}

	constants := reg.Constants()
	for _, f := range sel.Features {
		if err := sel.require(f.Name, f.Requires, constants, false); err != nil {
			return nil, err
		}
	}
	for _, ext := range sel.Extensions {
		if err := sel.require(ext.Name, ext.Requires, constants, true); err != nil {
			return nil, err
		}
	}

	if len(cfg.Types) > 0 {
		for name := range sel.types {
			if !matchAny(cfg.Types, name) {
				delete(sel.types, name)
			}
		}
		if len(cfg.Commands) == 0 {
			clear(sel.commands)
		}
	}
	if len(cfg.Commands) > 0 {
		for name := range sel.commands {
			if !matchAny(cfg.Commands, name) {
				delete(sel.commands, name)
			}
		}
	}

	if cfg.ResolveDeps {
		roots := sel.types
		for name := range sel.commands {
			collectCommandDeps(reg, name, roots)
		}
		sel.types = ResolveDeps(reg, roots)
	}

	// Array dimensions name API constants.
	if constants != nil {
		for name := range sel.types {
			t, ok := reg.Type(name)
			if !ok {
				continue
			}
			for _, m := range t.Members {
				for _, dim := range m.Arrays {
					if constants.Value(dim) != nil {
						sel.constants[dim] = true
					}
				}
			}
		}
	}
	return sel, nil
}

// require records one provider's require blocks. Blocks whose depends
// expression is not satisfied by the selection are skipped.
func (s *Selection) require(provider string, requires []*registry.Require, constants *registry.Enums, extension bool) error {
	for _, req := range requires {
		if req.Depends != "" {
			ok, err := dependsSatisfied(req.Depends, s.HasProvider)
			if err != nil {
				return fmt.Errorf("%s: %w", provider, err)
			}
			if !ok {
				continue
			}
		}
		for _, t := range req.Types {
			s.types[t.Name] = true
		}
		for _, c := range req.Commands {
			s.commands[c.Name] = true
		}
		for _, v := range req.Enums {
			switch {
			case v.Extends != "":
			case constants != nil && constants.Value(v.Name) != nil:
				s.constants[v.Name] = true
			case extension && v.Value != "":
				s.ExtensionConstants = append(s.ExtensionConstants, v)
			}
		}
	}
	return nil
}

func parseAPIVersion(s string) (*semver.Version, error) {
	if s == "" {
		return nil, nil
	}
	v, err := semver.NewVersion(s)
	if err != nil {
		return nil, fmt.Errorf("api version %q: %w", s, err)
	}
	return v, nil
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
