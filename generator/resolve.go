// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import "github.com/albertocavalcante/vkgen/internal/registry"

// ResolveDeps expands a type set to include all transitively referenced
// types from the registry. Returns nil if roots is nil.
//
// Struct and union members, alias targets, the FlagBits enum of a bitmask,
// and the underlying type of basetypes and bitmasks are followed.
func ResolveDeps(reg *registry.Registry, roots map[string]bool) map[string]bool {
	if roots == nil {
		return nil
	}

	expanded := make(map[string]bool)
	for name := range roots {
		collectDeps(reg, name, expanded)
	}
	return expanded
}

// collectDeps recursively collects all types referenced by typeName.
func collectDeps(reg *registry.Registry, typeName string, visited map[string]bool) {
	if typeName == "" || visited[typeName] {
		return // Already processed or cycle
	}
	visited[typeName] = true

	t, ok := reg.Type(typeName)
	if !ok {
		return // Platform or C type the registry does not define
	}
	collectDeps(reg, t.Alias, visited)
	collectDeps(reg, t.FlagBits(), visited)
	switch t.Category {
	case registry.CategoryBaseType, registry.CategoryBitmask:
		collectDeps(reg, t.Underlying, visited)
	}
	for _, m := range t.Members {
		collectDeps(reg, m.Type, visited)
	}
}

// collectCommandDeps collects the types of a command's prototype and
// parameters. Aliases contribute the types of the command they alias.
func collectCommandDeps(reg *registry.Registry, name string, visited map[string]bool) {
	c, ok := reg.ResolveCommand(name)
	if !ok {
		return
	}
	collectDeps(reg, c.ReturnType, visited)
	for _, p := range c.Params {
		collectDeps(reg, p.Type, visited)
	}
}
