// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package codegen

import (
	"strings"

	"github.com/albertocavalcante/vkgen/internal/registry"
)

// valueName is the Go constant name of one enum value, or the reason it has
// none.
type valueName struct {
	name string
	err  error
}

// valueNames returns the Go constant names of every value of the enum group
// groupRaw, keyed by raw value name. The result is computed once per group.
//
// Distinct values that translate to the same name keep their own extension
// tag, so VK_STRUCTURE_TYPE_COOPERATIVE_MATRIX_PROPERTIES_NV and _KHR become
// StructureTypeCooperativeMatrixPropertiesNV and ...KHR. An untagged value
// keeps the bare name. An alias that lands on a name owned by another value
// takes the name of the value it aliases.
func (g *Generator) valueNames(groupRaw string) map[string]valueName {
	g.valueMu.Lock()
	defer g.valueMu.Unlock()
	if names, ok := g.values[groupRaw]; ok {
		return names
	}

	names := make(map[string]valueName)
	group, ok := g.reg.EnumGroup(groupRaw)
	if !ok {
		g.values[groupRaw] = names
		return names
	}

	owners := make(map[string][]*registry.EnumValue)
	for _, v := range group.Values {
		name, err := g.valueConstName(groupRaw, v)
		names[v.Name] = valueName{name: name, err: err}
		if err == nil && v.Alias == "" {
			owners[name] = append(owners[name], v)
		}
	}

	for name, vs := range owners {
		if len(vs) < 2 {
			continue
		}
		for _, v := range vs {
			if tag := g.valueTag(v.Name); tag != "" {
				names[v.Name] = valueName{name: g.insertTag(groupRaw, name, tag)}
			}
		}
	}

	for _, v := range group.Values {
		if v.Alias == "" {
			continue
		}
		if n := names[v.Name]; n.err == nil && len(owners[n.name]) > 0 {
			if target, ok := aliasTarget(group, v, names); ok {
				names[v.Name] = target
			}
		}
	}

	g.values[groupRaw] = names
	return names
}

// valueTag returns the registered extension tag ending a raw value name, or
// "" when the last token is not a tag.
func (g *Generator) valueTag(raw string) string {
	i := strings.LastIndexByte(raw, '_')
	if i < 0 {
		return ""
	}
	if tag := raw[i+1:]; g.names.Translator().IsSuffix(tag) {
		return tag
	}
	return ""
}

// insertTag places a value tag before the enum's own tag.
func (g *Generator) insertTag(groupRaw, name, tag string) string {
	ext := g.names.TypeName(groupRaw).Ext
	if ext == tag {
		return name
	}
	return strings.TrimSuffix(name, ext) + tag + ext
}

// aliasTarget follows the alias chain of v to a value that is not an alias.
func aliasTarget(group *registry.Enums, v *registry.EnumValue, names map[string]valueName) (valueName, bool) {
	seen := map[string]bool{v.Name: true}
	for v.Alias != "" {
		next := group.Value(v.Alias)
		if next == nil || seen[next.Name] {
			return valueName{}, false
		}
		seen[next.Name] = true
		v = next
	}
	n := names[v.Name]
	return n, n.err == nil
}

// constName returns the Go constant name of v in the enum group groupRaw.
// Values not listed in the registry are translated on their own.
func (g *Generator) constName(groupRaw string, v *registry.EnumValue) (string, error) {
	if n, ok := g.valueNames(groupRaw)[v.Name]; ok {
		return n.name, n.err
	}
	return g.valueConstName(groupRaw, v)
}
