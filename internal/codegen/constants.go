// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package codegen

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/albertocavalcante/vkgen/internal/registry"
)

// complementLiteral matches the C complement constants of vk.xml.
var complementLiteral = regexp.MustCompile(`^\(~(\d+)(U|ULL)\)$`)

// constLiteral converts a C constant value to a Go literal.
func constLiteral(value string) (string, error) {
	value = strings.TrimSpace(value)
	if m := complementLiteral.FindStringSubmatch(value); m != nil {
		width := "uint32"
		if m[2] == "ULL" {
			width = "uint64"
		}
		return fmt.Sprintf("^%s(%s)", width, m[1]), nil
	}
	if strings.HasPrefix(value, `"`) {
		return value, nil
	}
	suffixes := "FfUuLl"
	if strings.HasPrefix(strings.ToLower(value), "0x") {
		suffixes = "UuLl"
	}
	trimmed := strings.TrimRight(value, suffixes)
	if trimmed == "" || strings.ContainsAny(trimmed, "()~") {
		return "", fmt.Errorf("unsupported constant value %q", value)
	}
	return trimmed, nil
}

// renderConstants emits base types, function pointer types, API constants,
// and extension constants.
func (g *Generator) renderConstants() ([]byte, error) {
	var buf bytes.Buffer

	for _, t := range g.selectedTypes(registry.CategoryBaseType) {
		if t.Alias != "" {
			fmt.Fprintf(&buf, "// %s is %s.\ntype %s = %s\n\n", g.goName(t.Name), t.Name, g.goName(t.Name), g.goName(t.Alias))
			continue
		}
		goBase := CScalarGo(t.Underlying)
		if goBase == "" {
			continue // opaque platform struct or pointer
		}
		fmt.Fprintf(&buf, "// %s is %s.\ntype %s %s\n\n", g.goName(t.Name), t.Name, g.goName(t.Name), goBase)
	}

	for _, t := range g.selectedTypes(registry.CategoryFuncPointer) {
		fmt.Fprintf(&buf, "// %s is an unresolved function pointer.\ntype %s uintptr\n\n", t.Name, g.goName(t.Name))
	}

	consts := newOrderedMap[string]()
	if group := g.reg.Constants(); group != nil {
		for _, v := range group.Values {
			if !g.hasConstant(v.Name) {
				continue
			}
			if err := g.addConstant(consts, v, CScalarGo(v.Type)); err != nil {
				return nil, err
			}
		}
	}
	writeConstBlock(&buf, "API constants.", consts)

	extConsts := newOrderedMap[string]()
	for _, v := range g.config.ExtensionConstants {
		if err := g.addConstant(extConsts, v, ""); err != nil {
			return nil, err
		}
	}
	writeConstBlock(&buf, "Extension constants.", extConsts)

	return buf.Bytes(), nil
}

// addConstant renders one constant spec. Names already present are skipped
// with a warning.
func (g *Generator) addConstant(consts *orderedMap[string], v *registry.EnumValue, goType string) error {
	name, err := g.constantName(v.Name)
	if err != nil {
		return err
	}

	var spec string
	switch {
	case v.Alias != "":
		target, err := g.constantName(v.Alias)
		if err != nil {
			return err
		}
		spec = fmt.Sprintf("%s = %s", name, target)
	case v.Value != "":
		lit, err := constLiteral(v.Value)
		if err != nil {
			return fmt.Errorf("%s: %w", v.Name, err)
		}
		if goType != "" && !strings.HasPrefix(lit, "^") {
			spec = fmt.Sprintf("%s %s = %s", name, goType, lit)
		} else {
			spec = fmt.Sprintf("%s = %s", name, lit)
		}
	default:
		return nil
	}
	if v.Comment != "" {
		spec = "// " + oneLine(v.Comment) + "\n" + spec
	}
	if !consts.setOnce(name, spec) {
		g.log.Warn("duplicate constant skipped", "name", name, "raw", v.Name)
	}
	return nil
}

func writeConstBlock(buf *bytes.Buffer, doc string, consts *orderedMap[string]) {
	keys := consts.keys()
	if len(keys) == 0 {
		return
	}
	writeDocComment(buf, doc)
	buf.WriteString("const (\n")
	for _, k := range keys {
		spec, _ := consts.get(k)
		buf.WriteString(spec)
		buf.WriteString("\n")
	}
	buf.WriteString(")\n\n")
}
