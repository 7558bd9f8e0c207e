// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package codegen

import (
	"bytes"
	"fmt"

	"github.com/albertocavalcante/vkgen/internal/registry"
)

// enumDecl is one Go enum or bitmask type. A bitmask and its FlagBits
// enumeration share a single declaration.
type enumDecl struct {
	raw      string
	goName   string
	base     string
	bitmask  bool
	groupRaw string
	alias    string
}

// collectEnums merges the selected enum and bitmask types by Go name.
func (g *Generator) collectEnums() *orderedMap[*enumDecl] {
	decls := newOrderedMap[*enumDecl]()
	for _, t := range g.selectedTypes(registry.CategoryEnum, registry.CategoryBitmask) {
		name := g.goName(t.Name)
		if t.Alias != "" {
			if target := g.goName(t.Alias); target != name {
				decls.setOnce(name, &enumDecl{raw: t.Name, goName: name, alias: target})
			}
			continue
		}

		d := &enumDecl{raw: t.Name, goName: name, base: "int32"}
		switch group, ok := g.reg.EnumGroup(t.Name); {
		case t.Category == registry.CategoryBitmask:
			d.bitmask = true
			d.groupRaw = t.FlagBits()
		case ok && group.IsBitmask():
			d.bitmask = true
			d.groupRaw = t.Name
		default:
			d.groupRaw = t.Name
		}
		if d.bitmask {
			d.base = "uint32"
			if g.enumSize(t) == 8 {
				d.base = "uint64"
			}
		}

		if existing, ok := decls.get(name); ok {
			if existing.groupRaw == "" {
				existing.groupRaw = d.groupRaw
			}
			continue
		}
		decls.setOnce(name, d)
	}
	return decls
}

// renderEnums emits enum types with String methods and bitmask types with
// Has methods, each followed by its constants.
func (g *Generator) renderEnums() ([]byte, error) {
	var buf bytes.Buffer
	decls := g.collectEnums()
	for _, key := range decls.keys() {
		d, _ := decls.get(key)
		if d.alias != "" {
			fmt.Fprintf(&buf, "// %s is an alias of %s.\ntype %s = %s\n\n", d.goName, d.alias, d.goName, d.alias)
			continue
		}
		if err := g.renderEnum(&buf, d); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

type enumConst struct {
	name  string
	raw   string
	value int64
	doc   string
}

func (g *Generator) renderEnum(buf *bytes.Buffer, d *enumDecl) error {
	fmt.Fprintf(buf, "// %s is %s.\n", d.goName, d.raw)
	if d.bitmask && d.groupRaw != "" && d.groupRaw != d.raw {
		fmt.Fprintf(buf, "// Its bits are %s.\n", d.groupRaw)
	}
	fmt.Fprintf(buf, "type %s %s\n\n", d.goName, d.base)

	consts := g.enumConsts(d)
	if len(consts) > 0 {
		buf.WriteString("const (\n")
		for _, c := range consts {
			if c.doc != "" {
				fmt.Fprintf(buf, "// %s\n", c.doc)
			}
			if d.bitmask {
				fmt.Fprintf(buf, "%s %s = 0x%x\n", c.name, d.goName, uint64(c.value))
			} else {
				fmt.Fprintf(buf, "%s %s = %d\n", c.name, d.goName, c.value)
			}
		}
		buf.WriteString(")\n\n")
	}

	if d.bitmask {
		fmt.Fprintf(buf, "// Has reports whether every bit of bits is set in f.\nfunc (f %s) Has(bits %s) bool {\n\treturn f&bits == bits\n}\n\n", d.goName, d.goName)
		return nil
	}

	fmt.Fprintf(buf, "// String returns the registry name of v.\nfunc (v %s) String() string {\n\tswitch v {\n", d.goName)
	seen := make(map[int64]bool)
	for _, c := range consts {
		if seen[c.value] {
			continue
		}
		seen[c.value] = true
		fmt.Fprintf(buf, "\tcase %s:\n\t\treturn %q\n", c.name, c.raw)
	}
	fmt.Fprintf(buf, "\tdefault:\n\t\treturn \"%s(\" + strconv.FormatInt(int64(v), 10) + \")\"\n\t}\n}\n\n", d.goName)
	return nil
}

// enumConsts translates the selected values of an enum. Values the
// translator rejects, values that do not resolve, and names already taken
// are skipped with a log record.
func (g *Generator) enumConsts(d *enumDecl) []enumConst {
	group, ok := g.reg.EnumGroup(d.groupRaw)
	if !ok {
		return nil
	}
	var out []enumConst
	names := make(map[string]bool)
	for _, v := range group.Values {
		if !g.hasValue(v) {
			continue
		}
		name, err := g.constName(d.groupRaw, v)
		if err != nil {
			g.log.Warn("enum value skipped", "enum", d.groupRaw, "value", v.Name, "err", err)
			continue
		}
		n, err := group.Resolve(v)
		if err != nil {
			g.log.Warn("enum value skipped", "enum", d.groupRaw, "value", v.Name, "err", err)
			continue
		}
		if names[name] {
			if v.Alias != "" {
				g.log.Debug("alias collapses onto existing constant", "name", name, "value", v.Name)
			} else {
				g.log.Warn("duplicate constant skipped", "name", name, "value", v.Name)
			}
			continue
		}
		names[name] = true
		out = append(out, enumConst{name: name, raw: v.Name, value: n, doc: oneLine(v.Comment)})
	}
	return out
}
