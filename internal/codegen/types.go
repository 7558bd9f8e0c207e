// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/albertocavalcante/vkgen/internal/naming"
	"github.com/albertocavalcante/vkgen/internal/registry"
)

// kind classifies a Go field type for hashing.
type kind int

const (
	kindInt kind = iota
	kindFloat32
	kindFloat64
	kindPointer
	kindStruct
	kindArray
)

// goType is the Go form of a C declaration together with its C layout.
type goType struct {
	expr  string
	kind  kind
	elem  *goType // array element
	size  int
	align int
}

// layout is the C size and alignment of a struct or union.
type layout struct {
	size  int
	align int
}

var unsafePointer = goType{expr: "unsafe.Pointer", kind: kindPointer, size: pointerSize, align: pointerSize}

var opaque = goType{expr: "uintptr", kind: kindInt, size: pointerSize, align: pointerSize}

// namedType resolves a bare type name, without pointers or arrays.
func (g *Generator) namedType(raw string) (goType, error) {
	if s, ok := cScalars[raw]; ok {
		k := kindInt
		if s.float {
			k = kindFloat32
			if s.size == 8 {
				k = kindFloat64
			}
		}
		return goType{expr: s.goName, kind: k, size: s.size, align: s.size}, nil
	}

	t, ok := g.reg.ResolveAlias(raw)
	if !ok {
		return opaque, nil // platform type
	}
	name := g.goName(raw)
	switch t.Category {
	case registry.CategoryBaseType:
		s, ok := cScalars[t.Underlying]
		if !ok {
			return opaque, nil
		}
		return goType{expr: name, kind: kindInt, size: s.size, align: s.size}, nil
	case registry.CategoryBitmask, registry.CategoryEnum:
		size := g.enumSize(t)
		return goType{expr: name, kind: kindInt, size: size, align: size}, nil
	case registry.CategoryHandle:
		return goType{expr: name, kind: kindInt, size: pointerSize, align: pointerSize}, nil
	case registry.CategoryStruct, registry.CategoryUnion:
		l, err := g.layoutOf(t)
		if err != nil {
			return goType{}, err
		}
		return goType{expr: name, kind: kindStruct, size: l.size, align: l.align}, nil
	case registry.CategoryFuncPointer:
		ft := opaque
		ft.expr = name
		return ft, nil
	default:
		return opaque, nil // platform types
	}
}

// enumSize returns the byte size of an enum or bitmask type.
func (g *Generator) enumSize(t *registry.Type) int {
	if t.Category == registry.CategoryBitmask {
		if t.Underlying == "VkFlags64" {
			return 8
		}
		if group, ok := g.reg.EnumGroup(t.FlagBits()); ok && group.BitWidth == 64 {
			return 8
		}
		return 4
	}
	if group, ok := g.reg.EnumGroup(t.Name); ok && group.BitWidth == 64 {
		return 8
	}
	return 4
}

// declType resolves a member or parameter declaration.
func (g *Generator) declType(d *registry.Decl) (goType, error) {
	var ft goType
	switch {
	case d.Pointers > 0 && !g.isKnownType(d.Type):
		ft = unsafePointer
		ft.expr = strings.Repeat("*", d.Pointers-1) + ft.expr
	case d.Pointers > 0:
		base, err := g.namedType(d.Type)
		if err != nil {
			return goType{}, err
		}
		ft = goType{expr: strings.Repeat("*", d.Pointers) + base.expr, kind: kindPointer, size: pointerSize, align: pointerSize}
	default:
		base, err := g.namedType(d.Type)
		if err != nil {
			return goType{}, err
		}
		ft = base
	}

	for i := len(d.Arrays) - 1; i >= 0; i-- {
		expr, n, err := g.arrayLen(d.Arrays[i])
		if err != nil {
			return goType{}, fmt.Errorf("%s: %w", d.Name, err)
		}
		elem := ft
		ft = goType{expr: "[" + expr + "]" + elem.expr, kind: kindArray, elem: &elem, size: n * elem.size, align: elem.align}
	}
	return ft, nil
}

// isKnownType reports whether pointers to raw can be typed: C scalars other
// than void and registry types with a generated Go form.
func (g *Generator) isKnownType(raw string) bool {
	if raw == CVoid {
		return false
	}
	if IsCScalar(raw) {
		return true
	}
	t, ok := g.reg.ResolveAlias(raw)
	if !ok {
		return false
	}
	switch t.Category {
	case registry.CategoryBitmask, registry.CategoryEnum, registry.CategoryHandle,
		registry.CategoryStruct, registry.CategoryUnion, registry.CategoryFuncPointer:
		return true
	case registry.CategoryBaseType:
		return IsCScalar(t.Underlying)
	}
	return false
}

// arrayLen returns the Go length expression and the numeric length of an
// array dimension, which is a literal or an API constant.
func (g *Generator) arrayLen(dim string) (string, int, error) {
	if n, err := strconv.Atoi(dim); err == nil {
		return dim, n, nil
	}
	constants := g.reg.Constants()
	if constants == nil {
		return "", 0, fmt.Errorf("array dimension %s: no API constants", dim)
	}
	v := constants.Value(dim)
	if v == nil {
		return "", 0, fmt.Errorf("array dimension %s: unknown constant", dim)
	}
	n, err := constants.Resolve(v)
	if err != nil {
		return "", 0, fmt.Errorf("array dimension %s: %w", dim, err)
	}
	name, err := g.constantName(dim)
	if err != nil {
		return "", 0, err
	}
	return name, int(n), nil
}

// layoutOf computes the C layout of a struct or union. Adjacent bitfields
// share one 32-bit unit.
func (g *Generator) layoutOf(t *registry.Type) (layout, error) {
	g.layoutMu.Lock()
	l, ok := g.layouts[t.Name]
	g.layoutMu.Unlock()
	if ok {
		return l, nil
	}

	l = layout{align: 1}
	bitsUsed := 0
	for _, m := range t.Members {
		if m.Bits > 0 && bitsUsed > 0 && bitsUsed+m.Bits <= 32 {
			bitsUsed += m.Bits
			continue
		}
		var ft goType
		if m.Bits > 0 {
			ft = goType{size: 4, align: 4}
			bitsUsed = m.Bits
		} else {
			var err error
			if ft, err = g.declType(m); err != nil {
				return layout{}, fmt.Errorf("%s.%w", t.Name, err)
			}
			bitsUsed = 0
		}
		l.align = max(l.align, ft.align)
		if t.Category == registry.CategoryUnion {
			l.size = max(l.size, ft.size)
		} else {
			l.size = alignUp(l.size, ft.align) + ft.size
		}
	}
	l.size = alignUp(l.size, l.align)

	g.layoutMu.Lock()
	g.layouts[t.Name] = l
	g.layoutMu.Unlock()
	return l, nil
}

func alignUp(n, align int) int {
	if align <= 1 {
		return n
	}
	return (n + align - 1) / align * align
}

// fieldName exports a member or parameter name.
func fieldName(raw string) string {
	return naming.ExportName(raw)
}
