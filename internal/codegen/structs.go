// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package codegen

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/albertocavalcante/vkgen/internal/registry"
)

// structTemplate renders one struct or union with its methods.
var structTemplate = template.Must(template.New("struct").Option("missingkey=error").Funcs(sprig.FuncMap()).Parse(`
// {{.Name}} is {{if .Union}}the union {{end}}{{.Raw}}.
{{- with .Comment}}
// {{trim .}}
{{- end}}
{{- if .Extends}}
// Extends: {{join ", " .Extends}}.
{{- end}}
{{- if .ReturnedOnly}}
// Returned only by the implementation.
{{- end}}
type {{.Name}} struct {
{{- if .Union}}
{{- with .AlignType}}
	_ [0]{{.}}
{{- end}}
	raw [{{.Size}}]byte
{{- else}}
{{- range .Fields}}
{{- with .Doc}}
	// {{trim .}}
{{- end}}
	{{.Name}} {{.Type}}
{{- end}}
{{- end}}
}
{{range .Members}}
// {{.Name}} returns the {{.Raw}} member viewed in place.
func (u *{{$.Name}}) {{.Name}}() *{{.Type}} {
	return (*{{.Type}})(unsafe.Pointer(&u.raw))
}
{{end}}
{{- range .Bitfields}}
// {{.Name}} returns the {{.Width}}-bit {{.Raw}} field.
func (s *{{$.Name}}) {{.Name}}() {{.Type}} {
	return {{.Type}}((s.{{.Field}} >> {{.Shift}}) & {{.Mask}})
}

// Set{{.Name}} sets the {{.Width}}-bit {{.Raw}} field.
func (s *{{$.Name}}) Set{{.Name}}(v {{.Type}}) {
	s.{{.Field}} = s.{{.Field}}&^({{.Mask}} << {{.Shift}}) | (uint32(v)&{{.Mask}})<<{{.Shift}}
}
{{end}}
{{- with .SType}}
// SetSType sets SType to {{.}}.
func (s *{{$.Name}}) SetSType() {
	s.SType = {{.}}
}
{{end}}
{{- if .Equal}}
// Equal reports whether s and other hold the same values. Pointers compare
// by address.
func (s *{{.Name}}) Equal(other *{{.Name}}) bool {
	if s == nil || other == nil {
		return s == other
	}
	return *s == *other
}
{{end}}
{{- if .Hash}}
// Hash returns an FNV-1a hash of the field values. Pointers hash by address.
func (s *{{.Name}}) Hash() uint64 {
	h := fnvOffset64
{{- range .HashStmts}}
	{{.}}
{{- end}}
	return h
}
{{end}}`))

// fnvHelpers is emitted once when any struct is generated.
const fnvHelpers = `
const (
	fnvOffset64 uint64 = 14695981039346656037
	fnvPrime64  uint64 = 1099511628211
)

// fnvMix folds the eight bytes of v into h.
func fnvMix(h, v uint64) uint64 {
	for range 8 {
		h ^= v & 0xff
		h *= fnvPrime64
		v >>= 8
	}
	return h
}
`

type structField struct {
	Name string
	Type string
	Doc  string
}

type unionMember struct {
	Name string
	Raw  string
	Type string
}

type bitfield struct {
	Name  string
	Raw   string
	Type  string
	Field string
	Shift int
	Width int
	Mask  string
}

type structData struct {
	Name         string
	Raw          string
	Comment      string
	Union        bool
	Size         int
	AlignType    string
	Extends      []string
	ReturnedOnly bool
	Fields       []structField
	Members      []unionMember
	Bitfields    []bitfield
	SType        string
	Equal        bool
	Hash         bool
	HashStmts    []string
}

// Method names generated on structs. A member with one of these names
// suppresses the method.
const (
	methodEqual    = "Equal"
	methodHash     = "Hash"
	methodSetSType = "SetSType"
)

// renderStructs emits structs and unions.
func (g *Generator) renderStructs() ([]byte, error) {
	var buf bytes.Buffer
	emitted := false
	for _, t := range g.selectedTypes(registry.CategoryStruct, registry.CategoryUnion) {
		name := g.goName(t.Name)
		if t.Alias != "" {
			target := g.goName(t.Alias)
			fmt.Fprintf(&buf, "// %s is an alias of %s.\ntype %s = %s\n\n", name, target, name, target)
			continue
		}

		data, err := g.structData(t)
		if err != nil {
			return nil, err
		}
		if err := structTemplate.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("%s: %w", t.Name, err)
		}
		emitted = true
	}
	if emitted {
		buf.WriteString(fnvHelpers)
	}
	return buf.Bytes(), nil
}

func (g *Generator) structData(t *registry.Type) (*structData, error) {
	d := &structData{
		Name:         g.goName(t.Name),
		Raw:          t.Name,
		Comment:      oneLine(t.Comment),
		Union:        t.Category == registry.CategoryUnion,
		ReturnedOnly: t.ReturnedOnly,
	}
	for _, ext := range t.StructExtends {
		d.Extends = append(d.Extends, g.goName(ext))
	}

	names := make(map[string]bool)
	if d.Union {
		if err := g.unionData(t, d, names); err != nil {
			return nil, err
		}
	} else if err := g.fieldData(t, d, names); err != nil {
		return nil, err
	}

	d.Equal = !names[methodEqual]
	d.Hash = !names[methodHash]
	if !names[methodSetSType] {
		d.SType = g.sTypeConst(t)
	}
	return d, nil
}

func (g *Generator) unionData(t *registry.Type, d *structData, names map[string]bool) error {
	l, err := g.layoutOf(t)
	if err != nil {
		return err
	}
	d.Size = l.size
	switch l.align {
	case 8:
		d.AlignType = "uint64"
	case 4:
		d.AlignType = "uint32"
	case 2:
		d.AlignType = "uint16"
	}
	for _, m := range t.Members {
		ft, err := g.declType(m)
		if err != nil {
			return fmt.Errorf("%s.%w", t.Name, err)
		}
		name := fieldName(m.Name)
		names[name] = true
		d.Members = append(d.Members, unionMember{Name: name, Raw: m.Name, Type: ft.expr})
	}
	d.HashStmts = []string{"for _, b := range s.raw { h = fnvMix(h, uint64(b)) }"}
	return nil
}

// fieldData fills the fields of a struct. Adjacent bitfields share one
// uint32 field named after its members, with an accessor pair per member.
func (g *Generator) fieldData(t *registry.Type, d *structData, names map[string]bool) error {
	var group []*registry.Decl
	bitsUsed := 0
	flush := func() error {
		if len(group) == 0 {
			return nil
		}
		parts := make([]string, len(group))
		for i, m := range group {
			parts[i] = fieldName(m.Name)
		}
		field := strings.Join(parts, "And")
		names[field] = true
		d.Fields = append(d.Fields, structField{Name: field, Type: "uint32"})
		d.HashStmts = append(d.HashStmts, fmt.Sprintf("h = fnvMix(h, uint64(s.%s))", field))

		shift := 0
		for _, m := range group {
			ft, err := g.namedType(m.Type)
			if err != nil {
				return err
			}
			name := fieldName(m.Name)
			names[name] = true
			d.Bitfields = append(d.Bitfields, bitfield{
				Name:  name,
				Raw:   m.Name,
				Type:  ft.expr,
				Field: field,
				Shift: shift,
				Width: m.Bits,
				Mask:  fmt.Sprintf("0x%x", uint64(1)<<m.Bits-1),
			})
			shift += m.Bits
		}
		group, bitsUsed = nil, 0
		return nil
	}

	for _, m := range t.Members {
		if m.Bits > 0 {
			if bitsUsed+m.Bits > 32 {
				if err := flush(); err != nil {
					return err
				}
			}
			group = append(group, m)
			bitsUsed += m.Bits
			continue
		}
		if err := flush(); err != nil {
			return err
		}

		ft, err := g.declType(m)
		if err != nil {
			return fmt.Errorf("%s.%w", t.Name, err)
		}
		name := fieldName(m.Name)
		names[name] = true
		d.Fields = append(d.Fields, structField{Name: name, Type: ft.expr, Doc: fieldDoc(m)})
		if stmt := g.hashStmt(ft, "s."+name, 0); stmt != "" {
			d.HashStmts = append(d.HashStmts, stmt)
		}
	}
	return flush()
}

// hashStmt returns the statement folding x into h, or "" when x has no
// hashable form.
func (g *Generator) hashStmt(ft goType, x string, depth int) string {
	switch ft.kind {
	case kindFloat32:
		return fmt.Sprintf("h = fnvMix(h, uint64(math.Float32bits(float32(%s))))", x)
	case kindFloat64:
		return fmt.Sprintf("h = fnvMix(h, math.Float64bits(float64(%s)))", x)
	case kindPointer:
		if ft.expr == unsafePointer.expr {
			return fmt.Sprintf("h = fnvMix(h, uint64(uintptr(%s)))", x)
		}
		return fmt.Sprintf("h = fnvMix(h, uint64(uintptr(unsafe.Pointer(%s))))", x)
	case kindStruct:
		if !g.hasHash(ft.expr) {
			return ""
		}
		return fmt.Sprintf("h = fnvMix(h, %s.Hash())", x)
	case kindArray:
		i := fmt.Sprintf("i%d", depth)
		inner := g.hashStmt(*ft.elem, x+"["+i+"]", depth+1)
		if inner == "" {
			return ""
		}
		return fmt.Sprintf("for %s := range %s {\n%s\n}", i, x, inner)
	default:
		return fmt.Sprintf("h = fnvMix(h, uint64(%s))", x)
	}
}

// hasHash reports whether the struct or union behind a Go type name gets a
// generated Hash method.
func (g *Generator) hasHash(goName string) bool {
	for _, t := range g.reg.Types {
		if g.goName(t.Name) != goName {
			continue
		}
		if r, ok := g.reg.ResolveAlias(t.Name); ok {
			t = r
		}
		if !g.hasType(t.Name) {
			return false
		}
		for _, m := range t.Members {
			if fieldName(m.Name) == methodHash {
				return false
			}
		}
		return true
	}
	return false
}

// sTypeConst returns the Go constant for the fixed sType of a struct, or ""
// when the struct has none or the value is not generated.
func (g *Generator) sTypeConst(t *registry.Type) string {
	for _, m := range t.Members {
		if m.Name != "sType" || m.Values == "" {
			continue
		}
		group, ok := g.reg.EnumGroup(m.Type)
		if !ok || !g.hasType(m.Type) {
			return ""
		}
		v := group.Value(m.Values)
		if v == nil || !g.hasValue(v) {
			return ""
		}
		name, err := g.constName(m.Type, v)
		if err != nil {
			return ""
		}
		return name
	}
	return ""
}

// fieldDoc is the member comment, marked when the member may be null or zero.
func fieldDoc(m *registry.Decl) string {
	doc := oneLine(m.Comment)
	if !m.IsOptional() {
		return doc
	}
	if doc == "" {
		return "Optional."
	}
	return doc + " (optional)"
}
