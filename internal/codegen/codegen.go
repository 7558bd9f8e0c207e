// SPDX-License-Identifier: MIT AND BSD-3-Clause
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.
//
// Code generation logic inspired by golang.org/x/tools/gopls:
// https://github.com/golang/tools/blob/master/gopls/internal/protocol/generate/output.go
// Copyright 2022 The Go Authors. All rights reserved.
// See NOTICE file for the full license text.

// Package codegen generates Go bindings from a parsed Vulkan registry.
//
// Output is split into sections (constants, handles, enums, structs,
// commands), each rendered concurrently into its own gofmt'ed file or
// concatenated into a single file.
package codegen

import (
	"bytes"
	"context"
	"fmt"
	"go/format"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/albertocavalcante/vkgen/internal/logger"
	"github.com/albertocavalcante/vkgen/internal/naming"
	"github.com/albertocavalcante/vkgen/internal/registry"
)

// Selector reports which parts of the registry to emit.
type Selector interface {
	HasType(name string) bool
	HasCommand(name string) bool
	HasConstant(name string) bool
	HasValue(v *registry.EnumValue) bool
}

// Config controls code generation behavior.
type Config struct {
	// PackageName is the Go package name for generated code.
	PackageName string

	// SingleFile, when set, names the one file every section is written to.
	SingleFile string

	// Selection limits generation. Nil generates the whole registry.
	Selection Selector

	// ExtensionConstants are SPEC_VERSION and EXTENSION_NAME values to emit.
	ExtensionConstants []*registry.EnumValue

	// NameOptions configure the translator (enum policies).
	NameOptions []naming.Option

	// CacheSize bounds the type-name cache (0 = naming.DefaultCacheSize).
	CacheSize int

	// Source describes where the registry came from (for header comment).
	Source string

	// Ref is the git reference used (for header comment).
	Ref string

	// CommitHash is the git commit (for header comment).
	CommitHash string

	// HeaderVersion is VK_HEADER_VERSION (for header comment).
	HeaderVersion string
}

// DefaultConfig returns sensible defaults for code generation.
func DefaultConfig() Config {
	return Config{
		PackageName: "vk",
	}
}

// Section names one generated file.
type Section string

const (
	SectionConstants Section = "constants.go"
	SectionHandles   Section = "handles.go"
	SectionEnums     Section = "enums.go"
	SectionStructs   Section = "structs.go"
	SectionCommands  Section = "commands.go"
)

// Sections lists every section in output order.
var Sections = []Section{SectionConstants, SectionHandles, SectionEnums, SectionStructs, SectionCommands}

// Output contains the generated code files, keyed by file name.
type Output struct {
	Files map[string][]byte
}

// Generator produces Go code from a registry.
type Generator struct {
	reg    *registry.Registry
	config Config
	names  *naming.Cache
	log    logger.Logger

	layoutMu sync.Mutex
	layouts  map[string]layout

	valueMu sync.Mutex
	values  map[string]map[string]valueName
}

// New creates a new Generator. The translator is built from the registry's
// tags before any section renders.
func New(reg *registry.Registry, cfg Config) (*Generator, error) {
	if cfg.PackageName == "" {
		cfg.PackageName = DefaultConfig().PackageName
	}
	tr := naming.New(reg.ExtensionSuffixes(), cfg.NameOptions...)
	names, err := naming.NewCache(tr, cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	return &Generator{
		reg:     reg,
		config:  cfg,
		names:   names,
		layouts: make(map[string]layout),
		values:  make(map[string]map[string]valueName),
	}, nil
}

// sectionResult is the rendered body of one section.
type sectionResult struct {
	body    []byte
	imports []string
}

// Generate renders every section and returns the formatted files.
func (g *Generator) Generate(ctx context.Context) (*Output, error) {
	g.log = logger.FromContext(ctx)

	renderers := map[Section]func() ([]byte, error){
		SectionConstants: g.renderConstants,
		SectionHandles:   g.renderHandles,
		SectionEnums:     g.renderEnums,
		SectionStructs:   g.renderStructs,
		SectionCommands:  g.renderCommands,
	}

	results := make([]sectionResult, len(Sections))
	eg, ctx := errgroup.WithContext(ctx)
	for i, sec := range Sections {
		render := renderers[sec]
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			body, err := render()
			if err != nil {
				return fmt.Errorf("render %s: %w", sec, err)
			}
			results[i] = sectionResult{body: body, imports: detectImports(body)}
			g.log.Debug("rendered section", "section", sec, "bytes", len(body))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := &Output{Files: make(map[string][]byte)}
	if g.config.SingleFile != "" {
		var body bytes.Buffer
		var imports []string
		for _, r := range results {
			body.Write(r.body)
			imports = append(imports, r.imports...)
		}
		src, err := g.assemble(g.config.SingleFile, body.Bytes(), imports)
		if err != nil {
			return nil, err
		}
		out.Files[g.config.SingleFile] = src
		return out, nil
	}

	for i, sec := range Sections {
		src, err := g.assemble(string(sec), results[i].body, results[i].imports)
		if err != nil {
			return nil, err
		}
		out.Files[string(sec)] = src
	}
	return out, nil
}

// assemble prefixes a body with the header, package clause, and imports,
// then formats it.
func (g *Generator) assemble(name string, body []byte, imports []string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(g.fileHeader())
	buf.WriteString("package " + g.config.PackageName + "\n\n")

	imports = slices.Compact(slices.Sorted(slices.Values(imports)))
	switch len(imports) {
	case 0:
	case 1:
		fmt.Fprintf(&buf, "import %q\n\n", imports[0])
	default:
		buf.WriteString("import (\n")
		for _, imp := range imports {
			fmt.Fprintf(&buf, "\t%q\n", imp)
		}
		buf.WriteString(")\n\n")
	}
	buf.Write(body)

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", name, err)
	}
	return src, nil
}

// detectImports returns the standard packages a rendered body refers to.
// Comment lines are ignored.
func detectImports(body []byte) []string {
	var code bytes.Buffer
	for line := range bytes.Lines(body) {
		if !bytes.HasPrefix(bytes.TrimSpace(line), []byte("//")) {
			code.Write(line)
		}
	}
	var imports []string
	for _, pkg := range []string{"math", "strconv", "unsafe"} {
		if bytes.Contains(code.Bytes(), []byte(pkg+".")) {
			imports = append(imports, pkg)
		}
	}
	return imports
}

func (g *Generator) fileHeader() string {
	var lines []string
	lines = append(lines, "// Code generated by vkgen. DO NOT EDIT.")
	if g.config.Source != "" {
		lines = append(lines, fmt.Sprintf("// Source: %s", g.config.Source))
	}
	if g.config.Ref != "" {
		lines = append(lines, fmt.Sprintf("// Ref: %s", g.config.Ref))
	}
	if g.config.CommitHash != "" {
		lines = append(lines, fmt.Sprintf("// Commit: %s", g.config.CommitHash))
	}
	if g.config.HeaderVersion != "" {
		lines = append(lines, fmt.Sprintf("// Header Version: %s", g.config.HeaderVersion))
	}
	lines = append(lines, "", "")
	return strings.Join(lines, "\n")
}

// Selection helpers. A nil selection includes everything.

func (g *Generator) hasType(name string) bool {
	return g.config.Selection == nil || g.config.Selection.HasType(name)
}

func (g *Generator) hasCommand(name string) bool {
	return g.config.Selection == nil || g.config.Selection.HasCommand(name)
}

func (g *Generator) hasConstant(name string) bool {
	return g.config.Selection == nil || g.config.Selection.HasConstant(name)
}

func (g *Generator) hasValue(v *registry.EnumValue) bool {
	return g.config.Selection == nil || g.config.Selection.HasValue(v)
}

// selectedTypes returns the selected registry types of the given
// categories, in registry order.
func (g *Generator) selectedTypes(categories ...string) []*registry.Type {
	var out []*registry.Type
	seen := make(map[string]bool)
	for _, t := range g.reg.Types {
		if seen[t.Name] || !slices.Contains(categories, t.Category) || !g.hasType(t.Name) {
			continue
		}
		seen[t.Name] = true
		out = append(out, t)
	}
	return out
}

// goName returns the Go identifier of a registry type: the translated base
// name followed by its extension tag. Names the translator does not handle
// are returned unchanged.
func (g *Generator) goName(raw string) string {
	if n := g.names.TypeName(raw); n.OK {
		return n.Go()
	}
	return raw
}

// valueConstName returns the Go constant name of an enum value: the enum's
// base name, the translated value name, and the enum's extension tag
// (ImageLayoutPresentSrc, SurfaceTransformFlagsIdentityKHR).
func (g *Generator) valueConstName(enumRaw string, v *registry.EnumValue) (string, error) {
	n := g.names.TypeName(enumRaw)
	if !n.OK {
		return "", fmt.Errorf("enum %q: %w", enumRaw, naming.ErrMalformedName)
	}
	value, err := g.names.Translator().ConvertEnumValueName(v.Name, n.Base)
	if err != nil {
		return "", err
	}
	// The base name already starts the identifier.
	if rest, ok := strings.CutPrefix(value, naming.DigitMarker); ok && rest != "" && rest[0] >= '0' && rest[0] <= '9' {
		value = rest
	}
	return n.Base + value + n.Ext, nil
}

// TypeName returns the Go identifier of a registry type.
func (g *Generator) TypeName(raw string) string {
	return g.goName(raw)
}

// ValueName returns the Go constant name of a value of the enum enumRaw.
func (g *Generator) ValueName(enumRaw string, v *registry.EnumValue) (string, error) {
	return g.constName(enumRaw, v)
}

// ConstantName returns the Go name of an API or extension constant.
func (g *Generator) ConstantName(raw string) (string, error) {
	return g.constantName(raw)
}

// CommandName returns the Go name of a command.
func (g *Generator) CommandName(raw string) (string, bool) {
	return g.names.Translator().ConvertCommandName(raw)
}

// constantName returns the Go name of an API or extension constant.
func (g *Generator) constantName(raw string) (string, error) {
	return g.names.Translator().ConvertConstantName(raw)
}

func writeDocComment(buf *bytes.Buffer, doc string) {
	for line := range strings.SplitSeq(doc, "\n") {
		fmt.Fprintf(buf, "// %s\n", line)
	}
}

// orderedMap maintains insertion order for deterministic output.
type orderedMap[T any] struct {
	m     map[string]T
	order []string
}

func newOrderedMap[T any]() *orderedMap[T] {
	return &orderedMap[T]{
		m: make(map[string]T),
	}
}

// setOnce stores value unless key is present and reports whether it did.
func (m *orderedMap[T]) setOnce(key string, value T) bool {
	if _, exists := m.m[key]; exists {
		return false
	}
	m.order = append(m.order, key)
	m.m[key] = value
	return true
}

func (m *orderedMap[T]) get(key string) (T, bool) {
	v, ok := m.m[key]
	return v, ok
}

func (m *orderedMap[T]) keys() []string {
	return slices.Clone(m.order)
}

// oneLine collapses a registry comment onto a single line.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
