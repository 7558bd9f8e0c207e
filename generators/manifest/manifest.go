// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package manifest

import (
	"bytes"
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/albertocavalcante/vkgen/generator"
	"github.com/albertocavalcante/vkgen/internal/codegen"
	"github.com/albertocavalcante/vkgen/internal/logger"
	"github.com/albertocavalcante/vkgen/internal/registry"
)

// Manifest is the document written by the manifest target.
type Manifest struct {
	Source        string     `yaml:"source,omitempty"`
	Ref           string     `yaml:"ref,omitempty"`
	Commit        string     `yaml:"commit,omitempty"`
	HeaderVersion string     `yaml:"headerVersion,omitempty"`
	Features      []string   `yaml:"features"`
	Extensions    []string   `yaml:"extensions"`
	Types         []Type     `yaml:"types"`
	Values        []Value    `yaml:"values"`
	Constants     []Constant `yaml:"constants,omitempty"`
	Commands      []Command  `yaml:"commands"`
}

// Type maps one registry type.
type Type struct {
	Name     string `yaml:"name"`
	Go       string `yaml:"go"`
	Category string `yaml:"category"`
	Alias    string `yaml:"alias,omitempty"`
}

// Value maps one enum value. Values the translator rejects carry Error
// instead of Go.
type Value struct {
	Name  string `yaml:"name"`
	Enum  string `yaml:"enum"`
	Go    string `yaml:"go,omitempty"`
	Error string `yaml:"error,omitempty"`
}

// Constant maps one API constant.
type Constant struct {
	Name  string `yaml:"name"`
	Go    string `yaml:"go"`
	Value string `yaml:"value,omitempty"`
}

// Command maps one command and its dispatch level.
type Command struct {
	Name  string `yaml:"name"`
	Go    string `yaml:"go"`
	Level string `yaml:"level"`
	Alias string `yaml:"alias,omitempty"`
}

// Build collects the manifest of sel, naming everything through names.
func Build(ctx context.Context, reg *registry.Registry, sel *generator.Selection, names *codegen.Generator) *Manifest {
	log := logger.FromContext(ctx)
	m := &Manifest{HeaderVersion: reg.HeaderVersion()}
	for _, f := range sel.Features {
		m.Features = append(m.Features, f.Name)
	}
	for _, ext := range sel.Extensions {
		m.Extensions = append(m.Extensions, ext.Name)
	}

	seen := make(map[string]bool)
	for _, t := range reg.Types {
		if seen[t.Name] || !sel.HasType(t.Name) || !mapped(t.Category) {
			continue
		}
		seen[t.Name] = true
		m.Types = append(m.Types, Type{Name: t.Name, Go: names.TypeName(t.Name), Category: t.Category, Alias: t.Alias})

		group, ok := reg.EnumGroup(t.Name)
		if !ok || t.Alias != "" {
			continue
		}
		for _, v := range group.Values {
			if !sel.HasValue(v) {
				continue
			}
			entry := Value{Name: v.Name, Enum: t.Name}
			if name, err := names.ValueName(t.Name, v); err != nil {
				log.Warn("enum value not translated", "value", v.Name, "err", err)
				entry.Error = err.Error()
			} else {
				entry.Go = name
			}
			m.Values = append(m.Values, entry)
		}
	}

	if constants := reg.Constants(); constants != nil {
		for _, v := range constants.Values {
			if !sel.HasConstant(v.Name) {
				continue
			}
			name, err := names.ConstantName(v.Name)
			if err != nil {
				log.Warn("constant not translated", "constant", v.Name, "err", err)
				continue
			}
			m.Constants = append(m.Constants, Constant{Name: v.Name, Go: name, Value: v.Value})
		}
	}

	for _, c := range reg.Commands {
		if !sel.HasCommand(c.Name) {
			continue
		}
		def, ok := reg.ResolveCommand(c.Name)
		if !ok {
			continue
		}
		name, ok := names.CommandName(c.Name)
		if !ok {
			log.Warn("command not translated", "command", c.Name)
			continue
		}
		m.Commands = append(m.Commands, Command{
			Name:  c.Name,
			Go:    name,
			Level: names.CommandLevel(def).String(),
			Alias: c.Alias,
		})
	}
	return m
}

// mapped reports whether a type category gets a Go name in the bindings.
func mapped(category string) bool {
	switch category {
	case registry.CategoryBaseType, registry.CategoryBitmask, registry.CategoryHandle,
		registry.CategoryEnum, registry.CategoryFuncPointer,
		registry.CategoryStruct, registry.CategoryUnion:
		return true
	}
	return false
}

// Marshal encodes the manifest as YAML with two-space indentation.
func (m *Manifest) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# Code generated by vkgen. DO NOT EDIT.\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a manifest written by Marshal.
func Unmarshal(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &m, nil
}
