// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package manifest registers a target that writes the name mapping of a
// registry selection as YAML: every selected type, enum value, constant, and
// command next to the Go identifier the bindings use for it.
package manifest

import (
	"context"

	"github.com/albertocavalcante/vkgen/generator"
	"github.com/albertocavalcante/vkgen/internal/codegen"
	"github.com/albertocavalcante/vkgen/internal/registry"
)

// DefaultFile is the output file name when none is configured.
const DefaultFile = "vk_manifest.yaml"

// Generator implements [generator.Generator] for the name manifest.
type Generator struct{}

// NewGenerator creates a new manifest generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Metadata returns information about this generator.
func (g *Generator) Metadata() generator.Metadata {
	return generator.Metadata{
		Name:           "manifest",
		Version:        "1.0.0",
		Description:    "Generate a YAML manifest mapping registry names to Go names",
		FileExtensions: []string{".yaml"},
		URL:            "https://github.com/albertocavalcante/vkgen",
	}
}

// Generate produces the manifest of the selection described by cfg.
func (g *Generator) Generate(ctx context.Context, reg *registry.Registry, cfg generator.Config) (*generator.Output, error) {
	sel, err := generator.Select(reg, cfg)
	if err != nil {
		return nil, err
	}
	names, err := codegen.New(reg, codegen.Config{Selection: sel})
	if err != nil {
		return nil, err
	}

	m := Build(ctx, reg, sel, names)
	m.Source = cfg.Source
	m.Ref = cfg.Ref
	m.Commit = cfg.CommitHash
	if cfg.HeaderVersion != "" {
		m.HeaderVersion = cfg.HeaderVersion
	}

	data, err := m.Marshal()
	if err != nil {
		return nil, err
	}
	filename := DefaultFile
	if cfg.OutputFile != "" {
		filename = cfg.OutputFile
	}
	return generator.Single(filename, data), nil
}
