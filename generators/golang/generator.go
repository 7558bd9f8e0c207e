// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package golang registers the Go bindings target.
package golang

import (
	"context"
	"fmt"
	"strconv"

	"github.com/albertocavalcante/vkgen/generator"
	"github.com/albertocavalcante/vkgen/internal/codegen"
	"github.com/albertocavalcante/vkgen/internal/logger"
	"github.com/albertocavalcante/vkgen/internal/registry"
)

// GoGenerator implements [generator.Generator] for Go code generation.
type GoGenerator struct{}

// NewGenerator creates a new Go generator.
func NewGenerator() *GoGenerator {
	return &GoGenerator{}
}

// Metadata returns information about this generator.
func (g *GoGenerator) Metadata() generator.Metadata {
	return generator.Metadata{
		Name:           "go",
		Version:        "1.0.0",
		Description:    "Generate Go bindings from the Vulkan registry",
		FileExtensions: []string{".go"},
		URL:            "https://github.com/albertocavalcante/vkgen",
	}
}

// Generate selects the requested part of the registry and renders it as Go.
//
// Options:
//
//	package     Go package name (default "vk"; Config.PackageName wins)
//	cache-size  size of the type-name cache
func (g *GoGenerator) Generate(ctx context.Context, reg *registry.Registry, cfg generator.Config) (*generator.Output, error) {
	sel, err := generator.Select(reg, cfg)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Debug("selected registry subset",
		"features", len(sel.Features),
		"extensions", len(sel.Extensions),
		"types", len(sel.TypeNames()),
		"commands", len(sel.CommandNames()))

	internalCfg := codegen.Config{
		PackageName:        cfg.PackageName,
		SingleFile:         cfg.OutputFile,
		Selection:          sel,
		ExtensionConstants: sel.ExtensionConstants,
		Source:             cfg.Source,
		Ref:                cfg.Ref,
		CommitHash:         cfg.CommitHash,
		HeaderVersion:      cfg.HeaderVersion,
	}
	if internalCfg.PackageName == "" {
		internalCfg.PackageName = cfg.Option("package", codegen.DefaultConfig().PackageName)
	}
	if size := cfg.Option("cache-size", ""); size != "" {
		n, err := strconv.Atoi(size)
		if err != nil {
			return nil, fmt.Errorf("option cache-size: %w", err)
		}
		internalCfg.CacheSize = n
	}

	gen, err := codegen.New(reg, internalCfg)
	if err != nil {
		return nil, err
	}
	out, err := gen.Generate(ctx)
	if err != nil {
		return nil, err
	}

	result := generator.NewOutput()
	for name, src := range out.Files {
		result.Add(name, src)
	}
	return result, nil
}
