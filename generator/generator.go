// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package generator defines the interface for Vulkan binding generators.
package generator

import (
	"context"

	"github.com/albertocavalcante/vkgen/internal/registry"
)

// Generator is the interface that all code generators must implement.
type Generator interface {
	// Metadata returns information about this generator.
	Metadata() Metadata

	// Generate produces output files from the parsed registry.
	Generate(ctx context.Context, reg *registry.Registry, cfg Config) (*Output, error)
}

// Metadata describes a generator.
type Metadata struct {
	// Name is the short identifier (e.g., "go", "manifest").
	Name string

	// Version is the generator version (semver).
	Version string

	// Description is a human-readable description.
	Description string

	// FileExtensions lists typical output extensions (e.g., [".go"], [".yaml"]).
	FileExtensions []string

	// URL is the homepage/documentation URL (optional).
	URL string
}
