// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

// Config contains generator configuration.
type Config struct {
	// OutputDir is the output directory.
	OutputDir string

	// OutputFile is for single file output (optional).
	OutputFile string

	// PackageName is the package of generated source (for targets that
	// have one).
	PackageName string

	// Types filters to type names matching any of these glob patterns
	// (empty = all types required by the selected API).
	Types []string

	// Commands filters to command names matching any of these glob
	// patterns. With a type filter and no command filter, no commands are
	// generated.
	Commands []string

	// ResolveDeps includes transitive dependencies when filtering.
	ResolveDeps bool

	// APIVersion is the highest core version to include ("1.3").
	// Empty includes every core version.
	APIVersion string

	// Extensions filters to extension names matching any of these glob
	// patterns (empty = every extension supported by vulkan).
	Extensions []string

	// Source is the registry source (for headers).
	Source string

	// Ref is the git ref used.
	Ref string

	// CommitHash is the git commit.
	CommitHash string

	// HeaderVersion is VK_HEADER_VERSION of the registry.
	HeaderVersion string

	// Options contains target-specific options.
	Options map[string]string
}

// Option returns a target-specific option with default.
func (c Config) Option(key, defaultValue string) string {
	if v, ok := c.Options[key]; ok {
		return v
	}
	return defaultValue
}
