// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package cmd implements the vkgen commands. Kong calls each command's Run
// method with the bound context, filesystem, and standard output.
package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/albertocavalcante/vkgen/generator"
	"github.com/albertocavalcante/vkgen/internal/fetch"
	"github.com/albertocavalcante/vkgen/internal/logger"
)

// StdoutName is the single-file name requested from a generator when the
// output goes to standard output.
const StdoutName = "-"

// Source groups the flags that locate vk.xml.
type Source struct {
	Ref      string        `help:"Vulkan-Docs git ref (tag or branch)." short:"r" default:"main" env:"VKGEN_REF"`
	Registry string        `help:"Path to a local vk.xml." name:"spec" type:"path" env:"VKGEN_SPEC"`
	Repo     string        `help:"Path to a local Vulkan-Docs clone." type:"path" env:"VKGEN_REPO"`
	HTTP     bool          `help:"Download vk.xml over HTTP instead of cloning." env:"VKGEN_HTTP"`
	Retries  int           `help:"HTTP retries on network and server errors." default:"3" env:"VKGEN_RETRIES"`
	Timeout  time.Duration `help:"Timeout for network operations." default:"90s" env:"VKGEN_TIMEOUT"`
}

// fetch loads the registry from wherever the flags point.
func (s Source) fetch(ctx context.Context, fs afero.Fs) (*fetch.Result, error) {
	log := logger.FromContext(ctx)
	log.Debug("fetching registry", "ref", s.Ref, "spec", s.Registry, "repo", s.Repo, "http", s.HTTP)

	result, err := fetch.Fetch(ctx, fetch.Options{
		Ref:       s.Ref,
		LocalPath: s.Registry,
		RepoDir:   s.Repo,
		HTTP:      s.HTTP,
		Retries:   s.Retries,
		Timeout:   s.Timeout,
		Fs:        fs,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch registry: %w", err)
	}
	log.Info("loaded registry",
		"source", result.Source,
		"header_version", result.Registry.HeaderVersion(),
		"types", len(result.Registry.Types),
		"commands", len(result.Registry.Commands),
		"extensions", len(result.Registry.Extensions))
	if result.CommitHash != "" {
		log.Debug("registry commit", "commit", result.CommitHash)
	}
	return result, nil
}

// Generate runs a generator over the registry.
type Generate struct {
	Source `embed:""`

	Target      string            `help:"Generator to run (see 'vkgen generators')." short:"g" default:"go" env:"VKGEN_TARGET"`
	Output      string            `help:"Output directory, or file when the path has an extension (default: stdout)." short:"o" env:"VKGEN_OUTPUT"`
	Package     string            `help:"Package name of generated source." short:"p" default:"vk" env:"VKGEN_PACKAGE"`
	APIVersion  string            `help:"Highest core version to include, e.g. 1.3 (default: all)." name:"api-version" env:"VKGEN_API_VERSION"`
	Extensions  []string          `help:"Extension name globs (default: all supported)." short:"e" sep:"," env:"VKGEN_EXTENSIONS"`
	Types       []string          `help:"Type name globs (default: all)." short:"t" sep:","`
	Commands    []string          `help:"Command name globs (default: all unless --types is set)." short:"c" sep:","`
	ResolveDeps bool              `help:"Include transitive type dependencies." default:"true" negatable:""`
	Options     map[string]string `help:"Target-specific options (key=value;...)." short:"O"`
	DryRun      bool              `help:"Print to stdout without writing files."`
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(ctx context.Context, fs afero.Fs, stdout io.Writer) error {
	log := logger.FromContext(ctx)

	gen, err := generator.Lookup(g.Target)
	if err != nil {
		return err
	}

	result, err := g.fetch(ctx, fs)
	if err != nil {
		return err
	}

	cfg := generator.Config{
		PackageName:   g.Package,
		Types:         trimAll(g.Types),
		Commands:      trimAll(g.Commands),
		ResolveDeps:   g.ResolveDeps,
		APIVersion:    g.APIVersion,
		Extensions:    trimAll(g.Extensions),
		Source:        result.Source,
		Ref:           result.Ref,
		CommitHash:    result.CommitHash,
		HeaderVersion: result.Registry.HeaderVersion(),
		Options:       g.Options,
	}

	toStdout := g.DryRun || g.Output == ""
	dir := g.Output
	switch {
	case toStdout:
		cfg.OutputFile = StdoutName
	case !g.isDirOutput(fs):
		dir, cfg.OutputFile = filepath.Split(g.Output)
		if dir == "" {
			dir = "."
		}
	}
	cfg.OutputDir = dir

	log.Debug("generating", "target", g.Target, "package", g.Package, "output", g.Output)
	out, err := gen.Generate(ctx, result.Registry, cfg)
	if err != nil {
		return fmt.Errorf("generate %s: %w", g.Target, err)
	}

	if toStdout {
		for _, name := range out.Names() {
			if _, err := stdout.Write(out.Files[name]); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}
		return nil
	}

	written, err := generator.WriteOutput(fs, dir, out)
	if err != nil {
		return err
	}
	for _, path := range written {
		log.Info("wrote", "path", path)
	}
	return nil
}

// isDirOutput reports whether Output names a directory: it ends in a
// separator, already exists as one, or has no file extension.
func (g *Generate) isDirOutput(fs afero.Fs) bool {
	if strings.HasSuffix(g.Output, "/") || strings.HasSuffix(g.Output, string(filepath.Separator)) {
		return true
	}
	if ok, err := afero.IsDir(fs, g.Output); err == nil && ok {
		return true
	}
	return filepath.Ext(g.Output) == ""
}

// trimAll trims every element and drops the empty ones.
func trimAll(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
