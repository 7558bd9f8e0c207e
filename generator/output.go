// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"
)

// Output contains generated files.
type Output struct {
	// Files maps filename to content.
	Files map[string][]byte
}

// NewOutput creates a new Output.
func NewOutput() *Output {
	return &Output{Files: make(map[string][]byte)}
}

// Add adds a file to the output.
func (o *Output) Add(name string, content []byte) {
	o.Files[name] = content
}

// Names returns the file names, sorted.
func (o *Output) Names() []string {
	names := make([]string, 0, len(o.Files))
	for name := range o.Files {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Single returns an Output with a single file.
func Single(name string, content []byte) *Output {
	return &Output{Files: map[string][]byte{name: content}}
}

// WriteOutput writes every file of out under dir, creating directories as
// needed. It returns the written paths in name order.
func WriteOutput(fs afero.Fs, dir string, out *Output) ([]string, error) {
	var written []string
	for _, name := range out.Names() {
		path := filepath.Join(dir, name)
		if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return written, fmt.Errorf("create output directory: %w", err)
		}
		if err := afero.WriteFile(fs, path, out.Files[name], 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", name, err)
		}
		written = append(written, path)
	}
	return written, nil
}
