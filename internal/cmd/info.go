// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/albertocavalcante/vkgen/generator"
)

// BuildInfo is stamped into the binary at link time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Version prints the build information.
type Version struct{}

// Run is called by Kong when the version command is executed.
func (Version) Run(info BuildInfo, stdout io.Writer) error {
	_, err := fmt.Fprintf(stdout, "vkgen %s (commit: %s, built: %s)\n", info.Version, info.Commit, info.Date)
	return err
}

// Generators lists the generators compiled into the binary.
type Generators struct{}

// Run is called by Kong when the generators command is executed.
func (Generators) Run(stdout io.Writer) error {
	for _, g := range generator.All() {
		meta := g.Metadata()
		if _, err := fmt.Fprintf(stdout, "%-10s %-8s %-12s %s\n",
			meta.Name, meta.Version, strings.Join(meta.FileExtensions, ","), meta.Description); err != nil {
			return err
		}
	}
	return nil
}
