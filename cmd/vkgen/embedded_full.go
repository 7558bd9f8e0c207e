// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

//go:build vkgen_full

package main

import (
	"github.com/albertocavalcante/vkgen/generator"
	"github.com/albertocavalcante/vkgen/generators/golang"
	"github.com/albertocavalcante/vkgen/generators/manifest"
)

func init() {
	// Full build: all generators embedded
	generator.Register(golang.NewGenerator())
	generator.Register(manifest.NewGenerator())
}
