// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Command vkgen generates Go bindings from the Vulkan API registry (vk.xml).
//
// Usage:
//
//	vkgen [generate] [flags]
//	vkgen translate [flags] NAME...
//	vkgen generators
//	vkgen version
//
// Examples:
//
//	# Generate every supported definition to stdout
//	vkgen
//
//	# Generate Vulkan 1.1 plus the surface extensions into ./vk
//	vkgen --api-version 1.1 -e 'VK_KHR_*surface*' -o ./vk/
//
//	# Generate a few types and their dependencies into one file
//	vkgen -t VkExtent2D,VkImageCreateInfo -o ./vk/types.go
//
//	# Use a local vk.xml
//	vkgen --spec ./vk.xml -o ./vk/
//
//	# Translate names
//	vkgen translate VkSurfaceKHR vkCreateInstance
//	vkgen translate -E VkImageLayout VK_IMAGE_LAYOUT_PRESENT_SRC_KHR
package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	kongyaml "github.com/alecthomas/kong-yaml"
	"github.com/spf13/afero"

	"github.com/albertocavalcante/vkgen/internal/cmd"
	"github.com/albertocavalcante/vkgen/internal/config"
	"github.com/albertocavalcante/vkgen/internal/logger"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	userCfg := config.FindUserConfig(os.Args[1:])

	var cli config.CLI
	kctx := kong.Parse(&cli,
		kong.Name("vkgen"),
		kong.Description("Vulkan binding generator. Flags override configuration files."),
		kong.UsageOnError(),
		kong.Configuration(kongyaml.Loader, config.CandidatePaths(userCfg)...),
	)

	log := cli.Log.Logger()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logger.ContextWithLogger(ctx, log)

	kctx.BindTo(ctx, (*context.Context)(nil))
	kctx.BindTo(afero.NewOsFs(), (*afero.Fs)(nil))
	kctx.BindTo(os.Stdout, (*io.Writer)(nil))
	kctx.Bind(cmd.BuildInfo{Version: version, Commit: commit, Date: date})

	if err := kctx.Run(); err != nil {
		log.Error("command failed", "command", kctx.Command(), "err", err)
		stop()
		os.Exit(1)
	}
}
