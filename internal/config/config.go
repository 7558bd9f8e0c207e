// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package config defines the command-line structure of vkgen and where its
// configuration files are looked up.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/albertocavalcante/vkgen/internal/cmd"
	"github.com/albertocavalcante/vkgen/internal/logger"
)

// EnvConfig names the environment variable holding an explicit config file.
const EnvConfig = "VKGEN_CONFIG"

// Log groups the logging flags.
type Log struct {
	Level string `help:"Log level: debug, info, warn, error, disabled." default:"info" enum:"debug,info,warn,error,disabled" env:"VKGEN_LOG_LEVEL"`
	JSON  bool   `help:"Log as JSON." env:"VKGEN_LOG_JSON"`
}

// Logger builds the logger the flags describe, writing to stderr.
func (l Log) Logger() logger.Logger {
	cfg := logger.DefaultConfig()
	cfg.Level = logger.LogLevel(l.Level)
	cfg.JSON = l.JSON
	return logger.NewLogger(cfg)
}

// CLI is the root command structure for Kong CLI parsing.
type CLI struct {
	Log `embed:"" prefix:"log-"`

	Config kong.ConfigFlag `help:"YAML configuration file." env:"VKGEN_CONFIG"`

	Generate   cmd.Generate   `cmd:"" default:"withargs" help:"Generate bindings from vk.xml."`
	Translate  cmd.Translate  `cmd:"" help:"Translate registry names into Go names."`
	Generators cmd.Generators `cmd:"" help:"List the available generators."`
	Version    cmd.Version    `cmd:"" help:"Show version information."`
}

// FindUserConfig returns the config file named by --config in args, or by
// VKGEN_CONFIG.
func FindUserConfig(args []string) string {
	for i, a := range args {
		if v, ok := strings.CutPrefix(a, "--config="); ok {
			return v
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv(EnvConfig)
}

// CandidatePaths lists the YAML files consulted in priority order: an
// explicit file, then the working directory, then the user config
// directory. Missing files are skipped by the loader.
func CandidatePaths(userCfg string) []string {
	var paths []string
	if userCfg != "" {
		paths = append(paths, userCfg)
	}
	paths = append(paths, "vkgen.yaml", ".vkgen.yaml")
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "vkgen", "config.yaml"))
	}
	return paths
}
