// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"

	"github.com/albertocavalcante/vkgen/internal/codegen"
	"github.com/albertocavalcante/vkgen/internal/logger"
	"github.com/albertocavalcante/vkgen/internal/naming"
	"github.com/albertocavalcante/vkgen/internal/registry"
)

// Name kinds accepted by translate.
const (
	KindAuto     = "auto"
	KindType     = "type"
	KindValue    = "value"
	KindConstant = "constant"
	KindCommand  = "command"
)

// ErrUntranslated is returned when at least one name could not be
// translated.
var ErrUntranslated = errors.New("names left untranslated")

// DefaultSuffixes are the extension tags used when no registry is loaded.
var DefaultSuffixes = []string{
	"KHR", "EXT", "NV", "NVX", "AMD", "AMDX", "ANDROID", "ARM", "FUCHSIA",
	"GGP", "GOOGLE", "HUAWEI", "IMG", "INTEL", "LUNARG", "MESA", "MSFT",
	"MVK", "NN", "QCOM", "QNX", "SEC", "VALVE",
}

// Translate prints the Go name of registry identifiers.
type Translate struct {
	Names    []string `arg:"" help:"Registry names (VkImageLayout, VK_IMAGE_LAYOUT_GENERAL, vkCreateInstance)."`
	Kind     string   `help:"Name kind: auto, type, value, constant, command." short:"k" default:"auto" enum:"auto,type,value,constant,command"`
	Enum     string   `help:"Enclosing enum of value names (VkImageLayout)." short:"E"`
	Suffixes []string `help:"Extension tags used without --spec." sep:","`
	Registry string   `help:"Take extension tags from a local vk.xml." name:"spec" type:"path"`
}

// Run is called by Kong when the translate command is executed.
func (t *Translate) Run(ctx context.Context, fs afero.Fs, stdout io.Writer) error {
	log := logger.FromContext(ctx)

	reg, err := t.registry(ctx, fs)
	if err != nil {
		return err
	}
	names, err := codegen.New(reg, codegen.DefaultConfig())
	if err != nil {
		return err
	}

	failed := 0
	for _, raw := range t.Names {
		goName, err := t.translate(names, raw)
		if err != nil {
			log.Warn("cannot translate", "name", raw, "err", err)
			failed++
			continue
		}
		if _, err := fmt.Fprintf(stdout, "%s\t%s\n", raw, goName); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d: %w", failed, len(t.Names), ErrUntranslated)
	}
	return nil
}

// registry loads vk.xml from --spec, or builds a tag-only registry from
// --suffixes.
func (t *Translate) registry(ctx context.Context, fs afero.Fs) (*registry.Registry, error) {
	if t.Registry != "" {
		result, err := Source{Registry: t.Registry}.fetch(ctx, fs)
		if err != nil {
			return nil, err
		}
		return result.Registry, nil
	}
	suffixes := trimAll(t.Suffixes)
	if len(suffixes) == 0 {
		suffixes = DefaultSuffixes
	}
	reg := &registry.Registry{}
	for _, s := range suffixes {
		reg.Tags = append(reg.Tags, registry.Tag{Name: s})
	}
	return reg, nil
}

func (t *Translate) translate(names *codegen.Generator, raw string) (string, error) {
	switch kind := t.kindOf(raw); kind {
	case KindType:
		goName := names.TypeName(raw)
		if goName == raw {
			return "", fmt.Errorf("type %q: %w", raw, naming.ErrMalformedName)
		}
		return goName, nil
	case KindValue:
		if t.Enum == "" {
			return "", errors.New("value names need --enum")
		}
		return names.ValueName(t.Enum, &registry.EnumValue{Name: raw})
	case KindConstant:
		return names.ConstantName(raw)
	case KindCommand:
		goName, ok := names.CommandName(raw)
		if !ok {
			return "", fmt.Errorf("command %q: %w", raw, naming.ErrMalformedName)
		}
		return goName, nil
	default:
		return "", fmt.Errorf("unknown kind %q", kind)
	}
}

// kindOf resolves KindAuto from the spelling of raw.
func (t *Translate) kindOf(raw string) string {
	if t.Kind != KindAuto && t.Kind != "" {
		return t.Kind
	}
	switch {
	case strings.HasPrefix(raw, naming.ValuePrefix+"_"):
		if t.Enum != "" {
			return KindValue
		}
		return KindConstant
	case strings.HasPrefix(raw, naming.TypePrefix):
		return KindType
	case strings.HasPrefix(raw, naming.CommandPrefix):
		return KindCommand
	}
	return KindType
}
