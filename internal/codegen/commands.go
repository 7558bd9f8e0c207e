// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package codegen

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/albertocavalcante/vkgen/internal/registry"
)

// Level is the dispatch level a command is loaded at.
type Level int

const (
	// LevelGlobal commands are loaded with a null instance.
	LevelGlobal Level = iota
	// LevelInstance commands dispatch on VkInstance or VkPhysicalDevice.
	LevelInstance
	// LevelDevice commands dispatch on VkDevice or one of its children.
	LevelDevice
)

func (l Level) String() string {
	switch l {
	case LevelGlobal:
		return "global"
	case LevelInstance:
		return "instance"
	case LevelDevice:
		return "device"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// tableNames maps each level to its generated table type.
var tableNames = map[Level]string{
	LevelGlobal:   "GlobalCommands",
	LevelInstance: "InstanceCommands",
	LevelDevice:   "DeviceCommands",
}

// loaderCommand is loaded from the library itself.
const loaderCommand = "vkGetInstanceProcAddr"

var tableTemplate = template.Must(template.New("table").Option("missingkey=error").Funcs(sprig.FuncMap()).Parse(`
// {{.Type}} holds the addresses of {{.Level}} commands.
type {{.Type}} struct {
{{- range .Commands}}
	// {{.Raw}}({{join ", " .Params}}){{with .Result}} {{.}}{{end}}
{{- with .Success}}
	// Success: {{join ", " .}}.
{{- end}}
{{- with .Errors}}
	// Errors: {{join ", " .}}.
{{- end}}
{{- with .Alias}}
	// Alias of {{.}}.
{{- end}}
	{{.Name}} uintptr
{{- end}}
}

// Load resolves every command through getProcAddr and returns the names
// that resolved to zero.
func (t *{{.Type}}) Load(getProcAddr func(name string) uintptr) []string {
	var missing []string
{{- range .Commands}}
	if t.{{.Name}} = getProcAddr({{quote .Raw}}); t.{{.Name}} == 0 {
		missing = append(missing, {{quote .Raw}})
	}
{{- end}}
	return missing
}
`))

type commandEntry struct {
	Name    string
	Raw     string
	Alias   string
	Params  []string
	Result  string
	Success []string
	Errors  []string
}

type tableData struct {
	Type     string
	Level    Level
	Commands []commandEntry
}

// renderCommands emits one function table per dispatch level.
func (g *Generator) renderCommands() ([]byte, error) {
	tables := map[Level]*tableData{}
	for _, lvl := range []Level{LevelGlobal, LevelInstance, LevelDevice} {
		tables[lvl] = &tableData{Type: tableNames[lvl], Level: lvl}
	}

	seen := make(map[string]bool)
	for _, c := range g.reg.Commands {
		if seen[c.Name] || !g.hasCommand(c.Name) {
			continue
		}
		seen[c.Name] = true

		name, ok := g.names.Translator().ConvertCommandName(c.Name)
		if !ok {
			g.log.Warn("command skipped", "command", c.Name)
			continue
		}
		def, ok := g.reg.ResolveCommand(c.Name)
		if !ok {
			g.log.Warn("command alias does not resolve", "command", c.Name, "alias", c.Alias)
			continue
		}
		entry := commandEntry{
			Name:    name,
			Raw:     c.Name,
			Alias:   c.Alias,
			Params:  g.paramSignature(def),
			Result:  g.resultSignature(def),
			Success: def.SuccessCodes,
			Errors:  def.ErrorCodes,
		}
		lvl := g.CommandLevel(def)
		tables[lvl].Commands = append(tables[lvl].Commands, entry)
	}

	var buf bytes.Buffer
	for _, lvl := range []Level{LevelGlobal, LevelInstance, LevelDevice} {
		if len(tables[lvl].Commands) == 0 {
			continue
		}
		if err := tableTemplate.Execute(&buf, tables[lvl]); err != nil {
			return nil, fmt.Errorf("%s: %w", tables[lvl].Type, err)
		}
	}
	return buf.Bytes(), nil
}

// CommandLevel classifies a command by its first parameter: commands on
// VkDevice or any handle below it are device level, commands on VkInstance
// or a handle below it are instance level, and the rest are global.
func (g *Generator) CommandLevel(c *registry.Command) Level {
	if c.Name == loaderCommand || len(c.Params) == 0 || c.Params[0].Pointers > 0 {
		return LevelGlobal
	}
	var seen []string
	name := c.Params[0].Type
	for name != "" && !slices.Contains(seen, name) {
		switch name {
		case "VkDevice":
			return LevelDevice
		case "VkInstance":
			return LevelInstance
		}
		seen = append(seen, name)
		t, ok := g.reg.ResolveAlias(name)
		if !ok || t.Category != registry.CategoryHandle {
			break
		}
		name, _, _ = strings.Cut(t.Parent, ",")
	}
	return LevelGlobal
}

// paramSignature renders parameters as Go declarations for documentation.
func (g *Generator) paramSignature(c *registry.Command) []string {
	params := make([]string, 0, len(c.Params))
	for _, p := range c.Params {
		typ := p.Type
		if ft, err := g.declType(p); err == nil {
			typ = ft.expr
		}
		params = append(params, p.Name+" "+typ)
	}
	return params
}

func (g *Generator) resultSignature(c *registry.Command) string {
	if c.ReturnType == "" || (c.ReturnType == CVoid && c.ReturnPointers == 0) {
		return ""
	}
	ft, err := g.declType(&registry.Decl{Type: c.ReturnType, Pointers: c.ReturnPointers})
	if err != nil {
		return c.ReturnType
	}
	return ft.expr
}
