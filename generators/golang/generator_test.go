// SPDX-License-Identifier: MIT

package golang

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albertocavalcante/vkgen/generator"
	"github.com/albertocavalcante/vkgen/internal/registry"
	"github.com/albertocavalcante/vkgen/internal/testutil"
)

func parseMini(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.ParseBytes(testutil.MiniRegistry)
	require.NoError(t, err)
	return reg
}

func TestMetadata(t *testing.T) {
	meta := NewGenerator().Metadata()
	assert.Equal(t, "go", meta.Name)
	assert.Equal(t, []string{".go"}, meta.FileExtensions)
}

func TestGenerate_Directory(t *testing.T) {
	out, err := NewGenerator().Generate(context.Background(), parseMini(t), generator.Config{OutputDir: "vk"})
	require.NoError(t, err)

	assert.Equal(t, []string{"commands.go", "constants.go", "enums.go", "handles.go", "structs.go"}, out.Names())
	assert.Contains(t, string(out.Files["handles.go"]), "package vk\n")
	assert.Contains(t, string(out.Files["enums.go"]), "ImageLayoutPresentSrc")
	// Extension constants of selected extensions are emitted.
	assert.Contains(t, string(out.Files["constants.go"]), `"VK_KHR_surface"`)
}

func TestGenerate_SingleFile(t *testing.T) {
	cfg := generator.Config{
		OutputFile: "vulkan.go",
		Options:    map[string]string{"package": "vulkan", "cache-size": "64"},
	}
	out, err := NewGenerator().Generate(context.Background(), parseMini(t), cfg)
	require.NoError(t, err)

	require.Equal(t, []string{"vulkan.go"}, out.Names())
	assert.True(t, strings.HasPrefix(string(out.Files["vulkan.go"]), "// Code generated by vkgen. DO NOT EDIT."))
	assert.Contains(t, string(out.Files["vulkan.go"]), "package vulkan\n")
}

func TestGenerate_APIVersion(t *testing.T) {
	cfg := generator.Config{APIVersion: "1.0", Extensions: []string{"VK_KHR_surface"}}
	out, err := NewGenerator().Generate(context.Background(), parseMini(t), cfg)
	require.NoError(t, err)

	enums := string(out.Files["enums.go"])
	assert.Contains(t, enums, "ResultErrorSurfaceLost")
	assert.NotContains(t, enums, "StructureTypePhysicalDeviceProperties2")
	assert.NotContains(t, enums, "ImageLayoutPresentSrc")
	assert.NotContains(t, string(out.Files["structs.go"]), "MemoryBarrier2")
}

func TestGenerate_TypeFilter(t *testing.T) {
	cfg := generator.Config{Types: []string{"VkPhysicalDeviceProperties2KHR"}, ResolveDeps: true}
	out, err := NewGenerator().Generate(context.Background(), parseMini(t), cfg)
	require.NoError(t, err)

	structs := string(out.Files["structs.go"])
	assert.Contains(t, structs, "type PhysicalDeviceProperties2KHR = PhysicalDeviceProperties2")
	assert.Contains(t, structs, "type PhysicalDeviceProperties2 struct")
	assert.Contains(t, structs, "type PhysicalDeviceProperties struct")
	assert.NotContains(t, structs, "ApplicationInfo")
	assert.NotContains(t, string(out.Files["commands.go"]), "uintptr")
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  generator.Config
	}{
		{name: "bad api version", cfg: generator.Config{APIVersion: "one"}},
		{name: "bad cache size", cfg: generator.Config{Options: map[string]string{"cache-size": "lots"}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewGenerator().Generate(context.Background(), parseMini(t), tc.cfg)
			assert.Error(t, err)
		})
	}
}
