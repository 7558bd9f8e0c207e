// SPDX-License-Identifier: MIT

package testutil

import (
	_ "embed"
	"path/filepath"
	"runtime"
)

// MiniRegistry is a trimmed vk.xml with one example of each construct the
// generator handles: extension-tagged handles, 64-bit bitmasks, bitfields,
// unions, aliases, and vulkansc-only definitions that must be dropped.
//
//go:embed testdata/vk_mini.xml
var MiniRegistry []byte

// MiniRegistryPath returns the absolute path of the MiniRegistry file, for
// tests that drive the CLI.
func MiniRegistryPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "testdata", "vk_mini.xml")
}
