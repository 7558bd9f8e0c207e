// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

//go:build e2e

// Compile verification: generated code must build and pass vet.
//
// Run with: go test -tags e2e ./e2e/... -v
package e2e

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/albertocavalcante/vkgen/internal/testutil"
)

// requireGo fails the test if the go tool is not available.
func requireGo(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("go"); err != nil {
		t.Fatal("go not found in PATH. Install from https://go.dev/dl/")
	}
}

// TestGoOutputCompiles verifies that generated Go code compiles and passes vet.
func TestGoOutputCompiles(t *testing.T) {
	requireGo(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "directory", args: []string{"-o", "vk/"}},
		{name: "single_file", args: []string{"-o", "vk/vk.go"}},
		{name: "core_1_0", args: []string{"-o", "vk/", "--api-version", "1.0", "-e", "none"}},
		{name: "types_only", args: []string{"-o", "vk/", "-t", "VkAccelerationStructureInstanceKHR,VkClearColorValue"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			goModDir := t.TempDir()
			goMod := "module vktest\n\ngo 1.25\n"
			if err := os.WriteFile(filepath.Join(goModDir, "go.mod"), []byte(goMod), 0o644); err != nil {
				t.Fatalf("write go.mod: %v", err)
			}

			args := append([]string{"generate", "--spec", testutil.MiniRegistryPath()}, tc.args...)
			cmd := exec.CommandContext(ctx, binary, args...)
			cmd.Dir = goModDir
			var stderr bytes.Buffer
			cmd.Stderr = &stderr
			if err := cmd.Run(); err != nil {
				t.Fatalf("vkgen generate: %v\n%s", err, stderr.String())
			}

			for _, tool := range [][]string{{"build", "./..."}, {"vet", "./..."}} {
				start := time.Now()
				cmd := exec.CommandContext(ctx, "go", tool...)
				cmd.Dir = goModDir
				out, err := cmd.CombinedOutput()
				if err != nil {
					t.Fatalf("go %s failed: %v\n%s", tool[0], err, out)
				}
				t.Logf("go %s: %v", tool[0], time.Since(start))
			}
		})
	}
}
