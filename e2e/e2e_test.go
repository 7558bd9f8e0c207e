// SPDX-License-Identifier: MIT

// Package e2e provides end-to-end tests for the vkgen CLI.
package e2e

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/tools/txtar"

	"github.com/albertocavalcante/vkgen/internal/testutil"
)

var (
	binary string                                              // path to built vkgen binary
	update = flag.Bool("update", false, "update golden files")
)

func TestMain(m *testing.M) {
	flag.Parse()

	// Build the vkgen binary to a temp location.
	tmpDir, err := os.MkdirTemp("", "vkgen-e2e-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create temp dir: %v\n", err)
		os.Exit(1)
	}

	binary = filepath.Join(tmpDir, "vkgen")
	if err := buildBinary(context.Background(), binary, "vkgen_full"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to build binary: %v\n", err)
		os.RemoveAll(tmpDir)
		os.Exit(1)
	}

	code := m.Run()
	os.RemoveAll(tmpDir)
	os.Exit(code)
}

// buildBinary builds the vkgen binary to the specified path.
func buildBinary(ctx context.Context, outputPath string, tags ...string) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	args := []string{"build", "-o", outputPath}
	if len(tags) > 0 {
		args = append(args, "-tags", strings.Join(tags, ","))
	}
	cmd := exec.CommandContext(ctx, "go", append(args, "./cmd/vkgen")...)

	moduleRoot, err := findModuleRoot()
	if err != nil {
		return fmt.Errorf("find module root: %w", err)
	}
	cmd.Dir = moduleRoot

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("go build: %w: %s", err, stderr.String())
	}

	return nil
}

// findModuleRoot finds the root of the Go module by looking for go.mod.
func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found")
		}
		dir = parent
	}
}

// runCLI executes the binary and returns its stdout.
func runCLI(t *testing.T, args ...string) ([]byte, error) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Env = append(os.Environ(), "VKGEN_LOG_LEVEL=warn")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		t.Logf("command: %s %s", binary, strings.Join(args, " "))
		t.Logf("stderr: %s", stderr.String())
		return nil, err
	}
	return stdout.Bytes(), nil
}

func TestE2E(t *testing.T) {
	for _, c := range testutil.LoadTestCases(t, "testdata") {
		t.Run(c.Name, func(t *testing.T) {
			generate := func(input []byte, flags []string) (map[string][]byte, error) {
				inputPath := filepath.Join(t.TempDir(), "vk.xml")
				if err := os.WriteFile(inputPath, input, 0o644); err != nil {
					return nil, err
				}
				args := append([]string{"generate", "--spec", inputPath, "--dry-run"}, flags...)
				stdout, err := runCLI(t, args...)
				if err != nil {
					return nil, err
				}
				return map[string][]byte{"stdout": stdout}, nil
			}

			if *update {
				got, err := generate(c.Input, c.Flags)
				if err != nil {
					t.Fatalf("generate: %v", err)
				}
				ar, err := txtar.ParseFile(c.File)
				if err != nil {
					t.Fatalf("parse %s: %v", c.File, err)
				}
				content := testutil.FormatArchive(testutil.UpdateArchive(ar, got))
				if err := os.WriteFile(c.File, content, 0o644); err != nil {
					t.Fatalf("write updated file: %v", err)
				}
				t.Logf("updated %s", c.File)
				return
			}

			c.Run(t, generate)
		})
	}
}

func TestTranslateCommand(t *testing.T) {
	out, err := runCLI(t, "translate", "--spec", testutil.MiniRegistryPath(),
		"VkSurfaceKHR", "VkAccessFlagBits2", "vkGetPhysicalDeviceProperties2KHR")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	want := "VkSurfaceKHR\tSurfaceKHR\nVkAccessFlagBits2\tAccessFlags2\nvkGetPhysicalDeviceProperties2KHR\tGetPhysicalDeviceProperties2KHR\n"
	if got := string(out); got != want {
		t.Errorf("translate output = %q, want %q", got, want)
	}
}

func TestGeneratorsCommand(t *testing.T) {
	out, err := runCLI(t, "generators")
	if err != nil {
		t.Fatalf("generators: %v", err)
	}
	for _, name := range []string{"go", "manifest"} {
		if !strings.Contains(string(out), name+" ") {
			t.Errorf("generators output missing %q:\n%s", name, out)
		}
	}
}

func TestWriteDirectory(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "vk") + string(filepath.Separator)
	if _, err := runCLI(t, "--spec", testutil.MiniRegistryPath(), "-o", outDir); err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, name := range []string{"commands.go", "constants.go", "enums.go", "handles.go", "structs.go"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestUnknownTargetFails(t *testing.T) {
	if _, err := runCLI(t, "--spec", testutil.MiniRegistryPath(), "-g", "cobol"); err == nil {
		t.Fatal("expected failure for unknown target")
	}
}
