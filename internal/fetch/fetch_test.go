// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/albertocavalcante/vkgen/internal/testutil"
)

func TestIsHex(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{
			name:  "empty string",
			input: "",
			want:  true, // all characters (none) are hex
		},
		{
			name:  "valid lowercase hex",
			input: "0123456789abcdef",
			want:  true,
		},
		{
			name:  "valid uppercase hex",
			input: "0123456789ABCDEF",
			want:  true,
		},
		{
			name:  "valid mixed case hex",
			input: "aAbBcCdDeEfF",
			want:  true,
		},
		{
			name:  "valid 40-char git hash",
			input: "a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2",
			want:  true,
		},
		{
			name:  "invalid char g",
			input: "abcdefg",
			want:  false,
		},
		{
			name:  "invalid char z",
			input: "123z456",
			want:  false,
		},
		{
			name:  "invalid char !",
			input: "abc!def",
			want:  false,
		},
		{
			name:  "invalid char space",
			input: "abc def",
			want:  false,
		},
		{
			name:  "mixed valid and invalid at start",
			input: "gabc123",
			want:  false,
		},
		{
			name:  "mixed valid and invalid at end",
			input: "abc123g",
			want:  false,
		},
		{
			name:  "only digits",
			input: "0123456789",
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isHex(tt.input)
			if got != tt.want {
				t.Errorf("isHex(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// writeFile writes data into fsys, creating parent directories.
func writeFile(t *testing.T, fsys afero.Fs, path string, data []byte) {
	t.Helper()
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := afero.WriteFile(fsys, path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestGetGitHash(t *testing.T) {
	const (
		detached = "a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2"
		branch   = "b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3"
	)

	tests := []struct {
		name     string
		files    map[string]string
		wantHash string
	}{
		{
			name:     "detached HEAD with direct hash",
			files:    map[string]string{".git/HEAD": detached + "\n"},
			wantHash: detached,
		},
		{
			name: "HEAD references branch",
			files: map[string]string{
				".git/HEAD":            "ref: refs/heads/main\n",
				".git/refs/heads/main": branch + "\n",
			},
			wantHash: branch,
		},
		{
			name: "packed ref",
			files: map[string]string{
				".git/HEAD":        "ref: refs/heads/main\n",
				".git/packed-refs": "# pack-refs with: peeled fully-peeled sorted\n" + detached + " refs/heads/other\n" + branch + " refs/heads/main\n",
			},
			wantHash: branch,
		},
		{
			name:  "missing ref file",
			files: map[string]string{".git/HEAD": "ref: refs/heads/nonexistent\n"},
		},
		{
			name:  "invalid HEAD content",
			files: map[string]string{".git/HEAD": "invalid content\n"},
		},
		{
			name:  "40 chars but not hex",
			files: map[string]string{".git/HEAD": "ghijklmnopghijklmnopghijklmnopghijklmnop\n"},
		},
		{
			name: "short ref hash",
			files: map[string]string{
				".git/HEAD":            "ref: refs/heads/main\n",
				".git/refs/heads/main": "abc123\n",
			},
		},
		{
			name: "no git directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			for name, content := range tt.files {
				writeFile(t, fsys, filepath.Join("/repo", name), []byte(content))
			}
			if got := getGitHash(fsys, "/repo"); got != tt.wantHash {
				t.Errorf("getGitHash() = %q, want %q", got, tt.wantHash)
			}
		})
	}
}

func TestFetch_LocalPath(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/data/vk.xml", testutil.MiniRegistry)
	writeFile(t, fsys, "/data/broken.xml", []byte("<registry><types>"))

	t.Run("valid file", func(t *testing.T) {
		result, err := Fetch(context.Background(), Options{LocalPath: "/data/vk.xml", Fs: fsys})
		if err != nil {
			t.Fatalf("Fetch() error: %v", err)
		}
		if result.Source != "file:///data/vk.xml" {
			t.Errorf("Source = %q", result.Source)
		}
		if result.CommitHash != "" {
			t.Errorf("CommitHash = %q, want empty", result.CommitHash)
		}
		if got := result.Registry.HeaderVersion(); got != "330" {
			t.Errorf("HeaderVersion() = %q, want 330", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Fetch(context.Background(), Options{LocalPath: "/data/none.xml", Fs: fsys})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Fetch() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("invalid XML", func(t *testing.T) {
		_, err := Fetch(context.Background(), Options{LocalPath: "/data/broken.xml", Fs: fsys})
		if err == nil || errors.Is(err, ErrNotFound) {
			t.Errorf("Fetch() error = %v, want parse error", err)
		}
	})
}

func TestFetch_RepoDir(t *testing.T) {
	const hash = "c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4"
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/src/Vulkan-Docs/"+RegistryPath, testutil.MiniRegistry)
	writeFile(t, fsys, "/src/Vulkan-Docs/.git/HEAD", []byte(hash+"\n"))

	result, err := Fetch(context.Background(), Options{RepoDir: "/src/Vulkan-Docs", Ref: "v1.4.330", Fs: fsys})
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if result.CommitHash != hash {
		t.Errorf("CommitHash = %q, want %q", result.CommitHash, hash)
	}
	if result.Ref != "v1.4.330" {
		t.Errorf("Ref = %q, want v1.4.330", result.Ref)
	}
	if result.Source != "repo:///src/Vulkan-Docs" {
		t.Errorf("Source = %q", result.Source)
	}

	_, err = Fetch(context.Background(), Options{RepoDir: "/src/empty", Fs: fsys})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Fetch() on empty repo error = %v, want ErrNotFound", err)
	}
}

func TestFetch_HTTP(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		switch r.URL.Path {
		case "/v1.4.330/" + RegistryPath:
			_, _ = w.Write(testutil.MiniRegistry)
		case "/flaky/" + RegistryPath:
			if n == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write(testutil.MiniRegistry)
		case "/broken/" + RegistryPath:
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	opts := func(ref string, retries int) Options {
		return Options{
			Ref:       ref,
			HTTP:      true,
			BaseURL:   srv.URL,
			Retries:   retries,
			RetryWait: time.Millisecond,
			Timeout:   5 * time.Second,
		}
	}

	t.Run("success", func(t *testing.T) {
		result, err := Fetch(context.Background(), opts("v1.4.330", 0))
		if err != nil {
			t.Fatalf("Fetch() error: %v", err)
		}
		if want := srv.URL + "/v1.4.330/" + RegistryPath; result.Source != want {
			t.Errorf("Source = %q, want %q", result.Source, want)
		}
		if result.Ref != "v1.4.330" {
			t.Errorf("Ref = %q", result.Ref)
		}
		if len(result.Registry.Commands) == 0 {
			t.Error("registry has no commands")
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := Fetch(context.Background(), opts("missing", 0))
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Fetch() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("retries server errors", func(t *testing.T) {
		calls.Store(0)
		if _, err := Fetch(context.Background(), opts("flaky", 2)); err != nil {
			t.Fatalf("Fetch() error: %v", err)
		}
		if got := calls.Load(); got != 2 {
			t.Errorf("server saw %d requests, want 2", got)
		}
	})

	t.Run("server error", func(t *testing.T) {
		_, err := Fetch(context.Background(), opts("broken", 1))
		if err == nil || errors.Is(err, ErrNotFound) {
			t.Errorf("Fetch() error = %v, want HTTP error", err)
		}
	})
}
