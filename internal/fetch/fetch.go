// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package fetch loads the Vulkan registry (vk.xml) from a local file, an
// existing Vulkan-Docs clone, a sparse git checkout, or over HTTP.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/afero"

	"github.com/albertocavalcante/vkgen/internal/logger"
	"github.com/albertocavalcante/vkgen/internal/registry"
)

const (
	// VulkanDocsRepo is the repository containing the registry.
	VulkanDocsRepo = "https://github.com/KhronosGroup/Vulkan-Docs"

	// RawBaseURL serves single files of VulkanDocsRepo by ref.
	RawBaseURL = "https://raw.githubusercontent.com/KhronosGroup/Vulkan-Docs"

	// DefaultRef is the default git reference (tag/branch) to use.
	DefaultRef = "main"

	// RegistryPath is the path to vk.xml within the repository.
	RegistryPath = "xml/vk.xml"
)

// ErrNotFound is returned when the registry file does not exist at the
// requested location.
var ErrNotFound = errors.New("registry not found")

// Options configures how to fetch the registry.
type Options struct {
	// Ref is the git reference (tag or branch) to use.
	// If empty, DefaultRef is used.
	Ref string

	// LocalPath is a path to a local vk.xml file.
	// If set, the file is read directly instead of fetching from git.
	LocalPath string

	// RepoDir is a path to an existing clone of Vulkan-Docs.
	// If set, the repository is used instead of cloning.
	RepoDir string

	// HTTP downloads the raw file instead of cloning. Fetch also falls back
	// to HTTP when git is not installed.
	HTTP bool

	// BaseURL overrides RawBaseURL.
	BaseURL string

	// Retries is the number of HTTP retries on network and server errors.
	Retries int

	// RetryWait is the initial wait between HTTP retries.
	RetryWait time.Duration

	// Timeout for network operations.
	Timeout time.Duration

	// Fs is the filesystem LocalPath and RepoDir are read from.
	// Nil means the OS filesystem.
	Fs afero.Fs
}

// Result contains the fetched registry and metadata.
type Result struct {
	// Registry is the parsed vk.xml.
	Registry *registry.Registry

	// Ref is the git reference that was used.
	Ref string

	// CommitHash is the git commit hash (if fetched from git).
	CommitHash string

	// Source describes where the registry was loaded from.
	Source string
}

// Fetch retrieves and parses vk.xml.
func Fetch(ctx context.Context, opts Options) (*Result, error) {
	if opts.Timeout == 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Ref == "" {
		opts.Ref = DefaultRef
	}

	// Priority: LocalPath > RepoDir > HTTP > Clone
	switch {
	case opts.LocalPath != "":
		return fetchFromFile(opts.Fs, opts.LocalPath)
	case opts.RepoDir != "":
		return fetchFromRepo(opts.Fs, opts.RepoDir, opts.Ref)
	case opts.HTTP:
		return fetchFromHTTP(ctx, opts)
	}

	if _, err := exec.LookPath("git"); err != nil {
		logger.FromContext(ctx).Warn("git not found, downloading over HTTP", "err", err)
		return fetchFromHTTP(ctx, opts)
	}
	return fetchFromGit(ctx, opts)
}

// fetchFromFile reads the registry from a local file.
func fetchFromFile(fsys afero.Fs, path string) (*Result, error) {
	reg, err := readRegistry(fsys, path)
	if err != nil {
		return nil, err
	}
	return &Result{
		Registry: reg,
		Source:   fmt.Sprintf("file://%s", path),
	}, nil
}

// fetchFromRepo reads the registry from an existing repository clone.
func fetchFromRepo(fsys afero.Fs, repoDir, ref string) (*Result, error) {
	reg, err := readRegistry(fsys, filepath.Join(repoDir, RegistryPath))
	if err != nil {
		return nil, fmt.Errorf("read from repo: %w", err)
	}
	return &Result{
		Registry:   reg,
		Ref:        ref,
		CommitHash: getGitHash(fsys, repoDir),
		Source:     fmt.Sprintf("repo://%s", repoDir),
	}, nil
}

// fetchFromGit clones the repository sparsely and reads the registry.
func fetchFromGit(ctx context.Context, opts Options) (*Result, error) {
	tmpDir, err := os.MkdirTemp("", "vkgen-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	cloneCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	cmd := exec.CommandContext(cloneCtx, "git", "clone",
		"--quiet",
		"--depth=1",
		"--filter=blob:none",
		"--sparse",
		"--branch="+opts.Ref,
		"--single-branch",
		VulkanDocsRepo,
		tmpDir,
	)
	cmd.Stderr = io.Discard
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git clone: %w", err)
	}

	cmd = exec.CommandContext(cloneCtx, "git", "-C", tmpDir, "sparse-checkout", "set", filepath.Dir(RegistryPath))
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("sparse checkout: %w", err)
	}

	osFs := afero.NewOsFs()
	reg, err := readRegistry(osFs, filepath.Join(tmpDir, RegistryPath))
	if err != nil {
		return nil, err
	}
	return &Result{
		Registry:   reg,
		Ref:        opts.Ref,
		CommitHash: getGitHash(osFs, tmpDir),
		Source:     fmt.Sprintf("%s@%s", VulkanDocsRepo, opts.Ref),
	}, nil
}

// fetchFromHTTP downloads the raw registry file. It is faster than cloning
// but doesn't provide a commit hash.
func fetchFromHTTP(ctx context.Context, opts Options) (*Result, error) {
	data, url, err := FetchRaw(ctx, opts)
	if err != nil {
		return nil, err
	}
	reg, err := registry.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	return &Result{
		Registry: reg,
		Ref:      opts.Ref,
		Source:   url,
	}, nil
}

// FetchRaw downloads the raw vk.xml of opts.Ref and returns it with the URL
// it came from.
func FetchRaw(ctx context.Context, opts Options) ([]byte, string, error) {
	base := opts.BaseURL
	if base == "" {
		base = RawBaseURL
	}
	ref := opts.Ref
	if ref == "" {
		ref = DefaultRef
	}
	wait := opts.RetryWait
	if wait == 0 {
		wait = 500 * time.Millisecond
	}

	client := resty.New().
		SetBaseURL(base).
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.Retries).
		SetRetryWaitTime(wait).
		SetRetryMaxWaitTime(10 * wait)
	client.AddRetryCondition(retryCondition)

	path := "/" + ref + "/" + RegistryPath
	url := strings.TrimSuffix(base, "/") + path
	logger.FromContext(ctx).Debug("downloading registry", "url", url)

	resp, err := client.R().SetContext(ctx).Get(path)
	if err != nil {
		return nil, url, fmt.Errorf("download %s: %w", url, err)
	}
	switch {
	case resp.StatusCode() == 404:
		return nil, url, fmt.Errorf("%w: %s", ErrNotFound, url)
	case resp.IsError():
		return nil, url, fmt.Errorf("download %s: HTTP %s", url, resp.Status())
	}
	return resp.Body(), url, nil
}

// retryCondition retries network errors, server errors, and rate limits.
func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if r == nil {
		return false
	}
	code := r.StatusCode()
	return code >= 500 || code == 429 || code == 408
}

// readRegistry reads and parses a vk.xml file.
func readRegistry(fsys afero.Fs, path string) (*registry.Registry, error) {
	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	reg, err := registry.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	return reg, nil
}

// getGitHash returns the current commit hash for a repository.
func getGitHash(fsys afero.Fs, repoDir string) string {
	data, err := afero.ReadFile(fsys, filepath.Join(repoDir, ".git", "HEAD"))
	if err != nil {
		return ""
	}

	content := strings.TrimSpace(string(data))

	// Direct hash (detached HEAD)
	if len(content) == 40 && isHex(content) {
		return content
	}

	// Reference (e.g., "ref: refs/heads/main")
	if ref, ok := strings.CutPrefix(content, "ref: "); ok {
		data, err := afero.ReadFile(fsys, filepath.Join(repoDir, ".git", ref))
		if err != nil {
			return packedRef(fsys, repoDir, ref)
		}
		hash := strings.TrimSpace(string(data))
		if len(hash) >= 40 {
			return hash[:40]
		}
	}

	return ""
}

// packedRef looks ref up in .git/packed-refs.
func packedRef(fsys afero.Fs, repoDir, ref string) string {
	data, err := afero.ReadFile(fsys, filepath.Join(repoDir, ".git", "packed-refs"))
	if err != nil {
		return ""
	}
	for line := range strings.SplitSeq(string(data), "\n") {
		hash, name, ok := strings.Cut(strings.TrimSpace(line), " ")
		if ok && name == ref && len(hash) == 40 && isHex(hash) {
			return hash
		}
	}
	return ""
}

func isHex(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}
