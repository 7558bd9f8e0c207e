// SPDX-License-Identifier: MIT

// Package testutil provides testing utilities for vkgen: a trimmed
// registry fixture and txtar golden cases.
package testutil

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

// inputFile is the archive member holding the registry document.
const inputFile = "input.xml"

// Case represents a parsed test case from a txtar archive.
type Case struct {
	// Name is the test case name (typically the filename without extension).
	Name string

	// Description is the first comment block before any files.
	Description string

	// Flags contains any flags parsed from "Flags: ..." line in the description.
	Flags []string

	// Input is the contents of "input.xml".
	Input []byte

	// Want maps output names (e.g., "enums.go", "stdout") to expected
	// content.
	Want map[string][]byte

	// File is the archive the case was loaded from, if any.
	File string
}

// ParseCase parses a txtar archive into a test Case.
// The archive should contain:
//   - A description comment (text before first file)
//   - An "input.xml" file holding a registry fragment
//   - One or more "want/<filename>" files with expected output
//
// The description may contain a "Flags: -t VkExtent2D --api-version 1.0"
// line; flags are separated by whitespace.
func ParseCase(name string, ar *txtar.Archive) (*Case, error) {
	c := &Case{
		Name:        name,
		Description: string(ar.Comment),
		Want:        make(map[string][]byte),
	}

	// Parse flags from description
	c.parseFlags()

	// Process files
	for _, f := range ar.Files {
		switch {
		case f.Name == inputFile:
			c.Input = f.Data
		case strings.HasPrefix(f.Name, "want/"):
			relPath := strings.TrimPrefix(f.Name, "want/")
			c.Want[relPath] = f.Data
		default:
			return nil, fmt.Errorf("unexpected file in archive: %q (expected %s or want/*)", f.Name, inputFile)
		}
	}

	if c.Input == nil {
		return nil, fmt.Errorf("missing %s in archive", inputFile)
	}

	if len(c.Want) == 0 {
		return nil, fmt.Errorf("missing want/* files in archive")
	}

	return c, nil
}

// parseFlags extracts flags from "Flags: ..." line in the description.
func (c *Case) parseFlags() {
	for line := range strings.SplitSeq(c.Description, "\n") {
		if rest, ok := strings.CutPrefix(strings.TrimSpace(line), "Flags:"); ok {
			c.Flags = strings.Fields(rest)
			return
		}
	}
}

// GenerateFunc generates output from a registry document.
// It returns a map of filename to content.
type GenerateFunc func(input []byte, flags []string) (map[string][]byte, error)

// Run executes the test case using the provided generate function.
// Every non-blank line of a want file must appear in the generated file, in
// order, so a want file may hold the whole output or just the lines that
// matter.
func (c *Case) Run(t *testing.T, generate GenerateFunc) {
	t.Helper()

	got, err := generate(c.Input, c.Flags)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	// Check for missing expected files
	for wantFile := range c.Want {
		if _, ok := got[wantFile]; !ok {
			t.Errorf("missing output file: %q", wantFile)
		}
	}

	// Check for unexpected files
	for gotFile := range got {
		if _, ok := c.Want[gotFile]; !ok {
			t.Errorf("unexpected output file: %q", gotFile)
		}
	}

	// Compare contents
	for wantFile, wantContent := range c.Want {
		gotContent, ok := got[wantFile]
		if !ok {
			continue // Already reported as missing
		}

		// gofmt alignment depends on the longest name in a block.
		if line, ok := containsLines(normalizeContent(gotContent), normalizeContent(wantContent)); !ok {
			t.Errorf("file %q: line %q not found in order\ngot:\n%s", wantFile, line, gotContent)
		}
	}
}

// containsLines reports whether every non-blank line of want appears in got
// in order. On failure it returns the first line not found.
func containsLines(got, want string) (string, bool) {
	gotLines := strings.Split(got, "\n")
	i := 0
	for line := range strings.SplitSeq(want, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		for i < len(gotLines) && gotLines[i] != line {
			i++
		}
		if i == len(gotLines) {
			return line, false
		}
		i++
	}
	return "", true
}

// normalizeContent normalizes content for comparison. Lines lose trailing
// whitespace, runs of blanks inside a line collapse to one space, and
// trailing newlines are dropped.
func normalizeContent(content []byte) string {
	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		lines[i] = line[:indent] + strings.Join(strings.Fields(line[indent:]), " ")
	}
	result := strings.Join(lines, "\n")
	return strings.TrimRight(result, "\n")
}

// UpdateArchive updates a txtar archive with new generated content.
// Used for golden file updates with -update flag.
func UpdateArchive(ar *txtar.Archive, got map[string][]byte) *txtar.Archive {
	// Keep comment and input
	result := &txtar.Archive{
		Comment: ar.Comment,
	}

	for _, f := range ar.Files {
		if f.Name == inputFile {
			result.Files = append(result.Files, f)
			break
		}
	}

	// Add want/* files in sorted order for determinism
	var wantFiles []string
	for name := range got {
		wantFiles = append(wantFiles, name)
	}
	sort.Strings(wantFiles)

	for _, name := range wantFiles {
		content := got[name]
		// Ensure trailing newline
		if len(content) > 0 && content[len(content)-1] != '\n' {
			content = append(content, '\n')
		}
		result.Files = append(result.Files, txtar.File{
			Name: "want/" + name,
			Data: content,
		})
	}

	return result
}

// FormatArchive formats an archive to bytes.
func FormatArchive(ar *txtar.Archive) []byte {
	return txtar.Format(ar)
}

// LoadTestCases loads all txtar test cases from a directory.
func LoadTestCases(t *testing.T, dir string) []*Case {
	t.Helper()

	pattern := filepath.Join(dir, "*.txtar")
	files, err := filepath.Glob(pattern)
	if err != nil {
		t.Fatalf("glob %q: %v", pattern, err)
	}

	if len(files) == 0 {
		t.Fatalf("no txtar files found in %q", dir)
	}

	var cases []*Case
	for _, file := range files {
		ar, err := txtar.ParseFile(file)
		if err != nil {
			t.Fatalf("parse %q: %v", file, err)
		}

		name := strings.TrimSuffix(filepath.Base(file), ".txtar")
		c, err := ParseCase(name, ar)
		if err != nil {
			t.Fatalf("parse case %q: %v", name, err)
		}
		c.File = file

		cases = append(cases, c)
	}

	// Sort by name for determinism
	sort.Slice(cases, func(i, j int) bool {
		return cases[i].Name < cases[j].Name
	})

	return cases
}

// StripHeader removes the "Code generated by vkgen" header from generated code.
// This allows tests to compare just the meaningful code.
func StripHeader(content []byte) []byte {
	lines := bytes.Split(content, []byte("\n"))
	var result [][]byte
	inHeader := true

	for _, line := range lines {
		lineStr := string(line)
		// Skip header lines (comments at the start)
		if inHeader {
			if strings.HasPrefix(lineStr, "//") || lineStr == "" {
				continue
			}
			inHeader = false
		}
		result = append(result, line)
	}

	return bytes.Join(result, []byte("\n"))
}
