// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package naming

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCapitalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "lowercase", input: "extent", expected: "Extent"},
		{name: "already capitalized", input: "Extent", expected: "Extent"},
		{name: "empty", input: "", expected: ""},
		{name: "single char", input: "x", expected: "X"},
		{name: "all caps", input: "KHR", expected: "KHR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Capitalize(tc.input); got != tc.expected {
				t.Errorf("Capitalize(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestExportName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "sType", input: "sType", expected: "SType"},
		{name: "pNext", input: "pNext", expected: "PNext"},
		{name: "already capitalized", input: "Width", expected: "Width"},
		{name: "empty string", input: "", expected: ""},
		{name: "single char", input: "x", expected: "X"},
		{name: "leading digit", input: "2d", expected: "X2d"},
		{name: "leading underscore", input: "_reserved", expected: "Xreserved"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExportName(tc.input); got != tc.expected {
				t.Errorf("ExportName(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestWords(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{input: "ShaderStageFlags", want: []string{"Shader", "Stage", "Flags"}},
		{input: "PipelineStageFlags2", want: []string{"Pipeline", "Stage", "Flags", "2"}},
		{input: "Result", want: []string{"Result"}},
		{input: "VendorId", want: []string{"Vendor", "Id"}},
		{input: "Offset2D", want: []string{"Offset", "2", "D"}},
		{input: "lower", want: []string{"lower"}},
		{input: "", want: nil},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, Words(tc.input)); diff != "" {
				t.Errorf("Words(%q) mismatch (-want +got):\n%s", tc.input, diff)
			}
		})
	}
}
